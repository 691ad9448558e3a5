package game

import (
	"math"
	"time"

	"github.com/ayusman/posecatch/internal/pose"
)

// DefaultHitMargin is the extra pixel tolerance added to a target's radius.
const DefaultHitMargin = 30.0

// Hit records one collected target.
type Hit struct {
	TargetID int       `json:"target_id"`
	Color    Color     `json:"color"`
	Points   int       `json:"points"`
	X        float64   `json:"x"`
	Y        float64   `json:"y"`
	At       time.Time `json:"at"`
}

// SelectWrist returns the tracked wrist: the left wrist when present, the
// right wrist otherwise.
func SelectWrist(result *pose.Result, minVisibility float64) (pose.Landmark, bool) {
	if lm, ok := result.At(pose.LeftWrist, minVisibility); ok {
		return lm, true
	}
	return result.At(pose.RightWrist, minVisibility)
}

// ToPixels maps a normalized landmark onto a width x height canvas.
func ToPixels(lm pose.Landmark, width, height int) (float64, float64) {
	return lm.X * float64(width), lm.Y * float64(height)
}

// IsHit reports whether the point (px, py) collects t. A point exactly on
// the boundary radius+margin is a miss.
func IsHit(t Target, px, py, margin float64) bool {
	return math.Hypot(px-t.X, py-t.Y) < t.Radius+margin
}

// Collide removes every target hit by the point (px, py) and returns the
// survivors in their original order together with the hits. All targets are
// checked; there is no early exit.
func Collide(targets []Target, px, py, margin float64) ([]Target, []Hit) {
	var hits []Hit
	survivors := make([]Target, 0, len(targets))

	for _, t := range targets {
		if IsHit(t, px, py, margin) {
			hits = append(hits, Hit{
				TargetID: t.ID,
				Color:    t.Color,
				Points:   t.Points,
				X:        t.X,
				Y:        t.Y,
			})
			continue
		}
		survivors = append(survivors, t)
	}

	return survivors, hits
}

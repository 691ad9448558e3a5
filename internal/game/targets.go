// Package game implements the target-collection round: spawning targets,
// resolving wrist collisions, and the countdown state machine.
package game

import (
	"math/rand"
)

// Color is the display class of a target.
type Color string

// Target colors.
const (
	ColorRed    Color = "#FF5252"
	ColorYellow Color = "#FFEB3B"
	ColorGreen  Color = "#4CAF50"
	ColorBlue   Color = "#2196F3"
)

// Kind is one palette entry: how a target looks and what it is worth.
type Kind struct {
	Color  Color   `json:"color"`
	Points int     `json:"points"`
	Radius float64 `json:"radius"`
}

// DefaultPalette returns the palette targets are drawn from. Smaller targets
// are worth more.
func DefaultPalette() []Kind {
	return []Kind{
		{Color: ColorRed, Points: 1, Radius: 20},
		{Color: ColorYellow, Points: 3, Radius: 25},
		{Color: ColorGreen, Points: 5, Radius: 15},
		{Color: ColorBlue, Points: 2, Radius: 22},
	}
}

// Target is a collectible circle in canvas pixel space.
type Target struct {
	ID     int     `json:"id"`
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Radius float64 `json:"radius"`
	Color  Color   `json:"color"`
	Points int     `json:"points"`
}

// FloorPolicy decides how many targets must be on the board.
type FloorPolicy struct {
	// Initial is the size of the set dealt at round start.
	Initial int
	// Base is the minimum count regardless of score.
	Base int
	// ScoreDivisor adds one target per ScoreDivisor points. Zero disables scaling.
	ScoreDivisor int
}

// DefaultFloorPolicy returns the score-scaling policy: five targets, plus one
// for every twenty points.
func DefaultFloorPolicy() FloorPolicy {
	return FloorPolicy{
		Initial:      5,
		Base:         5,
		ScoreDivisor: 20,
	}
}

// FixedFloorPolicy returns a policy that always keeps n targets on the board.
func FixedFloorPolicy(n int) FloorPolicy {
	return FloorPolicy{Initial: n, Base: n}
}

// MinimumCount returns the floor for the given score.
func (p FloorPolicy) MinimumCount(score int) int {
	n := p.Base
	if p.ScoreDivisor > 0 && score > 0 {
		n += score / p.ScoreDivisor
	}
	if n < 1 {
		n = 1
	}
	return n
}

// InitialCount returns the size of a freshly dealt set, never below the floor
// for a zero score.
func (p FloorPolicy) InitialCount() int {
	if floor := p.MinimumCount(0); p.Initial < floor {
		return floor
	}
	return p.Initial
}

// Spawner creates targets with monotonically increasing ids.
// It is not safe for concurrent use.
type Spawner struct {
	palette []Kind
	rng     *rand.Rand
	nextID  int
}

// NewSpawner creates a Spawner drawing from palette using rng.
// A nil rng uses a time-seeded source; an empty palette uses DefaultPalette.
func NewSpawner(palette []Kind, rng *rand.Rand) *Spawner {
	if len(palette) == 0 {
		palette = DefaultPalette()
	}
	if rng == nil {
		rng = rand.New(rand.NewSource(rand.Int63()))
	}
	return &Spawner{
		palette: palette,
		rng:     rng,
	}
}

// Spawn picks a palette entry uniformly at random and places it so the whole
// circle lies within a width x height canvas.
func (s *Spawner) Spawn(width, height int) Target {
	kind := s.palette[s.rng.Intn(len(s.palette))]
	s.nextID++

	return Target{
		ID:     s.nextID,
		X:      s.coord(float64(width), kind.Radius),
		Y:      s.coord(float64(height), kind.Radius),
		Radius: kind.Radius,
		Color:  kind.Color,
		Points: kind.Points,
	}
}

// coord returns a uniform position in [r, extent-r]. A canvas narrower than
// the circle centers it instead.
func (s *Spawner) coord(extent, r float64) float64 {
	span := extent - 2*r
	if span <= 0 {
		return extent / 2
	}
	return r + s.rng.Float64()*span
}

// Deal returns n fresh targets.
func (s *Spawner) Deal(n, width, height int) []Target {
	targets := make([]Target, 0, n)
	for i := 0; i < n; i++ {
		targets = append(targets, s.Spawn(width, height))
	}
	return targets
}

// Replenish appends fresh targets to current until it holds at least
// minimumCount. Existing targets are kept untouched and in order.
func (s *Spawner) Replenish(current []Target, minimumCount, width, height int) []Target {
	for len(current) < minimumCount {
		current = append(current, s.Spawn(width, height))
	}
	return current
}

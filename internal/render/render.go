// Package render draws a game frame onto an injected Surface.
package render

import (
	"image/color"

	"gocv.io/x/gocv"

	"github.com/ayusman/posecatch/internal/game"
	"github.com/ayusman/posecatch/internal/pose"
)

// LineStyle describes skeleton connector lines.
type LineStyle struct {
	Color color.RGBA
	Width int
}

// PointStyle describes landmark dots.
type PointStyle struct {
	Color  color.RGBA
	Radius int
}

// Surface is a drawing target. Landmark coordinates are normalized; target
// coordinates are canvas pixels as recorded in the snapshot.
type Surface interface {
	Clear()
	DrawFrame(frame *gocv.Mat)
	DrawConnectors(landmarks []pose.Landmark, connections []pose.Connection, style LineStyle)
	DrawLandmarks(landmarks []pose.Landmark, style PointStyle)
	FillCircle(x, y, radius float64, c color.RGBA)
	DrawHUD(snap game.Snapshot)
	Flush() error
}

// Resizer is implemented by surfaces that follow the game canvas size.
type Resizer interface {
	Resize(width, height int)
}

// Renderer composes a frame in a fixed order: video, skeleton, targets, HUD.
type Renderer struct {
	Connectors LineStyle
	Landmarks  PointStyle
}

// New returns a Renderer with the MediaPipe drawing defaults: green
// connectors four pixels wide and red landmark dots.
func New() *Renderer {
	return &Renderer{
		Connectors: LineStyle{Color: color.RGBA{R: 0x00, G: 0xFF, B: 0x00, A: 0xFF}, Width: 4},
		Landmarks:  PointStyle{Color: color.RGBA{R: 0xFF, G: 0x00, B: 0x00, A: 0xFF}, Radius: 4},
	}
}

// Render draws one frame. It reads the snapshot and never changes game state.
func (r *Renderer) Render(s Surface, frame *gocv.Mat, result *pose.Result, snap game.Snapshot) error {
	if rs, ok := s.(Resizer); ok && snap.Width > 0 && snap.Height > 0 {
		rs.Resize(snap.Width, snap.Height)
	}
	s.Clear()

	if frame != nil && !frame.Empty() {
		s.DrawFrame(frame)
	}

	if result.Detected() {
		s.DrawConnectors(result.PoseLandmarks, pose.PoseConnections, r.Connectors)
		s.DrawLandmarks(result.PoseLandmarks, r.Landmarks)
	}

	for _, t := range snap.Targets {
		s.FillCircle(t.X, t.Y, t.Radius, ParseColor(t.Color))
	}

	s.DrawHUD(snap)

	return s.Flush()
}

package render

import (
	"fmt"
	"image"
	"image/color"
	"sync"

	"gocv.io/x/gocv"

	"github.com/ayusman/posecatch/internal/game"
	"github.com/ayusman/posecatch/internal/pose"
)

var (
	hudColor    = color.RGBA{R: 0xFF, G: 0xFF, B: 0xFF, A: 0xFF}
	bannerColor = color.RGBA{R: 0xFF, G: 0x52, B: 0x52, A: 0xFF}
)

// MatSurface draws onto an OpenCV canvas. The last flushed canvas is kept as
// JPEG for streaming.
type MatSurface struct {
	width  int
	height int
	canvas gocv.Mat

	mu   sync.RWMutex
	jpeg []byte
}

// NewMatSurface allocates a width x height BGR canvas.
func NewMatSurface(width, height int) *MatSurface {
	return &MatSurface{
		width:  width,
		height: height,
		canvas: gocv.NewMatWithSize(height, width, gocv.MatTypeCV8UC3),
	}
}

// Size returns the canvas size in pixels.
func (m *MatSurface) Size() (int, int) {
	return m.width, m.height
}

// Resize reallocates the canvas when the game canvas size changes.
func (m *MatSurface) Resize(width, height int) {
	if width == m.width && height == m.height {
		return
	}
	m.canvas.Close()
	m.width, m.height = width, height
	m.canvas = gocv.NewMatWithSize(height, width, gocv.MatTypeCV8UC3)
}

// Clear paints the canvas black.
func (m *MatSurface) Clear() {
	m.canvas.SetTo(gocv.NewScalar(0, 0, 0, 0))
}

// DrawFrame copies the video frame, scaling it when its size differs.
func (m *MatSurface) DrawFrame(frame *gocv.Mat) {
	if frame.Cols() == m.width && frame.Rows() == m.height {
		frame.CopyTo(&m.canvas)
		return
	}
	gocv.Resize(*frame, &m.canvas, image.Pt(m.width, m.height), 0, 0, gocv.InterpolationLinear)
}

// DrawConnectors draws the skeleton lines.
func (m *MatSurface) DrawConnectors(landmarks []pose.Landmark, connections []pose.Connection, style LineStyle) {
	for _, c := range connections {
		if c.From >= len(landmarks) || c.To >= len(landmarks) {
			continue
		}
		gocv.Line(&m.canvas, m.point(landmarks[c.From]), m.point(landmarks[c.To]), style.Color, style.Width)
	}
}

// DrawLandmarks draws a dot per landmark.
func (m *MatSurface) DrawLandmarks(landmarks []pose.Landmark, style PointStyle) {
	for _, lm := range landmarks {
		gocv.Circle(&m.canvas, m.point(lm), style.Radius, style.Color, -1)
	}
}

// FillCircle draws a filled target.
func (m *MatSurface) FillCircle(x, y, radius float64, c color.RGBA) {
	gocv.Circle(&m.canvas, image.Pt(int(x), int(y)), int(radius), c, -1)
}

// DrawHUD writes score and time, plus the end or error banner.
func (m *MatSurface) DrawHUD(snap game.Snapshot) {
	hud := fmt.Sprintf("Score: %d   Time: %ds", snap.State.Score, snap.State.TimeLeftSeconds)
	gocv.PutText(&m.canvas, hud, image.Pt(20, 40), gocv.FontHersheySimplex, 1.0, hudColor, 2)

	switch snap.Phase {
	case game.PhaseEnded:
		m.banner("Game over!", fmt.Sprintf("Your score: %d", snap.State.Score))
	case game.PhaseError:
		m.banner("Error", snap.ErrorMessage)
	}
}

func (m *MatSurface) banner(title, detail string) {
	cx, cy := m.width/2, m.height/2
	gocv.PutText(&m.canvas, title, image.Pt(cx-120, cy-20), gocv.FontHersheySimplex, 1.5, bannerColor, 3)
	gocv.PutText(&m.canvas, detail, image.Pt(cx-200, cy+30), gocv.FontHersheySimplex, 0.8, hudColor, 2)
}

// Flush encodes the canvas as JPEG.
func (m *MatSurface) Flush() error {
	buf, err := gocv.IMEncode(gocv.JPEGFileExt, m.canvas)
	if err != nil {
		return fmt.Errorf("encode canvas: %w", err)
	}
	defer buf.Close()

	data := make([]byte, buf.Len())
	copy(data, buf.GetBytes())

	m.mu.Lock()
	m.jpeg = data
	m.mu.Unlock()
	return nil
}

// JPEG returns the last flushed canvas, or nil before the first flush.
func (m *MatSurface) JPEG() []byte {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.jpeg
}

// Close releases the canvas.
func (m *MatSurface) Close() error {
	return m.canvas.Close()
}

func (m *MatSurface) point(lm pose.Landmark) image.Point {
	return image.Pt(int(lm.X*float64(m.width)), int(lm.Y*float64(m.height)))
}

package render

import (
	"fmt"
	"image/color"

	"github.com/gdamore/tcell/v2"
	"gocv.io/x/gocv"

	"github.com/ayusman/posecatch/internal/game"
	"github.com/ayusman/posecatch/internal/pose"
)

// Glyphs used on the terminal grid.
const (
	connectorRune = '·'
	landmarkRune  = '●'
	targetRune    = '█'
)

// TerminalSurface draws a coarse view of the game onto a tcell screen. The
// video frame itself is not shown.
type TerminalSurface struct {
	screen       tcell.Screen
	canvasWidth  int
	canvasHeight int
}

// NewTerminalSurface wraps an initialized screen. canvasWidth and
// canvasHeight are the pixel dimensions target coordinates refer to.
func NewTerminalSurface(screen tcell.Screen, canvasWidth, canvasHeight int) *TerminalSurface {
	return &TerminalSurface{
		screen:       screen,
		canvasWidth:  canvasWidth,
		canvasHeight: canvasHeight,
	}
}

// Resize changes the pixel canvas the target coordinates refer to.
func (t *TerminalSurface) Resize(canvasWidth, canvasHeight int) {
	t.canvasWidth, t.canvasHeight = canvasWidth, canvasHeight
}

// Clear blanks the screen.
func (t *TerminalSurface) Clear() {
	t.screen.Clear()
}

// DrawFrame is a no-op; terminals get the overlay only.
func (t *TerminalSurface) DrawFrame(*gocv.Mat) {}

// DrawConnectors plots skeleton lines with Bresenham's algorithm.
func (t *TerminalSurface) DrawConnectors(landmarks []pose.Landmark, connections []pose.Connection, style LineStyle) {
	st := tcell.StyleDefault.Foreground(toTcell(style.Color))
	for _, c := range connections {
		if c.From >= len(landmarks) || c.To >= len(landmarks) {
			continue
		}
		x0, y0 := t.normCell(landmarks[c.From])
		x1, y1 := t.normCell(landmarks[c.To])
		t.line(x0, y0, x1, y1, st)
	}
}

// DrawLandmarks marks each landmark cell.
func (t *TerminalSurface) DrawLandmarks(landmarks []pose.Landmark, style PointStyle) {
	st := tcell.StyleDefault.Foreground(toTcell(style.Color))
	for _, lm := range landmarks {
		x, y := t.normCell(lm)
		t.set(x, y, landmarkRune, st)
	}
}

// FillCircle fills every cell whose center lies inside the circle.
func (t *TerminalSurface) FillCircle(x, y, radius float64, c color.RGBA) {
	cols, rows := t.screen.Size()
	if cols == 0 || rows == 0 || t.canvasWidth == 0 || t.canvasHeight == 0 {
		return
	}
	sx := float64(t.canvasWidth) / float64(cols)
	sy := float64(t.canvasHeight) / float64(rows)
	st := tcell.StyleDefault.Foreground(toTcell(c))

	cx0, cy0 := int((x-radius)/sx), int((y-radius)/sy)
	cx1, cy1 := int((x+radius)/sx), int((y+radius)/sy)
	drawn := false
	for cy := cy0; cy <= cy1; cy++ {
		for cx := cx0; cx <= cx1; cx++ {
			px := (float64(cx) + 0.5) * sx
			py := (float64(cy) + 0.5) * sy
			dx, dy := px-x, py-y
			if dx*dx+dy*dy <= radius*radius {
				t.set(cx, cy, targetRune, st)
				drawn = true
			}
		}
	}
	// Small targets still get one cell.
	if !drawn {
		t.set(int(x/sx), int(y/sy), targetRune, st)
	}
}

// DrawHUD writes the status line and, when relevant, the banner.
func (t *TerminalSurface) DrawHUD(snap game.Snapshot) {
	st := tcell.StyleDefault.Foreground(tcell.ColorWhite).Bold(true)
	t.text(0, 0, fmt.Sprintf(" Score: %d  Time: %ds ", snap.State.Score, snap.State.TimeLeftSeconds), st)

	cols, rows := t.screen.Size()
	switch snap.Phase {
	case game.PhaseEnded:
		t.centered(cols, rows/2, "Game over!", st.Foreground(tcell.ColorRed))
		t.centered(cols, rows/2+1, fmt.Sprintf("Your score: %d", snap.State.Score), st)
	case game.PhaseError:
		t.centered(cols, rows/2, "Error", st.Foreground(tcell.ColorRed))
		t.centered(cols, rows/2+1, snap.ErrorMessage, st)
	}
}

// Flush shows the composed screen.
func (t *TerminalSurface) Flush() error {
	t.screen.Show()
	return nil
}

func (t *TerminalSurface) normCell(lm pose.Landmark) (int, int) {
	cols, rows := t.screen.Size()
	return int(lm.X * float64(cols)), int(lm.Y * float64(rows))
}

func (t *TerminalSurface) set(x, y int, r rune, st tcell.Style) {
	cols, rows := t.screen.Size()
	if x < 0 || y < 0 || x >= cols || y >= rows {
		return
	}
	t.screen.SetContent(x, y, r, nil, st)
}

func (t *TerminalSurface) text(x, y int, s string, st tcell.Style) {
	for _, r := range s {
		t.set(x, y, r, st)
		x++
	}
}

func (t *TerminalSurface) centered(cols, y int, s string, st tcell.Style) {
	x := (cols - len([]rune(s))) / 2
	if x < 0 {
		x = 0
	}
	t.text(x, y, s, st)
}

func (t *TerminalSurface) line(x0, y0, x1, y1 int, st tcell.Style) {
	dx := abs(x1 - x0)
	dy := -abs(y1 - y0)
	sx, sy := 1, 1
	if x0 > x1 {
		sx = -1
	}
	if y0 > y1 {
		sy = -1
	}
	e := dx + dy
	for {
		t.set(x0, y0, connectorRune, st)
		if x0 == x1 && y0 == y1 {
			return
		}
		e2 := 2 * e
		if e2 >= dy {
			e += dy
			x0 += sx
		}
		if e2 <= dx {
			e += dx
			y0 += sy
		}
	}
}

func toTcell(c color.RGBA) tcell.Color {
	return tcell.NewRGBColor(int32(c.R), int32(c.G), int32(c.B))
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

package render

import (
	"image/color"
	"sync"

	"gocv.io/x/gocv"

	"github.com/ayusman/posecatch/internal/game"
	"github.com/ayusman/posecatch/internal/pose"
)

// Op names recorded by Recorder.
const (
	OpClear      = "clear"
	OpFrame      = "frame"
	OpConnectors = "connectors"
	OpLandmarks  = "landmarks"
	OpCircle     = "circle"
	OpHUD        = "hud"
	OpFlush      = "flush"
)

// Circle is a recorded FillCircle call.
type Circle struct {
	X, Y, Radius float64
	Color        color.RGBA
}

// Recorder is a Surface that records calls instead of drawing. It is used
// in tests and when no display is configured.
type Recorder struct {
	mu      sync.Mutex
	ops     []string
	circles []Circle
	last    game.Snapshot
	frames  int
}

// NewRecorder creates an empty Recorder.
func NewRecorder() *Recorder {
	return &Recorder{}
}

func (r *Recorder) record(op string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.ops = append(r.ops, op)
}

// Clear starts a new frame; previous circles are dropped.
func (r *Recorder) Clear() {
	r.mu.Lock()
	r.circles = nil
	r.mu.Unlock()
	r.record(OpClear)
}

func (r *Recorder) DrawFrame(*gocv.Mat) { r.record(OpFrame) }

func (r *Recorder) DrawConnectors([]pose.Landmark, []pose.Connection, LineStyle) {
	r.record(OpConnectors)
}

func (r *Recorder) DrawLandmarks([]pose.Landmark, PointStyle) { r.record(OpLandmarks) }

func (r *Recorder) FillCircle(x, y, radius float64, c color.RGBA) {
	r.mu.Lock()
	r.circles = append(r.circles, Circle{X: x, Y: y, Radius: radius, Color: c})
	r.mu.Unlock()
	r.record(OpCircle)
}

func (r *Recorder) DrawHUD(snap game.Snapshot) {
	r.mu.Lock()
	r.last = snap
	r.mu.Unlock()
	r.record(OpHUD)
}

func (r *Recorder) Flush() error {
	r.mu.Lock()
	r.frames++
	r.mu.Unlock()
	r.record(OpFlush)
	return nil
}

// Ops returns every recorded call in order.
func (r *Recorder) Ops() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]string(nil), r.ops...)
}

// Circles returns the targets drawn since the last Clear.
func (r *Recorder) Circles() []Circle {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]Circle(nil), r.circles...)
}

// LastSnapshot returns the snapshot passed to the latest DrawHUD.
func (r *Recorder) LastSnapshot() game.Snapshot {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.last
}

// Frames returns how many frames were flushed.
func (r *Recorder) Frames() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.frames
}

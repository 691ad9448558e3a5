// Package detector provides pose landmark sources for the game loop.
package detector

import (
	"errors"

	"gocv.io/x/gocv"

	"github.com/ayusman/posecatch/internal/pose"
)

// ErrSourceUnavailable is returned when the pose model cannot be loaded.
var ErrSourceUnavailable = errors.New("landmark source unavailable")

// Detector defines the interface for pose landmark sources.
type Detector interface {
	// Load prepares the underlying model so the first Detect does not pay
	// the start-up cost. It wraps ErrSourceUnavailable on failure.
	Load() error

	// Detect analyzes a video frame and returns the pose landmarks found in it.
	// A Result with nil PoseLandmarks means nothing was detected.
	Detect(frame *gocv.Mat) (*pose.Result, error)

	// Close releases any resources held by the detector. It is safe to call
	// on a detector that was never loaded.
	Close() error
}

// Config holds configuration options for pose detection.
type Config struct {
	// MinDetectionConf is the minimum detection confidence threshold (0.0-1.0).
	MinDetectionConf float64

	// MinTrackingConf is the minimum tracking confidence threshold (0.0-1.0).
	MinTrackingConf float64

	// ModelComplexity selects the pose model variant (0, 1 or 2).
	ModelComplexity int

	// SmoothLandmarks enables temporal filtering across frames.
	SmoothLandmarks bool
}

// DefaultConfig returns a Config with sensible default values.
func DefaultConfig() Config {
	return Config{
		MinDetectionConf: 0.7,
		MinTrackingConf:  0.5,
		ModelComplexity:  1,
		SmoothLandmarks:  true,
	}
}

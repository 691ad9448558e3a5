package capture

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func TestNewCamera(t *testing.T) {
	tests := []struct {
		name       string
		config     Config
		wantFPS    int
		wantWidth  int
		wantHeight int
	}{
		{
			name:       "default config",
			config:     DefaultConfig(),
			wantFPS:    DefaultFPS,
			wantWidth:  1280,
			wantHeight: 720,
		},
		{
			name:       "zero values fall back to defaults",
			config:     Config{DeviceID: 1},
			wantFPS:    DefaultFPS,
			wantWidth:  DefaultWidth,
			wantHeight: DefaultHeight,
		},
		{
			name:       "custom resolution",
			config:     Config{DeviceID: 2, Width: 1920, Height: 1680, FPS: 15},
			wantFPS:    15,
			wantWidth:  1920,
			wantHeight: 1680,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cam := NewCamera(tt.config)

			if cam == nil {
				t.Fatal("NewCamera returned nil")
			}

			if got := cam.FPS(); got != tt.wantFPS {
				t.Errorf("FPS() = %d, want %d", got, tt.wantFPS)
			}

			w, h := cam.Size()
			if w != tt.wantWidth || h != tt.wantHeight {
				t.Errorf("Size() = %dx%d, want %dx%d", w, h, tt.wantWidth, tt.wantHeight)
			}

			if cam.IsOpen() {
				t.Error("camera should not be running initially")
			}
		})
	}
}

func TestCamera_SetFPS(t *testing.T) {
	cam := NewCamera(DefaultConfig())

	tests := []struct {
		name    string
		fps     int
		wantFPS int
	}{
		{name: "set to 10", fps: 10, wantFPS: 10},
		{name: "set to 60", fps: 60, wantFPS: 60},
		{name: "set to 0 should keep previous", fps: 0, wantFPS: 60},
		{name: "set to negative should keep previous", fps: -5, wantFPS: 60},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cam.SetFPS(tt.fps)

			if got := cam.FPS(); got != tt.wantFPS {
				t.Errorf("FPS() = %d, want %d", got, tt.wantFPS)
			}
		})
	}
}

func TestCamera_OpenClose_Integration(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}

	cam := NewCamera(DefaultConfig())

	err := cam.Open()
	if err != nil {
		t.Skipf("skipping test - camera not available: %v", err)
	}

	if !cam.IsOpen() {
		t.Error("IsOpen() should return true after Open()")
	}

	mat, err := cam.ReadFrame()
	if err != nil {
		t.Errorf("ReadFrame() failed: %v", err)
	} else {
		w, h := cam.Size()
		if mat.Cols() != w || mat.Rows() != h {
			t.Logf("frame %dx%d differs from negotiated size %dx%d", mat.Cols(), mat.Rows(), w, h)
		}
		mat.Close()
	}

	if err := cam.Close(); err != nil {
		t.Errorf("Close() failed: %v", err)
	}

	if cam.IsOpen() {
		t.Error("IsOpen() should return false after Close()")
	}
}

func TestCamera_Open_MissingDevice(t *testing.T) {
	orig := probeDevice
	t.Cleanup(func() { probeDevice = orig })
	probeDevice = func(int) error {
		return probePath(filepath.Join(t.TempDir(), "video9"))
	}

	cam := NewCamera(Config{DeviceID: 9})
	err := cam.Open()
	if !errors.Is(err, ErrDeviceNotFound) {
		t.Fatalf("Open() error = %v, want ErrDeviceNotFound", err)
	}
	if cam.IsOpen() {
		t.Error("camera should not be open after a failed Open()")
	}
}

func TestProbePath(t *testing.T) {
	dir := t.TempDir()

	t.Run("existing readable node", func(t *testing.T) {
		path := filepath.Join(dir, "video0")
		if err := os.WriteFile(path, nil, 0644); err != nil {
			t.Fatalf("failed to create node: %v", err)
		}
		if err := probePath(path); err != nil {
			t.Errorf("probePath() error = %v", err)
		}
	})

	t.Run("missing node", func(t *testing.T) {
		err := probePath(filepath.Join(dir, "video1"))
		if !errors.Is(err, ErrDeviceNotFound) {
			t.Errorf("probePath() error = %v, want ErrDeviceNotFound", err)
		}
	})

	t.Run("unreadable node", func(t *testing.T) {
		if os.Geteuid() == 0 {
			t.Skip("root bypasses file permissions")
		}
		path := filepath.Join(dir, "video2")
		if err := os.WriteFile(path, nil, 0000); err != nil {
			t.Fatalf("failed to create node: %v", err)
		}
		err := probePath(path)
		if !errors.Is(err, ErrPermissionDenied) {
			t.Errorf("probePath() error = %v, want ErrPermissionDenied", err)
		}
	})
}

func TestCamera_ReadFrame_NotOpened(t *testing.T) {
	cam := NewCamera(DefaultConfig())

	_, err := cam.ReadFrame()
	if !errors.Is(err, ErrCameraNotOpen) {
		t.Errorf("ReadFrame() error = %v, want ErrCameraNotOpen", err)
	}
}

func TestCamera_Close_NotOpened(t *testing.T) {
	cam := NewCamera(DefaultConfig())

	if err := cam.Close(); err != nil {
		t.Errorf("Close() on not opened camera should return nil, got: %v", err)
	}
	// Twice is still fine.
	if err := cam.Close(); err != nil {
		t.Errorf("second Close() should return nil, got: %v", err)
	}
}

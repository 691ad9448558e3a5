package config

import (
	"path/filepath"
	"testing"
	"time"
)

var keys = []string{
	"POSECATCH_LISTEN", "POSECATCH_DATA_DIR", "POSECATCH_WEB_DIR",
	"POSECATCH_CAMERA", "POSECATCH_CAMERA_WIDTH", "POSECATCH_CAMERA_HEIGHT",
	"POSECATCH_CANVAS_WIDTH", "POSECATCH_CANVAS_HEIGHT",
	"POSECATCH_ROUND_SECONDS", "POSECATCH_HIT_MARGIN",
	"POSECATCH_FLOOR_INITIAL", "POSECATCH_FLOOR_BASE", "POSECATCH_FLOOR_DIVISOR",
	"POSECATCH_MIN_WRIST_VISIBILITY",
	"POSECATCH_DETECTION_CONFIDENCE", "POSECATCH_TRACKING_CONFIDENCE",
	"POSECATCH_TERMINAL", "POSECATCH_TRAY", "POSECATCH_SOUND",
}

func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range keys {
		t.Setenv(k, "")
	}
}

func TestLoad_Defaults(t *testing.T) {
	clearEnv(t)

	cfg := Load()

	if cfg.ListenAddr != ":8080" {
		t.Errorf("ListenAddr = %q, want %q", cfg.ListenAddr, ":8080")
	}
	if cfg.RoundDuration != 60*time.Second {
		t.Errorf("RoundDuration = %v, want 60s", cfg.RoundDuration)
	}
	if cfg.HitMargin != 30 {
		t.Errorf("HitMargin = %v, want 30", cfg.HitMargin)
	}
	if cfg.CameraWidth != 1280 || cfg.CameraHeight != 720 {
		t.Errorf("camera size = %dx%d, want 1280x720", cfg.CameraWidth, cfg.CameraHeight)
	}
	if cfg.CanvasWidth != 0 || cfg.CanvasHeight != 0 {
		t.Errorf("canvas override = %dx%d, want none", cfg.CanvasWidth, cfg.CanvasHeight)
	}
	if cfg.FloorInitial != 5 || cfg.FloorBase != 5 || cfg.FloorScoreDivisor != 20 {
		t.Errorf("floor = %d/%d/%d, want 5/5/20", cfg.FloorInitial, cfg.FloorBase, cfg.FloorScoreDivisor)
	}
	if cfg.DetectionConfidence != 0.7 || cfg.TrackingConfidence != 0.5 {
		t.Errorf("confidence = %v/%v, want 0.7/0.5", cfg.DetectionConfidence, cfg.TrackingConfidence)
	}
	if cfg.Terminal || !cfg.Tray || !cfg.Sound {
		t.Errorf("toggles = terminal:%v tray:%v sound:%v", cfg.Terminal, cfg.Tray, cfg.Sound)
	}
}

func TestLoad_CustomValues(t *testing.T) {
	clearEnv(t)
	t.Setenv("POSECATCH_LISTEN", ":9000")
	t.Setenv("POSECATCH_DATA_DIR", "/tmp/pc")
	t.Setenv("POSECATCH_CANVAS_WIDTH", "1920")
	t.Setenv("POSECATCH_CANVAS_HEIGHT", "1680")
	t.Setenv("POSECATCH_ROUND_SECONDS", "30")
	t.Setenv("POSECATCH_HIT_MARGIN", "12.5")
	t.Setenv("POSECATCH_TERMINAL", "true")
	t.Setenv("POSECATCH_SOUND", "0")

	cfg := Load()

	if cfg.ListenAddr != ":9000" {
		t.Errorf("ListenAddr = %q, want %q", cfg.ListenAddr, ":9000")
	}
	if cfg.CanvasWidth != 1920 || cfg.CanvasHeight != 1680 {
		t.Errorf("canvas = %dx%d, want 1920x1680", cfg.CanvasWidth, cfg.CanvasHeight)
	}
	if cfg.RoundDuration != 30*time.Second {
		t.Errorf("RoundDuration = %v, want 30s", cfg.RoundDuration)
	}
	if cfg.HitMargin != 12.5 {
		t.Errorf("HitMargin = %v, want 12.5", cfg.HitMargin)
	}
	if !cfg.Terminal || cfg.Sound {
		t.Errorf("toggles = terminal:%v sound:%v", cfg.Terminal, cfg.Sound)
	}
	if got, want := cfg.DBPath(), filepath.Join("/tmp/pc", "posecatch.db"); got != want {
		t.Errorf("DBPath() = %q, want %q", got, want)
	}
}

func TestLoad_FixedFloor(t *testing.T) {
	clearEnv(t)
	t.Setenv("POSECATCH_FLOOR_DIVISOR", "0")

	cfg := Load()
	if cfg.FloorInitial != 3 || cfg.FloorBase != 3 || cfg.FloorScoreDivisor != 0 {
		t.Errorf("floor = %d/%d/%d, want 3/3/0", cfg.FloorInitial, cfg.FloorBase, cfg.FloorScoreDivisor)
	}

	t.Setenv("POSECATCH_FLOOR_BASE", "4")
	cfg = Load()
	if cfg.FloorBase != 4 || cfg.FloorInitial != 3 {
		t.Errorf("floor = %d/%d, want base 4 initial 3", cfg.FloorBase, cfg.FloorInitial)
	}
}

func TestLoad_InvalidValues(t *testing.T) {
	clearEnv(t)
	t.Setenv("POSECATCH_ROUND_SECONDS", "abc")
	t.Setenv("POSECATCH_HIT_MARGIN", "wide")
	t.Setenv("POSECATCH_TRAY", "maybe")

	cfg := Load()

	if cfg.RoundDuration != 60*time.Second {
		t.Errorf("RoundDuration = %v, want 60s (fallback)", cfg.RoundDuration)
	}
	if cfg.HitMargin != 30 {
		t.Errorf("HitMargin = %v, want 30 (fallback)", cfg.HitMargin)
	}
	if !cfg.Tray {
		t.Error("Tray should fall back to true")
	}
}

// Package config loads runtime settings from the environment.
package config

import (
	"log"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds every runtime setting. Zero canvas dimensions mean "use the
// camera's native resolution".
type Config struct {
	ListenAddr string
	DataDir    string
	WebDir     string

	CameraDevice int
	CameraWidth  int
	CameraHeight int
	CanvasWidth  int
	CanvasHeight int

	RoundDuration      time.Duration
	HitMargin          float64
	FloorInitial       int
	FloorBase          int
	FloorScoreDivisor  int
	MinWristVisibility float64

	DetectionConfidence float64
	TrackingConfidence  float64

	Terminal bool
	Tray     bool
	Sound    bool
}

// Load reads an optional .env file from the working directory and then the
// POSECATCH_* environment variables. Unset or malformed values fall back to
// defaults.
func Load() Config {
	if err := godotenv.Load(); err == nil {
		log.Println("loaded settings from .env")
	}

	// Without score scaling the board keeps a fixed floor of three.
	divisor := getEnvInt("POSECATCH_FLOOR_DIVISOR", 20)
	floor := 5
	if divisor == 0 {
		floor = 3
	}

	return Config{
		ListenAddr: getEnv("POSECATCH_LISTEN", ":8080"),
		DataDir:    getEnv("POSECATCH_DATA_DIR", defaultDataDir()),
		WebDir:     getEnv("POSECATCH_WEB_DIR", "web"),

		CameraDevice: getEnvInt("POSECATCH_CAMERA", 0),
		CameraWidth:  getEnvInt("POSECATCH_CAMERA_WIDTH", 1280),
		CameraHeight: getEnvInt("POSECATCH_CAMERA_HEIGHT", 720),
		CanvasWidth:  getEnvInt("POSECATCH_CANVAS_WIDTH", 0),
		CanvasHeight: getEnvInt("POSECATCH_CANVAS_HEIGHT", 0),

		RoundDuration:      time.Duration(getEnvInt("POSECATCH_ROUND_SECONDS", 60)) * time.Second,
		HitMargin:          getEnvFloat("POSECATCH_HIT_MARGIN", 30),
		FloorInitial:       getEnvInt("POSECATCH_FLOOR_INITIAL", floor),
		FloorBase:          getEnvInt("POSECATCH_FLOOR_BASE", floor),
		FloorScoreDivisor:  divisor,
		MinWristVisibility: getEnvFloat("POSECATCH_MIN_WRIST_VISIBILITY", 0),

		DetectionConfidence: getEnvFloat("POSECATCH_DETECTION_CONFIDENCE", 0.7),
		TrackingConfidence:  getEnvFloat("POSECATCH_TRACKING_CONFIDENCE", 0.5),

		Terminal: getEnvBool("POSECATCH_TERMINAL", false),
		Tray:     getEnvBool("POSECATCH_TRAY", true),
		Sound:    getEnvBool("POSECATCH_SOUND", true),
	}
}

// DBPath is the SQLite file inside DataDir.
func (c Config) DBPath() string {
	return filepath.Join(c.DataDir, "posecatch.db")
}

func defaultDataDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".posecatch"
	}
	return filepath.Join(home, ".posecatch")
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
	}
	return fallback
}

func getEnvFloat(key string, fallback float64) float64 {
	if v := os.Getenv(key); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			return f
		}
	}
	return fallback
}

func getEnvBool(key string, fallback bool) bool {
	if v := os.Getenv(key); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			return b
		}
	}
	return fallback
}

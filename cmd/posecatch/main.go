package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"
	"os/exec"
	"os/signal"
	"path/filepath"
	"runtime"
	"syscall"

	"github.com/ayusman/posecatch/internal/app"
	"github.com/ayusman/posecatch/internal/audio"
	"github.com/ayusman/posecatch/internal/capture"
	"github.com/ayusman/posecatch/internal/config"
	"github.com/ayusman/posecatch/internal/detector"
	"github.com/ayusman/posecatch/internal/game"
	"github.com/ayusman/posecatch/internal/render"
	"github.com/ayusman/posecatch/internal/server"
	"github.com/ayusman/posecatch/internal/store"
	"github.com/ayusman/posecatch/internal/tray"
)

func main() {
	fmt.Println("Posecatch - catch targets with your wrists")

	cfg := config.Load()

	if err := os.MkdirAll(cfg.DataDir, 0755); err != nil {
		log.Fatalf("Failed to create data directory: %v", err)
	}

	if logFile := setupLogging(cfg.Terminal, cfg.DataDir); logFile != nil {
		defer logFile.Close()
	}

	st, err := store.New(cfg.DBPath())
	if err != nil {
		log.Fatalf("Failed to initialize store: %v", err)
	}
	defer st.Close()

	camera := capture.NewCamera(capture.Config{
		DeviceID: cfg.CameraDevice,
		Width:    cfg.CameraWidth,
		Height:   cfg.CameraHeight,
		FPS:      capture.DefaultFPS,
	})

	// A missing landmark source leaves the detector nil; the session then
	// reports an initialization failure instead of running without poses.
	var det detector.Detector
	mp, err := detector.NewMediaPipeDetector(detector.Config{
		MinDetectionConf: cfg.DetectionConfidence,
		MinTrackingConf:  cfg.TrackingConfidence,
		ModelComplexity:  1,
		SmoothLandmarks:  true,
	})
	if err != nil {
		log.Printf("MediaPipe not available: %v", err)
	} else {
		det = mp
		log.Println("Using MediaPipe pose detection")
	}

	var sound app.HitSounder = audio.Silent{}
	if cfg.Sound {
		player := audio.NewPlayer(0.4)
		if err := player.Initialize(); err != nil {
			log.Printf("Sound disabled: %v", err)
		} else {
			defer player.Close()
			sound = player
		}
	}

	canvas := render.NewMatSurface(cfg.CameraWidth, cfg.CameraHeight)
	defer canvas.Close()
	surfaces := []render.Surface{canvas}

	term, err := newTerminal(cfg.Terminal)
	if err != nil {
		log.Fatalf("Failed to open terminal: %v", err)
	}
	if term != nil {
		defer term.Close()
		surfaces = append(surfaces, term.Surface())
	}

	session := app.New(app.Config{
		Camera:       camera,
		Detector:     det,
		Store:        st,
		Sound:        sound,
		Surfaces:     surfaces,
		Game:         gameConfig(cfg),
		CanvasWidth:  cfg.CanvasWidth,
		CanvasHeight: cfg.CanvasHeight,
	})
	defer session.Close()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := session.Start(ctx); err != nil {
		log.Printf("Game unavailable: %s", session.Snapshot().ErrorMessage)
	}

	webDir := findWebDir(cfg.WebDir, cfg.DataDir)
	if webDir != "" {
		log.Printf("Serving static files from: %s", webDir)
	}

	srv := server.New(server.Config{
		StaticDir: webDir,
		Store:     st,
		Session:   session,
		Frames:    canvas,
	})

	go func() {
		log.Printf("Starting server on %s", cfg.ListenAddr)
		if err := srv.ListenAndServe(cfg.ListenAddr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("Server failed: %v", err)
		}
	}()

	switch {
	case term != nil:
		term.Run(ctx, session)
	case cfg.Tray:
		runTray(ctx, session, cfg.ListenAddr)
	default:
		<-ctx.Done()
	}

	log.Println("Shutting down")
}

const logFileName = "posecatch.log"

// setupLogging moves log output into the data directory while the terminal
// view owns the screen. It returns the open file, or nil when logging stays
// on stderr.
func setupLogging(terminal bool, dataDir string) *os.File {
	if !terminal {
		return nil
	}
	f, err := os.OpenFile(filepath.Join(dataDir, logFileName), os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		log.Printf("Logging disabled: %v", err)
		log.SetOutput(io.Discard)
		return nil
	}
	log.SetOutput(f)
	return f
}

func gameConfig(cfg config.Config) game.Config {
	gc := game.DefaultConfig()
	gc.Duration = cfg.RoundDuration
	gc.HitMargin = cfg.HitMargin
	gc.MinWristVisibility = cfg.MinWristVisibility
	gc.Floor = game.FloorPolicy{
		Initial:      cfg.FloorInitial,
		Base:         cfg.FloorBase,
		ScoreDivisor: cfg.FloorScoreDivisor,
	}
	return gc
}

func runTray(ctx context.Context, session *app.Session, addr string) {
	t := tray.New()
	t.OnRestart(func() {
		if err := session.Restart(); err != nil {
			log.Printf("Restart rejected: %v", err)
		}
	})
	t.OnOpen(func() {
		if err := openBrowser(localURL(addr)); err != nil {
			log.Printf("Failed to open browser: %v", err)
		}
	})

	updates, cancel := session.Subscribe()
	defer cancel()
	go t.Watch(updates)

	go func() {
		<-ctx.Done()
		t.Quit()
	}()

	t.Run()
}

func localURL(addr string) string {
	if len(addr) > 0 && addr[0] == ':' {
		return "http://localhost" + addr
	}
	return "http://" + addr
}

func openBrowser(url string) error {
	var cmd *exec.Cmd
	switch runtime.GOOS {
	case "darwin":
		cmd = exec.Command("open", url)
	case "windows":
		cmd = exec.Command("rundll32", "url.dll,FileProtocolHandler", url)
	default:
		cmd = exec.Command("xdg-open", url)
	}
	return cmd.Start()
}

// findWebDir returns the first existing web directory among the configured
// one, "../web", "../../web" and <data dir>/web, or "" when none exists.
func findWebDir(configured, dataDir string) string {
	candidates := []string{configured, "../web", "../../web", filepath.Join(dataDir, "web")}
	for _, p := range candidates {
		if p == "" {
			continue
		}
		if info, err := os.Stat(p); err == nil && info.IsDir() {
			absPath, err := filepath.Abs(p)
			if err == nil {
				return absPath
			}
			return p
		}
	}
	return ""
}

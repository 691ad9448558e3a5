// Package app runs a game session: it owns the camera, the landmark source
// and the round controller, and feeds rendered frames to the surfaces.
package app

import (
	"context"
	"errors"
	"fmt"
	"log"
	"math/rand"
	"sync"
	"sync/atomic"
	"time"

	"github.com/ayusman/posecatch/internal/capture"
	"github.com/ayusman/posecatch/internal/detector"
	"github.com/ayusman/posecatch/internal/game"
	"github.com/ayusman/posecatch/internal/render"
	"github.com/ayusman/posecatch/internal/store"
)

// Session timing defaults.
const (
	// DefaultTickInterval is one countdown step.
	DefaultTickInterval = time.Second
	// DefaultFrameInterval paces the capture loop at 30 fps.
	DefaultFrameInterval = time.Second / capture.DefaultFPS
	// inboxSize bounds queued events; producers block when it is full.
	inboxSize = 16
)

var (
	// ErrAlreadyStarted is returned by a second call to Start.
	ErrAlreadyStarted = errors.New("session already started")
	// ErrClosed is returned by Start after Close.
	ErrClosed = errors.New("session closed")
)

// HitSounder plays a cue for a collected target.
type HitSounder interface {
	Hit(points int)
}

// Config holds the collaborators and settings of a session.
type Config struct {
	Camera   capture.Camera
	Detector detector.Detector
	Store    *store.Store
	Sound    HitSounder
	Surfaces []render.Surface

	Game game.Config
	// CanvasWidth and CanvasHeight override the camera resolution when both
	// are positive.
	CanvasWidth  int
	CanvasHeight int

	TickInterval  time.Duration
	FrameInterval time.Duration
	Rand          *rand.Rand
}

// Session is one running game. All round mutations happen on a single loop
// goroutine; everything else talks to it through the inbox.
type Session struct {
	config   Config
	round    *game.Round
	renderer *render.Renderer

	inbox   chan event
	done    chan struct{}
	// gen counts rounds started on the loop; ticks from an older countdown
	// are dropped.
	gen       uint64
	tickReset chan uint64
	running atomic.Bool
	wg      sync.WaitGroup

	lifeMu    sync.Mutex
	started   bool
	closeOnce sync.Once

	mu       sync.RWMutex
	snapshot game.Snapshot
	subs     map[chan game.Snapshot]struct{}
}

// New creates an idle session.
func New(config Config) *Session {
	if config.TickInterval <= 0 {
		config.TickInterval = DefaultTickInterval
	}
	if config.FrameInterval <= 0 {
		config.FrameInterval = DefaultFrameInterval
	}

	s := &Session{
		config:   config,
		round:    game.NewRound(config.Game, config.Rand),
		renderer: render.New(),
		inbox:     make(chan event, inboxSize),
		tickReset: make(chan uint64, 1),
		done:      make(chan struct{}),
		subs:     make(map[chan game.Snapshot]struct{}),
	}
	s.round.OnHit = s.onHit
	s.round.OnEnd = s.onEnd
	s.snapshot = s.round.Snapshot()
	return s
}

// Start acquires the camera and the landmark source and begins the first
// round. When acquisition fails the session enters the terminal error phase
// and the error is returned; the snapshot then carries the user message.
func (s *Session) Start(ctx context.Context) error {
	s.lifeMu.Lock()
	defer s.lifeMu.Unlock()

	if s.started {
		return ErrAlreadyStarted
	}
	select {
	case <-s.done:
		return ErrClosed
	default:
	}
	s.started = true

	if err := s.acquire(ctx); err != nil {
		s.round.Fail(classifyError(err))
		snap := s.round.Snapshot()
		s.publish(snap)
		s.renderAll(nil, nil, snap)
		log.Printf("Session failed to start: %v", err)
		return err
	}

	width, height := s.canvasSize()
	if err := s.round.Start(width, height); err != nil {
		return err
	}
	s.publish(s.round.Snapshot())

	s.running.Store(true)
	s.wg.Add(3)
	go s.runLoop()
	go s.runTicker()
	go s.runPipeline()

	log.Printf("Round started on a %dx%d canvas", width, height)
	return nil
}

func (s *Session) acquire(ctx context.Context) error {
	if s.config.Camera == nil {
		return fmt.Errorf("no camera configured: %w", capture.ErrDeviceNotFound)
	}
	if err := s.config.Camera.Open(); err != nil {
		return err
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	if s.config.Detector == nil {
		return fmt.Errorf("no landmark source configured: %w", detector.ErrSourceUnavailable)
	}
	if err := s.config.Detector.Load(); err != nil {
		return fmt.Errorf("%w: %v", detector.ErrSourceUnavailable, err)
	}
	return nil
}

// classifyError maps an acquisition or load error to the kind shown to the
// player.
func classifyError(err error) game.ErrorKind {
	switch {
	case err == nil:
		return game.ErrorNone
	case errors.Is(err, capture.ErrPermissionDenied):
		return game.ErrorCameraPermissionDenied
	case errors.Is(err, capture.ErrDeviceNotFound):
		return game.ErrorCameraNotFound
	default:
		return game.ErrorInitialization
	}
}

func (s *Session) canvasSize() (int, int) {
	if s.config.CanvasWidth > 0 && s.config.CanvasHeight > 0 {
		return s.config.CanvasWidth, s.config.CanvasHeight
	}
	w, h := s.config.Camera.Size()
	if w <= 0 || h <= 0 {
		return 640, 480
	}
	return w, h
}

// Restart begins a new round after the previous one ended. It returns
// game.ErrInvalidTransition in any other phase.
func (s *Session) Restart() error {
	reply := make(chan error, 1)
	if !s.send(restartEvent{reply: reply}) {
		return fmt.Errorf("%w: session not running", game.ErrInvalidTransition)
	}
	select {
	case err := <-reply:
		return err
	case <-s.done:
		return fmt.Errorf("%w: session closed", game.ErrInvalidTransition)
	}
}

// Snapshot returns the latest published game state.
func (s *Session) Snapshot() game.Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.snapshot
}

// Subscribe returns a channel that receives every published snapshot, newest
// wins, and a function that ends the subscription.
func (s *Session) Subscribe() (<-chan game.Snapshot, func()) {
	ch := make(chan game.Snapshot, 1)

	s.mu.Lock()
	ch <- s.snapshot
	select {
	case <-s.done:
		close(ch)
		s.mu.Unlock()
		return ch, func() {}
	default:
	}
	s.subs[ch] = struct{}{}
	s.mu.Unlock()

	cancel := func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		if _, ok := s.subs[ch]; ok {
			delete(s.subs, ch)
			close(ch)
		}
	}
	return ch, cancel
}

// Close stops the ticker and the loops, then releases the landmark source
// and the camera. It is safe to call more than once and on a session that
// never started.
func (s *Session) Close() error {
	s.closeOnce.Do(func() {
		s.lifeMu.Lock()
		defer s.lifeMu.Unlock()

		s.running.Store(false)
		close(s.done)
		s.wg.Wait()

		if s.config.Detector != nil {
			if err := s.config.Detector.Close(); err != nil {
				log.Printf("Error closing landmark source: %v", err)
			}
		}
		if s.config.Camera != nil {
			if err := s.config.Camera.Close(); err != nil {
				log.Printf("Error closing camera: %v", err)
			}
		}

		s.mu.Lock()
		for ch := range s.subs {
			delete(s.subs, ch)
			close(ch)
		}
		s.mu.Unlock()

		log.Println("Session closed")
	})
	return nil
}

func (s *Session) publish(snap game.Snapshot) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.snapshot = snap
	for ch := range s.subs {
		select {
		case <-ch:
		default:
		}
		ch <- snap
	}
}

func (s *Session) onHit(h game.Hit) {
	if s.config.Sound != nil {
		s.config.Sound.Hit(h.Points)
	}
}

func (s *Session) onEnd(sum game.Summary) {
	log.Printf("Round %s over: score %d, %d hits", sum.ID, sum.Score, len(sum.Hits))
	if s.config.Store == nil {
		return
	}

	hits := make([]store.Hit, len(sum.Hits))
	for i, h := range sum.Hits {
		hits[i] = store.Hit{
			TargetID: h.TargetID,
			Color:    string(h.Color),
			Points:   h.Points,
			X:        h.X,
			Y:        h.Y,
			HitAt:    h.At,
		}
	}
	round := &store.Round{
		ID:              sum.ID,
		Score:           sum.Score,
		DurationSeconds: int(sum.Duration / time.Second),
		StartedAt:       sum.StartedAt,
		EndedAt:         sum.EndedAt,
	}
	if err := s.config.Store.Rounds().Save(round, hits); err != nil {
		log.Printf("Failed to save round %s: %v", sum.ID, err)
	}
}

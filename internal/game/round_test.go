package game

import (
	"errors"
	"math/rand"
	"testing"
	"time"

	"github.com/ayusman/posecatch/internal/pose"
)

const (
	testWidth  = 640
	testHeight = 480
)

func newActiveRound(t *testing.T) *Round {
	t.Helper()
	r := NewRound(DefaultConfig(), rand.New(rand.NewSource(7)))
	if err := r.Start(testWidth, testHeight); err != nil {
		t.Fatalf("Start() error = %v", err)
	}
	return r
}

// wristAt builds a detection with the left wrist at pixel (px, py).
func wristAt(px, py float64) *pose.Result {
	return &pose.Result{
		PoseLandmarks: pose.ReachingPose(px/testWidth, py/testHeight),
	}
}

func TestRound_Start(t *testing.T) {
	r := NewRound(DefaultConfig(), nil)

	if r.Phase() != PhaseIdle {
		t.Fatalf("new round phase = %s, want idle", r.Phase())
	}

	if err := r.Start(testWidth, testHeight); err != nil {
		t.Fatalf("Start() error = %v", err)
	}

	if r.Phase() != PhaseActive {
		t.Errorf("phase = %s, want active", r.Phase())
	}
	state := r.State()
	if state.Score != 0 || state.TimeLeftSeconds != 60 || !state.Active {
		t.Errorf("state = %+v, want score 0, 60s, active", state)
	}
	if got := len(r.Targets()); got != 5 {
		t.Errorf("initial targets = %d, want 5", got)
	}
	if r.Snapshot().RoundID == "" {
		t.Error("expected a round id")
	}

	if err := r.Start(testWidth, testHeight); !errors.Is(err, ErrInvalidTransition) {
		t.Errorf("second Start() error = %v, want ErrInvalidTransition", err)
	}
}

func TestRound_Start_InvalidCanvas(t *testing.T) {
	r := NewRound(DefaultConfig(), nil)
	if err := r.Start(0, 480); !errors.Is(err, ErrInvalidTransition) {
		t.Errorf("Start(0, 480) error = %v, want ErrInvalidTransition", err)
	}
	if r.Phase() != PhaseIdle {
		t.Errorf("phase = %s, want idle", r.Phase())
	}
}

func TestRound_ProcessFrame_Scenarios(t *testing.T) {
	tests := []struct {
		name      string
		px, py    float64
		wantHit   bool
		wantScore int
	}{
		{name: "wrist inside hit radius", px: 110, py: 100, wantHit: true, wantScore: 3},
		{name: "wrist far away", px: 200, py: 200, wantHit: false, wantScore: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := newActiveRound(t)
			r.targets = []Target{{ID: 1000, X: 100, Y: 100, Radius: 20, Color: ColorYellow, Points: 3}}

			hits := r.ProcessFrame(wristAt(tt.px, tt.py))

			if (len(hits) == 1) != tt.wantHit {
				t.Fatalf("hits = %v, wantHit %v", hits, tt.wantHit)
			}
			if got := r.State().Score; got != tt.wantScore {
				t.Errorf("score = %d, want %d", got, tt.wantScore)
			}

			stillThere := false
			for _, target := range r.Targets() {
				if target.ID == 1000 {
					stillThere = true
				}
			}
			if stillThere == tt.wantHit {
				t.Errorf("target present = %v after hit = %v", stillThere, tt.wantHit)
			}
			if got := len(r.Targets()); got < r.config.Floor.MinimumCount(r.State().Score) {
				t.Errorf("board has %d targets, below floor", got)
			}
		})
	}
}

func TestRound_ProcessFrame_ScoreIsSumOfHits(t *testing.T) {
	r := newActiveRound(t)
	values := []int{1, 3, 5, 2, 5}
	want := 0

	for i, v := range values {
		// Park the survivors far from the wrist so only the planted target is hit.
		for j := range r.targets {
			r.targets[j].X, r.targets[j].Y = 600, 440
		}
		id := 5000 + i
		r.targets = append(r.targets, Target{ID: id, X: 50, Y: 50, Radius: 15, Points: v})

		prev := r.State().Score
		hits := r.ProcessFrame(wristAt(50, 50))
		if len(hits) != 1 || hits[0].TargetID != id {
			t.Fatalf("frame %d hits = %+v, want only target %d", i, hits, id)
		}
		if r.State().Score < prev {
			t.Fatalf("score decreased from %d to %d", prev, r.State().Score)
		}
		want += v
	}

	if got := r.State().Score; got != want {
		t.Errorf("score = %d, want %d", got, want)
	}
}

func TestRound_ProcessFrame_MissingWrist(t *testing.T) {
	r := newActiveRound(t)
	before := r.Targets()

	for _, result := range []*pose.Result{
		nil,
		{},
		{PoseLandmarks: pose.UpperBodyPose()},
	} {
		if hits := r.ProcessFrame(result); hits != nil {
			t.Errorf("hits = %v, want none", hits)
		}
	}

	after := r.Targets()
	if len(after) != len(before) {
		t.Fatalf("target count changed from %d to %d", len(before), len(after))
	}
	for i := range before {
		if before[i] != after[i] {
			t.Errorf("target %d changed: %+v -> %+v", i, before[i], after[i])
		}
	}
}

func TestRound_ProcessFrame_FloorScalesWithScore(t *testing.T) {
	r := newActiveRound(t)
	r.targets = []Target{
		{ID: 9001, X: 100, Y: 100, Radius: 15, Points: 20},
		{ID: 9002, X: 105, Y: 100, Radius: 15, Points: 5},
	}

	r.ProcessFrame(wristAt(100, 100))

	if got := r.State().Score; got != 25 {
		t.Fatalf("score = %d, want 25", got)
	}
	if got := len(r.Targets()); got != 6 {
		t.Errorf("board = %d targets, want 6 (5 + 25/20)", got)
	}
}

func TestRound_Countdown(t *testing.T) {
	r := newActiveRound(t)

	var summary *Summary
	r.OnEnd = func(s Summary) { summary = &s }

	for i := 1; i < 60; i++ {
		if r.Tick() {
			t.Fatalf("round ended early at tick %d", i)
		}
	}
	if r.State().TimeLeftSeconds != 1 {
		t.Fatalf("time left after 59 ticks = %d, want 1", r.State().TimeLeftSeconds)
	}

	if !r.Tick() {
		t.Fatal("60th tick should end the round")
	}

	state := r.State()
	if state.TimeLeftSeconds != 0 || state.Active {
		t.Errorf("state = %+v, want 0s and inactive", state)
	}
	if r.Phase() != PhaseEnded {
		t.Errorf("phase = %s, want ended", r.Phase())
	}
	if summary == nil {
		t.Fatal("OnEnd not called")
	}
	if summary.ID != r.Snapshot().RoundID {
		t.Errorf("summary id = %s, want %s", summary.ID, r.Snapshot().RoundID)
	}

	// Further ticks are ignored.
	if r.Tick() || r.State().TimeLeftSeconds != 0 {
		t.Error("tick after end changed state")
	}
}

func TestRound_NoScoringAfterEnd(t *testing.T) {
	r := newActiveRound(t)
	for i := 0; i < 60; i++ {
		r.Tick()
	}

	r.targets = append(r.targets, Target{ID: 777, X: 100, Y: 100, Radius: 20, Points: 5})
	before := r.Targets()

	if hits := r.ProcessFrame(wristAt(100, 100)); hits != nil {
		t.Errorf("hits after end = %v", hits)
	}
	if r.State().Score != 0 {
		t.Errorf("score after end = %d, want 0", r.State().Score)
	}
	if len(r.Targets()) != len(before) {
		t.Error("board changed after end")
	}
}

func TestRound_Restart(t *testing.T) {
	r := newActiveRound(t)

	if err := r.Restart(); !errors.Is(err, ErrInvalidTransition) {
		t.Fatalf("Restart() while active error = %v, want ErrInvalidTransition", err)
	}

	r.targets = append(r.targets, Target{ID: 888, X: 100, Y: 100, Radius: 20, Points: 5})
	r.ProcessFrame(wristAt(100, 100))
	firstID := r.Snapshot().RoundID
	for i := 0; i < 60; i++ {
		r.Tick()
	}

	if err := r.Restart(); err != nil {
		t.Fatalf("Restart() error = %v", err)
	}

	state := r.State()
	if state.Score != 0 || state.TimeLeftSeconds != 60 || !state.Active {
		t.Errorf("state after restart = %+v, want 0, 60s, active", state)
	}
	if r.Phase() != PhaseActive {
		t.Errorf("phase = %s, want active", r.Phase())
	}
	targets := r.Targets()
	if len(targets) == 0 || len(targets) < r.config.Floor.MinimumCount(0) {
		t.Errorf("restart dealt %d targets, below floor", len(targets))
	}
	if r.Snapshot().RoundID == firstID {
		t.Error("restart should start a new round id")
	}
	for _, target := range targets {
		if target.ID == 888 {
			t.Error("restart kept a target from the previous round")
		}
	}
}

func TestRound_Fail(t *testing.T) {
	tests := []struct {
		name string
		kind ErrorKind
		want ErrorKind
	}{
		{name: "permission", kind: ErrorCameraPermissionDenied, want: ErrorCameraPermissionDenied},
		{name: "not found", kind: ErrorCameraNotFound, want: ErrorCameraNotFound},
		{name: "initialization", kind: ErrorInitialization, want: ErrorInitialization},
		{name: "unclassified", kind: ErrorNone, want: ErrorInitialization},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := NewRound(DefaultConfig(), nil)
			r.Fail(tt.kind)

			snap := r.Snapshot()
			if snap.Phase != PhaseError {
				t.Errorf("phase = %s, want error", snap.Phase)
			}
			if snap.ErrorKind != tt.want {
				t.Errorf("kind = %s, want %s", snap.ErrorKind, tt.want)
			}
			if snap.ErrorMessage == "" {
				t.Error("expected a user-facing message")
			}
			if err := r.Start(testWidth, testHeight); !errors.Is(err, ErrInvalidTransition) {
				t.Errorf("Start() after failure error = %v", err)
			}
			if err := r.Restart(); !errors.Is(err, ErrInvalidTransition) {
				t.Errorf("Restart() after failure error = %v", err)
			}
		})
	}
}

func TestErrorKind_MessagesDistinct(t *testing.T) {
	kinds := []ErrorKind{ErrorCameraPermissionDenied, ErrorCameraNotFound, ErrorInitialization}
	seen := make(map[string]bool)
	for _, k := range kinds {
		msg := k.Message()
		if msg == "" || seen[msg] {
			t.Errorf("kind %s has empty or duplicate message %q", k, msg)
		}
		seen[msg] = true
	}
}

func TestRound_HitTimestamps(t *testing.T) {
	r := newActiveRound(t)
	fixed := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	r.now = func() time.Time { return fixed }

	var observed []Hit
	r.OnHit = func(h Hit) { observed = append(observed, h) }

	r.targets = []Target{{ID: 1, X: 100, Y: 100, Radius: 20, Points: 1}}
	r.ProcessFrame(wristAt(100, 100))

	if len(observed) != 1 {
		t.Fatalf("OnHit called %d times, want 1", len(observed))
	}
	if !observed[0].At.Equal(fixed) {
		t.Errorf("hit time = %v, want %v", observed[0].At, fixed)
	}
}

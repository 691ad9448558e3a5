package game

import (
	"math/rand"
	"time"

	"github.com/google/uuid"

	"github.com/ayusman/posecatch/internal/pose"
)

// DefaultDuration is the length of a round.
const DefaultDuration = 60 * time.Second

// Phase is the state of the round controller.
type Phase string

const (
	// PhaseIdle is the state before the devices are ready.
	PhaseIdle Phase = "idle"
	// PhaseActive is a running countdown.
	PhaseActive Phase = "active"
	// PhaseEnded means the countdown reached zero.
	PhaseEnded Phase = "ended"
	// PhaseError is terminal; the process must be restarted.
	PhaseError Phase = "error"
)

// Config holds the tunable rules of a round.
type Config struct {
	Duration           time.Duration
	HitMargin          float64
	Floor              FloorPolicy
	Palette            []Kind
	MinWristVisibility float64
}

// DefaultConfig returns the standard rules.
func DefaultConfig() Config {
	return Config{
		Duration:  DefaultDuration,
		HitMargin: DefaultHitMargin,
		Floor:     DefaultFloorPolicy(),
		Palette:   DefaultPalette(),
	}
}

// State is the score and countdown of the current round.
type State struct {
	Score           int  `json:"score"`
	TimeLeftSeconds int  `json:"time_left_seconds"`
	Active          bool `json:"active"`
}

// Summary describes a finished round.
type Summary struct {
	ID        string
	Score     int
	Hits      []Hit
	Duration  time.Duration
	StartedAt time.Time
	EndedAt   time.Time
}

// Snapshot is an immutable copy of the controller for readers outside the
// update loop.
type Snapshot struct {
	Phase        Phase     `json:"phase"`
	RoundID      string    `json:"round_id,omitempty"`
	State        State     `json:"state"`
	Targets      []Target  `json:"targets"`
	Width        int       `json:"width"`
	Height       int       `json:"height"`
	ErrorKind    ErrorKind `json:"error_kind,omitempty"`
	ErrorMessage string    `json:"error_message,omitempty"`
}

// Round is the controller for one player's rounds. It is not safe for
// concurrent use; callers serialize access.
type Round struct {
	config  Config
	spawner *Spawner
	now     func() time.Time

	phase     Phase
	state     State
	targets   []Target
	width     int
	height    int
	roundID   string
	startedAt time.Time
	hits      []Hit
	errKind   ErrorKind

	// OnHit is called for every collected target.
	OnHit func(Hit)
	// OnEnd is called once when the countdown reaches zero.
	OnEnd func(Summary)
}

// NewRound creates an idle controller. A nil rng uses a time-seeded source.
func NewRound(config Config, rng *rand.Rand) *Round {
	if config.Duration <= 0 {
		config.Duration = DefaultDuration
	}
	if config.HitMargin < 0 {
		config.HitMargin = DefaultHitMargin
	}
	return &Round{
		config:  config,
		spawner: NewSpawner(config.Palette, rng),
		now:     time.Now,
		phase:   PhaseIdle,
	}
}

// Start moves Idle to Active on a width x height canvas: deals the initial
// target set and arms the countdown.
func (r *Round) Start(width, height int) error {
	if r.phase != PhaseIdle || width <= 0 || height <= 0 {
		return ErrInvalidTransition
	}
	r.width, r.height = width, height
	r.begin()
	return nil
}

// Restart moves Ended back to Active with a zero score, a full countdown and
// a new target set.
func (r *Round) Restart() error {
	if r.phase != PhaseEnded {
		return ErrInvalidTransition
	}
	r.begin()
	return nil
}

func (r *Round) begin() {
	r.phase = PhaseActive
	r.state = State{
		Score:           0,
		TimeLeftSeconds: r.durationSeconds(),
		Active:          true,
	}
	r.targets = r.spawner.Deal(r.config.Floor.InitialCount(), r.width, r.height)
	r.roundID = uuid.New().String()
	r.startedAt = r.now()
	r.hits = nil
}

// Tick advances the countdown by one second. It reports whether this tick
// ended the round.
func (r *Round) Tick() bool {
	if r.phase != PhaseActive {
		return false
	}

	r.state.TimeLeftSeconds--
	if r.state.TimeLeftSeconds > 0 {
		return false
	}

	r.state.TimeLeftSeconds = 0
	r.state.Active = false
	r.phase = PhaseEnded

	if r.OnEnd != nil {
		endedAt := r.now()
		r.OnEnd(Summary{
			ID:        r.roundID,
			Score:     r.state.Score,
			Hits:      append([]Hit(nil), r.hits...),
			Duration:  r.config.Duration,
			StartedAt: r.startedAt,
			EndedAt:   endedAt,
		})
	}
	return true
}

// ProcessFrame resolves one frame of landmarks against the board. Nothing
// changes unless the round is active and a wrist is present.
func (r *Round) ProcessFrame(result *pose.Result) []Hit {
	if r.phase != PhaseActive {
		return nil
	}

	wrist, ok := SelectWrist(result, r.config.MinWristVisibility)
	if !ok {
		return nil
	}

	px, py := ToPixels(wrist, r.width, r.height)
	survivors, hits := Collide(r.targets, px, py, r.config.HitMargin)

	at := r.now()
	for i := range hits {
		hits[i].At = at
		r.state.Score += hits[i].Points
	}
	r.hits = append(r.hits, hits...)

	r.targets = r.spawner.Replenish(survivors, r.config.Floor.MinimumCount(r.state.Score), r.width, r.height)

	if r.OnHit != nil {
		for _, h := range hits {
			r.OnHit(h)
		}
	}
	return hits
}

// Fail moves the controller to the terminal Error phase with the given
// failure kind. ErrorNone is recorded as ErrorInitialization.
func (r *Round) Fail(kind ErrorKind) {
	if r.phase == PhaseError {
		return
	}
	r.phase = PhaseError
	r.state.Active = false
	r.errKind = kind
	if r.errKind == ErrorNone {
		r.errKind = ErrorInitialization
	}
}

// Phase returns the current phase.
func (r *Round) Phase() Phase {
	return r.phase
}

// State returns score and countdown.
func (r *Round) State() State {
	return r.state
}

// Targets returns a copy of the current board.
func (r *Round) Targets() []Target {
	out := make([]Target, len(r.targets))
	copy(out, r.targets)
	return out
}

// Snapshot returns a copy of everything a reader may display.
func (r *Round) Snapshot() Snapshot {
	return Snapshot{
		Phase:        r.phase,
		RoundID:      r.roundID,
		State:        r.state,
		Targets:      r.Targets(),
		Width:        r.width,
		Height:       r.height,
		ErrorKind:    r.errKind,
		ErrorMessage: r.errKind.Message(),
	}
}

func (r *Round) durationSeconds() int {
	s := int(r.config.Duration / time.Second)
	if s < 1 {
		s = 1
	}
	return s
}

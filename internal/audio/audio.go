// Package audio plays short tones when targets are collected.
package audio

import (
	"math"
	"sync"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
	"github.com/gopxl/beep/generators"
	"github.com/gopxl/beep/speaker"
)

const (
	sampleRate = beep.SampleRate(48000)

	// BaseFrequency is the tone for a one-point target (E5).
	BaseFrequency = 659.25
	// ToneDuration is the length of a single hit tone.
	ToneDuration = 80 * time.Millisecond
)

// Player plays hit tones through the system speaker.
type Player struct {
	mu          sync.Mutex
	mixer       *beep.Mixer
	volume      float64
	initialized bool
}

// NewPlayer creates a player with the given linear volume in [0,1].
func NewPlayer(volume float64) *Player {
	return &Player{
		mixer:  &beep.Mixer{},
		volume: volume,
	}
}

// Initialize opens the speaker. Safe to call more than once.
func (p *Player) Initialize() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.initialized {
		return nil
	}

	if err := speaker.Init(sampleRate, sampleRate.N(100*time.Millisecond)); err != nil {
		return err
	}

	speaker.Play(p.mixer)
	p.initialized = true
	return nil
}

// Hit queues the tone for a target worth points. No-op before Initialize.
func (p *Player) Hit(points int) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.initialized {
		return
	}

	tone, err := HitTone(sampleRate, points, p.volume)
	if err != nil {
		return
	}
	speaker.Lock()
	p.mixer.Add(tone)
	speaker.Unlock()
}

// Close silences all queued tones.
func (p *Player) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.initialized {
		return nil
	}
	speaker.Lock()
	p.mixer.Clear()
	speaker.Unlock()
	p.initialized = false
	return nil
}

// HitTone builds a short sine tone that rises two semitones per point.
func HitTone(rate beep.SampleRate, points int, volume float64) (beep.Streamer, error) {
	if points < 1 {
		points = 1
	}
	freq := BaseFrequency * math.Pow(2, float64(2*(points-1))/12)

	sine, err := generators.SineTone(rate, freq)
	if err != nil {
		return nil, err
	}
	tone := beep.Take(rate.N(ToneDuration), sine)

	if volume <= 0 {
		return &effects.Volume{Streamer: tone, Base: 2, Silent: true}, nil
	}
	return &effects.Volume{Streamer: tone, Base: 2, Volume: math.Log2(volume)}, nil
}

// Silent discards hit cues.
type Silent struct{}

// Hit does nothing.
func (Silent) Hit(int) {}

// Close does nothing.
func (Silent) Close() error { return nil }

package app

import (
	"log"
	"time"

	"gocv.io/x/gocv"

	"github.com/ayusman/posecatch/internal/game"
	"github.com/ayusman/posecatch/internal/pose"
)

type event any

type tickEvent struct {
	gen uint64
}

type frameEvent struct {
	result *pose.Result
	reply  chan game.Snapshot
}

type restartEvent struct {
	reply chan error
}

// send queues ev for the loop. It reports false when the loop is not running.
func (s *Session) send(ev event) bool {
	if !s.running.Load() {
		return false
	}
	select {
	case s.inbox <- ev:
		return true
	case <-s.done:
		return false
	}
}

// runLoop owns the round. Each event is applied completely before the next
// one is read, so ticks and frames never interleave mid-update.
func (s *Session) runLoop() {
	defer s.wg.Done()

	for {
		select {
		case <-s.done:
			return
		case ev := <-s.inbox:
			s.apply(ev)
		}
	}
}

func (s *Session) apply(ev event) {
	var restartErr error

	switch e := ev.(type) {
	case tickEvent:
		if e.gen == s.gen {
			s.round.Tick()
		}
	case frameEvent:
		s.round.ProcessFrame(e.result)
	case restartEvent:
		restartErr = s.round.Restart()
		if restartErr == nil {
			s.gen++
			s.resetTicker(s.gen)
			log.Println("Round restarted")
		}
	}

	snap := s.round.Snapshot()
	s.publish(snap)

	switch e := ev.(type) {
	case frameEvent:
		e.reply <- snap
	case restartEvent:
		e.reply <- restartErr
	}
}

// resetTicker restarts the countdown schedule for round gen. Only the loop
// sends, so draining first keeps the send from blocking.
func (s *Session) resetTicker(gen uint64) {
	select {
	case <-s.tickReset:
	default:
	}
	s.tickReset <- gen
}

// runTicker drives the countdown. A restart resets the schedule so the new
// round gets a full first second.
func (s *Session) runTicker() {
	defer s.wg.Done()

	ticker := time.NewTicker(s.config.TickInterval)
	defer ticker.Stop()

	var gen uint64
	for {
		select {
		case <-s.done:
			return
		case gen = <-s.tickReset:
			ticker.Reset(s.config.TickInterval)
		case <-ticker.C:
			if !s.send(tickEvent{gen: gen}) {
				return
			}
		}
	}
}

// runPipeline reads frames, asks the landmark source for a pose, hands the
// result to the loop and renders the frame with the state that came back.
// Read and detect failures skip the frame.
func (s *Session) runPipeline() {
	defer s.wg.Done()

	ticker := time.NewTicker(s.config.FrameInterval)
	defer ticker.Stop()

	readFailing := false

	for {
		select {
		case <-s.done:
			return
		case <-ticker.C:
		}

		frame, err := s.config.Camera.ReadFrame()
		if err != nil {
			if !readFailing {
				log.Printf("Error reading frame: %v", err)
				readFailing = true
			}
			continue
		}
		readFailing = false

		result, err := s.config.Detector.Detect(frame)
		if err != nil {
			log.Printf("Error detecting pose: %v", err)
			frame.Close()
			continue
		}

		reply := make(chan game.Snapshot, 1)
		if !s.send(frameEvent{result: result, reply: reply}) {
			frame.Close()
			return
		}

		var snap game.Snapshot
		select {
		case snap = <-reply:
		case <-s.done:
			frame.Close()
			return
		}

		s.renderAll(frame, result, snap)
		frame.Close()
	}
}

func (s *Session) renderAll(frame *gocv.Mat, result *pose.Result, snap game.Snapshot) {
	for _, surface := range s.config.Surfaces {
		if err := s.renderer.Render(surface, frame, result, snap); err != nil {
			log.Printf("Error rendering frame: %v", err)
		}
	}
}

package server

import (
	"sync"

	"github.com/ayusman/posecatch/internal/game"
)

// fakeSession is an in-memory Session whose snapshot tests set directly.
type fakeSession struct {
	mu   sync.Mutex
	snap game.Snapshot
	subs []chan game.Snapshot
}

func newFakeSession(snap game.Snapshot) *fakeSession {
	return &fakeSession{snap: snap}
}

func (f *fakeSession) Snapshot() game.Snapshot {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.snap
}

func (f *fakeSession) Restart() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.snap.Phase != game.PhaseEnded {
		return game.ErrInvalidTransition
	}
	f.snap.Phase = game.PhaseActive
	f.snap.State = game.State{TimeLeftSeconds: 60, Active: true}
	return nil
}

func (f *fakeSession) Subscribe() (<-chan game.Snapshot, func()) {
	f.mu.Lock()
	defer f.mu.Unlock()
	ch := make(chan game.Snapshot, 8)
	ch <- f.snap
	f.subs = append(f.subs, ch)
	return ch, func() {}
}

// set replaces the snapshot and pushes it to subscribers.
func (f *fakeSession) set(snap game.Snapshot) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.snap = snap
	for _, ch := range f.subs {
		ch <- snap
	}
}

// staticFrames always returns the same JPEG payload.
type staticFrames struct {
	data []byte
}

func (s staticFrames) JPEG() []byte { return s.data }

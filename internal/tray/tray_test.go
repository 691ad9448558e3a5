package tray

import (
	"testing"

	"github.com/ayusman/posecatch/internal/game"
)

func TestStatusTitle(t *testing.T) {
	tests := []struct {
		name string
		snap game.Snapshot
		want string
	}{
		{
			name: "idle",
			snap: game.Snapshot{Phase: game.PhaseIdle},
			want: "Starting camera...",
		},
		{
			name: "active",
			snap: game.Snapshot{Phase: game.PhaseActive, State: game.State{Score: 12, TimeLeftSeconds: 41, Active: true}},
			want: "Score: 12 · Time: 41s",
		},
		{
			name: "ended",
			snap: game.Snapshot{Phase: game.PhaseEnded, State: game.State{Score: 30}},
			want: "Game over! Your score: 30",
		},
		{
			name: "error",
			snap: game.Snapshot{Phase: game.PhaseError, ErrorMessage: "No camera found."},
			want: "Error: No camera found.",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := StatusTitle(tt.snap); got != tt.want {
				t.Errorf("StatusTitle() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestTray_SetStatusBeforeReady(t *testing.T) {
	tr := New()
	// No menu yet; must not panic.
	tr.SetStatus(game.Snapshot{Phase: game.PhaseEnded})

	updates := make(chan game.Snapshot, 2)
	updates <- game.Snapshot{Phase: game.PhaseActive}
	close(updates)
	tr.Watch(updates)
}

func TestTray_Callbacks(t *testing.T) {
	tr := New()
	restarted, opened := 0, 0
	tr.OnRestart(func() { restarted++ })
	tr.OnOpen(func() { opened++ })

	tr.call(func() func() { return tr.onRestart })
	tr.call(func() func() { return tr.onOpen })
	tr.call(func() func() { return tr.onQuit })

	if restarted != 1 || opened != 1 {
		t.Errorf("restarted=%d opened=%d, want 1 and 1", restarted, opened)
	}
}

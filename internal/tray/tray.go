// Package tray shows the running score in the system tray.
package tray

import (
	"fmt"
	"sync"

	"github.com/getlantern/systray"

	"github.com/ayusman/posecatch/internal/game"
)

// Tray represents the system tray application.
type Tray struct {
	onRestart func()
	onOpen    func()
	onQuit    func()
	mu        sync.RWMutex

	// Menu items stored for later updates
	menuStatus  *systray.MenuItem
	menuRestart *systray.MenuItem
}

// New creates a new Tray instance.
func New() *Tray {
	return &Tray{}
}

// OnRestart sets the callback for the "Play again" menu item.
func (t *Tray) OnRestart(fn func()) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.onRestart = fn
}

// OnOpen sets the callback for the "Open game" menu item.
func (t *Tray) OnOpen(fn func()) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.onOpen = fn
}

// OnQuit sets the callback function to be called when the quit menu item is clicked.
func (t *Tray) OnQuit(fn func()) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.onQuit = fn
}

// Run starts the system tray application.
// This function blocks until systray.Quit() is called.
func (t *Tray) Run() {
	systray.Run(t.onReady, t.onExit)
}

// onReady is called when the system tray is ready.
// It sets up the menu structure.
func (t *Tray) onReady() {
	systray.SetTitle("Posecatch")
	systray.SetTooltip("Posecatch - catch targets with your wrists")

	t.mu.Lock()
	t.menuStatus = systray.AddMenuItem(StatusTitle(game.Snapshot{Phase: game.PhaseIdle}), "Current round")
	t.menuStatus.Disable()
	systray.AddSeparator()

	t.menuRestart = systray.AddMenuItem("Play again", "Start a new round")
	t.menuRestart.Disable()
	t.mu.Unlock()

	menuOpen := systray.AddMenuItem("Open game...", "Open the game in a browser")
	systray.AddSeparator()

	menuQuit := systray.AddMenuItem("Quit", "Quit Posecatch")

	// Handle menu item clicks in a separate goroutine
	go func() {
		for {
			select {
			case <-t.menuRestart.ClickedCh:
				t.call(func() func() { return t.onRestart })
			case <-menuOpen.ClickedCh:
				t.call(func() func() { return t.onOpen })
			case <-menuQuit.ClickedCh:
				t.handleQuit()
				return
			}
		}
	}()
}

// onExit is called when the system tray is about to exit.
func (t *Tray) onExit() {}

// call runs the callback chosen by pick outside the lock.
func (t *Tray) call(pick func() func()) {
	t.mu.RLock()
	callback := pick()
	t.mu.RUnlock()

	if callback != nil {
		callback()
	}
}

// handleQuit handles the quit menu item click.
func (t *Tray) handleQuit() {
	t.call(func() func() { return t.onQuit })
	systray.Quit()
}

// SetStatus updates the status line and enables "Play again" once the
// round has ended.
func (t *Tray) SetStatus(snap game.Snapshot) {
	t.mu.RLock()
	defer t.mu.RUnlock()

	if t.menuStatus == nil {
		return
	}
	t.menuStatus.SetTitle(StatusTitle(snap))
	systray.SetTitle(fmt.Sprintf("%d", snap.State.Score))

	if snap.Phase == game.PhaseEnded {
		t.menuRestart.Enable()
	} else {
		t.menuRestart.Disable()
	}
}

// Watch applies every snapshot from updates until the channel closes.
func (t *Tray) Watch(updates <-chan game.Snapshot) {
	for snap := range updates {
		t.SetStatus(snap)
	}
}

// StatusTitle is the menu line for a snapshot.
func StatusTitle(snap game.Snapshot) string {
	switch snap.Phase {
	case game.PhaseActive:
		return fmt.Sprintf("Score: %d · Time: %ds", snap.State.Score, snap.State.TimeLeftSeconds)
	case game.PhaseEnded:
		return fmt.Sprintf("Game over! Your score: %d", snap.State.Score)
	case game.PhaseError:
		return "Error: " + snap.ErrorMessage
	default:
		return "Starting camera..."
	}
}

// Quit stops the tray loop, making Run return.
func (t *Tray) Quit() {
	systray.Quit()
}

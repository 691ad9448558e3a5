package main

import (
	"context"
	"log"

	"github.com/gdamore/tcell/v2"

	"github.com/ayusman/posecatch/internal/app"
	"github.com/ayusman/posecatch/internal/render"
)

// terminal is the optional text-mode view: 'r' restarts an ended round,
// Esc, Ctrl-C or 'q' quits.
type terminal struct {
	screen  tcell.Screen
	surface *render.TerminalSurface
}

// newTerminal opens the screen when enabled, otherwise it returns nil.
func newTerminal(enabled bool) (*terminal, error) {
	if !enabled {
		return nil, nil
	}
	screen, err := tcell.NewScreen()
	if err != nil {
		return nil, err
	}
	if err := screen.Init(); err != nil {
		return nil, err
	}
	screen.Clear()
	screen.Show()

	return &terminal{
		screen:  screen,
		surface: render.NewTerminalSurface(screen, 0, 0),
	}, nil
}

func (t *terminal) Surface() render.Surface {
	return t.surface
}

// Run handles key presses until the user quits or ctx is done.
func (t *terminal) Run(ctx context.Context, session *app.Session) {
	events := make(chan tcell.Event, 16)
	go func() {
		for {
			ev := t.screen.PollEvent()
			if ev == nil {
				close(events)
				return
			}
			events <- ev
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return
		case ev, ok := <-events:
			if !ok || !t.handle(ev, session) {
				return
			}
		}
	}
}

func (t *terminal) handle(ev tcell.Event, session *app.Session) bool {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		if ev.Key() == tcell.KeyEscape || ev.Key() == tcell.KeyCtrlC {
			return false
		}
		if ev.Key() == tcell.KeyRune {
			switch ev.Rune() {
			case 'q':
				return false
			case 'r':
				if err := session.Restart(); err != nil {
					log.Printf("Restart rejected: %v", err)
				}
			}
		}
	case *tcell.EventResize:
		t.screen.Sync()
	}
	return true
}

// Close restores the terminal.
func (t *terminal) Close() {
	t.screen.Fini()
}

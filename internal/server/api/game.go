package api

import (
	"errors"
	"net/http"

	"github.com/ayusman/posecatch/internal/game"
)

// Game is the running session as seen by the HTTP API.
type Game interface {
	Snapshot() game.Snapshot
	Restart() error
}

// StateHandler serves GET /api/state.
type StateHandler struct {
	game Game
}

// NewStateHandler creates a StateHandler for g.
func NewStateHandler(g Game) *StateHandler {
	return &StateHandler{game: g}
}

func (h *StateHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}
	writeJSON(w, http.StatusOK, h.game.Snapshot())
}

// RestartHandler serves POST /api/round/restart. A restart is accepted only
// after a round has ended.
type RestartHandler struct {
	game Game
}

// NewRestartHandler creates a RestartHandler for g.
func NewRestartHandler(g Game) *RestartHandler {
	return &RestartHandler{game: g}
}

func (h *RestartHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	if err := h.game.Restart(); err != nil {
		if errors.Is(err, game.ErrInvalidTransition) {
			writeError(w, http.StatusConflict, "Round has not ended")
			return
		}
		writeError(w, http.StatusInternalServerError, "Failed to restart round")
		return
	}

	writeJSON(w, http.StatusAccepted, h.game.Snapshot())
}

package api

import (
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/ayusman/posecatch/internal/store"
)

// RoundHandler serves the round history:
//
//	GET    /api/rounds?limit=N&order=recent|best
//	GET    /api/rounds/{id}
//	DELETE /api/rounds/{id}
//	GET    /api/rounds/{id}/hits
type RoundHandler struct {
	store *store.Store
}

// NewRoundHandler creates a RoundHandler backed by s.
func NewRoundHandler(s *store.Store) *RoundHandler {
	return &RoundHandler{store: s}
}

func (h *RoundHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	path := strings.TrimPrefix(r.URL.Path, "/api/rounds")
	path = strings.Trim(path, "/")

	if path == "" {
		if r.Method != http.MethodGet {
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
			return
		}
		h.list(w, r)
		return
	}

	// /api/rounds/{id}/hits
	if id, ok := strings.CutSuffix(path, "/hits"); ok {
		if r.Method != http.MethodGet {
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
			return
		}
		h.hits(w, id)
		return
	}

	if strings.Contains(path, "/") {
		writeError(w, http.StatusNotFound, "Not found")
		return
	}

	switch r.Method {
	case http.MethodGet:
		h.get(w, path)
	case http.MethodDelete:
		h.delete(w, path)
	default:
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
	}
}

type roundResponse struct {
	ID              string `json:"id"`
	Score           int    `json:"score"`
	Hits            int    `json:"hits"`
	DurationSeconds int    `json:"duration_seconds"`
	StartedAt       string `json:"started_at"`
	EndedAt         string `json:"ended_at"`
}

type listRoundsResponse struct {
	Rounds []roundResponse `json:"rounds"`
}

type hitsResponse struct {
	RoundID string      `json:"round_id"`
	Hits    []store.Hit `json:"hits"`
}

func toRoundResponse(rd *store.Round) roundResponse {
	return roundResponse{
		ID:              rd.ID,
		Score:           rd.Score,
		Hits:            rd.Hits,
		DurationSeconds: rd.DurationSeconds,
		StartedAt:       rd.StartedAt.Format(time.RFC3339),
		EndedAt:         rd.EndedAt.Format(time.RFC3339),
	}
}

// list handles GET /api/rounds.
func (h *RoundHandler) list(w http.ResponseWriter, r *http.Request) {
	limit := 0
	if v := r.URL.Query().Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 0 {
			writeError(w, http.StatusBadRequest, "Invalid limit")
			return
		}
		limit = n
	}

	var (
		rounds []*store.Round
		err    error
	)
	switch order := r.URL.Query().Get("order"); order {
	case "", "recent":
		rounds, err = h.store.Rounds().List(limit)
	case "best":
		rounds, err = h.store.Rounds().Best(limit)
	default:
		writeError(w, http.StatusBadRequest, "Invalid order")
		return
	}
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to list rounds")
		return
	}

	response := listRoundsResponse{
		Rounds: make([]roundResponse, 0, len(rounds)),
	}
	for _, rd := range rounds {
		response.Rounds = append(response.Rounds, toRoundResponse(rd))
	}

	writeJSON(w, http.StatusOK, response)
}

// get handles GET /api/rounds/{id}.
func (h *RoundHandler) get(w http.ResponseWriter, id string) {
	rd, err := h.store.Rounds().GetByID(id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			writeError(w, http.StatusNotFound, "Round not found")
			return
		}
		writeError(w, http.StatusInternalServerError, "Failed to get round")
		return
	}

	writeJSON(w, http.StatusOK, toRoundResponse(rd))
}

// delete handles DELETE /api/rounds/{id}.
func (h *RoundHandler) delete(w http.ResponseWriter, id string) {
	if err := h.store.Rounds().Delete(id); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			writeError(w, http.StatusNotFound, "Round not found")
			return
		}
		writeError(w, http.StatusInternalServerError, "Failed to delete round")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// hits handles GET /api/rounds/{id}/hits.
func (h *RoundHandler) hits(w http.ResponseWriter, id string) {
	if _, err := h.store.Rounds().GetByID(id); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			writeError(w, http.StatusNotFound, "Round not found")
			return
		}
		writeError(w, http.StatusInternalServerError, "Failed to get round")
		return
	}

	hits, err := h.store.Hits().GetByRoundID(id)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to list hits")
		return
	}

	writeJSON(w, http.StatusOK, hitsResponse{RoundID: id, Hits: hits})
}

// StatsHandler serves GET /api/stats: the best score and points per color.
type StatsHandler struct {
	store *store.Store
}

// NewStatsHandler creates a StatsHandler backed by s.
func NewStatsHandler(s *store.Store) *StatsHandler {
	return &StatsHandler{store: s}
}

type statsResponse struct {
	BestScore     int            `json:"best_score"`
	PointsByColor map[string]int `json:"points_by_color"`
}

func (h *StatsHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	best, err := h.store.Rounds().Best(1)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to load stats")
		return
	}
	byColor, err := h.store.Hits().PointsByColor()
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to load stats")
		return
	}

	response := statsResponse{PointsByColor: byColor}
	if len(best) > 0 {
		response.BestScore = best[0].Score
	}
	writeJSON(w, http.StatusOK, response)
}

package store

import (
	"database/sql"
	"time"
)

// Hit is one collected target within a round.
type Hit struct {
	ID       int64     `json:"id"`
	RoundID  string    `json:"round_id"`
	Sequence int       `json:"sequence"`
	TargetID int       `json:"target_id"`
	Color    string    `json:"color"`
	Points   int       `json:"points"`
	X        float64   `json:"x"`
	Y        float64   `json:"y"`
	HitAt    time.Time `json:"hit_at"`
}

// HitRepository reads the hits of stored rounds.
type HitRepository struct {
	db *sql.DB
}

// Hits returns the hit repository for this store.
func (s *Store) Hits() *HitRepository {
	return &HitRepository{db: s.db}
}

func insertHits(tx *sql.Tx, roundID string, hits []Hit) error {
	if len(hits) == 0 {
		return nil
	}

	stmt, err := tx.Prepare(
		`INSERT INTO round_hits (round_id, sequence, target_id, color, points, x, y, hit_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return err
	}
	defer stmt.Close()

	for i, h := range hits {
		if _, err := stmt.Exec(roundID, i, h.TargetID, h.Color, h.Points, h.X, h.Y, h.HitAt); err != nil {
			return err
		}
	}
	return nil
}

// GetByRoundID returns the hits of a round in the order they happened.
func (r *HitRepository) GetByRoundID(roundID string) ([]Hit, error) {
	rows, err := r.db.Query(
		`SELECT id, round_id, sequence, target_id, color, points, x, y, hit_at
		 FROM round_hits
		 WHERE round_id = ?
		 ORDER BY sequence`,
		roundID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	hits := []Hit{}
	for rows.Next() {
		var h Hit
		if err := rows.Scan(&h.ID, &h.RoundID, &h.Sequence, &h.TargetID, &h.Color, &h.Points, &h.X, &h.Y, &h.HitAt); err != nil {
			return nil, err
		}
		hits = append(hits, h)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return hits, nil
}

// PointsByColor sums collected points per target color across all rounds.
func (r *HitRepository) PointsByColor() (map[string]int, error) {
	rows, err := r.db.Query(`SELECT color, SUM(points) FROM round_hits GROUP BY color`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	totals := map[string]int{}
	for rows.Next() {
		var color string
		var points int
		if err := rows.Scan(&color, &points); err != nil {
			return nil, err
		}
		totals[color] = points
	}

	return totals, rows.Err()
}

package store

import (
	"database/sql"
	"errors"
	"time"
)

// ErrNotFound is returned when a requested resource does not exist.
var ErrNotFound = errors.New("not found")

// Round is a finished round.
type Round struct {
	ID              string    `json:"id"`
	Score           int       `json:"score"`
	Hits            int       `json:"hits"`
	DurationSeconds int       `json:"duration_seconds"`
	StartedAt       time.Time `json:"started_at"`
	EndedAt         time.Time `json:"ended_at"`
}

// RoundRepository reads and writes finished rounds.
type RoundRepository struct {
	db *sql.DB
}

// Rounds returns the round repository for this store.
func (s *Store) Rounds() *RoundRepository {
	return &RoundRepository{db: s.db}
}

// Save inserts a round together with its hits in one transaction.
func (r *RoundRepository) Save(round *Round, hits []Hit) error {
	tx, err := r.db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	round.Hits = len(hits)
	_, err = tx.Exec(
		`INSERT INTO rounds (id, score, hits, duration_seconds, started_at, ended_at)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		round.ID, round.Score, round.Hits, round.DurationSeconds, round.StartedAt, round.EndedAt,
	)
	if err != nil {
		return err
	}

	if err := insertHits(tx, round.ID, hits); err != nil {
		return err
	}

	return tx.Commit()
}

// GetByID retrieves a round by its ID.
func (r *RoundRepository) GetByID(id string) (*Round, error) {
	rd := &Round{}

	err := r.db.QueryRow(
		`SELECT id, score, hits, duration_seconds, started_at, ended_at
		 FROM rounds WHERE id = ?`,
		id,
	).Scan(&rd.ID, &rd.Score, &rd.Hits, &rd.DurationSeconds, &rd.StartedAt, &rd.EndedAt)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	return rd, nil
}

// List returns up to limit rounds, newest first. A limit <= 0 returns all.
func (r *RoundRepository) List(limit int) ([]*Round, error) {
	if limit <= 0 {
		limit = -1
	}
	return r.query(
		`SELECT id, score, hits, duration_seconds, started_at, ended_at
		 FROM rounds ORDER BY ended_at DESC LIMIT ?`,
		limit,
	)
}

// Best returns the highest-scoring rounds.
func (r *RoundRepository) Best(limit int) ([]*Round, error) {
	if limit <= 0 {
		limit = -1
	}
	return r.query(
		`SELECT id, score, hits, duration_seconds, started_at, ended_at
		 FROM rounds ORDER BY score DESC, ended_at ASC LIMIT ?`,
		limit,
	)
}

// Delete removes a round and its hits.
func (r *RoundRepository) Delete(id string) error {
	result, err := r.db.Exec(`DELETE FROM rounds WHERE id = ?`, id)
	if err != nil {
		return err
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return err
	}

	if rowsAffected == 0 {
		return ErrNotFound
	}

	return nil
}

func (r *RoundRepository) query(q string, args ...any) ([]*Round, error) {
	rows, err := r.db.Query(q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	rounds := []*Round{}
	for rows.Next() {
		rd := &Round{}
		if err := rows.Scan(&rd.ID, &rd.Score, &rd.Hits, &rd.DurationSeconds, &rd.StartedAt, &rd.EndedAt); err != nil {
			return nil, err
		}
		rounds = append(rounds, rd)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return rounds, nil
}

package store

// runMigrations creates the schema if it does not exist yet.
func (s *Store) runMigrations() error {
	migrations := []string{
		`CREATE TABLE IF NOT EXISTS rounds (
			id TEXT PRIMARY KEY,
			score INTEGER NOT NULL DEFAULT 0 CHECK(score >= 0),
			hits INTEGER NOT NULL DEFAULT 0,
			duration_seconds INTEGER NOT NULL,
			started_at DATETIME NOT NULL,
			ended_at DATETIME NOT NULL,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		)`,

		// One row per collected target.
		`CREATE TABLE IF NOT EXISTS round_hits (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			round_id TEXT NOT NULL REFERENCES rounds(id) ON DELETE CASCADE,
			sequence INTEGER NOT NULL,
			target_id INTEGER NOT NULL,
			color TEXT NOT NULL,
			points INTEGER NOT NULL,
			x REAL NOT NULL,
			y REAL NOT NULL,
			hit_at DATETIME NOT NULL
		)`,

		`CREATE INDEX IF NOT EXISTS idx_round_hits_round_id ON round_hits(round_id)`,
		`CREATE INDEX IF NOT EXISTS idx_rounds_score ON rounds(score DESC)`,
	}

	for _, migration := range migrations {
		if _, err := s.db.Exec(migration); err != nil {
			return err
		}
	}

	return nil
}

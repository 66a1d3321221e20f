package state

import (
	"database/sql"
)

const currentSchemaVersion = 1

func initSchema(db *sql.DB) error {
	_, err := db.Exec(`
		CREATE TABLE IF NOT EXISTS schema_version (
			version INTEGER PRIMARY KEY
		);

		CREATE TABLE IF NOT EXISTS sessions (
			uri TEXT PRIMARY KEY,
			title TEXT,
			volume REAL NOT NULL DEFAULT 1,
			muted INTEGER NOT NULL DEFAULT 0,
			rate REAL NOT NULL DEFAULT 1,
			correct_pitch INTEGER NOT NULL DEFAULT 0,
			looping INTEGER NOT NULL DEFAULT 0,
			position_ms INTEGER NOT NULL DEFAULT 0,
			duration_ms INTEGER,
			updated_at INTEGER NOT NULL
		);

		CREATE INDEX IF NOT EXISTS idx_sessions_updated_at ON sessions(updated_at DESC);
	`)
	if err != nil {
		return err
	}

	// Set initial version if not exists
	_, err = db.Exec(`
		INSERT OR IGNORE INTO schema_version (version) VALUES (?)
	`, currentSchemaVersion)
	return err
}

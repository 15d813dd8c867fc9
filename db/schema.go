// ABOUTME: SQLite schema for viewer profiles and stored match payloads
// ABOUTME: Payloads are kept as raw JSON so identity extraction sees every field
package db

import "database/sql"

const schema = `
CREATE TABLE IF NOT EXISTS viewers (
	id TEXT PRIMARY KEY,
	name TEXT NOT NULL,
	profile TEXT NOT NULL DEFAULT '{}',
	created_at DATETIME NOT NULL,
	updated_at DATETIME NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_viewers_name ON viewers(name);

CREATE TABLE IF NOT EXISTS match_snapshots (
	id TEXT PRIMARY KEY,
	match_key TEXT NOT NULL UNIQUE,
	payload TEXT NOT NULL,
	fetched_at DATETIME NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_match_snapshots_fetched ON match_snapshots(fetched_at);
`

func InitSchema(db *sql.DB) error {
	_, err := db.Exec(schema)
	return err
}

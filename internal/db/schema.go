package db

import (
	"database/sql"
	"fmt"
)

// schema is the full database schema. Outfit and wear positions are the
// order in which records were saved, which is ascending slot order.
const schema = `
CREATE TABLE IF NOT EXISTS outfits (
    position     INTEGER PRIMARY KEY CHECK (position >= 0),
    section_name TEXT NOT NULL,
    category     TEXT NOT NULL,
    time_of_day  TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS wear_items (
    outfit_position INTEGER NOT NULL REFERENCES outfits(position) ON DELETE CASCADE,
    position        INTEGER NOT NULL CHECK (position >= 0),
    name            TEXT NOT NULL DEFAULT '',
    materials       TEXT NOT NULL DEFAULT '',
    photo           BLOB,
    PRIMARY KEY (outfit_position, position)
);

CREATE TABLE IF NOT EXISTS settings (
    key   TEXT PRIMARY KEY,
    value TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS revoked_tokens (
    jti        TEXT PRIMARY KEY,
    expires_at DATETIME NOT NULL
);
`

// EnsureSchema creates all tables and indexes if they don't already exist.
func EnsureSchema(db *sql.DB) error {
	_, err := db.Exec(schema)
	if err != nil {
		return fmt.Errorf("creating schema: %w", err)
	}
	return nil
}

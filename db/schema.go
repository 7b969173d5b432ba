// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package db

import (
	"database/sql"
	"fmt"
	"strings"
)

// Supported SQL database types
const (
	TypePostgres = "postgres"
	TypeSQLite   = "sqlite"
)

// Open connects to a SQL database and verifies the connection.
// dbType selects the driver: "postgres" (lib/pq) or "sqlite" (modernc).
func Open(dbType, url string) (*sql.DB, error) {
	var driver string
	switch dbType {
	case TypePostgres:
		driver = "postgres"
	case TypeSQLite:
		driver = "sqlite"
	default:
		return nil, fmt.Errorf("unsupported database type %q", dbType)
	}

	conn, err := sql.Open(driver, url)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// Every connection to an in-memory SQLite database is a separate database
	if dbType == TypeSQLite && strings.Contains(url, ":memory:") {
		conn.SetMaxOpenConns(1)
	}

	if err := conn.Ping(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}
	return conn, nil
}

// CreateSchema creates all tables needed for the application.
// Safe to call multiple times - uses IF NOT EXISTS.
func CreateSchema(db *sql.DB, dbType string) error {
	seq := "BIGSERIAL PRIMARY KEY"
	if dbType == TypeSQLite {
		seq = "INTEGER PRIMARY KEY AUTOINCREMENT"
	}

	_, err := db.Exec(fmt.Sprintf(schema, seq, seq, seq))
	if err != nil {
		return fmt.Errorf("failed to create schema: %w", err)
	}

	return nil
}

// seq only orders rows by insertion; id is the public identifier.
const schema = `
-- Polls
CREATE TABLE IF NOT EXISTS poll (
    seq %s,
    id TEXT NOT NULL UNIQUE,
    title TEXT NOT NULL,
    expire_at TEXT NOT NULL
);

-- Choices (titles are unique across all polls)
CREATE TABLE IF NOT EXISTS choice (
    seq %s,
    id TEXT NOT NULL UNIQUE,
    poll_id TEXT NOT NULL REFERENCES poll(id),
    title TEXT NOT NULL UNIQUE
);

CREATE INDEX IF NOT EXISTS idx_choice_poll_id ON choice(poll_id);

-- Votes
CREATE TABLE IF NOT EXISTS vote (
    seq %s,
    id TEXT NOT NULL UNIQUE,
    choice_id TEXT NOT NULL REFERENCES choice(id),
    choice_title TEXT NOT NULL,
    poll_id TEXT NOT NULL REFERENCES poll(id),
    vote INTEGER NOT NULL DEFAULT 1 CHECK (vote = 1),
    cast_at TEXT NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_vote_choice_id ON vote(choice_id);
CREATE INDEX IF NOT EXISTS idx_vote_poll_id ON vote(poll_id);
`

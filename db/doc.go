// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package db provides the SQL implementation of engine.Store.

# Connecting

Open selects the driver from the database type:

	conn, err := db.Open(db.TypePostgres, "postgres://...") // github.com/lib/pq
	conn, err := db.Open(db.TypeSQLite, "file:drivencracy.db") // modernc.org/sqlite

# Schema Creation

CreateSchema initializes all required tables:

	if err := db.CreateSchema(conn, db.TypeSQLite); err != nil {
		log.Fatal(err)
	}

Safe to call multiple times - uses IF NOT EXISTS for all tables and indexes.

# Tables

  - poll: title and expire_at
  - choice: title (unique across all polls) and poll_id
  - vote: snapshot of choice_id, choice_title and poll_id, plus cast_at

Every table carries an auto-incrementing seq column used only to return
rows in insertion order. Public identifiers are UUIDs.

# Relationships

	poll 1──* choice 1──* vote

# Indexes

  - choice.title (unique)
  - choice.poll_id
  - vote.choice_id
  - vote.poll_id

Unique violations from either driver are reported as engine.ErrDuplicate.
*/
package db

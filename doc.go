// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package main provides the entry point for the drivencracy API server.

Drivencracy is a minimal single-choice polling service: create a poll, add
choices, cast votes, and read back the winning choice.

# Starting the Server

The server requires environment variables or CLI flags for configuration:

	DATABASE_URL=file:drivencracy.db go run .

Or with flags:

	go run . -p 5000 -t mongo -d "mongodb://localhost:27017" -db-name drivencracy

Values are also read from a .env file (see -env-file); variables already
set in the environment win over the file.

# Configuration

Required settings:

  - DATABASE_URL (-d): SQLite path, PostgreSQL connection string or Mongo URI

Optional settings:

  - PORT (-p): Server port (default: 5000)
  - DATABASE_TYPE (-t): sqlite, postgres or mongo (default: sqlite)
  - DATABASE_NAME (-db-name): Mongo database name (default: drivencracy)
  - REDIS_URL (-redis): enables the result cache
  - CACHE_TTL (-cache-ttl): lifetime of cached results (default: 10m)

# Architecture

  - engine: poll, choice and vote rules and result computation
  - db: SQL store (PostgreSQL via lib/pq, SQLite via modernc)
  - mongostore: MongoDB store
  - cache: Redis result cache
  - metrics: Prometheus collectors served on /metrics
  - handlers: HTTP request handlers
  - router: Route definitions using Go 1.22+ routing
  - middleware: CORS, logging, request metrics, JSON helpers
  - models: Document and request types
  - cliparse: Configuration parsing

See package documentation for each component.
*/
package main

// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package cliparse handles command-line argument parsing and configuration.

# Configuration

ParseFlags returns a Config struct with all settings:

	cfg, err := cliparse.ParseFlags(os.Args[1:])

# Config Fields

  - Port: Server listen port (default: 5000)
  - DatabaseURL: SQL connection string or Mongo URI (required)
  - DatabaseType: sqlite, postgres or mongo (default: sqlite)
  - DatabaseName: Mongo database name (default: drivencracy)
  - RedisURL: Result cache, disabled when empty
  - CacheTTL: Lifetime of cached results (default: 10m)

# CLI Flags

	-p          Server port
	-d          Database URL
	-t          Database type
	--db-name   Mongo database name
	--redis     Redis URL
	--cache-ttl Result cache TTL
	--env-file  Env file to load (default: .env)

# Environment Variables

Flags fall back to environment variables:

	PORT          → -p
	DATABASE_URL  → -d
	DATABASE_TYPE → -t
	DATABASE_NAME → --db-name
	REDIS_URL     → --redis
	CACHE_TTL     → --cache-ttl

CLI flags take precedence over environment variables, and variables already
set in the environment take precedence over the env file. A missing env
file is not an error.

# Validation

ParseFlags returns an error if:

  - DATABASE_URL is missing
  - DATABASE_TYPE is not one of sqlite, postgres, mongo
  - PORT or CACHE_TTL cannot be parsed
*/
package cliparse

// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package cliparse handles command-line argument parsing and configuration.

# Configuration

ParseFlags returns a Config struct with all settings:

	cfg, err := cliparse.ParseFlags(os.Args[1:])

A .env file in the working directory is loaded first (via godotenv); real
environment variables take precedence over file values, and CLI flags take
precedence over both.

# Config Fields

  - Port: Server listen port (default: 3001)
  - DatabaseURL: SQLite file path or PostgreSQL connection string (required)
  - DatabaseType: "sqlite" or "postgres" (default: sqlite)
  - RedisURL: Redis URL for the geocode cache (optional; empty disables caching)
  - GeocodeAPIURL: Geocoding API base URL (default: Google Maps Geocoding API)
  - GeocodeAPIKey: Geocoding API key (required)

# CLI Flags

	-p            Server port
	-d            Database URL or file path
	-t            Database type
	-redis        Redis URL
	-geocode-url  Geocoding API base URL
	-geocode-key  Geocoding API key

# Environment Variables

	PORT             → -p
	DATABASE_URL     → -d
	DATABASE_TYPE    → -t
	REDIS_URL        → -redis
	GEOCODE_API_URL  → -geocode-url
	GEOCODE_API_KEY  → -geocode-key

# Validation

ParseFlags returns an error if required values are missing:

  - DATABASE_URL must be provided
  - DATABASE_TYPE must be sqlite or postgres
  - GEOCODE_API_KEY must be provided
*/
package cliparse

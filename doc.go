// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package main provides the entry point for the Question Hour API server.

Question Hour is a public-opinion polling service: one question is current
at a time, visitors submit agree/disagree responses tagged with a ZIP code,
and the server derives a 3-D force graph and a map overlay from the
accumulated responses. When a new question is set, the outgoing one is
archived with its response rollup frozen.

# Starting the Server

The server requires environment variables or CLI flags for configuration:

	DATABASE_URL=questionhour.db GEOCODE_API_KEY=... go run main.go

Or with flags:

	go run main.go -p 3001 -d questionhour.db -geocode-key "..."

# Configuration

Required settings:

  - DATABASE_URL (-d): SQLite file path or PostgreSQL connection string
  - GEOCODE_API_KEY (-geocode-key): API key for the geocoding service

Optional settings:

  - PORT (-p): Server port (default: 3001)
  - DATABASE_TYPE (-t): "sqlite" (default) or "postgres"
  - REDIS_URL (-redis): Enables a read-through cache for geocoding lookups
  - GEOCODE_API_URL (-geocode-url): Geocoding endpoint override

# Architecture

The server uses a handler-based architecture with dependency injection:

  - handlers: HTTP request handlers (responses, questions, visualization, geocoding)
  - router: Route definitions using Go 1.22+ routing
  - middleware: CORS, logging, JSON helpers
  - models: Request/response types
  - viz: Force-graph layout, map points, and response rollups
  - geocode: Geocoding service client with optional Redis cache
  - db: Schema creation
  - cliparse: Configuration parsing

See package documentation for each component.
*/
package main

// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package db handles database schema creation.

# Schema Creation

CreateSchema initializes all required tables for the configured dialect:

	if err := db.CreateSchema(conn, cfg.DatabaseType); err != nil {
		log.Fatal(err)
	}

Safe to call multiple times - uses IF NOT EXISTS for all tables and indexes.
Two dialects are supported: "sqlite" (modernc.org/sqlite, the default) and
"postgres" (lib/pq). Queries elsewhere use $1-style placeholders, which both
drivers accept.

# Tables

  - question: the prompt, theme, lifecycle state, and rollup counts frozen
    at archive time. Question text is the primary key; setting a new current
    question with a previously used text reuses the existing row.
  - response: one row per sentiment submission. seq is an auto-increment
    column that preserves insertion order; submitted_at is the
    client-supplied ISO-8601 timestamp stored verbatim.

# Relationships

	question 1──* response

Foreign keys use ON DELETE CASCADE, so the global reset only has to delete
questions.

# Invariants

A partial unique index on question(current) guarantees at most one current
question at the store level, independent of application locking.
*/
package db

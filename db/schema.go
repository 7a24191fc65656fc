// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package db

import (
	"database/sql"
	"fmt"
)

// CreateSchema creates all tables needed for the application.
// Safe to call multiple times - uses IF NOT EXISTS.
func CreateSchema(db *sql.DB, databaseType string) error {
	schema := schemaSQLite
	if databaseType == "postgres" {
		schema = schemaPostgres
	}

	_, err := db.Exec(schema)
	if err != nil {
		return fmt.Errorf("failed to create schema: %w", err)
	}

	return nil
}

const schemaPostgres = `
-- Questions (text is the identity key within the active+archived set)
CREATE TABLE IF NOT EXISTS question (
    text TEXT PRIMARY KEY,
    theme TEXT NOT NULL DEFAULT 'general',
    current BOOLEAN NOT NULL DEFAULT FALSE,
    created_at TIMESTAMP NOT NULL,
    archived_at TIMESTAMP,
    total_responses INTEGER NOT NULL DEFAULT 0,
    agree_count INTEGER NOT NULL DEFAULT 0,
    disagree_count INTEGER NOT NULL DEFAULT 0
);

-- At most one question may be current at any time
CREATE UNIQUE INDEX IF NOT EXISTS idx_question_current ON question(current) WHERE current;

-- Responses (seq preserves insertion order)
CREATE TABLE IF NOT EXISTS response (
    seq BIGSERIAL PRIMARY KEY,
    id TEXT NOT NULL UNIQUE,
    question_text TEXT NOT NULL REFERENCES question(text) ON DELETE CASCADE,
    response TEXT NOT NULL CHECK (response IN ('agree', 'disagree')),
    location TEXT NOT NULL,
    lat DOUBLE PRECISION NOT NULL,
    lng DOUBLE PRECISION NOT NULL,
    submitted_at TEXT NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_response_question ON response(question_text);
CREATE INDEX IF NOT EXISTS idx_response_location ON response(location);
`

const schemaSQLite = `
CREATE TABLE IF NOT EXISTS question (
    text TEXT PRIMARY KEY,
    theme TEXT NOT NULL DEFAULT 'general',
    current BOOLEAN NOT NULL DEFAULT 0,
    created_at TIMESTAMP NOT NULL,
    archived_at TIMESTAMP,
    total_responses INTEGER NOT NULL DEFAULT 0,
    agree_count INTEGER NOT NULL DEFAULT 0,
    disagree_count INTEGER NOT NULL DEFAULT 0
);

CREATE UNIQUE INDEX IF NOT EXISTS idx_question_current ON question(current) WHERE current = 1;

CREATE TABLE IF NOT EXISTS response (
    seq INTEGER PRIMARY KEY AUTOINCREMENT,
    id TEXT NOT NULL UNIQUE,
    question_text TEXT NOT NULL REFERENCES question(text) ON DELETE CASCADE,
    response TEXT NOT NULL CHECK (response IN ('agree', 'disagree')),
    location TEXT NOT NULL,
    lat REAL NOT NULL,
    lng REAL NOT NULL,
    submitted_at TEXT NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_response_question ON response(question_text);
CREATE INDEX IF NOT EXISTS idx_response_location ON response(location);
`

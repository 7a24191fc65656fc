// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package testutil

import (
	"bytes"
	"database/sql"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	"github.com/danielhkuo/question-hour/cliparse"
	"github.com/danielhkuo/question-hour/db"
)

// SetupTestDB creates a fresh in-memory SQLite database with the full schema.
// Every test gets its own database; nothing to clean up.
func SetupTestDB(t *testing.T) *sql.DB {
	t.Helper()

	conn, err := sql.Open("sqlite", ":memory:")
	if err != nil {
		t.Fatalf("Failed to open test database: %v", err)
	}

	// A single connection keeps the in-memory database alive and serializes
	// concurrent test traffic the same way the production sqlite setup does
	conn.SetMaxOpenConns(1)

	if err := db.CreateSchema(conn, "sqlite"); err != nil {
		t.Fatalf("Failed to create schema: %v", err)
	}

	return conn
}

// GetTestConfig returns a config suitable for handler tests
func GetTestConfig() cliparse.Config {
	return cliparse.Config{
		Port:          3001,
		DatabaseURL:   ":memory:",
		DatabaseType:  "sqlite",
		GeocodeAPIURL: "http://geocode.invalid",
		GeocodeAPIKey: "test-key",
	}
}

// CreateTestQuestion inserts a question. current controls whether it is the
// active question; at most one per database may be current.
func CreateTestQuestion(t *testing.T, conn *sql.DB, text, theme string, current bool) {
	t.Helper()

	_, err := conn.Exec(`
		INSERT INTO question (text, theme, current, created_at)
		VALUES ($1, $2, $3, $4)
	`, text, theme, current, time.Now())
	if err != nil {
		t.Fatalf("Failed to create test question: %v", err)
	}
}

// CreateArchivedQuestion inserts an already-archived question with frozen
// rollup counts.
func CreateArchivedQuestion(t *testing.T, conn *sql.DB, text, theme string, agree, disagree int, archivedAt time.Time) {
	t.Helper()

	_, err := conn.Exec(`
		INSERT INTO question (text, theme, current, created_at, archived_at, total_responses, agree_count, disagree_count)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`, text, theme, false, archivedAt.Add(-time.Hour), archivedAt, agree+disagree, agree, disagree)
	if err != nil {
		t.Fatalf("Failed to create archived question: %v", err)
	}
}

// AddTestResponse appends a response to a question and returns its ID
func AddTestResponse(t *testing.T, conn *sql.DB, question, sentiment, location string, lat, lng float64) string {
	t.Helper()

	id := uuid.NewString()
	_, err := conn.Exec(`
		INSERT INTO response (id, question_text, response, location, lat, lng, submitted_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`, id, question, sentiment, location, lat, lng, time.Now().UTC().Format(time.RFC3339))
	if err != nil {
		t.Fatalf("Failed to create test response: %v", err)
	}

	return id
}

// MakeRequest creates an HTTP test request
func MakeRequest(method, path string, body interface{}, headers map[string]string) *http.Request {
	var req *http.Request
	if body != nil {
		jsonBody, _ := json.Marshal(body)
		req = httptest.NewRequest(method, path, bytes.NewReader(jsonBody))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}

	for k, v := range headers {
		req.Header.Set(k, v)
	}

	return req
}

// AssertStatus checks that the response has the expected status code
func AssertStatus(t *testing.T, w *httptest.ResponseRecorder, expected int) {
	t.Helper()
	if w.Code != expected {
		t.Errorf("Expected status %d, got %d. Body: %s", expected, w.Code, w.Body.String())
	}
}

// AssertJSON decodes the response body into the provided struct
func AssertJSON(t *testing.T, w *httptest.ResponseRecorder, v interface{}) {
	t.Helper()
	if err := json.NewDecoder(w.Body).Decode(v); err != nil {
		t.Fatalf("Failed to decode JSON response: %v", err)
	}
}

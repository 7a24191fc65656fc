// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"database/sql"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/danielhkuo/question-hour/cliparse"
	"github.com/danielhkuo/question-hour/middleware"
	"github.com/danielhkuo/question-hour/models"
	"github.com/danielhkuo/question-hour/viz"
)

type QuestionsHandler struct {
	db  *sql.DB
	cfg cliparse.Config

	// Serializes lifecycle transitions. Overlapping attempts get 409
	// instead of queueing so the loser cannot archive a just-set question.
	mu sync.Mutex
}

func NewQuestionsHandler(db *sql.DB, cfg cliparse.Config) *QuestionsHandler {
	return &QuestionsHandler{db: db, cfg: cfg}
}

// GetCurrent handles GET /api/questions/current
func (h *QuestionsHandler) GetCurrent(w http.ResponseWriter, r *http.Request) {
	question, err := currentQuestion(h.db)
	if err == sql.ErrNoRows {
		middleware.ErrorResponse(w, http.StatusNotFound, "No current question")
		return
	}
	if err != nil {
		slog.Error("failed to query current question", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	middleware.JSONResponse(w, http.StatusOK, question)
}

// SetCurrent handles POST /api/questions/current
// Archives the current question with its rollup frozen, then makes the
// named question current with zeroed counters. Both steps commit together.
func (h *QuestionsHandler) SetCurrent(w http.ResponseWriter, r *http.Request) {
	var req models.SetQuestionRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}
	if req.Text == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "text is required")
		return
	}
	theme := req.Theme
	if theme == "" {
		theme = "general"
	}

	if !h.mu.TryLock() {
		middleware.ErrorResponse(w, http.StatusConflict, "Question transition already in progress")
		return
	}
	defer h.mu.Unlock()

	tx, err := h.db.Begin()
	if err != nil {
		slog.Error("failed to begin transaction", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}
	defer tx.Rollback()

	var archived *models.Question
	outgoing, err := currentQuestion(tx)
	if err != nil && err != sql.ErrNoRows {
		slog.Error("failed to query current question", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}
	if err == nil {
		responses, err := listQuestionResponses(tx, outgoing.Text)
		if err != nil {
			slog.Error("failed to query responses", "error", err)
			middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
			return
		}
		sum, err := viz.Summarize(responses)
		if err != nil {
			slog.Error("failed to summarize responses", "error", err, "question", outgoing.Text)
			middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to archive question")
			return
		}

		archivedAt := time.Now().UTC()
		_, err = tx.Exec(`
			UPDATE question
			SET current = $1, archived_at = $2,
			    total_responses = $3, agree_count = $4, disagree_count = $5
			WHERE text = $6
		`, false, archivedAt, sum.TotalResponses, sum.AgreeCount, sum.DisagreeCount, outgoing.Text)
		if err != nil {
			slog.Error("failed to archive question", "error", err, "question", outgoing.Text)
			middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to archive question")
			return
		}

		outgoing.Current = false
		outgoing.ArchivedAt = &archivedAt
		outgoing.TotalResponses = sum.TotalResponses
		outgoing.AgreeCount = sum.AgreeCount
		outgoing.DisagreeCount = sum.DisagreeCount
		archived = &outgoing
	}

	// Reuse the row if this text has been asked before; its counters
	// start over for the new run
	now := time.Now().UTC()
	res, err := tx.Exec(`
		UPDATE question
		SET theme = $1, current = $2, created_at = $3, archived_at = NULL,
		    total_responses = 0, agree_count = 0, disagree_count = 0
		WHERE text = $4
	`, theme, true, now, req.Text)
	if err != nil {
		slog.Error("failed to update question", "error", err, "question", req.Text)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to set question")
		return
	}
	n, err := res.RowsAffected()
	if err != nil {
		slog.Error("failed to read rows affected", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to set question")
		return
	}
	if n == 0 {
		_, err = tx.Exec(`
			INSERT INTO question (text, theme, current, created_at)
			VALUES ($1, $2, $3, $4)
		`, req.Text, theme, true, now)
		if err != nil {
			slog.Error("failed to insert question", "error", err, "question", req.Text)
			middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to set question")
			return
		}
	}

	if err := tx.Commit(); err != nil {
		slog.Error("failed to commit transaction", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to set question")
		return
	}

	slog.Info("current question set", "question", req.Text, "theme", theme, "archivedPrevious", archived != nil)

	middleware.JSONResponse(w, http.StatusOK, models.SetQuestionResponse{
		Question: models.Question{
			Text:      req.Text,
			Theme:     theme,
			Current:   true,
			Timestamp: now,
		},
		Archived: archived,
	})
}

// History handles GET /api/questions/history
// Archived questions, most recently archived first
func (h *QuestionsHandler) History(w http.ResponseWriter, r *http.Request) {
	rows, err := h.db.Query(`
		SELECT text, theme, current, created_at, archived_at,
		       total_responses, agree_count, disagree_count
		FROM question
		WHERE archived_at IS NOT NULL
		ORDER BY archived_at DESC
	`)
	if err != nil {
		slog.Error("failed to query question history", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}
	defer rows.Close()

	history := []models.Question{}
	for rows.Next() {
		q, err := scanQuestion(rows)
		if err != nil {
			slog.Error("failed to scan question", "error", err)
			middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
			return
		}
		history = append(history, q)
	}
	if err := rows.Err(); err != nil {
		slog.Error("failed to iterate question history", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	middleware.JSONResponse(w, http.StatusOK, history)
}

// GetResponses handles GET /api/questions/{text}/responses
func (h *QuestionsHandler) GetResponses(w http.ResponseWriter, r *http.Request) {
	text := r.PathValue("text")
	if text == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Question text is required")
		return
	}

	question, err := questionByText(h.db, text)
	if err == sql.ErrNoRows {
		middleware.ErrorResponse(w, http.StatusNotFound, "Question not found")
		return
	}
	if err != nil {
		slog.Error("failed to query question", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	responses, err := listQuestionResponses(h.db, text)
	if err != nil {
		slog.Error("failed to query responses", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	middleware.JSONResponse(w, http.StatusOK, models.QuestionResponsesResponse{
		Question:  question,
		Responses: responses,
	})
}

// querier is satisfied by both *sql.DB and *sql.Tx so the lifecycle
// transition can reuse the same lookups inside its transaction.
type querier interface {
	Query(query string, args ...any) (*sql.Rows, error)
	QueryRow(query string, args ...any) *sql.Row
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanQuestion(row rowScanner) (models.Question, error) {
	var q models.Question
	var archivedAt sql.NullTime
	err := row.Scan(&q.Text, &q.Theme, &q.Current, &q.Timestamp, &archivedAt,
		&q.TotalResponses, &q.AgreeCount, &q.DisagreeCount)
	if err != nil {
		return models.Question{}, err
	}
	if archivedAt.Valid {
		t := archivedAt.Time
		q.ArchivedAt = &t
	}
	return q, nil
}

func currentQuestion(qr querier) (models.Question, error) {
	return scanQuestion(qr.QueryRow(`
		SELECT text, theme, current, created_at, archived_at,
		       total_responses, agree_count, disagree_count
		FROM question
		WHERE current
	`))
}

func questionByText(qr querier, text string) (models.Question, error) {
	return scanQuestion(qr.QueryRow(`
		SELECT text, theme, current, created_at, archived_at,
		       total_responses, agree_count, disagree_count
		FROM question
		WHERE text = $1
	`, text))
}

// listQuestionResponses returns responses in insertion order.
func listQuestionResponses(qr querier, text string) ([]models.Response, error) {
	rows, err := qr.Query(`
		SELECT id, question_text, response, location, lat, lng, submitted_at
		FROM response
		WHERE question_text = $1
		ORDER BY seq
	`, text)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	responses := []models.Response{}
	for rows.Next() {
		var resp models.Response
		err := rows.Scan(&resp.ID, &resp.Question, &resp.Response,
			&resp.Location, &resp.Lat, &resp.Lng, &resp.Timestamp)
		if err != nil {
			return nil, err
		}
		responses = append(responses, resp)
	}
	return responses, rows.Err()
}

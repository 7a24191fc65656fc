// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"database/sql"
	"log/slog"
	"math"
	"net/http"

	"github.com/google/uuid"

	"github.com/danielhkuo/question-hour/cliparse"
	"github.com/danielhkuo/question-hour/middleware"
	"github.com/danielhkuo/question-hour/models"
)

type ResponsesHandler struct {
	db  *sql.DB
	cfg cliparse.Config
}

func NewResponsesHandler(db *sql.DB, cfg cliparse.Config) *ResponsesHandler {
	return &ResponsesHandler{db: db, cfg: cfg}
}

// Submit handles POST /api/responses
func (h *ResponsesHandler) Submit(w http.ResponseWriter, r *http.Request) {
	var req models.SubmitResponseRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	// Boundary validation: nothing is persisted unless every field checks out
	if req.Question == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "question is required")
		return
	}
	if req.Response != models.SentimentAgree && req.Response != models.SentimentDisagree {
		middleware.ErrorResponse(w, http.StatusBadRequest, "response must be agree or disagree")
		return
	}
	if req.Timestamp == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "timestamp is required")
		return
	}
	if req.Location == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "location is required")
		return
	}
	if req.Lat == nil || req.Lng == nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "lat and lng are required")
		return
	}
	if !isFinite(*req.Lat) || !isFinite(*req.Lng) {
		middleware.ErrorResponse(w, http.StatusBadRequest, "lat and lng must be finite numbers")
		return
	}

	// The INSERT only lands if the named question is still current, so a
	// submission racing a lifecycle transition attaches to exactly one
	// question or is rejected - never both, never neither
	id := uuid.NewString()
	res, err := h.db.Exec(`
		INSERT INTO response (id, question_text, response, location, lat, lng, submitted_at)
		SELECT $1, text, $2, $3, $4, $5, $6
		FROM question
		WHERE text = $7 AND current
	`, id, req.Response, req.Location, *req.Lat, *req.Lng, req.Timestamp, req.Question)

	if err != nil {
		slog.Error("failed to insert response", "error", err, "question", req.Question)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to store response")
		return
	}

	n, err := res.RowsAffected()
	if err != nil {
		slog.Error("failed to read rows affected", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to store response")
		return
	}

	if n == 0 {
		// Distinguish a missing question from an archived one
		var exists bool
		err := h.db.QueryRow(`
			SELECT EXISTS(SELECT 1 FROM question WHERE text = $1)
		`, req.Question).Scan(&exists)
		if err != nil {
			slog.Error("failed to query question", "error", err)
			middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
			return
		}
		if !exists {
			middleware.ErrorResponse(w, http.StatusNotFound, "Question not found")
			return
		}
		middleware.ErrorResponse(w, http.StatusConflict, "Question is no longer current")
		return
	}

	slog.Info("response recorded",
		"question", req.Question,
		"sentiment", req.Response,
		"location", req.Location,
	)

	middleware.JSONResponse(w, http.StatusCreated, models.Response{
		ID:        id,
		Question:  req.Question,
		Response:  req.Response,
		Location:  req.Location,
		Lat:       *req.Lat,
		Lng:       *req.Lng,
		Timestamp: req.Timestamp,
	})
}

// List handles GET /api/responses
// Returns the ordered responses for ?question=, defaulting to the current question
func (h *ResponsesHandler) List(w http.ResponseWriter, r *http.Request) {
	text := r.URL.Query().Get("question")

	var question models.Question
	var err error
	if text == "" {
		question, err = currentQuestion(h.db)
	} else {
		question, err = questionByText(h.db, text)
	}

	if err == sql.ErrNoRows {
		middleware.ErrorResponse(w, http.StatusNotFound, "Question not found")
		return
	}
	if err != nil {
		slog.Error("failed to query question", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	responses, err := listQuestionResponses(h.db, question.Text)
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

// Reset handles DELETE /api/responses
// Deletes all questions and responses; afterwards no question is current
func (h *ResponsesHandler) Reset(w http.ResponseWriter, r *http.Request) {
	tx, err := h.db.Begin()
	if err != nil {
		slog.Error("failed to begin transaction", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}
	defer tx.Rollback()

	if _, err := tx.Exec(`DELETE FROM response`); err != nil {
		slog.Error("failed to delete responses", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to reset data")
		return
	}
	if _, err := tx.Exec(`DELETE FROM question`); err != nil {
		slog.Error("failed to delete questions", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to reset data")
		return
	}

	if err := tx.Commit(); err != nil {
		slog.Error("failed to commit transaction", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to reset data")
		return
	}

	slog.Info("all data reset")

	middleware.JSONResponse(w, http.StatusOK, models.ResetResponse{
		Message: "All data reset successfully",
	})
}

func isFinite(f float64) bool {
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}

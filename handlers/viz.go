// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"database/sql"
	"log/slog"
	"net/http"

	"github.com/danielhkuo/question-hour/cliparse"
	"github.com/danielhkuo/question-hour/middleware"
	"github.com/danielhkuo/question-hour/models"
	"github.com/danielhkuo/question-hour/viz"
)

type VizHandler struct {
	db  *sql.DB
	cfg cliparse.Config
}

func NewVizHandler(db *sql.DB, cfg cliparse.Config) *VizHandler {
	return &VizHandler{db: db, cfg: cfg}
}

// Get handles GET /api/visualization
// Derives the force graph, map points, and rollup stats for ?question=,
// defaulting to the current question.
func (h *VizHandler) Get(w http.ResponseWriter, r *http.Request) {
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

	v, err := viz.Derive(question, responses, viz.NewRand())
	if err != nil {
		slog.Error("failed to derive visualization", "error", err, "question", question.Text)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to build visualization")
		return
	}

	middleware.JSONResponse(w, http.StatusOK, v)
}

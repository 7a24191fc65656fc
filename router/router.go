// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package router

import (
	"database/sql"
	"net/http"

	"github.com/danielhkuo/question-hour/cliparse"
	"github.com/danielhkuo/question-hour/geocode"
	"github.com/danielhkuo/question-hour/handlers"
	"github.com/danielhkuo/question-hour/middleware"
)

// NewRouter wires every endpoint to its handler.
func NewRouter(db *sql.DB, cfg cliparse.Config, geo *geocode.Client) *http.ServeMux {
	mux := http.NewServeMux()

	responsesHandler := handlers.NewResponsesHandler(db, cfg)
	questionsHandler := handlers.NewQuestionsHandler(db, cfg)
	vizHandler := handlers.NewVizHandler(db, cfg)
	geoHandler := handlers.NewGeoHandler(geo)

	// Responses
	mux.HandleFunc("POST /api/responses", middleware.WithLogging(responsesHandler.Submit))
	mux.HandleFunc("GET /api/responses", middleware.WithLogging(responsesHandler.List))
	mux.HandleFunc("DELETE /api/responses", middleware.WithLogging(responsesHandler.Reset))

	// Question lifecycle
	mux.HandleFunc("GET /api/questions/current", middleware.WithLogging(questionsHandler.GetCurrent))
	mux.HandleFunc("POST /api/questions/current", middleware.WithLogging(questionsHandler.SetCurrent))
	mux.HandleFunc("GET /api/questions/history", middleware.WithLogging(questionsHandler.History))
	mux.HandleFunc("GET /api/questions/{text}/responses", middleware.WithLogging(questionsHandler.GetResponses))

	// Visualization
	mux.HandleFunc("GET /api/visualization", middleware.WithLogging(vizHandler.Get))

	// Geocoding proxy. The literal /reverse segment wins over the {zip}
	// wildcard.
	mux.HandleFunc("GET /api/geocode/reverse", middleware.WithLogging(geoHandler.Reverse))
	mux.HandleFunc("GET /api/geocode/{zip}", middleware.WithLogging(geoHandler.Lookup))

	// Health check
	mux.HandleFunc("GET /api/health", func(w http.ResponseWriter, r *http.Request) {
		middleware.JSONResponse(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	mux.HandleFunc("GET /", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("Server is running"))
	})

	return mux
}

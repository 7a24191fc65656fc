// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/danielhkuo/question-hour/geocode"
	"github.com/danielhkuo/question-hour/middleware"
	"github.com/danielhkuo/question-hour/models"
)

type GeoHandler struct {
	geo *geocode.Client
}

func NewGeoHandler(geo *geocode.Client) *GeoHandler {
	return &GeoHandler{geo: geo}
}

// Lookup handles GET /api/geocode/{zip}
func (h *GeoHandler) Lookup(w http.ResponseWriter, r *http.Request) {
	zip := r.PathValue("zip")
	if zip == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "ZIP code is required")
		return
	}

	lat, lng, err := h.geo.ZipToCoordinates(r.Context(), zip)
	if errors.Is(err, geocode.ErrNotFound) {
		middleware.ErrorResponse(w, http.StatusNotFound, "No coordinates found for this ZIP code")
		return
	}
	if err != nil {
		slog.Error("geocode lookup failed", "error", err, "zip", zip)
		middleware.ErrorResponse(w, http.StatusBadGateway, "Geocoding service unavailable")
		return
	}

	middleware.JSONResponse(w, http.StatusOK, models.GeocodeResponse{
		Lat: lat,
		Lng: lng,
	})
}

// Reverse handles GET /api/geocode/reverse?lat=&lng=
func (h *GeoHandler) Reverse(w http.ResponseWriter, r *http.Request) {
	lat, errLat := strconv.ParseFloat(r.URL.Query().Get("lat"), 64)
	lng, errLng := strconv.ParseFloat(r.URL.Query().Get("lng"), 64)
	if errLat != nil || errLng != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "lat and lng must be numbers")
		return
	}

	zip, err := h.geo.CoordinatesToZip(r.Context(), lat, lng)
	if errors.Is(err, geocode.ErrNotFound) {
		middleware.ErrorResponse(w, http.StatusNotFound, "No ZIP code found for these coordinates")
		return
	}
	if err != nil {
		slog.Error("reverse geocode failed", "error", err, "lat", lat, "lng", lng)
		middleware.ErrorResponse(w, http.StatusBadGateway, "Geocoding service unavailable")
		return
	}

	middleware.JSONResponse(w, http.StatusOK, models.ReverseGeocodeResponse{
		Location: zip,
	})
}

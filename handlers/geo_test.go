// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/danielhkuo/question-hour/geocode"
	"github.com/danielhkuo/question-hour/models"
	"github.com/danielhkuo/question-hour/testutil"
)

func fakeGeocodeUpstream(t *testing.T, status string) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body := map[string]any{"status": status, "results": []map[string]any{}}
		if status == "OK" {
			body["results"] = []map[string]any{{
				"geometry": map[string]any{
					"location": map[string]float64{"lat": 34.09, "lng": -118.41},
				},
				"address_components": []map[string]any{{
					"long_name": "90210",
					"types":     []string{"postal_code"},
				}},
			}}
		}
		json.NewEncoder(w).Encode(body)
	}))
}

func TestGeoLookup(t *testing.T) {
	upstream := fakeGeocodeUpstream(t, "OK")
	defer upstream.Close()

	handler := NewGeoHandler(geocode.New(upstream.URL, "test-key", nil))

	req := testutil.MakeRequest("GET", "/api/geocode/90210", nil, nil)
	req.SetPathValue("zip", "90210")
	w := httptest.NewRecorder()
	handler.Lookup(w, req)

	testutil.AssertStatus(t, w, http.StatusOK)

	var resp models.GeocodeResponse
	if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
		t.Fatalf("Failed to decode response: %v", err)
	}
	if resp.Lat != 34.09 || resp.Lng != -118.41 {
		t.Errorf("Unexpected coordinates: %+v", resp)
	}
}

func TestGeoLookupNotFound(t *testing.T) {
	upstream := fakeGeocodeUpstream(t, "ZERO_RESULTS")
	defer upstream.Close()

	handler := NewGeoHandler(geocode.New(upstream.URL, "test-key", nil))

	req := testutil.MakeRequest("GET", "/api/geocode/00000", nil, nil)
	req.SetPathValue("zip", "00000")
	w := httptest.NewRecorder()
	handler.Lookup(w, req)

	testutil.AssertStatus(t, w, http.StatusNotFound)
}

func TestGeoLookupUpstreamDown(t *testing.T) {
	// Points at a server that was immediately closed
	upstream := fakeGeocodeUpstream(t, "OK")
	upstream.Close()

	handler := NewGeoHandler(geocode.New(upstream.URL, "test-key", nil))

	req := testutil.MakeRequest("GET", "/api/geocode/90210", nil, nil)
	req.SetPathValue("zip", "90210")
	w := httptest.NewRecorder()
	handler.Lookup(w, req)

	testutil.AssertStatus(t, w, http.StatusBadGateway)
}

func TestGeoReverse(t *testing.T) {
	upstream := fakeGeocodeUpstream(t, "OK")
	defer upstream.Close()

	handler := NewGeoHandler(geocode.New(upstream.URL, "test-key", nil))

	req := testutil.MakeRequest("GET", "/api/geocode/reverse?lat=34.09&lng=-118.41", nil, nil)
	w := httptest.NewRecorder()
	handler.Reverse(w, req)

	testutil.AssertStatus(t, w, http.StatusOK)

	var resp models.ReverseGeocodeResponse
	if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
		t.Fatalf("Failed to decode response: %v", err)
	}
	if resp.Location != "90210" {
		t.Errorf("Expected ZIP 90210, got %q", resp.Location)
	}
}

func TestGeoReverseBadParams(t *testing.T) {
	upstream := fakeGeocodeUpstream(t, "OK")
	defer upstream.Close()

	handler := NewGeoHandler(geocode.New(upstream.URL, "test-key", nil))

	for _, path := range []string{
		"/api/geocode/reverse",
		"/api/geocode/reverse?lat=abc&lng=1",
		"/api/geocode/reverse?lat=1",
	} {
		req := testutil.MakeRequest("GET", path, nil, nil)
		w := httptest.NewRecorder()
		handler.Reverse(w, req)
		testutil.AssertStatus(t, w, http.StatusBadRequest)
	}
}

// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

// Package geocode looks up coordinates for ZIP codes (and back) against a
// Google-style geocoding API, with an optional Redis read-through cache for
// forward lookups.
package geocode

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"time"

	"github.com/redis/go-redis/v9"
)

// ErrNotFound is returned when the upstream has no match for the lookup.
var ErrNotFound = errors.New("no match for location")

const (
	cacheTTL       = 24 * time.Hour
	requestTimeout = 10 * time.Second
)

type Client struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
	cache      *redis.Client // nil disables caching
}

// New creates a geocoding client. cache may be nil.
func New(baseURL, apiKey string, cache *redis.Client) *Client {
	return &Client{
		baseURL:    baseURL,
		apiKey:     apiKey,
		httpClient: &http.Client{Timeout: requestTimeout},
		cache:      cache,
	}
}

type coordinates struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// apiResponse mirrors the subset of the Google Geocoding API payload we read
type apiResponse struct {
	Status  string `json:"status"`
	Results []struct {
		Geometry struct {
			Location coordinates `json:"location"`
		} `json:"geometry"`
		AddressComponents []struct {
			LongName string   `json:"long_name"`
			Types    []string `json:"types"`
		} `json:"address_components"`
	} `json:"results"`
}

// ZipToCoordinates resolves a ZIP code to lat/lng. Returns ErrNotFound when
// the upstream has no match. Successful lookups are cached for 24h.
func (c *Client) ZipToCoordinates(ctx context.Context, zip string) (float64, float64, error) {
	key := "geo:zip:" + zip

	if c.cache != nil {
		if cached, err := c.cache.Get(ctx, key).Result(); err == nil {
			var coords coordinates
			if json.Unmarshal([]byte(cached), &coords) == nil {
				return coords.Lat, coords.Lng, nil
			}
		}
	}

	res, err := c.query(ctx, url.Values{"address": {zip}})
	if err != nil {
		return 0, 0, err
	}
	if res.Status == "ZERO_RESULTS" || len(res.Results) == 0 {
		return 0, 0, ErrNotFound
	}
	if res.Status != "OK" {
		return 0, 0, fmt.Errorf("geocoding API status %s", res.Status)
	}

	loc := res.Results[0].Geometry.Location

	if c.cache != nil {
		data, _ := json.Marshal(loc)
		if err := c.cache.Set(ctx, key, data, cacheTTL).Err(); err != nil {
			slog.Warn("failed to cache geocode result", "zip", zip, "error", err)
		}
	}

	return loc.Lat, loc.Lng, nil
}

// CoordinatesToZip reverse-geocodes a lat/lng pair to a ZIP code by scanning
// the result address components for a postal_code. Returns ErrNotFound when
// no result carries one.
func (c *Client) CoordinatesToZip(ctx context.Context, lat, lng float64) (string, error) {
	res, err := c.query(ctx, url.Values{"latlng": {fmt.Sprintf("%f,%f", lat, lng)}})
	if err != nil {
		return "", err
	}
	if res.Status == "ZERO_RESULTS" {
		return "", ErrNotFound
	}
	if res.Status != "OK" {
		return "", fmt.Errorf("geocoding API status %s", res.Status)
	}

	for _, result := range res.Results {
		for _, comp := range result.AddressComponents {
			for _, t := range comp.Types {
				if t == "postal_code" {
					return comp.LongName, nil
				}
			}
		}
	}

	return "", ErrNotFound
}

func (c *Client) query(ctx context.Context, params url.Values) (*apiResponse, error) {
	if c.apiKey != "" {
		params.Set("key", c.apiKey)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"?"+params.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("build geocoding request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("geocoding request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("geocoding API returned %d", resp.StatusCode)
	}

	var out apiResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, fmt.Errorf("decode geocoding response: %w", err)
	}

	return &out, nil
}

// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package viz

import (
	"errors"
	"fmt"
	"math"
	"math/rand"
	"time"

	"github.com/danielhkuo/question-hour/models"
)

// Layout constants. Consumers of the graph and map data rely on these as a
// contract, so they are exported.
const (
	BaseRadius      = 50.0  // minimum node distance from the question root
	RadiusIncrement = 30.0  // radius growth per response within a sentiment group
	MaxRadius       = 300.0 // radius cap
	LinkWidth       = 4
	MaxCoordJitter  = 0.01 // full jitter window per map axis (±half)

	zSpread          = 50.0 // z is drawn from [-zSpread/2, zSpread/2]
	baseMarkerRadius = 5
	maxMarkerRadius  = 30
)

// ErrUnknownSentiment reports a response record whose sentiment is neither
// agree nor disagree. Persisted records can't hit this (the store CHECKs the
// column); it guards direct callers.
var ErrUnknownSentiment = errors.New("unknown sentiment")

// Summary is the single-pass aggregate over a question's responses.
type Summary struct {
	TotalResponses int
	AgreeCount     int
	DisagreeCount  int

	// Stats is keyed by location; Locations preserves first-seen order so
	// derived output is deterministic.
	Stats     map[string]*models.LocationStats
	Locations []string

	MostActive models.ActiveLocation
}

// Summarize builds per-location statistics and sentiment counts in one pass
// over the responses, in submission order. Each submission counts
// independently; duplicates are not collapsed.
func Summarize(responses []models.Response) (Summary, error) {
	sum := Summary{Stats: make(map[string]*models.LocationStats)}

	for _, r := range responses {
		stats, ok := sum.Stats[r.Location]
		if !ok {
			// Coordinates come from the first response seen for the
			// location, never averaged over later ones.
			stats = &models.LocationStats{Lat: r.Lat, Lng: r.Lng}
			sum.Stats[r.Location] = stats
			sum.Locations = append(sum.Locations, r.Location)
		}

		switch r.Response {
		case models.SentimentAgree:
			stats.Agree++
			sum.AgreeCount++
		case models.SentimentDisagree:
			stats.Disagree++
			sum.DisagreeCount++
		default:
			return Summary{}, fmt.Errorf("%w: %q", ErrUnknownSentiment, r.Response)
		}
		stats.Total++
		sum.TotalResponses++
	}

	// Walking first-seen order with a strict comparison keeps ties on the
	// earliest location.
	for _, loc := range sum.Locations {
		if sum.Stats[loc].Total > sum.MostActive.Count {
			sum.MostActive = models.ActiveLocation{Location: loc, Count: sum.Stats[loc].Total}
		}
	}

	return sum, nil
}

// BuildGraph places one root node per question at the origin and one node per
// response around it: agree responses span [0, π) radians, disagree responses
// span [π, 2π), with radius growing by submission index within each sentiment
// group. Every response node links only to the root. The z coordinate is
// random within ±25 for visual de-collision and carries no meaning; pass a
// seeded rng for reproducible output.
func BuildGraph(question models.Question, responses []models.Response, rng *rand.Rand) (models.GraphData, error) {
	root := models.GraphNode{
		ID:    "question-" + question.Text,
		Name:  "Question: " + question.Text,
		Color: models.ColorQuestion,
		Type:  models.NodeTypeQuestion,
		Theme: question.Theme,
	}

	nodes := []models.GraphNode{root}
	links := []models.GraphLink{}

	var agree, disagree []models.Response
	for _, r := range responses {
		switch r.Response {
		case models.SentimentAgree:
			agree = append(agree, r)
		case models.SentimentDisagree:
			disagree = append(disagree, r)
		default:
			return models.GraphData{}, fmt.Errorf("%w: %q", ErrUnknownSentiment, r.Response)
		}
	}

	place := func(group []models.Response, sentiment, color string, offset float64) {
		for i, r := range group {
			angle := offset + float64(i)/float64(len(group))*math.Pi
			radius := math.Min(BaseRadius+float64(i)*RadiusIncrement, MaxRadius)

			node := models.GraphNode{
				ID:        fmt.Sprintf("response-%s-%s-%d", question.Text, sentiment, i),
				Name:      "ZIP: " + r.Location,
				Color:     color,
				X:         math.Cos(angle) * radius,
				Y:         math.Sin(angle) * radius,
				Z:         (rng.Float64() - 0.5) * zSpread,
				Type:      models.NodeTypeResponse,
				Sentiment: sentiment,
				Timestamp: r.Timestamp,
			}
			nodes = append(nodes, node)
			links = append(links, models.GraphLink{
				Source: root.ID,
				Target: node.ID,
				Color:  color,
				Width:  LinkWidth,
			})
		}
	}

	place(agree, models.SentimentAgree, models.ColorAgree, 0)
	place(disagree, models.SentimentDisagree, models.ColorDisagree, math.Pi)

	return models.GraphData{Nodes: nodes, Links: links}, nil
}

// BuildMapPoints produces one marker per distinct location, jittered so
// coincident submissions stay visually distinct. Point color follows the
// location's majority sentiment; ties favor agree.
func BuildMapPoints(sum Summary, rng *rand.Rand) []models.MapPoint {
	points := []models.MapPoint{}

	for _, loc := range sum.Locations {
		stats := sum.Stats[loc]

		color := models.ColorDisagree
		if stats.Agree >= stats.Disagree {
			color = models.ColorAgree
		}

		points = append(points, models.MapPoint{
			ID:    "zip-" + loc,
			Lat:   Jitter(stats.Lat, rng),
			Lng:   Jitter(stats.Lng, rng),
			Color: color,
			Stats: models.PointStats{
				Agree:    stats.Agree,
				Disagree: stats.Disagree,
				Total:    stats.Total,
			},
		})
	}

	return points
}

// Derive is the single entry point for visualization consumers: stats, graph
// nodes/links, and map points for one question and its ordered responses.
func Derive(question models.Question, responses []models.Response, rng *rand.Rand) (models.Visualization, error) {
	sum, err := Summarize(responses)
	if err != nil {
		return models.Visualization{}, err
	}

	graph, err := BuildGraph(question, responses, rng)
	if err != nil {
		return models.Visualization{}, err
	}

	return models.Visualization{
		Graph:  graph,
		Points: BuildMapPoints(sum, rng),
		Stats: models.VizStats{
			TotalResponses:     sum.TotalResponses,
			AgreeCount:         sum.AgreeCount,
			DisagreeCount:      sum.DisagreeCount,
			MostActiveLocation: sum.MostActive,
		},
	}, nil
}

// Jitter offsets a coordinate by a random amount within ±MaxCoordJitter/2.
func Jitter(coord float64, rng *rand.Rand) float64 {
	return coord + (rng.Float64()-0.5)*MaxCoordJitter
}

// MarkerRadius converts a location total into the rendering radius consumers
// use for map markers: min(5+total, 30).
func MarkerRadius(total int) int {
	if r := baseMarkerRadius + total; r < maxMarkerRadius {
		return r
	}
	return maxMarkerRadius
}

// NewRand returns a time-seeded source for production layouts. Tests inject
// fixed seeds instead.
func NewRand() *rand.Rand {
	return rand.New(rand.NewSource(time.Now().UnixNano()))
}

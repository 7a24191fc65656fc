// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package viz

import (
	"errors"
	"math"
	"math/rand"
	"testing"

	"github.com/danielhkuo/question-hour/models"
)

func makeResponse(sentiment, location string, lat, lng float64) models.Response {
	return models.Response{
		Response:  sentiment,
		Location:  location,
		Lat:       lat,
		Lng:       lng,
		Timestamp: "2025-01-15T09:00:00Z",
	}
}

var testQuestion = models.Question{Text: "I arrived to work before 9am today...", Theme: "transportation"}

func TestSummarize_ExampleScenario(t *testing.T) {
	responses := []models.Response{
		makeResponse("agree", "10001", 40.75, -73.99),
		makeResponse("disagree", "10001", 40.75, -73.99),
		makeResponse("agree", "90210", 34.09, -118.41),
	}

	sum, err := Summarize(responses)
	if err != nil {
		t.Fatalf("Summarize failed: %v", err)
	}

	if sum.TotalResponses != 3 || sum.AgreeCount != 2 || sum.DisagreeCount != 1 {
		t.Errorf("Expected totals 3/2/1, got %d/%d/%d",
			sum.TotalResponses, sum.AgreeCount, sum.DisagreeCount)
	}

	ny := sum.Stats["10001"]
	if ny == nil || ny.Agree != 1 || ny.Disagree != 1 || ny.Total != 2 {
		t.Errorf("Unexpected stats for 10001: %+v", ny)
	}

	la := sum.Stats["90210"]
	if la == nil || la.Agree != 1 || la.Disagree != 0 || la.Total != 1 {
		t.Errorf("Unexpected stats for 90210: %+v", la)
	}

	if sum.MostActive.Location != "10001" || sum.MostActive.Count != 2 {
		t.Errorf("Expected most active 10001 with count 2, got %+v", sum.MostActive)
	}
}

func TestSummarize_PartitionInvariant(t *testing.T) {
	testCases := []struct {
		name      string
		responses []models.Response
	}{
		{
			name:      "empty",
			responses: nil,
		},
		{
			name: "single location",
			responses: []models.Response{
				makeResponse("agree", "10001", 40.75, -73.99),
				makeResponse("agree", "10001", 40.75, -73.99),
				makeResponse("disagree", "10001", 40.75, -73.99),
			},
		},
		{
			name: "many locations",
			responses: []models.Response{
				makeResponse("agree", "10001", 40.75, -73.99),
				makeResponse("disagree", "90210", 34.09, -118.41),
				makeResponse("agree", "60601", 41.89, -87.62),
				makeResponse("disagree", "10001", 40.75, -73.99),
				makeResponse("disagree", "60601", 41.89, -87.62),
				makeResponse("agree", "73301", 30.27, -97.74),
			},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			sum, err := Summarize(tc.responses)
			if err != nil {
				t.Fatalf("Summarize failed: %v", err)
			}

			if sum.AgreeCount+sum.DisagreeCount != sum.TotalResponses {
				t.Errorf("Counts are not a partition: %d + %d != %d",
					sum.AgreeCount, sum.DisagreeCount, sum.TotalResponses)
			}
			if sum.TotalResponses != len(tc.responses) {
				t.Errorf("Expected total %d, got %d", len(tc.responses), sum.TotalResponses)
			}
			if len(sum.Stats) != len(sum.Locations) {
				t.Errorf("Stats/Locations size mismatch: %d vs %d", len(sum.Stats), len(sum.Locations))
			}

			// Per-location stats must sum back to the global counts
			var agree, disagree int
			for _, stats := range sum.Stats {
				agree += stats.Agree
				disagree += stats.Disagree
				if stats.Agree+stats.Disagree != stats.Total {
					t.Errorf("Location total is not a partition: %+v", stats)
				}
			}
			if agree != sum.AgreeCount || disagree != sum.DisagreeCount {
				t.Errorf("Per-location sums %d/%d don't match global counts %d/%d",
					agree, disagree, sum.AgreeCount, sum.DisagreeCount)
			}
		})
	}
}

func TestSummarize_Empty(t *testing.T) {
	sum, err := Summarize(nil)
	if err != nil {
		t.Fatalf("Summarize failed: %v", err)
	}

	if sum.TotalResponses != 0 || sum.AgreeCount != 0 || sum.DisagreeCount != 0 {
		t.Errorf("Expected all-zero counts, got %+v", sum)
	}
	if sum.MostActive.Location != "" || sum.MostActive.Count != 0 {
		t.Errorf("Expected empty most active location, got %+v", sum.MostActive)
	}
	if len(sum.Stats) != 0 {
		t.Errorf("Expected empty stats, got %d entries", len(sum.Stats))
	}
}

func TestSummarize_MostActiveTieBreak(t *testing.T) {
	// A and B both end at 3; A was seen first and must win
	responses := []models.Response{
		makeResponse("agree", "10001", 40.75, -73.99),
		makeResponse("agree", "10001", 40.75, -73.99),
		makeResponse("disagree", "10001", 40.75, -73.99),
		makeResponse("agree", "90210", 34.09, -118.41),
		makeResponse("disagree", "90210", 34.09, -118.41),
		makeResponse("disagree", "90210", 34.09, -118.41),
	}

	sum, err := Summarize(responses)
	if err != nil {
		t.Fatalf("Summarize failed: %v", err)
	}

	if sum.MostActive.Location != "10001" {
		t.Errorf("Tie should go to first-seen location 10001, got %s", sum.MostActive.Location)
	}
	if sum.MostActive.Count != 3 {
		t.Errorf("Expected count 3, got %d", sum.MostActive.Count)
	}
}

func TestSummarize_FirstResponseCoordinates(t *testing.T) {
	// Later responses for the same location carry different coordinates;
	// the stats keep the first ones
	responses := []models.Response{
		makeResponse("agree", "10001", 40.75, -73.99),
		makeResponse("disagree", "10001", 40.76, -74.01),
	}

	sum, err := Summarize(responses)
	if err != nil {
		t.Fatalf("Summarize failed: %v", err)
	}

	stats := sum.Stats["10001"]
	if stats.Lat != 40.75 || stats.Lng != -73.99 {
		t.Errorf("Expected first-seen coordinates (40.75, -73.99), got (%v, %v)", stats.Lat, stats.Lng)
	}
}

func TestSummarize_DuplicatesCountIndependently(t *testing.T) {
	// No de-duplication: identical submissions are independent votes
	r := makeResponse("agree", "10001", 40.75, -73.99)
	sum, err := Summarize([]models.Response{r, r, r})
	if err != nil {
		t.Fatalf("Summarize failed: %v", err)
	}

	if sum.AgreeCount != 3 || sum.Stats["10001"].Agree != 3 {
		t.Errorf("Expected 3 independent agree votes, got %d (location %d)",
			sum.AgreeCount, sum.Stats["10001"].Agree)
	}
}

func TestSummarize_UnknownSentiment(t *testing.T) {
	_, err := Summarize([]models.Response{makeResponse("maybe", "10001", 40.75, -73.99)})
	if !errors.Is(err, ErrUnknownSentiment) {
		t.Errorf("Expected ErrUnknownSentiment, got %v", err)
	}
}

func TestBuildGraph_Placement(t *testing.T) {
	responses := []models.Response{
		makeResponse("agree", "10001", 40.75, -73.99),
		makeResponse("agree", "90210", 34.09, -118.41),
		makeResponse("disagree", "60601", 41.89, -87.62),
		makeResponse("agree", "10001", 40.75, -73.99),
		makeResponse("disagree", "73301", 30.27, -97.74),
	}

	graph, err := BuildGraph(testQuestion, responses, rand.New(rand.NewSource(1)))
	if err != nil {
		t.Fatalf("BuildGraph failed: %v", err)
	}

	if len(graph.Nodes) != len(responses)+1 {
		t.Fatalf("Expected %d nodes, got %d", len(responses)+1, len(graph.Nodes))
	}
	if len(graph.Links) != len(responses) {
		t.Fatalf("Expected %d links, got %d", len(responses), len(graph.Links))
	}

	root := graph.Nodes[0]
	if root.ID != "question-"+testQuestion.Text || root.X != 0 || root.Y != 0 || root.Z != 0 {
		t.Errorf("Unexpected root node: %+v", root)
	}
	if root.Color != models.ColorQuestion || root.Type != models.NodeTypeQuestion {
		t.Errorf("Unexpected root color/type: %+v", root)
	}

	// 3 agree then 2 disagree, each placed by index within its group
	expected := []struct {
		sentiment string
		angle     float64
		radius    float64
	}{
		{"agree", 0, 50},
		{"agree", math.Pi / 3, 80},
		{"agree", 2 * math.Pi / 3, 110},
		{"disagree", math.Pi, 50},
		{"disagree", math.Pi + math.Pi/2, 80},
	}

	for i, exp := range expected {
		node := graph.Nodes[i+1]
		wantX := math.Cos(exp.angle) * exp.radius
		wantY := math.Sin(exp.angle) * exp.radius

		if math.Abs(node.X-wantX) > 1e-9 || math.Abs(node.Y-wantY) > 1e-9 {
			t.Errorf("Node %d: expected (%.4f, %.4f), got (%.4f, %.4f)", i, wantX, wantY, node.X, node.Y)
		}
		if node.Sentiment != exp.sentiment {
			t.Errorf("Node %d: expected sentiment %s, got %s", i, exp.sentiment, node.Sentiment)
		}
		if math.Abs(node.Z) > 25 {
			t.Errorf("Node %d: z out of range: %v", i, node.Z)
		}

		wantColor := models.ColorAgree
		if exp.sentiment == "disagree" {
			wantColor = models.ColorDisagree
		}
		if node.Color != wantColor {
			t.Errorf("Node %d: expected color %s, got %s", i, wantColor, node.Color)
		}

		link := graph.Links[i]
		if link.Source != root.ID || link.Target != node.ID {
			t.Errorf("Link %d should connect root to node, got %+v", i, link)
		}
		if link.Color != wantColor || link.Width != LinkWidth {
			t.Errorf("Link %d: expected color %s width %d, got %+v", i, wantColor, LinkWidth, link)
		}
	}
}

func TestBuildGraph_AngularRangesAndRadiusCap(t *testing.T) {
	// Enough responses in one group to hit the radius cap
	var responses []models.Response
	for i := 0; i < 12; i++ {
		responses = append(responses, makeResponse("agree", "10001", 40.75, -73.99))
	}
	for i := 0; i < 6; i++ {
		responses = append(responses, makeResponse("disagree", "90210", 34.09, -118.41))
	}

	graph, err := BuildGraph(testQuestion, responses, rand.New(rand.NewSource(2)))
	if err != nil {
		t.Fatalf("BuildGraph failed: %v", err)
	}

	const tol = 1e-9
	prevAngle := -1.0
	for i, node := range graph.Nodes[1:] {
		radius := math.Hypot(node.X, node.Y)

		groupIdx := i
		if node.Sentiment == "disagree" {
			groupIdx = i - 12
			if groupIdx == 0 {
				prevAngle = -1.0 // angle monotonicity restarts per group
			}
		}

		wantRadius := math.Min(BaseRadius+float64(groupIdx)*RadiusIncrement, MaxRadius)
		if math.Abs(radius-wantRadius) > tol {
			t.Errorf("Node %d: expected radius %v, got %v", i, wantRadius, radius)
		}

		angle := math.Atan2(node.Y, node.X)
		if angle < -tol {
			angle += 2 * math.Pi
		}
		if node.Sentiment == "agree" {
			if angle < -tol || angle >= math.Pi-tol {
				t.Errorf("Agree node %d: angle %v outside [0, π)", i, angle)
			}
		} else {
			if angle < math.Pi-tol || angle >= 2*math.Pi-tol {
				t.Errorf("Disagree node %d: angle %v outside [π, 2π)", i, angle)
			}
		}
		if angle < prevAngle-tol {
			t.Errorf("Node %d: angle %v decreased from %v within group", i, angle, prevAngle)
		}
		prevAngle = angle
	}
}

func TestBuildGraph_Empty(t *testing.T) {
	graph, err := BuildGraph(testQuestion, nil, rand.New(rand.NewSource(3)))
	if err != nil {
		t.Fatalf("BuildGraph failed: %v", err)
	}

	if len(graph.Nodes) != 1 {
		t.Errorf("Expected only the root node, got %d nodes", len(graph.Nodes))
	}
	if len(graph.Links) != 0 {
		t.Errorf("Expected no links, got %d", len(graph.Links))
	}
}

func TestBuildMapPoints(t *testing.T) {
	responses := []models.Response{
		makeResponse("agree", "10001", 40.75, -73.99),
		makeResponse("disagree", "10001", 40.75, -73.99), // tie: favors agree
		makeResponse("disagree", "90210", 34.09, -118.41),
	}

	sum, err := Summarize(responses)
	if err != nil {
		t.Fatalf("Summarize failed: %v", err)
	}

	points := BuildMapPoints(sum, rand.New(rand.NewSource(4)))
	if len(points) != 2 {
		t.Fatalf("Expected one point per distinct location, got %d", len(points))
	}

	ny := points[0]
	if ny.ID != "zip-10001" {
		t.Errorf("Expected points in first-seen order, got %s first", ny.ID)
	}
	if ny.Color != models.ColorAgree {
		t.Errorf("Tie should favor agree, got %s", ny.Color)
	}
	if math.Abs(ny.Lat-40.75) > MaxCoordJitter/2 || math.Abs(ny.Lng+73.99) > MaxCoordJitter/2 {
		t.Errorf("Jitter out of bounds: (%v, %v)", ny.Lat, ny.Lng)
	}
	if ny.Stats.Agree != 1 || ny.Stats.Disagree != 1 || ny.Stats.Total != 2 {
		t.Errorf("Unexpected point stats: %+v", ny.Stats)
	}

	la := points[1]
	if la.Color != models.ColorDisagree {
		t.Errorf("Disagree-majority location should be %s, got %s", models.ColorDisagree, la.Color)
	}
}

func TestDerive_IdempotentModuloRandomness(t *testing.T) {
	responses := []models.Response{
		makeResponse("agree", "10001", 40.75, -73.99),
		makeResponse("disagree", "90210", 34.09, -118.41),
		makeResponse("agree", "10001", 40.75, -73.99),
	}

	first, err := Derive(testQuestion, responses, rand.New(rand.NewSource(5)))
	if err != nil {
		t.Fatalf("Derive failed: %v", err)
	}
	second, err := Derive(testQuestion, responses, rand.New(rand.NewSource(99)))
	if err != nil {
		t.Fatalf("Derive failed: %v", err)
	}

	// Stats and everything except z/jitter must be identical across runs
	if first.Stats != second.Stats {
		t.Errorf("Stats differ across derivations: %+v vs %+v", first.Stats, second.Stats)
	}
	if len(first.Graph.Nodes) != len(second.Graph.Nodes) {
		t.Fatalf("Node counts differ: %d vs %d", len(first.Graph.Nodes), len(second.Graph.Nodes))
	}
	for i := range first.Graph.Nodes {
		a, b := first.Graph.Nodes[i], second.Graph.Nodes[i]
		if a.ID != b.ID || a.Color != b.Color || a.X != b.X || a.Y != b.Y {
			t.Errorf("Node %d differs beyond z: %+v vs %+v", i, a, b)
		}
	}
	for i := range first.Points {
		a, b := first.Points[i], second.Points[i]
		if a.ID != b.ID || a.Color != b.Color || a.Stats != b.Stats {
			t.Errorf("Point %d differs beyond jitter: %+v vs %+v", i, a, b)
		}
	}

	// Identical seeds reproduce the layout exactly
	third, _ := Derive(testQuestion, responses, rand.New(rand.NewSource(5)))
	for i := range first.Graph.Nodes {
		if first.Graph.Nodes[i] != third.Graph.Nodes[i] {
			t.Errorf("Seeded derivation not reproducible at node %d", i)
		}
	}
}

func TestDerive_Empty(t *testing.T) {
	v, err := Derive(testQuestion, nil, rand.New(rand.NewSource(6)))
	if err != nil {
		t.Fatalf("Derive failed: %v", err)
	}

	if v.Stats.TotalResponses != 0 {
		t.Errorf("Expected zero stats, got %+v", v.Stats)
	}
	if v.Stats.MostActiveLocation.Location != "" || v.Stats.MostActiveLocation.Count != 0 {
		t.Errorf("Expected empty most active location, got %+v", v.Stats.MostActiveLocation)
	}
	if len(v.Graph.Nodes) != 1 || len(v.Graph.Links) != 0 || len(v.Points) != 0 {
		t.Errorf("Expected root-only graph and no points, got %d nodes / %d links / %d points",
			len(v.Graph.Nodes), len(v.Graph.Links), len(v.Points))
	}
}

func TestMarkerRadius(t *testing.T) {
	testCases := []struct {
		total    int
		expected int
	}{
		{0, 5},
		{1, 6},
		{10, 15},
		{25, 30},
		{26, 30},
		{1000, 30},
	}

	for _, tc := range testCases {
		if got := MarkerRadius(tc.total); got != tc.expected {
			t.Errorf("MarkerRadius(%d): expected %d, got %d", tc.total, tc.expected, got)
		}
	}
}

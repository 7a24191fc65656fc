package models

import "time"

// Sentiment constants
const (
	SentimentAgree    = "agree"
	SentimentDisagree = "disagree"
)

// Visualization colors
const (
	ColorAgree    = "green"
	ColorDisagree = "red"
	ColorQuestion = "#8000FF"
)

// Node types
const (
	NodeTypeQuestion = "question"
	NodeTypeResponse = "response"
)

// Request types

// Lat/Lng are pointers so a missing coordinate is distinguishable from 0.
type SubmitResponseRequest struct {
	Question  string   `json:"question"`
	Response  string   `json:"response"`
	Timestamp string   `json:"timestamp"`
	Location  string   `json:"location"`
	Lat       *float64 `json:"lat"`
	Lng       *float64 `json:"lng"`
}

type SetQuestionRequest struct {
	Text  string `json:"text"`
	Theme string `json:"theme"`
}

// Response types

type SetQuestionResponse struct {
	Question Question  `json:"question"`
	Archived *Question `json:"archived,omitempty"`
}

type QuestionResponsesResponse struct {
	Question  Question   `json:"question"`
	Responses []Response `json:"responses"`
}

type ResetResponse struct {
	Message string `json:"message"`
}

type GeocodeResponse struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

type ReverseGeocodeResponse struct {
	Location string `json:"location"`
}

// Domain types

type Question struct {
	Text           string     `json:"text"`
	Theme          string     `json:"theme"`
	Current        bool       `json:"current"`
	Timestamp      time.Time  `json:"timestamp"`
	ArchivedAt     *time.Time `json:"archivedAt,omitempty"`
	TotalResponses int        `json:"totalResponses"`
	AgreeCount     int        `json:"agreeCount"`
	DisagreeCount  int        `json:"disagreeCount"`
}

type Response struct {
	ID        string  `json:"id"`
	Question  string  `json:"question"`
	Response  string  `json:"response"`
	Location  string  `json:"location"`
	Lat       float64 `json:"lat"`
	Lng       float64 `json:"lng"`
	Timestamp string  `json:"timestamp"`
}

// Derived types (produced by the viz package, never persisted)

// LocationStats aggregates sentiment counts for one location. Lat/Lng come
// from the first response seen there, not an average.
type LocationStats struct {
	Agree    int     `json:"agree"`
	Disagree int     `json:"disagree"`
	Total    int     `json:"total"`
	Lat      float64 `json:"lat"`
	Lng      float64 `json:"lng"`
}

type ActiveLocation struct {
	Location string `json:"location"`
	Count    int    `json:"count"`
}

type GraphNode struct {
	ID        string  `json:"id"`
	Name      string  `json:"name"`
	Color     string  `json:"color"`
	X         float64 `json:"x"`
	Y         float64 `json:"y"`
	Z         float64 `json:"z"`
	Type      string  `json:"type"`
	Theme     string  `json:"theme,omitempty"`
	Sentiment string  `json:"sentiment,omitempty"`
	Timestamp string  `json:"timestamp,omitempty"`
}

type GraphLink struct {
	Source string `json:"source"`
	Target string `json:"target"`
	Color  string `json:"color"`
	Width  int    `json:"width"`
}

type GraphData struct {
	Nodes []GraphNode `json:"nodes"`
	Links []GraphLink `json:"links"`
}

type PointStats struct {
	Agree    int `json:"agree"`
	Disagree int `json:"disagree"`
	Total    int `json:"total"`
}

type MapPoint struct {
	ID    string     `json:"id"`
	Lat   float64    `json:"lat"`
	Lng   float64    `json:"lng"`
	Color string     `json:"color"`
	Stats PointStats `json:"stats"`
}

type VizStats struct {
	TotalResponses     int            `json:"totalResponses"`
	AgreeCount         int            `json:"agreeCount"`
	DisagreeCount      int            `json:"disagreeCount"`
	MostActiveLocation ActiveLocation `json:"mostActiveLocation"`
}

type Visualization struct {
	Graph  GraphData  `json:"graph"`
	Points []MapPoint `json:"points"`
	Stats  VizStats   `json:"stats"`
}

// Error response

type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}

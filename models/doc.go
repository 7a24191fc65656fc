// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package models defines request, response, domain, and derived types for the API.

# Request Types

Types for parsing incoming JSON:

  - SubmitResponseRequest: question, response, timestamp, location, lat, lng
  - SetQuestionRequest: text, theme

# Domain Types

Persisted entities:

  - Question: prompt text (the identity key), theme, lifecycle state, and
    rollup counts frozen at archive time
  - Response: one sentiment submission tied to a question and a location

# Derived Types

Produced by the viz package and consumed by the 3-D graph and map renderers,
never persisted:

  - LocationStats: per-location agree/disagree/total with representative lat/lng
  - GraphNode, GraphLink, GraphData: force-graph input
  - MapPoint: one jittered marker per distinct location
  - VizStats, Visualization: the full derivation payload

# Constants

Sentiments:

	SentimentAgree    = "agree"
	SentimentDisagree = "disagree"

Colors mirror sentiment on nodes, links, and markers; the question root node
is ColorQuestion.

JSON field names follow the original frontend contract (camelCase), so the
existing graph and map clients consume responses unchanged.
*/
package models

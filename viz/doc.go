// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package viz turns a question and its ordered responses into visualization
data: rollup statistics, a 3-D force-graph node/link set, and map markers.

Everything here is pure - no store access, no network - so it is safe to call
concurrently on any snapshot of responses.

# Aggregation

Summarize makes one pass over the responses in submission order:

	sum, err := viz.Summarize(responses)

It produces sentiment counts, per-location LocationStats (coordinates from
the first response seen at each location), and the most active location.
Ties on the most active location go to the location seen first.

# Layout

BuildGraph places the question root at the origin with agree responses on
angles [0, π) and disagree responses on [π, 2π). Within a sentiment group the
angle is index/count of a half-circle and the radius is

	min(BaseRadius + index*RadiusIncrement, MaxRadius)

so later responses sit further out, capped. BuildMapPoints emits one marker
per distinct location with ±MaxCoordJitter/2 of random offset per axis.

# Randomness

The z coordinate and the map jitter exist only for visual de-collision. Both
take a *rand.Rand so tests can inject a fixed seed; production callers use
NewRand.

# Derivation Entry Point

Derive bundles all of the above:

	v, err := viz.Derive(question, responses, viz.NewRand())
	// v.Graph, v.Points, v.Stats
*/
package viz

// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

// Package handlers implements the HTTP endpoints: response submission and
// retrieval, the question lifecycle, visualization derivation, and the
// geocoding proxy. Handlers hold their dependencies as struct fields and
// write JSON through the middleware helpers.
package handlers

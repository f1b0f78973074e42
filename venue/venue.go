// SPDX-License-Identifier: MIT

// Package venue defines the labelled geographic points a tour visits and
// the loaders that read them from tabular files (CSV, Parquet).
//
// A venue collection is valid when it holds at least two venues whose ids
// form the dense range 1..n (in any order) and whose coordinates lie in
// [-90,90] × [-180,180]. Index i of every derived structure corresponds to
// venue id i+1.
package venue

import (
	"math"
	"sort"

	"github.com/juju/errors"
)

var (
	// ErrInvalidInput marks malformed or insufficient venue data.
	ErrInvalidInput = errors.New("venue: invalid input")

	// ErrUnsupportedFormat is returned by LoadFile for unknown extensions.
	ErrUnsupportedFormat = errors.New("venue: unsupported file format")
)

// MinVenues is the smallest collection a distance matrix can be built from.
const MinVenues = 2

// Venue is a point of interest. Values are immutable once loaded.
type Venue struct {
	ID   int     `json:"id"`
	Name string  `json:"name"`
	Lat  float64 `json:"lat"`
	Lon  float64 `json:"lon"`
}

// Index returns the zero-based matrix index of v (ID-1).
func (v Venue) Index() int { return v.ID - 1 }

// Validate checks the collection invariants: len ≥ MinVenues, ids unique
// and dense in 1..n, coordinates finite and in range.
//
// Complexity: O(n) time, O(n) space.
func Validate(vs []Venue) error {
	n := len(vs)
	if n < MinVenues {
		return errors.Annotatef(ErrInvalidInput, "need at least %d venues, got %d", MinVenues, n)
	}
	seen := make([]bool, n+1)
	for k, v := range vs {
		if v.ID < 1 || v.ID > n {
			return errors.Annotatef(ErrInvalidInput, "row %d: id %d outside 1..%d", k, v.ID, n)
		}
		if seen[v.ID] {
			return errors.Annotatef(ErrInvalidInput, "row %d: duplicate id %d", k, v.ID)
		}
		seen[v.ID] = true
		if math.IsNaN(v.Lat) || v.Lat < -90 || v.Lat > 90 {
			return errors.Annotatef(ErrInvalidInput, "venue %d: latitude %v outside [-90,90]", v.ID, v.Lat)
		}
		if math.IsNaN(v.Lon) || v.Lon < -180 || v.Lon > 180 {
			return errors.Annotatef(ErrInvalidInput, "venue %d: longitude %v outside [-180,180]", v.ID, v.Lon)
		}
	}

	return nil
}

// SortByID returns a copy of vs ordered by id, so that out[i].ID == i+1
// for a valid collection.
func SortByID(vs []Venue) []Venue {
	out := make([]Venue, len(vs))
	copy(out, vs)
	sort.SliceStable(out, func(a, b int) bool { return out[a].ID < out[b].ID })

	return out
}

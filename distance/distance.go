// SPDX-License-Identifier: MIT

// Package distance builds the all-pairs great-circle distance table for a
// venue collection.
//
// Distances use the haversine formula on a sphere of radius EarthRadiusKm:
//
//	h = sin²(Δφ/2) + cos φ1 · cos φ2 · sin²(Δλ/2)
//	d = 2R · asin(√h)
//
// The radius and formula are fixed so optimal tours are reproducible
// across implementations; no ellipsoid correction is applied.
package distance

import (
	"math"

	"github.com/juju/errors"
	"github.com/liam-crow/stats-blog/matrix"
	"github.com/liam-crow/stats-blog/venue"
)

// EarthRadiusKm is the mean Earth radius.
const EarthRadiusKm = 6371.0

// HalfCircumferenceKm is the antipodal distance πR.
const HalfCircumferenceKm = math.Pi * EarthRadiusKm

// degToRad converts degrees to radians.
func degToRad(d float64) float64 { return d * math.Pi / 180 }

// Haversine returns the great-circle distance in kilometres between two
// points given in decimal degrees.
func Haversine(lat1, lon1, lat2, lon2 float64) float64 {
	phi1, phi2 := degToRad(lat1), degToRad(lat2)
	sinLat := math.Sin(degToRad(lat2-lat1) / 2)
	sinLon := math.Sin(degToRad(lon2-lon1) / 2)

	h := sinLat*sinLat + math.Cos(phi1)*math.Cos(phi2)*sinLon*sinLon
	// Rounding can push h a hair above 1 for antipodes.
	if h > 1 {
		h = 1
	}

	return 2 * EarthRadiusKm * math.Asin(math.Sqrt(h))
}

// Between returns the distance between two venues.
func Between(a, b venue.Venue) float64 {
	return Haversine(a.Lat, a.Lon, b.Lat, b.Lon)
}

// Build validates vs and returns the symmetric n×n distance table indexed
// by venue id-1. Each unordered pair is computed once.
//
// Errors: venue.ErrInvalidInput (annotated) for any invalid collection.
//
// Complexity: O(n²) time, n(n-1)/2 stored values.
func Build(vs []venue.Venue) (matrix.Matrix, error) {
	if err := venue.Validate(vs); err != nil {
		return nil, errors.Annotate(err, "distance.Build")
	}
	sorted := venue.SortByID(vs)
	n := len(sorted)

	d, err := matrix.NewSymmetric(n)
	if err != nil {
		return nil, errors.Trace(err)
	}
	var i, j int
	for i = 0; i < n; i++ {
		for j = i + 1; j < n; j++ {
			if err = d.SetSym(i, j, Between(sorted[i], sorted[j])); err != nil {
				return nil, errors.Trace(err)
			}
		}
	}

	return d, nil
}

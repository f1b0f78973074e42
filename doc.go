// SPDX-License-Identifier: MIT

// Package statsblog is the root of venuetour, an exact solver for the
// shortest (or longest) closed tour through a set of named venues.
//
// The packages form one pipeline:
//
//	venue/        venue records, CSV and Parquet loaders
//	distance/     haversine distance table (km)
//	matrix/       dense and packed-symmetric distance storage
//	milp/         MILP model and branch-and-bound over LP relaxations
//	tsp/          MTZ formulation, tour reconstruction and checks, Held–Karp
//	config/       run settings from .env files and the environment
//	pipeline/     load → measure → solve → report
//	report/       text and JSON run artefacts
//	cmd/venuetour  command-line front end
//
// The bundled testdata/afl_venues.csv holds the 17 AFL venues; solving it
// searches (17−1)!/2 = 10,461,394,944,000 distinct tours.
package statsblog

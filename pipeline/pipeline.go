// SPDX-License-Identifier: MIT

// Package pipeline runs one venue tour end to end: load, measure, solve,
// report. A run either produces a complete report or an error; nothing is
// retried and no partial tour is returned.
package pipeline

import (
	"context"
	"time"

	log "github.com/golang/glog"
	"github.com/google/uuid"
	"github.com/juju/errors"
	"github.com/liam-crow/stats-blog/config"
	"github.com/liam-crow/stats-blog/distance"
	"github.com/liam-crow/stats-blog/report"
	"github.com/liam-crow/stats-blog/tsp"
	"github.com/liam-crow/stats-blog/venue"
)

// Run loads cfg.Input and solves it.
func Run(ctx context.Context, cfg config.Config) (*report.Report, error) {
	if cfg.Input == "" {
		return nil, errors.Annotate(config.ErrInvalidConfig, "no input file")
	}
	vs, err := venue.LoadFile(cfg.Input)
	if err != nil {
		return nil, errors.Annotate(err, "load venues")
	}
	log.V(1).Infof("loaded %d venues from %s", len(vs), cfg.Input)

	r, err := Solve(ctx, vs, cfg)
	if err != nil {
		return nil, err
	}
	r.Input = cfg.Input
	return r, nil
}

// Solve runs the pipeline on venues already in memory.
//
// cfg.TimeLimit bounds the whole run: it becomes a context deadline as
// well as the solver time limit.
func Solve(ctx context.Context, vs []venue.Venue, cfg config.Config) (*report.Report, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	runID := uuid.NewString()
	start := time.Now()
	if cfg.TimeLimit > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, cfg.TimeLimit)
		defer cancel()
	}

	dist, err := distance.Build(vs)
	if err != nil {
		return nil, errors.Annotatef(err, "run %s", runID)
	}
	sorted := venue.SortByID(vs)
	log.Infof("run %s: %d venues, objective %v, time limit %v", runID, len(sorted), cfg.Objective, cfg.TimeLimit)

	res, err := tsp.Solve(ctx, dist, cfg.SolverOptions())
	if err != nil {
		log.Errorf("run %s: solve failed after %v: %v", runID, time.Since(start), err)
		return nil, errors.Annotatef(err, "run %s", runID)
	}
	log.V(1).Infof("run %s: tour %s", runID, tsp.DebugString(res.Tour))

	r, err := report.Build(sorted, dist, res)
	if err != nil {
		return nil, errors.Annotatef(err, "run %s", runID)
	}
	r.RunID = runID
	r.Elapsed = time.Since(start)
	r.System = report.CollectSysInfo()

	log.Infof("run %s: %s tour %.3f km, %d nodes, verified=%t, %v",
		runID, res.Objective, r.TotalKm, r.Nodes, r.Verified, r.Elapsed)
	return r, nil
}

// SPDX-License-Identifier: MIT

// Package report turns an optimal tour into the run artefact printed by
// venuetour, as aligned text or JSON.
package report

import (
	"encoding/json"
	"fmt"
	"io"
	"text/tabwriter"
	"time"

	"github.com/juju/errors"
	"github.com/liam-crow/stats-blog/matrix"
	"github.com/liam-crow/stats-blog/tsp"
	"github.com/liam-crow/stats-blog/venue"
)

// Stop is one position of the closed tour.
type Stop struct {
	Order        int     `json:"order"`
	VenueID      int     `json:"venue_id"`
	Name         string  `json:"name"`
	LegKm        float64 `json:"leg_km"`
	CumulativeKm float64 `json:"cumulative_km"`
}

// Report describes one solved instance.
type Report struct {
	RunID       string        `json:"run_id"`
	Input       string        `json:"input,omitempty"`
	Objective   string        `json:"objective"`
	Venues      []venue.Venue `json:"venues"`
	Tour        []Stop        `json:"tour"`
	TotalKm     float64       `json:"total_km"`
	Nodes       int           `json:"nodes"`
	Elapsed     time.Duration `json:"elapsed_ns"`
	Verified    bool          `json:"verified"`
	SearchSpace string        `json:"search_space"`
	System      SysInfo       `json:"system"`
}

// Build lays res out over the venues it was solved for. vs must be sorted
// by id so that vs[i] is matrix index i.
func Build(vs []venue.Venue, dist matrix.Matrix, res tsp.Result) (*Report, error) {
	n := len(vs)
	if err := tsp.ValidateTour(res.Tour, n, 0); err != nil {
		return nil, errors.Annotate(err, "report")
	}

	r := &Report{
		Objective: res.Objective.String(),
		Venues:    vs,
		Tour:      make([]Stop, len(res.Tour)),
		Nodes:     res.Nodes,
		Verified:  res.Verified,
	}
	var cum float64
	for k, idx := range res.Tour {
		var leg float64
		if k > 0 {
			w, err := dist.At(res.Tour[k-1], idx)
			if err != nil {
				return nil, errors.Annotatef(err, "report: leg %d", k)
			}
			leg = w
		}
		cum += leg
		r.Tour[k] = Stop{Order: k, VenueID: vs[idx].ID, Name: vs[idx].Name, LegKm: leg, CumulativeKm: cum}
	}
	r.TotalKm = res.Cost

	if c, err := tsp.HamiltonianCycles(n); err == nil {
		r.SearchSpace = c.String()
	}
	return r, nil
}

// WriteJSON writes r as indented JSON.
func WriteJSON(w io.Writer, r *Report) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return errors.Trace(enc.Encode(r))
}

// WriteText writes a summary, the tour table and, when dist is not nil,
// the distance matrix.
func WriteText(w io.Writer, r *Report, dist matrix.Matrix) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)

	fmt.Fprintf(tw, "run\t%s\n", r.RunID)
	if r.Input != "" {
		fmt.Fprintf(tw, "input\t%s\n", r.Input)
	}
	fmt.Fprintf(tw, "objective\t%s\n", r.Objective)
	fmt.Fprintf(tw, "venues\t%d (%s distinct tours)\n", len(r.Venues), r.SearchSpace)
	fmt.Fprintf(tw, "total\t%.3f km\n", r.TotalKm)
	fmt.Fprintf(tw, "nodes\t%d\n", r.Nodes)
	fmt.Fprintf(tw, "verified\t%t\n", r.Verified)
	fmt.Fprintf(tw, "elapsed\t%v\n", r.Elapsed.Round(time.Millisecond))
	fmt.Fprintf(tw, "system\t%s / %s / %s\n", r.System.Platform, r.System.CPU, r.System.RAM)
	if err := tw.Flush(); err != nil {
		return errors.Trace(err)
	}

	fmt.Fprintln(w)
	tw = tabwriter.NewWriter(w, 0, 0, 2, ' ', tabwriter.AlignRight)
	fmt.Fprintln(tw, "#\tid\tvenue\tleg km\ttotal km\t")
	for _, s := range r.Tour {
		fmt.Fprintf(tw, "%d\t%d\t%s\t%.3f\t%.3f\t\n", s.Order, s.VenueID, s.Name, s.LegKm, s.CumulativeKm)
	}
	if err := tw.Flush(); err != nil {
		return errors.Trace(err)
	}

	if dist == nil {
		return nil
	}
	fmt.Fprintln(w)
	fmt.Fprintln(w, "distance matrix (km)")
	return writeMatrix(w, r.Venues, dist)
}

func writeMatrix(w io.Writer, vs []venue.Venue, dist matrix.Matrix) error {
	tw := tabwriter.NewWriter(w, 0, 0, 1, ' ', tabwriter.AlignRight)
	fmt.Fprint(tw, "\t")
	for _, v := range vs {
		fmt.Fprintf(tw, "%d\t", v.ID)
	}
	fmt.Fprintln(tw)
	for i, v := range vs {
		fmt.Fprintf(tw, "%d\t", v.ID)
		for j := range vs {
			d, err := dist.At(i, j)
			if err != nil {
				return errors.Annotatef(err, "report: matrix %d,%d", i, j)
			}
			fmt.Fprintf(tw, "%.1f\t", d)
		}
		fmt.Fprintln(tw)
	}
	return errors.Trace(tw.Flush())
}

package report_test

import (
	"bytes"
	"encoding/json"
	"math"
	"strings"
	"testing"
	"time"

	"github.com/liam-crow/stats-blog/matrix"
	"github.com/liam-crow/stats-blog/report"
	"github.com/liam-crow/stats-blog/tsp"
	"github.com/liam-crow/stats-blog/venue"
	"github.com/stretchr/testify/require"
)

func squareFixture(t *testing.T) ([]venue.Venue, *matrix.Dense, tsp.Result) {
	t.Helper()
	vs := []venue.Venue{
		{ID: 1, Name: "South West"},
		{ID: 2, Name: "South East", Lon: 1},
		{ID: 3, Name: "North East", Lat: 1, Lon: 1},
		{ID: 4, Name: "North West", Lat: 1},
	}
	s := math.Sqrt2
	d, err := matrix.NewDenseFrom([][]float64{
		{0, 1, s, 1},
		{1, 0, 1, s},
		{s, 1, 0, 1},
		{1, s, 1, 0},
	})
	require.NoError(t, err)
	res := tsp.Result{
		Tour:      []int{0, 3, 2, 1, 0},
		Cost:      4,
		Nodes:     3,
		Objective: tsp.MinimizeDistance,
		Verified:  true,
	}
	return vs, d, res
}

func TestBuild(t *testing.T) {
	vs, d, res := squareFixture(t)
	r, err := report.Build(vs, d, res)
	require.NoError(t, err)

	require.Equal(t, "min", r.Objective)
	require.Equal(t, "3", r.SearchSpace)
	require.Equal(t, 4.0, r.TotalKm)
	require.Equal(t, 3, r.Nodes)
	require.True(t, r.Verified)
	require.Len(t, r.Tour, 5)

	require.Equal(t, report.Stop{Order: 0, VenueID: 1, Name: "South West"}, r.Tour[0])
	require.Equal(t, report.Stop{Order: 1, VenueID: 4, Name: "North West", LegKm: 1, CumulativeKm: 1}, r.Tour[1])
	last := r.Tour[4]
	require.Equal(t, 1, last.VenueID)
	require.InDelta(t, 4, last.CumulativeKm, 1e-12)
}

func TestBuild_RejectsForeignTour(t *testing.T) {
	vs, d, res := squareFixture(t)
	res.Tour = []int{0, 1, 2, 0}
	_, err := report.Build(vs, d, res)
	require.ErrorIs(t, err, tsp.ErrInvalidInput)
}

func TestWriteText(t *testing.T) {
	vs, d, res := squareFixture(t)
	r, err := report.Build(vs, d, res)
	require.NoError(t, err)
	r.RunID = "run-1"
	r.Input = "square.csv"
	r.Elapsed = 1500 * time.Millisecond
	r.System = report.SysInfo{Platform: "linux", CPU: "cpu", RAM: "8 GB"}

	var buf bytes.Buffer
	require.NoError(t, report.WriteText(&buf, r, d))
	out := buf.String()

	for _, want := range []string{
		"run        run-1",
		"input      square.csv",
		"venues     4 (3 distinct tours)",
		"total      4.000 km",
		"elapsed    1.5s",
		"system     linux / cpu / 8 GB",
		"North West",
		"distance matrix (km)",
		"1.4",
	} {
		require.Contains(t, out, want)
	}

	buf.Reset()
	require.NoError(t, report.WriteText(&buf, r, nil))
	require.NotContains(t, buf.String(), "distance matrix")
	require.Equal(t, 1, strings.Count(buf.String(), "South East"))
}

func TestWriteJSON(t *testing.T) {
	vs, d, res := squareFixture(t)
	r, err := report.Build(vs, d, res)
	require.NoError(t, err)
	r.RunID = "run-2"

	var buf bytes.Buffer
	require.NoError(t, report.WriteJSON(&buf, r))

	var got map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &got))
	require.Equal(t, "run-2", got["run_id"])
	require.Equal(t, "min", got["objective"])
	require.Equal(t, 4.0, got["total_km"])
	require.Len(t, got["tour"], 5)
	require.Len(t, got["venues"], 4)
	require.NotContains(t, got, "input")
}

func TestCollectSysInfo(t *testing.T) {
	si := report.CollectSysInfo()
	require.NotEmpty(t, si.Platform)
	require.NotEmpty(t, si.CPU)
	require.NotEmpty(t, si.RAM)
}

// SPDX-License-Identifier: MIT

// Command venuetour finds the exact shortest (or longest) closed tour
// through a set of venues.
//
//	venuetour solve -i testdata/afl_venues.csv --verify
//	venuetour solve -i venues.parquet --maximize --format json
//	venuetour count --n 17
//	venuetour convert --in venues.csv --out venues.parquet
//
// Settings come from VENUETOUR_* variables and an optional .env file;
// flags override both.
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strconv"

	log "github.com/golang/glog"
	"github.com/juju/errors"
	"github.com/liam-crow/stats-blog/config"
	"github.com/liam-crow/stats-blog/distance"
	"github.com/liam-crow/stats-blog/pipeline"
	"github.com/liam-crow/stats-blog/report"
	"github.com/liam-crow/stats-blog/tsp"
	"github.com/liam-crow/stats-blog/venue"
	"github.com/urfave/cli"
)

func main() {
	defer log.Flush()
	if err := newApp(os.Stdout).Run(os.Args); err != nil {
		log.Exitf("venuetour: %v", err)
	}
}

func newApp(out io.Writer) *cli.App {
	// -v is glog's verbosity; keep --version without the short alias.
	cli.VersionFlag = cli.BoolFlag{Name: "version", Usage: "print the version"}

	app := cli.NewApp()
	app.Name = "venuetour"
	app.Usage = "exact venue tours over great-circle distances"
	app.Version = "0.3.0"
	app.Writer = out
	app.Flags = []cli.Flag{
		cli.IntFlag{Name: "v", Usage: "log verbosity (glog -v)"},
	}
	app.Before = setupLogging
	app.Commands = []cli.Command{
		{
			Name:  "solve",
			Usage: "solve the tour for a venue file",
			Flags: []cli.Flag{
				cli.StringFlag{Name: "input, i", Usage: "venue file (.csv or .parquet)"},
				cli.BoolFlag{Name: "maximize", Usage: "find the longest tour instead of the shortest"},
				cli.DurationFlag{Name: "time-limit", Usage: "wall-clock limit for the solve, 0 for none"},
				cli.IntFlag{Name: "max-nodes", Usage: "branch-and-bound node limit, 0 for none"},
				cli.BoolFlag{Name: "verify", Usage: "cross-check with Held-Karp on small inputs"},
				cli.StringFlag{Name: "format", Usage: "output format: text or json"},
				cli.StringFlag{Name: "env", Value: ".env", Usage: "optional .env file"},
			},
			Action: solve,
		},
		{
			Name:  "count",
			Usage: "print the number of distinct tours (n-1)!/2",
			Flags: []cli.Flag{
				cli.IntFlag{Name: "n", Value: 17, Usage: "number of venues"},
			},
			Action: count,
		},
		{
			Name:  "convert",
			Usage: "convert a venue file to Parquet",
			Flags: []cli.Flag{
				cli.StringFlag{Name: "in", Usage: "source venue file (.csv or .parquet)"},
				cli.StringFlag{Name: "out", Usage: "destination .parquet file"},
			},
			Action: convert,
		},
	}
	return app
}

// setupLogging routes glog to stderr at the requested verbosity.
func setupLogging(c *cli.Context) error {
	if err := flag.Set("logtostderr", "true"); err != nil {
		return errors.Trace(err)
	}
	if err := flag.Set("v", strconv.Itoa(c.GlobalInt("v"))); err != nil {
		return errors.Trace(err)
	}
	// glog expects the standard flag set to be parsed.
	return errors.Trace(flag.CommandLine.Parse(nil))
}

func solve(c *cli.Context) error {
	cfg, err := config.Load(c.String("env"))
	if err != nil {
		return err
	}
	if c.IsSet("input") {
		cfg.Input = c.String("input")
	}
	if c.Bool("maximize") {
		cfg.Objective = tsp.MaximizeDistance
	}
	if c.IsSet("time-limit") {
		cfg.TimeLimit = c.Duration("time-limit")
	}
	if c.IsSet("max-nodes") {
		cfg.MaxNodes = c.Int("max-nodes")
	}
	if c.Bool("verify") {
		cfg.Verify = true
	}
	if c.IsSet("format") {
		cfg.Format = c.String("format")
	}
	if err = cfg.Validate(); err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	r, err := pipeline.Run(ctx, cfg)
	if err != nil {
		return err
	}
	if cfg.Format == config.FormatJSON {
		return report.WriteJSON(c.App.Writer, r)
	}
	dist, err := distance.Build(r.Venues)
	if err != nil {
		return errors.Trace(err)
	}
	return report.WriteText(c.App.Writer, r, dist)
}

func count(c *cli.Context) error {
	n := c.Int("n")
	tours, err := tsp.HamiltonianCycles(n)
	if err != nil {
		return err
	}
	fmt.Fprintf(c.App.Writer, "%d venues: %s distinct tours\n", n, tours)
	return nil
}

func convert(c *cli.Context) error {
	in, out := c.String("in"), c.String("out")
	if in == "" || out == "" {
		return errors.New("convert needs --in and --out")
	}
	vs, err := venue.LoadFile(in)
	if err != nil {
		return err
	}
	if err = venue.WriteParquet(out, venue.SortByID(vs)); err != nil {
		return err
	}
	log.Infof("wrote %d venues to %s", len(vs), out)
	return nil
}

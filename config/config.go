// SPDX-License-Identifier: MIT

// Package config holds the settings of one venuetour run.
//
// Values are layered: Default, then optional .env files, then VENUETOUR_*
// environment variables, then command-line flags (applied by the caller).
// A variable already present in the environment always wins over the same
// key in a .env file.
package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/juju/errors"
	"github.com/liam-crow/stats-blog/tsp"
)

// ErrInvalidConfig is returned for unparsable or out-of-range settings.
var ErrInvalidConfig = errors.New("config: invalid configuration")

// Environment keys.
const (
	EnvInput     = "VENUETOUR_INPUT"
	EnvObjective = "VENUETOUR_OBJECTIVE"
	EnvTimeLimit = "VENUETOUR_TIME_LIMIT"
	EnvMaxNodes  = "VENUETOUR_MAX_NODES"
	EnvVerify    = "VENUETOUR_VERIFY"
	EnvFormat    = "VENUETOUR_FORMAT"
)

// Output formats.
const (
	FormatText = "text"
	FormatJSON = "json"
)

// DefaultTimeLimit bounds a run when nothing else is configured.
const DefaultTimeLimit = 10 * time.Minute

// Config is the complete set of run settings.
type Config struct {
	Input     string        // venue file, .csv or .parquet
	Objective tsp.Objective // shortest or longest tour
	TimeLimit time.Duration // 0 means unlimited
	MaxNodes  int           // branch-and-bound node budget, 0 means unlimited
	Verify    bool          // cross-check with Held–Karp on small inputs
	Format    string        // FormatText or FormatJSON
}

// Default returns the built-in settings.
func Default() Config {
	return Config{
		Objective: tsp.MinimizeDistance,
		TimeLimit: DefaultTimeLimit,
		Format:    FormatText,
	}
}

// Load starts from Default and applies the given .env files (missing files
// are skipped) and the process environment.
func Load(envFiles ...string) (Config, error) {
	fileVals, err := readEnvFiles(envFiles)
	if err != nil {
		return Config{}, err
	}
	lookup := func(key string) (string, bool) {
		if v, ok := os.LookupEnv(key); ok && v != "" {
			return v, true
		}
		v, ok := fileVals[key]
		return v, ok && v != ""
	}

	cfg := Default()
	if v, ok := lookup(EnvInput); ok {
		cfg.Input = v
	}
	if v, ok := lookup(EnvObjective); ok {
		if cfg.Objective, err = ParseObjective(v); err != nil {
			return Config{}, err
		}
	}
	if v, ok := lookup(EnvTimeLimit); ok {
		if cfg.TimeLimit, err = time.ParseDuration(v); err != nil {
			return Config{}, errors.Annotatef(ErrInvalidConfig, "%s=%q: %v", EnvTimeLimit, v, err)
		}
	}
	if v, ok := lookup(EnvMaxNodes); ok {
		if cfg.MaxNodes, err = strconv.Atoi(v); err != nil {
			return Config{}, errors.Annotatef(ErrInvalidConfig, "%s=%q: %v", EnvMaxNodes, v, err)
		}
	}
	if v, ok := lookup(EnvVerify); ok {
		if cfg.Verify, err = strconv.ParseBool(v); err != nil {
			return Config{}, errors.Annotatef(ErrInvalidConfig, "%s=%q: %v", EnvVerify, v, err)
		}
	}
	if v, ok := lookup(EnvFormat); ok {
		cfg.Format = strings.ToLower(v)
	}

	return cfg, cfg.Validate()
}

func readEnvFiles(files []string) (map[string]string, error) {
	existing := make([]string, 0, len(files))
	for _, f := range files {
		if f == "" {
			continue
		}
		if _, err := os.Stat(f); err != nil {
			if os.IsNotExist(err) {
				continue
			}
			return nil, errors.Annotatef(err, "env file %s", f)
		}
		existing = append(existing, f)
	}
	if len(existing) == 0 {
		return map[string]string{}, nil
	}
	vals, err := godotenv.Read(existing...)
	if err != nil {
		return nil, errors.Annotatef(ErrInvalidConfig, "env files %v: %v", existing, err)
	}
	return vals, nil
}

// ParseObjective accepts "min", "minimize", "max" and "maximize" in any case.
func ParseObjective(s string) (tsp.Objective, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "min", "minimize", "minimise", "shortest":
		return tsp.MinimizeDistance, nil
	case "max", "maximize", "maximise", "longest":
		return tsp.MaximizeDistance, nil
	}
	return 0, errors.Annotatef(ErrInvalidConfig, "objective %q", s)
}

// Validate checks ranges and enums.
func (c Config) Validate() error {
	if c.Objective != tsp.MinimizeDistance && c.Objective != tsp.MaximizeDistance {
		return errors.Annotatef(ErrInvalidConfig, "objective %v", c.Objective)
	}
	if c.TimeLimit < 0 {
		return errors.Annotatef(ErrInvalidConfig, "time limit %v is negative", c.TimeLimit)
	}
	if c.MaxNodes < 0 {
		return errors.Annotatef(ErrInvalidConfig, "max nodes %d is negative", c.MaxNodes)
	}
	switch c.Format {
	case FormatText, FormatJSON:
	default:
		return errors.Annotatef(ErrInvalidConfig, "format %q, want %s or %s", c.Format, FormatText, FormatJSON)
	}
	return nil
}

// SolverOptions maps the run settings onto tsp options.
func (c Config) SolverOptions() tsp.Options {
	opts := tsp.DefaultOptions()
	opts.Objective = c.Objective
	opts.Verify = c.Verify
	opts.Solver.MaxNodes = c.MaxNodes
	opts.Solver.TimeLimit = c.TimeLimit
	return opts
}

// Package config defines process configuration structures and loading hooks.
//
// Conventions:
// - Provide New() initializer to build a Config with defaults.
// - External errors must be wrapped via this package's error helpers.
package config

import (
	"runtime"
	"strconv"
)

// Config contains process configuration. Extend as needed.
type Config struct {
	// LogLevel controls verbosity: debug, info, warn, error.
	LogLevel string `koanf:"log_level"`

	// DBPath is the sqlite data source for aggregates and ratings.
	DBPath string `koanf:"db_path"`

	// MinMinutes is the minutes-played threshold for the percentile
	// baseline population.
	MinMinutes float64 `koanf:"min_minutes"`

	// Seed fixes the potential-projection random source; 0 keeps the
	// entropy-seeded production default.
	Seed int64 `koanf:"seed"`

	// WorkerCount bounds the goroutines used for the composite stage.
	WorkerCount int `koanf:"worker_count"`

	// MetricsAddr serves Prometheus metrics while a run is in flight;
	// empty disables the listener.
	MetricsAddr string `koanf:"metrics_addr"`

	// LeagueCoefficients overrides the built-in competition strength
	// table, keyed by competition id.
	LeagueCoefficients map[string]float64 `koanf:"league_coefficients"`
}

// New creates a Config with defaults.
func New() *Config {
	return &Config{
		LogLevel:    "info",
		DBPath:      "",
		MinMinutes:  500,
		Seed:        0,
		WorkerCount: runtime.NumCPU(),
		MetricsAddr: "",
	}
}

// LeagueOverrides converts the string-keyed override map into the
// integer-keyed form the adjusters take. Malformed keys are dropped.
func (c *Config) LeagueOverrides() map[int]float64 {
	if len(c.LeagueCoefficients) == 0 {
		return nil
	}
	out := make(map[int]float64, len(c.LeagueCoefficients))
	for k, v := range c.LeagueCoefficients {
		id, err := strconv.Atoi(k)
		if err != nil {
			continue
		}
		out[id] = v
	}
	return out
}

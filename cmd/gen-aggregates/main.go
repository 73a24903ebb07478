// Command gen-aggregates fills the player database with a synthetic
// population, standing in for the excluded acquisition pipeline during
// local development.
package main

import (
	"context"
	"flag"
	"os"

	"github.com/boztas13/footballers-overall-database/internal/adapters/repository"
	"github.com/boztas13/footballers-overall-database/internal/synthetic"
	"github.com/boztas13/footballers-overall-database/pkg/logger"
)

// Default generation constants.
const (
	defaultPlayers = 500
	defaultSeed    = 42
)

func main() {
	var (
		players = flag.Int("players", defaultPlayers, "Number of players to generate")
		seed    = flag.Int64("seed", defaultSeed, "Random seed; identical seeds produce identical populations")
		dbPath  = flag.String("db", "", "SQLite data source (default: "+repository.DefaultDSN+")")
	)
	flag.Parse()

	if err := logger.Init(); err != nil {
		os.Stderr.WriteString("failed to initialize logging: " + err.Error() + "\n")
		os.Exit(1)
	}
	log := logger.Get()
	ctx := context.Background()

	store, err := repository.OpenSQLite(ctx, *dbPath)
	if err != nil {
		log.Error(ctx, "failed to open store", logger.Error(err))
		os.Exit(1)
	}
	defer func() { _ = store.Close() }()

	gen := synthetic.New(
		synthetic.WithPlayers(*players),
		synthetic.WithSeed(*seed),
	)
	n, err := gen.Populate(ctx, store)
	if err != nil {
		log.Error(ctx, "failed to populate store", logger.Error(err))
		os.Exit(1)
	}

	log.Info(ctx, "synthetic population written",
		logger.Int("players", n),
		logger.Int("total", store.Count(ctx)),
	)
}

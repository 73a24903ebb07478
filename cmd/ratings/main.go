// Command ratings runs one full pass of the rating pipeline: season
// aggregates in, attribute vectors and composite ratings out.
package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/boztas13/footballers-overall-database/internal/adapters/repository"
	app "github.com/boztas13/footballers-overall-database/internal/app"
	"github.com/boztas13/footballers-overall-database/internal/config"
	"github.com/boztas13/footballers-overall-database/pkg/logger"
	"github.com/boztas13/footballers-overall-database/pkg/metrics"
)

// HTTP server timeout constants for the metrics listener.
const (
	readTimeout       = 10 * time.Second
	writeTimeout      = 10 * time.Second
	readHeaderTimeout = 5 * time.Second
)

func main() {
	if err := logger.Init(); err != nil {
		os.Stderr.WriteString("failed to initialize logging: " + err.Error() + "\n")
		os.Exit(1)
	}
	log := logger.Get()

	// Root context with cancel on SIGINT/SIGTERM.
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Load configuration (defaults -> optional file -> env).
	cfg, err := config.Load(ctx)
	if err != nil {
		os.Stderr.WriteString("failed to load config: " + err.Error() + "\n")
		os.Exit(1)
	}

	if err := logger.SetLevelString(cfg.LogLevel); err != nil {
		log.Warn(ctx, "invalid log_level; falling back to info", logger.String("log_level", cfg.LogLevel), logger.Error(err))
		_ = logger.SetLevelString("info")
	}

	// Optional Prometheus listener while the run is in flight.
	if cfg.MetricsAddr != "" {
		go serveMetrics(ctx, cfg.MetricsAddr, log)
	}

	store, err := repository.OpenSQLite(ctx, cfg.DBPath)
	if err != nil {
		log.Error(ctx, "failed to open store", logger.Error(err))
		os.Exit(1)
	}
	defer func() { _ = store.Close() }()

	svc := app.New(store, store,
		app.WithLogger(log),
		app.WithMinMinutes(cfg.MinMinutes),
		app.WithSeed(cfg.Seed),
		app.WithWorkerCount(cfg.WorkerCount),
		app.WithLeagueOverrides(cfg.LeagueOverrides()),
	)

	summary, err := svc.Run(ctx)
	if err != nil {
		if errors.Is(err, app.ErrEmptyPopulation) {
			log.Error(ctx, "no players to rate; load season aggregates first", logger.Error(err))
		} else {
			log.Error(ctx, "rating pipeline failed", logger.Error(err))
		}
		os.Exit(1)
	}

	log.Info(ctx, "done",
		logger.Int("loaded", summary.PlayersLoaded),
		logger.Int("excluded", summary.PlayersExcluded),
		logger.Int("rated", summary.PlayersRated),
		logger.Duration("duration", summary.Duration),
	)
}

func serveMetrics(ctx context.Context, addr string, log logger.Logger) {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.HandlerFor(metrics.GetRegistry(), promhttp.HandlerOpts{}))

	srv := &http.Server{
		Addr:              addr,
		Handler:           mux,
		ReadTimeout:       readTimeout,
		WriteTimeout:      writeTimeout,
		ReadHeaderTimeout: readHeaderTimeout,
	}
	go func() {
		<-ctx.Done()
		_ = srv.Close()
	}()
	log.Info(ctx, "serving metrics", logger.String("addr", addr))
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Warn(ctx, "metrics listener failed", logger.Error(err))
	}
}

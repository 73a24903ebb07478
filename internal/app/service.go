// Package service orchestrates the batch rating pipeline:
// collect season aggregates, derive per-90 rates, scale attributes against
// the population, compute composite ratings, and persist the result.
package service

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/boztas13/footballers-overall-database/internal/adapters/repository"
	"github.com/boztas13/footballers-overall-database/internal/domain/adjust"
	"github.com/boztas13/footballers-overall-database/internal/domain/attributes"
	"github.com/boztas13/footballers-overall-database/internal/domain/composite"
	"github.com/boztas13/footballers-overall-database/internal/domain/model"
	"github.com/boztas13/footballers-overall-database/internal/domain/rate"
	"github.com/boztas13/footballers-overall-database/internal/domain/scale"
	"github.com/boztas13/footballers-overall-database/pkg/logger"
	"github.com/boztas13/footballers-overall-database/pkg/metrics"
)

// ErrEmptyPopulation is returned when no ratable players exist. An empty
// population is a fatal precondition, never an empty result.
var ErrEmptyPopulation = errors.New("empty player population")

// Service runs the rating pipeline against a store.
type Service struct {
	source repository.AggregateSource
	sink   repository.RatingSink

	// Configuration
	minMinutes      float64
	seed            int64
	workerCount     int
	leagueOverrides map[int]float64

	// Logging
	logger logger.Logger
}

// Option applies a configuration option to the Service.
type Option func(*Service)

// WithMinMinutes sets the qualifying-minutes threshold for the percentile
// baseline.
func WithMinMinutes(minutes float64) Option {
	return func(s *Service) {
		if minutes > 0 {
			s.minMinutes = minutes
		}
	}
}

// WithSeed fixes the potential-projection random source for reproducible
// runs. Zero keeps the entropy-seeded default.
func WithSeed(seed int64) Option {
	return func(s *Service) {
		s.seed = seed
	}
}

// WithWorkerCount sets the number of goroutines for the composite stage.
func WithWorkerCount(count int) Option {
	return func(s *Service) {
		if count > 0 {
			s.workerCount = count
		}
	}
}

// WithLeagueOverrides overrides entries of the league coefficient table.
func WithLeagueOverrides(overrides map[int]float64) Option {
	return func(s *Service) {
		s.leagueOverrides = overrides
	}
}

// WithLogger sets a custom logger for the service.
func WithLogger(l logger.Logger) Option {
	return func(s *Service) {
		if l != nil {
			s.logger = l
		}
	}
}

// New constructs a Service reading aggregates from source and writing
// ratings to sink.
func New(source repository.AggregateSource, sink repository.RatingSink, opts ...Option) *Service {
	s := &Service{
		source:      source,
		sink:        sink,
		minMinutes:  scale.DefaultMinMinutes,
		workerCount: 1,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Summary reports what a pipeline run did.
type Summary struct {
	PlayersLoaded   int
	PlayersExcluded int
	PlayersRated    int
	Duration        time.Duration
}

// Run executes one full pipeline pass. Percentile scaling needs the whole
// population in memory before any player's rating is final, so the run
// either completes the full pass or fails outright.
func (s *Service) Run(ctx context.Context) (Summary, error) {
	if s.logger == nil {
		s.logger = logger.Get()
	}
	start := time.Now()

	leagues := adjust.NewLeagues(s.leagueOverrides)
	calc := attributes.NewCalculator(
		attributes.WithLeagues(leagues),
		attributes.WithScaler(scale.New(scale.WithMinMinutes(s.minMinutes))),
	)
	engineOpts := []composite.Option{composite.WithLeagues(leagues)}
	if s.seed != 0 {
		engineOpts = append(engineOpts, composite.WithSeed(s.seed))
	}
	engine := composite.New(engineOpts...)

	// Collect.
	loadStart := time.Now()
	aggs, err := s.source.SeasonAggregates(ctx)
	if err != nil {
		metrics.RecordStoreError()
		metrics.RecordPipelineError()
		return Summary{}, fmt.Errorf("load season aggregates: %w", err)
	}
	metrics.AddPlayersLoaded(len(aggs))
	metrics.ObserveStageDuration("load", time.Since(loadStart).Seconds())

	if len(aggs) == 0 {
		metrics.RecordPipelineError()
		return Summary{}, ErrEmptyPopulation
	}

	// Players with no recorded minutes have no defined rates; skip them
	// silently rather than feeding fabricated zeros into the baselines.
	vectors := make([]rate.Vector, 0, len(aggs))
	kept := make([]model.PlayerSeasonAggregate, 0, len(aggs))
	for _, agg := range aggs {
		v, ok := rate.FromSeason(agg)
		if !ok {
			s.logger.Debug(ctx, "skipping player without minutes",
				logger.String("playerID", agg.PlayerID),
				logger.String("player", agg.PlayerName),
			)
			continue
		}
		vectors = append(vectors, v)
		kept = append(kept, agg)
	}
	excluded := len(aggs) - len(kept)
	metrics.AddPlayersExcluded(excluded)

	if len(kept) == 0 {
		metrics.RecordPipelineError()
		return Summary{}, ErrEmptyPopulation
	}

	s.logger.Info(ctx, "rating population collected",
		logger.Int("players", len(kept)),
		logger.Int("excluded", excluded),
	)

	// Rank: two-pass attribute scaling over the whole population.
	attrStart := time.Now()
	attrVectors := calc.Compute(vectors)
	metrics.ObserveStageDuration("attributes", time.Since(attrStart).Seconds())

	// Composite ratings are independent per player once the rank tables
	// exist; fan out across workers.
	compStart := time.Now()
	ratings := s.compositeStage(ctx, engine, kept, attrVectors)
	metrics.ObserveStageDuration("composite", time.Since(compStart).Seconds())

	// Emit.
	saveStart := time.Now()
	if err := s.sink.SaveRatings(ctx, ratings); err != nil {
		metrics.RecordStoreError()
		metrics.RecordPipelineError()
		return Summary{}, fmt.Errorf("save ratings: %w", err)
	}
	metrics.ObserveStageDuration("save", time.Since(saveStart).Seconds())

	metrics.AddPlayersRated(len(ratings))
	metrics.UpdatePopulationSize(len(ratings))
	metrics.RecordPipelineRun()

	summary := Summary{
		PlayersLoaded:   len(aggs),
		PlayersExcluded: excluded,
		PlayersRated:    len(ratings),
		Duration:        time.Since(start),
	}
	s.logger.Info(ctx, "rating pipeline completed",
		logger.Int("rated", summary.PlayersRated),
		logger.Duration("duration", summary.Duration),
	)
	return summary, nil
}

// compositeStage computes composite ratings across workerCount goroutines.
// Each player's computation is local; the shared tables are read-only.
func (s *Service) compositeStage(_ context.Context, engine *composite.Engine, aggs []model.PlayerSeasonAggregate, attrVectors []model.AttributeVector) []model.PlayerRating {
	n := len(aggs)
	ratings := make([]model.PlayerRating, n)

	workers := s.workerCount
	if workers > n {
		workers = n
	}

	var wg sync.WaitGroup
	chunk := (n + workers - 1) / workers
	for w := 0; w < workers; w++ {
		lo := w * chunk
		hi := lo + chunk
		if hi > n {
			hi = n
		}
		if lo >= hi {
			break
		}
		wg.Add(1)
		go func(lo, hi int) {
			defer wg.Done()
			for i := lo; i < hi; i++ {
				agg := aggs[i]
				ratings[i] = model.PlayerRating{
					PlayerID:   agg.PlayerID,
					PlayerName: agg.PlayerName,
					Attributes: attrVectors[i],
					Composite:  engine.Rate(agg.PlayerID, attrVectors[i], agg.CompetitionID, agg.Age),
				}
			}
		}(lo, hi)
	}
	wg.Wait()
	return ratings
}

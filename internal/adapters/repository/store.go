// Package repository defines the aggregate/rating store contracts and their
// sqlite-backed and in-memory implementations.
package repository

import (
	"context"

	"github.com/boztas13/footballers-overall-database/internal/domain/model"
)

// AggregateSource is the read side consumed by the rating pipeline: one
// season aggregate row per player.
type AggregateSource interface {
	// SeasonAggregates returns every stored season aggregate.
	SeasonAggregates(ctx context.Context) ([]model.PlayerSeasonAggregate, error)
}

// RatingSink is the write side the pipeline emits into.
type RatingSink interface {
	// SaveRatings replaces the stored rating set with the given batch.
	SaveRatings(ctx context.Context, ratings []model.PlayerRating) error
}

// Store provides full access to the player database.
type Store interface {
	AggregateSource
	RatingSink

	// PutSeasonAggregate upserts one player's season aggregate. The player
	// row is keyed by the stable surrogate id; name is display-only.
	PutSeasonAggregate(ctx context.Context, agg model.PlayerSeasonAggregate) error

	// Rating returns a stored rating by player id.
	// Returns ErrNotFound for unknown players.
	Rating(ctx context.Context, playerID string) (model.PlayerRating, error)

	// Ratings returns all stored ratings.
	Ratings(ctx context.Context) ([]model.PlayerRating, error)

	// Count returns the number of players with a season aggregate.
	Count(ctx context.Context) int

	// Close releases underlying resources.
	Close() error
}

package repository

import (
	"context"
	"sort"
	"sync"

	"github.com/boztas13/footballers-overall-database/internal/domain/model"
)

// MemoryStore is an in-memory Store for tests and the synthetic generator.
type MemoryStore struct {
	mu         sync.RWMutex
	aggregates map[string]model.PlayerSeasonAggregate
	ratings    map[string]model.PlayerRating
	closed     bool
}

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		aggregates: make(map[string]model.PlayerSeasonAggregate),
		ratings:    make(map[string]model.PlayerRating),
	}
}

// PutSeasonAggregate upserts one player's season aggregate.
func (s *MemoryStore) PutSeasonAggregate(_ context.Context, agg model.PlayerSeasonAggregate) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return ErrStoreClosed
	}
	s.aggregates[agg.PlayerID] = agg
	return nil
}

// SeasonAggregates returns all aggregates in stable player-id order.
func (s *MemoryStore) SeasonAggregates(_ context.Context) ([]model.PlayerSeasonAggregate, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.closed {
		return nil, ErrStoreClosed
	}
	out := make([]model.PlayerSeasonAggregate, 0, len(s.aggregates))
	for _, a := range s.aggregates {
		out = append(out, a)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].PlayerID < out[j].PlayerID })
	return out, nil
}

// SaveRatings replaces the stored rating set.
func (s *MemoryStore) SaveRatings(_ context.Context, ratings []model.PlayerRating) error {
	if len(ratings) == 0 {
		return ErrEmptyBatch
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return ErrStoreClosed
	}
	s.ratings = make(map[string]model.PlayerRating, len(ratings))
	for _, r := range ratings {
		s.ratings[r.PlayerID] = r
	}
	return nil
}

// Rating returns one player's stored rating.
func (s *MemoryStore) Rating(_ context.Context, playerID string) (model.PlayerRating, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	r, ok := s.ratings[playerID]
	if !ok {
		return model.PlayerRating{}, ErrNotFound
	}
	return r, nil
}

// Ratings returns all stored ratings in stable player-id order.
func (s *MemoryStore) Ratings(_ context.Context) ([]model.PlayerRating, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]model.PlayerRating, 0, len(s.ratings))
	for _, r := range s.ratings {
		out = append(out, r)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].PlayerID < out[j].PlayerID })
	return out, nil
}

// Count returns the number of stored aggregates.
func (s *MemoryStore) Count(_ context.Context) int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.aggregates)
}

// Close marks the store closed.
func (s *MemoryStore) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.closed = true
	return nil
}

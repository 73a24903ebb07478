// Package synthetic generates plausible player season aggregates for local
// runs and tests, standing in for the excluded event-ingestion stage.
package synthetic

import (
	"context"
	"fmt"
	"math/rand"

	"github.com/google/uuid"

	"github.com/boztas13/footballers-overall-database/internal/adapters/repository"
	"github.com/boztas13/footballers-overall-database/internal/domain/model"
)

// Default generation constants.
const (
	defaultPlayers = 500
	defaultSeed    = 42
	minAge         = 17
	ageSpread      = 19 // ages land in [minAge, minAge+ageSpread)
)

// playerNamespace makes generated player ids stable across runs: the same
// seed and index always yield the same uuid.
var playerNamespace = uuid.MustParse("6f1c24a5-0b61-4f3e-9c7e-2d9a54e0b8c3")

// Known competition ids the generator samples from; includes one id absent
// from the coefficient table to exercise the unknown-league default.
var competitions = []int{2, 11, 12, 9, 37, 43, 55, 999}

// profile shapes the per-90 event ranges for a position archetype.
type profile struct {
	position string
	weight   int // relative share of the population

	passes, keyPasses, shots, goals  [2]float64
	dribbles, tackles, interceptions [2]float64
	aerials, pressures, clearances   [2]float64
	saves                            [2]float64
}

var profiles = []profile{
	{
		position: "GK", weight: 1,
		passes: [2]float64{18, 30}, keyPasses: [2]float64{0, 0.2},
		shots: [2]float64{0, 0.05}, goals: [2]float64{0, 0.01},
		dribbles: [2]float64{0, 0.3}, tackles: [2]float64{0, 0.3},
		interceptions: [2]float64{0.2, 1}, aerials: [2]float64{0.5, 2},
		pressures: [2]float64{0, 1}, clearances: [2]float64{0.5, 2},
		saves: [2]float64{2, 5},
	},
	{
		position: "DEF", weight: 3,
		passes: [2]float64{35, 70}, keyPasses: [2]float64{0.2, 1},
		shots: [2]float64{0.2, 1}, goals: [2]float64{0, 0.15},
		dribbles: [2]float64{0.3, 1.5}, tackles: [2]float64{1.5, 4},
		interceptions: [2]float64{1, 3.5}, aerials: [2]float64{2, 6},
		pressures: [2]float64{8, 16}, clearances: [2]float64{2, 7},
	},
	{
		position: "MID", weight: 3,
		passes: [2]float64{45, 90}, keyPasses: [2]float64{0.8, 3},
		shots: [2]float64{0.8, 2.5}, goals: [2]float64{0.05, 0.4},
		dribbles: [2]float64{1, 4}, tackles: [2]float64{1, 3},
		interceptions: [2]float64{0.8, 2.5}, aerials: [2]float64{0.5, 3},
		pressures: [2]float64{12, 22}, clearances: [2]float64{0.3, 2},
	},
	{
		position: "FWD", weight: 3,
		passes: [2]float64{20, 45}, keyPasses: [2]float64{1, 3.5},
		shots: [2]float64{2, 5}, goals: [2]float64{0.2, 0.9},
		dribbles: [2]float64{2, 6}, tackles: [2]float64{0.3, 1.2},
		interceptions: [2]float64{0.2, 1}, aerials: [2]float64{1, 5},
		pressures: [2]float64{10, 20}, clearances: [2]float64{0, 0.5},
	},
}

// Generator produces seeded synthetic season aggregates.
type Generator struct {
	players int
	seed    int64
	rng     *rand.Rand
}

// Option applies a configuration option to the Generator.
type Option func(*Generator)

// WithPlayers sets the population size.
func WithPlayers(n int) Option {
	return func(g *Generator) {
		if n > 0 {
			g.players = n
		}
	}
}

// WithSeed sets the random seed; identical seeds produce identical
// populations.
func WithSeed(seed int64) Option {
	return func(g *Generator) {
		if seed != 0 {
			g.seed = seed
		}
	}
}

// New creates a Generator.
func New(opts ...Option) *Generator {
	g := &Generator{
		players: defaultPlayers,
		seed:    defaultSeed,
	}
	for _, opt := range opts {
		opt(g)
	}
	g.rng = rand.New(rand.NewSource(g.seed)) //nolint:gosec // synthetic fixtures only
	return g
}

// Generate returns the synthetic population. Roughly one player in forty
// gets zero minutes to exercise the pipeline's exclusion path.
func (g *Generator) Generate() []model.PlayerSeasonAggregate {
	totalWeight := 0
	for _, p := range profiles {
		totalWeight += p.weight
	}

	out := make([]model.PlayerSeasonAggregate, g.players)
	for i := range out {
		p := g.pickProfile(totalWeight)

		key := fmt.Sprintf("seed-%d-player-%d", g.seed, i)
		agg := model.PlayerSeasonAggregate{
			PlayerID:      uuid.NewSHA1(playerNamespace, []byte(key)).String(),
			PlayerName:    fmt.Sprintf("%s Player %03d", p.position, i),
			CompetitionID: competitions[g.rng.Intn(len(competitions))],
			Age:           minAge + g.rng.Intn(ageSpread),
		}

		if g.rng.Intn(40) == 0 {
			out[i] = agg // unplayed: zero minutes, zero counts
			continue
		}

		matches := 5 + g.rng.Intn(30)
		minutes := 0.0
		for m := 0; m < matches; m++ {
			minutes += 45 + g.rng.Float64()*45
		}
		agg.MinutesPlayed = minutes
		agg.MatchesPlayed = matches
		agg.Counts = g.counts(p, minutes)
		out[i] = agg
	}
	return out
}

// Populate writes a generated population through the store.
func (g *Generator) Populate(ctx context.Context, store repository.Store) (int, error) {
	aggs := g.Generate()
	for _, agg := range aggs {
		if err := store.PutSeasonAggregate(ctx, agg); err != nil {
			return 0, fmt.Errorf("put aggregate %s: %w", agg.PlayerID, err)
		}
	}
	return len(aggs), nil
}

func (g *Generator) pickProfile(totalWeight int) profile {
	n := g.rng.Intn(totalWeight)
	for _, p := range profiles {
		if n < p.weight {
			return p
		}
		n -= p.weight
	}
	return profiles[len(profiles)-1]
}

// counts converts per-90 ranges into season totals for the given minutes.
func (g *Generator) counts(p profile, minutes float64) model.EventCounts {
	per90 := minutes / 90

	total := func(r [2]float64) float64 {
		return g.in(r) * per90
	}

	c := model.EventCounts{
		Passes:        total(p.passes),
		KeyPasses:     total(p.keyPasses),
		Shots:         total(p.shots),
		Goals:         total(p.goals),
		Dribbles:      total(p.dribbles),
		Tackles:       total(p.tackles),
		Interceptions: total(p.interceptions),
		AerialDuels:   total(p.aerials),
		Pressures:     total(p.pressures),
		Clearances:    total(p.clearances),
		Saves:         total(p.saves),
	}

	c.CompletedPasses = c.Passes * (0.6 + g.rng.Float64()*0.35)
	c.Assists = c.KeyPasses * g.rng.Float64() * 0.3
	c.ShotsOnTarget = c.Shots * (0.2 + g.rng.Float64()*0.5)
	c.XG = c.Shots * (0.05 + g.rng.Float64()*0.1)
	c.XA = c.KeyPasses * (0.05 + g.rng.Float64()*0.1)
	c.DribblesSuccessful = c.Dribbles * (0.3 + g.rng.Float64()*0.5)
	c.TacklesWon = c.Tackles * (0.4 + g.rng.Float64()*0.4)
	c.Blocks = c.Clearances * g.rng.Float64() * 0.5
	c.AerialDuelsWon = c.AerialDuels * (0.3 + g.rng.Float64()*0.5)
	c.FoulsCommitted = c.Tackles * g.rng.Float64() * 0.6
	c.FoulsWon = c.Dribbles * g.rng.Float64() * 0.4
	c.CardsYellow = float64(g.rng.Intn(8))
	c.CardsRed = float64(g.rng.Intn(2))

	if p.saves[1] > 0 {
		c.GoalsConceded = total([2]float64{0.5, 1.8})
		c.CleanSheets = float64(g.rng.Intn(12))
	}
	return c
}

// in draws a uniform value from the inclusive range.
func (g *Generator) in(r [2]float64) float64 {
	return r[0] + g.rng.Float64()*(r[1]-r[0])
}

// Package composite aggregates sub-attributes into position-scoped Current
// Ability scores, one overall CA, and a Potential Ability projection.
package composite

import (
	crand "crypto/rand"
	"encoding/binary"
	"hash/fnv"
	"math"
	"math/rand"

	"github.com/boztas13/footballers-overall-database/internal/domain/adjust"
	"github.com/boztas13/footballers-overall-database/internal/domain/model"
)

// Position identifies one of the four archetypes a player is rated against.
type Position string

// Position archetypes.
const (
	GK  Position = "GK"
	DEF Position = "DEF"
	MID Position = "MID"
	FWD Position = "FWD"
)

// Overall CA blend weights across the four position scores.
const (
	overallWeightGK  = 0.1
	overallWeightDEF = 0.3
	overallWeightMID = 0.3
	overallWeightFWD = 0.3
)

// Experience bonus applied to the overall blend for players past the
// consistency age threshold.
const (
	consistencyAge   = 28
	consistencyBonus = 1.05
)

// positionSpec is the fixed sub-attribute blend for one archetype. Weights
// sum to 1.0 per position; the age bands are position-specific peaks.
type positionSpec struct {
	weights  map[string]float64
	ageBands []adjust.Band
}

var positionSpecs = map[Position]positionSpec{
	GK: {
		weights: map[string]float64{
			"goalkeeping": 0.4, "reflexes": 0.2, "handling": 0.2, "kicking": 0.2,
		},
		ageBands: adjust.GKPeakBands,
	},
	DEF: {
		weights: map[string]float64{
			"tackling": 0.25, "marking": 0.25, "heading": 0.2, "positioning": 0.15, "pace": 0.15,
		},
		ageBands: adjust.DefenderPrimeBands,
	},
	MID: {
		weights: map[string]float64{
			"passing": 0.25, "vision": 0.2, "positioning": 0.15, "dribbling": 0.15, "tackling": 0.15, "stamina": 0.1,
		},
		ageBands: adjust.MidfieldPrimeBands,
	},
	FWD: {
		weights: map[string]float64{
			"shooting": 0.3, "pace": 0.2, "dribbling": 0.2, "finishing": 0.15, "positioning": 0.15,
		},
		ageBands: adjust.ForwardPrimeBands,
	},
}

// Potential uplift bands: younger players get a bigger base uplift and a
// noisier projection.
type upliftBand struct {
	maxAge int
	base   float64
	sigma  float64
}

var upliftBands = []upliftBand{
	{20, 6, 2},
	{24, 4, 1.5},
	{28, 2, 1},
}

const veteranUpliftSigma = 0.5

// Bonus scaling applied on top of the age-banded base uplift.
const (
	leagueUpliftScale      = 2.0
	versatilityUpliftScale = 5.0
)

// Engine computes composite ratings. It is safe for concurrent use across
// players: the potential projection derives a per-player random stream from
// the engine seed, so results do not depend on evaluation order.
type Engine struct {
	leagues *adjust.Leagues
	seed    int64
}

// Option applies a configuration option to the Engine.
type Option func(*Engine)

// WithLeagues overrides the league coefficient table.
func WithLeagues(l *adjust.Leagues) Option {
	return func(e *Engine) {
		if l != nil {
			e.leagues = l
		}
	}
}

// WithSeed fixes the random source for the potential projection, making the
// whole run bit-reproducible. Seed 0 keeps the entropy-seeded default.
func WithSeed(seed int64) Option {
	return func(e *Engine) {
		if seed != 0 {
			e.seed = seed
		}
	}
}

// New creates an Engine. Without an explicit seed the potential projection
// varies run to run, matching the production behavior of the rating model.
func New(opts ...Option) *Engine {
	e := &Engine{
		leagues: adjust.NewLeagues(nil),
		seed:    entropySeed(),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

func entropySeed() int64 {
	var b [8]byte
	if _, err := crand.Read(b[:]); err != nil {
		// Degenerate fallback; the projection stays valid, only less varied.
		return 1
	}
	s := int64(binary.LittleEndian.Uint64(b[:]))
	if s == 0 {
		s = 1
	}
	return s
}

// PositionCA computes the Current Ability score for one archetype:
// round2(weighted attribute blend * league coefficient * position age factor).
func (e *Engine) PositionCA(pos Position, attrs model.AttributeVector, competitionID, age int) float64 {
	spec := positionSpecs[pos]
	var base float64
	for name, w := range spec.weights {
		base += attrs[name] * w
	}
	coeff := e.leagues.Coefficient(competitionID)
	ageFactor := adjust.AgeFactor(spec.ageBands, age)
	return round2(base * coeff * ageFactor)
}

// Rate computes the full composite rating for one player.
func (e *Engine) Rate(playerID string, attrs model.AttributeVector, competitionID, age int) model.CompositeRating {
	r := model.CompositeRating{
		GK:  e.PositionCA(GK, attrs, competitionID, age),
		DEF: e.PositionCA(DEF, attrs, competitionID, age),
		MID: e.PositionCA(MID, attrs, competitionID, age),
		FWD: e.PositionCA(FWD, attrs, competitionID, age),
	}

	versatility := adjust.VersatilityFactor([4]float64{r.GK, r.DEF, r.MID, r.FWD})
	consistency := 1.0
	if age >= consistencyAge {
		consistency = consistencyBonus
	}

	blend := r.GK*overallWeightGK + r.DEF*overallWeightDEF + r.MID*overallWeightMID + r.FWD*overallWeightFWD
	// Not clamped: the multiplicative bonuses may push the overall past 20.
	r.Overall = round2(blend * versatility * consistency)

	r.Potential = e.potential(playerID, r.Overall, competitionID, age, versatility)
	return r
}

// potential projects the ability ceiling: an age-banded base uplift, a
// league-quality bonus, a versatility bonus, and a normal perturbation whose
// variance declines with age. The result never drops below CA and never
// exceeds 20.
func (e *Engine) potential(playerID string, ca float64, competitionID, age int, versatility float64) float64 {
	base, sigma := 0.0, veteranUpliftSigma
	for _, b := range upliftBands {
		if age <= b.maxAge {
			base, sigma = b.base, b.sigma
			break
		}
	}

	coeff := e.leagues.Coefficient(competitionID)
	uplift := base +
		leagueUpliftScale*(coeff-1.0) +
		versatilityUpliftScale*(versatility-1.0) +
		e.playerRand(playerID).NormFloat64()*sigma

	return round2(math.Min(20, math.Max(ca, ca+uplift)))
}

// playerRand derives a deterministic per-player random stream from the
// engine seed, keeping output independent of the order players are rated in.
func (e *Engine) playerRand(playerID string) *rand.Rand {
	h := fnv.New64a()
	_, _ = h.Write([]byte(playerID))
	return rand.New(rand.NewSource(e.seed ^ int64(h.Sum64()))) //nolint:gosec // rating jitter, not security-sensitive
}

func round2(x float64) float64 {
	return math.Round(x*100) / 100
}

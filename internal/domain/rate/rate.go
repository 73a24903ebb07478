// Package rate converts cumulative season counts into per-90-minute rates.
//
// All functions are pure. A player with zero minutes has no defined rates
// and must be excluded from the rate pipeline entirely rather than assigned
// zeros, so that fabricated values never enter the percentile baselines.
package rate

import (
	"github.com/boztas13/footballers-overall-database/internal/domain/model"
)

const minutesPerMatch = 90

// PerNinety returns count normalized to a 90-minute-equivalent rate.
// Callers must guarantee minutes > 0.
func PerNinety(count, minutes float64) float64 {
	return count / (minutes / minutesPerMatch)
}

// Vector holds the per-90 derived metrics for one player. Fields mirror the
// season aggregate counts plus a handful of composites the attribute model
// reads directly.
type Vector struct {
	PlayerID      string
	CompetitionID int
	Age           int
	Minutes       float64

	PassesPer90             float64
	CompletedPassesPer90    float64
	PassAccuracy            float64 // completed/attempted * 100, 0 when no passes
	KeyPassesPer90          float64
	AssistsPer90            float64
	ShotsPer90              float64
	ShotsOnTargetPer90      float64
	GoalsPer90              float64
	XGPer90                 float64
	XAPer90                 float64
	DribblesPer90           float64
	DribblesSuccessfulPer90 float64
	TacklesPer90            float64
	TacklesWonPer90         float64
	InterceptionsPer90      float64
	ClearancesPer90         float64
	BlocksPer90             float64
	AerialDuelsPer90        float64
	AerialDuelsWonPer90     float64
	PressuresPer90          float64
	FoulsCommittedPer90     float64
	FoulsWonPer90           float64

	// Composites
	TouchesPer90 float64 // passes_per90 + dribbles_per90
	MinutesNorm  float64 // minutes_played / 1000

	// Goalkeeping
	SavesPer90         float64
	GoalsConcededPer90 float64
	CleanSheets        float64 // season count, not a rate
	GoalsPrevented     float64 // 100 - goals_conceded_per90*10; unbounded, may go negative
}

// FromSeason derives the per-90 vector for one season aggregate.
// Returns ok=false when the player has no recorded minutes, in which case
// the player is skipped by the pipeline.
func FromSeason(agg model.PlayerSeasonAggregate) (Vector, bool) {
	if agg.MinutesPlayed <= 0 {
		return Vector{}, false
	}

	m := agg.MinutesPlayed
	c := agg.Counts

	v := Vector{
		PlayerID:      agg.PlayerID,
		CompetitionID: agg.CompetitionID,
		Age:           agg.Age,
		Minutes:       m,

		PassesPer90:             PerNinety(c.Passes, m),
		CompletedPassesPer90:    PerNinety(c.CompletedPasses, m),
		KeyPassesPer90:          PerNinety(c.KeyPasses, m),
		AssistsPer90:            PerNinety(c.Assists, m),
		ShotsPer90:              PerNinety(c.Shots, m),
		ShotsOnTargetPer90:      PerNinety(c.ShotsOnTarget, m),
		GoalsPer90:              PerNinety(c.Goals, m),
		XGPer90:                 PerNinety(c.XG, m),
		XAPer90:                 PerNinety(c.XA, m),
		DribblesPer90:           PerNinety(c.Dribbles, m),
		DribblesSuccessfulPer90: PerNinety(c.DribblesSuccessful, m),
		TacklesPer90:            PerNinety(c.Tackles, m),
		TacklesWonPer90:         PerNinety(c.TacklesWon, m),
		InterceptionsPer90:      PerNinety(c.Interceptions, m),
		ClearancesPer90:         PerNinety(c.Clearances, m),
		BlocksPer90:             PerNinety(c.Blocks, m),
		AerialDuelsPer90:        PerNinety(c.AerialDuels, m),
		AerialDuelsWonPer90:     PerNinety(c.AerialDuelsWon, m),
		PressuresPer90:          PerNinety(c.Pressures, m),
		FoulsCommittedPer90:     PerNinety(c.FoulsCommitted, m),
		FoulsWonPer90:           PerNinety(c.FoulsWon, m),

		MinutesNorm: m / 1000,

		SavesPer90:         PerNinety(c.Saves, m),
		GoalsConcededPer90: PerNinety(c.GoalsConceded, m),
		CleanSheets:        c.CleanSheets,
	}

	if c.Passes > 0 {
		v.PassAccuracy = c.CompletedPasses / c.Passes * 100
	}
	v.TouchesPer90 = v.PassesPer90 + v.DribblesPer90
	v.GoalsPrevented = 100 - v.GoalsConcededPer90*10

	return v, true
}

// Metric returns a named metric from the vector. Names match the season
// stats table columns so the weight model stays readable as data. Unknown
// names resolve to 0, mirroring how missing raw metrics default to zero.
func (v Vector) Metric(name string) float64 {
	switch name {
	case "passes_per90":
		return v.PassesPer90
	case "completed_passes_per90":
		return v.CompletedPassesPer90
	case "pass_accuracy":
		return v.PassAccuracy
	case "key_passes_per90":
		return v.KeyPassesPer90
	case "assists_per90":
		return v.AssistsPer90
	case "shots_per90":
		return v.ShotsPer90
	case "shots_on_target_per90":
		return v.ShotsOnTargetPer90
	case "goals_per90":
		return v.GoalsPer90
	case "xg_per90":
		return v.XGPer90
	case "xa_per90":
		return v.XAPer90
	case "dribbles_per90":
		return v.DribblesPer90
	case "dribbles_successful_per90":
		return v.DribblesSuccessfulPer90
	case "tackles_per90":
		return v.TacklesPer90
	case "tackles_won_per90":
		return v.TacklesWonPer90
	case "interceptions_per90":
		return v.InterceptionsPer90
	case "clearances_per90":
		return v.ClearancesPer90
	case "blocks_per90":
		return v.BlocksPer90
	case "aerial_duels_per90":
		return v.AerialDuelsPer90
	case "aerial_duels_won_per90":
		return v.AerialDuelsWonPer90
	case "pressures_per90":
		return v.PressuresPer90
	case "fouls_committed_per90":
		return v.FoulsCommittedPer90
	case "fouls_won_per90":
		return v.FoulsWonPer90
	case "touches_per90":
		return v.TouchesPer90
	case "minutes_norm":
		return v.MinutesNorm
	case "goals_assists_per90":
		return v.GoalsPer90 + v.AssistsPer90
	case "saves_per90":
		return v.SavesPer90
	case "goals_conceded_per90":
		return v.GoalsConcededPer90
	case "clean_sheets":
		return v.CleanSheets
	case "goals_prevented":
		return v.GoalsPrevented
	default:
		return 0
	}
}

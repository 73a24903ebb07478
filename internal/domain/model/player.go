// Package model contains domain records passed between pipeline stages.
// Each stage produces immutable records consumed read-only downstream.
package model

// PlayerMatchAggregate holds the raw event counts for one (player, match)
// pair. Produced by the event-ingestion stage; never mutated afterwards.
type PlayerMatchAggregate struct {
	PlayerID      string
	PlayerName    string
	MatchID       string
	MinutesPlayed float64

	Counts EventCounts
}

// EventCounts groups the raw per-match (or per-season, once summed) event
// counts for a player. Cumulative xG/xA ride along with the integer counts.
type EventCounts struct {
	// Passing
	Passes          float64
	CompletedPasses float64
	KeyPasses       float64
	Assists         float64

	// Shooting
	Shots         float64
	ShotsOnTarget float64
	Goals         float64
	XG            float64
	XA            float64

	// Dribbling
	Dribbles           float64
	DribblesSuccessful float64

	// Defending
	Tackles       float64
	TacklesWon    float64
	Interceptions float64
	Clearances    float64
	Blocks        float64

	// Aerial
	AerialDuels    float64
	AerialDuelsWon float64

	// Pressure and discipline
	Pressures      float64
	FoulsCommitted float64
	FoulsWon       float64
	CardsYellow    float64
	CardsRed       float64

	// Goalkeeping
	Saves         float64
	GoalsConceded float64
	CleanSheets   float64
}

// Add accumulates c2 into c.
func (c *EventCounts) Add(c2 EventCounts) {
	c.Passes += c2.Passes
	c.CompletedPasses += c2.CompletedPasses
	c.KeyPasses += c2.KeyPasses
	c.Assists += c2.Assists
	c.Shots += c2.Shots
	c.ShotsOnTarget += c2.ShotsOnTarget
	c.Goals += c2.Goals
	c.XG += c2.XG
	c.XA += c2.XA
	c.Dribbles += c2.Dribbles
	c.DribblesSuccessful += c2.DribblesSuccessful
	c.Tackles += c2.Tackles
	c.TacklesWon += c2.TacklesWon
	c.Interceptions += c2.Interceptions
	c.Clearances += c2.Clearances
	c.Blocks += c2.Blocks
	c.AerialDuels += c2.AerialDuels
	c.AerialDuelsWon += c2.AerialDuelsWon
	c.Pressures += c2.Pressures
	c.FoulsCommitted += c2.FoulsCommitted
	c.FoulsWon += c2.FoulsWon
	c.CardsYellow += c2.CardsYellow
	c.CardsRed += c2.CardsRed
	c.Saves += c2.Saves
	c.GoalsConceded += c2.GoalsConceded
	c.CleanSheets += c2.CleanSheets
}

// PlayerSeasonAggregate is the per-player sum of all contributing match
// aggregates plus the competition and age context used by the rating model.
// PlayerID is a stable surrogate key; PlayerName is display-only.
type PlayerSeasonAggregate struct {
	PlayerID      string
	PlayerName    string
	CompetitionID int
	Age           int
	MinutesPlayed float64
	MatchesPlayed int

	Counts EventCounts
}

// SumMatches folds match aggregates into a season aggregate. The caller
// supplies the context tags; minutes are summed, never negative by
// construction.
func SumMatches(playerID, playerName string, competitionID, age int, matches []PlayerMatchAggregate) PlayerSeasonAggregate {
	agg := PlayerSeasonAggregate{
		PlayerID:      playerID,
		PlayerName:    playerName,
		CompetitionID: competitionID,
		Age:           age,
	}
	for _, m := range matches {
		agg.MinutesPlayed += m.MinutesPlayed
		agg.MatchesPlayed++
		agg.Counts.Add(m.Counts)
	}
	return agg
}

// AttributeVector maps attribute names to scaled ratings in [1, 20].
type AttributeVector map[string]float64

// CompositeRating holds the position-scoped and overall ability scores.
// Overall is intentionally not clamped to 20; the multiplicative bonuses can
// push it past the nominal scale. Potential is capped at 20 and never falls
// below Overall while Overall stays on the scale.
type CompositeRating struct {
	GK      float64
	DEF     float64
	MID     float64
	FWD     float64
	Overall float64

	Potential float64
}

// PlayerRating is the per-player output record persisted by the store.
type PlayerRating struct {
	PlayerID   string
	PlayerName string
	Attributes AttributeVector
	Composite  CompositeRating
}

// Package attributes computes the ~25 named sub-attribute ratings from
// per-90 rate vectors. The weight tables are modeled as data so the rating
// model can be versioned and evolved without touching the computation.
package attributes

import (
	"fmt"
	"math"

	"github.com/boztas13/footballers-overall-database/internal/domain/adjust"
	"github.com/boztas13/footballers-overall-database/internal/domain/rate"
)

// ModelVersion identifies the weight table revision.
const ModelVersion = "2024.1"

// ratioEpsilon is the fixed denominator offset for ratio terms. It is part
// of the rating model, not a tunable: changing it changes historical scores.
const ratioEpsilon = 0.1

// Category groups attributes for presentation.
type Category string

// Attribute categories.
const (
	Technical   Category = "technical"
	Physical    Category = "physical"
	Mental      Category = "mental"
	Defensive   Category = "defensive"
	Goalkeeping Category = "goalkeeping"
)

// Term is one weighted metric in an attribute's linear combination.
type Term struct {
	Metric string
	Weight float64
}

// RatioTerm is a weighted ratio of two metrics. The denominator always gets
// the fixed epsilon offset to stay defined when the count is zero.
type RatioTerm struct {
	Numerator   string
	Denominator string
	Weight      float64
}

// Definition describes how one attribute is derived: a weighted sum of
// per-90 metrics and ratios (weights sum to 1.0), multiplied by the context
// factors that apply to it.
type Definition struct {
	Name     string
	Category Category

	Terms  []Term
	Ratios []RatioTerm

	// Context factors. Age bands differ per attribute; the breakpoints
	// encode domain assumptions and are preserved exactly.
	UseLeague   bool
	UsePressure bool
	AgeBands    []adjust.Band
}

// BaseValue computes the pre-scale value for one player: the weighted sum
// multiplied by the applicable context factors. Clamping is left to the
// scaler.
func (d Definition) BaseValue(v rate.Vector, leagues *adjust.Leagues) float64 {
	var sum float64
	for _, t := range d.Terms {
		sum += t.Weight * v.Metric(t.Metric)
	}
	for _, r := range d.Ratios {
		sum += r.Weight * v.Metric(r.Numerator) / (v.Metric(r.Denominator) + ratioEpsilon)
	}

	if d.UseLeague {
		sum *= leagues.Coefficient(v.CompetitionID)
	}
	if len(d.AgeBands) > 0 {
		sum *= adjust.AgeFactor(d.AgeBands, v.Age)
	}
	if d.UsePressure {
		sum *= leagues.PressureFactor(v.CompetitionID)
	}
	return sum
}

// Validate checks that term weights sum to 1.0 within tolerance.
func (d Definition) Validate() error {
	var sum float64
	for _, t := range d.Terms {
		sum += t.Weight
	}
	for _, r := range d.Ratios {
		sum += r.Weight
	}
	if math.Abs(sum-1.0) > 1e-9 {
		return fmt.Errorf("attribute %q: weights sum to %.6f, want 1.0", d.Name, sum)
	}
	return nil
}

// Model returns the versioned attribute definitions.
func Model() []Definition {
	return []Definition{
		// Technical
		{
			Name: "passing", Category: Technical,
			Terms: []Term{
				{"passes_per90", 0.3},
				{"pass_accuracy", 0.25},
				{"key_passes_per90", 0.25},
				{"assists_per90", 0.2},
			},
			UseLeague: true,
			AgeBands:  adjust.GeneralBands,
		},
		{
			Name: "shooting", Category: Technical,
			Terms: []Term{
				{"goals_per90", 0.3},
				{"xg_per90", 0.25},
				{"shots_on_target_per90", 0.25},
			},
			Ratios:    []RatioTerm{{"goals_per90", "shots_per90", 0.2}},
			UseLeague: true,
		},
		{
			Name: "dribbling", Category: Technical,
			Terms: []Term{
				{"dribbles_per90", 0.4},
				{"dribbles_successful_per90", 0.4},
			},
			Ratios:    []RatioTerm{{"dribbles_successful_per90", "dribbles_per90", 0.2}},
			UseLeague: true,
		},
		{
			Name: "first_touch", Category: Technical,
			Terms: []Term{
				{"dribbles_successful_per90", 0.4},
				{"pass_accuracy", 0.3},
				{"touches_per90", 0.3},
			},
			AgeBands: adjust.GeneralBands,
		},
		{
			Name: "crossing", Category: Technical,
			Terms: []Term{
				{"key_passes_per90", 0.5},
				{"assists_per90", 0.3},
				{"pass_accuracy", 0.2},
			},
			UseLeague: true,
		},
		{
			Name: "finishing", Category: Technical,
			Terms: []Term{
				{"goals_per90", 0.4},
				{"shots_on_target_per90", 0.3},
			},
			Ratios: []RatioTerm{{"goals_per90", "xg_per90", 0.3}},
		},
		{
			Name: "long_shots", Category: Technical,
			Terms: []Term{
				{"shots_per90", 0.4},
				{"xg_per90", 0.3},
			},
			Ratios:    []RatioTerm{{"shots_on_target_per90", "shots_per90", 0.3}},
			UseLeague: true,
		},

		// Physical
		{
			Name: "pace", Category: Physical,
			Terms: []Term{
				{"dribbles_per90", 0.4},
				{"pressures_per90", 0.3},
				{"dribbles_successful_per90", 0.3},
			},
			AgeBands: adjust.GeneralBands,
		},
		{
			Name: "acceleration", Category: Physical,
			Terms: []Term{
				{"dribbles_successful_per90", 0.5},
				{"dribbles_per90", 0.3},
				{"pressures_per90", 0.2},
			},
			AgeBands: adjust.YouthBoostBands,
		},
		{
			Name: "stamina", Category: Physical,
			Terms: []Term{
				{"minutes_norm", 0.4},
				{"pressures_per90", 0.3},
				{"tackles_per90", 0.3},
			},
			AgeBands: adjust.VeteranFadeBands,
		},
		{
			Name: "strength", Category: Physical,
			Terms: []Term{
				{"aerial_duels_per90", 0.4},
				{"tackles_per90", 0.3},
				{"aerial_duels_won_per90", 0.3},
			},
			AgeBands: adjust.PrimeStrengthBands,
		},
		{
			Name: "jumping_reach", Category: Physical,
			Terms: []Term{
				{"aerial_duels_won_per90", 0.6},
				{"aerial_duels_per90", 0.4},
			},
			AgeBands: adjust.PrimeStrengthBands,
		},

		// Mental
		{
			Name: "positioning", Category: Mental,
			Terms: []Term{
				{"interceptions_per90", 0.3},
				{"key_passes_per90", 0.25},
				{"pressures_per90", 0.25},
				{"tackles_per90", 0.2},
			},
			AgeBands: adjust.LateReadBands,
		},
		{
			Name: "vision", Category: Mental,
			Terms: []Term{
				{"key_passes_per90", 0.4},
				{"assists_per90", 0.3},
				{"passes_per90", 0.3},
			},
			UseLeague: true,
		},
		{
			Name: "composure", Category: Mental,
			Terms: []Term{
				{"pass_accuracy", 0.4},
				{"dribbles_successful_per90", 0.3},
				{"goals_per90", 0.3},
			},
			UsePressure: true,
		},
		{
			Name: "concentration", Category: Mental,
			Terms: []Term{
				{"interceptions_per90", 0.4},
				{"tackles_won_per90", 0.3},
				{"clearances_per90", 0.3},
			},
			AgeBands: adjust.ExperienceBands,
		},
		{
			Name: "decisions", Category: Mental,
			Terms: []Term{
				{"key_passes_per90", 0.3},
				{"tackles_won_per90", 0.25},
				{"dribbles_successful_per90", 0.25},
				{"goals_assists_per90", 0.2},
			},
			AgeBands: adjust.EarlyMaturityBands,
		},
		{
			Name: "leadership", Category: Mental,
			Terms: []Term{
				{"minutes_norm", 0.4},
				{"assists_per90", 0.3},
				{"goals_per90", 0.3},
			},
			AgeBands:    adjust.LeadershipBands,
			UsePressure: true,
		},

		// Defensive
		{
			Name: "tackling", Category: Defensive,
			Terms: []Term{
				{"tackles_won_per90", 0.5},
				{"tackles_per90", 0.3},
			},
			Ratios:   []RatioTerm{{"tackles_won_per90", "tackles_per90", 0.2}},
			AgeBands: adjust.PrimeStrengthBands,
		},
		{
			Name: "marking", Category: Defensive,
			Terms: []Term{
				{"interceptions_per90", 0.4},
				{"pressures_per90", 0.3},
				{"tackles_per90", 0.3},
			},
			AgeBands: adjust.ExperienceBands,
		},
		{
			Name: "heading", Category: Defensive,
			Terms: []Term{
				{"aerial_duels_won_per90", 0.6},
				{"aerial_duels_per90", 0.4},
			},
			AgeBands: adjust.PrimeStrengthBands,
		},

		// Goalkeeping
		{
			Name: "goalkeeping", Category: Goalkeeping,
			Terms: []Term{
				{"saves_per90", 0.4},
				{"clean_sheets", 0.3},
				{"goals_prevented", 0.3},
			},
			AgeBands: adjust.ExperienceBands,
		},
		{
			Name: "reflexes", Category: Goalkeeping,
			Terms: []Term{
				{"saves_per90", 1.0},
			},
			AgeBands: adjust.YoungReflexesBands,
		},
		{
			Name: "handling", Category: Goalkeeping,
			Terms: []Term{
				{"clean_sheets", 0.6},
				{"pass_accuracy", 0.4},
			},
			AgeBands: adjust.ExperienceBands,
		},
		{
			Name: "kicking", Category: Goalkeeping,
			Terms: []Term{
				{"passes_per90", 0.5},
				{"pass_accuracy", 0.5},
			},
			UseLeague: true,
		},
	}
}

// Package adjust provides the multiplicative context factors applied to
// pre-scale attribute base values: league strength, age curves, and the
// pressure/versatility bonus.
//
// Every factor composes multiplicatively and never clamps the result;
// clamping happens only in the percentile scaler.
package adjust

// Bounds the pressure/versatility bonus may never exceed.
const MaxBonus = 1.2

// defaultLeagueCoefficients maps competition id to strength multiplier.
// Static lookup, not derived from data. Unknown competitions get
// UnknownLeagueCoefficient.
var defaultLeagueCoefficients = map[int]float64{
	2:  1.0,  // Premier League
	49: 0.95, // FA Women's Super League
	11: 0.9,  // La Liga
	12: 0.85, // Serie A
	9:  0.8,  // Bundesliga
	37: 1.1,  // Champions League
	38: 0.9,  // Europa League
	55: 0.8,  // Ligue 1
	43: 1.05, // FIFA World Cup
	50: 1.0,  // UEFA Euro
	72: 0.85, // Copa America
	44: 0.8,  // African Cup of Nations
	45: 0.75, // Asian Cup
}

// UnknownLeagueCoefficient is used for competitions absent from the table.
const UnknownLeagueCoefficient = 0.8

// Leagues resolves competition ids to strength coefficients in [0.75, 1.1].
type Leagues struct {
	coefficients map[int]float64
}

// NewLeagues builds a league table from the defaults plus any overrides.
func NewLeagues(overrides map[int]float64) *Leagues {
	coeffs := make(map[int]float64, len(defaultLeagueCoefficients)+len(overrides))
	for id, c := range defaultLeagueCoefficients {
		coeffs[id] = c
	}
	for id, c := range overrides {
		coeffs[id] = c
	}
	return &Leagues{coefficients: coeffs}
}

// Coefficient returns the strength multiplier for a competition.
func (l *Leagues) Coefficient(competitionID int) float64 {
	if c, ok := l.coefficients[competitionID]; ok {
		return c
	}
	return UnknownLeagueCoefficient
}

// Prestige reports whether a competition belongs to the high-prestige set:
// the competitions rated at least on par with the baseline top league.
func (l *Leagues) Prestige(competitionID int) bool {
	return l.Coefficient(competitionID) >= 1.0
}

// PressureFactor is the big-game temperament bonus for players observed in a
// high-prestige competition. Capped well under MaxBonus.
func (l *Leagues) PressureFactor(competitionID int) float64 {
	if l.Prestige(competitionID) {
		return 1.1
	}
	return 1.0
}

// GeneralAgeCurve is the default performance curve: young and developing
// players get a boost, prime years are neutral, veterans decline. Individual
// attributes override it with their own breakpoints; the per-attribute bands
// encode domain assumptions and are preserved exactly by the weight tables.
func GeneralAgeCurve(age int) float64 {
	switch {
	case age <= 21:
		return 1.1
	case age <= 25:
		return 1.05
	case age <= 30:
		return 1.0
	default:
		return 0.95
	}
}

// Band is one step of a piecewise age factor. Min/Max are inclusive.
type Band struct {
	Min    int
	Max    int
	Factor float64
}

// AgeFactor evaluates a band list for an age; ages outside every band are
// neutral.
func AgeFactor(bands []Band, age int) float64 {
	for _, b := range bands {
		if age >= b.Min && age <= b.Max {
			return b.Factor
		}
	}
	return 1.0
}

const maxAge = 200 // open upper bound for band tables

// Band tables for the attribute-specific age curves.
var (
	// GeneralBands mirrors GeneralAgeCurve in band form.
	GeneralBands = []Band{{0, 21, 1.1}, {22, 25, 1.05}, {26, 30, 1.0}, {31, maxAge, 0.95}}

	YouthBoostBands    = []Band{{0, 23, 1.1}}      // acceleration
	VeteranFadeBands   = []Band{{31, maxAge, 0.9}} // stamina
	PrimeStrengthBands = []Band{{25, 30, 1.05}}    // strength, jumping, heading, tackling
	LateReadBands      = []Band{{28, maxAge, 1.1}} // positioning
	ExperienceBands    = []Band{{26, maxAge, 1.1}} // concentration, marking, goalkeeping, handling
	EarlyMaturityBands = []Band{{24, maxAge, 1.1}} // decisions
	LeadershipBands    = []Band{{28, maxAge, 1.2}} // leadership
	YoungReflexesBands = []Band{{0, 28, 1.05}}     // reflexes
	GKPeakBands        = []Band{{28, 32, 1.1}}     // GK position CA
	DefenderPrimeBands = []Band{{26, 30, 1.05}}    // DEF position CA
	MidfieldPrimeBands = []Band{{24, 28, 1.05}}    // MID position CA
	ForwardPrimeBands  = []Band{{22, 26, 1.05}}    // FWD position CA
)

// VersatilityFactor rewards a balanced spread across the four position
// scores: 1 + 0.1*(max-min)/max, capped at MaxBonus. A zero max (degenerate
// population) is neutral.
func VersatilityFactor(positionScores [4]float64) float64 {
	lo, hi := positionScores[0], positionScores[0]
	for _, s := range positionScores[1:] {
		if s < lo {
			lo = s
		}
		if s > hi {
			hi = s
		}
	}
	if hi == 0 {
		return 1.0
	}
	f := 1 + 0.1*(hi-lo)/hi
	if f > MaxBonus {
		return MaxBonus
	}
	return f
}

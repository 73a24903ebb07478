// Package scale maps arbitrary real-valued metrics onto the 1-20 rating
// scale using percentile rank within a qualifying population.
package scale

import (
	"math"
	"sort"
)

// Scaling constants. The 1 + 19*rank form pins the output to [1, 20];
// epsilon guards the min-max fallback when all values are equal.
const (
	scaleFloor = 1.0
	scaleSpan  = 19.0
	epsilon    = 1e-8
)

// Scaler converts metric vectors to 1-20 ratings. The qualifying mask marks
// the players meant to anchor the rating distribution; when it selects no
// one, Scale falls back to min-max over the full population.
//
// Scale is deterministic: a fixed input vector and mask always produce a
// bit-identical output.
type Scaler struct {
	minMinutes float64
}

// Option applies a configuration option to the Scaler.
type Option func(*Scaler)

// WithMinMinutes sets the minutes threshold a player must meet to qualify
// for the percentile baseline.
func WithMinMinutes(minutes float64) Option {
	return func(s *Scaler) {
		if minutes > 0 {
			s.minMinutes = minutes
		}
	}
}

// DefaultMinMinutes is the baseline qualification threshold.
const DefaultMinMinutes = 500.0

// New creates a Scaler with default configuration.
func New(opts ...Option) *Scaler {
	s := &Scaler{minMinutes: DefaultMinMinutes}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Qualifies reports whether a player with the given minutes anchors the
// percentile baseline.
func (s *Scaler) Qualifies(minutes float64) bool {
	return minutes >= s.minMinutes
}

// Scale maps values onto [1, 20]. qualifying must have the same length as
// values; it marks the baseline population. Undefined inputs (NaN, Inf) are
// treated as 0 before ranking.
func (s *Scaler) Scale(values []float64, qualifying []bool) []float64 {
	clean := make([]float64, len(values))
	for i, v := range values {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			v = 0
		}
		clean[i] = v
	}

	anyQualifying := false
	for _, q := range qualifying {
		if q {
			anyQualifying = true
			break
		}
	}
	if !anyQualifying {
		return minMaxScale(clean)
	}

	ranks := percentileRanks(clean)
	out := make([]float64, len(clean))
	for i, r := range ranks {
		out[i] = round2(scaleFloor + scaleSpan*r)
	}
	return out
}

// percentileRanks computes the fractional rank of each value within the
// whole slice using the average-rank convention for ties: every member of a
// tie group receives the mean of the ordinal ranks the group occupies,
// divided by the population size.
func percentileRanks(values []float64) []float64 {
	n := len(values)
	idx := make([]int, n)
	for i := range idx {
		idx[i] = i
	}
	sort.SliceStable(idx, func(a, b int) bool {
		return values[idx[a]] < values[idx[b]]
	})

	ranks := make([]float64, n)
	for i := 0; i < n; {
		j := i
		for j < n && values[idx[j]] == values[idx[i]] {
			j++
		}
		// Ordinal ranks are 1-based; ties share the average of i+1..j.
		avg := float64(i+1+j) / 2
		for k := i; k < j; k++ {
			ranks[idx[k]] = avg / float64(n)
		}
		i = j
	}
	return ranks
}

// minMaxScale is the fallback when no player qualifies for the percentile
// baseline: linear scaling over the observed range, bounded by construction.
func minMaxScale(values []float64) []float64 {
	if len(values) == 0 {
		return nil
	}
	lo, hi := values[0], values[0]
	for _, v := range values[1:] {
		if v < lo {
			lo = v
		}
		if v > hi {
			hi = v
		}
	}
	out := make([]float64, len(values))
	for i, v := range values {
		out[i] = round2(scaleFloor + scaleSpan*(v-lo)/(hi-lo+epsilon))
	}
	return out
}

func round2(x float64) float64 {
	return math.Round(x*100) / 100
}

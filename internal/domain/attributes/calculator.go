package attributes

import (
	"github.com/boztas13/footballers-overall-database/internal/domain/adjust"
	"github.com/boztas13/footballers-overall-database/internal/domain/model"
	"github.com/boztas13/footballers-overall-database/internal/domain/rate"
	"github.com/boztas13/footballers-overall-database/internal/domain/scale"
)

// Calculator turns a population of rate vectors into attribute vectors.
//
// Percentile scaling needs the whole population before any single rating is
// final, so Compute is a two-pass batch operation: collect every player's
// pre-scale base value per attribute, then rank and emit.
type Calculator struct {
	defs    []Definition
	leagues *adjust.Leagues
	scaler  *scale.Scaler
}

// Option applies a configuration option to the Calculator.
type Option func(*Calculator)

// WithLeagues overrides the league coefficient table.
func WithLeagues(l *adjust.Leagues) Option {
	return func(c *Calculator) {
		if l != nil {
			c.leagues = l
		}
	}
}

// WithScaler overrides the percentile scaler.
func WithScaler(s *scale.Scaler) Option {
	return func(c *Calculator) {
		if s != nil {
			c.scaler = s
		}
	}
}

// WithModel overrides the attribute definitions.
func WithModel(defs []Definition) Option {
	return func(c *Calculator) {
		if len(defs) > 0 {
			c.defs = defs
		}
	}
}

// NewCalculator creates a Calculator with the versioned default model.
func NewCalculator(opts ...Option) *Calculator {
	c := &Calculator{
		defs:    Model(),
		leagues: adjust.NewLeagues(nil),
		scaler:  scale.New(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Leagues exposes the coefficient table in use, shared with the composite
// stage so both read identical context.
func (c *Calculator) Leagues() *adjust.Leagues {
	return c.leagues
}

// Names returns the attribute names in model order.
func (c *Calculator) Names() []string {
	names := make([]string, len(c.defs))
	for i, d := range c.defs {
		names[i] = d.Name
	}
	return names
}

// Compute produces one AttributeVector per input vector, index-aligned.
// The qualifying mask is shared across all attributes so every rating rides
// the same percentile baseline.
func (c *Calculator) Compute(vectors []rate.Vector) []model.AttributeVector {
	n := len(vectors)
	if n == 0 {
		return nil
	}

	qualifying := make([]bool, n)
	for i, v := range vectors {
		qualifying[i] = c.scaler.Qualifies(v.Minutes)
	}

	out := make([]model.AttributeVector, n)
	for i := range out {
		out[i] = make(model.AttributeVector, len(c.defs))
	}

	base := make([]float64, n)
	for _, d := range c.defs {
		for i, v := range vectors {
			base[i] = d.BaseValue(v, c.leagues)
		}
		scaled := c.scaler.Scale(base, qualifying)
		for i, s := range scaled {
			out[i][d.Name] = s
		}
	}
	return out
}

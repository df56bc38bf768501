package calculations

import (
	"time"

	"go.uber.org/zap"

	"github.com/cloud-ru/mcp-recouvrement-go/internal/tariffs"
)

// Calculator runs recovery computations against a fixed set of tariff tables.
// It holds no mutable state and is safe for concurrent use.
type Calculator struct {
	tables tariffs.Tables
	log    *zap.Logger
}

// Option configures a Calculator.
type Option func(*Calculator)

// WithLogger sets the logger used for debug traces of rate fallbacks and majoration splits.
func WithLogger(l *zap.Logger) Option {
	return func(c *Calculator) {
		if l != nil {
			c.log = l
		}
	}
}

// NewCalculator creates a Calculator over a private copy of tables.
func NewCalculator(tables tariffs.Tables, opts ...Option) *Calculator {
	c := &Calculator{
		tables: tables.Clone(),
		log:    zap.L(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Tables returns a copy of the tables in use.
func (c *Calculator) Tables() tariffs.Tables {
	return c.tables.Clone()
}

// CatalogAct returns the catalogued act with the given id as a cost line.
func (c *Calculator) CatalogAct(id string) (ProcedureAct, error) {
	act, ok := c.tables.Acts.Find(id)
	if !ok {
		return ProcedureAct{}, NewValidationError("acts", "unknown catalogue act %q", id)
	}
	return ProcedureAct{ID: act.ID, Label: act.Label, Amount: act.Tariff}, nil
}

// ResolveRate returns the annual rate in percent applying on date.
// Legal rates for years missing from the schedule fall back to its default;
// fallback reports when that happened.
func (c *Calculator) ResolveRate(date time.Time, mode RateMode, conventionalRate float64) (rate float64, fallback bool, err error) {
	switch mode {
	case RateLegal:
		r, found := c.tables.Rates.Rate(date.Year())
		if !found {
			c.log.Debug("legal rate missing from schedule, using default",
				zap.Int("year", date.Year()), zap.Float64("rate", r))
		}
		return r, !found, nil
	case RateConventional:
		return conventionalRate, false, nil
	case RateCIMA:
		return c.tables.CimaRate, false, nil
	}
	return 0, false, NewValidationError("rate_mode", "unsupported rate mode %q", mode)
}

// DaysInYear returns 366 for Gregorian leap years and 365 otherwise.
func DaysInYear(year int) int {
	if year%4 == 0 && (year%100 != 0 || year%400 == 0) {
		return 366
	}
	return 365
}

// civil truncates t to midnight UTC of its calendar day.
func civil(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// daysBetween counts calendar days from a to b, both civil dates.
func daysBetween(a, b time.Time) int {
	return int(b.Sub(a).Hours() / 24)
}

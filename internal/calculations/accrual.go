package calculations

import (
	"math"
	"time"

	"go.uber.org/zap"

	"github.com/cloud-ru/mcp-recouvrement-go/pkg/utils"
)

// AccrualOptions selects the rate and formula of an accrual run.
type AccrualOptions struct {
	RateMode         RateMode
	ConventionalRate float64
	CalculationType  CalculationType
	// Majorated multiplies every period rate by the majoration multiplier.
	Majorated    bool
	RoundAmounts bool
}

// with returns a new Accrual extended by p.
func (a Accrual) with(p InterestPeriod) Accrual {
	periods := make([]InterestPeriod, 0, len(a.Periods)+1)
	periods = append(periods, a.Periods...)
	return Accrual{Periods: append(periods, p), Total: a.Total + p.Interest}
}

// concat returns the periods of a followed by those of b, totals summed.
func (a Accrual) concat(b Accrual) Accrual {
	periods := make([]InterestPeriod, 0, len(a.Periods)+len(b.Periods))
	periods = append(periods, a.Periods...)
	return Accrual{Periods: append(periods, b.Periods...), Total: a.Total + b.Total}
}

// AccrueInterest computes interest on principal from start to end, both days
// included, one calendar-year slice at a time. An end before start yields no periods.
func (c *Calculator) AccrueInterest(principal float64, start, end time.Time, opts AccrualOptions) (Accrual, error) {
	start, end = civil(start), civil(end)

	acc := Accrual{Periods: []InterestPeriod{}}
	for cur := start; !cur.After(end); cur = time.Date(cur.Year()+1, time.January, 1, 0, 0, 0, 0, time.UTC) {
		year := cur.Year()
		periodEnd := time.Date(year, time.December, 31, 0, 0, 0, 0, time.UTC)
		if end.Before(periodEnd) {
			periodEnd = end
		}
		days := daysBetween(cur, periodEnd) + 1

		rate, fallback, err := c.ResolveRate(cur, opts.RateMode, opts.ConventionalRate)
		if err != nil {
			return Accrual{}, err
		}
		if opts.Majorated {
			rate *= c.tables.Majoration.Multiplier
		}

		interest, err := periodInterest(principal, rate, days, DaysInYear(year), opts.CalculationType)
		if err != nil {
			return Accrual{}, err
		}

		acc = acc.with(InterestPeriod{
			Year:      year,
			Start:     cur,
			End:       periodEnd,
			Days:      days,
			Rate:      rate,
			Interest:  interest,
			Majorated: opts.Majorated,
			Fallback:  fallback,
		})
	}

	acc.Total = utils.RoundIf(acc.Total, opts.RoundAmounts)
	return acc, nil
}

func periodInterest(principal, rate float64, days, yearDays int, ct CalculationType) (float64, error) {
	switch ct {
	case Simple:
		return principal * rate * float64(days) / (100 * float64(yearDays)), nil
	case Compound:
		return principal * (math.Pow(1+rate/100, float64(days)/float64(yearDays)) - 1), nil
	}
	return 0, NewValidationError("calculation_type", "unsupported calculation type %q", ct)
}

// MajorationCutoff returns the last day accruing at the normal rate: the
// decision date plus the policy grace period.
func (c *Calculator) MajorationCutoff(decision time.Time) time.Time {
	return civil(decision).AddDate(0, c.tables.Majoration.GraceMonths, 0)
}

// accrueWithMajoration splits [start, end] at the majoration cutoff when it
// falls strictly before end. The returned cutoff is nil when no split happened.
func (c *Calculator) accrueWithMajoration(principal float64, start, end time.Time, m Majoration, opts AccrualOptions) (Accrual, *time.Time, error) {
	opts.Majorated = false
	if !m.Active || m.DecisionDate.IsZero() {
		acc, err := c.AccrueInterest(principal, start, end, opts)
		return acc, nil, err
	}

	cutoff := c.MajorationCutoff(m.DecisionDate)
	if !civil(end).After(cutoff) {
		c.log.Debug("majoration cutoff not reached",
			zap.Time("cutoff", cutoff), zap.Time("end", end))
		acc, err := c.AccrueInterest(principal, start, end, opts)
		return acc, nil, err
	}

	normal, err := c.AccrueInterest(principal, start, cutoff, opts)
	if err != nil {
		return Accrual{}, nil, err
	}

	majStart := cutoff.AddDate(0, 0, 1)
	if majStart.Before(civil(start)) {
		majStart = civil(start)
	}
	opts.Majorated = true
	majorated, err := c.AccrueInterest(principal, majStart, end, opts)
	if err != nil {
		return Accrual{}, nil, err
	}

	c.log.Debug("majoration applied",
		zap.Time("cutoff", cutoff), zap.Int("normal_periods", len(normal.Periods)),
		zap.Int("majorated_periods", len(majorated.Periods)))
	return normal.concat(majorated), &cutoff, nil
}

// FutureInterest projects one month of interest after end, majorated when the
// cutoff has already passed.
func (c *Calculator) FutureInterest(principal float64, end time.Time, majorated bool, opts AccrualOptions) (Accrual, error) {
	end = civil(end)
	opts.Majorated = majorated
	return c.AccrueInterest(principal, end.AddDate(0, 0, 1), end.AddDate(0, 1, 0), opts)
}

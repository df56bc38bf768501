package calculations

import "github.com/cloud-ru/mcp-recouvrement-go/pkg/utils"

func validateAmount(field string, v float64, strictlyPositive bool) error {
	if !utils.IsFinite(v) {
		return NewValidationError(field, "value is not a finite number")
	}
	if strictlyPositive && v <= 0 {
		return NewValidationError(field, "must be greater than 0")
	}
	if v < 0 {
		return NewValidationError(field, "must not be negative")
	}
	return nil
}

// Validate checks a complete request before any computation runs.
func (r Request) Validate() error {
	if err := validateAmount("principal", r.Principal, true); err != nil {
		return err
	}
	if r.CreanceDate.IsZero() {
		return NewValidationError("creance_date", "is required")
	}
	if r.SaisieDate.IsZero() {
		return NewValidationError("saisie_date", "is required")
	}
	if civil(r.SaisieDate).Before(civil(r.CreanceDate)) {
		return NewValidationError("saisie_date", "must not precede creance_date")
	}

	switch r.RateMode {
	case RateLegal, RateCIMA:
	case RateConventional:
		if err := validateAmount("conventional_rate", r.ConventionalRate, false); err != nil {
			return err
		}
	default:
		return NewValidationError("rate_mode", "unsupported rate mode %q", r.RateMode)
	}

	switch r.CalculationType {
	case Simple, Compound:
	default:
		return NewValidationError("calculation_type", "unsupported calculation type %q", r.CalculationType)
	}

	if r.Fees.Active {
		switch r.Fees.TitleType {
		case WithoutTitle, WithTitle:
		default:
			return NewValidationError("title_type", "unsupported title type %q", r.Fees.TitleType)
		}
	}
	if err := validateAmount("justice_costs", r.Fees.JusticeCosts, false); err != nil {
		return err
	}
	for i, act := range r.Fees.Acts {
		if act.Label == "" {
			return NewValidationError("acts", "act %d has no label", i+1)
		}
		if err := validateAmount("acts", act.Amount, false); err != nil {
			return err
		}
	}
	return nil
}

// Validate checks an émoluments-only request.
func (r FeesOnlyRequest) Validate() error {
	if err := validateAmount("base", r.Base, true); err != nil {
		return err
	}
	switch r.TitleType {
	case WithoutTitle, WithTitle:
	default:
		return NewValidationError("title_type", "unsupported title type %q", r.TitleType)
	}
	return nil
}

// ComputeComplete runs the full recovery calculation: accrued interest from
// the day after the debt date to the seizure date, one month of future
// interest, optional émoluments and procedural costs, and the grand total.
func (c *Calculator) ComputeComplete(req Request) (*CompleteResult, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	start := civil(req.CreanceDate).AddDate(0, 0, 1)
	end := civil(req.SaisieDate)
	opts := AccrualOptions{
		RateMode:         req.RateMode,
		ConventionalRate: req.ConventionalRate,
		CalculationType:  req.CalculationType,
		RoundAmounts:     req.RoundAmounts,
	}

	accrued, cutoff, err := c.accrueWithMajoration(req.Principal, start, end, req.Majoration, opts)
	if err != nil {
		return nil, err
	}

	future, err := c.FutureInterest(req.Principal, end, cutoff != nil, opts)
	if err != nil {
		return nil, err
	}

	res := &CompleteResult{
		Principal:       req.Principal,
		StartDate:       start,
		EndDate:         end,
		RateMode:        req.RateMode,
		CalculationType: req.CalculationType,
		AccruedInterest: accrued,
		FutureInterest:  future,
		FeeBase:         req.Principal + accrued.Total,
		JusticeCosts:    req.Fees.JusticeCosts,
		RoundAmounts:    req.RoundAmounts,
	}
	if cutoff != nil {
		res.MajorationApplied = true
		res.MajorationCutoff = cutoff
		res.MajorationMultiplier = c.tables.Majoration.Multiplier
	}

	if req.Fees.Active {
		res.FeeBase += req.Fees.JusticeCosts
		fees, err := c.ComputeFees(res.FeeBase, req.Fees.TitleType, req.RoundAmounts)
		if err != nil {
			return nil, err
		}
		res.Fees = &fees
	}

	res.Acts = append([]ProcedureAct(nil), req.Fees.Acts...)
	for _, act := range res.Acts {
		res.ActsCost += act.Amount
	}

	res.Total = res.Principal + accrued.Total + res.JusticeCosts + res.ActsCost
	if res.Fees != nil {
		res.Total += res.Fees.Total
	}
	return res, nil
}

// ComputeFeesOnly computes émoluments on a given base.
func (c *Calculator) ComputeFeesOnly(req FeesOnlyRequest) (*FeesOnlyResult, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	fees, err := c.ComputeFees(req.Base, req.TitleType, req.RoundAmounts)
	if err != nil {
		return nil, err
	}
	return &FeesOnlyResult{
		Base:         req.Base,
		Fees:         fees,
		Total:        req.Base + fees.Total,
		RoundAmounts: req.RoundAmounts,
	}, nil
}


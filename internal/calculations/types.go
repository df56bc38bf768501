package calculations

import (
	"strings"
	"time"
)

// RateMode selects how the annual rate of each period is obtained.
type RateMode string

const (
	RateLegal        RateMode = "legal"
	RateConventional RateMode = "conventional"
	RateCIMA         RateMode = "cima"
)

// ParseRateMode parses a rate mode name. French aliases are accepted.
func ParseRateMode(s string) (RateMode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "legal", "légal":
		return RateLegal, nil
	case "conventional", "conventionnel":
		return RateConventional, nil
	case "cima":
		return RateCIMA, nil
	}
	return "", NewValidationError("rate_mode", "unknown rate mode %q", s)
}

// CalculationType selects the interest formula.
type CalculationType string

const (
	Simple   CalculationType = "simple"
	Compound CalculationType = "compound"
)

// ParseCalculationType parses an interest formula name.
func ParseCalculationType(s string) (CalculationType, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "simple":
		return Simple, nil
	case "compound", "compose", "composé":
		return Compound, nil
	}
	return "", NewValidationError("calculation_type", "unknown calculation type %q", s)
}

// TitleType tells whether an enforceable title exists; it picks the fee scale.
type TitleType string

const (
	WithoutTitle TitleType = "sans"
	WithTitle    TitleType = "avec"
)

// ParseTitleType parses a title type.
func ParseTitleType(s string) (TitleType, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "sans", "without":
		return WithoutTitle, nil
	case "avec", "with":
		return WithTitle, nil
	}
	return "", NewValidationError("title_type", "unknown title type %q", s)
}

// CalculationMode tags the two kinds of result.
type CalculationMode string

const (
	ModeComplete CalculationMode = "complet"
	ModeFeesOnly CalculationMode = "emoluments"
)

// Majoration requests the statutory rate increase after a judicial decision.
type Majoration struct {
	Active       bool      `json:"active"`
	DecisionDate time.Time `json:"decision_date"`
}

// ProcedureAct is a procedural cost line.
type ProcedureAct struct {
	ID     string  `json:"id,omitempty"`
	Label  string  `json:"label"`
	Amount float64 `json:"amount"`
}

// FeeOptions controls émoluments and the extra cost lines of a complete calculation.
type FeeOptions struct {
	Active       bool           `json:"active"`
	TitleType    TitleType      `json:"title_type"`
	JusticeCosts float64        `json:"justice_costs,omitempty"`
	Acts         []ProcedureAct `json:"acts,omitempty"`
}

// Request is the input of a complete recovery calculation.
// Interest runs from the day after CreanceDate up to SaisieDate inclusive.
type Request struct {
	Principal        float64         `json:"principal"`
	CreanceDate      time.Time       `json:"creance_date"`
	SaisieDate       time.Time       `json:"saisie_date"`
	RateMode         RateMode        `json:"rate_mode"`
	ConventionalRate float64         `json:"conventional_rate,omitempty"`
	CalculationType  CalculationType `json:"calculation_type"`
	Majoration       Majoration      `json:"majoration"`
	Fees             FeeOptions      `json:"fees"`
	RoundAmounts     bool            `json:"round_amounts"`
}

// FeesOnlyRequest is the input of an émoluments-only calculation.
type FeesOnlyRequest struct {
	Base         float64   `json:"base"`
	TitleType    TitleType `json:"title_type"`
	RoundAmounts bool      `json:"round_amounts"`
}

// InterestPeriod is one slice of the accrual window inside a single calendar year.
type InterestPeriod struct {
	Year      int       `json:"year"`
	Start     time.Time `json:"start"`
	End       time.Time `json:"end"`
	Days      int       `json:"days"`
	Rate      float64   `json:"rate"`
	Interest  float64   `json:"interest"`
	Majorated bool      `json:"majorated,omitempty"`
	// Fallback marks a legal rate taken from the schedule default.
	Fallback bool `json:"fallback,omitempty"`
}

// Accrual is the chronological list of periods and their total.
// Total is rounded when rounding is enabled; period amounts never are.
type Accrual struct {
	Periods []InterestPeriod `json:"periods"`
	Total   float64          `json:"total"`
}

// FeeTierLine is the share of the base taxed inside one bracket. Max is 0 for the open-ended bracket.
type FeeTierLine struct {
	Min         float64 `json:"min"`
	Max         float64 `json:"max,omitempty"`
	RatePercent float64 `json:"rate"`
	Slice       float64 `json:"slice"`
	Fee         float64 `json:"fee"`
}

// FeeResult holds the émoluments total and the per-bracket detail.
type FeeResult struct {
	TitleType TitleType     `json:"title_type"`
	Total     float64       `json:"total"`
	Tiers     []FeeTierLine `json:"tiers"`
}

// Result is implemented by both calculation outcomes.
type Result interface {
	Mode() CalculationMode
	GrandTotal() float64
}

// FeesOnlyResult is the outcome of ComputeFeesOnly.
type FeesOnlyResult struct {
	Base         float64   `json:"base"`
	Fees         FeeResult `json:"fees"`
	Total        float64   `json:"total"`
	RoundAmounts bool      `json:"round_amounts"`
}

func (r *FeesOnlyResult) Mode() CalculationMode { return ModeFeesOnly }
func (r *FeesOnlyResult) GrandTotal() float64   { return r.Total }

// CompleteResult is the outcome of ComputeComplete. Every intermediate figure
// is kept: the legal mention is rendered from it.
type CompleteResult struct {
	Principal            float64         `json:"principal"`
	StartDate            time.Time       `json:"start_date"`
	EndDate              time.Time       `json:"end_date"`
	RateMode             RateMode        `json:"rate_mode"`
	CalculationType      CalculationType `json:"calculation_type"`
	AccruedInterest      Accrual         `json:"accrued_interest"`
	FutureInterest       Accrual         `json:"future_interest"`
	MajorationApplied    bool            `json:"majoration_applied"`
	MajorationCutoff     *time.Time      `json:"majoration_cutoff,omitempty"`
	MajorationMultiplier float64         `json:"majoration_multiplier,omitempty"`
	Fees                 *FeeResult      `json:"fees,omitempty"`
	FeeBase              float64         `json:"fee_base"`
	JusticeCosts         float64         `json:"justice_costs"`
	Acts                 []ProcedureAct  `json:"acts,omitempty"`
	ActsCost             float64         `json:"acts_cost"`
	Total                float64         `json:"total"`
	RoundAmounts         bool            `json:"round_amounts"`
}

func (r *CompleteResult) Mode() CalculationMode { return ModeComplete }
func (r *CompleteResult) GrandTotal() float64   { return r.Total }

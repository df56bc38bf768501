package calculations

import (
	"strings"

	"github.com/shopspring/decimal"
)

// ImputationMode decides where a debtor payment goes.
type ImputationMode string

const (
	// ImputeStandard applies the legal order for forced recovery:
	// costs, then émoluments, then interest, then principal.
	ImputeStandard ImputationMode = "standard"
	// ImputeReserved holds the payment until the officer imputes it by hand.
	ImputeReserved ImputationMode = "reserve"
	// ImputeAmicable remits everything; amicable costs are borne by the creditor.
	ImputeAmicable ImputationMode = "amiable"
	// ImputeBank remits everything; costs are invoiced separately.
	ImputeBank ImputationMode = "banque"
)

// ParseImputationMode parses an imputation mode name.
func ParseImputationMode(s string) (ImputationMode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "standard":
		return ImputeStandard, nil
	case "reserve", "réservé", "reserved":
		return ImputeReserved, nil
	case "amiable", "amicable":
		return ImputeAmicable, nil
	case "banque", "bank":
		return ImputeBank, nil
	}
	return "", NewValidationError("mode", "unknown imputation mode %q", s)
}

// Outstanding lists what the debtor still owes per component.
type Outstanding struct {
	Costs     float64 `json:"costs"`
	Fees      float64 `json:"fees"`
	Interest  float64 `json:"interest"`
	Principal float64 `json:"principal"`
}

// Imputation is the split of one payment. Components always sum to Amount.
type Imputation struct {
	Mode      ImputationMode `json:"mode"`
	Amount    float64        `json:"amount"`
	Costs     float64        `json:"costs"`
	Fees      float64        `json:"fees"`
	Interest  float64        `json:"interest"`
	Principal float64        `json:"principal"`
	Reserved  float64        `json:"reserved"`
	ToRemit   float64        `json:"to_remit"`
}

// ImputePayment splits a payment of amount (whole FCFA) across the outstanding components.
func ImputePayment(amount float64, due Outstanding, mode ImputationMode) (Imputation, error) {
	if err := validateAmount("amount", amount, true); err != nil {
		return Imputation{}, err
	}
	components := []struct {
		field string
		value float64
	}{
		{"costs", due.Costs}, {"fees", due.Fees}, {"interest", due.Interest}, {"principal", due.Principal},
	}
	for _, c := range components {
		if err := validateAmount(c.field, c.value, false); err != nil {
			return Imputation{}, err
		}
	}

	paid := decimal.NewFromFloat(amount).Round(0)
	out := Imputation{Mode: mode, Amount: paid.InexactFloat64()}

	switch mode {
	case ImputeAmicable, ImputeBank:
		out.ToRemit = out.Amount
		return out, nil
	case ImputeReserved:
		out.Reserved = out.Amount
		return out, nil
	case ImputeStandard:
	default:
		return Imputation{}, NewValidationError("mode", "unsupported imputation mode %q", mode)
	}

	remaining := paid
	take := func(owed float64) float64 {
		d := decimal.NewFromFloat(owed).Round(0)
		part := decimal.Min(remaining, d)
		if part.IsNegative() {
			part = decimal.Zero
		}
		remaining = remaining.Sub(part)
		return part.InexactFloat64()
	}

	out.Costs = take(due.Costs)
	out.Fees = take(due.Fees)
	out.Interest = take(due.Interest)
	out.Principal = take(due.Principal)
	out.ToRemit = remaining.InexactFloat64()
	return out, nil
}

// OutstandingFrom derives what is owed from a complete calculation.
func OutstandingFrom(r *CompleteResult) Outstanding {
	due := Outstanding{
		Costs:     r.JusticeCosts + r.ActsCost,
		Interest:  r.AccruedInterest.Total,
		Principal: r.Principal,
	}
	if r.Fees != nil {
		due.Fees = r.Fees.Total
	}
	return due
}

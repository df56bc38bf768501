package validators

import (
	"time"

	"github.com/cloud-ru/mcp-recouvrement-go/internal/calculations"
	"github.com/cloud-ru/mcp-recouvrement-go/internal/config"
	"github.com/cloud-ru/mcp-recouvrement-go/pkg/utils"
)

// DefaultLimits apply when no configuration is supplied.
var DefaultLimits = config.LimitsConfig{
	MaxPrincipal: 1e12,
	MaxRate:      200,
	MaxYears:     100,
}

// limits returns the configured bounds, or DefaultLimits for a nil config.
func limits(cfg *config.Config) config.LimitsConfig {
	if cfg == nil {
		return DefaultLimits
	}
	return cfg.Limits
}

// ValidatePositiveNumber checks that value is finite and within [minInclusive; maxInclusive].
func ValidatePositiveNumber(name string, value float64, minInclusive, maxInclusive float64) error {
	if !utils.IsFinite(value) {
		return calculations.NewValidationError(name, "value is not a finite number")
	}
	if value < minInclusive {
		return calculations.NewValidationError(name, "value must be ≥ %g", minInclusive)
	}
	if value > maxInclusive {
		return calculations.NewValidationError(name, "value is too large (>%g)", maxInclusive)
	}
	return nil
}

// ValidateStrictlyPositive checks that value is finite, above zero and at most maxInclusive.
func ValidateStrictlyPositive(name string, value float64, maxInclusive float64) error {
	if !utils.IsFinite(value) {
		return calculations.NewValidationError(name, "value is not a finite number")
	}
	if value <= 0 {
		return calculations.NewValidationError(name, "value must be > 0")
	}
	if value > maxInclusive {
		return calculations.NewValidationError(name, "value is too large (>%g)", maxInclusive)
	}
	return nil
}

// ValidateIntRange checks that an integer lies in [minInclusive; maxInclusive].
func ValidateIntRange(name string, value int, minInclusive, maxInclusive int) error {
	if value < minInclusive || value > maxInclusive {
		return calculations.NewValidationError(name, "value must be in [%d; %d]", minInclusive, maxInclusive)
	}
	return nil
}

// CheckPrincipal checks the claim principal.
func CheckPrincipal(cfg *config.Config, principal float64) error {
	return ValidateStrictlyPositive("principal", principal, limits(cfg).MaxPrincipal)
}

// CheckRate checks a conventional annual rate in percent.
func CheckRate(cfg *config.Config, rate float64) error {
	return ValidatePositiveNumber("conventional_rate", rate, 0, limits(cfg).MaxRate)
}

// CheckFeeBase checks the base of an émoluments-only calculation.
func CheckFeeBase(cfg *config.Config, base float64) error {
	return ValidateStrictlyPositive("base", base, limits(cfg).MaxPrincipal)
}

// CheckAmount checks an optional cost or outstanding amount: zero is allowed.
func CheckAmount(cfg *config.Config, name string, amount float64) error {
	return ValidatePositiveNumber(name, amount, 0, limits(cfg).MaxPrincipal)
}

// CheckPayment checks a debtor payment.
func CheckPayment(cfg *config.Config, amount float64) error {
	return ValidateStrictlyPositive("amount", amount, limits(cfg).MaxPrincipal)
}

// CheckDateRange checks that the seizure date does not precede the debt date
// and that the accrual window stays within the configured number of years.
func CheckDateRange(cfg *config.Config, creance, saisie time.Time) error {
	if saisie.Before(creance) {
		return calculations.NewValidationError("saisie_date", "must not precede creance_date")
	}
	maxYears := limits(cfg).MaxYears
	if saisie.After(creance.AddDate(maxYears, 0, 0)) {
		return calculations.NewValidationError("saisie_date", "accrual window exceeds %d years", maxYears)
	}
	return nil
}

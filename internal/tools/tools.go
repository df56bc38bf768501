package tools

import (
	"context"
	"fmt"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/cloud-ru/mcp-recouvrement-go/internal/calculations"
	"github.com/cloud-ru/mcp-recouvrement-go/internal/config"
	"github.com/cloud-ru/mcp-recouvrement-go/internal/metrics"
	"github.com/cloud-ru/mcp-recouvrement-go/internal/tariffs"
	"github.com/cloud-ru/mcp-recouvrement-go/internal/validators"
)

// ToolHandler handles one named tool call.
type ToolHandler func(ctx context.Context, params map[string]interface{}) (interface{}, error)

// Tool names.
const (
	ToolCalculateComplete = "calculate_complete"
	ToolCalculateFees     = "calculate_fees"
	ToolImputePayment     = "impute_payment"
	ToolLegalRate         = "legal_rate"
	ToolActCatalog        = "act_catalog"
)

// CalculationOutput pairs a result with its legal mention.
type CalculationOutput struct {
	Result  calculations.Result `json:"result"`
	Mention string              `json:"mention"`
}

// RateOutput is the rate applying to a given year.
type RateOutput struct {
	Year     int                   `json:"year"`
	Mode     calculations.RateMode `json:"mode"`
	Rate     float64               `json:"rate"`
	Fallback bool                  `json:"fallback"`
}

func failValidation(span trace.Span, toolName string, err error) error {
	span.SetAttributes(attribute.String("error", "validation_error"))
	span.RecordError(err)
	metrics.ToolCalls.WithLabelValues(toolName, "validation_error").Inc()
	metrics.CalculationErrors.WithLabelValues(toolName, "validation").Inc()
	return fmt.Errorf("invalid parameters: %w", err)
}

func failCalculation(span trace.Span, toolName string, err error) error {
	if calculations.IsValidationError(err) {
		return failValidation(span, toolName, err)
	}
	span.SetAttributes(attribute.String("error", "calculation_error"))
	span.RecordError(err)
	metrics.ToolCalls.WithLabelValues(toolName, "error").Inc()
	metrics.CalculationErrors.WithLabelValues(toolName, "calculation").Inc()
	return fmt.Errorf("calculation failed: %w", err)
}

func succeed(span trace.Span, toolName string) {
	span.SetAttributes(attribute.Bool("success", true))
	metrics.ToolCalls.WithLabelValues(toolName, "success").Inc()
}

// parseCompleteRequest turns loosely typed params into a checked Request.
func parseCompleteRequest(cfg *config.Config, calc *calculations.Calculator, params map[string]interface{}) (calculations.Request, error) {
	var req calculations.Request
	var err error

	if req.Principal, err = numberParam(params, "principal"); err != nil {
		return req, err
	}
	if err = validators.CheckPrincipal(cfg, req.Principal); err != nil {
		return req, err
	}

	if req.CreanceDate, err = dateParam(params, "creance_date"); err != nil {
		return req, err
	}
	if req.CreanceDate.IsZero() {
		return req, invalid("creance_date", "is required")
	}
	if req.SaisieDate, err = dateParam(params, "saisie_date"); err != nil {
		return req, err
	}
	if req.SaisieDate.IsZero() {
		return req, invalid("saisie_date", "is required")
	}
	if err = validators.CheckDateRange(cfg, req.CreanceDate, req.SaisieDate); err != nil {
		return req, err
	}

	mode, err := stringParam(params, "rate_mode")
	if err != nil {
		return req, err
	}
	if req.RateMode, err = calculations.ParseRateMode(mode); err != nil {
		return req, err
	}
	if req.RateMode == calculations.RateConventional {
		// An absent conventional rate means 0%.
		if req.ConventionalRate, err = optionalNumberParam(params, "conventional_rate"); err != nil {
			return req, err
		}
		if err = validators.CheckRate(cfg, req.ConventionalRate); err != nil {
			return req, err
		}
	}

	ct, err := stringParam(params, "calculation_type")
	if err != nil {
		return req, err
	}
	if req.CalculationType, err = calculations.ParseCalculationType(ct); err != nil {
		return req, err
	}

	if req.Majoration.Active, err = boolParam(params, "majoration", false); err != nil {
		return req, err
	}
	if req.Majoration.Active {
		if req.Majoration.DecisionDate, err = dateParam(params, "decision_date"); err != nil {
			return req, err
		}
	}

	if req.Fees.Active, err = boolParam(params, "fees", false); err != nil {
		return req, err
	}
	title, err := stringParam(params, "title_type")
	if err != nil {
		return req, err
	}
	if req.Fees.TitleType, err = calculations.ParseTitleType(title); err != nil {
		return req, err
	}
	if req.Fees.JusticeCosts, err = optionalNumberParam(params, "justice_costs"); err != nil {
		return req, err
	}
	if err = validators.CheckAmount(cfg, "justice_costs", req.Fees.JusticeCosts); err != nil {
		return req, err
	}
	if req.Fees.Acts, err = actsParam(params, calc); err != nil {
		return req, err
	}
	for _, act := range req.Fees.Acts {
		if err = validators.CheckAmount(cfg, "acts", act.Amount); err != nil {
			return req, err
		}
	}

	if req.RoundAmounts, err = boolParam(params, "round_amounts", roundDefault(cfg)); err != nil {
		return req, err
	}
	return req, nil
}

func roundDefault(cfg *config.Config) bool {
	if cfg == nil {
		return true
	}
	return cfg.Calc.RoundAmounts
}

// recordAccrual feeds the fallback and majoration counters.
func recordAccrual(res *calculations.CompleteResult) {
	var fallbacks int
	for _, acc := range []calculations.Accrual{res.AccruedInterest, res.FutureInterest} {
		for _, p := range acc.Periods {
			if p.Fallback {
				fallbacks++
			}
		}
	}
	if fallbacks > 0 {
		metrics.RateFallbacks.Add(float64(fallbacks))
	}
	if res.MajorationApplied {
		metrics.Majorations.Inc()
	}
}

// CalculateCompleteHandler runs a complete recovery calculation.
func CalculateCompleteHandler(cfg *config.Config, calc *calculations.Calculator, tracer trace.Tracer) ToolHandler {
	return func(ctx context.Context, params map[string]interface{}) (interface{}, error) {
		toolName := ToolCalculateComplete

		_, span := tracer.Start(ctx, toolName)
		defer span.End()

		req, err := parseCompleteRequest(cfg, calc, params)
		if err != nil {
			return nil, failValidation(span, toolName, err)
		}

		span.SetAttributes(
			attribute.Float64("principal", req.Principal),
			attribute.String("creance_date", req.CreanceDate.Format(time.DateOnly)),
			attribute.String("saisie_date", req.SaisieDate.Format(time.DateOnly)),
			attribute.String("rate_mode", string(req.RateMode)),
			attribute.String("calculation_type", string(req.CalculationType)),
			attribute.Bool("majoration", req.Majoration.Active),
			attribute.Bool("fees", req.Fees.Active),
			attribute.Int("acts", len(req.Fees.Acts)),
		)

		res, err := calc.ComputeComplete(req)
		if err != nil {
			return nil, failCalculation(span, toolName, err)
		}
		recordAccrual(res)

		span.SetAttributes(
			attribute.Float64("total", res.Total),
			attribute.Int("periods", len(res.AccruedInterest.Periods)),
			attribute.Bool("majoration_applied", res.MajorationApplied),
		)
		succeed(span, toolName)

		return CalculationOutput{Result: res, Mention: calculations.RenderLegalMention(res)}, nil
	}
}

// CalculateFeesHandler computes émoluments on a given base.
func CalculateFeesHandler(cfg *config.Config, calc *calculations.Calculator, tracer trace.Tracer) ToolHandler {
	return func(ctx context.Context, params map[string]interface{}) (interface{}, error) {
		toolName := ToolCalculateFees

		_, span := tracer.Start(ctx, toolName)
		defer span.End()

		var req calculations.FeesOnlyRequest
		var err error
		if req.Base, err = numberParam(params, "base"); err != nil {
			return nil, failValidation(span, toolName, err)
		}
		if err = validators.CheckFeeBase(cfg, req.Base); err != nil {
			return nil, failValidation(span, toolName, err)
		}
		title, err := stringParam(params, "title_type")
		if err != nil {
			return nil, failValidation(span, toolName, err)
		}
		if req.TitleType, err = calculations.ParseTitleType(title); err != nil {
			return nil, failValidation(span, toolName, err)
		}
		if req.RoundAmounts, err = boolParam(params, "round_amounts", roundDefault(cfg)); err != nil {
			return nil, failValidation(span, toolName, err)
		}

		span.SetAttributes(
			attribute.Float64("base", req.Base),
			attribute.String("title_type", string(req.TitleType)),
		)

		res, err := calc.ComputeFeesOnly(req)
		if err != nil {
			return nil, failCalculation(span, toolName, err)
		}

		span.SetAttributes(attribute.Float64("fees", res.Fees.Total))
		succeed(span, toolName)

		return CalculationOutput{Result: res, Mention: calculations.RenderLegalMention(res)}, nil
	}
}

// ImputePaymentHandler splits a debtor payment. What is owed comes either
// from a nested "calculation" (complete calculation params) or from the
// costs, fees, interest and principal params.
func ImputePaymentHandler(cfg *config.Config, calc *calculations.Calculator, tracer trace.Tracer) ToolHandler {
	return func(ctx context.Context, params map[string]interface{}) (interface{}, error) {
		toolName := ToolImputePayment

		_, span := tracer.Start(ctx, toolName)
		defer span.End()

		amount, err := numberParam(params, "amount")
		if err != nil {
			return nil, failValidation(span, toolName, err)
		}
		if err = validators.CheckPayment(cfg, amount); err != nil {
			return nil, failValidation(span, toolName, err)
		}
		modeName, err := stringParam(params, "mode")
		if err != nil {
			return nil, failValidation(span, toolName, err)
		}
		mode, err := calculations.ParseImputationMode(modeName)
		if err != nil {
			return nil, failValidation(span, toolName, err)
		}

		var due calculations.Outstanding
		nested, ok, err := objectParam(params, "calculation")
		if err != nil {
			return nil, failValidation(span, toolName, err)
		}
		if ok {
			req, err := parseCompleteRequest(cfg, calc, nested)
			if err != nil {
				return nil, failValidation(span, toolName, err)
			}
			res, err := calc.ComputeComplete(req)
			if err != nil {
				return nil, failCalculation(span, toolName, err)
			}
			due = calculations.OutstandingFrom(res)
		} else {
			fields := []struct {
				name string
				dst  *float64
			}{
				{"costs", &due.Costs}, {"fees", &due.Fees}, {"interest", &due.Interest}, {"principal", &due.Principal},
			}
			for _, f := range fields {
				if *f.dst, err = optionalNumberParam(params, f.name); err != nil {
					return nil, failValidation(span, toolName, err)
				}
				if err = validators.CheckAmount(cfg, f.name, *f.dst); err != nil {
					return nil, failValidation(span, toolName, err)
				}
			}
		}

		span.SetAttributes(
			attribute.Float64("amount", amount),
			attribute.String("mode", string(mode)),
		)

		imp, err := calculations.ImputePayment(amount, due, mode)
		if err != nil {
			return nil, failCalculation(span, toolName, err)
		}

		span.SetAttributes(attribute.Float64("to_remit", imp.ToRemit))
		succeed(span, toolName)

		return imp, nil
	}
}

// LegalRateHandler resolves the annual rate applying in a given year.
func LegalRateHandler(calc *calculations.Calculator, tracer trace.Tracer) ToolHandler {
	return func(ctx context.Context, params map[string]interface{}) (interface{}, error) {
		toolName := ToolLegalRate

		_, span := tracer.Start(ctx, toolName)
		defer span.End()

		yearValue, err := numberParam(params, "year")
		if err != nil {
			return nil, failValidation(span, toolName, err)
		}
		year := int(yearValue)
		if float64(year) != yearValue {
			return nil, failValidation(span, toolName, invalid("year", "must be a whole year"))
		}
		if err = validators.ValidateIntRange("year", year, 1900, 2200); err != nil {
			return nil, failValidation(span, toolName, err)
		}
		modeName, err := stringParam(params, "rate_mode")
		if err != nil {
			return nil, failValidation(span, toolName, err)
		}
		mode, err := calculations.ParseRateMode(modeName)
		if err != nil {
			return nil, failValidation(span, toolName, err)
		}

		span.SetAttributes(attribute.Int("year", year), attribute.String("rate_mode", string(mode)))

		rate, fallback, err := calc.ResolveRate(time.Date(year, time.January, 1, 0, 0, 0, 0, time.UTC), mode, 0)
		if err != nil {
			return nil, failCalculation(span, toolName, err)
		}
		if fallback {
			metrics.RateFallbacks.Inc()
		}

		succeed(span, toolName)
		return RateOutput{Year: year, Mode: mode, Rate: rate, Fallback: fallback}, nil
	}
}

// ActCatalogHandler lists the catalogued procedural acts and their tariffs.
func ActCatalogHandler(calc *calculations.Calculator, tracer trace.Tracer) ToolHandler {
	return func(ctx context.Context, params map[string]interface{}) (interface{}, error) {
		toolName := ToolActCatalog

		_, span := tracer.Start(ctx, toolName)
		defer span.End()

		acts := calc.Tables().Acts
		span.SetAttributes(attribute.Int("acts", len(acts)))
		succeed(span, toolName)

		return []tariffs.Act(acts), nil
	}
}

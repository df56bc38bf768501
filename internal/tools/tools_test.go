package tools

import (
	"context"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/trace/noop"

	"github.com/cloud-ru/mcp-recouvrement-go/internal/calculations"
	"github.com/cloud-ru/mcp-recouvrement-go/internal/config"
	"github.com/cloud-ru/mcp-recouvrement-go/internal/metrics"
	"github.com/cloud-ru/mcp-recouvrement-go/internal/tariffs"
)

func testRegistry() *Registry {
	cfg := &config.Config{
		Limits: config.LimitsConfig{MaxPrincipal: 1e12, MaxRate: 200, MaxYears: 100},
		Calc:   config.CalcConfig{RoundAmounts: true},
	}
	calc := calculations.NewCalculator(tariffs.Default())
	return NewRegistry(cfg, calc, noop.NewTracerProvider().Tracer("test"))
}

func completeParams() map[string]interface{} {
	return map[string]interface{}{
		"principal":     "1 000 000",
		"creance_date":  "2024-01-01",
		"saisie_date":   "2024-06-01",
		"rate_mode":     "legal",
		"majoration":    true,
		"decision_date": "2024-02-01",
		"fees":          true,
		"title_type":    "sans",
		"justice_costs": 10000.0,
		"acts": []interface{}{
			map[string]interface{}{"id": "cmd"},
			map[string]interface{}{"label": "Frais de greffe", "amount": 5000.0},
		},
	}
}

func TestCalculateComplete(t *testing.T) {
	r := testRegistry()
	successBefore := testutil.ToFloat64(metrics.ToolCalls.WithLabelValues(ToolCalculateComplete, "success"))
	majBefore := testutil.ToFloat64(metrics.Majorations)

	out, err := r.Call(context.Background(), ToolCalculateComplete, completeParams())
	require.NoError(t, err)

	co, ok := out.(CalculationOutput)
	require.True(t, ok)
	res, ok := co.Result.(*calculations.CompleteResult)
	require.True(t, ok)

	assert.True(t, res.RoundAmounts, "rounding defaults to the configured value")
	assert.Equal(t, 25_099.0, res.AccruedInterest.Total)
	assert.Equal(t, 1_158_609.0, res.Total)
	assert.Equal(t, calculations.RenderLegalMention(res), co.Mention)

	assert.Equal(t, successBefore+1, testutil.ToFloat64(metrics.ToolCalls.WithLabelValues(ToolCalculateComplete, "success")))
	assert.Equal(t, majBefore+1, testutil.ToFloat64(metrics.Majorations))
}

func TestCalculateCompleteValidation(t *testing.T) {
	r := testRegistry()

	tests := []struct {
		name  string
		edit  func(map[string]interface{})
		field string
	}{
		{name: "missing saisie date", edit: func(p map[string]interface{}) { delete(p, "saisie_date") }, field: "saisie_date"},
		{name: "non numeric principal", edit: func(p map[string]interface{}) { p["principal"] = "un million" }, field: "principal"},
		{name: "zero principal", edit: func(p map[string]interface{}) { p["principal"] = 0.0 }, field: "principal"},
		{name: "saisie before creance", edit: func(p map[string]interface{}) { p["saisie_date"] = "2023-01-01" }, field: "saisie_date"},
		{name: "unknown rate mode", edit: func(p map[string]interface{}) { p["rate_mode"] = "euribor" }, field: "rate_mode"},
		{name: "rate above limit", edit: func(p map[string]interface{}) {
			p["rate_mode"] = "conventional"
			p["conventional_rate"] = 500.0
		}, field: "conventional_rate"},
		{name: "negative justice costs", edit: func(p map[string]interface{}) { p["justice_costs"] = "-1" }, field: "justice_costs"},
		{name: "unknown act", edit: func(p map[string]interface{}) {
			p["acts"] = []interface{}{map[string]interface{}{"id": "nope"}}
		}, field: "acts"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			before := testutil.ToFloat64(metrics.CalculationErrors.WithLabelValues(ToolCalculateComplete, "validation"))

			params := completeParams()
			tt.edit(params)
			out, err := r.Call(context.Background(), ToolCalculateComplete, params)
			require.Error(t, err)
			assert.Nil(t, out)
			assert.True(t, strings.HasPrefix(err.Error(), "invalid parameters: "))

			var ve *calculations.ValidationError
			require.ErrorAs(t, err, &ve)
			assert.Equal(t, tt.field, ve.Field)

			after := testutil.ToFloat64(metrics.CalculationErrors.WithLabelValues(ToolCalculateComplete, "validation"))
			assert.Equal(t, before+1, after)
		})
	}
}

func TestCalculateCompleteConventionalDefaultsToZero(t *testing.T) {
	r := testRegistry()

	out, err := r.Call(context.Background(), ToolCalculateComplete, map[string]interface{}{
		"principal":    1_000_000.0,
		"creance_date": "2024-01-01",
		"saisie_date":  "2024-12-31",
		"rate_mode":    "conventionnel",
	})
	require.NoError(t, err)
	res := out.(CalculationOutput).Result.(*calculations.CompleteResult)
	assert.Zero(t, res.AccruedInterest.Total)
	assert.Equal(t, 1_000_000.0, res.Total)
}

func TestCalculateCompleteCountsFallbacks(t *testing.T) {
	r := testRegistry()
	before := testutil.ToFloat64(metrics.RateFallbacks)

	_, err := r.Call(context.Background(), ToolCalculateComplete, map[string]interface{}{
		"principal":    1_000_000.0,
		"creance_date": "2025-11-30",
		"saisie_date":  "2026-02-01",
	})
	require.NoError(t, err)

	// 2026 in the accrued window and again in the one-month projection.
	assert.Equal(t, before+2, testutil.ToFloat64(metrics.RateFallbacks))
}

func TestCalculateFees(t *testing.T) {
	r := testRegistry()

	out, err := r.Call(context.Background(), ToolCalculateFees, map[string]interface{}{
		"base":       "10 000 000",
		"title_type": "avec",
	})
	require.NoError(t, err)
	res := out.(CalculationOutput).Result.(*calculations.FeesOnlyResult)
	assert.Equal(t, 675_000.0, res.Fees.Total)
	assert.Equal(t, 10_675_000.0, res.Total)

	_, err = r.Call(context.Background(), ToolCalculateFees, map[string]interface{}{"base": 0.0})
	assert.True(t, calculations.IsValidationError(err))

	_, err = r.Call(context.Background(), ToolCalculateFees, map[string]interface{}{"base": 1000.0, "title_type": "bof"})
	assert.True(t, calculations.IsValidationError(err))
}

func TestImputePaymentFromComponents(t *testing.T) {
	r := testRegistry()

	out, err := r.Call(context.Background(), ToolImputePayment, map[string]interface{}{
		"amount":    "150 000",
		"costs":     30000.0,
		"fees":      100000.0,
		"interest":  25000.0,
		"principal": 1000000.0,
	})
	require.NoError(t, err)
	imp := out.(calculations.Imputation)
	assert.Equal(t, calculations.Imputation{
		Mode: calculations.ImputeStandard, Amount: 150_000,
		Costs: 30_000, Fees: 100_000, Interest: 20_000,
	}, imp)
}

func TestImputePaymentFromCalculation(t *testing.T) {
	r := testRegistry()

	out, err := r.Call(context.Background(), ToolImputePayment, map[string]interface{}{
		"amount":      1_200_000.0,
		"calculation": completeParams(),
	})
	require.NoError(t, err)
	imp := out.(calculations.Imputation)
	assert.Equal(t, 30_000.0, imp.Costs)
	assert.Equal(t, 103_510.0, imp.Fees)
	assert.Equal(t, 25_099.0, imp.Interest)
	assert.Equal(t, 1_000_000.0, imp.Principal)
	assert.Equal(t, 41_391.0, imp.ToRemit)
}

func TestImputePaymentValidation(t *testing.T) {
	r := testRegistry()

	_, err := r.Call(context.Background(), ToolImputePayment, map[string]interface{}{"amount": 0.0})
	assert.True(t, calculations.IsValidationError(err))

	_, err = r.Call(context.Background(), ToolImputePayment, map[string]interface{}{"amount": 10.0, "mode": "cash"})
	assert.True(t, calculations.IsValidationError(err))

	_, err = r.Call(context.Background(), ToolImputePayment, map[string]interface{}{"amount": 10.0, "calculation": "oops"})
	assert.True(t, calculations.IsValidationError(err))
}

func TestLegalRate(t *testing.T) {
	r := testRegistry()

	out, err := r.Call(context.Background(), ToolLegalRate, map[string]interface{}{"year": 2023.0})
	require.NoError(t, err)
	assert.Equal(t, RateOutput{Year: 2023, Mode: calculations.RateLegal, Rate: 4.2205}, out)

	out, err = r.Call(context.Background(), ToolLegalRate, map[string]interface{}{"year": "2030"})
	require.NoError(t, err)
	assert.True(t, out.(RateOutput).Fallback)

	out, err = r.Call(context.Background(), ToolLegalRate, map[string]interface{}{"year": 2030.0, "rate_mode": "cima"})
	require.NoError(t, err)
	assert.Equal(t, 60.0, out.(RateOutput).Rate)

	_, err = r.Call(context.Background(), ToolLegalRate, map[string]interface{}{"year": 2023.5})
	assert.True(t, calculations.IsValidationError(err))
	_, err = r.Call(context.Background(), ToolLegalRate, map[string]interface{}{"year": 1200.0})
	assert.True(t, calculations.IsValidationError(err))
}

func TestActCatalog(t *testing.T) {
	r := testRegistry()

	out, err := r.Call(context.Background(), ToolActCatalog, nil)
	require.NoError(t, err)
	acts := out.([]tariffs.Act)
	assert.Len(t, acts, 11)
	assert.Equal(t, "cmd", acts[0].ID)
}

func TestRegistry(t *testing.T) {
	r := testRegistry()

	names := make([]string, 0)
	for _, tool := range r.List() {
		names = append(names, tool.Name)
		assert.NotEmpty(t, tool.Description)
	}
	assert.Equal(t, []string{ToolActCatalog, ToolCalculateComplete, ToolCalculateFees, ToolImputePayment, ToolLegalRate}, names)

	_, err := r.Call(context.Background(), "loan_schedule_annuity", nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown tool")
}

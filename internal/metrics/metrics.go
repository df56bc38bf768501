package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "recouvrement"

var (
	// ToolCalls counts tool invocations by outcome.
	ToolCalls = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "tool_calls_total",
			Help:      "Total number of tool calls",
		},
		[]string{"tool", "status"},
	)

	// CalculationErrors counts failed calculations.
	CalculationErrors = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "calculation_errors_total",
			Help:      "Number of failed calculations",
		},
		[]string{"tool", "error_type"},
	)

	// RateFallbacks counts accrual periods priced with the schedule default rate.
	RateFallbacks = promauto.NewCounter(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "rate_fallbacks_total",
			Help:      "Accrual periods whose legal rate fell back to the schedule default",
		},
	)

	// Majorations counts calculations where the rate majoration applied.
	Majorations = promauto.NewCounter(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "majorations_total",
			Help:      "Calculations with the post-decision rate majoration applied",
		},
	)
)

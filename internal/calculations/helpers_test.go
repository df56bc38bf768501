package calculations

import (
	"math"
	"testing"
	"time"

	"github.com/cloud-ru/mcp-recouvrement-go/internal/tariffs"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func newTestCalculator(t *testing.T) *Calculator {
	t.Helper()
	return NewCalculator(tariffs.Default())
}

func legalSimple(round bool) AccrualOptions {
	return AccrualOptions{RateMode: RateLegal, CalculationType: Simple, RoundAmounts: round}
}

func pow(x, y float64) float64 {
	return math.Pow(x, y)
}

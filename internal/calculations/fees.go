package calculations

import (
	"math"

	"github.com/cloud-ru/mcp-recouvrement-go/internal/tariffs"
	"github.com/cloud-ru/mcp-recouvrement-go/pkg/utils"
)

func (c *Calculator) feeScale(tt TitleType) ([]tariffs.Tier, error) {
	switch tt {
	case WithoutTitle:
		return c.tables.Fees.WithoutTitle, nil
	case WithTitle:
		return c.tables.Fees.WithTitle, nil
	}
	return nil, NewValidationError("title_type", "unsupported title type %q", tt)
}

// ComputeFees computes proportional émoluments on base, marginal-bracket
// style: each bracket only taxes the part of the base that falls inside it.
func (c *Calculator) ComputeFees(base float64, tt TitleType, round bool) (FeeResult, error) {
	scale, err := c.feeScale(tt)
	if err != nil {
		return FeeResult{}, err
	}

	res := FeeResult{TitleType: tt, Tiers: []FeeTierLine{}}
	remaining, allocated := base, 0.0
	for _, tier := range scale {
		if remaining <= 0 {
			break
		}
		slice := math.Min(remaining, tier.Upper()-allocated)
		if slice <= 0 {
			continue
		}
		fee := slice * tier.RatePercent / 100
		res.Tiers = append(res.Tiers, FeeTierLine{
			Min:         tier.Min,
			Max:         tier.Max,
			RatePercent: tier.RatePercent,
			Slice:       slice,
			Fee:         fee,
		})
		res.Total += fee
		remaining -= slice
		allocated += slice
	}

	res.Total = utils.RoundIf(res.Total, round)
	return res, nil
}

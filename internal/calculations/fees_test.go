package calculations

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestComputeFees(t *testing.T) {
	t.Parallel()
	calc := newTestCalculator(t)

	tests := []struct {
		name      string
		base      float64
		title     TitleType
		want      float64
		wantTiers int
	}{
		{name: "first bracket only", base: 1_000_000, title: WithoutTitle, want: 100_000, wantTiers: 1},
		{name: "bracket edge", base: 5_000_000, title: WithoutTitle, want: 500_000, wantTiers: 1},
		{name: "two brackets without title", base: 10_000_000, title: WithoutTitle, want: 900_000, wantTiers: 2},
		{name: "two brackets with title", base: 10_000_000, title: WithTitle, want: 675_000, wantTiers: 2},
		{name: "open bracket", base: 60_000_000, title: WithoutTitle, want: 3_900_000, wantTiers: 4},
		{name: "open bracket with title", base: 60_000_000, title: WithTitle, want: 1_725_000, wantTiers: 4},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := calc.ComputeFees(tt.base, tt.title, true)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got.Total)
			assert.Len(t, got.Tiers, tt.wantTiers)
			assert.Equal(t, tt.title, got.TitleType)

			var slices float64
			for _, line := range got.Tiers {
				slices += line.Slice
			}
			assert.InDelta(t, tt.base, slices, 1e-6, "slices cover the whole base")
		})
	}
}

func TestComputeFeesUnrounded(t *testing.T) {
	t.Parallel()
	calc := newTestCalculator(t)

	got, err := calc.ComputeFees(4_999_999.2, WithoutTitle, false)
	require.NoError(t, err)
	assert.InDelta(t, 499_999.92, got.Total, 1e-6)

	rounded, err := calc.ComputeFees(4_999_999.2, WithoutTitle, true)
	require.NoError(t, err)
	assert.Equal(t, 500_000.0, rounded.Total)
}

func TestComputeFeesTierDetail(t *testing.T) {
	t.Parallel()
	calc := newTestCalculator(t)

	got, err := calc.ComputeFees(10_000_000, WithoutTitle, true)
	require.NoError(t, err)
	require.Len(t, got.Tiers, 2)

	assert.Equal(t, FeeTierLine{Min: 1, Max: 5_000_000, RatePercent: 10, Slice: 5_000_000, Fee: 500_000}, got.Tiers[0])
	assert.Equal(t, FeeTierLine{Min: 5_000_001, Max: 20_000_000, RatePercent: 8, Slice: 5_000_000, Fee: 400_000}, got.Tiers[1])
}

func TestComputeFeesNonPositiveBase(t *testing.T) {
	t.Parallel()
	calc := newTestCalculator(t)

	got, err := calc.ComputeFees(0, WithTitle, true)
	require.NoError(t, err)
	assert.Zero(t, got.Total)
	assert.Empty(t, got.Tiers)
}

func TestComputeFeesUnknownTitle(t *testing.T) {
	t.Parallel()
	calc := newTestCalculator(t)

	_, err := calc.ComputeFees(1_000, TitleType("maybe"), true)
	require.Error(t, err)
	assert.True(t, IsValidationError(err))
}

func TestComputeFeesOnly(t *testing.T) {
	t.Parallel()
	calc := newTestCalculator(t)

	res, err := calc.ComputeFeesOnly(FeesOnlyRequest{Base: 10_000_000, TitleType: WithoutTitle, RoundAmounts: true})
	require.NoError(t, err)
	assert.Equal(t, ModeFeesOnly, res.Mode())
	assert.Equal(t, 900_000.0, res.Fees.Total)
	assert.Equal(t, 10_900_000.0, res.GrandTotal())

	for _, base := range []float64{0, -5} {
		res, err := calc.ComputeFeesOnly(FeesOnlyRequest{Base: base, TitleType: WithoutTitle})
		require.Error(t, err)
		assert.Nil(t, res)
		assert.True(t, IsValidationError(err))
	}
}

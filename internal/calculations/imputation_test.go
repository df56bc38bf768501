package calculations

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestImputePaymentStandardOrder(t *testing.T) {
	t.Parallel()
	due := Outstanding{Costs: 30_000, Fees: 100_000, Interest: 25_000, Principal: 1_000_000}

	tests := []struct {
		name   string
		amount float64
		want   Imputation
	}{
		{
			name:   "covers costs only",
			amount: 20_000,
			want:   Imputation{Mode: ImputeStandard, Amount: 20_000, Costs: 20_000},
		},
		{
			name:   "reaches interest",
			amount: 140_000,
			want:   Imputation{Mode: ImputeStandard, Amount: 140_000, Costs: 30_000, Fees: 100_000, Interest: 10_000},
		},
		{
			name:   "partial principal",
			amount: 655_000,
			want: Imputation{Mode: ImputeStandard, Amount: 655_000,
				Costs: 30_000, Fees: 100_000, Interest: 25_000, Principal: 500_000},
		},
		{
			name:   "excess is remitted",
			amount: 1_200_000,
			want: Imputation{Mode: ImputeStandard, Amount: 1_200_000,
				Costs: 30_000, Fees: 100_000, Interest: 25_000, Principal: 1_000_000, ToRemit: 45_000},
		},
		{
			name:   "rounded to whole francs",
			amount: 19_999.6,
			want:   Imputation{Mode: ImputeStandard, Amount: 20_000, Costs: 20_000},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ImputePayment(tt.amount, due, ImputeStandard)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, got.Amount,
				got.Costs+got.Fees+got.Interest+got.Principal+got.Reserved+got.ToRemit)
		})
	}
}

func TestImputePaymentOtherModes(t *testing.T) {
	t.Parallel()
	due := Outstanding{Costs: 30_000, Interest: 25_000, Principal: 1_000_000}

	got, err := ImputePayment(50_000, due, ImputeReserved)
	require.NoError(t, err)
	assert.Equal(t, Imputation{Mode: ImputeReserved, Amount: 50_000, Reserved: 50_000}, got)

	for _, mode := range []ImputationMode{ImputeAmicable, ImputeBank} {
		got, err := ImputePayment(50_000, due, mode)
		require.NoError(t, err)
		assert.Equal(t, Imputation{Mode: mode, Amount: 50_000, ToRemit: 50_000}, got)
	}
}

func TestImputePaymentValidation(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		amount float64
		due    Outstanding
		mode   ImputationMode
		field  string
	}{
		{name: "zero amount", amount: 0, mode: ImputeStandard, field: "amount"},
		{name: "negative component", amount: 10, due: Outstanding{Interest: -1}, mode: ImputeStandard, field: "interest"},
		{name: "unknown mode", amount: 10, mode: "cash", field: "mode"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ImputePayment(tt.amount, tt.due, tt.mode)
			var ve *ValidationError
			require.ErrorAs(t, err, &ve)
			assert.Equal(t, tt.field, ve.Field)
		})
	}
}

func TestParseImputationMode(t *testing.T) {
	t.Parallel()
	for in, want := range map[string]ImputationMode{
		"":         ImputeStandard,
		"Réservé":  ImputeReserved,
		"bank":     ImputeBank,
		"amiable":  ImputeAmicable,
		"standard": ImputeStandard,
	} {
		got, err := ParseImputationMode(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got)
	}
	_, err := ParseImputationMode("cash")
	assert.True(t, IsValidationError(err))
}

func TestOutstandingFrom(t *testing.T) {
	t.Parallel()
	calc := newTestCalculator(t)

	res, err := calc.ComputeComplete(majorationRequest())
	require.NoError(t, err)

	due := OutstandingFrom(res)
	assert.Equal(t, Outstanding{Costs: 30_000, Fees: 103_510, Interest: 25_099, Principal: 1_000_000}, due)
}

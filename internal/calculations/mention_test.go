package calculations

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cloud-ru/mcp-recouvrement-go/pkg/utils"
)

// plain swaps the narrow no-break spaces used for French digit grouping for ASCII spaces.
func plain(s string) string {
	return strings.NewReplacer("\u00a0", " ", "\u202f", " ").Replace(s)
}

func TestRenderLegalMentionComplete(t *testing.T) {
	t.Parallel()
	calc := newTestCalculator(t)

	res, err := calc.ComputeComplete(majorationRequest())
	require.NoError(t, err)

	text := RenderLegalMention(res)
	assert.Equal(t, text, RenderLegalMention(res), "rendering is deterministic")

	lines := strings.Split(plain(text), "\n")
	want := []string{
		"MENTION JURIDIQUE OHADA (v2.0):",
		"",
		"PRINCIPAL: 1 000 000 FCFA",
		"INTÉRÊTS ÉCHUS (du 02/01/2024 au 01/06/2024): 25 099 FCFA",
		"  - 2024 (91j à 5.03%): 12 515 FCFA",
		"  - 2024 (61j à 7.55%): 12 584 FCFA",
		"",
		"⚠️ MAJORATION APPLIQUÉE (+50%) après le 01/04/2024",
		"",
		"INTÉRÊTS À ÉCHOIR (1 mois): 6 189 FCFA",
		"",
		"ÉMOLUMENTS PROPORTIONNELS (Base 1 035 099 FCFA): 103 510 FCFA",
		"  - Tranche de 1 à 5 000 000 (10.00%) sur 1 035 099 FCFA: 103 510 FCFA",
		"",
		"COÛT DES ACTES DE PROCÉDURE: 20 000 FCFA",
		" - Commandement de payer : 15 000 FCFA",
		" - Frais de greffe : 5 000 FCFA",
		"",
		"TOTAL GÉNÉRAL: 1 158 609 FCFA",
	}
	assert.Equal(t, want, lines)

	// Justice costs have no line of their own but are part of the total.
	assert.InDelta(t, 10_000, res.JusticeCosts, 0.001)
	assert.NotContains(t, text, "FRAIS DE JUSTICE")
}

func TestRenderLegalMentionOmitsEmptySections(t *testing.T) {
	t.Parallel()
	calc := newTestCalculator(t)

	res, err := calc.ComputeComplete(Request{
		Principal:       2_500_000,
		CreanceDate:     date(2022, 5, 10),
		SaisieDate:      date(2023, 2, 1),
		RateMode:        RateLegal,
		CalculationType: Simple,
		RoundAmounts:    true,
	})
	require.NoError(t, err)

	text := plain(RenderLegalMention(res))
	assert.Contains(t, text, "  - 2022 (")
	assert.Contains(t, text, "  - 2023 (32j à 4.22%)")
	assert.NotContains(t, text, "MAJORATION")
	assert.NotContains(t, text, "FRAIS DE JUSTICE")
	assert.NotContains(t, text, "ÉMOLUMENTS")
	assert.NotContains(t, text, "ACTES")
	assert.True(t, strings.HasSuffix(text, "TOTAL GÉNÉRAL: "+plain(utils.FormatAmount(res.Total, true))))
}

func TestRenderLegalMentionFeesOnly(t *testing.T) {
	t.Parallel()
	calc := newTestCalculator(t)

	res, err := calc.ComputeFeesOnly(FeesOnlyRequest{Base: 60_000_000, TitleType: WithoutTitle, RoundAmounts: true})
	require.NoError(t, err)

	want := strings.Join([]string{
		"Calcul d'émoluments:",
		"Base: 60 000 000 FCFA",
		"  - Tranche de 1 à 5 000 000 (10.00%) sur 5 000 000 FCFA: 500 000 FCFA",
		"  - Tranche de 5 000 001 à 20 000 000 (8.00%) sur 15 000 000 FCFA: 1 200 000 FCFA",
		"  - Tranche de 20 000 001 à 50 000 000 (6.00%) sur 30 000 000 FCFA: 1 800 000 FCFA",
		"  - Tranche au-delà de 50 000 000 (4.00%) sur 10 000 000 FCFA: 400 000 FCFA",
		"Émoluments: 3 900 000 FCFA",
		"Total: 63 900 000 FCFA",
	}, "\n")
	assert.Equal(t, want, plain(RenderLegalMention(res)))
}

func TestRenderLegalMentionUnknownResult(t *testing.T) {
	t.Parallel()
	assert.Empty(t, RenderLegalMention(nil))
}

func TestFormatDate(t *testing.T) {
	t.Parallel()
	assert.Equal(t, "05/03/2024", FormatDate(date(2024, 3, 5)))
}

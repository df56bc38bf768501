package calculations

import (
	"fmt"
	"strings"
	"time"

	"github.com/cloud-ru/mcp-recouvrement-go/pkg/utils"
)

const mentionDate = "02/01/2006"

// RenderLegalMention renders the text pasted into legal documents. It only
// reads the result, so the same result always yields the same bytes.
func RenderLegalMention(r Result) string {
	switch res := r.(type) {
	case *CompleteResult:
		return renderComplete(res)
	case *FeesOnlyResult:
		return renderFeesOnly(res)
	}
	return ""
}

func renderFeesOnly(r *FeesOnlyResult) string {
	amount := func(v float64) string { return utils.FormatAmount(v, r.RoundAmounts) }

	var b strings.Builder
	b.WriteString("Calcul d'émoluments:\n")
	fmt.Fprintf(&b, "Base: %s\n", amount(r.Base))
	writeTiers(&b, r.Fees.Tiers, r.RoundAmounts)
	fmt.Fprintf(&b, "Émoluments: %s\n", amount(r.Fees.Total))
	fmt.Fprintf(&b, "Total: %s", amount(r.Total))
	return b.String()
}

func renderComplete(r *CompleteResult) string {
	amount := func(v float64) string { return utils.FormatAmount(v, r.RoundAmounts) }

	var b strings.Builder
	b.WriteString("MENTION JURIDIQUE OHADA (v2.0):\n\n")
	fmt.Fprintf(&b, "PRINCIPAL: %s\n", amount(r.Principal))
	fmt.Fprintf(&b, "INTÉRÊTS ÉCHUS (du %s au %s): %s\n",
		FormatDate(r.StartDate), FormatDate(r.EndDate), amount(r.AccruedInterest.Total))
	for _, p := range r.AccruedInterest.Periods {
		fmt.Fprintf(&b, "  - %d (%dj à %.2f%%): %s\n", p.Year, p.Days, p.Rate, amount(p.Interest))
	}

	if r.MajorationApplied && r.MajorationCutoff != nil {
		fmt.Fprintf(&b, "\n⚠️ MAJORATION APPLIQUÉE (+%g%%) après le %s\n",
			(r.MajorationMultiplier-1)*100, FormatDate(*r.MajorationCutoff))
	}

	fmt.Fprintf(&b, "\nINTÉRÊTS À ÉCHOIR (1 mois): %s\n", amount(r.FutureInterest.Total))


	if r.Fees != nil {
		fmt.Fprintf(&b, "\nÉMOLUMENTS PROPORTIONNELS (Base %s): %s\n", amount(r.FeeBase), amount(r.Fees.Total))
		writeTiers(&b, r.Fees.Tiers, r.RoundAmounts)
	}

	if r.ActsCost > 0 {
		fmt.Fprintf(&b, "\nCOÛT DES ACTES DE PROCÉDURE: %s\n", amount(r.ActsCost))
		for _, a := range r.Acts {
			fmt.Fprintf(&b, " - %s : %s\n", a.Label, amount(a.Amount))
		}
	}

	fmt.Fprintf(&b, "\nTOTAL GÉNÉRAL: %s", amount(r.Total))
	return b.String()
}

func writeTiers(b *strings.Builder, tiers []FeeTierLine, round bool) {
	for _, t := range tiers {
		var bracket string
		if t.Max == 0 {
			bracket = "au-delà de " + utils.FormatNumber(t.Min-1, true)
		} else {
			bracket = fmt.Sprintf("de %s à %s", utils.FormatNumber(t.Min, true), utils.FormatNumber(t.Max, true))
		}
		fmt.Fprintf(b, "  - Tranche %s (%.2f%%) sur %s: %s\n",
			bracket, t.RatePercent, utils.FormatAmount(t.Slice, round), utils.FormatAmount(t.Fee, round))
	}
}

// FormatDate renders a date the way the legal mention does.
func FormatDate(t time.Time) string {
	return t.Format(mentionDate)
}

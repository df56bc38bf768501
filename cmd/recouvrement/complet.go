package main

import (
	"strings"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/cloud-ru/mcp-recouvrement-go/internal/tools"
)

var completCmd = &cobra.Command{
	Use:   "complet",
	Short: "Calcul complet: intérêts, majoration, émoluments, frais et total",
	Long: `Runs a complete recovery calculation and prints the legal mention.

Examples:
  recouvrement complet --principal 1000000 --creance 2024-01-01 --saisie 2024-06-01

  recouvrement complet --principal "1 000 000" --creance 2024-01-01 --saisie 2024-06-01 \
    --majoration --decision 2024-02-01 --fees --title sans --justice 10000 \
    --act cmd --frais "Frais de greffe=5000"`,
	RunE: runComplet,
}

func init() {
	f := completCmd.Flags()
	f.String("principal", "", "principal amount (FCFA)")
	f.String("creance", "", "debt date (YYYY-MM-DD)")
	f.String("saisie", "", "seizure date (YYYY-MM-DD)")
	f.String("rate-mode", "legal", "rate mode: legal, conventional or cima")
	f.String("conventional-rate", "", "conventional annual rate in percent")
	f.String("type", "simple", "interest formula: simple or compound")
	f.Bool("majoration", false, "apply the post-decision rate majoration")
	f.String("decision", "", "judicial decision date (YYYY-MM-DD)")
	f.Bool("fees", false, "compute proportional émoluments")
	f.String("title", "sans", "enforceable title: sans or avec")
	f.String("justice", "", "justice costs (FCFA)")
	f.StringSlice("act", nil, "catalogue act id, repeatable (see 'actes')")
	f.StringArray("frais", nil, `free cost line "label=amount", repeatable`)
	f.Bool("round", true, "round amounts to whole FCFA")

	rootCmd.AddCommand(completCmd)
}

func runComplet(cmd *cobra.Command, _ []string) error {
	f := cmd.Flags()
	params := map[string]interface{}{}
	for flag, param := range map[string]string{
		"principal":         "principal",
		"creance":           "creance_date",
		"saisie":            "saisie_date",
		"rate-mode":         "rate_mode",
		"conventional-rate": "conventional_rate",
		"type":              "calculation_type",
		"decision":          "decision_date",
		"title":             "title_type",
		"justice":           "justice_costs",
	} {
		v, _ := f.GetString(flag)
		params[param] = v
	}
	params["majoration"], _ = f.GetBool("majoration")
	params["fees"], _ = f.GetBool("fees")
	setRound(f, params)

	acts, err := actParams(f)
	if err != nil {
		return err
	}
	params["acts"] = acts

	out, err := registry.Call(cmd.Context(), tools.ToolCalculateComplete, params)
	if err != nil {
		return err
	}
	return printOutput(cmd.OutOrStdout(), out)
}

// setRound forwards --round only when given, so the configured default applies otherwise.
func setRound(f *pflag.FlagSet, params map[string]interface{}) {
	if f.Changed("round") {
		params["round_amounts"], _ = f.GetBool("round")
	}
}

func actParams(f *pflag.FlagSet) ([]interface{}, error) {
	ids, _ := f.GetStringSlice("act")
	lines, _ := f.GetStringArray("frais")

	acts := make([]interface{}, 0, len(ids)+len(lines))
	for _, id := range ids {
		acts = append(acts, map[string]interface{}{"id": id})
	}
	for _, line := range lines {
		label, amount, ok := strings.Cut(line, "=")
		if !ok {
			return nil, eris.Errorf("frais %q: expected label=amount", line)
		}
		acts = append(acts, map[string]interface{}{
			"label":  strings.TrimSpace(label),
			"amount": strings.TrimSpace(amount),
		})
	}
	return acts, nil
}

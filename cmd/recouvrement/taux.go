package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/cloud-ru/mcp-recouvrement-go/internal/tools"
)

var tauxCmd = &cobra.Command{
	Use:   "taux",
	Short: "Barème des taux d'intérêt légal",
	Long: `Lists the legal rate schedule, or resolves the rate of one year with --year.

Examples:
  recouvrement taux
  recouvrement taux --year 2030 --rate-mode legal`,
	RunE: func(cmd *cobra.Command, _ []string) error {
		f := cmd.Flags()
		w := cmd.OutOrStdout()

		if f.Changed("year") {
			year, _ := f.GetInt("year")
			mode, _ := f.GetString("rate-mode")
			out, err := registry.Call(cmd.Context(), tools.ToolLegalRate, map[string]interface{}{
				"year":      year,
				"rate_mode": mode,
			})
			if err != nil {
				return err
			}
			if jsonOutput {
				return writeJSON(w, out)
			}
			r := out.(tools.RateOutput)
			note := ""
			if r.Fallback {
				note = " (taux par défaut)"
			}
			_, err = fmt.Fprintf(w, "%d: %.4f%%%s\n", r.Year, r.Rate, note)
			return err
		}

		schedule := calc.Tables().Rates
		if jsonOutput {
			return writeJSON(w, schedule)
		}
		for _, year := range schedule.Years() {
			rate, _ := schedule.Rate(year)
			if _, err := fmt.Fprintf(w, "%d: %.4f%%\n", year, rate); err != nil {
				return err
			}
		}
		_, err := fmt.Fprintf(w, "défaut: %.4f%%\n", schedule.DefaultRate)
		return err
	},
}

func init() {
	f := tauxCmd.Flags()
	f.Int("year", 0, "resolve the rate applying in this year")
	f.String("rate-mode", "legal", "rate mode: legal, conventional or cima")

	rootCmd.AddCommand(tauxCmd)
}

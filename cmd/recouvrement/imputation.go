package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/cloud-ru/mcp-recouvrement-go/internal/calculations"
	"github.com/cloud-ru/mcp-recouvrement-go/internal/tools"
	"github.com/cloud-ru/mcp-recouvrement-go/pkg/utils"
)

var imputationCmd = &cobra.Command{
	Use:   "imputation",
	Short: "Imputation d'un paiement du débiteur",
	Long: `Splits a debtor payment across costs, émoluments, interest and principal.

Modes: standard (legal order), reserve (held), amiable and banque (remitted in full).

Example:
  recouvrement imputation --amount 150000 --costs 30000 --fees 100000 --interest 25000 --principal 1000000`,
	RunE: func(cmd *cobra.Command, _ []string) error {
		f := cmd.Flags()
		params := map[string]interface{}{}
		for _, name := range []string{"amount", "mode", "costs", "fees", "interest", "principal"} {
			v, _ := f.GetString(name)
			params[name] = v
		}

		out, err := registry.Call(cmd.Context(), tools.ToolImputePayment, params)
		if err != nil {
			return err
		}
		if jsonOutput {
			return writeJSON(cmd.OutOrStdout(), out)
		}
		imp := out.(calculations.Imputation)
		w := cmd.OutOrStdout()
		for _, line := range []struct {
			label string
			value float64
		}{
			{"Paiement", imp.Amount},
			{"Frais", imp.Costs},
			{"Émoluments", imp.Fees},
			{"Intérêts", imp.Interest},
			{"Principal", imp.Principal},
			{"En réserve", imp.Reserved},
			{"À reverser", imp.ToRemit},
		} {
			if _, err := fmt.Fprintf(w, "%-12s %s\n", line.label, utils.FormatAmount(line.value, true)); err != nil {
				return err
			}
		}
		return nil
	},
}

func init() {
	f := imputationCmd.Flags()
	f.String("amount", "", "payment amount (FCFA)")
	f.String("mode", "standard", "imputation mode: standard, reserve, amiable or banque")
	f.String("costs", "", "outstanding justice and act costs")
	f.String("fees", "", "outstanding émoluments")
	f.String("interest", "", "outstanding interest")
	f.String("principal", "", "outstanding principal")

	rootCmd.AddCommand(imputationCmd)
}

package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/cloud-ru/mcp-recouvrement-go/internal/tariffs"
	"github.com/cloud-ru/mcp-recouvrement-go/internal/tools"
	"github.com/cloud-ru/mcp-recouvrement-go/pkg/utils"
)

var actesCmd = &cobra.Command{
	Use:   "actes",
	Short: "Catalogue des actes de procédure",
	RunE: func(cmd *cobra.Command, _ []string) error {
		out, err := registry.Call(cmd.Context(), tools.ToolActCatalog, nil)
		if err != nil {
			return err
		}
		if jsonOutput {
			return writeJSON(cmd.OutOrStdout(), out)
		}
		for _, act := range out.([]tariffs.Act) {
			if _, err := fmt.Fprintf(cmd.OutOrStdout(), "%-12s %-36s %s\n",
				act.ID, act.Label, utils.FormatAmount(act.Tariff, true)); err != nil {
				return err
			}
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(actesCmd)
}

package main

import (
	"github.com/spf13/cobra"

	"github.com/cloud-ru/mcp-recouvrement-go/internal/tools"
)

var emolumentsCmd = &cobra.Command{
	Use:   "emoluments",
	Short: "Émoluments proportionnels sur une base",
	Long: `Computes bailiff émoluments on a base, bracket by bracket.

Example:
  recouvrement emoluments --base 10000000 --title avec`,
	RunE: func(cmd *cobra.Command, _ []string) error {
		f := cmd.Flags()
		base, _ := f.GetString("base")
		title, _ := f.GetString("title")
		params := map[string]interface{}{"base": base, "title_type": title}
		setRound(f, params)

		out, err := registry.Call(cmd.Context(), tools.ToolCalculateFees, params)
		if err != nil {
			return err
		}
		return printOutput(cmd.OutOrStdout(), out)
	},
}

func init() {
	f := emolumentsCmd.Flags()
	f.String("base", "", "fee base (FCFA)")
	f.String("title", "sans", "enforceable title: sans or avec")
	f.Bool("round", true, "round amounts to whole FCFA")

	rootCmd.AddCommand(emolumentsCmd)
}

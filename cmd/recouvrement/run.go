package main

import (
	"bytes"
	"fmt"
	"io"
	"os"

	json "github.com/goccy/go-json"
	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/cloud-ru/mcp-recouvrement-go/internal/history"
	"github.com/cloud-ru/mcp-recouvrement-go/internal/tools"
	"github.com/cloud-ru/mcp-recouvrement-go/pkg/utils"
)

// toolCall is one entry of a run input file.
type toolCall struct {
	Tool   string                 `json:"tool"`
	Name   string                 `json:"name"`
	Params map[string]interface{} `json:"params"`
}

// runReport is the --json output of run.
type runReport struct {
	Outputs []interface{}   `json:"outputs"`
	History []history.Entry `json:"history"`
}

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Exécute une série d'appels d'outils depuis un fichier JSON",
	Long: `Runs tool calls read from a JSON file (a single call or a list) and saves
every calculation to the session history.

Input:
  [{"tool": "calculate_complete", "name": "Dossier 42", "params": {"principal": 1000000, ...}}]

With --json a single object {"outputs": [...], "history": [...]} is printed: outputs
holds the results of non-calculation tools in call order. Otherwise each legal
mention is printed.`,
	RunE: runRun,
}

func init() {
	runCmd.Flags().String("input", "", "JSON file with tool calls (- for stdin)")
	_ = runCmd.MarkFlagRequired("input")

	rootCmd.AddCommand(runCmd)
}

func readCalls(r io.Reader) ([]toolCall, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, eris.Wrap(err, "run: read input")
	}
	data = bytes.TrimSpace(data)

	if len(data) > 0 && data[0] == '[' {
		var calls []toolCall
		if err := json.Unmarshal(data, &calls); err != nil {
			return nil, eris.Wrap(err, "run: decode input")
		}
		return calls, nil
	}

	var call toolCall
	if err := json.Unmarshal(data, &call); err != nil {
		return nil, eris.Wrap(err, "run: decode input")
	}
	return []toolCall{call}, nil
}

func runRun(cmd *cobra.Command, _ []string) error {
	path, _ := cmd.Flags().GetString("input")

	var in io.Reader = cmd.InOrStdin()
	if path != "-" {
		f, err := os.Open(path)
		if err != nil {
			return eris.Wrapf(err, "run: open %s", path)
		}
		defer f.Close()
		in = f
	}

	calls, err := readCalls(in)
	if err != nil {
		return err
	}

	log := zap.L().With(zap.String("command", "run"))
	w := cmd.OutOrStdout()
	hist := history.New()
	outputs := []interface{}{}

	for i, call := range calls {
		out, err := registry.Call(cmd.Context(), call.Tool, call.Params)
		if err != nil {
			return eris.Wrapf(err, "run: call %d (%s)", i+1, call.Tool)
		}

		co, ok := out.(tools.CalculationOutput)
		if !ok {
			if jsonOutput {
				outputs = append(outputs, out)
				continue
			}
			if err := writeJSON(w, out); err != nil {
				return err
			}
			continue
		}

		var entry history.Entry
		hist, entry, err = hist.Add(call.Name, co.Result)
		if err != nil {
			return err
		}
		log.Info("calculation saved",
			zap.String("id", entry.ID.String()), zap.String("name", entry.Name), zap.Float64("total", entry.Total))

		if !jsonOutput {
			if _, err := fmt.Fprintf(w, "=== %s ===\n%s\n\n", entry.Name, co.Mention); err != nil {
				return err
			}
		}
	}

	if jsonOutput {
		return writeJSON(w, runReport{Outputs: outputs, History: hist.Entries()})
	}

	if _, err := fmt.Fprintln(w, "Historique des calculs:"); err != nil {
		return err
	}
	for _, e := range hist.Entries() {
		if _, err := fmt.Fprintf(w, "  %s  %s  %s\n",
			e.CreatedAt.Format("02/01/2006 15:04"), e.Name, utils.FormatAmount(e.Total, true)); err != nil {
			return err
		}
	}
	return nil
}

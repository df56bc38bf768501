package main

import (
	"fmt"
	"io"

	json "github.com/goccy/go-json"

	"github.com/cloud-ru/mcp-recouvrement-go/internal/tools"
)

// printOutput writes a tool output as JSON or, for calculations, as the legal mention.
func printOutput(w io.Writer, out interface{}) error {
	if jsonOutput {
		return writeJSON(w, out)
	}
	if co, ok := out.(tools.CalculationOutput); ok {
		_, err := fmt.Fprintln(w, co.Mention)
		return err
	}
	return writeJSON(w, out)
}

func writeJSON(w io.Writer, v interface{}) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

package app

import (
	"encoding/json"
	"fmt"
	"io"
)

// PrintResults writes the results as an indented JSON array
func PrintResults(w io.Writer, results []Result) error {
	if results == nil {
		results = []Result{}
	}

	out, err := json.MarshalIndent(results, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal results: %w", err)
	}

	if _, err := fmt.Fprintln(w, string(out)); err != nil {
		return fmt.Errorf("failed to write results: %w", err)
	}
	return nil
}

package main

import (
	"encoding/json"

	"inbox/internal/app"

	"github.com/spf13/cobra"
)

var schemasCmd = &cobra.Command{
	Use:   "schemas",
	Short: "Print the JSON Schemas of the tools offered to the model",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		out := make(map[string]interface{})
		for _, def := range app.Tools(app.TaskCategorizerTool, app.NoteSynthesizerTool) {
			out[def.Name] = map[string]interface{}{
				"description": def.Description,
				"parameters":  def.JSONSchema(),
			}
		}

		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		return enc.Encode(out)
	},
}

package main

import (
	"fmt"
	"time"

	"inbox/internal/app"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

type scenario struct {
	title string
	input string
}

var scenarios = []scenario{
	{
		title: "Scenario 1: Simple Task",
		input: "Need to review the Q3 report by Friday. This is a very high priority for work.",
	},
	{
		title: "Scenario 2: Note with Embedded Task",
		input: `Meeting summary from yesterday: We discussed the new RAG system architecture, focusing on vector database efficiency.
Key takeaways included scaling issues and the need to follow up with Jane on the final budget, which is a high priority task for finance.
We also decided on three concepts for the new marketing campaign.`,
	},
}

var demoCmd = &cobra.Command{
	Use:   "demo",
	Short: "Run the built-in task and note scenarios",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		pl, err := newPipeline(cmd.Context())
		if err != nil {
			return err
		}
		defer pl.Close()

		out := cmd.OutOrStdout()
		for _, sc := range scenarios {
			inputID := app.NewInputID(time.Now())
			logger.Info("Processing scenario", zap.String("scenario", sc.title), zap.String("input_id", inputID))

			results, err := pl.process(cmd.Context(), inputID, sc.input)
			if err != nil {
				// Keep going so the remaining scenarios still run
				logger.Error("Scenario failed", zap.String("scenario", sc.title), zap.Error(err))
			}

			fmt.Fprintf(out, "\n--- JSON Output (%s) ---\n", sc.title)
			if err := app.PrintResults(out, results); err != nil {
				return err
			}
		}
		return nil
	},
}

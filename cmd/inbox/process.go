package main

import (
	"fmt"
	"time"

	"inbox/internal/app"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	fromFile  bool
	noArchive bool
)

var processCmd = &cobra.Command{
	Use:   "process [text]",
	Short: "Process one input and print the structured results",
	Long: `Sends the input to the model and prints the tool results as JSON.

With --file the operand is a path; "-" reads from stdin.`,
	Example: `  inbox process "Need to review the Q3 report by Friday"
  inbox process --file meeting-notes.txt
  cat notes.txt | inbox process --file -`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		input, err := app.ReadInput(args[0], fromFile, cmd.InOrStdin())
		if err != nil {
			return err
		}

		pl, err := newPipeline(cmd.Context())
		if err != nil {
			return err
		}
		defer pl.Close()

		inputID := app.NewInputID(time.Now())
		if !noArchive {
			path, err := app.ArchiveInput(pl.cfg.InboxDir(), inputID, input)
			if err != nil {
				return err
			}
			logger.Debug("Archived input", zap.String("input_id", inputID), zap.String("path", path))
		}

		results, err := pl.process(cmd.Context(), inputID, input)
		if len(results) > 0 {
			if printErr := app.PrintResults(cmd.OutOrStdout(), results); printErr != nil {
				return printErr
			}
		}
		if err != nil {
			return fmt.Errorf("failed to process input %s: %w", inputID, err)
		}
		return nil
	},
}

func init() {
	processCmd.Flags().BoolVar(&fromFile, "file", false, "treat operand as file path instead of raw text")
	processCmd.Flags().BoolVar(&noArchive, "no-archive", false, "do not keep a copy of the input in the data directory")
}

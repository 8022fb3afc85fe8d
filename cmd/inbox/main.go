package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var (
	// Global flags
	verbose bool
	envFile string
	model   string
	dataDir string
	timeout time.Duration

	// Logger
	logger *zap.Logger
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "inbox",
	Short: "Zero-Based Inbox Processor",
	Long: `Turns unstructured input into structured, actionable JSON.

Each input is sent to Gemini, which must answer with one of two tools:
TaskCategorizer for actionable tasks or NoteSynthesizer for long-form notes.
A task embedded in a note is handed off for categorization with one
follow-up call.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		config := zap.NewProductionConfig()
		if verbose {
			config.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
		}
		var err error
		logger, err = config.Build()
		if err != nil {
			return fmt.Errorf("failed to initialize logger: %w", err)
		}
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logger != nil {
			_ = logger.Sync()
		}
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")
	rootCmd.PersistentFlags().StringVar(&envFile, "env-file", ".env", "dotenv file to load before reading the environment")
	rootCmd.PersistentFlags().StringVar(&model, "model", "", "Gemini model (default $INBOX_MODEL or gemini-flash-latest)")
	rootCmd.PersistentFlags().StringVar(&dataDir, "data-dir", "", "directory for the event log and archived inputs (default $INBOX_DATA_DIR or ./data)")
	rootCmd.PersistentFlags().DurationVar(&timeout, "timeout", 0, "timeout per processed input (default $INBOX_TIMEOUT or 60s)")

	rootCmd.AddCommand(processCmd, demoCmd, historyCmd, schemasCmd)
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		os.Exit(1)
	}
}

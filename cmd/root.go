package cmd

import (
	"context"
	"errors"

	"rocket-launches/internal/config"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// Execute runs the CLI and returns the process exit code.
func Execute(ctx context.Context, logger *zap.Logger, level zap.AtomicLevel, cfg *config.Config) int {
	rootCmd := NewRootCmd(logger, level, cfg)
	if err := rootCmd.ExecuteContext(ctx); err != nil {
		if errors.Is(err, context.Canceled) {
			logger.Warn("execution canceled")
			return 1
		}
		logger.Error("execution failed", zap.Error(err))
		return 1
	}
	return 0
}

// NewRootCmd builds the command tree. cfg holds the environment defaults and
// is overwritten by flags at parse time.
func NewRootCmd(logger *zap.Logger, level zap.AtomicLevel, cfg *config.Config) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "rocketlaunches",
		Short: "Download pictures of upcoming rocket launches",
		Long: `Downloads the list of upcoming rocket launches, fetches the image of every
launch into a directory and reports how many images are stored.

The workflow is three ordered steps: download_launches, get_pictures, notify.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if err := cfg.Validate(); err != nil {
				return err
			}
			l, err := cfg.Level()
			if err != nil {
				return err
			}
			level.SetLevel(l)
			return nil
		},
	}
	cfg.BindFlags(rootCmd.PersistentFlags())

	rootCmd.AddCommand(
		newRunCmd(logger, cfg),
		newStepCmd(logger, cfg),
		newDAGCmd(logger, cfg),
		newScheduleCmd(logger, cfg),
	)
	return rootCmd
}

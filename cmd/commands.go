package cmd

import (
	"context"
	"errors"
	"time"

	"rocket-launches/internal/config"
	"rocket-launches/internal/modules/harvester"
	"rocket-launches/internal/modules/launches"
	"rocket-launches/internal/modules/pipeline"
	"rocket-launches/internal/modules/reporter"
	"rocket-launches/internal/workflow"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

func build(cmd *cobra.Command, logger *zap.Logger, cfg *config.Config) (*pipeline.Pipeline, error) {
	return workflow.Build(cfg, time.Now(), cmd.OutOrStdout(), logger)
}

func newRunCmd(logger *zap.Logger, cfg *config.Config) *cobra.Command {
	return &cobra.Command{
		Use:   "run",
		Short: "Run every step once, in order",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := build(cmd, logger, cfg)
			if err != nil {
				return err
			}
			logger.Info("starting workflow",
				zap.String("launches_url", cfg.LaunchesURL),
				zap.String("launches_path", cfg.LaunchesPath),
				zap.String("images_dir", cfg.ImagesDir))
			return p.Run(cmd.Context())
		},
	}
}

func newStepCmd(logger *zap.Logger, cfg *config.Config) *cobra.Command {
	return &cobra.Command{
		Use:       "step <name>",
		Short:     "Run a single step",
		Long:      "Run a single step of the workflow, for schedulers that sequence the steps themselves.",
		Args:      cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
		ValidArgs: []string{launches.TaskID, harvester.TaskID, reporter.TaskID},
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := build(cmd, logger, cfg)
			if err != nil {
				return err
			}
			return p.RunStep(cmd.Context(), args[0])
		},
	}
}

func newDAGCmd(logger *zap.Logger, cfg *config.Config) *cobra.Command {
	return &cobra.Command{
		Use:   "dag",
		Short: "Print the workflow definition as YAML",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := build(cmd, logger, cfg)
			if err != nil {
				return err
			}
			return p.Definition().WriteYAML(cmd.OutOrStdout())
		},
	}
}

func newScheduleCmd(logger *zap.Logger, cfg *config.Config) *cobra.Command {
	return &cobra.Command{
		Use:   "schedule",
		Short: "Run the workflow on its schedule until interrupted",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := build(cmd, logger, cfg)
			if err != nil {
				return err
			}
			err = pipeline.NewScheduler(p, logger).Run(cmd.Context())
			if errors.Is(err, context.Canceled) {
				return nil
			}
			return err
		},
	}
}

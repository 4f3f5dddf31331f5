package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"curator/internal/config"
	"curator/internal/logging"
	"curator/internal/organizer"
	"curator/internal/queue"
)

func newOrganizeCommand(configFlag, logLevelFlag *string) *cobra.Command {
	return &cobra.Command{
		Use:   "organize <file>",
		Short: "Run a single file through the pipeline immediately",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, _, _, err := config.Load(*configFlag)
			if err != nil {
				return err
			}
			if err := cfg.EnsureDirectories(); err != nil {
				return err
			}

			path, err := config.ExpandPath(args[0])
			if err != nil {
				return fmt.Errorf("resolve file path: %w", err)
			}

			level := *logLevelFlag
			if level == "" {
				level = cfg.Logging.Level
			}
			logger, err := logging.New(logging.Options{
				Level:  level,
				Format: cfg.Logging.Format,
			})
			if err != nil {
				return fmt.Errorf("init logger: %w", err)
			}

			store, err := queue.Open(cfg)
			if err != nil {
				return err
			}
			defer store.Close()

			manager, err := organizer.NewManager(cfg, store, logger)
			if err != nil {
				return err
			}

			item, err := manager.Run(cmd.Context(), path)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			switch item.Status {
			case queue.StatusCompleted:
				fmt.Fprintf(out, "Moved %s -> %s (%s, %s)\n", item.SourcePath, item.FinalPath, item.TypeLabel, item.Category)
			case queue.StatusSkipped:
				fmt.Fprintf(out, "Skipped %s: %s\n", item.SourcePath, item.ErrorMessage)
			default:
				return fmt.Errorf("organizing %s failed: %s", item.SourcePath, item.ErrorMessage)
			}
			return nil
		},
	}
}

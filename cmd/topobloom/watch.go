package main

import (
	"context"
	"errors"

	"topobloom/internal/watcher"

	"github.com/spf13/cobra"
)

func newWatchCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "watch",
		Short: "Re-run ingestion whenever the links file changes",
		Long: `watch runs once, then re-runs from scratch each time the links file is
written. Every run builds a fresh filter and graph; nothing carries over.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := resolveConfig(cmd, opts)
			if err != nil {
				return err
			}
			if cfg.Input.LinksFile == "" {
				return errors.New("watch requires a links file (--links or input.links_file)")
			}
			logger, err := newLogger(cfg)
			if err != nil {
				return err
			}

			ctx := cmd.Context()
			out := cmd.OutOrStdout()
			runAndLog := func() {
				if _, err := run(ctx, cfg, logger, out); err != nil {
					logger.Error().Err(err).Msg("run failed")
				}
			}

			runAndLog()

			w := watcher.New(cfg.Input.LinksFile, runAndLog).
				WithDebounce(cfg.Watch.Debounce.Duration()).
				WithLogger(logger)
			if err := w.Watch(ctx); err != nil && !errors.Is(err, context.Canceled) {
				return err
			}
			return nil
		},
	}
}

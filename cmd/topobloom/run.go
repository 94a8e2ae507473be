package main

import (
	"context"
	"fmt"
	"io"

	"topobloom/internal/bloom"
	"topobloom/internal/codec"
	"topobloom/internal/config"
	"topobloom/internal/loader"
	"topobloom/internal/pipeline"
	"topobloom/internal/topology"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

func newRunCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "run",
		Short: "Ingest links once and print the topology report",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := resolveConfig(cmd, opts)
			if err != nil {
				return err
			}
			logger, err := newLogger(cfg)
			if err != nil {
				return err
			}

			_, err = run(cmd.Context(), cfg, logger, cmd.OutOrStdout())
			return err
		},
	}
}

// openSource picks the link source the config selects
func openSource(cfg *config.Config) (loader.Source, func() error, error) {
	switch {
	case cfg.Input.SQLitePath != "":
		src, err := loader.OpenSQLite(cfg.Input.SQLitePath, cfg.Input.SQLiteTable)
		if err != nil {
			return nil, nil, err
		}
		return src, src.Close, nil
	case cfg.Input.LinksFile != "":
		return loader.NewFileSource(cfg.Input.LinksFile), func() error { return nil }, nil
	default:
		return loader.SampleSource(), func() error { return nil }, nil
	}
}

// summaryExporter resolves the stdout format, honoring the canvas width for DOT
func summaryExporter(cfg *config.Config) (codec.Exporter, error) {
	if cfg.Output.Format == "dot" {
		return codec.NewDOTCodec(cfg.Output.CanvasWidth), nil
	}
	return codec.ForFormat(cfg.Output.Format)
}

// run performs one full ingestion with fresh filter and graph state
func run(ctx context.Context, cfg *config.Config, logger zerolog.Logger, out io.Writer) (*pipeline.Report, error) {
	exporter, err := summaryExporter(cfg)
	if err != nil {
		return nil, err
	}

	logger.Debug().Str("config", cfg.Summary()).Msg("configuration resolved")

	m, k := cfg.FilterParams()
	filter, err := bloom.New(m, k)
	if err != nil {
		return nil, fmt.Errorf("create bloom filter: %w", err)
	}
	logger.Debug().
		Int("capacity", filter.Capacity()).
		Int("hash_count", filter.HashCount()).
		Msg("bloom filter created")

	src, closeSource, err := openSource(cfg)
	if err != nil {
		return nil, err
	}
	defer closeSource()

	links, err := src.Links(ctx)
	if err != nil {
		return nil, fmt.Errorf("load links from %s: %w", src.Name(), err)
	}
	logger.Debug().Str("source", src.Name()).Int("links", len(links)).Msg("links loaded")

	p := pipeline.New(filter, topology.New(),
		pipeline.WithLogger(logger),
		pipeline.WithExactFallback(cfg.Filter.ExactFallback),
	)
	report := p.Ingest(links)

	if err := exporter.Export(report, out); err != nil {
		return report, fmt.Errorf("write summary: %w", err)
	}

	if cfg.Output.DOTPath != "" {
		dot := codec.NewDOTCodec(cfg.Output.CanvasWidth)
		if err := codec.ExportFile(dot, report, cfg.Output.DOTPath); err != nil {
			logger.Error().Err(err).Msg("DOT export failed")
		} else {
			logger.Info().Str("path", cfg.Output.DOTPath).Msg("DOT file exported")
		}
	}

	return report, nil
}

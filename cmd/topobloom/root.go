package main

import (
	"fmt"
	"os"

	"topobloom/internal/bloom"
	"topobloom/internal/config"
	"topobloom/internal/logging"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

// options holds flag values shared by the subcommands
type options struct {
	configPath    string
	linksFile     string
	sqlitePath    string
	sqliteTable   string
	capacity      int
	hashes        int
	exactFallback bool
	dotPath       string
	canvasWidth   int
	format        string
	logLevel      string
	logFormat     string
}

func newRootCmd() *cobra.Command {
	opts := &options{}

	root := &cobra.Command{
		Use:   "topobloom",
		Short: "Build a deduplicated network topology from a stream of links",
		Long: `topobloom ingests physical links (device/interface pairs), drops repeats
with a bloom filter pre-check and an exact duplicate check, prints the
adjacency list with filter and topology statistics, and renders a Graphviz
DOT file.`,
		SilenceUsage: true,
	}

	pf := root.PersistentFlags()
	pf.StringVar(&opts.configPath, "config", "", "config file (default: search "+config.EnvConfigPath+", ./"+config.ConfigFileName+", XDG, /etc)")
	pf.StringVar(&opts.linksFile, "links", "", "YAML or JSON links file (default: built-in sample)")
	pf.StringVar(&opts.sqlitePath, "sqlite", "", "SQLite link inventory database")
	pf.StringVar(&opts.sqliteTable, "sqlite-table", "", "table to read from the SQLite inventory (default \"links\")")
	pf.IntVar(&opts.capacity, "capacity", config.DefaultCapacity, "bloom filter size in bits")
	pf.IntVar(&opts.hashes, "hashes", config.DefaultHashCount, "bloom filter hash functions")
	pf.BoolVar(&opts.exactFallback, "exact-fallback", false, "check filter-rejected links against the exact set")
	pf.StringVar(&opts.dotPath, "dot", config.DefaultDOTPath, "DOT output path, empty to disable")
	pf.IntVar(&opts.canvasWidth, "canvas-width", config.DefaultCanvasWidth, "DOT canvas width in pixels")
	pf.StringVar(&opts.format, "format", "text", "summary format: text, json, yaml or dot")
	pf.StringVar(&opts.logLevel, "log-level", "info", "log level")
	pf.StringVar(&opts.logFormat, "log-format", logging.FormatConsole, "log format: console or json")

	root.AddCommand(
		newRunCmd(opts),
		newWatchCmd(opts),
		newSampleCmd(),
		newInitCmd(opts),
	)

	return root
}

// resolveConfig loads the config file and applies any flags the user set
func resolveConfig(cmd *cobra.Command, opts *options) (*config.Config, error) {
	var (
		cfg  *config.Config
		path string
		err  error
	)
	if opts.configPath != "" {
		cfg, path, err = config.LoadFromPath(opts.configPath)
	} else {
		cfg, path, err = config.Load()
	}
	if err != nil {
		if path == "" {
			return nil, err
		}
		return nil, fmt.Errorf("load config %s: %w", path, err)
	}

	flags := cmd.Flags()
	if flags.Changed("capacity") && opts.capacity <= 0 {
		return nil, fmt.Errorf("--capacity: %w: got %d", bloom.ErrInvalidCapacity, opts.capacity)
	}
	if flags.Changed("hashes") && opts.hashes <= 0 {
		return nil, fmt.Errorf("--hashes: %w: got %d", bloom.ErrInvalidHashCount, opts.hashes)
	}

	// a source flag replaces whatever source the file selected
	if flags.Changed("links") || flags.Changed("sqlite") {
		cfg.Input.LinksFile = opts.linksFile
		cfg.Input.SQLitePath = opts.sqlitePath
	}
	if flags.Changed("sqlite-table") {
		cfg.Input.SQLiteTable = opts.sqliteTable
	}
	if flags.Changed("capacity") {
		capacity := opts.capacity
		cfg.Filter.Capacity = &capacity
	}
	if flags.Changed("hashes") {
		hashes := opts.hashes
		cfg.Filter.HashCount = &hashes
	}
	if flags.Changed("exact-fallback") {
		cfg.Filter.ExactFallback = opts.exactFallback
	}
	if flags.Changed("dot") {
		cfg.Output.DOTPath = opts.dotPath
	}
	if flags.Changed("canvas-width") {
		cfg.Output.CanvasWidth = opts.canvasWidth
	}
	if flags.Changed("format") {
		cfg.Output.Format = opts.format
	}
	if flags.Changed("log-level") {
		cfg.Log.Level = opts.logLevel
	}
	if flags.Changed("log-format") {
		cfg.Log.Format = opts.logFormat
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func newLogger(cfg *config.Config) (zerolog.Logger, error) {
	return logging.New(cfg.Log.Level, cfg.Log.Format, os.Stderr)
}

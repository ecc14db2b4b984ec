/*
 * root.go, part of refchem.
 *
 * Copyright 2024 The refchem authors.
 *
 * This program is free software; you can redistribute it and/or modify
 * it under the terms of the GNU Lesser General Public License as
 * published by the Free Software Foundation; either version 2.1 of the
 * License, or (at your option) any later version.
 *
 * This program is distributed in the hope that it will be useful,
 * but WITHOUT ANY WARRANTY; without even the implied warranty of
 * MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
 * GNU General Public License for more details.
 *
 * You should have received a copy of the GNU Lesser General
 * Public License along with this program.  If not, see
 * <http://www.gnu.org/licenses/>.
 *
 */

// Package cli implements the refdb command tree: listing, extracting and
// checking the species of a reference database.
package cli

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/rmera/refchem/internal/config"
	"github.com/rmera/refchem/internal/logging"
	"github.com/rmera/refchem/reference"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// Build-time variables injected via ldflags.
var (
	Version   = "dev"
	GitCommit = "unknown"
)

// cliContextKey is the context key for CLIContext.
type cliContextKey struct{}

// RootOptions holds the global flags.
type RootOptions struct {
	ConfigPath      string
	DBDir           string
	Sets            []string
	LogLevel        string
	Parallelism     int
	MetricsTextfile string
}

// CLIContext carries the initialized dependencies to the subcommands.
type CLIContext struct {
	Config   *config.Config
	Logger   *zap.Logger
	Registry *prometheus.Registry
}

// NewRootCommand returns the refdb command with its global flags and
// every subcommand.
func NewRootCommand() *cobra.Command {
	opts := &RootOptions{}
	cmd := &cobra.Command{
		Use:     "refdb",
		Short:   "Query the reference species database used for isodesmic reactions",
		Version: fmt.Sprintf("%s (commit: %s)", Version, GitCommit),
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return persistentPreRun(cmd, opts)
		},
		PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
			return persistentPostRun(cmd)
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	pf := cmd.PersistentFlags()
	pf.StringVarP(&opts.ConfigPath, "config", "c", "", "config file path")
	pf.StringVar(&opts.DBDir, "db-dir", config.DefaultDatabaseDirectory, "root directory of the database")
	pf.StringSliceVar(&opts.Sets, "set", nil, "reference set to load, by name or path (repeatable, default main)")
	pf.StringVar(&opts.LogLevel, "log-level", config.DefaultLogLevel, "log level (debug, info, warn, error)")
	pf.IntVar(&opts.Parallelism, "parallelism", config.DefaultParallelism, "number of files parsed at once")
	pf.StringVar(&opts.MetricsTextfile, "metrics-textfile", "", "write load metrics to this file, in the Prometheus text format")

	cmd.AddCommand(
		newChemistriesCmd(),
		newExtractCmd(),
		newShowCmd(),
		newXYZCmd(),
		newCheckCmd(),
		newExportCmd(),
		newIdentifyCmd(),
		newEstimateCmd(),
	)
	return cmd
}

// persistentPreRun loads the configuration, lets the flags set on the
// command line override it, and builds the logger.
func persistentPreRun(cmd *cobra.Command, opts *RootOptions) error {
	cfg, err := config.Load(opts.ConfigPath)
	if err != nil {
		return fmt.Errorf("config initialization failed: %w", err)
	}
	flags := cmd.Flags()
	if flags.Changed("db-dir") {
		cfg.Database.Directory = opts.DBDir
	}
	if flags.Changed("set") {
		cfg.Database.Sets = opts.Sets
	}
	if flags.Changed("log-level") {
		cfg.Log.Level = opts.LogLevel
	}
	if flags.Changed("parallelism") {
		cfg.Database.Parallelism = opts.Parallelism
	}
	if flags.Changed("metrics-textfile") {
		cfg.Metrics.Textfile = opts.MetricsTextfile
	}
	if err := cfg.Validate(); err != nil {
		return err
	}
	logger, err := logging.New(logging.Config{Level: cfg.Log.Level, Format: cfg.Log.Format})
	if err != nil {
		return fmt.Errorf("logger initialization failed: %w", err)
	}
	cliCtx := &CLIContext{Config: cfg, Logger: logger, Registry: prometheus.NewRegistry()}
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	cmd.SetContext(context.WithValue(ctx, cliContextKey{}, cliCtx))
	return nil
}

// persistentPostRun writes the metrics textfile, if one was requested.
func persistentPostRun(cmd *cobra.Command) error {
	cliCtx, err := GetCLIContext(cmd)
	if err != nil {
		return err
	}
	_ = cliCtx.Logger.Sync()
	if cliCtx.Config.Metrics.Textfile == "" {
		return nil
	}
	if err := prometheus.WriteToTextfile(cliCtx.Config.Metrics.Textfile, cliCtx.Registry); err != nil {
		return fmt.Errorf("writing metrics: %w", err)
	}
	return nil
}

// GetCLIContext returns the dependencies stored in the context of cmd.
func GetCLIContext(cmd *cobra.Command) (*CLIContext, error) {
	if ctx := cmd.Context(); ctx != nil {
		if c, ok := ctx.Value(cliContextKey{}).(*CLIContext); ok {
			return c, nil
		}
	}
	return nil, fmt.Errorf("cli: command %q was not initialized", cmd.Name())
}

// setPaths returns the directories of the configured sets. A name with
// no path separator is a set under the reference_sets directory.
func setPaths(cfg *config.Config) []string {
	if len(cfg.Database.Sets) == 0 {
		return nil
	}
	ret := make([]string, len(cfg.Database.Sets))
	for i, s := range cfg.Database.Sets {
		if strings.ContainsRune(s, filepath.Separator) {
			ret[i] = s
			continue
		}
		ret[i] = filepath.Join(cfg.Database.Directory, "reference_sets", s)
	}
	return ret
}

// openDatabase loads the configured reference sets.
func openDatabase(cmd *cobra.Command) (*reference.Database, error) {
	cliCtx, err := GetCLIContext(cmd)
	if err != nil {
		return nil, err
	}
	cfg := cliCtx.Config
	db := reference.NewDatabase(
		reference.WithDatabaseDirectory(cfg.Database.Directory),
		reference.WithLogger(cliCtx.Logger),
		reference.WithRegisterer(cliCtx.Registry),
		reference.WithParallelism(cfg.Database.Parallelism),
	)
	if err := db.Load(setPaths(cfg)...); err != nil {
		return nil, err
	}
	return db, nil
}

// Execute runs the refdb command with the process arguments.
func Execute() error {
	return NewRootCommand().Execute()
}

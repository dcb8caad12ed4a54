// SPDX-License-Identifier: MIT

package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/katalvlaran/excitontb/config"
	"github.com/katalvlaran/excitontb/crystal"
	"github.com/katalvlaran/excitontb/exciton"
	"github.com/katalvlaran/excitontb/internal/logging"
	"github.com/katalvlaran/excitontb/metrics"
)

// app carries what every subcommand shares once the root pre-run has loaded
// the configuration.
type app struct {
	configPath string
	logLevel   string
	logFormat  string
	metricsOut string

	cfg     *config.Config
	logger  *zap.Logger
	metrics *metrics.Metrics
}

func newRootCmd() *cobra.Command {
	a := &app{}
	root := &cobra.Command{
		Use:   "excitontb",
		Short: "Exciton interaction matrices and absorption spectra for tight-binding crystals",
		Long: `excitontb reads a tight-binding container (crystal geometry plus band
eigensystem), builds the screened electron-hole interaction between the
transitions inside an energy window and solves the Bethe-Salpeter problem.

Settings come from --config (YAML), then EXTB_* environment variables,
then command-line flags.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.setup(cmd)
		},
		PersistentPostRunE: func(*cobra.Command, []string) error {
			return a.teardown()
		},
	}

	pf := root.PersistentFlags()
	pf.StringVar(&a.configPath, "config", "", "YAML configuration file")
	pf.StringVar(&a.logLevel, "log-level", "", "log level: debug, info, warn, error")
	pf.StringVar(&a.logFormat, "log-format", "", "log format: json or console")
	pf.StringVar(&a.metricsOut, "metrics-out", "", "write Prometheus metrics to this textfile on exit")

	root.AddCommand(
		newInfoCmd(a),
		newShapesCmd(a),
		newSpectrumCmd(a),
		newDemoCmd(a),
	)

	return root
}

func (a *app) setup(cmd *cobra.Command) error {
	cfg, err := config.Load(a.configPath)
	if err != nil {
		return err
	}
	if cmd.Flags().Changed("log-level") {
		cfg.Logging.Level = a.logLevel
	}
	if cmd.Flags().Changed("log-format") {
		cfg.Logging.Format = a.logFormat
	}
	if cmd.Flags().Changed("metrics-out") {
		cfg.Metrics.Textfile = a.metricsOut
	}

	logger, err := logging.New(cfg.Logging.Level, cfg.Logging.Format)
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	a.cfg = cfg
	a.logger = logger
	a.metrics = metrics.New()

	return nil
}

func (a *app) teardown() error {
	if a.logger != nil {
		_ = a.logger.Sync()
	}
	if a.cfg == nil || a.cfg.Metrics.Textfile == "" {
		return nil
	}
	if err := a.metrics.WriteTextfile(a.cfg.Metrics.Textfile); err != nil {
		return fmt.Errorf("writing metrics: %w", err)
	}
	a.logger.Debug("metrics written", zap.String("path", a.cfg.Metrics.Textfile))

	return nil
}

// engine wraps ds with the configured logger, recorder, workers and cache.
func (a *app) engine(ds *crystal.Dataset) (*exciton.Engine, error) {
	opts := []exciton.Option{
		exciton.WithLogger(a.logger),
		exciton.WithRecorder(a.metrics),
		exciton.WithCacheSize(a.cfg.Engine.CacheSize),
	}
	if a.cfg.Engine.Workers > 0 {
		opts = append(opts, exciton.WithWorkers(a.cfg.Engine.Workers))
	}

	return exciton.New(ds, opts...)
}

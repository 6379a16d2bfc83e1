package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/rustyeddy/bwmfi/config"
	"github.com/rustyeddy/bwmfi/logging"
	"github.com/rustyeddy/bwmfi/params"
)

var rootCmd = &cobra.Command{
	Use:   "bwmfi",
	Short: "BWMFI indicator and strategy parameter registry",
	Long: `bwmfi inspects and manages the per-timeframe parameter sets of the
Bill Williams Market Facilitation Index strategy.

It provides tools for:
  - Showing the indicator and strategy parameters per timeframe
  - Generating and validating parameter files
  - Saving parameter snapshots to SQLite and reading them back

Without --config the built-in EURUSD table (H1, M15, M30) is used.`,
	SilenceUsage:      true,
	PersistentPreRunE: setup,
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		_ = logger.Sync()
	},
}

var (
	cfgFile  string
	envFile  string
	logLevel string

	env      config.Env
	logger   = zap.NewNop()
	registry *params.Registry
)

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "parameter file (YAML or JSON), default $BWMFI_CONFIG or the built-in table")
	rootCmd.PersistentFlags().StringVar(&envFile, "env", ".env", "environment file")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "log level (debug, info, warn, error), default $BWMFI_LOG_LEVEL")
}

func setup(cmd *cobra.Command, args []string) error {
	var err error
	if env, err = config.LoadEnv(envFile); err != nil {
		return err
	}

	level := logLevel
	if level == "" {
		level = env.LogLevel
	}
	if logger, err = logging.New(level); err != nil {
		return err
	}

	path := cfgFile
	if path == "" {
		path = env.ConfigPath
	}
	if path == "" {
		registry, err = params.NewRegistry(
			params.WithLogger(logger),
			params.WithTable("EUR_USD", params.EURUSD()),
		)
		return err
	}

	cfg, err := config.LoadFromFile(path)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	registry, err = cfg.Registry(params.WithLogger(logger))
	if err != nil {
		return err
	}
	logger.Info("loaded parameter file",
		zap.String("path", path),
		zap.String("symbol", cfg.Symbol),
		zap.Int("pairs", registry.Len()),
	)
	return nil
}

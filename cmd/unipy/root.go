package main

import (
	"github.com/cockroachdb/errors"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/lexfrei/go-unipy/internal/profile"
	"github.com/lexfrei/go-unipy/observability"
)

type options struct {
	configPath string
	logLevel   string
	logger     observability.Logger
}

func newRootCmd() *cobra.Command {
	opts := &options{}

	cmd := &cobra.Command{
		Use:          "unipy",
		Short:        "UniFi controller command line client",
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			settings, err := profile.LoadSettings()
			if err != nil {
				return err
			}

			if !cmd.Flags().Changed("config") {
				opts.configPath = settings.ConfigPath
			}
			if !cmd.Flags().Changed("log-level") {
				opts.logLevel = settings.LogLevel
			}

			logger, err := newLogger(opts.logLevel)
			if err != nil {
				return err
			}
			opts.logger = observability.NewZapLogger(logger)

			return nil
		},
	}

	cmd.PersistentFlags().StringVar(&opts.configPath, "config", "", "profiles file (env UNIPY_CONFIG)")
	cmd.PersistentFlags().StringVar(&opts.logLevel, "log-level", "", "log level: debug, info, warn, error (env UNIPY_LOG_LEVEL)")

	cmd.AddCommand(newAuthCmd(opts))

	return cmd
}

func newLogger(level string) (*zap.Logger, error) {
	lvl, err := zapcore.ParseLevel(level)
	if err != nil {
		return nil, errors.Wrapf(err, "invalid log level %q", level)
	}

	cfg := zap.NewProductionConfig()
	cfg.Level = zap.NewAtomicLevelAt(lvl)
	cfg.Encoding = "console"
	cfg.OutputPaths = []string{"stderr"}

	logger, err := cfg.Build()
	if err != nil {
		return nil, errors.Wrap(err, "building logger")
	}

	return logger, nil
}

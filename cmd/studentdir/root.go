package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/kailas-cloud/studentdir/internal/config"
	logpkg "github.com/kailas-cloud/studentdir/internal/logger"
)

// globalFlags are shared by every subcommand.
type globalFlags struct {
	env      string
	logLevel string
	source   string
}

func newRootCmd() *cobra.Command {
	flags := &globalFlags{}

	root := &cobra.Command{
		Use:   "studentdir",
		Short: "Student directory service",
		Long: `studentdir loads a student collection from a remote endpoint and serves
case-insensitive search with highlighted matches.

Run without a subcommand to start the HTTP server.`,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runServe(cmd, flags)
		},
	}

	root.PersistentFlags().StringVar(&flags.env, "env", config.GetEnv(), "Config environment (local, dev, prod)")
	root.PersistentFlags().StringVar(&flags.logLevel, "log-level", "", "Override logging.level (debug, info, warn, error)")
	root.PersistentFlags().StringVar(&flags.source, "source", "", "Override source.url")

	root.AddCommand(newServeCmd(flags))
	root.AddCommand(newSearchCmd(flags))
	root.AddCommand(newVersionCmd())
	return root
}

// loadConfig reads the environment config and applies flag overrides.
func loadConfig(flags *globalFlags) (config.Config, error) {
	cfg, err := config.Load(flags.env)
	if err != nil {
		return config.Config{}, fmt.Errorf("load config: %w", err)
	}
	if flags.source != "" {
		cfg.Source.URL = flags.source
		if err := cfg.Validate(); err != nil {
			return config.Config{}, fmt.Errorf("invalid config: %w", err)
		}
	}
	if flags.logLevel != "" {
		cfg.Logging.Level = flags.logLevel
	}
	return cfg, nil
}

func newLogger(flags *globalFlags, level string) (*zap.Logger, error) {
	l, err := logpkg.NewLogger(flags.env, level)
	if err != nil {
		return nil, fmt.Errorf("create logger: %w", err)
	}
	return l, nil
}

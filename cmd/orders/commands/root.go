// Package commands implements the orders service command line.
package commands

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/vibedit/vibedit-orders-service/internal/config"
	"github.com/vibedit/vibedit-orders-service/internal/logging"
)

// Version is stamped at build time with -ldflags "-X ...commands.Version=...".
var Version = "dev"

var (
	logLevel  string
	logFormat string
)

// Execute runs the CLI.
func Execute() error {
	return newRootCmd().Execute()
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "orders",
		Short: "Vibedit orders service",
		Long: `orders prices and tracks editing and proofreading orders.

Examples:
  orders serve
  orders quote --service Editing --delivery "2 day" --words 4500 --promo FALLDEAL
  orders migrate up
  orders export --out orders.xlsx --status Complete`,
		SilenceUsage: true,
	}

	root.PersistentFlags().StringVar(&logLevel, "log-level", "", "log level, overrides LOG_LEVEL (debug, info, warn, error)")
	root.PersistentFlags().StringVar(&logFormat, "log-format", "", "log format, overrides LOG_FORMAT (json, console)")

	root.AddCommand(serveCmd(), quoteCmd(), migrateCmd(), exportCmd(), versionCmd())
	return root
}

// loadConfig reads the environment and builds the logger, applying the
// persistent flag overrides.
func loadConfig() (*config.Config, *zap.Logger, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, err
	}

	if logLevel != "" {
		cfg.Logging.Level = logLevel
	}
	if logFormat != "" {
		cfg.Logging.Format = logFormat
	}

	logger, err := logging.New(cfg.Logging)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to initialize logging: %w", err)
	}

	return cfg, logger.With(zap.String("service", "orders-service"), zap.String("version", Version)), nil
}

func versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "orders version %s\n", Version)
		},
	}
}

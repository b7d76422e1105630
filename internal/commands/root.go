package commands

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/cleared-dev/payrecon/internal/buildinfo"
	"github.com/cleared-dev/payrecon/internal/config"
	"github.com/cleared-dev/payrecon/internal/logging"
	"github.com/cleared-dev/payrecon/internal/reconcile"
)

// globalFlags are shared by every subcommand.
type globalFlags struct {
	configPath string
	logLevel   string
}

// env is what a subcommand needs after flags are parsed.
type env struct {
	cfg    *config.Config
	logger *slog.Logger
}

// NewRootCommand creates the root CLI command with all subcommands registered.
func NewRootCommand() *cobra.Command {
	var g globalFlags

	rootCmd := &cobra.Command{
		Use:     "payrecon",
		Short:   "Reconcile incoming payments against invoices",
		Version: buildinfo.String(),
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: true,
		},
		SilenceUsage: true,
	}

	rootCmd.PersistentFlags().StringVar(&g.configPath, "config", config.FileName, "config file")
	rootCmd.PersistentFlags().StringVar(&g.logLevel, "log-level", "", "log level override (debug, info, warn, error)")

	rootCmd.AddCommand(newInitCommand())
	rootCmd.AddCommand(newReconcileCommand(&g))
	rootCmd.AddCommand(newSummaryCommand(&g))
	rootCmd.AddCommand(newSimulateCommand(&g))
	rootCmd.AddCommand(newServeCommand(&g))
	rootCmd.AddCommand(newImportCommand(&g))
	rootCmd.AddCommand(newHistoryCommand(&g))

	return rootCmd
}

// load reads the config and builds the logger. An explicit --config must
// exist; the default path may be absent.
func (g *globalFlags) load(cmd *cobra.Command) (*env, error) {
	var cfg *config.Config
	var err error
	if cmd.Flags().Changed("config") {
		cfg, err = config.Load(g.configPath)
	} else {
		cfg, err = config.LoadOrDefault(g.configPath)
	}
	if err != nil {
		return nil, err
	}

	if g.logLevel != "" {
		cfg.Logging.Level = g.logLevel
	}
	logger, err := logging.NewLogger(cfg.Logging, cmd.ErrOrStderr())
	if err != nil {
		return nil, err
	}
	return &env{cfg: cfg, logger: logger}, nil
}

func (e *env) engine() (*reconcile.Engine, error) {
	opts, err := e.cfg.Matching.Options()
	if err != nil {
		return nil, fmt.Errorf("matching options: %w", err)
	}
	return reconcile.NewEngine(opts), nil
}

// runLogPath returns override, or the configured run log.
func (e *env) runLogPath(override string) string {
	if override != "" {
		return override
	}
	return e.cfg.Data.RunLog
}

// Command ladder indexes difficulty-rated coding problems and suggests
// strictly easier bridge problems for a target.
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/okian/ladder/internal/adapters/explain"
	"github.com/okian/ladder/internal/adapters/repository"
	service "github.com/okian/ladder/internal/app"
	"github.com/okian/ladder/internal/config"
	"github.com/okian/ladder/internal/domain/bridge"
	"github.com/okian/ladder/pkg/logger"
	"github.com/okian/ladder/pkg/metrics"
)

// Process exit codes.
const (
	exitOK      = 0
	exitFailure = 1
	exitUnknown = 2
)

var rootCmd = &cobra.Command{
	Use:   "ladder",
	Short: "Difficulty-rated problem index and bridge suggester",
	Long: "ladder builds a rating index from a plain-text ratings table, answers lookups, " +
		"and suggests strictly easier practice problems that share vocabulary with a target.",
	SilenceUsage:      true,
	SilenceErrors:     true,
	PersistentPreRunE: setup,
}

var (
	cfg *config.Config

	rootLogLevel string
	rootSnapshot string
)

func init() {
	rootCmd.PersistentFlags().StringVar(&rootLogLevel, "log-level", "", "Override log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().StringVar(&rootSnapshot, "snapshot", "", "Snapshot path (overrides snapshot_path)")
}

func main() {
	// Load .env file if it exists
	_ = godotenv.Load()

	// Root context with cancel on SIGINT/SIGTERM.
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	code := run(ctx, os.Args[1:])
	stop()
	os.Exit(code)
}

// run executes the command line and maps the outcome to an exit code.
func run(ctx context.Context, args []string) int {
	rootCmd.SetArgs(args)
	err := rootCmd.ExecuteContext(ctx)
	if err == nil {
		return exitOK
	}
	fmt.Fprintf(rootCmd.ErrOrStderr(), "Error: %v\n", err)
	if errors.Is(err, bridge.ErrUnknownIdentifier) {
		return exitUnknown
	}
	return exitFailure
}

// setup initializes logging and configuration before any subcommand runs.
func setup(cmd *cobra.Command, _ []string) error {
	if err := logger.Init(logger.WithWriter(cmd.ErrOrStderr())); err != nil {
		return fmt.Errorf("failed to initialize logging: %w", err)
	}

	// Load configuration (defaults -> optional file -> env)
	c, err := config.Load(cmd.Context())
	if err != nil {
		return err
	}
	if rootSnapshot != "" {
		c.SnapshotPath = rootSnapshot
	}

	level := c.LogLevel
	if rootLogLevel != "" {
		level = rootLogLevel
	}
	if err := logger.SetLevelString(level); err != nil {
		logger.Get().Warn(cmd.Context(), "invalid log_level; falling back to info", logger.String("log_level", level), logger.Error(err))
		_ = logger.SetLevelString("info")
	}

	metrics.Init(metrics.WithNamespace(c.MetricsNamespace))

	cfg = c
	return nil
}

func newService() *service.Service {
	return service.New(
		service.WithLogger(logger.Named("service")),
		service.WithStore(repository.NewFileStore()),
		service.WithSnapshotPath(cfg.SnapshotPath),
		service.WithDefaults(cfg.Delta, cfg.Limit),
	)
}

func newExplainer(cmd *cobra.Command) *explain.Runner {
	return explain.New(
		explain.WithCommand(cfg.ExplainerCommand),
		explain.WithModel(cfg.ExplainerModel),
		explain.WithPromptsDir(cfg.PromptsDir),
		explain.WithIO(nil, cmd.OutOrStdout(), cmd.ErrOrStderr()),
		explain.WithLogger(logger.Named("explain")),
	)
}

// queryDefaults returns the delta and limit flags, falling back to config
// for flags the user did not set.
func queryDefaults(cmd *cobra.Command, delta float64, limit int) (float64, int) {
	if !cmd.Flags().Changed("delta") {
		delta = cfg.Delta
	}
	if !cmd.Flags().Changed("limit") {
		limit = cfg.Limit
	}
	return delta, limit
}

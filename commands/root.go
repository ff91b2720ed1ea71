package commands

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"github.com/tempora/tempora/internal/analytics"
	"github.com/tempora/tempora/internal/application/report"
	"github.com/tempora/tempora/internal/config"
	"github.com/tempora/tempora/internal/core/timer"
	"github.com/tempora/tempora/internal/data/cache"
	"github.com/tempora/tempora/internal/presentation/formatter"
	"github.com/tempora/tempora/internal/remote"
	"github.com/tempora/tempora/internal/util"
)

var (
	// Logging related
	debug bool

	// Connection
	configPath string
	serverURL  string
	token      string
	timezone   string

	// Report output
	windowDays   int
	outputFormat string

	rootCmd = &cobra.Command{
		Use:   "tempora",
		Short: "Time-tracking client with productivity analytics",
		Long: `tempora is a command-line client for the Tempora time-tracking service.

Start and stop timers against projects, then derive productivity analytics
(focus, consistency, efficiency and burnout scores) from the recorded history.

Examples:
  tempora start 42 -m "api review"     # Start a timer on project 42
  tempora stop -m "finished review"    # Stop it and file the description
  tempora status --watch               # Live elapsed display
  tempora                              # Analytics report, last 30 days
  tempora --window 7 --output summary  # Weekly report, human-readable
  tempora entries list                 # Recent time entries`,
		RunE: runReport,
	}
)

const (
	defaultLogFile  = "~/.tempora/logs/app.log"
	defaultCacheDir = "~/.tempora/cache"
)

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "",
		"Config file path (default ~/.tempora/config.yaml)")
	rootCmd.PersistentFlags().StringVar(&serverURL, "server", "",
		"Tempora server base URL")
	rootCmd.PersistentFlags().StringVar(&token, "token", "",
		"API token")
	rootCmd.PersistentFlags().StringVar(&timezone, "timezone", "",
		"Timezone setting (e.g., Asia/Shanghai, UTC)")
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false,
		"Enable debug mode")

	rootCmd.Flags().IntVarP(&windowDays, "window", "w", 0,
		"Analytics window in days (7, 30, 90 or custom)")
	rootCmd.Flags().StringVarP(&outputFormat, "output", "o", "",
		"Output format (table, json, csv, summary)")
}

func runReport(cmd *cobra.Command, args []string) error {
	cfg, err := setup(cmd)
	if err != nil {
		return err
	}

	days := cfg.WindowDays
	if cmd.Flags().Changed("window") {
		days = windowDays
	}
	if err := config.ValidateWindow(days); err != nil {
		return err
	}

	format := cfg.Output
	if cmd.Flags().Changed("output") {
		format = outputFormat
	}
	out, err := formatter.New(format)
	if err != nil {
		return err
	}

	snapshots, err := cache.NewSnapshotCache(expandPath(defaultCacheDir))
	if err != nil {
		return fmt.Errorf("failed to create cache directory: %w", err)
	}

	engine := analytics.NewEngine(util.GetTimeProvider().Location())
	builder := report.NewBuilder(newAPI(cfg), snapshots, engine)

	result, err := builder.Build(cmd.Context(), days)
	if err != nil {
		return err
	}
	return out.Format(result)
}

func Execute() error {
	return rootCmd.Execute()
}

// setup initializes logging, loads the config file and applies flag
// overrides. Every subcommand calls it first.
func setup(cmd *cobra.Command) (*config.Config, error) {
	logLevel := "info"
	if debug {
		logLevel = "debug"
	}

	logFile := expandPath(defaultLogFile)
	ensureDir(filepath.Dir(logFile))
	util.InitLogger(logLevel, logFile, debug)

	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, err
	}

	flags := cmd.Root().PersistentFlags()
	if flags.Changed("server") {
		cfg.ServerURL = serverURL
	}
	if flags.Changed("token") {
		cfg.Token = token
	}
	if flags.Changed("timezone") {
		cfg.Timezone = timezone
	}

	if err := util.InitializeTimeProvider(cfg.Timezone); err != nil {
		return nil, err
	}
	return cfg, nil
}

func newAPI(cfg *config.Config) remote.API {
	return remote.NewClient(cfg.ServerURL, cfg.Token)
}

// newStore builds a store hydrated from the remote service.
func newStore(ctx context.Context, cfg *config.Config) (*timer.Store, error) {
	store := timer.NewStore(newAPI(cfg))
	if err := store.Sync(ctx); err != nil {
		return nil, err
	}
	return store, nil
}

// Helper functions

func expandPath(path string) string {
	if strings.HasPrefix(path, "~/") {
		home, _ := os.UserHomeDir()
		path = filepath.Join(home, path[2:])
	}
	absPath, err := filepath.Abs(path)
	if err != nil {
		return path
	}
	return absPath
}

func ensureDir(dir string) error {
	return os.MkdirAll(dir, 0755)
}

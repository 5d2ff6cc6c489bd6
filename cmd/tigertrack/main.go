// Command tigertrack runs the TigerTrack lost-and-found service.
package main

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/App-Dev-Project1/TigerTrack-Lost-Found-System/internal/config"
	"github.com/App-Dev-Project1/TigerTrack-Lost-Found-System/internal/db"
	"github.com/App-Dev-Project1/TigerTrack-Lost-Found-System/internal/lifecycle"
	"github.com/App-Dev-Project1/TigerTrack-Lost-Found-System/internal/logging"
)

// version is set at build time with -ldflags "-X main.version=...".
var version = "dev"

// configFile is set by the --config flag.
var configFile string

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "tigertrack",
		Short: "TigerTrack lost-and-found service",
		Long: `TigerTrack records lost and found item reports, matches them, tracks
claims, and archives or donates items nobody came back for.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	pf := root.PersistentFlags()
	pf.StringVar(&configFile, "config", "", "config file (default: ./tigertrack.yaml if present)")
	pf.StringP("db", "d", "", "SQLite database path (default: tigertrack.sqlite3)")
	pf.StringP("log-file", "l", "", "log file path (default: stdout/stderr only)")
	pf.String("log-level", "", "debug, info, warn or error (default: info)")
	pf.String("log-format", "", "text or json (default: text)")
	pf.String("timezone", "", "time zone for item dates (default: Asia/Manila)")

	root.AddCommand(newServeCmd(), newInitCmd(), newSweepCmd(), newStatsCmd(), newVersionCmd())
	return root
}

// app holds what every command needs once config is loaded.
type app struct {
	cfg      *config.Config
	db       *sql.DB
	svc      *lifecycle.Service
	log      *slog.Logger
	closeLog func()
}

// setup loads configuration, configures logging and opens the migrated
// database.
func setup(cmd *cobra.Command) (*app, error) {
	cfg, err := config.Load(configFile, cmd.Flags())
	if err != nil {
		return nil, err
	}

	logger, closeLog, err := logging.New(logging.Options{
		Level:  cfg.Log.Level,
		Format: cfg.Log.Format,
		File:   cfg.Log.File,
	})
	if err != nil {
		return nil, err
	}

	database, err := db.Open(cfg.DB)
	if err != nil {
		closeLog()
		return nil, fmt.Errorf("opening database: %w", err)
	}
	if err := db.Migrate(database); err != nil {
		database.Close()
		closeLog()
		return nil, fmt.Errorf("migrating database: %w", err)
	}

	loc, err := cfg.Location()
	if err != nil {
		database.Close()
		closeLog()
		return nil, err
	}

	svc := lifecycle.New(database,
		lifecycle.WithLogger(logger),
		lifecycle.WithLocation(loc),
		lifecycle.WithLostAfter(cfg.Sweep.LostAfter),
	)

	logger.Info("database ready", "path", cfg.DB)
	return &app{cfg: cfg, db: database, svc: svc, log: logger, closeLog: closeLog}, nil
}

func (a *app) close() {
	if err := a.db.Close(); err != nil {
		a.log.Error("closing database", "error", err)
	}
	a.closeLog()
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintln(cmd.OutOrStdout(), "tigertrack", version)
		},
	}
}

// withApp wraps a command body with setup and teardown.
func withApp(run func(ctx context.Context, cmd *cobra.Command, a *app) error) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) error {
		a, err := setup(cmd)
		if err != nil {
			return err
		}
		defer a.close()
		return run(cmd.Context(), cmd, a)
	}
}

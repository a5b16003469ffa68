package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/abhisek/lexis/internal/config"
	"github.com/abhisek/lexis/internal/engine"
	"github.com/abhisek/lexis/internal/metrics"
	"github.com/abhisek/lexis/internal/store"
)

var rootCmd = &cobra.Command{
	Use:   "lexis",
	Short: "Adaptive review scheduling and mastery tracking",
	Long: "Lexis schedules vocabulary reviews, tracks question mastery, scores TOEIC\n" +
		"practice sessions and keeps learner streaks.",
	SilenceUsage: true,
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().String("db", "", "Database path or DSN (overrides LEXIS_DB env var)")
	rootCmd.PersistentFlags().String("db-driver", "", "Database driver: sqlite or postgres (overrides LEXIS_DB_DRIVER)")
	rootCmd.PersistentFlags().String("tunables", "", "JSON file with weakThreshold, strongThreshold and masteryDueDaysTable")

	rootCmd.AddCommand(gradeCmd)
	rootCmd.AddCommand(answerCmd)
	rootCmd.AddCommand(sessionCmd)
	rootCmd.AddCommand(dueCmd)
	rootCmd.AddCommand(statsCmd)
	rootCmd.AddCommand(historyCmd)
	rootCmd.AddCommand(exportCmd)
	rootCmd.AddCommand(consumeCmd)
	rootCmd.AddCommand(sweepCmd)
	rootCmd.AddCommand(versionCmd)
}

// loadConfig applies the persistent flags on top of the environment.
func loadConfig(cmd *cobra.Command) (config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return cfg, err
	}
	if d, _ := cmd.Flags().GetString("db-driver"); d != "" {
		cfg.DBDriver = d
	}
	if p, _ := cmd.Flags().GetString("tunables"); p != "" {
		t, err := config.LoadTunables(p)
		if err != nil {
			return cfg, err
		}
		cfg.Tunables = t
	}
	return cfg, cfg.Validate()
}

// resolveDBPath returns the database location using --db flag (highest
// priority), then LEXIS_DB env var, then the default XDG path. PostgreSQL
// has no default and must be given a DSN.
func resolveDBPath(cmd *cobra.Command, cfg config.Config) (string, error) {
	p, _ := cmd.Flags().GetString("db")
	if p == "" {
		p = cfg.DBPath
	}
	if cfg.DBDriver == store.DriverPostgres {
		if p == "" {
			return "", fmt.Errorf("postgres requires --db or %s", config.EnvDB)
		}
		return p, nil
	}
	if p != "" {
		return p, store.EnsureDir(p)
	}
	return store.DefaultDBPath()
}

// app bundles what a command needs and releases it on Close.
type app struct {
	cfg    config.Config
	store  *store.Store
	engine *engine.Engine
}

func openApp(cmd *cobra.Command) (*app, error) {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return nil, err
	}
	dsn, err := resolveDBPath(cmd, cfg)
	if err != nil {
		return nil, fmt.Errorf("resolve DB path: %w", err)
	}
	st, err := store.Open(cfg.DBDriver, dsn)
	if err != nil {
		return nil, fmt.Errorf("open store: %w", err)
	}

	table, err := cfg.Tunables.DueTable()
	if err != nil {
		st.Close()
		return nil, err
	}
	eng, err := engine.New(st, engine.Options{
		Thresholds: cfg.Tunables.Thresholds(),
		DueTable:   table,
		Metrics:    metrics.New(),
		Logger:     cfg.NewLogger(os.Stderr),
		Workers:    cfg.Workers,
	})
	if err != nil {
		st.Close()
		return nil, err
	}
	return &app{cfg: cfg, store: st, engine: eng}, nil
}

func (a *app) Close() error {
	return a.store.Close()
}

// Package main provides the entry point for the jobtracker CLI.
package main

import (
	"context"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/jonathan/job-tracker/internal/config"
	"github.com/jonathan/job-tracker/internal/store"
)

var rootCmd = &cobra.Command{
	Use:               "jobtracker",
	Short:             "Track job applications from the command line",
	Long:              "jobtracker records job applications, searches and filters them, and suggests follow-ups based on configurable status rules.",
	SilenceUsage:      true,
	SilenceErrors:     true,
	PersistentPreRunE: loadSettings,
}

var (
	configPath   string
	flagDataDir  string
	flagDatabase string
	flagStore    string
	flagVerbose  bool

	// settings is resolved once per invocation by loadSettings
	settings config.Config
)

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Path to a JSON or YAML config file")
	rootCmd.PersistentFlags().StringVar(&flagDataDir, "data-dir", "", "Directory for the file store (overrides "+config.EnvDataDir+")")
	rootCmd.PersistentFlags().StringVar(&flagDatabase, "database-url", "", "PostgreSQL URL for the postgres store (overrides "+config.EnvDatabaseURL+")")
	rootCmd.PersistentFlags().StringVar(&flagStore, "store", "", "Storage backend: file, sqlite or postgres (overrides "+config.EnvStore+")")
	rootCmd.PersistentFlags().BoolVarP(&flagVerbose, "verbose", "v", false, "Print diagnostic logs to stderr")
}

func main() {
	// Load .env file if it exists
	_ = godotenv.Load()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// loadSettings layers flags over the config file over the environment over
// the built-in defaults
func loadSettings(cmd *cobra.Command, _ []string) error {
	env := config.FromEnv()
	layered := env.MergeWithDefaults(config.Defaults())

	if configPath != "" {
		fileCfg, err := config.LoadConfig(configPath)
		if err != nil {
			return err
		}
		layered = fileCfg.MergeWithDefaults(layered)
	}

	flags := config.Config{
		Store:       flagStore,
		DataDir:     flagDataDir,
		DatabaseURL: flagDatabase,
		Verbose:     flagVerbose,
	}
	settings = flags.MergeWithDefaults(layered)

	if err := settings.Validate(); err != nil {
		return err
	}

	log.SetFlags(0)
	if settings.Verbose {
		log.SetOutput(cmd.ErrOrStderr())
	} else {
		log.SetOutput(io.Discard)
	}
	log.Printf("[config] store=%s data_dir=%s", settings.Store, settings.DataDir)
	return nil
}

// openStore opens the configured backend. The returned func releases it.
func openStore(ctx context.Context, cfg config.Config) (store.KV, func(), error) {
	switch cfg.Store {
	case config.StorePostgres:
		pg, err := store.ConnectPostgres(ctx, cfg.DatabaseURL)
		if err != nil {
			return nil, nil, err
		}
		if err := pg.Migrate(ctx); err != nil {
			pg.Close()
			return nil, nil, err
		}
		log.Printf("[store] connected to postgres")
		return pg, pg.Close, nil
	case config.StoreSQLite:
		if err := os.MkdirAll(cfg.DataDir, 0755); err != nil {
			return nil, nil, fmt.Errorf("failed to create data directory %s: %w", cfg.DataDir, err)
		}
		path := filepath.Join(cfg.DataDir, config.SQLiteFile)
		db, err := store.OpenSQLite(ctx, path)
		if err != nil {
			return nil, nil, err
		}
		log.Printf("[store] using sqlite %s", path)
		return db, db.Close, nil
	default:
		f, err := store.OpenFile(cfg.DataDir)
		if err != nil {
			return nil, nil, err
		}
		log.Printf("[store] using %s", f.Dir())
		return f, func() {}, nil
	}
}

// withStore opens the store for the duration of fn
func withStore(cmd *cobra.Command, fn func(ctx context.Context, kv store.KV) error) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	kv, closeFn, err := openStore(ctx, settings)
	if err != nil {
		return fmt.Errorf("failed to open store: %w", err)
	}
	defer closeFn()
	return fn(ctx, kv)
}

package main

import (
	"context"
	"database/sql"
	"fmt"
	"os"

	"github.com/de-tools/deal-atlas/pkg/server"
	"github.com/de-tools/deal-atlas/pkg/services/config"
	"github.com/de-tools/deal-atlas/pkg/services/deals"
	"github.com/de-tools/deal-atlas/pkg/services/seed"
	"github.com/de-tools/deal-atlas/pkg/services/syncer"
	"github.com/de-tools/deal-atlas/pkg/store/duckdb"
	dealstore "github.com/de-tools/deal-atlas/pkg/store/duckdb/deal"
	"github.com/de-tools/deal-atlas/pkg/store/duckdb/syncrun"
	"github.com/de-tools/deal-atlas/pkg/store/postgres"
	crmdeal "github.com/de-tools/deal-atlas/pkg/store/postgres/deal"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

var cfgPath string

func main() {
	var rootCmd = &cobra.Command{
		Use:   "web",
		Short: "Start the web server for Deal Atlas",
		RunE:  runServer,
	}

	rootCmd.Flags().StringVarP(&cfgPath, "config", "c", "",
		"Path to a config file (YAML, TOML or JSON); DEAL_ATLAS_* variables override it")

	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func runServer(cmd *cobra.Command, _ []string) error {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		fmt.Printf("Error loading .env file: %v\n", err)
	}

	logger := zerolog.New(os.Stdout).With().Timestamp().Logger()
	ctx := logger.WithContext(cmd.Context())

	cfg, err := config.Load(cfgPath)
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	db, err := duckdb.NewDB(duckdb.Settings{
		DbPath: cfg.Store.Path,
	})
	if err != nil {
		return fmt.Errorf("failed to create DuckDB instance: %w", err)
	}
	defer db.Close()

	dealStore, err := dealstore.NewStore(db)
	if err != nil {
		return fmt.Errorf("failed to create deal store: %w", err)
	}

	stats, err := dealStore.Stats(ctx)
	if err != nil {
		return fmt.Errorf("failed to read deal store: %w", err)
	}
	logger.Info().
		Str("path", cfg.Store.Path).
		Int64("deals", stats.RecordsCount).
		Msg("deal store opened")

	if cfg.Sync.Enabled {
		scheduler, stop, err := startSync(ctx, cfg, db, dealStore)
		if err != nil {
			return err
		}
		defer stop()
		scheduler.Start()
		defer scheduler.Stop()
	}

	analyzer := deals.NewService(dealStore, deals.WithDefaultMonths(cfg.Forecast.DefaultMonths))

	web := server.NewWebAPI(logger, server.Config{
		Addr:            cfg.Server.Addr(),
		ShutdownTimeout: cfg.Server.ShutdownTimeout,
		Dependencies: server.Dependencies{
			Analyzer: analyzer,
			Seeder:   seed.NewService(dealStore),
		},
	})

	return web.Start()
}

func startSync(
	ctx context.Context,
	cfg *config.Config,
	db *sql.DB,
	local dealstore.Store,
) (*syncer.Scheduler, func(), error) {
	sourcesPath := cfg.Sources.Path
	if sourcesPath == "" {
		sourcesPath = config.DefaultSourcesPath()
	}

	registry, err := config.NewRegistry(sourcesPath)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load source profiles from %s: %w", sourcesPath, err)
	}

	source, err := registry.GetSource(ctx, cfg.Sync.Profile)
	if err != nil {
		return nil, nil, err
	}

	crmDB, err := postgres.Open(ctx, postgres.Settings{Driver: source.Driver, DSN: source.DSN})
	if err != nil {
		return nil, nil, err
	}
	stop := func() { crmDB.Close() }

	crm, err := crmdeal.NewStore(crmDB)
	if err != nil {
		stop()
		return nil, nil, err
	}
	runs, err := syncrun.NewStore(db)
	if err != nil {
		stop()
		return nil, nil, err
	}

	runner := syncer.NewRunner(db, cfg.Sync.Profile, crm, local, runs)
	scheduler := syncer.NewScheduler(ctx, runner)
	if err := scheduler.Register(cfg.Sync.Schedule); err != nil {
		stop()
		return nil, nil, err
	}

	zerolog.Ctx(ctx).Info().
		Str("profile", cfg.Sync.Profile).
		Str("schedule", cfg.Sync.Schedule).
		Msg("CRM sync enabled")
	return scheduler, stop, nil
}

package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/MrJamesThe3rd/budget/internal/config"
	"github.com/MrJamesThe3rd/budget/internal/database"
	"github.com/MrJamesThe3rd/budget/internal/logging"
)

func main() {
	_ = godotenv.Load()

	rootCmd := &cobra.Command{
		Use:   "budget",
		Short: "Personal budget bookkeeping service",
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: true,
		},
		SilenceUsage: true,
	}

	rootCmd.AddCommand(
		newServeCommand(),
		newMigrateCommand(),
		newInitDBCommand(),
		newImportCommand(),
	)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// open loads the configuration, installs the logger and connects to the
// configured database.
func open(ctx context.Context) (*config.Config, *database.DB, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, err
	}

	logging.Setup(cfg.Log.Level, cfg.Log.Format)

	dialect, err := cfg.Dialect()
	if err != nil {
		return nil, nil, err
	}

	dsn, err := cfg.DSN()
	if err != nil {
		return nil, nil, err
	}

	db, err := database.New(dialect, dsn)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	slog.DebugContext(ctx, "connected to database", "driver", dialect.DriverName())

	return cfg, db, nil
}

package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/MrJamesThe3rd/budget/internal/app"
	"github.com/MrJamesThe3rd/budget/internal/normalize"
	"github.com/MrJamesThe3rd/budget/internal/seed"
)

func newInitDBCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "init-db",
		Short: "Drop all tables, recreate them and load demo data",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			out := cmd.OutOrStdout()

			cfg, db, err := open(ctx)
			if err != nil {
				return err
			}
			defer db.Close()

			fixture, err := seed.Demo()
			if err != nil {
				return err
			}

			fmt.Fprintf(out, "Initializing %s database %s\n", cfg.DB.Driver, target(cfg.DB.Driver, cfg.DB.Path, cfg.DB.Name))

			if err := db.Reset(ctx); err != nil {
				return err
			}

			sum, err := fixture.Apply(ctx, app.NewServices(db), normalize.DateOf(time.Now()))
			if err != nil {
				return fmt.Errorf("seeding demo data: %w", err)
			}

			fmt.Fprintf(out, "Database initialized with %d sources, %d incomes, %d expenses and %d debts.\n",
				sum.Sources, sum.Incomes, sum.Expenses, sum.Debts)

			return nil
		},
	}
}

func target(driver, path, name string) string {
	if driver == "sqlite" {
		return path
	}

	return name
}

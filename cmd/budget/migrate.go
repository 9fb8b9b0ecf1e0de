package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newMigrateCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Create missing tables and indexes",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()

			_, db, err := open(ctx)
			if err != nil {
				return err
			}
			defer db.Close()

			if err := db.Migrate(ctx); err != nil {
				return err
			}

			fmt.Fprintln(cmd.OutOrStdout(), "Schema is up to date.")

			return nil
		},
	}
}

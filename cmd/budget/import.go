package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/MrJamesThe3rd/budget/internal/app"
	"github.com/MrJamesThe3rd/budget/internal/encoding"
	"github.com/MrJamesThe3rd/budget/internal/importer"
)

func newImportCommand() *cobra.Command {
	importCmd := &cobra.Command{
		Use:   "import",
		Short: "Bulk-load records from files",
	}
	importCmd.AddCommand(newImportExpensesCommand())

	return importCmd
}

func newImportExpensesCommand() *cobra.Command {
	var (
		file string
		opts importer.Options
	)

	cmd := &cobra.Command{
		Use:   "expenses",
		Short: "Import expenses from a CSV export",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()

			f, err := os.Open(file)
			if err != nil {
				return fmt.Errorf("opening %s: %w", file, err)
			}
			defer f.Close()

			_, db, err := open(ctx)
			if err != nil {
				return err
			}
			defer db.Close()

			svc := app.NewServices(db)

			created, err := importer.NewService(svc.Sources, svc.Expenses).Import(ctx, f, opts)
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Imported %d expenses into %q.\n", len(created), opts.Source)

			return nil
		},
	}

	cmd.Flags().StringVar(&file, "file", "", "CSV file to read (required)")
	_ = cmd.MarkFlagRequired("file")
	cmd.Flags().StringVar(&opts.Source, "source", "", "name of the source every row is charged to (required)")
	_ = cmd.MarkFlagRequired("source")
	cmd.Flags().StringVar(&opts.Charset, "charset", encoding.Auto, "input charset, detected when empty")

	return cmd
}

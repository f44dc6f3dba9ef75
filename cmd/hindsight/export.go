package main

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/hindsight-cli/hindsight/internal/sheets"
)

func exportCmd() *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export evaluation history to Google Sheets",
		Long: `Export saved evaluations to a Google Sheets spreadsheet. Authentication
comes from GOOGLE_SHEETS_* environment variables (OAuth2 client credentials
or a service account key).`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()

			cfg := sheets.DefaultConfig()
			if err := cfg.LoadFromEnv(); err != nil {
				return err
			}

			store, err := initStorage(ctx)
			if err != nil {
				return err
			}
			defer func() { _ = store.Close() }()

			results, err := store.ListEvaluations(ctx, currentUserID(), limit)
			if err != nil {
				return err
			}
			if len(results) == 0 {
				return fmt.Errorf("no evaluations to export")
			}

			writer, err := sheets.NewWriter(ctx, cfg, slog.Default())
			if err != nil {
				return err
			}

			if err := writer.Write(ctx, results); err != nil {
				return err
			}

			fmt.Printf("Exported %d evaluations\n", len(results))
			return nil
		},
	}

	cmd.Flags().IntVarP(&limit, "limit", "n", 1000, "maximum number of evaluations to export")

	return cmd
}

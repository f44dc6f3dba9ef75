package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/hindsight-cli/hindsight/internal/cli"
)

func historyCmd() *cobra.Command {
	var (
		limit int
		full  bool
	)

	cmd := &cobra.Command{
		Use:   "history",
		Short: "List saved evaluations",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()

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
				fmt.Println(cli.SubtleStyle.Render("No evaluations on record."))
				return nil
			}

			if full {
				for i := range results {
					fmt.Println(cli.RenderResult(&results[i]))
				}
				return nil
			}

			fmt.Println(cli.TableHeaderStyle.Render(fmt.Sprintf("%-19s %-36s %-32s %-6s %s",
				"Date", "ID", "Title", "Verdict", "Conf")))
			for _, r := range results {
				fmt.Printf("%-19s %-36s %-32s %-6s %.0f%%\n",
					r.CreatedAt.Format("2006-01-02 15:04"),
					r.ID,
					truncate(r.Candidate.Title, 32),
					r.Outcome,
					r.Confidence*100)
			}
			return nil
		},
	}

	cmd.Flags().IntVarP(&limit, "limit", "n", 20, "maximum number of evaluations to list")
	cmd.Flags().BoolVar(&full, "full", false, "print the full signal breakdown for each evaluation")

	return cmd
}

func truncate(s string, max int) string {
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max-1]) + "…"
}

package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"

	"github.com/hindsight-cli/hindsight/internal/cli"
	"github.com/hindsight-cli/hindsight/internal/model"
)

// batchCandidate mirrors one entry of the batch input file.
type batchCandidate struct {
	Title         string   `json:"title"`
	Category      string   `json:"category"`
	Vendor        string   `json:"vendor,omitempty"`
	Justification string   `json:"justification,omitempty"`
	Price         *float64 `json:"price,omitempty"`
	Important     bool     `json:"important,omitempty"`
}

func batchCmd() *cobra.Command {
	var algorithm string

	cmd := &cobra.Command{
		Use:   "batch <file.json>",
		Short: "Evaluate a file of candidate purchases",
		Long: `Evaluate every candidate in a JSON file (an array of objects with title,
category, vendor, justification, price, important) and save the results.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			data, err := os.ReadFile(args[0]) // #nosec G304 -- path from CLI argument
			if err != nil {
				return fmt.Errorf("failed to read batch file: %w", err)
			}
			var entries []batchCandidate
			if err := json.Unmarshal(data, &entries); err != nil {
				return fmt.Errorf("failed to parse batch file: %w", err)
			}
			if len(entries) == 0 {
				return fmt.Errorf("batch file contains no candidates")
			}

			parsedAlgorithm, err := model.ParseAlgorithm(algorithm)
			if err != nil {
				return err
			}

			eng, store, err := initEngine(ctx)
			if err != nil {
				return err
			}
			defer func() { _ = store.Close() }()

			bar := progressbar.Default(int64(len(entries)), "evaluating")

			var failed int
			for _, entry := range entries {
				category, err := model.ParseCategory(entry.Category)
				if err != nil {
					fmt.Fprintln(os.Stderr, cli.ErrorStyle.Render(fmt.Sprintf("%s: %v", entry.Title, err)))
					failed++
					_ = bar.Add(1)
					continue
				}

				candidate := model.CandidatePurchase{
					Title:         entry.Title,
					Category:      category,
					Vendor:        entry.Vendor,
					Justification: entry.Justification,
					Price:         entry.Price,
					Important:     entry.Important,
				}

				result, err := eng.EvaluateAndSave(ctx, currentUserID(), candidate, parsedAlgorithm)
				if err != nil {
					fmt.Fprintln(os.Stderr, cli.ErrorStyle.Render(fmt.Sprintf("%s: %v", entry.Title, err)))
					failed++
					_ = bar.Add(1)
					continue
				}

				fmt.Printf("%-40s %s (%.0f%%)\n", entry.Title, result.Outcome, result.Confidence*100)
				_ = bar.Add(1)
			}

			if failed > 0 {
				return fmt.Errorf("%d of %d candidates failed", failed, len(entries))
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&algorithm, "algorithm", "a", "standard", "calibration algorithm (standard, cost-sensitive-calibrated, llm-only)")

	return cmd
}

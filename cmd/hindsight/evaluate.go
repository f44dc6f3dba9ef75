package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/hindsight-cli/hindsight/internal/cli"
	"github.com/hindsight-cli/hindsight/internal/model"
)

func evaluateCmd() *cobra.Command {
	var (
		category      string
		vendor        string
		justification string
		price         float64
		important     bool
		algorithm     string
		save          bool
	)

	cmd := &cobra.Command{
		Use:   "evaluate <title>",
		Short: "Evaluate a purchase you are considering",
		Long: `Evaluate a candidate purchase against your history, budget, and goals.
Prints a buy/hold/skip verdict with the full signal breakdown.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			parsedCategory, err := model.ParseCategory(category)
			if err != nil {
				return err
			}
			parsedAlgorithm, err := model.ParseAlgorithm(algorithm)
			if err != nil {
				return err
			}

			candidate := model.CandidatePurchase{
				Title:         args[0],
				Category:      parsedCategory,
				Vendor:        vendor,
				Justification: justification,
				Important:     important,
			}
			if cmd.Flags().Changed("price") {
				candidate.Price = &price
			}

			eng, store, err := initEngine(ctx)
			if err != nil {
				return err
			}
			defer func() { _ = store.Close() }()

			var result *model.EvaluationResult
			if save {
				result, err = eng.EvaluateAndSave(ctx, currentUserID(), candidate, parsedAlgorithm)
			} else {
				result, err = eng.Evaluate(ctx, currentUserID(), candidate, parsedAlgorithm)
			}
			if err != nil {
				return err
			}

			fmt.Println(cli.RenderResult(result))
			if save {
				fmt.Println(cli.SubtleStyle.Render("Saved as " + result.ID))
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&category, "category", "c", "other", "purchase category")
	cmd.Flags().StringVar(&vendor, "vendor", "", "vendor name, matched against the vendor reference table")
	cmd.Flags().StringVarP(&justification, "why", "w", "", "why you want this purchase")
	cmd.Flags().Float64VarP(&price, "price", "p", 0, "price in dollars")
	cmd.Flags().BoolVar(&important, "important", false, "mark the purchase as important to you")
	cmd.Flags().StringVarP(&algorithm, "algorithm", "a", "standard", "calibration algorithm (standard, cost-sensitive-calibrated, llm-only)")
	cmd.Flags().BoolVar(&save, "save", true, "persist the evaluation")

	return cmd
}

func regenerateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "regenerate <evaluation-id>",
		Short: "Re-run a saved evaluation",
		Long: `Re-evaluate a saved result's candidate with the same algorithm. Runs
under a tighter completion retry cap than a fresh evaluation.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			eng, store, err := initEngine(ctx)
			if err != nil {
				return err
			}
			defer func() { _ = store.Close() }()

			result, err := eng.Regenerate(ctx, args[0])
			if err != nil {
				return err
			}

			fmt.Println(cli.RenderResult(result))
			fmt.Println(cli.SubtleStyle.Render("Saved as " + result.ID))
			return nil
		},
	}
}

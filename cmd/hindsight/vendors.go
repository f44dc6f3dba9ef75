package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/hindsight-cli/hindsight/internal/cli"
	"github.com/hindsight-cli/hindsight/internal/model"
)

func vendorsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "vendors",
		Short: "Manage the vendor reference table",
		Long:  `View, edit, and manage vendor quality, reliability, and price-tier ratings.`,
	}

	// Subcommands
	cmd.AddCommand(vendorsListCmd())
	cmd.AddCommand(vendorsSetCmd())
	cmd.AddCommand(vendorsDeleteCmd())

	return cmd
}

func vendorsListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List all vendor ratings",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()

			store, err := initStorage(ctx)
			if err != nil {
				return err
			}
			defer func() { _ = store.Close() }()

			vendors, err := store.ListVendors(ctx)
			if err != nil {
				return err
			}

			fmt.Println(cli.RenderVendorTable(vendors))
			return nil
		},
	}
}

func vendorsSetCmd() *cobra.Command {
	var (
		category    string
		quality     string
		reliability string
		tier        string
	)

	cmd := &cobra.Command{
		Use:   "set <name>",
		Short: "Add or update a vendor rating",
		Long: `Add or update a vendor's quality, reliability, and price-tier ratings.
Leave --category empty to make the rating apply across categories.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			vendor := model.VendorMatch{Name: args[0]}
			if category != "" {
				parsed, err := model.ParseCategory(category)
				if err != nil {
					return err
				}
				vendor.Category = parsed
			}

			var err error
			if vendor.Quality, err = model.ParseRatingLevel(quality); err != nil {
				return err
			}
			if vendor.Reliability, err = model.ParseRatingLevel(reliability); err != nil {
				return err
			}
			if vendor.PriceTier, err = model.ParsePriceTier(tier); err != nil {
				return err
			}

			store, err := initStorage(ctx)
			if err != nil {
				return err
			}
			defer func() { _ = store.Close() }()

			if err := store.SaveVendor(ctx, &vendor); err != nil {
				return err
			}

			fmt.Printf("Saved vendor %s\n", vendor.Name)
			return nil
		},
	}

	cmd.Flags().StringVarP(&category, "category", "c", "", "category the rating applies to (empty = any)")
	cmd.Flags().StringVarP(&quality, "quality", "q", "medium", "quality rating (low, medium, high)")
	cmd.Flags().StringVarP(&reliability, "reliability", "r", "medium", "reliability rating (low, medium, high)")
	cmd.Flags().StringVarP(&tier, "tier", "t", "mid", "price tier (budget, mid, premium, luxury)")

	return cmd
}

func vendorsDeleteCmd() *cobra.Command {
	var category string

	cmd := &cobra.Command{
		Use:   "delete <name>",
		Short: "Delete a vendor rating",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			var parsed model.Category
			if category != "" {
				var err error
				parsed, err = model.ParseCategory(category)
				if err != nil {
					return err
				}
			}

			store, err := initStorage(ctx)
			if err != nil {
				return err
			}
			defer func() { _ = store.Close() }()

			if err := store.DeleteVendor(ctx, args[0], parsed); err != nil {
				return err
			}

			fmt.Printf("Deleted vendor %s\n", args[0])
			return nil
		},
	}

	cmd.Flags().StringVarP(&category, "category", "c", "", "category scope of the rating to delete")

	return cmd
}

package main

import (
	"fmt"
	"os"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"github.com/ImAdityaa12/expensio-app/internal/cli"
	"github.com/ImAdityaa12/expensio-app/internal/model"
)

func limitsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "limits",
		Short: "Manage category spending limits",
		Long: `Set and inspect per-category spending limits. When debits in a
category pass 90% of its limit a warning alert fires; crossing the
limit fires a critical alert. Each alert fires at most once per
period.`,
	}

	cmd.AddCommand(setLimitCmd())
	cmd.AddCommand(listLimitsCmd())

	return cmd
}

func setLimitCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "set <category> <amount>",
		Short: "Set a spending limit for a category",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			amount, err := decimal.NewFromString(args[1])
			if err != nil {
				return fmt.Errorf("invalid amount %q: %w", args[1], err)
			}

			rawPeriod, _ := cmd.Flags().GetString("period")
			period := model.PeriodType(strings.ToUpper(rawPeriod))
			if !period.Valid() {
				return fmt.Errorf("invalid --period %q (want daily, weekly, or monthly)", rawPeriod)
			}

			store, err := initStorage(ctx)
			if err != nil {
				return err
			}
			defer func() { _ = store.Close() }()

			userID := currentUserID()

			category, err := store.GetCategoryByName(ctx, userID, args[0])
			if err != nil {
				return fmt.Errorf("unknown category %q", args[0])
			}

			limit := &model.CategoryLimit{
				ID:          uuid.New().String(),
				UserID:      userID,
				CategoryID:  category.ID,
				PeriodType:  period,
				LimitAmount: amount,
			}
			if err := store.UpsertCategoryLimit(ctx, limit); err != nil {
				return fmt.Errorf("failed to save limit: %w", err)
			}

			fmt.Println(cli.SuccessStyle.Render(fmt.Sprintf(
				"Set %s limit of %s for %s.",
				strings.ToLower(string(period)), amount.StringFixed(2), category.Name)))
			return nil
		},
	}

	cmd.Flags().String("period", "monthly", "limit period: daily, weekly, or monthly")

	return cmd
}

func listLimitsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List configured limits with current spend",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()

			store, err := initStorage(ctx)
			if err != nil {
				return err
			}
			defer func() { _ = store.Close() }()

			userID := currentUserID()

			limits, err := store.ListCategoryLimits(ctx, userID)
			if err != nil {
				return fmt.Errorf("failed to list limits: %w", err)
			}

			if len(limits) == 0 {
				fmt.Println(cli.InfoStyle.Render("No limits configured. Use 'expensio limits set <category> <amount>'."))
				return nil
			}

			categoryNames, err := categoryNameIndex(ctx, store, userID)
			if err != nil {
				return err
			}

			w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
			defer func() { _ = w.Flush() }()

			fmt.Fprintf(w, "CATEGORY\tPERIOD\tLIMIT\tSPENT\n")
			for _, limit := range limits {
				spent, err := store.SumDebits(ctx, userID, limit.CategoryID, limit.PeriodType.PeriodStart(time.Now()))
				if err != nil {
					return fmt.Errorf("failed to compute spend: %w", err)
				}
				fmt.Fprintf(w, "%s\t%s\t%s\t%s\n",
					categoryNames[limit.CategoryID],
					strings.ToLower(string(limit.PeriodType)),
					limit.LimitAmount.StringFixed(2),
					spent.StringFixed(2))
			}
			return nil
		},
	}
}

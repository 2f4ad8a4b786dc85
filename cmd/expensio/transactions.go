package main

import (
	"context"
	"fmt"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/ImAdityaa12/expensio-app/internal/cli"
	"github.com/ImAdityaa12/expensio-app/internal/model"
	"github.com/ImAdityaa12/expensio-app/internal/service"
)

func transactionsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "transactions",
		Aliases: []string{"txns"},
		Short:   "List recorded transactions",
		RunE:    runTransactions,
	}

	cmd.Flags().String("category", "", "filter by category name")
	cmd.Flags().String("type", "", "filter by type: DEBIT or CREDIT")
	cmd.Flags().String("from", "", "start date (YYYY-MM-DD)")
	cmd.Flags().String("to", "", "end date (YYYY-MM-DD)")
	cmd.Flags().Int("limit", 50, "maximum rows to show")

	return cmd
}

func runTransactions(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()

	store, err := initStorage(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = store.Close() }()

	userID := currentUserID()

	filter := service.TransactionFilter{}
	filter.Limit, _ = cmd.Flags().GetInt("limit")

	if raw, _ := cmd.Flags().GetString("type"); raw != "" {
		filter.Type = model.TransactionType(strings.ToUpper(raw))
		if !filter.Type.Valid() {
			return fmt.Errorf("invalid --type %q (want DEBIT or CREDIT)", raw)
		}
	}
	if raw, _ := cmd.Flags().GetString("from"); raw != "" {
		from, err := parseCLIDate(raw)
		if err != nil {
			return err
		}
		filter.StartDate = &from
	}
	if raw, _ := cmd.Flags().GetString("to"); raw != "" {
		to, err := parseCLIDate(raw)
		if err != nil {
			return err
		}
		filter.EndDate = &to
	}
	if name, _ := cmd.Flags().GetString("category"); name != "" {
		category, err := store.GetCategoryByName(ctx, userID, name)
		if err != nil {
			return fmt.Errorf("unknown category %q", name)
		}
		filter.CategoryID = category.ID
	}

	txns, err := store.ListTransactions(ctx, userID, filter)
	if err != nil {
		return fmt.Errorf("failed to list transactions: %w", err)
	}

	if len(txns) == 0 {
		fmt.Println(cli.InfoStyle.Render("No transactions found."))
		return nil
	}

	categoryNames, err := categoryNameIndex(ctx, store, userID)
	if err != nil {
		return err
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	defer func() { _ = w.Flush() }()

	fmt.Fprintf(w, "DATE\tTYPE\tAMOUNT\tMERCHANT\tCATEGORY\tSOURCE\n")
	for _, txn := range txns {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s\n",
			txn.TransactionDate.Format("2006-01-02"),
			txn.Type,
			txn.Amount.StringFixed(2),
			txn.MerchantName,
			categoryNames[txn.CategoryID],
			txn.Source)
	}
	return nil
}

func categoryNameIndex(ctx context.Context, store service.Storage, userID string) (map[string]string, error) {
	categories, err := store.GetCategories(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to get categories: %w", err)
	}
	names := make(map[string]string, len(categories))
	for _, c := range categories {
		names[c.ID] = c.Name
	}
	return names, nil
}

package main

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"github.com/ImAdityaa12/expensio-app/internal/cli"
	"github.com/ImAdityaa12/expensio-app/internal/engine"
	"github.com/ImAdityaa12/expensio-app/internal/model"
)

func addCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "add",
		Short: "Add a transaction manually",
		Long: `Record a transaction the SMS pipeline did not see, such as a cash
purchase. Manual entries are validated up front and rejected with a
clear message rather than silently dropped.`,
		RunE: runAdd,
	}

	cmd.Flags().String("amount", "", "transaction amount, e.g. 450.00 (required)")
	cmd.Flags().String("type", "DEBIT", "transaction type: DEBIT or CREDIT")
	cmd.Flags().String("merchant", "", "merchant or counterparty name")
	cmd.Flags().String("category", "", "category name, e.g. Food")
	cmd.Flags().String("description", "", "free-form note")
	cmd.Flags().String("date", "", "transaction date (YYYY-MM-DD, default: today)")
	_ = cmd.MarkFlagRequired("amount")

	return cmd
}

func runAdd(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()

	rawAmount, _ := cmd.Flags().GetString("amount")
	amount, err := decimal.NewFromString(rawAmount)
	if err != nil {
		return fmt.Errorf("invalid --amount %q: %w", rawAmount, err)
	}

	var date time.Time
	if raw, _ := cmd.Flags().GetString("date"); raw != "" {
		date, err = parseCLIDate(raw)
		if err != nil {
			return err
		}
	}

	txnType, _ := cmd.Flags().GetString("type")
	merchant, _ := cmd.Flags().GetString("merchant")
	category, _ := cmd.Flags().GetString("category")
	description, _ := cmd.Flags().GetString("description")

	store, err := initStorage(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = store.Close() }()

	eng, cleanup, err := initEngine(ctx, store)
	if err != nil {
		return err
	}
	defer cleanup()

	txn, err := eng.AddManualTransaction(ctx, engine.ManualEntry{
		Date:         date,
		MerchantName: merchant,
		Description:  description,
		CategoryName: category,
		Type:         model.TransactionType(strings.ToUpper(txnType)),
		Amount:       amount,
	})
	if err != nil {
		return err
	}

	fmt.Println(cli.SuccessStyle.Render(fmt.Sprintf(
		"Recorded %s %s on %s.",
		txn.Type, txn.Amount.StringFixed(2), txn.TransactionDate.Format("2006-01-02"))))
	return nil
}

package main

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/ImAdityaa12/expensio-app/internal/cli"
	"github.com/ImAdityaa12/expensio-app/internal/common"
	"github.com/ImAdityaa12/expensio-app/internal/model"
	"github.com/ImAdityaa12/expensio-app/internal/service"
	"github.com/shopspring/decimal"
)

func setupCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "setup",
		Short: "Initialize the database and seed default categories",
		Long: `Create the database, run migrations, and seed the default category
set (Food, Transport, Shopping, Bills, Entertainment, Healthcare,
Travel, Others) for the current user. Safe to run repeatedly;
categories that already exist are left alone.`,
		RunE: runSetup,
	}

	cmd.Flags().String("bank", "", "name of a bank account to create")
	cmd.Flags().String("account-name", "", "display name for the account")
	cmd.Flags().String("last4", "", "last four digits of the account number")

	return cmd
}

func runSetup(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()

	store, err := initStorage(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = store.Close() }()

	userID := currentUserID()

	created, err := seedDefaultCategories(ctx, store, userID)
	if err != nil {
		return err
	}

	switch created {
	case 0:
		fmt.Println(cli.InfoStyle.Render("Categories already present, nothing to seed."))
	default:
		fmt.Println(cli.SuccessStyle.Render(fmt.Sprintf("Seeded %d default categories.", created)))
	}

	bank, _ := cmd.Flags().GetString("bank")
	if bank != "" {
		accountName, _ := cmd.Flags().GetString("account-name")
		last4, _ := cmd.Flags().GetString("last4")
		if accountName == "" {
			accountName = bank
		}

		account := &model.Account{
			ID:          uuid.New().String(),
			UserID:      userID,
			BankName:    bank,
			AccountName: accountName,
			Last4Digits: last4,
			Balance:     decimal.Zero,
		}
		if err := store.SaveAccount(ctx, account); err != nil {
			return fmt.Errorf("failed to save account: %w", err)
		}
		fmt.Println(cli.SuccessStyle.Render(fmt.Sprintf("Created account %q.", accountName)))
	}

	fmt.Println(cli.SubtleStyle.Render("Ready. Try: expensio ingest --sender HDFCBK --body \"...\""))
	return nil
}

// seedDefaultCategories creates any default category the user is missing
// and reports how many were created.
func seedDefaultCategories(ctx context.Context, store service.Storage, userID string) (int, error) {
	created := 0
	for _, category := range model.DefaultCategories(userID) {
		err := store.CreateCategory(ctx, &category)
		switch {
		case err == nil:
			created++
		case errors.Is(err, common.ErrDuplicateEntry):
			// Already seeded.
		default:
			return created, fmt.Errorf("failed to create category %q: %w", category.Name, err)
		}
	}
	return created, nil
}

package storage

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"time"

	"github.com/ImAdityaa12/expensio-app/internal/model"
)

// GetAccounts returns all of a user's accounts ordered by account name.
func (s *SQLiteStorage) GetAccounts(ctx context.Context, userID string) ([]model.Account, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT id, user_id, bank_name, account_name, last4_digits, balance, created_at
		FROM accounts
		WHERE user_id = ?
		ORDER BY account_name`, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to query accounts: %w", err)
	}
	defer rows.Close()

	var accounts []model.Account
	for rows.Next() {
		var acct model.Account
		var last4 sql.NullString
		var balance string
		if scanErr := rows.Scan(&acct.ID, &acct.UserID, &acct.BankName, &acct.AccountName,
			&last4, &balance, &acct.CreatedAt); scanErr != nil {
			return nil, fmt.Errorf("failed to scan account: %w", scanErr)
		}
		acct.Last4Digits = last4.String
		acct.Balance, err = amountFromDB(balance)
		if err != nil {
			return nil, fmt.Errorf("invalid account balance %q: %w", balance, err)
		}
		accounts = append(accounts, acct)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating accounts: %w", err)
	}
	return accounts, nil
}

// SaveAccount inserts or updates an account.
func (s *SQLiteStorage) SaveAccount(ctx context.Context, account *model.Account) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if account == nil {
		return fmt.Errorf("%w: account", ErrNilParameter)
	}
	if err := validateString(account.ID, "id"); err != nil {
		return err
	}
	if err := validateString(account.UserID, "userID"); err != nil {
		return err
	}
	if err := validateString(account.BankName, "bankName"); err != nil {
		return err
	}
	if err := validateString(account.AccountName, "accountName"); err != nil {
		return err
	}

	if account.CreatedAt.IsZero() {
		account.CreatedAt = time.Now()
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO accounts (id, user_id, bank_name, account_name, last4_digits, balance, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			bank_name = excluded.bank_name,
			account_name = excluded.account_name,
			last4_digits = excluded.last4_digits,
			balance = excluded.balance`,
		account.ID, account.UserID, account.BankName, account.AccountName,
		nullable(account.Last4Digits), amountToDB(account.Balance), account.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to save account: %w", err)
	}

	slog.Debug("saved account", "bank", account.BankName, "name", account.AccountName)
	return nil
}

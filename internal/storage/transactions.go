package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/shopspring/decimal"

	"github.com/ImAdityaa12/expensio-app/internal/common"
	"github.com/ImAdityaa12/expensio-app/internal/model"
	"github.com/ImAdityaa12/expensio-app/internal/service"
)

// dateLayout is the storage form of calendar dates. Transaction dates are
// date-only: two charges on the same day with the same amount and merchant
// are considered the same purchase by the duplicate guard.
const dateLayout = "2006-01-02"

// Amounts are stored as fixed two-decimal strings rather than REAL columns
// so that exact-match duplicate queries and re-summing never hit float
// representation drift.
func amountToDB(d decimal.Decimal) string {
	return d.StringFixed(2)
}

func amountFromDB(s string) (decimal.Decimal, error) {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, fmt.Errorf("corrupt amount %q: %w", s, err)
	}
	return d, nil
}

func nullable(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}

// SaveTransaction inserts a new ledger entry.
func (s *SQLiteStorage) SaveTransaction(ctx context.Context, txn *model.Transaction) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if err := validateTransaction(txn); err != nil {
		return err
	}

	if txn.CreatedAt.IsZero() {
		txn.CreatedAt = time.Now()
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO transactions (id, user_id, account_id, category_id, amount, type,
			merchant_name, description, transaction_date, source, sms_id, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		txn.ID, txn.UserID, nullable(txn.AccountID), nullable(txn.CategoryID),
		amountToDB(txn.Amount), string(txn.Type), nullable(txn.MerchantName),
		nullable(txn.Description), model.DateOnly(txn.TransactionDate).Format(dateLayout),
		string(txn.Source), nullable(txn.SMSLogID), txn.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to save transaction: %w", err)
	}

	slog.Debug("saved transaction",
		"id", txn.ID,
		"amount", amountToDB(txn.Amount),
		"type", txn.Type,
		"source", txn.Source)
	return nil
}

const transactionColumns = `id, user_id, account_id, category_id, amount, type,
	merchant_name, description, transaction_date, source, sms_id, created_at`

func scanTransaction(row interface {
	Scan(dest ...any) error
}) (*model.Transaction, error) {
	var txn model.Transaction
	var accountID, categoryID, merchantName, description, smsID sql.NullString
	var amount, txnDate, txnType, source string

	err := row.Scan(&txn.ID, &txn.UserID, &accountID, &categoryID, &amount, &txnType,
		&merchantName, &description, &txnDate, &source, &smsID, &txn.CreatedAt)
	if err != nil {
		return nil, err
	}

	txn.AccountID = accountID.String
	txn.CategoryID = categoryID.String
	txn.MerchantName = merchantName.String
	txn.Description = description.String
	txn.SMSLogID = smsID.String
	txn.Type = model.TransactionType(txnType)
	txn.Source = model.TransactionSource(source)

	if txn.Amount, err = amountFromDB(amount); err != nil {
		return nil, err
	}
	if txn.TransactionDate, err = time.ParseInLocation(dateLayout, txnDate, time.Local); err != nil {
		return nil, fmt.Errorf("corrupt transaction date %q: %w", txnDate, err)
	}

	return &txn, nil
}

// GetTransactionByID retrieves one transaction by id.
func (s *SQLiteStorage) GetTransactionByID(ctx context.Context, userID, id string) (*model.Transaction, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	if err := validateString(id, "id"); err != nil {
		return nil, err
	}

	row := s.db.QueryRowContext(ctx, `
		SELECT `+transactionColumns+`
		FROM transactions
		WHERE user_id = ? AND id = ?`, userID, id)

	txn, err := scanTransaction(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, common.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get transaction: %w", err)
	}
	return txn, nil
}

// FindMatchingTransaction looks for an existing transaction with the same
// amount, merchant and calendar date. This backs the transaction-level
// duplicate check; a nil result with common.ErrNotFound means no match.
func (s *SQLiteStorage) FindMatchingTransaction(ctx context.Context, userID string, amount decimal.Decimal, merchantName string, date time.Time) (*model.Transaction, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}

	row := s.db.QueryRowContext(ctx, `
		SELECT `+transactionColumns+`
		FROM transactions
		WHERE user_id = ? AND amount = ? AND merchant_name = ? AND transaction_date = ?
		LIMIT 1`,
		userID, amountToDB(amount), merchantName, model.DateOnly(date).Format(dateLayout))

	txn, err := scanTransaction(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, common.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find matching transaction: %w", err)
	}
	return txn, nil
}

// ListTransactions returns a user's transactions, newest first, applying
// the optional filter fields.
func (s *SQLiteStorage) ListTransactions(ctx context.Context, userID string, filter service.TransactionFilter) ([]model.Transaction, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}

	query := `SELECT ` + transactionColumns + ` FROM transactions WHERE user_id = ?`
	args := []any{userID}

	if filter.StartDate != nil {
		query += ` AND transaction_date >= ?`
		args = append(args, model.DateOnly(*filter.StartDate).Format(dateLayout))
	}
	if filter.EndDate != nil {
		query += ` AND transaction_date <= ?`
		args = append(args, model.DateOnly(*filter.EndDate).Format(dateLayout))
	}
	if filter.CategoryID != "" {
		query += ` AND category_id = ?`
		args = append(args, filter.CategoryID)
	}
	if filter.Type != "" {
		query += ` AND type = ?`
		args = append(args, string(filter.Type))
	}

	query += ` ORDER BY transaction_date DESC, created_at DESC`
	if filter.Limit > 0 {
		query += ` LIMIT ?`
		args = append(args, filter.Limit)
		if filter.Offset > 0 {
			query += ` OFFSET ?`
			args = append(args, filter.Offset)
		}
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query transactions: %w", err)
	}
	defer rows.Close()

	var transactions []model.Transaction
	for rows.Next() {
		txn, scanErr := scanTransaction(rows)
		if scanErr != nil {
			return nil, fmt.Errorf("failed to scan transaction: %w", scanErr)
		}
		transactions = append(transactions, *txn)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating transactions: %w", err)
	}

	return transactions, nil
}

// UpdateTransaction applies a user edit. Identity fields (id, user, source,
// sms link) are immutable; amount, category, merchant, description and date
// may change.
func (s *SQLiteStorage) UpdateTransaction(ctx context.Context, txn *model.Transaction) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if err := validateTransaction(txn); err != nil {
		return err
	}

	result, err := s.db.ExecContext(ctx, `
		UPDATE transactions
		SET amount = ?, type = ?, category_id = ?, merchant_name = ?, description = ?, transaction_date = ?
		WHERE user_id = ? AND id = ?`,
		amountToDB(txn.Amount), string(txn.Type), nullable(txn.CategoryID),
		nullable(txn.MerchantName), nullable(txn.Description),
		model.DateOnly(txn.TransactionDate).Format(dateLayout),
		txn.UserID, txn.ID)
	if err != nil {
		return fmt.Errorf("failed to update transaction: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check update result: %w", err)
	}
	if affected == 0 {
		return common.ErrNotFound
	}
	return nil
}

// DeleteTransaction removes a transaction by id.
func (s *SQLiteStorage) DeleteTransaction(ctx context.Context, userID, id string) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if err := validateString(id, "id"); err != nil {
		return err
	}

	result, err := s.db.ExecContext(ctx,
		`DELETE FROM transactions WHERE user_id = ? AND id = ?`, userID, id)
	if err != nil {
		return fmt.Errorf("failed to delete transaction: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check delete result: %w", err)
	}
	if affected == 0 {
		return common.ErrNotFound
	}
	return nil
}

// SumDebits recomputes total DEBIT spend for a category from the persisted
// rows with transaction_date on or after since. Summation happens in
// decimal arithmetic; nothing is accumulated incrementally.
func (s *SQLiteStorage) SumDebits(ctx context.Context, userID, categoryID string, since time.Time) (decimal.Decimal, error) {
	if err := validateContext(ctx); err != nil {
		return decimal.Zero, err
	}
	if err := validateString(categoryID, "categoryID"); err != nil {
		return decimal.Zero, err
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT amount
		FROM transactions
		WHERE user_id = ? AND category_id = ? AND type = 'DEBIT' AND transaction_date >= ?`,
		userID, categoryID, model.DateOnly(since).Format(dateLayout))
	if err != nil {
		return decimal.Zero, fmt.Errorf("failed to query debit amounts: %w", err)
	}
	defer rows.Close()

	total := decimal.Zero
	for rows.Next() {
		var raw string
		if err := rows.Scan(&raw); err != nil {
			return decimal.Zero, fmt.Errorf("failed to scan amount: %w", err)
		}
		amount, err := amountFromDB(raw)
		if err != nil {
			return decimal.Zero, err
		}
		total = total.Add(amount)
	}

	if err := rows.Err(); err != nil {
		return decimal.Zero, fmt.Errorf("error iterating amounts: %w", err)
	}

	return total, nil
}

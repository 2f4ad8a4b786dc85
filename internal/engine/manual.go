package engine

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/ImAdityaa12/expensio-app/internal/common"
	"github.com/ImAdityaa12/expensio-app/internal/model"
)

// ManualEntry is a user-entered transaction before validation.
type ManualEntry struct {
	Date         time.Time
	MerchantName string
	Description  string
	CategoryName string
	Type         model.TransactionType
	Amount       decimal.Decimal
}

// AddManualTransaction validates and records a user-entered transaction.
// Unlike ingestion, invalid input here is rejected with an explicit
// message before any store mutation; no partial writes occur.
func (e *IngestionEngine) AddManualTransaction(ctx context.Context, entry ManualEntry) (*model.Transaction, error) {
	if !entry.Amount.IsPositive() {
		return nil, common.NewUserError("amount must be greater than zero", nil)
	}
	if !entry.Type.Valid() {
		return nil, common.NewUserError(fmt.Sprintf("type must be %s or %s", model.TypeDebit, model.TypeCredit), nil)
	}

	date := entry.Date
	if date.IsZero() {
		date = time.Now()
	}

	var categoryID string
	if name := strings.TrimSpace(entry.CategoryName); name != "" {
		cat, err := e.store.GetCategoryByName(ctx, e.userID, name)
		if errors.Is(err, common.ErrNotFound) {
			return nil, common.NewUserError(fmt.Sprintf("no category named %q", name), nil)
		}
		if err != nil {
			return nil, fmt.Errorf("failed to look up category: %w", err)
		}
		categoryID = cat.ID
	}

	txn := &model.Transaction{
		ID:              uuid.New().String(),
		UserID:          e.userID,
		Amount:          entry.Amount,
		Type:            entry.Type,
		MerchantName:    strings.TrimSpace(entry.MerchantName),
		Description:     strings.TrimSpace(entry.Description),
		TransactionDate: date,
		Source:          model.SourceManual,
		CategoryID:      categoryID,
	}
	if err := e.store.SaveTransaction(ctx, txn); err != nil {
		return nil, fmt.Errorf("failed to save transaction: %w", err)
	}

	e.logger.Info("manual transaction recorded",
		"transaction_id", txn.ID,
		"amount", txn.Amount.StringFixed(2),
		"type", txn.Type)

	if txn.Type == model.TypeDebit && categoryID != "" {
		if err := e.budget.Evaluate(ctx, e.userID, categoryID); err != nil {
			e.logger.Warn("budget evaluation failed", "error", err)
		}
	}

	return txn, nil
}

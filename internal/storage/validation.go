// Package storage provides the data persistence layer for the expensio application.
package storage

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/ImAdityaa12/expensio-app/internal/model"
)

// Validation errors.
var (
	ErrNilContext         = errors.New("context cannot be nil")
	ErrEmptyString        = errors.New("string parameter cannot be empty")
	ErrNilParameter       = errors.New("parameter cannot be nil")
	ErrInvalidTransaction = errors.New("invalid transaction")
	ErrInvalidCategory    = errors.New("invalid category")
	ErrInvalidMessageLog  = errors.New("invalid message log entry")
	ErrInvalidLimit       = errors.New("invalid category limit")
	ErrInvalidAlert       = errors.New("invalid budget alert")
)

// validateContext ensures the context is not nil.
func validateContext(ctx context.Context) error {
	if ctx == nil {
		return ErrNilContext
	}
	return nil
}

// validateString ensures a string parameter is not empty.
func validateString(s string, paramName string) error {
	if strings.TrimSpace(s) == "" {
		return fmt.Errorf("%w: %s", ErrEmptyString, paramName)
	}
	return nil
}

// validateTransaction validates a single transaction.
func validateTransaction(txn *model.Transaction) error {
	if txn == nil {
		return fmt.Errorf("%w: transaction", ErrNilParameter)
	}
	if txn.ID == "" {
		return fmt.Errorf("%w: missing ID", ErrInvalidTransaction)
	}
	if txn.UserID == "" {
		return fmt.Errorf("%w: missing user ID", ErrInvalidTransaction)
	}
	if !txn.Amount.IsPositive() {
		return fmt.Errorf("%w: amount must be positive", ErrInvalidTransaction)
	}
	if !txn.Type.Valid() {
		return fmt.Errorf("%w: unknown type %q", ErrInvalidTransaction, txn.Type)
	}
	if !txn.Source.Valid() {
		return fmt.Errorf("%w: unknown source %q", ErrInvalidTransaction, txn.Source)
	}
	if txn.TransactionDate.IsZero() {
		return fmt.Errorf("%w: missing date", ErrInvalidTransaction)
	}
	return nil
}

// validateMessageLog validates a message log entry.
func validateMessageLog(entry *model.MessageLogEntry) error {
	if entry == nil {
		return fmt.Errorf("%w: message log entry", ErrNilParameter)
	}
	if entry.ID == "" {
		return fmt.Errorf("%w: missing ID", ErrInvalidMessageLog)
	}
	if entry.UserID == "" {
		return fmt.Errorf("%w: missing user ID", ErrInvalidMessageLog)
	}
	if entry.Body == "" {
		return fmt.Errorf("%w: missing body", ErrInvalidMessageLog)
	}
	if entry.ReceivedAt.IsZero() {
		return fmt.Errorf("%w: missing received time", ErrInvalidMessageLog)
	}
	if entry.Confidence < 0 || entry.Confidence > 1 {
		return fmt.Errorf("%w: confidence must be between 0 and 1", ErrInvalidMessageLog)
	}
	return nil
}

// validateCategory validates a category.
func validateCategory(category *model.Category) error {
	if category == nil {
		return fmt.Errorf("%w: category", ErrNilParameter)
	}
	if category.ID == "" {
		return fmt.Errorf("%w: missing ID", ErrInvalidCategory)
	}
	if category.UserID == "" {
		return fmt.Errorf("%w: missing user ID", ErrInvalidCategory)
	}
	if strings.TrimSpace(category.Name) == "" {
		return fmt.Errorf("%w: missing name", ErrInvalidCategory)
	}
	return nil
}

// validateLimit validates a category limit.
func validateLimit(limit *model.CategoryLimit) error {
	if limit == nil {
		return fmt.Errorf("%w: limit", ErrNilParameter)
	}
	if limit.UserID == "" {
		return fmt.Errorf("%w: missing user ID", ErrInvalidLimit)
	}
	if limit.CategoryID == "" {
		return fmt.Errorf("%w: missing category ID", ErrInvalidLimit)
	}
	if !limit.LimitAmount.IsPositive() {
		return fmt.Errorf("%w: limit amount must be positive", ErrInvalidLimit)
	}
	if !limit.PeriodType.Valid() {
		return fmt.Errorf("%w: unknown period type %q", ErrInvalidLimit, limit.PeriodType)
	}
	return nil
}

// validateAlert validates a budget alert.
func validateAlert(alert *model.BudgetAlert) error {
	if alert == nil {
		return fmt.Errorf("%w: alert", ErrNilParameter)
	}
	if alert.UserID == "" || alert.CategoryID == "" {
		return fmt.Errorf("%w: missing scope", ErrInvalidAlert)
	}
	if alert.AlertType != model.AlertWarning && alert.AlertType != model.AlertCritical {
		return fmt.Errorf("%w: unknown alert type %q", ErrInvalidAlert, alert.AlertType)
	}
	return nil
}

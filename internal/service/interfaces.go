// Package service defines the interfaces for all application services.
package service

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/ImAdityaa12/expensio-app/internal/model"
)

// TransactionFilter defines filtering options for transaction queries.
type TransactionFilter struct {
	StartDate  *time.Time
	EndDate    *time.Time
	CategoryID string
	Type       model.TransactionType
	Limit      int
	Offset     int
}

// Storage defines the contract for our persistence layer. Every read and
// write is scoped to a single user; tenant isolation is enforced at this
// boundary, not by callers.
type Storage interface {
	// Message log operations
	LogMessage(ctx context.Context, entry *model.MessageLogEntry) error
	GetMessageLog(ctx context.Context, userID, id string) (*model.MessageLogEntry, error)
	HasRecentMessage(ctx context.Context, userID, sender, body string, since time.Time) (bool, error)
	CountMessageLogs(ctx context.Context, userID string) (int, error)

	// Transaction operations
	SaveTransaction(ctx context.Context, txn *model.Transaction) error
	GetTransactionByID(ctx context.Context, userID, id string) (*model.Transaction, error)
	FindMatchingTransaction(ctx context.Context, userID string, amount decimal.Decimal, merchantName string, date time.Time) (*model.Transaction, error)
	ListTransactions(ctx context.Context, userID string, filter TransactionFilter) ([]model.Transaction, error)
	UpdateTransaction(ctx context.Context, txn *model.Transaction) error
	DeleteTransaction(ctx context.Context, userID, id string) error
	SumDebits(ctx context.Context, userID, categoryID string, since time.Time) (decimal.Decimal, error)

	// Category operations
	GetCategories(ctx context.Context, userID string) ([]model.Category, error)
	GetCategoryByID(ctx context.Context, userID, id string) (*model.Category, error)
	GetCategoryByName(ctx context.Context, userID, name string) (*model.Category, error)
	CreateCategory(ctx context.Context, category *model.Category) error

	// Merchant-keyword operations
	GetMerchantMappings(ctx context.Context, userID string) ([]model.MerchantCategoryMap, error)
	SaveMerchantMapping(ctx context.Context, mapping *model.MerchantCategoryMap) error

	// Limit operations
	UpsertCategoryLimit(ctx context.Context, limit *model.CategoryLimit) error
	GetCategoryLimit(ctx context.Context, userID, categoryID string) (*model.CategoryLimit, error)
	ListCategoryLimits(ctx context.Context, userID string) ([]model.CategoryLimit, error)

	// Account operations
	GetAccounts(ctx context.Context, userID string) ([]model.Account, error)
	SaveAccount(ctx context.Context, account *model.Account) error

	// Budget alert operations
	SaveBudgetAlert(ctx context.Context, alert *model.BudgetAlert) error
	HasBudgetAlertSince(ctx context.Context, userID, categoryID string, alertType model.AlertType, since time.Time) (bool, error)

	// Database management
	Migrate(ctx context.Context) error
	Close() error
}

// Notifier delivers user-facing alerts. Delivery is best-effort;
// implementations must not block ingestion on failure.
type Notifier interface {
	Notify(ctx context.Context, title, body string) error
}

// RetryOptions configures retry behavior for operations.
type RetryOptions struct {
	MaxAttempts  int
	InitialDelay time.Duration
	MaxDelay     time.Duration
	Multiplier   float64
}

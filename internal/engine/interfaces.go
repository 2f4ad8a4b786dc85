package engine

import (
	"context"

	"github.com/ImAdityaa12/expensio-app/internal/model"
)

// Extractor derives structured transaction fields from a normalized
// message. A nil result with a nil error means the message is not a
// transaction notification; an error means the strategy itself failed and
// the caller may try another one.
type Extractor interface {
	Extract(ctx context.Context, msg model.RawMessage) (*model.ExtractedTransaction, error)
}

// CategoryResolver maps a category suggestion and merchant label onto one
// of the user's categories. An empty id means nothing could be resolved.
type CategoryResolver interface {
	Resolve(ctx context.Context, userID, suggestedCategory, merchantLabel string) string
}

// BudgetEvaluator re-checks a category's spending limit after a debit.
type BudgetEvaluator interface {
	Evaluate(ctx context.Context, userID, categoryID string) error
}

// Package engine sequences the ingestion pipeline: one inbound message in,
// zero or one ledger transaction out.
package engine

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/ImAdityaa12/expensio-app/internal/common"
	"github.com/ImAdityaa12/expensio-app/internal/model"
	"github.com/ImAdityaa12/expensio-app/internal/service"
	"github.com/ImAdityaa12/expensio-app/internal/sms"
)

// Outcome is the terminal state of one message's ingestion.
type Outcome string

const (
	// OutcomeRejected means the message body was empty or unusable; no
	// audit entry is written.
	OutcomeRejected Outcome = "rejected"
	// OutcomeDuplicateMessage means the identical message was already
	// processed within the dedup window.
	OutcomeDuplicateMessage Outcome = "duplicate_message"
	// OutcomeNotATransaction means the message was logged but did not
	// describe a transaction.
	OutcomeNotATransaction Outcome = "not_a_transaction"
	// OutcomeDuplicateTransaction means the underlying purchase was
	// already recorded; the message log entry still stands.
	OutcomeDuplicateTransaction Outcome = "duplicate_transaction"
	// OutcomeRecorded means a new transaction was persisted.
	OutcomeRecorded Outcome = "recorded"
	// OutcomeFailed means a store operation failed mid-pipeline; the
	// failure was logged and downstream steps did not run.
	OutcomeFailed Outcome = "failed"
)

// DefaultDedupWindow is the trailing window for message-level duplicate
// detection. Wide enough to absorb near-simultaneous redelivery, narrow
// enough to let legitimate identical charges hours apart through.
const DefaultDedupWindow = 5 * time.Minute

// Config holds configuration for the ingestion engine.
type Config struct {
	UserID      string
	DedupWindow time.Duration
}

// IngestionEngine runs the pipeline. Each inbound message is an
// independent unit of work; the backing store is the only shared state, so
// the engine is safe for concurrent use.
type IngestionEngine struct {
	store     service.Storage
	extractor Extractor
	resolver  CategoryResolver
	budget    BudgetEvaluator
	logger    *slog.Logger
	userID    string
	window    time.Duration
}

// New creates an ingestion engine with the given collaborators.
func New(store service.Storage, extractor Extractor, resolver CategoryResolver, budget BudgetEvaluator, cfg Config, logger *slog.Logger) *IngestionEngine {
	if logger == nil {
		logger = slog.Default()
	}
	window := cfg.DedupWindow
	if window <= 0 {
		window = DefaultDedupWindow
	}
	return &IngestionEngine{
		store:     store,
		extractor: extractor,
		resolver:  resolver,
		budget:    budget,
		logger:    logger,
		userID:    cfg.UserID,
		window:    window,
	}
}

// ProcessInboundMessage ingests one message end to end. It never returns
// an error: every failure is caught, logged, and folded into the outcome,
// so one bad message can not take down the trigger source or corrupt state
// for the next one.
func (e *IngestionEngine) ProcessInboundMessage(ctx context.Context, sender, body string, receivedAt time.Time) Outcome {
	msg, err := sms.Normalize(sender, body, receivedAt)
	if err != nil {
		e.logger.Debug("rejected unprocessable message", "sender", sender)
		return OutcomeRejected
	}

	log := e.logger.With("sender", msg.Sender)

	duplicate, err := e.store.HasRecentMessage(ctx, e.userID, msg.Sender, msg.Body, msg.ReceivedAt.Add(-e.window))
	if err != nil {
		log.Error("message dedup check failed", "error", err)
		return OutcomeFailed
	}
	if duplicate {
		log.Info("duplicate message within window, skipping")
		return OutcomeDuplicateMessage
	}

	extracted, err := e.extractor.Extract(ctx, msg)
	if err != nil {
		// Extraction failing entirely is treated as a non-transaction;
		// the message still enters the audit trail.
		log.Warn("extraction failed, classifying as non-transaction", "error", err)
		extracted = nil
	}

	entry := &model.MessageLogEntry{
		ID:         uuid.New().String(),
		UserID:     e.userID,
		Sender:     msg.Sender,
		Body:       msg.Body,
		ReceivedAt: msg.ReceivedAt,
	}
	if extracted != nil {
		entry.Parsed = true
		entry.Confidence = extracted.Confidence
	}

	if err := e.store.LogMessage(ctx, entry); err != nil {
		log.Error("failed to write message log entry", "error", err)
		return OutcomeFailed
	}

	if extracted == nil {
		log.Info("message logged as non-transaction")
		return OutcomeNotATransaction
	}

	categoryID := e.resolver.Resolve(ctx, e.userID, extracted.SuggestedCategory, extracted.MerchantLabel)

	if _, err := e.store.FindMatchingTransaction(ctx, e.userID, extracted.Amount, extracted.MerchantLabel, extracted.TransactionDate); err == nil {
		log.Info("duplicate transaction detected, skipping insert",
			"amount", extracted.Amount.StringFixed(2),
			"merchant", extracted.MerchantLabel)
		return OutcomeDuplicateTransaction
	} else if !errors.Is(err, common.ErrNotFound) {
		log.Error("transaction dedup check failed", "error", err)
		return OutcomeFailed
	}

	txn := &model.Transaction{
		ID:              uuid.New().String(),
		UserID:          e.userID,
		Amount:          extracted.Amount,
		Type:            extracted.Direction,
		MerchantName:    extracted.MerchantLabel,
		Description:     fmt.Sprintf("Auto-synced from %s", msg.Sender),
		TransactionDate: extracted.TransactionDate,
		Source:          model.SourceSMS,
		SMSLogID:        entry.ID,
		CategoryID:      categoryID,
	}
	if err := e.store.SaveTransaction(ctx, txn); err != nil {
		log.Error("failed to persist transaction", "error", err)
		return OutcomeFailed
	}

	log.Info("transaction recorded",
		"transaction_id", txn.ID,
		"amount", txn.Amount.StringFixed(2),
		"type", txn.Type,
		"merchant", txn.MerchantName,
		"category_id", txn.CategoryID)

	if txn.Type == model.TypeDebit && categoryID != "" {
		if err := e.budget.Evaluate(ctx, e.userID, categoryID); err != nil {
			// The transaction already stands; a failed evaluation only
			// costs an alert.
			log.Warn("budget evaluation failed", "error", err)
		}
	}

	return OutcomeRecorded
}

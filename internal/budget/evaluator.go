// Package budget evaluates category spending limits after new debits.
package budget

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/ImAdityaa12/expensio-app/internal/common"
	"github.com/ImAdityaa12/expensio-app/internal/model"
	"github.com/ImAdityaa12/expensio-app/internal/service"
)

// warningThreshold is the fraction of the limit at which a warning fires.
var warningThreshold = decimal.NewFromFloat(0.9)

// Evaluator recomputes period-to-date spend for a category and raises
// warning or critical alerts against the configured limit. Totals are
// always re-summed from persisted transactions, never accumulated, so
// repeated evaluation of the same period can not drift or double-count.
type Evaluator struct {
	store    service.Storage
	notifier service.Notifier
	logger   *slog.Logger
	now      func() time.Time
}

// NewEvaluator creates a budget evaluator.
func NewEvaluator(store service.Storage, notifier service.Notifier, logger *slog.Logger) *Evaluator {
	if logger == nil {
		logger = slog.Default()
	}
	return &Evaluator{
		store:    store,
		notifier: notifier,
		logger:   logger,
		now:      time.Now,
	}
}

// Evaluate checks the category's limit after a debit was recorded. A
// category without a limit is a no-op. Alert delivery failures are
// swallowed; the persisted alert row is the source of truth.
func (e *Evaluator) Evaluate(ctx context.Context, userID, categoryID string) error {
	limit, err := e.store.GetCategoryLimit(ctx, userID, categoryID)
	if errors.Is(err, common.ErrNotFound) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to look up category limit: %w", err)
	}

	periodStart := limit.PeriodType.PeriodStart(e.now())

	spent, err := e.store.SumDebits(ctx, userID, categoryID, periodStart)
	if err != nil {
		return fmt.Errorf("failed to recompute period spend: %w", err)
	}

	switch {
	case spent.GreaterThan(limit.LimitAmount):
		return e.raise(ctx, limit, model.AlertCritical, spent, periodStart)
	case spent.GreaterThan(limit.LimitAmount.Mul(warningThreshold)):
		return e.raise(ctx, limit, model.AlertWarning, spent, periodStart)
	default:
		return nil
	}
}

// raise records and delivers one alert, at most once per (category, type,
// period). The persisted budget_alerts row doubles as the suppression
// marker.
func (e *Evaluator) raise(ctx context.Context, limit *model.CategoryLimit, alertType model.AlertType, spent decimal.Decimal, periodStart time.Time) error {
	already, err := e.store.HasBudgetAlertSince(ctx, limit.UserID, limit.CategoryID, alertType, periodStart)
	if err != nil {
		return fmt.Errorf("failed to check alert history: %w", err)
	}
	if already {
		e.logger.Debug("alert already raised this period",
			"category_id", limit.CategoryID,
			"type", alertType)
		return nil
	}

	title, body := e.composeAlert(ctx, limit, alertType, spent)

	alert := &model.BudgetAlert{
		ID:         uuid.New().String(),
		UserID:     limit.UserID,
		CategoryID: limit.CategoryID,
		AlertType:  alertType,
		Message:    body,
		CreatedAt:  e.now(),
	}
	if err := e.store.SaveBudgetAlert(ctx, alert); err != nil {
		return fmt.Errorf("failed to record alert: %w", err)
	}

	if notifyErr := e.notifier.Notify(ctx, title, body); notifyErr != nil {
		// Best-effort delivery; the recorded alert already stands.
		e.logger.Warn("alert delivery failed",
			"category_id", limit.CategoryID,
			"type", alertType,
			"error", notifyErr)
	}

	return nil
}

func (e *Evaluator) composeAlert(ctx context.Context, limit *model.CategoryLimit, alertType model.AlertType, spent decimal.Decimal) (string, string) {
	categoryName := "this category"
	if cat, err := e.store.GetCategoryByID(ctx, limit.UserID, limit.CategoryID); err == nil {
		categoryName = cat.Name
	}

	if alertType == model.AlertCritical {
		title := "Limit Reached"
		body := fmt.Sprintf("%s spending is %s, over your %s limit of %s.",
			categoryName, spent.StringFixed(2),
			periodLabel(limit.PeriodType), limit.LimitAmount.StringFixed(2))
		return title, body
	}

	title := "Budget Warning"
	body := fmt.Sprintf("%s spending is %s, past 90%% of your %s limit of %s.",
		categoryName, spent.StringFixed(2),
		periodLabel(limit.PeriodType), limit.LimitAmount.StringFixed(2))
	return title, body
}

func periodLabel(p model.PeriodType) string {
	switch p {
	case model.PeriodDaily:
		return "daily"
	case model.PeriodWeekly:
		return "weekly"
	case model.PeriodMonthly:
		return "monthly"
	default:
		return string(p)
	}
}

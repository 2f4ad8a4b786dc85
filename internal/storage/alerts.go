package storage

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/ImAdityaa12/expensio-app/internal/model"
)

// SaveBudgetAlert records that an alert fired for a category in a period.
func (s *SQLiteStorage) SaveBudgetAlert(ctx context.Context, alert *model.BudgetAlert) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if err := validateAlert(alert); err != nil {
		return err
	}

	if alert.CreatedAt.IsZero() {
		alert.CreatedAt = time.Now()
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO budget_alerts (id, user_id, category_id, alert_type, message, created_at)
		VALUES (?, ?, ?, ?, ?, ?)`,
		alert.ID, alert.UserID, alert.CategoryID, string(alert.AlertType),
		alert.Message, alert.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to save budget alert: %w", err)
	}

	slog.Info("recorded budget alert",
		"category_id", alert.CategoryID,
		"type", alert.AlertType)
	return nil
}

// HasBudgetAlertSince reports whether an alert of the given type already
// fired for the category at or after the given time. Used to keep alerts
// from repeating within a budget period.
func (s *SQLiteStorage) HasBudgetAlertSince(ctx context.Context, userID, categoryID string, alertType model.AlertType, since time.Time) (bool, error) {
	if err := validateContext(ctx); err != nil {
		return false, err
	}
	if err := validateString(categoryID, "category_id"); err != nil {
		return false, err
	}

	var exists bool
	err := s.db.QueryRowContext(ctx, `
		SELECT EXISTS(
			SELECT 1 FROM budget_alerts
			WHERE user_id = ? AND category_id = ? AND alert_type = ? AND created_at >= ?
		)`, userID, categoryID, string(alertType), since).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("failed to check budget alerts: %w", err)
	}
	return exists, nil
}

package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/ImAdityaa12/expensio-app/internal/common"
	"github.com/ImAdityaa12/expensio-app/internal/model"
)

const limitColumns = `id, user_id, category_id, limit_amount, period_type, start_date, created_at`

func scanLimit(row interface {
	Scan(dest ...any) error
}) (*model.CategoryLimit, error) {
	var lim model.CategoryLimit
	var amount, startDate, periodType string

	err := row.Scan(&lim.ID, &lim.UserID, &lim.CategoryID, &amount, &periodType, &startDate, &lim.CreatedAt)
	if err != nil {
		return nil, err
	}

	lim.PeriodType = model.PeriodType(periodType)
	lim.LimitAmount, err = amountFromDB(amount)
	if err != nil {
		return nil, fmt.Errorf("invalid limit amount %q: %w", amount, err)
	}
	lim.StartDate, err = time.ParseInLocation(dateLayout, startDate, time.Local)
	if err != nil {
		return nil, fmt.Errorf("invalid limit start date %q: %w", startDate, err)
	}
	return &lim, nil
}

// UpsertCategoryLimit creates a limit for a category or replaces the
// existing one. A category carries at most one limit per user.
func (s *SQLiteStorage) UpsertCategoryLimit(ctx context.Context, limit *model.CategoryLimit) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if err := validateLimit(limit); err != nil {
		return err
	}

	if limit.CreatedAt.IsZero() {
		limit.CreatedAt = time.Now()
	}
	if limit.StartDate.IsZero() {
		limit.StartDate = model.DateOnly(limit.CreatedAt)
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO category_limits (id, user_id, category_id, limit_amount, period_type, start_date, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(user_id, category_id) DO UPDATE SET
			limit_amount = excluded.limit_amount,
			period_type = excluded.period_type,
			start_date = excluded.start_date`,
		limit.ID, limit.UserID, limit.CategoryID, amountToDB(limit.LimitAmount),
		string(limit.PeriodType), limit.StartDate.Format(dateLayout), limit.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to upsert category limit: %w", err)
	}

	slog.Info("set category limit",
		"category_id", limit.CategoryID,
		"amount", amountToDB(limit.LimitAmount),
		"period", limit.PeriodType)
	return nil
}

// GetCategoryLimit returns the limit configured for a category, or
// common.ErrNotFound when the category has none.
func (s *SQLiteStorage) GetCategoryLimit(ctx context.Context, userID, categoryID string) (*model.CategoryLimit, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	if err := validateString(categoryID, "category_id"); err != nil {
		return nil, err
	}

	row := s.db.QueryRowContext(ctx, `
		SELECT `+limitColumns+`
		FROM category_limits
		WHERE user_id = ? AND category_id = ?`, userID, categoryID)

	lim, err := scanLimit(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, common.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query category limit: %w", err)
	}
	return lim, nil
}

// ListCategoryLimits returns all limits configured for a user.
func (s *SQLiteStorage) ListCategoryLimits(ctx context.Context, userID string) ([]model.CategoryLimit, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT `+limitColumns+`
		FROM category_limits
		WHERE user_id = ?
		ORDER BY created_at`, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to query category limits: %w", err)
	}
	defer rows.Close()

	var limits []model.CategoryLimit
	for rows.Next() {
		lim, scanErr := scanLimit(rows)
		if scanErr != nil {
			return nil, fmt.Errorf("failed to scan category limit: %w", scanErr)
		}
		limits = append(limits, *lim)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating category limits: %w", err)
	}
	return limits, nil
}

package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/ImAdityaa12/expensio-app/internal/common"
	"github.com/ImAdityaa12/expensio-app/internal/model"
)

const categoryColumns = `id, user_id, name, icon, color, is_default, created_at`

func scanCategory(row interface {
	Scan(dest ...any) error
}) (*model.Category, error) {
	var cat model.Category
	var icon, color sql.NullString

	err := row.Scan(&cat.ID, &cat.UserID, &cat.Name, &icon, &color, &cat.IsDefault, &cat.CreatedAt)
	if err != nil {
		return nil, err
	}

	cat.Icon = icon.String
	cat.Color = color.String
	return &cat, nil
}

// GetCategories returns all of a user's categories ordered by name.
func (s *SQLiteStorage) GetCategories(ctx context.Context, userID string) ([]model.Category, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT `+categoryColumns+`
		FROM categories
		WHERE user_id = ?
		ORDER BY name`, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to query categories: %w", err)
	}
	defer rows.Close()

	var categories []model.Category
	for rows.Next() {
		cat, scanErr := scanCategory(rows)
		if scanErr != nil {
			return nil, fmt.Errorf("failed to scan category: %w", scanErr)
		}
		categories = append(categories, *cat)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating categories: %w", err)
	}

	slog.Debug("retrieved categories", "user_id", userID, "count", len(categories))
	return categories, nil
}

// GetCategoryByID returns a category by id.
func (s *SQLiteStorage) GetCategoryByID(ctx context.Context, userID, id string) (*model.Category, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	if err := validateString(id, "id"); err != nil {
		return nil, err
	}

	row := s.db.QueryRowContext(ctx, `
		SELECT `+categoryColumns+`
		FROM categories
		WHERE user_id = ? AND id = ?`, userID, id)

	cat, err := scanCategory(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, common.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query category: %w", err)
	}
	return cat, nil
}

// GetCategoryByName returns a category by name, matching case-insensitively.
func (s *SQLiteStorage) GetCategoryByName(ctx context.Context, userID, name string) (*model.Category, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	if err := validateString(name, "name"); err != nil {
		return nil, err
	}

	row := s.db.QueryRowContext(ctx, `
		SELECT `+categoryColumns+`
		FROM categories
		WHERE user_id = ? AND name = ? COLLATE NOCASE
		LIMIT 1`, userID, name)

	cat, err := scanCategory(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, common.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query category: %w", err)
	}
	return cat, nil
}

// CreateCategory creates a new category. Creating a category with a name
// the user already has returns common.ErrDuplicateEntry.
func (s *SQLiteStorage) CreateCategory(ctx context.Context, category *model.Category) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if err := validateCategory(category); err != nil {
		return err
	}

	if category.CreatedAt.IsZero() {
		category.CreatedAt = time.Now()
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO categories (id, user_id, name, icon, color, is_default, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)`,
		category.ID, category.UserID, category.Name, nullable(category.Icon),
		nullable(category.Color), category.IsDefault, category.CreatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: category %q", common.ErrDuplicateEntry, category.Name)
		}
		return fmt.Errorf("failed to create category: %w", err)
	}

	slog.Info("created category", "name", category.Name, "user_id", category.UserID)
	return nil
}

// isUniqueViolation reports whether err is a SQLite unique constraint error.
func isUniqueViolation(err error) bool {
	return err != nil && strings.Contains(err.Error(), "UNIQUE constraint failed")
}

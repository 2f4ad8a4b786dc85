package storage

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/ImAdityaa12/expensio-app/internal/model"
)

// GetMerchantMappings returns all merchant keyword mappings for a user.
func (s *SQLiteStorage) GetMerchantMappings(ctx context.Context, userID string) ([]model.MerchantCategoryMap, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT id, user_id, merchant_keyword, category_id, created_at
		FROM merchant_category_map
		WHERE user_id = ?
		ORDER BY merchant_keyword`, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to query merchant mappings: %w", err)
	}
	defer rows.Close()

	var mappings []model.MerchantCategoryMap
	for rows.Next() {
		var m model.MerchantCategoryMap
		if scanErr := rows.Scan(&m.ID, &m.UserID, &m.MerchantKeyword, &m.CategoryID, &m.CreatedAt); scanErr != nil {
			return nil, fmt.Errorf("failed to scan merchant mapping: %w", scanErr)
		}
		mappings = append(mappings, m)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating merchant mappings: %w", err)
	}
	return mappings, nil
}

// SaveMerchantMapping inserts or updates the category a merchant keyword maps to.
func (s *SQLiteStorage) SaveMerchantMapping(ctx context.Context, mapping *model.MerchantCategoryMap) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if err := validateString(mapping.MerchantKeyword, "merchant_keyword"); err != nil {
		return err
	}
	if err := validateString(mapping.CategoryID, "category_id"); err != nil {
		return err
	}

	if mapping.CreatedAt.IsZero() {
		mapping.CreatedAt = time.Now()
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO merchant_category_map (id, user_id, merchant_keyword, category_id, created_at)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT(user_id, merchant_keyword) DO UPDATE SET category_id = excluded.category_id`,
		mapping.ID, mapping.UserID, mapping.MerchantKeyword, mapping.CategoryID, mapping.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to save merchant mapping: %w", err)
	}

	slog.Debug("saved merchant mapping",
		"keyword", mapping.MerchantKeyword,
		"category_id", mapping.CategoryID)
	return nil
}

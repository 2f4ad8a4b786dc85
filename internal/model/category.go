package model

import (
	"time"

	"github.com/google/uuid"
)

// FallbackCategoryName is the canonical catch-all category. Every user is
// expected to have a category with this name before ingestion can complete
// gracefully; without it transactions may persist uncategorized.
const FallbackCategoryName = "Others"

// Category is a user-scoped spending category.
type Category struct {
	CreatedAt time.Time
	ID        string
	UserID    string
	Name      string
	Icon      string
	Color     string
	IsDefault bool
}

// DefaultCategories returns the category set seeded for a new user.
func DefaultCategories(userID string) []Category {
	defaults := []struct {
		name  string
		icon  string
		color string
	}{
		{"Food", "utensils", "#F97316"},
		{"Transport", "car", "#3B82F6"},
		{"Shopping", "shopping-bag", "#EC4899"},
		{"Bills", "file-text", "#EAB308"},
		{"Entertainment", "film", "#8B5CF6"},
		{"Healthcare", "heart-pulse", "#EF4444"},
		{"Travel", "plane", "#14B8A6"},
		{FallbackCategoryName, "circle-ellipsis", "#6B7280"},
	}

	categories := make([]Category, 0, len(defaults))
	for _, d := range defaults {
		categories = append(categories, Category{
			ID:        uuid.New().String(),
			UserID:    userID,
			Name:      d.name,
			Icon:      d.icon,
			Color:     d.color,
			IsDefault: d.name == FallbackCategoryName,
		})
	}
	return categories
}

// MerchantCategoryMap is a user-scoped override mapping a merchant keyword
// to a category. It is consulted before falling back to Others and grows as
// users correct miscategorizations.
type MerchantCategoryMap struct {
	CreatedAt       time.Time
	ID              string
	UserID          string
	MerchantKeyword string
	CategoryID      string
}

// Package resolver maps free-text category suggestions and merchant labels
// onto a user's actual category records.
package resolver

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"github.com/ImAdityaa12/expensio-app/internal/common"
	"github.com/ImAdityaa12/expensio-app/internal/model"
	"github.com/ImAdityaa12/expensio-app/internal/service"
)

// keywordExpansions maps lowercased category names to the vocabulary a
// free-text suggestion may use for them. Suggestions match if they contain,
// are contained by, or equal any expansion keyword.
var keywordExpansions = map[string][]string{
	"food":          {"food", "restaurant", "dining", "cafe", "eatery", "meal", "grocery", "groceries"},
	"transport":     {"transport", "transportation", "travel", "taxi", "uber", "ola", "fuel", "petrol", "gas"},
	"shopping":      {"shopping", "shop", "store", "retail", "purchase", "buy"},
	"bills":         {"bills", "bill", "utility", "utilities", "electricity", "water", "internet", "phone", "mobile"},
	"entertainment": {"entertainment", "movie", "cinema", "game", "gaming", "music", "streaming"},
	"healthcare":    {"healthcare", "health", "medical", "hospital", "doctor", "pharmacy", "medicine"},
	"travel":        {"travel", "trip", "vacation", "hotel", "flight", "booking", "airline"},
	"others":        {"others", "other", "miscellaneous", "misc", "general"},
}

// Resolver resolves category hints through a tiered strategy: exact name
// match, keyword-expansion fuzzy match, merchant-keyword lookup, then the
// "Others" fallback.
type Resolver struct {
	store  service.Storage
	logger *slog.Logger
}

// New creates a category resolver backed by the given store.
func New(store service.Storage, logger *slog.Logger) *Resolver {
	if logger == nil {
		logger = slog.Default()
	}
	return &Resolver{store: store, logger: logger}
}

// Resolve returns the category id for a suggestion and merchant label, or
// an empty string when nothing can be determined (setup incomplete). It
// never fails: store errors are logged and treated as a tier miss so that
// ingestion proceeds with an uncategorized transaction at worst.
func (r *Resolver) Resolve(ctx context.Context, userID, suggestedCategory, merchantLabel string) string {
	if suggestedCategory != "" {
		if id := r.matchByName(ctx, userID, suggestedCategory); id != "" {
			return id
		}
		if id := r.matchByKeywords(ctx, userID, suggestedCategory); id != "" {
			return id
		}
	}

	if merchantLabel != "" {
		if id := r.matchByMerchant(ctx, userID, merchantLabel); id != "" {
			return id
		}
	}

	return r.fallback(ctx, userID)
}

// matchByName performs a case-insensitive exact match on category names.
func (r *Resolver) matchByName(ctx context.Context, userID, suggested string) string {
	cat, err := r.store.GetCategoryByName(ctx, userID, strings.TrimSpace(suggested))
	if errors.Is(err, common.ErrNotFound) {
		return ""
	}
	if err != nil {
		r.logger.Warn("category name lookup failed", "suggestion", suggested, "error", err)
		return ""
	}

	r.logger.Debug("exact category match", "suggestion", suggested, "category", cat.Name)
	return cat.ID
}

// matchByKeywords consults the static expansion table against every user
// category.
func (r *Resolver) matchByKeywords(ctx context.Context, userID, suggested string) string {
	categories, err := r.store.GetCategories(ctx, userID)
	if err != nil {
		r.logger.Warn("category list lookup failed", "error", err)
		return ""
	}

	lowerSuggested := strings.ToLower(strings.TrimSpace(suggested))

	for _, cat := range categories {
		nameLower := strings.ToLower(strings.TrimSpace(cat.Name))
		if nameLower == lowerSuggested {
			return cat.ID
		}

		keywords, ok := keywordExpansions[nameLower]
		if !ok {
			keywords = []string{nameLower}
		}

		for _, keyword := range keywords {
			if strings.Contains(lowerSuggested, keyword) || strings.Contains(keyword, lowerSuggested) {
				r.logger.Debug("fuzzy category match",
					"suggestion", suggested,
					"category", cat.Name,
					"keyword", keyword)
				return cat.ID
			}
		}
	}

	return ""
}

// matchByMerchant checks the user's merchant keyword overrides with a
// case-insensitive substring match in both directions.
func (r *Resolver) matchByMerchant(ctx context.Context, userID, merchantLabel string) string {
	mappings, err := r.store.GetMerchantMappings(ctx, userID)
	if err != nil {
		r.logger.Warn("merchant mapping lookup failed", "error", err)
		return ""
	}

	lowerMerchant := strings.ToLower(strings.TrimSpace(merchantLabel))

	for _, mapping := range mappings {
		keyword := strings.ToLower(strings.TrimSpace(mapping.MerchantKeyword))
		if keyword == "" {
			continue
		}
		if strings.Contains(lowerMerchant, keyword) || strings.Contains(keyword, lowerMerchant) {
			r.logger.Debug("merchant keyword match",
				"merchant", merchantLabel,
				"keyword", mapping.MerchantKeyword)
			return mapping.CategoryID
		}
	}

	return ""
}

// fallback returns the id of the user's "Others" category, if present.
func (r *Resolver) fallback(ctx context.Context, userID string) string {
	cat, err := r.store.GetCategoryByName(ctx, userID, model.FallbackCategoryName)
	if err != nil {
		r.logger.Warn("fallback category unavailable", "user_id", userID, "error", err)
		return ""
	}
	return cat.ID
}

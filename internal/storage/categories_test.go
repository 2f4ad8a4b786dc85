package storage

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ImAdityaa12/expensio-app/internal/common"
	"github.com/ImAdityaa12/expensio-app/internal/model"
)

func TestCreateCategory_DefaultsAndDuplicates(t *testing.T) {
	store := createTestStorage(t)
	ctx := context.Background()

	cats := seedCategories(t, store)
	require.Len(t, cats, 8)

	got, err := store.GetCategories(ctx, testUserID)
	require.NoError(t, err)
	assert.Len(t, got, 8)

	// Re-seeding the same names must fail with the duplicate sentinel.
	dup := &model.Category{
		ID:     uuid.New().String(),
		UserID: testUserID,
		Name:   "Food",
	}
	assert.ErrorIs(t, store.CreateCategory(ctx, dup), common.ErrDuplicateEntry)

	// Case variants collide too.
	dup.ID = uuid.New().String()
	dup.Name = "FOOD"
	assert.ErrorIs(t, store.CreateCategory(ctx, dup), common.ErrDuplicateEntry)

	// The same name under a different user is fine.
	other := &model.Category{
		ID:     uuid.New().String(),
		UserID: "someone-else",
		Name:   "Food",
	}
	assert.NoError(t, store.CreateCategory(ctx, other))
}

func TestGetCategoryByName_CaseInsensitive(t *testing.T) {
	store := createTestStorage(t)
	seedCategories(t, store)
	ctx := context.Background()

	for _, name := range []string{"Food", "food", "FOOD", "fOoD"} {
		cat, err := store.GetCategoryByName(ctx, testUserID, name)
		require.NoError(t, err, "lookup %q", name)
		assert.Equal(t, "Food", cat.Name)
	}

	_, err := store.GetCategoryByName(ctx, testUserID, "Groceries")
	assert.ErrorIs(t, err, common.ErrNotFound)
}

func TestGetCategoryByID(t *testing.T) {
	store := createTestStorage(t)
	cats := seedCategories(t, store)
	ctx := context.Background()

	cat, err := store.GetCategoryByID(ctx, testUserID, cats["Others"])
	require.NoError(t, err)
	assert.Equal(t, model.FallbackCategoryName, cat.Name)
	assert.True(t, cat.IsDefault)

	_, err = store.GetCategoryByID(ctx, testUserID, uuid.New().String())
	assert.ErrorIs(t, err, common.ErrNotFound)
}

func TestMerchantMappings(t *testing.T) {
	store := createTestStorage(t)
	cats := seedCategories(t, store)
	ctx := context.Background()

	mapping := &model.MerchantCategoryMap{
		ID:              uuid.New().String(),
		UserID:          testUserID,
		MerchantKeyword: "irctc",
		CategoryID:      cats["Travel"],
	}
	require.NoError(t, store.SaveMerchantMapping(ctx, mapping))

	// Re-mapping the same keyword replaces the category.
	mapping.ID = uuid.New().String()
	mapping.CategoryID = cats["Transport"]
	require.NoError(t, store.SaveMerchantMapping(ctx, mapping))

	got, err := store.GetMerchantMappings(ctx, testUserID)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "irctc", got[0].MerchantKeyword)
	assert.Equal(t, cats["Transport"], got[0].CategoryID)
}

func TestCategoryLimits(t *testing.T) {
	store := createTestStorage(t)
	cats := seedCategories(t, store)
	ctx := context.Background()

	limit := &model.CategoryLimit{
		ID:          uuid.New().String(),
		UserID:      testUserID,
		CategoryID:  cats["Food"],
		LimitAmount: decimal.NewFromInt(5000),
		PeriodType:  model.PeriodMonthly,
	}
	require.NoError(t, store.UpsertCategoryLimit(ctx, limit))

	got, err := store.GetCategoryLimit(ctx, testUserID, cats["Food"])
	require.NoError(t, err)
	assert.True(t, got.LimitAmount.Equal(decimal.NewFromInt(5000)))
	assert.Equal(t, model.PeriodMonthly, got.PeriodType)

	// Upserting again replaces amount and period for the same category.
	limit.ID = uuid.New().String()
	limit.LimitAmount = decimal.NewFromInt(6000)
	limit.PeriodType = model.PeriodWeekly
	require.NoError(t, store.UpsertCategoryLimit(ctx, limit))

	got, err = store.GetCategoryLimit(ctx, testUserID, cats["Food"])
	require.NoError(t, err)
	assert.True(t, got.LimitAmount.Equal(decimal.NewFromInt(6000)))
	assert.Equal(t, model.PeriodWeekly, got.PeriodType)

	all, err := store.ListCategoryLimits(ctx, testUserID)
	require.NoError(t, err)
	assert.Len(t, all, 1)

	_, err = store.GetCategoryLimit(ctx, testUserID, cats["Travel"])
	assert.ErrorIs(t, err, common.ErrNotFound)

	invalid := &model.CategoryLimit{
		ID:          uuid.New().String(),
		UserID:      testUserID,
		CategoryID:  cats["Food"],
		LimitAmount: decimal.NewFromInt(100),
		PeriodType:  "YEARLY",
	}
	assert.Error(t, store.UpsertCategoryLimit(ctx, invalid))
}

func TestBudgetAlerts(t *testing.T) {
	store := createTestStorage(t)
	cats := seedCategories(t, store)
	ctx := context.Background()

	periodStart := time.Date(2026, 6, 1, 0, 0, 0, 0, time.Local)
	alert := &model.BudgetAlert{
		ID:         uuid.New().String(),
		UserID:     testUserID,
		CategoryID: cats["Food"],
		AlertType:  model.AlertWarning,
		Message:    "Food spending reached 4500.00 of 5000.00",
		CreatedAt:  periodStart.AddDate(0, 0, 10),
	}
	require.NoError(t, store.SaveBudgetAlert(ctx, alert))

	fired, err := store.HasBudgetAlertSince(ctx, testUserID, cats["Food"], model.AlertWarning, periodStart)
	require.NoError(t, err)
	assert.True(t, fired)

	// A critical alert has not fired yet for this category.
	fired, err = store.HasBudgetAlertSince(ctx, testUserID, cats["Food"], model.AlertCritical, periodStart)
	require.NoError(t, err)
	assert.False(t, fired)

	// A new period starts fresh.
	nextPeriod := periodStart.AddDate(0, 1, 0)
	fired, err = store.HasBudgetAlertSince(ctx, testUserID, cats["Food"], model.AlertWarning, nextPeriod)
	require.NoError(t, err)
	assert.False(t, fired)
}

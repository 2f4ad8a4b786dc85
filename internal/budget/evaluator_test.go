package budget

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ImAdityaa12/expensio-app/internal/model"
	"github.com/ImAdityaa12/expensio-app/internal/testutil"
)

// recordingNotifier captures notifications; optionally fails every call.
type recordingNotifier struct {
	mu     sync.Mutex
	titles []string
	bodies []string
	fail   bool
}

func (n *recordingNotifier) Notify(_ context.Context, title, body string) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	if n.fail {
		return errors.New("delivery failed")
	}
	n.titles = append(n.titles, title)
	n.bodies = append(n.bodies, body)
	return nil
}

func (n *recordingNotifier) count() int {
	n.mu.Lock()
	defer n.mu.Unlock()
	return len(n.titles)
}

func setupEvaluator(t *testing.T) (*Evaluator, *recordingNotifier, *testutil.TestDB) {
	t.Helper()
	db := testutil.SetupTestDB(t)
	notifier := &recordingNotifier{}
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	ev := NewEvaluator(db.Storage, notifier, logger)
	ev.now = func() time.Time { return time.Date(2026, 6, 15, 12, 0, 0, 0, time.Local) }
	return ev, notifier, db
}

func addFoodDebit(t *testing.T, db *testutil.TestDB, amount string, date time.Time) {
	t.Helper()
	err := db.Storage.SaveTransaction(context.Background(), &model.Transaction{
		ID:              uuid.New().String(),
		UserID:          testutil.TestUserID,
		Amount:          decimal.RequireFromString(amount),
		Type:            model.TypeDebit,
		Source:          model.SourceSMS,
		MerchantName:    "Swiggy",
		CategoryID:      db.CategoryID("Food"),
		TransactionDate: date,
	})
	require.NoError(t, err)
}

func setFoodLimit(t *testing.T, db *testutil.TestDB, amount string, period model.PeriodType) {
	t.Helper()
	err := db.Storage.UpsertCategoryLimit(context.Background(), &model.CategoryLimit{
		ID:          uuid.New().String(),
		UserID:      testutil.TestUserID,
		CategoryID:  db.CategoryID("Food"),
		LimitAmount: decimal.RequireFromString(amount),
		PeriodType:  period,
	})
	require.NoError(t, err)
}

func TestEvaluate_NoLimitIsNoOp(t *testing.T) {
	ev, notifier, db := setupEvaluator(t)

	addFoodDebit(t, db, "900.00", time.Date(2026, 6, 10, 0, 0, 0, 0, time.Local))
	require.NoError(t, ev.Evaluate(context.Background(), testutil.TestUserID, db.CategoryID("Food")))
	assert.Zero(t, notifier.count())
}

func TestEvaluate_LimitReached(t *testing.T) {
	ev, notifier, db := setupEvaluator(t)
	ctx := context.Background()

	setFoodLimit(t, db, "1000", model.PeriodMonthly)
	addFoodDebit(t, db, "950.00", time.Date(2026, 6, 5, 0, 0, 0, 0, time.Local))
	addFoodDebit(t, db, "100.00", time.Date(2026, 6, 14, 0, 0, 0, 0, time.Local))

	require.NoError(t, ev.Evaluate(ctx, testutil.TestUserID, db.CategoryID("Food")))

	require.Equal(t, 1, notifier.count())
	assert.Equal(t, "Limit Reached", notifier.titles[0])
	assert.Contains(t, notifier.bodies[0], "Food")
	assert.Contains(t, notifier.bodies[0], "1050.00")
	assert.Contains(t, notifier.bodies[0], "1000.00")
}

func TestEvaluate_WarningAt90Percent(t *testing.T) {
	ev, notifier, db := setupEvaluator(t)
	ctx := context.Background()

	setFoodLimit(t, db, "1000", model.PeriodMonthly)
	addFoodDebit(t, db, "950.00", time.Date(2026, 6, 5, 0, 0, 0, 0, time.Local))

	require.NoError(t, ev.Evaluate(ctx, testutil.TestUserID, db.CategoryID("Food")))

	require.Equal(t, 1, notifier.count())
	assert.Equal(t, "Budget Warning", notifier.titles[0])
}

func TestEvaluate_UnderThresholdIsSilent(t *testing.T) {
	ev, notifier, db := setupEvaluator(t)
	ctx := context.Background()

	setFoodLimit(t, db, "1000", model.PeriodMonthly)
	addFoodDebit(t, db, "850.00", time.Date(2026, 6, 5, 0, 0, 0, 0, time.Local))

	require.NoError(t, ev.Evaluate(ctx, testutil.TestUserID, db.CategoryID("Food")))
	assert.Zero(t, notifier.count())

	// Exactly at the 90% boundary stays silent; the warning requires
	// strictly more than 90%.
	addFoodDebit(t, db, "50.00", time.Date(2026, 6, 6, 0, 0, 0, 0, time.Local))
	require.NoError(t, ev.Evaluate(ctx, testutil.TestUserID, db.CategoryID("Food")))
	assert.Zero(t, notifier.count())
}

func TestEvaluate_ExactlyAtLimitIsWarning(t *testing.T) {
	ev, notifier, db := setupEvaluator(t)
	ctx := context.Background()

	setFoodLimit(t, db, "1000", model.PeriodMonthly)
	addFoodDebit(t, db, "1000.00", time.Date(2026, 6, 5, 0, 0, 0, 0, time.Local))

	require.NoError(t, ev.Evaluate(ctx, testutil.TestUserID, db.CategoryID("Food")))

	require.Equal(t, 1, notifier.count())
	assert.Equal(t, "Budget Warning", notifier.titles[0])
}

func TestEvaluate_AlertSuppressionWithinPeriod(t *testing.T) {
	ev, notifier, db := setupEvaluator(t)
	ctx := context.Background()

	setFoodLimit(t, db, "1000", model.PeriodMonthly)
	addFoodDebit(t, db, "1100.00", time.Date(2026, 6, 5, 0, 0, 0, 0, time.Local))

	// Repeated evaluation in the same period emits at most one critical
	// alert.
	for i := 0; i < 3; i++ {
		require.NoError(t, ev.Evaluate(ctx, testutil.TestUserID, db.CategoryID("Food")))
	}
	assert.Equal(t, 1, notifier.count())
}

func TestEvaluate_WarningThenCriticalBothFire(t *testing.T) {
	ev, notifier, db := setupEvaluator(t)
	ctx := context.Background()

	setFoodLimit(t, db, "1000", model.PeriodMonthly)

	addFoodDebit(t, db, "950.00", time.Date(2026, 6, 5, 0, 0, 0, 0, time.Local))
	require.NoError(t, ev.Evaluate(ctx, testutil.TestUserID, db.CategoryID("Food")))

	addFoodDebit(t, db, "200.00", time.Date(2026, 6, 10, 0, 0, 0, 0, time.Local))
	require.NoError(t, ev.Evaluate(ctx, testutil.TestUserID, db.CategoryID("Food")))

	require.Equal(t, 2, notifier.count())
	assert.Equal(t, "Budget Warning", notifier.titles[0])
	assert.Equal(t, "Limit Reached", notifier.titles[1])
}

func TestEvaluate_PeriodScoping(t *testing.T) {
	ev, notifier, db := setupEvaluator(t)
	ctx := context.Background()

	setFoodLimit(t, db, "1000", model.PeriodMonthly)

	// Spending from the previous month does not count.
	addFoodDebit(t, db, "2000.00", time.Date(2026, 5, 28, 0, 0, 0, 0, time.Local))
	addFoodDebit(t, db, "100.00", time.Date(2026, 6, 5, 0, 0, 0, 0, time.Local))

	require.NoError(t, ev.Evaluate(ctx, testutil.TestUserID, db.CategoryID("Food")))
	assert.Zero(t, notifier.count())
}

func TestEvaluate_RecomputationCorrectness(t *testing.T) {
	ev, notifier, db := setupEvaluator(t)
	ctx := context.Background()

	setFoodLimit(t, db, "100", model.PeriodMonthly)

	// N small debits; evaluation fires on the exact arithmetic sum, no
	// matter how many times it runs.
	for i := 0; i < 10; i++ {
		addFoodDebit(t, db, "10.01", time.Date(2026, 6, 1+i, 0, 0, 0, 0, time.Local))
	}

	for i := 0; i < 5; i++ {
		require.NoError(t, ev.Evaluate(ctx, testutil.TestUserID, db.CategoryID("Food")))
	}

	// 10 * 10.01 = 100.10 > 100, critical, exactly once.
	require.Equal(t, 1, notifier.count())
	assert.Equal(t, "Limit Reached", notifier.titles[0])
	assert.Contains(t, notifier.bodies[0], "100.10")
}

func TestEvaluate_NotifierFailureIsSwallowed(t *testing.T) {
	ev, notifier, db := setupEvaluator(t)
	notifier.fail = true
	ctx := context.Background()

	setFoodLimit(t, db, "1000", model.PeriodMonthly)
	addFoodDebit(t, db, "1100.00", time.Date(2026, 6, 5, 0, 0, 0, 0, time.Local))

	// Delivery failure must not surface as an evaluation error, and the
	// alert row still suppresses repeats.
	require.NoError(t, ev.Evaluate(ctx, testutil.TestUserID, db.CategoryID("Food")))

	fired, err := db.Storage.HasBudgetAlertSince(ctx, testutil.TestUserID, db.CategoryID("Food"),
		model.AlertCritical, time.Date(2026, 6, 1, 0, 0, 0, 0, time.Local))
	require.NoError(t, err)
	assert.True(t, fired)
}

func TestEvaluate_WeeklyPeriodStartsMonday(t *testing.T) {
	ev, notifier, db := setupEvaluator(t)
	ctx := context.Background()

	// now is Monday 2026-06-15; the weekly period starts that same day.
	setFoodLimit(t, db, "500", model.PeriodWeekly)

	addFoodDebit(t, db, "600.00", time.Date(2026, 6, 14, 0, 0, 0, 0, time.Local)) // Sunday, previous week
	require.NoError(t, ev.Evaluate(ctx, testutil.TestUserID, db.CategoryID("Food")))
	assert.Zero(t, notifier.count())

	addFoodDebit(t, db, "600.00", time.Date(2026, 6, 15, 0, 0, 0, 0, time.Local))
	require.NoError(t, ev.Evaluate(ctx, testutil.TestUserID, db.CategoryID("Food")))
	assert.Equal(t, 1, notifier.count())
}

func TestEvaluate_DailyPeriodExcludesYesterday(t *testing.T) {
	ev, notifier, db := setupEvaluator(t)
	ctx := context.Background()

	setFoodLimit(t, db, "200", model.PeriodDaily)

	addFoodDebit(t, db, "300.00", time.Date(2026, 6, 14, 0, 0, 0, 0, time.Local)) // yesterday
	require.NoError(t, ev.Evaluate(ctx, testutil.TestUserID, db.CategoryID("Food")))
	assert.Zero(t, notifier.count())

	addFoodDebit(t, db, "250.00", time.Date(2026, 6, 15, 0, 0, 0, 0, time.Local))
	require.NoError(t, ev.Evaluate(ctx, testutil.TestUserID, db.CategoryID("Food")))
	assert.Equal(t, 1, notifier.count())
}

// Package testutil provides shared helpers for expensio tests. It offers
// isolated in-memory databases seeded with the default category set.
package testutil

import (
	"context"
	"testing"

	"github.com/ImAdityaa12/expensio-app/internal/model"
	"github.com/ImAdityaa12/expensio-app/internal/service"
	"github.com/ImAdityaa12/expensio-app/internal/storage"
)

// TestUserID is the user every test database is seeded for.
const TestUserID = "test-user"

// TestDB wraps a migrated in-memory store with its seeded categories.
type TestDB struct {
	Storage    service.Storage
	Categories map[string]model.Category
	t          *testing.T
}

// SetupTestDB creates an in-memory SQLite database, runs migrations, and
// seeds the default categories for TestUserID. Cleanup is registered
// automatically.
func SetupTestDB(t *testing.T) *TestDB {
	t.Helper()

	store, err := storage.NewSQLiteStorage(":memory:")
	if err != nil {
		t.Fatalf("failed to create test database: %v", err)
	}

	ctx := context.Background()
	if err := store.Migrate(ctx); err != nil {
		t.Fatalf("failed to run migrations: %v", err)
	}

	byName := make(map[string]model.Category)
	for _, cat := range model.DefaultCategories(TestUserID) {
		if err := store.CreateCategory(ctx, &cat); err != nil {
			t.Fatalf("failed to seed category %q: %v", cat.Name, err)
		}
		byName[cat.Name] = cat
	}

	t.Cleanup(func() {
		if closeErr := store.Close(); closeErr != nil {
			t.Errorf("failed to close test database: %v", closeErr)
		}
	})

	return &TestDB{Storage: store, Categories: byName, t: t}
}

// CategoryID returns the id of a seeded category, failing the test if the
// name is unknown.
func (db *TestDB) CategoryID(name string) string {
	db.t.Helper()
	cat, ok := db.Categories[name]
	if !ok {
		db.t.Fatalf("no seeded category named %q", name)
	}
	return cat.ID
}

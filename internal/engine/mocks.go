package engine

import (
	"context"
	"sync"

	"github.com/ImAdityaa12/expensio-app/internal/model"
)

// MockExtractor is a configurable Extractor for tests.
type MockExtractor struct {
	mu     sync.Mutex
	Result *model.ExtractedTransaction
	Err    error
	Calls  int
}

// Extract returns the configured result or error.
func (m *MockExtractor) Extract(_ context.Context, _ model.RawMessage) (*model.ExtractedTransaction, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Calls++
	if m.Err != nil {
		return nil, m.Err
	}
	if m.Result == nil {
		return nil, nil
	}
	result := *m.Result
	return &result, nil
}

// CallCount returns the number of Extract invocations.
func (m *MockExtractor) CallCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.Calls
}

// MockBudgetEvaluator records Evaluate invocations.
type MockBudgetEvaluator struct {
	mu          sync.Mutex
	Err         error
	CategoryIDs []string
}

// Evaluate records the call and returns the configured error.
func (m *MockBudgetEvaluator) Evaluate(_ context.Context, _, categoryID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.CategoryIDs = append(m.CategoryIDs, categoryID)
	return m.Err
}

// Evaluations returns the category ids evaluated so far.
func (m *MockBudgetEvaluator) Evaluations() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]string(nil), m.CategoryIDs...)
}

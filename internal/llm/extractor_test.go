package llm

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ImAdityaa12/expensio-app/internal/model"
	"github.com/ImAdityaa12/expensio-app/internal/service"
)

// stubClient returns canned responses and counts calls.
type stubClient struct {
	resp  ExtractionResponse
	err   error
	calls int
}

func (s *stubClient) ExtractTransaction(_ context.Context, _ string) (ExtractionResponse, error) {
	s.calls++
	if s.err != nil {
		return ExtractionResponse{}, s.err
	}
	return s.resp, nil
}

func newTestExtractor(client Client) *SemanticExtractor {
	return &SemanticExtractor{
		client:      client,
		cache:       newExtractionCache(time.Minute),
		rateLimiter: newRateLimiter(600),
		logger:      testLogger(),
		retryOpts: service.RetryOptions{
			MaxAttempts:  2,
			InitialDelay: time.Millisecond,
			MaxDelay:     5 * time.Millisecond,
			Multiplier:   2.0,
		},
	}
}

func transactionMsg() model.RawMessage {
	return model.RawMessage{
		Sender:     "HDFCBK",
		Body:       "Rs.450.00 debited at Swiggy on 18-Feb-26",
		ReceivedAt: time.Date(2026, 2, 18, 10, 0, 0, 0, time.Local),
	}
}

func TestSemanticExtractor_Success(t *testing.T) {
	client := &stubClient{resp: ExtractionResponse{
		IsTransaction:   true,
		Amount:          json.Number("450"),
		Merchant:        "Swiggy",
		TransactionType: "DEBIT",
		Category:        "Food",
	}}
	e := newTestExtractor(client)
	defer e.Close()

	got, err := e.Extract(context.Background(), transactionMsg())
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "Swiggy", got.MerchantLabel)
	assert.Equal(t, "Food", got.SuggestedCategory)
	assert.InDelta(t, SemanticConfidence, got.Confidence, 0.0001)
}

func TestSemanticExtractor_CachesResults(t *testing.T) {
	client := &stubClient{resp: ExtractionResponse{
		IsTransaction:   true,
		Amount:          json.Number("450"),
		Merchant:        "Swiggy",
		TransactionType: "DEBIT",
	}}
	e := newTestExtractor(client)
	defer e.Close()
	ctx := context.Background()

	_, err := e.Extract(ctx, transactionMsg())
	require.NoError(t, err)
	_, err = e.Extract(ctx, transactionMsg())
	require.NoError(t, err)

	assert.Equal(t, 1, client.calls, "second extraction should hit the cache")
}

func TestSemanticExtractor_CachesNonTransactions(t *testing.T) {
	client := &stubClient{resp: ExtractionResponse{IsTransaction: false}}
	e := newTestExtractor(client)
	defer e.Close()
	ctx := context.Background()

	msg := model.RawMessage{Sender: "VM-PROMO", Body: "Big sale today!", ReceivedAt: time.Now()}

	got, err := e.Extract(ctx, msg)
	require.NoError(t, err)
	assert.Nil(t, got)

	got, err = e.Extract(ctx, msg)
	require.NoError(t, err)
	assert.Nil(t, got)
	assert.Equal(t, 1, client.calls)
}

func TestSemanticExtractor_RetriesThenFails(t *testing.T) {
	client := &stubClient{err: errors.New("upstream unavailable")}
	e := newTestExtractor(client)
	defer e.Close()

	_, err := e.Extract(context.Background(), transactionMsg())
	require.Error(t, err)
	assert.Equal(t, 2, client.calls, "should retry up to MaxAttempts")
}

func TestSemanticExtractor_InvalidResponseIsError(t *testing.T) {
	client := &stubClient{resp: ExtractionResponse{
		IsTransaction:   true,
		Amount:          json.Number("-1"),
		TransactionType: "DEBIT",
	}}
	e := newTestExtractor(client)
	defer e.Close()

	_, err := e.Extract(context.Background(), transactionMsg())
	assert.Error(t, err)
}

// Package llm integrates external language models for semantic extraction
// of transaction fields from bank notification text.
package llm

import (
	"context"
	"encoding/json"
	"time"
)

// Client defines the interface for LLM providers.
type Client interface {
	// ExtractTransaction sends the message text to the provider and
	// returns its raw structured response. Providers return the model
	// output as delivered; defensive parsing happens in one place.
	ExtractTransaction(ctx context.Context, messageText string) (ExtractionResponse, error)
}

// ExtractionResponse is the provider's raw answer before validation.
// Field types are deliberately loose; parseExtraction validates them.
type ExtractionResponse struct {
	IsTransaction   bool        `json:"isTransaction"`
	Amount          json.Number `json:"amount"`
	Merchant        string      `json:"merchant"`
	TransactionType string      `json:"transactionType"`
	Category        string      `json:"category"`
	Date            string      `json:"date"`
}

// Config holds configuration for the semantic extractor.
type Config struct {
	Provider    string
	APIKey      string
	Model       string
	MaxRetries  int
	RetryDelay  time.Duration
	CacheTTL    time.Duration
	RateLimit   int
	Temperature float64
	MaxTokens   int
}

package llm

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/ImAdityaa12/expensio-app/internal/common"
	"github.com/ImAdityaa12/expensio-app/internal/model"
	"github.com/ImAdityaa12/expensio-app/internal/service"
)

// SemanticExtractor classifies and extracts transaction fields from free
// text via an LLM provider, wrapping the raw client with caching, rate
// limiting and retries.
type SemanticExtractor struct {
	client      Client
	cache       *extractionCache
	rateLimiter *rateLimiter
	logger      *slog.Logger
	retryOpts   service.RetryOptions
}

// NewSemanticExtractor creates a semantic extractor for the configured
// provider.
func NewSemanticExtractor(ctx context.Context, cfg Config, logger *slog.Logger) (*SemanticExtractor, error) {
	client, err := NewClient(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to create LLM client: %w", err)
	}

	if logger == nil {
		logger = slog.Default()
	}

	retryOpts := service.RetryOptions{
		MaxAttempts:  cfg.MaxRetries,
		InitialDelay: cfg.RetryDelay,
		MaxDelay:     30 * time.Second,
		Multiplier:   2.0,
	}
	if retryOpts.MaxAttempts == 0 {
		retryOpts.MaxAttempts = 3
	}
	if retryOpts.InitialDelay == 0 {
		retryOpts.InitialDelay = time.Second
	}

	return &SemanticExtractor{
		client:      client,
		cache:       newExtractionCache(cfg.CacheTTL),
		rateLimiter: newRateLimiter(cfg.RateLimit),
		logger:      logger,
		retryOpts:   retryOpts,
	}, nil
}

// Extract classifies one message. A nil result with a nil error means the
// message is not a transaction. Provider failures and malformed responses
// surface as errors; the caller decides whether to fall back.
func (e *SemanticExtractor) Extract(ctx context.Context, msg model.RawMessage) (*model.ExtractedTransaction, error) {
	key := cacheKey(msg.Body)
	if result, found := e.cache.get(key); found {
		e.logger.Debug("extraction cache hit", "sender", msg.Sender)
		return result, nil
	}

	if err := e.rateLimiter.wait(ctx); err != nil {
		return nil, err
	}

	var resp ExtractionResponse
	err := common.WithRetry(ctx, func() error {
		var callErr error
		resp, callErr = e.client.ExtractTransaction(ctx, msg.Body)
		return callErr
	}, e.retryOpts)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", common.ErrExtractionFailed, err)
	}

	result, err := validateExtraction(resp, msg.ReceivedAt)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", common.ErrExtractionFailed, err)
	}

	e.cache.set(key, result)

	if result == nil {
		e.logger.Debug("message classified as non-transaction", "sender", msg.Sender)
	} else {
		e.logger.Debug("semantic extraction succeeded",
			"amount", result.Amount.StringFixed(2),
			"direction", result.Direction,
			"merchant", result.MerchantLabel,
			"category", result.SuggestedCategory)
	}

	return result, nil
}

// Close releases the extractor's background resources.
func (e *SemanticExtractor) Close() {
	e.cache.stop()
	e.rateLimiter.stop()
}

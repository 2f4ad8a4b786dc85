package engine

import (
	"context"
	"log/slog"

	"github.com/ImAdityaa12/expensio-app/internal/model"
)

// LayeredExtractor tries the semantic strategy first and degrades to the
// rule-based one when the semantic path is absent or fails. The rules
// layer is required; the semantic layer is an optional enhancement.
type LayeredExtractor struct {
	semantic Extractor
	rules    Extractor
	logger   *slog.Logger
}

// NewLayeredExtractor composes the two extraction strategies. semantic may
// be nil, in which case only the rule-based path runs.
func NewLayeredExtractor(semantic, rules Extractor, logger *slog.Logger) *LayeredExtractor {
	if logger == nil {
		logger = slog.Default()
	}
	return &LayeredExtractor{semantic: semantic, rules: rules, logger: logger}
}

// Extract runs the layered strategy. A semantic "not a transaction" verdict
// is trusted as-is; only semantic failures fall through to the rules.
func (e *LayeredExtractor) Extract(ctx context.Context, msg model.RawMessage) (*model.ExtractedTransaction, error) {
	if e.semantic != nil {
		result, err := e.semantic.Extract(ctx, msg)
		if err == nil {
			return result, nil
		}
		e.logger.Warn("semantic extraction failed, falling back to rules",
			"sender", msg.Sender,
			"error", err)
	}

	return e.rules.Extract(ctx, msg)
}

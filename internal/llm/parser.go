package llm

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/ImAdityaa12/expensio-app/internal/model"
)

// SemanticConfidence is the confidence recorded for model-assisted
// extractions.
const SemanticConfidence = 0.95

// cleanMarkdownWrapper strips markdown code fences that some models wrap
// around JSON despite instructions not to.
func cleanMarkdownWrapper(content string) string {
	content = strings.TrimSpace(content)

	if strings.HasPrefix(content, "```") {
		// Drop the opening fence with any language tag.
		if idx := strings.Index(content, "\n"); idx >= 0 {
			content = content[idx+1:]
		} else {
			content = strings.TrimPrefix(content, "```json")
			content = strings.TrimPrefix(content, "```")
		}
	}
	if idx := strings.LastIndex(content, "```"); idx >= 0 {
		content = content[:idx]
	}

	return strings.TrimSpace(content)
}

// decodeExtraction parses raw model output into an ExtractionResponse.
func decodeExtraction(content string) (ExtractionResponse, error) {
	var resp ExtractionResponse

	cleaned := cleanMarkdownWrapper(content)
	decoder := json.NewDecoder(strings.NewReader(cleaned))
	if err := decoder.Decode(&resp); err != nil {
		return ExtractionResponse{}, fmt.Errorf("failed to parse extraction response: %w", err)
	}
	return resp, nil
}

// validateExtraction turns a raw provider response into a validated
// ExtractedTransaction. A nil result with a nil error means not a
// transaction. Every field is checked before being trusted; an invalid
// amount or type invalidates the whole response.
func validateExtraction(resp ExtractionResponse, receivedAt time.Time) (*model.ExtractedTransaction, error) {
	if !resp.IsTransaction {
		return nil, nil
	}

	amount, err := decimal.NewFromString(resp.Amount.String())
	if err != nil || !amount.IsPositive() {
		return nil, fmt.Errorf("extraction returned invalid amount %q", resp.Amount)
	}

	direction := model.TransactionType(strings.ToUpper(strings.TrimSpace(resp.TransactionType)))
	if !direction.Valid() {
		return nil, fmt.Errorf("extraction returned invalid type %q", resp.TransactionType)
	}

	merchant := strings.TrimSpace(resp.Merchant)
	if merchant == "" {
		merchant = "Unknown Merchant"
	}

	// Suggestions outside the closed vocabulary are dropped, not rejected.
	category := strings.TrimSpace(resp.Category)
	if !model.ValidSuggestedCategory(category) {
		category = ""
	}

	return &model.ExtractedTransaction{
		Amount:            amount,
		Direction:         direction,
		MerchantLabel:     merchant,
		SuggestedCategory: category,
		TransactionDate:   parseExtractionDate(resp.Date, receivedAt),
		Confidence:        SemanticConfidence,
	}, nil
}

// parseExtractionDate reads the model's date field, defaulting to the
// delivery date. Two-digit years resolve to the 2000s.
func parseExtractionDate(raw string, receivedAt time.Time) time.Time {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return model.DateOnly(receivedAt)
	}

	layouts := []string{"2006-01-02", "2-Jan-2006", "2-Jan-06", "02/01/2006", "02/01/06"}
	for _, layout := range layouts {
		if parsed, err := time.ParseInLocation(layout, raw, receivedAt.Location()); err == nil {
			return parsed
		}
	}
	return model.DateOnly(receivedAt)
}

package sms

import (
	"context"
	"log/slog"
	"regexp"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/ImAdityaa12/expensio-app/internal/model"
)

// RuleConfidence is the confidence recorded for rule-based extractions.
// The patterns are deterministic, so the value is fixed.
const RuleConfidence = 0.85

// UnknownMerchant is used when no merchant pattern matches a message that
// otherwise parses as a transaction.
const UnknownMerchant = "Unknown Merchant"

var (
	amountPattern = regexp.MustCompile(`(?i)(?:rs\.?|inr)\s?([0-9]+(?:,[0-9]{3})*(?:\.[0-9]{1,2})?)`)

	debitPattern  = regexp.MustCompile(`(?i)debited|spent|payment|paid`)
	creditPattern = regexp.MustCompile(`(?i)credited|received|deposited|refund|cashback`)

	// Merchant patterns, tried in order; first match wins.
	merchantCreditedPattern = regexp.MustCompile(`(?i);\s*([A-Za-z][A-Za-z\s]+?)\s+credited`)
	merchantAtPattern       = regexp.MustCompile(`(?i)\bat\s+([^.]+?)\s+on\b`)
	merchantForPattern      = regexp.MustCompile(`(?i)\bfor\s+([^.]+?)(?:\.|$|UPI)`)

	// Dates like "18-Feb-26" or "18-Feb-2026".
	datePattern = regexp.MustCompile(`(?i)\b([0-9]{1,2})-([A-Za-z]{3})-([0-9]{2,4})\b`)
)

// RuleExtractor derives transaction fields from bank SMS text with ordered
// regex patterns. It is fully offline and serves as the fallback when the
// semantic path is unavailable or fails.
type RuleExtractor struct {
	logger *slog.Logger
}

// NewRuleExtractor creates a rule-based extractor.
func NewRuleExtractor(logger *slog.Logger) *RuleExtractor {
	if logger == nil {
		logger = slog.Default()
	}
	return &RuleExtractor{logger: logger}
}

// Extract parses a normalized message. A nil result with a nil error means
// the message is not a transaction notification.
func (e *RuleExtractor) Extract(_ context.Context, msg model.RawMessage) (*model.ExtractedTransaction, error) {
	direction, ok := detectDirection(msg.Body)
	if !ok {
		return nil, nil
	}

	amount, ok := extractAmount(msg.Body)
	if !ok {
		return nil, nil
	}

	merchant := extractMerchant(msg.Body)
	date := extractDate(msg.Body, msg.ReceivedAt)

	e.logger.Debug("rule extraction succeeded",
		"amount", amount.StringFixed(2),
		"direction", direction,
		"merchant", merchant)

	return &model.ExtractedTransaction{
		Amount:          amount,
		Direction:       direction,
		MerchantLabel:   merchant,
		TransactionDate: date,
		Confidence:      RuleConfidence,
	}, nil
}

func detectDirection(body string) (model.TransactionType, bool) {
	if debitPattern.MatchString(body) {
		return model.TypeDebit, true
	}
	if creditPattern.MatchString(body) {
		return model.TypeCredit, true
	}
	return "", false
}

func extractAmount(body string) (decimal.Decimal, bool) {
	match := amountPattern.FindStringSubmatch(body)
	if match == nil {
		return decimal.Zero, false
	}

	raw := strings.ReplaceAll(match[1], ",", "")
	amount, err := decimal.NewFromString(raw)
	if err != nil || !amount.IsPositive() {
		return decimal.Zero, false
	}
	return amount, true
}

func extractMerchant(body string) string {
	for _, pattern := range []*regexp.Regexp{merchantCreditedPattern, merchantAtPattern, merchantForPattern} {
		if match := pattern.FindStringSubmatch(body); match != nil {
			if merchant := strings.TrimSpace(match[1]); merchant != "" {
				return merchant
			}
		}
	}
	return UnknownMerchant
}

// extractDate finds an in-message date, defaulting to the delivery date.
// Two-digit years resolve to the 2000s.
func extractDate(body string, receivedAt time.Time) time.Time {
	match := datePattern.FindStringSubmatch(body)
	if match == nil {
		return model.DateOnly(receivedAt)
	}

	raw := match[1] + "-" + match[2] + "-" + match[3]
	layout := "2-Jan-06"
	if len(match[3]) == 4 {
		layout = "2-Jan-2006"
	}

	parsed, err := time.ParseInLocation(layout, raw, receivedAt.Location())
	if err != nil {
		return model.DateOnly(receivedAt)
	}
	return parsed
}

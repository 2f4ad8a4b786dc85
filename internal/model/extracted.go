package model

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// ExtractedTransaction is the transient output of extraction: structured
// fields derived from a message body. It is folded into a Transaction or
// discarded; it is never persisted itself.
type ExtractedTransaction struct {
	TransactionDate   time.Time
	MerchantLabel     string
	SuggestedCategory string
	Direction         TransactionType
	Amount            decimal.Decimal
	Confidence        float64
}

// SuggestedCategories is the closed vocabulary the semantic extractor may
// suggest from. Suggestions outside this set are discarded before category
// resolution.
var SuggestedCategories = []string{
	"Food",
	"Transport",
	"Shopping",
	"Bills",
	"Entertainment",
	"Healthcare",
	"Travel",
	"Others",
}

// ValidSuggestedCategory reports whether name is in the closed suggestion
// vocabulary, ignoring case.
func ValidSuggestedCategory(name string) bool {
	for _, c := range SuggestedCategories {
		if strings.EqualFold(c, name) {
			return true
		}
	}
	return false
}

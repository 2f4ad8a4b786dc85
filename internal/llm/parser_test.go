package llm

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ImAdityaa12/expensio-app/internal/model"
)

func TestCleanMarkdownWrapper(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{
			name:  "plain json",
			input: `{"isTransaction": true}`,
			want:  `{"isTransaction": true}`,
		},
		{
			name:  "json fence",
			input: "```json\n{\"isTransaction\": true}\n```",
			want:  `{"isTransaction": true}`,
		},
		{
			name:  "bare fence",
			input: "```\n{\"a\": 1}\n```",
			want:  `{"a": 1}`,
		},
		{
			name:  "surrounding whitespace",
			input: "\n\n  {\"a\": 1}  \n",
			want:  `{"a": 1}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, cleanMarkdownWrapper(tt.input))
		})
	}
}

func TestDecodeExtraction(t *testing.T) {
	resp, err := decodeExtraction("```json\n{\"isTransaction\": true, \"amount\": 450.00, \"merchant\": \"Swiggy\", \"transactionType\": \"DEBIT\", \"category\": \"Food\", \"date\": \"2026-02-18\"}\n```")
	require.NoError(t, err)
	assert.True(t, resp.IsTransaction)
	assert.Equal(t, "Swiggy", resp.Merchant)
	assert.Equal(t, "450.00", resp.Amount.String())

	_, err = decodeExtraction("I could not parse this message, sorry!")
	assert.Error(t, err)

	_, err = decodeExtraction("")
	assert.Error(t, err)
}

func TestValidateExtraction(t *testing.T) {
	received := time.Date(2026, 2, 18, 12, 0, 0, 0, time.Local)

	base := func() ExtractionResponse {
		return ExtractionResponse{
			IsTransaction:   true,
			Amount:          json.Number("450.00"),
			Merchant:        "Swiggy",
			TransactionType: "DEBIT",
			Category:        "Food",
			Date:            "2026-02-18",
		}
	}

	t.Run("valid response", func(t *testing.T) {
		got, err := validateExtraction(base(), received)
		require.NoError(t, err)
		require.NotNil(t, got)
		assert.True(t, got.Amount.Equal(decimal.RequireFromString("450.00")))
		assert.Equal(t, model.TypeDebit, got.Direction)
		assert.Equal(t, "Swiggy", got.MerchantLabel)
		assert.Equal(t, "Food", got.SuggestedCategory)
		assert.Equal(t, time.Date(2026, 2, 18, 0, 0, 0, 0, time.Local), got.TransactionDate)
		assert.InDelta(t, SemanticConfidence, got.Confidence, 0.0001)
	})

	t.Run("not a transaction", func(t *testing.T) {
		resp := base()
		resp.IsTransaction = false
		got, err := validateExtraction(resp, received)
		require.NoError(t, err)
		assert.Nil(t, got)
	})

	t.Run("invalid amount", func(t *testing.T) {
		for _, amount := range []string{"0", "-10", "abc", ""} {
			resp := base()
			resp.Amount = json.Number(amount)
			_, err := validateExtraction(resp, received)
			assert.Error(t, err, "amount %q", amount)
		}
	})

	t.Run("invalid type", func(t *testing.T) {
		resp := base()
		resp.TransactionType = "TRANSFER"
		_, err := validateExtraction(resp, received)
		assert.Error(t, err)
	})

	t.Run("lowercase type accepted", func(t *testing.T) {
		resp := base()
		resp.TransactionType = "credit"
		got, err := validateExtraction(resp, received)
		require.NoError(t, err)
		assert.Equal(t, model.TypeCredit, got.Direction)
	})

	t.Run("out-of-vocabulary category dropped", func(t *testing.T) {
		resp := base()
		resp.Category = "Cryptocurrency"
		got, err := validateExtraction(resp, received)
		require.NoError(t, err)
		assert.Empty(t, got.SuggestedCategory)
	})

	t.Run("missing merchant defaults", func(t *testing.T) {
		resp := base()
		resp.Merchant = "  "
		got, err := validateExtraction(resp, received)
		require.NoError(t, err)
		assert.Equal(t, "Unknown Merchant", got.MerchantLabel)
	})

	t.Run("missing date defaults to delivery date", func(t *testing.T) {
		resp := base()
		resp.Date = ""
		got, err := validateExtraction(resp, received)
		require.NoError(t, err)
		assert.Equal(t, time.Date(2026, 2, 18, 0, 0, 0, 0, time.Local), got.TransactionDate)
	})

	t.Run("two-digit year resolves to 2000s", func(t *testing.T) {
		resp := base()
		resp.Date = "18-Feb-26"
		got, err := validateExtraction(resp, received)
		require.NoError(t, err)
		assert.Equal(t, 2026, got.TransactionDate.Year())
	})

	t.Run("garbage date defaults", func(t *testing.T) {
		resp := base()
		resp.Date = "sometime last week"
		got, err := validateExtraction(resp, received)
		require.NoError(t, err)
		assert.Equal(t, time.Date(2026, 2, 18, 0, 0, 0, 0, time.Local), got.TransactionDate)
	})
}

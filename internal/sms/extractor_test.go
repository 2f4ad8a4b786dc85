package sms

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ImAdityaa12/expensio-app/internal/model"
)

func rawMsg(body string) model.RawMessage {
	return model.RawMessage{
		Sender:     "HDFCBK",
		Body:       body,
		ReceivedAt: time.Date(2026, 2, 18, 10, 0, 0, 0, time.Local),
	}
}

func TestNormalize(t *testing.T) {
	received := time.Date(2026, 2, 18, 10, 0, 0, 0, time.Local)

	msg, err := Normalize("  HDFCBK  ", "  Rs.100 debited  ", received)
	require.NoError(t, err)
	assert.Equal(t, "HDFCBK", msg.Sender)
	assert.Equal(t, "Rs.100 debited", msg.Body)
	assert.Equal(t, received, msg.ReceivedAt)

	_, err = Normalize("HDFCBK", "", received)
	assert.ErrorIs(t, err, ErrNotProcessable)

	_, err = Normalize("HDFCBK", "   \n\t  ", received)
	assert.ErrorIs(t, err, ErrNotProcessable)
}

func TestRuleExtractor_DebitMessage(t *testing.T) {
	e := NewRuleExtractor(nil)

	got, err := e.Extract(context.Background(),
		rawMsg("Rs. 450.00 debited from A/C XX1234 at Swiggy on 18-Feb-26."))
	require.NoError(t, err)
	require.NotNil(t, got)

	assert.True(t, got.Amount.Equal(decimal.RequireFromString("450.00")),
		"amount: %s", got.Amount)
	assert.Equal(t, model.TypeDebit, got.Direction)
	assert.Equal(t, "Swiggy", got.MerchantLabel)
	assert.Equal(t, time.Date(2026, 2, 18, 0, 0, 0, 0, time.Local), got.TransactionDate)
	assert.InDelta(t, RuleConfidence, got.Confidence, 0.0001)
	assert.Empty(t, got.SuggestedCategory)
}

func TestRuleExtractor_CreditMessage(t *testing.T) {
	e := NewRuleExtractor(nil)

	got, err := e.Extract(context.Background(),
		rawMsg("INR 5000.00 credited to your account; ACME PAYROLL credited on 01-Mar-26"))
	require.NoError(t, err)
	require.NotNil(t, got)

	assert.Equal(t, model.TypeCredit, got.Direction)
	assert.True(t, got.Amount.Equal(decimal.NewFromInt(5000)))
	assert.Equal(t, "ACME PAYROLL", got.MerchantLabel)
}

func TestRuleExtractor_NotATransaction(t *testing.T) {
	e := NewRuleExtractor(nil)
	ctx := context.Background()

	tests := []struct {
		name string
		body string
	}{
		{name: "otp message", body: "Your OTP is 482931, do not share."},
		{name: "promo without direction", body: "Flat Rs.500 off on orders above Rs.999 today!"},
		{name: "direction without amount", body: "Your payment could not be processed. Retry."},
		{name: "empty-ish body", body: "."},
		{name: "non-ascii", body: "आपका खाता अपडेट किया गया है"},
		{name: "multi-line noise", body: "Hello\nWorld\nNothing financial here"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := e.Extract(ctx, rawMsg(tt.body))
			require.NoError(t, err)
			assert.Nil(t, got)
		})
	}
}

func TestRuleExtractor_MerchantPatternOrder(t *testing.T) {
	e := NewRuleExtractor(nil)
	ctx := context.Background()

	tests := []struct {
		name     string
		body     string
		merchant string
	}{
		{
			name:     "at-on clause",
			body:     "Rs.120.00 spent at Zomato on 10-Mar-26 via card.",
			merchant: "Zomato",
		},
		{
			name:     "for clause",
			body:     "Payment of Rs.799 paid for Netflix Subscription.",
			merchant: "Netflix Subscription",
		},
		{
			name:     "for clause terminated by UPI",
			body:     "Rs.250 paid for GroceriesUPI Ref 12345",
			merchant: "Groceries",
		},
		{
			name:     "no pattern matches",
			body:     "Rs.99 debited via UPI.",
			merchant: UnknownMerchant,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := e.Extract(ctx, rawMsg(tt.body))
			require.NoError(t, err)
			require.NotNil(t, got)
			assert.Equal(t, tt.merchant, got.MerchantLabel)
		})
	}
}

func TestRuleExtractor_AmountForms(t *testing.T) {
	e := NewRuleExtractor(nil)
	ctx := context.Background()

	tests := []struct {
		body   string
		amount string
	}{
		{body: "Rs.450.00 debited at Store on 18-Feb-26", amount: "450.00"},
		{body: "Rs 450 debited at Store on 18-Feb-26", amount: "450"},
		{body: "INR 1,23,456 noise rs.99.50 spent", amount: "1"}, // first token wins
		{body: "inr 2500.5 paid for Rent", amount: "2500.5"},
		{body: "Rs. 12,500.00 debited at Croma on 02-Jan-26", amount: "12500.00"},
	}

	for _, tt := range tests {
		got, err := e.Extract(ctx, rawMsg(tt.body))
		require.NoError(t, err, tt.body)
		require.NotNil(t, got, tt.body)
		assert.True(t, got.Amount.Equal(decimal.RequireFromString(tt.amount)),
			"body %q: want %s, got %s", tt.body, tt.amount, got.Amount)
	}
}

func TestRuleExtractor_DateHandling(t *testing.T) {
	e := NewRuleExtractor(nil)
	ctx := context.Background()

	// Four-digit year.
	got, err := e.Extract(ctx, rawMsg("Rs.100 debited at Store on 05-Jan-2026."))
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, time.Date(2026, 1, 5, 0, 0, 0, 0, time.Local), got.TransactionDate)

	// No in-message date falls back to the delivery date.
	got, err = e.Extract(ctx, rawMsg("Rs.100 debited via UPI."))
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, time.Date(2026, 2, 18, 0, 0, 0, 0, time.Local), got.TransactionDate)
}

func TestRuleExtractor_NeverPanics(t *testing.T) {
	e := NewRuleExtractor(nil)
	ctx := context.Background()

	inputs := []string{
		"",
		strings.Repeat("Rs.", 10000),
		"Rs." + strings.Repeat("9", 500) + " debited",
		"debited Rs.-100 at Store on 18-Feb-26",
		"Rs.0 debited at Store",
	}

	for _, body := range inputs {
		got, err := e.Extract(ctx, rawMsg(body))
		require.NoError(t, err)
		if got != nil {
			assert.True(t, got.Amount.IsPositive())
			assert.True(t, got.Direction.Valid())
		}
	}
}

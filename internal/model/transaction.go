package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// TransactionType indicates the direction of money movement.
type TransactionType string

const (
	// TypeDebit represents money leaving the account.
	TypeDebit TransactionType = "DEBIT"
	// TypeCredit represents money entering the account.
	TypeCredit TransactionType = "CREDIT"
)

// Valid reports whether the transaction type is one of the known values.
func (t TransactionType) Valid() bool {
	return t == TypeDebit || t == TypeCredit
}

// TransactionSource indicates how a transaction entered the ledger.
type TransactionSource string

const (
	// SourceSMS marks transactions ingested from bank SMS notifications.
	SourceSMS TransactionSource = "SMS"
	// SourceManual marks transactions entered by the user.
	SourceManual TransactionSource = "MANUAL"
	// SourceAPI marks transactions created through the API surface.
	SourceAPI TransactionSource = "API"
)

// Valid reports whether the source is one of the known values.
func (s TransactionSource) Valid() bool {
	return s == SourceSMS || s == SourceManual || s == SourceAPI
}

// Transaction is a single ledger entry, always scoped to one user.
// AccountID, CategoryID, MerchantName, Description and SMSLogID are
// optional; an empty string maps to NULL in the store.
type Transaction struct {
	TransactionDate time.Time
	CreatedAt       time.Time
	ID              string
	UserID          string
	AccountID       string
	CategoryID      string
	MerchantName    string
	Description     string
	SMSLogID        string
	Type            TransactionType
	Source          TransactionSource
	Amount          decimal.Decimal
}

// DateOnly truncates a timestamp to calendar-date precision in its location.
// Transaction dates are compared and stored at this precision.
func DateOnly(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

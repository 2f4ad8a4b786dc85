package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// Account is a bank account owned by a user. Transactions may reference an
// account but are not required to.
type Account struct {
	CreatedAt   time.Time
	ID          string
	UserID      string
	BankName    string
	AccountName string
	Last4Digits string
	Balance     decimal.Decimal
}

package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Mismatch reports one ledger row whose stated running balance disagrees with
// the previous balance plus the row's amount beyond the allowed tolerance.
type Mismatch struct {
	RawIndex      int             `json:"index"`
	AccountNumber string          `json:"account_number"`
	Date          time.Time       `json:"date"`
	Description   string          `json:"description"`
	Amount        decimal.Decimal `json:"amount"`
	PrevBalance   decimal.Decimal `json:"prev_balance"`
	Expected      decimal.Decimal `json:"expected_balance"`
	Provided      decimal.Decimal `json:"provided_balance"`
	Delta         decimal.Decimal `json:"delta"`
}

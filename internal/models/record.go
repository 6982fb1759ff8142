package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// LineType distinguishes transaction rows from balance-anchor marker rows.
type LineType string

const (
	// LineTransaction is a normal dated transaction row.
	LineTransaction LineType = "transaction"
	// LineMarker is a Beginning/Ending Balance line carrying only a balance.
	LineMarker LineType = "marker"
)

// Record is one reconstructed ledger row. Sign convention for Amount:
// negative = outflow/debit, positive = inflow/credit. Debit and Credit are
// non-negative and mutually exclusive, derived from Amount (or vice versa for
// layouts with separate debit/credit columns).
type Record struct {
	// Date is the parsed calendar date; zero when the date token could not be
	// parsed, in which case DateRaw still holds the original token.
	Date     time.Time `json:"date"`
	DateRaw  string    `json:"date_raw"`
	PostDate time.Time `json:"post_date,omitempty"`

	Description string `json:"description"`

	Amount  *decimal.Decimal `json:"amount"`
	Debit   *decimal.Decimal `json:"debit"`
	Credit  *decimal.Decimal `json:"credit"`
	Balance *decimal.Decimal `json:"balance"`

	AccountName   string      `json:"account_name,omitempty"`
	AccountNumber string      `json:"account_number,omitempty"`
	AccountType   AccountType `json:"account_type,omitempty"`

	LineType LineType `json:"line_type"`

	Page     int    `json:"page"`
	RawIndex int    `json:"raw_line_index"`
	RawLine  string `json:"raw_line"`
}

// HasAnyValue reports whether at least one of amount, debit, credit, balance
// is present. Transaction rows with none are grammar false positives and are
// dropped, never emitted.
func (r *Record) HasAnyValue() bool {
	return r.Amount != nil || r.Debit != nil || r.Credit != nil || r.Balance != nil
}

// IsMarker reports whether the record is a balance anchor row.
func (r *Record) IsMarker() bool {
	return r.LineType == LineMarker
}

// SetSignedAmount stores amount and derives the debit/credit pair from its
// sign. Zero amounts leave both columns empty.
func (r *Record) SetSignedAmount(amount decimal.Decimal) {
	r.Amount = Dec(amount)
	r.Debit = nil
	r.Credit = nil
	switch {
	case amount.IsNegative():
		r.Debit = Dec(amount.Neg())
	case amount.IsPositive():
		r.Credit = Dec(amount)
	}
}

// Dec returns a pointer to a copy of d, for the optional decimal fields.
func Dec(d decimal.Decimal) *decimal.Decimal {
	return &d
}

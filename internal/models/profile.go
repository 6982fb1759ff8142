package models

// DateOrder is the inferred ordering of ambiguous two-segment date tokens.
type DateOrder string

const (
	// OrderMonthDay means tokens read month/day ("US order").
	OrderMonthDay DateOrder = "MD"
	// OrderDayMonth means tokens read day/month.
	OrderDayMonth DateOrder = "DM"
	// OrderUnknown means the evidence was absent or conflicting; downstream
	// falls back to month/day.
	OrderUnknown DateOrder = ""
)

// Layout identifies the dominant transaction-table column arrangement of a
// statement, which selects the line grammar the walker applies.
type Layout string

const (
	// LayoutStandard is the free-form single-line grammar.
	LayoutStandard Layout = "standard"
	// LayoutDateAmountDesc is date, amount, then description.
	LayoutDateAmountDesc Layout = "date_amount_desc"
	// LayoutDateDescAmountBalance is date, description, amount and balance.
	LayoutDateDescAmountBalance Layout = "date_desc_amount_balance"
	// LayoutDateDescDebitCreditBalance has separate debit/credit columns.
	LayoutDateDescDebitCreditBalance Layout = "date_desc_debit_credit_balance"
	// LayoutCreditCard is the two-date-plus-reference credit card grammar.
	LayoutCreditCard Layout = "credit_card"
)

// IsTable reports whether the layout is one of the columnar table layouts
// that benefit from word-box line reconstruction.
func (l Layout) IsTable() bool {
	switch l {
	case LayoutDateAmountDesc, LayoutDateDescAmountBalance, LayoutDateDescDebitCreditBalance:
		return true
	}
	return false
}

// Profile holds the statement-wide heuristics computed once per statement
// before the line walk. It is immutable for the remainder of the parse.
type Profile struct {
	// DefaultYear is the inferred statement year, or 0 when no full date was
	// found anywhere in the statement.
	DefaultYear int       `json:"default_year"`
	DateOrder   DateOrder `json:"date_order"`
	CreditCard  bool      `json:"is_credit_card"`
	Layout      Layout    `json:"layout"`
}

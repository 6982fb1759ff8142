package grammar

import (
	"time"

	"ledgerlens/internal/dateutils"
	"ledgerlens/internal/hints"
	"ledgerlens/internal/models"
)

// Context carries the statement-level state a line parser needs: the profiled
// year and date order, the identity of the account section the walker is
// currently inside, and the active section sign.
type Context struct {
	DefaultYear   int
	DateOrder     models.DateOrder
	AccountName   string
	AccountNumber string
	AccountType   models.AccountType

	// SectionSign is +1 inside a credits section, -1 inside a debits
	// section, 0 when no section header applies.
	SectionSign int

	// Hints overrides the keyword vocabulary; nil uses the defaults.
	Hints *hints.Set
}

func (c Context) hintSet() *hints.Set {
	if c.Hints != nil {
		return c.Hints
	}
	return defaultHints
}

var defaultHints = hints.Default()

// LineParser is one grammar variant. TryParse converts a single normalized
// line into a record, or reports no-match; it never fails hard. Matching is
// strictly line-local.
type LineParser interface {
	TryParse(line string, ctx Context) (*models.Record, bool)
}

// ForLayout returns the grammar variant for a detected table layout, or nil
// when the layout has no dedicated parser beyond the standard fallback.
func ForLayout(layout models.Layout) LineParser {
	switch layout {
	case models.LayoutCreditCard:
		return CreditCardParser{}
	case models.LayoutDateAmountDesc:
		return DateAmountDescParser{}
	case models.LayoutDateDescAmountBalance:
		return DateDescAmountBalanceParser{}
	case models.LayoutDateDescDebitCreditBalance:
		return DateDescDebitCreditBalanceParser{}
	}
	return nil
}

// parseDate resolves a date token against the statement context, returning
// the zero time when the token cannot be parsed. The raw token survives on
// the record either way.
func parseDate(raw string, ctx Context) time.Time {
	t, ok := dateutils.ParseToken(raw, ctx.DefaultYear, ctx.DateOrder)
	if !ok {
		return time.Time{}
	}
	return t
}

// newRecord stamps a record with the account identity from the context.
func newRecord(ctx Context, dateRaw, line string) *models.Record {
	return &models.Record{
		Date:          parseDate(dateRaw, ctx),
		DateRaw:       dateRaw,
		AccountName:   ctx.AccountName,
		AccountNumber: ctx.AccountNumber,
		AccountType:   ctx.AccountType,
		LineType:      models.LineTransaction,
		RawLine:       line,
	}
}

// popTrailingAmounts removes up to max amount-shaped tokens from the end of
// tokens, returning the remaining tokens and the trailing group in reading
// order.
func popTrailingAmounts(tokens []string, max int) (rest, trailing []string) {
	rest = tokens
	for len(rest) > 0 && len(trailing) < max && AmountTokenRx.MatchString(rest[len(rest)-1]) {
		trailing = append(trailing, rest[len(rest)-1])
		rest = rest[:len(rest)-1]
	}
	for i, j := 0, len(trailing)-1; i < j; i, j = i+1, j-1 {
		trailing[i], trailing[j] = trailing[j], trailing[i]
	}
	return rest, trailing
}

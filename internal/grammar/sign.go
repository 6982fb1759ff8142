package grammar

import (
	"strings"

	"github.com/shopspring/decimal"

	"ledgerlens/internal/hints"
)

// InferSignedAmount resolves the sign of an amount for layouts that have no
// separate debit/credit columns. Priority order:
//  1. an active section sign is authoritative and overrides the description;
//  2. specific phrase overrides ("interest payment/paid" is an inflow,
//     "credit card pmt/payment" is an outflow);
//  3. keyword hints; when both credit and debit vocabulary hit, debit wins
//     (the conservative default for ambiguous descriptions);
//  4. otherwise the amount keeps its original sign.
func InferSignedAmount(amount decimal.Decimal, desc string, sectionSign int, h *hints.Set) decimal.Decimal {
	if sectionSign > 0 {
		return amount.Abs()
	}
	if sectionSign < 0 {
		return amount.Abs().Neg()
	}
	descUp := strings.ToUpper(desc)
	if interestPaymentRx.MatchString(descUp) {
		return amount.Abs()
	}
	if cardPaymentRx.MatchString(descUp) {
		return amount.Abs().Neg()
	}
	if h == nil {
		h = defaultHints
	}
	creditHit := h.CreditHit(descUp)
	debitHit := h.DebitHit(descUp)
	switch {
	case creditHit && debitHit:
		return amount.Abs().Neg()
	case creditHit:
		return amount.Abs()
	case debitHit:
		return amount.Abs().Neg()
	}
	return amount
}

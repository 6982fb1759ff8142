package grammar

import (
	"strings"

	"ledgerlens/internal/currencyutils"
	"ledgerlens/internal/models"
)

// CreditCardParser handles the fixed credit-card line shape: transaction
// date, posting date, 8+ digit reference, description, amount. Purchases and
// fees increase the liability (negative); payments and credits reduce it
// (positive). The reference is appended to the description for traceability.
type CreditCardParser struct{}

func (CreditCardParser) TryParse(line string, ctx Context) (*models.Record, bool) {
	m := ccLineRx.FindStringSubmatch(line)
	if m == nil {
		return nil, false
	}
	transRaw, postRaw, ref, rest, amountRaw := m[1], m[2], m[3], strings.TrimSpace(m[4]), m[5]

	amount, ok := currencyutils.NormalizeAmount(amountRaw)
	if !ok {
		return nil, false
	}

	descUp := strings.ToUpper(rest)
	paymentHit := ccPaymentStrictRx.MatchString(descUp) || ccPaymentTokenRx.MatchString(descUp)
	creditHit := ctx.hintSet().CardCreditHit(descUp)
	signed := amount.Abs().Neg()
	if paymentHit || creditHit {
		signed = amount.Abs()
	}

	rec := newRecord(ctx, transRaw, line)
	if ctx.AccountType == models.AccountUnknown {
		rec.AccountType = models.AccountCreditCard
	}
	if post := parseDate(postRaw, ctx); !post.IsZero() {
		rec.PostDate = post
	}
	rec.Description = rest + " REF:" + ref
	rec.SetSignedAmount(signed)
	// Credit card transaction lines carry no running balance; the
	// reconciliation pass may synthesize one from statement anchors.
	rec.Balance = nil
	return rec, true
}

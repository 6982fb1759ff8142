package grammar

import (
	"strings"

	"github.com/shopspring/decimal"

	"ledgerlens/internal/currencyutils"
	"ledgerlens/internal/models"
)

// DateAmountDescParser handles the "Date Amount Description" table layout:
// the amount immediately follows the date and the rest of the line is the
// description. No balance column exists in this layout.
type DateAmountDescParser struct{}

func (DateAmountDescParser) TryParse(line string, ctx Context) (*models.Record, bool) {
	tokens := strings.Fields(line)
	if len(tokens) < 3 {
		return nil, false
	}
	if !DatePrefixRx.MatchString(tokens[0]) || !AmountTokenRx.MatchString(tokens[1]) {
		return nil, false
	}
	amount, ok := currencyutils.NormalizeAmount(tokens[1])
	if !ok {
		return nil, false
	}
	description := strings.TrimSpace(strings.Join(tokens[2:], " "))
	if description == "" {
		return nil, false
	}

	rec := newRecord(ctx, tokens[0], line)
	rec.Description = description
	rec.SetSignedAmount(InferSignedAmount(amount, description, ctx.SectionSign, ctx.Hints))
	return rec, true
}

// DateDescAmountBalanceParser handles "Date Description Amount Balance":
// exactly two trailing money tokens, amount then running balance.
type DateDescAmountBalanceParser struct{}

func (DateDescAmountBalanceParser) TryParse(line string, ctx Context) (*models.Record, bool) {
	tokens := strings.Fields(line)
	if len(tokens) < 4 {
		return nil, false
	}
	if !DatePrefixRx.MatchString(tokens[0]) {
		return nil, false
	}
	tokens, trailing := popTrailingAmounts(tokens, 3)
	if len(trailing) != 2 {
		return nil, false
	}
	amount, okA := currencyutils.NormalizeAmount(trailing[0])
	balance, okB := currencyutils.NormalizeAmount(trailing[1])
	if !okA || !okB {
		return nil, false
	}
	description := strings.TrimSpace(strings.Join(tokens[1:], " "))
	if description == "" {
		return nil, false
	}

	rec := newRecord(ctx, tokens[0], line)
	rec.Description = description
	rec.SetSignedAmount(InferSignedAmount(amount, description, ctx.SectionSign, ctx.Hints))
	rec.Balance = models.Dec(balance)
	return rec, true
}

// DateDescDebitCreditBalanceParser handles layouts with separate debit and
// credit columns followed by a balance. With three or more trailing money
// tokens the two before the balance are the debit and credit columns and no
// sign heuristic is needed; with a single amount before the balance the
// shared sign inference applies.
type DateDescDebitCreditBalanceParser struct{}

func (DateDescDebitCreditBalanceParser) TryParse(line string, ctx Context) (*models.Record, bool) {
	tokens := strings.Fields(line)
	if len(tokens) < 4 {
		return nil, false
	}
	if !DatePrefixRx.MatchString(tokens[0]) {
		return nil, false
	}
	tokens, trailing := popTrailingAmounts(tokens, 4)
	if len(trailing) < 2 {
		return nil, false
	}
	description := strings.TrimSpace(strings.Join(tokens[1:], " "))
	if description == "" {
		return nil, false
	}
	balance, ok := currencyutils.NormalizeAmount(trailing[len(trailing)-1])
	if !ok {
		return nil, false
	}

	rec := newRecord(ctx, tokens[0], line)
	rec.Description = description
	rec.Balance = models.Dec(balance)

	if len(trailing) >= 3 {
		debit, okD := currencyutils.NormalizeAmount(trailing[len(trailing)-3])
		credit, okC := currencyutils.NormalizeAmount(trailing[len(trailing)-2])
		if !okD && !okC {
			return nil, false
		}
		amount := decimal.Zero
		if okD {
			d := debit.Abs()
			rec.Debit = models.Dec(d)
			amount = amount.Sub(d)
		}
		if okC {
			c := credit.Abs()
			rec.Credit = models.Dec(c)
			amount = amount.Add(c)
		}
		rec.Amount = models.Dec(amount)
		return rec, true
	}

	amount, ok := currencyutils.NormalizeAmount(trailing[0])
	if !ok {
		return nil, false
	}
	rec.SetSignedAmount(InferSignedAmount(amount, description, ctx.SectionSign, ctx.Hints))
	return rec, true
}

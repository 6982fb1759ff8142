package grammar

import (
	"strings"

	"github.com/shopspring/decimal"

	"ledgerlens/internal/currencyutils"
	"ledgerlens/internal/models"
)

// StandardParser is the free-form single-line grammar used when no tabular
// layout was detected: a leading date token, a description, and up to three
// trailing amount-shaped tokens consumed right to left.
type StandardParser struct{}

func (StandardParser) TryParse(line string, ctx Context) (*models.Record, bool) {
	m := DateStartRx.FindStringSubmatch(line)
	if m == nil {
		return nil, false
	}
	dateRaw := m[1]
	tokens := strings.Fields(strings.TrimSpace(line[len(m[0]):]))
	if len(tokens) == 0 {
		return nil, false
	}

	tokens, trailing := popTrailingAmounts(tokens, 3)
	description := strings.TrimSpace(strings.Join(tokens, " "))
	if description == "" {
		return nil, false
	}

	if description == "Beginning Balance" || description == "Ending Balance" {
		return markerRecord(ctx, dateRaw, line, description, trailing), true
	}

	var amount, balance, debit, credit *decimal.Decimal

	// An oversized whole-digit first token followed by a money-shaped token
	// is a check/reference number, not an amount; it folds back into the
	// description.
	if len(trailing) == 3 && looksReference(trailing[0]) && anyLooksMoney(trailing[1:]) {
		description = description + " " + trailing[0]
		trailing = trailing[1:]
	}

	switch len(trailing) {
	case 3:
		a1, ok1 := currencyutils.NormalizeAmount(trailing[0])
		a2, ok2 := currencyutils.NormalizeAmount(trailing[1])
		b, okB := currencyutils.NormalizeAmount(trailing[2])
		switch {
		case ok1 && ok2 && okB:
			if oppositeSigns(a1, a2) {
				// Debit and credit columns side by side, then balance.
				if a1.IsNegative() {
					debit = models.Dec(a1.Abs())
				} else if a2.IsNegative() {
					debit = models.Dec(a2.Abs())
				}
				if a1.IsPositive() {
					credit = models.Dec(a1)
				} else if a2.IsPositive() {
					credit = models.Dec(a2)
				}
				amount = models.Dec(value(credit).Sub(value(debit)))
				balance = models.Dec(b)
			} else {
				amount = models.Dec(a1)
				balance = models.Dec(b)
			}
		case ok1 && okB:
			amount = models.Dec(a1)
			balance = models.Dec(b)
		}
	case 2:
		t0, t1 := trailing[0], trailing[1]
		if looksReference(t0) && looksMoney(t1) {
			description = description + " " + t0
			if a1, ok := currencyutils.NormalizeAmount(t1); ok && !oversizedDigits(t1) {
				amount = models.Dec(a1)
			}
		} else {
			a1, ok1 := currencyutils.NormalizeAmount(t0)
			a2, ok2 := currencyutils.NormalizeAmount(t1)
			switch {
			case ok1 && ok2:
				// The larger magnitude is usually the running balance;
				// comma grouping on only the second token is the same signal.
				if a2.Abs().GreaterThanOrEqual(a1.Abs()) ||
					(strings.Contains(t1, ",") && !strings.Contains(t0, ",")) {
					amount = models.Dec(a1)
					balance = models.Dec(a2)
				} else {
					amount = models.Dec(a1)
				}
			case ok1:
				amount = models.Dec(a1)
			case ok2:
				amount = models.Dec(a2)
			}
		}
	case 1:
		if a1, ok := currencyutils.NormalizeAmount(trailing[0]); ok && !oversizedDigits(trailing[0]) {
			amount = models.Dec(a1)
		} else if trailing[0] != "" {
			description = description + " " + trailing[0]
		}
	}

	// An active section sign is authoritative for lines without explicit
	// debit/credit columns.
	if amount != nil && debit == nil && credit == nil && ctx.SectionSign != 0 {
		signed := amount.Abs()
		if ctx.SectionSign < 0 {
			signed = signed.Neg()
		}
		amount = models.Dec(signed)
	}

	if amount != nil && debit == nil && credit == nil {
		if amount.IsNegative() {
			debit = models.Dec(amount.Neg())
		} else if amount.IsPositive() {
			credit = models.Dec(*amount)
		}
	}

	if amount == nil && balance == nil && debit == nil && credit == nil {
		return nil, false
	}

	rec := newRecord(ctx, dateRaw, line)
	rec.Description = strings.TrimSpace(description)
	rec.Amount = amount
	rec.Debit = debit
	rec.Credit = credit
	rec.Balance = balance
	return rec, true
}

// markerRecord builds a Beginning/Ending Balance anchor row. Marker rows
// never carry an amount, only the stated balance.
func markerRecord(ctx Context, dateRaw, line, description string, trailing []string) *models.Record {
	rec := newRecord(ctx, dateRaw, line)
	rec.Description = description
	rec.LineType = models.LineMarker
	if len(trailing) > 0 {
		// With extra tokens (a stray reference before the amount) the last
		// token is the balance.
		if bal, ok := currencyutils.NormalizeAmount(trailing[len(trailing)-1]); ok {
			rec.Balance = models.Dec(bal)
		}
	}
	return rec
}

// looksReference reports a whole-digit token of 5+ digits with no decimal
// point: too long for a plausible dollar amount, shaped like a check or
// reference number.
func looksReference(tok string) bool {
	if len(tok) < 5 || strings.Contains(tok, ".") {
		return false
	}
	return allDigits(tok)
}

// oversizedDigits guards the single-token case: a bare digit run longer than
// 8 characters is never an amount.
func oversizedDigits(tok string) bool {
	return allDigits(tok) && len(tok) > 8
}

func looksMoney(tok string) bool {
	return refLooksMoneyRx.MatchString(tok) || strings.Contains(tok, ".")
}

func anyLooksMoney(toks []string) bool {
	for _, t := range toks {
		if looksMoney(t) {
			return true
		}
	}
	return false
}

func allDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

func oppositeSigns(a, b decimal.Decimal) bool {
	return (a.IsNegative() && b.IsPositive()) || (b.IsNegative() && a.IsPositive())
}

func value(d *decimal.Decimal) decimal.Decimal {
	if d == nil {
		return decimal.Zero
	}
	return *d
}

// Package currencyutils provides the currency-token normalizer used by the
// line grammars.
package currencyutils

import (
	"regexp"
	"strings"

	"github.com/shopspring/decimal"
)

// maxAmount is the magnitude cap; anything larger is not a plausible
// statement amount and is rejected.
var maxAmount = decimal.NewFromInt(1_000_000_000)

// maxBareDigits caps bare integers (no decimal point). Longer digit runs are
// reference numbers, not dollar amounts.
const maxBareDigits = 7

var coreNumberRx = regexp.MustCompile(`^\d+(?:\.\d+)?$`)

// NormalizeAmount parses a currency-like token ("$1,234.56", "(12.00)",
// "12.00-") into a signed decimal value. The second return value is false for
// any token that does not look like a plausible currency amount:
//   - anything other than digits with an optional fraction after stripping
//     sign markers, "$" and thousands separators
//   - bare integers longer than 7 digits
//   - fractions that are not 1 or 2 digits
//   - magnitudes above 1,000,000,000
//
// A single fraction digit is padded to two ("12.5" reads as 12.50). Trailing
// "-" and wrapping parentheses both mean negative.
func NormalizeAmount(raw string) (decimal.Decimal, bool) {
	token := strings.TrimSpace(raw)
	if token == "" {
		return decimal.Zero, false
	}

	neg := false
	if strings.HasSuffix(token, "-") && strings.Count(token, "-") == 1 {
		neg = true
		token = token[:len(token)-1]
	}
	if strings.HasPrefix(token, "(") && strings.HasSuffix(token, ")") {
		neg = true
		token = token[1 : len(token)-1]
	}

	token = strings.ReplaceAll(token, "$", "")
	token = strings.ReplaceAll(token, ",", "")
	if strings.HasPrefix(token, "-") {
		neg = true
		token = token[1:]
	}

	if !coreNumberRx.MatchString(token) {
		return decimal.Zero, false
	}
	if !strings.Contains(token, ".") && len(token) > maxBareDigits {
		return decimal.Zero, false
	}
	if dot := strings.IndexByte(token, '.'); dot >= 0 {
		frac := token[dot+1:]
		if len(frac) < 1 || len(frac) > 2 {
			return decimal.Zero, false
		}
		if len(frac) == 1 {
			token += "0"
		}
	}

	value, err := decimal.NewFromString(token)
	if err != nil {
		return decimal.Zero, false
	}
	if value.GreaterThan(maxAmount) {
		return decimal.Zero, false
	}
	if neg {
		value = value.Neg()
	}
	return value, true
}

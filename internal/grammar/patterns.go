// Package grammar contains the per-layout line parsers that turn one
// physical statement line into a ledger record, plus the shared line-shape
// patterns the profiler and walker also match against.
package grammar

import "regexp"

var (
	// DateStartRx anchors a line that opens with a date token followed by
	// more content. The token may be two-segment (no year) or carry a year.
	DateStartRx = regexp.MustCompile(`^(\d{1,2}[/-]\d{1,2}(?:[/-]\d{2,4})?)\s+`)

	// DatePrefixRx recognizes a leading date-like token regardless of what
	// follows. Used to tell failed transaction attempts from plain prose.
	DatePrefixRx = regexp.MustCompile(`^\d{1,2}[/-]\d{1,2}(?:[/-]\d{2,4})?\b`)

	// AmountTokenRx matches amount-shaped tokens: optionally parenthesized or
	// dollar-prefixed, comma-grouped digits, optional fraction, optional
	// trailing minus. Bare digit runs match too; the normalizer and the
	// reference-number heuristics sort those out.
	AmountTokenRx = regexp.MustCompile(`^\(?\$?-?\d[\d,]*(?:\.\d+)?\)?-?$`)

	// DateRangeRx matches statement-period range lines ("01/01/24 - 01/31/24").
	DateRangeRx = regexp.MustCompile(`^\d{1,2}[/-]\d{1,2}[/-]\d{2,4}\s*(?:-|to|through)\s*\d{1,2}[/-]\d{1,2}[/-]\d{2,4}`)

	// accountHeaderRx matches a whole line of the form "Name - Number".
	accountHeaderRx = regexp.MustCompile(`^([A-Za-z][A-Za-z0-9&'./ ]{2,60}?)\s*-\s*(\d[\d-]{3,})\s*$`)

	// AccountHeaderInlineRx finds an embedded "Name - Number" account header
	// anywhere in a line. The name must name an account-like product so stray
	// hyphenated text does not trip the continuation-merge heuristics.
	AccountHeaderInlineRx = regexp.MustCompile(`(?i)([A-Za-z][A-Za-z0-9&'./ ]*(?:checking|saving|savings|share|draft|market|account)[A-Za-z0-9&'./ ]*?)\s*-\s*(\d[\d-]{3,})`)

	// ccLineRx is the fixed credit-card shape: transaction date, posting
	// date, reference of 8+ digits, description, trailing amount.
	ccLineRx = regexp.MustCompile(`^(\d{1,2}[/-]\d{1,2})\s+(\d{1,2}[/-]\d{1,2})\s+(\d{8,})\s+(.+?)\s+(\(?\$?-?[\d,]+\.\d{2}\)?-?)$`)

	interestPaymentRx = regexp.MustCompile(`\bINTEREST (PAYMENT|PAID)\b`)
	cardPaymentRx     = regexp.MustCompile(`\bCREDIT CARD (PMT|PAYMENT)\b`)

	ccPaymentStrictRx = regexp.MustCompile(`(?i)\b(PAYMENT RECEIVED|ONLINE PAYMENT|ELECTRONIC PAYMENT|ACH PAYMENT|BILL PAYMENT|AUTO ?PAY|AUTOPAY)\b`)
	ccPaymentTokenRx  = regexp.MustCompile(`(?i)\bPMT\b`)

	refLooksMoneyRx = regexp.MustCompile(`[().-]`)
)

// MatchAccountHeader extracts the account name and number from an account
// header line, trying the whole-line form first and then the embedded form.
func MatchAccountHeader(line string) (name, number string, ok bool) {
	if m := accountHeaderRx.FindStringSubmatch(line); m != nil {
		return trimHeaderName(m[1]), m[2], true
	}
	if m := AccountHeaderInlineRx.FindStringSubmatch(line); m != nil {
		return trimHeaderName(m[1]), m[2], true
	}
	return "", "", false
}

func trimHeaderName(s string) string {
	for len(s) > 0 && (s[len(s)-1] == ' ' || s[len(s)-1] == '-') {
		s = s[:len(s)-1]
	}
	return s
}

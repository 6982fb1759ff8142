// Package profiler computes the statement-wide heuristics in one scan over
// the extracted lines: the default year, the ambiguous date ordering, the
// credit-card flag, and the dominant table layout. The resulting Profile is
// immutable for the remainder of the walk.
package profiler

import (
	"regexp"
	"strconv"
	"strings"

	"ledgerlens/internal/grammar"
	"ledgerlens/internal/models"
)

// Scan windows. Heuristic evidence concentrates near the top of a statement;
// bounding the scans keeps profiling cheap on long documents.
const (
	dateOrderScanLines = 400
	layoutScanLines    = 300
	creditCardScan     = 120
)

// creditCardScore is the number of independent indicator hits required
// before a statement is flagged as a credit card. One stray phrase is not
// enough.
const creditCardScore = 2

var (
	fullDateYearRx = regexp.MustCompile(`\b\d{1,2}[/-]\d{1,2}[/-](\d{4}|\d{2})\b`)
	periodRangeRx  = regexp.MustCompile(`\b\d{1,2}[/-]\d{1,2}[/-](\d{4}|\d{2})\s*(?:-|to|through)\s*\d{1,2}[/-]\d{1,2}[/-](\d{4}|\d{2})\b`)

	creditCardPatterns = []*regexp.Regexp{
		regexp.MustCompile(`(?i)Minimum Payment Due`),
		regexp.MustCompile(`(?i)Credit Limit`),
		regexp.MustCompile(`(?i)Statement Closing Date`),
	}

	dateAmountDescHeaderRx = regexp.MustCompile(`(?i)^Date\s+Amount\s+Description$`)
	dateDescAmountBalRx    = regexp.MustCompile(`(?i)^Date\s+Description\s+Amount(?:\s+Balance)?$`)
	dateDescDebitCreditRx  = regexp.MustCompile(`(?i)^Date\s+Description\s+(?:Debit|Withdrawal)s?\s+(?:Credit|Deposit)s?\s+Balance$`)
	dateDescBalHeaderRx    = regexp.MustCompile(`(?i)^Date\s+Description\s+Balance$`)
)

// Profile runs all statement-wide heuristics over the line texts.
func Profile(texts []string) models.Profile {
	creditCard := DetectCreditCard(texts)
	return models.Profile{
		DefaultYear: InferYear(texts),
		DateOrder:   InferDateOrder(texts),
		CreditCard:  creditCard,
		Layout:      DetectLayout(texts, creditCard),
	}
}

// InferYear infers the statement's default year from full-date occurrences
// and statement-period ranges. Two-digit years expand with a "20" prefix.
// When exactly two distinct years one apart appear (a statement spanning a
// year boundary) and period-range evidence exists, the year most frequent
// within period ranges wins; otherwise the overall mode does. Returns 0 when
// no full date appears anywhere.
func InferYear(texts []string) int {
	counts := map[int]int{}
	var order []int
	var periodYears []int
	for _, line := range texts {
		for _, m := range fullDateYearRx.FindAllStringSubmatch(line, -1) {
			y := expandYear(m[1])
			if counts[y] == 0 {
				order = append(order, y)
			}
			counts[y]++
		}
		for _, m := range periodRangeRx.FindAllStringSubmatch(line, -1) {
			periodYears = append(periodYears, expandYear(m[1]), expandYear(m[2]))
		}
	}
	if len(order) == 0 {
		return 0
	}
	if len(counts) == 2 && len(periodYears) > 0 {
		y0, y1 := order[0], order[1]
		if y0 > y1 {
			y0, y1 = y1, y0
		}
		if y1-y0 == 1 {
			best, bestCount := 0, -1
			for _, py := range dedupe(periodYears) {
				if c, ok := counts[py]; ok && c > bestCount {
					best, bestCount = py, c
				}
			}
			if bestCount >= 0 {
				return best
			}
		}
	}
	best, bestCount := 0, -1
	for _, y := range order {
		if counts[y] > bestCount {
			best, bestCount = y, counts[y]
		}
	}
	return best
}

// InferDateOrder scans leading two-segment date tokens for unambiguous
// evidence: a first segment above 12 means day-month, a second segment above
// 12 means month-day. Conflicting evidence yields OrderUnknown and the
// walker falls back to month-day.
func InferDateOrder(texts []string) models.DateOrder {
	dmSeen, mdSeen := false, false
	for _, line := range capped(texts, dateOrderScanLines) {
		m := grammar.DateStartRx.FindStringSubmatch(line)
		if m == nil {
			continue
		}
		parts := strings.FieldsFunc(m[1], func(r rune) bool { return r == '/' || r == '-' })
		if len(parts) != 2 {
			continue
		}
		a, errA := strconv.Atoi(parts[0])
		b, errB := strconv.Atoi(parts[1])
		if errA != nil || errB != nil {
			continue
		}
		if a > 12 && b <= 12 {
			dmSeen = true
		} else if b > 12 && a <= 12 {
			mdSeen = true
		}
		if dmSeen && mdSeen {
			return models.OrderUnknown
		}
	}
	switch {
	case dmSeen && !mdSeen:
		return models.OrderDayMonth
	case mdSeen && !dmSeen:
		return models.OrderMonthDay
	}
	return models.OrderUnknown
}

// DetectCreditCard flags credit-card statements once two indicator hits
// accumulate within the first lines of the statement.
func DetectCreditCard(texts []string) bool {
	score := 0
	for _, line := range capped(texts, creditCardScan) {
		for _, rx := range creditCardPatterns {
			if rx.MatchString(line) {
				score++
				if score >= creditCardScore {
					return true
				}
			}
		}
	}
	return false
}

// DetectLayout scans for a recognized table-header phrasing; the first match
// wins. Credit-card mode short-circuits to the credit-card grammar, and no
// match at all means the free-form standard grammar.
func DetectLayout(texts []string, creditCard bool) models.Layout {
	if creditCard {
		return models.LayoutCreditCard
	}
	for _, line := range capped(texts, layoutScanLines) {
		if layout, ok := LayoutHeader(line); ok {
			return layout
		}
	}
	return models.LayoutStandard
}

// LayoutHeader reports the table layout a header line announces, if any.
func LayoutHeader(line string) (models.Layout, bool) {
	switch {
	case dateDescDebitCreditRx.MatchString(line):
		return models.LayoutDateDescDebitCreditBalance, true
	case dateDescAmountBalRx.MatchString(line):
		return models.LayoutDateDescAmountBalance, true
	case dateAmountDescHeaderRx.MatchString(line):
		return models.LayoutDateAmountDesc, true
	}
	return "", false
}

// IsTableHeader reports whether a line is any recognized table header,
// including the date/description/balance variant that switches no layout but
// is still not a data row.
func IsTableHeader(line string) bool {
	if _, ok := LayoutHeader(line); ok {
		return true
	}
	return dateDescBalHeaderRx.MatchString(line)
}

func expandYear(raw string) int {
	if len(raw) == 2 {
		raw = "20" + raw
	}
	y, _ := strconv.Atoi(raw)
	return y
}

func capped(texts []string, n int) []string {
	if n >= 0 && len(texts) > n {
		return texts[:n]
	}
	return texts
}

func dedupe(ys []int) []int {
	seen := map[int]bool{}
	var out []int
	for _, y := range ys {
		if !seen[y] {
			seen[y] = true
			out = append(out, y)
		}
	}
	return out
}

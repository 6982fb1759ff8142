// Package statement drives the line walk that turns an extracted statement
// into ledger records. The walker owns all mutable per-parse state (account
// identity, section sign, active layout, daily-balance mode), so independent
// statements can be parsed concurrently with no shared state.
package statement

import (
	"fmt"
	"regexp"
	"strings"

	"ledgerlens/internal/grammar"
	"ledgerlens/internal/models"
	"ledgerlens/internal/profiler"
)

var (
	accountNumberLabelRx = regexp.MustCompile(`(?i)(?:Primary\s+)?Account number:\s*([\d-]+)`)
	accountSummaryRx     = regexp.MustCompile(`(?i)^(.+?)\s+Account Summary$`)

	sectionCreditRx = regexp.MustCompile(`(?i)\b(Deposits?|Credits?|Other Additions|Other Credits|Additions|Payments and Credits|Interest)\b`)
	sectionDebitRx  = regexp.MustCompile(`(?i)\b(Withdrawals?|Debits?|Deductions|Other Deductions|Other Debits|Checks?|Fees|Service Charges|Payments)\b`)
	sectionHintRx   = regexp.MustCompile(`(?i)\bThere (?:were|was)\b|\btotaling\b`)

	dailyBalanceRx = regexp.MustCompile(`(?i)\bDaily Balance\b`)
	nonDigitRx     = regexp.MustCompile(`\D`)
)

// parsedKind remembers which grammar family produced the last successful
// record, which decides whether an unmatched line is a table continuation.
type parsedKind int

const (
	kindNone parsedKind = iota
	kindStandard
	kindTable
	kindCredit
)

// walkState is the mutable state of one statement walk.
type walkState struct {
	ctx          grammar.Context
	layout       models.Layout
	dailyBalance bool
	lastKind     parsedKind
}

// isSectionHeader reports a free-text section heading ("There were 4
// deposits totaling ..."). Date-prefixed lines are data rows, never section
// headers.
func isSectionHeader(line string) bool {
	if grammar.DatePrefixRx.MatchString(line) {
		return false
	}
	return sectionHintRx.MatchString(line)
}

// walk dispatches every extracted line through the grammar chain, tracking
// account identity, section sign and layout transitions. It never aborts on
// a bad line; failed date-prefixed lines are collected as unparsed
// diagnostics and prose is dropped.
func (p *Parser) walk(lines []models.RawLine, prof models.Profile) ([]models.Record, []string) {
	st := walkState{
		ctx: grammar.Context{
			DefaultYear: prof.DefaultYear,
			DateOrder:   prof.DateOrder,
			Hints:       p.hints,
		},
		layout: prof.Layout,
	}

	var rows []models.Record
	var unparsed []string
	rawIndex := 0

	for _, rl := range lines {
		line := rl.Text

		if name, number, ok := grammar.MatchAccountHeader(line); ok {
			st.ctx.AccountName = name
			st.ctx.AccountNumber = number
			st.ctx.AccountType = models.ClassifyAccount(name)
			st.dailyBalance = false
		}
		if m := accountNumberLabelRx.FindStringSubmatch(line); m != nil {
			digits := nonDigitRx.ReplaceAllString(m[1], "")
			if digits != "" {
				st.ctx.AccountNumber = digits
			} else {
				st.ctx.AccountNumber = m[1]
			}
		}
		if m := accountSummaryRx.FindStringSubmatch(line); m != nil && st.ctx.AccountName == "" {
			st.ctx.AccountName = strings.TrimSpace(m[1])
			st.ctx.AccountType = models.ClassifyAccount(st.ctx.AccountName)
		}

		if isSectionHeader(line) {
			creditHit := sectionCreditRx.MatchString(line)
			debitHit := sectionDebitRx.MatchString(line)
			switch {
			case creditHit && debitHit:
				// Both vocabularies in one heading is ambiguous.
				st.ctx.SectionSign = 0
			case creditHit:
				st.ctx.SectionSign = 1
				st.dailyBalance = false
			case debitHit:
				st.ctx.SectionSign = -1
				st.dailyBalance = false
			}
		}

		if layout, ok := profiler.LayoutHeader(line); ok {
			st.layout = layout
			st.dailyBalance = false
			continue
		}
		if strings.Contains(line, "Average Daily Balance") {
			continue
		}
		if dailyBalanceRx.MatchString(line) {
			if !prof.CreditCard {
				// A table caption sometimes spills onto the Daily Balance
				// line; reattach it to the previous table row.
				if st.lastKind == kindTable && strings.Contains(line, "Daily Balance") {
					prefix := strings.TrimSpace(strings.SplitN(line, "Daily Balance", 2)[0])
					if prefix != "" && len(rows) > 0 {
						last := &rows[len(rows)-1]
						last.Description = strings.TrimSpace(last.Description + " " + prefix)
						last.RawLine = last.RawLine + " " + prefix
					}
				}
				st.dailyBalance = true
				st.lastKind = kindNone
			}
			continue
		}
		if grammar.DateRangeRx.MatchString(line) {
			continue
		}
		if profiler.IsTableHeader(line) {
			continue
		}
		if st.dailyBalance {
			continue
		}

		var rec *models.Record
		if prof.CreditCard {
			if r, ok := (grammar.CreditCardParser{}).TryParse(line, st.ctx); ok {
				rec = r
				st.lastKind = kindCredit
			}
		}
		if rec == nil {
			if r, ok := (grammar.DateAmountDescParser{}).TryParse(line, st.ctx); ok {
				rec = r
				if !st.layout.IsTable() {
					st.layout = models.LayoutDateAmountDesc
				}
			}
		}
		if rec == nil {
			if lp := grammar.ForLayout(st.layout); lp != nil {
				if r, ok := lp.TryParse(line, st.ctx); ok {
					rec = r
				}
			}
		}
		if rec != nil && st.layout.IsTable() {
			st.lastKind = kindTable
		}
		if rec == nil {
			if r, ok := (grammar.StandardParser{}).TryParse(line, st.ctx); ok {
				rec = r
				st.lastKind = kindStandard
			}
		}

		if rec != nil {
			rec.Page = rl.Page
			rec.RawIndex = rawIndex
			rawIndex++
			rows = append(rows, *rec)
			continue
		}

		if st.lastKind == kindTable && isContinuation(line) {
			if len(rows) > 0 {
				last := &rows[len(rows)-1]
				last.Description = strings.TrimSpace(last.Description + " " + line)
				last.RawLine = last.RawLine + " " + line
			}
			continue
		}
		if grammar.DatePrefixRx.MatchString(line) {
			// Looked like a transaction start but matched no grammar.
			unparsed = append(unparsed, fmt.Sprintf("[p%d] %s", rl.Page, line))
		}
	}

	return rows, unparsed
}

// isContinuation reports a line that is safe to absorb into the previous
// table row's description: not a date row, range, header, section heading,
// account header, or daily-balance caption.
func isContinuation(line string) bool {
	return !grammar.DatePrefixRx.MatchString(line) &&
		!grammar.DateRangeRx.MatchString(line) &&
		!profiler.IsTableHeader(line) &&
		!sectionCreditRx.MatchString(line) &&
		!sectionDebitRx.MatchString(line) &&
		!grammar.AccountHeaderInlineRx.MatchString(line) &&
		!dailyBalanceRx.MatchString(line)
}

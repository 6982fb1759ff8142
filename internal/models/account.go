package models

import (
	"regexp"
	"strings"
)

// AccountType is the normalized bucket an account section belongs to.
type AccountType string

const (
	AccountChecking   AccountType = "checking"
	AccountSavings    AccountType = "savings"
	AccountCreditCard AccountType = "credit_card"
	// AccountUnknown means no account header has been seen yet.
	AccountUnknown AccountType = ""
)

var (
	nonAlnumRx     = regexp.MustCompile(`[^a-z0-9 ]+`)
	checkingAbbrRx = regexp.MustCompile(`\bchk\b`)
	draftRx        = regexp.MustCompile(`\bdraft\b`)
	moneyMarketRx  = regexp.MustCompile(`\bmm(sa)?\b`)
)

// ClassifyAccount normalizes an account name into the checking or savings
// bucket. Credit unions use "share draft" for checking and "share" for
// savings; everything unrecognized falls into savings so deposit accounts
// only ever land in two buckets.
func ClassifyAccount(name string) AccountType {
	if strings.TrimSpace(name) == "" {
		return AccountUnknown
	}
	n := nonAlnumRx.ReplaceAllString(strings.ToLower(strings.TrimSpace(name)), " ")
	if strings.Contains(n, "checking") ||
		checkingAbbrRx.MatchString(n) ||
		strings.Contains(n, "share draft") ||
		draftRx.MatchString(n) {
		return AccountChecking
	}
	if strings.Contains(n, "savings") ||
		strings.Contains(n, "saving") ||
		strings.Contains(n, "money market") ||
		moneyMarketRx.MatchString(n) ||
		(strings.Contains(n, "share") && !strings.Contains(n, "draft")) {
		return AccountSavings
	}
	return AccountSavings
}

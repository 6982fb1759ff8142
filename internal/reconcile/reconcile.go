// Package reconcile post-processes the assembled record set: it orders
// records, guards against grammar misfires producing absurd magnitudes,
// normalizes account types, and fills in running balances that the source
// layout did not state.
package reconcile

import (
	"regexp"
	"sort"

	"github.com/shopspring/decimal"

	"ledgerlens/internal/currencyutils"
	"ledgerlens/internal/models"
)

// Options tunes the reconciliation pass.
type Options struct {
	// OutlierMinRows is the minimum record count before the outlier guard
	// applies; small statements carry too little signal for a median.
	OutlierMinRows int

	// OutlierMultiplier sets the cutoff at multiplier x median absolute
	// amount.
	OutlierMultiplier int64
}

// DefaultOptions returns the standard pass configuration.
func DefaultOptions() Options {
	return Options{
		OutlierMinRows:    50,
		OutlierMultiplier: 50,
	}
}

var (
	prevBalanceRx = regexp.MustCompile(`(?i)Previous Balance \$([0-9,]+(?:\.\d{2})?)`)
	newBalanceRx  = regexp.MustCompile(`(?i)New Balance \$([0-9,]+(?:\.\d{2})?)`)
)

// ccBalanceTolerance is how closely the synthesized credit-card running
// balance must land on the stated New Balance before it is committed. A
// wrong balance is worse than no balance.
var ccBalanceTolerance = decimal.NewFromFloat(0.05)

// Apply runs the full reconciliation pass over the records of one
// statement. rawTexts is the statement's line text, scanned for the
// credit-card Previous/New Balance anchors; the profile decides which
// balance strategy applies.
func Apply(records []models.Record, rawTexts []string, prof models.Profile, opts Options) []models.Record {
	if len(records) == 0 {
		return records
	}

	sortChronological(records)
	filterOutliers(records, opts)
	records = dropEmpty(records)
	normalizeAccountTypes(records)

	if prof.CreditCard {
		applyCreditCardBalances(records, rawTexts)
	} else {
		inferBalances(records)
	}
	return records
}

// sortChronological orders records by account type, account number, then
// date. Records whose date token never parsed sort after dated ones within
// their account; original insertion order breaks remaining ties.
func sortChronological(records []models.Record) {
	sort.SliceStable(records, func(i, j int) bool {
		a, b := &records[i], &records[j]
		if a.AccountType != b.AccountType {
			return a.AccountType < b.AccountType
		}
		if a.AccountNumber != b.AccountNumber {
			return a.AccountNumber < b.AccountNumber
		}
		switch {
		case a.Date.IsZero() && b.Date.IsZero():
			return false
		case a.Date.IsZero():
			return false
		case b.Date.IsZero():
			return true
		}
		return a.Date.Before(b.Date)
	})
}

// filterOutliers nulls the amount columns (never the balance) of records
// whose magnitude exceeds the median-based cutoff. Only applied once enough
// records exist to make the median meaningful.
func filterOutliers(records []models.Record, opts Options) {
	if len(records) < opts.OutlierMinRows {
		return
	}
	var magnitudes []decimal.Decimal
	for i := range records {
		if records[i].Amount != nil {
			magnitudes = append(magnitudes, records[i].Amount.Abs())
		}
	}
	if len(magnitudes) == 0 {
		return
	}
	med := median(magnitudes)
	if !med.IsPositive() {
		return
	}
	cutoff := med.Mul(decimal.NewFromInt(opts.OutlierMultiplier))
	for i := range records {
		if records[i].Amount != nil && records[i].Amount.Abs().GreaterThan(cutoff) {
			records[i].Amount = nil
			records[i].Debit = nil
			records[i].Credit = nil
		}
	}
}

func median(values []decimal.Decimal) decimal.Decimal {
	sorted := make([]decimal.Decimal, len(values))
	copy(sorted, values)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].LessThan(sorted[j]) })
	n := len(sorted)
	if n%2 == 1 {
		return sorted[n/2]
	}
	return sorted[n/2-1].Add(sorted[n/2]).Div(decimal.NewFromInt(2))
}

// dropEmpty removes rows where amount, debit, credit and balance are all
// absent; such rows carry no usable data.
func dropEmpty(records []models.Record) []models.Record {
	out := records[:0]
	for i := range records {
		if records[i].HasAnyValue() {
			out = append(out, records[i])
		}
	}
	return out
}

// normalizeAccountTypes collapses account types to the statement's buckets:
// if any record is a credit card, untyped records join it; otherwise
// everything that is not checking becomes savings.
func normalizeAccountTypes(records []models.Record) {
	anyCreditCard := false
	for i := range records {
		if records[i].AccountType == models.AccountCreditCard {
			anyCreditCard = true
			break
		}
	}
	for i := range records {
		switch {
		case anyCreditCard:
			if records[i].AccountType == models.AccountUnknown {
				records[i].AccountType = models.AccountCreditCard
			}
		case records[i].AccountType != models.AccountChecking:
			records[i].AccountType = models.AccountSavings
		}
	}
}

// applyCreditCardBalances synthesizes a running balance for credit-card
// statements anchored on the stated Previous Balance and New Balance. The
// balances are committed only when the cumulative walk lands on the New
// Balance within tolerance; otherwise they are discarded entirely.
func applyCreditCardBalances(records []models.Record, rawTexts []string) {
	prevBal, newBal, ok := findBalanceAnchors(rawTexts)
	if !ok {
		return
	}

	order := make([]int, len(records))
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(i, j int) bool {
		a, b := &records[order[i]], &records[order[j]]
		if a.AccountNumber != b.AccountNumber {
			return a.AccountNumber < b.AccountNumber
		}
		return a.DateRaw < b.DateRaw
	})

	running := prevBal
	balances := make(map[int]decimal.Decimal, len(order))
	for _, idx := range order {
		if records[idx].Amount == nil {
			continue
		}
		running = running.Add(*records[idx].Amount)
		balances[idx] = running
	}
	if running.Sub(newBal).Abs().GreaterThanOrEqual(ccBalanceTolerance) {
		return
	}
	for idx, bal := range balances {
		records[idx].Balance = models.Dec(bal)
	}
}

func findBalanceAnchors(rawTexts []string) (prevBal, newBal decimal.Decimal, ok bool) {
	var havePrev, haveNew bool
	for _, line := range rawTexts {
		if !havePrev {
			if m := prevBalanceRx.FindStringSubmatch(line); m != nil {
				if v, okN := currencyutils.NormalizeAmount(m[1]); okN {
					prevBal, havePrev = v, true
				}
			}
		}
		if !haveNew {
			if m := newBalanceRx.FindStringSubmatch(line); m != nil {
				if v, okN := currencyutils.NormalizeAmount(m[1]); okN {
					newBal, haveNew = v, true
				}
			}
		}
		if havePrev && haveNew {
			break
		}
	}
	return prevBal, newBal, havePrev && haveNew
}

// inferBalances fills missing running balances per account: the walk seeds
// from the first stated balance, advances by each row's amount, and resets
// whenever the statement states a balance (marker rows always reset).
func inferBalances(records []models.Record) {
	groups := groupByAccount(records)
	for _, idxs := range groups {
		var current *decimal.Decimal
		for _, idx := range idxs {
			if records[idx].Balance != nil {
				current = models.Dec(*records[idx].Balance)
				break
			}
		}
		if current == nil {
			continue
		}
		for _, idx := range idxs {
			rec := &records[idx]
			if rec.IsMarker() && rec.Balance != nil {
				current = models.Dec(*rec.Balance)
				continue
			}
			switch {
			case rec.Balance == nil && rec.Amount != nil:
				next := current.Add(*rec.Amount).Round(2)
				current = models.Dec(next)
				rec.Balance = models.Dec(next)
			case rec.Balance != nil:
				current = models.Dec(*rec.Balance)
			}
		}
	}
}

// groupByAccount returns record indexes grouped by account number,
// preserving the chronological order established by sortChronological.
func groupByAccount(records []models.Record) map[string][]int {
	groups := map[string][]int{}
	for i := range records {
		groups[records[i].AccountNumber] = append(groups[records[i].AccountNumber], i)
	}
	return groups
}

package reconcile

import (
	"sort"

	"github.com/shopspring/decimal"

	"ledgerlens/internal/models"
)

// DefaultMismatchTolerance is the allowed drift between a stated balance
// and the prior balance plus the row's amount before the row is flagged.
var DefaultMismatchTolerance = decimal.NewFromFloat(0.01)

// ComputeBalanceMismatches walks each account's records in statement order
// and flags rows whose stated balance disagrees with the previous balance
// plus the row's amount by more than the tolerance. Marker rows update the
// tracked balance but are never flagged themselves.
func ComputeBalanceMismatches(records []models.Record, tolerance decimal.Decimal) []models.Mismatch {
	var mismatches []models.Mismatch
	if len(records) == 0 {
		return mismatches
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

	lastBalance := map[string]*decimal.Decimal{}
	for _, idx := range order {
		rec := &records[idx]
		acct := rec.AccountNumber
		if rec.IsMarker() {
			if rec.Balance != nil {
				lastBalance[acct] = rec.Balance
			}
			continue
		}
		prev := lastBalance[acct]
		if rec.Amount != nil && rec.Balance != nil && prev != nil {
			expected := prev.Add(*rec.Amount).Round(2)
			provided := rec.Balance.Round(2)
			if expected.Sub(provided).Abs().GreaterThan(tolerance) {
				mismatches = append(mismatches, models.Mismatch{
					RawIndex:      rec.RawIndex,
					AccountNumber: acct,
					Date:          rec.Date,
					Description:   rec.Description,
					Amount:        *rec.Amount,
					PrevBalance:   *prev,
					Expected:      expected,
					Provided:      provided,
					Delta:         provided.Sub(expected).Round(2),
				})
			}
		}
		if rec.Balance != nil {
			lastBalance[acct] = rec.Balance
		}
	}
	return mismatches
}

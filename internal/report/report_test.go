package report

import (
	"encoding/json"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ledgerlens/internal/models"
	"ledgerlens/internal/statement"
)

func sampleResult() *statement.Result {
	debit := decimal.RequireFromString("-45.67")
	credit := decimal.RequireFromString("1200.00")
	balance := decimal.RequireFromString("1154.33")
	return &statement.Result{
		Records: []models.Record{
			{
				Description: "Grocery Store",
				Amount:      models.Dec(debit),
				AccountType: models.AccountChecking,
				LineType:    models.LineTransaction,
			},
			{
				Description: "Paycheck",
				Amount:      models.Dec(credit),
				AccountType: models.AccountChecking,
				LineType:    models.LineTransaction,
			},
			{
				Description: "Ending Balance",
				Balance:     models.Dec(balance),
				AccountType: models.AccountChecking,
				LineType:    models.LineMarker,
			},
		},
		Unparsed: []string{"[p1] 01/09 ???"},
		Profile: models.Profile{
			DefaultYear: 2024,
			Layout:      models.LayoutStandard,
		},
	}
}

func TestNewSummary(t *testing.T) {
	mismatches := []models.Mismatch{{Description: "Withdrawal"}}
	s := NewSummary(sampleResult(), "statement.pdf", mismatches)

	assert.NotEmpty(t, s.ReportID)
	assert.False(t, s.GeneratedAt.IsZero())
	assert.Equal(t, "statement.pdf", s.SourceFile)
	assert.Equal(t, string(models.LayoutStandard), s.Layout)
	assert.Equal(t, 2024, s.DefaultYear)
	assert.False(t, s.CreditCard)
	assert.Equal(t, 2, s.Transactions)
	assert.Equal(t, 1, s.Markers)
	assert.Equal(t, 1, s.Unparsed)
	assert.Equal(t, []string{string(models.AccountChecking)}, s.AccountTypes)
	assert.Equal(t, "1154.33", s.NetAmount)
	assert.Equal(t, 1, s.Mismatches)
}

func TestNewSummaryUniqueReportIDs(t *testing.T) {
	a := NewSummary(sampleResult(), "", nil)
	b := NewSummary(sampleResult(), "", nil)
	assert.NotEqual(t, a.ReportID, b.ReportID)
}

func TestGenerateJSON(t *testing.T) {
	s := NewSummary(sampleResult(), "statement.pdf", nil)
	out, err := NewGenerator(nil).Generate(s, "json")
	require.NoError(t, err)

	var decoded Summary
	require.NoError(t, json.Unmarshal(out, &decoded))
	assert.Equal(t, s.ReportID, decoded.ReportID)
	assert.Equal(t, s.Transactions, decoded.Transactions)
	assert.Equal(t, s.NetAmount, decoded.NetAmount)
}

func TestGenerateText(t *testing.T) {
	s := NewSummary(sampleResult(), "statement.pdf", nil)
	out, err := NewGenerator(nil).Generate(s, "text")
	require.NoError(t, err)

	assert.Contains(t, string(out), "transactions: 2")
	assert.Contains(t, string(out), "net amount: 1154.33")
}

func TestGenerateUnsupportedFormat(t *testing.T) {
	_, err := NewGenerator(nil).Generate(Summary{}, "xml")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported report format")
}

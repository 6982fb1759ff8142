package reconcile

import (
	"fmt"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ledgerlens/internal/models"
)

func dec(s string) *decimal.Decimal {
	d := decimal.RequireFromString(s)
	return &d
}

func txn(dateRaw, description, amount string) models.Record {
	rec := models.Record{
		DateRaw:     dateRaw,
		Description: description,
		LineType:    models.LineTransaction,
	}
	if amount != "" {
		rec.SetSignedAmount(decimal.RequireFromString(amount))
	}
	return rec
}

func TestApplyDepositAccountProfile(t *testing.T) {
	grocery := txn("01/05", "Grocery Store", "-45.67")
	grocery.AccountType = models.AccountChecking
	paycheck := txn("01/06", "Paycheck", "1200.00")
	paycheck.AccountType = models.AccountChecking
	records := []models.Record{
		grocery,
		paycheck,
		{
			DateRaw: "01/07", Description: "Ending Balance",
			LineType: models.LineMarker, AccountType: models.AccountChecking,
			Balance: dec("1154.33"),
		},
	}

	out := Apply(records, nil, models.Profile{}, DefaultOptions())

	require.Len(t, out, 3)
	require.NotNil(t, out[0].Balance)
	assert.Equal(t, "1108.66", out[0].Balance.StringFixed(2))
	require.NotNil(t, out[1].Balance)
	assert.Equal(t, "2308.66", out[1].Balance.StringFixed(2))
}

func TestApplyCreditCardProfile(t *testing.T) {
	purchase := txn("01/15", "AMAZON.COM", "-54.99")
	purchase.AccountType = models.AccountCreditCard
	payment := txn("01/18", "PAYMENT RECEIVED", "100.00")
	payment.AccountType = models.AccountCreditCard
	records := []models.Record{purchase, payment}
	rawTexts := []string{
		"Previous Balance $500.00",
		"New Balance $545.01",
	}

	out := Apply(records, rawTexts, models.Profile{CreditCard: true}, DefaultOptions())

	require.Len(t, out, 2)
	require.NotNil(t, out[0].Balance)
	assert.Equal(t, "445.01", out[0].Balance.StringFixed(2))
	require.NotNil(t, out[1].Balance)
	assert.Equal(t, "545.01", out[1].Balance.StringFixed(2))
}

func TestNormalizeAccountTypesWithoutCreditCard(t *testing.T) {
	records := []models.Record{
		{AccountType: models.AccountChecking},
		{AccountType: models.AccountUnknown},
		{AccountType: models.AccountSavings},
	}
	normalizeAccountTypes(records)

	assert.Equal(t, models.AccountChecking, records[0].AccountType)
	assert.Equal(t, models.AccountSavings, records[1].AccountType)
	assert.Equal(t, models.AccountSavings, records[2].AccountType)
}

func TestNormalizeAccountTypesWithCreditCard(t *testing.T) {
	records := []models.Record{
		{AccountType: models.AccountCreditCard},
		{AccountType: models.AccountUnknown},
		{AccountType: models.AccountChecking},
	}
	normalizeAccountTypes(records)

	assert.Equal(t, models.AccountCreditCard, records[1].AccountType)
	assert.Equal(t, models.AccountChecking, records[2].AccountType)
}

func TestDropEmpty(t *testing.T) {
	records := []models.Record{
		txn("01/05", "Grocery Store", "-45.67"),
		{DateRaw: "01/06", Description: "stray prose row", LineType: models.LineTransaction},
	}
	kept := dropEmpty(records)

	require.Len(t, kept, 1)
	assert.Equal(t, "Grocery Store", kept[0].Description)
}

func TestFilterOutliersNullsAbsurdAmounts(t *testing.T) {
	var records []models.Record
	for i := 0; i < 49; i++ {
		records = append(records, txn("01/05", fmt.Sprintf("Purchase %d", i), "-20.00"))
	}
	outlier := txn("01/06", "Misread reference number", "-12345678.00")
	outlier.Balance = dec("1000.00")
	records = append(records, outlier)

	filterOutliers(records, DefaultOptions())

	assert.Nil(t, records[49].Amount)
	assert.Nil(t, records[49].Debit)
	assert.Nil(t, records[49].Credit)
	// The balance column is never touched.
	require.NotNil(t, records[49].Balance)
	assert.NotNil(t, records[0].Amount)
}

func TestFilterOutliersSkipsSmallStatements(t *testing.T) {
	records := []models.Record{
		txn("01/05", "Coffee", "-4.50"),
		txn("01/06", "House purchase", "-450000.00"),
	}
	filterOutliers(records, DefaultOptions())

	assert.NotNil(t, records[1].Amount)
}

func TestInferBalancesBackfillsFromMarker(t *testing.T) {
	records := []models.Record{
		txn("01/05", "Grocery Store", "-45.67"),
		txn("01/06", "Paycheck", "1200.00"),
		{DateRaw: "01/07", Description: "Ending Balance", LineType: models.LineMarker, Balance: dec("1154.33")},
	}
	inferBalances(records)

	require.NotNil(t, records[0].Balance)
	assert.Equal(t, "1108.66", records[0].Balance.StringFixed(2))
	require.NotNil(t, records[1].Balance)
	assert.Equal(t, "2308.66", records[1].Balance.StringFixed(2))
	assert.Equal(t, "1154.33", records[2].Balance.StringFixed(2))
}

func TestInferBalancesStatedBalanceResets(t *testing.T) {
	first := txn("01/05", "Deposit", "100.00")
	first.Balance = dec("500.00")
	records := []models.Record{
		first,
		txn("01/06", "Withdrawal", "-50.00"),
	}
	inferBalances(records)

	assert.Equal(t, "500.00", records[0].Balance.StringFixed(2))
	require.NotNil(t, records[1].Balance)
	assert.Equal(t, "450.00", records[1].Balance.StringFixed(2))
}

func TestInferBalancesNoStatedBalance(t *testing.T) {
	records := []models.Record{
		txn("01/05", "Grocery Store", "-45.67"),
	}
	inferBalances(records)

	assert.Nil(t, records[0].Balance)
}

func TestApplyCreditCardBalancesCommitsOnMatch(t *testing.T) {
	records := []models.Record{
		txn("01/15", "AMAZON.COM", "-54.99"),
		txn("01/18", "PAYMENT RECEIVED", "100.00"),
	}
	rawTexts := []string{
		"Previous Balance $500.00",
		"New Balance $545.01",
	}
	applyCreditCardBalances(records, rawTexts)

	require.NotNil(t, records[0].Balance)
	assert.Equal(t, "445.01", records[0].Balance.StringFixed(2))
	require.NotNil(t, records[1].Balance)
	assert.Equal(t, "545.01", records[1].Balance.StringFixed(2))
}

func TestApplyCreditCardBalancesDiscardsOnDrift(t *testing.T) {
	records := []models.Record{
		txn("01/15", "AMAZON.COM", "-54.99"),
	}
	rawTexts := []string{
		"Previous Balance $500.00",
		"New Balance $999.99",
	}
	applyCreditCardBalances(records, rawTexts)

	assert.Nil(t, records[0].Balance)
}

func TestApplyCreditCardBalancesNeedsBothAnchors(t *testing.T) {
	records := []models.Record{
		txn("01/15", "AMAZON.COM", "-54.99"),
	}
	applyCreditCardBalances(records, []string{"Previous Balance $500.00"})

	assert.Nil(t, records[0].Balance)
}

func TestSortChronologicalZeroDatesLast(t *testing.T) {
	records := []models.Record{
		{DateRaw: "??/??", Description: "undated", LineType: models.LineTransaction},
		txn("01/06", "second", "-1.00"),
		txn("01/05", "first", "-1.00"),
	}
	records[1].Date = mustDate(2024, 1, 6)
	records[2].Date = mustDate(2024, 1, 5)
	sortChronological(records)

	assert.Equal(t, "first", records[0].Description)
	assert.Equal(t, "second", records[1].Description)
	assert.Equal(t, "undated", records[2].Description)
}

func TestComputeBalanceMismatches(t *testing.T) {
	good := txn("01/05", "Deposit", "100.00")
	good.Balance = dec("600.00")
	bad := txn("01/06", "Withdrawal", "-50.00")
	bad.Balance = dec("575.00")
	bad.RawIndex = 7
	records := []models.Record{
		{DateRaw: "01/04", Description: "Beginning Balance", LineType: models.LineMarker, Balance: dec("500.00")},
		good,
		bad,
	}

	mismatches := ComputeBalanceMismatches(records, DefaultMismatchTolerance)

	require.Len(t, mismatches, 1)
	m := mismatches[0]
	assert.Equal(t, 7, m.RawIndex)
	assert.Equal(t, "Withdrawal", m.Description)
	assert.Equal(t, "550.00", m.Expected.StringFixed(2))
	assert.Equal(t, "575.00", m.Provided.StringFixed(2))
	assert.Equal(t, "25.00", m.Delta.StringFixed(2))
}

func TestComputeBalanceMismatchesWithinTolerance(t *testing.T) {
	row := txn("01/05", "Deposit", "100.00")
	row.Balance = dec("600.01")
	records := []models.Record{
		{DateRaw: "01/04", Description: "Beginning Balance", LineType: models.LineMarker, Balance: dec("500.00")},
		row,
	}
	assert.Empty(t, ComputeBalanceMismatches(records, DefaultMismatchTolerance))
}

func TestComputeBalanceMismatchesPerAccount(t *testing.T) {
	chk := txn("01/05", "Deposit", "100.00")
	chk.AccountNumber = "1111"
	chk.Balance = dec("600.00")
	chkMarker := models.Record{
		DateRaw: "01/04", Description: "Beginning Balance",
		LineType: models.LineMarker, AccountNumber: "1111", Balance: dec("500.00"),
	}
	sav := txn("01/05", "Dividend", "10.00")
	sav.AccountNumber = "2222"
	sav.Balance = dec("999.00")
	savMarker := models.Record{
		DateRaw: "01/04", Description: "Beginning Balance",
		LineType: models.LineMarker, AccountNumber: "2222", Balance: dec("100.00"),
	}
	records := []models.Record{chkMarker, chk, savMarker, sav}

	mismatches := ComputeBalanceMismatches(records, DefaultMismatchTolerance)

	require.Len(t, mismatches, 1)
	assert.Equal(t, "2222", mismatches[0].AccountNumber)
	assert.Equal(t, "110.00", mismatches[0].Expected.StringFixed(2))
}

func mustDate(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

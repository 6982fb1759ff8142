package grammar

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDateAmountDescParser(t *testing.T) {
	rec, ok := DateAmountDescParser{}.TryParse("01/05 45.67 GROCERY STORE", stdCtx())
	require.True(t, ok)
	assert.Equal(t, "GROCERY STORE", rec.Description)
	require.NotNil(t, rec.Amount)
	assert.Equal(t, "45.67", rec.Amount.String())
	assert.Nil(t, rec.Balance)
}

func TestDateAmountDescParserSectionSign(t *testing.T) {
	ctx := stdCtx()
	ctx.SectionSign = -1
	rec, ok := DateAmountDescParser{}.TryParse("01/05 45.67 GROCERY STORE", ctx)
	require.True(t, ok)
	assert.Equal(t, "-45.67", rec.Amount.String())
}

func TestDateAmountDescParserHintSign(t *testing.T) {
	rec, ok := DateAmountDescParser{}.TryParse("01/06 1,200.00 PAYROLL DIRECT DEP", stdCtx())
	require.True(t, ok)
	assert.Equal(t, "1200", rec.Amount.String())

	rec, ok = DateAmountDescParser{}.TryParse("01/07 35.00 MONTHLY SERVICE FEE", stdCtx())
	require.True(t, ok)
	assert.Equal(t, "-35", rec.Amount.String())
}

func TestDateAmountDescParserRejects(t *testing.T) {
	// Second token is not an amount.
	_, ok := DateAmountDescParser{}.TryParse("01/05 GROCERY 45.67", stdCtx())
	assert.False(t, ok)

	_, ok = DateAmountDescParser{}.TryParse("01/05 45.67", stdCtx())
	assert.False(t, ok)
}

func TestDateDescAmountBalanceParser(t *testing.T) {
	rec, ok := DateDescAmountBalanceParser{}.TryParse("01/05 GROCERY STORE 45.67 1,154.33", stdCtx())
	require.True(t, ok)
	assert.Equal(t, "GROCERY STORE", rec.Description)
	require.NotNil(t, rec.Amount)
	assert.Equal(t, "45.67", rec.Amount.String())
	require.NotNil(t, rec.Balance)
	assert.Equal(t, "1154.33", rec.Balance.String())
}

func TestDateDescAmountBalanceParserRequiresTwoTrailing(t *testing.T) {
	// A single trailing money token is not this layout.
	_, ok := DateDescAmountBalanceParser{}.TryParse("01/05 GROCERY STORE 45.67", stdCtx())
	assert.False(t, ok)
}

func TestDateDescDebitCreditBalanceParserColumns(t *testing.T) {
	rec, ok := DateDescDebitCreditBalanceParser{}.TryParse("01/06 TRANSFER OUT 50.00 25.00 975.00", stdCtx())
	require.True(t, ok)
	assert.Equal(t, "TRANSFER OUT", rec.Description)
	require.NotNil(t, rec.Debit)
	assert.Equal(t, "50", rec.Debit.String())
	require.NotNil(t, rec.Credit)
	assert.Equal(t, "25", rec.Credit.String())
	require.NotNil(t, rec.Amount)
	assert.Equal(t, "-25", rec.Amount.String())
	require.NotNil(t, rec.Balance)
	assert.Equal(t, "975", rec.Balance.String())
}

func TestDateDescDebitCreditBalanceParserSingleAmount(t *testing.T) {
	rec, ok := DateDescDebitCreditBalanceParser{}.TryParse("01/05 ATM WITHDRAWAL 100.00 1,054.33", stdCtx())
	require.True(t, ok)
	require.NotNil(t, rec.Amount)
	assert.Equal(t, "-100", rec.Amount.String())
	require.NotNil(t, rec.Balance)
	assert.Equal(t, "1054.33", rec.Balance.String())
}

func TestDateDescDebitCreditBalanceParserRejects(t *testing.T) {
	_, ok := DateDescDebitCreditBalanceParser{}.TryParse("01/05 ONLY ONE 45.67", stdCtx())
	assert.False(t, ok)

	_, ok = DateDescDebitCreditBalanceParser{}.TryParse("no date here 45.67 100.00", stdCtx())
	assert.False(t, ok)
}

package grammar

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ledgerlens/internal/models"
)

func TestCreditCardParserPurchaseIsNegative(t *testing.T) {
	rec, ok := CreditCardParser{}.TryParse("01/15 01/16 12345678 AMAZON.COM 54.99", stdCtx())
	require.True(t, ok)
	assert.Equal(t, "AMAZON.COM REF:12345678", rec.Description)
	require.NotNil(t, rec.Amount)
	assert.Equal(t, "-54.99", rec.Amount.String())
	require.NotNil(t, rec.Debit)
	assert.Equal(t, "54.99", rec.Debit.String())
	assert.Nil(t, rec.Credit)
	assert.Nil(t, rec.Balance)
	assert.Equal(t, models.AccountCreditCard, rec.AccountType)
	assert.Equal(t, time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC), rec.Date)
	assert.Equal(t, time.Date(2024, 1, 16, 0, 0, 0, 0, time.UTC), rec.PostDate)
}

func TestCreditCardParserPaymentIsPositive(t *testing.T) {
	rec, ok := CreditCardParser{}.TryParse("01/20 01/21 87654321 PAYMENT RECEIVED - THANK YOU 100.00", stdCtx())
	require.True(t, ok)
	require.NotNil(t, rec.Amount)
	assert.Equal(t, "100", rec.Amount.String())
	require.NotNil(t, rec.Credit)
	assert.Nil(t, rec.Debit)
}

func TestCreditCardParserRefundIsPositive(t *testing.T) {
	rec, ok := CreditCardParser{}.TryParse("01/22 01/23 11112222 REFUND ACME STORE 25.00", stdCtx())
	require.True(t, ok)
	require.NotNil(t, rec.Amount)
	assert.Equal(t, "25", rec.Amount.String())
}

func TestCreditCardParserKeepsKnownAccountType(t *testing.T) {
	ctx := stdCtx()
	ctx.AccountType = models.AccountChecking
	rec, ok := CreditCardParser{}.TryParse("01/15 01/16 12345678 AMAZON.COM 54.99", ctx)
	require.True(t, ok)
	assert.Equal(t, models.AccountChecking, rec.AccountType)
}

func TestCreditCardParserRejects(t *testing.T) {
	// Missing the posting date and reference.
	_, ok := CreditCardParser{}.TryParse("01/15 AMAZON.COM 54.99", stdCtx())
	assert.False(t, ok)

	// Reference shorter than 8 digits.
	_, ok = CreditCardParser{}.TryParse("01/15 01/16 1234567 AMAZON.COM 54.99", stdCtx())
	assert.False(t, ok)

	// No trailing amount.
	_, ok = CreditCardParser{}.TryParse("01/15 01/16 12345678 AMAZON.COM", stdCtx())
	assert.False(t, ok)
}

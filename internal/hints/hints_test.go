package hints

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultVocabulary(t *testing.T) {
	s := Default()

	assert.True(t, s.CreditHit("DIRECT DEPOSIT PAYROLL"))
	assert.True(t, s.CreditHit("INTEREST PAYMENT"))
	assert.False(t, s.CreditHit("GROCERY STORE"))

	assert.True(t, s.DebitHit("ATM WITHDRAWAL"))
	assert.True(t, s.DebitHit("MONTHLY SERVICE FEE"))
	assert.False(t, s.DebitHit("GROCERY STORE"))

	assert.True(t, s.CardCreditHit("REFUND ACME CORP"))
	assert.False(t, s.CardCreditHit("AMAZON.COM"))
}

func TestLoadOverridesOneSection(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "hints.yaml")
	content := "credit:\n  - gift\n  - bonus\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0600))

	s, err := Load(path)
	require.NoError(t, err)

	// Overridden section replaces the defaults and is upper-cased.
	assert.True(t, s.CreditHit("HOLIDAY GIFT"))
	assert.True(t, s.CreditHit("SIGNING BONUS"))
	assert.False(t, s.CreditHit("DEPOSIT"))

	// Untouched sections keep the defaults.
	assert.True(t, s.DebitHit("ATM WITHDRAWAL"))
	assert.True(t, s.CardCreditHit("REFUND"))
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	assert.Error(t, err)
}

func TestLoadInvalidYAML(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "bad.yaml")
	require.NoError(t, os.WriteFile(path, []byte("credit: {broken"), 0600))

	_, err := Load(path)
	assert.Error(t, err)
}

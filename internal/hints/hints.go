// Package hints holds the keyword vocabularies the sign-inference heuristics
// match against transaction descriptions. The defaults cover common US issuer
// phrasing; an optional YAML file can replace them for issuer-specific tuning
// without a rebuild.
package hints

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"ledgerlens/internal/parsererror"
)

// Set is one vocabulary bundle. All keywords are matched case-insensitively
// against the upper-cased description.
type Set struct {
	// Credit-leaning description keywords (inflow).
	Credit []string `yaml:"credit"`
	// Debit-leaning description keywords (outflow).
	Debit []string `yaml:"debit"`
	// Credit-card credit/refund keywords (reduce liability).
	CardCredit []string `yaml:"card_credit"`
}

// Default returns the built-in vocabulary.
func Default() *Set {
	return &Set{
		Credit: []string{
			"DEPOSIT",
			"CREDIT",
			"INTEREST",
			"REFUND",
			"REVERSAL",
			"PAYROLL",
			"PAYMENT RECEIVED",
		},
		Debit: []string{
			"WITHDRAW",
			"DEBIT",
			"PURCHASE",
			"PAYMENT",
			"FEE",
			"CHARGE",
			"CHECK",
			"BILLPAY",
			"PMT",
		},
		CardCredit: []string{
			"CREDIT",
			"REFUND",
			"REVERSAL",
		},
	}
}

// Load reads a Set from a YAML file. Empty sections fall back to the
// defaults so an override file only needs to list the vocabularies it tunes.
func Load(path string) (*Set, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading hints file: %w", err)
	}
	var s Set
	if err := yaml.Unmarshal(data, &s); err != nil {
		return nil, &parsererror.ParseError{Component: "hints", Field: "file", Value: path, Err: err}
	}
	def := Default()
	if len(s.Credit) == 0 {
		s.Credit = def.Credit
	}
	if len(s.Debit) == 0 {
		s.Debit = def.Debit
	}
	if len(s.CardCredit) == 0 {
		s.CardCredit = def.CardCredit
	}
	s.upcase()
	return &s, nil
}

// CreditHit reports whether any credit-leaning keyword appears in the
// upper-cased description.
func (s *Set) CreditHit(descUpper string) bool {
	return containsAny(descUpper, s.Credit)
}

// DebitHit reports whether any debit-leaning keyword appears in the
// upper-cased description.
func (s *Set) DebitHit(descUpper string) bool {
	return containsAny(descUpper, s.Debit)
}

// CardCreditHit reports whether any credit-card refund/credit keyword
// appears in the upper-cased description.
func (s *Set) CardCreditHit(descUpper string) bool {
	return containsAny(descUpper, s.CardCredit)
}

func (s *Set) upcase() {
	for _, list := range [][]string{s.Credit, s.Debit, s.CardCredit} {
		for i, kw := range list {
			list[i] = strings.ToUpper(kw)
		}
	}
}

func containsAny(haystack string, needles []string) bool {
	for _, n := range needles {
		if strings.Contains(haystack, n) {
			return true
		}
	}
	return false
}

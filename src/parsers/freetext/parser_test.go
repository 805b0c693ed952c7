// backend/src/parsers/freetext/parser_test.go
package freetext

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/username/dealparse/backend/src/models"
)

const sampleConfirmation = `BANK ALPHA confirms a 5y note referencing ACME FLOAT.
Size EUR 25 mio, coupon sofr + 120 bps, paid quarterly.
ISIN XS0123456789, settlement 12/31/24.`

func TestParseFreeTextConfirmation(t *testing.T) {
	entities := NewParser().Parse(sampleConfirmation)

	assert.Equal(t, "XS0123456789", entities["ISIN"])
	assert.Equal(t, "BANK ALPHA", entities["Counterparty"])
	assert.Equal(t, "Quarterly", entities["PaymentFrequency"])
	assert.Equal(t, "sofr+120bps", entities["Coupon/Spread"])
	assert.Equal(t, "2024-12-31", entities["Date"])
	assert.Equal(t, "ACME", entities["Underlying"])

	notional, ok := entities["Notional"].(*models.MoneyValue)
	require.True(t, ok)
	assert.Equal(t, 25.0, notional.Amount)
	assert.Equal(t, "EUR", notional.Currency)
	assert.Equal(t, "million", notional.Unit)
}

func TestParseNotionalScaleNormalization(t *testing.T) {
	tests := []struct {
		input string
		unit  string
	}{
		{"notional 3 mn outstanding", "million"},
		{"notional 2 bn outstanding", "billion"},
		{"notional 1.25 billion outstanding", "billion"},
	}
	for _, tt := range tests {
		entities := NewParser().Parse(tt.input)
		notional, ok := entities["Notional"].(*models.MoneyValue)
		require.True(t, ok, tt.input)
		assert.Equal(t, tt.unit, notional.Unit, tt.input)
	}
}

func TestParsePaymentFrequencyCapitalized(t *testing.T) {
	entities := NewParser().Parse("coupon paid SEMI-ANNUAL in arrears")
	assert.Equal(t, "Semi-annual", entities["PaymentFrequency"])
}

func TestParseUnderlyingLabelFallback(t *testing.T) {
	entities := NewParser().Parse("Underlying: Tech Basket")
	assert.Equal(t, "Tech Basket", entities["Underlying"])
}

func TestParseTickerFloatOverridesLabel(t *testing.T) {
	entities := NewParser().Parse("Underlying: Tech Basket\nreference ACME FLOAT notes")
	assert.Equal(t, "ACME", entities["Underlying"])
}

func TestParseNoMatchesOmitsEverything(t *testing.T) {
	entities := NewParser().Parse("the quick brown fox")
	assert.Empty(t, entities)
}

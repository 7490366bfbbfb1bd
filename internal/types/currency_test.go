package types

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestCurrencyFormatAmount(t *testing.T) {
	tests := []struct {
		currency Currency
		amount   string
		expected string
	}{
		{CurrencyUSD, "45231.5", "$45,231.5"},
		{CurrencyUSD, "999", "$999"},
		{CurrencyUSD, "1000", "$1,000"},
		{CurrencyEUR, "1234567.89", "€1,234,567.89"},
		{CurrencyINR, "50000", "₹50,000"},
		{CurrencyUSD, "-1500.25", "$-1,500.25"},
	}
	for _, tt := range tests {
		amount, err := decimal.NewFromString(tt.amount)
		assert.NoError(t, err)
		assert.Equal(t, tt.expected, tt.currency.FormatAmount(amount))
	}
}

func TestCurrencySymbol(t *testing.T) {
	assert.Equal(t, "$", CurrencyUSD.Symbol())
	assert.Equal(t, "£", CurrencyGBP.Symbol())
	// Unknown codes fall back to the dollar sign.
	assert.Equal(t, "$", Currency("XYZ").Symbol())
}

func TestCurrencyValidate(t *testing.T) {
	assert.NoError(t, CurrencyUSD.Validate())
	assert.Error(t, Currency("XYZ").Validate())
}

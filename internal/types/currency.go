package types

import (
	"strings"

	"github.com/shopspring/decimal"

	ierr "github.com/pulseboard/pulseboard/internal/errors"
)

// Currency is an ISO currency code supported for display formatting
type Currency string

const (
	CurrencyUSD Currency = "USD"
	CurrencyEUR Currency = "EUR"
	CurrencyGBP Currency = "GBP"
	CurrencyJPY Currency = "JPY"
	CurrencyCAD Currency = "CAD"
	CurrencyAUD Currency = "AUD"
	CurrencyCHF Currency = "CHF"
	CurrencyCNY Currency = "CNY"
	CurrencyINR Currency = "INR"
	CurrencyBRL Currency = "BRL"
	CurrencyMXN Currency = "MXN"
	CurrencyZAR Currency = "ZAR"
)

// DefaultCurrency is used when a user has no currency configured
const DefaultCurrency = CurrencyUSD

// currencySymbols is the immutable display symbol table
var currencySymbols = map[Currency]string{
	CurrencyUSD: "$",
	CurrencyEUR: "€",
	CurrencyGBP: "£",
	CurrencyJPY: "¥",
	CurrencyCAD: "C$",
	CurrencyAUD: "A$",
	CurrencyCHF: "CHF",
	CurrencyCNY: "¥",
	CurrencyINR: "₹",
	CurrencyBRL: "R$",
	CurrencyMXN: "$",
	CurrencyZAR: "R",
}

// Validate validates the currency code
func (c Currency) Validate() error {
	if _, ok := currencySymbols[c]; !ok {
		return ierr.NewErrorf("unsupported currency: %s", c).
			WithHint("currency must be a supported ISO code").
			Mark(ierr.ErrValidation)
	}
	return nil
}

// Symbol returns the display symbol, defaulting to "$" for unknown codes
func (c Currency) Symbol() string {
	if symbol, ok := currencySymbols[c]; ok {
		return symbol
	}
	return "$"
}

// FormatAmount renders an amount with the currency symbol and thousands
// separators, e.g. 45231.5 USD -> "$45,231.5"
func (c Currency) FormatAmount(amount decimal.Decimal) string {
	return c.Symbol() + groupThousands(amount.String())
}

func groupThousands(s string) string {
	sign := ""
	if strings.HasPrefix(s, "-") {
		sign = "-"
		s = s[1:]
	}

	intPart := s
	fracPart := ""
	if dot := strings.IndexByte(s, '.'); dot >= 0 {
		intPart = s[:dot]
		fracPart = s[dot:]
	}

	var b strings.Builder
	for i, digit := range intPart {
		if i > 0 && (len(intPart)-i)%3 == 0 {
			b.WriteByte(',')
		}
		b.WriteRune(digit)
	}

	return sign + b.String() + fracPart
}

package domain

import (
	gomoney "github.com/Rhymond/go-money"
)

// defaultFractionDigits is used for commodity codes that are not part of the
// ISO 4217 registry (e.g. ad hoc commodities from imported files).
const defaultFractionDigits = 2

// FractionDigits returns the number of minor-unit digits for a currency code,
// e.g. 2 for USD, 0 for JPY. Unknown codes fall back to 2.
func FractionDigits(currencyCode string) int {
	if c := gomoney.GetCurrency(currencyCode); c != nil {
		return c.Fraction
	}
	return defaultFractionDigits
}

// MinorUnitDenomFor returns the canonical denominator for a currency,
// 10^fractionDigits. All Money arithmetic rounds its results to this denominator.
func MinorUnitDenomFor(currencyCode string) int64 {
	denom := int64(1)
	for i := 0; i < FractionDigits(currencyCode); i++ {
		denom *= 10
	}
	return denom
}

package domain

import (
	"fmt"
	"math/big"

	gomoney "github.com/Rhymond/go-money"
	"github.com/shopspring/decimal"

	"github.com/finbook/finbook/internal/apperrors"
)

// Money is an exact fixed-point amount in a single currency, stored as the
// fraction num/denom. It is immutable: every operation returns a new instance,
// so sharing a Money value never exposes callers to cross-mutation.
//
// Arithmetic is exact rational arithmetic; every result is rounded to the
// currency's canonical minor-unit denominator (10^fractionDigits) using
// round-half-even.
type Money struct {
	num      int64
	denom    int64
	currency string
}

// NewMoney creates a Money from an exact fraction and a currency code.
// The denominator must be positive.
func NewMoney(num, denom int64, currencyCode string) (Money, error) {
	if denom <= 0 {
		return Money{}, fmt.Errorf("%w: denominator %d must be positive", apperrors.ErrMalformedAmount, denom)
	}
	if currencyCode == "" {
		return Money{}, fmt.Errorf("%w: missing currency code", apperrors.ErrMalformedAmount)
	}
	return Money{num: num, denom: denom, currency: currencyCode}, nil
}

// NewMoneyFromString parses a decimal amount string ("10.50", "-3", "1e2")
// at the currency's canonical fraction-digit count. Excess precision is
// rounded half-even; non-numeric input fails with ErrMalformedAmount.
func NewMoneyFromString(amount, currencyCode string) (Money, error) {
	if currencyCode == "" {
		return Money{}, fmt.Errorf("%w: missing currency code", apperrors.ErrMalformedAmount)
	}
	d, err := decimal.NewFromString(amount)
	if err != nil {
		return Money{}, fmt.Errorf("%w: %q is not a decimal amount", apperrors.ErrMalformedAmount, amount)
	}
	digits := FractionDigits(currencyCode)
	num := d.RoundBank(int32(digits)).Shift(int32(digits)).IntPart()
	return Money{num: num, denom: MinorUnitDenomFor(currencyCode), currency: currencyCode}, nil
}

// ZeroMoney returns the zero amount in the given currency. It is the default
// split amount when a transaction's content is deleted or relocated.
func ZeroMoney(currencyCode string) Money {
	return Money{num: 0, denom: MinorUnitDenomFor(currencyCode), currency: currencyCode}
}

// Numerator returns the stored numerator.
func (m Money) Numerator() int64 { return m.num }

// Denominator returns the stored denominator.
func (m Money) Denominator() int64 { return m.denom }

// CurrencyCode returns the ISO 4217 code of the amount's currency.
func (m Money) CurrencyCode() string { return m.currency }

// MinorUnitDenominator returns the canonical denominator of the amount's
// currency, 10^fractionDigits.
func (m Money) MinorUnitDenominator() int64 {
	return MinorUnitDenomFor(m.currency)
}

// MinorUnits returns the amount expressed in minor units at the canonical
// denominator, rounded half-even if the stored fraction is finer.
func (m Money) MinorUnits() int64 {
	return roundHalfEvenToDenom(m.rat(), m.MinorUnitDenominator())
}

func (m Money) rat() *big.Rat {
	return big.NewRat(m.num, m.denom)
}

// canonical returns a copy of m rounded to the canonical minor-unit denominator.
func (m Money) canonical() Money {
	denom := m.MinorUnitDenominator()
	return Money{num: roundHalfEvenToDenom(m.rat(), denom), denom: denom, currency: m.currency}
}

func (m Money) guardCurrency(other Money) error {
	if m.currency != other.currency {
		return fmt.Errorf("%w: %s vs %s", apperrors.ErrIncompatibleCurrency, m.currency, other.currency)
	}
	return nil
}

// Add returns m + other, rounded to the minor-unit denominator.
// Both operands must share a currency.
func (m Money) Add(other Money) (Money, error) {
	if err := m.guardCurrency(other); err != nil {
		return Money{}, err
	}
	sum := new(big.Rat).Add(m.rat(), other.rat())
	return m.fromRat(sum), nil
}

// Subtract returns m - other. Both operands must share a currency.
func (m Money) Subtract(other Money) (Money, error) {
	if err := m.guardCurrency(other); err != nil {
		return Money{}, err
	}
	diff := new(big.Rat).Sub(m.rat(), other.rat())
	return m.fromRat(diff), nil
}

// MultiplyInt scales the amount by a dimensionless integer.
func (m Money) MultiplyInt(factor int64) Money {
	product := new(big.Rat).Mul(m.rat(), new(big.Rat).SetInt64(factor))
	return m.fromRat(product)
}

// MultiplyFraction scales the amount by the exact fraction num/denom,
// rounding the result half-even to the minor-unit denominator.
func (m Money) MultiplyFraction(num, denom int64) (Money, error) {
	if denom <= 0 {
		return Money{}, fmt.Errorf("%w: scalar denominator %d must be positive", apperrors.ErrMalformedAmount, denom)
	}
	product := new(big.Rat).Mul(m.rat(), big.NewRat(num, denom))
	return m.fromRat(product), nil
}

// MultiplyDecimal scales the amount by a dimensionless decimal scalar.
func (m Money) MultiplyDecimal(factor decimal.Decimal) Money {
	product := new(big.Rat).Mul(m.rat(), factor.Rat())
	return m.fromRat(product)
}

// Negate returns the amount with its sign flipped.
func (m Money) Negate() Money {
	return Money{num: -m.num, denom: m.denom, currency: m.currency}
}

// Abs returns the non-negative magnitude of the amount.
func (m Money) Abs() Money {
	if m.num < 0 {
		return m.Negate()
	}
	return m
}

// IsNegative reports whether the amount is below zero.
func (m Money) IsNegative() bool { return m.num < 0 }

// IsZero reports whether the amount equals zero.
func (m Money) IsZero() bool { return m.num == 0 }

// Cmp compares two amounts of the same currency: -1 if m < other, 0 if equal,
// +1 if m > other.
func (m Money) Cmp(other Money) (int, error) {
	if err := m.guardCurrency(other); err != nil {
		return 0, err
	}
	return m.rat().Cmp(other.rat()), nil
}

// Equal reports whether the two amounts have the same currency and the same
// exact value. Representation does not matter: 1/2 equals 50/100.
func (m Money) Equal(other Money) bool {
	if m.currency != other.currency {
		return false
	}
	return m.rat().Cmp(other.rat()) == 0
}

// ToPlainString renders the amount as a plain decimal string at the currency's
// fraction-digit count, e.g. "10.50" or "-3.00". The output parses back to an
// equal Money via NewMoneyFromString.
func (m Money) ToPlainString() string {
	c := m.canonical()
	return decimal.New(c.num, -int32(FractionDigits(m.currency))).StringFixed(int32(FractionDigits(m.currency)))
}

// Display renders the amount with the currency's locale formatting, e.g. "$10.50".
// Display output is for presentation only and is not parseable.
func (m Money) Display() string {
	return gomoney.New(m.MinorUnits(), m.currency).Display()
}

// Float64 returns a lossy float representation, for display purposes only.
func (m Money) Float64() float64 {
	f, _ := m.rat().Float64()
	return f
}

// String implements fmt.Stringer.
func (m Money) String() string {
	return m.ToPlainString() + " " + m.currency
}

func (m Money) fromRat(r *big.Rat) Money {
	denom := m.MinorUnitDenominator()
	return Money{num: roundHalfEvenToDenom(r, denom), denom: denom, currency: m.currency}
}

// roundHalfEvenToDenom returns the numerator of r expressed over denom,
// rounding exact ties to the nearest even numerator (banker's rounding).
func roundHalfEvenToDenom(r *big.Rat, denom int64) int64 {
	scaled := new(big.Rat).Mul(r, new(big.Rat).SetInt64(denom))
	q, rem := new(big.Int).QuoRem(scaled.Num(), scaled.Denom(), new(big.Int))
	if rem.Sign() == 0 {
		return q.Int64()
	}
	twice := new(big.Int).Lsh(new(big.Int).Abs(rem), 1)
	cmp := twice.Cmp(scaled.Denom())
	if cmp > 0 || (cmp == 0 && q.Bit(0) == 1) {
		if scaled.Num().Sign() < 0 {
			q.Sub(q, big.NewInt(1))
		} else {
			q.Add(q, big.NewInt(1))
		}
	}
	return q.Int64()
}

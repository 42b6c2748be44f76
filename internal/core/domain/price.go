package domain

import (
	"fmt"
	"math/big"
	"time"

	"github.com/finbook/finbook/internal/apperrors"
)

// PriceSourceUser tags prices captured through manual user entry, as opposed
// to prices produced by an import pipeline.
const PriceSourceUser = "user:xfer-dialog"

// Price is an exchange-rate record between two commodities:
// 1 unit of CommodityCode = ValueNum/ValueDenom units of CurrencyCode, as of Date.
//
// Prices are supplied externally (user entry or import) and are never deleted
// automatically. The record itself computes nothing beyond Convert; rate
// discovery and selection belong to the caller.
type Price struct {
	EntityBase
	CommodityCode string    `json:"commodityCode"`
	CurrencyCode  string    `json:"currencyCode"`
	Date          time.Time `json:"date"`
	Source        string    `json:"source,omitempty"`
	Type          string    `json:"type,omitempty"`
	ValueNum      int64     `json:"valueNum"`
	ValueDenom    int64     `json:"valueDenom"`
}

// NewPrice creates a price record for the given commodity pair. The rate
// denominator must be positive; anything else fails with ErrInvalidRate.
func NewPrice(commodityCode, currencyCode string, valueNum, valueDenom int64, date time.Time) (*Price, error) {
	if valueDenom <= 0 {
		return nil, fmt.Errorf("%w: denominator %d must be positive", apperrors.ErrInvalidRate, valueDenom)
	}
	return &Price{
		EntityBase:    NewEntityBase(),
		CommodityCode: commodityCode,
		CurrencyCode:  currencyCode,
		Date:          date,
		ValueNum:      valueNum,
		ValueDenom:    valueDenom,
	}, nil
}

// SetValue replaces the rate fraction, keeping the positive-denominator
// invariant. Used by import/edit flows.
func (p *Price) SetValue(valueNum, valueDenom int64) error {
	if valueDenom <= 0 {
		return fmt.Errorf("%w: denominator %d must be positive", apperrors.ErrInvalidRate, valueDenom)
	}
	p.ValueNum = valueNum
	p.ValueDenom = valueDenom
	p.Touch()
	return nil
}

// Convert translates an amount denominated in the price's commodity into the
// price's currency, applying the same round-half-even rule as Money arithmetic.
func (p *Price) Convert(amount Money) (Money, error) {
	if amount.CurrencyCode() != p.CommodityCode {
		return Money{}, fmt.Errorf("%w: amount is in %s, price converts from %s",
			apperrors.ErrIncompatibleCurrency, amount.CurrencyCode(), p.CommodityCode)
	}
	rate := big.NewRat(p.ValueNum, p.ValueDenom)
	converted := new(big.Rat).Mul(big.NewRat(amount.Numerator(), amount.Denominator()), rate)
	denom := MinorUnitDenomFor(p.CurrencyCode)
	return Money{
		num:      roundHalfEvenToDenom(converted, denom),
		denom:    denom,
		currency: p.CurrencyCode,
	}, nil
}

// Inverse returns a new price for the opposite direction of the pair.
// It fails with ErrInvalidRate when the rate numerator is not positive.
func (p *Price) Inverse() (*Price, error) {
	if p.ValueNum <= 0 {
		return nil, fmt.Errorf("%w: cannot invert rate %d/%d", apperrors.ErrInvalidRate, p.ValueNum, p.ValueDenom)
	}
	inv, err := NewPrice(p.CurrencyCode, p.CommodityCode, p.ValueDenom, p.ValueNum, p.Date)
	if err != nil {
		return nil, err
	}
	inv.Source = p.Source
	inv.Type = p.Type
	return inv, nil
}

// Package mapping converts domain entities into their read-only DTO views.
// No UI or storage type crosses this boundary in either direction.
package mapping

import (
	"github.com/finbook/finbook/internal/core/domain"
	"github.com/finbook/finbook/internal/dto"
)

// ToMoneyView converts a Money amount to its read-only view.
func ToMoneyView(m domain.Money) dto.MoneyView {
	return dto.MoneyView{
		Amount:       m.ToPlainString(),
		Display:      m.Display(),
		CurrencyCode: m.CurrencyCode(),
		Numerator:    m.Numerator(),
		Denominator:  m.Denominator(),
	}
}

// ToSplitView converts a split to its read-only view.
func ToSplitView(s *domain.Split) dto.SplitView {
	return dto.SplitView{
		UID:            s.UID,
		TransactionUID: s.TransactionUID,
		AccountUID:     s.AccountUID,
		Type:           string(s.Type),
		Value:          ToMoneyView(s.Value()),
		Quantity:       ToMoneyView(s.Quantity()),
		Memo:           s.Memo,
	}
}

// ToTransactionView converts a transaction and its splits to a read-only view.
func ToTransactionView(t *domain.Transaction) dto.TransactionView {
	splits := t.Splits()
	views := make([]dto.SplitView, len(splits))
	for i, s := range splits {
		views[i] = ToSplitView(s)
	}
	return dto.TransactionView{
		UID:          t.UID,
		Description:  t.Description,
		Note:         t.Note,
		Date:         t.Time,
		CurrencyCode: t.CurrencyCode,
		Balanced:     t.IsBalanced(),
		Splits:       views,
	}
}

// ToTransactionViews converts a slice of transactions to views.
func ToTransactionViews(txns []*domain.Transaction) []dto.TransactionView {
	views := make([]dto.TransactionView, len(txns))
	for i, t := range txns {
		views[i] = ToTransactionView(t)
	}
	return views
}

// ToPriceView converts a price record to its read-only view.
func ToPriceView(p *domain.Price) dto.PriceView {
	return dto.PriceView{
		UID:           p.UID,
		CommodityCode: p.CommodityCode,
		CurrencyCode:  p.CurrencyCode,
		Date:          p.Date,
		Source:        p.Source,
		Type:          p.Type,
		ValueNum:      p.ValueNum,
		ValueDenom:    p.ValueDenom,
	}
}

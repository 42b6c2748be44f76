package domain

import (
	"fmt"
	"time"
)

// Transaction is an ordered, named collection of splits sharing one currency
// and timestamp. It exclusively owns its splits: adding a split re-parents it
// by rewriting its TransactionUID.
//
// Balance is a queryable fact, not an enforced invariant: imports from
// non-double-entry sources may produce an imbalanced transaction, which the
// calling flow must repair explicitly (see CreateAutoBalanceSplit).
type Transaction struct {
	EntityBase
	Description  string
	Note         string
	Time         time.Time
	CurrencyCode string
	splits       []*Split
}

// NewTransaction creates an empty transaction in the given currency,
// timestamped now.
func NewTransaction(description, currencyCode string) *Transaction {
	return &Transaction{
		EntityBase:   NewEntityBase(),
		Description:  description,
		Time:         time.Now().UTC(),
		CurrencyCode: currencyCode,
	}
}

// CloneTransaction deep-copies src. With generateNew true the clone and all
// of its splits receive fresh identities bound to the new transaction; with
// false every identity is preserved, so the clone is value-equal to src —
// the shape used by in-place edit workflows.
func CloneTransaction(src *Transaction, generateNew bool) *Transaction {
	clone := &Transaction{
		EntityBase:   src.EntityBase,
		Description:  src.Description,
		Note:         src.Note,
		Time:         src.Time,
		CurrencyCode: src.CurrencyCode,
	}
	if generateNew {
		clone.EntityBase = NewEntityBase()
	}
	for _, split := range src.splits {
		s := split.Clone(generateNew)
		s.TransactionUID = clone.UID
		clone.splits = append(clone.splits, s)
	}
	return clone
}

// AddSplit appends a split to the transaction, re-parenting it. Order is
// preserved and display-significant; splits are never sorted.
func (t *Transaction) AddSplit(s *Split) {
	s.TransactionUID = t.UID
	t.splits = append(t.splits, s)
}

// Splits returns the transaction's splits in insertion order. The returned
// slice is a copy; the splits themselves are shared.
func (t *Transaction) Splits() []*Split {
	out := make([]*Split, len(t.splits))
	copy(out, t.splits)
	return out
}

// SetSplits replaces the transaction's splits, re-parenting each.
func (t *Transaction) SetSplits(splits []*Split) {
	t.splits = nil
	for _, s := range splits {
		t.AddSplit(s)
	}
}

// Imbalance returns the signed sum of split values in the transaction
// currency (credits positive, debits negative). A balanced transaction sums
// to zero. It fails if a split's value is not in the transaction currency,
// which cannot happen for transactions built through AddSplit with
// quantity-adjusted splits.
func (t *Transaction) Imbalance() (Money, error) {
	sum := ZeroMoney(t.CurrencyCode)
	for _, s := range t.splits {
		next, err := sum.Add(s.SignedValue())
		if err != nil {
			return Money{}, fmt.Errorf("split %s: %w", s.UID, err)
		}
		sum = next
	}
	return sum, nil
}

// IsBalanced reports whether the signed split values sum to zero.
func (t *Transaction) IsBalanced() bool {
	imbalance, err := t.Imbalance()
	return err == nil && imbalance.IsZero()
}

// CreateAutoBalanceSplit inserts a synthetic split against the given account
// that forces the signed sum to zero, and returns it. It returns nil when the
// transaction is already balanced or when the imbalance cannot be computed.
// Import flows call this explicitly; the model never balances on its own.
func (t *Transaction) CreateAutoBalanceSplit(accountUID string) *Split {
	imbalance, err := t.Imbalance()
	if err != nil || imbalance.IsZero() {
		return nil
	}
	split := NewSplit(imbalance.Negate(), accountUID)
	t.AddSplit(split)
	return split
}

// SplitsForAccount returns the splits targeting the given account, in order.
func (t *Transaction) SplitsForAccount(accountUID string) []*Split {
	var out []*Split
	for _, s := range t.splits {
		if s.AccountUID == accountUID {
			out = append(out, s)
		}
	}
	return out
}

// Balance sums the signed account-currency quantities of the splits targeting
// accountUID. This is the transaction's contribution to that account's balance.
func (t *Transaction) Balance(accountUID string) (Money, error) {
	var sum *Money
	for _, s := range t.splits {
		if s.AccountUID != accountUID {
			continue
		}
		if sum == nil {
			q := s.SignedQuantity()
			sum = &q
			continue
		}
		next, err := sum.Add(s.SignedQuantity())
		if err != nil {
			return Money{}, fmt.Errorf("split %s: %w", s.UID, err)
		}
		sum = &next
	}
	if sum == nil {
		return ZeroMoney(t.CurrencyCode), nil
	}
	return *sum, nil
}

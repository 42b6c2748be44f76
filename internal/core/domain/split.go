package domain

import (
	"fmt"

	"github.com/finbook/finbook/internal/apperrors"
)

// TransactionType indicates whether a split is a Debit or a Credit leg.
type TransactionType string

const (
	Debit  TransactionType = "DEBIT"
	Credit TransactionType = "CREDIT"
)

// Invert returns the opposite leg type.
func (t TransactionType) Invert() TransactionType {
	if t == Debit {
		return Credit
	}
	return Debit
}

// ParseTransactionType converts a wire token into a TransactionType,
// failing with ErrUnknownSplitType for anything but CREDIT or DEBIT.
func ParseTransactionType(token string) (TransactionType, error) {
	switch TransactionType(token) {
	case Debit:
		return Debit, nil
	case Credit:
		return Credit, nil
	default:
		return "", fmt.Errorf("%w: %q", apperrors.ErrUnknownSplitType, token)
	}
}

// Split is one leg of a double-entry posting. The value amount is in the
// currency of the owning transaction; the quantity amount is in the currency
// of the target account. Both magnitudes are stored non-negative: the
// direction of the movement is carried by Type, never by the sign.
//
// Splits reference their transaction and account by UID only. They never hold
// object pointers, so a split is constructible and serializable on its own.
type Split struct {
	EntityBase
	value          Money
	quantity       *Money
	TransactionUID string
	AccountUID     string
	Type           TransactionType
	Memo           string
}

// NewSplit creates a split for the given value amount against an account.
//
// The type is defaulted from the amount's sign: negative means Debit,
// anything else Credit. This deliberately ignores the target account's normal
// balance side; callers that need the accounting-correct type for the account
// must set Type explicitly.
func NewSplit(value Money, accountUID string) *Split {
	s := &Split{
		EntityBase: NewEntityBase(),
		AccountUID: accountUID,
		Type:       Credit,
	}
	if value.IsNegative() {
		s.Type = Debit
	}
	s.SetValue(value)
	return s
}

// Value returns the split amount in the transaction currency.
// The returned magnitude is non-negative; see Type for the direction.
func (s *Split) Value() Money {
	return s.value
}

// SetValue stores the magnitude of amount as the split value. If no quantity
// has been set yet, the quantity defaults to the same amount — setting a
// quantity afterwards decouples the two. This order-dependent default is
// relied on by single-currency flows that never touch the quantity.
func (s *Split) SetValue(amount Money) {
	abs := amount.Abs()
	s.value = abs
	if s.quantity == nil {
		q := abs
		s.quantity = &q
	}
}

// Quantity returns the split amount in the target account's currency.
// Before any quantity is set it mirrors the value.
func (s *Split) Quantity() Money {
	if s.quantity == nil {
		return s.value
	}
	return *s.quantity
}

// SetQuantity stores the magnitude of amount as the account-currency quantity,
// decoupling it from the value.
func (s *Split) SetQuantity(amount Money) {
	q := amount.Abs()
	s.quantity = &q
}

// SignedValue folds the split type back into the amount's sign.
//
// Sign convention, applied throughout this module: Credit is positive,
// Debit is negative. A balanced transaction's signed values sum to zero.
func (s *Split) SignedValue() Money {
	if s.Type == Debit {
		return s.value.Negate()
	}
	return s.value
}

// SignedQuantity applies the same sign convention to the account-currency amount.
func (s *Split) SignedQuantity() Money {
	if s.Type == Debit {
		return s.Quantity().Negate()
	}
	return s.Quantity()
}

// CreatePair builds the other leg of a simple transfer: a new split with the
// same absolute value and memo, the inverted type, the same owning
// transaction, and the given target account.
func (s *Split) CreatePair(accountUID string) *Split {
	pair := NewSplit(s.value.Abs(), accountUID)
	pair.Type = s.Type.Invert()
	pair.Memo = s.Memo
	pair.TransactionUID = s.TransactionUID
	return pair
}

// IsPairOf reports whether this split and other form a pair: equal absolute
// values and opposite types. The relation is symmetric. It identifies simple
// two-leg transactions for display; it does not enforce structural pairing.
func (s *Split) IsPairOf(other *Split) bool {
	return s.value.Abs().Equal(other.value.Abs()) && s.Type.Invert() == other.Type
}

// Clone returns a deep copy of the split. With generateUID true the copy is
// minted a fresh identity; with false it keeps the source's UID, for in-place
// edit workflows.
func (s *Split) Clone(generateUID bool) *Split {
	clone := &Split{
		EntityBase:     s.EntityBase,
		value:          s.value,
		TransactionUID: s.TransactionUID,
		AccountUID:     s.AccountUID,
		Type:           s.Type,
		Memo:           s.Memo,
	}
	if s.quantity != nil {
		q := *s.quantity
		clone.quantity = &q
	}
	if generateUID {
		clone.EntityBase = NewEntityBase()
	}
	return clone
}

// String implements fmt.Stringer.
func (s *Split) String() string {
	return fmt.Sprintf("%s of %s in account %s", s.Type, s.value, s.AccountUID)
}

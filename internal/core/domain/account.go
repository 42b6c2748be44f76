package domain

// AccountType defines the fundamental accounting type of an account.
type AccountType string

const (
	Asset     AccountType = "ASSET"
	Liability AccountType = "LIABILITY"
	Equity    AccountType = "EQUITY"
	Income    AccountType = "INCOME"
	Expense   AccountType = "EXPENSE"
)

// NormalBalance returns the side on which the account type naturally
// increases: Debit for assets and expenses, Credit for the rest.
func (a AccountType) NormalBalance() TransactionType {
	switch a {
	case Asset, Expense:
		return Debit
	default:
		return Credit
	}
}

// Account is a financial account within the ledger. Splits and transactions
// reference accounts by UID only; the account graph is owned by the storage
// layer, never embedded in postings.
type Account struct {
	EntityBase
	Name             string      `json:"name"`
	AccountType      AccountType `json:"accountType"`
	CurrencyCode     string      `json:"currencyCode"`
	ParentAccountUID string      `json:"parentAccountUID,omitempty"`
	Description      string      `json:"description,omitempty"`
	Placeholder      bool        `json:"placeholder"`
	Hidden           bool        `json:"hidden"`
}

// NewAccount creates an account with a fresh identity.
func NewAccount(name string, accountType AccountType, currencyCode string) *Account {
	return &Account{
		EntityBase:   NewEntityBase(),
		Name:         name,
		AccountType:  accountType,
		CurrencyCode: currencyCode,
	}
}

// Package repositories declares the persistence ports of the accounting core.
// The core never depends on a storage API; any engine that can store entities
// keyed by their string UIDs can implement these interfaces. Serializing
// concurrent access (one writer per ledger) is the implementer's job.
package repositories

import (
	"context"
	"time"

	"github.com/finbook/finbook/internal/core/domain"
)

// AccountReader defines read operations for account data.
type AccountReader interface {
	// FindAccountByUID retrieves a specific account by its unique identifier.
	FindAccountByUID(ctx context.Context, accountUID string) (*domain.Account, error)

	// ListAccounts returns all accounts in creation order.
	ListAccounts(ctx context.Context) ([]*domain.Account, error)
}

// AccountWriter defines write operations for account data.
type AccountWriter interface {
	// SaveAccount persists a new account.
	SaveAccount(ctx context.Context, account *domain.Account) error
}

// AccountRepository combines account read and write operations.
type AccountRepository interface {
	AccountReader
	AccountWriter
}

// TransactionReader defines read operations for transactions and their splits.
type TransactionReader interface {
	// FindTransactionByUID retrieves a transaction, splits included.
	FindTransactionByUID(ctx context.Context, transactionUID string) (*domain.Transaction, error)

	// ListTransactions returns transactions in insertion order.
	ListTransactions(ctx context.Context) ([]*domain.Transaction, error)

	// FindSplitsByAccountUID returns every split targeting an account,
	// in transaction insertion order.
	FindSplitsByAccountUID(ctx context.Context, accountUID string) ([]*domain.Split, error)
}

// TransactionWriter defines write operations for transactions.
type TransactionWriter interface {
	// SaveTransaction persists a transaction and its splits atomically.
	SaveTransaction(ctx context.Context, transaction *domain.Transaction) error

	// DeleteTransaction removes a transaction and its splits.
	DeleteTransaction(ctx context.Context, transactionUID string) error
}

// TransactionRepository combines transaction read and write operations.
type TransactionRepository interface {
	TransactionReader
	TransactionWriter
}

// PriceRepository defines persistence operations for exchange-rate records.
type PriceRepository interface {
	// SavePrice persists a price record. Prices are never deleted automatically.
	SavePrice(ctx context.Context, price *domain.Price) error

	// FindPriceByUID retrieves a price record by identifier.
	FindPriceByUID(ctx context.Context, priceUID string) (*domain.Price, error)

	// FindLatestPrice returns the most recent price for the commodity/currency
	// pair dated at or before asOf.
	FindLatestPrice(ctx context.Context, commodityCode, currencyCode string, asOf time.Time) (*domain.Price, error)
}

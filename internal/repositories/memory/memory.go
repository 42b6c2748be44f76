// Package memory provides mutex-guarded in-memory implementations of the
// core's repository ports. It is the reference storage adapter used by tests
// and the CLI; durable engines live outside this module and implement the
// same interfaces.
package memory

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/finbook/finbook/internal/apperrors"
	"github.com/finbook/finbook/internal/core/domain"
	portsrepo "github.com/finbook/finbook/internal/core/ports/repositories"
)

// AccountRepository is an in-memory portsrepo.AccountRepository.
type AccountRepository struct {
	mu       sync.RWMutex
	accounts map[string]*domain.Account
	order    []string
}

// NewAccountRepository creates an empty account store.
func NewAccountRepository() *AccountRepository {
	return &AccountRepository{accounts: make(map[string]*domain.Account)}
}

var _ portsrepo.AccountRepository = (*AccountRepository)(nil)

// SaveAccount persists a new account.
func (r *AccountRepository) SaveAccount(_ context.Context, account *domain.Account) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.accounts[account.UID]; ok {
		return fmt.Errorf("%w: account %s", apperrors.ErrDuplicate, account.UID)
	}
	r.accounts[account.UID] = account
	r.order = append(r.order, account.UID)
	return nil
}

// FindAccountByUID retrieves an account by identifier.
func (r *AccountRepository) FindAccountByUID(_ context.Context, accountUID string) (*domain.Account, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	account, ok := r.accounts[accountUID]
	if !ok {
		return nil, fmt.Errorf("%w: account %s", apperrors.ErrNotFound, accountUID)
	}
	return account, nil
}

// ListAccounts returns accounts in creation order.
func (r *AccountRepository) ListAccounts(_ context.Context) ([]*domain.Account, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]*domain.Account, 0, len(r.order))
	for _, uid := range r.order {
		out = append(out, r.accounts[uid])
	}
	return out, nil
}

// TransactionRepository is an in-memory portsrepo.TransactionRepository.
type TransactionRepository struct {
	mu           sync.RWMutex
	transactions map[string]*domain.Transaction
	order        []string
}

// NewTransactionRepository creates an empty transaction store.
func NewTransactionRepository() *TransactionRepository {
	return &TransactionRepository{transactions: make(map[string]*domain.Transaction)}
}

var _ portsrepo.TransactionRepository = (*TransactionRepository)(nil)

// SaveTransaction persists a transaction and its splits. Saving an existing
// UID replaces the stored transaction, which is how edit flows commit a
// same-identity clone.
func (r *TransactionRepository) SaveTransaction(_ context.Context, transaction *domain.Transaction) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.transactions[transaction.UID]; !ok {
		r.order = append(r.order, transaction.UID)
	}
	r.transactions[transaction.UID] = transaction
	return nil
}

// FindTransactionByUID retrieves a transaction, splits included.
func (r *TransactionRepository) FindTransactionByUID(_ context.Context, transactionUID string) (*domain.Transaction, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	transaction, ok := r.transactions[transactionUID]
	if !ok {
		return nil, fmt.Errorf("%w: transaction %s", apperrors.ErrNotFound, transactionUID)
	}
	return transaction, nil
}

// ListTransactions returns transactions in insertion order.
func (r *TransactionRepository) ListTransactions(_ context.Context) ([]*domain.Transaction, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]*domain.Transaction, 0, len(r.order))
	for _, uid := range r.order {
		out = append(out, r.transactions[uid])
	}
	return out, nil
}

// FindSplitsByAccountUID returns every split targeting an account.
func (r *TransactionRepository) FindSplitsByAccountUID(_ context.Context, accountUID string) ([]*domain.Split, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var out []*domain.Split
	for _, uid := range r.order {
		out = append(out, r.transactions[uid].SplitsForAccount(accountUID)...)
	}
	return out, nil
}

// DeleteTransaction removes a transaction and its splits.
func (r *TransactionRepository) DeleteTransaction(_ context.Context, transactionUID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.transactions[transactionUID]; !ok {
		return fmt.Errorf("%w: transaction %s", apperrors.ErrNotFound, transactionUID)
	}
	delete(r.transactions, transactionUID)
	for i, uid := range r.order {
		if uid == transactionUID {
			r.order = append(r.order[:i], r.order[i+1:]...)
			break
		}
	}
	return nil
}

// PriceRepository is an in-memory portsrepo.PriceRepository.
type PriceRepository struct {
	mu     sync.RWMutex
	prices map[string]*domain.Price
	order  []string
}

// NewPriceRepository creates an empty price store.
func NewPriceRepository() *PriceRepository {
	return &PriceRepository{prices: make(map[string]*domain.Price)}
}

var _ portsrepo.PriceRepository = (*PriceRepository)(nil)

// SavePrice persists a price record.
func (r *PriceRepository) SavePrice(_ context.Context, price *domain.Price) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.prices[price.UID]; ok {
		return fmt.Errorf("%w: price %s", apperrors.ErrDuplicate, price.UID)
	}
	r.prices[price.UID] = price
	r.order = append(r.order, price.UID)
	return nil
}

// FindPriceByUID retrieves a price record by identifier.
func (r *PriceRepository) FindPriceByUID(_ context.Context, priceUID string) (*domain.Price, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	price, ok := r.prices[priceUID]
	if !ok {
		return nil, fmt.Errorf("%w: price %s", apperrors.ErrNotFound, priceUID)
	}
	return price, nil
}

// FindLatestPrice returns the most recent price for the pair dated at or
// before asOf.
func (r *PriceRepository) FindLatestPrice(_ context.Context, commodityCode, currencyCode string, asOf time.Time) (*domain.Price, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var latest *domain.Price
	for _, uid := range r.order {
		p := r.prices[uid]
		if p.CommodityCode != commodityCode || p.CurrencyCode != currencyCode {
			continue
		}
		if p.Date.After(asOf) {
			continue
		}
		if latest == nil || p.Date.After(latest.Date) {
			latest = p
		}
	}
	if latest == nil {
		return nil, fmt.Errorf("%w: no price for %s/%s at %s", apperrors.ErrNotFound, commodityCode, currencyCode, asOf.Format(time.RFC3339))
	}
	return latest, nil
}

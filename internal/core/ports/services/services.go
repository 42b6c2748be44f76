// Package services declares the service facades exposed by the accounting
// core to its outer layers.
package services

import (
	"context"
	"time"

	"github.com/finbook/finbook/internal/core/domain"
	"github.com/finbook/finbook/internal/dto"
)

// LedgerSvcFacade is the operational surface of the ledger: recording
// transactions and transfers, querying balances, and converting amounts
// through externally supplied prices.
type LedgerSvcFacade interface {
	// CreateAccount records a new account.
	CreateAccount(ctx context.Context, req dto.CreateAccountRequest) (*domain.Account, error)

	// CreateTransaction validates and records a transaction. When
	// req.AutoBalance is set, any imbalance is absorbed by a synthetic split
	// against req.ImbalanceAccountUID; otherwise an imbalanced request fails.
	CreateTransaction(ctx context.Context, req dto.CreateTransactionRequest) (*domain.Transaction, error)

	// CreateSimpleTransfer records a two-leg transfer between accounts,
	// generating the second leg as the pair of the first.
	CreateSimpleTransfer(ctx context.Context, req dto.CreateTransferRequest) (*domain.Transaction, error)

	// GetTransaction returns a recorded transaction by UID.
	GetTransaction(ctx context.Context, transactionUID string) (*domain.Transaction, error)

	// ListTransactions returns recorded transactions in insertion order.
	ListTransactions(ctx context.Context) ([]*domain.Transaction, error)

	// AccountBalance sums the signed quantities of every split targeting the
	// account, in the account's currency.
	AccountBalance(ctx context.Context, accountUID string) (domain.Money, error)

	// RecordPrice stores an externally supplied exchange-rate record.
	RecordPrice(ctx context.Context, req dto.RecordPriceRequest) (*domain.Price, error)

	// ConvertValue translates an amount into another currency using the
	// latest stored price at or before asOf.
	ConvertValue(ctx context.Context, amount domain.Money, currencyCode string, asOf time.Time) (domain.Money, error)
}

package services_test

import (
	"context"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/finbook/finbook/internal/apperrors"
	"github.com/finbook/finbook/internal/core/domain"
	portsrepo "github.com/finbook/finbook/internal/core/ports/repositories"
	portssvc "github.com/finbook/finbook/internal/core/ports/services"
	"github.com/finbook/finbook/internal/core/services"
	"github.com/finbook/finbook/internal/dto"
)

// --- Mock AccountRepository ---

type MockAccountRepository struct {
	mock.Mock
}

var _ portsrepo.AccountRepository = (*MockAccountRepository)(nil)

func (m *MockAccountRepository) SaveAccount(ctx context.Context, account *domain.Account) error {
	args := m.Called(ctx, account)
	return args.Error(0)
}

func (m *MockAccountRepository) FindAccountByUID(ctx context.Context, accountUID string) (*domain.Account, error) {
	args := m.Called(ctx, accountUID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Account), args.Error(1)
}

func (m *MockAccountRepository) ListAccounts(ctx context.Context) ([]*domain.Account, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Account), args.Error(1)
}

// --- Mock TransactionRepository ---

type MockTransactionRepository struct {
	mock.Mock
}

var _ portsrepo.TransactionRepository = (*MockTransactionRepository)(nil)

func (m *MockTransactionRepository) SaveTransaction(ctx context.Context, transaction *domain.Transaction) error {
	args := m.Called(ctx, transaction)
	return args.Error(0)
}

func (m *MockTransactionRepository) FindTransactionByUID(ctx context.Context, transactionUID string) (*domain.Transaction, error) {
	args := m.Called(ctx, transactionUID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Transaction), args.Error(1)
}

func (m *MockTransactionRepository) ListTransactions(ctx context.Context) ([]*domain.Transaction, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Transaction), args.Error(1)
}

func (m *MockTransactionRepository) FindSplitsByAccountUID(ctx context.Context, accountUID string) ([]*domain.Split, error) {
	args := m.Called(ctx, accountUID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Split), args.Error(1)
}

func (m *MockTransactionRepository) DeleteTransaction(ctx context.Context, transactionUID string) error {
	args := m.Called(ctx, transactionUID)
	return args.Error(0)
}

// --- Mock PriceRepository ---

type MockPriceRepository struct {
	mock.Mock
}

var _ portsrepo.PriceRepository = (*MockPriceRepository)(nil)

func (m *MockPriceRepository) SavePrice(ctx context.Context, price *domain.Price) error {
	args := m.Called(ctx, price)
	return args.Error(0)
}

func (m *MockPriceRepository) FindPriceByUID(ctx context.Context, priceUID string) (*domain.Price, error) {
	args := m.Called(ctx, priceUID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Price), args.Error(1)
}

func (m *MockPriceRepository) FindLatestPrice(ctx context.Context, commodityCode, currencyCode string, asOf time.Time) (*domain.Price, error) {
	args := m.Called(ctx, commodityCode, currencyCode, asOf)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Price), args.Error(1)
}

// --- Helpers ---

type ledgerMocks struct {
	accounts *MockAccountRepository
	txns     *MockTransactionRepository
	prices   *MockPriceRepository
}

func newLedgerService(t *testing.T) (*ledgerMocks, portssvc.LedgerSvcFacade) {
	t.Helper()
	m := &ledgerMocks{
		accounts: new(MockAccountRepository),
		txns:     new(MockTransactionRepository),
		prices:   new(MockPriceRepository),
	}
	return m, services.NewLedgerService(m.accounts, m.txns, m.prices, slog.Default())
}

func usdAccount(uid string, accountType domain.AccountType) *domain.Account {
	account := domain.NewAccount("acct "+uid, accountType, "USD")
	account.UID = uid
	return account
}

func mustMoney(t *testing.T, amount, currency string) domain.Money {
	t.Helper()
	m, err := domain.NewMoneyFromString(amount, currency)
	require.NoError(t, err)
	return m
}

// --- Tests ---

func TestCreateAccount(t *testing.T) {
	mocks, svc := newLedgerService(t)
	mocks.accounts.On("SaveAccount", mock.Anything, mock.AnythingOfType("*domain.Account")).Return(nil)

	account, err := svc.CreateAccount(context.Background(), dto.CreateAccountRequest{
		Name:         "Checking",
		AccountType:  "ASSET",
		CurrencyCode: "USD",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, account.UID)
	assert.Equal(t, domain.Asset, account.AccountType)
	mocks.accounts.AssertExpectations(t)
}

func TestCreateAccount_ValidationFailure(t *testing.T) {
	mocks, svc := newLedgerService(t)

	_, err := svc.CreateAccount(context.Background(), dto.CreateAccountRequest{
		Name:         "Checking",
		AccountType:  "SAVINGS", // not a valid type
		CurrencyCode: "USD",
	})
	assert.ErrorIs(t, err, apperrors.ErrValidation)
	mocks.accounts.AssertNotCalled(t, "SaveAccount", mock.Anything, mock.Anything)
}

func TestCreateTransaction_Balanced(t *testing.T) {
	mocks, svc := newLedgerService(t)
	mocks.accounts.On("FindAccountByUID", mock.Anything, "acct-a").Return(usdAccount("acct-a", domain.Asset), nil)
	mocks.accounts.On("FindAccountByUID", mock.Anything, "acct-b").Return(usdAccount("acct-b", domain.Expense), nil)
	mocks.txns.On("SaveTransaction", mock.Anything, mock.AnythingOfType("*domain.Transaction")).Return(nil)

	tx, err := svc.CreateTransaction(context.Background(), dto.CreateTransactionRequest{
		Description:  "rent",
		CurrencyCode: "USD",
		Splits: []dto.CreateSplitRequest{
			{AccountUID: "acct-a", Amount: "850.00", Type: "CREDIT"},
			{AccountUID: "acct-b", Amount: "850.00", Type: "DEBIT"},
		},
	})
	require.NoError(t, err)
	assert.True(t, tx.IsBalanced())
	assert.Len(t, tx.Splits(), 2)
	mocks.txns.AssertExpectations(t)
}

func TestCreateTransaction_UnbalancedRejected(t *testing.T) {
	mocks, svc := newLedgerService(t)
	mocks.accounts.On("FindAccountByUID", mock.Anything, "acct-a").Return(usdAccount("acct-a", domain.Asset), nil)

	_, err := svc.CreateTransaction(context.Background(), dto.CreateTransactionRequest{
		Description:  "import",
		CurrencyCode: "USD",
		Splits: []dto.CreateSplitRequest{
			{AccountUID: "acct-a", Amount: "850.00", Type: "CREDIT"},
		},
	})
	assert.ErrorIs(t, err, services.ErrTransactionUnbalanced)
	mocks.txns.AssertNotCalled(t, "SaveTransaction", mock.Anything, mock.Anything)
}

func TestCreateTransaction_AutoBalance(t *testing.T) {
	mocks, svc := newLedgerService(t)
	mocks.accounts.On("FindAccountByUID", mock.Anything, "acct-a").Return(usdAccount("acct-a", domain.Asset), nil)
	mocks.txns.On("SaveTransaction", mock.Anything, mock.AnythingOfType("*domain.Transaction")).Return(nil)

	tx, err := svc.CreateTransaction(context.Background(), dto.CreateTransactionRequest{
		Description:         "import",
		CurrencyCode:        "USD",
		AutoBalance:         true,
		ImbalanceAccountUID: "imbalance-usd",
		Splits: []dto.CreateSplitRequest{
			{AccountUID: "acct-a", Amount: "850.00", Type: "CREDIT"},
		},
	})
	require.NoError(t, err)
	require.Len(t, tx.Splits(), 2)
	assert.True(t, tx.IsBalanced())

	balancing := tx.Splits()[1]
	assert.Equal(t, "imbalance-usd", balancing.AccountUID)
	assert.Equal(t, domain.Debit, balancing.Type)
	assert.Equal(t, "850.00", balancing.Value().ToPlainString())
}

func TestCreateTransaction_ForeignAccountNeedsQuantity(t *testing.T) {
	mocks, svc := newLedgerService(t)
	eurAccount := domain.NewAccount("EUR savings", domain.Asset, "EUR")
	eurAccount.UID = "acct-eur"
	mocks.accounts.On("FindAccountByUID", mock.Anything, "acct-eur").Return(eurAccount, nil)

	_, err := svc.CreateTransaction(context.Background(), dto.CreateTransactionRequest{
		Description:  "fx",
		CurrencyCode: "USD",
		Splits: []dto.CreateSplitRequest{
			{AccountUID: "acct-eur", Amount: "10.00", Type: "CREDIT"},
		},
	})
	assert.ErrorIs(t, err, services.ErrQuantityRequired)
}

func TestCreateTransaction_QuantityAdjustedSplit(t *testing.T) {
	mocks, svc := newLedgerService(t)
	eurAccount := domain.NewAccount("EUR savings", domain.Asset, "EUR")
	eurAccount.UID = "acct-eur"
	mocks.accounts.On("FindAccountByUID", mock.Anything, "acct-eur").Return(eurAccount, nil)
	mocks.accounts.On("FindAccountByUID", mock.Anything, "acct-a").Return(usdAccount("acct-a", domain.Asset), nil)
	mocks.txns.On("SaveTransaction", mock.Anything, mock.AnythingOfType("*domain.Transaction")).Return(nil)

	tx, err := svc.CreateTransaction(context.Background(), dto.CreateTransactionRequest{
		Description:  "fx transfer",
		CurrencyCode: "USD",
		Splits: []dto.CreateSplitRequest{
			{AccountUID: "acct-a", Amount: "10.00", Type: "CREDIT"},
			{AccountUID: "acct-eur", Amount: "10.00", Type: "DEBIT", Quantity: "8.60"},
		},
	})
	require.NoError(t, err)
	assert.True(t, tx.IsBalanced())

	foreign := tx.Splits()[1]
	assert.Equal(t, "8.60", foreign.Quantity().ToPlainString())
	assert.Equal(t, "EUR", foreign.Quantity().CurrencyCode())
	assert.Equal(t, "USD", foreign.Value().CurrencyCode())
}

func TestCreateTransaction_UnknownAccount(t *testing.T) {
	mocks, svc := newLedgerService(t)
	mocks.accounts.On("FindAccountByUID", mock.Anything, "ghost").Return(nil, apperrors.ErrNotFound)

	_, err := svc.CreateTransaction(context.Background(), dto.CreateTransactionRequest{
		Description:  "rent",
		CurrencyCode: "USD",
		Splits: []dto.CreateSplitRequest{
			{AccountUID: "ghost", Amount: "850.00", Type: "CREDIT"},
		},
	})
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}

func TestCreateSimpleTransfer(t *testing.T) {
	mocks, svc := newLedgerService(t)
	mocks.accounts.On("FindAccountByUID", mock.Anything, "acct-a").Return(usdAccount("acct-a", domain.Asset), nil)
	mocks.accounts.On("FindAccountByUID", mock.Anything, "acct-b").Return(usdAccount("acct-b", domain.Asset), nil)
	mocks.txns.On("SaveTransaction", mock.Anything, mock.AnythingOfType("*domain.Transaction")).Return(nil)

	tx, err := svc.CreateSimpleTransfer(context.Background(), dto.CreateTransferRequest{
		Description:    "move savings",
		Amount:         "200.00",
		CurrencyCode:   "USD",
		FromAccountUID: "acct-a",
		ToAccountUID:   "acct-b",
	})
	require.NoError(t, err)
	require.Len(t, tx.Splits(), 2)
	assert.True(t, tx.IsBalanced())
	assert.True(t, tx.Splits()[0].IsPairOf(tx.Splits()[1]))
	assert.Equal(t, "acct-a", tx.Splits()[0].AccountUID)
	assert.Equal(t, "acct-b", tx.Splits()[1].AccountUID)
}

func TestCreateSimpleTransfer_SameAccountRejected(t *testing.T) {
	_, svc := newLedgerService(t)

	_, err := svc.CreateSimpleTransfer(context.Background(), dto.CreateTransferRequest{
		Description:    "noop",
		Amount:         "200.00",
		CurrencyCode:   "USD",
		FromAccountUID: "acct-a",
		ToAccountUID:   "acct-a",
	})
	assert.ErrorIs(t, err, apperrors.ErrValidation)
}

func TestAccountBalance_OrientedToNormalBalance(t *testing.T) {
	mocks, svc := newLedgerService(t)
	mocks.accounts.On("FindAccountByUID", mock.Anything, "acct-a").Return(usdAccount("acct-a", domain.Asset), nil)

	deposit := domain.NewSplit(mustMoney(t, "100.00", "USD"), "acct-a")
	deposit.Type = domain.Debit
	withdrawal := domain.NewSplit(mustMoney(t, "30.00", "USD"), "acct-a")
	withdrawal.Type = domain.Credit
	mocks.txns.On("FindSplitsByAccountUID", mock.Anything, "acct-a").Return([]*domain.Split{deposit, withdrawal}, nil)

	balance, err := svc.AccountBalance(context.Background(), "acct-a")
	require.NoError(t, err)
	// Asset accounts are debit-normal: holding 70.00 reads positive.
	assert.Equal(t, "70.00", balance.ToPlainString())
}

func TestRecordPrice(t *testing.T) {
	mocks, svc := newLedgerService(t)
	mocks.prices.On("SavePrice", mock.Anything, mock.AnythingOfType("*domain.Price")).Return(nil)

	price, err := svc.RecordPrice(context.Background(), dto.RecordPriceRequest{
		CommodityCode: "EUR",
		CurrencyCode:  "USD",
		ValueNum:      108,
		ValueDenom:    100,
	})
	require.NoError(t, err)
	assert.Equal(t, domain.PriceSourceUser, price.Source)
	assert.False(t, price.Date.IsZero())
}

func TestRecordPrice_InvalidRate(t *testing.T) {
	mocks, svc := newLedgerService(t)

	_, err := svc.RecordPrice(context.Background(), dto.RecordPriceRequest{
		CommodityCode: "EUR",
		CurrencyCode:  "USD",
		ValueNum:      108,
		ValueDenom:    -1,
	})
	assert.ErrorIs(t, err, apperrors.ErrValidation)
	mocks.prices.AssertNotCalled(t, "SavePrice", mock.Anything, mock.Anything)
}

func TestConvertValue(t *testing.T) {
	mocks, svc := newLedgerService(t)
	asOf := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)
	price, err := domain.NewPrice("EUR", "USD", 108, 100, asOf)
	require.NoError(t, err)
	mocks.prices.On("FindLatestPrice", mock.Anything, "EUR", "USD", asOf).Return(price, nil)

	got, err := svc.ConvertValue(context.Background(), mustMoney(t, "10.00", "EUR"), "USD", asOf)
	require.NoError(t, err)
	assert.Equal(t, "10.80", got.ToPlainString())
}

func TestConvertValue_InverseFallback(t *testing.T) {
	mocks, svc := newLedgerService(t)
	asOf := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)
	reverse, err := domain.NewPrice("USD", "EUR", 1, 2, asOf)
	require.NoError(t, err)
	mocks.prices.On("FindLatestPrice", mock.Anything, "EUR", "USD", asOf).Return(nil, apperrors.ErrNotFound)
	mocks.prices.On("FindLatestPrice", mock.Anything, "USD", "EUR", asOf).Return(reverse, nil)

	got, err := svc.ConvertValue(context.Background(), mustMoney(t, "10.00", "EUR"), "USD", asOf)
	require.NoError(t, err)
	assert.Equal(t, "20.00", got.ToPlainString())
}

func TestConvertValue_NoPrice(t *testing.T) {
	mocks, svc := newLedgerService(t)
	asOf := time.Now()
	mocks.prices.On("FindLatestPrice", mock.Anything, "EUR", "USD", asOf).Return(nil, apperrors.ErrNotFound)
	mocks.prices.On("FindLatestPrice", mock.Anything, "USD", "EUR", asOf).Return(nil, apperrors.ErrNotFound)

	_, err := svc.ConvertValue(context.Background(), mustMoney(t, "10.00", "EUR"), "USD", asOf)
	assert.ErrorIs(t, err, services.ErrNoPriceAvailable)
}

func TestConvertValue_SameCurrency(t *testing.T) {
	mocks, svc := newLedgerService(t)
	amount := mustMoney(t, "10.00", "USD")

	got, err := svc.ConvertValue(context.Background(), amount, "USD", time.Now())
	require.NoError(t, err)
	assert.True(t, got.Equal(amount))
	mocks.prices.AssertNotCalled(t, "FindLatestPrice", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

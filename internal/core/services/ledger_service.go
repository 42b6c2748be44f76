package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/finbook/finbook/internal/apperrors"
	"github.com/finbook/finbook/internal/core/domain"
	portsrepo "github.com/finbook/finbook/internal/core/ports/repositories"
	portssvc "github.com/finbook/finbook/internal/core/ports/services"
	"github.com/finbook/finbook/internal/dto"
)

var (
	ErrTransactionUnbalanced = errors.New("transaction splits do not balance to zero")
	ErrQuantityRequired      = errors.New("split against a foreign-currency account requires an explicit quantity")
	ErrNoPriceAvailable      = errors.New("no price available for conversion")
)

// ledgerService provides the core ledger operations over injected
// repositories. There are no global adapters: every dependency is passed in
// explicitly, and the entities themselves stay storage-agnostic.
type ledgerService struct {
	accountRepo portsrepo.AccountRepository
	txRepo      portsrepo.TransactionRepository
	priceRepo   portsrepo.PriceRepository
	validate    *validator.Validate
	logger      *slog.Logger
}

// NewLedgerService creates a LedgerSvcFacade backed by the given repositories.
func NewLedgerService(accountRepo portsrepo.AccountRepository, txRepo portsrepo.TransactionRepository, priceRepo portsrepo.PriceRepository, logger *slog.Logger) portssvc.LedgerSvcFacade {
	if logger == nil {
		logger = slog.Default()
	}
	return &ledgerService{
		accountRepo: accountRepo,
		txRepo:      txRepo,
		priceRepo:   priceRepo,
		validate:    validator.New(),
		logger:      logger,
	}
}

var _ portssvc.LedgerSvcFacade = (*ledgerService)(nil)

func (s *ledgerService) CreateAccount(ctx context.Context, req dto.CreateAccountRequest) (*domain.Account, error) {
	if err := s.validate.Struct(req); err != nil {
		return nil, fmt.Errorf("%w: %v", apperrors.ErrValidation, err)
	}
	account := domain.NewAccount(req.Name, domain.AccountType(req.AccountType), req.CurrencyCode)
	account.ParentAccountUID = req.ParentAccountUID
	account.Description = req.Description
	if err := s.accountRepo.SaveAccount(ctx, account); err != nil {
		return nil, fmt.Errorf("failed to save account: %w", err)
	}
	s.logger.Info("account created",
		slog.String("account_uid", account.UID),
		slog.String("currency", account.CurrencyCode))
	return account, nil
}

func (s *ledgerService) CreateTransaction(ctx context.Context, req dto.CreateTransactionRequest) (*domain.Transaction, error) {
	if err := s.validate.Struct(req); err != nil {
		return nil, fmt.Errorf("%w: %v", apperrors.ErrValidation, err)
	}

	tx := domain.NewTransaction(req.Description, req.CurrencyCode)
	tx.Note = req.Note
	if !req.Date.IsZero() {
		tx.Time = req.Date
	}

	for i, splitReq := range req.Splits {
		split, err := s.buildSplit(ctx, req.CurrencyCode, splitReq)
		if err != nil {
			return nil, fmt.Errorf("split %d: %w", i, err)
		}
		tx.AddSplit(split)
	}

	if !tx.IsBalanced() {
		if !req.AutoBalance {
			imbalance, _ := tx.Imbalance()
			return nil, fmt.Errorf("%w: off by %s", ErrTransactionUnbalanced, imbalance)
		}
		if balancing := tx.CreateAutoBalanceSplit(req.ImbalanceAccountUID); balancing != nil {
			s.logger.Warn("transaction auto-balanced",
				slog.String("transaction_uid", tx.UID),
				slog.String("imbalance_account_uid", req.ImbalanceAccountUID),
				slog.String("amount", balancing.Value().ToPlainString()))
		}
	}

	if err := s.txRepo.SaveTransaction(ctx, tx); err != nil {
		return nil, fmt.Errorf("failed to save transaction: %w", err)
	}
	s.logger.Info("transaction created",
		slog.String("transaction_uid", tx.UID),
		slog.Int("splits", len(tx.Splits())))
	return tx, nil
}

// buildSplit turns one request leg into a quantity-adjusted split in the
// transaction currency.
func (s *ledgerService) buildSplit(ctx context.Context, txCurrency string, req dto.CreateSplitRequest) (*domain.Split, error) {
	account, err := s.accountRepo.FindAccountByUID(ctx, req.AccountUID)
	if err != nil {
		return nil, err
	}

	value, err := domain.NewMoneyFromString(req.Amount, txCurrency)
	if err != nil {
		return nil, err
	}
	splitType, err := domain.ParseTransactionType(req.Type)
	if err != nil {
		return nil, err
	}

	split := domain.NewSplit(value, req.AccountUID)
	split.Type = splitType
	split.Memo = req.Memo

	if req.Quantity != "" {
		quantityCurrency := req.QuantityCurrency
		if quantityCurrency == "" {
			quantityCurrency = account.CurrencyCode
		}
		quantity, err := domain.NewMoneyFromString(req.Quantity, quantityCurrency)
		if err != nil {
			return nil, err
		}
		split.SetQuantity(quantity)
	} else if account.CurrencyCode != txCurrency {
		return nil, fmt.Errorf("%w: account %s is in %s, transaction is in %s",
			ErrQuantityRequired, account.UID, account.CurrencyCode, txCurrency)
	}
	return split, nil
}

func (s *ledgerService) CreateSimpleTransfer(ctx context.Context, req dto.CreateTransferRequest) (*domain.Transaction, error) {
	if err := s.validate.Struct(req); err != nil {
		return nil, fmt.Errorf("%w: %v", apperrors.ErrValidation, err)
	}
	if _, err := s.accountRepo.FindAccountByUID(ctx, req.FromAccountUID); err != nil {
		return nil, err
	}
	if _, err := s.accountRepo.FindAccountByUID(ctx, req.ToAccountUID); err != nil {
		return nil, err
	}

	amount, err := domain.NewMoneyFromString(req.Amount, req.CurrencyCode)
	if err != nil {
		return nil, err
	}

	tx := domain.NewTransaction(req.Description, req.CurrencyCode)
	if !req.Date.IsZero() {
		tx.Time = req.Date
	}

	// The source leg takes the sign-defaulted type (credit for a positive
	// amount); the destination leg is generated as its pair.
	source := domain.NewSplit(amount, req.FromAccountUID)
	source.Memo = req.Memo
	tx.AddSplit(source)
	tx.AddSplit(source.CreatePair(req.ToAccountUID))

	if err := s.txRepo.SaveTransaction(ctx, tx); err != nil {
		return nil, fmt.Errorf("failed to save transfer: %w", err)
	}
	s.logger.Info("transfer created",
		slog.String("transaction_uid", tx.UID),
		slog.String("from", req.FromAccountUID),
		slog.String("to", req.ToAccountUID),
		slog.String("amount", amount.ToPlainString()))
	return tx, nil
}

func (s *ledgerService) GetTransaction(ctx context.Context, transactionUID string) (*domain.Transaction, error) {
	return s.txRepo.FindTransactionByUID(ctx, transactionUID)
}

func (s *ledgerService) ListTransactions(ctx context.Context) ([]*domain.Transaction, error) {
	return s.txRepo.ListTransactions(ctx)
}

// AccountBalance sums the signed quantities of every split targeting the
// account. The sum is oriented to the account's normal balance side, so an
// account holding its natural side reports a positive balance.
func (s *ledgerService) AccountBalance(ctx context.Context, accountUID string) (domain.Money, error) {
	account, err := s.accountRepo.FindAccountByUID(ctx, accountUID)
	if err != nil {
		return domain.Money{}, err
	}
	splits, err := s.txRepo.FindSplitsByAccountUID(ctx, accountUID)
	if err != nil {
		return domain.Money{}, err
	}

	sum := domain.ZeroMoney(account.CurrencyCode)
	for _, split := range splits {
		next, err := sum.Add(split.SignedQuantity())
		if err != nil {
			return domain.Money{}, fmt.Errorf("split %s: %w", split.UID, err)
		}
		sum = next
	}
	if account.AccountType.NormalBalance() == domain.Debit {
		sum = sum.Negate()
	}
	return sum, nil
}

func (s *ledgerService) RecordPrice(ctx context.Context, req dto.RecordPriceRequest) (*domain.Price, error) {
	if err := s.validate.Struct(req); err != nil {
		return nil, fmt.Errorf("%w: %v", apperrors.ErrValidation, err)
	}
	date := req.Date
	if date.IsZero() {
		date = time.Now().UTC()
	}
	price, err := domain.NewPrice(req.CommodityCode, req.CurrencyCode, req.ValueNum, req.ValueDenom, date)
	if err != nil {
		return nil, err
	}
	price.Source = req.Source
	if price.Source == "" {
		price.Source = domain.PriceSourceUser
	}
	price.Type = req.Type
	if err := s.priceRepo.SavePrice(ctx, price); err != nil {
		return nil, fmt.Errorf("failed to save price: %w", err)
	}
	s.logger.Info("price recorded",
		slog.String("price_uid", price.UID),
		slog.String("pair", price.CommodityCode+"/"+price.CurrencyCode))
	return price, nil
}

// ConvertValue translates an amount into currencyCode using the latest stored
// price at or before asOf, falling back to the inverse pair when only the
// opposite direction is recorded.
func (s *ledgerService) ConvertValue(ctx context.Context, amount domain.Money, currencyCode string, asOf time.Time) (domain.Money, error) {
	if amount.CurrencyCode() == currencyCode {
		return amount, nil
	}
	price, err := s.priceRepo.FindLatestPrice(ctx, amount.CurrencyCode(), currencyCode, asOf)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			return domain.Money{}, err
		}
		reverse, revErr := s.priceRepo.FindLatestPrice(ctx, currencyCode, amount.CurrencyCode(), asOf)
		if revErr != nil {
			return domain.Money{}, fmt.Errorf("%w: %s to %s", ErrNoPriceAvailable, amount.CurrencyCode(), currencyCode)
		}
		price, err = reverse.Inverse()
		if err != nil {
			return domain.Money{}, err
		}
	}
	return price.Convert(amount)
}

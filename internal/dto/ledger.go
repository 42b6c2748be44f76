package dto

import (
	"time"
)

// CreateAccountRequest carries the data needed to open an account.
type CreateAccountRequest struct {
	Name             string `json:"name" validate:"required"`
	AccountType      string `json:"accountType" validate:"required,oneof=ASSET LIABILITY EQUITY INCOME EXPENSE"`
	CurrencyCode     string `json:"currencyCode" validate:"required,len=3"`
	ParentAccountUID string `json:"parentAccountUID,omitempty" validate:"omitempty,uuid"`
	Description      string `json:"description,omitempty"`
}

// CreateSplitRequest is one leg of a CreateTransactionRequest. Amount is a
// plain decimal string in the transaction currency; Quantity, when present,
// is the same movement in the account currency.
type CreateSplitRequest struct {
	AccountUID       string `json:"accountUID" validate:"required"`
	Amount           string `json:"amount" validate:"required"`
	Type             string `json:"type" validate:"required,oneof=DEBIT CREDIT"`
	Quantity         string `json:"quantity,omitempty"`
	QuantityCurrency string `json:"quantityCurrency,omitempty" validate:"omitempty,len=3"`
	Memo             string `json:"memo,omitempty"`
}

// CreateTransactionRequest carries a full transaction with its splits.
type CreateTransactionRequest struct {
	Description  string               `json:"description" validate:"required"`
	Note         string               `json:"note,omitempty"`
	CurrencyCode string               `json:"currencyCode" validate:"required,len=3"`
	Date         time.Time            `json:"date"`
	Splits       []CreateSplitRequest `json:"splits" validate:"required,min=1,dive"`

	// AutoBalance requests that an imbalanced transaction be repaired by a
	// synthetic split against ImbalanceAccountUID instead of being rejected.
	AutoBalance         bool   `json:"autoBalance,omitempty"`
	ImbalanceAccountUID string `json:"imbalanceAccountUID,omitempty" validate:"required_if=AutoBalance true"`
}

// CreateTransferRequest describes a simple two-leg transfer: the named amount
// leaves FromAccountUID and enters ToAccountUID.
type CreateTransferRequest struct {
	Description    string    `json:"description" validate:"required"`
	Amount         string    `json:"amount" validate:"required"`
	CurrencyCode   string    `json:"currencyCode" validate:"required,len=3"`
	FromAccountUID string    `json:"fromAccountUID" validate:"required"`
	ToAccountUID   string    `json:"toAccountUID" validate:"required,nefield=FromAccountUID"`
	Date           time.Time `json:"date"`
	Memo           string    `json:"memo,omitempty"`
}

// RecordPriceRequest carries an externally supplied exchange rate.
type RecordPriceRequest struct {
	CommodityCode string    `json:"commodityCode" validate:"required"`
	CurrencyCode  string    `json:"currencyCode" validate:"required,len=3"`
	ValueNum      int64     `json:"valueNum" validate:"required"`
	ValueDenom    int64     `json:"valueDenom" validate:"required,gt=0"`
	Date          time.Time `json:"date"`
	Source        string    `json:"source,omitempty"`
	Type          string    `json:"type,omitempty"`
}

// MoneyView is the read-only numeric view of a Money amount.
type MoneyView struct {
	Amount       string `json:"amount"`
	Display      string `json:"display"`
	CurrencyCode string `json:"currencyCode"`
	Numerator    int64  `json:"numerator"`
	Denominator  int64  `json:"denominator"`
}

// SplitView is the read-only view of one transaction leg.
type SplitView struct {
	UID            string    `json:"uid"`
	TransactionUID string    `json:"transactionUID"`
	AccountUID     string    `json:"accountUID"`
	Type           string    `json:"type"`
	Value          MoneyView `json:"value"`
	Quantity       MoneyView `json:"quantity"`
	Memo           string    `json:"memo,omitempty"`
}

// TransactionView is the read-only view of a transaction and its splits.
type TransactionView struct {
	UID          string      `json:"uid"`
	Description  string      `json:"description"`
	Note         string      `json:"note,omitempty"`
	Date         time.Time   `json:"date"`
	CurrencyCode string      `json:"currencyCode"`
	Balanced     bool        `json:"balanced"`
	Splits       []SplitView `json:"splits"`
}

// PriceView is the read-only view of an exchange-rate record.
type PriceView struct {
	UID           string    `json:"uid"`
	CommodityCode string    `json:"commodityCode"`
	CurrencyCode  string    `json:"currencyCode"`
	Date          time.Time `json:"date"`
	Source        string    `json:"source,omitempty"`
	Type          string    `json:"type,omitempty"`
	ValueNum      int64     `json:"valueNum"`
	ValueDenom    int64     `json:"valueDenom"`
}

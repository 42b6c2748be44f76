// Package codec serializes splits and transactions to the ledger's delimited
// text form and parses both the canonical and the deprecated legacy record
// layouts. Legacy records are accepted on input indefinitely; output is always
// canonical.
package codec

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/finbook/finbook/internal/apperrors"
	"github.com/finbook/finbook/internal/core/domain"
)

const fieldSep = ";"

// canonicalFieldMin is the sniffing threshold: records with fewer fields are
// parsed with the legacy shape, everything else with the canonical shape.
const canonicalFieldMin = 8

// EncodeSplit renders a split as a canonical record:
//
//	valueNum;valueDenom;valueCur;qtyNum;qtyDenom;qtyCur;transactionUID;accountUID;TYPE[;memo]
//
// Amounts are written at their currency's minor-unit denominator with the
// magnitude unsigned; the direction lives in the TYPE field.
func EncodeSplit(s *domain.Split) string {
	value := s.Value()
	quantity := s.Quantity()
	fields := []string{
		strconv.FormatInt(value.MinorUnits(), 10),
		strconv.FormatInt(value.MinorUnitDenominator(), 10),
		value.CurrencyCode(),
		strconv.FormatInt(quantity.MinorUnits(), 10),
		strconv.FormatInt(quantity.MinorUnitDenominator(), 10),
		quantity.CurrencyCode(),
		s.TransactionUID,
		s.AccountUID,
		string(s.Type),
	}
	if s.Memo != "" {
		fields = append(fields, s.Memo)
	}
	return strings.Join(fields, fieldSep)
}

// DecodeSplit parses a split record in either supported layout. The canonical
// layout round-trips through EncodeSplit; the legacy layout
//
//	amount;currencyCode;transactionUID;accountUID;TYPE[;memo]
//
// is read-only compatibility for records written by old format versions.
func DecodeSplit(record string) (*domain.Split, error) {
	tokens := strings.Split(record, fieldSep)
	if len(tokens) < canonicalFieldMin {
		return decodeLegacySplit(tokens)
	}
	return decodeCanonicalSplit(tokens)
}

func decodeCanonicalSplit(tokens []string) (*domain.Split, error) {
	if len(tokens) != 9 && len(tokens) != 10 {
		return nil, fmt.Errorf("%w: canonical record has %d fields, want 9 or 10", apperrors.ErrMalformedRecord, len(tokens))
	}
	value, err := decodeAmount(tokens[0], tokens[1], tokens[2])
	if err != nil {
		return nil, err
	}
	quantity, err := decodeAmount(tokens[3], tokens[4], tokens[5])
	if err != nil {
		return nil, err
	}
	splitType, err := domain.ParseTransactionType(tokens[8])
	if err != nil {
		return nil, err
	}
	split := domain.NewSplit(value, tokens[7])
	split.SetQuantity(quantity)
	split.TransactionUID = tokens[6]
	split.Type = splitType
	if len(tokens) == 10 {
		split.Memo = tokens[9]
	}
	return split, nil
}

func decodeLegacySplit(tokens []string) (*domain.Split, error) {
	if len(tokens) != 5 && len(tokens) != 6 {
		return nil, fmt.Errorf("%w: legacy record has %d fields, want 5 or 6", apperrors.ErrMalformedRecord, len(tokens))
	}
	amount, err := domain.NewMoneyFromString(tokens[0], tokens[1])
	if err != nil {
		return nil, fmt.Errorf("%w: %v", apperrors.ErrMalformedRecord, err)
	}
	splitType, err := domain.ParseTransactionType(tokens[4])
	if err != nil {
		return nil, err
	}
	split := domain.NewSplit(amount, tokens[3])
	split.TransactionUID = tokens[2]
	split.Type = splitType
	if len(tokens) == 6 {
		split.Memo = tokens[5]
	}
	return split, nil
}

func decodeAmount(numTok, denomTok, currencyCode string) (domain.Money, error) {
	num, err := strconv.ParseInt(numTok, 10, 64)
	if err != nil {
		return domain.Money{}, fmt.Errorf("%w: numerator %q", apperrors.ErrMalformedRecord, numTok)
	}
	denom, err := strconv.ParseInt(denomTok, 10, 64)
	if err != nil {
		return domain.Money{}, fmt.Errorf("%w: denominator %q", apperrors.ErrMalformedRecord, denomTok)
	}
	amount, err := domain.NewMoney(num, denom, currencyCode)
	if err != nil {
		return domain.Money{}, fmt.Errorf("%w: %v", apperrors.ErrMalformedRecord, err)
	}
	return amount, nil
}

// EncodeTransactionSplits renders every split of a transaction as one
// canonical record per line, in split order.
func EncodeTransactionSplits(t *domain.Transaction) string {
	var b strings.Builder
	for i, s := range t.Splits() {
		if i > 0 {
			b.WriteByte('\n')
		}
		b.WriteString(EncodeSplit(s))
	}
	return b.String()
}

// DecodeTransactionSplits parses a newline-separated block of split records.
// Blank lines are skipped.
func DecodeTransactionSplits(block string) ([]*domain.Split, error) {
	var splits []*domain.Split
	for _, line := range strings.Split(block, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		split, err := DecodeSplit(line)
		if err != nil {
			return nil, err
		}
		splits = append(splits, split)
	}
	return splits, nil
}

package codec_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/finbook/finbook/internal/apperrors"
	"github.com/finbook/finbook/internal/codec"
	"github.com/finbook/finbook/internal/core/domain"
)

func mustMoney(t *testing.T, amount, currency string) domain.Money {
	t.Helper()
	m, err := domain.NewMoneyFromString(amount, currency)
	require.NoError(t, err)
	return m
}

func TestEncodeSplit(t *testing.T) {
	s := domain.NewSplit(mustMoney(t, "10.00", "USD"), "acct-a")
	s.TransactionUID = "tx-1"

	got := codec.EncodeSplit(s)
	assert.Equal(t, "1000;100;USD;1000;100;USD;tx-1;acct-a;CREDIT", got)

	s.Memo = "lunch"
	got = codec.EncodeSplit(s)
	assert.Equal(t, "1000;100;USD;1000;100;USD;tx-1;acct-a;CREDIT;lunch", got)
}

func TestEncodeSplit_ForeignQuantity(t *testing.T) {
	s := domain.NewSplit(mustMoney(t, "10.00", "USD"), "acct-eur")
	s.TransactionUID = "tx-1"
	s.SetQuantity(mustMoney(t, "8.60", "EUR"))

	got := codec.EncodeSplit(s)
	assert.Equal(t, "1000;100;USD;860;100;EUR;tx-1;acct-eur;CREDIT", got)
}

func TestDecodeSplit_CanonicalRoundTrip(t *testing.T) {
	records := []string{
		"1000;100;USD;1000;100;USD;tx-1;acct-a;CREDIT",
		"1000;100;USD;860;100;EUR;tx-1;acct-eur;DEBIT",
		"250;1;JPY;250;1;JPY;tx-2;acct-jp;CREDIT;travel",
	}
	for _, record := range records {
		split, err := codec.DecodeSplit(record)
		require.NoError(t, err, record)
		assert.Equal(t, record, codec.EncodeSplit(split), record)
	}
}

func TestDecodeSplit_Canonical(t *testing.T) {
	split, err := codec.DecodeSplit("1000;100;USD;860;100;EUR;tx-1;acct-eur;DEBIT;imported")
	require.NoError(t, err)

	assert.Equal(t, "10.00", split.Value().ToPlainString())
	assert.Equal(t, "USD", split.Value().CurrencyCode())
	assert.Equal(t, "8.60", split.Quantity().ToPlainString())
	assert.Equal(t, "EUR", split.Quantity().CurrencyCode())
	assert.Equal(t, "tx-1", split.TransactionUID)
	assert.Equal(t, "acct-eur", split.AccountUID)
	assert.Equal(t, domain.Debit, split.Type)
	assert.Equal(t, "imported", split.Memo)
}

func TestDecodeSplit_Legacy(t *testing.T) {
	split, err := codec.DecodeSplit("10.00;USD;tx1;accA;CREDIT")
	require.NoError(t, err)

	assert.Equal(t, "10.00", split.Value().ToPlainString())
	assert.Equal(t, "USD", split.Value().CurrencyCode())
	// The legacy format has no quantity; it defaults to the value.
	assert.True(t, split.Quantity().Equal(split.Value()))
	assert.Equal(t, "tx1", split.TransactionUID)
	assert.Equal(t, "accA", split.AccountUID)
	assert.Equal(t, domain.Credit, split.Type)
	assert.Empty(t, split.Memo)
}

func TestDecodeSplit_LegacyWithMemo(t *testing.T) {
	split, err := codec.DecodeSplit("10.00;USD;tx1;accA;DEBIT;rent april")
	require.NoError(t, err)
	assert.Equal(t, domain.Debit, split.Type)
	assert.Equal(t, "rent april", split.Memo)
}

// Legacy records are accepted on input, but the codec always emits canonical output.
func TestDecodeSplit_LegacyNormalizesOnEncode(t *testing.T) {
	split, err := codec.DecodeSplit("10.00;USD;tx1;accA;CREDIT")
	require.NoError(t, err)
	assert.Equal(t, "1000;100;USD;1000;100;USD;tx1;accA;CREDIT", codec.EncodeSplit(split))
}

func TestDecodeSplit_Malformed(t *testing.T) {
	tests := []struct {
		name    string
		record  string
		wantErr error
	}{
		{name: "too few fields", record: "10.00;USD;tx1", wantErr: apperrors.ErrMalformedRecord},
		{name: "seven fields", record: "1;2;3;4;5;6;7", wantErr: apperrors.ErrMalformedRecord},
		{name: "eight fields", record: "1000;100;USD;1000;100;USD;tx-1;acct-a", wantErr: apperrors.ErrMalformedRecord},
		{name: "eleven fields", record: "1000;100;USD;1000;100;USD;tx-1;acct-a;CREDIT;memo;extra", wantErr: apperrors.ErrMalformedRecord},
		{name: "legacy bad amount", record: "ten;USD;tx1;accA;CREDIT", wantErr: apperrors.ErrMalformedRecord},
		{name: "canonical bad numerator", record: "x;100;USD;1000;100;USD;tx-1;acct-a;CREDIT", wantErr: apperrors.ErrMalformedRecord},
		{name: "canonical bad denominator", record: "1000;x;USD;1000;100;USD;tx-1;acct-a;CREDIT", wantErr: apperrors.ErrMalformedRecord},
		{name: "canonical zero denominator", record: "1000;0;USD;1000;100;USD;tx-1;acct-a;CREDIT", wantErr: apperrors.ErrMalformedRecord},
		{name: "legacy unknown type", record: "10.00;USD;tx1;accA;TRANSFER", wantErr: apperrors.ErrUnknownSplitType},
		{name: "canonical unknown type", record: "1000;100;USD;1000;100;USD;tx-1;acct-a;BOTH", wantErr: apperrors.ErrUnknownSplitType},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := codec.DecodeSplit(tt.record)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestEncodeTransactionSplits(t *testing.T) {
	tx := domain.NewTransaction("transfer", "USD")
	s := domain.NewSplit(mustMoney(t, "10.00", "USD"), "acct-a")
	tx.AddSplit(s)
	tx.AddSplit(s.CreatePair("acct-b"))

	block := codec.EncodeTransactionSplits(tx)
	lines := strings.Split(block, "\n")
	require.Len(t, lines, 2)
	assert.Contains(t, lines[0], ";acct-a;CREDIT")
	assert.Contains(t, lines[1], ";acct-b;DEBIT")

	splits, err := codec.DecodeTransactionSplits(block + "\n\n")
	require.NoError(t, err)
	require.Len(t, splits, 2)
	assert.True(t, splits[0].IsPairOf(splits[1]))
	assert.Equal(t, tx.UID, splits[0].TransactionUID)
}

func TestDecodeTransactionSplits_PropagatesErrors(t *testing.T) {
	_, err := codec.DecodeTransactionSplits("1000;100;USD;1000;100;USD;tx-1;acct-a;CREDIT\ngarbage;line")
	assert.ErrorIs(t, err, apperrors.ErrMalformedRecord)
}

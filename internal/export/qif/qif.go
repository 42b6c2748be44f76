// Package qif renders ledger transactions as QIF text. It only generates
// strings; choosing a destination and writing it out belong to the export
// pipeline around this core.
package qif

import (
	"fmt"
	"strings"

	"github.com/finbook/finbook/internal/core/domain"
)

const dateLayout = "2006/01/02"

// AccountResolver maps an account UID to its account, reporting whether the
// account is known. Unknown accounts are rendered under an "Unspecified"
// category rather than failing the export.
type AccountResolver func(accountUID string) (*domain.Account, bool)

// qifAccountType maps ledger account types onto QIF register types.
func qifAccountType(t domain.AccountType) string {
	switch t {
	case domain.Liability:
		return "Oth L"
	default:
		return "Oth A"
	}
}

// ExportAccount renders every transaction touching the given account as a QIF
// register for that account. Transactions not touching it are skipped.
//
// Amounts are oriented to the account's normal balance side, so a deposit
// into an asset account exports as a positive T amount.
func ExportAccount(account *domain.Account, transactions []*domain.Transaction, resolve AccountResolver) (string, error) {
	var b strings.Builder
	b.WriteString("!Account\n")
	fmt.Fprintf(&b, "N%s\n", account.Name)
	fmt.Fprintf(&b, "T%s\n", qifAccountType(account.AccountType))
	b.WriteString("^\n")
	fmt.Fprintf(&b, "!Type:%s\n", qifAccountType(account.AccountType))

	for _, tx := range transactions {
		if len(tx.SplitsForAccount(account.UID)) == 0 {
			continue
		}
		if err := writeTransaction(&b, account, tx, resolve); err != nil {
			return "", err
		}
	}
	return b.String(), nil
}

func writeTransaction(b *strings.Builder, account *domain.Account, tx *domain.Transaction, resolve AccountResolver) error {
	total, err := tx.Balance(account.UID)
	if err != nil {
		return fmt.Errorf("transaction %s: %w", tx.UID, err)
	}

	fmt.Fprintf(b, "D%s\n", tx.Time.Format(dateLayout))
	fmt.Fprintf(b, "T%s\n", orient(account, total).ToPlainString())
	fmt.Fprintf(b, "P%s\n", tx.Description)
	if tx.Note != "" {
		fmt.Fprintf(b, "M%s\n", tx.Note)
	}

	for _, split := range tx.Splits() {
		if split.AccountUID == account.UID {
			continue
		}
		fmt.Fprintf(b, "S%s\n", categoryName(split.AccountUID, resolve))
		if split.Memo != "" {
			fmt.Fprintf(b, "E%s\n", split.Memo)
		}
		fmt.Fprintf(b, "$%s\n", orient(account, split.SignedValue().Negate()).ToPlainString())
	}
	b.WriteString("^\n")
	return nil
}

// orient flips a credit-positive amount for debit-normal accounts, matching
// the register orientation used for account balances.
func orient(account *domain.Account, m domain.Money) domain.Money {
	if account.AccountType.NormalBalance() == domain.Debit {
		return m.Negate()
	}
	return m
}

// categoryName renders a split target as a QIF category: plain names for
// income and expense accounts, bracketed transfer names for the rest.
func categoryName(accountUID string, resolve AccountResolver) string {
	account, ok := resolve(accountUID)
	if !ok {
		return "Unspecified"
	}
	switch account.AccountType {
	case domain.Income, domain.Expense:
		return account.Name
	default:
		return "[" + account.Name + "]"
	}
}

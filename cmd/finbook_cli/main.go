// finbook_cli is a small operational tool over the accounting core: it
// checks ledger record files for parse errors and unbalanced transactions,
// normalizes legacy records to the canonical format, and exports a register
// as QIF. All file I/O lives here; the core never touches the filesystem.
package main

import (
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/finbook/finbook/internal/codec"
	"github.com/finbook/finbook/internal/core/domain"
	"github.com/finbook/finbook/internal/export/qif"
	"github.com/finbook/finbook/internal/platform/config"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		fmt.Fprintln(os.Stderr, "failed to load config:", err)
		os.Exit(1)
	}

	var handler slog.Handler = slog.NewTextHandler(os.Stderr, nil)
	if cfg.IsProduction {
		handler = slog.NewJSONHandler(os.Stderr, nil)
	}
	logger := slog.New(handler)
	slog.SetDefault(logger)

	if len(os.Args) < 3 {
		usage()
		os.Exit(2)
	}

	command, path := os.Args[1], os.Args[2]
	transactions, parseErrs := loadTransactions(logger, path)

	switch command {
	case "check":
		os.Exit(runCheck(logger, transactions, parseErrs))
	case "normalize":
		if parseErrs > 0 {
			os.Exit(1)
		}
		os.Exit(runNormalize(cfg, logger, transactions))
	case "qif":
		if len(os.Args) < 4 {
			usage()
			os.Exit(2)
		}
		if parseErrs > 0 {
			os.Exit(1)
		}
		os.Exit(runQif(logger, transactions, os.Args[3]))
	default:
		usage()
		os.Exit(2)
	}
}

func usage() {
	fmt.Fprintln(os.Stderr, `usage:
  finbook_cli check <records-file>
  finbook_cli normalize <records-file>
  finbook_cli qif <records-file> <account-uid>`)
}

// loadTransactions parses a file of split records (one per line, legacy or
// canonical) and groups them into transactions by transaction UID, preserving
// first-appearance order. It returns the number of unparsable lines.
func loadTransactions(logger *slog.Logger, path string) ([]*domain.Transaction, int) {
	data, err := os.ReadFile(path)
	if err != nil {
		logger.Error("failed to read records file", slog.String("path", path), slog.String("error", err.Error()))
		os.Exit(1)
	}

	byUID := make(map[string]*domain.Transaction)
	var order []*domain.Transaction
	parseErrs := 0

	for i, line := range strings.Split(string(data), "\n") {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		split, err := codec.DecodeSplit(line)
		if err != nil {
			logger.Error("unparsable record",
				slog.Int("line", i+1),
				slog.String("error", err.Error()))
			parseErrs++
			continue
		}
		tx, ok := byUID[split.TransactionUID]
		if !ok {
			tx = domain.NewTransaction("", split.Value().CurrencyCode())
			tx.UID = split.TransactionUID
			byUID[tx.UID] = tx
			order = append(order, tx)
		}
		tx.AddSplit(split)
	}
	return order, parseErrs
}

func runCheck(logger *slog.Logger, transactions []*domain.Transaction, parseErrs int) int {
	unbalanced := 0
	for _, tx := range transactions {
		imbalance, err := tx.Imbalance()
		if err != nil {
			logger.Error("imbalance not computable",
				slog.String("transaction_uid", tx.UID),
				slog.String("error", err.Error()))
			unbalanced++
			continue
		}
		if !imbalance.IsZero() {
			logger.Warn("unbalanced transaction",
				slog.String("transaction_uid", tx.UID),
				slog.String("imbalance", imbalance.String()))
			unbalanced++
		}
	}
	logger.Info("check complete",
		slog.Int("transactions", len(transactions)),
		slog.Int("unbalanced", unbalanced),
		slog.Int("parse_errors", parseErrs))
	if unbalanced > 0 || parseErrs > 0 {
		return 1
	}
	return 0
}

func runNormalize(cfg *config.Config, logger *slog.Logger, transactions []*domain.Transaction) int {
	for _, tx := range transactions {
		if balancing := tx.CreateAutoBalanceSplit(cfg.ImbalanceAccountUID); balancing != nil {
			logger.Warn("inserted imbalance split",
				slog.String("transaction_uid", tx.UID),
				slog.String("amount", balancing.Value().ToPlainString()))
		}
		fmt.Println(codec.EncodeTransactionSplits(tx))
	}
	return 0
}

func runQif(logger *slog.Logger, transactions []*domain.Transaction, accountUID string) int {
	// Record files carry UIDs only, so the register is exported against a
	// synthetic asset account named after the UID.
	account := domain.NewAccount(accountUID, domain.Asset, "USD")
	account.UID = accountUID

	out, err := qif.ExportAccount(account, transactions, func(uid string) (*domain.Account, bool) {
		return nil, false
	})
	if err != nil {
		logger.Error("qif export failed", slog.String("error", err.Error()))
		return 1
	}
	fmt.Print(out)
	return 0
}

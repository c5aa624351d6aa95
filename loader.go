package folio

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
)

// LedgerFile is a JSONL ledger on disk. A missing file is an empty ledger.
type LedgerFile struct {
	Path       string
	Normalizer Normalizer
}

// Load reads the whole ledger.
func (f LedgerFile) Load() (*Ledger, error) {
	file, err := os.Open(f.Path)
	if errors.Is(err, fs.ErrNotExist) {
		return NewLedger(), nil
	}
	if err != nil {
		return nil, fmt.Errorf("could not open ledger file %q: %w", f.Path, err)
	}
	defer file.Close()
	l, err := DecodeLedger(file, f.Normalizer)
	if err != nil {
		return nil, fmt.Errorf("could not decode ledger file %q: %w", f.Path, err)
	}
	return l, nil
}

// Transactions implements TransactionSource.
func (f LedgerFile) Transactions(ctx context.Context) ([]Transaction, error) {
	l, err := f.Load()
	if err != nil {
		return nil, err
	}
	return l.Transactions(ctx)
}

// AppendTransaction implements TransactionSink. The transaction is appended at
// the end of the file, the file order is restored on next load.
func (f LedgerFile) AppendTransaction(_ context.Context, tx Transaction) error {
	file, err := os.OpenFile(f.Path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return fmt.Errorf("could not open ledger file %q: %w", f.Path, err)
	}
	if err := EncodeTransaction(file, tx); err != nil {
		file.Close()
		return fmt.Errorf("could not write to ledger file %q: %w", f.Path, err)
	}
	return file.Close()
}

// Package emit writes canonical transactions as the CSV the ledger imports.
package emit

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/shopspring/decimal"

	"github.com/cleared-dev/tx2actual/internal/model"
)

const (
	colAmount = "amount"
	colNotes  = "notes"
	colPayee  = "payee"
	colDate   = "date"
)

// Options control the emitted columns.
type Options struct {
	OmitNotes bool
}

// Header returns the column names for opts.
func Header(opts Options) []string {
	if opts.OmitNotes {
		return []string{colAmount, colPayee, colDate}
	}
	return []string{colAmount, colNotes, colPayee, colDate}
}

// Marshal converts a transaction to a CSV row.
func Marshal(txn model.CanonicalTransaction, opts Options) []string {
	amount := txn.Amount.StringFixed(2)
	if opts.OmitNotes {
		return []string{amount, txn.Payee, txn.Date}
	}
	return []string{amount, txn.Notes, txn.Payee, txn.Date}
}

// Write writes the header and one row per transaction.
func Write(w io.Writer, txns []model.CanonicalTransaction, opts Options) error {
	cw := csv.NewWriter(w)
	defer cw.Flush()

	if err := cw.Write(Header(opts)); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}
	for i, txn := range txns {
		if err := cw.Write(Marshal(txn, opts)); err != nil {
			return fmt.Errorf("writing row %d: %w", i+2, err)
		}
	}
	cw.Flush()
	return cw.Error()
}

// WriteFile writes txns to path. The file only appears once fully written.
func WriteFile(path string, txns []model.CanonicalTransaction, opts Options) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating output dir: %w", err)
	}

	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".*")
	if err != nil {
		return fmt.Errorf("creating temp file: %w", err)
	}
	defer os.Remove(tmp.Name())

	if err := Write(tmp, txns, opts); err != nil {
		tmp.Close()
		return fmt.Errorf("writing %s: %w", path, err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("closing %s: %w", tmp.Name(), err)
	}
	if err := os.Chmod(tmp.Name(), 0o644); err != nil {
		return fmt.Errorf("setting mode on %s: %w", tmp.Name(), err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		return fmt.Errorf("moving output into place: %w", err)
	}
	return nil
}

// Summary is the count and total of an emitted batch.
type Summary struct {
	Count int
	Total decimal.Decimal
}

// Summarize totals txns.
func Summarize(txns []model.CanonicalTransaction) Summary {
	s := Summary{Count: len(txns), Total: decimal.Zero}
	for _, txn := range txns {
		s.Total = s.Total.Add(txn.Amount)
	}
	return s
}

// Package normalize turns loaded rows into canonical transactions: row
// filtering, amount sign, timestamps, payee cleanup and the date cutoff.
package normalize

import (
	"io"

	"github.com/charmbracelet/log"

	"github.com/cleared-dev/tx2actual/internal/dialect"
	"github.com/cleared-dev/tx2actual/internal/model"
)

// Options are the runtime switches of a conversion.
type Options struct {
	Cutoff   Cutoff
	Disabled map[string]bool // predicate toggles switched off
}

// Stats counts rows at each stage of a run.
type Stats struct {
	Loaded   int
	Filtered int // dropped by predicates
	CutOff   int // dropped by the cutoff
	Kept     int
}

// Pipeline normalizes the rows of one dialect.
type Pipeline struct {
	dialect dialect.Dialect
	filter  *Filter
	cutoff  Cutoff
	logger  *log.Logger
}

// New builds a pipeline. A nil logger discards debug output.
func New(d dialect.Dialect, opts Options, logger *log.Logger) *Pipeline {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &Pipeline{
		dialect: d,
		filter:  NewFilter(d.Filters, opts.Disabled),
		cutoff:  opts.Cutoff,
		logger:  logger,
	}
}

// Run filters, normalizes and cuts rows, preserving their order.
// The first failing row aborts the run.
func (p *Pipeline) Run(rows []model.RawRow) ([]model.CanonicalTransaction, Stats, error) {
	stats := Stats{Loaded: len(rows)}
	txns := make([]model.CanonicalTransaction, 0, len(rows))

	for _, row := range rows {
		if ok, col := p.filter.Keep(row); !ok {
			p.logger.Debug("row filtered", "line", row.Line, "column", col, "value", row.Text(col))
			stats.Filtered++
			continue
		}

		txn, err := p.Normalize(row)
		if err != nil {
			return nil, stats, err
		}

		if !p.cutoff.Keep(txn.Date) {
			p.logger.Debug("row after cutoff", "line", row.Line, "date", txn.Day(), "cutoff", p.cutoff)
			stats.CutOff++
			continue
		}
		txns = append(txns, txn)
	}

	stats.Kept = len(txns)
	return txns, stats, nil
}

// Normalize maps a single row to its canonical transaction.
func (p *Pipeline) Normalize(row model.RawRow) (model.CanonicalTransaction, error) {
	amount, err := Amount(row, p.dialect.Amount)
	if err != nil {
		return model.CanonicalTransaction{}, err
	}
	date, err := Date(row, p.dialect.Date)
	if err != nil {
		return model.CanonicalTransaction{}, err
	}
	return model.CanonicalTransaction{
		Date:   date,
		Amount: amount,
		Payee:  CleanPayee(row.Text(p.dialect.Payee.Column), p.dialect.Payee),
		Notes:  row.Text(p.dialect.NotesColumn),
		Line:   row.Line,
	}, nil
}

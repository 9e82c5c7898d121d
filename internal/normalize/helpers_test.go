package normalize

import (
	"github.com/shopspring/decimal"

	"github.com/cleared-dev/tx2actual/internal/model"
)

func num(s string) model.Value {
	return model.Number(s, decimal.RequireFromString(s))
}

func text(s string) model.Value { return model.Text(s) }

func rawRow(line int, fields map[string]model.Value) model.RawRow {
	return model.RawRow{Line: line, Fields: fields}
}

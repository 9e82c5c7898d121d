package model

import "github.com/shopspring/decimal"

// ValueKind classifies a raw cell.
type ValueKind int

const (
	KindMissing ValueKind = iota // empty cell, the not-a-number marker
	KindText
	KindNumber
)

func (k ValueKind) String() string {
	switch k {
	case KindText:
		return "text"
	case KindNumber:
		return "number"
	default:
		return "missing"
	}
}

// Value is a single cell as read from a source file.
type Value struct {
	Raw  string
	Kind ValueKind
	Num  decimal.Decimal // only meaningful when Kind == KindNumber
}

// Missing returns the not-a-number marker.
func Missing() Value { return Value{Kind: KindMissing} }

// Text wraps a non-numeric cell.
func Text(raw string) Value { return Value{Raw: raw, Kind: KindText} }

// Number wraps a cell that was coerced to a decimal.
func Number(raw string, n decimal.Decimal) Value {
	return Value{Raw: raw, Kind: KindNumber, Num: n}
}

// IsMissing reports whether the cell was empty.
func (v Value) IsMissing() bool { return v.Kind == KindMissing }

// IsNumber reports whether the cell holds a valid number.
func (v Value) IsNumber() bool { return v.Kind == KindNumber }

// RawRow is one source record keyed by header column name.
type RawRow struct {
	Line   int // 1-based physical line in the source file
	Fields map[string]Value
}

// Get returns the cell for column. Absent columns read as Missing.
func (r RawRow) Get(column string) (Value, bool) {
	v, ok := r.Fields[column]
	if !ok {
		return Missing(), false
	}
	return v, true
}

// Text returns the raw text of column, or "" when absent.
func (r RawRow) Text(column string) string {
	v, _ := r.Get(column)
	return v.Raw
}

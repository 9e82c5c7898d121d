package model

import "github.com/shopspring/decimal"

// CanonicalTransaction is one normalized record handed to the ledger.
type CanonicalTransaction struct {
	Date   string          // ISO 8601 with explicit UTC offset
	Amount decimal.Decimal // negative = money out, positive = money in
	Payee  string
	Notes  string // original label, untouched
	Line   int    // source line the row started on
}

// Day returns the YYYY-MM-DD prefix of Date.
func (t CanonicalTransaction) Day() string {
	if len(t.Date) < 10 {
		return t.Date
	}
	return t.Date[:10]
}

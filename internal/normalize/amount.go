package normalize

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/cleared-dev/tx2actual/internal/dialect"
	"github.com/cleared-dev/tx2actual/internal/model"
)

// Amount returns the signed amount of row: negative for money leaving the account.
func Amount(row model.RawRow, spec dialect.AmountSpec) (decimal.Decimal, error) {
	switch spec.Mode {
	case dialect.AmountSplit:
		return splitAmount(row, spec.Debit, spec.Credit)
	case dialect.AmountNet:
		return netAmount(row, spec.Net)
	default:
		return decimal.Zero, fmt.Errorf("unknown amount mode %q", spec.Mode)
	}
}

// splitAmount reads unsigned debit/credit columns. Exactly one must hold a
// non-zero number.
func splitAmount(row model.RawRow, debitCol, creditCol string) (decimal.Decimal, error) {
	debit, _ := row.Get(debitCol)
	credit, _ := row.Get(creditCol)
	hasDebit := debit.IsNumber() && !debit.Num.IsZero()
	hasCredit := credit.IsNumber() && !credit.Num.IsZero()

	switch {
	case hasDebit && hasCredit:
		return decimal.Zero, &InvalidAmountError{
			Line:   row.Line,
			Column: debitCol + "/" + creditCol,
			Reason: fmt.Sprintf("both debit %q and credit %q are set", debit.Raw, credit.Raw),
		}
	case hasDebit:
		return debit.Num.Neg(), nil
	case hasCredit:
		return credit.Num, nil
	default:
		return decimal.Zero, &InvalidAmountError{
			Line:   row.Line,
			Column: debitCol + "/" + creditCol,
			Reason: fmt.Sprintf("neither debit %q nor credit %q holds a number", debit.Raw, credit.Raw),
		}
	}
}

// netAmount reads a single signed column. Exports leave zero-net rows blank.
func netAmount(row model.RawRow, col string) (decimal.Decimal, error) {
	v, _ := row.Get(col)
	switch v.Kind {
	case model.KindMissing:
		return decimal.Zero, nil
	case model.KindNumber:
		return v.Num, nil
	default:
		return decimal.Zero, &InvalidAmountError{
			Line:   row.Line,
			Column: col,
			Reason: fmt.Sprintf("%q is not a number", v.Raw),
		}
	}
}

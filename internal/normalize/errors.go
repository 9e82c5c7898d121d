package normalize

import "fmt"

// InvalidAmountError reports a row whose amount columns do not yield exactly
// one signed value.
type InvalidAmountError struct {
	Line   int
	Column string
	Reason string
}

func (e *InvalidAmountError) Error() string {
	return fmt.Sprintf("row at line %d: invalid amount in %s: %s", e.Line, e.Column, e.Reason)
}

// UnknownTimezoneError reports a zone abbreviation missing from the dialect's table.
type UnknownTimezoneError struct {
	Line   int
	Column string
	Zone   string
}

func (e *UnknownTimezoneError) Error() string {
	return fmt.Sprintf("row at line %d: unknown timezone %q in %s", e.Line, e.Zone, e.Column)
}

// InvalidDateError reports a date or time that is not a real calendar instant.
type InvalidDateError struct {
	Line   int
	Column string
	Value  string
	Err    error
}

func (e *InvalidDateError) Error() string {
	return fmt.Sprintf("row at line %d: invalid date %q in %s: %v", e.Line, e.Value, e.Column, e.Err)
}

func (e *InvalidDateError) Unwrap() error { return e.Err }

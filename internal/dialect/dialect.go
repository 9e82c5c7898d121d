// Package dialect describes how each institution's export is laid out and
// which rules turn its rows into canonical transactions.
package dialect

import (
	"fmt"
	"strconv"
	"strings"
	"unicode/utf8"
)

// AmountMode selects how a signed amount is derived from a row.
type AmountMode string

const (
	// AmountSplit reads separate unsigned debit and credit columns.
	AmountSplit AmountMode = "split"
	// AmountNet reads a single signed column.
	AmountNet AmountMode = "net"
)

// DateMode selects how the canonical timestamp is built.
type DateMode string

const (
	// DateOnly pins a calendar day to midday UTC.
	DateOnly DateMode = "date"
	// DateTimeZone combines date, time of day and a named zone.
	DateTimeZone DateMode = "datetime_zone"
)

// ToggleRemoveOtherCurrencies names the runtime switch for currency predicates.
const ToggleRemoveOtherCurrencies = "remove_other_currencies"

// Dialect is the full parsing and normalization configuration for one source.
// Values are treated as read-only once built; use Clone before modifying.
type Dialect struct {
	Name        string      `yaml:"name"`
	Description string      `yaml:"description,omitempty"`
	Encoding    string      `yaml:"encoding"`
	Delimiter   string      `yaml:"delimiter"`
	Decimal     string      `yaml:"decimal"`
	Thousands   string      `yaml:"thousands,omitempty"`
	SkipLines   int         `yaml:"skip_lines"`
	Filters     []Predicate `yaml:"filters,omitempty"`
	Amount      AmountSpec  `yaml:"amount"`
	Date        DateSpec    `yaml:"date"`
	Payee       PayeeSpec   `yaml:"payee"`
	NotesColumn string      `yaml:"notes_column"`
	Output      OutputSpec  `yaml:"output"`
}

// Predicate keeps a row only when Column holds one of OneOf.
// A predicate with a Toggle can be switched off at runtime.
type Predicate struct {
	Column string   `yaml:"column"`
	OneOf  []string `yaml:"one_of"`
	Toggle string   `yaml:"toggle,omitempty"`
}

// AmountSpec names the amount columns.
type AmountSpec struct {
	Mode   AmountMode `yaml:"mode"`
	Debit  string     `yaml:"debit,omitempty"`
	Credit string     `yaml:"credit,omitempty"`
	Net    string     `yaml:"net,omitempty"`
}

// DateSpec names the date columns and the zone table.
type DateSpec struct {
	Mode       DateMode          `yaml:"mode"`
	Column     string            `yaml:"column"`
	Layout     string            `yaml:"layout"`
	TimeColumn string            `yaml:"time_column,omitempty"`
	TimeLayout string            `yaml:"time_layout,omitempty"`
	ZoneColumn string            `yaml:"zone_column,omitempty"`
	Zones      map[string]string `yaml:"zones,omitempty"` // abbreviation -> "+02:00"
}

// PayeeSpec lists the cleanup rules applied to the payee label.
type PayeeSpec struct {
	Column            string   `yaml:"column"`
	Boilerplate       []string `yaml:"boilerplate,omitempty"`
	StripReference    bool     `yaml:"strip_reference"`
	StripTrailingDate bool     `yaml:"strip_trailing_date"`
	StripCardPrefix   bool     `yaml:"strip_card_prefix"`
}

// OutputSpec controls the emitted file.
type OutputSpec struct {
	File        string `yaml:"file"`
	OmitNotes   bool   `yaml:"omit_notes,omitempty"`
	ReportTotal bool   `yaml:"report_total,omitempty"`
}

// Comma returns the delimiter as a rune.
func (d Dialect) Comma() rune {
	r, _ := utf8.DecodeRuneInString(d.Delimiter)
	return r
}

// Columns returns every column the dialect reads, in first-use order.
func (d Dialect) Columns() []string {
	var cols []string
	seen := make(map[string]bool)
	add := func(c string) {
		if c == "" || seen[c] {
			return
		}
		seen[c] = true
		cols = append(cols, c)
	}
	for _, p := range d.Filters {
		add(p.Column)
	}
	add(d.Amount.Debit)
	add(d.Amount.Credit)
	add(d.Amount.Net)
	add(d.Date.Column)
	add(d.Date.TimeColumn)
	add(d.Date.ZoneColumn)
	add(d.Payee.Column)
	add(d.NotesColumn)
	return cols
}

// Clone returns a deep copy.
func (d Dialect) Clone() Dialect {
	out := d
	if d.Filters != nil {
		out.Filters = make([]Predicate, len(d.Filters))
		for i, p := range d.Filters {
			p.OneOf = append([]string(nil), p.OneOf...)
			out.Filters[i] = p
		}
	}
	if d.Date.Zones != nil {
		out.Date.Zones = make(map[string]string, len(d.Date.Zones))
		for k, v := range d.Date.Zones {
			out.Date.Zones[k] = v
		}
	}
	out.Payee.Boilerplate = append([]string(nil), d.Payee.Boilerplate...)
	return out
}

// Validate checks that the dialect is complete and self-consistent.
func (d Dialect) Validate() error {
	if d.Name == "" {
		return fmt.Errorf("dialect name is required")
	}
	if _, err := LookupEncoding(d.Encoding); err != nil {
		return fmt.Errorf("dialect %s: %w", d.Name, err)
	}
	if utf8.RuneCountInString(d.Delimiter) != 1 {
		return fmt.Errorf("dialect %s: delimiter must be a single character, got %q", d.Name, d.Delimiter)
	}
	if utf8.RuneCountInString(d.Decimal) != 1 {
		return fmt.Errorf("dialect %s: decimal separator must be a single character, got %q", d.Name, d.Decimal)
	}
	if utf8.RuneCountInString(d.Thousands) > 1 {
		return fmt.Errorf("dialect %s: thousands separator must be at most one character, got %q", d.Name, d.Thousands)
	}
	if d.Thousands == d.Decimal {
		return fmt.Errorf("dialect %s: decimal and thousands separators must differ", d.Name)
	}
	if d.SkipLines < 0 {
		return fmt.Errorf("dialect %s: skip_lines must not be negative", d.Name)
	}
	for i, p := range d.Filters {
		if p.Column == "" || len(p.OneOf) == 0 {
			return fmt.Errorf("dialect %s: filter %d needs a column and at least one value", d.Name, i)
		}
	}

	switch d.Amount.Mode {
	case AmountSplit:
		if d.Amount.Debit == "" || d.Amount.Credit == "" {
			return fmt.Errorf("dialect %s: split amounts need debit and credit columns", d.Name)
		}
	case AmountNet:
		if d.Amount.Net == "" {
			return fmt.Errorf("dialect %s: net amounts need a net column", d.Name)
		}
	default:
		return fmt.Errorf("dialect %s: unknown amount mode %q", d.Name, d.Amount.Mode)
	}

	if d.Date.Column == "" || d.Date.Layout == "" {
		return fmt.Errorf("dialect %s: date column and layout are required", d.Name)
	}
	switch d.Date.Mode {
	case DateOnly:
	case DateTimeZone:
		if d.Date.TimeColumn == "" || d.Date.TimeLayout == "" || d.Date.ZoneColumn == "" {
			return fmt.Errorf("dialect %s: datetime_zone needs time column, time layout and zone column", d.Name)
		}
		if len(d.Date.Zones) == 0 {
			return fmt.Errorf("dialect %s: datetime_zone needs a zone table", d.Name)
		}
		for name, off := range d.Date.Zones {
			if _, err := ParseOffset(off); err != nil {
				return fmt.Errorf("dialect %s: zone %s: %w", d.Name, name, err)
			}
		}
	default:
		return fmt.Errorf("dialect %s: unknown date mode %q", d.Name, d.Date.Mode)
	}

	if d.Payee.Column == "" {
		return fmt.Errorf("dialect %s: payee column is required", d.Name)
	}
	if d.Output.File == "" {
		return fmt.Errorf("dialect %s: output file is required", d.Name)
	}
	return nil
}

// ParseOffset converts "+02:00" into seconds east of UTC.
func ParseOffset(s string) (int, error) {
	if len(s) != 6 || (s[0] != '+' && s[0] != '-') || s[3] != ':' {
		return 0, fmt.Errorf("invalid UTC offset %q, want ±HH:MM", s)
	}
	hours, err := strconv.Atoi(s[1:3])
	if err != nil {
		return 0, fmt.Errorf("invalid UTC offset %q: %w", s, err)
	}
	minutes, err := strconv.Atoi(s[4:6])
	if err != nil {
		return 0, fmt.Errorf("invalid UTC offset %q: %w", s, err)
	}
	if hours > 14 || minutes > 59 {
		return 0, fmt.Errorf("invalid UTC offset %q: out of range", s)
	}
	secs := hours*3600 + minutes*60
	if strings.HasPrefix(s, "-") {
		secs = -secs
	}
	return secs, nil
}

package normalize

import (
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/cleared-dev/tx2actual/internal/dialect"
	"github.com/cleared-dev/tx2actual/internal/model"
)

// Filter applies a dialect's inclusion predicates.
type Filter struct {
	predicates []dialect.Predicate
}

// NewFilter keeps the predicates whose toggle is not switched off.
func NewFilter(predicates []dialect.Predicate, disabled map[string]bool) *Filter {
	var active []dialect.Predicate
	for _, p := range predicates {
		if p.Toggle != "" && disabled[p.Toggle] {
			continue
		}
		active = append(active, p)
	}
	return &Filter{predicates: active}
}

// Keep reports whether row passes every predicate. When it does not, the
// offending column is returned.
func (f *Filter) Keep(row model.RawRow) (bool, string) {
	for _, p := range f.predicates {
		if !slices.Contains(p.OneOf, strings.TrimSpace(row.Text(p.Column))) {
			return false, p.Column
		}
	}
	return true, ""
}

// Cutoff is an exclusive upper bound on the transaction day.
// The zero value keeps everything.
type Cutoff struct {
	day string
}

// ParseCutoff validates a YYYY-MM-DD cutoff. An empty string means no cutoff.
func ParseCutoff(s string) (Cutoff, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return Cutoff{}, nil
	}
	if _, err := time.Parse("2006-01-02", s); err != nil {
		return Cutoff{}, fmt.Errorf("invalid cutoff %q, want YYYY-MM-DD: %w", s, err)
	}
	return Cutoff{day: s}, nil
}

// IsSet reports whether a cutoff was given.
func (c Cutoff) IsSet() bool { return c.day != "" }

func (c Cutoff) String() string { return c.day }

// Keep reports whether a canonical date falls strictly before the cutoff.
// Canonical dates are zero-padded and year-first, so comparing the day
// prefix as a string orders them correctly.
func (c Cutoff) Keep(date string) bool {
	if c.day == "" {
		return true
	}
	prefix := date
	if len(prefix) > len(c.day) {
		prefix = prefix[:len(c.day)]
	}
	return prefix < c.day
}

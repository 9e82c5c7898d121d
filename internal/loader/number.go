package loader

import (
	"regexp"
	"strings"

	"github.com/shopspring/decimal"
)

// NumberFormat recognizes numbers written in a given locale.
type NumberFormat struct {
	decimal   string
	thousands string
	pattern   *regexp.Regexp
}

// NewNumberFormat builds a NumberFormat for the given separators.
// An empty thousands separator means digits are never grouped.
func NewNumberFormat(decimalSep, thousandsSep string) *NumberFormat {
	d := regexp.QuoteMeta(decimalSep)
	var intPart string
	if thousandsSep == "" {
		intPart = `\d+`
	} else {
		intPart = `(?:\d{1,3}(?:` + regexp.QuoteMeta(thousandsSep) + `\d{3})+|\d+)`
	}
	return &NumberFormat{
		decimal:   decimalSep,
		thousands: thousandsSep,
		pattern:   regexp.MustCompile(`^[+-]?` + intPart + `(?:` + d + `\d+)?$`),
	}
}

// Parse converts s to a decimal when it looks like a number in this locale.
func (f *NumberFormat) Parse(s string) (decimal.Decimal, bool) {
	s = strings.TrimSpace(s)
	if !f.pattern.MatchString(s) {
		return decimal.Zero, false
	}
	if f.thousands != "" {
		s = strings.ReplaceAll(s, f.thousands, "")
	}
	s = strings.Replace(s, f.decimal, ".", 1)
	s = strings.TrimPrefix(s, "+")
	n, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, false
	}
	return n, true
}

package normalize

import (
	"regexp"
	"strings"

	"github.com/cleared-dev/tx2actual/internal/dialect"
)

// referenceSeparator precedes the bank's internal reference code.
const referenceSeparator = "\n\n\n"

var (
	trailingDate = regexp.MustCompile(`\d{2}/\d{2}$`)
	cardPrefix   = regexp.MustCompile(`^X\d{4}`)
)

// CleanPayee strips boilerplate and trailing fragments from a label.
// Rules are reapplied until nothing changes, so the result is stable under
// another call.
func CleanPayee(label string, spec dialect.PayeeSpec) string {
	s := label
	for {
		next := cleanOnce(s, spec)
		if next == s {
			return s
		}
		s = next
	}
}

// Boilerplate must go first: it often sits between the date and card fragments.
func cleanOnce(s string, spec dialect.PayeeSpec) string {
	for _, phrase := range spec.Boilerplate {
		if phrase == "" {
			continue
		}
		s = strings.TrimSpace(strings.ReplaceAll(s, phrase, ""))
	}
	if spec.StripReference {
		if i := strings.Index(s, referenceSeparator); i >= 0 {
			s = s[:i]
		}
	}
	if spec.StripTrailingDate {
		s = strings.TrimSpace(trailingDate.ReplaceAllString(s, ""))
	}
	if spec.StripCardPrefix {
		s = strings.TrimSpace(cardPrefix.ReplaceAllString(s, ""))
	}
	return strings.TrimSpace(s)
}

// Package logging builds the process logger.
package logging

import (
	"fmt"
	"io"

	"github.com/charmbracelet/log"
)

// Prefix tags every log line.
const Prefix = "tx2actual"

// New returns a logger writing to w at the named level
// (debug, info, warn, error, fatal).
func New(w io.Writer, level string) (*log.Logger, error) {
	lvl, err := log.ParseLevel(level)
	if err != nil {
		return nil, fmt.Errorf("invalid log level %q: %w", level, err)
	}
	return log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		Prefix:          Prefix,
		Level:           lvl,
	}), nil
}

package loader

import "fmt"

// MalformedInputError reports a file that cannot be decoded or does not
// match the layout its dialect declares.
type MalformedInputError struct {
	Path   string
	Line   int // 0 when the problem is not tied to a line
	Reason string
	Err    error
}

func (e *MalformedInputError) Error() string {
	msg := e.Path
	if e.Line > 0 {
		msg = fmt.Sprintf("%s:%d", msg, e.Line)
	}
	msg = fmt.Sprintf("malformed input %s: %s", msg, e.Reason)
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *MalformedInputError) Unwrap() error { return e.Err }

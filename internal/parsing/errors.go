package parsing

import "fmt"

// ParseError represents model output that could not be decoded as JSON even
// after the documented repairs. RawPrefix holds the start of the original,
// unrepaired text for trusted logs; it must not be sent to clients.
type ParseError struct {
	Message   string
	RawPrefix string
	Cause     error
}

func (e *ParseError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("parse error: %s: %v", e.Message, e.Cause)
	}
	return fmt.Sprintf("parse error: %s", e.Message)
}

func (e *ParseError) Unwrap() error {
	return e.Cause
}

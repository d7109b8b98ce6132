package dim

import "fmt"

// MismatchError reports two dimensions that were required to be equal.
type MismatchError struct {
	Expected Dimension
	Found    Dimension
}

func (e *MismatchError) Error() string {
	return fmt.Sprintf("dimension mismatch: expected %s, found %s", e.Expected, e.Found)
}

// ParseError reports a malformed unit expression.
type ParseError struct {
	Input   string
	Offset  int
	Message string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("parse unit expression %q at offset %d: %s", e.Input, e.Offset, e.Message)
}

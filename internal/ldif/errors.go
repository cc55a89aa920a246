package ldif

import (
	"errors"
	"fmt"
)

// LDIF parse errors.
var (
	ErrInvalidBase64      = errors.New("invalid base64 value")
	ErrOrphanContinuation = errors.New("continuation line without a preceding line")
	ErrMissingSeparator   = errors.New("missing ':' after attribute type")
	ErrEmptyAttributeType = errors.New("empty attribute type")
)

// ParseError reports malformed LDIF input at a physical line.
type ParseError struct {
	Line int
	Err  error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("line %d: %v", e.Line, e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

package parse

import (
	"errors"
	"fmt"
)

var (
	ErrSyntax = errors.New("syntax error")
	// ErrExtra reports content after the first top-level value.
	ErrExtra = errors.New("extra content after document")
)

// SyntaxError carries the byte offset at which parsing failed.
type SyntaxError struct {
	Offset int64
	Msg    string
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("%v at offset %d: %s", ErrSyntax, e.Offset, e.Msg)
}

func (e *SyntaxError) Unwrap() error {
	return ErrSyntax
}

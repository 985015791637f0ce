package jsonval

import "errors"

var (
	// ErrEmpty reports an operation on a wrapper holding no value.
	ErrEmpty = errors.New("empty value")
	// ErrNotBinary reports a binary-only operation on a tree-backed
	// wrapper.
	ErrNotBinary = errors.New("value is not binary-backed")
	// ErrSizeExceeded reports rendered output beyond the configured
	// limit.
	ErrSizeExceeded = errors.New("output size exceeded")
)

package jpath

import "errors"

var (
	ErrPath = errors.New("invalid path expression")
)

package dom

import "errors"

var (
	// ErrDepth reports a document nested deeper than MaxDepth.
	ErrDepth = errors.New("document depth exceeded")
	// ErrNilNode reports a nil node handed to an attach point.
	ErrNilNode = errors.New("nil node")
	// ErrKind reports an operation applied to the wrong node kind.
	ErrKind = errors.New("wrong node kind")
)

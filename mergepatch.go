package jsonval

import (
	jsonpatch "github.com/evanphx/json-patch"

	"github.com/stratodb/jsonval/dom"
	"github.com/stratodb/jsonval/parse"
)

// MergePatch applies patch to doc with RFC 7386 semantics: object
// members are merged member-wise, a null member deletes, any non-object
// patch replaces the document. Both arguments may be tree- or
// binary-backed; the result is a fresh tree.
func MergePatch(doc, patch *Wrapper) (*dom.Node, error) {
	docText, err := doc.ToString()
	if err != nil {
		return nil, err
	}
	patchText, err := patch.ToString()
	if err != nil {
		return nil, err
	}
	out, err := jsonpatch.MergePatch([]byte(docText), []byte(patchText))
	if err != nil {
		return nil, err
	}
	return parse.Parse(out)
}

// Merge combines two wrapped documents with preserve semantics,
// returning a fresh tree and leaving both inputs untouched.
func Merge(a, b *Wrapper) (*dom.Node, error) {
	left, err := a.CloneDOM()
	if err != nil {
		return nil, err
	}
	right, err := b.CloneDOM()
	if err != nil {
		return nil, err
	}
	return dom.Merge(left, right)
}

package jsonval

import (
	"fmt"

	"github.com/stratodb/jsonval/debug"
	"github.com/stratodb/jsonval/jpath"
	"github.com/stratodb/jsonval/jsonbin"
)

// AttemptBinaryUpdate tries to splice newValue over the value at path
// inside a binary-backed wrapper without re-encoding the document.
//
// The parent container of the target is sought on all legs but the
// last; recursive descent and multi-match parents are not partially
// updatable. When the parent has enough reserved slack at the target
// element, the update runs as a shadow write: the original buffer is
// copied once, the new encoding spliced into the copy, and the wrapper
// re-viewed over it. The original buffer is never modified.
//
// applied reports whether the document state now reflects the update
// (including the trivial case of replacing an absent path under
// replaceOnly); a false applied means the caller must fall back to a
// full rebuild. pathExists reports whether path addressed an existing
// value.
func (w *Wrapper) AttemptBinaryUpdate(p *jpath.Path, newValue *Wrapper, replaceOnly bool) (applied, pathExists bool, err error) {
	if w.bin == nil {
		return false, false, ErrNotBinary
	}
	if w.binFmt == nil {
		return false, false, fmt.Errorf("%w: no format for update", ErrNotBinary)
	}
	if p.Len() < 1 || p.ContainsEllipsis() {
		return false, false, nil
	}
	if newValue.Empty() {
		return false, false, ErrEmpty
	}

	parent, pos, found, err := w.resolveUpdateTarget(p)
	if err != nil {
		return false, false, err
	}
	if !found {
		// nothing to replace; growing the document needs a rebuild
		return replaceOnly, false, nil
	}

	repl, err := newValue.CloneDOM()
	if err != nil {
		return false, false, err
	}
	needed, err := w.binFmt.SpaceNeeded(repl, parent.LargeFormat())
	if err != nil {
		return false, false, err
	}
	offset, ok := parent.HasSpace(pos, needed)
	if !ok {
		if debug.Update() {
			debug.Logf("update %s: %d bytes do not fit\n", p, needed)
		}
		return false, true, nil
	}

	shadow, err := w.shadowBuffer()
	if err != nil {
		return false, false, err
	}
	shadow, err = parent.UpdateInShadow(pos, repl, offset, needed, shadow)
	if err != nil {
		return false, false, err
	}
	return true, true, w.swapShadow(shadow)
}

// BinaryRemove erases the value at path in place, compacting its
// parent container in the shadow buffer. found reports whether the
// path addressed anything; an absent path is a no-op success.
func (w *Wrapper) BinaryRemove(p *jpath.Path) (found bool, err error) {
	if w.bin == nil {
		return false, ErrNotBinary
	}
	if w.binFmt == nil {
		return false, fmt.Errorf("%w: no format for remove", ErrNotBinary)
	}
	if p.Len() < 1 || p.ContainsEllipsis() {
		return false, nil
	}
	parent, pos, ok, err := w.resolveUpdateTarget(p)
	if err != nil || !ok {
		return false, err
	}
	shadow, err := w.shadowBuffer()
	if err != nil {
		return false, err
	}
	shadow, err = parent.RemoveInShadow(pos, shadow)
	if err != nil {
		return false, err
	}
	return true, w.swapShadow(shadow)
}

// resolveUpdateTarget seeks the parent container on all legs but the
// last, requiring exactly one match, and resolves the final leg to an
// element position inside it. A missing parent, a multi-match parent
// or a leg/kind mismatch reports not found.
func (w *Wrapper) resolveUpdateTarget(p *jpath.Path) (parent jsonbin.Value, pos int, found bool, err error) {
	legs := p.Legs()
	last := &legs[len(legs)-1]

	hits, err := w.Seek(p.Prefix(p.Len()-1), false)
	if err != nil {
		return nil, 0, false, err
	}
	if len(hits) != 1 || hits[0].bin == nil {
		return nil, 0, false, nil
	}
	parent = hits[0].bin

	switch last.Type {
	case jpath.MemberLeg:
		if parent.Type() != jsonbin.ObjectType {
			return nil, 0, false, nil
		}
		i := parent.LookupIndex(last.Member)
		if i >= parent.ElementCount() {
			return nil, 0, false, nil
		}
		return parent, i, true, nil
	case jpath.ArrayCellLeg:
		if parent.Type() != jsonbin.ArrayType {
			return nil, 0, false, nil
		}
		i, ok := last.Cell.Position(parent.ElementCount())
		if !ok {
			return nil, 0, false, nil
		}
		return parent, i, true, nil
	}
	// wildcards and ranges never resolve to a single element
	return nil, 0, false, nil
}

// shadowBuffer returns the private mutable copy of the document
// buffer, created from the original encoding on the first partial
// update.
func (w *Wrapper) shadowBuffer() ([]byte, error) {
	if w.shadow != nil {
		return w.shadow, nil
	}
	raw, err := w.bin.RawBinary()
	if err != nil {
		return nil, err
	}
	shadow := make([]byte, len(raw))
	copy(shadow, raw)
	return shadow, nil
}

// swapShadow re-views the wrapper over the updated buffer. The swap
// happens only after a fully successful update, so a failed attempt
// never leaves a half-written document visible.
func (w *Wrapper) swapShadow(shadow []byte) error {
	v, err := w.binFmt.Parse(shadow)
	if err != nil {
		return err
	}
	w.bin = v
	w.shadow = shadow
	w.domCache = nil
	return nil
}

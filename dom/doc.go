// Package dom is the mutable tree representation of a JSON document.
//
// A document is a tree of Node values. Nodes form a tagged union over
// the scalar kinds (null, bool, signed/unsigned integer, double, exact
// decimal, string, temporal, opaque) and the two containers (array,
// object). A container owns its children exclusively; children carry a
// non-owning Parent reference used to reconstruct their location. No
// node may sit under two parents, so every attach point either takes
// ownership of a detached node or clones.
//
// Objects iterate deterministically: members are kept sorted by key,
// shorter keys first, ties broken bytewise.
//
// The package also houses the structural algorithms that only make
// sense on the tree: per-leg path expansion and seeking (find.go),
// location reconstruction (location.go) and preserve-semantics merging
// (merge.go).
package dom

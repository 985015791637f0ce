package parse

// Handler receives the token events of one JSON document. Each method
// returns false to stop the walk; the driver then fails with whatever
// error the handler reports through its own state.
//
// The event stream for a well-formed document is: scalars fire exactly
// one event, objects fire StartObject, then per member a Key followed
// by the member value's events, then EndObject; arrays fire StartArray,
// element events, EndArray.
type Handler interface {
	Null() bool
	Bool(v bool) bool
	Int(v int64) bool
	Uint(v uint64) bool
	Double(v float64) bool
	// RawNumber carries a numeric literal verbatim for handlers that
	// keep exact precision.
	RawNumber(s string) bool
	String(s string) bool
	Key(s string) bool
	StartObject() bool
	EndObject() bool
	StartArray() bool
	EndArray() bool
}

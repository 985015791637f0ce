package jsonval

type encState struct {
	pretty  bool
	maxSize int
	colors  *Colors
}

type EncodeOption func(*encState)

// EncodePretty switches to the indented multi-line form.
func EncodePretty(v bool) EncodeOption {
	return func(es *encState) { es.pretty = v }
}

// EncodeMaxSize caps the rendered output; exceeding it aborts with
// ErrSizeExceeded. Zero means no cap.
func EncodeMaxSize(n int) EncodeOption {
	return func(es *encState) { es.maxSize = n }
}

// EncodeColors renders with ANSI colors, for terminal display only.
func EncodeColors(c *Colors) EncodeOption {
	return func(es *encState) { es.colors = c }
}

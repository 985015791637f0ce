package parse

type parseOpts struct {
	numbersAsDouble bool
}

type ParseOption func(*parseOpts)

// NumbersAsDouble makes every numeric literal parse as a double
// instead of keeping exact integer or decimal values.
func NumbersAsDouble() ParseOption {
	return func(o *parseOpts) { o.numbersAsDouble = true }
}

package bytestream

import "github.com/pkg/errors"

// The error kinds every stream operation reports its failures through.
// Each failure is the kind wrapped with call context, so callers can
// dispatch on errors.Cause (or errors.Is) while still seeing what the
// offending call was doing.
var (
	// ErrType reports an input of the wrong kind, such as an
	// unsupported source passed to construction or append.
	ErrType = errors.New("bytestream: unsupported input type")

	// ErrOverflow reports a numeric value outside the declared range
	// of the typed accessor it was passed to.
	ErrOverflow = errors.New("bytestream: value out of range")

	// ErrIO reports an attempt to read beyond the available bytes, or
	// an invalid negative read length.
	ErrIO = errors.New("bytestream: read past end of stream")

	// ErrValue reports an invalid argument, such as an unrecognized
	// endianness code or a negative peek size.
	ErrValue = errors.New("bytestream: invalid value")
)

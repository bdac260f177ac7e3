package box

import "errors"

// These errors are returned by the box, variant and rangeset packages and
// can be checked with errors.Is.
var (
	// ErrInvalidInput is returned for malformed tokens, unparseable or
	// non-finite values and empty input.
	ErrInvalidInput = errors.New("invalid input")

	// ErrTypeMismatch is returned when values of different domains are mixed.
	ErrTypeMismatch = errors.New("type mismatch")

	// ErrBoundary is returned when a value has no successor or predecessor.
	ErrBoundary = errors.New("domain boundary")
)

package rangeset

import "github.com/henderiw/rangeset/pkg/box"

// Errors returned by this package, usable with errors.Is.
var (
	ErrInvalidInput = box.ErrInvalidInput
	ErrTypeMismatch = box.ErrTypeMismatch
	ErrBoundary     = box.ErrBoundary
)

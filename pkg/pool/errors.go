package pool

import "errors"

// Pool errors can be checked with errors.Is.
var (
	// ErrOutOfRange is returned for values outside the pool range.
	ErrOutOfRange = errors.New("pool: value out of range")

	// ErrClaimed is returned when claiming a value that is already claimed.
	ErrClaimed = errors.New("pool: value already claimed")

	// ErrNotClaimed is returned when reading or releasing a free value.
	ErrNotClaimed = errors.New("pool: value not claimed")

	// ErrReserved is returned when releasing or updating a reserved value.
	ErrReserved = errors.New("pool: value is reserved")

	// ErrExhausted is returned when no free value is left.
	ErrExhausted = errors.New("pool: no free value")
)

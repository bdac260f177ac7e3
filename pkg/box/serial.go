package box

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Serial is a non-negative integer value. Zero is the floor of the domain.
type Serial int64

// NewSerial validates v and returns it as a Serial.
func NewSerial(v int64) (Serial, error) {
	if v < 0 {
		return 0, fmt.Errorf("%w: serial %d is negative", ErrInvalidInput, v)
	}
	return Serial(v), nil
}

// ParseSerial parses an unsigned decimal number.
func ParseSerial(s string) (Serial, error) {
	s = strings.TrimSpace(s)
	if s == "" || s[0] < '0' || s[0] > '9' {
		return 0, fmt.Errorf("%w: %q is not a serial number", ErrInvalidInput, s)
	}
	i, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: %q is not a serial number", ErrInvalidInput, s)
	}
	return Serial(i), nil
}

func (s Serial) Kind() Kind { return KindSerial }

func (s Serial) Compare(other Box) int {
	mustKind(s, other)
	return cmpInt64(int64(s), int64(other.(Serial)))
}

func (s Serial) Next() (Box, error) {
	if s == math.MaxInt64 {
		return nil, fmt.Errorf("%w: serial %d has no successor", ErrBoundary, s)
	}
	return s + 1, nil
}

func (s Serial) Prev() (Box, error) {
	if s == 0 {
		return nil, fmt.Errorf("%w: serial 0 has no predecessor", ErrBoundary)
	}
	return s - 1, nil
}

func (s Serial) String() string { return strconv.FormatInt(int64(s), 10) }

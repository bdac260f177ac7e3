package box

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Integer is a signed 64 bit integer value.
type Integer int64

// ParseInteger parses a decimal integer with an optional sign.
func ParseInteger(s string) (Integer, error) {
	s = strings.TrimSpace(s)
	i, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: %q is not an integer", ErrInvalidInput, s)
	}
	return Integer(i), nil
}

func (i Integer) Kind() Kind { return KindInteger }

func (i Integer) Compare(other Box) int {
	mustKind(i, other)
	return cmpInt64(int64(i), int64(other.(Integer)))
}

func (i Integer) Next() (Box, error) {
	if i == math.MaxInt64 {
		return nil, fmt.Errorf("%w: integer %d has no successor", ErrBoundary, i)
	}
	return i + 1, nil
}

func (i Integer) Prev() (Box, error) {
	if i == math.MinInt64 {
		return nil, fmt.Errorf("%w: integer %d has no predecessor", ErrBoundary, i)
	}
	return i - 1, nil
}

func (i Integer) String() string { return strconv.FormatInt(int64(i), 10) }

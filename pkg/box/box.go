package box

import (
	"fmt"
	"math"
	"net/netip"
)

// Kind identifies the value domain of a Box.
type Kind string

const (
	KindInteger     Kind = "integer"
	KindSerial      Kind = "serial"
	KindDigitString Kind = "digitstring"
	KindIPv4        Kind = "ipv4"
)

// Box wraps a single value of an ordered, discrete domain.
type Box interface {
	Kind() Kind
	// Compare returns -1, 0 or +1 when the box sorts before, equal to or
	// after other. Both boxes must be of the same Kind.
	Compare(other Box) int
	// Next returns the successor of the box, or an error wrapping
	// ErrBoundary when the box is the last value of its domain.
	Next() (Box, error)
	// Prev returns the predecessor of the box, or an error wrapping
	// ErrBoundary when the box is the first value of its domain.
	Prev() (Box, error)
	String() string
}

// Bounded is anything with an inclusive envelope. A Box is its own
// envelope; a range exposes its start and end.
type Bounded interface {
	Bounds() (lo, hi Box)
}

// From reads x as a value of kind k. Boxes must already be of kind k.
// Strings are parsed with the grammar of k, Go integers become integer and
// serial values and netip.Addr becomes an ipv4 value.
func From(k Kind, x any) (Box, error) {
	switch v := x.(type) {
	case nil:
		return nil, fmt.Errorf("%w: nil value", ErrInvalidInput)
	case Box:
		if v.Kind() != k {
			return nil, fmt.Errorf("%w: %s value %s is not %s", ErrTypeMismatch, v.Kind(), v, k)
		}
		return v, nil
	case string:
		return parseKind(k, v)
	case netip.Addr:
		if k != KindIPv4 {
			return nil, fmt.Errorf("%w: address %s is not %s", ErrTypeMismatch, v, k)
		}
		return boxed(NewIPv4(v))
	}
	n, ok, err := asInt64(x)
	if !ok {
		return nil, fmt.Errorf("%w: %T is not %s", ErrTypeMismatch, x, k)
	}
	if err != nil {
		return nil, err
	}
	switch k {
	case KindInteger:
		return Integer(n), nil
	case KindSerial:
		return boxed(NewSerial(n))
	}
	return nil, fmt.Errorf("%w: number %d is not %s", ErrTypeMismatch, n, k)
}

// Envelope returns the bounds of x read as values of kind k. Boxes and raw
// values are single points.
func Envelope(k Kind, x any) (Box, Box, error) {
	if b, ok := x.(Bounded); ok {
		lo, hi := b.Bounds()
		if lo.Kind() != k || hi.Kind() != k {
			return nil, nil, fmt.Errorf("%w: %s bounds are not %s", ErrTypeMismatch, lo.Kind(), k)
		}
		return lo, hi, nil
	}
	b, err := From(k, x)
	if err != nil {
		return nil, nil, err
	}
	return b, b, nil
}

// The comparison helpers below read x with Envelope. An x that cannot be
// read as a value of b's kind is neither equal to, greater nor less than b.

// Equal reports whether b equals x. When x is a range, it is only equal
// when it collapses to the single point b.
func Equal(b Box, x any) bool {
	lo, hi, err := Envelope(b.Kind(), x)
	if err != nil {
		return false
	}
	return b.Compare(lo) == 0 && b.Compare(hi) == 0
}

// Greater reports whether b sorts after x (after its end when x is a range).
func Greater(b Box, x any) bool {
	_, hi, err := Envelope(b.Kind(), x)
	if err != nil {
		return false
	}
	return b.Compare(hi) > 0
}

// Less reports whether b sorts before x (before its start when x is a range).
func Less(b Box, x any) bool {
	lo, _, err := Envelope(b.Kind(), x)
	if err != nil {
		return false
	}
	return b.Compare(lo) < 0
}

func GreaterOrEqual(b Box, x any) bool { return Greater(b, x) || Equal(b, x) }

func LessOrEqual(b Box, x any) bool { return Less(b, x) || Equal(b, x) }

// Min returns the lesser of a and b.
func Min(a, b Box) Box {
	if a.Compare(b) <= 0 {
		return a
	}
	return b
}

// Max returns the greater of a and b.
func Max(a, b Box) Box {
	if a.Compare(b) >= 0 {
		return a
	}
	return b
}

func mustKind(b Box, other Box) {
	if b.Kind() != other.Kind() {
		panic(fmt.Sprintf("box: cannot compare %s with %s", b.Kind(), other.Kind()))
	}
}

func cmpInt64(a, b int64) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	}
	return 0
}

func parseKind(k Kind, s string) (Box, error) {
	switch k {
	case KindInteger:
		return boxed(ParseInteger(s))
	case KindSerial:
		return boxed(ParseSerial(s))
	case KindDigitString:
		return boxed(ParseDigitString(s))
	case KindIPv4:
		return boxed(ParseIPv4(s))
	}
	return nil, fmt.Errorf("%w: unknown kind %q", ErrInvalidInput, k)
}

func boxed[T Box](b T, err error) (Box, error) {
	if err != nil {
		return nil, err
	}
	return b, nil
}

// asInt64 converts Go integer types. ok is false for anything else.
func asInt64(x any) (n int64, ok bool, err error) {
	switch v := x.(type) {
	case int:
		return int64(v), true, nil
	case int8:
		return int64(v), true, nil
	case int16:
		return int64(v), true, nil
	case int32:
		return int64(v), true, nil
	case int64:
		return v, true, nil
	case uint:
		return fromUint(uint64(v))
	case uint8:
		return int64(v), true, nil
	case uint16:
		return int64(v), true, nil
	case uint32:
		return int64(v), true, nil
	case uint64:
		return fromUint(v)
	}
	return 0, false, nil
}

func fromUint(v uint64) (int64, bool, error) {
	if v > math.MaxInt64 {
		return 0, true, fmt.Errorf("%w: %d overflows int64", ErrInvalidInput, v)
	}
	return int64(v), true, nil
}

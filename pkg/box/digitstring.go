package box

import (
	"fmt"
	"strconv"
	"strings"
)

const (
	// MaxDigits is the longest digit run of an unprefixed digit string.
	MaxDigits = 16
	// MaxPrefixedDigits is the longest digit run after a prefix tag.
	MaxPrefixedDigits = 15
)

// DigitString is a fixed-width, zero-padded decimal identifier with an
// optional one-character prefix tag ('*' or '#'). The prefix and width are
// part of the identity: "*010" and "0010" are different values.
//
// Ordering is by prefix first (* < # < none), then by width, then by
// numeric value.
//
// The width never changes: Next of "99" fails with ErrBoundary instead of
// widening to "100", so "98..100" is not a valid range and "99" and "100"
// are never adjacent.
type DigitString struct {
	prefix byte
	digits uint8
	num    uint64
}

// ParseDigitString parses s as a digit string.
func ParseDigitString(s string) (DigitString, error) {
	s = strings.TrimSpace(s)
	var d DigitString
	if s == "" {
		return d, fmt.Errorf("%w: empty digit string", ErrInvalidInput)
	}
	body, max := s, MaxDigits
	if s[0] == '*' || s[0] == '#' {
		d.prefix = s[0]
		body, max = s[1:], MaxPrefixedDigits
	}
	if len(body) == 0 || len(body) > max {
		return d, fmt.Errorf("%w: %q is not a digit string", ErrInvalidInput, s)
	}
	for i := 0; i < len(body); i++ {
		if body[i] < '0' || body[i] > '9' {
			return d, fmt.Errorf("%w: %q is not a digit string", ErrInvalidInput, s)
		}
	}
	num, err := strconv.ParseUint(body, 10, 64)
	if err != nil {
		return d, fmt.Errorf("%w: %q is not a digit string", ErrInvalidInput, s)
	}
	d.digits = uint8(len(body))
	d.num = num
	return d, nil
}

// Prefix returns the prefix tag, or 0 when there is none.
func (d DigitString) Prefix() byte { return d.prefix }

// Width returns the number of digits, excluding the prefix.
func (d DigitString) Width() int { return int(d.digits) }

// Numeric returns the numeric value of the digits.
func (d DigitString) Numeric() uint64 { return d.num }

// SameFormat reports whether d and other share prefix and width.
func (d DigitString) SameFormat(other DigitString) bool {
	return d.prefix == other.prefix && d.digits == other.digits
}

func (d DigitString) Kind() Kind { return KindDigitString }

func (d DigitString) Compare(other Box) int {
	mustKind(d, other)
	o := other.(DigitString)
	if c := cmpInt64(prefixRank(d.prefix), prefixRank(o.prefix)); c != 0 {
		return c
	}
	if c := cmpInt64(int64(d.digits), int64(o.digits)); c != 0 {
		return c
	}
	switch {
	case d.num < o.num:
		return -1
	case d.num > o.num:
		return 1
	}
	return 0
}

func (d DigitString) Next() (Box, error) {
	if d.num == maxForWidth(d.digits) {
		return nil, fmt.Errorf("%w: digit string %s has no successor", ErrBoundary, d)
	}
	d.num++
	return d, nil
}

func (d DigitString) Prev() (Box, error) {
	if d.num == 0 {
		return nil, fmt.Errorf("%w: digit string %s has no predecessor", ErrBoundary, d)
	}
	d.num--
	return d, nil
}

func (d DigitString) String() string {
	s := fmt.Sprintf("%0*d", int(d.digits), d.num)
	if d.prefix != 0 {
		return string(d.prefix) + s
	}
	return s
}

// *123 < #123 < 123
func prefixRank(p byte) int64 {
	switch p {
	case '*':
		return 0
	case '#':
		return 1
	}
	return 2
}

func maxForWidth(digits uint8) uint64 {
	m := uint64(0)
	for i := uint8(0); i < digits; i++ {
		m = m*10 + 9
	}
	return m
}

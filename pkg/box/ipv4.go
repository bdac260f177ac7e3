package box

import (
	"encoding/binary"
	"fmt"
	"net/netip"
	"strings"
)

// IPv4 is a single IPv4 address.
type IPv4 struct {
	addr netip.Addr
}

// NewIPv4 wraps addr, which must be an IPv4 address.
func NewIPv4(addr netip.Addr) (IPv4, error) {
	if !addr.Is4() {
		return IPv4{}, fmt.Errorf("%w: %s is not an ipv4 address", ErrInvalidInput, addr)
	}
	return IPv4{addr: addr}, nil
}

// ParseIPv4 parses a dotted quad.
func ParseIPv4(s string) (IPv4, error) {
	addr, err := netip.ParseAddr(strings.TrimSpace(s))
	if err != nil {
		return IPv4{}, fmt.Errorf("%w: %q is not an ip address", ErrInvalidInput, s)
	}
	return NewIPv4(addr)
}

// Addr returns the wrapped address.
func (a IPv4) Addr() netip.Addr { return a.addr }

// Uint32 returns the address as a big endian integer.
func (a IPv4) Uint32() uint32 {
	b := a.addr.As4()
	return binary.BigEndian.Uint32(b[:])
}

func (a IPv4) Kind() Kind { return KindIPv4 }

func (a IPv4) Compare(other Box) int {
	mustKind(a, other)
	return a.addr.Compare(other.(IPv4).addr)
}

func (a IPv4) Next() (Box, error) {
	next := a.addr.Next()
	if !next.IsValid() {
		return nil, fmt.Errorf("%w: %s has no successor", ErrBoundary, a.addr)
	}
	return IPv4{addr: next}, nil
}

func (a IPv4) Prev() (Box, error) {
	prev := a.addr.Prev()
	if !prev.IsValid() {
		return nil, fmt.Errorf("%w: %s has no predecessor", ErrBoundary, a.addr)
	}
	return IPv4{addr: prev}, nil
}

func (a IPv4) String() string { return a.addr.String() }

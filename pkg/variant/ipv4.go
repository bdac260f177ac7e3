package variant

import (
	"fmt"
	"net/netip"
	"regexp"
	"strings"

	"github.com/henderiw/rangeset/pkg/box"
	"go4.org/netipx"
)

const quad = `\d{1,3}(?:\.\d{1,3}){3}`

var ipv4Variant = &ipv4{grammar: grammar{
	name:      "ipv4",
	kind:      box.KindIPv4,
	delimiter: "-",
	patternRe: regexp.MustCompile(`^\s*` + quad + `\s*(?:-\s*` + quad + `)?\s*$`),
	rangeRe:   regexp.MustCompile(`^\s*(?P<start>` + quad + `)\s*-\s*(?P<end>` + quad + `)\s*$`),
	parseFn:   func(s string) (box.Box, error) { return box.ParseIPv4(s) },
}}

// IPv4 returns the IPv4 address variant: "10.0.0.1-10.0.0.9".
func IPv4() Variant { return ipv4Variant }

type ipv4 struct {
	grammar
}

func (v *ipv4) Parse(raw string) (box.Box, box.Box, error) {
	if !v.Validate(raw) {
		return nil, nil, fmt.Errorf("%w: %q is not a valid %s", box.ErrInvalidInput, raw, v.name)
	}
	if !strings.Contains(raw, "-") {
		return v.grammar.Parse(raw)
	}
	from, to, err := parseIPRange(raw)
	if err != nil {
		return nil, nil, err
	}
	start, err := box.NewIPv4(from)
	if err != nil {
		return nil, nil, err
	}
	end, err := box.NewIPv4(to)
	if err != nil {
		return nil, nil, err
	}
	return start, end, nil
}

func (v *ipv4) Wrap(x any) (box.Box, error) {
	switch a := x.(type) {
	case box.IPv4:
		return a, nil
	case netip.Addr:
		return box.NewIPv4(a)
	}
	return nil, mismatch(v.kind, x)
}

func (v *ipv4) Size(start, end box.Box) uint64 {
	return uint64(end.(box.IPv4).Uint32()) - uint64(start.(box.IPv4).Uint32()) + 1
}

// parseIPRange parses "a-b" with netipx, accepting the ends in either order.
func parseIPRange(raw string) (netip.Addr, netip.Addr, error) {
	h := strings.IndexByte(raw, '-')
	from := strings.TrimSpace(raw[:h])
	to := strings.TrimSpace(raw[h+1:])
	r, err := netipx.ParseIPRange(from + "-" + to)
	if err != nil {
		// netipx rejects descending ranges; retry swapped before giving up.
		r, err = netipx.ParseIPRange(to + "-" + from)
		if err != nil {
			return netip.Addr{}, netip.Addr{}, fmt.Errorf("%w: %q: %v", box.ErrInvalidInput, raw, err)
		}
	}
	if !r.From().Is4() {
		return netip.Addr{}, netip.Addr{}, fmt.Errorf("%w: %q is not an ipv4 range", box.ErrInvalidInput, raw)
	}
	return r.From(), r.To(), nil
}

// Prefixes returns the minimal list of CIDR prefixes covering [start, end].
func Prefixes(start, end box.Box) ([]netip.Prefix, error) {
	s, ok1 := start.(box.IPv4)
	e, ok2 := end.(box.IPv4)
	if !ok1 || !ok2 {
		return nil, fmt.Errorf("%w: prefixes need ipv4 values", box.ErrTypeMismatch)
	}
	r := netipx.IPRangeFrom(s.Addr(), e.Addr())
	if !r.IsValid() {
		return nil, fmt.Errorf("%w: %s-%s is not a valid range", box.ErrInvalidInput, s, e)
	}
	return r.Prefixes(), nil
}

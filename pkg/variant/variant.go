package variant

import (
	"fmt"
	"math"
	"regexp"
	"strings"

	"github.com/henderiw/rangeset/pkg/box"
)

// Variant is the capability set a value domain provides to the range set:
// its textual grammar, the delimiter used to print ranges, the conversion
// of native Go scalars and the size formula.
type Variant interface {
	Name() string
	Kind() box.Kind
	// Delimiter separates start and end when a range is printed.
	Delimiter() string
	// Validate reports whether raw is a well formed token of the grammar.
	Validate(raw string) bool
	// Parse converts a single token into its start and end values. A
	// scalar token returns the same box twice.
	Parse(raw string) (start, end box.Box, err error)
	// Wrap converts a native Go value (integers, floats, boxes) into a box.
	Wrap(v any) (box.Box, error)
	// CheckRange reports whether start and end may bound one range.
	CheckRange(start, end box.Box) error
	// Size returns the number of values in [start, end].
	Size(start, end box.Box) uint64
}

// grammar is the regexp driven part shared by all variants.
type grammar struct {
	name      string
	kind      box.Kind
	delimiter string
	patternRe *regexp.Regexp
	rangeRe   *regexp.Regexp
	parseFn   func(s string) (box.Box, error)
}

func (g *grammar) Name() string      { return g.name }
func (g *grammar) Kind() box.Kind    { return g.kind }
func (g *grammar) Delimiter() string { return g.delimiter }

func (g *grammar) Validate(raw string) bool {
	return raw != "" && g.patternRe.MatchString(raw)
}

func (g *grammar) Parse(raw string) (box.Box, box.Box, error) {
	if !g.Validate(raw) {
		return nil, nil, fmt.Errorf("%w: %q is not a valid %s", box.ErrInvalidInput, raw, g.name)
	}
	if m := g.rangeRe.FindStringSubmatch(raw); m != nil {
		start, err := g.parseFn(m[g.rangeRe.SubexpIndex("start")])
		if err != nil {
			return nil, nil, err
		}
		end, err := g.parseFn(m[g.rangeRe.SubexpIndex("end")])
		if err != nil {
			return nil, nil, err
		}
		return start, end, nil
	}
	b, err := g.parseFn(strings.TrimSpace(raw))
	if err != nil {
		return nil, nil, err
	}
	return b, b, nil
}

func (g *grammar) CheckRange(start, end box.Box) error {
	for _, b := range []box.Box{start, end} {
		if b == nil {
			return fmt.Errorf("%w: missing %s value", box.ErrInvalidInput, g.name)
		}
		if b.Kind() != g.kind {
			return fmt.Errorf("%w: %s value %s in a %s range", box.ErrTypeMismatch, b.Kind(), b, g.name)
		}
	}
	return nil
}

// Override returns v with its validation pattern replaced by pattern. The
// override only gates which tokens are accepted; parsing still follows the
// grammar of v.
func Override(v Variant, pattern *regexp.Regexp) Variant {
	if pattern == nil {
		return v
	}
	return &overridden{Variant: v, patternRe: pattern}
}

type overridden struct {
	Variant
	patternRe *regexp.Regexp
}

func (o *overridden) Validate(raw string) bool {
	return raw != "" && o.patternRe.MatchString(raw)
}

func (o *overridden) Parse(raw string) (box.Box, box.Box, error) {
	if !o.Validate(raw) {
		return nil, nil, fmt.Errorf("%w: %q does not match %s", box.ErrInvalidInput, raw, o.patternRe)
	}
	return o.Variant.Parse(raw)
}

// toInt64 converts the Go numeric kinds to an int64. Floats must be finite
// and integral.
func toInt64(v any) (int64, error) {
	switch n := v.(type) {
	case int:
		return int64(n), nil
	case int8:
		return int64(n), nil
	case int16:
		return int64(n), nil
	case int32:
		return int64(n), nil
	case int64:
		return n, nil
	case uint:
		return fromUint64(uint64(n))
	case uint8:
		return int64(n), nil
	case uint16:
		return int64(n), nil
	case uint32:
		return int64(n), nil
	case uint64:
		return fromUint64(n)
	case float32:
		return fromFloat64(float64(n))
	case float64:
		return fromFloat64(n)
	}
	return 0, fmt.Errorf("%w: unsupported value %v (%T)", box.ErrInvalidInput, v, v)
}

func fromUint64(n uint64) (int64, error) {
	if n > math.MaxInt64 {
		return 0, fmt.Errorf("%w: %d overflows int64", box.ErrInvalidInput, n)
	}
	return int64(n), nil
}

func fromFloat64(f float64) (int64, error) {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, fmt.Errorf("%w: %v is not finite", box.ErrInvalidInput, f)
	}
	if f != math.Trunc(f) || f < math.MinInt64 || f >= math.MaxInt64 {
		return 0, fmt.Errorf("%w: %v is not an integer", box.ErrInvalidInput, f)
	}
	return int64(f), nil
}

func mismatch(want box.Kind, v any) error {
	if b, ok := v.(box.Box); ok {
		return fmt.Errorf("%w: %s value %s in a %s set", box.ErrTypeMismatch, b.Kind(), b, want)
	}
	return fmt.Errorf("%w: unsupported %s value %v (%T)", box.ErrInvalidInput, want, v, v)
}

package rangeset

import (
	"fmt"

	"github.com/henderiw/rangeset/pkg/box"
	"github.com/henderiw/rangeset/pkg/variant"
)

// Range is a contiguous inclusive interval [start, end] of one variant.
type Range struct {
	v     variant.Variant
	start box.Box
	end   box.Box
}

// NewRange returns the range between start and end, swapping them when
// end sorts before start.
func NewRange(v variant.Variant, start, end box.Box) (Range, error) {
	if v == nil {
		return Range{}, fmt.Errorf("%w: range without a variant", ErrInvalidInput)
	}
	if err := v.CheckRange(start, end); err != nil {
		return Range{}, err
	}
	if start.Compare(end) > 0 {
		start, end = end, start
	}
	return Range{v: v, start: start, end: end}, nil
}

// ParseRange parses a single range token, "3..5" or "7" for integers.
func ParseRange(v variant.Variant, raw string) (Range, error) {
	start, end, err := v.Parse(raw)
	if err != nil {
		return Range{}, err
	}
	return NewRange(v, start, end)
}

func (r Range) Start() box.Box             { return r.start }
func (r Range) End() box.Box               { return r.end }
func (r Range) Bounds() (box.Box, box.Box) { return r.start, r.end }
func (r Range) Variant() variant.Variant   { return r.v }

// Size returns the number of values in the range.
func (r Range) Size() uint64 { return r.v.Size(r.start, r.end) }

func (r Range) Equal(other Range) bool {
	return r.start.Compare(other.start) == 0 && r.end.Compare(other.end) == 0
}

// Contains reports whether every value of x lies within r.
func (r Range) Contains(x box.Bounded) bool {
	lo, hi := x.Bounds()
	return box.LessOrEqual(r.start, lo) && box.GreaterOrEqual(r.end, hi)
}

// Overlaps reports whether r and x share at least one value.
func (r Range) Overlaps(x box.Bounded) bool {
	return !box.Greater(r.start, x) && !box.Less(r.end, x)
}

// Adjacent reports whether x starts right after r ends or ends right before
// r starts. A domain edge is never adjacent to anything.
func (r Range) Adjacent(x box.Bounded) bool {
	lo, hi := x.Bounds()
	if next, err := r.end.Next(); err == nil && next.Compare(lo) == 0 {
		return true
	}
	if next, err := hi.Next(); err == nil && next.Compare(r.start) == 0 {
		return true
	}
	return false
}

// RelatedTo reports whether r and x must merge: they overlap, touch or
// one contains the other.
func (r Range) RelatedTo(x box.Bounded) bool {
	return r.Overlaps(x) || r.Contains(x) || containedIn(r, x) || r.Adjacent(x)
}

func containedIn(r Range, x box.Bounded) bool {
	lo, hi := x.Bounds()
	return lo.Compare(r.start) <= 0 && hi.Compare(r.end) >= 0
}

// Absorb extends r outward to cover x. It never shrinks r.
func (r *Range) Absorb(x box.Bounded) {
	lo, hi := x.Bounds()
	r.start = box.Min(r.start, lo)
	r.end = box.Max(r.end, hi)
}

// Remove returns what is left of r once the values of x are taken out:
// nothing, r itself, one trimmed range or two ranges around a gap.
func (r Range) Remove(x box.Bounded) ([]Range, error) {
	if !r.Overlaps(x) {
		return []Range{r}, nil
	}
	lo, hi := x.Bounds()
	var remnants []Range
	if r.start.Compare(lo) < 0 {
		prev, err := lo.Prev()
		if err != nil {
			return nil, err
		}
		remnants = append(remnants, Range{v: r.v, start: r.start, end: prev})
	}
	if r.end.Compare(hi) > 0 {
		next, err := hi.Next()
		if err != nil {
			return nil, err
		}
		remnants = append(remnants, Range{v: r.v, start: next, end: r.end})
	}
	return remnants, nil
}

// By returns an iterator over every value of r in ascending order.
func (r Range) By() *Iterator {
	return newIterator([]Range{r})
}

func (r Range) String() string {
	if r.start.Compare(r.end) == 0 {
		return r.start.String()
	}
	return r.start.String() + r.v.Delimiter() + r.end.String()
}

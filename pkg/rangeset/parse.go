package rangeset

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/henderiw/rangeset/pkg/box"
)

var separatorRe = regexp.MustCompile(`\s*[,;]\s*`)

// parse converts every value into ranges of the set's variant. Nothing is
// returned unless all values are valid.
//
// Accepted values are strings (single tokens or comma/semicolon separated
// lists), Go numbers, boxes, Range and *Range, *RangeSet and slices of any
// of these.
func (r *RangeSet) parse(values []any) ([]Range, error) {
	var ranges []Range
	for _, v := range values {
		if err := r.collect(v, &ranges); err != nil {
			return nil, err
		}
	}
	return ranges, nil
}

func (r *RangeSet) collect(v any, ranges *[]Range) error {
	switch x := v.(type) {
	case nil:
		return fmt.Errorf("%w: nil value", ErrInvalidInput)
	case string:
		return r.collectString(x, ranges)
	case Range:
		return r.collectRange(x, ranges)
	case *Range:
		if x == nil {
			return fmt.Errorf("%w: nil range", ErrInvalidInput)
		}
		return r.collectRange(*x, ranges)
	case *RangeSet:
		if x == nil {
			return fmt.Errorf("%w: nil range set", ErrInvalidInput)
		}
		if x.variant.Kind() != r.variant.Kind() {
			return fmt.Errorf("%w: cannot mix %s set into %s set", ErrTypeMismatch, x.variant.Name(), r.variant.Name())
		}
		*ranges = append(*ranges, x.entries...)
		return nil
	case []any:
		return collectSlice(r, x, ranges)
	case []string:
		return collectSlice(r, x, ranges)
	case []int:
		return collectSlice(r, x, ranges)
	case []int64:
		return collectSlice(r, x, ranges)
	case []box.Box:
		return collectSlice(r, x, ranges)
	case []Range:
		return collectSlice(r, x, ranges)
	}
	b, err := r.variant.Wrap(v)
	if err != nil {
		return err
	}
	*ranges = append(*ranges, Range{v: r.variant, start: b, end: b})
	return nil
}

func collectSlice[T any](r *RangeSet, values []T, ranges *[]Range) error {
	for _, v := range values {
		if err := r.collect(v, ranges); err != nil {
			return err
		}
	}
	return nil
}

func (r *RangeSet) collectString(s string, ranges *[]Range) error {
	trimmed := strings.TrimSpace(s)
	if trimmed == "" {
		return fmt.Errorf("%w: empty value", ErrInvalidInput)
	}
	if tokens := separatorRe.Split(trimmed, -1); len(tokens) > 1 {
		for _, token := range tokens {
			if err := r.collectString(token, ranges); err != nil {
				return err
			}
		}
		return nil
	}
	rng, err := ParseRange(r.variant, trimmed)
	if err != nil {
		return err
	}
	*ranges = append(*ranges, rng)
	return nil
}

func (r *RangeSet) collectRange(rng Range, ranges *[]Range) error {
	if rng.v == nil {
		return fmt.Errorf("%w: zero range", ErrInvalidInput)
	}
	if rng.v.Kind() != r.variant.Kind() {
		return fmt.Errorf("%w: cannot mix %s range into %s set", ErrTypeMismatch, rng.v.Name(), r.variant.Name())
	}
	rng.v = r.variant
	*ranges = append(*ranges, rng)
	return nil
}

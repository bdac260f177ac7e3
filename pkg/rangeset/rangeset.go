package rangeset

import (
	"slices"
	"strings"

	"github.com/henderiw/rangeset/pkg/variant"
)

// RangeSet is an ordered set of disjoint, non adjacent ranges of one
// variant. Every mutation keeps the entries maximally merged, so String
// always returns the canonical form.
//
// A RangeSet is not safe for concurrent use.
type RangeSet struct {
	cfg     Config
	variant variant.Variant
	sep     string
	entries []Range
	size    uint64
}

// New validates cfg and returns a set holding cfg.Values.
func New(cfg Config) (*RangeSet, error) {
	v, err := cfg.resolve()
	if err != nil {
		return nil, err
	}
	cfg.Values = slices.Clone(cfg.Values)
	r := &RangeSet{
		cfg:     cfg,
		variant: v,
		sep:     cfg.separator(),
	}
	if len(cfg.Values) > 0 {
		if err := r.Add(cfg.Values...); err != nil {
			return nil, err
		}
	}
	return r, nil
}

// Parse returns a set of the given type holding expr.
func Parse(typ, expr string) (*RangeSet, error) {
	return New(Config{Type: typ, Values: []any{expr}})
}

// empty returns a set sharing the configuration of r without any entries.
func (r *RangeSet) empty() *RangeSet {
	return &RangeSet{cfg: r.cfg, variant: r.variant, sep: r.sep}
}

// Add merges values into the set. Either every value is added or, on the
// first invalid value, none is.
func (r *RangeSet) Add(values ...any) error {
	ranges, err := r.parse(values)
	if err != nil {
		return err
	}
	for _, rng := range ranges {
		r.add(rng)
	}
	return nil
}

func (r *RangeSet) add(rng Range) {
	lo, hi, found := r.locate(rng, relatedTo)
	if !found {
		r.entries = slices.Insert(r.entries, lo, rng)
		r.size += rng.Size()
		return
	}
	if lo == hi {
		before := r.entries[lo].Size()
		r.entries[lo].Absorb(rng)
		r.size += r.entries[lo].Size() - before
		return
	}
	for _, e := range r.entries[lo : hi+1] {
		rng.Absorb(e)
		r.size -= e.Size()
	}
	r.entries = slices.Replace(r.entries, lo, hi+1, rng)
	r.size += rng.Size()
}

// Remove takes values out of the set, splitting entries where needed.
// Either every value is removed or, on the first invalid value, none is.
func (r *RangeSet) Remove(values ...any) error {
	ranges, err := r.parse(values)
	if err != nil {
		return err
	}
	for _, rng := range ranges {
		if err := r.remove(rng); err != nil {
			return err
		}
	}
	return nil
}

func (r *RangeSet) remove(rng Range) error {
	lo, hi, found := r.locate(rng, overlaps)
	if !found {
		return nil
	}
	var remnants []Range
	for _, e := range r.entries[lo : hi+1] {
		parts, err := e.Remove(rng)
		if err != nil {
			return err
		}
		remnants = append(remnants, parts...)
	}
	for _, e := range r.entries[lo : hi+1] {
		r.size -= e.Size()
	}
	for _, e := range remnants {
		r.size += e.Size()
	}
	r.entries = slices.Replace(r.entries, lo, hi+1, remnants...)
	return nil
}

// Contains reports whether every value lies within a single entry of the
// set. It returns true when no values are given.
func (r *RangeSet) Contains(values ...any) (bool, error) {
	if len(values) == 0 {
		return true, nil
	}
	ranges, err := r.parse(values)
	if err != nil {
		return false, err
	}
	for _, rng := range ranges {
		if _, _, found := r.locate(rng, contains); !found {
			return false, nil
		}
	}
	return true, nil
}

// ContainsAll returns the values that are not in the set, as a new set
// with the configuration of r. The result is empty when all values are
// present.
func (r *RangeSet) ContainsAll(values ...any) (*RangeSet, error) {
	ranges, err := r.parse(values)
	if err != nil {
		return nil, err
	}
	missing := r.empty()
	for _, rng := range ranges {
		missing.add(rng)
	}
	for _, e := range r.entries {
		if err := missing.remove(e); err != nil {
			return nil, err
		}
	}
	return missing, nil
}

// Missing returns, in request order and without duplicates, the textual
// form of every requested token that is not contained in the set.
func (r *RangeSet) Missing(values ...any) ([]string, error) {
	ranges, err := r.parse(values)
	if err != nil {
		return nil, err
	}
	seen := map[string]struct{}{}
	missing := []string{}
	for _, rng := range ranges {
		if _, _, found := r.locate(rng, contains); found {
			continue
		}
		s := rng.String()
		if _, ok := seen[s]; ok {
			continue
		}
		seen[s] = struct{}{}
		missing = append(missing, s)
	}
	return missing, nil
}

// Union returns a new set holding the values of r and other.
func (r *RangeSet) Union(other *RangeSet) (*RangeSet, error) {
	u := r.Clone()
	if err := u.Add(other); err != nil {
		return nil, err
	}
	return u, nil
}

// Difference returns a new set holding the values of r that are not in
// other.
func (r *RangeSet) Difference(other *RangeSet) (*RangeSet, error) {
	d := r.Clone()
	if err := d.Remove(other); err != nil {
		return nil, err
	}
	return d, nil
}

// Size returns the number of values in the set. A set spanning the whole
// integer domain holds 2^64 values and reports 0.
func (r *RangeSet) Size() uint64 { return r.size }

// Len returns the number of entries.
func (r *RangeSet) Len() int { return len(r.entries) }

// Ranges returns a copy of the entries in ascending order.
func (r *RangeSet) Ranges() []Range { return slices.Clone(r.entries) }

func (r *RangeSet) Variant() variant.Variant { return r.variant }

func (r *RangeSet) Config() Config {
	cfg := r.cfg
	cfg.Values = slices.Clone(r.cfg.Values)
	return cfg
}

func (r *RangeSet) Clone() *RangeSet {
	c := r.empty()
	c.entries = slices.Clone(r.entries)
	c.size = r.size
	return c
}

// Equal reports whether both sets hold the same values.
func (r *RangeSet) Equal(other *RangeSet) bool {
	if other == nil || r.variant.Kind() != other.variant.Kind() || len(r.entries) != len(other.entries) {
		return false
	}
	for i := range r.entries {
		if !r.entries[i].Equal(other.entries[i]) {
			return false
		}
	}
	return true
}

// By returns an iterator over every value of the set in ascending order.
// The iterator works on a snapshot of the entries; later mutations of the
// set do not affect it.
func (r *RangeSet) By() *Iterator {
	return newIterator(slices.Clone(r.entries))
}

func (r *RangeSet) String() string {
	parts := make([]string, 0, len(r.entries))
	for _, e := range r.entries {
		parts = append(parts, e.String())
	}
	return strings.Join(parts, r.sep)
}

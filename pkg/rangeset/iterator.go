package rangeset

import "github.com/henderiw/rangeset/pkg/box"

// Iterator walks the values of a list of ranges in ascending order.
//
//	it := set.By()
//	for it.Next() {
//		fmt.Println(it.Value())
//	}
type Iterator struct {
	ranges  []Range
	current int
	value   box.Box
}

func newIterator(ranges []Range) *Iterator {
	return &Iterator{ranges: ranges, current: -1}
}

// Next advances to the next value and reports whether there is one.
func (r *Iterator) Next() bool {
	if r.current >= len(r.ranges) {
		return false
	}
	if r.current >= 0 && r.value.Compare(r.ranges[r.current].end) < 0 {
		next, err := r.value.Next()
		if err == nil {
			r.value = next
			return true
		}
	}
	r.current++
	if r.current >= len(r.ranges) {
		r.value = nil
		return false
	}
	r.value = r.ranges[r.current].start
	return true
}

// Value returns the current value. It is nil before the first call to Next
// and after the iterator is exhausted.
func (r *Iterator) Value() box.Box {
	return r.value
}

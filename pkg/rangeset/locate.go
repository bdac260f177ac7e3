package rangeset

// matchFn decides whether an entry is affected by needle.
type matchFn func(entry, needle Range) bool

func relatedTo(entry, needle Range) bool { return entry.RelatedTo(needle) }
func overlaps(entry, needle Range) bool  { return entry.Overlaps(needle) }
func contains(entry, needle Range) bool  { return entry.Contains(needle) }

// locate returns the window [lo, hi] of entries matching needle. When no
// entry matches, found is false and lo is the index at which needle would
// be inserted.
func (r *RangeSet) locate(needle Range, match matchFn) (lo, hi int, found bool) {
	idx, ok := r.search(needle, match)
	if !ok {
		return idx, idx - 1, false
	}
	lo, hi = idx, idx
	for lo > 0 && match(r.entries[lo-1], needle) {
		lo--
	}
	for hi < len(r.entries)-1 && match(r.entries[hi+1], needle) {
		hi++
	}
	return lo, hi, true
}

// search finds one matching entry by binary search. Appending and
// prepending are answered before the search starts.
func (r *RangeSet) search(needle Range, match matchFn) (int, bool) {
	n := len(r.entries)
	if n == 0 {
		return 0, false
	}
	first, last := r.entries[0], r.entries[n-1]
	switch {
	case match(last, needle):
		return n - 1, true
	case last.end.Compare(needle.start) < 0:
		return n, false
	case match(first, needle):
		return 0, true
	case first.start.Compare(needle.end) > 0:
		return 0, false
	}

	lo, hi := 0, n-1
	for lo <= hi {
		mid := lo + (hi-lo)/2
		entry := r.entries[mid]
		switch {
		case match(entry, needle):
			return mid, true
		case entry.start.Compare(needle.end) > 0:
			// entry sorts after the needle, look at its left neighbour
			if mid == 0 {
				return 0, false
			}
			prev := r.entries[mid-1]
			if match(prev, needle) {
				return mid - 1, true
			}
			if prev.end.Compare(needle.start) < 0 {
				return mid, false
			}
			hi = mid - 1
		case entry.end.Compare(needle.start) < 0:
			// entry sorts before the needle, look at its right neighbour
			if mid == n-1 {
				return n, false
			}
			next := r.entries[mid+1]
			if match(next, needle) {
				return mid + 1, true
			}
			if next.start.Compare(needle.end) > 0 {
				return mid + 1, false
			}
			lo = mid + 1
		default:
			// overlaps without matching; only strict containment gets here
			return mid, false
		}
	}
	return lo, false
}

package date

import (
	"iter"
)

// Range represents a range of dates, both boundaries included.
type Range struct{ From, To Date }

// NewRange returns the range from 'from' to 'to', boundaries included.
func NewRange(from, to Date) Range { return Range{From: from, To: to} }

// Contains return true date is included in the range (boundaries included)
func (r Range) Contains(date Date) bool { return (!date.Before(r.From) && !date.After(r.To)) }

// IsEmpty reports whether the range contains no day at all.
func (r Range) IsEmpty() bool { return r.To.Before(r.From) }

// Days returns the number of days in the range, boundaries included.
func (r Range) Days() int {
	if r.IsEmpty() {
		return 0
	}
	return r.To.Sub(r.From) + 1
}

// Intersect returns the days common to r and s. The result may be empty.
func (r Range) Intersect(s Range) Range {
	res := r
	if s.From.After(res.From) {
		res.From = s.From
	}
	if s.To.Before(res.To) {
		res.To = s.To
	}
	return res
}

// Months returns an iterator over every calendar month the range touches, in
// chronological order.
func (r Range) Months() iter.Seq[Month] {
	return func(yield func(Month) bool) {
		if r.IsEmpty() {
			return
		}
		last := MonthOf(r.To)
		for m := MonthOf(r.From); !last.Before(m); m = m.Add(1) {
			if !yield(m) {
				return
			}
		}
	}
}

// String formats the range as "from..to".
func (r Range) String() string { return r.From.String() + ".." + r.To.String() }

package types

import (
	"math"
	"strconv"
	"time"
)

// Bound is a typed literal of an ordered field: an integer for amount and
// special, an instant for supplyDate.
type Bound struct {
	dated bool
	n     int
	t     time.Time
}

// IntBound returns an integer bound.
func IntBound(n int) Bound { return Bound{n: n} }

// DateBound returns a date bound.
func DateBound(t time.Time) Bound { return Bound{dated: true, t: t} }

// IsDate reports whether the bound holds a date.
func (b Bound) IsDate() bool { return b.dated }

// Int returns the integer value. Zero for date bounds.
func (b Bound) Int() int { return b.n }

// Time returns the date value. Zero for integer bounds.
func (b Bound) Time() time.Time { return b.t }

// Comparable reports whether two bounds hold the same kind of value.
func (b Bound) Comparable(o Bound) bool { return b.dated == o.dated }

// Compare returns -1, 0 or +1. Both bounds must be Comparable.
func (b Bound) Compare(o Bound) int {
	if b.dated {
		return b.t.Compare(o.t)
	}
	switch {
	case b.n < o.n:
		return -1
	case b.n > o.n:
		return 1
	default:
		return 0
	}
}

// Step moves the bound by the smallest representable unit: one for integers,
// one microsecond for dates. dir is +1 or -1. ok is false when an integer
// bound is already at the end of the int range in that direction.
func (b Bound) Step(dir int) (stepped Bound, ok bool) {
	if b.dated {
		return DateBound(b.t.Add(time.Duration(dir) * time.Microsecond)), true
	}
	if (dir > 0 && b.n == math.MaxInt) || (dir < 0 && b.n == math.MinInt) {
		return b, false
	}
	return IntBound(b.n + dir), true
}

// String renders integers in decimal and dates in RFC 3339 with
// sub-second precision, so stepped date bounds stay distinguishable.
func (b Bound) String() string {
	if b.dated {
		return b.t.Format(time.RFC3339Nano)
	}
	return strconv.Itoa(b.n)
}

package chartdata

import "image"

// Entry is one data point in a chart. A plain entry is just an (X, Y)
// pair; a stacked entry additionally carries an ordered list of signed
// components whose net sum is Y.
type Entry struct {
	X float64
	Y float64
	// Size is the magnitude used to scale bubble radii. It has no meaning
	// for bar entries.
	Size float64
	// Icon is optional decoration drawn alongside the entry. It plays no
	// part in geometry or highlighting.
	Icon image.Image

	stack  []float64
	ranges []Range
	posSum float64
	negSum float64
}

// Range is a [From, To] interval in value space occupied by one stack
// component.
type Range struct {
	From float64
	To   float64
}

// Contains reports whether value lies within the range, inclusive on both
// bounds.
func (r Range) Contains(value float64) bool {
	return value >= r.From && value <= r.To
}

// NewEntry returns a plain entry.
func NewEntry(x, y float64) *Entry {
	return &Entry{X: x, Y: y}
}

// NewBubbleEntry returns a plain entry with an associated bubble size.
func NewBubbleEntry(x, y, size float64) *Entry {
	return &Entry{X: x, Y: y, Size: size}
}

// NewStackedEntry returns an entry composed of the given signed stack
// components. Y is set to the net sum of the components.
func NewStackedEntry(x float64, components ...float64) *Entry {
	e := &Entry{X: x}
	e.SetStack(components...)
	return e
}

// IsStacked reports whether the entry carries stack components.
func (e *Entry) IsStacked() bool {
	return len(e.stack) > 0
}

// Stack returns the entry's stack components in their original order.
// Callers must not modify the returned slice; use SetStack instead.
func (e *Entry) Stack() []float64 {
	return e.stack
}

// SetStack replaces the entry's stack components and recomputes every
// derived attribute. The derived data is never partially stale: Y, the
// sums, and the ranges all change together.
func (e *Entry) SetStack(components ...float64) {
	e.stack = components
	e.posSum = 0
	e.negSum = 0
	for _, v := range e.stack {
		if v < 0 {
			e.negSum -= v
		} else {
			e.posSum += v
		}
	}
	e.Y = e.posSum - e.negSum

	ranges := make([]Range, len(e.stack))
	pos := float64(0)
	neg := -e.negSum
	for i, v := range e.stack {
		if v < 0 {
			ranges[i] = Range{From: neg, To: neg - v}
			neg -= v
		} else {
			ranges[i] = Range{From: pos, To: pos + v}
			pos += v
		}
	}
	e.ranges = ranges
}

// PositiveSum returns the sum of the non-negative stack components.
func (e *Entry) PositiveSum() float64 {
	return e.posSum
}

// NegativeSum returns the summed magnitude of the negative stack
// components, as a non-negative number.
func (e *Entry) NegativeSum() float64 {
	return e.negSum
}

// Ranges returns one value-space interval per stack component, in
// component order. Positive components accumulate upward from zero and
// negative components accumulate from -NegativeSum back toward zero, so
// consecutive same-sign ranges are contiguous.
func (e *Entry) Ranges() []Range {
	return e.ranges
}

// ClosestStackIndex returns the index of the first range containing value.
// A value on a boundary shared by two adjacent ranges selects the earlier
// one, because the scan starts at index 0. When value lies outside every
// range, the last index is returned if value exceeds the final range's
// end, otherwise 0. Empty ranges also yield 0; callers must treat that as
// "not stacked" rather than as an index into the ranges.
func ClosestStackIndex(ranges []Range, value float64) int {
	if len(ranges) == 0 {
		return 0
	}
	for i, r := range ranges {
		if r.Contains(value) {
			return i
		}
	}
	if last := len(ranges) - 1; value > ranges[last].To {
		return last
	}
	return 0
}

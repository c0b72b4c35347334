package chartdata

// NoStack is the StackIndex of a highlight that selects a whole entry
// rather than one stack segment.
const NoStack = -1

// Highlight identifies the entry (and, for stacked entries, the segment)
// selected by a touch. A fresh value is built for every resolution; the
// only sanctioned mutation is WholeEntry.
type Highlight struct {
	// X and Y are the selected entry's own values in data space, not the
	// touch position.
	X float64
	Y float64
	// Px and Py are the pixel coordinates of the selected value.
	Px float32
	Py float32
	// SetIndex is the index of the owning data set within the chart.
	SetIndex int
	// StackIndex selects one stack segment, or NoStack.
	StackIndex int
	Axis       Axis
}

// Stacked reports whether the highlight selects a single stack segment.
func (h Highlight) Stacked() bool {
	return h.StackIndex != NoStack
}

// WholeEntry returns a copy of the highlight with the stack segment
// selection stripped, for callers that highlight entire entries.
func (h Highlight) WholeEntry() Highlight {
	h.StackIndex = NoStack
	return h
}

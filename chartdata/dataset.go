package chartdata

import (
	"math"
	"sort"
)

// Axis identifies which value axis a data set is measured against.
type Axis uint8

const (
	AxisLeft Axis = iota
	AxisRight
)

// DataSet owns an ordered collection of entries and the configuration
// used to turn them into geometry.
//
// Entries are kept ascending by primary-axis value; this ordering is what
// allows geometry building to stop scanning once it passes the right edge
// of the viewport, so it is enforced at insertion time rather than trusted.
// A nil entry is a legal hole in sparse data.
type DataSet struct {
	Label string
	Axis  Axis

	// BarWidth is the full width of one bar in data units.
	BarWidth float64
	// NormalizeSize selects area-proportional bubble scaling. When false,
	// bubble radii scale linearly with entry size.
	NormalizeSize bool

	// XOf and YOf read an entry's primary and secondary values. They are
	// resolved once, when the data set is configured, and default to the
	// entry's own X and Y fields. Every consumer of this set reads entry
	// values through them so drawing and highlighting cannot disagree.
	XOf func(*Entry) float64
	YOf func(*Entry) float64

	entries []*Entry
	maxSize float64
	stacked bool
}

// NewDataSet returns an empty data set with default accessors and bar
// width.
func NewDataSet(label string) *DataSet {
	return &DataSet{
		Label:    label,
		BarWidth: 0.85,
		XOf:      func(e *Entry) float64 { return e.X },
		YOf:      func(e *Entry) float64 { return e.Y },
	}
}

// Insert appends an entry to the set. An entry whose primary value would
// break the ascending ordering of the set is rejected and the method
// returns false. A nil entry records a hole and is always accepted.
func (ds *DataSet) Insert(e *Entry) (inserted bool) {
	if e != nil {
		if last := ds.lastEntry(); last != nil && ds.XOf(e) < ds.XOf(last) {
			return false
		}
		if e.IsStacked() {
			ds.stacked = true
		}
		ds.maxSize = max(ds.maxSize, e.Size)
	}
	ds.entries = append(ds.entries, e)
	return true
}

func (ds *DataSet) lastEntry() *Entry {
	for i := len(ds.entries) - 1; i >= 0; i-- {
		if ds.entries[i] != nil {
			return ds.entries[i]
		}
	}
	return nil
}

// Len returns the number of entry slots, holes included.
func (ds *DataSet) Len() int {
	return len(ds.entries)
}

// At returns the entry at index i, or nil for holes and out-of-bounds
// indices.
func (ds *DataSet) At(i int) *Entry {
	if i < 0 || i >= len(ds.entries) {
		return nil
	}
	return ds.entries[i]
}

// Stacked reports whether any entry in the set carries stack components.
// A stacked set may still contain plain entries.
func (ds *DataSet) Stacked() bool {
	return ds.stacked
}

// StackDepth returns the largest number of stack components on any entry,
// or 1 for a set of plain entries.
func (ds *DataSet) StackDepth() int {
	depth := 1
	for _, e := range ds.entries {
		if e != nil {
			depth = max(depth, len(e.Stack()))
		}
	}
	return depth
}

// MaxSize returns the largest bubble size inserted so far.
func (ds *DataSet) MaxSize() float64 {
	return ds.maxSize
}

// EntryForX returns the non-nil entry whose primary value is nearest to x,
// along with its index. It returns (nil, -1) when the set holds no
// entries.
func (ds *DataSet) EntryForX(x float64) (*Entry, int) {
	if len(ds.entries) == 0 {
		return nil, -1
	}
	// The predicate is monotone because entries ascend in X; holes inherit
	// the value of their nearest earlier neighbor.
	i := sort.Search(len(ds.entries), func(i int) bool {
		j := ds.prevEntry(i)
		if j < 0 {
			return false
		}
		return ds.XOf(ds.entries[j]) >= x
	})
	best := -1
	bestDist := math.Inf(1)
	for _, j := range []int{ds.prevEntry(i - 1), ds.nextEntry(i)} {
		if j < 0 {
			continue
		}
		if d := math.Abs(ds.XOf(ds.entries[j]) - x); d < bestDist {
			best, bestDist = j, d
		}
	}
	if best < 0 {
		return nil, -1
	}
	return ds.entries[best], best
}

// prevEntry returns the index of the last non-nil entry at or before i,
// or -1.
func (ds *DataSet) prevEntry(i int) int {
	for ; i >= 0; i-- {
		if i < len(ds.entries) && ds.entries[i] != nil {
			return i
		}
	}
	return -1
}

// nextEntry returns the index of the first non-nil entry at or after i,
// or -1.
func (ds *DataSet) nextEntry(i int) int {
	if i < 0 {
		i = 0
	}
	for ; i < len(ds.entries); i++ {
		if ds.entries[i] != nil {
			return i
		}
	}
	return -1
}

// XRange returns the span of primary values in the set. ok is false when
// the set holds no entries.
func (ds *DataSet) XRange() (minX, maxX float64, ok bool) {
	first := ds.nextEntry(0)
	last := ds.prevEntry(len(ds.entries) - 1)
	if first < 0 {
		return 0, 0, false
	}
	return ds.XOf(ds.entries[first]), ds.XOf(ds.entries[last]), true
}

// YRange returns the span of secondary values in the set, accounting for
// the full positive and negative extents of stacked entries. ok is false
// when the set holds no entries.
func (ds *DataSet) YRange() (minY, maxY float64, ok bool) {
	for _, e := range ds.entries {
		if e == nil {
			continue
		}
		lo, hi := ds.YOf(e), ds.YOf(e)
		if e.IsStacked() {
			lo, hi = -e.NegativeSum(), e.PositiveSum()
		}
		if !ok {
			minY, maxY, ok = lo, hi, true
			continue
		}
		minY = min(minY, lo)
		maxY = max(maxY, hi)
	}
	return minY, maxY, ok
}

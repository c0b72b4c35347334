package plot

import (
	"math"

	"gioui.org/f32"
	"git.sr.ht/~elias/handplot/chartdata"
)

// DataProvider is the view of the hosting chart a Highlighter needs. The
// chart owns the data sets, axis ranges, and viewport; the highlighter
// only reads them.
type DataProvider interface {
	// TransformFor returns the transform for data sets bound to the given
	// axis.
	TransformFor(axis chartdata.Axis) Transform
	DataSetCount() int
	DataSet(i int) *chartdata.DataSet
}

// Highlighter resolves pointer positions to highlights. It keeps no state
// between calls; every resolution builds a fresh Highlight.
type Highlighter struct {
	Provider DataProvider
	// MaxPixelDistance rejects candidate entries farther than this many
	// pixels from the touch. Zero means no limit.
	MaxPixelDistance float32
}

// Resolve returns the highlight for a touch at pixel position (tx, ty).
// ok is false when no entry is close enough; a touch outside the data is
// an expected condition, not a failure.
func (h Highlighter) Resolve(tx, ty float32) (hl chartdata.Highlight, ok bool) {
	cand, ok := h.nearest(tx, ty)
	if !ok {
		return chartdata.Highlight{}, false
	}
	set := h.Provider.DataSet(cand.SetIndex)
	if set == nil || !set.Stacked() {
		return cand, true
	}
	touch := h.Provider.TransformFor(set.Axis).Value(f32.Pt(tx, ty))
	return h.ResolveStacked(cand, set, touch.X, touch.Y)
}

// nearest performs the base entry search: the touch is inverted into data
// space per axis, each set contributes its entry closest along the
// primary axis, and the candidate with the smallest pixel distance to the
// touch wins.
func (h Highlighter) nearest(tx, ty float32) (chartdata.Highlight, bool) {
	var (
		best     chartdata.Highlight
		bestDist = float32(math.Inf(1))
		found    bool
	)
	for i := 0; i < h.Provider.DataSetCount(); i++ {
		set := h.Provider.DataSet(i)
		if set == nil {
			continue
		}
		tr := h.Provider.TransformFor(set.Axis)
		touch := tr.Value(f32.Pt(tx, ty))
		e, _ := set.EntryForX(touch.X)
		if e == nil {
			continue
		}
		px := tr.Pixel(set.XOf(e), set.YOf(e))
		d := pixelDist(px, f32.Pt(tx, ty))
		if h.MaxPixelDistance > 0 && d > h.MaxPixelDistance {
			continue
		}
		if d < bestDist {
			bestDist = d
			found = true
			best = chartdata.Highlight{
				X:          set.XOf(e),
				Y:          set.YOf(e),
				Px:         px.X,
				Py:         px.Y,
				SetIndex:   i,
				StackIndex: chartdata.NoStack,
				Axis:       set.Axis,
			}
		}
	}
	return best, found
}

// ResolveStacked narrows a candidate highlight on a stack-enabled data
// set down to the stack segment containing the touched value. x and y are
// the touch position in data space.
//
// A candidate whose entry can no longer be found means the data and the
// highlight have desynchronized; the result is "no selection" so the
// frame can still render. The same applies to an entry that claims stack
// components but has no derived ranges, which indicates malformed data.
func (h Highlighter) ResolveStacked(cand chartdata.Highlight, set *chartdata.DataSet, x, y float64) (chartdata.Highlight, bool) {
	e, _ := set.EntryForX(cand.X)
	if e == nil || set.XOf(e) != cand.X {
		return chartdata.Highlight{}, false
	}
	if !e.IsStacked() {
		// Stack-enabled sets may still hold plain entries.
		return cand, true
	}
	ranges := e.Ranges()
	if len(ranges) == 0 {
		return chartdata.Highlight{}, false
	}
	idx := chartdata.ClosestStackIndex(ranges, y)
	tr := h.Provider.TransformFor(set.Axis)
	px := tr.Pixel(set.XOf(e), ranges[idx].To)
	return chartdata.Highlight{
		X:          set.XOf(e),
		Y:          set.YOf(e),
		Px:         px.X,
		Py:         px.Y,
		SetIndex:   cand.SetIndex,
		StackIndex: idx,
		Axis:       cand.Axis,
	}, true
}

func pixelDist(a, b f32.Point) float32 {
	return float32(math.Hypot(float64(a.X-b.X), float64(a.Y-b.Y)))
}

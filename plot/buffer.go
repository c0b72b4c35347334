package plot

import (
	"math"

	"gioui.org/f32"
	"git.sr.ht/~elias/handplot/chartdata"
)

// Phase is reveal-animation progress along each axis, in [0, 1]. The X
// phase limits how many entries are expanded; the Y phase scales value
// extents toward the baseline.
type Phase struct {
	X float64
	Y float64
}

// FullPhase is the phase of a finished (or absent) animation.
var FullPhase = Phase{X: 1, Y: 1}

// BarBuffer expands a data set's entries into pixel-space rectangles, one
// per plain entry and one per stack component of a stacked entry, in
// entry then component order. The backing slice is scratch space reused
// across frames; every Build fully overwrites it before the result is
// visible to callers.
type BarBuffer struct {
	// Horizontal flips which pixel axis carries the value extent. The
	// stacking math is unchanged, only the coordinate assignment differs.
	Horizontal bool

	rects []Rect
}

// Build returns the rectangles for ds under the given transform and
// animation phase. Holes (nil entries) produce no rectangle and no error,
// and an empty data set yields an empty buffer. The entry count is
// re-read from the live data set on every step, so a set that shrinks
// mid-build cannot drive the index out of bounds.
func (b *BarBuffer) Build(ds *chartdata.DataSet, tr Transform, phase Phase) []Rect {
	b.rects = b.rects[:0]
	half := ds.BarWidth / 2
	for i := 0; float64(i) < float64(ds.Len())*phase.X; i++ {
		e := ds.At(i)
		if e == nil {
			continue
		}
		x := ds.XOf(e)
		if !e.IsStacked() {
			// The zero-anchored edge stays put; only the extent away from
			// the baseline scales with the phase, so bars grow out of the
			// axis during the reveal.
			y := ds.YOf(e) * phase.Y
			var from, to float64
			if y >= 0 {
				to = y
			} else {
				from = y
			}
			b.push(tr, x-half, from, x+half, to)
			continue
		}
		// Stack segments reuse the entry's derived ranges so the drawn
		// rectangles and highlight resolution share one set of bounds.
		for _, r := range e.Ranges() {
			b.push(tr, x-half, r.From*phase.Y, x+half, r.To*phase.Y)
		}
	}
	return b.rects
}

func (b *BarBuffer) push(tr Transform, cross0, main0, cross1, main1 float64) {
	if b.Horizontal {
		b.rects = append(b.rects, tr.PixelRect(main0, cross0, main1, cross1))
	} else {
		b.rects = append(b.rects, tr.PixelRect(cross0, main0, cross1, main1))
	}
}

// Circle is one bubble in pixel space.
type Circle struct {
	Center f32.Point
	Radius float32
}

// BubbleBuffer expands a data set's entries into positioned, scaled
// circles. Like BarBuffer, it owns reusable scratch space and each Build
// fully overwrites the previous frame's contents.
type BubbleBuffer struct {
	circles []Circle
}

// Build returns the circles for ds. Entries whose circle falls entirely
// outside the viewport are culled: misses off the top, bottom, or left
// continue the scan, while the first circle entirely past the right edge
// stops it, relying on the set's ascending-X invariant.
func (b *BubbleBuffer) Build(ds *chartdata.DataSet, tr Transform, phase Phase) []Circle {
	b.circles = b.circles[:0]
	// The reference size is the smaller of the content height and the
	// pixel span of one primary-axis unit, so circles stay proportionate
	// at any viewport aspect ratio.
	unit := tr.Pixel(1, 0).X - tr.Pixel(0, 0).X
	reference := min(abs32(tr.View.Height()), abs32(unit))
	maxSize := ds.MaxSize()
	for i := 0; float64(i) < float64(ds.Len())*phase.X; i++ {
		e := ds.At(i)
		if e == nil {
			continue
		}
		p := tr.Pixel(ds.XOf(e), ds.YOf(e)*phase.Y)
		r := bubbleRadius(e.Size, maxSize, reference, ds.NormalizeSize)
		if !tr.View.InBoundsRight(p.X - r) {
			break
		}
		if !tr.View.InBoundsLeft(p.X+r) ||
			!tr.View.InBoundsTop(p.Y+r) ||
			!tr.View.InBoundsBottom(p.Y-r) {
			continue
		}
		b.circles = append(b.circles, Circle{Center: p, Radius: r})
	}
	return b.circles
}

// bubbleRadius scales a bubble by the square root of its share of the
// maximum size when normalized, so circle area rather than diameter
// tracks the data. Non-normalized sizing multiplies the raw size directly,
// matching the legacy behavior.
func bubbleRadius(size, maxSize float64, reference float32, normalized bool) float32 {
	if !normalized {
		return float32(size) * reference
	}
	if maxSize == 0 {
		return reference
	}
	return reference * float32(math.Sqrt(size/maxSize))
}

func abs32(v float32) float32 {
	if v < 0 {
		return -v
	}
	return v
}

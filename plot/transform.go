// Package plot converts chart entries into pixel-space primitives and
// resolves pointer positions back to the entries that produced them. Both
// directions share one Transform per axis, which is what keeps the drawn
// geometry and the resolved highlights in agreement.
package plot

import (
	"gioui.org/f32"
)

// Point is a position in data space.
type Point struct {
	X float64
	Y float64
}

// Pt returns a data-space point.
func Pt(x, y float64) Point {
	return Point{X: x, Y: y}
}

// Viewport is the pixel rectangle chart content is drawn into.
type Viewport struct {
	Left   float32
	Top    float32
	Right  float32
	Bottom float32
}

func (v Viewport) Width() float32 {
	return v.Right - v.Left
}

func (v Viewport) Height() float32 {
	return v.Bottom - v.Top
}

// InBoundsLeft reports whether x is at or right of the left content edge.
func (v Viewport) InBoundsLeft(x float32) bool {
	return x >= v.Left
}

func (v Viewport) InBoundsRight(x float32) bool {
	return x <= v.Right
}

func (v Viewport) InBoundsTop(y float32) bool {
	return y >= v.Top
}

func (v Viewport) InBoundsBottom(y float32) bool {
	return y <= v.Bottom
}

// Transform is an affine mapping between one pair of axis value ranges
// and a pixel viewport. A degenerate range (max == min) maps every value
// to the same pixel coordinate; it is treated as a scale of zero, never
// an error, so a flat axis still renders.
type Transform struct {
	XMin, XMax float64
	YMin, YMax float64
	View       Viewport
	// Inverted reflects pixel output across the viewport, for charts whose
	// pixel axes grow opposite the data axes (horizontal orientation).
	Inverted bool
}

func (t Transform) scales() (sx, sy float64) {
	if dx := t.XMax - t.XMin; dx != 0 {
		sx = float64(t.View.Width()) / dx
	}
	if dy := t.YMax - t.YMin; dy != 0 {
		sy = float64(t.View.Height()) / dy
	}
	return sx, sy
}

// Pixel maps a single data-space point into pixel space.
func (t Transform) Pixel(x, y float64) f32.Point {
	sx, sy := t.scales()
	px := float64(t.View.Left) + (x-t.XMin)*sx
	py := float64(t.View.Bottom) - (y-t.YMin)*sy
	if t.Inverted {
		px = float64(t.View.Left) + float64(t.View.Right) - px
		py = float64(t.View.Top) + float64(t.View.Bottom) - py
	}
	return f32.Pt(float32(px), float32(py))
}

// Value maps a pixel position back into data space. It is the exact
// inverse of Pixel up to floating-point rounding. On a degenerate axis
// every pixel maps back to the axis minimum, mirroring the forward
// collapse.
func (t Transform) Value(p f32.Point) Point {
	px, py := float64(p.X), float64(p.Y)
	if t.Inverted {
		px = float64(t.View.Left) + float64(t.View.Right) - px
		py = float64(t.View.Top) + float64(t.View.Bottom) - py
	}
	sx, sy := t.scales()
	x, y := t.XMin, t.YMin
	if sx != 0 {
		x += (px - float64(t.View.Left)) / sx
	}
	if sy != 0 {
		y += (float64(t.View.Bottom) - py) / sy
	}
	return Point{X: x, Y: y}
}

// Pixels maps a batch of data-space points into dst, reusing its capacity
// and fully overwriting prior contents. The result is identical,
// point by point, to calling Pixel on each input.
func (t Transform) Pixels(dst []f32.Point, points ...Point) []f32.Point {
	dst = dst[:0]
	for _, p := range points {
		dst = append(dst, t.Pixel(p.X, p.Y))
	}
	return dst
}

// Values maps a batch of pixel positions into dst, reusing its capacity.
// The result is identical, point by point, to calling Value on each input.
func (t Transform) Values(dst []Point, points ...f32.Point) []Point {
	dst = dst[:0]
	for _, p := range points {
		dst = append(dst, t.Value(p))
	}
	return dst
}

// Rect is an axis-aligned pixel rectangle with Left <= Right and
// Top <= Bottom.
type Rect struct {
	Left   float32
	Top    float32
	Right  float32
	Bottom float32
}

// Contains reports whether the pixel position lies within the rectangle,
// inclusive of its edges.
func (r Rect) Contains(p f32.Point) bool {
	return p.X >= r.Left && p.X <= r.Right && p.Y >= r.Top && p.Y <= r.Bottom
}

// PixelRect maps the data-space rectangle spanning (x0, y0) and (x1, y1)
// into a normalized pixel rectangle. Normalization absorbs whatever edge
// swapping the screen-space y flip or an inverted transform introduces.
func (t Transform) PixelRect(x0, y0, x1, y1 float64) Rect {
	a := t.Pixel(x0, y0)
	b := t.Pixel(x1, y1)
	return Rect{
		Left:   min(a.X, b.X),
		Top:    min(a.Y, b.Y),
		Right:  max(a.X, b.X),
		Bottom: max(a.Y, b.Y),
	}
}

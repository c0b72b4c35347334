package plot

import (
	"testing"

	"git.sr.ht/~elias/handplot/chartdata"
)

// identityTransform maps data [0,10]x[0,10] onto a 10x10 viewport, so
// pixel coordinates equal data coordinates with y flipped: py = 10 - y.
func identityTransform() Transform {
	return Transform{XMin: 0, XMax: 10, YMin: 0, YMax: 10, View: Viewport{Right: 10, Bottom: 10}}
}

func rectApprox(a, b Rect) bool {
	return approx32(a.Left, b.Left) &&
		approx32(a.Top, b.Top) &&
		approx32(a.Right, b.Right) &&
		approx32(a.Bottom, b.Bottom)
}

func TestBarBufferPlainEntries(t *testing.T) {
	ds := chartdata.NewDataSet("test")
	ds.BarWidth = 1
	ds.Insert(chartdata.NewEntry(2, 5))
	ds.Insert(nil)
	ds.Insert(chartdata.NewEntry(6, -4))
	tr := identityTransform()

	type testcase struct {
		name  string
		phase Phase
		want  []Rect
	}
	for _, tc := range []testcase{
		{
			name:  "full phase",
			phase: FullPhase,
			want: []Rect{
				{Left: 1.5, Top: 5, Right: 2.5, Bottom: 10},
				{Left: 5.5, Top: 10, Right: 6.5, Bottom: 14},
			},
		},
		{
			// Bars grow out of the baseline: the zero edge is fixed and
			// only the far edge moves with the phase.
			name:  "half y phase anchors the baseline",
			phase: Phase{X: 1, Y: 0.5},
			want: []Rect{
				{Left: 1.5, Top: 7.5, Right: 2.5, Bottom: 10},
				{Left: 5.5, Top: 10, Right: 6.5, Bottom: 12},
			},
		},
	} {
		t.Run(tc.name, func(t *testing.T) {
			var buf BarBuffer
			rects := buf.Build(ds, tr, tc.phase)
			if len(rects) != len(tc.want) {
				t.Fatalf("expected %d rects, got %d", len(tc.want), len(rects))
			}
			for i, want := range tc.want {
				if !rectApprox(rects[i], want) {
					t.Errorf("[%d] expected rect %+v, got %+v", i, want, rects[i])
				}
			}
		})
	}
}

func TestBarBufferStackedEntries(t *testing.T) {
	ds := chartdata.NewDataSet("test")
	ds.BarWidth = 1
	ds.Insert(chartdata.NewStackedEntry(5, 3, -2))
	var buf BarBuffer
	rects := buf.Build(ds, identityTransform(), FullPhase)
	want := []Rect{
		{Left: 4.5, Top: 7, Right: 5.5, Bottom: 10},
		{Left: 4.5, Top: 10, Right: 5.5, Bottom: 12},
	}
	if len(rects) != len(want) {
		t.Fatalf("expected one rect per stack component, got %d", len(rects))
	}
	for i, w := range want {
		if !rectApprox(rects[i], w) {
			t.Errorf("[%d] expected rect %+v, got %+v", i, w, rects[i])
		}
	}
	// Unlike plain bars, both edges of a stack segment scale with the
	// phase so the segments stay contiguous during the reveal.
	rects = buf.Build(ds, identityTransform(), Phase{X: 1, Y: 0.5})
	halved := []Rect{
		{Left: 4.5, Top: 8.5, Right: 5.5, Bottom: 10},
		{Left: 4.5, Top: 10, Right: 5.5, Bottom: 11},
	}
	for i, w := range halved {
		if !rectApprox(rects[i], w) {
			t.Errorf("[%d] expected scaled rect %+v, got %+v", i, w, rects[i])
		}
	}
}

func TestBarBufferXPhaseLimitsEntries(t *testing.T) {
	ds := chartdata.NewDataSet("test")
	for i := 0; i < 4; i++ {
		ds.Insert(chartdata.NewEntry(float64(i), 1))
	}
	var buf BarBuffer
	if rects := buf.Build(ds, identityTransform(), Phase{X: 0.5, Y: 1}); len(rects) != 2 {
		t.Errorf("expected half the entries at x phase 0.5, got %d rects", len(rects))
	}
	if rects := buf.Build(ds, identityTransform(), FullPhase); len(rects) != 4 {
		t.Errorf("expected all entries at full phase, got %d rects", len(rects))
	}
	empty := chartdata.NewDataSet("empty")
	if rects := buf.Build(empty, identityTransform(), FullPhase); len(rects) != 0 {
		t.Errorf("expected empty buffer for empty set, got %d rects", len(rects))
	}
}

func TestBarBufferHorizontal(t *testing.T) {
	ds := chartdata.NewDataSet("test")
	ds.BarWidth = 1
	ds.Insert(chartdata.NewEntry(2, 5))
	buf := BarBuffer{Horizontal: true}
	rects := buf.Build(ds, identityTransform(), FullPhase)
	if len(rects) != 1 {
		t.Fatalf("expected 1 rect, got %d", len(rects))
	}
	// The value extent runs along pixel x; the bar width along pixel y.
	want := Rect{Left: 0, Top: 7.5, Right: 5, Bottom: 8.5}
	if !rectApprox(rects[0], want) {
		t.Errorf("expected rect %+v, got %+v", want, rects[0])
	}
}

func TestBubbleBufferRadius(t *testing.T) {
	type testcase struct {
		name       string
		size       float64
		maxSize    float64
		reference  float32
		normalized bool
		want       float32
	}
	for _, tc := range []testcase{
		{name: "normalized area scaling", size: 4, maxSize: 16, reference: 10, normalized: true, want: 5},
		{name: "normalized maximum fills reference", size: 16, maxSize: 16, reference: 10, normalized: true, want: 10},
		{name: "normalized with zero max", size: 4, maxSize: 0, reference: 10, normalized: true, want: 10},
		{name: "raw sizing multiplies directly", size: 4, maxSize: 16, reference: 10, normalized: false, want: 40},
	} {
		t.Run(tc.name, func(t *testing.T) {
			got := bubbleRadius(tc.size, tc.maxSize, tc.reference, tc.normalized)
			if !approx32(got, tc.want) {
				t.Errorf("expected radius %v, got %v", tc.want, got)
			}
		})
	}
}

func TestBubbleBufferReferenceSize(t *testing.T) {
	// One x unit spans 10 pixels and the content is 10 pixels tall, so
	// the reference size is 10 and the largest bubble has radius 10.
	tr := Transform{XMin: 0, XMax: 1, YMin: 0, YMax: 10, View: Viewport{Right: 10, Bottom: 10}}
	ds := chartdata.NewDataSet("test")
	ds.NormalizeSize = true
	ds.Insert(chartdata.NewBubbleEntry(0.3, 5, 4))
	ds.Insert(chartdata.NewBubbleEntry(0.6, 5, 16))
	var buf BubbleBuffer
	circles := buf.Build(ds, tr, FullPhase)
	if len(circles) != 2 {
		t.Fatalf("expected 2 circles, got %d", len(circles))
	}
	if !approx32(circles[0].Radius, 5) {
		t.Errorf("expected radius 5 for quarter-of-max size, got %v", circles[0].Radius)
	}
	if !approx32(circles[1].Radius, 10) {
		t.Errorf("expected radius 10 for maximum size, got %v", circles[1].Radius)
	}
	if !approx32(circles[0].Center.X, 3) || !approx32(circles[0].Center.Y, 5) {
		t.Errorf("expected center (3, 5), got %v", circles[0].Center)
	}
}

func TestBubbleBufferCulling(t *testing.T) {
	tr := Transform{XMin: 0, XMax: 10, YMin: 0, YMax: 10, View: Viewport{Right: 100, Bottom: 100}}
	ds := chartdata.NewDataSet("test")
	for _, e := range []*chartdata.Entry{
		chartdata.NewBubbleEntry(-2, 5, 0.1),  // entirely left of the viewport
		chartdata.NewBubbleEntry(3, 25, 0.1),  // entirely above
		chartdata.NewBubbleEntry(4, -20, 0.1), // entirely below
		chartdata.NewBubbleEntry(5, 5, 0.1),   // visible
		nil,
		chartdata.NewBubbleEntry(8, 2, 0.1), // visible
		chartdata.NewBubbleEntry(12, 5, 0.1),
		// Would overlap the viewport thanks to its radius, but the scan
		// stops at the first circle entirely past the right edge.
		chartdata.NewBubbleEntry(13, 5, 6),
	} {
		ds.Insert(e)
	}
	var buf BubbleBuffer
	circles := buf.Build(ds, tr, FullPhase)
	if len(circles) != 2 {
		t.Fatalf("expected 2 visible circles, got %d", len(circles))
	}
	if !approx32(circles[0].Center.X, 50) || !approx32(circles[0].Center.Y, 50) {
		t.Errorf("expected first visible circle at (50, 50), got %v", circles[0].Center)
	}
	if !approx32(circles[1].Center.X, 80) || !approx32(circles[1].Center.Y, 80) {
		t.Errorf("expected second visible circle at (80, 80), got %v", circles[1].Center)
	}
}

package chartdata

import "testing"

func TestDataSetOrdering(t *testing.T) {
	ds := NewDataSet("test")
	if !ds.Insert(NewEntry(0, 1)) {
		t.Errorf("first insert should always succeed")
	}
	if !ds.Insert(NewEntry(2, 1)) {
		t.Errorf("ascending insert should succeed")
	}
	if ds.Insert(NewEntry(1, 1)) {
		t.Errorf("out-of-order insert should be rejected")
	}
	if ds.Len() != 2 {
		t.Errorf("rejected insert should not change the set, got %d entries", ds.Len())
	}
	if !ds.Insert(NewEntry(2, 5)) {
		t.Errorf("insert at the same x should succeed")
	}
	if !ds.Insert(nil) {
		t.Errorf("holes should always be accepted")
	}
	if !ds.Insert(NewEntry(3, 1)) {
		t.Errorf("ascending insert after a hole should succeed")
	}
}

func TestDataSetEntryForX(t *testing.T) {
	ds := NewDataSet("test")
	for _, e := range []*Entry{
		NewEntry(0, 1),
		nil,
		NewEntry(2, 2),
		NewEntry(10, 3),
	} {
		ds.Insert(e)
	}
	type testcase struct {
		name      string
		x         float64
		wantIndex int
	}
	for _, tc := range []testcase{
		{name: "exact hit", x: 2, wantIndex: 2},
		{name: "left of all entries", x: -5, wantIndex: 0},
		{name: "right of all entries", x: 50, wantIndex: 3},
		{name: "nearest across a hole", x: 0.9, wantIndex: 0},
		{name: "nearest rounds toward closer neighbor", x: 7, wantIndex: 3},
	} {
		t.Run(tc.name, func(t *testing.T) {
			e, idx := ds.EntryForX(tc.x)
			if e == nil {
				t.Fatalf("expected an entry, got nil")
			}
			if idx != tc.wantIndex {
				t.Errorf("expected index %d, got %d", tc.wantIndex, idx)
			}
		})
	}

	empty := NewDataSet("empty")
	if e, idx := empty.EntryForX(0); e != nil || idx != -1 {
		t.Errorf("empty set should yield no entry, got %v at %d", e, idx)
	}
}

func TestDataSetRangesAndStacking(t *testing.T) {
	ds := NewDataSet("test")
	ds.Insert(NewBubbleEntry(1, 2, 4))
	if ds.Stacked() {
		t.Errorf("set of plain entries should not report stacked")
	}
	ds.Insert(NewStackedEntry(2, 3, -2))
	ds.Insert(NewBubbleEntry(3, -1, 16))
	if !ds.Stacked() {
		t.Errorf("set holding any stacked entry should report stacked")
	}
	if depth := ds.StackDepth(); depth != 2 {
		t.Errorf("expected stack depth 2, got %d", depth)
	}
	if ds.MaxSize() != 16 {
		t.Errorf("expected max size 16, got %v", ds.MaxSize())
	}
	if minX, maxX, ok := ds.XRange(); !ok || minX != 1 || maxX != 3 {
		t.Errorf("expected x range [1, 3], got [%v, %v] ok=%v", minX, maxX, ok)
	}
	// The stacked entry extends from -2 to 3, beyond any net y value.
	if minY, maxY, ok := ds.YRange(); !ok || minY != -2 || maxY != 3 {
		t.Errorf("expected y range [-2, 3], got [%v, %v] ok=%v", minY, maxY, ok)
	}
}

func TestDataSetCustomAccessors(t *testing.T) {
	ds := NewDataSet("test")
	// Chart the entry sizes on the value axis instead of y.
	ds.YOf = func(e *Entry) float64 { return e.Size }
	ds.Insert(NewBubbleEntry(0, 100, 7))
	e, _ := ds.EntryForX(0)
	if e == nil {
		t.Fatalf("expected an entry, got nil")
	}
	if got := ds.YOf(e); got != 7 {
		t.Errorf("expected custom accessor to read 7, got %v", got)
	}
}

func TestGroupBars(t *testing.T) {
	var bd BarData
	if _, err := bd.GroupWidth(0.1, 0.05); err == nil {
		t.Errorf("group width without data sets should error")
	}
	if err := bd.GroupBars(0, 0.1, 0.05); err == nil {
		t.Errorf("grouping without data sets should error")
	}

	a := NewDataSet("a")
	b := NewDataSet("b")
	a.BarWidth = 0.4
	b.BarWidth = 0.4
	for i := 0; i < 3; i++ {
		a.Insert(NewEntry(float64(i), 1))
		b.Insert(NewEntry(float64(i), 2))
	}
	bd.Sets = []*DataSet{a, b}

	const (
		groupSpace = 0.2
		barSpace   = 0.1
	)
	interval, err := bd.GroupWidth(groupSpace, barSpace)
	if err != nil {
		t.Fatalf("group width failed: %v", err)
	}
	if want := 2*(0.4+0.1) + 0.2; !approx(interval, want) {
		t.Errorf("expected group width %v, got %v", want, interval)
	}
	if err := bd.GroupBars(0, groupSpace, barSpace); err != nil {
		t.Fatalf("grouping failed: %v", err)
	}
	// First group: groupSpace/2 + barSpace/2 + barWidth/2 centers the
	// first bar of set a.
	if want := 0.1 + 0.05 + 0.2; !approx(a.At(0).X, want) {
		t.Errorf("expected first bar of set a at %v, got %v", want, a.At(0).X)
	}
	if want := 0.1 + 0.05 + 0.2 + 0.2 + 0.05 + 0.05 + 0.2; !approx(b.At(0).X, want) {
		t.Errorf("expected first bar of set b at %v, got %v", want, b.At(0).X)
	}
	// Groups repeat at the full interval.
	if want := a.At(0).X + interval; !approx(a.At(1).X, want) {
		t.Errorf("expected second bar of set a at %v, got %v", want, a.At(1).X)
	}
	for i := 1; i < a.Len(); i++ {
		if a.At(i).X <= a.At(i-1).X {
			t.Errorf("[%d] grouping should preserve ascending order, got %v after %v", i, a.At(i).X, a.At(i-1).X)
		}
	}
}

func approx(a, b float64) bool {
	const tolerance = 1e-9
	diff := a - b
	return diff < tolerance && diff > -tolerance
}

package chartdata

import "testing"

func TestStackedEntryDerivedData(t *testing.T) {
	type testcase struct {
		name       string
		components []float64
		posSum     float64
		negSum     float64
		y          float64
		ranges     []Range
	}
	for _, tc := range []testcase{
		{
			name:       "positive and negative",
			components: []float64{3, -2},
			posSum:     3,
			negSum:     2,
			y:          1,
			ranges:     []Range{{0, 3}, {-2, 0}},
		},
		{
			name:       "mixed order preserved",
			components: []float64{3, 2, -2},
			posSum:     5,
			negSum:     2,
			y:          3,
			ranges:     []Range{{0, 3}, {3, 5}, {-2, 0}},
		},
		{
			name:       "all negative",
			components: []float64{-1, -2},
			posSum:     0,
			negSum:     3,
			y:          -3,
			ranges:     []Range{{-3, -2}, {-2, 0}},
		},
		{
			name:       "zero component is a collapsed range",
			components: []float64{2, 0, 1},
			posSum:     3,
			negSum:     0,
			y:          3,
			ranges:     []Range{{0, 2}, {2, 2}, {2, 3}},
		},
	} {
		t.Run(tc.name, func(t *testing.T) {
			e := NewStackedEntry(0, tc.components...)
			if !e.IsStacked() {
				t.Errorf("entry with components should report stacked")
			}
			if e.PositiveSum() != tc.posSum {
				t.Errorf("expected positive sum %v, got %v", tc.posSum, e.PositiveSum())
			}
			if e.NegativeSum() != tc.negSum {
				t.Errorf("expected negative sum %v, got %v", tc.negSum, e.NegativeSum())
			}
			if e.Y != tc.y {
				t.Errorf("expected net y %v, got %v", tc.y, e.Y)
			}
			ranges := e.Ranges()
			if len(ranges) != len(tc.ranges) {
				t.Fatalf("expected %d ranges, got %d", len(tc.ranges), len(ranges))
			}
			for i, want := range tc.ranges {
				if ranges[i] != want {
					t.Errorf("[%d] expected range %v, got %v", i, want, ranges[i])
				}
			}
		})
	}
}

func TestStackRangeContiguity(t *testing.T) {
	e := NewStackedEntry(0, 1, 4, -3, 2, -1, 0.5)
	ranges := e.Ranges()
	stack := e.Stack()
	for i := 0; i < len(ranges)-1; i++ {
		for j := i + 1; j < len(ranges); j++ {
			sameSign := (stack[i] < 0) == (stack[j] < 0)
			if !sameSign {
				continue
			}
			if ranges[i].To != ranges[j].From {
				t.Errorf("[%d->%d] same-sign ranges should be contiguous, got %v then %v", i, j, ranges[i], ranges[j])
			}
			break
		}
	}
}

func TestSetStackRecomputesAtomically(t *testing.T) {
	e := NewStackedEntry(1, 3, -2)
	e.SetStack(1, 1)
	if e.Y != 2 {
		t.Errorf("expected recomputed y 2, got %v", e.Y)
	}
	if e.NegativeSum() != 0 {
		t.Errorf("expected recomputed negative sum 0, got %v", e.NegativeSum())
	}
	want := []Range{{0, 1}, {1, 2}}
	ranges := e.Ranges()
	if len(ranges) != len(want) {
		t.Fatalf("expected %d ranges, got %d", len(want), len(ranges))
	}
	for i := range want {
		if ranges[i] != want[i] {
			t.Errorf("[%d] expected range %v, got %v", i, want[i], ranges[i])
		}
	}
}

func TestClosestStackIndex(t *testing.T) {
	ranges := []Range{{0, 3}, {3, 5}, {-2, 0}}
	type testcase struct {
		name   string
		ranges []Range
		value  float64
		want   int
	}
	for _, tc := range []testcase{
		{name: "interior of second range", ranges: ranges, value: 4, want: 1},
		{name: "shared boundary selects earlier range", ranges: ranges, value: 3, want: 0},
		{name: "zero boundary selects earlier range", ranges: ranges, value: 0, want: 0},
		{name: "beyond last range clamps to last index", ranges: ranges, value: 10, want: 2},
		{name: "below all ranges falls back to zero", ranges: []Range{{0, 3}, {3, 5}}, value: -7, want: 0},
		{name: "negative value inside negative range", ranges: ranges, value: -1, want: 2},
		{name: "empty ranges yield zero", ranges: nil, value: 2, want: 0},
	} {
		t.Run(tc.name, func(t *testing.T) {
			if got := ClosestStackIndex(tc.ranges, tc.value); got != tc.want {
				t.Errorf("expected index %d, got %d", tc.want, got)
			}
		})
	}
}

package chartdata

import "errors"

// ErrNoDataSets is returned by grouping operations invoked before any
// data set has been attached. Proceeding would silently lay out nothing,
// so this is surfaced as a hard error rather than ignored.
var ErrNoDataSets = errors.New("chartdata: no data sets attached")

// BarData collects the bar data sets drawn side by side in one chart.
// Grouping assumes every set shares the bar width of the first set.
type BarData struct {
	Sets []*DataSet
}

// GroupWidth returns the data-space span occupied by one group: every
// set's bar plus barSpace around each, plus groupSpace between groups.
func (b *BarData) GroupWidth(groupSpace, barSpace float64) (float64, error) {
	if len(b.Sets) == 0 {
		return 0, ErrNoDataSets
	}
	return float64(len(b.Sets))*(b.Sets[0].BarWidth+barSpace) + groupSpace, nil
}

// GroupBars repositions the entries of every set so that entries sharing
// an index form one side-by-side group, with the first group starting at
// fromX. Entry i of set j is centered inside slot j of group i. The
// rewritten primary values ascend, so the ordering invariant of each set
// is preserved.
func (b *BarData) GroupBars(fromX, groupSpace, barSpace float64) error {
	if len(b.Sets) == 0 {
		return ErrNoDataSets
	}
	maxLen := 0
	for _, set := range b.Sets {
		set.BarWidth = b.Sets[0].BarWidth
		maxLen = max(maxLen, set.Len())
	}
	groupSpaceHalf := groupSpace / 2
	barSpaceHalf := barSpace / 2
	barWidthHalf := b.Sets[0].BarWidth / 2
	for i := 0; i < maxLen; i++ {
		fromX += groupSpaceHalf
		for _, set := range b.Sets {
			fromX += barSpaceHalf + barWidthHalf
			if e := set.At(i); e != nil {
				e.X = fromX
			}
			fromX += barWidthHalf + barSpaceHalf
		}
		fromX += groupSpaceHalf
	}
	return nil
}

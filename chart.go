package main

import (
	"fmt"
	"image"
	"image/color"
	"math"
	"strconv"
	"time"

	"gioui.org/f32"
	"gioui.org/io/event"
	"gioui.org/io/pointer"
	"gioui.org/layout"
	"gioui.org/op"
	"gioui.org/op/clip"
	"gioui.org/op/paint"
	"gioui.org/text"
	"gioui.org/widget"
	"gioui.org/widget/material"
	"gioui.org/x/component"
	"golang.org/x/exp/constraints"
	"golang.org/x/exp/shiny/materialdesign/icons"

	"git.sr.ht/~elias/handplot/chartdata"
	"git.sr.ht/~elias/handplot/plot"
)

var pauseIcon = func() *widget.Icon {
	icon, _ := widget.NewIcon(icons.AVPause)
	return icon
}()

var playIcon = func() *widget.Icon {
	icon, _ := widget.NewIcon(icons.AVPlayArrow)
	return icon
}()

// revealDuration is how long the grow-from-baseline animation runs after
// a replay.
const revealDuration = 600 * time.Millisecond

// ChartView draws bar or bubble charts for a group of data sets and
// resolves hover positions back to entries and stack segments. It
// implements plot.DataProvider, so the highlighter reads axis ranges and
// viewport geometry from the same place the renderer does.
type ChartView struct {
	Sets []*chartdata.DataSet
	// Bubbles selects circle rendering instead of bars.
	Bubbles bool

	barBuf    plot.BarBuffer
	bubbleBuf plot.BubbleBuffer

	view      plot.Viewport
	keyTable  component.GridState
	replayBtn widget.Clickable

	animating  bool
	phaseStart time.Time

	// hover gesture state
	pos       f32.Point
	isHovered bool
}

func NewChartView() *ChartView {
	return &ChartView{}
}

var _ plot.DataProvider = (*ChartView)(nil)

func (c *ChartView) DataSetCount() int {
	return len(c.Sets)
}

func (c *ChartView) DataSet(i int) *chartdata.DataSet {
	if i < 0 || i >= len(c.Sets) {
		return nil
	}
	return c.Sets[i]
}

// TransformFor maps the combined value ranges of every set on the given
// axis into the current viewport.
func (c *ChartView) TransformFor(axis chartdata.Axis) plot.Transform {
	tr := plot.Transform{View: c.view}
	var (
		haveX, haveY bool
		pad          float64
	)
	for _, ds := range c.Sets {
		if ds.Axis != axis {
			continue
		}
		if x0, x1, ok := ds.XRange(); ok {
			if !haveX {
				tr.XMin, tr.XMax, haveX = x0, x1, true
			} else {
				tr.XMin = min(tr.XMin, x0)
				tr.XMax = max(tr.XMax, x1)
			}
			pad = max(pad, ds.BarWidth/2)
		}
		if y0, y1, ok := ds.YRange(); ok {
			if !haveY {
				tr.YMin, tr.YMax, haveY = y0, y1, true
			} else {
				tr.YMin = min(tr.YMin, y0)
				tr.YMax = max(tr.YMax, y1)
			}
		}
	}
	// Bars grow out of the zero baseline, so keep it in range, and pad
	// the category axis so edge bars aren't clipped.
	tr.YMin = min(tr.YMin, 0)
	tr.YMax = max(tr.YMax, 0)
	tr.XMin -= pad
	tr.XMax += pad
	return tr
}

// Replay restarts the reveal animation.
func (c *ChartView) Replay(now time.Time) {
	c.animating = true
	c.phaseStart = now
}

func (c *ChartView) phase(gtx C) plot.Phase {
	if !c.animating {
		return plot.FullPhase
	}
	f := float64(gtx.Now.Sub(c.phaseStart)) / float64(revealDuration)
	if f >= 1 {
		c.animating = false
		return plot.FullPhase
	}
	gtx.Execute(op.InvalidateCmd{})
	return plot.Phase{X: 1, Y: f}
}

func (c *ChartView) Update(gtx C) {
	if c.replayBtn.Clicked(gtx) {
		c.Replay(gtx.Now)
	}
	for {
		ev, ok := gtx.Event(pointer.Filter{
			Target: c,
			Kinds:  pointer.Enter | pointer.Leave | pointer.Move | pointer.Press,
		})
		if !ok {
			break
		}
		switch ev := ev.(type) {
		case pointer.Event:
			switch ev.Kind {
			case pointer.Enter:
				c.isHovered = true
				c.pos = ev.Position
			case pointer.Leave, pointer.Cancel:
				c.isHovered = false
			case pointer.Move, pointer.Press:
				c.pos = ev.Position
			}
		}
	}
}

func (c *ChartView) Layout(gtx C, th *material.Theme) D {
	c.Update(gtx)
	if len(c.Sets) == 0 {
		return D{Size: gtx.Constraints.Max}
	}
	return layout.Flex{Axis: layout.Vertical}.Layout(gtx,
		layout.Flexed(1, func(gtx C) D {
			return c.layoutPlot(gtx, th)
		}),
		layout.Rigid(func(gtx C) D {
			return c.layoutKey(gtx, th)
		}),
	)
}

func (c *ChartView) layoutPlot(gtx C, th *material.Theme) D {
	c.view = plot.Viewport{
		Right:  float32(gtx.Constraints.Max.X),
		Bottom: float32(gtx.Constraints.Max.Y),
	}
	phase := c.phase(gtx)
	defer clip.Rect{Max: gtx.Constraints.Max}.Push(gtx.Ops).Pop()
	event.Op(gtx.Ops, c)

	c.layoutBaseline(gtx)
	for i, ds := range c.Sets {
		tr := c.TransformFor(ds.Axis)
		if c.Bubbles {
			for _, circ := range c.bubbleBuf.Build(ds, tr, phase) {
				fillCircle(gtx.Ops, circ, setColor(i))
			}
			continue
		}
		c.layoutBars(gtx, ds, c.barBuf.Build(ds, tr, phase), setColor(i))
	}
	if c.isHovered {
		c.layoutHighlight(gtx, th)
	}
	return D{Size: gtx.Constraints.Max}
}

// layoutBars fills one rectangle per buffer element. The buffer emits
// stack segments in component order directly after their entry, so the
// segment level is recovered by walking entries alongside the buffer.
func (c *ChartView) layoutBars(gtx C, ds *chartdata.DataSet, rects []plot.Rect, base color.NRGBA) {
	j := 0
	for i := 0; i < ds.Len() && j < len(rects); i++ {
		e := ds.At(i)
		if e == nil {
			continue
		}
		n := 1
		if e.IsStacked() {
			n = len(e.Stack())
		}
		for k := 0; k < n && j < len(rects); k++ {
			fillRect(gtx.Ops, rects[j], segmentColor(base, k))
			j++
		}
	}
}

// layoutBaseline draws the zero line of the value axis.
func (c *ChartView) layoutBaseline(gtx C) {
	if len(c.Sets) == 0 {
		return
	}
	tr := c.TransformFor(c.Sets[0].Axis)
	zero := tr.Pixel(0, 0)
	paint.FillShape(gtx.Ops, color.NRGBA{A: 100}, clip.Rect{
		Min: image.Point{Y: int(zero.Y)},
		Max: image.Point{X: gtx.Constraints.Max.X, Y: int(zero.Y) + gtx.Dp(1)},
	}.Op())
}

func (c *ChartView) layoutHighlight(gtx C, th *material.Theme) {
	h := plot.Highlighter{Provider: c, MaxPixelDistance: float32(gtx.Dp(120))}
	hl, ok := h.Resolve(c.pos.X, c.pos.Y)
	if !ok {
		return
	}
	set := c.Sets[hl.SetIndex]
	e, _ := set.EntryForX(hl.X)
	if e == nil {
		return
	}
	value := set.YOf(e)
	if !c.Bubbles {
		// Re-derive the hovered primitive through the same transform and
		// ranges used to draw it, then brighten it.
		tr := c.TransformFor(hl.Axis)
		half := set.BarWidth / 2
		var marker plot.Rect
		if hl.Stacked() {
			r := e.Ranges()[hl.StackIndex]
			marker = tr.PixelRect(hl.X-half, r.From, hl.X+half, r.To)
			value = e.Stack()[hl.StackIndex]
		} else {
			marker = tr.PixelRect(hl.X-half, min(0, value), hl.X+half, max(0, value))
		}
		fillRect(gtx.Ops, marker, color.NRGBA{R: 0xff, G: 0xff, B: 0xff, A: 90})
	}
	c.layoutHoverInfo(gtx, th, set, e, hl, value)
}

// layoutHoverInfo draws a small translucent readout near the cursor,
// clamped to the plot bounds.
func (c *ChartView) layoutHoverInfo(gtx C, th *material.Theme, set *chartdata.DataSet, e *chartdata.Entry, hl chartdata.Highlight, value float64) {
	lines := []string{
		set.Label,
		"x " + strconv.FormatFloat(hl.X, 'f', 3, 64),
		"y " + strconv.FormatFloat(value, 'f', 3, 64),
	}
	if hl.Stacked() {
		lines = append(lines, fmt.Sprintf("segment %d of %d", hl.StackIndex+1, len(e.Stack())))
	}

	origConstraints := gtx.Constraints
	gtx.Constraints.Min = image.Point{}
	macro := op.Record(gtx.Ops)
	dims := layout.Background{}.Layout(gtx,
		func(gtx C) D {
			paint.FillShape(gtx.Ops, color.NRGBA{R: 255, G: 255, B: 255, A: 150}, clip.Rect{Max: gtx.Constraints.Min}.Op())
			return D{Size: gtx.Constraints.Min}
		},
		func(gtx C) D {
			return layout.UniformInset(10).Layout(gtx, func(gtx C) D {
				children := make([]layout.FlexChild, 0, len(lines))
				for _, line := range lines {
					l := material.Body2(th, line)
					l.MaxLines = 1
					children = append(children, layout.Rigid(l.Layout))
				}
				return layout.Flex{Axis: layout.Vertical, Alignment: layout.End}.Layout(gtx, children...)
			})
		},
	)
	call := macro.Stop()
	gtx.Constraints = origConstraints

	pos := image.Pt(int(c.pos.X)+gtx.Dp(8), int(c.pos.Y))
	pos.X = min(pos.X, gtx.Constraints.Max.X-dims.Size.X)
	pos.Y = min(pos.Y, gtx.Constraints.Max.Y-dims.Size.Y)
	transform := op.Offset(pos).Push(gtx.Ops)
	call.Add(gtx.Ops)
	transform.Pop()
}

func (c *ChartView) layoutKey(gtx C, th *material.Theme) D {
	return layout.Flex{Alignment: layout.Middle}.Layout(gtx,
		layout.Rigid(func(gtx C) D {
			side := gtx.Dp(24)
			gtx.Constraints = layout.Exact(image.Pt(side, side))
			icon := playIcon
			if c.animating {
				icon = pauseIcon
			}
			return material.Clickable(gtx, &c.replayBtn, func(gtx C) D {
				return icon.Layout(gtx, th.Fg)
			})
		}),
		layout.Flexed(1, func(gtx C) D {
			return c.layoutKeyTable(gtx, th)
		}),
	)
}

func (c *ChartView) layoutKeyTable(gtx C, th *material.Theme) D {
	table := component.Table(th, &c.keyTable)
	table.HScrollbarStyle.Indicator.MinorWidth = 0
	table.HScrollbarStyle.Track.MinorPadding = 0
	table.VScrollbarStyle.Indicator.MinorWidth = 0
	table.VScrollbarStyle.Track.MinorPadding = 0
	colorColWidth := gtx.Dp(50)
	numColWidth := gtx.Dp(100)
	nameColWidth := gtx.Constraints.Max.X - colorColWidth - 2*numColWidth - gtx.Dp(table.VScrollbarStyle.Width())
	rowHeight := gtx.Sp(20)
	const (
		colorCol = iota
		nameCol
		entriesCol
		sumCol
		numCols
	)
	return table.Layout(gtx, len(c.Sets), numCols,
		func(axis layout.Axis, index, constraint int) int {
			if axis == layout.Vertical {
				return min(constraint, rowHeight)
			}
			var size int
			switch index {
			case colorCol:
				size = colorColWidth
			case nameCol:
				size = nameColWidth
			case entriesCol, sumCol:
				size = numColWidth
			}
			return min(size, constraint)
		},
		func(gtx C, index int) D {
			var l material.LabelStyle
			switch index {
			case colorCol:
				l = material.Body1(th, "Color")
			case nameCol:
				l = material.Body1(th, "Data Set")
				l.Alignment = text.Middle
			case entriesCol:
				l = material.Body1(th, "Entries")
				l.Alignment = text.End
			case sumCol:
				l = material.Body1(th, "Net Sum")
				l.Alignment = text.End
			default:
				l = material.Body1(th, "???")
			}
			l.Color = th.ContrastFg
			return layout.Background{}.Layout(gtx,
				func(gtx C) D {
					paint.FillShape(gtx.Ops, th.ContrastBg, clip.Rect{Max: gtx.Constraints.Max}.Op())
					return D{Size: gtx.Constraints.Min}
				},
				l.Layout,
			)
		},
		func(gtx C, row, col int) (dims D) {
			defer func() {
				dims.Size = gtx.Constraints.Constrain(dims.Size)
			}()
			set := c.Sets[row]
			return layout.UniformInset(2).Layout(gtx, func(gtx C) D {
				switch col {
				case colorCol:
					return layout.Center.Layout(gtx, func(gtx C) D {
						sideLen := gtx.Dp(10)
						sz := image.Pt(sideLen, sideLen)
						paint.FillShape(gtx.Ops, setColor(row), clip.Rect{Max: sz}.Op())
						return D{Size: sz}
					})
				case nameCol:
					return material.Body2(th, set.Label).Layout(gtx)
				case entriesCol:
					l := material.Body2(th, strconv.Itoa(set.Len()))
					l.Alignment = text.End
					return l.Layout(gtx)
				case sumCol:
					sum := 0.0
					for i := 0; i < set.Len(); i++ {
						if e := set.At(i); e != nil {
							sum += set.YOf(e)
						}
					}
					l := material.Body2(th, fmt.Sprintf("%.2f", sum))
					l.Alignment = text.End
					return l.Layout(gtx)
				default:
					return D{Size: gtx.Constraints.Max}
				}
			})
		})
}

func fillRect(ops *op.Ops, r plot.Rect, col color.NRGBA) {
	paint.FillShape(ops, col, clip.Rect{
		Min: image.Pt(int(floor(r.Left)), int(floor(r.Top))),
		Max: image.Pt(int(ceil(r.Right)), int(ceil(r.Bottom))),
	}.Op())
}

func fillCircle(ops *op.Ops, circ plot.Circle, col color.NRGBA) {
	paint.FillShape(ops, col, clip.Ellipse{
		Min: image.Pt(int(floor(circ.Center.X-circ.Radius)), int(floor(circ.Center.Y-circ.Radius))),
		Max: image.Pt(int(ceil(circ.Center.X+circ.Radius)), int(ceil(circ.Center.Y+circ.Radius))),
	}.Op(ops))
}

func ceil[T constraints.Integer | constraints.Float](a T) T {
	return T(math.Ceil(float64(a)))
}

func floor[T constraints.Integer | constraints.Float](a T) T {
	return T(math.Floor(float64(a)))
}

package main

import (
	"image"
	"image/color"
	"log"
	"time"

	"gioui.org/font/gofont"
	"gioui.org/layout"
	"gioui.org/op/clip"
	"gioui.org/op/paint"
	"gioui.org/text"
	"gioui.org/widget"
	"gioui.org/widget/material"
	"gioui.org/x/component"
	"gioui.org/x/explorer"
	"git.sr.ht/~gioverse/skel/stream"

	"git.sr.ht/~elias/handplot/backend"
	"git.sr.ht/~elias/handplot/chartdata"
)

type (
	C = layout.Context
	D = layout.Dimensions
)

const (
	tabBars    = "bars"
	tabBubbles = "bubbles"
)

// UI is responsible for holding the state of and drawing the top-level UI.
type UI struct {
	ws   backend.WindowState
	expl *explorer.Explorer

	chart       *ChartView
	tab         widget.Enum
	pathField   component.TextField
	openPathBtn widget.Clickable
	explorerBtn widget.Clickable
	loadErr     string

	th           *material.Theme
	statusStream *stream.Stream[backend.Status]
	status       backend.Status
}

func NewUI(ws backend.WindowState, expl *explorer.Explorer) *UI {
	th := material.NewTheme()
	th.Shaper = text.NewShaper(text.WithCollection(gofont.Collection()), text.NoSystemFonts())
	ui := &UI{
		ws:           ws,
		th:           th,
		expl:         expl,
		tab:          widget.Enum{Value: tabBars},
		statusStream: stream.New(ws.Controller, ws.Bundle.Datasource.Status),
	}
	ui.chart = NewChartView()
	return ui
}

// Insert adds a unit of parsed input to the visualization.
func (ui *UI) Insert(in backend.InputData) {
	switch in.Kind {
	case backend.KindHeadings:
		// A heading row begins a new source; whatever was charted before
		// is stale now.
		ui.chart.Sets = nil
		for _, label := range in.Headings {
			ds := chartdata.NewDataSet(label)
			ds.NormalizeSize = true
			ui.chart.Sets = append(ui.chart.Sets, ds)
		}
		ui.chart.Replay(time.Now())
	case backend.KindEntry:
		if in.Series < 0 || in.Series >= len(ui.chart.Sets) {
			log.Printf("dropped entry for unknown data set %d", in.Series)
			return
		}
		set := ui.chart.Sets[in.Series]
		if !set.Insert(in.Entry) {
			log.Printf("dropped out-of-order entry for %q", set.Label)
		}
	}
}

// Update the state of the UI and generate events.
func (ui *UI) Update(gtx C) {
	ui.statusStream.ReadInto(gtx, &ui.status, backend.Status{})
	ui.tab.Update(gtx)
	ui.chart.Bubbles = ui.tab.Value == tabBubbles
	if ui.status.Err != nil {
		ui.loadErr = ui.status.Err.Error()
	}
	if ui.explorerBtn.Clicked(gtx) {
		if err := ui.ws.Bundle.Datasource.LoadFromFile(ui.expl); err != nil {
			ui.loadErr = err.Error()
		}
	}
	if ui.openPathBtn.Clicked(gtx) {
		if err := ui.ws.Bundle.Datasource.OpenPath(ui.pathField.Text()); err != nil {
			ui.loadErr = err.Error()
		}
	}
}

type TabStyle struct {
	state  *widget.Enum
	label  material.LabelStyle
	border widget.Border
	inset  layout.Inset
	value  string
	fill   color.NRGBA
}

func Tab(th *material.Theme, state *widget.Enum, value, display string) TabStyle {
	selected := state.Value == value
	ts := TabStyle{
		state: state,
		label: material.Body1(th, display),
		inset: layout.UniformInset(2),
		border: widget.Border{
			Width: 2,
			Color: th.ContrastBg,
		},
		value: value,
	}
	ts.label.Alignment = text.Middle
	if selected {
		ts.label.Color = th.ContrastFg
		ts.fill = th.ContrastBg
	}
	return ts
}

func (t TabStyle) Layout(gtx C) D {
	return t.inset.Layout(gtx, func(gtx C) D {
		return t.border.Layout(gtx, func(gtx C) D {
			return t.inset.Layout(gtx, func(gtx C) D {
				return t.state.Layout(gtx, t.value, func(gtx C) D {
					return layout.Background{}.Layout(gtx, func(gtx C) D {
						paint.FillShape(gtx.Ops, t.fill, clip.Rect{Max: gtx.Constraints.Min}.Op())
						return D{Size: gtx.Constraints.Min}
					}, t.label.Layout)
				})
			})
		})
	})
}

func (ui *UI) layoutMainArea(gtx C) D {
	return layout.Flex{
		Axis: layout.Vertical,
	}.Layout(gtx,
		layout.Rigid(func(gtx C) D {
			return layout.Flex{}.Layout(gtx,
				layout.Flexed(1, Tab(ui.th, &ui.tab, tabBars, "Bars").Layout),
				layout.Flexed(1, Tab(ui.th, &ui.tab, tabBubbles, "Bubbles").Layout),
			)
		}),
		layout.Rigid(func(gtx C) D {
			if len(ui.loadErr) == 0 {
				return D{}
			}
			l := material.Body1(ui.th, ui.loadErr)
			l.Color = color.NRGBA{R: 150, A: 255}
			return l.Layout(gtx)
		}),
		layout.Flexed(1, func(gtx C) D {
			return ui.chart.Layout(gtx, ui.th)
		}),
	)
}

func (ui *UI) layoutStartScreen(gtx C) D {
	return layout.Flex{
		Axis:      layout.Vertical,
		Alignment: layout.Middle,
		Spacing:   layout.SpaceAround,
	}.Layout(gtx,
		layout.Rigid(func(gtx C) D {
			gtx.Constraints.Min = image.Point{}
			return material.Body1(ui.th, "No data yet.").Layout(gtx)
		}),
		layout.Rigid(func(gtx C) D {
			gtx.Constraints.Min.X = gtx.Constraints.Max.X / 2
			return ui.pathField.Layout(gtx, ui.th, "Path to entry CSV")
		}),
		layout.Rigid(func(gtx C) D {
			gtx.Constraints.Min = image.Point{}
			return material.Button(ui.th, &ui.openPathBtn, "Open Path").Layout(gtx)
		}),
		layout.Rigid(func(gtx C) D {
			gtx.Constraints.Min = image.Point{}
			return material.Button(ui.th, &ui.explorerBtn, "Browse For Data").Layout(gtx)
		}),
		layout.Rigid(func(gtx C) D {
			gtx.Constraints.Min = image.Point{}
			return material.Body2(ui.th, ui.loadErr).Layout(gtx)
		}),
	)
}

// Layout the UI into the provided context.
func (ui *UI) Layout(gtx C) D {
	ui.Update(gtx)
	if len(ui.chart.Sets) == 0 {
		return ui.layoutStartScreen(gtx)
	}
	return ui.layoutMainArea(gtx)
}

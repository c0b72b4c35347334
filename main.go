package main

import (
	"context"
	"flag"
	"log"
	"os"

	"gioui.org/app"
	"gioui.org/op"
	"gioui.org/x/explorer"

	"git.sr.ht/~elias/handplot/backend"
)

func main() {
	path := flag.String("data", "", "entry CSV file to chart; the file is watched for appended rows")
	flag.Parse()
	ds, err := backend.NewDatasource()
	if err != nil {
		log.Fatalf("failed initializing data source: %v", err)
	}
	go func() {
		w := app.NewWindow(app.Title("handplot"))
		ds.NotifyWith(w.Invalidate)
		if *path != "" {
			if err := ds.OpenPath(*path); err != nil {
				log.Fatalf("failed opening %q: %v", *path, err)
			}
		}
		expl := explorer.NewExplorer(w)
		ws := backend.NewWindowState(context.Background(), backend.NewBundle(ds), w)
		ui := NewUI(ws, expl)
		if err := loop(w, expl, ui, ds); err != nil {
			log.Fatal(err)
		}
		os.Exit(0)
	}()
	app.Main()
}

func loop(w *app.Window, expl *explorer.Explorer, ui *UI, ds *backend.Datasource) error {
	var ops op.Ops
	for {
		ev := w.NextEvent()
		expl.ListenEvents(ev)
		switch ev := ev.(type) {
		case app.DestroyEvent:
			return ev.Err
		case app.FrameEvent:
			gtx := app.NewContext(&ops, ev)
		drain:
			for {
				select {
				case in := <-ds.Samples():
					ui.Insert(in)
				default:
					break drain
				}
			}
			ui.Layout(gtx)
			ev.Frame(gtx.Ops)
		}
	}
}

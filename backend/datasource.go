package backend

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"strconv"
	"strings"
	"sync"

	"gioui.org/x/explorer"
	"git.sr.ht/~elias/handplot/chartdata"
	"github.com/fsnotify/fsnotify"
)

// RWBox guards a value with a read/write lock.
type RWBox[T any] struct {
	t    T
	lock sync.RWMutex
}

func (r *RWBox[T]) Read(f func(*T)) {
	r.lock.RLock()
	defer r.lock.RUnlock()
	f(&r.t)
}

func (r *RWBox[T]) Write(f func(*T)) {
	r.lock.Lock()
	defer r.lock.Unlock()
	f(&r.t)
}

type Mode uint8

const (
	ModeNone Mode = iota
	ModeReplaying
	ModeWatching
)

// Status describes the state of the data source for display in the UI.
type Status struct {
	Mode Mode
	Path string
	Err  error
}

type InputKind uint8

const (
	KindEntry InputKind = iota
	KindHeadings
)

// InputData is one unit of parsed input: either the column headings that
// name the data sets, or a single entry record.
type InputData struct {
	Kind     InputKind
	Headings []string
	Record
}

// Record is one parsed entry destined for one data set. A nil Entry
// records a hole in sparse data.
type Record struct {
	Series int
	Entry  *chartdata.Entry
}

// Datasource parses entry CSV data and streams it to the UI. The expected
// format is a heading row naming each data set, then one row per primary
// value:
//
//	x, cpu, gpu
//	0, 4, 1;2;-1
//	1, 5@2.5,
//
// A plain cell is a y value, semicolon-separated numbers are stacked
// components, "y@size" carries a bubble size, and an empty cell is a hole.
type Datasource struct {
	watcher    *fsnotify.Watcher
	samples    chan InputData
	invalidate func()

	status       RWBox[Status]
	statusNotify chan struct{}
}

func NewDatasource() (*Datasource, error) {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed creating file watcher: %w", err)
	}
	return &Datasource{
		watcher:      watcher,
		samples:      make(chan InputData, 1024),
		statusNotify: make(chan struct{}, 1),
	}, nil
}

// Samples returns the channel the UI drains each frame.
func (d *Datasource) Samples() <-chan InputData {
	return d.samples
}

// NotifyWith registers a function invoked whenever new data arrives,
// typically the window's Invalidate.
func (d *Datasource) NotifyWith(f func()) {
	d.invalidate = f
}

func (d *Datasource) setStatus(s Status) {
	d.status.Write(func(t *Status) { *t = s })
	select {
	case d.statusNotify <- struct{}{}:
	default:
	}
	d.signal()
}

// Status streams the data source's state: the current status immediately,
// then once per change. It is shaped for consumption through skel's
// stream helpers.
func (d *Datasource) Status(ctx context.Context) <-chan Status {
	out := make(chan Status, 1)
	go func() {
		defer close(out)
		emit := func() {
			var s Status
			d.status.Read(func(t *Status) { s = *t })
			select {
			case out <- s:
			case <-ctx.Done():
			}
		}
		emit()
		for {
			select {
			case <-ctx.Done():
				return
			case <-d.statusNotify:
				emit()
			}
		}
	}()
	return out
}

// LoadFromFile prompts for a file with the system file chooser and starts
// streaming it.
func (d *Datasource) LoadFromFile(expl *explorer.Explorer) error {
	file, err := expl.ChooseFile()
	if err != nil {
		return err
	}
	name := ""
	if f, ok := file.(interface{ Name() string }); ok {
		name = f.Name()
	}
	d.startReading(name, file, ModeReplaying)
	return nil
}

// OpenPath opens a CSV file by path, watching it for appended rows so a
// live-written file streams continuously.
func (d *Datasource) OpenPath(path string) error {
	file, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("failed opening data file: %w", err)
	}
	if err := d.watcher.Add(path); err != nil {
		file.Close()
		return fmt.Errorf("failed watching data file: %w", err)
	}
	d.startReading(path, file, ModeWatching)
	return nil
}

func (d *Datasource) startReading(path string, file io.ReadCloser, mode Mode) {
	d.setStatus(Status{Mode: mode, Path: path})
	go func() {
		defer file.Close()
		if err := d.readSource(file, mode == ModeWatching); err != nil {
			d.setStatus(Status{Mode: mode, Path: path, Err: err})
		}
	}()
}

// readSource parses CSV rows into records. When follow is set, hitting
// EOF blocks on watcher events and resumes once the file grows.
func (d *Datasource) readSource(source io.Reader, follow bool) error {
	csvReader := csv.NewReader(NewLineReader(source))
	csvReader.TrimLeadingSpace = true
	headings, err := d.readHeadings(csvReader, follow)
	if err != nil {
		return err
	}
	d.samples <- InputData{Kind: KindHeadings, Headings: headings[1:]}
	d.signal()
readLoop:
	for {
		rec, err := csvReader.Read()
		if err != nil {
			if errors.Is(err, io.EOF) {
				if !follow {
					return nil
				}
				for ev := range d.watcher.Events {
					if ev.Op == fsnotify.Write {
						continue readLoop
					}
				}
				return nil
			}
			return fmt.Errorf("could not read entry data: %w", err)
		}
		x, err := strconv.ParseFloat(strings.TrimSpace(rec[0]), 64)
		if err != nil {
			log.Printf("failed parsing primary value %q: %v", rec[0], err)
			continue
		}
		for series := 1; series < len(rec) && series < len(headings); series++ {
			entry, err := ParseCell(x, rec[series])
			if err != nil {
				log.Printf("failed parsing cell [%d]=%q: %v", series, rec[series], err)
				continue
			}
			d.samples <- InputData{
				Kind: KindEntry,
				Record: Record{
					Series: series - 1,
					Entry:  entry,
				},
			}
		}
		d.signal()
	}
}

func (d *Datasource) readHeadings(csvReader *csv.Reader, follow bool) ([]string, error) {
	for {
		headings, err := csvReader.Read()
		if err == nil {
			if len(headings) < 2 {
				return nil, fmt.Errorf("heading row needs an x column and at least one data set, got %d columns", len(headings))
			}
			return headings, nil
		}
		if !errors.Is(err, io.EOF) || !follow {
			return nil, fmt.Errorf("could not read CSV headings: %w", err)
		}
		for ev := range d.watcher.Events {
			if ev.Op == fsnotify.Write {
				break
			}
		}
	}
}

func (d *Datasource) signal() {
	if d.invalidate != nil {
		d.invalidate()
	}
}

// ParseCell parses one CSV cell into an entry at primary value x. An
// empty cell is a hole (nil entry, nil error).
func ParseCell(x float64, cell string) (*chartdata.Entry, error) {
	cell = strings.TrimSpace(cell)
	if cell == "" {
		return nil, nil
	}
	if strings.Contains(cell, ";") {
		parts := strings.Split(cell, ";")
		components := make([]float64, 0, len(parts))
		for _, part := range parts {
			v, err := strconv.ParseFloat(strings.TrimSpace(part), 64)
			if err != nil {
				return nil, fmt.Errorf("bad stack component %q: %w", part, err)
			}
			components = append(components, v)
		}
		return chartdata.NewStackedEntry(x, components...), nil
	}
	if value, sizePart, found := strings.Cut(cell, "@"); found {
		y, err := strconv.ParseFloat(strings.TrimSpace(value), 64)
		if err != nil {
			return nil, fmt.Errorf("bad value %q: %w", value, err)
		}
		size, err := strconv.ParseFloat(strings.TrimSpace(sizePart), 64)
		if err != nil {
			return nil, fmt.Errorf("bad size %q: %w", sizePart, err)
		}
		return chartdata.NewBubbleEntry(x, y, size), nil
	}
	y, err := strconv.ParseFloat(cell, 64)
	if err != nil {
		return nil, fmt.Errorf("bad value %q: %w", cell, err)
	}
	return chartdata.NewEntry(x, y), nil
}

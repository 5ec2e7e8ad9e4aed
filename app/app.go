// Package app is the graph viewer: it loads dropped files into a surface, keeps a
// selection of series, and renders the selection on request.
package app

import (
	"fmt"

	"xgraph/dataset"
	"xgraph/graph"
	"xgraph/hal"
)

// statusTicks is how long a status message stays on screen, in clock ticks (ms).
const statusTicks = 4000

// Config configures the viewer.
type Config struct {
	Options dataset.Options
	View    dataset.View

	// File and Data are loaded at startup when Data is non-nil.
	File string
	Data []byte

	// Select is the selection applied after a load; nil selects every series.
	Select []int
	// RenderOnLoad renders the selection as soon as a file is loaded.
	RenderOnLoad bool
}

// DefaultConfig reads Shift-JIS CSV and renders every series on load.
func DefaultConfig() Config {
	return Config{
		Options:      dataset.DefaultOptions(),
		View:         dataset.DefaultView(),
		RenderOnLoad: true,
	}
}

// App is one viewer instance bound to a HAL.
type App struct {
	h       hal.HAL
	log     hal.Logger
	cfg     Config
	surface *graph.Surface
	ov      *overlay

	file    string
	checked []bool
	cursor  int

	now         uint64
	status      string
	statusUntil uint64

	dirty bool
}

// New creates the surface on the HAL's display, renders the empty axes and loads
// cfg.Data if set.
func New(h hal.HAL, cfg Config) (*App, error) {
	disp := h.Display()
	s, err := graph.Create(disp.GL())
	if err != nil {
		return nil, err
	}
	if err := s.Attach(disp.Canvas()); err != nil {
		return nil, fmt.Errorf("app: attach canvas: %w", err)
	}

	a := &App{
		h:       h,
		log:     h.Logger(),
		cfg:     cfg,
		surface: s,
		ov:      newOverlay(disp.Overlay()),
		dirty:   true,
	}
	if err := s.Render(); err != nil {
		return nil, fmt.Errorf("app: first render: %w", err)
	}
	if cfg.Data != nil {
		if err := a.Load(cfg.File, cfg.Data); err != nil {
			return nil, err
		}
	}
	a.redraw()
	return a, nil
}

// Runner adapts New to the hal runners. A setup failure is logged and returned
// from the first step.
func Runner(cfg Config) func(hal.HAL) func() error {
	return func(h hal.HAL) func() error {
		a, err := New(h, cfg)
		if err != nil {
			h.Logger().WriteLineString("xgraph: " + err.Error())
			return func() error { return err }
		}
		return a.Step
	}
}

func (a *App) Surface() *graph.Surface { return a.surface }
func (a *App) File() string            { return a.file }
func (a *App) Cursor() int             { return a.cursor }
func (a *App) Status() string          { return a.status }

func (a *App) logf(format string, args ...any) {
	a.log.WriteLineString("xgraph: " + fmt.Sprintf(format, args...))
}

func (a *App) setStatus(format string, args ...any) {
	a.status = fmt.Sprintf(format, args...)
	a.statusUntil = a.now + statusTicks
	a.dirty = true
}

// Step drains pending ticks, key presses and dropped files, then repaints the
// overlay if anything changed. Load and render failures are reported on screen
// and in the log; only a panic ends the run.
func (a *App) Step() (err error) {
	defer a.recoverPanic(&err)

	a.drainTicks()
	if a.status != "" && a.now >= a.statusUntil {
		a.status = ""
		a.dirty = true
	}

	in := a.h.Input()
	for drained := false; !drained; {
		select {
		case ev := <-in.Keyboard().Events():
			if ev.Press {
				a.handleKey(ev)
			}
		case d := <-in.Drops().Files():
			if err := a.Load(d.Name, d.Data); err != nil {
				a.logf("load: %v", err)
				a.setStatus("error: %v", err)
			}
		default:
			drained = true
		}
	}

	a.redraw()
	return nil
}

func (a *App) drainTicks() {
	t := a.h.Time()
	if t == nil {
		return
	}
	for {
		select {
		case seq := <-t.Ticks():
			a.now = seq
		default:
			return
		}
	}
}

func (a *App) redraw() {
	if !a.dirty {
		return
	}
	a.dirty = false
	if err := a.ov.draw(a); err != nil {
		a.logf("overlay: %v", err)
	}
}

// Load replaces the surface's series with the contents of a file. On failure the
// current series are kept.
func (a *App) Load(name string, data []byte) error {
	tab, err := dataset.Load(name, data, a.cfg.Options)
	if err != nil {
		return err
	}
	if err := dataset.Apply(a.surface, tab, a.cfg.View); err != nil {
		return err
	}

	a.file = name
	a.checked = make([]bool, a.surface.Len())
	a.cursor = 0
	if a.cfg.Select == nil {
		a.SelectAll()
	} else {
		for _, i := range a.cfg.Select {
			if i >= 0 && i < len(a.checked) {
				a.checked[i] = true
			}
		}
	}
	a.logf("loaded %s: %d series, %d rows", name, len(tab.Names), tab.Rows())
	a.setStatus("loaded %s", name)

	if a.cfg.RenderOnLoad {
		return a.RenderSelection()
	}
	return nil
}

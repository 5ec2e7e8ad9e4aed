package hal

import (
	"context"
	"fmt"
	"image"
	"image/png"
	"io"
	"os"
	"time"

	"golang.org/x/image/draw"

	"xgraph/gl"
)

// HeadlessConfig controls the no-window host runner.
type HeadlessConfig struct {
	Enabled    bool
	Hz         int
	Ticks      uint64
	StepBudget int

	Width  int
	Height int
	// Scale resizes the PNG snapshot; 0 or 1 keeps the canvas size.
	Scale float64
	// Output, when set, receives a PNG snapshot once the runner stops.
	Output string
	// Log receives log lines; nil means stdout.
	Log io.Writer
}

// Headless is a window-less HAL. Drawing goes through the software context into an
// in-memory canvas; input is injected by the caller.
type Headless struct {
	*hostHAL
	canvas *hostFramebuffer
	cfg    HeadlessConfig
}

// NewHeadless allocates a headless HAL. A zero size defaults to 800x600.
func NewHeadless(cfg HeadlessConfig) *Headless {
	if cfg.Width <= 0 || cfg.Height <= 0 {
		cfg.Width, cfg.Height = 800, 600
	}
	canvas := newHostFramebuffer(cfg.Width, cfg.Height)
	overlay := newHostFramebuffer(cfg.Width, cfg.Height)
	return &Headless{
		hostHAL: newHost(cfg.Log, gl.NewSoft(), canvas, overlay),
		canvas:  canvas,
		cfg:     cfg,
	}
}

// PressKey queues a key press. It reports false when the queue is full.
func (h *Headless) PressKey(ev KeyEvent) bool {
	ev.Press = true
	return h.kbd.push(ev)
}

// DropFile queues a dropped file.
func (h *Headless) DropFile(name string, data []byte) bool {
	return h.drops.push(Drop{Name: name, Data: data})
}

// Advance emits n clock ticks.
func (h *Headless) Advance(n uint64) { h.t.stepN(n) }

// Snapshot composites the overlay over the canvas.
func (h *Headless) Snapshot() *image.RGBA {
	dst := h.canvas.image()
	draw.Draw(dst, dst.Bounds(), h.disp.overlay.image(), image.Point{}, draw.Over)
	if h.cfg.Scale <= 0 || h.cfg.Scale == 1 {
		return dst
	}
	w := int(float64(dst.Bounds().Dx()) * h.cfg.Scale)
	ht := int(float64(dst.Bounds().Dy()) * h.cfg.Scale)
	if w < 1 || ht < 1 {
		return dst
	}
	scaled := image.NewRGBA(image.Rect(0, 0, w, ht))
	draw.NearestNeighbor.Scale(scaled, scaled.Bounds(), dst, dst.Bounds(), draw.Src, nil)
	return scaled
}

// WritePNG encodes Snapshot as PNG.
func (h *Headless) WritePNG(w io.Writer) error {
	return png.Encode(w, h.Snapshot())
}

func (h *Headless) writeOutput() error {
	if h.cfg.Output == "" {
		return nil
	}
	f, err := os.Create(h.cfg.Output)
	if err != nil {
		return fmt.Errorf("hal: snapshot: %w", err)
	}
	if err := h.WritePNG(f); err != nil {
		f.Close()
		return fmt.Errorf("hal: snapshot: %w", err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("hal: snapshot: %w", err)
	}
	h.logger.WriteLineString("hal: wrote " + h.cfg.Output)
	return nil
}

// RunHeadless runs the app without opening a window.
func RunHeadless(ctx context.Context, newApp func(HAL) func() error, cfg HeadlessConfig) error {
	if cfg.Hz <= 0 {
		cfg.Hz = 60
	}
	if cfg.StepBudget <= 0 {
		cfg.StepBudget = 1
	}

	h := NewHeadless(cfg)
	step := newApp(h)

	d := time.Second / time.Duration(cfg.Hz)
	if d <= 0 {
		return fmt.Errorf("invalid headless hz: %d", cfg.Hz)
	}
	t := time.NewTicker(d)
	defer t.Stop()

	var tick uint64
	for {
		select {
		case <-ctx.Done():
			if err := h.writeOutput(); err != nil {
				return err
			}
			return ctx.Err()
		case <-t.C:
			h.t.step(1)
			for i := 0; i < cfg.StepBudget && step != nil; i++ {
				if err := step(); err != nil {
					return err
				}
			}
			tick++
			if cfg.Ticks > 0 && tick >= cfg.Ticks {
				return h.writeOutput()
			}
		}
	}
}

//go:build cgo || js

package hal

import (
	"io/fs"
	"path"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"xgraph/gl"
	"xgraph/internal/buildinfo"
)

// WindowConfig sizes the desktop (or browser) window.
type WindowConfig struct {
	Width  int
	Height int
	Title  string
}

// RunWindow opens a window that shows the GPU canvas with the overlay on top and
// forwards keyboard input and dropped files. It blocks until the window closes.
func RunWindow(cfg WindowConfig, newApp func(HAL) func() error) error {
	if cfg.Width <= 0 || cfg.Height <= 0 {
		cfg.Width, cfg.Height = 800, 600
	}
	if cfg.Title == "" {
		cfg.Title = "xgraph"
	}

	canvas := gl.NewImageCanvas(cfg.Width, cfg.Height)
	h := newHost(nil, gl.NewEbiten(), canvas, newHostFramebuffer(cfg.Width, cfg.Height))

	g := &hostGame{h: h, canvas: canvas, newApp: newApp}
	ebiten.SetWindowTitle(cfg.Title + " (" + buildinfo.Short() + ")")
	ebiten.SetWindowSize(cfg.Width, cfg.Height)
	ebiten.SetTPS(60)
	return ebiten.RunGame(g)
}

type hostGame struct {
	h       *hostHAL
	canvas  *gl.ImageCanvas
	overlay *ebiten.Image
	scratch []byte

	// newApp is called on the first Update.
	newApp func(HAL) func() error
	step   func() error
}

func (g *hostGame) Update() error {
	if g.newApp != nil {
		g.step = g.newApp(g.h)
		g.newApp = nil
	}
	pollKeyboard(g.h.kbd)
	pollDrops(g.h.drops, g.h.logger)
	g.h.t.step(1)
	if g.step != nil {
		if err := g.step(); err != nil {
			return err
		}
	}
	return nil
}

func (g *hostGame) Draw(screen *ebiten.Image) {
	screen.DrawImage(g.canvas.Image, nil)

	fb := g.h.disp.overlay
	if g.overlay == nil {
		g.overlay = ebiten.NewImage(fb.Width(), fb.Height())
		g.scratch = make([]byte, len(fb.Buffer()))
	}
	if fb.snapshot(g.scratch) {
		g.overlay.WritePixels(g.scratch)
	}
	screen.DrawImage(g.overlay, nil)
}

func (g *hostGame) Layout(outsideWidth, outsideHeight int) (int, int) {
	return g.canvas.Size()
}

var navKeys = []struct {
	key  ebiten.Key
	code KeyCode
}{
	{ebiten.KeyArrowUp, KeyUp},
	{ebiten.KeyArrowDown, KeyDown},
	{ebiten.KeyArrowLeft, KeyLeft},
	{ebiten.KeyArrowRight, KeyRight},
	{ebiten.KeyEnter, KeyEnter},
	{ebiten.KeyNumpadEnter, KeyEnter},
	{ebiten.KeyEscape, KeyEscape},
	{ebiten.KeySpace, KeySpace},
	{ebiten.KeyDelete, KeyDelete},
	{ebiten.KeyHome, KeyHome},
	{ebiten.KeyEnd, KeyEnd},
}

func pollKeyboard(k *hostKeyboard) {
	// Space arrives as KeySpace below.
	for _, r := range ebiten.AppendInputChars(nil) {
		if r == ' ' {
			continue
		}
		k.push(KeyEvent{Press: true, Rune: r})
	}

	for _, nk := range navKeys {
		if inpututil.IsKeyJustPressed(nk.key) {
			k.push(KeyEvent{Code: nk.code, Press: true})
		}
		if inpututil.IsKeyJustReleased(nk.key) {
			k.push(KeyEvent{Code: nk.code, Press: false})
		}
	}
}

func pollDrops(d *hostDrops, logger Logger) {
	files := ebiten.DroppedFiles()
	if files == nil {
		return
	}
	err := fs.WalkDir(files, ".", func(p string, e fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if e.IsDir() {
			return nil
		}
		data, err := fs.ReadFile(files, p)
		if err != nil {
			return err
		}
		if !d.push(Drop{Name: path.Base(p), Data: data}) {
			logger.WriteLineString("hal: drop queue full, skipped " + p)
		}
		return nil
	})
	if err != nil {
		logger.WriteLineString("hal: read dropped files: " + err.Error())
	}
}

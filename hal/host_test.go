package hal

import (
	"bytes"
	"context"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"xgraph/gl"
)

func TestHeadlessDisplay(t *testing.T) {
	h := NewHeadless(HeadlessConfig{Width: 32, Height: 16})
	d := h.Display()

	w, ht := d.Canvas().Size()
	assert.Equal(t, 32, w)
	assert.Equal(t, 16, ht)
	assert.Equal(t, gl.LanguageGLSL, d.GL().Language())

	ov := d.Overlay()
	assert.Equal(t, PixelFormatRGBA8888, ov.Format())
	assert.Equal(t, 32*4, ov.StrideBytes())
	assert.Len(t, ov.Buffer(), 32*16*4)

	def := NewHeadless(HeadlessConfig{})
	w, ht = def.Display().Canvas().Size()
	assert.Equal(t, []int{800, 600}, []int{w, ht})
}

func TestHeadlessInput(t *testing.T) {
	h := NewHeadless(HeadlessConfig{Width: 4, Height: 4})

	require.True(t, h.PressKey(KeyEvent{Rune: '3'}))
	require.True(t, h.PressKey(KeyEvent{Code: KeyEnter}))
	ev := <-h.Input().Keyboard().Events()
	assert.Equal(t, KeyEvent{Press: true, Rune: '3'}, ev)
	ev = <-h.Input().Keyboard().Events()
	assert.Equal(t, KeyEnter, ev.Code)

	require.True(t, h.DropFile("a.csv", []byte("x")))
	f := <-h.Input().Drops().Files()
	assert.Equal(t, "a.csv", f.Name)
	assert.Equal(t, []byte("x"), f.Data)

	for i := 0; i < 8; i++ {
		h.DropFile("f", nil)
	}
	assert.False(t, h.DropFile("overflow", nil))
}

func TestHeadlessTicks(t *testing.T) {
	h := NewHeadless(HeadlessConfig{Width: 4, Height: 4})
	h.Advance(3)
	ticks := h.Time().Ticks()
	assert.Equal(t, uint64(1), <-ticks)
	assert.Equal(t, uint64(2), <-ticks)
	assert.Equal(t, uint64(3), <-ticks)
}

func TestHostTimeFollowsClock(t *testing.T) {
	now := time.Unix(0, 0)
	ht := newHostTime()
	ht.now = func() time.Time { return now }

	ht.step(1)
	assert.Len(t, ht.ch, 1)

	now = now.Add(5*time.Millisecond + 500*time.Microsecond)
	ht.step(1)
	assert.Len(t, ht.ch, 6)

	now = now.Add(600 * time.Microsecond)
	ht.step(1)
	assert.Len(t, ht.ch, 7)
}

func TestSnapshotComposite(t *testing.T) {
	h := NewHeadless(HeadlessConfig{Width: 4, Height: 4})
	white := color.RGBA{0xff, 0xff, 0xff, 0xff}
	red := color.RGBA{R: 0xff, A: 0xff}

	h.Display().Overlay().(*hostFramebuffer).Clear(color.RGBA{})
	h.canvas.Clear(white)
	h.Display().Overlay().SetPixel(1, 2, red)
	h.Display().Overlay().SetPixel(-1, 99, red)

	img := h.Snapshot()
	assert.Equal(t, red, img.RGBAAt(1, 2))
	assert.Equal(t, white, img.RGBAAt(0, 0))

	h.cfg.Scale = 2
	img = h.Snapshot()
	assert.Equal(t, 8, img.Bounds().Dx())
	assert.Equal(t, red, img.RGBAAt(2, 4))
}

func TestFramebufferPresent(t *testing.T) {
	fb := newHostFramebuffer(2, 2)
	dst := make([]byte, len(fb.Buffer()))
	assert.False(t, fb.snapshot(dst))

	fb.SetPixel(0, 0, color.RGBA{G: 9, A: 0xff})
	require.NoError(t, fb.Present())
	assert.True(t, fb.snapshot(dst))
	assert.Equal(t, byte(9), dst[1])
	assert.False(t, fb.snapshot(dst))
}

func TestLoggerWritesLines(t *testing.T) {
	var buf bytes.Buffer
	h := NewHeadless(HeadlessConfig{Width: 1, Height: 1, Log: &buf})
	h.Logger().WriteLineString("one")
	h.Logger().WriteLineBytes([]byte("two"))
	assert.Equal(t, "one\ntwo\n", buf.String())
}

func TestRunHeadlessWritesSnapshot(t *testing.T) {
	out := filepath.Join(t.TempDir(), "out.png")
	var log bytes.Buffer
	steps := 0
	err := RunHeadless(context.Background(), func(h HAL) func() error {
		return func() error {
			steps++
			return nil
		}
	}, HeadlessConfig{Hz: 1000, Ticks: 3, StepBudget: 2, Width: 10, Height: 6, Output: out, Log: &log})
	require.NoError(t, err)
	assert.Equal(t, 6, steps)

	f, err := os.Open(out)
	require.NoError(t, err)
	defer f.Close()
	img, err := png.Decode(f)
	require.NoError(t, err)
	assert.Equal(t, 10, img.Bounds().Dx())
	assert.Equal(t, 6, img.Bounds().Dy())
	assert.Contains(t, log.String(), "hal: wrote")
}

func TestRunHeadlessCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	err := RunHeadless(ctx, func(HAL) func() error { return nil }, HeadlessConfig{Width: 2, Height: 2, Log: &bytes.Buffer{}})
	assert.ErrorIs(t, err, context.Canceled)
}

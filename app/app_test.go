package app

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"xgraph/gl"
	"xgraph/graph"
	"xgraph/hal"
)

const threeSeries = "date,time,a,b,c\n" +
	"d,t,1,2,3\n" +
	"d,t,2,3,4\n" +
	"d,t,3,4,5\n"

func testConfig() Config {
	cfg := DefaultConfig()
	cfg.Options.Encoding = "utf-8"
	return cfg
}

func newTestApp(t *testing.T, cfg Config) (*App, *hal.Headless, *gl.Soft, *bytes.Buffer) {
	t.Helper()
	var log bytes.Buffer
	h := hal.NewHeadless(hal.HeadlessConfig{Width: 160, Height: 120, Log: &log})
	a, err := New(h, cfg)
	require.NoError(t, err)
	ctx, ok := h.Display().GL().(*gl.Soft)
	require.True(t, ok)
	return a, h, ctx, &log
}

func draws(ctx *gl.Soft) []gl.Call {
	var out []gl.Call
	for _, c := range ctx.Calls() {
		if c.Op == gl.OpDraw {
			out = append(out, c)
		}
	}
	return out
}

func TestNewRendersAxes(t *testing.T) {
	a, h, ctx, _ := newTestApp(t, testConfig())
	assert.Len(t, ctx.Calls(), 3)
	assert.Len(t, draws(ctx), 2)
	assert.Empty(t, a.File())
	assert.Empty(t, a.Selected())

	// Panel background behind the list.
	buf := h.Display().Overlay().Buffer()
	assert.Equal(t, []byte{0xe8, 0xe8, 0xe8, 0xe8}, buf[0:4])
}

func TestLoadRendersEverySeries(t *testing.T) {
	cfg := testConfig()
	cfg.File, cfg.Data = "log.csv", []byte(threeSeries)
	a, _, ctx, log := newTestApp(t, cfg)

	assert.Equal(t, "log.csv", a.File())
	assert.Equal(t, []string{"a", "b", "c"}, a.Surface().Names())
	assert.Equal(t, []int{0, 1, 2}, a.Selected())
	assert.False(t, a.Surface().AutoClear())

	// Initial axes, then one clear and three passes of series + two axes.
	calls := ctx.Calls()
	require.Len(t, calls, 3+1+9)
	assert.Equal(t, gl.OpClear, calls[3].Op)
	assert.Equal(t, [4]float32{1, 0, 0, 1}, calls[4].Color)
	assert.Equal(t, [4]float32{0, 1, 0, 1}, calls[7].Color)
	assert.Equal(t, [4]float32{0, 0, 1, 1}, calls[10].Color)
	assert.Contains(t, log.String(), "xgraph: loaded log.csv: 3 series, 3 rows")
	assert.Equal(t, "loaded log.csv", a.Status())
}

func TestLoadSelection(t *testing.T) {
	cfg := testConfig()
	cfg.File, cfg.Data = "log.csv", []byte(threeSeries)
	cfg.Select = []int{1, 7}
	cfg.RenderOnLoad = false
	a, _, ctx, _ := newTestApp(t, cfg)

	assert.Equal(t, []int{1}, a.Selected())
	assert.Len(t, ctx.Calls(), 3)
}

func TestKeysToggleAndRender(t *testing.T) {
	cfg := testConfig()
	cfg.File, cfg.Data = "log.csv", []byte(threeSeries)
	a, h, ctx, _ := newTestApp(t, cfg)
	ctx.ResetCalls()

	h.PressKey(hal.KeyEvent{Rune: '2'})
	h.PressKey(hal.KeyEvent{Rune: '9'})
	require.NoError(t, a.Step())
	assert.Equal(t, []int{0, 2}, a.Selected())
	assert.Empty(t, ctx.Calls())

	h.PressKey(hal.KeyEvent{Code: hal.KeyEnter})
	require.NoError(t, a.Step())
	calls := ctx.Calls()
	require.Len(t, calls, 1+6)
	assert.Equal(t, gl.OpClear, calls[0].Op)
	assert.Equal(t, [4]float32{1, 0, 0, 1}, calls[1].Color)
	assert.Equal(t, [4]float32{0, 0, 1, 1}, calls[4].Color)
	assert.Equal(t, "rendered 2 of 3 series", a.Status())
}

func TestKeysCursor(t *testing.T) {
	cfg := testConfig()
	cfg.File, cfg.Data = "log.csv", []byte(threeSeries)
	a, h, _, _ := newTestApp(t, cfg)

	h.PressKey(hal.KeyEvent{Rune: 'n'})
	h.PressKey(hal.KeyEvent{Code: hal.KeyDown})
	h.PressKey(hal.KeyEvent{Code: hal.KeySpace})
	require.NoError(t, a.Step())
	assert.Equal(t, 1, a.Cursor())
	assert.Equal(t, []int{1}, a.Selected())

	h.PressKey(hal.KeyEvent{Code: hal.KeyEnd})
	h.PressKey(hal.KeyEvent{Code: hal.KeyDown})
	require.NoError(t, a.Step())
	assert.Equal(t, 2, a.Cursor())

	h.PressKey(hal.KeyEvent{Code: hal.KeyHome})
	h.PressKey(hal.KeyEvent{Code: hal.KeyUp})
	h.PressKey(hal.KeyEvent{Rune: 'a'})
	require.NoError(t, a.Step())
	assert.Equal(t, 0, a.Cursor())
	assert.Equal(t, []int{0, 1, 2}, a.Selected())
}

func TestRenderNothingSelected(t *testing.T) {
	cfg := testConfig()
	cfg.File, cfg.Data = "log.csv", []byte(threeSeries)
	a, h, ctx, _ := newTestApp(t, cfg)
	ctx.ResetCalls()

	h.PressKey(hal.KeyEvent{Rune: 'n'})
	h.PressKey(hal.KeyEvent{Code: hal.KeyEnter})
	require.NoError(t, a.Step())
	assert.Len(t, ctx.Calls(), 3)
	assert.Len(t, draws(ctx), 2)
}

func TestClearKey(t *testing.T) {
	a, h, ctx, _ := newTestApp(t, testConfig())
	ctx.ResetCalls()
	h.PressKey(hal.KeyEvent{Rune: 'c'})
	require.NoError(t, a.Step())
	assert.Len(t, ctx.Calls(), 3)
	assert.True(t, a.Surface().AutoClear())
}

func TestDeleteKeyRemovesSeries(t *testing.T) {
	cfg := testConfig()
	cfg.File, cfg.Data = "log.csv", []byte(threeSeries)
	a, h, _, _ := newTestApp(t, cfg)

	h.PressKey(hal.KeyEvent{Code: hal.KeyEnd})
	h.PressKey(hal.KeyEvent{Code: hal.KeyDelete})
	require.NoError(t, a.Step())
	assert.Equal(t, []string{"a", "b"}, a.Surface().Names())
	assert.Equal(t, 1, a.Cursor())
	assert.Equal(t, []int{0, 1}, a.Selected())
	assert.Equal(t, "removed c", a.Status())

	// Empty list: delete is a no-op.
	empty, h2, _, _ := newTestApp(t, testConfig())
	h2.PressKey(hal.KeyEvent{Code: hal.KeyDelete})
	require.NoError(t, empty.Step())
}

func TestDropReplacesSeries(t *testing.T) {
	cfg := testConfig()
	cfg.File, cfg.Data = "log.csv", []byte(threeSeries)
	a, h, _, log := newTestApp(t, cfg)

	h.DropFile("other.csv", []byte("l,l,x\n1,1,9\n"))
	require.NoError(t, a.Step())
	assert.Equal(t, "other.csv", a.File())
	assert.Equal(t, []string{"x"}, a.Surface().Names())
	assert.Equal(t, 1.0, a.Surface().Window().MaxX)
	assert.Contains(t, log.String(), "xgraph: loaded other.csv")
}

func TestDropFailureKeepsSeries(t *testing.T) {
	cfg := testConfig()
	cfg.File, cfg.Data = "log.csv", []byte(threeSeries)
	a, h, _, log := newTestApp(t, cfg)

	h.DropFile("empty.csv", nil)
	require.NoError(t, a.Step())
	assert.Equal(t, "log.csv", a.File())
	assert.Len(t, a.Surface().Names(), 3)
	assert.True(t, strings.HasPrefix(a.Status(), "error:"))
	assert.Contains(t, log.String(), "xgraph: load: empty.csv")
}

func TestLoadRejectedRangeKeepsSeries(t *testing.T) {
	cfg := testConfig()
	cfg.File, cfg.Data = "log.csv", []byte(threeSeries)
	a, _, _, _ := newTestApp(t, cfg)
	window := a.Surface().Window()

	a.cfg.View.MinY, a.cfg.View.MaxY = 1, 1
	err := a.Load("b.csv", []byte("l,l,x\n1,1,9\n"))
	require.ErrorIs(t, err, graph.ErrDomain)

	assert.Equal(t, "log.csv", a.File())
	assert.Equal(t, []string{"a", "b", "c"}, a.Surface().Names())
	assert.Equal(t, []int{0, 1, 2}, a.Selected())
	assert.Equal(t, window, a.Surface().Window())

	require.NoError(t, a.RemoveAtCursor())
	assert.Equal(t, []string{"b", "c"}, a.Surface().Names())
}

func TestStatusExpires(t *testing.T) {
	cfg := testConfig()
	cfg.File, cfg.Data = "log.csv", []byte(threeSeries)
	a, h, _, _ := newTestApp(t, cfg)
	require.NotEmpty(t, a.Status())

	for i := 0; i < 3; i++ {
		h.Advance(1000)
		require.NoError(t, a.Step())
	}
	assert.NotEmpty(t, a.Status())

	for i := 0; i < 2; i++ {
		h.Advance(1000)
		require.NoError(t, a.Step())
	}
	assert.Empty(t, a.Status())
}

func TestRunnerReportsSetupError(t *testing.T) {
	var log bytes.Buffer
	h := hal.NewHeadless(hal.HeadlessConfig{Width: 8, Height: 8, Log: &log})
	cfg := testConfig()
	cfg.File, cfg.Data = "empty.csv", []byte{}

	step := Runner(cfg)(h)
	require.NotNil(t, step)
	assert.Error(t, step())
	assert.Contains(t, log.String(), "xgraph: empty.csv")
}

type noInput struct{ *hal.Headless }

func (noInput) Input() hal.Input { return nil }

func TestStepRecoversPanic(t *testing.T) {
	var log bytes.Buffer
	h := hal.NewHeadless(hal.HeadlessConfig{Width: 64, Height: 64, Log: &log})
	a, err := New(noInput{h}, testConfig())
	require.NoError(t, err)

	err = a.Step()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "app: panic")
	assert.Contains(t, log.String(), "xgraph: panic:")

	buf := h.Display().Overlay().Buffer()
	assert.Equal(t, byte(0xff), buf[len(buf)-1])
}

func TestPanicLinesFitScreen(t *testing.T) {
	stack := []byte("goroutine 1 [running]:\n\tmain.go:12\n\nxgraph/app.(*App).Step()\n")

	all := panicLines("boom", stack, 40, 100)
	assert.Equal(t, []string{
		"xgraph panic:",
		"panic: boom",
		"stack:",
		"goroutine 1 [running]:",
		"  main.go:12",
		"xgraph/app.(*App).Step()",
	}, all)

	// Ten cells wide the first four lines take 2, 2, 1 and 3 rows.
	assert.Equal(t, all[:3], panicLines("boom", stack, 10, 7))
	assert.Equal(t, all[:4], panicLines("boom", stack, 10, 8))

	assert.Equal(t, []string{"xgraph panic:", "panic: x", "stack: unavailable"}, panicLines("x", nil, 80, 10))
	assert.Empty(t, panicLines("x", nil, 80, 0))
}

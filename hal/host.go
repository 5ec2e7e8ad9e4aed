package hal

import (
	"fmt"
	"io"
	"os"
	"sync"

	"xgraph/gl"
)

type hostHAL struct {
	logger *hostLogger
	disp   hostDisplay
	kbd    *hostKeyboard
	drops  *hostDrops
	t      *hostTime
}

func newHost(w io.Writer, ctx gl.Context, canvas gl.Canvas, overlay *hostFramebuffer) *hostHAL {
	if w == nil {
		w = os.Stdout
	}
	return &hostHAL{
		logger: &hostLogger{w: w},
		disp:   hostDisplay{ctx: ctx, canvas: canvas, overlay: overlay},
		kbd:    newHostKeyboard(),
		drops:  newHostDrops(),
		t:      newHostTime(),
	}
}

func (h *hostHAL) Logger() Logger   { return h.logger }
func (h *hostHAL) Display() Display { return h.disp }
func (h *hostHAL) Input() Input     { return hostInput{kbd: h.kbd, drops: h.drops} }
func (h *hostHAL) Time() Time       { return h.t }

type hostDisplay struct {
	ctx     gl.Context
	canvas  gl.Canvas
	overlay *hostFramebuffer
}

func (d hostDisplay) GL() gl.Context       { return d.ctx }
func (d hostDisplay) Canvas() gl.Canvas    { return d.canvas }
func (d hostDisplay) Overlay() Framebuffer { return d.overlay }

type hostInput struct {
	kbd   *hostKeyboard
	drops *hostDrops
}

func (in hostInput) Keyboard() Keyboard { return in.kbd }
func (in hostInput) Drops() Drops       { return in.drops }

type hostLogger struct {
	mu sync.Mutex
	w  io.Writer
}

func (l *hostLogger) WriteLineString(s string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	fmt.Fprintln(l.w, s)
}

func (l *hostLogger) WriteLineBytes(b []byte) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.w.Write(b)
	l.w.Write([]byte{'\n'})
}

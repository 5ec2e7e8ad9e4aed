package hal

import (
	"errors"
	"image/color"

	"xgraph/gl"
)

// Logger writes newline-delimited log lines.
type Logger interface {
	WriteLineString(s string)
	WriteLineBytes(b []byte)
}

var ErrNoWindow = errors.New("hal: window mode requires cgo (build/run with CGO_ENABLED=1)")

// PixelFormat defines the framebuffer pixel encoding.
type PixelFormat uint8

const (
	// PixelFormatRGBA8888 is 32bpp premultiplied R,G,B,A bytes.
	PixelFormatRGBA8888 PixelFormat = iota + 1
)

// Framebuffer is a simple pixel buffer plus a "present" hook.
//
// It doubles as a gl.Target, so the software context can rasterize into it.
type Framebuffer interface {
	Width() int
	Height() int
	Size() (w, h int)
	Format() PixelFormat
	StrideBytes() int
	Buffer() []byte
	SetPixel(x, y int, c color.RGBA)
	Clear(c color.RGBA)
	Present() error
}

// KeyCode is a minimal key identifier.
type KeyCode uint16

const (
	KeyUnknown KeyCode = iota
	KeyUp
	KeyDown
	KeyLeft
	KeyRight
	KeyEnter
	KeyEscape
	KeySpace
	KeyDelete
	KeyHome
	KeyEnd
)

// KeyEvent is a keyboard event. Printable keys carry Rune with Code KeyUnknown.
type KeyEvent struct {
	Code  KeyCode
	Press bool
	Rune  rune
}

// Keyboard provides key events (best-effort on each platform).
type Keyboard interface {
	Events() <-chan KeyEvent
}

// Drop is a file dropped onto the window.
type Drop struct {
	Name string
	Data []byte
}

// Drops delivers dropped files.
type Drops interface {
	Files() <-chan Drop
}

// Display provides the drawing context, the canvas it renders into and a text
// overlay composited above it.
type Display interface {
	GL() gl.Context
	Canvas() gl.Canvas
	Overlay() Framebuffer
}

// Input provides access to input devices (if available).
type Input interface {
	Keyboard() Keyboard
	Drops() Drops
}

// Time provides a base tick stream of one tick per millisecond.
type Time interface {
	Ticks() <-chan uint64
}

// HAL provides the only contact point between the application and the outside world.
type HAL interface {
	Logger() Logger
	Display() Display
	Input() Input
	Time() Time
}

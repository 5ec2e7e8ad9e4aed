package app

import (
	"fmt"
	"image/color"
	"strings"

	"tinygo.org/x/drivers"
	"tinygo.org/x/tinyfont"
	"tinygo.org/x/tinyfont/proggy"
	"tinygo.org/x/tinyterm"

	"xgraph/gl"
	"xgraph/hal"
)

var (
	colorClear   = color.RGBA{}
	colorPanelBG = color.RGBA{R: 0xe8, G: 0xe8, B: 0xe8, A: 0xe8}
	colorFG      = color.RGBA{R: 0x11, G: 0x11, B: 0x11, A: 0xff}
	colorDim     = color.RGBA{R: 0x66, G: 0x66, B: 0x66, A: 0xff}
	colorSelBG   = color.RGBA{R: 0x33, G: 0x33, B: 0x33, A: 0xff}
	colorSelFG   = color.RGBA{R: 0xee, G: 0xee, B: 0xee, A: 0xff}
	colorError   = color.RGBA{R: 0xc0, G: 0x10, B: 0x10, A: 0xff}
)

const helpLine = "1-9/space toggle  a all  n none  enter render  c clear  del remove"

// fbDisplay draws tinyfont text into a hal framebuffer.
type fbDisplay struct {
	fb hal.Framebuffer
}

var _ tinyterm.Displayer = (*fbDisplay)(nil)

func (d *fbDisplay) Size() (x, y int16) {
	if d.fb == nil {
		return 0, 0
	}
	return int16(d.fb.Width()), int16(d.fb.Height())
}

func (d *fbDisplay) SetPixel(x, y int16, c color.RGBA) {
	if d.fb == nil {
		return
	}
	d.fb.SetPixel(int(x), int(y), c)
}

func (d *fbDisplay) Display() error {
	if d.fb == nil {
		return nil
	}
	return d.fb.Present()
}

// The framebuffer has no hardware scroll or rotation.
func (d *fbDisplay) SetScroll(int16)                    {}
func (d *fbDisplay) SetRotation(drivers.Rotation) error { return nil }

func (d *fbDisplay) FillRectangle(x, y, width, height int16, c color.RGBA) error {
	if d.fb == nil {
		return nil
	}
	w, h := d.fb.Width(), d.fb.Height()
	x0 := clampInt(int(x), 0, w)
	y0 := clampInt(int(y), 0, h)
	x1 := clampInt(int(x)+int(width), 0, w)
	y1 := clampInt(int(y)+int(height), 0, h)
	for py := y0; py < y1; py++ {
		for px := x0; px < x1; px++ {
			d.fb.SetPixel(px, py, c)
		}
	}
	return nil
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// overlay paints the series list, help and status text above the graph.
type overlay struct {
	d *fbDisplay

	font       *tinyfont.Font
	fontWidth  int16
	fontHeight int16
	fontOffset int16
}

func newOverlay(fb hal.Framebuffer) *overlay {
	o := &overlay{
		d:          &fbDisplay{fb: fb},
		font:       &proggy.TinySZ8pt7b,
		fontHeight: 12,
		fontOffset: 9,
	}
	_, outboxWidth := tinyfont.LineWidth(o.font, "0")
	o.fontWidth = int16(outboxWidth)
	return o
}

type overlayLine struct {
	text   string
	fg, bg color.RGBA
	swatch *color.RGBA
}

func (o *overlay) lines(a *App) []overlayLine {
	title := "drop a CSV or XLSX file"
	if a.file != "" {
		title = a.file
	}
	out := []overlayLine{{text: title, fg: colorFG}}

	for i, on := range a.checked {
		sr, err := a.surface.Series(i)
		if err != nil {
			break
		}
		box := "[ ]"
		if on {
			box = "[x]"
		}
		key := " "
		if i < 9 {
			key = fmt.Sprint(i + 1)
		}
		l := overlayLine{text: fmt.Sprintf("%s %s %s", key, box, sr.Name), fg: colorFG}
		if i == a.cursor {
			l.fg, l.bg = colorSelFG, colorSelBG
		}
		sw := gl.RGBA8(sr.Color)
		l.swatch = &sw
		out = append(out, l)
	}

	out = append(out, overlayLine{text: helpLine, fg: colorDim})
	if a.status != "" {
		fg := colorFG
		if strings.HasPrefix(a.status, "error:") {
			fg = colorError
		}
		out = append(out, overlayLine{text: a.status, fg: fg})
	}
	return out
}

func (o *overlay) draw(a *App) error {
	o.d.fb.Clear(colorClear)
	if o.fontWidth <= 0 {
		return o.d.Display()
	}

	lines := o.lines(a)
	const pad, swatchW = 4, 10
	width := int16(0)
	for _, l := range lines {
		_, w := tinyfont.LineWidth(o.font, l.text)
		width = max(width, int16(w)+swatchW+2)
	}
	height := int16(len(lines)) * o.fontHeight
	_ = o.d.FillRectangle(0, 0, width+2*pad, height+2*pad, colorPanelBG)

	y := int16(pad)
	for _, l := range lines {
		x := int16(pad)
		if l.bg.A != 0 {
			_ = o.d.FillRectangle(x, y, width, o.fontHeight, l.bg)
		}
		if l.swatch != nil {
			_ = o.d.FillRectangle(x, y+2, swatchW-2, o.fontHeight-4, *l.swatch)
			x += swatchW + 2
		}
		tinyfont.WriteLine(o.d, o.font, x, y+o.fontOffset, l.text, l.fg)
		y += o.fontHeight
	}
	return o.d.Display()
}

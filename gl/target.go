package gl

import (
	"image"
	"image/color"
)

// Target is a pixel target for the software backend.
//
// Implementations should clip out-of-bounds coordinates.
type Target interface {
	Size() (w, h int)
	SetPixel(x, y int, c color.RGBA)
	Clear(c color.RGBA)
}

// RGBATarget renders into an *image.RGBA.
type RGBATarget struct {
	Img *image.RGBA
}

// NewRGBATarget allocates a w x h RGBA target.
func NewRGBATarget(w, h int) *RGBATarget {
	return &RGBATarget{Img: image.NewRGBA(image.Rect(0, 0, w, h))}
}

func (t *RGBATarget) Size() (w, h int) {
	if t == nil || t.Img == nil {
		return 0, 0
	}
	b := t.Img.Bounds()
	return b.Dx(), b.Dy()
}

func (t *RGBATarget) Clear(c color.RGBA) {
	if t == nil || t.Img == nil {
		return
	}
	pix := t.Img.Pix
	for i := 0; i+3 < len(pix); i += 4 {
		pix[i+0] = c.R
		pix[i+1] = c.G
		pix[i+2] = c.B
		pix[i+3] = c.A
	}
}

func (t *RGBATarget) SetPixel(x, y int, c color.RGBA) {
	if t == nil || t.Img == nil {
		return
	}
	b := t.Img.Bounds()
	if x < 0 || y < 0 || x >= b.Dx() || y >= b.Dy() {
		return
	}
	t.Img.SetRGBA(b.Min.X+x, b.Min.Y+y, c)
}

// RGBA8 converts a normalized straight-alpha color to a premultiplied 8-bit color.
func RGBA8(c [4]float32) color.RGBA {
	a := clampF32(c[3], 0, 1)
	ch := func(v float32) uint8 {
		return uint8(clampF32(v, 0, 1)*a*255 + 0.5)
	}
	return color.RGBA{R: ch(c[0]), G: ch(c[1]), B: ch(c[2]), A: uint8(a*255 + 0.5)}
}

func clampF32(v, lo, hi float32) float32 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

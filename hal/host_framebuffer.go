package hal

import (
	"image"
	"image/color"
	"sync"
)

type hostFramebuffer struct {
	mu    sync.Mutex
	img   *image.RGBA
	dirty bool
}

func newHostFramebuffer(width, height int) *hostFramebuffer {
	return &hostFramebuffer{img: image.NewRGBA(image.Rect(0, 0, width, height))}
}

func (f *hostFramebuffer) Width() int          { return f.img.Rect.Dx() }
func (f *hostFramebuffer) Height() int         { return f.img.Rect.Dy() }
func (f *hostFramebuffer) Size() (int, int)    { return f.Width(), f.Height() }
func (f *hostFramebuffer) Format() PixelFormat { return PixelFormatRGBA8888 }
func (f *hostFramebuffer) StrideBytes() int    { return f.img.Stride }
func (f *hostFramebuffer) Buffer() []byte      { return f.img.Pix }

func (f *hostFramebuffer) SetPixel(x, y int, c color.RGBA) {
	if x < 0 || y < 0 || x >= f.Width() || y >= f.Height() {
		return
	}
	f.img.SetRGBA(x, y, c)
}

func (f *hostFramebuffer) Clear(c color.RGBA) {
	f.mu.Lock()
	defer f.mu.Unlock()

	pix := f.img.Pix
	for i := 0; i+3 < len(pix); i += 4 {
		pix[i+0] = c.R
		pix[i+1] = c.G
		pix[i+2] = c.B
		pix[i+3] = c.A
	}
}

func (f *hostFramebuffer) Present() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.dirty = true
	return nil
}

// snapshot copies the pixels into dst if they were presented since the last call.
func (f *hostFramebuffer) snapshot(dst []byte) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	if !f.dirty {
		return false
	}
	copy(dst, f.img.Pix)
	f.dirty = false
	return true
}

func (f *hostFramebuffer) image() *image.RGBA {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := image.NewRGBA(f.img.Rect)
	copy(out.Pix, f.img.Pix)
	return out
}

//go:build cgo || js

package gl

import (
	"errors"
	"math"

	"github.com/hajimehoshi/ebiten/v2"
)

// maxSegments keeps a batch's vertex indices within uint16.
const maxSegments = (1 << 16) / 4

// ImageCanvas is an offscreen ebiten image used as the drawing buffer.
type ImageCanvas struct {
	Image *ebiten.Image
}

// NewImageCanvas allocates a w x h offscreen canvas.
func NewImageCanvas(w, h int) *ImageCanvas {
	return &ImageCanvas{Image: ebiten.NewImage(w, h)}
}

func (c *ImageCanvas) Size() (w, h int) {
	if c == nil || c.Image == nil {
		return 0, 0
	}
	b := c.Image.Bounds()
	return b.Dx(), b.Dy()
}

// Ebiten is a GPU Context backed by ebiten. Fragment shaders are Kage programs; the
// vertex color reaches the fragment entry point as its color argument. Lines are
// expanded into quads LineWidth pixels wide.
type Ebiten struct {
	state

	LineWidth float32

	img   *ImageCanvas
	verts []ebiten.Vertex
	idx   []uint16
}

var _ Context = (*Ebiten)(nil)

func NewEbiten() *Ebiten {
	e := &Ebiten{LineWidth: 1}
	e.state = newState(e)
	return e
}

func (e *Ebiten) language() Language { return LanguageKage }

func (e *Ebiten) checkCanvas(c Canvas) error {
	ic, ok := c.(*ImageCanvas)
	if !ok || ic.Image == nil {
		return errors.New("gl: ebiten context needs an *ImageCanvas")
	}
	e.img = ic
	return nil
}

func (e *Ebiten) compileFragment(src string) (any, error) {
	return ebiten.NewShader([]byte(src))
}

func (e *Ebiten) clear(c [4]float32) error {
	e.img.Image.Fill(RGBA8(c))
	return nil
}

func (e *Ebiten) drawStrip(pts []float32, c [4]float32, vp Rect, fragment any) error {
	shader, ok := fragment.(*ebiten.Shader)
	if !ok || shader == nil {
		return ErrNoProgram
	}
	_, h := e.img.Size()

	// Premultiplied, as ebiten expects from a fragment program.
	a := clampF32(c[3], 0, 1)
	col := [4]float32{clampF32(c[0], 0, 1) * a, clampF32(c[1], 0, 1) * a, clampF32(c[2], 0, 1) * a, a}

	e.verts = e.verts[:0]
	e.idx = e.idx[:0]
	flush := func() {
		if len(e.idx) == 0 {
			return
		}
		e.img.Image.DrawTrianglesShader(e.verts, e.idx, shader, &ebiten.DrawTrianglesShaderOptions{
			Blend: ebiten.BlendCopy,
		})
		e.verts = e.verts[:0]
		e.idx = e.idx[:0]
	}

	for i := 0; i+1 < len(pts)/2; i++ {
		x0, y0, x1, y1, ok := clipSegment(pts[2*i], pts[2*i+1], pts[2*i+2], pts[2*i+3])
		if !ok {
			continue
		}
		ax, ay := ndcToScreen(x0, y0, vp, h)
		bx, by := ndcToScreen(x1, y1, vp, h)
		e.quad(ax, ay, bx, by, col)
		if len(e.idx)/6 >= maxSegments {
			flush()
		}
	}
	flush()
	return nil
}

// quad appends a LineWidth thick rectangle around the segment a-b.
func (e *Ebiten) quad(ax, ay, bx, by float32, c [4]float32) {
	dx, dy := bx-ax, by-ay
	l := float32(math.Hypot(float64(dx), float64(dy)))
	if l == 0 {
		dx, dy, l = 1, 0, 1
	}
	hw := e.LineWidth / 2
	nx, ny := -dy/l*hw, dx/l*hw

	base := uint16(len(e.verts))
	for _, p := range [4][2]float32{
		{ax + nx, ay + ny},
		{ax - nx, ay - ny},
		{bx + nx, by + ny},
		{bx - nx, by - ny},
	} {
		e.verts = append(e.verts, ebiten.Vertex{
			DstX:   p[0],
			DstY:   p[1],
			ColorR: c[0],
			ColorG: c[1],
			ColorB: c[2],
			ColorA: c[3],
		})
	}
	e.idx = append(e.idx, base, base+1, base+2, base+1, base+2, base+3)
}

// ndcToScreen maps NDC through a GL viewport into ebiten's top-left pixel space.
func ndcToScreen(x, y float32, vp Rect, h int) (float32, float32) {
	sx := float32(vp.X) + (x*0.5+0.5)*float32(vp.W)
	sy := float32(vp.Y) + (y*0.5+0.5)*float32(vp.H)
	return sx, float32(h) - sy
}

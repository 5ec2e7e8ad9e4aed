package gl

import (
	"errors"
	"image/color"
	"math"
	"regexp"
)

var reFragColor = regexp.MustCompile(`\bgl_FragColor\s*=`)

// Op identifies a recorded call.
type Op uint8

const (
	OpClear Op = iota + 1
	OpDraw
)

func (o Op) String() string {
	switch o {
	case OpClear:
		return "clear"
	case OpDraw:
		return "draw"
	default:
		return "unknown"
	}
}

// Call is one recorded clear or line strip draw.
type Call struct {
	Op     Op
	Count  int
	Color  [4]float32
	Points []float32
}

// Soft is a software Context. It only supports pass-through fragment shading: the
// fragment source must be GLSL with a main that writes gl_FragColor, and every pixel
// of a primitive gets the vertex color.
type Soft struct {
	state

	target Target
	calls  []Call
}

var _ Context = (*Soft)(nil)

// NewSoft returns a software context with no canvas attached.
func NewSoft() *Soft {
	s := &Soft{}
	s.state = newState(s)
	return s
}

// Calls returns the recorded clear and draw calls in issue order.
func (s *Soft) Calls() []Call {
	return append([]Call(nil), s.calls...)
}

// ResetCalls drops the call log.
func (s *Soft) ResetCalls() { s.calls = s.calls[:0] }

// Buffers reports how many buffer objects are alive.
func (s *Soft) Buffers() int { return s.liveBuffers() }

func (s *Soft) language() Language { return LanguageGLSL }

func (s *Soft) checkCanvas(c Canvas) error {
	t, ok := c.(Target)
	if !ok {
		return errors.New("gl: software context needs a Target canvas")
	}
	s.target = t
	return nil
}

func (s *Soft) compileFragment(src string) (any, error) {
	if !reMain.MatchString(src) {
		return nil, errors.New("fragment shader has no main")
	}
	if !reFragColor.MatchString(src) {
		return nil, errors.New("fragment shader does not write gl_FragColor")
	}
	return nil, nil
}

func (s *Soft) clear(c [4]float32) error {
	s.calls = append(s.calls, Call{Op: OpClear, Color: c})
	s.target.Clear(RGBA8(c))
	return nil
}

func (s *Soft) drawStrip(pts []float32, c [4]float32, vp Rect, _ any) error {
	s.calls = append(s.calls, Call{
		Op:     OpDraw,
		Count:  len(pts) / 2,
		Color:  c,
		Points: append([]float32(nil), pts...),
	})

	_, h := s.target.Size()
	px := RGBA8(c)
	for i := 0; i+1 < len(pts)/2; i++ {
		s.segment(pts[2*i], pts[2*i+1], pts[2*i+2], pts[2*i+3], vp, h, px)
	}
	return nil
}

func (s *Soft) segment(x0, y0, x1, y1 float32, vp Rect, h int, c color.RGBA) {
	x0, y0, x1, y1, ok := clipSegment(x0, y0, x1, y1)
	if !ok {
		return
	}
	ax, ay := ndcToPixel(x0, y0, vp, h)
	bx, by := ndcToPixel(x1, y1, vp, h)
	drawLine(s.target, ax, ay, bx, by, c)
}

// ndcToPixel maps NDC through the viewport into top-left origin pixel coordinates
// of a target h pixels tall.
func ndcToPixel(x, y float32, vp Rect, h int) (int, int) {
	fx := float32(vp.X) + (x*0.5+0.5)*float32(vp.W-1)
	fy := float32(vp.Y) + (y*0.5+0.5)*float32(vp.H-1)
	return int(math.Floor(float64(fx) + 0.5)), h - 1 - int(math.Floor(float64(fy)+0.5))
}

// clipSegment clips a segment to the NDC square (Liang-Barsky). Segments with NaN
// or infinite endpoints are rejected.
func clipSegment(x0, y0, x1, y1 float32) (float32, float32, float32, float32, bool) {
	for _, v := range [...]float32{x0, y0, x1, y1} {
		f := float64(v)
		if math.IsNaN(f) || math.IsInf(f, 0) {
			return 0, 0, 0, 0, false
		}
	}
	dx, dy := x1-x0, y1-y0
	t0, t1 := float32(0), float32(1)
	edges := [4][2]float32{
		{-dx, x0 + 1},
		{dx, 1 - x0},
		{-dy, y0 + 1},
		{dy, 1 - y0},
	}
	for _, e := range edges {
		p, q := e[0], e[1]
		if p == 0 {
			if q < 0 {
				return 0, 0, 0, 0, false
			}
			continue
		}
		r := q / p
		if p < 0 {
			if r > t1 {
				return 0, 0, 0, 0, false
			}
			if r > t0 {
				t0 = r
			}
		} else {
			if r < t0 {
				return 0, 0, 0, 0, false
			}
			if r < t1 {
				t1 = r
			}
		}
	}
	return x0 + t0*dx, y0 + t0*dy, x0 + t1*dx, y0 + t1*dy, true
}

func drawLine(t Target, x0, y0, x1, y1 int, c color.RGBA) {
	dx := absInt(x1 - x0)
	sx := -1
	if x0 < x1 {
		sx = 1
	}
	dy := -absInt(y1 - y0)
	sy := -1
	if y0 < y1 {
		sy = 1
	}
	err := dx + dy
	for {
		t.SetPixel(x0, y0, c)
		if x0 == x1 && y0 == y1 {
			return
		}
		e2 := 2 * err
		if e2 >= dy {
			err += dy
			x0 += sx
		}
		if e2 <= dx {
			err += dx
			y0 += sy
		}
	}
}

func absInt(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

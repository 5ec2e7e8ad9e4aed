package graph

import (
	"fmt"
	"image/color"

	"xgraph/gl"
)

var (
	clearColor = [4]float32{1, 1, 1, 1}
	axisColor  = [4]float32{0, 0, 0, 1}
)

// Surface owns the drawing program, the axis window, the origin and the ordered
// series list of one graph.
//
// A Surface is not safe for concurrent use. Every mutator reads AutoRender at call
// time and renders before returning when it is set.
type Surface struct {
	ctx    gl.Context
	canvas gl.Canvas

	program     gl.Program
	colorLoc    int
	positionLoc int

	window AxisWindow
	origin Origin

	autoClear  bool
	autoRender bool

	series []Series
}

// Create builds the program on ctx and resolves its attributes. The surface draws
// nothing until a canvas is attached.
func Create(ctx gl.Context) (*Surface, error) {
	fs, ok := fragmentShaderSources[ctx.Language()]
	if !ok {
		return nil, &ConstructionError{Stage: "program", Info: "no fragment shader for " + ctx.Language().String()}
	}
	p, err := gl.BuildProgram(ctx, vertexShaderSource, fs)
	if err != nil {
		return nil, &ConstructionError{Stage: "program", Info: "build", Err: err}
	}
	if err := ctx.UseProgram(p); err != nil {
		return nil, &ConstructionError{Stage: "program", Info: "use", Err: err}
	}

	s := &Surface{
		ctx:         ctx,
		program:     p,
		colorLoc:    ctx.AttribLocation(p, attrColor),
		positionLoc: ctx.AttribLocation(p, attrPosition),
		window:      DefaultWindow(),
		autoClear:   true,
	}
	if s.colorLoc < 0 {
		return nil, &ConstructionError{Stage: "attribute", Info: attrColor}
	}
	if s.positionLoc < 0 {
		return nil, &ConstructionError{Stage: "attribute", Info: attrPosition}
	}
	return s, nil
}

// Attach binds the drawable the surface renders into.
func (s *Surface) Attach(c gl.Canvas) error {
	if err := s.ctx.Attach(c); err != nil {
		return err
	}
	s.canvas = c
	return nil
}

func (s *Surface) AutoClear() bool       { return s.autoClear }
func (s *Surface) SetAutoClear(on bool)  { s.autoClear = on }
func (s *Surface) AutoRender() bool      { return s.autoRender }
func (s *Surface) SetAutoRender(on bool) { s.autoRender = on }
func (s *Surface) Window() AxisWindow    { return s.window }
func (s *Surface) Origin() Origin        { return s.origin }
func (s *Surface) Len() int              { return len(s.series) }
func (s *Surface) Context() gl.Context   { return s.ctx }
func (s *Surface) Canvas() gl.Canvas     { return s.canvas }

func (s *Surface) changed() error {
	if !s.autoRender {
		return nil
	}
	return s.Render()
}

// AddSeries appends a series whose samples are values at positions 0,1,2,... c is
// given in 8-bit channels; nil means DefaultColor. It returns the new index.
func (s *Surface) AddSeries(name string, c color.Color, values []float64) (int, error) {
	return s.add(Series{Name: name, Color: NormalizeColor(c), Data: IndexPairs(values)})
}

// AddRecord adds a series from a raw record: the first field is the display name and
// the rest are sample values.
func (s *Surface) AddRecord(c color.Color, record []string) (int, error) {
	name, values := ParseRecord(record)
	return s.AddSeries(name, c, values)
}

// AddPoints adds a series with explicit interleaved x/y samples.
func (s *Surface) AddPoints(name string, c color.Color, xy []float64) (int, error) {
	if len(xy)%2 != 0 {
		return -1, fmt.Errorf("%w: %q has %d values", ErrOddSamples, name, len(xy))
	}
	return s.add(Series{Name: name, Color: NormalizeColor(c), Data: append([]float64(nil), xy...)})
}

func (s *Surface) add(sr Series) (int, error) {
	s.series = append(s.series, sr)
	return len(s.series) - 1, s.changed()
}

// Series returns a copy of the series at index i.
func (s *Surface) Series(i int) (Series, error) {
	if i < 0 || i >= len(s.series) {
		return Series{}, &IndexError{Index: i, Len: len(s.series)}
	}
	return s.series[i].clone(), nil
}

// SeriesByName returns the first series named name.
func (s *Surface) SeriesByName(name string) (Series, bool) {
	i := s.IndexByName(name)
	if i < 0 {
		return Series{}, false
	}
	return s.series[i].clone(), true
}

// IndexByName returns the index of the first series named name, or -1.
func (s *Surface) IndexByName(name string) int {
	for i := range s.series {
		if s.series[i].Name == name {
			return i
		}
	}
	return -1
}

// Names lists series names in index order.
func (s *Surface) Names() []string {
	names := make([]string, len(s.series))
	for i := range s.series {
		names[i] = s.series[i].Name
	}
	return names
}

// RemoveSeries removes and returns the series at index i. Later indices shift down
// by one.
func (s *Surface) RemoveSeries(i int) (Series, error) {
	if i < 0 || i >= len(s.series) {
		return Series{}, &IndexError{Index: i, Len: len(s.series)}
	}
	removed := s.series[i]
	s.series = append(s.series[:i], s.series[i+1:]...)
	return removed, s.changed()
}

// Reset removes every series without rendering.
func (s *Surface) Reset() {
	s.series = nil
}

// SetOrigin replaces the origin.
func (s *Surface) SetOrigin(o Origin) error {
	s.origin = o
	return s.changed()
}

// SetOriginFlags replaces the origin from raw flags (see OriginFromFlags).
func (s *Surface) SetOriginFlags(flags uint) error {
	return s.SetOrigin(OriginFromFlags(flags))
}

// SetRangeX replaces the X extent of the window. A range CheckRange rejects
// leaves the window unchanged.
func (s *Surface) SetRangeX(lo, hi float64) error {
	if err := CheckRange(AxisX, lo, hi); err != nil {
		return err
	}
	s.window.MinX, s.window.MaxX = lo, hi
	return s.changed()
}

// SetRangeY replaces the Y extent of the window.
func (s *Surface) SetRangeY(lo, hi float64) error {
	if err := CheckRange(AxisY, lo, hi); err != nil {
		return err
	}
	s.window.MinY, s.window.MaxY = lo, hi
	return s.changed()
}

// Clear fills the drawing buffer with white and resets the viewport to the canvas size.
func (s *Surface) Clear() error {
	if s.canvas == nil {
		return gl.ErrNoCanvas
	}
	s.ctx.ClearColor(clearColor[0], clearColor[1], clearColor[2], clearColor[3])
	if err := s.ctx.Clear(); err != nil {
		return err
	}
	w, h := s.canvas.Size()
	s.ctx.Viewport(0, 0, w, h)
	return nil
}

// Render draws the series at indices, in the order given, then the two origin axes.
// With no indices every series is drawn in insertion order. Indices outside the list
// are skipped. When AutoClear is set the buffer is cleared first.
func (s *Surface) Render(indices ...int) error {
	if s.autoClear {
		if err := s.Clear(); err != nil {
			return err
		}
	}
	if err := s.ctx.UseProgram(s.program); err != nil {
		return err
	}

	if len(indices) == 0 {
		indices = make([]int, len(s.series))
		for i := range indices {
			indices[i] = i
		}
	}
	for _, i := range indices {
		if i < 0 || i >= len(s.series) {
			continue
		}
		sr := &s.series[i]
		pts := VisibleSamples(MapSamples(sr.Data, s.window, s.origin))
		if err := s.draw(pts, sr.Color); err != nil {
			return fmt.Errorf("graph: draw %q: %w", sr.Name, err)
		}
	}

	ox, oy := float32(s.origin.X()), float32(s.origin.Y())
	if err := s.draw([]float32{ox, -1, ox, 1}, axisColor); err != nil {
		return fmt.Errorf("graph: draw y axis: %w", err)
	}
	if err := s.draw([]float32{-1, oy, 1, oy}, axisColor); err != nil {
		return fmt.Errorf("graph: draw x axis: %w", err)
	}
	return nil
}

// draw issues one line strip through a buffer that lives only for this call.
func (s *Surface) draw(pts []float32, c [4]float32) error {
	buf, err := gl.Upload(s.ctx, pts)
	if err != nil {
		return err
	}
	defer buf.Release()

	s.ctx.VertexAttrib4f(s.colorLoc, c)
	s.ctx.BindBuffer(buf.Handle())
	defer s.ctx.BindBuffer(0)
	s.ctx.EnableVertexAttribArray(s.positionLoc)
	defer s.ctx.DisableVertexAttribArray(s.positionLoc)
	if err := s.ctx.VertexAttribPointer(s.positionLoc, 2); err != nil {
		return err
	}
	if err := s.ctx.DrawArrays(gl.LineStrip, 0, len(pts)/2); err != nil {
		return err
	}
	s.ctx.Flush()
	return nil
}

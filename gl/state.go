package gl

import (
	"fmt"
	"regexp"
)

const maxAttribs = 8

// Rect is a viewport rectangle in GL convention: X,Y is the lower-left corner.
type Rect struct {
	X, Y, W, H int
}

// backend is the part of a context that touches pixels.
type backend interface {
	language() Language
	checkCanvas(c Canvas) error
	compileFragment(src string) (any, error)
	clear(c [4]float32) error
	drawStrip(pts []float32, c [4]float32, vp Rect, fragment any) error
}

type attribDecl struct {
	name string
	size int
}

type shaderObj struct {
	typ      ShaderType
	attribs  []attribDecl
	fragment any
}

type programObj struct {
	attribs  []attribDecl
	fragment any
}

type attribState struct {
	enabled bool
	hasPtr  bool
	size    int
	buffer  Buffer
	value   [4]float32
}

var (
	reAttrib = regexp.MustCompile(`\battribute\s+(?:(?:lowp|mediump|highp)\s+)?(float|vec2|vec3|vec4)\s+(\w+)\s*;`)
	reMain   = regexp.MustCompile(`\bvoid\s+main\s*\(\s*\)`)
	rePos    = regexp.MustCompile(`\bgl_Position\s*=`)
)

// state is the backend-independent context state machine.
type state struct {
	b      backend
	canvas Canvas

	next     uint32
	shaders  map[Shader]*shaderObj
	programs map[Program]*programObj
	buffers  map[Buffer][]float32

	bound   Buffer
	current Program
	attribs [maxAttribs]attribState

	viewport   Rect
	clearColor [4]float32
}

func newState(b backend) state {
	s := state{
		b:        b,
		shaders:  make(map[Shader]*shaderObj),
		programs: make(map[Program]*programObj),
		buffers:  make(map[Buffer][]float32),
	}
	for i := range s.attribs {
		s.attribs[i].value = [4]float32{0, 0, 0, 1}
	}
	return s
}

func (s *state) handle() uint32 {
	s.next++
	return s.next
}

func (s *state) Language() Language { return s.b.language() }

func (s *state) Attach(c Canvas) error {
	if c == nil {
		return ErrNoCanvas
	}
	if err := s.b.checkCanvas(c); err != nil {
		return err
	}
	s.canvas = c
	w, h := c.Size()
	s.viewport = Rect{W: w, H: h}
	return nil
}

func (s *state) Canvas() Canvas { return s.canvas }

func (s *state) CreateShader(t ShaderType, src string) (Shader, error) {
	switch t {
	case VertexShader:
		if !reMain.MatchString(src) {
			return 0, fmt.Errorf("%w: vertex shader has no main", ErrCompile)
		}
		if !rePos.MatchString(src) {
			return 0, fmt.Errorf("%w: vertex shader does not write gl_Position", ErrCompile)
		}
		var attribs []attribDecl
		for _, m := range reAttrib.FindAllStringSubmatch(src, -1) {
			attribs = append(attribs, attribDecl{name: m[2], size: declSize(m[1])})
		}
		if len(attribs) > maxAttribs {
			return 0, fmt.Errorf("%w: %d attributes, max %d", ErrCompile, len(attribs), maxAttribs)
		}
		id := Shader(s.handle())
		s.shaders[id] = &shaderObj{typ: t, attribs: attribs}
		return id, nil
	case FragmentShader:
		frag, err := s.b.compileFragment(src)
		if err != nil {
			return 0, fmt.Errorf("%w: %v", ErrCompile, err)
		}
		id := Shader(s.handle())
		s.shaders[id] = &shaderObj{typ: t, fragment: frag}
		return id, nil
	default:
		return 0, fmt.Errorf("%w: shader type %d", ErrInvalidOperation, t)
	}
}

func (s *state) DeleteShader(id Shader) { delete(s.shaders, id) }

func (s *state) CreateProgram(vs, fs Shader) (Program, error) {
	v, ok := s.shaders[vs]
	if !ok || v.typ != VertexShader {
		return 0, fmt.Errorf("%w: missing vertex shader", ErrLink)
	}
	f, ok := s.shaders[fs]
	if !ok || f.typ != FragmentShader {
		return 0, fmt.Errorf("%w: missing fragment shader", ErrLink)
	}
	if len(v.attribs) == 0 {
		return 0, fmt.Errorf("%w: vertex shader declares no attributes", ErrLink)
	}
	id := Program(s.handle())
	s.programs[id] = &programObj{
		attribs:  append([]attribDecl(nil), v.attribs...),
		fragment: f.fragment,
	}
	return id, nil
}

func (s *state) UseProgram(p Program) error {
	if p == 0 {
		s.current = 0
		return nil
	}
	if _, ok := s.programs[p]; !ok {
		return fmt.Errorf("%w: program %d", ErrInvalidHandle, p)
	}
	s.current = p
	return nil
}

func (s *state) AttribLocation(p Program, name string) int {
	prog, ok := s.programs[p]
	if !ok {
		return -1
	}
	for i, a := range prog.attribs {
		if a.name == name {
			return i
		}
	}
	return -1
}

func (s *state) CreateBuffer() (Buffer, error) {
	id := Buffer(s.handle())
	s.buffers[id] = nil
	return id, nil
}

func (s *state) BindBuffer(b Buffer) {
	if b == 0 {
		s.bound = 0
		return
	}
	if _, ok := s.buffers[b]; ok {
		s.bound = b
	}
}

func (s *state) BufferData(data []float32) error {
	if s.bound == 0 {
		return ErrNoBuffer
	}
	s.buffers[s.bound] = append([]float32(nil), data...)
	return nil
}

func (s *state) DeleteBuffer(b Buffer) {
	delete(s.buffers, b)
	if s.bound == b {
		s.bound = 0
	}
}

func (s *state) VertexAttrib4f(loc int, v [4]float32) {
	if loc < 0 || loc >= maxAttribs {
		return
	}
	s.attribs[loc].value = v
}

func (s *state) EnableVertexAttribArray(loc int) {
	if loc < 0 || loc >= maxAttribs {
		return
	}
	s.attribs[loc].enabled = true
}

func (s *state) DisableVertexAttribArray(loc int) {
	if loc < 0 || loc >= maxAttribs {
		return
	}
	s.attribs[loc].enabled = false
}

func (s *state) VertexAttribPointer(loc, size int) error {
	if loc < 0 || loc >= maxAttribs {
		return fmt.Errorf("%w: attribute location %d", ErrInvalidOperation, loc)
	}
	if size < 1 || size > 4 {
		return fmt.Errorf("%w: attribute size %d", ErrInvalidOperation, size)
	}
	if s.bound == 0 {
		return ErrNoBuffer
	}
	a := &s.attribs[loc]
	a.hasPtr = true
	a.size = size
	a.buffer = s.bound
	return nil
}

func (s *state) DrawArrays(m Mode, first, count int) error {
	if s.canvas == nil {
		return ErrNoCanvas
	}
	prog, ok := s.programs[s.current]
	if !ok {
		return ErrNoProgram
	}
	if m != LineStrip {
		return fmt.Errorf("%w: mode %s", ErrInvalidOperation, m)
	}
	if first < 0 || count < 0 {
		return fmt.Errorf("%w: first=%d count=%d", ErrInvalidOperation, first, count)
	}

	posLoc, colorLoc := -1, -1
	for i, decl := range prog.attribs {
		a := s.attribs[i]
		switch {
		case posLoc < 0 && a.enabled && a.hasPtr && a.size == 2:
			posLoc = i
		case colorLoc < 0 && !a.enabled && decl.size == 4:
			colorLoc = i
		}
	}
	if posLoc < 0 {
		return fmt.Errorf("%w: no enabled 2-component position array", ErrInvalidOperation)
	}

	data, ok := s.buffers[s.attribs[posLoc].buffer]
	if !ok {
		return fmt.Errorf("%w: buffer %d", ErrInvalidHandle, s.attribs[posLoc].buffer)
	}
	if (first+count)*2 > len(data) {
		return fmt.Errorf("%w: draw range %d+%d exceeds %d vertices", ErrInvalidOperation, first, count, len(data)/2)
	}

	color := [4]float32{0, 0, 0, 1}
	if colorLoc >= 0 {
		color = s.attribs[colorLoc].value
	}
	return s.b.drawStrip(data[first*2:(first+count)*2], color, s.viewport, prog.fragment)
}

func (s *state) ClearColor(r, g, b, a float32) {
	s.clearColor = [4]float32{r, g, b, a}
}

func (s *state) Clear() error {
	if s.canvas == nil {
		return ErrNoCanvas
	}
	return s.b.clear(s.clearColor)
}

func (s *state) Viewport(x, y, w, h int) {
	s.viewport = Rect{X: x, Y: y, W: w, H: h}
}

func (s *state) Flush() {}

func (s *state) liveBuffers() int { return len(s.buffers) }

func declSize(typ string) int {
	switch typ {
	case "vec2":
		return 2
	case "vec3":
		return 3
	case "vec4":
		return 4
	default:
		return 1
	}
}

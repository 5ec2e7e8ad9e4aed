package gl

import "errors"

// Canvas is a drawable with a pixel size.
type Canvas interface {
	Size() (w, h int)
}

// ShaderType selects the pipeline stage a shader source is compiled for.
type ShaderType uint8

const (
	VertexShader ShaderType = iota + 1
	FragmentShader
)

func (t ShaderType) String() string {
	switch t {
	case VertexShader:
		return "vertex"
	case FragmentShader:
		return "fragment"
	default:
		return "unknown"
	}
}

// Mode is a primitive assembly mode for DrawArrays. Only line strips are
// supported.
type Mode uint8

const LineStrip Mode = iota + 1

func (m Mode) String() string {
	if m == LineStrip {
		return "line-strip"
	}
	return "unknown"
}

// Language is the shading language a context compiles fragment shaders from.
type Language uint8

const (
	LanguageGLSL Language = iota + 1
	LanguageKage
)

func (l Language) String() string {
	switch l {
	case LanguageGLSL:
		return "glsl"
	case LanguageKage:
		return "kage"
	default:
		return "unknown"
	}
}

// Handles. Zero is never a valid handle; BindBuffer(0) unbinds.
type (
	Shader  uint32
	Program uint32
	Buffer  uint32
)

var (
	ErrCompile          = errors.New("gl: shader compile failed")
	ErrLink             = errors.New("gl: program link failed")
	ErrNoBuffer         = errors.New("gl: no buffer bound")
	ErrNoCanvas         = errors.New("gl: no canvas attached")
	ErrNoProgram        = errors.New("gl: no program in use")
	ErrInvalidHandle    = errors.New("gl: invalid handle")
	ErrInvalidOperation = errors.New("gl: invalid operation")
)

// Context is the drawing interface the graph surface is written against.
//
// Calls follow WebGL semantics where they overlap: VertexAttribPointer captures the
// buffer bound at call time, DrawArrays reads from the captured buffers, and Clear is
// not limited by the viewport.
type Context interface {
	Language() Language

	Attach(c Canvas) error
	Canvas() Canvas

	CreateShader(t ShaderType, src string) (Shader, error)
	DeleteShader(s Shader)
	CreateProgram(vs, fs Shader) (Program, error)
	UseProgram(p Program) error
	AttribLocation(p Program, name string) int

	CreateBuffer() (Buffer, error)
	BindBuffer(b Buffer)
	BufferData(data []float32) error
	DeleteBuffer(b Buffer)

	VertexAttrib4f(loc int, v [4]float32)
	EnableVertexAttribArray(loc int)
	DisableVertexAttribArray(loc int)
	VertexAttribPointer(loc, size int) error
	DrawArrays(m Mode, first, count int) error

	ClearColor(r, g, b, a float32)
	Clear() error
	Viewport(x, y, w, h int)
	Flush()
}

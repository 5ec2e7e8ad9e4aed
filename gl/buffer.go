package gl

import "fmt"

// VertexBuffer is a buffer object that lives for one draw.
//
// Upload creates, binds, fills and unbinds it; Release deletes it. Release is safe to
// call more than once and on a nil buffer, so callers can defer it right after Upload.
type VertexBuffer struct {
	ctx Context
	id  Buffer
	n   int
}

// Upload creates a buffer holding data.
func Upload(ctx Context, data []float32) (*VertexBuffer, error) {
	id, err := ctx.CreateBuffer()
	if err != nil {
		return nil, err
	}
	b := &VertexBuffer{ctx: ctx, id: id, n: len(data)}
	ctx.BindBuffer(id)
	err = ctx.BufferData(data)
	ctx.BindBuffer(0)
	if err != nil {
		b.Release()
		return nil, err
	}
	return b, nil
}

func (b *VertexBuffer) Handle() Buffer { return b.id }

// Len is the number of floats uploaded.
func (b *VertexBuffer) Len() int { return b.n }

func (b *VertexBuffer) Release() {
	if b == nil || b.id == 0 {
		return
	}
	b.ctx.DeleteBuffer(b.id)
	b.id = 0
}

// BuildProgram compiles both stages and links them. The shader objects are deleted
// once the program is linked or on failure.
func BuildProgram(ctx Context, vertexSrc, fragmentSrc string) (Program, error) {
	vs, err := ctx.CreateShader(VertexShader, vertexSrc)
	if err != nil {
		return 0, fmt.Errorf("vertex: %w", err)
	}
	defer ctx.DeleteShader(vs)

	fs, err := ctx.CreateShader(FragmentShader, fragmentSrc)
	if err != nil {
		return 0, fmt.Errorf("fragment: %w", err)
	}
	defer ctx.DeleteShader(fs)

	p, err := ctx.CreateProgram(vs, fs)
	if err != nil {
		return 0, err
	}
	return p, nil
}

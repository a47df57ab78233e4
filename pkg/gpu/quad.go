package gpu

import (
	"github.com/go-gl/gl/v4.1-core/gl"

	"desktopview/pkg/desktop"
)

// quadVertices covers clip space with the frame's first row at the top.
var quadVertices = []float32{
	// Positions   // Texture coords
	-1.0, -1.0, 0.0, 0.0, 1.0,
	1.0, -1.0, 0.0, 1.0, 1.0,
	1.0, 1.0, 0.0, 1.0, 0.0,
	-1.0, 1.0, 0.0, 0.0, 0.0,
}

var quadIndices = []uint32{0, 1, 2, 2, 3, 0}

// Quad is the textured rectangle the desktop is drawn on.
type Quad struct {
	vao, vbo, ebo uint32
	texture       *Texture
}

func (q *Quad) init() {
	gl.GenVertexArrays(1, &q.vao)
	gl.GenBuffers(1, &q.vbo)
	gl.GenBuffers(1, &q.ebo)
}

// SetDefault uploads the unit quad.
func (q *Quad) SetDefault() {
	gl.BindVertexArray(q.vao)

	gl.BindBuffer(gl.ARRAY_BUFFER, q.vbo)
	gl.BufferData(gl.ARRAY_BUFFER, len(quadVertices)*4, gl.Ptr(quadVertices), gl.STATIC_DRAW)

	gl.BindBuffer(gl.ELEMENT_ARRAY_BUFFER, q.ebo)
	gl.BufferData(gl.ELEMENT_ARRAY_BUFFER, len(quadIndices)*4, gl.Ptr(quadIndices), gl.STATIC_DRAW)

	// Position attribute
	gl.VertexAttribPointer(0, 3, gl.FLOAT, false, 5*4, gl.PtrOffset(0))
	gl.EnableVertexAttribArray(0)
	// Texture coord attribute
	gl.VertexAttribPointer(1, 2, gl.FLOAT, false, 5*4, gl.PtrOffset(3*4))
	gl.EnableVertexAttribArray(1)

	gl.BindVertexArray(0)
}

// SetTexture selects the texture sampled on Render. Textures from another
// backend are ignored.
func (q *Quad) SetTexture(tex desktop.Texture) {
	q.texture, _ = tex.(*Texture)
}

// Render draws the quad with the program currently in use.
func (q *Quad) Render() {
	if q.texture != nil {
		q.texture.Bind()
	}
	gl.BindVertexArray(q.vao)
	gl.DrawElements(gl.TRIANGLES, int32(len(quadIndices)), gl.UNSIGNED_INT, gl.PtrOffset(0))
	gl.BindVertexArray(0)
}

func (q *Quad) Free() {
	if q.ebo != 0 {
		gl.DeleteBuffers(1, &q.ebo)
		q.ebo = 0
	}
	if q.vbo != 0 {
		gl.DeleteBuffers(1, &q.vbo)
		q.vbo = 0
	}
	if q.vao != 0 {
		gl.DeleteVertexArrays(1, &q.vao)
		q.vao = 0
	}
	q.texture = nil
}

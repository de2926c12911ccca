package openglhelper

import (
	"github.com/go-gl/gl/v4.6-core/gl"

	"github.com/leterax/go-lopgl/pkg/scene"
)

// Mesh is uploaded scene geometry with its attribute layout
type Mesh struct {
	vao     *VertexArrayObject
	vbo     *BufferObject
	ebo     *BufferObject
	indexed bool
}

// NewMesh uploads geometry and describes its interleaved float attributes.
// attributes holds the float count per location, as in scene.PipelineConfig.
func NewMesh(geom scene.Geometry, attributes []int) *Mesh {
	// Create VAO, VBO, and EBO
	vao := NewVAO()
	vao.Bind()

	vbo := NewVBO(geom.Vertices)
	var ebo *BufferObject
	if geom.Indexed() {
		ebo = NewEBO(geom.Indices)
	}

	stride := 0
	for _, n := range attributes {
		stride += n * 4
	}
	offset := 0
	for i, n := range attributes {
		vao.SetVertexAttribPointer(uint32(i), int32(n), gl.FLOAT, false, int32(stride), offset)
		offset += n * 4
	}

	// Unbind VAO
	vao.Unbind()

	return &Mesh{
		vao:     vao,
		vbo:     vbo,
		ebo:     ebo,
		indexed: geom.Indexed(),
	}
}

// Bind makes the mesh the current vertex source
func (m *Mesh) Bind() {
	m.vao.Bind()
}

// Draw renders elements vertices or indices starting at base. The mesh must be bound.
func (m *Mesh) Draw(base, elements, instances int) {
	if m.indexed {
		gl.DrawElementsInstanced(gl.TRIANGLES, int32(elements), gl.UNSIGNED_SHORT, gl.PtrOffset(base*2), int32(instances))
		return
	}
	gl.DrawArraysInstanced(gl.TRIANGLES, int32(base), int32(elements), int32(instances))
}

// Delete releases all resources
func (m *Mesh) Delete() {
	m.vao.Delete()
	m.vbo.Delete()
	if m.ebo != nil {
		m.ebo.Delete()
	}
}

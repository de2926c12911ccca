package openglhelper

import (
	"github.com/go-gl/gl/v4.6-core/gl"
	"go.uber.org/zap"

	"github.com/leterax/go-lopgl/pkg/render"
)

// Binding attaches a texture to a sampler uniform
type Binding struct {
	Sampler string
	Texture *Texture
}

// Backend implements render.Backend on an OpenGL context
type Backend struct {
	pipeline *Pipeline
	mesh     *Mesh
	bindings []Binding
	log      *zap.Logger

	skipped uint64
}

var _ render.Backend = (*Backend)(nil)

// NewBackend draws mesh with pipeline, sampling the given textures.
func NewBackend(pipeline *Pipeline, mesh *Mesh, bindings []Binding, log *zap.Logger) *Backend {
	return &Backend{
		pipeline: pipeline,
		mesh:     mesh,
		bindings: bindings,
		log:      log,
	}
}

func (b *Backend) BeginPass(pass render.PassAction, width, height int) {
	c := pass.ClearColor
	gl.Viewport(0, 0, int32(width), int32(height))
	gl.DepthMask(true)
	gl.ClearColor(c[0], c[1], c[2], c[3])
	gl.Clear(gl.COLOR_BUFFER_BIT | gl.DEPTH_BUFFER_BIT)
}

func (b *Backend) ApplyPipeline() {
	b.pipeline.Apply()
}

func (b *Backend) ApplyBindings() {
	b.mesh.Bind()
	for i, bind := range b.bindings {
		bind.Texture.Bind(uint32(i))
		b.pipeline.Shader.SetInt(bind.Sampler, int32(i))
	}
}

func (b *Backend) ApplyVSParams(p render.VSParams) {
	s := b.pipeline.Shader
	s.SetMat4("model", p.Model)
	s.SetMat4("view", p.View)
	s.SetMat4("projection", p.Projection)
}

func (b *Backend) ApplyFSParams(p render.FSParams) {
	b.pipeline.Shader.SetVec3("color", p.Color)
}

// Draw is a no-op while any bound texture is still waiting for its pixels.
func (b *Backend) Draw(base, elements, instances int) {
	for _, bind := range b.bindings {
		if !bind.Texture.Complete() {
			if b.skipped == 0 {
				b.log.Debug("Skipping draws until textures are loaded", zap.String("sampler", bind.Sampler))
			}
			b.skipped++
			return
		}
	}
	b.mesh.Draw(base, elements, instances)
}

func (b *Backend) EndPass() {
	gl.BindVertexArray(0)
}

func (b *Backend) Commit() {
	gl.Flush()
}

// Skipped returns how many draws were dropped for incomplete textures.
func (b *Backend) Skipped() uint64 {
	return b.skipped
}

package openglhelper

import (
	"github.com/go-gl/gl/v4.6-core/gl"

	"github.com/leterax/go-lopgl/pkg/scene"
)

// Pipeline is a shader bound to fixed depth and blend state
type Pipeline struct {
	Shader *Shader
	config scene.PipelineConfig
}

// NewPipeline pairs shader with the render state in config
func NewPipeline(shader *Shader, config scene.PipelineConfig) *Pipeline {
	return &Pipeline{Shader: shader, config: config}
}

// Apply makes the pipeline current
func (p *Pipeline) Apply() {
	p.Shader.Use()

	gl.Enable(gl.DEPTH_TEST)
	gl.DepthFunc(compareFunc(p.config.DepthCompare))
	gl.DepthMask(p.config.DepthWrite)

	if b := p.config.Blend; b != nil {
		gl.Enable(gl.BLEND)
		gl.BlendFuncSeparate(blendFactor(b.SrcRGB), blendFactor(b.DstRGB),
			blendFactor(b.SrcAlpha), blendFactor(b.DstAlpha))
		gl.BlendEquationSeparate(blendOp(b.OpRGB), blendOp(b.OpAlpha))
	} else {
		gl.Disable(gl.BLEND)
	}
}

func compareFunc(f scene.CompareFunc) uint32 {
	switch f {
	case scene.CompareLessEqual:
		return gl.LEQUAL
	case scene.CompareAlways:
		return gl.ALWAYS
	}
	return gl.LESS
}

func blendFactor(f scene.BlendFactor) uint32 {
	switch f {
	case scene.BlendZero:
		return gl.ZERO
	case scene.BlendSrcAlpha:
		return gl.SRC_ALPHA
	case scene.BlendOneMinusSrcAlpha:
		return gl.ONE_MINUS_SRC_ALPHA
	}
	return gl.ONE
}

func blendOp(op scene.BlendOp) uint32 {
	if op == scene.BlendOpSubtract {
		return gl.FUNC_SUBTRACT
	}
	return gl.FUNC_ADD
}

package scene

// CompareFunc selects the depth test.
type CompareFunc int

const (
	CompareLess CompareFunc = iota
	CompareLessEqual
	CompareAlways
)

// BlendFactor is a source or destination blend weight.
type BlendFactor int

const (
	BlendOne BlendFactor = iota
	BlendZero
	BlendSrcAlpha
	BlendOneMinusSrcAlpha
)

// BlendOp combines the weighted source and destination.
type BlendOp int

const (
	BlendOpAdd BlendOp = iota
	BlendOpSubtract
)

// BlendState configures color blending separately for RGB and alpha.
type BlendState struct {
	SrcRGB, DstRGB     BlendFactor
	OpRGB              BlendOp
	SrcAlpha, DstAlpha BlendFactor
	OpAlpha            BlendOp
}

// AlphaBlend is classic "over" blending.
func AlphaBlend() *BlendState {
	return &BlendState{
		SrcRGB:   BlendSrcAlpha,
		DstRGB:   BlendOneMinusSrcAlpha,
		OpRGB:    BlendOpAdd,
		SrcAlpha: BlendSrcAlpha,
		DstAlpha: BlendOneMinusSrcAlpha,
		OpAlpha:  BlendOpAdd,
	}
}

// PipelineConfig is the fixed render state of a scene.
type PipelineConfig struct {
	Attributes   []int // floats per vertex attribute, in location order
	DepthCompare CompareFunc
	DepthWrite   bool
	Blend        *BlendState // nil disables blending
}

// Stride returns the vertex size in bytes.
func (p PipelineConfig) Stride() int {
	n := 0
	for _, a := range p.Attributes {
		n += a
	}
	return n * 4
}

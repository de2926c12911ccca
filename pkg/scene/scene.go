// Package scene holds the fixed scenes the demos draw: geometry, per-instance
// placement and the pipeline state they are drawn with.
package scene

import (
	"github.com/go-gl/mathgl/mgl32"
)

// Instance is one drawn copy of the scene geometry.
type Instance struct {
	Position mgl32.Vec3
	Color    mgl32.Vec3
}

// Spin rotates instance i by i*StepDegrees about Axis.
type Spin struct {
	StepDegrees float32
	Axis        mgl32.Vec3
}

// TextureRef binds an image file to a sampler uniform.
type TextureRef struct {
	Sampler string
	Path    string
}

// Scene is built once at startup and never changes afterwards.
type Scene struct {
	title      string
	geometry   Geometry
	pipeline   PipelineConfig
	instances  []Instance
	spin       Spin
	colored    bool
	textures   []TextureRef
	clearColor mgl32.Vec4
}

// Title returns the window title.
func (s *Scene) Title() string { return s.title }

// Geometry returns a copy of the vertex data shared by all instances.
func (s *Scene) Geometry() Geometry {
	g := s.geometry
	g.Vertices = append([]float32(nil), g.Vertices...)
	if g.Indices != nil {
		g.Indices = append([]uint16(nil), g.Indices...)
	}
	return g
}

// Pipeline returns a copy of the render state.
func (s *Scene) Pipeline() PipelineConfig {
	p := s.pipeline
	p.Attributes = append([]int(nil), p.Attributes...)
	if p.Blend != nil {
		blend := *p.Blend
		p.Blend = &blend
	}
	return p
}

// Colored reports whether instances carry a flat color uniform.
func (s *Scene) Colored() bool { return s.colored }

// ClearColor returns the background color.
func (s *Scene) ClearColor() mgl32.Vec4 { return s.clearColor }

// Len returns the number of instances.
func (s *Scene) Len() int { return len(s.instances) }

// Instance returns instance i.
func (s *Scene) Instance(i int) Instance { return s.instances[i] }

// Instances returns a copy of the instances in draw order.
func (s *Scene) Instances() []Instance {
	return append([]Instance(nil), s.instances...)
}

// Textures returns a copy of the texture bindings.
func (s *Scene) Textures() []TextureRef {
	return append([]TextureRef(nil), s.textures...)
}

// Model returns the world transform of instance i.
func (s *Scene) Model(i int) mgl32.Mat4 {
	p := s.instances[i].Position
	model := mgl32.Translate3D(p.X(), p.Y(), p.Z())

	if s.spin.StepDegrees != 0 {
		angle := mgl32.DegToRad(s.spin.StepDegrees * float32(i))
		model = model.Mul4(mgl32.HomogRotate3D(angle, s.spin.Axis.Normalize()))
	}
	return model
}

// Look is the textured cube field from the camera chapter.
func Look() *Scene {
	return &Scene{
		title:    "Look - LearnOpenGL",
		geometry: CubeGeometry(),
		pipeline: PipelineConfig{
			Attributes:   []int{3, 2},
			DepthCompare: CompareLessEqual,
			DepthWrite:   true,
		},
		instances: []Instance{
			{Position: mgl32.Vec3{0.0, 0.0, 0.0}},
			{Position: mgl32.Vec3{2.0, 5.0, -15.0}},
			{Position: mgl32.Vec3{-1.5, -2.2, -2.5}},
			{Position: mgl32.Vec3{-3.8, -2.0, -12.3}},
			{Position: mgl32.Vec3{2.4, -0.4, -3.5}},
			{Position: mgl32.Vec3{-1.7, 3.0, -7.5}},
			{Position: mgl32.Vec3{1.3, -2.0, -2.5}},
			{Position: mgl32.Vec3{1.5, 2.0, -2.5}},
			{Position: mgl32.Vec3{1.5, 0.2, -1.5}},
			{Position: mgl32.Vec3{-1.3, 1.0, -1.5}},
		},
		spin: Spin{StepDegrees: 20, Axis: mgl32.Vec3{1.0, 0.3, 0.5}},
		textures: []TextureRef{
			{Sampler: "texture1", Path: "container.jpg"},
			{Sampler: "texture2", Path: "awesomeface.png"},
		},
		clearColor: mgl32.Vec4{0.2, 0.3, 0.3, 1.0},
	}
}

// Transparency is two overlapping blended quads. They are listed back to
// front; nothing sorts them.
func Transparency() *Scene {
	return &Scene{
		title:    "Quad - LearnOpenGL",
		geometry: QuadGeometry(),
		pipeline: PipelineConfig{
			Attributes:   []int{3},
			DepthCompare: CompareLessEqual,
			DepthWrite:   true,
			Blend:        AlphaBlend(),
		},
		instances: []Instance{
			{Position: mgl32.Vec3{0.0, 0.0, 0.0}, Color: mgl32.Vec3{1.0, 0.0, 0.0}},
			{Position: mgl32.Vec3{0.5, 0.5, 1.0}, Color: mgl32.Vec3{0.0, 1.0, 0.0}},
		},
		colored:    true,
		clearColor: mgl32.Vec4{0.0, 0.0, 0.0, 1.0},
	}
}

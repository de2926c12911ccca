package scene

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func assertMatNear(t *testing.T, want, got mgl32.Mat4, msgAndArgs ...any) {
	t.Helper()
	assert.InDeltaSlice(t, want[:], got[:], 1e-5, msgAndArgs...)
}

func TestLookModelMatrix(t *testing.T) {
	s := Look()
	require.Equal(t, 10, s.Len())

	axis := mgl32.Vec3{1.0, 0.3, 0.5}.Normalize()
	want := mgl32.Translate3D(-3.8, -2.0, -12.3).Mul4(mgl32.HomogRotate3D(mgl32.DegToRad(60), axis))

	got := s.Model(3)
	assertMatNear(t, want, got)
	assert.Equal(t, mgl32.Vec4{-3.8, -2.0, -12.3, 1}, got.Col(3))
}

func TestLookModelRotatesAboutAxis(t *testing.T) {
	s := Look()
	axis := mgl32.Vec3{1.0, 0.3, 0.5}.Normalize()

	for i := range s.Len() {
		m := s.Model(i)
		// The rotation leaves its own axis unchanged.
		rotated := m.Mat3().Mul3x1(axis)
		assert.InDeltaSlice(t, axis[:], rotated[:], 1e-5, "instance %d", i)
	}

	assertMatNear(t, mgl32.Ident4(), s.Model(0), "instance 0 is unrotated at the origin")
}

func TestTransparencyOrderAndColors(t *testing.T) {
	s := Transparency()
	require.Equal(t, 2, s.Len())
	assert.True(t, s.Colored())

	first, second := s.Instance(0), s.Instance(1)
	assert.Equal(t, mgl32.Vec3{1, 0, 0}, first.Color)
	assert.Equal(t, mgl32.Vec3{0, 1, 0}, second.Color)
	assert.Less(t, first.Position.Z(), second.Position.Z(), "authored back to front")

	assert.Equal(t, mgl32.Translate3D(0.5, 0.5, 1.0), s.Model(1), "quads do not rotate")
}

func TestInstancesAreCopies(t *testing.T) {
	s := Look()
	inst := s.Instances()
	inst[0].Position = mgl32.Vec3{99, 99, 99}

	assert.Equal(t, mgl32.Vec3{0, 0, 0}, s.Instance(0).Position)
}

func TestGeometry(t *testing.T) {
	cube := CubeGeometry()
	assert.False(t, cube.Indexed())
	assert.Equal(t, 36, cube.Elements)
	assert.Len(t, cube.Vertices, 36*5)

	quad := QuadGeometry()
	assert.True(t, quad.Indexed())
	assert.Equal(t, 6, quad.Elements)
	assert.Len(t, quad.Vertices, 4*3)
	for _, idx := range quad.Indices {
		assert.Less(t, int(idx), 4)
	}
}

func TestPipelineConfig(t *testing.T) {
	look := Look().Pipeline()
	assert.Equal(t, 20, look.Stride())
	assert.Nil(t, look.Blend)
	assert.Equal(t, CompareLessEqual, look.DepthCompare)
	assert.True(t, look.DepthWrite)

	quad := Transparency().Pipeline()
	assert.Equal(t, 12, quad.Stride())
	require.NotNil(t, quad.Blend)
	assert.Equal(t, BlendSrcAlpha, quad.Blend.SrcRGB)
	assert.Equal(t, BlendOneMinusSrcAlpha, quad.Blend.DstAlpha)
}

func TestTextures(t *testing.T) {
	assert.Equal(t, []TextureRef{
		{Sampler: "texture1", Path: "container.jpg"},
		{Sampler: "texture2", Path: "awesomeface.png"},
	}, Look().Textures())
	assert.Empty(t, Transparency().Textures())
}

func TestGeometryAndPipelineAreCopies(t *testing.T) {
	s := Transparency()

	g := s.Geometry()
	g.Vertices[0] = 42
	g.Indices[0] = 3
	assert.Equal(t, QuadGeometry(), s.Geometry())

	p := s.Pipeline()
	p.Attributes[0] = 4
	p.Blend.SrcRGB = BlendZero
	assert.Equal(t, []int{3}, s.Pipeline().Attributes)
	assert.Equal(t, AlphaBlend(), s.Pipeline().Blend)
}

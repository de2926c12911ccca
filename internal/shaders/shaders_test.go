package shaders

import (
	"fmt"
	"io/fs"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leterax/go-lopgl/pkg/scene"
)

func TestProgramsAreEmbedded(t *testing.T) {
	assert.True(t, Has("look"))
	assert.True(t, Has("transparency"))
	assert.False(t, Has("voxel"))
}

func TestShadersDeclareSceneUniforms(t *testing.T) {
	tests := []struct {
		name  string
		scene *scene.Scene
	}{
		{"look", scene.Look()},
		{"transparency", scene.Transparency()},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			vert, frag := Paths(tt.name)
			vs, err := fs.ReadFile(FS(), vert)
			require.NoError(t, err)
			fsrc, err := fs.ReadFile(FS(), frag)
			require.NoError(t, err)

			for _, u := range []string{"model", "view", "projection"} {
				assert.Contains(t, string(vs), "uniform mat4 "+u+";")
			}
			for i := range tt.scene.Pipeline().Attributes {
				assert.Contains(t, string(vs), fmt.Sprintf("layout (location = %d)", i))
			}
			for _, ref := range tt.scene.Textures() {
				assert.Contains(t, string(fsrc), "uniform sampler2D "+ref.Sampler+";")
			}
			if tt.scene.Colored() {
				assert.Contains(t, string(fsrc), "uniform vec3 color;")
			}
		})
	}
}

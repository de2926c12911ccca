package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault(t *testing.T) {
	cfg := Default("Look - LearnOpenGL")

	assert.Equal(t, 800, cfg.Window.Width)
	assert.Equal(t, 600, cfg.Window.Height)
	assert.Equal(t, "Look - LearnOpenGL", cfg.Window.Title)
	assert.Equal(t, 256*1024, cfg.Fetch.BufferSize)
	assert.Equal(t, 1, cfg.Fetch.Channels)
	assert.Equal(t, 1, cfg.Fetch.Lanes)
	assert.NoError(t, cfg.Validate())
}

func TestParseOverlaysBase(t *testing.T) {
	data := []byte(`
[window]
width = 1024
vsync = false

[assets]
path = "/srv/textures"

[log]
level = "debug"
`)
	cfg, err := Parse(data, Default("Quad - LearnOpenGL"))
	require.NoError(t, err)

	assert.Equal(t, 1024, cfg.Window.Width)
	assert.Equal(t, 600, cfg.Window.Height, "missing keys keep the base value")
	assert.False(t, cfg.Window.VSync)
	assert.Equal(t, "Quad - LearnOpenGL", cfg.Window.Title)
	assert.Equal(t, "/srv/textures", cfg.Assets.Path)
	assert.Equal(t, "debug", cfg.Log.Level)
}

func TestParseRejectsUnknownKeys(t *testing.T) {
	_, err := Parse([]byte("[window]\nfullscreen = true\n"), Default("x"))
	assert.Error(t, err)
}

func TestParseValidates(t *testing.T) {
	tests := []struct {
		name string
		data string
	}{
		{"zero width", "[window]\nwidth = 0\n"},
		{"negative buffer", "[fetch]\nbuffer_size = -1\n"},
		{"no lanes", "[fetch]\nlanes = 0\n"},
		{"no requests", "[fetch]\nmax_requests = 0\n"},
		{"frozen camera", "[camera]\nmove_speed = 0.0\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.data), Default("x"))
			assert.Error(t, err)
		})
	}
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "look.toml")
	require.NoError(t, os.WriteFile(path, []byte("[camera]\nsensitivity = 0.25\n"), 0o644))

	cfg, err := Load(path, Default("x"))
	require.NoError(t, err)
	assert.InDelta(t, 0.25, cfg.Camera.Sensitivity, 1e-6)

	_, err = Load(filepath.Join(t.TempDir(), "missing.toml"), Default("x"))
	assert.Error(t, err)
}

// Package config loads demo settings from TOML files.
package config

import (
	"bytes"
	"os"

	"github.com/pelletier/go-toml/v2"
	"github.com/pkg/errors"
)

// DefaultFetchBufferSize bounds the largest asset a demo can load.
const DefaultFetchBufferSize = 256 * 1024

// Config is the full set of demo settings.
type Config struct {
	Window WindowConfig `toml:"window"`
	Assets AssetsConfig `toml:"assets"`
	Fetch  FetchConfig  `toml:"fetch"`
	Camera CameraConfig `toml:"camera"`
	Log    LogConfig    `toml:"log"`
}

// WindowConfig controls the GLFW window.
type WindowConfig struct {
	Width  int    `toml:"width"`
	Height int    `toml:"height"`
	Title  string `toml:"title"`
	VSync  bool   `toml:"vsync"`
}

// AssetsConfig locates texture files.
type AssetsConfig struct {
	Path string `toml:"path"`
}

// FetchConfig sizes the async file loader.
type FetchConfig struct {
	BufferSize  int `toml:"buffer_size"`
	MaxRequests int `toml:"max_requests"`
	Channels    int `toml:"channels"`
	Lanes       int `toml:"lanes"`
}

// CameraConfig tunes the free-fly camera.
type CameraConfig struct {
	MoveSpeed   float32 `toml:"move_speed"`
	Sensitivity float32 `toml:"sensitivity"`
}

// LogConfig configures the zap logger.
type LogConfig struct {
	Level       string `toml:"level"`
	Development bool   `toml:"development"`
}

// Default returns the settings the demos ship with.
func Default(title string) Config {
	return Config{
		Window: WindowConfig{
			Width:  800,
			Height: 600,
			Title:  title,
			VSync:  true,
		},
		Assets: AssetsConfig{Path: "assets"},
		Fetch: FetchConfig{
			BufferSize:  DefaultFetchBufferSize,
			MaxRequests: 2,
			Channels:    1,
			Lanes:       1,
		},
		Camera: CameraConfig{
			MoveSpeed:   2.5,
			Sensitivity: 0.1,
		},
		Log: LogConfig{Level: "info"},
	}
}

// Load reads the TOML file at path on top of base. Keys missing from the file
// keep their value from base; unknown keys are an error.
func Load(path string, base Config) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, errors.Wrapf(err, "read config %s", path)
	}
	return Parse(data, base)
}

// Parse decodes TOML data on top of base and validates the result.
func Parse(data []byte, base Config) (Config, error) {
	cfg := base
	dec := toml.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&cfg); err != nil {
		return Config{}, errors.Wrap(err, "decode config")
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate reports the first out-of-range setting.
func (c Config) Validate() error {
	switch {
	case c.Window.Width <= 0 || c.Window.Height <= 0:
		return errors.Errorf("window size must be positive, got %dx%d", c.Window.Width, c.Window.Height)
	case c.Fetch.BufferSize <= 0:
		return errors.Errorf("fetch buffer size must be positive, got %d", c.Fetch.BufferSize)
	case c.Fetch.MaxRequests <= 0:
		return errors.Errorf("fetch max requests must be positive, got %d", c.Fetch.MaxRequests)
	case c.Fetch.Channels <= 0 || c.Fetch.Lanes <= 0:
		return errors.Errorf("fetch needs at least one channel and lane, got %d/%d", c.Fetch.Channels, c.Fetch.Lanes)
	case c.Camera.MoveSpeed <= 0 || c.Camera.Sensitivity <= 0:
		return errors.New("camera speed and sensitivity must be positive")
	}
	return nil
}

// Package demo runs a scene in a GLFW window until it is closed.
package demo

import (
	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/leterax/go-lopgl/internal/config"
	"github.com/leterax/go-lopgl/internal/logger"
	"github.com/leterax/go-lopgl/internal/openglhelper"
	"github.com/leterax/go-lopgl/internal/shaders"
	"github.com/leterax/go-lopgl/pkg/assets"
	"github.com/leterax/go-lopgl/pkg/fetch"
	"github.com/leterax/go-lopgl/pkg/render"
	"github.com/leterax/go-lopgl/pkg/scene"
)

// Run opens a window for sc, draws it with the named shader program and
// returns once the window is closed. It must be called on the main thread.
func Run(cfg config.Config, sc *scene.Scene, shader string) error {
	if !shaders.Has(shader) {
		return errors.Errorf("unknown shader program %q", shader)
	}
	log := logger.Log.With(zap.String("demo", sc.Title()))

	window, err := openglhelper.NewWindow(cfg.Window.Width, cfg.Window.Height, cfg.Window.Title, cfg.Window.VSync)
	if err != nil {
		return errors.Wrap(err, "create window")
	}
	defer window.Close()

	vert, frag := shaders.Paths(shader)
	program, err := openglhelper.LoadShader(shaders.FS(), vert, frag)
	if err != nil {
		return errors.Wrapf(err, "build shader %s", shader)
	}
	defer program.Delete()

	mesh := openglhelper.NewMesh(sc.Geometry(), sc.Pipeline().Attributes)
	defer mesh.Delete()

	refs := sc.Textures()
	bindings := make([]openglhelper.Binding, len(refs))
	texs := make([]assets.Texture, len(refs))
	paths := make([]string, len(refs))
	for i, ref := range refs {
		tex := openglhelper.AllocTexture()
		defer tex.Delete()
		bindings[i] = openglhelper.Binding{Sampler: ref.Sampler, Texture: tex}
		texs[i] = tex
		paths[i] = ref.Path
	}

	backend := openglhelper.NewBackend(openglhelper.NewPipeline(program, sc.Pipeline()), mesh, bindings, log)

	camera := render.NewDefaultCamera(
		render.WithMoveSpeed(cfg.Camera.MoveSpeed),
		render.WithSensitivity(cfg.Camera.Sensitivity),
	)
	width, height := window.FramebufferSize()
	opts := []render.AppOption{
		render.WithLogger(log),
		render.WithFramebufferSize(width, height),
	}

	if len(refs) > 0 {
		fetcher, err := fetch.New(fetch.Desc{
			MaxRequests: cfg.Fetch.MaxRequests,
			NumChannels: cfg.Fetch.Channels,
			NumLanes:    cfg.Fetch.Lanes,
		}, fetch.WithBasePath(cfg.Assets.Path), fetch.WithLogger(log))
		if err != nil {
			return errors.Wrap(err, "start fetcher")
		}
		defer fetcher.Shutdown()

		loader := assets.NewLoader(fetcher, cfg.Fetch.BufferSize, log)
		if err := loader.LoadAll(paths, texs); err != nil {
			return err
		}
		opts = append(opts, render.WithLoader(loader))
	}

	app := render.NewApp(sc, camera, backend, window, opts...)
	window.SetEventHandler(app.HandleEvent)

	log.Info("Running", zap.Int("width", width), zap.Int("height", height))
	for !window.ShouldClose() {
		app.Tick()
		window.SwapBuffers()
		window.PollEvents()
	}
	log.Info("Closed", zap.Uint64("frames", app.Frames()), zap.Uint64("skipped_draws", backend.Skipped()))
	return nil
}

// Package render drives the demos: a free-fly camera, input handling and a
// frame loop that draws a scene through a Backend.
package render

import (
	"time"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/loov/hrtime"
	"go.uber.org/zap"

	"github.com/leterax/go-lopgl/pkg/scene"
)

// PassAction describes how a render pass starts.
type PassAction struct {
	ClearColor mgl32.Vec4
}

// VSParams are the per-instance vertex shader uniforms.
type VSParams struct {
	Model      mgl32.Mat4
	View       mgl32.Mat4
	Projection mgl32.Mat4
}

// FSParams are the per-instance fragment shader uniforms of colored scenes.
type FSParams struct {
	Color mgl32.Vec3
}

// Backend submits draw work to the GPU. Draws whose bound resources are not
// complete yet are skipped by the backend.
type Backend interface {
	BeginPass(pass PassAction, width, height int)
	ApplyPipeline()
	ApplyBindings()
	ApplyVSParams(VSParams)
	ApplyFSParams(FSParams)
	Draw(base, elements, instances int)
	EndPass()
	Commit()
}

// Host is the window the app runs in. Mouse visibility only decides the
// cursor mode; motion steers the camera either way.
type Host interface {
	RequestQuit()
	MouseShown() bool
	ShowMouse(shown bool)
}

// AssetLoader is polled once per frame for finished loads.
type AssetLoader interface {
	Poll()
	Failed() bool
}

// App owns everything a demo mutates: camera, pass state and framebuffer size.
// Input handling and frames run on one goroutine, so nothing here is locked.
type App struct {
	scene   *scene.Scene
	camera  *Camera
	backend Backend
	host    Host
	loader  AssetLoader
	log     *zap.Logger

	pass     PassAction
	elements int
	width    int
	height   int
	frames   uint64
}

// AppOption configures an App.
type AppOption func(*App)

// WithLoader makes the app poll l every frame.
func WithLoader(l AssetLoader) AppOption {
	return func(a *App) { a.loader = l }
}

// WithLogger sets the app logger.
func WithLogger(l *zap.Logger) AppOption {
	return func(a *App) { a.log = l }
}

// WithFramebufferSize sets the initial framebuffer size.
func WithFramebufferSize(width, height int) AppOption {
	return func(a *App) {
		a.width = width
		a.height = height
	}
}

// NewApp wires a scene to a camera, backend and host window.
func NewApp(sc *scene.Scene, camera *Camera, backend Backend, host Host, opts ...AppOption) *App {
	a := &App{
		scene:    sc,
		camera:   camera,
		backend:  backend,
		host:     host,
		log:      zap.NewNop(),
		pass:     PassAction{ClearColor: sc.ClearColor()},
		elements: sc.Geometry().Elements,
		width:    800,
		height:   600,
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Camera returns the app camera.
func (a *App) Camera() *Camera {
	return a.camera
}

// ClearColor returns the current background color.
func (a *App) ClearColor() mgl32.Vec4 {
	return a.pass.ClearColor
}

// Frames returns the number of frames drawn.
func (a *App) Frames() uint64 {
	return a.frames
}

// HandleEvent applies one input event.
func (a *App) HandleEvent(e Event) {
	switch e.Type {
	case EventKeyDown:
		a.handleKey(e.Key)
	case EventMouseMove:
		a.camera.UpdateFromMouse(e.MouseX, e.MouseY)
	case EventMouseScroll:
		a.camera.UpdateFromScroll(e.ScrollY)
	case EventResize:
		a.width, a.height = e.Width, e.Height
		a.log.Debug("Framebuffer resized", zap.Int("width", e.Width), zap.Int("height", e.Height))
	}
}

func (a *App) handleKey(k Key) {
	switch k {
	case KeyEscape:
		a.host.RequestQuit()
		return
	case KeySpace:
		shown := !a.host.MouseShown()
		a.host.ShowMouse(shown)
		// A new baseline avoids a jump when the cursor is captured again.
		a.camera.ResetMouseState()
		return
	}

	if dir := k.Direction(); dir != DirectionNone {
		dt := float32(a.camera.DeltaTime().Seconds())
		a.camera.UpdateFromKey(dir, dt)
	}
}

// Tick draws one frame stamped with the monotonic clock.
func (a *App) Tick() {
	a.Frame(hrtime.Now())
}

// Frame draws one frame. now is a monotonic timestamp.
func (a *App) Frame(now time.Duration) {
	a.camera.AdvanceTime(now)

	if a.loader != nil {
		a.loader.Poll()
		if a.loader.Failed() && a.pass.ClearColor != ErrorClearColor {
			a.log.Warn("Asset load failed, switching to error clear color")
			a.pass.ClearColor = ErrorClearColor
		}
	}

	width, height := a.width, max(a.height, 1)
	view := a.camera.ViewMatrix()
	projection := a.camera.ProjectionMatrix(float32(width) / float32(height))

	a.backend.BeginPass(a.pass, width, height)
	a.backend.ApplyPipeline()
	a.backend.ApplyBindings()

	for i := range a.scene.Len() {
		a.backend.ApplyVSParams(VSParams{
			Model:      a.scene.Model(i),
			View:       view,
			Projection: projection,
		})
		if a.scene.Colored() {
			a.backend.ApplyFSParams(FSParams{Color: a.scene.Instance(i).Color})
		}
		a.backend.Draw(0, a.elements, 1)
	}

	a.backend.EndPass()
	a.backend.Commit()
	a.frames++
}

package render

import (
	"testing"
	"time"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"github.com/leterax/go-lopgl/pkg/scene"
)

type drawCall struct {
	vs       VSParams
	fs       *FSParams
	elements int
}

// recordingBackend keeps the calls of the last frame.
type recordingBackend struct {
	calls  []string
	pass   PassAction
	width  int
	height int
	draws  []drawCall

	vs *VSParams
	fs *FSParams
}

func (b *recordingBackend) BeginPass(pass PassAction, width, height int) {
	b.calls = []string{"begin"}
	b.draws = nil
	b.pass, b.width, b.height = pass, width, height
}

func (b *recordingBackend) ApplyPipeline() { b.calls = append(b.calls, "pipeline") }
func (b *recordingBackend) ApplyBindings() { b.calls = append(b.calls, "bindings") }

func (b *recordingBackend) ApplyVSParams(p VSParams) {
	b.calls = append(b.calls, "vs")
	b.vs = &p
	b.fs = nil
}

func (b *recordingBackend) ApplyFSParams(p FSParams) {
	b.calls = append(b.calls, "fs")
	b.fs = &p
}

func (b *recordingBackend) Draw(base, elements, instances int) {
	b.calls = append(b.calls, "draw")
	b.draws = append(b.draws, drawCall{vs: *b.vs, fs: b.fs, elements: elements})
}

func (b *recordingBackend) EndPass() { b.calls = append(b.calls, "end") }
func (b *recordingBackend) Commit()  { b.calls = append(b.calls, "commit") }

type fakeHost struct {
	quit       bool
	mouseShown bool
}

func (h *fakeHost) RequestQuit()         { h.quit = true }
func (h *fakeHost) MouseShown() bool     { return h.mouseShown }
func (h *fakeHost) ShowMouse(shown bool) { h.mouseShown = shown }

type fakeLoader struct {
	polls  int
	failAt int // poll number that reports failure; 0 never
}

func (l *fakeLoader) Poll() { l.polls++ }

func (l *fakeLoader) Failed() bool { return l.failAt > 0 && l.polls >= l.failAt }

func newTestApp(t *testing.T, sc *scene.Scene, opts ...AppOption) (*App, *recordingBackend, *fakeHost) {
	t.Helper()
	backend := &recordingBackend{}
	host := &fakeHost{}
	opts = append([]AppOption{WithLogger(zaptest.NewLogger(t))}, opts...)
	return NewApp(sc, NewDefaultCamera(), backend, host, opts...), backend, host
}

func TestFrameDrawsLookCubesInOrder(t *testing.T) {
	sc := scene.Look()
	app, backend, _ := newTestApp(t, sc)

	app.Frame(time.Second)

	require.Len(t, backend.draws, 10)
	for i, d := range backend.draws {
		assert.Equal(t, sc.Model(i), d.vs.Model, "instance %d", i)
		assert.Equal(t, 36, d.elements)
		assert.Nil(t, d.fs, "look scene has no color uniform")
	}

	axis := mgl32.Vec3{1.0, 0.3, 0.5}.Normalize()
	want := mgl32.Translate3D(-3.8, -2.0, -12.3).Mul4(mgl32.HomogRotate3D(mgl32.DegToRad(60), axis))
	assertMatNear(t, want, backend.draws[3].vs.Model)

	assert.Equal(t, []string{"begin", "pipeline", "bindings"}, backend.calls[:3])
	assert.Equal(t, []string{"end", "commit"}, backend.calls[len(backend.calls)-2:])
	assert.Equal(t, sc.ClearColor(), backend.pass.ClearColor)
	assert.Equal(t, uint64(1), app.Frames())
}

func TestFrameUsesCameraMatrices(t *testing.T) {
	app, backend, _ := newTestApp(t, scene.Look(), WithFramebufferSize(1024, 512))

	app.Frame(time.Second)

	cam := app.Camera()
	d := backend.draws[0]
	assert.Equal(t, cam.ViewMatrix(), d.vs.View)
	assert.Equal(t, cam.ProjectionMatrix(2), d.vs.Projection)
	assert.Equal(t, 1024, backend.width)
	assert.Equal(t, 512, backend.height)
}

func TestFrameAppliesColorsInAuthoringOrder(t *testing.T) {
	app, backend, _ := newTestApp(t, scene.Transparency())

	app.Frame(time.Second)

	require.Len(t, backend.draws, 2)
	require.NotNil(t, backend.draws[0].fs)
	require.NotNil(t, backend.draws[1].fs)
	assert.Equal(t, mgl32.Vec3{1, 0, 0}, backend.draws[0].fs.Color)
	assert.Equal(t, mgl32.Vec3{0, 1, 0}, backend.draws[1].fs.Color)
	assert.Equal(t, 6, backend.draws[0].elements)
	assert.Equal(t, mgl32.Vec4{0, 0, 0, 1}, backend.pass.ClearColor)
}

func TestFetchFailureTurnsClearColorRed(t *testing.T) {
	loader := &fakeLoader{failAt: 2}
	app, backend, _ := newTestApp(t, scene.Look(), WithLoader(loader))

	app.Frame(1 * time.Second)
	assert.Equal(t, scene.Look().ClearColor(), backend.pass.ClearColor)

	for i := range 5 {
		app.Frame(time.Duration(2+i) * time.Second)
		assert.Equal(t, mgl32.Vec4{1, 0, 0, 1}, backend.pass.ClearColor, "frame %d", i)
	}
	assert.Equal(t, 6, loader.polls, "polled once per frame")
	assert.Equal(t, ErrorClearColor, app.ClearColor())
}

func TestFrameAdvancesCameraTime(t *testing.T) {
	app, _, _ := newTestApp(t, scene.Look())

	app.Frame(10 * time.Second)
	assert.Zero(t, app.Camera().DeltaTime())

	app.Frame(10*time.Second + 20*time.Millisecond)
	assert.Equal(t, 20*time.Millisecond, app.Camera().DeltaTime())
}

func TestZeroHeightFramebuffer(t *testing.T) {
	app, backend, _ := newTestApp(t, scene.Look())
	app.HandleEvent(Event{Type: EventResize, Width: 300, Height: 0})

	app.Frame(time.Second)
	assert.Equal(t, 1, backend.height)
	assert.Len(t, backend.draws, 10)
}

func TestEscapeRequestsQuit(t *testing.T) {
	app, _, host := newTestApp(t, scene.Look())

	app.HandleEvent(Event{Type: EventKeyDown, Key: KeyEscape})
	assert.True(t, host.quit)
}

func TestKeysMoveCameraByFrameDelta(t *testing.T) {
	app, _, _ := newTestApp(t, scene.Look())
	app.Frame(time.Second)
	app.Frame(time.Second + 400*time.Millisecond)

	app.HandleEvent(Event{Type: EventKeyDown, Key: KeyW})
	assert.InDelta(t, 3-DefaultMoveSpeed*0.4, app.Camera().Position().Z(), 1e-5)

	app.HandleEvent(Event{Type: EventKeyDown, Key: KeyDown})
	assert.InDelta(t, 3, app.Camera().Position().Z(), 1e-5)

	app.HandleEvent(Event{Type: EventKeyDown, Key: KeyRight})
	assert.InDelta(t, DefaultMoveSpeed*0.4, app.Camera().Position().X(), 1e-5)
}

func TestMouseSteersWhetherCursorShownOrNot(t *testing.T) {
	app, _, host := newTestApp(t, scene.Look())

	host.mouseShown = true
	app.HandleEvent(Event{Type: EventMouseMove, MouseX: 0, MouseY: 0})
	app.HandleEvent(Event{Type: EventMouseMove, MouseX: 200, MouseY: 0})
	yaw, _ := app.Camera().Orientation()
	assert.InDelta(t, -70, yaw, 1e-5)

	host.mouseShown = false
	app.HandleEvent(Event{Type: EventMouseMove, MouseX: 210, MouseY: 0})
	yaw, _ = app.Camera().Orientation()
	assert.InDelta(t, -69, yaw, 1e-5)
}

// Toggling the cursor re-arms the first-sample baseline, so capturing it
// again after it wandered off does not turn the camera.
func TestCursorToggleResetsFirstMouse(t *testing.T) {
	app, _, host := newTestApp(t, scene.Look())

	app.HandleEvent(Event{Type: EventMouseMove, MouseX: 400, MouseY: 300})
	app.HandleEvent(Event{Type: EventMouseMove, MouseX: 410, MouseY: 300})
	before, _ := app.Camera().Orientation()

	app.HandleEvent(Event{Type: EventKeyDown, Key: KeySpace})
	assert.True(t, host.mouseShown)
	app.HandleEvent(Event{Type: EventKeyDown, Key: KeySpace})
	assert.False(t, host.mouseShown)

	app.HandleEvent(Event{Type: EventMouseMove, MouseX: 5000, MouseY: -2000})
	after, _ := app.Camera().Orientation()
	assert.Equal(t, before, after)
}

func TestScrollZooms(t *testing.T) {
	app, _, _ := newTestApp(t, scene.Look())

	app.HandleEvent(Event{Type: EventMouseScroll, ScrollY: 5})
	assert.Equal(t, float32(40), app.Camera().FOV())
}

func TestKeyDirections(t *testing.T) {
	assert.Equal(t, Forward, KeyW.Direction())
	assert.Equal(t, Forward, KeyUp.Direction())
	assert.Equal(t, Backward, KeyS.Direction())
	assert.Equal(t, Left, KeyA.Direction())
	assert.Equal(t, Right, KeyRight.Direction())
	assert.Equal(t, DirectionNone, KeySpace.Direction())
	assert.Equal(t, DirectionNone, KeyUnknown.Direction())
}

package openglhelper

import (
	"fmt"

	"github.com/go-gl/gl/v4.6-core/gl"
	"github.com/go-gl/glfw/v3.3/glfw"
	"go.uber.org/zap"

	"github.com/leterax/go-lopgl/internal/logger"
	"github.com/leterax/go-lopgl/pkg/render"
)

// Window handles GLFW window creation and turns GLFW callbacks into render events
type Window struct {
	glfwWindow *glfw.Window
	width      int
	height     int
	mouseShown bool
}

// NewWindow creates a new GLFW window with an OpenGL context. The cursor starts hidden and captured.
func NewWindow(width, height int, title string, vsync bool) (*Window, error) {
	// Initialize GLFW
	if err := glfw.Init(); err != nil {
		return nil, fmt.Errorf("failed to initialize GLFW: %w", err)
	}

	// Configure GLFW
	glfw.WindowHint(glfw.ContextVersionMajor, 4)
	glfw.WindowHint(glfw.ContextVersionMinor, 6)
	glfw.WindowHint(glfw.OpenGLProfile, glfw.OpenGLCoreProfile)
	glfw.WindowHint(glfw.OpenGLForwardCompatible, glfw.True)
	glfw.WindowHint(glfw.Resizable, glfw.True)

	// Create window
	glfwWindow, err := glfw.CreateWindow(width, height, title, nil, nil)
	if err != nil {
		glfw.Terminate()
		return nil, fmt.Errorf("failed to create GLFW window: %w", err)
	}

	glfwWindow.MakeContextCurrent()
	if vsync {
		glfw.SwapInterval(1) // Enable vsync
	} else {
		glfw.SwapInterval(0) // Disable vsync
	}

	// Initialize OpenGL
	if err := gl.Init(); err != nil {
		glfw.Terminate()
		return nil, fmt.Errorf("failed to initialize OpenGL: %w", err)
	}

	logger.Log.Info("OpenGL context ready",
		zap.String("version", gl.GoStr(gl.GetString(gl.VERSION))),
		zap.String("renderer", gl.GoStr(gl.GetString(gl.RENDERER))))

	fbWidth, fbHeight := glfwWindow.GetFramebufferSize()
	w := &Window{
		glfwWindow: glfwWindow,
		width:      fbWidth,
		height:     fbHeight,
	}
	w.ShowMouse(false)

	return w, nil
}

// SetEventHandler routes keyboard, cursor, scroll and resize callbacks to handle
func (w *Window) SetEventHandler(handle func(render.Event)) {
	w.glfwWindow.SetKeyCallback(func(_ *glfw.Window, key glfw.Key, _ int, action glfw.Action, _ glfw.ModifierKey) {
		if action == glfw.Release {
			return
		}
		handle(render.Event{Type: render.EventKeyDown, Key: translateKey(key)})
	})
	w.glfwWindow.SetCursorPosCallback(func(_ *glfw.Window, xpos, ypos float64) {
		handle(render.Event{Type: render.EventMouseMove, MouseX: xpos, MouseY: ypos})
	})
	w.glfwWindow.SetScrollCallback(func(_ *glfw.Window, _, yoffset float64) {
		handle(render.Event{Type: render.EventMouseScroll, ScrollY: yoffset})
	})
	w.glfwWindow.SetFramebufferSizeCallback(func(_ *glfw.Window, width, height int) {
		w.width, w.height = width, height
		handle(render.Event{Type: render.EventResize, Width: width, Height: height})
	})
}

// translateKey maps GLFW key codes onto the keys the demos understand
func translateKey(key glfw.Key) render.Key {
	switch key {
	case glfw.KeyEscape:
		return render.KeyEscape
	case glfw.KeySpace:
		return render.KeySpace
	case glfw.KeyW:
		return render.KeyW
	case glfw.KeyA:
		return render.KeyA
	case glfw.KeyS:
		return render.KeyS
	case glfw.KeyD:
		return render.KeyD
	case glfw.KeyUp:
		return render.KeyUp
	case glfw.KeyDown:
		return render.KeyDown
	case glfw.KeyLeft:
		return render.KeyLeft
	case glfw.KeyRight:
		return render.KeyRight
	}
	return render.KeyUnknown
}

// SwapBuffers swaps the front and back buffers
func (w *Window) SwapBuffers() {
	w.glfwWindow.SwapBuffers()
}

// PollEvents processes pending events
func (w *Window) PollEvents() {
	glfw.PollEvents()
}

// ShouldClose returns whether the window should close
func (w *Window) ShouldClose() bool {
	return w.glfwWindow.ShouldClose()
}

// RequestQuit asks the main loop to finish after the current frame
func (w *Window) RequestQuit() {
	w.glfwWindow.SetShouldClose(true)
}

// Close releases all resources
func (w *Window) Close() {
	glfw.Terminate()
}

// FramebufferSize returns the drawable size in pixels
func (w *Window) FramebufferSize() (width, height int) {
	return w.width, w.height
}

// ShowMouse shows the cursor, or hides and captures it for mouse look
func (w *Window) ShowMouse(shown bool) {
	w.mouseShown = shown

	if shown {
		w.glfwWindow.SetInputMode(glfw.CursorMode, glfw.CursorNormal)
	} else {
		w.glfwWindow.SetInputMode(glfw.CursorMode, glfw.CursorDisabled)
	}
}

// MouseShown returns whether the cursor is currently visible
func (w *Window) MouseShown() bool {
	return w.mouseShown
}

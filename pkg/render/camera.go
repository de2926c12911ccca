package render

import (
	"time"

	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
)

// Direction is a camera translation requested from the keyboard.
type Direction int

const (
	DirectionNone Direction = iota
	Forward
	Backward
	Left
	Right
)

// Camera implements a free-fly camera driven by keyboard, mouse and scroll input
type Camera struct {
	// Position and orientation
	position mgl32.Vec3
	worldUp  mgl32.Vec3
	front    mgl32.Vec3
	up       mgl32.Vec3
	right    mgl32.Vec3

	// Euler angles
	yaw   float32
	pitch float32

	// Camera options
	fov         float32
	moveSpeed   float32
	sensitivity float32

	// Mouse state
	lastX      float64
	lastY      float64
	firstMouse bool

	// Frame timing
	lastTime  time.Duration
	deltaTime time.Duration
	ticked    bool
}

// CameraOption tweaks a camera at construction.
type CameraOption func(*Camera)

// WithMoveSpeed sets the translation speed in units per second.
func WithMoveSpeed(speed float32) CameraOption {
	return func(c *Camera) { c.moveSpeed = speed }
}

// WithSensitivity sets the degrees of rotation per pixel of mouse travel.
func WithSensitivity(s float32) CameraOption {
	return func(c *Camera) { c.sensitivity = s }
}

// NewCamera creates a camera at position looking down -Z
func NewCamera(position mgl32.Vec3, opts ...CameraOption) *Camera {
	camera := &Camera{
		position:    position,
		worldUp:     mgl32.Vec3{0, 1, 0},  // Y-up coordinate system
		front:       mgl32.Vec3{0, 0, -1}, // Looking along negative Z
		yaw:         DefaultYaw,
		pitch:       DefaultPitch,
		fov:         DefaultFOV,
		moveSpeed:   DefaultMoveSpeed,
		sensitivity: DefaultSensitivity,
		firstMouse:  true,
	}
	for _, opt := range opts {
		opt(camera)
	}

	camera.updateCameraVectors()

	return camera
}

// NewDefaultCamera creates the camera both demos start with, three units back from the origin.
func NewDefaultCamera(opts ...CameraOption) *Camera {
	return NewCamera(mgl32.Vec3{0, 0, 3}, opts...)
}

// updateCameraVectors recalculates the basis from the Euler angles
func (c *Camera) updateCameraVectors() {
	yaw := mgl32.DegToRad(c.yaw)
	pitch := mgl32.DegToRad(c.pitch)

	front := mgl32.Vec3{
		math32.Cos(pitch) * math32.Cos(yaw),
		math32.Sin(pitch),
		math32.Cos(pitch) * math32.Sin(yaw),
	}
	c.front = front.Normalize()

	// Re-calculate right and up vectors
	c.right = c.front.Cross(c.worldUp).Normalize()
	c.up = c.right.Cross(c.front).Normalize()
}

// AdvanceTime records the frame timestamp now and returns the time since the
// previous call. The first call returns zero.
func (c *Camera) AdvanceTime(now time.Duration) time.Duration {
	if c.ticked {
		c.deltaTime = now - c.lastTime
	}
	c.lastTime = now
	c.ticked = true
	return c.deltaTime
}

// DeltaTime returns the duration of the last frame
func (c *Camera) DeltaTime() time.Duration {
	return c.deltaTime
}

// UpdateFromKey moves the camera for dt seconds in the given direction.
// Position is unbounded.
func (c *Camera) UpdateFromKey(dir Direction, dt float32) {
	speed := c.moveSpeed * dt

	switch dir {
	case Forward:
		c.position = c.position.Add(c.front.Mul(speed))
	case Backward:
		c.position = c.position.Sub(c.front.Mul(speed))
	case Left:
		c.position = c.position.Sub(c.right.Mul(speed))
	case Right:
		c.position = c.position.Add(c.right.Mul(speed))
	}
}

// UpdateFromMouse turns the camera by the cursor travel since the previous sample
func (c *Camera) UpdateFromMouse(xpos, ypos float64) {
	if c.firstMouse {
		c.lastX = xpos
		c.lastY = ypos
		c.firstMouse = false
		return
	}

	// Calculate offset
	xoffset := float32(xpos - c.lastX)
	yoffset := float32(c.lastY - ypos) // Reversed: y ranges bottom to top

	c.lastX = xpos
	c.lastY = ypos

	c.yaw += xoffset * c.sensitivity
	c.pitch += yoffset * c.sensitivity

	// Constrain pitch
	c.pitch = mgl32.Clamp(c.pitch, MinPitch, MaxPitch)

	c.updateCameraVectors()
}

// UpdateFromScroll zooms by narrowing or widening the field of view
func (c *Camera) UpdateFromScroll(yoffset float64) {
	c.fov = mgl32.Clamp(c.fov-float32(yoffset), MinFOV, MaxFOV)
}

// ResetMouseState makes the next mouse sample a new baseline instead of a rotation
func (c *Camera) ResetMouseState() {
	c.firstMouse = true
}

// ViewMatrix returns the current view matrix
func (c *Camera) ViewMatrix() mgl32.Mat4 {
	return mgl32.LookAtV(c.position, c.position.Add(c.front), c.up)
}

// ProjectionMatrix returns the perspective projection for the given aspect ratio
func (c *Camera) ProjectionMatrix(aspect float32) mgl32.Mat4 {
	return mgl32.Perspective(mgl32.DegToRad(c.fov), aspect, NearPlane, FarPlane)
}

// Position returns the current camera position
func (c *Camera) Position() mgl32.Vec3 {
	return c.position
}

// Orientation returns the current yaw and pitch in degrees
func (c *Camera) Orientation() (yaw, pitch float32) {
	return c.yaw, c.pitch
}

// FOV returns the vertical field of view in degrees
func (c *Camera) FOV() float32 {
	return c.fov
}

// Front returns the camera's front direction vector
func (c *Camera) Front() mgl32.Vec3 {
	return c.front
}

// Right returns the camera's right direction vector
func (c *Camera) Right() mgl32.Vec3 {
	return c.right
}

// Up returns the camera's up direction vector
func (c *Camera) Up() mgl32.Vec3 {
	return c.up
}

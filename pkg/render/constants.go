package render

import "github.com/go-gl/mathgl/mgl32"

// Camera constants
const (
	// Movement speeds
	DefaultMoveSpeed   = 2.5
	DefaultSensitivity = 0.1

	// Default orientation
	DefaultYaw   = -90.0 // Facing -Z direction
	DefaultPitch = 0.0

	// Field of view
	DefaultFOV = 45.0
	MinFOV     = 1.0
	MaxFOV     = 45.0

	// Constraints
	MaxPitch = 89.0
	MinPitch = -89.0

	// Clip planes
	NearPlane = 0.1
	FarPlane  = 100.0
)

// ErrorClearColor replaces the background once an asset fails to load.
var ErrorClearColor = mgl32.Vec4{1.0, 0.0, 0.0, 1.0}

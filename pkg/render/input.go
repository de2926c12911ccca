package render

// Key identifies the keys the demos react to.
type Key int

const (
	KeyUnknown Key = iota
	KeyEscape
	KeySpace
	KeyW
	KeyA
	KeyS
	KeyD
	KeyUp
	KeyDown
	KeyLeft
	KeyRight
)

// EventType says which fields of an Event are meaningful.
type EventType int

const (
	EventKeyDown EventType = iota + 1
	EventMouseMove
	EventMouseScroll
	EventResize
)

// Event is one input event from the window system.
type Event struct {
	Type    EventType
	Key     Key     // EventKeyDown
	MouseX  float64 // EventMouseMove
	MouseY  float64 // EventMouseMove
	ScrollY float64 // EventMouseScroll
	Width   int     // EventResize
	Height  int     // EventResize
}

// Direction returns the camera movement bound to k.
func (k Key) Direction() Direction {
	switch k {
	case KeyW, KeyUp:
		return Forward
	case KeyS, KeyDown:
		return Backward
	case KeyA, KeyLeft:
		return Left
	case KeyD, KeyRight:
		return Right
	}
	return DirectionNone
}

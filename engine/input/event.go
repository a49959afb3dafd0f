// Package input turns window callbacks into typed event values that the frame loop drains once per frame.
package input

import "github.com/go-gl/mathgl/mgl32"

// MouseButton identifies a mouse button.
type MouseButton int

const (
	MouseLeft MouseButton = iota
	MouseRight
	MouseMiddle
)

// Event is one input event. The concrete types below are the only implementations.
type Event interface {
	isEvent()
}

// KeyDown reports a key press. Repeat is true for auto-repeat presses.
type KeyDown struct {
	Key    int
	Repeat bool
}

// KeyUp reports a key release.
type KeyUp struct {
	Key int
}

// MouseButtonDown reports a button press at Position (window pixels, origin top-left).
type MouseButtonDown struct {
	Button   MouseButton
	Position mgl32.Vec2
}

// MouseButtonUp reports a button release at Position.
type MouseButtonUp struct {
	Button   MouseButton
	Position mgl32.Vec2
}

// MouseMove reports the new cursor position.
type MouseMove struct {
	Position mgl32.Vec2
}

// MouseWheel reports a vertical scroll; positive is away from the user.
type MouseWheel struct {
	Delta float32
}

// WindowResized reports a new framebuffer size in pixels.
type WindowResized struct {
	Width, Height int
}

// WindowMinimized reports that the window was iconified.
type WindowMinimized struct{}

// WindowRestored reports that the window was restored from iconified state.
type WindowRestored struct{}

// Quit asks the frame loop to stop.
type Quit struct{}

func (KeyDown) isEvent()         {}
func (KeyUp) isEvent()           {}
func (MouseButtonDown) isEvent() {}
func (MouseButtonUp) isEvent()   {}
func (MouseMove) isEvent()       {}
func (MouseWheel) isEvent()      {}
func (WindowResized) isEvent()   {}
func (WindowMinimized) isEvent() {}
func (WindowRestored) isEvent()  {}
func (Quit) isEvent()            {}

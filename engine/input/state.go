package input

import (
	"github.com/Carmen-Shannon/hairstylist/common"
	"github.com/go-gl/mathgl/mgl32"
)

// DragState tracks one mouse button between press and release.
type DragState struct {
	Active  bool
	Start   mgl32.Vec2
	Current mgl32.Vec2
}

// Delta returns Current - Start.
func (d DragState) Delta() mgl32.Vec2 {
	return d.Current.Sub(d.Start)
}

// State is the input snapshot built by applying events in order. It holds no
// references to the window.
type State struct {
	keys  map[int]bool
	mouse mgl32.Vec2
	drags [3]DragState
}

// NewState creates an empty State.
func NewState() *State {
	return &State{keys: make(map[int]bool)}
}

// Apply folds one event into the state.
//
// Parameters:
//   - e: the event to apply
func (s *State) Apply(e Event) {
	switch ev := e.(type) {
	case KeyDown:
		s.keys[ev.Key] = true
	case KeyUp:
		delete(s.keys, ev.Key)
	case MouseMove:
		s.mouse = ev.Position
		for i := range s.drags {
			if s.drags[i].Active {
				s.drags[i].Current = ev.Position
			}
		}
	case MouseButtonDown:
		s.mouse = ev.Position
		if d := s.drag(ev.Button); d != nil {
			*d = DragState{Active: true, Start: ev.Position, Current: ev.Position}
		}
	case MouseButtonUp:
		s.mouse = ev.Position
		if d := s.drag(ev.Button); d != nil {
			*d = DragState{}
		}
	}
}

func (s *State) drag(b MouseButton) *DragState {
	if b < 0 || int(b) >= len(s.drags) {
		return nil
	}
	return &s.drags[b]
}

// IsKeyDown reports whether key is held.
func (s *State) IsKeyDown(key int) bool {
	return s.keys[key]
}

// ShiftDown reports whether either shift key is held.
func (s *State) ShiftDown() bool {
	return s.keys[common.KeyLeftShift] || s.keys[common.KeyRightShift]
}

// MousePosition returns the last known cursor position in window pixels.
func (s *State) MousePosition() mgl32.Vec2 {
	return s.mouse
}

// Drag returns the drag state of a button.
func (s *State) Drag(b MouseButton) DragState {
	if d := s.drag(b); d != nil {
		return *d
	}
	return DragState{}
}

// LeftDrag returns the left button drag state.
func (s *State) LeftDrag() DragState { return s.drags[MouseLeft] }

// RightDrag returns the right button drag state.
func (s *State) RightDrag() DragState { return s.drags[MouseRight] }

// IsDragging reports whether the left or right button is held.
func (s *State) IsDragging() bool {
	return s.drags[MouseLeft].Active || s.drags[MouseRight].Active
}

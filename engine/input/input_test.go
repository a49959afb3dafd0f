package input

import (
	"testing"

	"github.com/Carmen-Shannon/hairstylist/common"
	"github.com/go-gl/mathgl/mgl32"
)

func TestQueueDrainPreservesOrder(t *testing.T) {
	q := NewQueue()
	q.Push(KeyDown{Key: common.KeyR})
	q.Push(MouseWheel{Delta: -1})
	q.Push(Quit{})

	got := q.Drain()
	if len(got) != 3 {
		t.Fatalf("Drain returned %d events, want 3", len(got))
	}
	if _, ok := got[0].(KeyDown); !ok {
		t.Errorf("event 0 = %T, want KeyDown", got[0])
	}
	if _, ok := got[2].(Quit); !ok {
		t.Errorf("event 2 = %T, want Quit", got[2])
	}
	if q.Len() != 0 || q.Drain() != nil {
		t.Fatal("queue not empty after Drain")
	}
}

func TestStateDrag(t *testing.T) {
	s := NewState()
	start := mgl32.Vec2{10, 20}
	s.Apply(MouseButtonDown{Button: MouseLeft, Position: start})
	if !s.IsDragging() || !s.LeftDrag().Active {
		t.Fatal("left press did not start a drag")
	}
	if s.RightDrag().Active {
		t.Fatal("right drag active after left press")
	}

	s.Apply(MouseMove{Position: mgl32.Vec2{30, 25}})
	d := s.LeftDrag()
	if d.Start != start || d.Current != (mgl32.Vec2{30, 25}) {
		t.Fatalf("drag = %+v", d)
	}
	if d.Delta() != (mgl32.Vec2{20, 5}) {
		t.Fatalf("Delta = %v", d.Delta())
	}

	s.Apply(MouseButtonUp{Button: MouseLeft, Position: mgl32.Vec2{30, 25}})
	if s.IsDragging() {
		t.Fatal("drag still active after release")
	}
	if s.LeftDrag() != (DragState{}) {
		t.Fatalf("drag not reset: %+v", s.LeftDrag())
	}
}

func TestStateMiddleButtonIsNotDragging(t *testing.T) {
	s := NewState()
	s.Apply(MouseButtonDown{Button: MouseMiddle})
	if s.IsDragging() {
		t.Fatal("middle button counted as dragging")
	}
	if !s.Drag(MouseMiddle).Active {
		t.Fatal("middle drag not tracked")
	}
}

func TestStateKeys(t *testing.T) {
	tests := []struct {
		name  string
		key   int
		shift bool
	}{
		{name: "left shift", key: common.KeyLeftShift, shift: true},
		{name: "right shift", key: common.KeyRightShift, shift: true},
		{name: "letter", key: common.KeyC, shift: false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := NewState()
			s.Apply(KeyDown{Key: tt.key})
			if !s.IsKeyDown(tt.key) {
				t.Fatal("key not down after KeyDown")
			}
			if s.ShiftDown() != tt.shift {
				t.Fatalf("ShiftDown = %v, want %v", s.ShiftDown(), tt.shift)
			}
			s.Apply(KeyUp{Key: tt.key})
			if s.IsKeyDown(tt.key) || s.ShiftDown() {
				t.Fatal("key still down after KeyUp")
			}
		})
	}
}

func TestStateMousePosition(t *testing.T) {
	s := NewState()
	s.Apply(MouseMove{Position: mgl32.Vec2{5, 6}})
	if s.MousePosition() != (mgl32.Vec2{5, 6}) {
		t.Fatalf("MousePosition = %v", s.MousePosition())
	}
}

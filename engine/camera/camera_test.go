package camera

import (
	"math"
	"testing"

	"github.com/Carmen-Shannon/hairstylist/common"
	"github.com/go-gl/mathgl/mgl32"
)

func newPainterCamera() Camera {
	c := NewCamera(
		WithPosition(mgl32.Vec3{0, 0, 1}),
		WithOrthographic(0, 1, 0, 1, 0.1, 100),
		WithViewport(common.NewRect(0, 0, 500, 500)),
	)
	c.Update()
	return c
}

func TestScreenToViewportPoint(t *testing.T) {
	c := NewCamera(WithViewport(common.NewRect(500, 0, 500, 500)))
	got := c.ScreenToViewportPoint(mgl32.Vec2{600, 100})
	want := mgl32.Vec3{100, 400, 0}
	if got != want {
		t.Fatalf("ScreenToViewportPoint = %v, want %v", got, want)
	}
}

func TestViewportToNDC(t *testing.T) {
	c := NewCamera(WithViewport(common.NewRect(0, 0, 400, 200)))
	tests := []struct {
		in, want mgl32.Vec3
	}{
		{in: mgl32.Vec3{200, 100, 0}, want: mgl32.Vec3{0, 0, 0}},
		{in: mgl32.Vec3{0, 0, 0.5}, want: mgl32.Vec3{-1, -1, 0.5}},
		{in: mgl32.Vec3{400, 200, 0}, want: mgl32.Vec3{1, 1, 0}},
	}
	for _, tt := range tests {
		if got := c.ViewportToNDC(tt.in); !got.ApproxEqual(tt.want) {
			t.Errorf("ViewportToNDC(%v) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestPainterUnprojectsToCanvasUnits(t *testing.T) {
	c := newPainterCamera()
	tests := []struct {
		screen mgl32.Vec2
		want   mgl32.Vec2
	}{
		{screen: mgl32.Vec2{125, 375}, want: mgl32.Vec2{0.25, 0.25}},
		{screen: mgl32.Vec2{250, 250}, want: mgl32.Vec2{0.5, 0.5}},
		{screen: mgl32.Vec2{500, 0}, want: mgl32.Vec2{1, 1}},
	}
	for _, tt := range tests {
		got := c.ViewportToWorldPoint(c.ScreenToViewportPoint(tt.screen))
		if !got.Vec2().ApproxEqualThreshold(tt.want, 1e-5) {
			t.Errorf("screen %v -> world %v, want %v", tt.screen, got, tt.want)
		}
	}
}

func TestProjectionModesAreExclusive(t *testing.T) {
	c := NewCamera()
	c.SetOrthographic(0, 1, 0, 1, 0.1, 100)
	if c.Kind() != ProjectionOrthographic {
		t.Fatal("SetOrthographic did not select orthographic")
	}
	c.SetPerspective(45, 500, 500, 0.1, 100)
	if c.Kind() != ProjectionPerspective {
		t.Fatal("SetPerspective did not replace orthographic")
	}
}

func TestPerspectiveDepthRange(t *testing.T) {
	c := NewCamera(WithPerspective(45, 1, 0.1, 100))
	c.Update()
	p := c.ProjectionMatrix()
	tests := []struct {
		eyeZ, want float32
	}{
		{eyeZ: -0.1, want: 0},
		{eyeZ: -100, want: 1},
	}
	for _, tt := range tests {
		clip := p.Mul4x1(mgl32.Vec4{0, 0, tt.eyeZ, 1})
		if got := clip.Z() / clip.W(); math.Abs(float64(got-tt.want)) > 1e-4 {
			t.Errorf("depth at z=%v = %v, want %v", tt.eyeZ, got, tt.want)
		}
	}
}

func TestZoom(t *testing.T) {
	c := NewCamera(WithPosition(mgl32.Vec3{0, 0, 10}), WithPerspective(45, 1, 0.1, 100))
	c.Zoom(1)
	if got := c.Position(); !got.ApproxEqual(mgl32.Vec3{0, 0, 9}) {
		t.Fatalf("after Zoom(1) position = %v, want (0,0,9)", got)
	}
	c.Zoom(-2)
	if got := c.Position(); !got.ApproxEqual(mgl32.Vec3{0, 0, 11}) {
		t.Fatalf("after Zoom(-2) position = %v, want (0,0,11)", got)
	}
	c.Zoom(1000)
	if got := c.Position().Len(); math.Abs(float64(got-0.1)) > 1e-5 {
		t.Fatalf("zoom past target: distance = %v, want near plane 0.1", got)
	}
}

func TestZoomOrthographicIsNoop(t *testing.T) {
	c := newPainterCamera()
	before := c.Position()
	c.Zoom(0.5)
	if c.Position() != before {
		t.Fatalf("orthographic zoom moved camera to %v", c.Position())
	}
}

func TestUniform(t *testing.T) {
	c := NewCamera(WithPosition(mgl32.Vec3{1, 2, 3}))
	c.Update()
	u := c.Uniform()
	if u.Size() != 144 {
		t.Fatalf("Size = %d, want 144", u.Size())
	}
	if u.Position != (mgl32.Vec4{1, 2, 3, 1}) {
		t.Fatalf("Position = %v", u.Position)
	}
	if len(u.Marshal()) != 144 {
		t.Fatalf("Marshal length = %d", len(u.Marshal()))
	}
}

package light

import (
	"encoding/binary"
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
)

func TestNewLightNormalizesDirection(t *testing.T) {
	l := NewLight(WithDirection(mgl32.Vec3{0, -0.5, -1}), WithAmbient(mgl32.Vec3{0.1, 0.1, 0.1}))
	d := l.Direction()
	if math.Abs(float64(d.Len()-1)) > 1e-6 {
		t.Fatalf("direction %v not normalized", d)
	}
	if d.Y() >= 0 || d.Z() >= 0 {
		t.Fatalf("direction %v lost its sign", d)
	}

	l.SetDirection(mgl32.Vec3{})
	if l.Direction() != d {
		t.Fatal("zero direction replaced the previous one")
	}
}

func TestUniformMarshal(t *testing.T) {
	l := NewLight(WithDirection(mgl32.Vec3{1, 0, 0}), WithSpecular(mgl32.Vec3{0.5, 0.25, 0}))
	u := l.Uniform()
	if u.Size() != 64 {
		t.Fatalf("Size = %d, want 64", u.Size())
	}
	buf := u.Marshal()
	read := func(off int) float32 { return math.Float32frombits(binary.LittleEndian.Uint32(buf[off:])) }
	tests := []struct {
		name string
		off  int
		want float32
	}{
		{name: "direction x", off: 0, want: 1},
		{name: "direction w", off: 12, want: 0},
		{name: "diffuse r", off: 32, want: 1},
		{name: "specular g", off: 52, want: 0.25},
	}
	for _, tt := range tests {
		if got := read(tt.off); got != tt.want {
			t.Errorf("%s = %v, want %v", tt.name, got, tt.want)
		}
	}
}

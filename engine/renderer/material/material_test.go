package material

import (
	"encoding/binary"
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
)

func TestNewMaterial(t *testing.T) {
	tests := []struct {
		name          string
		opts          []MaterialBuilderOption
		wantShininess float32
		wantSpecular  mgl32.Vec3
	}{
		{name: "defaults", wantShininess: 32},
		{
			name:          "head",
			opts:          []MaterialBuilderOption{WithDiffuse(mgl32.Vec3{0.8, 0.8, 0.8}), WithSpecular(mgl32.Vec3{0.15, 0.15, 0.15}, 64)},
			wantShininess: 64,
			wantSpecular:  mgl32.Vec3{0.15, 0.15, 0.15},
		},
		{
			name:          "shininess floored",
			opts:          []MaterialBuilderOption{WithSpecular(mgl32.Vec3{1, 1, 1}, 0)},
			wantShininess: 1,
			wantSpecular:  mgl32.Vec3{1, 1, 1},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := NewMaterial(tt.name, tt.opts...)
			if m.Shininess() != tt.wantShininess || m.Specular() != tt.wantSpecular {
				t.Fatalf("got shininess %v specular %v", m.Shininess(), m.Specular())
			}
		})
	}
}

func TestUniformPacksShininess(t *testing.T) {
	u := NewMaterial("hair", WithSpecular(mgl32.Vec3{0.5, 0.5, 0.5}, 64)).Uniform()
	buf := u.Marshal()
	if u.Size() != 32 || len(buf) != 32 {
		t.Fatalf("size %d / %d", u.Size(), len(buf))
	}
	if got := math.Float32frombits(binary.LittleEndian.Uint32(buf[28:])); got != 64 {
		t.Fatalf("shininess = %v, want 64", got)
	}
}

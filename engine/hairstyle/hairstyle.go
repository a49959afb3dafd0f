// Package hairstyle holds the active hairstyle parameters and the on-disk collections of
// saved hairstyles, each paired with a raw mask file.
package hairstyle

import (
	_ "embed"
	"encoding/binary"
	"math"
	"unsafe"

	"github.com/Carmen-Shannon/hairstylist/common"
	"github.com/go-gl/mathgl/mgl32"
)

const (
	// MinWidth and MaxWidth bound the strand width in pixels.
	MinWidth float32 = 1
	MaxWidth float32 = 5
)

// Hairstyle is the tuple that drives strand synthesis.
type Hairstyle struct {
	Color  mgl32.Vec3
	Width  float32
	Length float32
}

// Normalize clamps Width to [MinWidth, MaxWidth] and floors Length at 0.
func (h Hairstyle) Normalize() Hairstyle {
	h.Width = common.Clamp(h.Width, MinWidth, MaxWidth)
	h.Length = max(h.Length, 0)
	return h
}

// Presets are the colors bound to the number keys 0 to 9.
var Presets = [10]mgl32.Vec3{
	{1, 1, 1},
	{0, 0, 0},
	{1, 0, 0},
	{0, 1, 0},
	{0, 0, 1},
	{1, 1, 0},
	{1, 0, 1},
	{0, 1, 1},
	{0.6, 0.3, 0},
	{0.2, 0, 0.4},
}

// GPUHairUniformSource is the canonical WGSL definition of the HairUniform struct.
// Matches GPUHairUniform layout exactly (32 bytes).
//
//go:embed assets/hair_uniform.wgsl
var GPUHairUniformSource string

// GPUHairUniform is the GPU-aligned hairstyle block read by the model and hair programs.
// Size: 32 bytes.
type GPUHairUniform struct {
	Color  mgl32.Vec4 // offset  0: strand color, a = 1 (vec4<f32>)
	Params mgl32.Vec4 // offset 16: length, width in pixels, viewport width, viewport height (vec4<f32>)
}

// NewHairUniform builds the uniform for a hairstyle drawn into a viewport of the given size.
//
// Parameters:
//   - h: the hairstyle
//   - viewportW, viewportH: the target viewport size in pixels
//
// Returns:
//   - GPUHairUniform: the uniform block
func NewHairUniform(h Hairstyle, viewportW, viewportH float32) GPUHairUniform {
	return GPUHairUniform{
		Color:  h.Color.Vec4(1),
		Params: mgl32.Vec4{h.Length, h.Width, viewportW, viewportH},
	}
}

// Size returns the size of the GPUHairUniform struct in bytes.
//
// Returns:
//   - int: the struct size in bytes (32)
func (g *GPUHairUniform) Size() int {
	return int(unsafe.Sizeof(*g))
}

// Marshal serializes the GPUHairUniform struct into a byte buffer suitable for GPU upload.
//
// Returns:
//   - []byte: the serialized byte buffer
func (g *GPUHairUniform) Marshal() []byte {
	buf := make([]byte, g.Size())
	for i := range 4 {
		binary.LittleEndian.PutUint32(buf[i*4:], math.Float32bits(g.Color[i]))
		binary.LittleEndian.PutUint32(buf[16+i*4:], math.Float32bits(g.Params[i]))
	}
	return buf
}

package material

import (
	_ "embed"
	"encoding/binary"
	"math"
	"unsafe"

	"github.com/go-gl/mathgl/mgl32"
)

// GPUMaterialSource is the canonical WGSL definition of the Material struct.
// Matches GPUMaterial layout exactly (32 bytes).
//
//go:embed assets/material.wgsl
var GPUMaterialSource string

// GPUMaterial is the GPU-aligned uniform for the lit head and hair fragment shaders.
// Size: 32 bytes (two vec4<f32>).
type GPUMaterial struct {
	Diffuse  mgl32.Vec4 // offset  0: diffuse RGB, a = 1
	Specular mgl32.Vec4 // offset 16: specular RGB + shininess in w
}

// Size returns the size of the GPUMaterial struct in bytes.
//
// Returns:
//   - int: the size of the struct in bytes.
func (g *GPUMaterial) Size() int {
	return int(unsafe.Sizeof(*g))
}

// Marshal serializes the GPUMaterial struct into a byte buffer suitable for GPU upload.
//
// Returns:
//   - []byte: 32-byte buffer ready for GPU upload.
func (g *GPUMaterial) Marshal() []byte {
	buf := make([]byte, 32)
	for i := range 4 {
		binary.LittleEndian.PutUint32(buf[i*4:], math.Float32bits(g.Diffuse[i]))
		binary.LittleEndian.PutUint32(buf[16+i*4:], math.Float32bits(g.Specular[i]))
	}
	return buf
}

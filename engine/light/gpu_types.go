package light

import (
	_ "embed"
	"encoding/binary"
	"math"
	"unsafe"

	"github.com/go-gl/mathgl/mgl32"
)

// GPULightSource is the canonical WGSL definition of the DirLight struct.
// Matches GPULight layout exactly (64 bytes, std140 aligned).
//
//go:embed assets/light.wgsl
var GPULightSource string

// GPULight is the GPU-aligned representation of the directional light.
// Matches the WGSL DirLight struct layout exactly (see GPULightSource).
// Size: 64 bytes.
type GPULight struct {
	Direction mgl32.Vec4 // offset  0: normalized direction, w = 0
	Ambient   mgl32.Vec4 // offset 16: ambient RGB, a unused
	Diffuse   mgl32.Vec4 // offset 32: diffuse RGB, a unused
	Specular  mgl32.Vec4 // offset 48: specular RGB, a unused
}

// Size returns the size of the GPULight struct in bytes.
//
// Returns:
//   - int: the struct size in bytes (64)
func (g *GPULight) Size() int {
	return int(unsafe.Sizeof(*g))
}

// Marshal serializes the GPULight struct into a byte buffer suitable for GPU upload.
//
// Returns:
//   - []byte: 64-byte buffer ready for GPU upload
func (g *GPULight) Marshal() []byte {
	buf := make([]byte, 64)
	for i, v := range [4]mgl32.Vec4{g.Direction, g.Ambient, g.Diffuse, g.Specular} {
		for j := range 4 {
			binary.LittleEndian.PutUint32(buf[i*16+j*4:], math.Float32bits(v[j]))
		}
	}
	return buf
}

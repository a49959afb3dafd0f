package model

import (
	_ "embed"
	"encoding/binary"
	"math"
	"unsafe"

	"github.com/Carmen-Shannon/hairstylist/common"
	"github.com/go-gl/mathgl/mgl32"
)

// GPUTransformUniformSource is the canonical WGSL definition of the TransformUniform struct.
// Matches GPUTransformUniform layout exactly (128 bytes).
//
//go:embed assets/transform_uniform.wgsl
var GPUTransformUniformSource string

// GPUTransformUniform is the GPU-aligned model transform with its normal matrix.
// Matches the WGSL TransformUniform struct layout exactly (see GPUTransformUniformSource).
// Size: 128 bytes.
type GPUTransformUniform struct {
	Model  mgl32.Mat4 // offset  0: model-to-world transform (mat4x4<f32>)
	Normal mgl32.Mat4 // offset 64: inverse-transpose of Model (mat4x4<f32>)
}

// NewTransformUniform builds the uniform for a model matrix.
//
// Parameters:
//   - m: the model-to-world matrix
//
// Returns:
//   - GPUTransformUniform: the model and normal matrices
func NewTransformUniform(m mgl32.Mat4) GPUTransformUniform {
	return GPUTransformUniform{Model: m, Normal: common.NormalMatrix(m)}
}

// Size returns the size of the GPUTransformUniform struct in bytes.
//
// Returns:
//   - int: the size of the struct in bytes (128)
func (g *GPUTransformUniform) Size() int {
	return int(unsafe.Sizeof(*g))
}

// Marshal serializes the GPUTransformUniform struct into a byte buffer suitable for GPU upload.
//
// Returns:
//   - []byte: 128-byte buffer ready for GPU upload
func (g *GPUTransformUniform) Marshal() []byte {
	buf := make([]byte, g.Size())
	for i := range 16 {
		binary.LittleEndian.PutUint32(buf[i*4:], math.Float32bits(g.Model[i]))
		binary.LittleEndian.PutUint32(buf[64+i*4:], math.Float32bits(g.Normal[i]))
	}
	return buf
}

// GPUQuadUniformSource is the canonical WGSL definition of the QuadUniform struct used by the
// composite and brush programs. Matches GPUQuadUniform layout exactly (80 bytes).
//
//go:embed assets/quad_uniform.wgsl
var GPUQuadUniformSource string

// GPUQuadUniform carries a model-view-projection matrix and a tint for 2D quads.
// Size: 80 bytes.
type GPUQuadUniform struct {
	MVP  mgl32.Mat4 // offset  0: model-view-projection (mat4x4<f32>)
	Tint mgl32.Vec4 // offset 64: rgb multiplier and alpha (vec4<f32>)
}

// Size returns the size of the GPUQuadUniform struct in bytes.
//
// Returns:
//   - int: the size of the struct in bytes (80)
func (g *GPUQuadUniform) Size() int {
	return int(unsafe.Sizeof(*g))
}

// Marshal serializes the GPUQuadUniform struct into a byte buffer suitable for GPU upload.
//
// Returns:
//   - []byte: 80-byte buffer ready for GPU upload
func (g *GPUQuadUniform) Marshal() []byte {
	buf := make([]byte, g.Size())
	for i := range 16 {
		binary.LittleEndian.PutUint32(buf[i*4:], math.Float32bits(g.MVP[i]))
	}
	for i := range 4 {
		binary.LittleEndian.PutUint32(buf[64+i*4:], math.Float32bits(g.Tint[i]))
	}
	return buf
}

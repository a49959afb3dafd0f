package common

import (
	"cmp"
	"unsafe"

	"github.com/go-gl/mathgl/mgl32"
)

// clipDepthCorrection remaps OpenGL clip depth [-1, 1] to WebGPU clip depth [0, 1].
// Column-major: z' = 0.5*z + 0.5*w.
var clipDepthCorrection = mgl32.Mat4{
	1, 0, 0, 0,
	0, 1, 0, 0,
	0, 0, 0.5, 0,
	0, 0, 0.5, 1,
}

// Clamp limits v to the inclusive range [lo, hi].
//
// Parameters:
//   - v: the value to clamp
//   - lo: the lower bound
//   - hi: the upper bound
//
// Returns:
//   - T: v limited to [lo, hi]
func Clamp[T cmp.Ordered](v, lo, hi T) T {
	return min(max(v, lo), hi)
}

// SliceToBytes converts any slice to a byte slice for GPU buffer uploads.
// Uses unsafe pointer operations to create a view into the original data.
// WARNING: The returned slice shares memory with the input - do not modify.
//
// Parameters:
//   - data: source slice of any type
//
// Returns:
//   - []byte: byte slice view of the input data, or nil if input is empty
func SliceToBytes[T any](data []T) []byte {
	if len(data) == 0 {
		return nil
	}
	var zero T
	size := unsafe.Sizeof(zero)
	return unsafe.Slice((*byte)(unsafe.Pointer(&data[0])), int(size)*len(data))
}

// Perspective creates a right-handed perspective projection for WebGPU clip space.
//
// Parameters:
//   - fovY: vertical field of view in radians
//   - aspect: viewport aspect ratio (width/height)
//   - near: near plane distance
//   - far: far plane distance
//
// Returns:
//   - mgl32.Mat4: the projection matrix with depth mapped to [0, 1]
func Perspective(fovY, aspect, near, far float32) mgl32.Mat4 {
	return clipDepthCorrection.Mul4(mgl32.Perspective(fovY, aspect, near, far))
}

// Ortho creates an orthographic projection for WebGPU clip space.
//
// Parameters:
//   - left, right: horizontal extents of the view volume
//   - bottom, top: vertical extents of the view volume
//   - near, far: depth extents of the view volume
//
// Returns:
//   - mgl32.Mat4: the projection matrix with depth mapped to [0, 1]
func Ortho(left, right, bottom, top, near, far float32) mgl32.Mat4 {
	return clipDepthCorrection.Mul4(mgl32.Ortho(left, right, bottom, top, near, far))
}

// NormalMatrix returns the inverse-transpose of the model matrix, widened back to a Mat4
// so it can be uploaded with std140 column alignment.
func NormalMatrix(model mgl32.Mat4) mgl32.Mat4 {
	return model.Inv().Transpose()
}

package camera

import (
	"github.com/Carmen-Shannon/hairstylist/common"
	"github.com/go-gl/mathgl/mgl32"
)

type CameraBuilderOption func(*cameraImpl)

// WithPosition sets the camera's world-space position.
//
// Parameters:
//   - p: the position
//
// Returns:
//   - CameraBuilderOption: a function that sets the camera's position
func WithPosition(p mgl32.Vec3) CameraBuilderOption {
	return func(c *cameraImpl) {
		c.position = p
	}
}

// WithTarget sets the point the camera looks at.
//
// Parameters:
//   - target: the look-at point
//
// Returns:
//   - CameraBuilderOption: a function that sets the camera's target
func WithTarget(target mgl32.Vec3) CameraBuilderOption {
	return func(c *cameraImpl) {
		c.target = target
	}
}

// WithUp sets the camera's up vector.
//
// Parameters:
//   - up: the up vector
//
// Returns:
//   - CameraBuilderOption: a function that sets the camera's up vector
func WithUp(up mgl32.Vec3) CameraBuilderOption {
	return func(c *cameraImpl) {
		c.up = up
	}
}

// WithViewport sets the camera's viewport in window pixel space.
//
// Parameters:
//   - vp: the viewport rectangle
//
// Returns:
//   - CameraBuilderOption: a function that sets the camera's viewport
func WithViewport(vp common.Rect) CameraBuilderOption {
	return func(c *cameraImpl) {
		c.viewport = vp
	}
}

// WithOrthographic configures an orthographic projection.
//
// Parameters:
//   - left, right, bottom, top: view volume extents
//   - near, far: clipping plane distances
//
// Returns:
//   - CameraBuilderOption: a function that selects the orthographic projection
func WithOrthographic(left, right, bottom, top, near, far float32) CameraBuilderOption {
	return func(c *cameraImpl) {
		c.kind = ProjectionOrthographic
		c.ortho = orthoVolume{left: left, right: right, bottom: bottom, top: top}
		c.near, c.far = near, far
	}
}

// WithPerspective configures a perspective projection.
//
// Parameters:
//   - fovYDegrees: vertical field of view in degrees
//   - aspect: width / height
//   - near, far: clipping plane distances
//
// Returns:
//   - CameraBuilderOption: a function that selects the perspective projection
func WithPerspective(fovYDegrees, aspect, near, far float32) CameraBuilderOption {
	return func(c *cameraImpl) {
		c.kind = ProjectionPerspective
		c.fovY = mgl32.DegToRad(fovYDegrees)
		c.aspect = aspect
		c.near, c.far = near, far
	}
}

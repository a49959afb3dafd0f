package camera

import (
	"sync"

	"github.com/Carmen-Shannon/hairstylist/common"
	"github.com/go-gl/mathgl/mgl32"
)

// ProjectionKind selects how a camera projects the scene.
type ProjectionKind int

const (
	// ProjectionPerspective is a pinhole projection with a vertical field of view.
	ProjectionPerspective ProjectionKind = iota
	// ProjectionOrthographic is a parallel projection over an explicit view volume.
	ProjectionOrthographic
)

// orthoVolume holds the extents of an orthographic view volume.
type orthoVolume struct {
	left, right, bottom, top float32
}

type cameraImpl struct {
	mu *sync.Mutex

	position mgl32.Vec3
	target   mgl32.Vec3
	up       mgl32.Vec3

	viewport common.Rect

	kind   ProjectionKind
	fovY   float32 // radians
	aspect float32
	ortho  orthoVolume
	near   float32
	far    float32

	view           mgl32.Mat4
	projection     mgl32.Mat4
	viewProjection mgl32.Mat4
	inverseVP      mgl32.Mat4
}

// Camera holds a position, a look-at target, a viewport rectangle in window pixels and
// exactly one projection. Matrices are recomputed by Update, once per frame; the
// coordinate transforms read the matrices of the last Update.
type Camera interface {
	// Position returns the camera's world-space position.
	//
	// Returns:
	//   - mgl32.Vec3: the position
	Position() mgl32.Vec3

	// SetPosition moves the camera.
	//
	// Parameters:
	//   - p: the new world-space position
	SetPosition(p mgl32.Vec3)

	// Target returns the point the camera looks at.
	//
	// Returns:
	//   - mgl32.Vec3: the look-at target
	Target() mgl32.Vec3

	// LookAt points the camera at target.
	//
	// Parameters:
	//   - target: the world-space point to look at
	LookAt(target mgl32.Vec3)

	// Up returns the camera's up vector.
	//
	// Returns:
	//   - mgl32.Vec3: the up vector
	Up() mgl32.Vec3

	// SetUp sets the camera's up vector.
	//
	// Parameters:
	//   - up: the new up vector
	SetUp(up mgl32.Vec3)

	// Viewport returns the camera's viewport in window pixel space.
	//
	// Returns:
	//   - common.Rect: the viewport rectangle
	Viewport() common.Rect

	// SetViewport sets the camera's viewport in window pixel space (origin top-left).
	//
	// Parameters:
	//   - vp: the viewport rectangle
	SetViewport(vp common.Rect)

	// Kind returns the active projection kind.
	//
	// Returns:
	//   - ProjectionKind: orthographic or perspective
	Kind() ProjectionKind

	// SetOrthographic switches the camera to an orthographic projection, replacing any perspective.
	//
	// Parameters:
	//   - left, right, bottom, top: view volume extents
	//   - near, far: clipping plane distances
	SetOrthographic(left, right, bottom, top, near, far float32)

	// SetPerspective switches the camera to a perspective projection, replacing any orthographic one.
	//
	// Parameters:
	//   - fovYDegrees: vertical field of view in degrees
	//   - width, height: the size the aspect ratio is derived from
	//   - near, far: clipping plane distances
	SetPerspective(fovYDegrees, width, height, near, far float32)

	// Near returns the near clipping plane distance.
	//
	// Returns:
	//   - float32: near plane distance
	Near() float32

	// Far returns the far clipping plane distance.
	//
	// Returns:
	//   - float32: far plane distance
	Far() float32

	// Zoom moves a perspective camera along its view axis; positive delta moves toward the target.
	// The camera never gets closer to the target than the near plane distance.
	// Orthographic cameras ignore Zoom.
	//
	// Parameters:
	//   - delta: the distance to move
	Zoom(delta float32)

	// Update recomputes the view, projection and view-projection matrices and the inverse.
	Update()

	// ViewMatrix returns the view matrix of the last Update.
	ViewMatrix() mgl32.Mat4

	// ProjectionMatrix returns the projection matrix of the last Update.
	ProjectionMatrix() mgl32.Mat4

	// ViewProjectionMatrix returns projection * view of the last Update.
	ViewProjectionMatrix() mgl32.Mat4

	// ScreenToViewportPoint converts a window pixel position into viewport-local pixels with y up.
	//
	// Parameters:
	//   - p: window pixel position, origin top-left
	//
	// Returns:
	//   - mgl32.Vec3: viewport-local position, origin bottom-left, z = 0
	ScreenToViewportPoint(p mgl32.Vec2) mgl32.Vec3

	// ViewportToNDC converts a viewport-local point into normalized device coordinates.
	// z passes through unchanged.
	//
	// Parameters:
	//   - p: viewport-local position
	//
	// Returns:
	//   - mgl32.Vec3: the point in NDC
	ViewportToNDC(p mgl32.Vec3) mgl32.Vec3

	// ViewportToWorldPoint unprojects a viewport-local point through the inverse view-projection.
	//
	// Parameters:
	//   - p: viewport-local position; z is the clip depth in [0, 1]
	//
	// Returns:
	//   - mgl32.Vec3: the world-space point
	ViewportToWorldPoint(p mgl32.Vec3) mgl32.Vec3

	// Uniform returns the GPU uniform block for the last Update.
	//
	// Returns:
	//   - GPUCameraUniform: view, projection and position
	Uniform() GPUCameraUniform
}

var _ Camera = &cameraImpl{}

// NewCamera creates a new Camera at (0, 0, 1) looking at the origin with a 45° perspective.
//
// Parameters:
//   - options: functional options to configure the camera
//
// Returns:
//   - Camera: the newly created camera
func NewCamera(options ...CameraBuilderOption) Camera {
	c := &cameraImpl{
		mu:       &sync.Mutex{},
		position: mgl32.Vec3{0, 0, 1},
		up:       mgl32.Vec3{0, 1, 0},
		viewport: common.NewRect(0, 0, 1, 1),
		kind:     ProjectionPerspective,
		fovY:     mgl32.DegToRad(45),
		aspect:   1,
		near:     0.1,
		far:      100,
	}
	for _, option := range options {
		option(c)
	}
	c.updateMatrices()
	return c
}

func (c *cameraImpl) Position() mgl32.Vec3 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.position
}

func (c *cameraImpl) SetPosition(p mgl32.Vec3) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.position = p
}

func (c *cameraImpl) Target() mgl32.Vec3 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.target
}

func (c *cameraImpl) LookAt(target mgl32.Vec3) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.target = target
}

func (c *cameraImpl) Up() mgl32.Vec3 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.up
}

func (c *cameraImpl) SetUp(up mgl32.Vec3) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.up = up
}

func (c *cameraImpl) Viewport() common.Rect {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.viewport
}

func (c *cameraImpl) SetViewport(vp common.Rect) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.viewport = vp
}

func (c *cameraImpl) Kind() ProjectionKind {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.kind
}

func (c *cameraImpl) SetOrthographic(left, right, bottom, top, near, far float32) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.kind = ProjectionOrthographic
	c.ortho = orthoVolume{left: left, right: right, bottom: bottom, top: top}
	c.near, c.far = near, far
}

func (c *cameraImpl) SetPerspective(fovYDegrees, width, height, near, far float32) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.kind = ProjectionPerspective
	c.fovY = mgl32.DegToRad(fovYDegrees)
	c.aspect = 1
	if height > 0 {
		c.aspect = width / height
	}
	c.near, c.far = near, far
}

func (c *cameraImpl) Near() float32 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.near
}

func (c *cameraImpl) Far() float32 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.far
}

func (c *cameraImpl) Zoom(delta float32) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.kind != ProjectionPerspective {
		return
	}
	offset := c.position.Sub(c.target)
	dist := offset.Len()
	if dist == 0 {
		return
	}
	next := max(dist-delta, c.near)
	c.position = c.target.Add(offset.Mul(next / dist))
}

func (c *cameraImpl) Update() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.updateMatrices()
}

func (c *cameraImpl) ViewMatrix() mgl32.Mat4 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.view
}

func (c *cameraImpl) ProjectionMatrix() mgl32.Mat4 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.projection
}

func (c *cameraImpl) ViewProjectionMatrix() mgl32.Mat4 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.viewProjection
}

func (c *cameraImpl) ScreenToViewportPoint(p mgl32.Vec2) mgl32.Vec3 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return mgl32.Vec3{p.X() - c.viewport.X, c.viewport.MaxY() - p.Y(), 0}
}

func (c *cameraImpl) ViewportToNDC(p mgl32.Vec3) mgl32.Vec3 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.viewportToNDC(p)
}

func (c *cameraImpl) ViewportToWorldPoint(p mgl32.Vec3) mgl32.Vec3 {
	c.mu.Lock()
	defer c.mu.Unlock()
	ndc := c.viewportToNDC(p)
	w := c.inverseVP.Mul4x1(ndc.Vec4(1))
	if w.W() == 0 {
		return w.Vec3()
	}
	return w.Vec3().Mul(1 / w.W())
}

func (c *cameraImpl) Uniform() GPUCameraUniform {
	c.mu.Lock()
	defer c.mu.Unlock()
	return GPUCameraUniform{
		View:       c.view,
		Projection: c.projection,
		Position:   c.position.Vec4(1),
	}
}

// viewportToNDC maps viewport pixels to [-1, 1]. Caller must hold the mutex.
func (c *cameraImpl) viewportToNDC(p mgl32.Vec3) mgl32.Vec3 {
	w, h := c.viewport.W, c.viewport.H
	if w <= 0 || h <= 0 {
		return mgl32.Vec3{0, 0, p.Z()}
	}
	return mgl32.Vec3{2*p.X()/w - 1, 2*p.Y()/h - 1, p.Z()}
}

// updateMatrices recalculates the view, projection, view-projection, and inverse view-projection matrices.
// Caller must hold the mutex.
func (c *cameraImpl) updateMatrices() {
	c.view = mgl32.LookAtV(c.position, c.target, c.up)
	switch c.kind {
	case ProjectionOrthographic:
		c.projection = common.Ortho(c.ortho.left, c.ortho.right, c.ortho.bottom, c.ortho.top, c.near, c.far)
	default:
		c.projection = common.Perspective(c.fovY, c.aspect, c.near, c.far)
	}
	c.viewProjection = c.projection.Mul4(c.view)
	c.inverseVP = c.viewProjection.Inv()
}

// Package arcball maps 2D drags in normalized device coordinates to 3D rotations
// through a virtual trackball sphere.
package arcball

import (
	"math"

	"github.com/Carmen-Shannon/hairstylist/common"
	"github.com/go-gl/mathgl/mgl32"
)

// DefaultRadius is the sphere radius used when none is configured.
const DefaultRadius float32 = 1.5

// axisEpsilon is the smallest cross product length treated as a usable rotation axis.
const axisEpsilon = 1e-6

// Vector projects an NDC point onto the arcball sphere and returns the unit vector to it.
// Points outside the sphere's silhouette are clamped to its rim (z = 0).
//
// Parameters:
//   - ndc: the point in normalized device coordinates; z is ignored
//   - radius: the sphere radius
//
// Returns:
//   - mgl32.Vec3: the unit vector from the sphere center to the projected point
func Vector(ndc mgl32.Vec3, radius float32) mgl32.Vec3 {
	v := mgl32.Vec3{ndc.X(), ndc.Y(), 0}
	sq := v.X()*v.X() + v.Y()*v.Y()
	if sq <= radius*radius {
		v[2] = float32(math.Sqrt(float64(radius*radius - sq)))
	}
	if v.LenSqr() == 0 {
		return mgl32.Vec3{0, 0, 1}
	}
	return v.Normalize()
}

// Angle returns the angle between two unit vectors. The dot product is clamped so
// floating point overshoot never leaves the domain of acos; the result lies in [0, π].
func Angle(a, b mgl32.Vec3) float32 {
	d := common.Clamp(a.Dot(b), -1, 1)
	return float32(math.Acos(float64(d)))
}

// Delta returns the rotation carrying a onto b on the sphere, rotating by twice
// the angle between them. ok is false when no rotation axis exists.
//
// Parameters:
//   - a: the drag start vector on the sphere
//   - b: the drag current vector on the sphere
//
// Returns:
//   - mgl32.Quat: the delta rotation
//   - bool: false when a and b are parallel and the delta is undefined
func Delta(a, b mgl32.Vec3) (mgl32.Quat, bool) {
	axis := a.Cross(b)
	if axis.Len() < axisEpsilon {
		return mgl32.QuatIdent(), false
	}
	return mgl32.QuatRotate(2*Angle(a, b), axis.Normalize()), true
}

// Arcball accumulates a model orientation across drags.
type Arcball struct {
	radius   float32
	rotation mgl32.Quat
	baseline mgl32.Quat
}

// New creates an Arcball with the identity orientation.
//
// Parameters:
//   - radius: the sphere radius, or 0 for DefaultRadius
//
// Returns:
//   - *Arcball: the new arcball
func New(radius float32) *Arcball {
	if radius <= 0 {
		radius = DefaultRadius
	}
	return &Arcball{
		radius:   radius,
		rotation: mgl32.QuatIdent(),
		baseline: mgl32.QuatIdent(),
	}
}

// Freeze captures the current orientation as the baseline for the next drag.
func (a *Arcball) Freeze() {
	a.baseline = a.rotation
}

// Drag sets the orientation to the baseline rotated by the drag from start to current.
// Zero displacement and degenerate axes leave the orientation unchanged.
//
// Parameters:
//   - start: drag start in NDC
//   - current: drag current position in NDC
func (a *Arcball) Drag(start, current mgl32.Vec3) {
	if start.X() == current.X() && start.Y() == current.Y() {
		return
	}
	delta, ok := Delta(Vector(start, a.radius), Vector(current, a.radius))
	if !ok {
		return
	}
	a.rotation = delta.Mul(a.baseline).Normalize()
}

// Rotation returns the current orientation.
func (a *Arcball) Rotation() mgl32.Quat { return a.rotation }

// SetRotation replaces both the orientation and the baseline.
func (a *Arcball) SetRotation(q mgl32.Quat) {
	a.rotation = q
	a.baseline = q
}

// Matrix returns the current orientation as a model matrix.
func (a *Arcball) Matrix() mgl32.Mat4 { return a.rotation.Mat4() }

// Radius returns the sphere radius.
func (a *Arcball) Radius() float32 { return a.radius }

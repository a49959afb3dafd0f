// Package light describes the single directional light that shades the head and the hair.
package light

import "github.com/go-gl/mathgl/mgl32"

// lightImpl is the implementation of the Light interface.
type lightImpl struct {
	direction mgl32.Vec3
	ambient   mgl32.Vec3
	diffuse   mgl32.Vec3
	specular  mgl32.Vec3
}

// Light is a directional light with separate ambient, diffuse and specular colors.
// It has no position and no attenuation.
type Light interface {
	// Direction returns the normalized direction the light travels.
	//
	// Returns:
	//   - mgl32.Vec3: the light direction
	Direction() mgl32.Vec3

	// Ambient returns the ambient color term.
	Ambient() mgl32.Vec3

	// Diffuse returns the diffuse color term.
	Diffuse() mgl32.Vec3

	// Specular returns the specular color term.
	Specular() mgl32.Vec3

	// SetDirection sets the light direction. A zero vector is ignored.
	//
	// Parameters:
	//   - d: the direction, normalized before storing
	SetDirection(d mgl32.Vec3)

	// Uniform packs the light into its GPU block.
	//
	// Returns:
	//   - GPULight: the uniform block
	Uniform() GPULight
}

var _ Light = &lightImpl{}

// NewLight creates a white directional light pointing down the negative z axis, with
// any provided options applied.
//
// Parameters:
//   - opts: variadic list of LightBuilderOption functions to configure the light
//
// Returns:
//   - Light: a new Light instance
func NewLight(opts ...LightBuilderOption) Light {
	l := &lightImpl{
		direction: mgl32.Vec3{0, 0, -1},
		diffuse:   mgl32.Vec3{1, 1, 1},
		specular:  mgl32.Vec3{1, 1, 1},
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

func (l *lightImpl) Direction() mgl32.Vec3 {
	return l.direction
}

func (l *lightImpl) Ambient() mgl32.Vec3 {
	return l.ambient
}

func (l *lightImpl) Diffuse() mgl32.Vec3 {
	return l.diffuse
}

func (l *lightImpl) Specular() mgl32.Vec3 {
	return l.specular
}

func (l *lightImpl) SetDirection(d mgl32.Vec3) {
	if d.Len() == 0 {
		return
	}
	l.direction = d.Normalize()
}

func (l *lightImpl) Uniform() GPULight {
	return GPULight{
		Direction: l.direction.Vec4(0),
		Ambient:   l.ambient.Vec4(1),
		Diffuse:   l.diffuse.Vec4(1),
		Specular:  l.specular.Vec4(1),
	}
}

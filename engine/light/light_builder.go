package light

import "github.com/go-gl/mathgl/mgl32"

// LightBuilderOption is a function that configures a Light instance during construction.
type LightBuilderOption func(*lightImpl)

// WithDirection is an option builder that sets the direction of the light.
// The direction is normalized before storing; a zero vector keeps the default.
//
// Parameters:
//   - d: the direction the light travels
//
// Returns:
//   - LightBuilderOption: a function that applies the direction option to a lightImpl
func WithDirection(d mgl32.Vec3) LightBuilderOption {
	return func(l *lightImpl) {
		l.SetDirection(d)
	}
}

// WithAmbient is an option builder that sets the ambient color term.
//
// Parameters:
//   - c: the ambient color
//
// Returns:
//   - LightBuilderOption: a function that applies the ambient option to a lightImpl
func WithAmbient(c mgl32.Vec3) LightBuilderOption {
	return func(l *lightImpl) {
		l.ambient = c
	}
}

// WithDiffuse is an option builder that sets the diffuse color term.
//
// Parameters:
//   - c: the diffuse color
//
// Returns:
//   - LightBuilderOption: a function that applies the diffuse option to a lightImpl
func WithDiffuse(c mgl32.Vec3) LightBuilderOption {
	return func(l *lightImpl) {
		l.diffuse = c
	}
}

// WithSpecular is an option builder that sets the specular color term.
//
// Parameters:
//   - c: the specular color
//
// Returns:
//   - LightBuilderOption: a function that applies the specular option to a lightImpl
func WithSpecular(c mgl32.Vec3) LightBuilderOption {
	return func(l *lightImpl) {
		l.specular = c
	}
}

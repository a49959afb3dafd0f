package material

import "github.com/go-gl/mathgl/mgl32"

// MaterialBuilderOption is a function that configures a Material instance during construction.
type MaterialBuilderOption func(*material)

// WithDiffuse is an option builder that sets the diffuse color.
//
// Parameters:
//   - c: the diffuse RGB color
//
// Returns:
//   - MaterialBuilderOption: a function that applies the diffuse option to a material
func WithDiffuse(c mgl32.Vec3) MaterialBuilderOption {
	return func(m *material) {
		m.diffuse = c
	}
}

// WithSpecular is an option builder that sets the specular color and shininess exponent.
//
// Parameters:
//   - c: the specular RGB color
//   - shininess: the specular exponent, raised to 1 if lower
//
// Returns:
//   - MaterialBuilderOption: a function that applies the specular option to a material
func WithSpecular(c mgl32.Vec3, shininess float32) MaterialBuilderOption {
	return func(m *material) {
		m.specular = c
		m.shininess = shininess
	}
}

package material

import "github.com/go-gl/mathgl/mgl32"

// material is the implementation of the Material interface.
type material struct {
	name      string
	diffuse   mgl32.Vec3
	specular  mgl32.Vec3
	shininess float32
}

// Material defines the surface response of a drawn object to the directional light:
// a diffuse color and a Phong specular color with its shininess exponent.
type Material interface {
	// Name retrieves the material identifier.
	//
	// Returns:
	//   - string: the name of the material
	Name() string

	// Diffuse retrieves the diffuse color.
	//
	// Returns:
	//   - mgl32.Vec3: the diffuse RGB color
	Diffuse() mgl32.Vec3

	// Specular retrieves the specular color.
	//
	// Returns:
	//   - mgl32.Vec3: the specular RGB color
	Specular() mgl32.Vec3

	// Shininess retrieves the specular exponent.
	//
	// Returns:
	//   - float32: the shininess exponent, at least 1
	Shininess() float32

	// Uniform packs the material into its GPU block.
	//
	// Returns:
	//   - GPUMaterial: the uniform block
	Uniform() GPUMaterial
}

var _ Material = &material{}

// NewMaterial creates a new Material with a white diffuse color, no specular response and
// a shininess of 32, with any provided options applied.
//
// Parameters:
//   - name: the material identifier
//   - options: variadic list of MaterialBuilderOption functions
//
// Returns:
//   - Material: a new Material instance
func NewMaterial(name string, options ...MaterialBuilderOption) Material {
	m := &material{
		name:      name,
		diffuse:   mgl32.Vec3{1, 1, 1},
		shininess: 32,
	}
	for _, opt := range options {
		opt(m)
	}
	m.shininess = max(m.shininess, 1)
	return m
}

func (m *material) Name() string {
	return m.name
}

func (m *material) Diffuse() mgl32.Vec3 {
	return m.diffuse
}

func (m *material) Specular() mgl32.Vec3 {
	return m.specular
}

func (m *material) Shininess() float32 {
	return m.shininess
}

func (m *material) Uniform() GPUMaterial {
	return GPUMaterial{
		Diffuse:  m.diffuse.Vec4(1),
		Specular: m.specular.Vec4(m.shininess),
	}
}

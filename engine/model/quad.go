package model

// NewQuad creates a unit quad centered on the origin in the XY plane, facing +Z,
// with uv (0,0) at the bottom-left corner.
func NewQuad(name string) Model {
	return NewModel(
		WithName(name),
		WithLayout(QuadLayout),
		WithVertices([]float32{
			-0.5, -0.5, 0, 0, 0,
			0.5, -0.5, 0, 1, 0,
			0.5, 0.5, 0, 1, 1,
			-0.5, 0.5, 0, 0, 1,
		}),
		WithIndices([]uint32{0, 1, 2, 2, 3, 0}),
	)
}

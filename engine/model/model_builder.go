package model

import (
	"github.com/Carmen-Shannon/hairstylist/engine/renderer/bind_group_provider"
)

// ModelBuilderOption is a functional option for configuring a Model via NewModel.
type ModelBuilderOption func(*model)

// WithName is an option builder that sets the name of the Model.
//
// Parameters:
//   - name: the model identifier
//
// Returns:
//   - ModelBuilderOption: a function that applies the name option to a model
func WithName(name string) ModelBuilderOption {
	return func(m *model) {
		m.name = name
	}
}

// WithLayout is an option builder that sets the vertex layout of the Model.
//
// Parameters:
//   - layout: the interleaved vertex layout
//
// Returns:
//   - ModelBuilderOption: a function that applies the layout option to a model
func WithLayout(layout VertexLayout) ModelBuilderOption {
	return func(m *model) {
		m.layout = layout
	}
}

// WithVertices is an option builder that sets the interleaved vertex data.
//
// Parameters:
//   - vertices: vertex words matching the layout
//
// Returns:
//   - ModelBuilderOption: a function that applies the vertex data to a model
func WithVertices(vertices []float32) ModelBuilderOption {
	return func(m *model) {
		m.vertices = vertices
	}
}

// WithIndices is an option builder that sets the triangle list indices.
//
// Parameters:
//   - indices: the triangle list
//
// Returns:
//   - ModelBuilderOption: a function that applies the index data to a model
func WithIndices(indices []uint32) ModelBuilderOption {
	return func(m *model) {
		m.indices = indices
		m.edges = nil
	}
}

// WithMeshProvider is an option builder that sets the provider holding the model's GPU buffers.
//
// Parameters:
//   - provider: the bind group provider
//
// Returns:
//   - ModelBuilderOption: a function that applies the mesh provider to a model
func WithMeshProvider(provider bind_group_provider.BindGroupProvider) ModelBuilderOption {
	return func(m *model) {
		m.meshProvider = provider
	}
}

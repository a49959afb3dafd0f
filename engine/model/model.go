package model

import (
	"github.com/Carmen-Shannon/hairstylist/common"
	"github.com/Carmen-Shannon/hairstylist/engine/renderer/bind_group_provider"
)

// model is the implementation of the Model interface.
type model struct {
	name         string
	layout       VertexLayout
	vertices     []float32
	indices      []uint32
	edges        []uint32
	meshProvider bind_group_provider.BindGroupProvider
}

// Model is an indexed triangle mesh with a declared vertex layout.
// The mesh data stays on the CPU side; the MeshProvider holds the GPU buffers once the
// Renderer has uploaded them.
type Model interface {
	// Name retrieves the model identifier.
	//
	// Returns:
	//   - string: the model name
	Name() string

	// Layout returns the interleaved vertex layout.
	//
	// Returns:
	//   - VertexLayout: the layout
	Layout() VertexLayout

	// Vertices returns the interleaved vertex data.
	//
	// Returns:
	//   - []float32: the vertex words
	Vertices() []float32

	// VertexCount returns the number of vertices.
	//
	// Returns:
	//   - int: len(Vertices) / floats per vertex
	VertexCount() int

	// Indices returns the triangle list indices.
	//
	// Returns:
	//   - []uint32: the indices
	Indices() []uint32

	// IndexCount returns the number of triangle indices.
	//
	// Returns:
	//   - int: the index count
	IndexCount() int

	// EdgeIndices returns the unique triangle edges as a line list, computed on first use.
	//
	// Returns:
	//   - []uint32: pairs of vertex indices
	EdgeIndices() []uint32

	// VertexBytes returns the vertex data as raw bytes for upload.
	VertexBytes() []byte

	// IndexBytes returns the index data as raw bytes for upload.
	IndexBytes() []byte

	// MeshProvider returns the provider that holds the GPU vertex and index buffers.
	//
	// Returns:
	//   - bind_group_provider.BindGroupProvider: the mesh provider
	MeshProvider() bind_group_provider.BindGroupProvider
}

var _ Model = &model{}

// NewModel creates a Model from the given options.
//
// Parameters:
//   - options: functional options to configure the model
//
// Returns:
//   - Model: the model
func NewModel(options ...ModelBuilderOption) Model {
	m := &model{}
	for _, opt := range options {
		opt(m)
	}
	if m.meshProvider == nil {
		m.meshProvider = bind_group_provider.NewBindGroupProvider(m.name + "_mesh")
	}
	return m
}

func (m *model) Name() string {
	return m.name
}

func (m *model) Layout() VertexLayout {
	return m.layout
}

func (m *model) Vertices() []float32 {
	return m.vertices
}

func (m *model) VertexCount() int {
	n := m.layout.FloatsPerVertex()
	if n == 0 {
		return 0
	}
	return len(m.vertices) / n
}

func (m *model) Indices() []uint32 {
	return m.indices
}

func (m *model) IndexCount() int {
	return len(m.indices)
}

func (m *model) EdgeIndices() []uint32 {
	if m.edges == nil {
		m.edges = TriangleEdges(m.indices)
	}
	return m.edges
}

func (m *model) VertexBytes() []byte {
	return common.SliceToBytes(m.vertices)
}

func (m *model) IndexBytes() []byte {
	return common.SliceToBytes(m.indices)
}

func (m *model) MeshProvider() bind_group_provider.BindGroupProvider {
	return m.meshProvider
}

// TriangleEdges converts a triangle list into a line list of its unique edges,
// in first-seen order.
//
// Parameters:
//   - indices: triangle list indices
//
// Returns:
//   - []uint32: line list indices
func TriangleEdges(indices []uint32) []uint32 {
	type edge struct{ a, b uint32 }
	seen := make(map[edge]struct{}, len(indices))
	out := make([]uint32, 0, len(indices)*2)
	add := func(a, b uint32) {
		if a > b {
			a, b = b, a
		}
		e := edge{a, b}
		if _, ok := seen[e]; ok {
			return
		}
		seen[e] = struct{}{}
		out = append(out, a, b)
	}
	for i := 0; i+2 < len(indices); i += 3 {
		a, b, c := indices[i], indices[i+1], indices[i+2]
		add(a, b)
		add(b, c)
		add(c, a)
	}
	return out
}

package loader

import "github.com/Carmen-Shannon/hairstylist/engine/model"

// loaderBackend defines the generic interface for loading meshes from files.
// Concrete implementations (e.g., binaryLoaderBackend) handle format-specific details.
type loaderBackend interface {
	// Load imports a mesh from a vertex file and an index file.
	//
	// Parameters:
	//   - name: the model name
	//   - vertexPath: the vertex file
	//   - indexPath: the index file
	//
	// Returns:
	//   - model.Model: the mesh
	//   - error: error if loading fails
	Load(name, vertexPath, indexPath string) (model.Model, error)
}

// binaryLoaderBackend reads count-prefixed little-endian float and index dumps with a fixed
// interleaved layout.
type binaryLoaderBackend struct {
	layout model.VertexLayout
}

var _ loaderBackend = &binaryLoaderBackend{}

func newBinaryLoaderBackend(layout model.VertexLayout) loaderBackend {
	return &binaryLoaderBackend{layout: layout}
}

func (b *binaryLoaderBackend) Load(name, vertexPath, indexPath string) (model.Model, error) {
	return model.LoadMesh(name, b.layout, vertexPath, indexPath)
}

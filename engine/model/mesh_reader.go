package model

import (
	"encoding/binary"
	"fmt"
	"io"
	"os"
)

// maxMeshWords caps the element count read from a mesh file header so a corrupt
// header cannot trigger a huge allocation.
const maxMeshWords = 1 << 26

// ReadFloats reads a little-endian uint32 count followed by that many float32 values.
//
// Parameters:
//   - r: the source
//
// Returns:
//   - []float32: the values
//   - error: error if the header or body is short or the count is implausible
func ReadFloats(r io.Reader) ([]float32, error) {
	n, err := readCount(r)
	if err != nil {
		return nil, err
	}
	out := make([]float32, n)
	if err := binary.Read(r, binary.LittleEndian, out); err != nil {
		return nil, fmt.Errorf("read %d floats: %w", n, err)
	}
	return out, nil
}

// ReadUint32s reads a little-endian uint32 count followed by that many uint32 values.
//
// Parameters:
//   - r: the source
//
// Returns:
//   - []uint32: the values
//   - error: error if the header or body is short or the count is implausible
func ReadUint32s(r io.Reader) ([]uint32, error) {
	n, err := readCount(r)
	if err != nil {
		return nil, err
	}
	out := make([]uint32, n)
	if err := binary.Read(r, binary.LittleEndian, out); err != nil {
		return nil, fmt.Errorf("read %d indices: %w", n, err)
	}
	return out, nil
}

func readCount(r io.Reader) (uint32, error) {
	var n uint32
	if err := binary.Read(r, binary.LittleEndian, &n); err != nil {
		return 0, fmt.Errorf("read count: %w", err)
	}
	if n > maxMeshWords {
		return 0, fmt.Errorf("count %d exceeds limit %d", n, maxMeshWords)
	}
	return n, nil
}

// DecodeMesh reads a vertex stream and an index stream and checks them against layout.
//
// Parameters:
//   - name: the model name
//   - layout: the interleaved layout of the vertex stream
//   - vertices: the vertex stream
//   - indices: the index stream
//
// Returns:
//   - Model: the mesh
//   - error: error if either stream is malformed or inconsistent with the layout
func DecodeMesh(name string, layout VertexLayout, vertices, indices io.Reader) (Model, error) {
	vb, err := ReadFloats(vertices)
	if err != nil {
		return nil, fmt.Errorf("mesh %s vertices: %w", name, err)
	}
	ib, err := ReadUint32s(indices)
	if err != nil {
		return nil, fmt.Errorf("mesh %s indices: %w", name, err)
	}

	per := layout.FloatsPerVertex()
	if per == 0 || len(vb)%per != 0 {
		return nil, fmt.Errorf("mesh %s: %d floats is not a multiple of the %d-float vertex", name, len(vb), per)
	}
	if len(ib)%3 != 0 {
		return nil, fmt.Errorf("mesh %s: %d indices is not a triangle list", name, len(ib))
	}
	count := uint32(len(vb) / per)
	for i, idx := range ib {
		if idx >= count {
			return nil, fmt.Errorf("mesh %s: index %d at %d out of range for %d vertices", name, idx, i, count)
		}
	}

	return NewModel(
		WithName(name),
		WithLayout(layout),
		WithVertices(vb),
		WithIndices(ib),
	), nil
}

// LoadMesh opens a vertex file and an index file and decodes them with DecodeMesh.
//
// Parameters:
//   - name: the model name
//   - layout: the interleaved vertex layout
//   - vertexPath, indexPath: the two binary files
//
// Returns:
//   - Model: the mesh
//   - error: error if either file cannot be opened or decoded
func LoadMesh(name string, layout VertexLayout, vertexPath, indexPath string) (Model, error) {
	vf, err := os.Open(vertexPath)
	if err != nil {
		return nil, fmt.Errorf("open vertex file: %w", err)
	}
	defer vf.Close()
	inf, err := os.Open(indexPath)
	if err != nil {
		return nil, fmt.Errorf("open index file: %w", err)
	}
	defer inf.Close()
	return DecodeMesh(name, layout, vf, inf)
}

package model

import (
	"bytes"
	"encoding/binary"
	"errors"
	"slices"
	"testing"

	"github.com/cogentcore/webgpu/wgpu"
)

func TestHeadLayout(t *testing.T) {
	if got := HeadLayout.Stride(); got != 56 {
		t.Fatalf("Stride = %d, want 56", got)
	}
	if got, want := HeadLayout.Offsets(), []uint64{0, 12, 20, 32, 44}; !slices.Equal(got, want) {
		t.Fatalf("Offsets = %v, want %v", got, want)
	}
	if got := HeadLayout.FloatsPerVertex(); got != 14 {
		t.Fatalf("FloatsPerVertex = %d, want 14", got)
	}
	if off, ok := HeadLayout.Offset(SemanticNormal); !ok || off != 20 {
		t.Fatalf("Offset(normal) = %d, %v", off, ok)
	}
	if _, ok := QuadLayout.Offset(SemanticTangent); ok {
		t.Fatal("QuadLayout reports a tangent")
	}
}

func TestBufferLayout(t *testing.T) {
	bl, err := QuadLayout.BufferLayout()
	if err != nil {
		t.Fatalf("BufferLayout: %v", err)
	}
	if bl.ArrayStride != 20 {
		t.Fatalf("ArrayStride = %d, want 20", bl.ArrayStride)
	}
	if len(bl.Attributes) != 2 {
		t.Fatalf("got %d attributes", len(bl.Attributes))
	}
	if a := bl.Attributes[1]; a.Format != wgpu.VertexFormatFloat32x2 || a.Offset != 12 || a.ShaderLocation != 1 {
		t.Fatalf("uv attribute = %+v", a)
	}
}

func TestFormat(t *testing.T) {
	tests := []struct {
		name    string
		attr    Attribute
		want    wgpu.VertexFormat
		wantErr bool
	}{
		{name: "vec3", attr: Attribute{Components: 3, Scalar: ScalarFloat32}, want: wgpu.VertexFormatFloat32x3},
		{name: "uint", attr: Attribute{Components: 1, Scalar: ScalarUint32}, want: wgpu.VertexFormatUint32},
		{name: "normalized float", attr: Attribute{Components: 3, Scalar: ScalarFloat32, Normalized: true}, wantErr: true},
		{name: "five components", attr: Attribute{Components: 5, Scalar: ScalarFloat32}, wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Format(tt.attr)
			if tt.wantErr {
				if !errors.Is(err, ErrLayoutFormat) {
					t.Fatalf("err = %v, want ErrLayoutFormat", err)
				}
				return
			}
			if err != nil || got != tt.want {
				t.Fatalf("Format = %v, %v; want %v", got, err, tt.want)
			}
		})
	}
}

func encode(t *testing.T, values any, n int) *bytes.Buffer {
	t.Helper()
	var buf bytes.Buffer
	if err := binary.Write(&buf, binary.LittleEndian, uint32(n)); err != nil {
		t.Fatal(err)
	}
	if err := binary.Write(&buf, binary.LittleEndian, values); err != nil {
		t.Fatal(err)
	}
	return &buf
}

func TestDecodeMesh(t *testing.T) {
	quad := NewQuad("quad")
	m, err := DecodeMesh("quad", QuadLayout,
		encode(t, quad.Vertices(), len(quad.Vertices())),
		encode(t, quad.Indices(), len(quad.Indices())))
	if err != nil {
		t.Fatalf("DecodeMesh: %v", err)
	}
	if m.VertexCount() != 4 || m.IndexCount() != 6 {
		t.Fatalf("counts = %d vertices, %d indices", m.VertexCount(), m.IndexCount())
	}
	if !slices.Equal(m.Vertices(), quad.Vertices()) {
		t.Fatal("vertex data changed")
	}
	if len(m.VertexBytes()) != 4*20 || len(m.IndexBytes()) != 6*4 {
		t.Fatalf("byte views = %d, %d", len(m.VertexBytes()), len(m.IndexBytes()))
	}
}

func TestDecodeMeshRejects(t *testing.T) {
	verts := make([]float32, 10) // two quad vertices
	tests := []struct {
		name    string
		verts   *bytes.Buffer
		indices *bytes.Buffer
	}{
		{name: "index out of range", verts: encode(t, verts, 10), indices: encode(t, []uint32{0, 1, 2}, 3)},
		{name: "partial vertex", verts: encode(t, verts[:7], 7), indices: encode(t, []uint32{0, 0, 0}, 3)},
		{name: "not triangles", verts: encode(t, verts, 10), indices: encode(t, []uint32{0, 1}, 2)},
		{name: "short body", verts: encode(t, verts[:5], 10), indices: encode(t, []uint32{0, 0, 0}, 3)},
		{name: "empty", verts: &bytes.Buffer{}, indices: encode(t, []uint32{0, 0, 0}, 3)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := DecodeMesh("bad", QuadLayout, tt.verts, tt.indices); err == nil {
				t.Fatal("DecodeMesh succeeded, want error")
			}
		})
	}
}

func TestTriangleEdges(t *testing.T) {
	got := NewQuad("quad").EdgeIndices()
	want := []uint32{0, 1, 1, 2, 0, 2, 2, 3, 0, 3}
	if !slices.Equal(got, want) {
		t.Fatalf("EdgeIndices = %v, want %v", got, want)
	}
}

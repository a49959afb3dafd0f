package model

import (
	"errors"
	"fmt"

	"github.com/cogentcore/webgpu/wgpu"
)

// ErrLayoutFormat is returned when an attribute has no matching GPU vertex format.
var ErrLayoutFormat = errors.New("unsupported vertex attribute format")

// Scalar is the component type of a vertex attribute.
type Scalar int

const (
	ScalarFloat32 Scalar = iota
	ScalarUint32
	ScalarSint32
	ScalarFloat16
	ScalarUint8
)

// Size returns the byte size of one component.
func (s Scalar) Size() uint64 {
	switch s {
	case ScalarFloat16:
		return 2
	case ScalarUint8:
		return 1
	default:
		return 4
	}
}

// Semantic names what an attribute carries. Shader locations follow the order of
// attributes in the layout, not the semantic.
type Semantic string

const (
	SemanticPosition  Semantic = "position"
	SemanticTexCoord  Semantic = "texcoord"
	SemanticNormal    Semantic = "normal"
	SemanticTangent   Semantic = "tangent"
	SemanticBitangent Semantic = "bitangent"
	SemanticColor     Semantic = "color"
)

// Attribute describes one interleaved vertex attribute.
type Attribute struct {
	Semantic   Semantic
	Components int
	Scalar     Scalar
	Normalized bool
}

// Size returns the attribute's byte size.
func (a Attribute) Size() uint64 {
	return uint64(a.Components) * a.Scalar.Size()
}

// VertexLayout is an ordered list of interleaved attributes.
type VertexLayout []Attribute

// HeadLayout is the layout of the head mesh file: position, uv, normal, tangent, bitangent.
var HeadLayout = VertexLayout{
	{Semantic: SemanticPosition, Components: 3, Scalar: ScalarFloat32},
	{Semantic: SemanticTexCoord, Components: 2, Scalar: ScalarFloat32},
	{Semantic: SemanticNormal, Components: 3, Scalar: ScalarFloat32},
	{Semantic: SemanticTangent, Components: 3, Scalar: ScalarFloat32},
	{Semantic: SemanticBitangent, Components: 3, Scalar: ScalarFloat32},
}

// QuadLayout is the layout of the unit quad: position and uv.
var QuadLayout = VertexLayout{
	{Semantic: SemanticPosition, Components: 3, Scalar: ScalarFloat32},
	{Semantic: SemanticTexCoord, Components: 2, Scalar: ScalarFloat32},
}

// Stride returns the byte size of one vertex.
func (l VertexLayout) Stride() uint64 {
	var stride uint64
	for _, a := range l {
		stride += a.Size()
	}
	return stride
}

// Offsets returns the byte offset of each attribute within a vertex.
func (l VertexLayout) Offsets() []uint64 {
	offsets := make([]uint64, len(l))
	var off uint64
	for i, a := range l {
		offsets[i] = off
		off += a.Size()
	}
	return offsets
}

// FloatsPerVertex returns the stride in 4-byte words. Only meaningful for layouts of 4-byte scalars.
func (l VertexLayout) FloatsPerVertex() int {
	return int(l.Stride() / 4)
}

// Offset returns the byte offset of the first attribute with the given semantic.
//
// Returns:
//   - uint64: the offset
//   - bool: false when the layout has no such attribute
func (l VertexLayout) Offset(s Semantic) (uint64, bool) {
	offsets := l.Offsets()
	for i, a := range l {
		if a.Semantic == s {
			return offsets[i], true
		}
	}
	return 0, false
}

// Format maps an attribute to its GPU vertex format.
//
// Parameters:
//   - a: the attribute
//
// Returns:
//   - wgpu.VertexFormat: the matching format
//   - error: ErrLayoutFormat when no format matches
func Format(a Attribute) (wgpu.VertexFormat, error) {
	type key struct {
		scalar     Scalar
		components int
		normalized bool
	}
	formats := map[key]wgpu.VertexFormat{
		{ScalarFloat32, 1, false}: wgpu.VertexFormatFloat32,
		{ScalarFloat32, 2, false}: wgpu.VertexFormatFloat32x2,
		{ScalarFloat32, 3, false}: wgpu.VertexFormatFloat32x3,
		{ScalarFloat32, 4, false}: wgpu.VertexFormatFloat32x4,
		{ScalarUint32, 1, false}:  wgpu.VertexFormatUint32,
		{ScalarUint32, 2, false}:  wgpu.VertexFormatUint32x2,
		{ScalarUint32, 3, false}:  wgpu.VertexFormatUint32x3,
		{ScalarUint32, 4, false}:  wgpu.VertexFormatUint32x4,
		{ScalarSint32, 1, false}:  wgpu.VertexFormatSint32,
		{ScalarSint32, 2, false}:  wgpu.VertexFormatSint32x2,
		{ScalarSint32, 3, false}:  wgpu.VertexFormatSint32x3,
		{ScalarSint32, 4, false}:  wgpu.VertexFormatSint32x4,
		{ScalarFloat16, 2, false}: wgpu.VertexFormatFloat16x2,
		{ScalarFloat16, 4, false}: wgpu.VertexFormatFloat16x4,
		{ScalarUint8, 2, false}:   wgpu.VertexFormatUint8x2,
		{ScalarUint8, 4, false}:   wgpu.VertexFormatUint8x4,
		{ScalarUint8, 2, true}:    wgpu.VertexFormatUnorm8x2,
		{ScalarUint8, 4, true}:    wgpu.VertexFormatUnorm8x4,
	}
	f, ok := formats[key{a.Scalar, a.Components, a.Normalized}]
	if !ok {
		return 0, fmt.Errorf("%w: %s with %d components (scalar %d, normalized %v)",
			ErrLayoutFormat, a.Semantic, a.Components, a.Scalar, a.Normalized)
	}
	return f, nil
}

// BufferLayout builds the GPU vertex buffer layout, assigning shader locations in attribute order.
//
// Returns:
//   - wgpu.VertexBufferLayout: the per-vertex buffer layout
//   - error: ErrLayoutFormat if any attribute is unsupported
func (l VertexLayout) BufferLayout() (wgpu.VertexBufferLayout, error) {
	offsets := l.Offsets()
	attrs := make([]wgpu.VertexAttribute, len(l))
	for i, a := range l {
		f, err := Format(a)
		if err != nil {
			return wgpu.VertexBufferLayout{}, err
		}
		attrs[i] = wgpu.VertexAttribute{
			Format:         f,
			Offset:         offsets[i],
			ShaderLocation: uint32(i),
		}
	}
	return wgpu.VertexBufferLayout{
		ArrayStride: l.Stride(),
		StepMode:    wgpu.VertexStepModeVertex,
		Attributes:  attrs,
	}, nil
}

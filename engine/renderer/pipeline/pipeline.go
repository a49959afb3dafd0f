package pipeline

import (
	"fmt"

	"github.com/Carmen-Shannon/hairstylist/engine/model"
	"github.com/Carmen-Shannon/hairstylist/engine/renderer/shader"
	"github.com/cogentcore/webgpu/wgpu"
)

// DepthFormat is the depth attachment format shared by every pipeline and render pass.
const DepthFormat = wgpu.TextureFormatDepth24Plus

// pipeline is the implementation of the Pipeline interface.
// It holds the shader, the fixed-function state and, once the Renderer has created them,
// the GPU pipeline and its bind group layouts.
type pipeline struct {
	// pipelineKey is the unique identifier for this pipeline, used for caching and lookups
	pipelineKey string

	// shader and vertexLayouts are required before the Renderer can create the pipeline.
	// A pipeline without vertex layouts pulls its vertices from storage buffers.
	shader        shader.Shader
	vertexLayouts []model.VertexLayout

	renderPipeline   *wgpu.RenderPipeline
	bindGroupLayouts []*wgpu.BindGroupLayout

	// The following properties configure the pipeline during creation and are set with the builder options.

	depthTestEnabled  bool
	depthWriteEnabled bool
	blendEnabled      bool
	cullMode          wgpu.CullMode
	topology          wgpu.PrimitiveTopology
	frontFace         wgpu.FrontFace
	writeMask         wgpu.ColorWriteMask
	blendState        *wgpu.BlendState
}

// Pipeline is a render pipeline: one vertex and fragment program plus the depth, blend, cull
// and topology state it is created with.
type Pipeline interface {
	// PipelineKey returns the unique key associated with this pipeline, used for caching and lookups.
	//
	// Returns:
	//   - string: the unique key for this pipeline
	PipelineKey() string

	// Shader returns the program this pipeline runs.
	//
	// Returns:
	//   - shader.Shader: the program
	Shader() shader.Shader

	// VertexLayouts returns the vertex buffer layouts in slot order.
	//
	// Returns:
	//   - []model.VertexLayout: the layouts, empty for vertex pulling
	VertexLayouts() []model.VertexLayout

	// VertexBufferLayouts converts the vertex layouts into GPU buffer layouts.
	//
	// Returns:
	//   - []wgpu.VertexBufferLayout: one layout per vertex buffer slot
	//   - error: model.ErrLayoutFormat if an attribute has no GPU format
	VertexBufferLayouts() ([]wgpu.VertexBufferLayout, error)

	// ColorTarget builds the color target state for a surface format.
	//
	// Parameters:
	//   - format: the color attachment format
	//
	// Returns:
	//   - wgpu.ColorTargetState: the target with this pipeline's blend and write mask
	ColorTarget(format wgpu.TextureFormat) wgpu.ColorTargetState

	// DepthStencil builds the depth state. Pipelines without depth testing still declare the
	// depth format so they can run inside any render pass.
	//
	// Returns:
	//   - *wgpu.DepthStencilState: the depth state
	DepthStencil() *wgpu.DepthStencilState

	// RenderPipeline returns the GPU pipeline, nil until the Renderer creates it.
	RenderPipeline() *wgpu.RenderPipeline

	// BindGroupLayout returns the GPU layout of one bind group.
	//
	// Parameters:
	//   - group: the group index
	//
	// Returns:
	//   - *wgpu.BindGroupLayout: the layout, or nil if the group is out of range
	BindGroupLayout(group int) *wgpu.BindGroupLayout

	// DepthTestEnabled returns whether depth testing is enabled for this pipeline.
	DepthTestEnabled() bool

	// DepthWriteEnabled returns whether depth writing is enabled for this pipeline.
	DepthWriteEnabled() bool

	// BlendEnabled returns whether blending is enabled for this pipeline.
	BlendEnabled() bool

	// CullMode returns the cull mode configured for this pipeline.
	CullMode() wgpu.CullMode

	// Topology returns the primitive topology configured for this pipeline.
	Topology() wgpu.PrimitiveTopology

	// FrontFace returns the front face winding order configured for this pipeline.
	FrontFace() wgpu.FrontFace

	// WriteMask returns the color write mask configured for this pipeline.
	WriteMask() wgpu.ColorWriteMask

	// BlendState returns the blend state configured for this pipeline.
	//
	// Returns:
	//   - *wgpu.BlendState: the blend state, used only when blending is enabled
	BlendState() *wgpu.BlendState

	// SetRenderPipeline stores the GPU pipeline and its bind group layouts, releasing any
	// previous ones.
	//
	// Parameters:
	//   - rp: the WebGPU render pipeline
	//   - layouts: the bind group layouts indexed by group
	SetRenderPipeline(rp *wgpu.RenderPipeline, layouts []*wgpu.BindGroupLayout)

	// Release frees the GPU pipeline and layouts. The configuration is kept so the
	// pipeline can be created again.
	Release()
}

var _ Pipeline = &pipeline{}

// NewPipeline creates a render pipeline description. The GPU objects are created later by
// the Renderer.
//
// Parameters:
//   - pipelineKey: the unique key for this pipeline
//   - opts: a variadic list of PipelineBuilderOption functions to configure the pipeline
//
// Returns:
//   - Pipeline: a new Pipeline instance with the specified configuration
func NewPipeline(pipelineKey string, opts ...PipelineBuilderOption) Pipeline {
	p := &pipeline{
		pipelineKey:       pipelineKey,
		depthTestEnabled:  true,
		depthWriteEnabled: true,
		blendEnabled:      false,
		cullMode:          wgpu.CullModeNone,
		topology:          wgpu.PrimitiveTopologyTriangleList,
		frontFace:         wgpu.FrontFaceCCW,
		writeMask:         wgpu.ColorWriteMaskAll,
		blendState:        AlphaBlend(),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// AlphaBlend is standard source-over blending.
func AlphaBlend() *wgpu.BlendState {
	return &wgpu.BlendState{
		Color: wgpu.BlendComponent{
			SrcFactor: wgpu.BlendFactorSrcAlpha,
			DstFactor: wgpu.BlendFactorOneMinusSrcAlpha,
			Operation: wgpu.BlendOperationAdd,
		},
		Alpha: wgpu.BlendComponent{
			SrcFactor: wgpu.BlendFactorOne,
			DstFactor: wgpu.BlendFactorOneMinusSrcAlpha,
			Operation: wgpu.BlendOperationAdd,
		},
	}
}

// AdditiveBlend adds the source to the destination.
func AdditiveBlend() *wgpu.BlendState {
	add := wgpu.BlendComponent{
		SrcFactor: wgpu.BlendFactorOne,
		DstFactor: wgpu.BlendFactorOne,
		Operation: wgpu.BlendOperationAdd,
	}
	return &wgpu.BlendState{Color: add, Alpha: add}
}

// ConstantBlend computes dst = src*k + dst*(1-src), with k the pass blend constant. This is
// the brush stamp equation.
func ConstantBlend() *wgpu.BlendState {
	return &wgpu.BlendState{
		Color: wgpu.BlendComponent{
			SrcFactor: wgpu.BlendFactorConstant,
			DstFactor: wgpu.BlendFactorOneMinusSrc,
			Operation: wgpu.BlendOperationAdd,
		},
		Alpha: wgpu.BlendComponent{
			SrcFactor: wgpu.BlendFactorZero,
			DstFactor: wgpu.BlendFactorOne,
			Operation: wgpu.BlendOperationAdd,
		},
	}
}

func (p *pipeline) PipelineKey() string {
	return p.pipelineKey
}

func (p *pipeline) Shader() shader.Shader {
	return p.shader
}

func (p *pipeline) VertexLayouts() []model.VertexLayout {
	return p.vertexLayouts
}

func (p *pipeline) VertexBufferLayouts() ([]wgpu.VertexBufferLayout, error) {
	out := make([]wgpu.VertexBufferLayout, 0, len(p.vertexLayouts))
	for i, l := range p.vertexLayouts {
		bl, err := l.BufferLayout()
		if err != nil {
			return nil, fmt.Errorf("pipeline %s slot %d: %w", p.pipelineKey, i, err)
		}
		out = append(out, bl)
	}
	return out, nil
}

func (p *pipeline) ColorTarget(format wgpu.TextureFormat) wgpu.ColorTargetState {
	target := wgpu.ColorTargetState{
		Format:    format,
		WriteMask: p.writeMask,
	}
	if p.blendEnabled {
		target.Blend = p.blendState
	}
	return target
}

func (p *pipeline) DepthStencil() *wgpu.DepthStencilState {
	compare := wgpu.CompareFunctionAlways
	if p.depthTestEnabled {
		compare = wgpu.CompareFunctionLess
	}
	return &wgpu.DepthStencilState{
		Format:            DepthFormat,
		DepthWriteEnabled: p.depthTestEnabled && p.depthWriteEnabled,
		DepthCompare:      compare,
		StencilFront: wgpu.StencilFaceState{
			Compare: wgpu.CompareFunctionAlways,
		},
		StencilBack: wgpu.StencilFaceState{
			Compare: wgpu.CompareFunctionAlways,
		},
	}
}

func (p *pipeline) RenderPipeline() *wgpu.RenderPipeline {
	return p.renderPipeline
}

func (p *pipeline) BindGroupLayout(group int) *wgpu.BindGroupLayout {
	if group < 0 || group >= len(p.bindGroupLayouts) {
		return nil
	}
	return p.bindGroupLayouts[group]
}

func (p *pipeline) DepthTestEnabled() bool {
	return p.depthTestEnabled
}

func (p *pipeline) DepthWriteEnabled() bool {
	return p.depthWriteEnabled
}

func (p *pipeline) BlendEnabled() bool {
	return p.blendEnabled
}

func (p *pipeline) CullMode() wgpu.CullMode {
	return p.cullMode
}

func (p *pipeline) Topology() wgpu.PrimitiveTopology {
	return p.topology
}

func (p *pipeline) FrontFace() wgpu.FrontFace {
	return p.frontFace
}

func (p *pipeline) WriteMask() wgpu.ColorWriteMask {
	return p.writeMask
}

func (p *pipeline) BlendState() *wgpu.BlendState {
	return p.blendState
}

func (p *pipeline) SetRenderPipeline(rp *wgpu.RenderPipeline, layouts []*wgpu.BindGroupLayout) {
	p.Release()
	p.renderPipeline = rp
	p.bindGroupLayouts = layouts
}

func (p *pipeline) Release() {
	if p.renderPipeline != nil {
		p.renderPipeline.Release()
		p.renderPipeline = nil
	}
	for _, l := range p.bindGroupLayouts {
		if l != nil {
			l.Release()
		}
	}
	p.bindGroupLayouts = nil
}

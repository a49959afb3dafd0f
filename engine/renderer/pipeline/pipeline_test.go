package pipeline

import (
	"errors"
	"testing"

	"github.com/Carmen-Shannon/hairstylist/engine/model"
	"github.com/cogentcore/webgpu/wgpu"
)

func TestDefaults(t *testing.T) {
	p := NewPipeline("p")
	if !p.DepthTestEnabled() || !p.DepthWriteEnabled() || p.BlendEnabled() {
		t.Fatalf("depth/blend defaults wrong: %v %v %v", p.DepthTestEnabled(), p.DepthWriteEnabled(), p.BlendEnabled())
	}
	if p.Topology() != wgpu.PrimitiveTopologyTriangleList || p.CullMode() != wgpu.CullModeNone {
		t.Fatalf("topology %v cull %v", p.Topology(), p.CullMode())
	}
	target := p.ColorTarget(wgpu.TextureFormatBGRA8Unorm)
	if target.Blend != nil || target.WriteMask != wgpu.ColorWriteMaskAll {
		t.Fatalf("target = %+v", target)
	}
	if p.RenderPipeline() != nil || p.BindGroupLayout(0) != nil {
		t.Fatal("GPU objects should be nil before creation")
	}
	p.Release()
}

func TestDepthStencil(t *testing.T) {
	tests := []struct {
		name     string
		opts     []PipelineBuilderOption
		compare  wgpu.CompareFunction
		depthOut bool
	}{
		{name: "default", compare: wgpu.CompareFunctionLess, depthOut: true},
		{name: "no write", opts: []PipelineBuilderOption{WithDepthWriteEnabled(false)}, compare: wgpu.CompareFunctionLess},
		{name: "no test", opts: []PipelineBuilderOption{WithDepthTestEnabled(false)}, compare: wgpu.CompareFunctionAlways},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ds := NewPipeline(tt.name, tt.opts...).DepthStencil()
			if ds.Format != DepthFormat || ds.DepthCompare != tt.compare || ds.DepthWriteEnabled != tt.depthOut {
				t.Fatalf("depth state = %+v", ds)
			}
		})
	}
}

func TestBlendStates(t *testing.T) {
	p := NewPipeline("brush", WithBlendState(ConstantBlend()))
	target := p.ColorTarget(wgpu.TextureFormatBGRA8Unorm)
	if !p.BlendEnabled() || target.Blend == nil {
		t.Fatal("WithBlendState should enable blending")
	}
	if target.Blend.Color.SrcFactor != wgpu.BlendFactorConstant || target.Blend.Color.DstFactor != wgpu.BlendFactorOneMinusSrc {
		t.Fatalf("brush color blend = %+v", target.Blend.Color)
	}

	add := NewPipeline("overlay", WithBlendState(AdditiveBlend())).BlendState()
	if add.Color.SrcFactor != wgpu.BlendFactorOne || add.Color.DstFactor != wgpu.BlendFactorOne {
		t.Fatalf("additive blend = %+v", add.Color)
	}

	if NewPipeline("off", WithBlendState(nil)).BlendEnabled() {
		t.Fatal("nil blend state should disable blending")
	}
}

func TestVertexBufferLayouts(t *testing.T) {
	p := NewPipeline("model", WithVertexLayouts(model.HeadLayout))
	layouts, err := p.VertexBufferLayouts()
	if err != nil {
		t.Fatal(err)
	}
	if len(layouts) != 1 || layouts[0].ArrayStride != 56 || len(layouts[0].Attributes) != 5 {
		t.Fatalf("layouts = %+v", layouts)
	}

	pulled, err := NewPipeline("hair").VertexBufferLayouts()
	if err != nil || len(pulled) != 0 {
		t.Fatalf("vertex pulling pipeline layouts = %v, %v", pulled, err)
	}

	bad := model.VertexLayout{{Semantic: model.SemanticColor, Components: 3, Scalar: model.ScalarUint8}}
	if _, err := NewPipeline("bad", WithVertexLayouts(bad)).VertexBufferLayouts(); !errors.Is(err, model.ErrLayoutFormat) {
		t.Fatalf("err = %v, want ErrLayoutFormat", err)
	}
}

func TestWriteMask(t *testing.T) {
	mask := wgpu.ColorWriteMaskGreen | wgpu.ColorWriteMaskAlpha
	p := NewPipeline("brush_green", WithBlendState(ConstantBlend()), WithWriteMask(mask))
	if p.WriteMask() != mask {
		t.Fatalf("WriteMask() = %v, want %v", p.WriteMask(), mask)
	}
	if target := p.ColorTarget(wgpu.TextureFormatBGRA8Unorm); target.WriteMask != mask || target.Blend == nil {
		t.Fatalf("target = %+v", target)
	}
}

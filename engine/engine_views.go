package engine

import (
	"fmt"

	"github.com/Carmen-Shannon/hairstylist/common"
	"github.com/Carmen-Shannon/hairstylist/engine/config"
	"github.com/Carmen-Shannon/hairstylist/engine/hairstyle"
	"github.com/Carmen-Shannon/hairstylist/engine/light"
	"github.com/Carmen-Shannon/hairstylist/engine/loader"
	"github.com/Carmen-Shannon/hairstylist/engine/model"
	"github.com/Carmen-Shannon/hairstylist/engine/paint"
	"github.com/Carmen-Shannon/hairstylist/engine/renderer"
	"github.com/Carmen-Shannon/hairstylist/engine/renderer/bind_group_provider"
	"github.com/Carmen-Shannon/hairstylist/engine/renderer/material"
	"github.com/Carmen-Shannon/hairstylist/engine/renderer/pipeline"
	"github.com/Carmen-Shannon/hairstylist/engine/renderer/shader"
	"github.com/cogentcore/webgpu/wgpu"
	"github.com/go-gl/mathgl/mgl32"
	"go.uber.org/multierr"
	"go.uber.org/zap"
)

var (
	// canvasSampler filters the mask and brush without wrapping at the canvas edge.
	canvasSampler = common.SamplerStagingData{
		AddressModeU: wgpu.AddressModeClampToEdge,
		AddressModeV: wgpu.AddressModeClampToEdge,
		AddressModeW: wgpu.AddressModeClampToEdge,
		MagFilter:    wgpu.FilterModeLinear,
		MinFilter:    wgpu.FilterModeLinear,
		MipmapFilter: wgpu.MipmapFilterModeNearest,
	}
	// faceSampler filters the diffuse face texture.
	faceSampler = common.SamplerStagingData{
		MagFilter:    wgpu.FilterModeLinear,
		MinFilter:    wgpu.FilterModeLinear,
		MipmapFilter: wgpu.MipmapFilterModeNearest,
	}

	white        = wgpu.Color{R: 1, G: 1, B: 1, A: 1}
	noTint       = mgl32.Vec4{1, 1, 1, 1}
	overlayTint  = mgl32.Vec4{0.25, 0.25, 0.25, 1}
	canvasToQuad = mgl32.Translate3D(0.5, 0.5, 0)

	channels = [...]paint.Channel{paint.Red, paint.Green, paint.Blue}
)

// brushPipeline is the key of the brush preview pipeline that writes only channel c.
func brushPipeline(c paint.Channel) string {
	return shader.ProgramBrush + "_" + c.String()
}

// binding ties a provider to the pipeline group it is created against.
type binding struct {
	provider bind_group_provider.BindGroupProvider
	pipeline string
	group    int
}

// views owns every GPU resource of the two viewports: the painter on the left shows the mask,
// the brush and the UV overlay; the model on the right shows the lit head and its hair.
type views struct {
	r   renderer.Renderer
	log *zap.Logger

	head model.Model
	quad model.Model
	// edges holds the head vertices with the line-list index buffer of the UV overlay.
	edges bind_group_provider.BindGroupProvider

	// painter
	quadUniform    bind_group_provider.BindGroupProvider
	mask           bind_group_provider.BindGroupProvider
	brushUniform   bind_group_provider.BindGroupProvider
	brushSprite    bind_group_provider.BindGroupProvider
	overlayUniform bind_group_provider.BindGroupProvider

	// model
	modelCamera    bind_group_provider.BindGroupProvider
	modelTransform bind_group_provider.BindGroupProvider
	modelLighting  bind_group_provider.BindGroupProvider
	modelTextures  bind_group_provider.BindGroupProvider

	// hair
	hairCamera    bind_group_provider.BindGroupProvider
	hairTransform bind_group_provider.BindGroupProvider
	hairLighting  bind_group_provider.BindGroupProvider
	hairTextures  bind_group_provider.BindGroupProvider

	light         light.Light
	modelMaterial material.Material
	hairMaterial  material.Material

	bindings []binding
}

// newViews compiles the programs, uploads the startup assets and creates every bind group.
// GPU failures at this point are fatal to the caller.
//
// Parameters:
//   - r: the renderer
//   - cfg: the configuration
//   - assets: the loaded mesh, diffuse texture and brush; the mesh must already be uploaded
//   - surface: the mask, uploaded as the initial mask texture
//   - log: the logger
//
// Returns:
//   - *views: the initialized views
//   - error: error if any program, pipeline or resource cannot be created
func newViews(r renderer.Renderer, cfg *config.Config, assets *loader.Assets, surface *paint.Surface, log *zap.Logger) (*views, error) {
	v := &views{
		r:    r,
		log:  log,
		head: assets.Head,
		quad: model.NewQuad("canvas"),

		edges:          bind_group_provider.NewBindGroupProvider("Head Edges"),
		quadUniform:    bind_group_provider.NewBindGroupProvider("Canvas Quad"),
		mask:           bind_group_provider.NewBindGroupProvider("Mask"),
		brushUniform:   bind_group_provider.NewBindGroupProvider("Brush Quad"),
		brushSprite:    bind_group_provider.NewBindGroupProvider("Brush Sprite"),
		overlayUniform: bind_group_provider.NewBindGroupProvider("UV Overlay"),
		modelCamera:    bind_group_provider.NewBindGroupProvider("Model Camera"),
		modelTransform: bind_group_provider.NewBindGroupProvider("Model Transform"),
		modelLighting:  bind_group_provider.NewBindGroupProvider("Model Lighting"),
		modelTextures:  bind_group_provider.NewBindGroupProvider("Model Textures"),
		hairCamera:     bind_group_provider.NewBindGroupProvider("Hair Camera"),
		hairTransform:  bind_group_provider.NewBindGroupProvider("Hair Transform"),
		hairLighting:   bind_group_provider.NewBindGroupProvider("Hair Lighting"),
		hairTextures:   bind_group_provider.NewBindGroupProvider("Hair Textures"),

		light: light.NewLight(
			light.WithDirection(mgl32.Vec3(cfg.Lighting.Direction)),
			light.WithAmbient(mgl32.Vec3(cfg.Lighting.Ambient)),
			light.WithDiffuse(mgl32.Vec3(cfg.Lighting.Diffuse)),
			light.WithSpecular(mgl32.Vec3(cfg.Lighting.Specular)),
		),
		modelMaterial: newMaterial("head", cfg.Materials.Model),
		hairMaterial:  newMaterial("hair", cfg.Materials.Hair),
	}

	programs, err := shader.LoadPrograms(cfg.Assets.ShaderDir)
	if err != nil {
		return nil, fmt.Errorf("failed to load shader programs: %w", err)
	}
	if err := r.RegisterPipelines(newPipelines(programs)...); err != nil {
		return nil, fmt.Errorf("failed to register pipelines: %w", err)
	}

	if err := v.initResources(assets, surface); err != nil {
		return nil, err
	}

	v.bindings = []binding{
		{v.quadUniform, shader.ProgramQuad, 0},
		{v.mask, shader.ProgramQuad, 1},
		{v.brushUniform, brushPipeline(paint.Red), 0},
		{v.brushSprite, brushPipeline(paint.Red), 1},
		{v.overlayUniform, shader.ProgramOverlay, 0},
		{v.modelCamera, shader.ProgramModel, 0},
		{v.modelTransform, shader.ProgramModel, 1},
		{v.modelLighting, shader.ProgramModel, 2},
		{v.modelTextures, shader.ProgramModel, 3},
		{v.hairCamera, shader.ProgramHair, 0},
		{v.hairTransform, shader.ProgramHair, 1},
		{v.hairLighting, shader.ProgramHair, 2},
		{v.hairTextures, shader.ProgramHair, 3},
	}
	if err := v.bindAll(); err != nil {
		return nil, err
	}
	v.writeStatic()
	return v, nil
}

func newMaterial(name string, c config.MaterialConfig) material.Material {
	return material.NewMaterial(name,
		material.WithDiffuse(mgl32.Vec3(c.Diffuse)),
		material.WithSpecular(mgl32.Vec3(c.Specular), c.Shininess),
	)
}

// newPipelines builds the pipelines of every loaded program. The painter programs draw without
// depth; the model programs depth test against the head. The brush program gets one pipeline per
// channel whose write mask matches the paint pass, so the preview shows the stamp it would make.
func newPipelines(programs map[string]shader.Shader) []pipeline.Pipeline {
	var out []pipeline.Pipeline
	for _, name := range shader.Programs {
		s, ok := programs[name]
		if !ok {
			continue
		}
		if name == shader.ProgramBrush {
			for _, c := range channels {
				out = append(out, newBrushPipeline(c, s))
			}
			continue
		}
		out = append(out, newPipeline(name, s))
	}
	return out
}

func newBrushPipeline(c paint.Channel, s shader.Shader) pipeline.Pipeline {
	return pipeline.NewPipeline(brushPipeline(c),
		pipeline.WithShader(s),
		pipeline.WithVertexLayouts(model.QuadLayout),
		pipeline.WithDepthTestEnabled(false),
		pipeline.WithDepthWriteEnabled(false),
		pipeline.WithBlendState(pipeline.ConstantBlend()),
		pipeline.WithWriteMask(paint.ChannelMask(c).WriteMask()),
	)
}

func newPipeline(name string, s shader.Shader) pipeline.Pipeline {
	switch name {
	case shader.ProgramQuad:
		return pipeline.NewPipeline(name,
			pipeline.WithShader(s),
			pipeline.WithVertexLayouts(model.QuadLayout),
			pipeline.WithDepthTestEnabled(false),
			pipeline.WithDepthWriteEnabled(false),
		)
	case shader.ProgramOverlay:
		return pipeline.NewPipeline(name,
			pipeline.WithShader(s),
			pipeline.WithVertexLayouts(model.HeadLayout),
			pipeline.WithDepthTestEnabled(false),
			pipeline.WithDepthWriteEnabled(false),
			pipeline.WithBlendState(pipeline.AdditiveBlend()),
			pipeline.WithTopology(wgpu.PrimitiveTopologyLineList),
		)
	case shader.ProgramModel:
		return pipeline.NewPipeline(name,
			pipeline.WithShader(s),
			pipeline.WithVertexLayouts(model.HeadLayout),
		)
	default:
		// Hair pulls its vertices from a storage buffer.
		return pipeline.NewPipeline(name,
			pipeline.WithShader(s),
		)
	}
}

// initResources uploads meshes, textures and samplers. Uniform buffers are created later by
// InitBindGroup.
func (v *views) initResources(assets *loader.Assets, surface *paint.Surface) error {
	r := v.r
	edges := v.head.EdgeIndices()
	steps := []struct {
		what string
		fn   func() error
	}{
		{"canvas quad", func() error {
			return r.InitMeshBuffers(v.quad.MeshProvider(), v.quad.VertexBytes(), v.quad.IndexBytes(), v.quad.IndexCount())
		}},
		{"head edges", func() error {
			return r.InitMeshBuffers(v.edges, v.head.VertexBytes(), common.SliceToBytes(edges), len(edges))
		}},
		{"mask texture", func() error { return r.InitTextureView(v.mask, 0, surface.Staging()) }},
		{"mask sampler", func() error { return r.InitSampler(v.mask, 1, canvasSampler) }},
		{"brush texture", func() error { return r.InitTextureView(v.brushSprite, 0, assets.Brush.Staging()) }},
		{"brush sampler", func() error { return r.InitSampler(v.brushSprite, 1, canvasSampler) }},
		{"diffuse texture", func() error { return r.InitTextureView(v.modelTextures, 0, assets.Diffuse) }},
		{"model sampler", func() error { return r.InitSampler(v.modelTextures, 2, faceSampler) }},
		{"hair sampler", func() error { return r.InitSampler(v.hairTextures, 1, canvasSampler) }},
		{"head vertices", func() error { return r.InitStorageBuffer(v.hairTextures, 2, v.head.VertexBytes()) }},
	}
	for _, step := range steps {
		if err := step.fn(); err != nil {
			return fmt.Errorf("failed to create %s: %w", step.what, err)
		}
	}

	// The model and hair programs read the mask texture owned by the painter.
	maskView := v.mask.TextureView(0)
	v.modelTextures.SetTextureView(1, maskView)
	v.hairTextures.SetTextureView(0, maskView)
	return nil
}

// bindAll (re)creates every bind group against the currently registered pipelines.
func (v *views) bindAll() error {
	for _, b := range v.bindings {
		if err := v.r.InitBindGroup(b.provider, b.pipeline, b.group); err != nil {
			return fmt.Errorf("failed to bind %s to %s group %d: %w", b.provider.Label(), b.pipeline, b.group, err)
		}
	}
	return nil
}

// writeStatic uploads the uniforms that do not change per frame.
func (v *views) writeStatic() {
	l := v.light.Uniform()
	mm := v.modelMaterial.Uniform()
	hm := v.hairMaterial.Uniform()
	v.r.WriteBuffers([]bind_group_provider.BufferWrite{
		{Provider: v.modelLighting, Binding: 0, Data: l.Marshal()},
		{Provider: v.modelLighting, Binding: 1, Data: mm.Marshal()},
		{Provider: v.hairLighting, Binding: 0, Data: l.Marshal()},
		{Provider: v.hairLighting, Binding: 1, Data: hm.Marshal()},
	})
}

// reload rebuilds the pipelines from dir. Programs that fail to compile keep their previous
// pipeline; all failures are returned together.
//
// Parameters:
//   - dir: the shader directory, or "" for the embedded programs
//
// Returns:
//   - error: the combined failures, or nil
func (v *views) reload(dir string) error {
	programs, errs := shader.LoadPrograms(dir)
	for _, p := range newPipelines(programs) {
		if err := v.r.ReplacePipeline(p); err != nil {
			errs = multierr.Append(errs, fmt.Errorf("pipeline %s: %w", p.PipelineKey(), err))
		}
	}
	return multierr.Append(errs, v.bindAll())
}

// upload writes the per-frame uniforms and, when the mask changed, the mask texture.
func (v *views) upload(s *state) error {
	painterVP := s.painterCam.ViewProjectionMatrix()
	quad := model.GPUQuadUniform{MVP: painterVP.Mul4(canvasToQuad), Tint: noTint}
	pos := s.brushPosition()
	brush := model.GPUQuadUniform{
		MVP: painterVP.
			Mul4(mgl32.Translate3D(pos.X(), pos.Y(), 0)).
			Mul4(mgl32.Scale3D(s.brushScale, s.brushScale, 1)),
		Tint: noTint,
	}
	overlay := model.GPUQuadUniform{MVP: painterVP, Tint: overlayTint}

	cam := s.modelCam.Uniform()
	transform := model.NewTransformUniform(s.arcball.Matrix())
	vp := s.modelCam.Viewport()
	hair := hairstyle.NewHairUniform(s.style, vp.W, vp.H)

	v.r.WriteBuffers([]bind_group_provider.BufferWrite{
		{Provider: v.quadUniform, Binding: 0, Data: quad.Marshal()},
		{Provider: v.brushUniform, Binding: 0, Data: brush.Marshal()},
		{Provider: v.overlayUniform, Binding: 0, Data: overlay.Marshal()},
		{Provider: v.modelCamera, Binding: 0, Data: cam.Marshal()},
		{Provider: v.modelTransform, Binding: 0, Data: transform.Marshal()},
		{Provider: v.modelLighting, Binding: 2, Data: hair.Marshal()},
		{Provider: v.hairCamera, Binding: 0, Data: cam.Marshal()},
		{Provider: v.hairTransform, Binding: 0, Data: transform.Marshal()},
		{Provider: v.hairLighting, Binding: 2, Data: hair.Marshal()},
	})

	if s.surface.TakeDirty() {
		if err := v.r.WriteTexture(v.mask, 0, s.surface.Staging()); err != nil {
			return fmt.Errorf("failed to upload mask: %w", err)
		}
	}
	return nil
}

// drawPainter records the painter pass. It clears the whole frame to white and the depth to 1.
func (v *views) drawPainter(s *state) error {
	err := v.r.BeginPass(renderer.RenderPass{
		Label:      "Painter",
		Viewport:   s.painterCam.Viewport(),
		ClearColor: &white,
		ClearDepth: true,
	})
	if err != nil {
		return err
	}
	defer v.r.EndPass()

	errs := v.r.DrawCall(shader.ProgramQuad, v.quad.MeshProvider(), 1,
		[]bind_group_provider.BindGroupProvider{v.quadUniform, v.mask})

	if s.showBrush() {
		k := float64(s.effectiveIntensity())
		errs = multierr.Append(errs, v.r.SetBlendConstant(wgpu.Color{R: k, G: k, B: k, A: k}))
		errs = multierr.Append(errs, v.r.DrawCall(brushPipeline(s.channel), v.quad.MeshProvider(), 1,
			[]bind_group_provider.BindGroupProvider{v.brushUniform, v.brushSprite}))
	}
	if s.overlay {
		errs = multierr.Append(errs, v.r.DrawCall(shader.ProgramOverlay, v.edges, 1,
			[]bind_group_provider.BindGroupProvider{v.overlayUniform}))
	}
	return errs
}

// drawModel records the model pass over the content of the painter pass.
func (v *views) drawModel(s *state) error {
	err := v.r.BeginPass(renderer.RenderPass{
		Label:    "Model",
		Viewport: s.modelCam.Viewport(),
	})
	if err != nil {
		return err
	}
	defer v.r.EndPass()

	errs := v.r.DrawCall(shader.ProgramModel, v.head.MeshProvider(), 1,
		[]bind_group_provider.BindGroupProvider{v.modelCamera, v.modelTransform, v.modelLighting, v.modelTextures})
	errs = multierr.Append(errs, v.r.Draw(shader.ProgramHair, uint32(6*v.head.VertexCount()),
		[]bind_group_provider.BindGroupProvider{v.hairCamera, v.hairTransform, v.hairLighting, v.hairTextures}))
	return errs
}

// release frees every provider. Pipelines, samplers and the head mesh belong to the renderer
// and the loader.
func (v *views) release() {
	for _, p := range []bind_group_provider.BindGroupProvider{
		v.hairTextures, v.hairLighting, v.hairTransform, v.hairCamera,
		v.modelTextures, v.modelLighting, v.modelTransform, v.modelCamera,
		v.overlayUniform, v.brushSprite, v.brushUniform, v.mask, v.quadUniform,
		v.edges, v.quad.MeshProvider(),
	} {
		p.Release()
	}
}

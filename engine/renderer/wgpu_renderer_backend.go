package renderer

import (
	"errors"
	"fmt"
	"runtime"
	"sync"

	"github.com/Carmen-Shannon/hairstylist/common"
	"github.com/Carmen-Shannon/hairstylist/engine/renderer/bind_group_provider"
	"github.com/Carmen-Shannon/hairstylist/engine/renderer/pipeline"
	"github.com/cogentcore/webgpu/wgpu"
)

var (
	// ErrNoFrame is returned by pass and draw calls made outside BeginFrame and EndFrame.
	ErrNoFrame = errors.New("no frame in progress")
	// ErrNoPass is returned by draw calls made outside BeginPass and EndPass.
	ErrNoPass = errors.New("no render pass in progress")
	// ErrPassOpen is returned by BeginPass while another pass is still open.
	ErrPassOpen = errors.New("render pass already open")
	// ErrSurfaceUnavailable is returned by BeginFrame while the surface has no area, e.g. minimised.
	ErrSurfaceUnavailable = errors.New("surface not configured")
)

type wgpuRendererBackendImpl struct {
	mu     *sync.Mutex
	device *wgpu.Device
	queue  *wgpu.Queue

	instance *wgpu.Instance
	adapter  *wgpu.Adapter
	surface  *wgpu.Surface

	surfaceFormat    wgpu.TextureFormat
	surfaceWidth     uint32
	surfaceHeight    uint32
	depthTexture     *wgpu.Texture
	depthTextureView *wgpu.TextureView

	presentMode wgpu.PresentMode

	// samplers are shared between providers, keyed by their configuration.
	samplers map[common.SamplerStagingData]*wgpu.Sampler

	// Frame state for the passes recorded between BeginFrame and EndFrame
	frameEncoder *wgpu.CommandEncoder
	framePass    *wgpu.RenderPassEncoder
	frameSurface *wgpu.Texture
	frameView    *wgpu.TextureView
}

type wgpuRendererBackend interface {
	// SurfaceSize returns the configured surface size in pixels.
	SurfaceSize() (width, height uint32)

	// ConfigureSurface is a wrapper for boilerplate logic required when calling ConfigureSurface on a surface.
	// This is required when the surface size changes, such as when the window is resized.
	// A zero size leaves the surface unconfigured until the next non-zero call.
	//
	// Parameters:
	//   - width: the new width of the surface in pixels
	//   - height: the new height of the surface in pixels
	ConfigureSurface(width, height int)

	// SetPresentMode sets the surface present mode which controls how frames are delivered to the display.
	//
	// Parameters:
	//   - mode: the PresentMode to use (VSync or Uncapped)
	SetPresentMode(mode PresentMode)

	// RegisterRenderPipeline creates the bind group layouts, pipeline layout and render
	// pipeline for p and stores them on it.
	//
	// Parameters:
	//   - p: the pipeline description
	//
	// Returns:
	//   - error: an error if any GPU object cannot be created
	RegisterRenderPipeline(p pipeline.Pipeline) error

	// InitMeshBuffers creates vertex and index buffers on the provider.
	//
	// Parameters:
	//   - provider: the mesh provider
	//   - vertexData: raw vertex bytes
	//   - indexData: raw uint32 index bytes
	//   - indexCount: the number of indices
	//
	// Returns:
	//   - error: an error if buffer creation fails
	InitMeshBuffers(provider bind_group_provider.BindGroupProvider, vertexData, indexData []byte, indexCount int) error

	// InitStorageBuffer creates a read-only storage buffer filled with data at a binding.
	//
	// Parameters:
	//   - provider: the provider that owns the buffer
	//   - binding: the binding index
	//   - data: the initial contents
	//
	// Returns:
	//   - error: an error if buffer creation fails
	InitStorageBuffer(provider bind_group_provider.BindGroupProvider, binding int, data []byte) error

	// InitTextureView creates an owned texture from staging data at a binding.
	//
	// Parameters:
	//   - provider: the provider that owns the texture
	//   - binding: the binding index
	//   - stagingData: pixels, size and format
	//
	// Returns:
	//   - error: an error if texture creation fails
	InitTextureView(provider bind_group_provider.BindGroupProvider, binding int, stagingData common.TextureStagingData) error

	// WriteTexture uploads new pixels into the texture the provider owns at a binding.
	//
	// Parameters:
	//   - provider: the provider that owns the texture
	//   - binding: the binding index
	//   - stagingData: pixels matching the texture size
	//
	// Returns:
	//   - error: an error if there is no texture or the size differs
	WriteTexture(provider bind_group_provider.BindGroupProvider, binding int, stagingData common.TextureStagingData) error

	// InitSampler binds a shared sampler with the given configuration at a binding.
	//
	// Parameters:
	//   - provider: the provider to bind the sampler on
	//   - binding: the binding index
	//   - samplerStagingData: the sampler configuration
	//
	// Returns:
	//   - error: an error if sampler creation fails
	InitSampler(provider bind_group_provider.BindGroupProvider, binding int, samplerStagingData common.SamplerStagingData) error

	// InitBindGroup (re)creates the provider's bind group against one group of a registered
	// pipeline, creating missing uniform buffers at their minimum binding size.
	//
	// Parameters:
	//   - provider: the provider holding the resources
	//   - p: the registered pipeline
	//   - group: the group index
	//
	// Returns:
	//   - error: an error if a texture or sampler is missing or creation fails
	InitBindGroup(provider bind_group_provider.BindGroupProvider, p pipeline.Pipeline, group int) error

	// WriteBuffers writes all staged buffer writes to the GPU queue.
	WriteBuffers(writes []bind_group_provider.BufferWrite)

	// BeginFrame acquires the swapchain texture and creates the frame's command encoder.
	BeginFrame() error

	// BeginPass opens a render pass on the frame's target.
	BeginPass(pass RenderPass) error

	// SetBlendConstant sets the constant used by BlendFactorConstant in the open pass.
	SetBlendConstant(c wgpu.Color) error

	// DrawCall encodes an indexed draw in the open pass.
	DrawCall(p pipeline.Pipeline, meshProvider bind_group_provider.BindGroupProvider, instanceCount uint32, bindGroups []bind_group_provider.BindGroupProvider) error

	// Draw encodes a non-indexed draw without vertex buffers, for vertex pulling.
	Draw(p pipeline.Pipeline, vertexCount uint32, bindGroups []bind_group_provider.BindGroupProvider) error

	// EndPass closes the open render pass.
	EndPass()

	// EndFrame closes any open pass and submits the frame's command buffer.
	EndFrame()

	// Present presents the surface to the display and releases the swapchain texture.
	Present()

	// Release frees the shared samplers, the depth target, the device and the surface.
	Release()
}

var _ wgpuRendererBackend = &wgpuRendererBackendImpl{}

// newWGPURendererBackend creates the instance, surface, adapter and device. Failures panic:
// there is nothing to render with without them.
func newWGPURendererBackend(surfaceDescriptor *wgpu.SurfaceDescriptor, forceFallbackAdapter bool) wgpuRendererBackend {
	runtime.LockOSThread()
	w := &wgpuRendererBackendImpl{
		mu:          &sync.Mutex{},
		instance:    wgpu.CreateInstance(nil),
		presentMode: wgpu.PresentModeFifo,
		samplers:    make(map[common.SamplerStagingData]*wgpu.Sampler),
	}
	w.surface = w.instance.CreateSurface(surfaceDescriptor)

	a, err := w.instance.RequestAdapter(&wgpu.RequestAdapterOptions{
		ForceFallbackAdapter: forceFallbackAdapter,
		CompatibleSurface:    w.surface,
	})
	if err != nil {
		panic(err)
	}
	w.adapter = a

	// The model and hair programs use four bind groups, the WebGPU default maximum.
	limits := wgpu.DefaultLimits()

	d, err := a.RequestDevice(&wgpu.DeviceDescriptor{
		Label: "Main Device",
		RequiredLimits: &wgpu.RequiredLimits{
			Limits: limits,
		},
	})
	if err != nil {
		panic(err)
	}
	w.device = d
	w.queue = d.GetQueue()
	w.surfaceFormat = w.surface.GetCapabilities(w.adapter).Formats[0]

	return w
}

func (b *wgpuRendererBackendImpl) ConfigureSurface(width, height int) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if width <= 0 || height <= 0 {
		b.surfaceWidth, b.surfaceHeight = 0, 0
		return
	}

	capabilities := b.surface.GetCapabilities(b.adapter)
	b.surfaceFormat = capabilities.Formats[0]

	b.surface.Configure(b.adapter, b.device, &wgpu.SurfaceConfiguration{
		Usage:       wgpu.TextureUsageRenderAttachment,
		Format:      b.surfaceFormat,
		Width:       uint32(width),
		Height:      uint32(height),
		PresentMode: b.presentMode,
		AlphaMode:   capabilities.AlphaModes[0],
	})
	b.surfaceWidth, b.surfaceHeight = uint32(width), uint32(height)

	b.releaseDepth()
	depthTexture, err := b.device.CreateTexture(&wgpu.TextureDescriptor{
		Label: "Depth Texture",
		Size: wgpu.Extent3D{
			Width:              uint32(width),
			Height:             uint32(height),
			DepthOrArrayLayers: 1,
		},
		MipLevelCount: 1,
		SampleCount:   1,
		Dimension:     wgpu.TextureDimension2D,
		Format:        pipeline.DepthFormat,
		Usage:         wgpu.TextureUsageRenderAttachment,
	})
	if err != nil {
		panic(err)
	}
	view, err := depthTexture.CreateView(nil)
	if err != nil {
		panic(err)
	}
	b.depthTexture = depthTexture
	b.depthTextureView = view
}

func (b *wgpuRendererBackendImpl) releaseDepth() {
	if b.depthTextureView != nil {
		b.depthTextureView.Release()
		b.depthTextureView = nil
	}
	if b.depthTexture != nil {
		b.depthTexture.Release()
		b.depthTexture = nil
	}
}

func (b *wgpuRendererBackendImpl) SetPresentMode(mode PresentMode) {
	b.mu.Lock()
	defer b.mu.Unlock()

	switch mode {
	case PresentModeUncapped:
		b.presentMode = wgpu.PresentModeImmediate
	case PresentModeVSync:
		fallthrough
	default:
		b.presentMode = wgpu.PresentModeFifo
	}
}

func (b *wgpuRendererBackendImpl) RegisterRenderPipeline(p pipeline.Pipeline) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	s := p.Shader()
	if s == nil {
		return fmt.Errorf("pipeline %s: no shader", p.PipelineKey())
	}

	module, err := b.device.CreateShaderModule(s.Module())
	if err != nil {
		return fmt.Errorf("pipeline %s: shader module: %w", p.PipelineKey(), err)
	}
	defer module.Release()

	// Groups are indexed densely; a gap gets an empty layout.
	groupCount := 0
	for g := range s.BindGroupLayoutDescriptors() {
		groupCount = max(groupCount, g+1)
	}
	layouts := make([]*wgpu.BindGroupLayout, 0, groupCount)
	release := func() {
		for _, l := range layouts {
			l.Release()
		}
	}
	for g := range groupCount {
		desc := s.BindGroupLayoutDescriptor(g)
		desc.Label = fmt.Sprintf("%s Bind Group Layout %d", p.PipelineKey(), g)
		layout, err := b.device.CreateBindGroupLayout(&desc)
		if err != nil {
			release()
			return fmt.Errorf("pipeline %s: bind group layout %d: %w", p.PipelineKey(), g, err)
		}
		layouts = append(layouts, layout)
	}

	pipelineLayout, err := b.device.CreatePipelineLayout(&wgpu.PipelineLayoutDescriptor{
		Label:            p.PipelineKey() + " Pipeline Layout",
		BindGroupLayouts: layouts,
	})
	if err != nil {
		release()
		return fmt.Errorf("pipeline %s: layout: %w", p.PipelineKey(), err)
	}
	defer pipelineLayout.Release()

	vertexBuffers, err := p.VertexBufferLayouts()
	if err != nil {
		release()
		return err
	}

	rp, err := b.device.CreateRenderPipeline(&wgpu.RenderPipelineDescriptor{
		Label:  p.PipelineKey() + " Render Pipeline",
		Layout: pipelineLayout,
		Vertex: wgpu.VertexState{
			Module:     module,
			EntryPoint: s.VertexEntryPoint(),
			Buffers:    vertexBuffers,
		},
		Fragment: &wgpu.FragmentState{
			Module:     module,
			EntryPoint: s.FragmentEntryPoint(),
			Targets:    []wgpu.ColorTargetState{p.ColorTarget(b.surfaceFormat)},
		},
		Primitive: wgpu.PrimitiveState{
			Topology:  p.Topology(),
			FrontFace: p.FrontFace(),
			CullMode:  p.CullMode(),
		},
		DepthStencil: p.DepthStencil(),
		Multisample: wgpu.MultisampleState{
			Count: 1,
			Mask:  0xFFFFFFFF,
		},
	})
	if err != nil {
		release()
		return fmt.Errorf("pipeline %s: %w", p.PipelineKey(), err)
	}

	p.SetRenderPipeline(rp, layouts)
	return nil
}

func (b *wgpuRendererBackendImpl) InitMeshBuffers(provider bind_group_provider.BindGroupProvider, vertexData, indexData []byte, indexCount int) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if len(vertexData) > 0 {
		buf, err := b.device.CreateBuffer(&wgpu.BufferDescriptor{
			Label: provider.Label() + " Vertex Buffer",
			Size:  uint64(len(vertexData)),
			Usage: wgpu.BufferUsageVertex | wgpu.BufferUsageCopyDst,
		})
		if err != nil {
			return err
		}
		b.queue.WriteBuffer(buf, 0, vertexData)
		provider.SetVertexBuffer(buf)
	}

	if len(indexData) > 0 {
		buf, err := b.device.CreateBuffer(&wgpu.BufferDescriptor{
			Label: provider.Label() + " Index Buffer",
			Size:  uint64(len(indexData)),
			Usage: wgpu.BufferUsageIndex | wgpu.BufferUsageCopyDst,
		})
		if err != nil {
			return err
		}
		b.queue.WriteBuffer(buf, 0, indexData)
		provider.SetIndexBuffer(buf)
	}

	provider.SetIndexCount(indexCount)

	return nil
}

func (b *wgpuRendererBackendImpl) InitStorageBuffer(provider bind_group_provider.BindGroupProvider, binding int, data []byte) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if len(data) == 0 {
		return fmt.Errorf("%s: empty storage buffer at binding %d", provider.Label(), binding)
	}
	buf, err := b.device.CreateBuffer(&wgpu.BufferDescriptor{
		Label: fmt.Sprintf("%s Storage Buffer %d", provider.Label(), binding),
		Size:  uint64(len(data)),
		Usage: wgpu.BufferUsageStorage | wgpu.BufferUsageCopyDst,
	})
	if err != nil {
		return err
	}
	b.queue.WriteBuffer(buf, 0, data)
	provider.SetBuffer(binding, buf)
	return nil
}

func (b *wgpuRendererBackendImpl) InitTextureView(provider bind_group_provider.BindGroupProvider, binding int, stagingData common.TextureStagingData) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	tex, err := b.device.CreateTexture(&wgpu.TextureDescriptor{
		Label:     fmt.Sprintf("%s Texture %d", provider.Label(), binding),
		Usage:     wgpu.TextureUsageTextureBinding | wgpu.TextureUsageCopyDst,
		Dimension: wgpu.TextureDimension2D,
		Size: wgpu.Extent3D{
			Width:              stagingData.Width,
			Height:             stagingData.Height,
			DepthOrArrayLayers: 1,
		},
		Format:        common.Coalesce(stagingData.Format, wgpu.TextureFormatRGBA8UnormSrgb),
		MipLevelCount: 1,
		SampleCount:   1,
	})
	if err != nil {
		return err
	}

	b.writeTexture(tex, stagingData)

	view, err := tex.CreateView(nil)
	if err != nil {
		tex.Release()
		return err
	}
	provider.SetTexture(binding, tex, view)

	return nil
}

func (b *wgpuRendererBackendImpl) WriteTexture(provider bind_group_provider.BindGroupProvider, binding int, stagingData common.TextureStagingData) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	tex := provider.Texture(binding)
	if tex == nil {
		return fmt.Errorf("%s: no owned texture at binding %d", provider.Label(), binding)
	}
	if tex.GetWidth() != stagingData.Width || tex.GetHeight() != stagingData.Height {
		return fmt.Errorf("%s: texture %dx%d, upload %dx%d", provider.Label(),
			tex.GetWidth(), tex.GetHeight(), stagingData.Width, stagingData.Height)
	}
	b.writeTexture(tex, stagingData)
	return nil
}

func (b *wgpuRendererBackendImpl) writeTexture(tex *wgpu.Texture, stagingData common.TextureStagingData) {
	b.queue.WriteTexture(
		&wgpu.ImageCopyTexture{
			Texture:  tex,
			MipLevel: 0,
			Origin:   wgpu.Origin3D{},
			Aspect:   wgpu.TextureAspectAll,
		},
		stagingData.Pixels,
		&wgpu.TextureDataLayout{
			Offset:       0,
			BytesPerRow:  stagingData.Width * 4,
			RowsPerImage: stagingData.Height,
		},
		&wgpu.Extent3D{
			Width:              stagingData.Width,
			Height:             stagingData.Height,
			DepthOrArrayLayers: 1,
		},
	)
}

func (b *wgpuRendererBackendImpl) InitSampler(provider bind_group_provider.BindGroupProvider, binding int, samplerStagingData common.SamplerStagingData) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if samp, ok := b.samplers[samplerStagingData]; ok {
		provider.SetSampler(binding, samp)
		return nil
	}

	samp, err := b.device.CreateSampler(&wgpu.SamplerDescriptor{
		Label:         provider.Label() + " Sampler",
		AddressModeU:  common.Coalesce(samplerStagingData.AddressModeU, wgpu.AddressModeRepeat),
		AddressModeV:  common.Coalesce(samplerStagingData.AddressModeV, wgpu.AddressModeRepeat),
		AddressModeW:  common.Coalesce(samplerStagingData.AddressModeW, wgpu.AddressModeRepeat),
		MagFilter:     common.Coalesce(samplerStagingData.MagFilter, wgpu.FilterModeLinear),
		MinFilter:     common.Coalesce(samplerStagingData.MinFilter, wgpu.FilterModeLinear),
		MipmapFilter:  common.Coalesce(samplerStagingData.MipmapFilter, wgpu.MipmapFilterModeLinear),
		LodMinClamp:   0,
		LodMaxClamp:   32,
		MaxAnisotropy: 1,
	})
	if err != nil {
		return err
	}
	b.samplers[samplerStagingData] = samp
	provider.SetSampler(binding, samp)

	return nil
}

func (b *wgpuRendererBackendImpl) InitBindGroup(provider bind_group_provider.BindGroupProvider, p pipeline.Pipeline, group int) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	layout := p.BindGroupLayout(group)
	if layout == nil {
		return fmt.Errorf("pipeline %s has no bind group %d", p.PipelineKey(), group)
	}
	descriptor := p.Shader().BindGroupLayoutDescriptor(group)

	bindGroupEntries := make([]wgpu.BindGroupEntry, len(descriptor.Entries))
	for i, entry := range descriptor.Entries {
		binding := int(entry.Binding)

		isTexture := entry.Texture.SampleType != wgpu.TextureSampleTypeUndefined
		isSampler := entry.Sampler.Type != wgpu.SamplerBindingTypeUndefined

		if isTexture {
			tv := provider.TextureView(binding)
			if tv == nil {
				return fmt.Errorf("%s: texture binding %d has no texture view", provider.Label(), binding)
			}
			bindGroupEntries[i] = wgpu.BindGroupEntry{
				Binding:     entry.Binding,
				TextureView: tv,
			}
		} else if isSampler {
			samp := provider.Sampler(binding)
			if samp == nil {
				return fmt.Errorf("%s: sampler binding %d has no sampler", provider.Label(), binding)
			}
			bindGroupEntries[i] = wgpu.BindGroupEntry{
				Binding: entry.Binding,
				Sampler: samp,
			}
		} else {
			buf := provider.Buffer(binding)
			if buf == nil {
				if entry.Buffer.Type != wgpu.BufferBindingTypeUniform {
					return fmt.Errorf("%s: storage binding %d has no buffer", provider.Label(), binding)
				}
				var err error
				buf, err = b.device.CreateBuffer(&wgpu.BufferDescriptor{
					Label: fmt.Sprintf("%s Buffer %d", provider.Label(), binding),
					Size:  entry.Buffer.MinBindingSize,
					Usage: wgpu.BufferUsageUniform | wgpu.BufferUsageCopyDst,
				})
				if err != nil {
					return err
				}
				provider.SetBuffer(binding, buf)
			}
			bindGroupEntries[i] = wgpu.BindGroupEntry{
				Binding: entry.Binding,
				Buffer:  buf,
				Offset:  0,
				Size:    wgpu.WholeSize,
			}
		}
	}

	bindGroup, err := b.device.CreateBindGroup(&wgpu.BindGroupDescriptor{
		Label:   provider.Label() + " Bind Group",
		Layout:  layout,
		Entries: bindGroupEntries,
	})
	if err != nil {
		return err
	}
	provider.ReleaseBindGroup()
	provider.SetBindGroup(bindGroup, layout)

	return nil
}

func (b *wgpuRendererBackendImpl) WriteBuffers(writes []bind_group_provider.BufferWrite) {
	b.mu.Lock()
	defer b.mu.Unlock()

	for _, w := range writes {
		buf := w.Provider.Buffer(w.Binding)
		if buf == nil {
			continue
		}
		b.queue.WriteBuffer(buf, w.Offset, w.Data)
	}
}

func (b *wgpuRendererBackendImpl) BeginFrame() error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.frameSurface != nil {
		return fmt.Errorf("previous frame surface not yet presented")
	}
	if b.surfaceWidth == 0 || b.surfaceHeight == 0 {
		return ErrSurfaceUnavailable
	}

	surfaceTexture, err := b.surface.GetCurrentTexture()
	if err != nil {
		return err
	}

	view, err := surfaceTexture.CreateView(nil)
	if err != nil {
		surfaceTexture.Release()
		return err
	}

	encoder, err := b.device.CreateCommandEncoder(nil)
	if err != nil {
		view.Release()
		surfaceTexture.Release()
		return err
	}

	b.frameEncoder = encoder
	b.frameSurface = surfaceTexture
	b.frameView = view

	return nil
}

func (b *wgpuRendererBackendImpl) BeginPass(pass RenderPass) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.frameEncoder == nil {
		return ErrNoFrame
	}
	if b.framePass != nil {
		return ErrPassOpen
	}

	color := wgpu.RenderPassColorAttachment{
		View:    b.frameView,
		LoadOp:  wgpu.LoadOpLoad,
		StoreOp: wgpu.StoreOpStore,
	}
	if pass.ClearColor != nil {
		color.LoadOp = wgpu.LoadOpClear
		color.ClearValue = *pass.ClearColor
	}
	depth := &wgpu.RenderPassDepthStencilAttachment{
		View:            b.depthTextureView,
		DepthLoadOp:     wgpu.LoadOpLoad,
		DepthStoreOp:    wgpu.StoreOpStore,
		DepthClearValue: 1.0,
	}
	if pass.ClearDepth {
		depth.DepthLoadOp = wgpu.LoadOpClear
	}

	rp := b.frameEncoder.BeginRenderPass(&wgpu.RenderPassDescriptor{
		Label:                  pass.Label,
		ColorAttachments:       []wgpu.RenderPassColorAttachment{color},
		DepthStencilAttachment: depth,
	})

	// An empty viewport still opens the pass so its clears run; draws are clipped away.
	viewport, scissor, ok := pass.resolve(b.surfaceWidth, b.surfaceHeight)
	if !ok {
		scissor = passRect{}
		viewport = passRect{w: b.surfaceWidth, h: b.surfaceHeight}
	}
	rp.SetViewport(float32(viewport.x), float32(viewport.y), float32(viewport.w), float32(viewport.h), 0, 1)
	rp.SetScissorRect(scissor.x, scissor.y, scissor.w, scissor.h)

	b.framePass = rp
	return nil
}

func (b *wgpuRendererBackendImpl) SetBlendConstant(c wgpu.Color) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.framePass == nil {
		return ErrNoPass
	}
	b.framePass.SetBlendConstant(&c)
	return nil
}

// bind sets the pipeline and bind groups on the open pass. Caller must hold the mutex.
func (b *wgpuRendererBackendImpl) bind(p pipeline.Pipeline, bindGroups []bind_group_provider.BindGroupProvider) error {
	if b.framePass == nil {
		return ErrNoPass
	}
	rp := p.RenderPipeline()
	if rp == nil {
		return fmt.Errorf("pipeline %s is not registered", p.PipelineKey())
	}
	b.framePass.SetPipeline(rp)
	for i, bg := range bindGroups {
		if bg.BindGroup() == nil {
			return fmt.Errorf("pipeline %s: %s has no bind group", p.PipelineKey(), bg.Label())
		}
		b.framePass.SetBindGroup(uint32(i), bg.BindGroup(), nil)
	}
	return nil
}

func (b *wgpuRendererBackendImpl) DrawCall(
	p pipeline.Pipeline,
	meshProvider bind_group_provider.BindGroupProvider,
	instanceCount uint32,
	bindGroups []bind_group_provider.BindGroupProvider,
) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if err := b.bind(p, bindGroups); err != nil {
		return err
	}
	b.framePass.SetVertexBuffer(0, meshProvider.VertexBuffer(), 0, wgpu.WholeSize)
	b.framePass.SetIndexBuffer(meshProvider.IndexBuffer(), wgpu.IndexFormatUint32, 0, wgpu.WholeSize)
	b.framePass.DrawIndexed(uint32(meshProvider.IndexCount()), instanceCount, 0, 0, 0)
	return nil
}

func (b *wgpuRendererBackendImpl) Draw(
	p pipeline.Pipeline,
	vertexCount uint32,
	bindGroups []bind_group_provider.BindGroupProvider,
) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if err := b.bind(p, bindGroups); err != nil {
		return err
	}
	b.framePass.Draw(vertexCount, 1, 0, 0)
	return nil
}

func (b *wgpuRendererBackendImpl) EndPass() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.endPass()
}

// endPass ends and releases the open pass, if any. Caller must hold the mutex.
func (b *wgpuRendererBackendImpl) endPass() {
	if b.framePass == nil {
		return
	}
	b.framePass.End()
	b.framePass.Release()
	b.framePass = nil
}

func (b *wgpuRendererBackendImpl) EndFrame() {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.frameEncoder == nil {
		return
	}
	b.endPass()

	commandBuffer, err := b.frameEncoder.Finish(nil)
	b.frameEncoder.Release()
	b.frameEncoder = nil
	if err != nil {
		b.frameView.Release()
		b.frameSurface.Release()
		b.frameSurface = nil
		b.frameView = nil
		return
	}

	b.queue.Submit(commandBuffer)
	commandBuffer.Release()
}

func (b *wgpuRendererBackendImpl) Present() {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.frameSurface == nil {
		return
	}

	b.surface.Present()

	if b.frameView != nil {
		b.frameView.Release()
		b.frameView = nil
	}
	b.frameSurface.Release()
	b.frameSurface = nil
}

func (b *wgpuRendererBackendImpl) Release() {
	b.mu.Lock()
	defer b.mu.Unlock()

	for key, s := range b.samplers {
		s.Release()
		delete(b.samplers, key)
	}
	b.releaseDepth()
	if b.queue != nil {
		b.queue.Release()
		b.queue = nil
	}
	if b.device != nil {
		b.device.Release()
		b.device = nil
	}
	if b.adapter != nil {
		b.adapter.Release()
		b.adapter = nil
	}
	if b.surface != nil {
		b.surface.Release()
		b.surface = nil
	}
	if b.instance != nil {
		b.instance.Release()
		b.instance = nil
	}
}

func (b *wgpuRendererBackendImpl) SurfaceSize() (width, height uint32) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.surfaceWidth, b.surfaceHeight
}

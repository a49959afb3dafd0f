package renderer

import (
	"fmt"
	"sync"

	"github.com/Carmen-Shannon/hairstylist/common"
	"github.com/Carmen-Shannon/hairstylist/engine/renderer/bind_group_provider"
	"github.com/Carmen-Shannon/hairstylist/engine/renderer/pipeline"
	"github.com/Carmen-Shannon/hairstylist/engine/window"
	"github.com/cogentcore/webgpu/wgpu"
)

// renderer is the implementation of the Renderer interface.
type renderer struct {
	mu *sync.Mutex

	pipelineCache map[string]pipeline.Pipeline

	backendType RendererBackendType
	backend     RendererBackend

	// Pre-creation config collected from builder options
	forceFallbackAdapter bool
	pendingPresentMode   *PresentMode
}

// Renderer defines the interface for the rendering system.
//
// This is a high-level API designed to simplify rendering tasks into a streamlined and idiomatic flow.
// The Renderer manages a cache of pipelines keyed by name and records frames as an ordered list of
// render passes, each with its own viewport, scissor and clears.
// The Renderer also implements a backend which allows for multiple backend API implementations to exist.
type Renderer interface {
	// RegisterPipelines creates the GPU objects of one or more pipelines via the backend, then caches
	// them by PipelineKey. Pipelines whose keys are already registered are skipped.
	//
	// Parameters:
	//   - pipelines: the Pipelines to register
	//
	// Returns:
	//   - error: an error if pipeline creation fails
	RegisterPipelines(pipelines ...pipeline.Pipeline) error

	// ReplacePipeline creates the GPU objects for p and, on success, swaps it in for the cached
	// pipeline with the same key and releases the old one. On failure the cache is unchanged.
	// Bind groups created against the old pipeline's layouts must be recreated by the caller.
	//
	// Parameters:
	//   - p: the replacement pipeline
	//
	// Returns:
	//   - error: an error if pipeline creation fails
	ReplacePipeline(p pipeline.Pipeline) error

	// Resize configures the underlying backend to handle a new surface size.
	// A zero size (minimised window) leaves the surface unconfigured and BeginFrame fails until
	// the next non-zero Resize.
	//
	// Parameters:
	//   - width: the new width of the surface in pixels
	//   - height: the new height of the surface in pixels
	Resize(width, height int)

	// SurfaceSize returns the configured surface size in pixels.
	SurfaceSize() (width, height uint32)

	// SetPresentMode sets the surface present mode which controls how frames are delivered to the display
	// and reconfigures the surface at its current size so the mode takes effect on the next frame.
	//
	// Parameters:
	//   - mode: the PresentMode to use (VSync or Uncapped)
	SetPresentMode(mode PresentMode)

	// InitMeshBuffers creates GPU vertex and index buffers from raw byte data and stores them
	// on the given BindGroupProvider for later use in draw calls.
	//
	// Parameters:
	//   - provider: the BindGroupProvider to store the created buffers on
	//   - vertexData: the raw vertex data bytes to upload to the GPU
	//   - indexData: the raw index data bytes to upload to the GPU
	//   - indexCount: the number of indices, used for draw calls
	//
	// Returns:
	//   - error: an error if buffer creation fails
	InitMeshBuffers(provider bind_group_provider.BindGroupProvider, vertexData, indexData []byte, indexCount int) error

	// InitStorageBuffer creates a read-only storage buffer and stores it on the provider.
	//
	// Parameters:
	//   - provider: the BindGroupProvider to store the buffer on
	//   - binding: the binding index for this buffer
	//   - data: the buffer contents
	//
	// Returns:
	//   - error: an error if buffer creation fails
	InitStorageBuffer(provider bind_group_provider.BindGroupProvider, binding int, data []byte) error

	// InitTextureView creates a GPU texture from staging data and stores it and its view on the
	// given BindGroupProvider at the specified binding index. Must be called before InitBindGroup
	// for any texture bindings the provider owns.
	//
	// Parameters:
	//   - provider: the BindGroupProvider to store the created texture on
	//   - binding: the binding index for this texture
	//   - stagingData: the pixel data, dimensions and format for the texture
	//
	// Returns:
	//   - error: an error if texture creation fails
	InitTextureView(provider bind_group_provider.BindGroupProvider, binding int, stagingData common.TextureStagingData) error

	// WriteTexture replaces the pixels of a texture created with InitTextureView.
	//
	// Parameters:
	//   - provider: the BindGroupProvider owning the texture
	//   - binding: the binding index of the texture
	//   - stagingData: pixels with the same dimensions as the texture
	//
	// Returns:
	//   - error: an error if the texture is missing or the dimensions differ
	WriteTexture(provider bind_group_provider.BindGroupProvider, binding int, stagingData common.TextureStagingData) error

	// InitSampler binds a sampler matching the staging data on the given BindGroupProvider at the
	// specified binding index. Samplers are shared between providers and owned by the Renderer.
	//
	// Parameters:
	//   - provider: the BindGroupProvider to store the sampler on
	//   - binding: the binding index for this sampler
	//   - samplerStagingData: the sampler configuration
	//
	// Returns:
	//   - error: an error if sampler creation fails
	InitSampler(provider bind_group_provider.BindGroupProvider, binding int, samplerStagingData common.SamplerStagingData) error

	// InitBindGroup creates the provider's bind group for one group of a cached pipeline, using
	// the layout the shader declares. Uniform buffers are created at their minimum binding size
	// when the provider has none yet.
	//
	// Parameters:
	//   - provider: the BindGroupProvider to store the bind group on
	//   - pipelineKey: the cached pipeline whose layout to use
	//   - group: the bind group index
	//
	// Returns:
	//   - error: an error if the pipeline is unknown or bind group creation fails
	InitBindGroup(provider bind_group_provider.BindGroupProvider, pipelineKey string, group int) error

	// WriteBuffers writes all staged buffer writes to the GPU queue.
	// Each BufferWrite targets a specific buffer on a BindGroupProvider at a given binding and offset.
	//
	// Parameters:
	//   - writes: a slice of BufferWrite structs describing the data to write
	WriteBuffers(writes []bind_group_provider.BufferWrite)

	// BeginFrame acquires the swapchain texture and creates the frame's command encoder.
	// Must be paired with EndFrame after all passes of the frame.
	//
	// Returns:
	//   - error: an error if the swapchain texture could not be acquired
	BeginFrame() error

	// BeginPass opens a render pass. Only one pass can be open at a time.
	//
	// Parameters:
	//   - pass: the viewport, scissor and clears of the pass
	//
	// Returns:
	//   - error: an error if no frame is in progress or a pass is already open
	BeginPass(pass RenderPass) error

	// SetBlendConstant sets the blend constant of the open pass.
	//
	// Parameters:
	//   - c: the constant, used by BlendFactorConstant
	//
	// Returns:
	//   - error: an error if no pass is open
	SetBlendConstant(c wgpu.Color) error

	// DrawCall encodes a single instanced indexed draw command within the open pass.
	//
	// Parameters:
	//   - pipelineKey: the unique identifier for the cached render Pipeline to use
	//   - meshProvider: the BindGroupProvider holding vertex and index buffers
	//   - instanceCount: the number of instances to draw
	//   - bindGroups: the BindGroupProviders whose BindGroups are set on the pass, in group order
	//
	// Returns:
	//   - error: an error if the pipeline is not found or no pass is open
	DrawCall(pipelineKey string, meshProvider bind_group_provider.BindGroupProvider, instanceCount uint32, bindGroups []bind_group_provider.BindGroupProvider) error

	// Draw encodes a non-indexed draw without vertex buffers within the open pass.
	//
	// Parameters:
	//   - pipelineKey: the unique identifier for the cached render Pipeline to use
	//   - vertexCount: the number of vertices the vertex shader is invoked for
	//   - bindGroups: the BindGroupProviders whose BindGroups are set on the pass, in group order
	//
	// Returns:
	//   - error: an error if the pipeline is not found or no pass is open
	Draw(pipelineKey string, vertexCount uint32, bindGroups []bind_group_provider.BindGroupProvider) error

	// EndPass ends the open render pass. It is a no-op without one.
	EndPass()

	// EndFrame ends any open pass and submits the command buffer to the GPU.
	// Does not present the surface; call Present() after EndFrame to display the frame.
	EndFrame()

	// Present presents the surface to the display and releases the swapchain texture.
	// Must be called once per frame after EndFrame.
	Present()

	// Release frees every cached pipeline and the backend's GPU objects.
	Release()
}

var _ Renderer = &renderer{}

// NewRenderer creates a new Renderer instance with the specified backend type for the window's surface.
//
// Parameters:
//   - backendType: the type of rendering backend to use (e.g., WGPU)
//   - window: the window providing the platform surface descriptor and the initial size
//   - options: variadic list of RendererBuilderOption functions to configure the Renderer
//
// Returns:
//   - Renderer: a new instance of Renderer configured with the specified backend and options
func NewRenderer(backendType RendererBackendType, window window.Window, options ...RendererBuilderOption) Renderer {
	r := &renderer{
		mu:            &sync.Mutex{},
		pipelineCache: make(map[string]pipeline.Pipeline),
		backendType:   backendType,
	}

	// Apply options first so config flags (e.g. forceFallbackAdapter) are
	// available before the backend requests a GPU adapter.
	for _, opt := range options {
		opt(r)
	}

	switch backendType {
	case BackendTypeWGPU:
		fallthrough
	default:
		r.backend = newWGPURendererBackend(window.SurfaceDescriptor(), r.forceFallbackAdapter)
	}

	if r.pendingPresentMode != nil {
		r.backend.SetPresentMode(*r.pendingPresentMode)
	}

	r.backend.ConfigureSurface(window.Width(), window.Height())
	return r
}

func (r *renderer) Resize(width, height int) {
	r.backend.ConfigureSurface(width, height)
}

func (r *renderer) SurfaceSize() (width, height uint32) {
	return r.backend.SurfaceSize()
}

func (r *renderer) SetPresentMode(mode PresentMode) {
	r.backend.SetPresentMode(mode)
	if w, h := r.backend.SurfaceSize(); w > 0 && h > 0 {
		r.backend.ConfigureSurface(int(w), int(h))
	}
}

func (r *renderer) RegisterPipelines(pipelines ...pipeline.Pipeline) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, p := range pipelines {
		key := p.PipelineKey()
		if _, exists := r.pipelineCache[key]; exists {
			continue
		}
		if err := r.backend.RegisterRenderPipeline(p); err != nil {
			return err
		}
		r.pipelineCache[key] = p
	}
	return nil
}

func (r *renderer) ReplacePipeline(p pipeline.Pipeline) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if err := r.backend.RegisterRenderPipeline(p); err != nil {
		return err
	}
	if old, exists := r.pipelineCache[p.PipelineKey()]; exists && old != p {
		old.Release()
	}
	r.pipelineCache[p.PipelineKey()] = p
	return nil
}

func (r *renderer) lookup(pipelineKey string) (pipeline.Pipeline, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	p, exists := r.pipelineCache[pipelineKey]
	if !exists {
		return nil, fmt.Errorf("render pipeline %q not found in cache", pipelineKey)
	}
	return p, nil
}

func (r *renderer) InitMeshBuffers(provider bind_group_provider.BindGroupProvider, vertexData, indexData []byte, indexCount int) error {
	return r.backend.InitMeshBuffers(provider, vertexData, indexData, indexCount)
}

func (r *renderer) InitStorageBuffer(provider bind_group_provider.BindGroupProvider, binding int, data []byte) error {
	return r.backend.InitStorageBuffer(provider, binding, data)
}

func (r *renderer) InitTextureView(provider bind_group_provider.BindGroupProvider, binding int, stagingData common.TextureStagingData) error {
	return r.backend.InitTextureView(provider, binding, stagingData)
}

func (r *renderer) WriteTexture(provider bind_group_provider.BindGroupProvider, binding int, stagingData common.TextureStagingData) error {
	return r.backend.WriteTexture(provider, binding, stagingData)
}

func (r *renderer) InitSampler(provider bind_group_provider.BindGroupProvider, binding int, samplerStagingData common.SamplerStagingData) error {
	return r.backend.InitSampler(provider, binding, samplerStagingData)
}

func (r *renderer) InitBindGroup(provider bind_group_provider.BindGroupProvider, pipelineKey string, group int) error {
	p, err := r.lookup(pipelineKey)
	if err != nil {
		return err
	}
	return r.backend.InitBindGroup(provider, p, group)
}

func (r *renderer) WriteBuffers(writes []bind_group_provider.BufferWrite) {
	r.backend.WriteBuffers(writes)
}

func (r *renderer) BeginFrame() error {
	return r.backend.BeginFrame()
}

func (r *renderer) BeginPass(pass RenderPass) error {
	return r.backend.BeginPass(pass)
}

func (r *renderer) SetBlendConstant(c wgpu.Color) error {
	return r.backend.SetBlendConstant(c)
}

func (r *renderer) DrawCall(pipelineKey string, meshProvider bind_group_provider.BindGroupProvider, instanceCount uint32, bindGroups []bind_group_provider.BindGroupProvider) error {
	p, err := r.lookup(pipelineKey)
	if err != nil {
		return err
	}
	return r.backend.DrawCall(p, meshProvider, instanceCount, bindGroups)
}

func (r *renderer) Draw(pipelineKey string, vertexCount uint32, bindGroups []bind_group_provider.BindGroupProvider) error {
	p, err := r.lookup(pipelineKey)
	if err != nil {
		return err
	}
	return r.backend.Draw(p, vertexCount, bindGroups)
}

func (r *renderer) EndPass() {
	r.backend.EndPass()
}

func (r *renderer) EndFrame() {
	r.backend.EndFrame()
}

func (r *renderer) Present() {
	r.backend.Present()
}

func (r *renderer) Release() {
	r.mu.Lock()
	for key, p := range r.pipelineCache {
		p.Release()
		delete(r.pipelineCache, key)
	}
	r.mu.Unlock()

	r.backend.Release()
}

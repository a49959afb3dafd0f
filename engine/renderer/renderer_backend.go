package renderer

import (
	"math"

	"github.com/Carmen-Shannon/hairstylist/common"
	"github.com/cogentcore/webgpu/wgpu"
)

// RendererBackendType identifies the GPU backend implementation used by the Renderer.
type RendererBackendType int

const (
	// BackendTypeWGPU selects the WebGPU-based rendering backend.
	BackendTypeWGPU RendererBackendType = iota
)

// PresentMode controls how rendered frames are presented to the display surface.
type PresentMode int

const (
	// PresentModeVSync waits for the next vertical blank before presenting, capping frame rate
	// to the monitor's refresh rate. Eliminates tearing.
	PresentModeVSync PresentMode = iota

	// PresentModeUncapped presents frames immediately without waiting for vertical blank.
	// May cause screen tearing but provides the lowest latency.
	PresentModeUncapped
)

// RendererBackend is the top-level backend interface for the Renderer.
// It embeds the concrete backend interface for the selected GPU API.
type RendererBackend interface {
	wgpuRendererBackend
}

// RenderPass is the state one render pass applies on begin: where draws land and what is
// cleared. Clears affect the whole attachment; Viewport and Scissor only bound the draws.
type RenderPass struct {
	// Label names the pass in GPU debug tools.
	Label string
	// Viewport in window pixels, origin top-left. The zero value covers the whole surface.
	Viewport common.Rect
	// Scissor in window pixels. Nil uses Viewport.
	Scissor *common.Rect
	// ClearColor clears the color attachment when set, otherwise its content is kept.
	ClearColor *wgpu.Color
	// ClearDepth clears the depth attachment to 1, otherwise its content is kept.
	ClearDepth bool
}

// passRect is a pass viewport or scissor in whole surface pixels.
type passRect struct {
	x, y, w, h uint32
}

// resolve clips the pass viewport and scissor to a width x height target.
//
// Returns:
//   - viewport: the viewport rectangle
//   - scissor: the scissor rectangle, never larger than the target
//   - ok: false when either rectangle is empty after clipping, so nothing can be drawn
func (p RenderPass) resolve(width, height uint32) (viewport, scissor passRect, ok bool) {
	full := common.Rect{W: float32(width), H: float32(height)}
	vp := p.Viewport
	if vp.Empty() {
		vp = full
	}
	sc := vp
	if p.Scissor != nil {
		sc = *p.Scissor
	}
	viewport, okVP := clipRect(vp, width, height)
	scissor, okSC := clipRect(sc, width, height)
	return viewport, scissor, okVP && okSC
}

func clipRect(r common.Rect, width, height uint32) (passRect, bool) {
	x0 := clampPixel(r.MinX(), width)
	y0 := clampPixel(r.MinY(), height)
	x1 := clampPixel(r.MaxX(), width)
	y1 := clampPixel(r.MaxY(), height)
	if x1 <= x0 || y1 <= y0 {
		return passRect{}, false
	}
	return passRect{x: x0, y: y0, w: x1 - x0, h: y1 - y0}, true
}

func clampPixel(v float32, limit uint32) uint32 {
	return uint32(common.Clamp(float32(math.Round(float64(v))), 0, float32(limit)))
}

// Package paint holds the hair mask: a fixed-size RGB surface written by brush stamps and
// clears inside scoped passes.
package paint

import (
	"errors"
	"fmt"
	"image"
	"sync"

	"github.com/Carmen-Shannon/hairstylist/common"
	"github.com/cogentcore/webgpu/wgpu"
	"go.uber.org/zap"
)

// ErrMaskSize is returned when raw mask data does not match the surface dimensions.
var ErrMaskSize = errors.New("mask data size mismatch")

// Surface is the mask render target. Row 0 is the bottom of the canvas (texture v = 0).
// Its dimensions never change after construction.
type Surface struct {
	mu     *sync.Mutex
	width  int
	height int
	pix    []byte
	// staging is the RGBA upload buffer, reused by every Staging call.
	staging []byte
	dirty   bool
	active  *Target
	logger  *zap.Logger
}

// NewSurface creates a width x height surface cleared to Baseline.
//
// Parameters:
//   - width, height: the mask resolution in pixels
//   - options: functional options
//
// Returns:
//   - *Surface: the surface
func NewSurface(width, height int, options ...SurfaceBuilderOption) *Surface {
	s := &Surface{
		mu:     &sync.Mutex{},
		width:  width,
		height: height,
		pix:     make([]byte, width*height*3),
		staging: make([]byte, width*height*4),
		logger:  zap.NewNop(),
	}
	for _, opt := range options {
		opt(s)
	}
	var v [3]byte
	for i := range v {
		v[i] = toByte(Baseline[i])
	}
	for i := 0; i < len(s.pix); i += 3 {
		copy(s.pix[i:i+3], v[:])
	}
	s.dirty = true
	return s
}

// Width returns the surface width in pixels.
func (s *Surface) Width() int { return s.width }

// Height returns the surface height in pixels.
func (s *Surface) Height() int { return s.height }

// Size returns the byte size of the raw RGB data.
func (s *Surface) Size() int { return s.width * s.height * 3 }

// Bounds returns the surface rectangle.
func (s *Surface) Bounds() image.Rectangle { return image.Rect(0, 0, s.width, s.height) }

// Begin opens a pass. Only one pass may be open at a time.
//
// Parameters:
//   - pass: the pass state to apply
//
// Returns:
//   - *Target: the open pass; call End when done
//   - error: ErrPassActive if another pass is open
func (s *Surface) Begin(pass Pass) (*Target, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.active != nil {
		return nil, ErrPassActive
	}
	clip := s.Bounds()
	if !pass.Viewport.Empty() {
		clip = pass.Viewport.Intersect(clip)
	}
	t := &Target{s: s, pass: pass, clip: clip}
	s.active = t
	return t, nil
}

// Run opens a pass, calls fn, and always ends the pass, even when fn returns early or panics.
//
// Parameters:
//   - pass: the pass state to apply
//   - fn: the pass body
//
// Returns:
//   - error: the Begin error or fn's error
func (s *Surface) Run(pass Pass, fn func(t *Target) error) error {
	t, err := s.Begin(pass)
	if err != nil {
		return err
	}
	defer t.End()
	return fn(t)
}

// Active reports whether a pass is open.
func (s *Surface) Active() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.active != nil
}

// Bytes returns a copy of the raw RGB data.
func (s *Surface) Bytes() []byte {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]byte, len(s.pix))
	copy(out, s.pix)
	return out
}

// Load replaces the surface content with raw RGB data.
//
// Parameters:
//   - raw: width*height*3 bytes
//
// Returns:
//   - error: ErrMaskSize if len(raw) does not match
func (s *Surface) Load(raw []byte) error {
	if len(raw) != s.Size() {
		return fmt.Errorf("%w: got %d bytes, want %d", ErrMaskSize, len(raw), s.Size())
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	copy(s.pix, raw)
	s.dirty = true
	return nil
}

// Pixel returns the RGB bytes at (x, y), with y = 0 the bottom row.
func (s *Surface) Pixel(x, y int) [3]byte {
	s.mu.Lock()
	defer s.mu.Unlock()
	i := (y*s.width + x) * 3
	return [3]byte{s.pix[i], s.pix[i+1], s.pix[i+2]}
}

// TakeDirty reports whether the surface changed since the last call and resets the flag.
func (s *Surface) TakeDirty() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	d := s.dirty
	s.dirty = false
	return d
}

// Staging expands the surface to RGBA for texture upload. Row order is preserved, so
// texture row 0 is sampled at v = 0. The pixels live in a buffer owned by the surface and are
// overwritten by the next call; upload them before staging again.
//
// Returns:
//   - common.TextureStagingData: the RGBA pixels
func (s *Surface) Staging() common.TextureStagingData {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := s.staging
	for i, j := 0, 0; i < len(s.pix); i, j = i+3, j+4 {
		out[j], out[j+1], out[j+2], out[j+3] = s.pix[i], s.pix[i+1], s.pix[i+2], 255
	}
	return common.TextureStagingData{
		Pixels: out,
		Width:  uint32(s.width),
		Height: uint32(s.height),
		Format: wgpu.TextureFormatRGBA8Unorm,
	}
}

// Resize is a placeholder: the mask resolution is fixed, so the request is logged and ignored.
func (s *Surface) Resize(width, height int) {
	s.logger.Debug("mask resize ignored",
		zap.Int("width", width), zap.Int("height", height),
		zap.Int("mask_width", s.width), zap.Int("mask_height", s.height))
}

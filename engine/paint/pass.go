package paint

import (
	"errors"
	"image"
	"math"

	"github.com/Carmen-Shannon/hairstylist/common"
	"github.com/go-gl/mathgl/mgl32"
)

var (
	// ErrPassActive is returned by Begin while another pass is open on the surface.
	ErrPassActive = errors.New("paint pass already active")
	// ErrPassEnded is returned by Target methods after End.
	ErrPassEnded = errors.New("paint pass ended")
)

// BlendMode selects how a stamp combines with the surface.
type BlendMode int

const (
	// BlendConstantAlpha writes dst = src*k + dst*(1-src) per masked channel, where src is the
	// brush value and k the blend constant.
	BlendConstantAlpha BlendMode = iota
)

// Blend is a blend mode with its constant.
type Blend struct {
	Mode     BlendMode
	Constant float32
}

// Pass captures the state a paint pass applies atomically: where it may write, how it blends
// and which channels it may touch.
type Pass struct {
	// Viewport limits writes to a rectangle of surface pixels. The zero value means the whole surface.
	Viewport image.Rectangle
	Blend    Blend
	Mask     ColorMask
}

// Target is an open pass on a Surface. It is valid until End.
type Target struct {
	s    *Surface
	pass Pass
	clip image.Rectangle
	done bool
}

// Pass returns the pass this target was opened with.
func (t *Target) Pass() Pass { return t.pass }

// End closes the pass. Calling End more than once is harmless.
func (t *Target) End() {
	if t.done {
		return
	}
	t.done = true
	t.s.mu.Lock()
	defer t.s.mu.Unlock()
	if t.s.active == t {
		t.s.active = nil
	}
}

// Clear sets every masked channel inside the pass viewport to color.
//
// Parameters:
//   - color: the clear color, each component in [0, 1]
//
// Returns:
//   - error: ErrPassEnded after End
func (t *Target) Clear(color [3]float32) error {
	if t.done {
		return ErrPassEnded
	}
	var v [3]byte
	for i := range v {
		v[i] = toByte(color[i])
	}

	s := t.s
	s.mu.Lock()
	defer s.mu.Unlock()
	for y := t.clip.Min.Y; y < t.clip.Max.Y; y++ {
		row := s.pix[y*s.width*3:]
		for x := t.clip.Min.X; x < t.clip.Max.X; x++ {
			px := row[x*3 : x*3+3]
			for c := range 3 {
				if t.pass.Mask.Has(c) {
					px[c] = v[c]
				}
			}
		}
	}
	s.dirty = true
	return nil
}

// Stamp draws the brush centered at center with the given side length, both in canvas units
// ([0,1] across the surface, v up), blending with the pass blend into the masked channels.
//
// Parameters:
//   - b: the brush sprite
//   - center: the stamp center in canvas units
//   - size: the stamp side in canvas units
//
// Returns:
//   - error: ErrPassEnded after End
func (t *Target) Stamp(b *Brush, center mgl32.Vec2, size float32) error {
	if t.done {
		return ErrPassEnded
	}
	s := t.s
	w := max(1, int(math.Round(float64(size*float32(s.width)))))
	h := max(1, int(math.Round(float64(size*float32(s.height)))))
	sprite := b.Scaled(w, h)

	x0 := int(math.Round(float64(center.X()*float32(s.width)))) - w/2
	y0 := int(math.Round(float64(center.Y()*float32(s.height)))) - h/2
	area := image.Rect(x0, y0, x0+w, y0+h).Intersect(t.clip)
	if area.Empty() {
		return nil
	}

	k := common.Clamp(t.pass.Blend.Constant, 0, 1)
	s.mu.Lock()
	defer s.mu.Unlock()
	for y := area.Min.Y; y < area.Max.Y; y++ {
		row := s.pix[y*s.width*3:]
		srow := sprite.Pix[(y-y0)*sprite.Stride:]
		for x := area.Min.X; x < area.Max.X; x++ {
			src := float32(srow[x-x0]) / 255
			if src == 0 {
				continue
			}
			px := row[x*3 : x*3+3]
			for c := range 3 {
				if !t.pass.Mask.Has(c) {
					continue
				}
				px[c] = blend(src, k, px[c])
			}
		}
	}
	s.dirty = true
	return nil
}

// blend applies BlendConstantAlpha to one channel byte.
func blend(src, k float32, dst byte) byte {
	d := float32(dst) / 255
	return toByte(src*k + d*(1-src))
}

func toByte(v float32) byte {
	return byte(math.Round(float64(common.Clamp(v, 0, 1) * 255)))
}

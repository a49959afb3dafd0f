package paint

import (
	"image"
	"math"
	"sync"

	"github.com/Carmen-Shannon/hairstylist/common"
	"github.com/cogentcore/webgpu/wgpu"
	"golang.org/x/image/draw"
)

// maxCachedSizes bounds the number of resampled sprites a Brush keeps.
const maxCachedSizes = 32

// Brush is a grayscale stamp sprite. Row 0 is the bottom of the sprite.
type Brush struct {
	mu     *sync.Mutex
	src    *image.Gray
	scaled map[image.Point]*image.Gray
}

// NewBrush converts img to a premultiplied grayscale sprite, so transparent pixels never paint.
//
// Parameters:
//   - img: the source image
//
// Returns:
//   - *Brush: the brush
func NewBrush(img image.Image) *Brush {
	b := img.Bounds()
	g := image.NewGray(image.Rect(0, 0, b.Dx(), b.Dy()))
	draw.Draw(g, g.Bounds(), img, b.Min, draw.Src)
	return &Brush{mu: &sync.Mutex{}, src: g, scaled: make(map[image.Point]*image.Gray)}
}

// SoftBrush builds a round sprite with a smooth (1 - r²)² falloff.
//
// Parameters:
//   - size: the sprite side in pixels
//
// Returns:
//   - *Brush: the brush
func SoftBrush(size int) *Brush {
	size = max(size, 1)
	g := image.NewGray(image.Rect(0, 0, size, size))
	half := float64(size) / 2
	for y := range size {
		for x := range size {
			dx := (float64(x) + 0.5 - half) / half
			dy := (float64(y) + 0.5 - half) / half
			r2 := dx*dx + dy*dy
			if r2 >= 1 {
				continue
			}
			f := (1 - r2) * (1 - r2)
			g.Pix[y*g.Stride+x] = uint8(math.Round(f * 255))
		}
	}
	return &Brush{mu: &sync.Mutex{}, src: g, scaled: make(map[image.Point]*image.Gray)}
}

// Size returns the source sprite size.
func (b *Brush) Size() image.Point {
	return b.src.Bounds().Size()
}

// Scaled returns the sprite resampled to w x h with Catmull-Rom filtering. Results are cached per size.
//
// Parameters:
//   - w, h: the target size in pixels
//
// Returns:
//   - *image.Gray: the resampled sprite; callers must not modify it
func (b *Brush) Scaled(w, h int) *image.Gray {
	key := image.Pt(max(w, 1), max(h, 1))
	b.mu.Lock()
	defer b.mu.Unlock()
	if g, ok := b.scaled[key]; ok {
		return g
	}
	if key == b.src.Bounds().Size() {
		b.scaled[key] = b.src
		return b.src
	}
	if len(b.scaled) >= maxCachedSizes {
		clear(b.scaled)
	}
	g := image.NewGray(image.Rectangle{Max: key})
	draw.CatmullRom.Scale(g, g.Bounds(), b.src, b.src.Bounds(), draw.Src, nil)
	b.scaled[key] = g
	return g
}

// Staging expands the sprite to RGBA for GPU upload: rgb is the sprite value and alpha matches it.
//
// Returns:
//   - common.TextureStagingData: the RGBA pixels
func (b *Brush) Staging() common.TextureStagingData {
	sz := b.Size()
	out := make([]byte, sz.X*sz.Y*4)
	for y := range sz.Y {
		for x := range sz.X {
			v := b.src.Pix[y*b.src.Stride+x]
			i := (y*sz.X + x) * 4
			out[i], out[i+1], out[i+2], out[i+3] = v, v, v, v
		}
	}
	return common.TextureStagingData{Pixels: out, Width: uint32(sz.X), Height: uint32(sz.Y), Format: wgpu.TextureFormatRGBA8Unorm}
}

// package common contains common types that are used throughout this engine. They are not interface-wrapped structs, just plain structs that express
// commonly used data-types.
package common

import (
	"fmt"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"os"

	"github.com/cogentcore/webgpu/wgpu"
	_ "golang.org/x/image/bmp"
	"golang.org/x/image/draw"
	_ "golang.org/x/image/tiff"
)

// TextureStagingData holds RGBA pixel data for a texture binding pending GPU upload.
type TextureStagingData struct {
	// Pixels is the byte slice representing the actual pixel data for the texture, 4 bytes per pixel.
	Pixels []byte
	// Width is the width of the texture in pixels.
	Width uint32
	// Height is the height of the texture in pixels.
	Height uint32
	// Format is the GPU texture format. The zero value means RGBA8UnormSrgb, for color images.
	Format wgpu.TextureFormat
}

// SamplerStagingData holds the configuration for a sampler binding pending GPU creation.
// Zero fields fall back to linear filtering and repeat addressing.
type SamplerStagingData struct {
	// AddressModeU, AddressModeV, AddressModeW specify the addressing mode for texture coordinates outside [0, 1].
	AddressModeU, AddressModeV, AddressModeW wgpu.AddressMode
	// MagFilter and MinFilter specify the filtering mode for magnification and minification.
	MagFilter, MinFilter wgpu.FilterMode
	// MipmapFilter specifies the filtering mode for mipmap level selection.
	MipmapFilter wgpu.MipmapFilterMode
}

// ImageAsset is an image file on disk waiting to be decoded into texture data.
type ImageAsset struct {
	// Name is an identifier for this image (e.g., "diffuse", "brush").
	Name string

	// Path is the file path of the image.
	Path string

	// FlipVertical stores the bottom image row first so that texture coordinate v=0
	// addresses the bottom of the picture, matching the mesh UV convention.
	FlipVertical bool
}

// Decode decodes the image to an RGBA image.
// PNG, JPEG, BMP and TIFF are supported.
//
// Returns:
//   - *image.RGBA: the decoded image with its bounds rebased to the origin
//   - error: error if the file cannot be opened or decoded
func (a ImageAsset) Decode() (*image.RGBA, error) {
	file, err := os.Open(a.Path)
	if err != nil {
		return nil, fmt.Errorf("failed to open image %s: %w", a.Path, err)
	}
	defer file.Close()

	img, _, err := image.Decode(file)
	if err != nil {
		return nil, fmt.Errorf("failed to decode image %s: %w", a.Path, err)
	}

	bounds := img.Bounds()
	rgba := image.NewRGBA(image.Rect(0, 0, bounds.Dx(), bounds.Dy()))
	draw.Copy(rgba, image.Point{}, img, bounds, draw.Src, nil)

	if a.FlipVertical {
		FlipRows(rgba.Pix, rgba.Stride, bounds.Dy())
	}
	return rgba, nil
}

// Staging decodes the image into TextureStagingData ready for upload.
//
// Returns:
//   - TextureStagingData: the RGBA pixels and dimensions
//   - error: error if decoding fails
func (a ImageAsset) Staging() (TextureStagingData, error) {
	rgba, err := a.Decode()
	if err != nil {
		return TextureStagingData{}, err
	}
	return TextureStagingData{
		Pixels: rgba.Pix,
		Width:  uint32(rgba.Rect.Dx()),
		Height: uint32(rgba.Rect.Dy()),
	}, nil
}

// SolidTexture builds a single-color RGBA texture.
//
// Parameters:
//   - width, height: texture dimensions in pixels
//   - r, g, b, a: the fill color
//
// Returns:
//   - TextureStagingData: the filled texture
func SolidTexture(width, height uint32, r, g, b, a uint8) TextureStagingData {
	pix := make([]byte, int(width*height)*4)
	for i := 0; i < len(pix); i += 4 {
		pix[i], pix[i+1], pix[i+2], pix[i+3] = r, g, b, a
	}
	return TextureStagingData{Pixels: pix, Width: width, Height: height}
}

// FlipRows reverses the order of the rows of a packed pixel buffer in place.
func FlipRows(pix []byte, stride, rows int) {
	tmp := make([]byte, stride)
	for top, bottom := 0, rows-1; top < bottom; top, bottom = top+1, bottom-1 {
		a := pix[top*stride : (top+1)*stride]
		b := pix[bottom*stride : (bottom+1)*stride]
		copy(tmp, a)
		copy(a, b)
		copy(b, tmp)
	}
}

package loader

import (
	"bytes"
	"encoding/binary"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"
)

// writeDump writes a count-prefixed little-endian dump of values.
func writeDump(t *testing.T, path string, values any, count int) {
	t.Helper()
	var buf bytes.Buffer
	if err := binary.Write(&buf, binary.LittleEndian, uint32(count)); err != nil {
		t.Fatal(err)
	}
	if err := binary.Write(&buf, binary.LittleEndian, values); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		t.Fatal(err)
	}
}

// writeTriangle writes a one-triangle head mesh and returns its two paths.
func writeTriangle(t *testing.T, dir string) (string, string) {
	t.Helper()
	verts := make([]float32, 3*14)
	for i := range 3 {
		verts[i*14] = float32(i)
	}
	vp := filepath.Join(dir, "head.vtx")
	ip := filepath.Join(dir, "head.idx")
	writeDump(t, vp, verts, len(verts))
	writeDump(t, ip, []uint32{0, 1, 2}, 3)
	return vp, ip
}

func TestLoadAllFallbacks(t *testing.T) {
	dir := t.TempDir()
	vp, ip := writeTriangle(t, dir)

	l := NewLoader(BackendTypeBinaryMesh, WithWorkers(2))
	assets, err := l.LoadAll(Request{
		MeshName:    "head",
		VertexPath:  vp,
		IndexPath:   ip,
		DiffusePath: filepath.Join(dir, "missing.png"),
		BrushSize:   16,
	})
	if err != nil {
		t.Fatal(err)
	}
	if assets.Head.VertexCount() != 3 || assets.Head.IndexCount() != 3 {
		t.Fatalf("head has %d vertices %d indices", assets.Head.VertexCount(), assets.Head.IndexCount())
	}
	if !assets.DiffuseFallback || assets.Diffuse.Width != 1 || assets.Diffuse.Height != 1 {
		t.Fatalf("diffuse fallback = %v %dx%d", assets.DiffuseFallback, assets.Diffuse.Width, assets.Diffuse.Height)
	}
	if !assets.BrushFallback || assets.Brush.Size() != image.Pt(16, 16) {
		t.Fatalf("brush fallback = %v %v", assets.BrushFallback, assets.Brush.Size())
	}
}

func TestLoadAllReadsImages(t *testing.T) {
	dir := t.TempDir()
	vp, ip := writeTriangle(t, dir)

	img := image.NewRGBA(image.Rect(0, 0, 4, 2))
	for x := range 4 {
		img.Set(x, 0, color.RGBA{R: 255, A: 255})
		img.Set(x, 1, color.RGBA{B: 255, A: 255})
	}
	png1 := filepath.Join(dir, "face.png")
	f, err := os.Create(png1)
	if err != nil {
		t.Fatal(err)
	}
	if err := png.Encode(f, img); err != nil {
		t.Fatal(err)
	}
	f.Close()

	assets, err := NewLoader(BackendTypeBinaryMesh).LoadAll(Request{
		MeshName:    "head",
		VertexPath:  vp,
		IndexPath:   ip,
		DiffusePath: png1,
		BrushPath:   png1,
	})
	if err != nil {
		t.Fatal(err)
	}
	if assets.DiffuseFallback || assets.BrushFallback {
		t.Fatalf("unexpected fallback: %v %v", assets.DiffuseFallback, assets.BrushFallback)
	}
	d := assets.Diffuse
	if d.Width != 4 || d.Height != 2 {
		t.Fatalf("diffuse %dx%d", d.Width, d.Height)
	}
	// Flipped: the bottom (blue) row comes first.
	if d.Pixels[0] != 0 || d.Pixels[2] != 255 {
		t.Fatalf("first texel = %v, want blue", d.Pixels[:4])
	}
	if assets.Brush.Size() != image.Pt(4, 2) {
		t.Fatalf("brush size %v", assets.Brush.Size())
	}
}

func TestLoadAllMissingMesh(t *testing.T) {
	dir := t.TempDir()
	_, err := NewLoader(BackendTypeBinaryMesh).LoadAll(Request{
		MeshName:   "head",
		VertexPath: filepath.Join(dir, "nope.vtx"),
		IndexPath:  filepath.Join(dir, "nope.idx"),
	})
	if err == nil {
		t.Fatal("expected error for missing mesh")
	}
}

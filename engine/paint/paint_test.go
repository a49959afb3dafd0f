package paint

import (
	"bytes"
	"errors"
	"image"
	"image/color"
	"testing"

	"github.com/cogentcore/webgpu/wgpu"
	"github.com/go-gl/mathgl/mgl32"
)

func solidBrush(size int, v uint8) *Brush {
	img := image.NewGray(image.Rect(0, 0, size, size))
	for i := range img.Pix {
		img.Pix[i] = v
	}
	return NewBrush(img)
}

func TestNewSurfaceIsBaseline(t *testing.T) {
	s := NewSurface(8, 4)
	want := [3]byte{0, 128, 128}
	for y := range 4 {
		for x := range 8 {
			if got := s.Pixel(x, y); got != want {
				t.Fatalf("pixel (%d,%d) = %v, want %v", x, y, got, want)
			}
		}
	}
	if !s.TakeDirty() || s.TakeDirty() {
		t.Fatal("dirty flag not set once after construction")
	}
}

func TestStampBlendsOnlyMaskedChannel(t *testing.T) {
	tests := []struct {
		name    string
		channel Channel
	}{
		{name: "red", channel: Red},
		{name: "green", channel: Green},
		{name: "blue", channel: Blue},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := NewSurface(16, 16)
			before := s.Bytes()
			err := s.Run(Pass{
				Blend: Blend{Mode: BlendConstantAlpha, Constant: 1},
				Mask:  ChannelMask(tt.channel),
			}, func(tg *Target) error {
				return tg.Stamp(SoftBrush(8), mgl32.Vec2{0.5, 0.5}, 0.5)
			})
			if err != nil {
				t.Fatalf("Run: %v", err)
			}
			after := s.Bytes()
			changed := false
			for i := range after {
				if i%3 == int(tt.channel) {
					changed = changed || after[i] != before[i]
					continue
				}
				if after[i] != before[i] {
					t.Fatalf("byte %d (channel %d) changed from %d to %d", i, i%3, before[i], after[i])
				}
			}
			if !changed {
				t.Fatal("painted channel unchanged")
			}
		})
	}
}

func TestStampFormula(t *testing.T) {
	tests := []struct {
		name     string
		src      uint8
		constant float32
		start    [3]float32
		want     byte
	}{
		{name: "full brush writes constant", src: 255, constant: 0.25, start: [3]float32{0, 0, 0}, want: 64},
		{name: "full brush intensity one", src: 255, constant: 1, start: [3]float32{0, 0, 0}, want: 255},
		{name: "neutral erase", src: 255, constant: 0.5, start: [3]float32{1, 1, 1}, want: 128},
		{name: "zero brush keeps dst", src: 0, constant: 1, start: [3]float32{0.2, 0.2, 0.2}, want: 51},
		{name: "half brush mixes", src: 128, constant: 1, start: [3]float32{0, 0, 0}, want: 128},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := NewSurface(4, 4)
			if err := s.Run(Pass{Mask: MaskAll}, func(tg *Target) error { return tg.Clear(tt.start) }); err != nil {
				t.Fatal(err)
			}
			err := s.Run(Pass{Blend: Blend{Constant: tt.constant}, Mask: MaskRed}, func(tg *Target) error {
				return tg.Stamp(solidBrush(4, tt.src), mgl32.Vec2{0.5, 0.5}, 1)
			})
			if err != nil {
				t.Fatal(err)
			}
			for y := range 4 {
				for x := range 4 {
					if got := s.Pixel(x, y)[0]; got != tt.want {
						t.Fatalf("pixel (%d,%d) red = %d, want %d", x, y, got, tt.want)
					}
				}
			}
		})
	}
}

func TestClearMask(t *testing.T) {
	s := NewSurface(4, 4)
	err := s.Run(Pass{Mask: MaskAll}, func(tg *Target) error { return tg.Clear([3]float32{1, 1, 1}) })
	if err != nil {
		t.Fatal(err)
	}
	err = s.Run(Pass{Mask: MaskGreen}, func(tg *Target) error { return tg.Clear(Baseline) })
	if err != nil {
		t.Fatal(err)
	}
	if got := s.Pixel(2, 3); got != [3]byte{255, 128, 255} {
		t.Fatalf("pixel = %v, want [255 128 255]", got)
	}
}

func TestPassViewportClips(t *testing.T) {
	s := NewSurface(4, 4)
	err := s.Run(Pass{Viewport: image.Rect(0, 0, 2, 2), Mask: MaskRed}, func(tg *Target) error {
		return tg.Clear([3]float32{1, 0, 0})
	})
	if err != nil {
		t.Fatal(err)
	}
	if s.Pixel(1, 1)[0] != 255 {
		t.Fatal("pixel inside viewport not cleared")
	}
	if s.Pixel(2, 2)[0] != 0 || s.Pixel(3, 0)[0] != 0 {
		t.Fatal("pixel outside viewport written")
	}
}

func TestStampOffSurfaceIsClipped(t *testing.T) {
	s := NewSurface(8, 8)
	err := s.Run(Pass{Blend: Blend{Constant: 1}, Mask: MaskRed}, func(tg *Target) error {
		return tg.Stamp(solidBrush(4, 255), mgl32.Vec2{0, 0}, 0.5)
	})
	if err != nil {
		t.Fatal(err)
	}
	if s.Pixel(0, 0)[0] != 255 || s.Pixel(1, 1)[0] != 255 {
		t.Fatal("corner not painted")
	}
	if s.Pixel(2, 2)[0] != 0 {
		t.Fatal("paint leaked past the stamp")
	}
}

func TestPassScoping(t *testing.T) {
	s := NewSurface(2, 2)
	tg, err := s.Begin(Pass{Mask: MaskAll})
	if err != nil {
		t.Fatal(err)
	}
	if _, err := s.Begin(Pass{}); !errors.Is(err, ErrPassActive) {
		t.Fatalf("second Begin err = %v, want ErrPassActive", err)
	}
	tg.End()
	tg.End()
	if s.Active() {
		t.Fatal("pass still active after End")
	}
	if err := tg.Clear(Baseline); !errors.Is(err, ErrPassEnded) {
		t.Fatalf("Clear after End err = %v, want ErrPassEnded", err)
	}

	sentinel := errors.New("early return")
	if err := s.Run(Pass{}, func(*Target) error { return sentinel }); !errors.Is(err, sentinel) {
		t.Fatalf("Run err = %v", err)
	}
	if s.Active() {
		t.Fatal("Run left the pass open after an error")
	}

	func() {
		defer func() { _ = recover() }()
		_ = s.Run(Pass{}, func(*Target) error { panic("boom") })
	}()
	if s.Active() {
		t.Fatal("Run left the pass open after a panic")
	}
}

func TestLoad(t *testing.T) {
	s := NewSurface(2, 2)
	if err := s.Load(make([]byte, 5)); !errors.Is(err, ErrMaskSize) {
		t.Fatalf("Load(short) err = %v, want ErrMaskSize", err)
	}
	raw := []byte{1, 2, 3, 4, 5, 6, 7, 8, 9, 10, 11, 12}
	s.TakeDirty()
	if err := s.Load(raw); err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(s.Bytes(), raw) {
		t.Fatalf("Bytes = %v", s.Bytes())
	}
	if !s.TakeDirty() {
		t.Fatal("Load did not mark the surface dirty")
	}
	if got := s.Pixel(1, 1); got != [3]byte{10, 11, 12} {
		t.Fatalf("Pixel(1,1) = %v", got)
	}
}

func TestResizeIsNoop(t *testing.T) {
	s := NewSurface(4, 2)
	s.Resize(100, 100)
	if s.Width() != 4 || s.Height() != 2 || len(s.Bytes()) != 24 {
		t.Fatal("Resize changed the surface")
	}
}

func TestStaging(t *testing.T) {
	s := NewSurface(2, 1)
	st := s.Staging()
	if st.Width != 2 || st.Height != 1 {
		t.Fatalf("staging size %dx%d", st.Width, st.Height)
	}
	want := []byte{0, 128, 128, 255, 0, 128, 128, 255}
	if !bytes.Equal(st.Pixels, want) {
		t.Fatalf("Pixels = %v, want %v", st.Pixels, want)
	}
}

func TestStagingReusesBuffer(t *testing.T) {
	s := NewSurface(4, 4)
	first := s.Staging()
	err := s.Run(Pass{Mask: MaskRed}, func(tg *Target) error {
		return tg.Clear([3]float32{1, 0, 0})
	})
	if err != nil {
		t.Fatal(err)
	}
	second := s.Staging()
	if &first.Pixels[0] != &second.Pixels[0] {
		t.Fatal("Staging allocated a new buffer")
	}
	if second.Pixels[0] != 255 || second.Pixels[1] != 128 || second.Pixels[3] != 255 {
		t.Fatalf("first texel = %v, want the cleared red", second.Pixels[:4])
	}
	if allocs := testing.AllocsPerRun(10, func() { s.Staging() }); allocs != 0 {
		t.Fatalf("Staging allocates %v times per call", allocs)
	}
}

func TestColorMaskWriteMask(t *testing.T) {
	tests := []struct {
		mask ColorMask
		want wgpu.ColorWriteMask
	}{
		{MaskNone, wgpu.ColorWriteMaskAlpha},
		{MaskRed, wgpu.ColorWriteMaskRed | wgpu.ColorWriteMaskAlpha},
		{MaskGreen, wgpu.ColorWriteMaskGreen | wgpu.ColorWriteMaskAlpha},
		{MaskBlue, wgpu.ColorWriteMaskBlue | wgpu.ColorWriteMaskAlpha},
		{MaskAll, wgpu.ColorWriteMaskAll},
	}
	for _, tt := range tests {
		if got := tt.mask.WriteMask(); got != tt.want {
			t.Errorf("ColorMask(%b).WriteMask() = %v, want %v", tt.mask, got, tt.want)
		}
	}
}

func TestBrush(t *testing.T) {
	b := SoftBrush(16)
	sprite := b.Scaled(16, 16)
	if sprite.GrayAt(8, 8).Y == 0 {
		t.Fatal("soft brush center is empty")
	}
	if sprite.GrayAt(0, 0).Y != 0 {
		t.Fatal("soft brush corner is painted")
	}
	small := b.Scaled(4, 4)
	if small.Bounds().Dx() != 4 || b.Scaled(4, 4) != small {
		t.Fatal("scaled sprite not cached")
	}
	if b.Scaled(0, 0).Bounds().Dx() != 1 {
		t.Fatal("zero size not clamped to one pixel")
	}
}

func TestNewBrushPremultiplies(t *testing.T) {
	img := image.NewNRGBA(image.Rect(0, 0, 2, 1))
	img.SetNRGBA(0, 0, color.NRGBA{R: 255, G: 255, B: 255, A: 0})
	img.SetNRGBA(1, 0, color.NRGBA{R: 255, G: 255, B: 255, A: 255})
	b := NewBrush(img)
	g := b.Scaled(2, 1)
	if g.GrayAt(0, 0).Y != 0 || g.GrayAt(1, 0).Y != 255 {
		t.Fatalf("brush = %v", g.Pix)
	}
}

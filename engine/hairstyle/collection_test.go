package hairstyle

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/Carmen-Shannon/hairstylist/engine/paint"
	"github.com/go-gl/mathgl/mgl32"
)

type rawMask []byte

func (m rawMask) Bytes() []byte { return m }

func newTestCollection(t *testing.T, dir string) Collection {
	t.Helper()
	c, err := NewCollection(dir, "hairstyle", "save.info")
	if err != nil {
		t.Fatalf("NewCollection: %v", err)
	}
	return c
}

func TestSaveWritesIndex(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "save.info"), nil, 0o644); err != nil {
		t.Fatal(err)
	}
	c := newTestCollection(t, dir)

	rec, err := c.Save(Hairstyle{Color: mgl32.Vec3{1, 0, 0}, Width: 2, Length: 0.5}, rawMask{1, 2, 3})
	if err != nil {
		t.Fatalf("Save: %v", err)
	}
	if rec.Filename != "hairstyle0.style" {
		t.Fatalf("Filename = %q", rec.Filename)
	}
	got, err := os.ReadFile(filepath.Join(dir, "save.info"))
	if err != nil {
		t.Fatal(err)
	}
	if want := "1\nhairstyle0.style 1 0 0 2 0.5\n"; string(got) != want {
		t.Fatalf("index = %q, want %q", got, want)
	}
	mask, err := os.ReadFile(filepath.Join(dir, "hairstyle0.style"))
	if err != nil || string(mask) != "\x01\x02\x03" {
		t.Fatalf("mask file = %v, %v", mask, err)
	}
}

func TestMissingIndexIsEmpty(t *testing.T) {
	c := newTestCollection(t, filepath.Join(t.TempDir(), "nope"))
	if c.Len() != 0 || c.Counter() != 0 {
		t.Fatalf("Len = %d, Counter = %d", c.Len(), c.Counter())
	}
	for name, fn := range map[string]func() (Record, error){"next": c.Next, "prev": c.Prev, "recent": c.Recent} {
		if _, err := fn(); !errors.Is(err, ErrEmptyCollection) {
			t.Fatalf("%s err = %v, want ErrEmptyCollection", name, err)
		}
	}
	if c.Index() != 0 {
		t.Fatalf("Index = %d after traversal of empty collection", c.Index())
	}
}

func TestCycling(t *testing.T) {
	c := newTestCollection(t, t.TempDir())
	for i := range 3 {
		if _, err := c.Save(Hairstyle{Width: float32(i + 1)}, rawMask{byte(i)}); err != nil {
			t.Fatal(err)
		}
	}

	tests := []struct {
		name  string
		step  func() (Record, error)
		index int
		file  string
	}{
		{name: "next from 0", step: c.Next, index: 1, file: "hairstyle1.style"},
		{name: "next", step: c.Next, index: 2, file: "hairstyle2.style"},
		{name: "next wraps", step: c.Next, index: 0, file: "hairstyle0.style"},
		{name: "prev wraps", step: c.Prev, index: 2, file: "hairstyle2.style"},
		{name: "prev", step: c.Prev, index: 1, file: "hairstyle1.style"},
		{name: "recent keeps cursor", step: c.Recent, index: 1, file: "hairstyle2.style"},
	}
	for _, tt := range tests {
		rec, err := tt.step()
		if err != nil {
			t.Fatalf("%s: %v", tt.name, err)
		}
		if c.Index() != tt.index || rec.Filename != tt.file {
			t.Fatalf("%s: index %d file %q, want %d %q", tt.name, c.Index(), rec.Filename, tt.index, tt.file)
		}
	}
}

func TestCounterSurvivesReloadAndMissingFiles(t *testing.T) {
	dir := t.TempDir()
	c := newTestCollection(t, dir)
	for range 3 {
		if _, err := c.Save(Hairstyle{Width: 1}, rawMask{0}); err != nil {
			t.Fatal(err)
		}
	}
	if err := os.Remove(filepath.Join(dir, "hairstyle1.style")); err != nil {
		t.Fatal(err)
	}

	c = newTestCollection(t, dir)
	if c.Len() != 2 {
		t.Fatalf("Len = %d, want 2", c.Len())
	}
	if c.Counter() != 3 {
		t.Fatalf("Counter = %d, want 3", c.Counter())
	}
	rec, err := c.Save(Hairstyle{Width: 1}, rawMask{0})
	if err != nil {
		t.Fatal(err)
	}
	if rec.Filename != "hairstyle3.style" {
		t.Fatalf("Filename = %q, want hairstyle3.style", rec.Filename)
	}
}

func TestLoadSkipsBadLines(t *testing.T) {
	dir := t.TempDir()
	index := "garbage\n" +
		"hairstyle0.style 1 0 0 2 0.5\n" +
		"hairstyle1.style 1 0\n" +
		"../evil.style 1 1 1 1 1\n" +
		"hairstyle7.style 0 1 0 3 1\n" +
		"hairstyle2.style x 0 0 1 1\n"
	if err := os.WriteFile(filepath.Join(dir, "save.info"), []byte(index), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, "hairstyle0.style"), []byte{0}, 0o644); err != nil {
		t.Fatal(err)
	}

	c := newTestCollection(t, dir)
	recs := c.Records()
	if len(recs) != 1 || recs[0].Filename != "hairstyle0.style" {
		t.Fatalf("records = %+v", recs)
	}
	want := Hairstyle{Color: mgl32.Vec3{1, 0, 0}, Width: 2, Length: 0.5}
	if recs[0].Style != want {
		t.Fatalf("style = %+v, want %+v", recs[0].Style, want)
	}
	// hairstyle7 is missing on disk but its number is still reserved.
	if c.Counter() != 8 {
		t.Fatalf("Counter = %d, want 8", c.Counter())
	}
}

func TestMaskRoundTrip(t *testing.T) {
	c := newTestCollection(t, t.TempDir())
	s := paint.NewSurface(32, 32)
	err := s.Run(paint.Pass{
		Blend: paint.Blend{Constant: 1},
		Mask:  paint.ChannelMask(paint.Green),
	}, func(tg *paint.Target) error {
		return tg.Stamp(paint.SoftBrush(8), mgl32.Vec2{0.25, 0.75}, 0.25)
	})
	if err != nil {
		t.Fatal(err)
	}
	saved := s.Bytes()
	rec, err := c.Save(Hairstyle{Width: 1}, s)
	if err != nil {
		t.Fatal(err)
	}

	err = s.Run(paint.Pass{
		Blend: paint.Blend{Constant: 1},
		Mask:  paint.ChannelMask(paint.Red),
	}, func(tg *paint.Target) error {
		return tg.Stamp(paint.SoftBrush(8), mgl32.Vec2{0.5, 0.5}, 0.5)
	})
	if err != nil {
		t.Fatal(err)
	}

	if err := c.LoadMask(rec, s); err != nil {
		t.Fatalf("LoadMask: %v", err)
	}
	got := s.Bytes()
	for i := range got {
		if got[i] != saved[i] {
			t.Fatalf("byte %d = %d after reload, want %d", i, got[i], saved[i])
		}
	}

	small := paint.NewSurface(2, 2)
	if err := c.LoadMask(rec, small); !errors.Is(err, paint.ErrMaskSize) {
		t.Fatalf("LoadMask into wrong size err = %v, want ErrMaskSize", err)
	}
	if err := c.LoadMask(Record{Filename: "gone.style"}, s); !errors.Is(err, os.ErrNotExist) {
		t.Fatalf("LoadMask missing err = %v", err)
	}
}

func TestNormalizeAndUniform(t *testing.T) {
	h := Hairstyle{Color: mgl32.Vec3{0.6, 0.3, 0}, Width: 9, Length: -1}.Normalize()
	if h.Width != MaxWidth || h.Length != 0 {
		t.Fatalf("Normalize = %+v", h)
	}
	u := NewHairUniform(Hairstyle{Color: mgl32.Vec3{1, 0, 0}, Width: 2, Length: 0.5}, 500, 500)
	if u.Size() != 32 || len(u.Marshal()) != 32 {
		t.Fatalf("uniform size %d", u.Size())
	}
	if u.Params != (mgl32.Vec4{0.5, 2, 500, 500}) || u.Color[3] != 1 {
		t.Fatalf("uniform = %+v", u)
	}
}

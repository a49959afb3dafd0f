package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestDefaultIsValid(t *testing.T) {
	if err := Default().Validate(); err != nil {
		t.Fatalf("Default().Validate() = %v", err)
	}
}

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Window.Width != 1000 || cfg.Window.Height != 500 {
		t.Fatalf("window = %dx%d, want 1000x500", cfg.Window.Width, cfg.Window.Height)
	}
	if cfg.Saves.Name != "hairstyle" || cfg.Presets.Name != "preset" {
		t.Fatalf("collection names = %q, %q", cfg.Saves.Name, cfg.Presets.Name)
	}
}

func TestLoadOverrides(t *testing.T) {
	path := filepath.Join(t.TempDir(), "hs.yaml")
	body := `
window:
  title: Test
  width: 800
brush:
  intensity: 0.5
hair:
  color: [1, 0, 0]
debug:
  software_renderer: true
`
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Window.Title != "Test" || cfg.Window.Width != 800 {
		t.Errorf("window = %+v", cfg.Window)
	}
	if cfg.Window.Height != 500 {
		t.Errorf("height default lost: %d", cfg.Window.Height)
	}
	if cfg.Brush.Intensity != 0.5 {
		t.Errorf("intensity = %g, want 0.5", cfg.Brush.Intensity)
	}
	if cfg.Hair.Color != [3]float32{1, 0, 0} {
		t.Errorf("hair color = %v", cfg.Hair.Color)
	}
	if !cfg.Debug.SoftwareRenderer || Default().Debug.SoftwareRenderer {
		t.Errorf("software_renderer = %v, default %v", cfg.Debug.SoftwareRenderer, Default().Debug.SoftwareRenderer)
	}
}

func TestLoadRejects(t *testing.T) {
	tests := []struct {
		name string
		body string
		want string
	}{
		{name: "unknown key", body: "window:\n  colour: red\n", want: "colour"},
		{name: "intensity range", body: "brush:\n  intensity: 2\n", want: "intensity"},
		{name: "hair width range", body: "hair:\n  width: 9\n", want: "hair.width"},
		{name: "mask size", body: "mask:\n  width: 0\n", want: "mask size"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "hs.yaml")
			if err := os.WriteFile(path, []byte(tt.body), 0o644); err != nil {
				t.Fatal(err)
			}
			_, err := Load(path)
			if err == nil {
				t.Fatal("Load succeeded, want error")
			}
			if !strings.Contains(err.Error(), tt.want) {
				t.Fatalf("error %q does not mention %q", err, tt.want)
			}
		})
	}
}

func TestDecodeEmptyDocument(t *testing.T) {
	cfg := Default()
	if err := Decode(strings.NewReader(""), cfg); err != nil {
		t.Fatalf("Decode(empty) = %v", err)
	}
	if cfg.Brush.Scale != 0.1 {
		t.Fatalf("scale = %g, want 0.1", cfg.Brush.Scale)
	}
}

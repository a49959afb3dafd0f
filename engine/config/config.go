// Package config loads the application configuration from YAML over compiled-in defaults.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"
)

// Config holds the full application configuration.
type Config struct {
	Window    WindowConfig     `yaml:"window"`
	Mask      MaskConfig       `yaml:"mask"`
	Assets    AssetsConfig     `yaml:"assets"`
	Saves     CollectionConfig `yaml:"saves"`
	Presets   CollectionConfig `yaml:"presets"`
	Brush     BrushConfig      `yaml:"brush"`
	Hair      HairConfig       `yaml:"hair"`
	Camera    CameraConfig     `yaml:"camera"`
	Arcball   ArcballConfig    `yaml:"arcball"`
	Lighting  LightingConfig   `yaml:"lighting"`
	Materials MaterialsConfig  `yaml:"materials"`
	Debug     DebugConfig      `yaml:"debug"`
}

// WindowConfig configures the application window.
type WindowConfig struct {
	Title  string `yaml:"title"`
	Width  int    `yaml:"width"`
	Height int    `yaml:"height"`
	VSync  bool   `yaml:"vsync"`
}

// MaskConfig sets the fixed resolution of the paint surface.
type MaskConfig struct {
	Width  int `yaml:"width"`
	Height int `yaml:"height"`
}

// AssetsConfig locates the on-disk assets.
type AssetsConfig struct {
	MeshVertices   string `yaml:"mesh_vertices"`
	MeshIndices    string `yaml:"mesh_indices"`
	DiffuseTexture string `yaml:"diffuse_texture"`
	BrushTexture   string `yaml:"brush_texture"`
	// ShaderDir enables F1 hot-reload from disk when set.
	ShaderDir string `yaml:"shader_dir"`
}

// CollectionConfig locates one hairstyle collection.
type CollectionConfig struct {
	Dir   string `yaml:"dir"`
	Name  string `yaml:"name"`
	Index string `yaml:"index"`
}

// BrushConfig holds the painting brush parameters.
type BrushConfig struct {
	Scale         float32 `yaml:"scale"`
	ScaleStep     float32 `yaml:"scale_step"`
	MinScale      float32 `yaml:"min_scale"`
	Intensity     float32 `yaml:"intensity"`
	IntensityStep float32 `yaml:"intensity_step"`
	// SpriteSize is the side of the procedural brush used when no brush texture is found.
	SpriteSize int `yaml:"sprite_size"`
}

// HairConfig holds the initial hairstyle and its key/wheel increments.
type HairConfig struct {
	Color      [3]float32 `yaml:"color"`
	Width      float32    `yaml:"width"`
	Length     float32    `yaml:"length"`
	LengthStep float32    `yaml:"length_step"`
	WidthStep  float32    `yaml:"width_step"`
}

// CameraConfig holds the model camera parameters.
type CameraConfig struct {
	ZoomStep      float32 `yaml:"zoom_step"`
	Fov           float32 `yaml:"fov"`
	ModelDistance float32 `yaml:"model_distance"`
	Near          float32 `yaml:"near"`
	Far           float32 `yaml:"far"`
}

// ArcballConfig holds the arcball sphere radius in NDC units.
type ArcballConfig struct {
	Radius float32 `yaml:"radius"`
}

// LightingConfig describes the directional light.
type LightingConfig struct {
	Direction [3]float32 `yaml:"direction"`
	Ambient   [3]float32 `yaml:"ambient"`
	Diffuse   [3]float32 `yaml:"diffuse"`
	Specular  [3]float32 `yaml:"specular"`
}

// MaterialConfig is a diffuse color plus a specular color and shininess.
type MaterialConfig struct {
	Diffuse   [3]float32 `yaml:"diffuse"`
	Specular  [3]float32 `yaml:"specular"`
	Shininess float32    `yaml:"shininess"`
}

// MaterialsConfig holds the head and hair materials.
type MaterialsConfig struct {
	Model MaterialConfig `yaml:"model"`
	Hair  MaterialConfig `yaml:"hair"`
}

// DebugConfig toggles development features.
type DebugConfig struct {
	Profiling bool `yaml:"profiling"`
	// Dev enables shader reload and the FPS window title.
	Dev bool `yaml:"dev"`
	// SoftwareRenderer requests the CPU fallback adapter, for machines without a usable GPU driver.
	SoftwareRenderer bool `yaml:"software_renderer"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Window: WindowConfig{Title: "HairStylist", Width: 1000, Height: 500, VSync: true},
		Mask:   MaskConfig{Width: 1024, Height: 1024},
		Assets: AssetsConfig{
			MeshVertices:   "Assets/Mesh/AngelinaHeadVB.raw",
			MeshIndices:    "Assets/Mesh/AngelinaHeadIB.raw",
			DiffuseTexture: "Assets/Textures/AngelinaFaceDiffuse.png",
			BrushTexture:   "Assets/Textures/Brush.png",
		},
		Saves:   CollectionConfig{Dir: "Save", Name: "hairstyle", Index: "save.info"},
		Presets: CollectionConfig{Dir: "Presets", Name: "preset", Index: "preset.info"},
		Brush: BrushConfig{
			Scale:         0.1,
			ScaleStep:     0.01,
			MinScale:      0.01,
			Intensity:     1,
			IntensityStep: 0.1,
			SpriteSize:    128,
		},
		Hair: HairConfig{
			Color:      [3]float32{0.6, 0.3, 0},
			Width:      1,
			Length:     0.5,
			LengthStep: 0.1,
			WidthStep:  1,
		},
		Camera:  CameraConfig{ZoomStep: 0.1, Fov: 45, ModelDistance: 10, Near: 0.1, Far: 100},
		Arcball: ArcballConfig{Radius: 1.5},
		Lighting: LightingConfig{
			Direction: [3]float32{0, -0.5, -1},
			Ambient:   [3]float32{0, 0, 0},
			Diffuse:   [3]float32{1, 1, 1},
			Specular:  [3]float32{1, 1, 1},
		},
		Materials: MaterialsConfig{
			Model: MaterialConfig{Diffuse: [3]float32{0.8, 0.8, 0.8}, Specular: [3]float32{0.15, 0.15, 0.15}, Shininess: 64},
			Hair:  MaterialConfig{Diffuse: [3]float32{0.8, 0.8, 0.8}, Specular: [3]float32{0.5, 0.5, 0.5}, Shininess: 64},
		},
	}
}

// Load reads a YAML file over Default. A missing file yields the defaults; unknown keys are an error.
//
// Parameters:
//   - path: the config file path, or "" for defaults only
//
// Returns:
//   - *Config: the merged and validated configuration
//   - error: error if the file cannot be read, parsed or validated
func Load(path string) (*Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, cfg.Validate()
	}
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return cfg, cfg.Validate()
	}
	if err != nil {
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}
	if err := Decode(bytes.NewReader(data), cfg); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

// Decode strictly decodes YAML from r into cfg. An empty document leaves cfg untouched.
func Decode(r io.Reader, cfg *Config) error {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
		return err
	}
	return nil
}

// Validate checks that sizes are positive and tunables are within range.
func (c *Config) Validate() error {
	switch {
	case c.Window.Width <= 0 || c.Window.Height <= 0:
		return fmt.Errorf("window size must be > 0, got %dx%d", c.Window.Width, c.Window.Height)
	case c.Mask.Width <= 0 || c.Mask.Height <= 0:
		return fmt.Errorf("mask size must be > 0, got %dx%d", c.Mask.Width, c.Mask.Height)
	case c.Assets.MeshVertices == "" || c.Assets.MeshIndices == "":
		return fmt.Errorf("assets.mesh_vertices and assets.mesh_indices are required")
	case c.Saves.Index == "" || c.Presets.Index == "":
		return fmt.Errorf("saves.index and presets.index are required")
	case c.Brush.MinScale <= 0 || c.Brush.MinScale > c.Brush.Scale || c.Brush.Scale > 1:
		return fmt.Errorf("brush scale must satisfy 0 < min_scale <= scale <= 1, got min %g scale %g", c.Brush.MinScale, c.Brush.Scale)
	case c.Brush.Intensity < 0 || c.Brush.Intensity > 1:
		return fmt.Errorf("brush.intensity must be in [0,1], got %g", c.Brush.Intensity)
	case c.Brush.SpriteSize <= 0:
		return fmt.Errorf("brush.sprite_size must be > 0")
	case c.Hair.Width < 1 || c.Hair.Width > 5:
		return fmt.Errorf("hair.width must be in [1,5], got %g", c.Hair.Width)
	case c.Hair.Length < 0:
		return fmt.Errorf("hair.length must be >= 0, got %g", c.Hair.Length)
	case c.Camera.Near <= 0 || c.Camera.Far <= c.Camera.Near:
		return fmt.Errorf("camera planes must satisfy 0 < near < far")
	case c.Arcball.Radius <= 0:
		return fmt.Errorf("arcball.radius must be > 0")
	}
	return nil
}

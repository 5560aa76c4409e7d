// Package config persists engine preferences (window size, vsync, camera
// field of view) across runs as a YAML file.
package config

import (
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/veldt-engine/veldt/common"
	"github.com/veldt-engine/veldt/engine/renderer"
)

// DefaultPath is the preferences file path, relative to the process working directory.
const DefaultPath = "config/engine.yaml"

// Prefs holds engine preferences persisted across runs. In-application state
// (registries, camera pose) is separate and never persisted here.
type Prefs struct {
	WindowTitle  string `yaml:"window_title"`
	WindowWidth  int    `yaml:"window_width"`
	WindowHeight int    `yaml:"window_height"`

	// PresentMode is "vsync" or "uncapped".
	PresentMode string `yaml:"present_mode"`

	// FOVDegrees is the vertical field of view for the perspective projection.
	FOVDegrees float32 `yaml:"fov_degrees"`

	// MaxTextureDimension caps loaded texture size; 0 disables the cap.
	MaxTextureDimension int `yaml:"max_texture_dimension,omitempty"`

	Profiling bool `yaml:"profiling"`
}

// Default returns default engine preferences (vsync on, 45 degree FOV,
// profiling off).
func Default() Prefs {
	return Prefs{
		WindowTitle:  "Veldt",
		WindowWidth:  1280,
		WindowHeight: 720,
		PresentMode:  "vsync",
		FOVDegrees:   45,
	}
}

// Load reads engine preferences from path. If the file is missing or invalid,
// returns Default() and does not create a file.
func Load(path string) (Prefs, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Default(), nil
	}
	p := Default()
	if err := yaml.Unmarshal(data, &p); err != nil {
		return Default(), nil
	}
	return p.normalized(), nil
}

// Save writes engine preferences to path, creating parent directories if needed.
func Save(path string, p Prefs) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}
	data, err := yaml.Marshal(p)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// RendererPresentMode maps the persisted present mode string to a renderer
// PresentMode. Unrecognized values fall back to vsync.
func (p Prefs) RendererPresentMode() renderer.PresentMode {
	if p.PresentMode == "uncapped" {
		return renderer.PresentModeUncapped
	}
	return renderer.PresentModeVSync
}

// FOVRadians returns the configured vertical field of view in radians.
func (p Prefs) FOVRadians() float32 {
	return common.DegToRad(p.FOVDegrees)
}

// normalized clamps nonsensical persisted values back to defaults.
func (p Prefs) normalized() Prefs {
	def := Default()
	if p.WindowWidth <= 0 || p.WindowHeight <= 0 {
		p.WindowWidth = def.WindowWidth
		p.WindowHeight = def.WindowHeight
	}
	if p.FOVDegrees <= 0 || p.FOVDegrees >= 180 {
		p.FOVDegrees = def.FOVDegrees
	}
	if p.WindowTitle == "" {
		p.WindowTitle = def.WindowTitle
	}
	if p.MaxTextureDimension < 0 {
		p.MaxTextureDimension = 0
	}
	return p
}

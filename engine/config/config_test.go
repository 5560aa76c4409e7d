package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/veldt-engine/veldt/engine/renderer"
)

func TestLoadMissingFileReturnsDefaults(t *testing.T) {
	p, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.NoError(t, err)
	assert.Equal(t, Default(), p)
}

func TestLoadInvalidYAMLReturnsDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "engine.yaml")
	require.NoError(t, os.WriteFile(path, []byte("{not yaml:::"), 0644))

	p, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, Default(), p)
}

func TestSaveLoadRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config", "engine.yaml")

	want := Prefs{
		WindowTitle:         "Cube Field",
		WindowWidth:         801,
		WindowHeight:        600,
		PresentMode:         "uncapped",
		FOVDegrees:          60,
		MaxTextureDimension: 2048,
		Profiling:           true,
	}
	require.NoError(t, Save(path, want))

	got, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, want, got)
}

func TestLoadNormalizesBadValues(t *testing.T) {
	path := filepath.Join(t.TempDir(), "engine.yaml")
	raw := "window_title: \"\"\nwindow_width: -5\nwindow_height: 600\nfov_degrees: 270\npresent_mode: vsync\n"
	require.NoError(t, os.WriteFile(path, []byte(raw), 0644))

	p, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "Veldt", p.WindowTitle)
	assert.Equal(t, 1280, p.WindowWidth)
	assert.Equal(t, 720, p.WindowHeight)
	assert.InDelta(t, 45.0, float64(p.FOVDegrees), 1e-6)
}

func TestRendererPresentMode(t *testing.T) {
	assert.Equal(t, renderer.PresentModeUncapped, Prefs{PresentMode: "uncapped"}.RendererPresentMode())
	assert.Equal(t, renderer.PresentModeVSync, Prefs{PresentMode: "vsync"}.RendererPresentMode())
	assert.Equal(t, renderer.PresentModeVSync, Prefs{PresentMode: "bogus"}.RendererPresentMode())
}

func TestFOVRadians(t *testing.T) {
	p := Prefs{FOVDegrees: 180}
	assert.InDelta(t, 3.14159265, float64(p.FOVRadians()), 1e-5)
}

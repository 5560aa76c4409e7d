package loader

import (
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// writeTestPNG renders a width x height gradient PNG into a temp dir.
func writeTestPNG(t *testing.T, width, height int) string {
	t.Helper()

	img := image.NewNRGBA(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			img.Set(x, y, color.NRGBA{R: uint8(x % 256), G: uint8(y % 256), B: 64, A: 255})
		}
	}

	path := filepath.Join(t.TempDir(), "texture.png")
	f, err := os.Create(path)
	require.NoError(t, err)
	defer f.Close()
	require.NoError(t, png.Encode(f, img))
	return path
}

func TestFromImagePacksTightRGBA(t *testing.T) {
	img := image.NewNRGBA(image.Rect(0, 0, 3, 2))
	img.Set(0, 0, color.NRGBA{R: 255, A: 255})
	img.Set(2, 1, color.NRGBA{B: 255, A: 255})

	staging := FromImage(img)

	assert.Equal(t, uint32(3), staging.Width)
	assert.Equal(t, uint32(2), staging.Height)
	require.Len(t, staging.Pixels, 3*2*4)
	assert.Equal(t, []byte{255, 0, 0, 255}, staging.Pixels[0:4])
	assert.Equal(t, []byte{0, 0, 255, 255}, staging.Pixels[(1*3+2)*4:(1*3+2)*4+4])
}

func TestLoadTextureDecodesAndCaches(t *testing.T) {
	path := writeTestPNG(t, 8, 4)
	l := NewLoader()

	staging, err := l.LoadTexture(path)
	require.NoError(t, err)
	assert.Equal(t, uint32(8), staging.Width)
	assert.Equal(t, uint32(4), staging.Height)
	assert.Len(t, staging.Pixels, 8*4*4)

	cached, ok := l.Get(path)
	require.True(t, ok)
	assert.Equal(t, staging, cached)

	// A second load hits the cache even after the file disappears.
	require.NoError(t, os.Remove(path))
	again, err := l.LoadTexture(path)
	require.NoError(t, err)
	assert.Equal(t, staging, again)
}

func TestLoadTextureMissingFile(t *testing.T) {
	l := NewLoader()
	_, err := l.LoadTexture(filepath.Join(t.TempDir(), "nope.png"))
	assert.Error(t, err)

	_, ok := l.Get("nope.png")
	assert.False(t, ok)
}

func TestMaxDimensionDownscalesPreservingAspect(t *testing.T) {
	path := writeTestPNG(t, 64, 32)
	l := NewLoader(WithMaxDimension(16))

	staging, err := l.LoadTexture(path)
	require.NoError(t, err)
	assert.Equal(t, uint32(16), staging.Width)
	assert.Equal(t, uint32(8), staging.Height)
}

func TestMaxDimensionLeavesSmallImagesAlone(t *testing.T) {
	path := writeTestPNG(t, 10, 6)
	l := NewLoader(WithMaxDimension(16))

	staging, err := l.LoadTexture(path)
	require.NoError(t, err)
	assert.Equal(t, uint32(10), staging.Width)
	assert.Equal(t, uint32(6), staging.Height)
}

func TestLoadModelBuildsAspectQuad(t *testing.T) {
	path := writeTestPNG(t, 128, 64)
	l := NewLoader()

	m, err := l.LoadModel("billboard", path)
	require.NoError(t, err)
	assert.Equal(t, "billboard", m.Name())
	assert.Equal(t, 6, m.IndexCount())

	staging := m.TextureStaging()
	require.NotNil(t, staging)
	assert.Equal(t, uint32(128), staging.Width)

	ts := l.Textures()
	assert.Len(t, ts, 1)
}

// Package loader loads texture image files into CPU staging data ready for
// upload by the renderer. Decoded textures are cached by path so repeated
// loads of the same file are free.
package loader

import (
	"fmt"
	"image"
	"sync"

	"github.com/anthonynsimon/bild/clone"
	"github.com/anthonynsimon/bild/imgio"
	"github.com/anthonynsimon/bild/transform"

	"github.com/veldt-engine/veldt/common"
	"github.com/veldt-engine/veldt/engine/model"
)

// loader is the implementation of the Loader interface.
type loader struct {
	mu sync.RWMutex

	textureCache map[string]common.TextureStagingData

	// maxDimension caps the longer texture axis; larger images are downscaled
	// preserving aspect ratio. Zero disables the cap.
	maxDimension int
}

// Loader loads and caches texture images as CPU-side staging data.
type Loader interface {
	// LoadTexture decodes an image file into RGBA staging data and caches the
	// result. If the texture is already cached (by file path), the cached
	// version is returned.
	//
	// Parameters:
	//   - path: the file path to the image (PNG, JPEG, BMP)
	//
	// Returns:
	//   - common.TextureStagingData: decoded RGBA pixels with dimensions
	//   - error: error if the file cannot be read or decoded
	LoadTexture(path string) (common.TextureStagingData, error)

	// LoadModel decodes an image file and builds a textured quad model from
	// it, sized by the image's aspect ratio.
	//
	// Parameters:
	//   - name: the model name
	//   - path: the file path to the image
	//   - options: model options forwarded to model construction
	//
	// Returns:
	//   - model.Model: the textured quad model
	//   - error: error if the texture cannot be loaded
	LoadModel(name, path string, options ...model.ModelBuilderOption) (model.Model, error)

	// Get retrieves cached texture staging data by path.
	//
	// Parameters:
	//   - path: the cache key to look up
	//
	// Returns:
	//   - common.TextureStagingData: the cached staging data
	//   - bool: true if the path was cached
	Get(path string) (common.TextureStagingData, bool)

	// Textures returns a copy of the full texture cache.
	//
	// Returns:
	//   - map[string]common.TextureStagingData: all cached textures keyed by path
	Textures() map[string]common.TextureStagingData
}

var _ Loader = &loader{}

// NewLoader creates a new Loader with the specified options applied.
//
// Parameters:
//   - options: a variadic list of LoaderBuilderOption functions to configure the Loader
//
// Returns:
//   - Loader: a new Loader instance
func NewLoader(options ...LoaderBuilderOption) Loader {
	l := &loader{
		mu:           sync.RWMutex{},
		textureCache: make(map[string]common.TextureStagingData),
	}
	for _, option := range options {
		option(l)
	}
	return l
}

// FromImage converts a decoded image into RGBA texture staging data.
//
// Parameters:
//   - img: the source image in any color model
//
// Returns:
//   - common.TextureStagingData: tightly packed RGBA pixels with dimensions
func FromImage(img image.Image) common.TextureStagingData {
	rgba := clone.AsRGBA(img)
	bounds := rgba.Bounds()
	width, height := bounds.Dx(), bounds.Dy()

	// RGBA stride can exceed width*4; repack rows tightly for WriteTexture.
	pixels := make([]byte, width*height*4)
	for y := 0; y < height; y++ {
		src := rgba.Pix[y*rgba.Stride : y*rgba.Stride+width*4]
		copy(pixels[y*width*4:], src)
	}

	return common.TextureStagingData{
		Pixels: pixels,
		Width:  uint32(width),
		Height: uint32(height),
	}
}

func (l *loader) LoadTexture(path string) (common.TextureStagingData, error) {
	l.mu.RLock()
	if cached, ok := l.textureCache[path]; ok {
		l.mu.RUnlock()
		return cached, nil
	}
	l.mu.RUnlock()

	img, err := imgio.Open(path)
	if err != nil {
		return common.TextureStagingData{}, fmt.Errorf("failed to load texture %s: %w", path, err)
	}

	if l.maxDimension > 0 {
		img = capDimensions(img, l.maxDimension)
	}

	staging := FromImage(img)

	l.mu.Lock()
	l.textureCache[path] = staging
	l.mu.Unlock()

	return staging, nil
}

func (l *loader) LoadModel(name, path string, options ...model.ModelBuilderOption) (model.Model, error) {
	staging, err := l.LoadTexture(path)
	if err != nil {
		return nil, err
	}
	return model.FromTexture(name, staging, options...), nil
}

func (l *loader) Get(path string) (common.TextureStagingData, bool) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	staging, ok := l.textureCache[path]
	return staging, ok
}

func (l *loader) Textures() map[string]common.TextureStagingData {
	l.mu.RLock()
	defer l.mu.RUnlock()

	result := make(map[string]common.TextureStagingData, len(l.textureCache))
	for k, v := range l.textureCache {
		result[k] = v
	}
	return result
}

// capDimensions downscales img so its longer axis is at most maxDim,
// preserving aspect ratio. Images already within the cap pass through.
func capDimensions(img image.Image, maxDim int) image.Image {
	bounds := img.Bounds()
	width, height := bounds.Dx(), bounds.Dy()
	if width <= maxDim && height <= maxDim {
		return img
	}

	if width >= height {
		scaled := maxDim * height / width
		if scaled < 1 {
			scaled = 1
		}
		return transform.Resize(img, maxDim, scaled, transform.Linear)
	}
	scaled := maxDim * width / height
	if scaled < 1 {
		scaled = 1
	}
	return transform.Resize(img, scaled, maxDim, transform.Linear)
}

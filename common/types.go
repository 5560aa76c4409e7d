// package common contains common types that are used throughout this engine. They are not interface-wrapped structs, just plain structs that express
// commonly used data-types.
package common

import (
	"github.com/cogentcore/webgpu/wgpu"
)

// TextureStagingData holds RGBA pixel data for a texture binding pending GPU upload.
// This is the decoded-image boundary between the asset loading collaborator and the
// renderer: 4 bytes per pixel, row-major, no padding.
type TextureStagingData struct {
	// Pixels is the raw RGBA pixel data, 4 bytes per pixel.
	Pixels []byte
	// Width is the texture width in pixels.
	Width uint32
	// Height is the texture height in pixels.
	Height uint32
}

// SamplerStagingData holds the configuration for a sampler binding pending GPU creation.
// Zero values fall back to the renderer's defaults (repeat addressing, linear filtering).
type SamplerStagingData struct {
	// AddressModeU, AddressModeV, AddressModeW specify texture coordinate addressing outside [0, 1].
	AddressModeU, AddressModeV, AddressModeW wgpu.AddressMode
	// MagFilter and MinFilter specify magnification and minification filtering.
	MagFilter, MinFilter wgpu.FilterMode
	// MipmapFilter specifies mipmap level filtering.
	MipmapFilter wgpu.MipmapFilterMode
	// LodMinClamp and LodMaxClamp bound the level of detail range.
	LodMinClamp, LodMaxClamp float32
	// MaxAnisotropy is the maximum anisotropic filtering level.
	MaxAnisotropy uint16
}

// DefaultSamplerStagingData returns the sampler configuration used when a
// model does not override it: clamp-to-edge addressing, linear magnification,
// nearest minification and mipmap filtering.
//
// Returns:
//   - SamplerStagingData: the default sampler configuration
func DefaultSamplerStagingData() SamplerStagingData {
	return SamplerStagingData{
		AddressModeU:  wgpu.AddressModeClampToEdge,
		AddressModeV:  wgpu.AddressModeClampToEdge,
		AddressModeW:  wgpu.AddressModeClampToEdge,
		MagFilter:     wgpu.FilterModeLinear,
		MinFilter:     wgpu.FilterModeNearest,
		MipmapFilter:  wgpu.MipmapFilterModeNearest,
		LodMinClamp:   0,
		LodMaxClamp:   32,
		MaxAnisotropy: 1,
	}
}

// Coalesce returns value if it is not the zero value of its type, otherwise fallback.
func Coalesce[T comparable](value, fallback T) T {
	var zero T
	if value == zero {
		return fallback
	}
	return value
}

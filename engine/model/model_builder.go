package model

import "github.com/veldt-engine/veldt/common"

type ModelBuilderOption func(*model)

// WithName sets the model identifier.
//
// Parameters:
//   - name: the model name
//
// Returns:
//   - ModelBuilderOption: a function that sets the model's name
func WithName(name string) ModelBuilderOption {
	return func(m *model) {
		m.name = name
	}
}

// WithVertices serializes and attaches the mesh vertex data, and computes
// the bounding radius from the vertex positions.
//
// Parameters:
//   - vertices: the mesh vertices
//
// Returns:
//   - ModelBuilderOption: a function that sets the vertex data
func WithVertices(vertices []GPUVertex) ModelBuilderOption {
	return func(m *model) {
		m.vertexData = marshalVertices(vertices)
		m.boundingRadius = ComputeBoundingRadius(vertices)
	}
}

// WithIndices serializes and attaches the mesh index data (uint16,
// little-endian, padded to 4-byte alignment).
//
// Parameters:
//   - indices: the mesh indices
//
// Returns:
//   - ModelBuilderOption: a function that sets the index data
func WithIndices(indices []uint16) ModelBuilderOption {
	return func(m *model) {
		m.indexData = marshalIndices(indices)
		m.indexCount = len(indices)
	}
}

// WithTextureStaging attaches decoded RGBA pixel data for the diffuse texture.
//
// Parameters:
//   - staging: the texture staging data
//
// Returns:
//   - ModelBuilderOption: a function that sets the texture staging data
func WithTextureStaging(staging common.TextureStagingData) ModelBuilderOption {
	return func(m *model) {
		m.textureStaging = &staging
	}
}

// WithSamplerStaging attaches the sampler configuration for the diffuse texture.
//
// Parameters:
//   - staging: the sampler staging data
//
// Returns:
//   - ModelBuilderOption: a function that sets the sampler staging data
func WithSamplerStaging(staging common.SamplerStagingData) ModelBuilderOption {
	return func(m *model) {
		m.samplerStaging = &staging
	}
}

package model

import (
	"github.com/veldt-engine/veldt/common"
	bgp "github.com/veldt-engine/veldt/engine/renderer/bind_group_provider"
)

// model is the implementation of the Model interface.
type model struct {
	name             string
	vertexData       []byte
	indexData        []byte
	indexCount       int
	boundingRadius   float32
	textureStaging   *common.TextureStagingData
	samplerStaging   *common.SamplerStagingData
	meshProvider     bgp.BindGroupProvider
	materialProvider bgp.BindGroupProvider
}

// Model is an immutable geometry container shared by every instance in a
// registry. It holds CPU-side vertex/index data plus texture and sampler
// staging, and two bind group providers the renderer fills with GPU
// resources during InitModel. After initialization it is read-only and safe
// to share across draw calls and registries.
type Model interface {
	// Name retrieves the model identifier.
	//
	// Returns:
	//   - string: the model name
	Name() string

	// VertexData returns the raw vertex data for this model's mesh.
	//
	// Returns:
	//   - []byte: the vertex data
	VertexData() []byte

	// IndexData returns the raw index data for this model's mesh. The data is
	// padded to 4-byte alignment; IndexCount reports the drawable count.
	//
	// Returns:
	//   - []byte: the index data
	IndexData() []byte

	// IndexCount returns the number of drawable indices in the model's mesh.
	//
	// Returns:
	//   - int: the index count
	IndexCount() int

	// BoundingRadius returns the bounding sphere radius for this model,
	// measured as the maximum vertex distance from the origin.
	//
	// Returns:
	//   - float32: the bounding radius
	BoundingRadius() float32

	// TextureStaging retrieves the CPU-side pixel data awaiting upload.
	// Returns nil once consumed or if the model carries no texture.
	//
	// Returns:
	//   - *common.TextureStagingData: the staging data or nil
	TextureStaging() *common.TextureStagingData

	// SamplerStaging retrieves the sampler configuration awaiting creation.
	// Returns nil once consumed or if the model carries no sampler.
	//
	// Returns:
	//   - *common.SamplerStagingData: the staging data or nil
	SamplerStaging() *common.SamplerStagingData

	// ClearStaging drops the texture and sampler staging data after the
	// renderer has uploaded them.
	ClearStaging()

	// MeshProvider retrieves the BindGroupProvider holding GPU mesh resources
	// (vertex and index buffers).
	//
	// Returns:
	//   - bind_group_provider.BindGroupProvider: the mesh provider
	MeshProvider() bgp.BindGroupProvider

	// MaterialProvider retrieves the BindGroupProvider holding the diffuse
	// texture view and sampler bound at group 0 during draws.
	//
	// Returns:
	//   - bind_group_provider.BindGroupProvider: the material provider
	MaterialProvider() bgp.BindGroupProvider

	// Release frees all GPU resources held by the model's providers.
	Release()
}

var _ Model = &model{}

// NewModel creates a new Model instance with the specified options applied.
//
// Parameters:
//   - options: a variadic list of ModelBuilderOption functions to configure the Model
//
// Returns:
//   - Model: a new instance of Model configured with the provided options
func NewModel(options ...ModelBuilderOption) Model {
	m := &model{
		name:             "Model",
		meshProvider:     bgp.NewBindGroupProvider("Mesh"),
		materialProvider: bgp.NewBindGroupProvider("Material"),
	}
	for _, opt := range options {
		opt(m)
	}
	return m
}

// FromTexture builds a textured unit quad sized to the texture's aspect
// ratio: the longer axis spans [-1, 1] and the shorter axis shrinks
// proportionally. The quad faces +Z with counter-clockwise winding.
//
// Parameters:
//   - name: the model identifier
//   - staging: decoded RGBA pixel data for the diffuse texture
//   - options: additional builder options (sampler override, etc.)
//
// Returns:
//   - Model: the quad model, ready for renderer initialization
func FromTexture(name string, staging common.TextureStagingData, options ...ModelBuilderOption) Model {
	x, y := float32(1), float32(1)
	if staging.Width > staging.Height {
		y = float32(staging.Height) / float32(staging.Width)
	} else if staging.Height > staging.Width {
		x = float32(staging.Width) / float32(staging.Height)
	}

	vertices := []GPUVertex{
		{Position: [3]float32{-x, -y, 0}, TexCoord: [2]float32{0, 1}, Normal: [3]float32{0, 0, 1}},
		{Position: [3]float32{x, -y, 0}, TexCoord: [2]float32{1, 1}, Normal: [3]float32{0, 0, 1}},
		{Position: [3]float32{x, y, 0}, TexCoord: [2]float32{1, 0}, Normal: [3]float32{0, 0, 1}},
		{Position: [3]float32{-x, y, 0}, TexCoord: [2]float32{0, 0}, Normal: [3]float32{0, 0, 1}},
	}
	indices := []uint16{0, 1, 2, 2, 3, 0}

	base := []ModelBuilderOption{
		WithName(name),
		WithVertices(vertices),
		WithIndices(indices),
		WithTextureStaging(staging),
		WithSamplerStaging(common.DefaultSamplerStagingData()),
	}
	return NewModel(append(base, options...)...)
}

func (m *model) Name() string {
	return m.name
}

func (m *model) VertexData() []byte {
	return m.vertexData
}

func (m *model) IndexData() []byte {
	return m.indexData
}

func (m *model) IndexCount() int {
	return m.indexCount
}

func (m *model) BoundingRadius() float32 {
	return m.boundingRadius
}

func (m *model) TextureStaging() *common.TextureStagingData {
	return m.textureStaging
}

func (m *model) SamplerStaging() *common.SamplerStagingData {
	return m.samplerStaging
}

func (m *model) ClearStaging() {
	m.textureStaging = nil
	m.samplerStaging = nil
}

func (m *model) MeshProvider() bgp.BindGroupProvider {
	return m.meshProvider
}

func (m *model) MaterialProvider() bgp.BindGroupProvider {
	return m.materialProvider
}

func (m *model) Release() {
	if m.meshProvider != nil {
		m.meshProvider.Release()
	}
	if m.materialProvider != nil {
		m.materialProvider.Release()
	}
}

// marshalVertices serializes vertices into one contiguous upload buffer.
func marshalVertices(vertices []GPUVertex) []byte {
	buf := make([]byte, 0, len(vertices)*32)
	for i := range vertices {
		buf = append(buf, vertices[i].Marshal()...)
	}
	return buf
}

// marshalIndices serializes uint16 indices little-endian, padding the buffer
// to 4-byte alignment as device buffer sizes require. The padding index is
// never drawn.
func marshalIndices(indices []uint16) []byte {
	padded := indices
	if len(indices)%2 != 0 {
		padded = append(append([]uint16{}, indices...), 0)
	}
	buf := make([]byte, len(padded)*2)
	for i, idx := range padded {
		buf[i*2] = byte(idx)
		buf[i*2+1] = byte(idx >> 8)
	}
	return buf
}

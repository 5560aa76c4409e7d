// Package instance implements the GPU-resident instance registry: an
// identity-indexed, growable device-side mirror of per-object transforms.
// Each live instance occupies one fixed-size slot holding its serialized
// model matrix; the slot range [0, Len) is drawn directly as an instanced
// vertex buffer stream.
package instance

import (
	"encoding/binary"
	"math"

	"github.com/cogentcore/webgpu/wgpu"
	"github.com/veldt-engine/veldt/common"
)

// RecordSize is the size in bytes of one serialized instance record:
// a 4x4 float32 model matrix (std430 aligned, no padding required).
const RecordSize uint64 = 64

// ID is a stable 128-bit instance identity assigned by the caller.
// It is comparable and usable as a map key. An ID is unique among
// currently-live instances in a given registry; after removal it may be
// reused by a new instance.
type ID struct {
	Hi, Lo uint64
}

// NewID builds an ID from a single 64-bit value (high half zero).
//
// Parameters:
//   - lo: the low 64 bits of the identity
//
// Returns:
//   - ID: the identity
func NewID(lo uint64) ID {
	return ID{Lo: lo}
}

// Instance is one per-object transform tagged with a stable identity,
// drawn as one repetition of a shared geometry model. Scale is assumed
// positive; a degenerate scale is a caller error, not a fault.
type Instance struct {
	ID       ID
	Position common.Vec3
	Rotation common.Rotor3
	Scale    float32
}

// Matrix writes the instance's column-major model matrix (translation *
// rotation * uniform scale) into out.
//
// Parameters:
//   - out: destination slice (must be at least 16 elements)
func (i Instance) Matrix(out []float32) {
	i.Rotation.Matrix(out)

	// Uniform scale folds into the rotation columns.
	for c := 0; c < 3; c++ {
		out[c*4+0] *= i.Scale
		out[c*4+1] *= i.Scale
		out[c*4+2] *= i.Scale
	}

	out[12] = i.Position.X
	out[13] = i.Position.Y
	out[14] = i.Position.Z
	out[15] = 1
}

// Raw serializes the instance's model matrix into a RecordSize-byte buffer
// ready for GPU upload (little-endian float32, column-major).
//
// Returns:
//   - []byte: the 64-byte record
func (i Instance) Raw() []byte {
	var m [16]float32
	i.Matrix(m[:])

	buf := make([]byte, RecordSize)
	marshalRecord(buf, m[:])
	return buf
}

// marshalRecord writes a 16-float matrix into a 64-byte record slice.
func marshalRecord(buf []byte, m []float32) {
	for i := 0; i < 16; i++ {
		binary.LittleEndian.PutUint32(buf[i*4:(i+1)*4], math.Float32bits(m[i]))
	}
}

// VertexBufferLayout returns the wgpu vertex buffer layout for the instance
// record stream. The mat4 occupies four float32x4 attributes at shader
// locations 5 through 8 with per-instance step mode, leaving locations 0-4
// free for the geometry vertex stream.
//
// Returns:
//   - wgpu.VertexBufferLayout: the per-instance vertex layout
func VertexBufferLayout() wgpu.VertexBufferLayout {
	return wgpu.VertexBufferLayout{
		ArrayStride: RecordSize,
		StepMode:    wgpu.VertexStepModeInstance,
		Attributes: []wgpu.VertexAttribute{
			{Offset: 0, ShaderLocation: 5, Format: wgpu.VertexFormatFloat32x4},
			{Offset: 16, ShaderLocation: 6, Format: wgpu.VertexFormatFloat32x4},
			{Offset: 32, ShaderLocation: 7, Format: wgpu.VertexFormatFloat32x4},
			{Offset: 48, ShaderLocation: 8, Format: wgpu.VertexFormatFloat32x4},
		},
	}
}

package camera

import (
	"encoding/binary"
	"math"
	"unsafe"
)

// GPUCameraData is the GPU-aligned representation of the camera uniform.
// Matches the WGSL CameraUniform struct layout exactly.
// Size: 64 bytes (mat4x4<f32> = 16 x float32, std140 aligned, no padding required).
type GPUCameraData struct {
	ViewProj [16]float32 // offset 0: combined view-projection matrix (64 bytes)
}

// Size returns the size of the GPUCameraData struct in bytes.
//
// Returns:
//   - int: the size of the struct in bytes.
func (g *GPUCameraData) Size() int {
	return int(unsafe.Sizeof(*g))
}

// Marshal serializes the GPUCameraData struct into a byte buffer suitable for GPU upload.
//
// Returns:
//   - []byte: 64-byte buffer ready for GPU upload.
func (g *GPUCameraData) Marshal() []byte {
	buf := make([]byte, 64)
	for i := 0; i < 16; i++ {
		binary.LittleEndian.PutUint32(buf[i*4:(i+1)*4], math.Float32bits(g.ViewProj[i]))
	}
	return buf
}

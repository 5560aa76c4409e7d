package renderer

import (
	"fmt"

	"github.com/cogentcore/webgpu/wgpu"
	"github.com/veldt-engine/veldt/engine/instance"
)

// wgpuMirror is the production instance.Mirror: a vertex-usage GPU buffer
// written through the renderer's queue. The buffer cannot be read back or
// resized; registry growth allocates a replacement mirror.
type wgpuMirror struct {
	buffer *wgpu.Buffer
	queue  *wgpu.Queue
	size   uint64
}

var _ instance.Mirror = &wgpuMirror{}

func (m *wgpuMirror) Write(offset uint64, data []byte) {
	m.queue.WriteBuffer(m.buffer, offset, data)
}

func (m *wgpuMirror) Size() uint64 {
	return m.size
}

func (m *wgpuMirror) Release() {
	if m.buffer != nil {
		m.buffer.Release()
		m.buffer = nil
	}
}

// AllocateMirror creates a device buffer usable as an instanced vertex
// stream and as a copy destination for record uploads.
//
// Parameters:
//   - label: debug label used in GPU resource names
//   - size: capacity in bytes
//
// Returns:
//   - instance.Mirror: the newly allocated mirror
//   - error: an error if device buffer creation fails
func (r *renderer) AllocateMirror(label string, size uint64) (instance.Mirror, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	buf, err := r.device.CreateBuffer(&wgpu.BufferDescriptor{
		Label: label + " Mirror Buffer",
		Size:  size,
		Usage: wgpu.BufferUsageVertex | wgpu.BufferUsageCopyDst,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create mirror buffer: %w", err)
	}

	return &wgpuMirror{
		buffer: buf,
		queue:  r.queue,
		size:   size,
	}, nil
}

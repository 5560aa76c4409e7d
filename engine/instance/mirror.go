package instance

// Mirror is the device-side buffer holding serialized instance records.
// The registry treats it as opaque, write-only storage: once created its
// contents cannot be read back or reallocated in place, so growth always
// allocates a replacement and re-uploads the full live set.
type Mirror interface {
	// Write uploads data to the mirror at the given byte offset.
	//
	// Parameters:
	//   - offset: destination byte offset within the mirror
	//   - data: the bytes to upload
	Write(offset uint64, data []byte)

	// Size returns the mirror's capacity in bytes.
	//
	// Returns:
	//   - uint64: capacity in bytes
	Size() uint64

	// Release frees the device buffer backing this mirror.
	Release()
}

// MirrorAllocator creates device mirrors. The wgpu renderer implements this
// against real GPU buffers; tests substitute an in-memory fake.
type MirrorAllocator interface {
	// AllocateMirror creates a mirror with the given debug label and capacity.
	//
	// Parameters:
	//   - label: debug label used in GPU resource names
	//   - size: capacity in bytes
	//
	// Returns:
	//   - Mirror: the newly allocated mirror
	//   - error: an error if device buffer creation fails
	AllocateMirror(label string, size uint64) (Mirror, error)
}

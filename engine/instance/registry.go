package instance

import (
	"errors"
	"fmt"
	"runtime"
	"sync"
	"time"

	"github.com/Carmen-Shannon/automation/tools/worker"
	"github.com/veldt-engine/veldt/engine/model"
)

var (
	// ErrDuplicateIdentity is returned by Insert when the identity is already live.
	ErrDuplicateIdentity = errors.New("instance identity already present")

	// ErrNotFound is returned by Update and Remove when the identity is not live.
	ErrNotFound = errors.New("instance not found")
)

// registry is the implementation of the Registry interface.
type registry struct {
	mu *sync.Mutex

	label string
	model model.Model

	// slots is the dense live set: slots[0:len] are exactly the live
	// instances, each at the slot index recorded in index.
	slots []Instance
	// index maps identity to slot index.
	index map[ID]int

	// mirror is the device-side record buffer. Its capacity is always a
	// power-of-two multiple of the starting capacity and only grows.
	mirror    Mirror
	allocator MirrorAllocator

	// uploadPool parallelizes full-mirror record marshalling during growth.
	uploadPool        worker.DynamicWorkerPool
	uploadWorkers     int
	parallelThreshold int

	// initialSlots is the requested starting capacity, applied at construction.
	initialSlots int
}

// Registry is the GPU-resident instance registry for one geometry model:
// an identity-indexed collection of transforms mirrored into a growable
// device buffer, drawn as one instanced vertex stream.
//
// Removal compacts: the last live slot is swapped into the freed slot so
// the draw range [0, Len) always equals the live set exactly. Consequently
// slot indices are unstable across Remove calls while identities are stable.
//
// Mutation is not safe to interleave with a renderer reading the registry
// in the same frame; the frame loop drives both from a single thread.
type Registry interface {
	// Insert adds a new instance under its identity and uploads its record.
	// If the mirror is full its capacity doubles until sufficient and the
	// full live set is re-uploaded to a replacement device buffer before
	// the new record is written.
	//
	// Parameters:
	//   - inst: the instance to insert (identity must not be live)
	//
	// Returns:
	//   - error: ErrDuplicateIdentity if the identity is already live, or a
	//     device allocation error on the growth path
	Insert(inst Instance) error

	// Update overwrites a live instance's transform in place and uploads
	// exactly one record at the slot's existing offset. The slot does not move.
	//
	// Parameters:
	//   - inst: the instance data to store (identity must be live)
	//
	// Returns:
	//   - error: ErrNotFound if the identity is not live
	Update(inst Instance) error

	// Remove deletes a live instance by identity and returns its last known
	// data. The last live slot is swap-moved into the freed slot (one record
	// upload) so the draw range stays dense; the identity may be reused by a
	// later Insert without resurrecting the old transform.
	//
	// Parameters:
	//   - id: the identity to remove
	//
	// Returns:
	//   - Instance: the removed instance's last known data
	//   - error: ErrNotFound if the identity is not live
	Remove(id ID) (Instance, error)

	// Get returns a live instance's current data by identity.
	//
	// Parameters:
	//   - id: the identity to look up
	//
	// Returns:
	//   - Instance: the instance data (zero value if not live)
	//   - bool: true if the identity is live
	Get(id ID) (Instance, bool)

	// Len returns the number of live instances, which is exactly the
	// instance count used for draw calls.
	//
	// Returns:
	//   - int: the live instance count
	Len() int

	// CapacitySlots returns the mirror capacity in slots.
	//
	// Returns:
	//   - int: the number of records the mirror can hold
	CapacitySlots() int

	// Instances returns a snapshot copy of the live set in slot order.
	//
	// Returns:
	//   - []Instance: the live instances
	Instances() []Instance

	// Model returns the geometry model shared by all instances in this registry.
	//
	// Returns:
	//   - model.Model: the model, or nil if none was attached
	Model() model.Model

	// Mirror returns the device-side record buffer backing this registry.
	//
	// Returns:
	//   - Mirror: the device mirror
	Mirror() Mirror

	// Release frees the device mirror. The registry must not be used afterwards.
	Release()
}

var _ Registry = &registry{}

// NewRegistry creates a Registry backed by a device mirror from the given
// allocator. The mirror starts at one slot of capacity unless overridden
// via WithInitialCapacity.
//
// Parameters:
//   - allocator: the device mirror allocator (the renderer, or a test fake)
//   - options: functional options to configure the registry
//
// Returns:
//   - Registry: the newly created registry
//   - error: an error if the initial mirror allocation fails
func NewRegistry(allocator MirrorAllocator, options ...RegistryBuilderOption) (Registry, error) {
	r := &registry{
		mu:                &sync.Mutex{},
		label:             "Instance Registry",
		index:             make(map[ID]int),
		allocator:         allocator,
		uploadWorkers:     runtime.NumCPU(),
		parallelThreshold: 1024,
		initialSlots:      1,
	}
	for _, option := range options {
		option(r)
	}

	mirror, err := allocator.AllocateMirror(r.label, uint64(nextPowerOfTwo(r.initialSlots))*RecordSize)
	if err != nil {
		return nil, fmt.Errorf("failed to allocate instance mirror: %w", err)
	}
	r.mirror = mirror
	r.uploadPool = worker.NewDynamicWorkerPool(r.uploadWorkers, 256, 1*time.Second)

	return r, nil
}

func (r *registry) Insert(inst Instance) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.index[inst.ID]; ok {
		return ErrDuplicateIdentity
	}

	slot := len(r.slots)
	if needed := uint64(slot+1) * RecordSize; needed > r.mirror.Size() {
		if err := r.grow(needed); err != nil {
			return err
		}
	}

	r.mirror.Write(uint64(slot)*RecordSize, inst.Raw())
	r.index[inst.ID] = slot
	r.slots = append(r.slots, inst)
	return nil
}

func (r *registry) Update(inst Instance) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	slot, ok := r.index[inst.ID]
	if !ok {
		return ErrNotFound
	}

	r.slots[slot] = inst
	r.mirror.Write(uint64(slot)*RecordSize, inst.Raw())
	return nil
}

func (r *registry) Remove(id ID) (Instance, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	slot, ok := r.index[id]
	if !ok {
		return Instance{}, ErrNotFound
	}

	removed := r.slots[slot]
	last := len(r.slots) - 1
	if slot != last {
		moved := r.slots[last]
		r.slots[slot] = moved
		r.index[moved.ID] = slot
		r.mirror.Write(uint64(slot)*RecordSize, moved.Raw())
	}
	r.slots = r.slots[:last]
	delete(r.index, id)
	return removed, nil
}

func (r *registry) Get(id ID) (Instance, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	slot, ok := r.index[id]
	if !ok {
		return Instance{}, false
	}
	return r.slots[slot], true
}

func (r *registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.slots)
}

func (r *registry) CapacitySlots() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return int(r.mirror.Size() / RecordSize)
}

func (r *registry) Instances() []Instance {
	r.mu.Lock()
	defer r.mu.Unlock()

	cp := make([]Instance, len(r.slots))
	copy(cp, r.slots)
	return cp
}

func (r *registry) Model() model.Model {
	return r.model
}

func (r *registry) Mirror() Mirror {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.mirror
}

func (r *registry) Release() {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.mirror != nil {
		r.mirror.Release()
		r.mirror = nil
	}
}

// grow replaces the mirror with one whose capacity is doubled until it holds
// needed bytes, then re-uploads the full live set. The device buffer is
// opaque once created, so growth is always allocate-copy-release rather than
// an in-place realloc. Caller must hold the mutex.
func (r *registry) grow(needed uint64) error {
	capacity := r.mirror.Size()
	for needed > capacity {
		capacity *= 2
	}

	replacement, err := r.allocator.AllocateMirror(r.label, capacity)
	if err != nil {
		return fmt.Errorf("failed to grow instance mirror to %d bytes: %w", capacity, err)
	}

	if len(r.slots) > 0 {
		replacement.Write(0, r.marshalLiveSet())
	}

	r.mirror.Release()
	r.mirror = replacement
	return nil
}

// marshalLiveSet serializes every live record into one contiguous upload
// buffer. Large live sets are marshalled in parallel chunks through the
// worker pool; records are fixed-size so chunks write disjoint ranges.
// Caller must hold the mutex.
func (r *registry) marshalLiveSet() []byte {
	buf := make([]byte, uint64(len(r.slots))*RecordSize)

	if len(r.slots) < r.parallelThreshold {
		for i, inst := range r.slots {
			var m [16]float32
			inst.Matrix(m[:])
			marshalRecord(buf[uint64(i)*RecordSize:uint64(i+1)*RecordSize], m[:])
		}
		return buf
	}

	chunk := (len(r.slots) + r.uploadWorkers - 1) / r.uploadWorkers
	var wg sync.WaitGroup
	taskID := 0
	for start := 0; start < len(r.slots); start += chunk {
		end := start + chunk
		if end > len(r.slots) {
			end = len(r.slots)
		}

		wg.Add(1)
		lo, hi := start, end
		id := taskID
		taskID++
		r.uploadPool.SubmitTask(worker.Task{
			ID: id,
			Do: func() (any, error) {
				defer wg.Done()
				var m [16]float32
				for i := lo; i < hi; i++ {
					r.slots[i].Matrix(m[:])
					marshalRecord(buf[uint64(i)*RecordSize:uint64(i+1)*RecordSize], m[:])
				}
				return nil, nil
			},
		})
	}
	wg.Wait()
	return buf
}

// nextPowerOfTwo rounds n up to the nearest power of two (minimum 1).
func nextPowerOfTwo(n int) int {
	p := 1
	for p < n {
		p *= 2
	}
	return p
}

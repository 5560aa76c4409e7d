package instance

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/veldt-engine/veldt/common"
)

// fakeMirror is an in-memory Mirror capturing every upload so tests can
// compare device bytes against expected record serializations.
type fakeMirror struct {
	data     []byte
	writes   int
	released bool
}

func (m *fakeMirror) Write(offset uint64, data []byte) {
	copy(m.data[offset:], data)
	m.writes++
}

func (m *fakeMirror) Size() uint64 {
	return uint64(len(m.data))
}

func (m *fakeMirror) Release() {
	m.released = true
}

// fakeAllocator hands out fakeMirrors and records each allocation.
type fakeAllocator struct {
	mirrors []*fakeMirror
}

func (a *fakeAllocator) AllocateMirror(label string, size uint64) (Mirror, error) {
	m := &fakeMirror{data: make([]byte, size)}
	a.mirrors = append(a.mirrors, m)
	return m, nil
}

func (a *fakeAllocator) current() *fakeMirror {
	return a.mirrors[len(a.mirrors)-1]
}

func testInstance(lo uint64, x float32) Instance {
	return Instance{
		ID:       NewID(lo),
		Position: common.Vec3{X: x},
		Rotation: common.RotorIdentity(),
		Scale:    1.0,
	}
}

func newTestRegistry(t *testing.T, options ...RegistryBuilderOption) (Registry, *fakeAllocator) {
	t.Helper()
	alloc := &fakeAllocator{}
	reg, err := NewRegistry(alloc, options...)
	require.NoError(t, err)
	return reg, alloc
}

// assertMirrorConsistent verifies that every live identity's device bytes
// equal the serialization of its last-written transform.
func assertMirrorConsistent(t *testing.T, reg Registry, alloc *fakeAllocator) {
	t.Helper()
	mirror := alloc.current()
	for slot, inst := range reg.Instances() {
		offset := uint64(slot) * RecordSize
		assert.Equal(t, inst.Raw(), mirror.data[offset:offset+RecordSize],
			"mirror bytes for slot %d (identity %v)", slot, inst.ID)
	}
}

func TestInsertRejectsDuplicateIdentity(t *testing.T) {
	reg, _ := newTestRegistry(t)

	require.NoError(t, reg.Insert(testInstance(1, 0)))
	err := reg.Insert(testInstance(1, 5))
	assert.ErrorIs(t, err, ErrDuplicateIdentity)
	assert.Equal(t, 1, reg.Len())
}

func TestUpdateOverwritesInPlace(t *testing.T) {
	reg, alloc := newTestRegistry(t, WithInitialCapacity(4))

	require.NoError(t, reg.Insert(testInstance(1, 1)))
	require.NoError(t, reg.Insert(testInstance(2, 2)))

	updated := testInstance(1, 42)
	require.NoError(t, reg.Update(updated))

	got, ok := reg.Get(NewID(1))
	require.True(t, ok)
	assert.Equal(t, updated, got)

	// Slot 0 still belongs to identity 1; updates never move slots.
	assert.Equal(t, updated, reg.Instances()[0])
	assertMirrorConsistent(t, reg, alloc)
}

func TestUpdateUnknownIdentity(t *testing.T) {
	reg, _ := newTestRegistry(t)
	err := reg.Update(testInstance(9, 0))
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestRemoveReturnsLastKnownTransform(t *testing.T) {
	reg, _ := newTestRegistry(t, WithInitialCapacity(4))

	inst := testInstance(7, 3)
	require.NoError(t, reg.Insert(inst))

	removed, err := reg.Remove(NewID(7))
	require.NoError(t, err)
	assert.Equal(t, inst, removed)
	assert.Equal(t, 0, reg.Len())

	_, err = reg.Remove(NewID(7))
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestRemoveCompactsViaSwap(t *testing.T) {
	reg, alloc := newTestRegistry(t, WithInitialCapacity(4))

	require.NoError(t, reg.Insert(testInstance(1, 1)))
	require.NoError(t, reg.Insert(testInstance(2, 2)))
	require.NoError(t, reg.Insert(testInstance(3, 3)))

	_, err := reg.Remove(NewID(1))
	require.NoError(t, err)

	// The last live slot moved into the freed slot.
	require.Equal(t, 2, reg.Len())
	live := reg.Instances()
	assert.Equal(t, NewID(3), live[0].ID)
	assert.Equal(t, NewID(2), live[1].ID)
	assertMirrorConsistent(t, reg, alloc)
}

func TestRemovedIdentityFailsThenReinsertSucceeds(t *testing.T) {
	reg, alloc := newTestRegistry(t, WithInitialCapacity(4))

	old := testInstance(5, 100)
	require.NoError(t, reg.Insert(old))
	_, err := reg.Remove(NewID(5))
	require.NoError(t, err)

	assert.ErrorIs(t, reg.Update(testInstance(5, 0)), ErrNotFound)
	_, err = reg.Remove(NewID(5))
	assert.ErrorIs(t, err, ErrNotFound)

	// Re-insertion succeeds and does not resurrect the old transform.
	fresh := testInstance(5, -1)
	require.NoError(t, reg.Insert(fresh))
	got, ok := reg.Get(NewID(5))
	require.True(t, ok)
	assert.Equal(t, fresh, got)
	assert.NotEqual(t, old.Position, got.Position)
	assertMirrorConsistent(t, reg, alloc)
}

func TestInsertAfterRemoveReusesSlotWithoutGrowth(t *testing.T) {
	reg, alloc := newTestRegistry(t, WithInitialCapacity(2))

	require.NoError(t, reg.Insert(testInstance(1, 1)))
	require.NoError(t, reg.Insert(testInstance(2, 2)))
	require.Equal(t, 2, reg.CapacitySlots())

	_, err := reg.Remove(NewID(1))
	require.NoError(t, err)

	allocsBefore := len(alloc.mirrors)
	require.NoError(t, reg.Insert(testInstance(3, 3)))

	// The freed slot is reused: no growth, no new device buffer.
	assert.Equal(t, allocsBefore, len(alloc.mirrors))
	assert.Equal(t, 2, reg.CapacitySlots())
	assert.Equal(t, NewID(3), reg.Instances()[1].ID)
	assertMirrorConsistent(t, reg, alloc)
}

func TestCapacityStrictlyDoubles(t *testing.T) {
	reg, alloc := newTestRegistry(t, WithInitialCapacity(4))

	for i := uint64(0); i < 100; i++ {
		require.NoError(t, reg.Insert(testInstance(i, float32(i))))
	}

	// Smallest power-of-two multiple of 4 that holds 100 records is 128.
	assert.Equal(t, 128, reg.CapacitySlots())

	// Each observed capacity along the way was double its predecessor.
	prev := alloc.mirrors[0].Size()
	for _, m := range alloc.mirrors[1:] {
		assert.Equal(t, prev*2, m.Size())
		prev = m.Size()
	}

	// Every superseded mirror was released.
	for _, m := range alloc.mirrors[:len(alloc.mirrors)-1] {
		assert.True(t, m.released)
	}
	assertMirrorConsistent(t, reg, alloc)
}

func TestGrowthReuploadsFullLiveSet(t *testing.T) {
	reg, alloc := newTestRegistry(t, WithInitialCapacity(1))

	require.NoError(t, reg.Insert(testInstance(1, 1)))
	// Second insert exceeds the single-slot mirror and forces a growth
	// re-upload of the existing live set into the replacement buffer.
	require.NoError(t, reg.Insert(testInstance(2, 2)))

	require.Len(t, alloc.mirrors, 2)
	assertMirrorConsistent(t, reg, alloc)
}

func TestParallelReuploadMatchesSerial(t *testing.T) {
	reg, alloc := newTestRegistry(t,
		WithInitialCapacity(1),
		WithUploadWorkers(4),
		WithParallelThreshold(8),
	)

	for i := uint64(0); i < 64; i++ {
		require.NoError(t, reg.Insert(Instance{
			ID:       NewID(i),
			Position: common.Vec3{X: float32(i), Y: float32(i) * 2},
			Rotation: common.RotorFromRotationXZ(float32(i) * 0.1),
			Scale:    1 + float32(i)*0.01,
		}))
	}

	assertMirrorConsistent(t, reg, alloc)
}

func TestLiveSetMatchesTrackedSet(t *testing.T) {
	reg, alloc := newTestRegistry(t, WithInitialCapacity(8))
	tracked := make(map[ID]Instance)

	ops := []struct {
		insert bool
		remove bool
		id     uint64
		x      float32
	}{
		{insert: true, id: 1, x: 1},
		{insert: true, id: 2, x: 2},
		{insert: true, id: 3, x: 3},
		{remove: true, id: 2},
		{insert: true, id: 4, x: 4},
		{insert: true, id: 2, x: 20},
		{remove: true, id: 1},
		{insert: true, id: 5, x: 5},
	}
	for _, op := range ops {
		switch {
		case op.insert:
			inst := testInstance(op.id, op.x)
			require.NoError(t, reg.Insert(inst))
			tracked[NewID(op.id)] = inst
		case op.remove:
			_, err := reg.Remove(NewID(op.id))
			require.NoError(t, err)
			delete(tracked, NewID(op.id))
		}
	}

	require.Equal(t, len(tracked), reg.Len())
	for id, want := range tracked {
		got, ok := reg.Get(id)
		require.True(t, ok, "identity %v should be live", id)
		assert.Equal(t, want, got)
	}
	assertMirrorConsistent(t, reg, alloc)
}

func TestHundredInsertsFiftyRemovals(t *testing.T) {
	reg, alloc := newTestRegistry(t, WithInitialCapacity(4))

	for i := uint64(0); i < 100; i++ {
		require.NoError(t, reg.Insert(testInstance(i, float32(i))))
	}
	for i := uint64(0); i < 100; i += 2 {
		_, err := reg.Remove(NewID(i))
		require.NoError(t, err)
	}

	// Exactly 50 live instances remain, each odd-numbered, and a draw call
	// issued from this registry covers instance count 50.
	require.Equal(t, 50, reg.Len())
	for _, inst := range reg.Instances() {
		assert.Equal(t, uint64(1), inst.ID.Lo%2, "identity %d should be odd", inst.ID.Lo)
	}
	assertMirrorConsistent(t, reg, alloc)
}

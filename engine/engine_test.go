package engine

import (
	"errors"
	"fmt"
	"testing"

	"github.com/go-gl/glfw/v3.3/glfw"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cogentcore/webgpu/wgpu"
	"github.com/veldt-engine/veldt/common"
	"github.com/veldt-engine/veldt/engine/camera"
	"github.com/veldt-engine/veldt/engine/instance"
	"github.com/veldt-engine/veldt/engine/renderer"
	bgp "github.com/veldt-engine/veldt/engine/renderer/bind_group_provider"
	"github.com/veldt-engine/veldt/engine/window"
)

// fakeWindow satisfies window.Window without GLFW or a display.
type fakeWindow struct {
	width, height int

	onUpdate  func()
	onResize  func(width, height int)
	onKeyDown func(key glfw.Key)
	onKeyUp   func(key glfw.Key)

	// framesRemaining bounds ProcessMessages so Run terminates in tests.
	framesRemaining int
}

func (w *fakeWindow) SetUpdateCallback(callback func()) { w.onUpdate = callback }
func (w *fakeWindow) SetResizeCallback(callback func(width, height int)) {
	w.onResize = callback
}
func (w *fakeWindow) SetScrollCallback(func(delta float32))        {}
func (w *fakeWindow) SetKeyDownCallback(callback func(glfw.Key))   { w.onKeyDown = callback }
func (w *fakeWindow) SetKeyUpCallback(callback func(glfw.Key))     { w.onKeyUp = callback }
func (w *fakeWindow) SurfaceDescriptor() *wgpu.SurfaceDescriptor   { return nil }
func (w *fakeWindow) IsRunning() bool                              { return w.framesRemaining > 0 }
func (w *fakeWindow) Close() error                                 { return nil }
func (w *fakeWindow) Width() int                                   { return w.width }
func (w *fakeWindow) Height() int                                  { return w.height }

func (w *fakeWindow) ProcessMessages() {
	for w.framesRemaining > 0 {
		w.framesRemaining--
		if w.onUpdate != nil {
			w.onUpdate()
		}
	}
}

var _ window.Window = &fakeWindow{}

// fakeFrameRenderer records the frame call sequence.
type fakeFrameRenderer struct {
	calls []string

	resizes  [][2]int
	writes   [][]bgp.BufferWrite
	drawn    []instance.Registry
	beginErr error
	drawErr  error
}

func (r *fakeFrameRenderer) Resize(width, height int) {
	r.calls = append(r.calls, "resize")
	r.resizes = append(r.resizes, [2]int{width, height})
}

func (r *fakeFrameRenderer) WriteBuffers(writes []bgp.BufferWrite) {
	r.calls = append(r.calls, "write")
	r.writes = append(r.writes, writes)
}

func (r *fakeFrameRenderer) BeginFrame() error {
	r.calls = append(r.calls, "begin")
	return r.beginErr
}

func (r *fakeFrameRenderer) DrawInstances(reg instance.Registry, cameraProvider bgp.BindGroupProvider) error {
	r.calls = append(r.calls, "draw")
	r.drawn = append(r.drawn, reg)
	return r.drawErr
}

func (r *fakeFrameRenderer) EndFrame() { r.calls = append(r.calls, "end") }
func (r *fakeFrameRenderer) Present()  { r.calls = append(r.calls, "present") }

var _ FrameRenderer = &fakeFrameRenderer{}

// memoryMirror and memoryAllocator back real registries with plain byte slices.
type memoryMirror struct {
	data []byte
}

func (m *memoryMirror) Write(offset uint64, data []byte) {
	copy(m.data[offset:], data)
}
func (m *memoryMirror) Size() uint64 { return uint64(len(m.data)) }
func (m *memoryMirror) Release()     {}

type memoryAllocator struct{}

func (a *memoryAllocator) AllocateMirror(label string, size uint64) (instance.Mirror, error) {
	return &memoryMirror{data: make([]byte, size)}, nil
}

func newTestEngine(t *testing.T, width, height int) (Engine, *fakeWindow, *fakeFrameRenderer) {
	t.Helper()
	win := &fakeWindow{width: width, height: height}
	rend := &fakeFrameRenderer{}
	e, err := NewEngine(WithWindow(win), WithRenderer(rend))
	require.NoError(t, err)
	return e, win, rend
}

func newTestRegistry(t *testing.T, count int) instance.Registry {
	t.Helper()
	reg, err := instance.NewRegistry(&memoryAllocator{})
	require.NoError(t, err)
	for i := 0; i < count; i++ {
		err := reg.Insert(instance.Instance{
			ID:       instance.ID{Lo: uint64(i + 1)},
			Position: common.Vec3{X: float32(i)},
			Rotation: common.RotorIdentity(),
			Scale:    1,
		})
		require.NoError(t, err)
	}
	return reg
}

func TestNewEngineRequiresComponents(t *testing.T) {
	_, err := NewEngine(WithRenderer(&fakeFrameRenderer{}))
	assert.Error(t, err)

	_, err = NewEngine(WithWindow(&fakeWindow{width: 800, height: 600}))
	assert.Error(t, err)
}

func TestNewEngineAdoptsWindowSize(t *testing.T) {
	e, _, _ := newTestEngine(t, 801, 600)
	assert.Equal(t, 801, e.Width())
	assert.Equal(t, 600, e.Height())
}

func TestResizeForwardsToCameraAndRenderer(t *testing.T) {
	e, _, rend := newTestEngine(t, 801, 600)

	e.Update(0.016)
	before := e.Camera().ViewProjectionMatrix()

	e.Resize(400, 600)
	e.Update(0.016)

	assert.Equal(t, 400, e.Width())
	assert.Equal(t, 600, e.Height())
	require.Len(t, rend.resizes, 1)
	assert.Equal(t, [2]int{400, 600}, rend.resizes[0])
	assert.NotEqual(t, before, e.Camera().ViewProjectionMatrix())
}

func TestResizeIgnoresZeroDimensions(t *testing.T) {
	e, _, rend := newTestEngine(t, 801, 600)

	e.Resize(0, 600)
	e.Resize(801, 0)

	assert.Equal(t, 801, e.Width())
	assert.Equal(t, 600, e.Height())
	assert.Empty(t, rend.resizes)
}

func TestUpdateFlushesExactlyOneCameraWrite(t *testing.T) {
	e, _, rend := newTestEngine(t, 801, 600)

	e.Update(0.016)

	require.Len(t, rend.writes, 1)
	require.Len(t, rend.writes[0], 1)
	write := rend.writes[0][0]
	assert.Equal(t, e.Camera().BindGroupProvider(), write.Provider)
	assert.Equal(t, 0, write.Binding)
	assert.Len(t, write.Data, 64)

	// The camera's staging queue drains, so nothing carries into the next frame.
	assert.Empty(t, e.Camera().DrainStagedWrites())
}

func TestUpdateDrivesController(t *testing.T) {
	win := &fakeWindow{width: 801, height: 600}
	rend := &fakeFrameRenderer{}
	cam := camera.NewCamera(
		camera.WithEye(common.Vec3{Z: 10}),
		camera.WithController(camera.NewCameraController()),
	)
	e, err := NewEngine(WithWindow(win), WithRenderer(rend), WithCamera(cam))
	require.NoError(t, err)

	cam.Controller().ProcessKeyDown(glfw.KeyW)
	e.Update(0.5)

	assert.InDelta(t, 8.0, cam.View().Eye.Z, 1e-5)
}

func TestRenderDrawsEachRegistryOnce(t *testing.T) {
	e, _, rend := newTestEngine(t, 801, 600)
	regA := newTestRegistry(t, 3)
	regB := newTestRegistry(t, 5)

	err := e.Render(regA, regB)
	require.NoError(t, err)

	assert.Equal(t, []string{"begin", "draw", "draw", "end", "present"}, rend.calls)
	require.Len(t, rend.drawn, 2)
	assert.Same(t, regA, rend.drawn[0])
	assert.Same(t, regB, rend.drawn[1])
}

func TestRenderSurfaceOutdatedReconfiguresAndReturns(t *testing.T) {
	e, _, rend := newTestEngine(t, 801, 600)
	rend.beginErr = fmt.Errorf("%w: timeout", renderer.ErrSurfaceOutdated)

	err := e.Render(newTestRegistry(t, 1))
	require.Error(t, err)
	assert.True(t, errors.Is(err, renderer.ErrSurfaceOutdated))

	// Reconfigured at the stored size, and the frame was abandoned.
	assert.Equal(t, []string{"begin", "resize"}, rend.calls)
	require.Len(t, rend.resizes, 1)
	assert.Equal(t, [2]int{801, 600}, rend.resizes[0])
}

func TestRenderFatalBeginDoesNotReconfigure(t *testing.T) {
	e, _, rend := newTestEngine(t, 801, 600)
	rend.beginErr = errors.New("device lost")

	err := e.Render(newTestRegistry(t, 1))
	require.Error(t, err)
	assert.Equal(t, []string{"begin"}, rend.calls)
}

func TestRenderDrawErrorStillSubmitsFrame(t *testing.T) {
	e, _, rend := newTestEngine(t, 801, 600)
	rend.drawErr = errors.New("missing pipeline")

	err := e.Render(newTestRegistry(t, 1))
	require.Error(t, err)
	assert.Equal(t, []string{"begin", "draw", "end", "present"}, rend.calls)
}

func TestRunDrivesFrameLoop(t *testing.T) {
	win := &fakeWindow{width: 801, height: 600, framesRemaining: 3}
	rend := &fakeFrameRenderer{}

	ticks := 0
	e, err := NewEngine(
		WithWindow(win),
		WithRenderer(rend),
		WithTickCallback(func(deltaTime float32) { ticks++ }),
	)
	require.NoError(t, err)

	reg := newTestRegistry(t, 2)
	e.Run(reg)

	assert.Equal(t, 3, ticks)
	// Each frame: one camera write flush, one begin/draw/end/present.
	assert.Len(t, rend.writes, 3)
	frame := []string{"write", "begin", "draw", "end", "present"}
	expected := append(append(append([]string{}, frame...), frame...), frame...)
	assert.Equal(t, expected, rend.calls)
}

func TestRunWiresWindowCallbacksToControllerAndResize(t *testing.T) {
	win := &fakeWindow{width: 801, height: 600, framesRemaining: 0}
	rend := &fakeFrameRenderer{}
	cam := camera.NewCamera(camera.WithController(camera.NewCameraController()))
	e, err := NewEngine(WithWindow(win), WithRenderer(rend), WithCamera(cam))
	require.NoError(t, err)

	e.Run()

	require.NotNil(t, win.onResize)
	require.NotNil(t, win.onKeyDown)
	require.NotNil(t, win.onKeyUp)

	win.onResize(1024, 768)
	assert.Equal(t, 1024, e.Width())
	assert.Equal(t, 768, e.Height())

	assert.True(t, cam.Controller().ProcessKeyDown(glfw.KeyW))
	win.onKeyUp(glfw.KeyW)
}

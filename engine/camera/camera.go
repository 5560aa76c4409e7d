// Package camera implements the camera system: a Projection strategy mapping
// view space to clip space, a LookAt view state, and a Camera that combines
// both into one GPU uniform staged for upload every frame.
package camera

import (
	"strconv"
	"sync"
	"sync/atomic"

	"github.com/veldt-engine/veldt/common"
	bgp "github.com/veldt-engine/veldt/engine/renderer/bind_group_provider"
)

// cameraCount is an atomic counter used to generate unique bind group provider names for each camera instance.
var cameraCount atomic.Uint64

type cameraImpl struct {
	mu *sync.Mutex

	projection Projection
	view       LookAt

	viewProjectionMatrix [16]float32

	controller        CameraController
	bindGroupProvider bgp.BindGroupProvider
	staged            []bgp.BufferWrite
}

// Camera owns exactly one Projection strategy and one LookAt view, combines
// them into a view-projection uniform, and stages that uniform for GPU upload.
// Update stages exactly one 64-byte write per call, unconditionally; the
// frame loop drains staged writes into the renderer's queue once per frame.
type Camera interface {
	// Projection returns the owned projection strategy.
	//
	// Returns:
	//   - Projection: the projection
	Projection() Projection

	// SetProjection replaces the owned projection strategy.
	//
	// Parameters:
	//   - p: the projection to own
	SetProjection(p Projection)

	// View returns a copy of the current view state.
	//
	// Returns:
	//   - LookAt: the view state
	View() LookAt

	// SetView replaces the view state.
	//
	// Parameters:
	//   - view: the view state to store
	SetView(view LookAt)

	// ViewProjectionMatrix returns the combined view-projection matrix from
	// the most recent Update (column-major).
	//
	// Returns:
	//   - [16]float32: the combined view-projection matrix
	ViewProjectionMatrix() [16]float32

	// Controller returns the attached CameraController.
	// Returns nil if no controller is attached.
	//
	// Returns:
	//   - CameraController: the attached controller or nil
	Controller() CameraController

	// SetController attaches a CameraController to the camera.
	//
	// Parameters:
	//   - ctrl: the controller to attach
	SetController(ctrl CameraController)

	// BindGroupProvider returns the camera's bind group provider holding the
	// uniform buffer and bind group (group 1, binding 0 during draws).
	//
	// Returns:
	//   - bind_group_provider.BindGroupProvider: the bind group provider
	BindGroupProvider() bgp.BindGroupProvider

	// Update recomputes viewProj = projection * view, serializes it to a
	// 64-byte record, and stages exactly one buffer write. It does not check
	// whether the matrices changed; one uniform write per frame is the
	// contract. Call once per frame.
	Update()

	// DrainStagedWrites returns all staged uniform writes and clears the
	// staging list. The frame loop passes the result to the renderer.
	//
	// Returns:
	//   - []bind_group_provider.BufferWrite: the staged writes, oldest first
	DrainStagedWrites() []bgp.BufferWrite

	// Resize forwards a surface size change to the owned projection.
	//
	// Parameters:
	//   - width: the new surface width in pixels
	//   - height: the new surface height in pixels
	Resize(width, height float32)
}

var _ Camera = &cameraImpl{}

// NewCamera creates a new Camera with a default perspective projection and a
// view at (0, 1, 2) watching the origin.
//
// Parameters:
//   - options: functional options to configure the camera
//
// Returns:
//   - Camera: the newly created camera
func NewCamera(options ...CameraBuilderOption) Camera {
	c := &cameraImpl{
		mu:         &sync.Mutex{},
		projection: NewPerspective(common.DegToRad(45), 1.0, 0.1, 100.0),
		view:       NewLookAt(common.NewVec3(0, 1, 2), common.NewVec3(0, 0, 0)),
		bindGroupProvider: bgp.NewBindGroupProvider(
			"camera_" + strconv.FormatUint(cameraCount.Load(), 10),
		),
	}
	for _, option := range options {
		option(c)
	}
	cameraCount.Add(1)
	return c
}

func (c *cameraImpl) Projection() Projection {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.projection
}

func (c *cameraImpl) SetProjection(p Projection) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.projection = p
}

func (c *cameraImpl) View() LookAt {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.view
}

func (c *cameraImpl) SetView(view LookAt) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.view = view
}

func (c *cameraImpl) ViewProjectionMatrix() [16]float32 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.viewProjectionMatrix
}

func (c *cameraImpl) Controller() CameraController {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.controller
}

func (c *cameraImpl) SetController(ctrl CameraController) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.controller = ctrl
}

func (c *cameraImpl) BindGroupProvider() bgp.BindGroupProvider {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.bindGroupProvider
}

func (c *cameraImpl) Update() {
	c.mu.Lock()
	defer c.mu.Unlock()

	proj := c.projection.Matrix()
	view := c.view.ViewMatrix()
	common.Mul4(c.viewProjectionMatrix[:], proj[:], view[:])

	data := GPUCameraData{ViewProj: c.viewProjectionMatrix}
	c.staged = append(c.staged, bgp.BufferWrite{
		Provider: c.bindGroupProvider,
		Binding:  0,
		Offset:   0,
		Data:     data.Marshal(),
	})
}

func (c *cameraImpl) DrainStagedWrites() []bgp.BufferWrite {
	c.mu.Lock()
	defer c.mu.Unlock()

	writes := c.staged
	c.staged = nil
	return writes
}

func (c *cameraImpl) Resize(width, height float32) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.projection.Resize(width, height)
}

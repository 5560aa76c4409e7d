package camera

import (
	"sync"

	"github.com/go-gl/glfw/v3.3/glfw"
	"github.com/veldt-engine/veldt/common"
)

// cameraControllerImpl is the single implementation of CameraController.
// It holds per-key pressed state between events and converts that state into
// view mutations once per frame.
type cameraControllerImpl struct {
	mu *sync.Mutex

	forwardPressed  bool
	backwardPressed bool
	leftPressed     bool
	rightPressed    bool
	upPressed       bool
	downPressed     bool

	moveSpeed   float32 // world units per second
	rotateSpeed float32 // radians per second

	// clampForward stops forward motion at minDistance from the target
	// instead of stepping past it. Off by default: a full-speed step is
	// taken even when the remaining distance is smaller, so the eye can
	// overshoot the target and flip the view.
	clampForward bool
	minDistance  float32
}

var _ CameraController = &cameraControllerImpl{}

// NewCameraController creates a key-state camera controller with default
// movement and rotation speeds.
//
// Parameters:
//   - options: functional options to configure the controller
//
// Returns:
//   - CameraController: the newly created controller
func NewCameraController(options ...CameraControllerOption) CameraController {
	cc := &cameraControllerImpl{
		mu:          &sync.Mutex{},
		moveSpeed:   4.0,
		rotateSpeed: 1.5,
		minDistance: 0.5,
	}
	for _, option := range options {
		option(cc)
	}
	return cc
}

func (cc *cameraControllerImpl) ProcessKeyDown(key glfw.Key) bool {
	return cc.setKeyState(key, true)
}

func (cc *cameraControllerImpl) ProcessKeyUp(key glfw.Key) bool {
	return cc.setKeyState(key, false)
}

func (cc *cameraControllerImpl) setKeyState(key glfw.Key, pressed bool) bool {
	cc.mu.Lock()
	defer cc.mu.Unlock()

	switch key {
	case glfw.KeyW, glfw.KeyUp:
		cc.forwardPressed = pressed
	case glfw.KeyS, glfw.KeyDown:
		cc.backwardPressed = pressed
	case glfw.KeyA, glfw.KeyLeft:
		cc.leftPressed = pressed
	case glfw.KeyD, glfw.KeyRight:
		cc.rightPressed = pressed
	case glfw.KeySpace:
		cc.upPressed = pressed
	case glfw.KeyLeftShift:
		cc.downPressed = pressed
	default:
		return false
	}
	return true
}

func (cc *cameraControllerImpl) UpdateCamera(cam Camera, deltaTime float32) {
	cc.mu.Lock()
	defer cc.mu.Unlock()

	view := cam.View()

	if cc.forwardPressed {
		step := cc.moveSpeed * deltaTime
		if cc.clampForward {
			if remaining := view.Distance() - cc.minDistance; remaining < step {
				step = max(remaining, 0)
			}
		}
		view.MoveForward(step)
	}
	if cc.backwardPressed {
		view.MoveForward(-cc.moveSpeed * deltaTime)
	}

	if cc.leftPressed {
		view.RotateEye(common.RotorFromRotationXZ(cc.rotateSpeed * deltaTime))
	}
	if cc.rightPressed {
		view.RotateEye(common.RotorFromRotationXZ(-cc.rotateSpeed * deltaTime))
	}

	if cc.upPressed {
		lift := view.Up.Normalized().Scale(cc.moveSpeed * deltaTime)
		view.Eye = view.Eye.Add(lift)
		view.Target = view.Target.Add(lift)
	}
	if cc.downPressed {
		drop := view.Up.Normalized().Scale(-cc.moveSpeed * deltaTime)
		view.Eye = view.Eye.Add(drop)
		view.Target = view.Target.Add(drop)
	}

	cam.SetView(view)
}

package camera

import "github.com/veldt-engine/veldt/common"

type CameraBuilderOption func(*cameraImpl)

// WithProjection sets the projection strategy owned by the camera.
//
// Parameters:
//   - p: the projection to own
//
// Returns:
//   - CameraBuilderOption: a function that sets the camera's projection
func WithProjection(p Projection) CameraBuilderOption {
	return func(c *cameraImpl) {
		c.projection = p
	}
}

// WithView sets the camera's view state.
//
// Parameters:
//   - view: the view state
//
// Returns:
//   - CameraBuilderOption: a function that sets the camera's view
func WithView(view LookAt) CameraBuilderOption {
	return func(c *cameraImpl) {
		c.view = view
	}
}

// WithEye sets the camera's eye position, keeping the default target and up.
//
// Parameters:
//   - eye: the eye position
//
// Returns:
//   - CameraBuilderOption: a function that sets the view's eye
func WithEye(eye common.Vec3) CameraBuilderOption {
	return func(c *cameraImpl) {
		c.view.Eye = eye
	}
}

// WithTarget sets the point the camera watches.
//
// Parameters:
//   - target: the target position
//
// Returns:
//   - CameraBuilderOption: a function that sets the view's target
func WithTarget(target common.Vec3) CameraBuilderOption {
	return func(c *cameraImpl) {
		c.view.Target = target
	}
}

// WithUp sets the camera's up reference vector.
//
// Parameters:
//   - up: the up vector
//
// Returns:
//   - CameraBuilderOption: a function that sets the view's up vector
func WithUp(up common.Vec3) CameraBuilderOption {
	return func(c *cameraImpl) {
		c.view.Up = up
	}
}

// WithController attaches a CameraController to the camera.
//
// Parameters:
//   - ctrl: the controller to attach
//
// Returns:
//   - CameraBuilderOption: a function that sets the camera's controller
func WithController(ctrl CameraController) CameraBuilderOption {
	return func(c *cameraImpl) {
		c.controller = ctrl
	}
}

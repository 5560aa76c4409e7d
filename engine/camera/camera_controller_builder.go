package camera

type CameraControllerOption func(*cameraControllerImpl)

// WithMoveSpeed sets the translation speed in world units per second.
//
// Parameters:
//   - speed: the movement speed (values <= 0 are ignored)
//
// Returns:
//   - CameraControllerOption: a function that sets the movement speed
func WithMoveSpeed(speed float32) CameraControllerOption {
	return func(cc *cameraControllerImpl) {
		if speed > 0 {
			cc.moveSpeed = speed
		}
	}
}

// WithRotateSpeed sets the orbit speed in radians per second.
//
// Parameters:
//   - speed: the rotation speed (values <= 0 are ignored)
//
// Returns:
//   - CameraControllerOption: a function that sets the rotation speed
func WithRotateSpeed(speed float32) CameraControllerOption {
	return func(cc *cameraControllerImpl) {
		if speed > 0 {
			cc.rotateSpeed = speed
		}
	}
}

// WithClampedForward stops forward motion at minDistance from the target
// rather than letting a large step carry the eye past it.
//
// Parameters:
//   - minDistance: the closest allowed eye-to-target distance
//
// Returns:
//   - CameraControllerOption: a function that enables forward clamping
func WithClampedForward(minDistance float32) CameraControllerOption {
	return func(cc *cameraControllerImpl) {
		cc.clampForward = true
		if minDistance > 0 {
			cc.minDistance = minDistance
		}
	}
}

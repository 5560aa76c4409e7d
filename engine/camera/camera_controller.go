package camera

import (
	"github.com/go-gl/glfw/v3.3/glfw"
)

// CameraController maps key state onto view mutations. The window layer
// forwards raw key events; the frame loop calls UpdateCamera once per frame
// with the elapsed time so movement speed is frame-rate independent.
type CameraController interface {
	// ProcessKeyDown records a key press.
	//
	// Parameters:
	//   - key: the GLFW key code
	//
	// Returns:
	//   - bool: true if the controller handles this key
	ProcessKeyDown(key glfw.Key) bool

	// ProcessKeyUp records a key release.
	//
	// Parameters:
	//   - key: the GLFW key code
	//
	// Returns:
	//   - bool: true if the controller handles this key
	ProcessKeyUp(key glfw.Key) bool

	// UpdateCamera applies the currently held keys to the camera's view:
	// W/S move the eye toward or away from the target, A/D orbit the eye
	// around the target in the horizontal plane, Space/LeftShift raise or
	// lower both eye and target.
	//
	// Parameters:
	//   - cam: the camera whose view is mutated
	//   - deltaTime: seconds elapsed since the previous frame
	UpdateCamera(cam Camera, deltaTime float32)
}

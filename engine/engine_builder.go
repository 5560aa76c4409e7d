package engine

import (
	"github.com/veldt-engine/veldt/engine/camera"
	"github.com/veldt-engine/veldt/engine/profiler"
	"github.com/veldt-engine/veldt/engine/window"
)

type EngineBuilderOption func(*engineImpl)

// WithWindow sets the engine's window. Required.
//
// Parameters:
//   - win: the window to drive the frame loop
//
// Returns:
//   - EngineBuilderOption: a function that sets the engine's window
func WithWindow(win window.Window) EngineBuilderOption {
	return func(e *engineImpl) {
		e.window = win
	}
}

// WithRenderer sets the engine's frame renderer. Required.
//
// Parameters:
//   - r: the renderer driven each frame
//
// Returns:
//   - EngineBuilderOption: a function that sets the engine's renderer
func WithRenderer(r FrameRenderer) EngineBuilderOption {
	return func(e *engineImpl) {
		e.renderer = r
	}
}

// WithCamera sets the engine's camera. Defaults to camera.NewCamera() when
// omitted.
//
// Parameters:
//   - cam: the camera used for all draws
//
// Returns:
//   - EngineBuilderOption: a function that sets the engine's camera
func WithCamera(cam camera.Camera) EngineBuilderOption {
	return func(e *engineImpl) {
		e.camera = cam
	}
}

// WithTickCallback sets the per-frame mutation callback. It runs after event
// polling and before the camera update, so registry changes it makes are
// rendered the same frame.
//
// Parameters:
//   - tick: function receiving the frame's delta time in seconds
//
// Returns:
//   - EngineBuilderOption: a function that sets the tick callback
func WithTickCallback(tick func(deltaTime float32)) EngineBuilderOption {
	return func(e *engineImpl) {
		e.tick = tick
	}
}

// WithProfiler enables per-frame performance logging.
//
// Parameters:
//   - p: the profiler to feed each frame
//
// Returns:
//   - EngineBuilderOption: a function that sets the engine's profiler
func WithProfiler(p *profiler.Profiler) EngineBuilderOption {
	return func(e *engineImpl) {
		e.profiler = p
	}
}

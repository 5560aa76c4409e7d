// Package engine ties the window, camera, renderer and instance registries
// together into a single-threaded frame loop: poll events, apply mutations,
// update the camera, render every registry.
package engine

import (
	"errors"
	"log"
	"sync"
	"time"

	"github.com/go-gl/glfw/v3.3/glfw"

	"github.com/veldt-engine/veldt/engine/camera"
	"github.com/veldt-engine/veldt/engine/instance"
	"github.com/veldt-engine/veldt/engine/profiler"
	"github.com/veldt-engine/veldt/engine/renderer"
	bgp "github.com/veldt-engine/veldt/engine/renderer/bind_group_provider"
	"github.com/veldt-engine/veldt/engine/window"
)

// FrameRenderer is the subset of the renderer the engine drives each frame.
// The production implementation is renderer.Renderer; tests substitute a fake.
type FrameRenderer interface {
	// Resize reconfigures the surface for a new pixel size.
	Resize(width, height int)

	// WriteBuffers flushes staged uniform writes to the GPU queue.
	WriteBuffers(writes []bgp.BufferWrite)

	// BeginFrame acquires the surface texture and begins the render pass.
	BeginFrame() error

	// DrawInstances encodes one instanced draw for a registry.
	DrawInstances(reg instance.Registry, cameraProvider bgp.BindGroupProvider) error

	// EndFrame submits all recorded commands as one unit.
	EndFrame()

	// Present displays the finished frame.
	Present()
}

// engineImpl is the implementation of the Engine interface.
type engineImpl struct {
	mu *sync.Mutex

	window   window.Window
	camera   camera.Camera
	renderer FrameRenderer
	profiler *profiler.Profiler

	// tick runs caller mutations (registry inserts, updates, removals)
	// before the camera update and render of each frame.
	tick func(deltaTime float32)

	width, height int
	lastFrame     time.Time
}

// Engine owns the frame loop. All engine state lives on the instance; there
// are no package-level globals, so multiple engines can coexist in tests.
//
// The loop is single-threaded: events, caller mutations, camera update and
// rendering run in sequence every frame, which is what makes interleaving
// registry mutation with rendering safe.
type Engine interface {
	// Window returns the engine's window.
	//
	// Returns:
	//   - window.Window: the window
	Window() window.Window

	// Camera returns the engine's camera.
	//
	// Returns:
	//   - camera.Camera: the camera
	Camera() camera.Camera

	// Renderer returns the engine's frame renderer.
	//
	// Returns:
	//   - FrameRenderer: the renderer
	Renderer() FrameRenderer

	// Resize applies a new surface size to the camera projection and the
	// renderer, atomically before the next frame. A zero width or height
	// (minimized window) is ignored entirely: no state changes, and the
	// previously configured dimensions remain in effect.
	//
	// Parameters:
	//   - width: the new surface width in pixels
	//   - height: the new surface height in pixels
	Resize(width, height int)

	// Width returns the currently configured surface width in pixels.
	//
	// Returns:
	//   - int: the width
	Width() int

	// Height returns the currently configured surface height in pixels.
	//
	// Returns:
	//   - int: the height
	Height() int

	// Update advances per-frame state: the camera controller applies held
	// keys, the camera stages its uniform write, and staged writes flush to
	// the GPU queue. Exactly one camera uniform write happens per call.
	//
	// Parameters:
	//   - deltaTime: seconds elapsed since the previous frame
	Update(deltaTime float32)

	// Render renders one frame covering every given registry. A recoverable
	// surface loss reconfigures the surface and returns ErrSurfaceOutdated;
	// the caller skips this frame and retries on the next one.
	//
	// Parameters:
	//   - registries: the instance registries to draw, in order
	//
	// Returns:
	//   - error: renderer.ErrSurfaceOutdated on recoverable surface loss,
	//     or the first draw error encountered
	Render(registries ...instance.Registry) error

	// Run enters the frame loop and blocks until the window closes:
	// poll events, tick callback, Update, Render, repeat.
	//
	// Parameters:
	//   - registries: the instance registries drawn every frame
	Run(registries ...instance.Registry)
}

var _ Engine = &engineImpl{}

// NewEngine creates an Engine from explicitly wired components. The window,
// camera and renderer must be provided through options; there is no implicit
// global construction.
//
// Parameters:
//   - options: functional options wiring the engine's components
//
// Returns:
//   - Engine: the newly created engine
//   - error: an error if a required component is missing
func NewEngine(options ...EngineBuilderOption) (Engine, error) {
	e := &engineImpl{
		mu: &sync.Mutex{},
	}
	for _, option := range options {
		option(e)
	}

	if e.window == nil {
		return nil, errors.New("engine requires a window")
	}
	if e.renderer == nil {
		return nil, errors.New("engine requires a renderer")
	}
	if e.camera == nil {
		e.camera = camera.NewCamera()
	}

	e.width = e.window.Width()
	e.height = e.window.Height()
	e.camera.Resize(float32(e.width), float32(e.height))

	return e, nil
}

func (e *engineImpl) Window() window.Window {
	return e.window
}

func (e *engineImpl) Camera() camera.Camera {
	return e.camera
}

func (e *engineImpl) Renderer() FrameRenderer {
	return e.renderer
}

func (e *engineImpl) Resize(width, height int) {
	if width == 0 || height == 0 {
		return
	}

	e.mu.Lock()
	e.width = width
	e.height = height
	e.mu.Unlock()

	e.camera.Resize(float32(width), float32(height))
	e.renderer.Resize(width, height)
}

func (e *engineImpl) Width() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.width
}

func (e *engineImpl) Height() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.height
}

func (e *engineImpl) Update(deltaTime float32) {
	if ctrl := e.camera.Controller(); ctrl != nil {
		ctrl.UpdateCamera(e.camera, deltaTime)
	}
	e.camera.Update()
	e.renderer.WriteBuffers(e.camera.DrainStagedWrites())
}

func (e *engineImpl) Render(registries ...instance.Registry) error {
	if err := e.renderer.BeginFrame(); err != nil {
		if errors.Is(err, renderer.ErrSurfaceOutdated) {
			// Recoverable: reconfigure at the current size and let the
			// caller retry on the next frame.
			e.mu.Lock()
			width, height := e.width, e.height
			e.mu.Unlock()
			e.renderer.Resize(width, height)
		}
		return err
	}

	var drawErr error
	drawCalls, instancesDrawn := 0, 0
	for _, reg := range registries {
		if err := e.renderer.DrawInstances(reg, e.camera.BindGroupProvider()); err != nil {
			if drawErr == nil {
				drawErr = err
			}
			continue
		}
		if n := reg.Len(); n > 0 {
			drawCalls++
			instancesDrawn += n
		}
	}

	// The frame is always submitted and presented, even after a failed
	// draw, so the acquired surface texture is released.
	e.renderer.EndFrame()
	e.renderer.Present()

	if e.profiler != nil {
		e.profiler.RecordDraw(drawCalls, instancesDrawn)
	}

	return drawErr
}

func (e *engineImpl) Run(registries ...instance.Registry) {
	e.window.SetResizeCallback(e.Resize)
	e.window.SetKeyDownCallback(func(key glfw.Key) {
		if ctrl := e.camera.Controller(); ctrl != nil {
			ctrl.ProcessKeyDown(key)
		}
	})
	e.window.SetKeyUpCallback(func(key glfw.Key) {
		if ctrl := e.camera.Controller(); ctrl != nil {
			ctrl.ProcessKeyUp(key)
		}
	})

	e.lastFrame = time.Now()
	e.window.SetUpdateCallback(func() {
		now := time.Now()
		deltaTime := float32(now.Sub(e.lastFrame).Seconds())
		e.lastFrame = now

		if e.tick != nil {
			e.tick(deltaTime)
		}
		e.Update(deltaTime)

		if err := e.Render(registries...); err != nil && !errors.Is(err, renderer.ErrSurfaceOutdated) {
			log.Printf("[Engine] render error: %v", err)
		}

		if e.profiler != nil {
			e.profiler.Tick()
		}
	})

	e.window.ProcessMessages()
}

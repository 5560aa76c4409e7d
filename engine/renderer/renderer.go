// Package renderer owns the graphics device and orchestrates frames: surface
// configuration, the instanced render pipeline, per-frame command encoding,
// and GPU resource initialization for models, cameras and instance registries.
package renderer

import (
	_ "embed"
	"errors"
	"fmt"
	"runtime"
	"sync"

	"github.com/cogentcore/webgpu/wgpu"
	"github.com/veldt-engine/veldt/common"
	"github.com/veldt-engine/veldt/engine/instance"
	"github.com/veldt-engine/veldt/engine/model"
	bgp "github.com/veldt-engine/veldt/engine/renderer/bind_group_provider"
	"github.com/veldt-engine/veldt/engine/window"
)

// instancedShaderSource is the WGSL source for the instanced textured pipeline.
//
//go:embed shader.wgsl
var instancedShaderSource string

// ErrSurfaceOutdated indicates the surface texture could not be acquired,
// typically because the window was resized or the swapchain went stale.
// It is recoverable: reconfigure the surface and retry next frame.
var ErrSurfaceOutdated = errors.New("surface outdated")

// renderer is the implementation of the Renderer interface.
type renderer struct {
	mu *sync.Mutex

	instance *wgpu.Instance
	adapter  *wgpu.Adapter
	surface  *wgpu.Surface
	device   *wgpu.Device
	queue    *wgpu.Queue

	surfaceFormat        *wgpu.TextureFormat
	depthTexture         *wgpu.Texture
	depthTextureView     *wgpu.TextureView
	renderPassDescriptor *wgpu.RenderPassDescriptor

	width, height int

	renderPipeline *wgpu.RenderPipeline
	materialLayout *wgpu.BindGroupLayout
	cameraLayout   *wgpu.BindGroupLayout

	presentMode          wgpu.PresentMode
	clearColor           wgpu.Color
	forceFallbackAdapter bool

	// Frame state held between BeginFrame and Present.
	frameEncoder *wgpu.CommandEncoder
	framePass    *wgpu.RenderPassEncoder
	frameSurface *wgpu.Texture
	frameView    *wgpu.TextureView
}

// Renderer owns the graphics device, surface and render pipeline, and drives
// the per-frame command flow: BeginFrame, any number of DrawInstances calls,
// EndFrame, Present. It also initializes GPU resources for models and
// cameras, and allocates instance mirrors (it is the production
// instance.MirrorAllocator).
type Renderer interface {
	instance.MirrorAllocator

	// Device returns the wgpu device owned by this renderer.
	//
	// Returns:
	//   - *wgpu.Device: the device
	Device() *wgpu.Device

	// Queue returns the wgpu queue owned by this renderer.
	//
	// Returns:
	//   - *wgpu.Queue: the queue
	Queue() *wgpu.Queue

	// Configure (re)configures the surface for the given pixel size and
	// rebuilds the depth attachment to match. Must be called before the
	// first frame and again after any surface size change.
	//
	// Parameters:
	//   - width: the surface width in pixels
	//   - height: the surface height in pixels
	Configure(width, height int)

	// Resize reconfigures the surface for a new size. A zero width or
	// height (minimized window) is ignored entirely; the previous
	// configuration stays in effect.
	//
	// Parameters:
	//   - width: the new surface width in pixels
	//   - height: the new surface height in pixels
	Resize(width, height int)

	// RegisterPipeline creates the instanced render pipeline: two vertex
	// streams (geometry at locations 0-2, per-instance matrix at 5-8),
	// depth test Less with writes enabled, CCW front faces with back-face
	// culling, and the embedded WGSL shader. Configure must run first so
	// the surface format is known.
	//
	// Returns:
	//   - error: an error if shader or pipeline creation fails
	RegisterPipeline() error

	// InitModel uploads a model's mesh buffers, diffuse texture and sampler
	// to the GPU and builds its material bind group (group 0). The model's
	// staging data is cleared once consumed. RegisterPipeline must run first.
	//
	// Parameters:
	//   - m: the model to initialize
	//
	// Returns:
	//   - error: an error if any resource creation fails
	InitModel(m model.Model) error

	// InitCameraProvider creates the camera's 64-byte uniform buffer and
	// bind group (group 1, binding 0) on the given provider.
	// RegisterPipeline must run first.
	//
	// Parameters:
	//   - provider: the camera's bind group provider
	//
	// Returns:
	//   - error: an error if buffer or bind group creation fails
	InitCameraProvider(provider bgp.BindGroupProvider) error

	// WriteBuffers writes all staged buffer writes to the GPU queue.
	// Each BufferWrite targets a specific buffer on a BindGroupProvider at a given binding and offset.
	//
	// Parameters:
	//   - writes: a slice of BufferWrite structs describing the data to write
	WriteBuffers(writes []bgp.BufferWrite)

	// BeginFrame acquires the next surface texture and begins the render
	// pass, clearing color and depth. An acquisition failure is reported as
	// ErrSurfaceOutdated; the caller reconfigures and retries next frame.
	//
	// Returns:
	//   - error: ErrSurfaceOutdated if the surface texture could not be acquired
	BeginFrame() error

	// DrawInstances encodes one instanced draw for a registry: the
	// registry's mirror is vertex stream 1, its model's vertices stream 0,
	// the model's material at group 0 and the camera at group 1, one
	// DrawIndexed covering all model indices and exactly Len() instances.
	// A registry with zero live instances produces no draw call.
	//
	// Parameters:
	//   - reg: the instance registry to draw
	//   - cameraProvider: the camera's initialized bind group provider
	//
	// Returns:
	//   - error: an error if the registry's mirror or model was not
	//     initialized by this renderer
	DrawInstances(reg instance.Registry, cameraProvider bgp.BindGroupProvider) error

	// EndFrame ends the render pass and submits all recorded commands to
	// the GPU as one unit. Call Present afterwards to display the frame.
	EndFrame()

	// Present presents the surface to the display and releases the swapchain texture.
	// Must be called once per frame after EndFrame.
	Present()

	// Release frees the device, surface and pipeline resources.
	Release()
}

var _ Renderer = &renderer{}

// NewRenderer creates a Renderer bound to the given window's surface. The
// wgpu instance, adapter, device and queue are acquired here; any failure is
// fatal to engine startup and returned as an error. The surface is
// configured for the window's current size.
//
// Parameters:
//   - win: the window providing the surface descriptor and initial size
//   - options: functional options to configure the renderer
//
// Returns:
//   - Renderer: the newly created renderer
//   - error: an error if adapter or device acquisition fails
func NewRenderer(win window.Window, options ...RendererBuilderOption) (Renderer, error) {
	runtime.LockOSThread()

	r := &renderer{
		mu:          &sync.Mutex{},
		presentMode: wgpu.PresentModeFifo,
		clearColor:  wgpu.Color{R: 0.1, G: 0.2, B: 0.3, A: 1.0},
	}
	for _, option := range options {
		option(r)
	}

	r.instance = wgpu.CreateInstance(nil)
	r.surface = r.instance.CreateSurface(win.SurfaceDescriptor())

	adapter, err := r.instance.RequestAdapter(&wgpu.RequestAdapterOptions{
		ForceFallbackAdapter: r.forceFallbackAdapter,
		CompatibleSurface:    r.surface,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to acquire gpu adapter: %w", err)
	}
	r.adapter = adapter

	device, err := adapter.RequestDevice(&wgpu.DeviceDescriptor{
		Label: "Main Device",
	})
	if err != nil {
		return nil, fmt.Errorf("failed to acquire gpu device: %w", err)
	}
	r.device = device
	r.queue = device.GetQueue()

	r.Configure(win.Width(), win.Height())
	return r, nil
}

func (r *renderer) Device() *wgpu.Device {
	return r.device
}

func (r *renderer) Queue() *wgpu.Queue {
	return r.queue
}

func (r *renderer) Configure(width, height int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.configureLocked(width, height)
}

func (r *renderer) Resize(width, height int) {
	if width == 0 || height == 0 {
		return
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	r.configureLocked(width, height)
}

// configureLocked configures the surface and rebuilds the depth attachment.
// Caller must hold the mutex.
func (r *renderer) configureLocked(width, height int) {
	capabilities := r.surface.GetCapabilities(r.adapter)
	r.surfaceFormat = &capabilities.Formats[0]

	r.surface.Configure(r.adapter, r.device, &wgpu.SurfaceConfiguration{
		Usage:       wgpu.TextureUsageRenderAttachment,
		Format:      *r.surfaceFormat,
		Width:       uint32(width),
		Height:      uint32(height),
		PresentMode: r.presentMode,
		AlphaMode:   capabilities.AlphaModes[0],
	})
	r.width = width
	r.height = height

	if r.depthTextureView != nil {
		r.depthTextureView.Release()
	}
	if r.depthTexture != nil {
		r.depthTexture.Release()
	}

	depthTexture, err := r.device.CreateTexture(&wgpu.TextureDescriptor{
		Label: "Depth Texture",
		Size: wgpu.Extent3D{
			Width:              uint32(width),
			Height:             uint32(height),
			DepthOrArrayLayers: 1,
		},
		MipLevelCount: 1,
		SampleCount:   1,
		Dimension:     wgpu.TextureDimension2D,
		Format:        wgpu.TextureFormatDepth24Plus,
		Usage:         wgpu.TextureUsageRenderAttachment,
	})
	if err != nil {
		panic(err)
	}
	r.depthTexture = depthTexture
	r.depthTextureView, err = depthTexture.CreateView(nil)
	if err != nil {
		panic(err)
	}

	r.renderPassDescriptor = &wgpu.RenderPassDescriptor{
		ColorAttachments: []wgpu.RenderPassColorAttachment{
			{
				View:       nil, // set per-frame to the swapchain view
				LoadOp:     wgpu.LoadOpClear,
				StoreOp:    wgpu.StoreOpStore,
				ClearValue: r.clearColor,
			},
		},
		DepthStencilAttachment: &wgpu.RenderPassDepthStencilAttachment{
			View:            r.depthTextureView, // persistent until resize
			DepthLoadOp:     wgpu.LoadOpClear,
			DepthStoreOp:    wgpu.StoreOpStore,
			DepthClearValue: 1.0,
		},
	}
}

func (r *renderer) RegisterPipeline() error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.surfaceFormat == nil {
		return errors.New("surface must be configured before pipeline registration")
	}

	shaderModule, err := r.device.CreateShaderModule(&wgpu.ShaderModuleDescriptor{
		Label: "Instanced Shader",
		WGSLDescriptor: &wgpu.ShaderModuleWGSLDescriptor{
			Code: instancedShaderSource,
		},
	})
	if err != nil {
		return fmt.Errorf("failed to create shader module: %w", err)
	}
	defer shaderModule.Release()

	materialLayout, err := r.device.CreateBindGroupLayout(&wgpu.BindGroupLayoutDescriptor{
		Label: "Material Bind Group Layout",
		Entries: []wgpu.BindGroupLayoutEntry{
			{
				Binding:    0,
				Visibility: wgpu.ShaderStageFragment,
				Texture: wgpu.TextureBindingLayout{
					SampleType:    wgpu.TextureSampleTypeFloat,
					ViewDimension: wgpu.TextureViewDimension2D,
					Multisampled:  false,
				},
			},
			{
				Binding:    1,
				Visibility: wgpu.ShaderStageFragment,
				Sampler: wgpu.SamplerBindingLayout{
					Type: wgpu.SamplerBindingTypeFiltering,
				},
			},
		},
	})
	if err != nil {
		return fmt.Errorf("failed to create material bind group layout: %w", err)
	}
	r.materialLayout = materialLayout

	cameraLayout, err := r.device.CreateBindGroupLayout(&wgpu.BindGroupLayoutDescriptor{
		Label: "Camera Bind Group Layout",
		Entries: []wgpu.BindGroupLayoutEntry{
			{
				Binding:    0,
				Visibility: wgpu.ShaderStageVertex,
				Buffer: wgpu.BufferBindingLayout{
					Type:           wgpu.BufferBindingTypeUniform,
					MinBindingSize: 64,
				},
			},
		},
	})
	if err != nil {
		return fmt.Errorf("failed to create camera bind group layout: %w", err)
	}
	r.cameraLayout = cameraLayout

	pipelineLayout, err := r.device.CreatePipelineLayout(&wgpu.PipelineLayoutDescriptor{
		Label:            "Instanced Pipeline Layout",
		BindGroupLayouts: []*wgpu.BindGroupLayout{materialLayout, cameraLayout},
	})
	if err != nil {
		return fmt.Errorf("failed to create pipeline layout: %w", err)
	}
	defer pipelineLayout.Release()

	created, err := r.device.CreateRenderPipeline(&wgpu.RenderPipelineDescriptor{
		Label:  "Instanced Render Pipeline",
		Layout: pipelineLayout,
		Vertex: wgpu.VertexState{
			Module:     shaderModule,
			EntryPoint: "vs_main",
			Buffers: []wgpu.VertexBufferLayout{
				model.VertexBufferLayout(),
				instance.VertexBufferLayout(),
			},
		},
		Fragment: &wgpu.FragmentState{
			Module:     shaderModule,
			EntryPoint: "fs_main",
			Targets: []wgpu.ColorTargetState{
				{
					Format:    *r.surfaceFormat,
					Blend:     &wgpu.BlendStateReplace,
					WriteMask: wgpu.ColorWriteMaskAll,
				},
			},
		},
		Primitive: wgpu.PrimitiveState{
			Topology:  wgpu.PrimitiveTopologyTriangleList,
			FrontFace: wgpu.FrontFaceCCW,
			CullMode:  wgpu.CullModeBack,
		},
		Multisample: wgpu.MultisampleState{
			Count: 1,
			Mask:  0xFFFFFFFF,
		},
		DepthStencil: &wgpu.DepthStencilState{
			Format:            wgpu.TextureFormatDepth24Plus,
			DepthWriteEnabled: true,
			DepthCompare:      wgpu.CompareFunctionLess,
			StencilFront: wgpu.StencilFaceState{
				Compare: wgpu.CompareFunctionAlways,
			},
			StencilBack: wgpu.StencilFaceState{
				Compare: wgpu.CompareFunctionAlways,
			},
		},
	})
	if err != nil {
		return fmt.Errorf("failed to create render pipeline: %w", err)
	}
	r.renderPipeline = created

	return nil
}

func (r *renderer) InitModel(m model.Model) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.materialLayout == nil {
		return errors.New("pipeline must be registered before model initialization")
	}

	mesh := m.MeshProvider()
	if len(m.VertexData()) > 0 {
		buf, err := r.device.CreateBuffer(&wgpu.BufferDescriptor{
			Label: mesh.Label() + " Vertex Buffer",
			Size:  uint64(len(m.VertexData())),
			Usage: wgpu.BufferUsageVertex | wgpu.BufferUsageCopyDst,
		})
		if err != nil {
			return fmt.Errorf("failed to create vertex buffer: %w", err)
		}
		r.queue.WriteBuffer(buf, 0, m.VertexData())
		mesh.SetVertexBuffer(buf)
	}

	if len(m.IndexData()) > 0 {
		buf, err := r.device.CreateBuffer(&wgpu.BufferDescriptor{
			Label: mesh.Label() + " Index Buffer",
			Size:  uint64(len(m.IndexData())),
			Usage: wgpu.BufferUsageIndex | wgpu.BufferUsageCopyDst,
		})
		if err != nil {
			return fmt.Errorf("failed to create index buffer: %w", err)
		}
		r.queue.WriteBuffer(buf, 0, m.IndexData())
		mesh.SetIndexBuffer(buf)
	}
	mesh.SetIndexCount(m.IndexCount())

	material := m.MaterialProvider()
	if staging := m.TextureStaging(); staging != nil {
		if err := r.initTextureViewLocked(material, 0, *staging); err != nil {
			return err
		}
	}
	if staging := m.SamplerStaging(); staging != nil {
		if err := r.initSamplerLocked(material, 1, *staging); err != nil {
			return err
		}
	}

	if material.TextureView(0) == nil || material.Sampler(1) == nil {
		return errors.New("model has no diffuse texture or sampler to bind")
	}

	bindGroup, err := r.device.CreateBindGroup(&wgpu.BindGroupDescriptor{
		Label:  material.Label() + " Bind Group",
		Layout: r.materialLayout,
		Entries: []wgpu.BindGroupEntry{
			{Binding: 0, TextureView: material.TextureView(0)},
			{Binding: 1, Sampler: material.Sampler(1)},
		},
	})
	if err != nil {
		return fmt.Errorf("failed to create material bind group: %w", err)
	}
	material.SetBindGroup(bindGroup)
	material.SetBindGroupLayout(r.materialLayout)

	m.ClearStaging()
	return nil
}

// initTextureViewLocked creates a texture from staging data and stores its
// view on the provider. Caller must hold the mutex.
func (r *renderer) initTextureViewLocked(provider bgp.BindGroupProvider, bindingKey int, stagingData common.TextureStagingData) error {
	tex, err := r.device.CreateTexture(&wgpu.TextureDescriptor{
		Label:     provider.Label() + " Texture",
		Usage:     wgpu.TextureUsageTextureBinding | wgpu.TextureUsageCopyDst,
		Dimension: wgpu.TextureDimension2D,
		Size: wgpu.Extent3D{
			Width:              stagingData.Width,
			Height:             stagingData.Height,
			DepthOrArrayLayers: 1,
		},
		Format:        wgpu.TextureFormatRGBA8UnormSrgb,
		MipLevelCount: 1,
		SampleCount:   1,
	})
	if err != nil {
		return fmt.Errorf("failed to create texture: %w", err)
	}

	r.queue.WriteTexture(
		&wgpu.ImageCopyTexture{
			Texture:  tex,
			MipLevel: 0,
			Origin:   wgpu.Origin3D{},
			Aspect:   wgpu.TextureAspectAll,
		},
		stagingData.Pixels,
		&wgpu.TextureDataLayout{
			Offset:       0,
			BytesPerRow:  stagingData.Width * 4,
			RowsPerImage: stagingData.Height,
		},
		&wgpu.Extent3D{
			Width:              stagingData.Width,
			Height:             stagingData.Height,
			DepthOrArrayLayers: 1,
		},
	)

	view, err := tex.CreateView(nil)
	if err != nil {
		return fmt.Errorf("failed to create texture view: %w", err)
	}
	provider.SetTextureView(bindingKey, view)

	return nil
}

// initSamplerLocked creates a sampler from staging data and stores it on the
// provider. Caller must hold the mutex.
func (r *renderer) initSamplerLocked(provider bgp.BindGroupProvider, bindingKey int, samplerStagingData common.SamplerStagingData) error {
	samp, err := r.device.CreateSampler(&wgpu.SamplerDescriptor{
		Label:         provider.Label() + " Sampler",
		AddressModeU:  common.Coalesce(samplerStagingData.AddressModeU, wgpu.AddressModeClampToEdge),
		AddressModeV:  common.Coalesce(samplerStagingData.AddressModeV, wgpu.AddressModeClampToEdge),
		AddressModeW:  common.Coalesce(samplerStagingData.AddressModeW, wgpu.AddressModeClampToEdge),
		MagFilter:     common.Coalesce(samplerStagingData.MagFilter, wgpu.FilterModeLinear),
		MinFilter:     common.Coalesce(samplerStagingData.MinFilter, wgpu.FilterModeNearest),
		MipmapFilter:  common.Coalesce(samplerStagingData.MipmapFilter, wgpu.MipmapFilterModeNearest),
		LodMinClamp:   common.Coalesce(samplerStagingData.LodMinClamp, 0.0),
		LodMaxClamp:   common.Coalesce(samplerStagingData.LodMaxClamp, 32.0),
		MaxAnisotropy: common.Coalesce(samplerStagingData.MaxAnisotropy, 1),
	})
	if err != nil {
		return fmt.Errorf("failed to create sampler: %w", err)
	}
	provider.SetSampler(bindingKey, samp)

	return nil
}

func (r *renderer) InitCameraProvider(provider bgp.BindGroupProvider) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.cameraLayout == nil {
		return errors.New("pipeline must be registered before camera initialization")
	}

	buf := provider.Buffer(0)
	if buf == nil {
		var err error
		buf, err = r.device.CreateBuffer(&wgpu.BufferDescriptor{
			Label: provider.Label() + " Uniform Buffer",
			Size:  64,
			Usage: wgpu.BufferUsageUniform | wgpu.BufferUsageCopyDst,
		})
		if err != nil {
			return fmt.Errorf("failed to create camera uniform buffer: %w", err)
		}
		provider.SetBuffer(0, buf)
	}

	bindGroup, err := r.device.CreateBindGroup(&wgpu.BindGroupDescriptor{
		Label:  provider.Label() + " Bind Group",
		Layout: r.cameraLayout,
		Entries: []wgpu.BindGroupEntry{
			{Binding: 0, Buffer: buf, Offset: 0, Size: wgpu.WholeSize},
		},
	})
	if err != nil {
		return fmt.Errorf("failed to create camera bind group: %w", err)
	}
	provider.SetBindGroup(bindGroup)
	provider.SetBindGroupLayout(r.cameraLayout)

	return nil
}

func (r *renderer) WriteBuffers(writes []bgp.BufferWrite) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, w := range writes {
		buf := w.Provider.Buffer(w.Binding)
		if buf == nil {
			continue
		}
		r.queue.WriteBuffer(buf, w.Offset, w.Data)
	}
}

func (r *renderer) BeginFrame() error {
	r.mu.Lock()
	defer r.mu.Unlock()

	// Avoid acquiring a second surface image while the previous frame's is
	// still held; wgpu-native rejects overlapping acquisitions.
	if r.frameSurface != nil {
		return fmt.Errorf("previous frame surface not yet presented")
	}

	surfaceTexture, err := r.surface.GetCurrentTexture()
	if err != nil {
		return fmt.Errorf("%w: %s", ErrSurfaceOutdated, err)
	}

	view, err := surfaceTexture.CreateView(nil)
	if err != nil {
		surfaceTexture.Release()
		return fmt.Errorf("%w: %s", ErrSurfaceOutdated, err)
	}

	encoder, err := r.device.CreateCommandEncoder(nil)
	if err != nil {
		view.Release()
		surfaceTexture.Release()
		return fmt.Errorf("failed to create command encoder: %w", err)
	}

	r.renderPassDescriptor.ColorAttachments[0].View = view
	pass := encoder.BeginRenderPass(r.renderPassDescriptor)

	r.frameEncoder = encoder
	r.framePass = pass
	r.frameSurface = surfaceTexture
	r.frameView = view

	return nil
}

func (r *renderer) DrawInstances(reg instance.Registry, cameraProvider bgp.BindGroupProvider) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.framePass == nil {
		return errors.New("DrawInstances called outside BeginFrame/EndFrame")
	}
	if reg.Len() == 0 {
		return nil
	}

	m := reg.Model()
	if m == nil {
		return errors.New("registry has no model attached")
	}
	mesh := m.MeshProvider()
	if mesh.VertexBuffer() == nil || mesh.IndexBuffer() == nil {
		return fmt.Errorf("model %q was not initialized by this renderer", m.Name())
	}

	mirror, ok := reg.Mirror().(*wgpuMirror)
	if !ok {
		return errors.New("registry mirror was not allocated by this renderer")
	}

	r.framePass.SetPipeline(r.renderPipeline)
	r.framePass.SetBindGroup(0, m.MaterialProvider().BindGroup(), nil)
	r.framePass.SetBindGroup(1, cameraProvider.BindGroup(), nil)
	r.framePass.SetVertexBuffer(0, mesh.VertexBuffer(), 0, wgpu.WholeSize)
	r.framePass.SetVertexBuffer(1, mirror.buffer, 0, wgpu.WholeSize)
	r.framePass.SetIndexBuffer(mesh.IndexBuffer(), wgpu.IndexFormatUint16, 0, wgpu.WholeSize)
	r.framePass.DrawIndexed(uint32(m.IndexCount()), uint32(reg.Len()), 0, 0, 0)

	return nil
}

func (r *renderer) EndFrame() {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.framePass == nil {
		return
	}
	r.framePass.End()

	commandBuffer, err := r.frameEncoder.Finish(nil)
	if err != nil {
		r.frameEncoder.Release()
		r.frameView.Release()
		r.frameSurface.Release()
		r.frameEncoder = nil
		r.framePass = nil
		r.frameSurface = nil
		r.frameView = nil
		return
	}

	r.queue.Submit(commandBuffer)

	commandBuffer.Release()
	r.frameEncoder.Release()
	r.frameEncoder = nil
	r.framePass = nil
}

func (r *renderer) Present() {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.frameSurface == nil {
		return
	}

	r.surface.Present()

	if r.frameView != nil {
		r.frameView.Release()
		r.frameView = nil
	}
	r.frameSurface.Release()
	r.frameSurface = nil
}

func (r *renderer) Release() {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.depthTextureView != nil {
		r.depthTextureView.Release()
		r.depthTextureView = nil
	}
	if r.depthTexture != nil {
		r.depthTexture.Release()
		r.depthTexture = nil
	}
	if r.renderPipeline != nil {
		r.renderPipeline.Release()
		r.renderPipeline = nil
	}
	if r.device != nil {
		r.device.Release()
		r.device = nil
	}
}

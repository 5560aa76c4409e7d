package camera

import (
	"github.com/veldt-engine/veldt/common"
)

// Projection is a strategy for mapping view space to clip space. A camera
// owns exactly one Projection; swapping strategies swaps the camera's
// mapping without touching view state.
type Projection interface {
	// Matrix returns the current 4x4 projection matrix as 16 floats (column-major).
	//
	// Returns:
	//   - [16]float32: the projection matrix
	Matrix() [16]float32

	// Resize adapts the projection to a new surface size. Called by the
	// camera on every window resize, before the next frame renders.
	//
	// Parameters:
	//   - width: the new surface width in pixels
	//   - height: the new surface height in pixels
	Resize(width, height float32)
}

// perspective is the implementation of a perspective Projection.
type perspective struct {
	fovY   float32
	aspect float32
	near   float32
	far    float32
}

var _ Projection = &perspective{}

// NewPerspective creates a perspective projection with a vertical field of
// view in radians. Resize recomputes the aspect ratio from the new size.
//
// Parameters:
//   - fovY: vertical field of view in radians
//   - aspect: initial aspect ratio (width / height)
//   - near: near clipping plane distance
//   - far: far clipping plane distance
//
// Returns:
//   - Projection: the perspective projection
func NewPerspective(fovY, aspect, near, far float32) Projection {
	return &perspective{
		fovY:   fovY,
		aspect: aspect,
		near:   near,
		far:    far,
	}
}

func (p *perspective) Matrix() [16]float32 {
	var m [16]float32
	common.Perspective(m[:], p.fovY, p.aspect, p.near, p.far)
	return m
}

func (p *perspective) Resize(width, height float32) {
	p.aspect = width / height
}

// orthographic is the implementation of an orthographic Projection.
type orthographic struct {
	left, right float32
	bottom, top float32
	near, far   float32
}

var _ Projection = &orthographic{}

// NewOrthographic creates an orthographic projection over an explicit view
// volume. Resize pins the origin: the right and top planes track the new
// surface size while left and bottom stay where construction put them.
//
// Parameters:
//   - left, right: horizontal extent of the view volume
//   - bottom, top: vertical extent of the view volume
//   - near, far: depth extent of the view volume
//
// Returns:
//   - Projection: the orthographic projection
func NewOrthographic(left, right, bottom, top, near, far float32) Projection {
	return &orthographic{
		left:   left,
		right:  right,
		bottom: bottom,
		top:    top,
		near:   near,
		far:    far,
	}
}

func (o *orthographic) Matrix() [16]float32 {
	var m [16]float32
	common.Orthographic(m[:], o.left, o.right, o.bottom, o.top, o.near, o.far)
	return m
}

func (o *orthographic) Resize(width, height float32) {
	o.right = width
	o.top = height
}

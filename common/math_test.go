package common

import (
	"testing"

	"github.com/chewxy/math32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const epsilon = 1e-5

func assertVecNear(t *testing.T, want, got Vec3) {
	t.Helper()
	assert.InDelta(t, want.X, got.X, epsilon)
	assert.InDelta(t, want.Y, got.Y, epsilon)
	assert.InDelta(t, want.Z, got.Z, epsilon)
}

// transformPoint applies a column-major 4x4 matrix to a point (w=1) and
// performs the perspective divide.
func transformPoint(m []float32, v Vec3) Vec3 {
	x := m[0]*v.X + m[4]*v.Y + m[8]*v.Z + m[12]
	y := m[1]*v.X + m[5]*v.Y + m[9]*v.Z + m[13]
	z := m[2]*v.X + m[6]*v.Y + m[10]*v.Z + m[14]
	w := m[3]*v.X + m[7]*v.Y + m[11]*v.Z + m[15]
	if w != 0 && w != 1 {
		return Vec3{x / w, y / w, z / w}
	}
	return Vec3{x, y, z}
}

func TestIdentity(t *testing.T) {
	m := make([]float32, 16)
	for i := range m {
		m[i] = float32(i)
	}
	Identity(m)

	for i, v := range m {
		if i == 0 || i == 5 || i == 10 || i == 15 {
			assert.Equal(t, float32(1), v, "diagonal element %d", i)
		} else {
			assert.Equal(t, float32(0), v, "off-diagonal element %d", i)
		}
	}
}

func TestMul4Identity(t *testing.T) {
	id := make([]float32, 16)
	Identity(id)

	m := []float32{
		1, 2, 3, 4,
		5, 6, 7, 8,
		9, 10, 11, 12,
		13, 14, 15, 16,
	}
	out := make([]float32, 16)

	Mul4(out, id, m)
	assert.Equal(t, m, out)

	Mul4(out, m, id)
	assert.Equal(t, m, out)
}

func TestMul4Aliasing(t *testing.T) {
	a := make([]float32, 16)
	Identity(a)
	a[12] = 5 // translation in x

	b := make([]float32, 16)
	Identity(b)
	b[13] = 3 // translation in y

	// out aliases a; translation components must compose, not corrupt.
	Mul4(a, a, b)
	assert.InDelta(t, float32(5), a[12], epsilon)
	assert.InDelta(t, float32(3), a[13], epsilon)
}

func TestPerspectiveMapsDepthRange(t *testing.T) {
	m := make([]float32, 16)
	Perspective(m, math32.Pi/2, 1.0, 1.0, 100.0)

	near := transformPoint(m, Vec3{0, 0, -1})
	assert.InDelta(t, float32(0), near.Z, epsilon, "near plane maps to depth 0")

	far := transformPoint(m, Vec3{0, 0, -100})
	assert.InDelta(t, float32(1), far.Z, epsilon, "far plane maps to depth 1")
}

func TestOrthographicMapsCorners(t *testing.T) {
	m := make([]float32, 16)
	Orthographic(m, 0, 800, 0, 600, 0, 10)

	origin := transformPoint(m, Vec3{0, 0, 0})
	assertVecNear(t, Vec3{-1, -1, 0}, origin)

	corner := transformPoint(m, Vec3{800, 600, -10})
	assertVecNear(t, Vec3{1, 1, 1}, corner)
}

func TestLookAtMatrixTransformsTargetToViewAxis(t *testing.T) {
	m := make([]float32, 16)
	eye := Vec3{0, 0, 10}
	target := Vec3{}
	LookAtMatrix(m, eye, target, Vec3{0, 1, 0})

	// The target lies on the view-space -Z axis at the eye distance.
	viewTarget := transformPoint(m, target)
	assertVecNear(t, Vec3{0, 0, -10}, viewTarget)

	// The eye maps to the view-space origin.
	viewEye := transformPoint(m, eye)
	assertVecNear(t, Vec3{}, viewEye)
}

func TestSliceToBytes(t *testing.T) {
	data := []float32{1.0, 2.0}
	b := SliceToBytes(data)
	require.Len(t, b, 8)

	assert.Nil(t, SliceToBytes([]float32(nil)))
}

func TestVec3Operations(t *testing.T) {
	v := Vec3{3, 4, 0}
	assert.InDelta(t, float32(5), v.Len(), epsilon)
	assertVecNear(t, Vec3{0.6, 0.8, 0}, v.Normalized())

	a := Vec3{1, 0, 0}
	b := Vec3{0, 1, 0}
	assertVecNear(t, Vec3{0, 0, 1}, a.Cross(b))
	assert.InDelta(t, float32(0), a.Dot(b), epsilon)

	assertVecNear(t, Vec3{1, 1, 0}, a.Add(b))
	assertVecNear(t, Vec3{1, -1, 0}, a.Sub(b))
	assertVecNear(t, Vec3{2, 0, 0}, a.Scale(2))
}

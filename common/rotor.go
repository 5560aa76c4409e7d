package common

import "github.com/chewxy/math32"

// Rotor3 represents a rotation in 3D space as a geometric-algebra rotor:
// a scalar part plus a bivector part (xy, xz, yz planes). A unit rotor is
// the quaternion-equivalent rotation representation used for instance
// transforms and camera orbiting.
type Rotor3 struct {
	S  float32 // scalar part
	XY float32 // bivector xy component
	XZ float32 // bivector xz component
	YZ float32 // bivector yz component
}

// RotorIdentity returns the identity rotation.
func RotorIdentity() Rotor3 {
	return Rotor3{S: 1}
}

// RotorFromAnglePlane creates a rotor rotating by angle radians within the
// plane described by the unit bivector (xy, xz, yz).
//
// Parameters:
//   - angle: rotation angle in radians
//   - xy, xz, yz: unit bivector components of the rotation plane
//
// Returns:
//   - Rotor3: the rotor encoding the rotation
func RotorFromAnglePlane(angle, xy, xz, yz float32) Rotor3 {
	half := angle / 2
	sin := -math32.Sin(half)
	return Rotor3{
		S:  math32.Cos(half),
		XY: sin * xy,
		XZ: sin * xz,
		YZ: sin * yz,
	}
}

// RotorFromRotationXZ creates a rotor rotating by angle radians in the xz
// plane (a yaw around the world Y axis).
func RotorFromRotationXZ(angle float32) Rotor3 {
	return RotorFromAnglePlane(angle, 0, 1, 0)
}

// RotorFromEuler creates a rotor from yaw (about Y), pitch (about X), and
// roll (about Z) angles in radians, applied in that order.
func RotorFromEuler(yaw, pitch, roll float32) Rotor3 {
	y := RotorFromAnglePlane(yaw, 0, 1, 0)
	p := RotorFromAnglePlane(pitch, 0, 0, 1)
	r := RotorFromAnglePlane(roll, 1, 0, 0)
	return y.Mul(p).Mul(r)
}

// RotorBetween creates the rotor carrying unit vector from onto unit vector
// to along the shortest arc. Antiparallel inputs are a caller contract
// violation (the rotation plane is ambiguous).
//
// Parameters:
//   - from: unit start direction
//   - to: unit end direction
//
// Returns:
//   - Rotor3: the normalized rotor rotating from into to
func RotorBetween(from, to Vec3) Rotor3 {
	return Rotor3{
		S:  1 + to.Dot(from),
		XY: from.X*to.Y - from.Y*to.X,
		XZ: from.X*to.Z - from.Z*to.X,
		YZ: from.Y*to.Z - from.Z*to.Y,
	}.Normalized()
}

// Mul composes two rotors via the geometric product. The result applies o
// first, then r.
func (r Rotor3) Mul(o Rotor3) Rotor3 {
	return Rotor3{
		S:  r.S*o.S - r.XY*o.XY - r.XZ*o.XZ - r.YZ*o.YZ,
		XY: r.XY*o.S + r.S*o.XY + r.YZ*o.XZ - r.XZ*o.YZ,
		XZ: r.XZ*o.S + r.S*o.XZ - r.YZ*o.XY + r.XY*o.YZ,
		YZ: r.YZ*o.S + r.S*o.YZ + r.XZ*o.XY - r.XY*o.XZ,
	}
}

// Normalized returns the rotor scaled to unit magnitude.
func (r Rotor3) Normalized() Rotor3 {
	mag := math32.Sqrt(r.S*r.S + r.XY*r.XY + r.XZ*r.XZ + r.YZ*r.YZ)
	if mag == 0 {
		return r
	}
	inv := 1.0 / mag
	return Rotor3{S: r.S * inv, XY: r.XY * inv, XZ: r.XZ * inv, YZ: r.YZ * inv}
}

// Rotate applies the rotation encoded by r to vector v.
func (r Rotor3) Rotate(v Vec3) Vec3 {
	// Intermediate geometric product q = r * v (vector + trivector parts).
	fx := r.S*v.X + r.XY*v.Y + r.XZ*v.Z
	fy := r.S*v.Y - r.XY*v.X + r.YZ*v.Z
	fz := r.S*v.Z - r.XZ*v.X - r.YZ*v.Y
	fw := r.XY*v.Z - r.XZ*v.Y + r.YZ*v.X

	return Vec3{
		X: r.S*fx + r.XY*fy + r.XZ*fz + r.YZ*fw,
		Y: r.S*fy - r.XY*fx - r.XZ*fw + r.YZ*fz,
		Z: r.S*fz + r.XY*fw - r.XZ*fx - r.YZ*fy,
	}
}

// Matrix writes the 4x4 column-major rotation matrix equivalent of r into out.
//
// Parameters:
//   - out: destination slice (must be at least 16 elements)
func (r Rotor3) Matrix(out []float32) {
	x := r.Rotate(Vec3{X: 1})
	y := r.Rotate(Vec3{Y: 1})
	z := r.Rotate(Vec3{Z: 1})

	out[0], out[1], out[2], out[3] = x.X, x.Y, x.Z, 0
	out[4], out[5], out[6], out[7] = y.X, y.Y, y.Z, 0
	out[8], out[9], out[10], out[11] = z.X, z.Y, z.Z, 0
	out[12], out[13], out[14], out[15] = 0, 0, 0, 1
}

package camera

import (
	"github.com/veldt-engine/veldt/common"
)

// LookAt is the camera's view state: an eye position watching a target with
// an up reference. It is a plain value type; the owning camera serializes
// access. Degenerate states (eye == target, zero up) are caller contract
// violations and are not guarded.
type LookAt struct {
	Eye    common.Vec3
	Target common.Vec3
	Up     common.Vec3
}

// NewLookAt creates a view with the given eye and target and a +Y up vector.
//
// Parameters:
//   - eye: the camera position
//   - target: the point the camera watches
//
// Returns:
//   - LookAt: the view state
func NewLookAt(eye, target common.Vec3) LookAt {
	return LookAt{
		Eye:    eye,
		Target: target,
		Up:     common.NewVec3(0, 1, 0),
	}
}

// MoveForward advances the eye toward the target by speed along the
// normalized view direction. The full step is always taken, even when the
// remaining distance is smaller than speed, so a large step can carry the
// eye past the target and flip the view direction. Negative speed retreats.
//
// Parameters:
//   - speed: the step length (negative to move away)
func (l *LookAt) MoveForward(speed float32) {
	forward := l.Target.Sub(l.Eye).Normalized()
	l.Eye = l.Eye.Add(forward.Scale(speed))
}

// RotateEye orbits the eye around the target by the given rotor.
//
// Parameters:
//   - r: the rotation to apply to the target-to-eye offset
func (l *LookAt) RotateEye(r common.Rotor3) {
	offset := l.Eye.Sub(l.Target)
	l.Eye = l.Target.Add(r.Rotate(offset))
}

// RotateTarget swings the target around the eye by the given rotor.
//
// Parameters:
//   - r: the rotation to apply to the eye-to-target offset
func (l *LookAt) RotateTarget(r common.Rotor3) {
	offset := l.Target.Sub(l.Eye)
	l.Target = l.Eye.Add(r.Rotate(offset))
}

// Distance returns the current eye-to-target distance.
//
// Returns:
//   - float32: the distance
func (l *LookAt) Distance() float32 {
	return l.Target.Sub(l.Eye).Len()
}

// ViewMatrix returns the 4x4 view matrix for this state (column-major).
//
// Returns:
//   - [16]float32: the view matrix
func (l *LookAt) ViewMatrix() [16]float32 {
	var m [16]float32
	common.LookAtMatrix(m[:], l.Eye, l.Target, l.Up)
	return m
}

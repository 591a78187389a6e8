package actor

import "github.com/go-gl/mathgl/mgl64"

// Transform represents a position, orientation and scale in 3D space
type Transform struct {
	Position mgl64.Vec3
	Rotation mgl64.Quat
	// Scale may be negative on any axis to mirror the body
	Scale mgl64.Vec3
}

// NewTransform creates an identity transform
func NewTransform() Transform {
	return Transform{
		Position: mgl64.Vec3{0, 0, 0},
		Rotation: mgl64.QuatIdent(),
		Scale:    mgl64.Vec3{1, 1, 1},
	}
}

// Orientation returns the normalized rotation, a zero quaternion reads as identity
func (t Transform) Orientation() mgl64.Quat {
	if t.Rotation.Len() < 1e-12 {
		return mgl64.QuatIdent()
	}

	return t.Rotation.Normalize()
}

func (t Transform) scale() mgl64.Vec3 {
	if t.Scale == (mgl64.Vec3{}) {
		return mgl64.Vec3{1, 1, 1}
	}

	return t.Scale
}

// Basis returns rotation * diag(scale), the linear part of the transform
func (t Transform) Basis() mgl64.Mat3 {
	return t.Orientation().Mat4().Mat3().Mul3(mgl64.Diag3(t.scale()))
}

// Apply maps a local point into world space
func (t Transform) Apply(local mgl64.Vec3) mgl64.Vec3 {
	return t.Basis().Mul3x1(local).Add(t.Position)
}

// IsMirrored reports whether the basis flips handedness (negative determinant).
// Triangle winding must be swapped for mirrored transforms to keep normals pointing outward.
func (t Transform) IsMirrored() bool {
	return t.Basis().Det() < 0
}

// IsAxisAligned reports whether the basis keeps the world axes, ignoring scale
func (t Transform) IsAxisAligned() bool {
	q := t.Orientation()
	return q.V.LenSqr() < 1e-12
}

package sat

import (
	"math"

	"github.com/akmonengine/ballast/actor"
	"github.com/go-gl/mathgl/mgl64"
)

// OBB represents an Oriented Bounding Box
type OBB struct {
	Center      mgl64.Vec3    // World-space center
	HalfExtents mgl64.Vec3    // Half-extents along local axes
	Axes        [3]mgl64.Vec3 // Local X, Y, Z axes (rotated)
}

// NewOBB creates an OBB from a center, local half-extents and a basis (rotation * scale).
// Scale folds into the half-extents so the axes stay unit length, mirrored axes included.
func NewOBB(center, halfExtents mgl64.Vec3, basis mgl64.Mat3) OBB {
	obb := OBB{Center: center}
	for i := 0; i < 3; i++ {
		column := basis.Col(i)
		length := column.Len()
		if length < 1e-12 {
			obb.Axes[i] = unitAxis(i)
			continue
		}

		obb.Axes[i] = column.Mul(1 / length)
		obb.HalfExtents[i] = math.Abs(halfExtents[i]) * length
	}

	return obb
}

// NewOBBFromAABB creates an axis-aligned OBB
func NewOBBFromAABB(box actor.AABB) OBB {
	return OBB{
		Center:      box.Center(),
		HalfExtents: box.HalfExtents(),
		Axes:        [3]mgl64.Vec3{unitAxis(0), unitAxis(1), unitAxis(2)},
	}
}

func unitAxis(i int) mgl64.Vec3 {
	var axis mgl64.Vec3
	axis[i] = 1
	return axis
}

// project returns the radius of the box projected on axis
func (o OBB) project(axis mgl64.Vec3) float64 {
	return o.HalfExtents[0]*math.Abs(o.Axes[0].Dot(axis)) +
		o.HalfExtents[1]*math.Abs(o.Axes[1].Dot(axis)) +
		o.HalfExtents[2]*math.Abs(o.Axes[2].Dot(axis))
}

// Resolve returns the minimum translation vector to push o out of other.
// It tests the 3 face normals of each box and the 9 edge cross products; ok is false on any separating axis.
func (o OBB) Resolve(other OBB) (mgl64.Vec3, bool) {
	t := other.Center.Sub(o.Center)
	minPenetration := math.Inf(1)
	var mtv mgl64.Vec3
	separated := false

	testAxis := func(axis mgl64.Vec3) {
		if separated {
			return
		}
		length := axis.Len()
		if length < 1e-4 {
			// parallel edges
			return
		}
		axis = axis.Mul(1 / length)

		dist := t.Dot(axis)
		penetration := o.project(axis) + other.project(axis) - math.Abs(dist)
		if penetration <= 0 {
			separated = true
			return
		}

		if penetration < minPenetration {
			minPenetration = penetration
			// push away from other
			if dist < 0 {
				mtv = axis.Mul(penetration)
			} else {
				mtv = axis.Mul(-penetration)
			}
		}
	}

	for i := 0; i < 3; i++ {
		testAxis(o.Axes[i])
	}
	for i := 0; i < 3; i++ {
		testAxis(other.Axes[i])
	}
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			testAxis(o.Axes[i].Cross(other.Axes[j]))
		}
	}

	if separated {
		return mgl64.Vec3{}, false
	}

	return mtv, true
}

// AABBOBB returns the minimum translation pushing box out of obb
func AABBOBB(box actor.AABB, obb OBB) (mgl64.Vec3, bool) {
	return NewOBBFromAABB(box).Resolve(obb)
}

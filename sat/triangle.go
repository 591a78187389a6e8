package sat

import (
	"math"

	"github.com/akmonengine/ballast/actor"
	"github.com/go-gl/mathgl/mgl64"
)

const (
	// DefaultTriangleMargin is the outward shift applied to triangles along their normal
	DefaultTriangleMargin = 0.01

	axisTolerance = 1e-5
	degenerateSqr = 1e-12
)

// AABBTriangle tests box against the triangle (v0, v1, v2) for a body moving along moveDir.
// Triangles are one-sided: a body moving the same way as the counter-clockwise normal passes through.
// The returned correction pushes the box out along the triangle normal.
func AABBTriangle(box actor.AABB, v0, v1, v2, moveDir mgl64.Vec3, margin float64) (mgl64.Vec3, bool) {
	normal := v1.Sub(v0).Cross(v2.Sub(v0))
	if normal.LenSqr() < degenerateSqr {
		return mgl64.Vec3{}, false
	}
	normal = normal.Normalize()

	if normal.Dot(moveDir) > 0 {
		return mgl64.Vec3{}, false
	}

	// cardinal axes against the shifted triangle
	shift := normal.Mul(margin)
	s0, s1, s2 := v0.Add(shift), v1.Add(shift), v2.Add(shift)
	for axis := 0; axis < 3; axis++ {
		triMin := math.Min(s0[axis], math.Min(s1[axis], s2[axis]))
		triMax := math.Max(s0[axis], math.Max(s1[axis], s2[axis]))

		if triMax < box.Min[axis]-axisTolerance || triMin > box.Max[axis]+axisTolerance {
			return mgl64.Vec3{}, false
		}
	}

	// triangle plane against the box corners
	minDistance := math.Inf(1)
	maxDistance := math.Inf(-1)
	for _, corner := range box.Corners() {
		d := normal.Dot(corner.Sub(v0))
		minDistance = math.Min(minDistance, d)
		maxDistance = math.Max(maxDistance, d)
	}

	if minDistance >= 0 || maxDistance <= 0 {
		return mgl64.Vec3{}, false
	}

	return normal.Mul(math.Abs(minDistance)), true
}

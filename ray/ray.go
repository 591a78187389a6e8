// Package ray implements closed-form ray intersection against boxes and triangle meshes.
// Distances are parameters along Ray.Direction; with a unit direction they are world distances.
package ray

import (
	"math"

	"github.com/akmonengine/ballast/actor"
	"github.com/go-gl/mathgl/mgl64"
)

const (
	parallelEpsilon = 1e-12
	hitEpsilon      = 1e-9
)

type Ray struct {
	Origin    mgl64.Vec3
	Direction mgl64.Vec3
}

// IntersectAABB returns the entry distance of r into box, or the exit distance when the origin is inside
func IntersectAABB(r Ray, box actor.AABB) (float64, bool) {
	tmin := math.Inf(-1)
	tmax := math.Inf(1)

	for axis := 0; axis < 3; axis++ {
		if math.Abs(r.Direction[axis]) < parallelEpsilon {
			if r.Origin[axis] < box.Min[axis] || r.Origin[axis] > box.Max[axis] {
				return 0, false
			}
			continue
		}

		t1 := (box.Min[axis] - r.Origin[axis]) / r.Direction[axis]
		t2 := (box.Max[axis] - r.Origin[axis]) / r.Direction[axis]
		if t1 > t2 {
			t1, t2 = t2, t1
		}
		tmin = math.Max(tmin, t1)
		tmax = math.Min(tmax, t2)

		if tmin > tmax {
			return 0, false
		}
	}

	if tmax < 0 {
		return 0, false
	}

	if tmin < 0 {
		return tmax, true
	}

	return tmin, true
}

var unitBox = actor.AABB{Min: mgl64.Vec3{-1, -1, -1}, Max: mgl64.Vec3{1, 1, 1}}

// IntersectBox intersects r with a box of halfExtents placed by transform.
// The ray is moved into the box frame, where the box is the canonical [-1, 1] cube.
func IntersectBox(r Ray, halfExtents mgl64.Vec3, transform actor.Transform) (float64, bool) {
	local := transform.Basis().Mul3(mgl64.Diag3(halfExtents))
	if math.Abs(local.Det()) < parallelEpsilon {
		return 0, false
	}
	inverse := local.Inv()

	return IntersectAABB(Ray{
		Origin:    inverse.Mul3x1(r.Origin.Sub(transform.Position)),
		Direction: inverse.Mul3x1(r.Direction),
	}, unitBox)
}

// IntersectTriangle is the two-sided Möller–Trumbore test
func IntersectTriangle(r Ray, v0, v1, v2 mgl64.Vec3) (float64, bool) {
	edge1 := v1.Sub(v0)
	edge2 := v2.Sub(v0)

	p := r.Direction.Cross(edge2)
	det := edge1.Dot(p)
	if math.Abs(det) < parallelEpsilon {
		return 0, false
	}
	invDet := 1 / det

	s := r.Origin.Sub(v0)
	u := s.Dot(p) * invDet
	if u < 0 || u > 1 {
		return 0, false
	}

	q := s.Cross(edge1)
	v := r.Direction.Dot(q) * invDet
	if v < 0 || u+v > 1 {
		return 0, false
	}

	t := edge2.Dot(q) * invDet
	if t < hitEpsilon {
		return 0, false
	}

	return t, true
}

// IntersectMesh returns the nearest triangle hit of r against mesh placed by transform.
// The ray is moved into mesh-local space so vertices are never transformed.
func IntersectMesh(r Ray, mesh *actor.MeshData, transform actor.Transform) (float64, bool) {
	if mesh == nil || mesh.TriangleCount() == 0 {
		return 0, false
	}

	basis := transform.Basis()
	if math.Abs(basis.Det()) < parallelEpsilon {
		return 0, false
	}
	inverse := basis.Inv()
	local := Ray{
		Origin:    inverse.Mul3x1(r.Origin.Sub(transform.Position)),
		Direction: inverse.Mul3x1(r.Direction),
	}

	if _, ok := IntersectAABB(local, mesh.Bounds); !ok {
		return 0, false
	}

	nearest := math.Inf(1)
	for i := 0; i < mesh.TriangleCount(); i++ {
		a, b, c, ok := mesh.Triangle(i)
		if !ok {
			continue
		}

		if t, hit := IntersectTriangle(local, a, b, c); hit && t < nearest {
			nearest = t
		}
	}

	if math.IsInf(nearest, 1) {
		return 0, false
	}

	return nearest, true
}

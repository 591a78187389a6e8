package ballast

import (
	"math"

	"github.com/akmonengine/ballast/actor"
	"github.com/akmonengine/ballast/ray"
)

// RayIntersect returns the nearest registered body hit by r whose RayMask shares a bit with mask,
// and the distance along the normalized direction. A miss returns nil and +Inf.
func (w *World) RayIntersect(r ray.Ray, mask uint32) (*actor.Body, float64) {
	r.Direction = direction(r.Direction)
	if r.Direction.LenSqr() == 0 {
		return nil, math.Inf(1)
	}

	var closest *actor.Body
	closestDistance := math.Inf(1)
	for _, body := range w.bodies {
		if body.RayMask&mask == 0 {
			continue
		}

		if distance, ok := intersectBody(r, body); ok && distance < closestDistance {
			closest = body
			closestDistance = distance
		}
	}

	return closest, closestDistance
}

func intersectBody(r ray.Ray, body *actor.Body) (float64, bool) {
	switch shape := body.Shape.(type) {
	case *actor.Box:
		if body.Transform.IsAxisAligned() {
			return ray.IntersectAABB(r, body.Bounds())
		}
		return ray.IntersectBox(r, shape.HalfExtents, body.Transform)
	case *actor.Mesh:
		return ray.IntersectMesh(r, shape.Data, body.Transform)
	}

	return 0, false
}

package ballast

import (
	"github.com/akmonengine/ballast/actor"
	"github.com/akmonengine/ballast/sat"
	"github.com/go-gl/mathgl/mgl64"
)

// canCollide reports whether body may be tested against other. Either filter vetoes the test.
func canCollide(body, other *actor.Body) bool {
	if body == other {
		return false
	}
	if body.Filter != nil && !body.Filter(body, other) {
		return false
	}
	if other.Filter != nil && !other.Filter(other, body) {
		return false
	}

	return true
}

// collide tests body, taken as its world AABB at position, against other.
// moveDir only matters for meshes, whose triangles are one-sided.
func (w *World) collide(body *actor.Body, position, moveDir mgl64.Vec3, other *actor.Body) (mgl64.Vec3, bool) {
	box := body.BoundsAt(position)
	var combiner sat.Combiner

	switch shape := other.Shape.(type) {
	case *actor.Box:
		if !box.Overlaps(other.Bounds()) {
			return mgl64.Vec3{}, false
		}
		if other.Transform.IsAxisAligned() {
			combiner.Add(sat.AABBCorrection(box, other.Bounds()))
		} else {
			obb := sat.NewOBB(other.Transform.Position, shape.HalfExtents, other.Transform.Basis())
			combiner.Add(sat.AABBOBB(box, obb))
		}
	case *actor.Mesh:
		combiner.Add(sat.AABBMesh(box, shape.Data, other.Transform, other.FlipWinding, moveDir, w.tick.TriangleMargin))
	}

	return combiner.Result()
}

// firstCollision returns the first registered body blocking body at position
func (w *World) firstCollision(body *actor.Body, position, moveDir mgl64.Vec3, mode resolveMode) (*actor.Body, mgl64.Vec3, bool) {
	for _, other := range w.bodies {
		if !canCollide(body, other) {
			continue
		}
		if mode == resolveCarrier && carries(body, other) {
			continue
		}

		if correction, ok := w.collide(body, position, moveDir, other); ok {
			return other, correction, true
		}
	}

	return nil, mgl64.Vec3{}, false
}

func carries(carrier, body *actor.Body) bool {
	for _, carried := range carrier.Carried {
		if carried == body {
			return true
		}
	}

	return false
}

package sat

import (
	"github.com/akmonengine/ballast/actor"
	"github.com/go-gl/mathgl/mgl64"
)

// AABBMesh tests box against every triangle of mesh placed by transform and returns the shallowest correction.
// flip swaps the winding of each triangle, which mirrored transforms need to keep normals outward.
// Triangles with out-of-range indices are skipped.
func AABBMesh(box actor.AABB, mesh *actor.MeshData, transform actor.Transform, flip bool, moveDir mgl64.Vec3, margin float64) (mgl64.Vec3, bool) {
	if mesh == nil || len(mesh.Vertices) == 0 {
		return mgl64.Vec3{}, false
	}

	if !mesh.Bounds.Transformed(transform).Expand(margin).Overlaps(box) {
		return mgl64.Vec3{}, false
	}

	basis := transform.Basis()
	var combiner Combiner
	for i := 0; i < mesh.TriangleCount(); i++ {
		a, b, c, ok := mesh.Triangle(i)
		if !ok {
			continue
		}

		a = basis.Mul3x1(a).Add(transform.Position)
		b = basis.Mul3x1(b).Add(transform.Position)
		c = basis.Mul3x1(c).Add(transform.Position)
		if flip {
			b, c = c, b
		}

		combiner.Add(AABBTriangle(box, a, b, c, moveDir, margin))
	}

	return combiner.Result()
}

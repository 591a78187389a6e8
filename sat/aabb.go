package sat

import (
	"math"

	"github.com/akmonengine/ballast/actor"
	"github.com/go-gl/mathgl/mgl64"
)

// AABBCorrection returns the minimum translation pushing a out of b.
// Touching boxes do not collide, so a body resting on another is left alone.
func AABBCorrection(a, b actor.AABB) (mgl64.Vec3, bool) {
	for axis := 0; axis < 3; axis++ {
		if a.Max[axis] <= b.Min[axis] || a.Min[axis] >= b.Max[axis] {
			return mgl64.Vec3{}, false
		}
	}

	var result mgl64.Vec3
	minPenetration := math.Inf(1)
	for axis := 0; axis < 3; axis++ {
		// push a toward +axis
		if d := b.Max[axis] - a.Min[axis]; d < minPenetration {
			minPenetration = d
			result = mgl64.Vec3{}
			result[axis] = d
		}
		// push a toward -axis
		if d := a.Max[axis] - b.Min[axis]; d < minPenetration {
			minPenetration = d
			result = mgl64.Vec3{}
			result[axis] = -d
		}
	}

	return result, true
}

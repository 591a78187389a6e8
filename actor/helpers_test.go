package actor

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// vecNear compares component-wise with an absolute tolerance
func vecNear(a, b mgl64.Vec3, tolerance float64) bool {
	for i := 0; i < 3; i++ {
		if math.Abs(a[i]-b[i]) > tolerance {
			return false
		}
	}
	return true
}

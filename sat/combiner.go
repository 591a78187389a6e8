package sat

import "github.com/go-gl/mathgl/mgl64"

// MinCorrectionSqr is the squared magnitude below which a correction is treated as degenerate
const MinCorrectionSqr = 1e-5

// Combiner keeps the shallowest valid correction out of a stream of candidates.
// The zero value is ready to use.
type Combiner struct {
	correction mgl64.Vec3
	lengthSqr  float64
	found      bool
}

// Add submits a candidate. Missing (ok == false) and degenerate candidates are dropped;
// on equal magnitudes the first submitted candidate is kept.
func (c *Combiner) Add(correction mgl64.Vec3, ok bool) {
	if !ok {
		return
	}

	lengthSqr := correction.LenSqr()
	if lengthSqr <= MinCorrectionSqr {
		return
	}

	if !c.found || lengthSqr < c.lengthSqr {
		c.correction = correction
		c.lengthSqr = lengthSqr
		c.found = true
	}
}

// Result returns the retained correction, ok is false when no candidate qualified
func (c *Combiner) Result() (mgl64.Vec3, bool) {
	return c.correction, c.found
}

func (c *Combiner) Reset() {
	*c = Combiner{}
}

package ballast

import (
	"github.com/akmonengine/ballast/actor"
	"github.com/go-gl/mathgl/mgl64"
)

// minGravitySqr is the squared effective gravity below which a body looks for no floor
const minGravitySqr = 1e-8

// findCarriers probes a short distance along each body's gravity. The first body hit is its floor:
// the pair counts as touching, and the floor becomes its carrier when both can carry.
func (w *World) findCarriers() {
	for _, body := range w.bodies {
		gravity := body.Gravity.Mul(w.tick.GravityMagnitude)
		if gravity.LenSqr() < minGravitySqr {
			continue
		}

		down := direction(gravity)
		probe := body.Transform.Position.Add(down.Mul(w.tick.CarryProbeDistance))
		floor := w.probeFloor(body, probe, down)
		if floor == nil {
			continue
		}
		// a resting pair only reports a correction every other tick
		w.Events.markActive(body.Handle(), floor.Handle())

		if !body.CanCarry || !floor.CanCarry {
			continue
		}

		body.Carrier = floor
		floor.Carried = append(floor.Carried, body)
	}
}

func (w *World) probeFloor(body *actor.Body, probe, down mgl64.Vec3) *actor.Body {
	for _, other := range w.bodies {
		if !canCollide(body, other) {
			continue
		}
		if _, hit := w.collide(body, probe, down, other); hit {
			return other
		}
	}

	return nil
}

// propagateCarry moves the carrier chain under body bottom up, then adds the carrier's actual
// displacement to the move of body, once per tick.
func (w *World) propagateCarry(body *actor.Body) {
	carrier := body.Carrier
	if carrier == nil || body.CopiedParentMove {
		return
	}
	body.CopiedParentMove = true

	w.propagateCarry(carrier)
	w.resolve(carrier, 0, resolveCarrier)

	if carrier.ActualMove.LenSqr() > 0 {
		body.AddMove(carrier.ActualMove)
		w.Events.emit(CarryEvent{Body: body.Handle(), Carrier: carrier.Handle(), Move: carrier.ActualMove})
	}
}

package ballast

import (
	"github.com/akmonengine/ballast/actor"
	"github.com/go-gl/mathgl/mgl64"
)

const (
	CONTACT EventType = iota
	COLLISION_ENTER
	COLLISION_STAY
	COLLISION_EXIT
	ON_PUSH
	ON_CARRY
	ON_DEPTH_LIMIT
)

type pairKey struct {
	bodyA actor.Handle
	bodyB actor.Handle
}

// makePairKey creates a normalized pair key with consistent ordering
func makePairKey(bodyA, bodyB actor.Handle) pairKey {
	if bodyB.Less(bodyA) {
		bodyA, bodyB = bodyB, bodyA
	}

	return pairKey{bodyA: bodyA, bodyB: bodyB}
}

type EventType uint8

// Event interface - all events implement this
type Event interface {
	Type() EventType
}

// ContactEvent is sent for every collision found while sweeping Body; Correction pushes Body out of Other
type ContactEvent struct {
	Body       actor.Handle
	Other      actor.Handle
	Correction mgl64.Vec3
}

func (e ContactEvent) Type() EventType { return CONTACT }

// Collision events, BodyA and BodyB are ordered by handle
type CollisionEnterEvent struct {
	BodyA actor.Handle
	BodyB actor.Handle
}

func (e CollisionEnterEvent) Type() EventType { return COLLISION_ENTER }

type CollisionStayEvent struct {
	BodyA actor.Handle
	BodyB actor.Handle
}

func (e CollisionStayEvent) Type() EventType { return COLLISION_STAY }

type CollisionExitEvent struct {
	BodyA actor.Handle
	BodyB actor.Handle
}

func (e CollisionExitEvent) Type() EventType { return COLLISION_EXIT }

// PushEvent is sent when Pusher displaces Pushed, Move is the requested push
type PushEvent struct {
	Pusher actor.Handle
	Pushed actor.Handle
	Move   mgl64.Vec3
}

func (e PushEvent) Type() EventType { return ON_PUSH }

// CarryEvent is sent when Body inherits the displacement Move of Carrier
type CarryEvent struct {
	Body    actor.Handle
	Carrier actor.Handle
	Move    mgl64.Vec3
}

func (e CarryEvent) Type() EventType { return ON_CARRY }

// DepthLimitEvent is sent when a push chain reaches Body beyond the recursion cap.
// The push is dropped; the event only makes the truncation observable.
type DepthLimitEvent struct {
	Body  actor.Handle
	Depth int
}

func (e DepthLimitEvent) Type() EventType { return ON_DEPTH_LIMIT }

// EventListener - callback for events
type EventListener func(event Event)

// Events manager. The zero value is ready to use.
type Events struct {
	// Listeners by event type
	listeners map[EventType][]EventListener

	// Event buffer to send at flush
	buffer []Event

	// Contact tracking for Enter/Stay/Exit detection
	previousActivePairs map[pairKey]bool
	currentActivePairs  map[pairKey]bool
}

func NewEvents() Events {
	return Events{
		listeners:           make(map[EventType][]EventListener),
		buffer:              make([]Event, 0, 256),
		previousActivePairs: make(map[pairKey]bool),
		currentActivePairs:  make(map[pairKey]bool),
	}
}

// Subscribe adds a listener for an event type
func (e *Events) Subscribe(eventType EventType, listener EventListener) {
	if e.listeners == nil {
		e.listeners = make(map[EventType][]EventListener)
	}
	e.listeners[eventType] = append(e.listeners[eventType], listener)
}

// recordContact buffers a contact and marks the pair active for this tick
func (e *Events) recordContact(body, other actor.Handle, correction mgl64.Vec3) {
	e.markActive(body, other)
	e.buffer = append(e.buffer, ContactEvent{Body: body, Other: other, Correction: correction})
}

// markActive keeps a pair touching this tick without reporting a contact
func (e *Events) markActive(body, other actor.Handle) {
	if e.currentActivePairs == nil {
		e.currentActivePairs = make(map[pairKey]bool)
	}
	e.currentActivePairs[makePairKey(body, other)] = true
}

func (e *Events) emit(event Event) {
	e.buffer = append(e.buffer, event)
}

// processCollisionEvents compares current and previous pairs to detect Enter/Stay/Exit
func (e *Events) processCollisionEvents() {
	for pair := range e.currentActivePairs {
		if e.previousActivePairs[pair] {
			e.buffer = append(e.buffer, CollisionStayEvent{BodyA: pair.bodyA, BodyB: pair.bodyB})
		} else {
			e.buffer = append(e.buffer, CollisionEnterEvent{BodyA: pair.bodyA, BodyB: pair.bodyB})
		}
	}

	for pair := range e.previousActivePairs {
		if !e.currentActivePairs[pair] {
			e.buffer = append(e.buffer, CollisionExitEvent{BodyA: pair.bodyA, BodyB: pair.bodyB})
		}
	}

	// Swap for next frame and clear current
	e.previousActivePairs, e.currentActivePairs = e.currentActivePairs, e.previousActivePairs
	if e.currentActivePairs == nil {
		e.currentActivePairs = make(map[pairKey]bool)
	}
	clear(e.currentActivePairs)
}

// flush sends all buffered events and clears the buffer
func (e *Events) flush() {
	e.processCollisionEvents()

	for _, event := range e.buffer {
		if listeners, ok := e.listeners[event.Type()]; ok {
			for _, listener := range listeners {
				listener(event)
			}
		}
	}
	e.buffer = e.buffer[:0]
}

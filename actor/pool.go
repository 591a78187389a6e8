package actor

import "fmt"

// Handle identifies a body inside a Pool. The generation makes handles of removed bodies stale
// instead of silently aliasing a newer body stored in the same slot.
type Handle struct {
	index      uint32
	generation uint32
}

// InvalidHandle never resolves to a body
var InvalidHandle = Handle{}

func (h Handle) IsValid() bool {
	return h.generation != 0
}

// Less orders handles by slot then generation
func (h Handle) Less(other Handle) bool {
	if h.index != other.index {
		return h.index < other.index
	}

	return h.generation < other.generation
}

func (h Handle) String() string {
	return fmt.Sprintf("body#%d.%d", h.index, h.generation)
}

type poolSlot struct {
	body       Body
	generation uint32
	alive      bool
}

// Pool stores bodies owned by the game layer. The world only keeps handles into it.
// Pointers returned by Get stay valid until the next Add, which may grow the storage.
type Pool struct {
	slots []poolSlot
	free  []uint32
	count int
}

func NewPool(capacity int) *Pool {
	return &Pool{slots: make([]poolSlot, 0, capacity)}
}

// Add stores a copy of body and returns its handle
func (p *Pool) Add(body Body) Handle {
	var index uint32
	if n := len(p.free); n > 0 {
		index = p.free[n-1]
		p.free = p.free[:n-1]
	} else {
		index = uint32(len(p.slots))
		p.slots = append(p.slots, poolSlot{})
	}

	slot := &p.slots[index]
	slot.generation++
	if slot.generation == 0 {
		// wrapped around, generation 0 is reserved for InvalidHandle
		slot.generation = 1
	}
	slot.alive = true

	h := Handle{index: index, generation: slot.generation}
	body.handle = h
	slot.body = body
	p.count++

	return h
}

// Get returns the body for h, or nil when h is stale or invalid
func (p *Pool) Get(h Handle) *Body {
	if !h.IsValid() || int(h.index) >= len(p.slots) {
		return nil
	}

	slot := &p.slots[h.index]
	if !slot.alive || slot.generation != h.generation {
		return nil
	}

	return &slot.body
}

// Remove deletes the body for h and reports whether it existed
func (p *Pool) Remove(h Handle) bool {
	if p.Get(h) == nil {
		return false
	}

	slot := &p.slots[h.index]
	slot.alive = false
	slot.body = Body{}
	p.free = append(p.free, h.index)
	p.count--

	return true
}

func (p *Pool) Len() int {
	return p.count
}

// Each calls fn for every live body in slot order
func (p *Pool) Each(fn func(h Handle, body *Body)) {
	for i := range p.slots {
		slot := &p.slots[i]
		if slot.alive {
			fn(slot.body.handle, &slot.body)
		}
	}
}

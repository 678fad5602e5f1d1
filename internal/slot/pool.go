// Package slot provides a fixed-capacity pool of reusable slots.
//
// A pool never grows, shrinks or reorders. Only the occupancy of each slot
// changes. Iteration always follows slot index, not the order in which slots
// were filled, so enumeration is stable across reloads and edits.
package slot

import (
	"fmt"
	"iter"
)

// Slot is one fixed position in a Pool.
type Slot[T any] struct {
	Index  int
	Active bool
	Data   T
}

// PreconditionError reports a caller passing an index the pool cannot hold.
// Pools panic with it; it is never returned.
type PreconditionError struct {
	Op    string
	Index int
	Cap   int
}

func (e *PreconditionError) Error() string {
	return fmt.Sprintf("slot: %s: index %d out of range [0,%d)", e.Op, e.Index, e.Cap)
}

// Pool is a fixed set of N slots. It is not safe for concurrent use.
type Pool[T any] struct {
	slots  []Slot[T]
	active int
}

// New creates a pool with the given capacity. Capacity must be positive.
func New[T any](capacity int) *Pool[T] {
	if capacity <= 0 {
		panic(fmt.Sprintf("slot: capacity must be positive, got %d", capacity))
	}
	slots := make([]Slot[T], capacity)
	for i := range slots {
		slots[i].Index = i
	}
	return &Pool[T]{slots: slots}
}

// Cap returns the fixed capacity of the pool.
func (p *Pool[T]) Cap() int {
	return len(p.slots)
}

// Len returns the number of active slots.
func (p *Pool[T]) Len() int {
	return p.active
}

// Allocate returns the lowest-index inactive slot without occupying it.
// It returns false when every slot is active.
//
// This is a linear scan; pools are small.
func (p *Pool[T]) Allocate() (int, bool) {
	for i := range p.slots {
		if !p.slots[i].Active {
			return i, true
		}
	}
	return -1, false
}

// Occupy stores v in slot i and marks it active. Overwriting an active slot
// replaces its data in place.
func (p *Pool[T]) Occupy(i int, v T) {
	p.check("occupy", i)
	if !p.slots[i].Active {
		p.active++
	}
	p.slots[i].Active = true
	p.slots[i].Data = v
}

// Release marks slot i inactive and drops its data. Releasing an inactive
// slot does nothing.
func (p *Pool[T]) Release(i int) {
	p.check("release", i)
	if p.slots[i].Active {
		p.active--
	}
	var zero T
	p.slots[i].Active = false
	p.slots[i].Data = zero
}

// Clear releases every slot.
func (p *Pool[T]) Clear() {
	for i := range p.slots {
		p.Release(i)
	}
}

// Get returns the data held in slot i and whether the slot is active.
func (p *Pool[T]) Get(i int) (T, bool) {
	p.check("get", i)
	s := p.slots[i]
	return s.Data, s.Active
}

// InRange reports whether i is a valid slot index.
func (p *Pool[T]) InRange(i int) bool {
	return i >= 0 && i < len(p.slots)
}

// AnyActive reports whether at least one slot is active.
func (p *Pool[T]) AnyActive() bool {
	return p.active > 0
}

// Active yields (index, data) for every active slot in ascending index order.
func (p *Pool[T]) Active() iter.Seq2[int, T] {
	return func(yield func(int, T) bool) {
		for _, s := range p.slots {
			if !s.Active {
				continue
			}
			if !yield(s.Index, s.Data) {
				return
			}
		}
	}
}

// ActiveSlots returns a copy of the active slots in ascending index order.
func (p *Pool[T]) ActiveSlots() []Slot[T] {
	out := make([]Slot[T], 0, p.active)
	for _, s := range p.slots {
		if s.Active {
			out = append(out, s)
		}
	}
	return out
}

// Values returns the data of the active slots in ascending index order.
func (p *Pool[T]) Values() []T {
	out := make([]T, 0, p.active)
	for _, v := range p.Active() {
		out = append(out, v)
	}
	return out
}

func (p *Pool[T]) check(op string, i int) {
	if !p.InRange(i) {
		panic(&PreconditionError{Op: op, Index: i, Cap: len(p.slots)})
	}
}

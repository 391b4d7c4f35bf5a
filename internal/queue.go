package internal

import "iter"

// Ring is a fixed capacity queue which overwrites its oldest element once full.
type Ring[T any] struct {
	items []T
	head  int
	size  int
}

// NewRing returns an empty Ring holding at most capacity elements. A capacity below one is raised to one.
func NewRing[T any](capacity int) *Ring[T] {
	return &Ring[T]{items: make([]T, max(capacity, 1))}
}

// Push appends item, dropping the oldest element if the ring is full.
func (r *Ring[T]) Push(item T) {
	r.items[(r.head+r.size)%len(r.items)] = item
	if r.size == len(r.items) {
		r.head = (r.head + 1) % len(r.items)
		return
	}
	r.size++
}

// Len returns the amount of elements currently held.
func (r *Ring[T]) Len() int {
	return r.size
}

// All iterates over the elements from oldest to newest.
func (r *Ring[T]) All() iter.Seq[T] {
	return func(yield func(T) bool) {
		for i := range r.size {
			if !yield(r.items[(r.head+i)%len(r.items)]) {
				return
			}
		}
	}
}

// Slice copies the elements from oldest to newest into a new slice.
func (r *Ring[T]) Slice() []T {
	out := make([]T, 0, r.size)
	for v := range r.All() {
		out = append(out, v)
	}
	return out
}

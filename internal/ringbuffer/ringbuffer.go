package ringbuffer

import "sync"

// Ring is a bounded FIFO of T. The zero value is not usable; use New.
type Ring[T any] struct {
	mutex sync.RWMutex
	items []T
	head  int
	count int
}

// New creates a ring that holds at most capacity elements.
// A capacity below 1 is treated as 1.
func New[T any](capacity int) *Ring[T] {
	if capacity < 1 {
		capacity = 1
	}

	return &Ring[T]{
		items: make([]T, capacity),
	}
}

// Append adds item at the end, evicting the oldest element when full.
func (r *Ring[T]) Append(item T) {
	r.mutex.Lock()
	defer r.mutex.Unlock()

	capacity := len(r.items)
	if r.count < capacity {
		r.items[(r.head+r.count)%capacity] = item
		r.count++
		return
	}

	r.items[r.head] = item
	r.head = (r.head + 1) % capacity
}

// Snapshot returns the current contents oldest first. The returned slice is a
// copy and is never longer than Cap.
func (r *Ring[T]) Snapshot() []T {
	r.mutex.RLock()
	defer r.mutex.RUnlock()

	out := make([]T, r.count)
	capacity := len(r.items)
	for i := 0; i < r.count; i++ {
		out[i] = r.items[(r.head+i)%capacity]
	}

	return out
}

// Len returns the number of stored elements.
func (r *Ring[T]) Len() int {
	r.mutex.RLock()
	defer r.mutex.RUnlock()
	return r.count
}

// Cap returns the fixed capacity.
func (r *Ring[T]) Cap() int {
	return len(r.items)
}

// Package broadcast is a small publish/subscribe registry.
//
// Listeners run in registration order on the publishing goroutine. A listener
// that panics is logged and skipped; the remaining listeners still receive
// the value.
package broadcast

import (
	"fmt"
	"log/slog"
	"sync"
)

type entry[T any] struct {
	id uint64
	fn func(T)
}

// Registry holds the listeners for values of type T
type Registry[T any] struct {
	mu      sync.Mutex
	nextID  uint64
	entries []entry[T]
	logger  *slog.Logger
	name    string
}

// New returns an empty registry. name identifies the registry in logs.
func New[T any](name string, logger *slog.Logger) *Registry[T] {
	if logger == nil {
		logger = slog.Default()
	}
	return &Registry[T]{name: name, logger: logger}
}

// Subscribe registers fn and returns a function that removes it.
// The returned function is safe to call more than once.
func (r *Registry[T]) Subscribe(fn func(T)) (unsubscribe func()) {
	r.mu.Lock()
	r.nextID++
	id := r.nextID
	r.entries = append(r.entries, entry[T]{id: id, fn: fn})
	r.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() { r.remove(id) })
	}
}

func (r *Registry[T]) remove(id uint64) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i, e := range r.entries {
		if e.id == id {
			r.entries = append(r.entries[:i:i], r.entries[i+1:]...)
			return
		}
	}
}

// Publish delivers v to a snapshot of the current listeners
func (r *Registry[T]) Publish(v T) {
	r.mu.Lock()
	snapshot := make([]entry[T], len(r.entries))
	copy(snapshot, r.entries)
	r.mu.Unlock()

	for _, e := range snapshot {
		r.Deliver(e.fn, v)
	}
}

// Deliver invokes a single listener with panic isolation
func (r *Registry[T]) Deliver(fn func(T), v T) {
	defer func() {
		if rec := recover(); rec != nil {
			r.logger.Error("listener panicked", "registry", r.name, "panic", fmt.Sprint(rec))
		}
	}()
	fn(v)
}

// Len returns the number of registered listeners
func (r *Registry[T]) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.entries)
}

// Clear removes every listener
func (r *Registry[T]) Clear() {
	r.mu.Lock()
	r.entries = nil
	r.mu.Unlock()
}

package orm

import "sync"

// Lazy holds a value that is fetched on first access. The loader runs at
// most once; its result, including an error, is remembered.
type Lazy[T any] struct {
	mu     sync.Mutex
	done   bool
	value  T
	err    error
	loadFn func() (T, error)
}

// LazyFn defers loading to fn.
func LazyFn[T any](fn func() (T, error)) *Lazy[T] {
	return &Lazy[T]{loadFn: fn}
}

// LazyValue wraps an already-known value.
func LazyValue[T any](v T) *Lazy[T] {
	return &Lazy[T]{done: true, value: v}
}

// Get returns the value, loading it if needed.
func (l *Lazy[T]) Get() (T, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if !l.done {
		if l.loadFn != nil {
			l.value, l.err = l.loadFn()
		}
		l.done = true
		l.loadFn = nil
	}
	return l.value, l.err
}

// Loaded reports whether Get has already resolved the value.
func (l *Lazy[T]) Loaded() bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.done
}

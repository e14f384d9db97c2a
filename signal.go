package glwindow

// Signal is a reactive value. Listeners are invoked synchronously, in
// subscription order, whenever the value is set; a Set call returns only
// after the change has fully propagated to all dependents. Signals are
// single-threaded like the rest of the event machinery and must only be
// touched from the thread that drives the event loop.
type Signal[T any] struct {
	value     T
	eq        func(a, b T) bool
	listeners []*listener[T]
}

type listener[T any] struct {
	fn func(T)
}

func NewSignal[T any](initial T) *Signal[T] {
	return &Signal[T]{value: initial}
}

// NewDistinct returns a signal that drops repeated values: setting a value
// equal to the current one does not notify listeners.
func NewDistinct[T comparable](initial T) *Signal[T] {
	return &Signal[T]{
		value: initial,
		eq:    func(a, b T) bool { return a == b },
	}
}

// NewDistinctFunc is NewDistinct for types without built-in equality.
func NewDistinctFunc[T any](initial T, eq func(a, b T) bool) *Signal[T] {
	return &Signal[T]{value: initial, eq: eq}
}

func (s *Signal[T]) Value() T {
	return s.value
}

func (s *Signal[T]) Set(v T) {
	if s.eq != nil && s.eq(s.value, v) {
		return
	}
	s.value = v
	// Iterate over a snapshot so listeners may unsubscribe during
	// propagation without skipping anyone.
	for _, l := range s.listeners {
		l.fn(v)
	}
}

// Subscribe registers fn and returns a function that removes it again.
func (s *Signal[T]) Subscribe(fn func(T)) func() {
	l := &listener[T]{fn: fn}
	s.listeners = append(s.listeners, l)
	return func() {
		for i, x := range s.listeners {
			if x == l {
				s.listeners = append(s.listeners[:i:i], s.listeners[i+1:]...)
				return
			}
		}
	}
}

// Map derives a signal that eagerly recomputes f whenever src changes.
func Map[A, B any](src *Signal[A], f func(A) B) *Signal[B] {
	out := NewSignal(f(src.Value()))
	src.Subscribe(func(v A) {
		out.Set(f(v))
	})
	return out
}

func Map2[A, B, C any](a *Signal[A], b *Signal[B], f func(A, B) C) *Signal[C] {
	out := NewSignal(f(a.Value(), b.Value()))
	recompute := func() {
		out.Set(f(a.Value(), b.Value()))
	}
	a.Subscribe(func(A) { recompute() })
	b.Subscribe(func(B) { recompute() })
	return out
}

func Map3[A, B, C, D any](a *Signal[A], b *Signal[B], c *Signal[C], f func(A, B, C) D) *Signal[D] {
	out := NewSignal(f(a.Value(), b.Value(), c.Value()))
	recompute := func() {
		out.Set(f(a.Value(), b.Value(), c.Value()))
	}
	a.Subscribe(func(A) { recompute() })
	b.Subscribe(func(B) { recompute() })
	c.Subscribe(func(C) { recompute() })
	return out
}

// DropRepeats derives a signal that forwards src but swallows consecutive
// equal values.
func DropRepeats[T comparable](src *Signal[T]) *Signal[T] {
	out := NewDistinct(src.Value())
	src.Subscribe(out.Set)
	return out
}

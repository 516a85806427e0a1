package reactive

import (
	"reflect"
	"slices"
	"sync"
	"sync/atomic"
)

var lastID atomic.Uint64

func nextID() uint64 {
	return lastID.Add(1)
}

// Listener is anything that can be notified when a signal changes.
type Listener interface {
	// MarkDirty notifies the listener that one of its sources changed.
	MarkDirty()

	// ID returns a unique identifier used for deduplication.
	ID() uint64
}

// Signal is a reactive value container. Changing the value notifies every
// subscribed listener once per effective change.
type Signal[T any] struct {
	id uint64

	value T
	mu    sync.RWMutex

	subs  []Listener
	subMu sync.RWMutex

	// equal decides whether a Set is a change. nil uses defaultEquals.
	equal func(T, T) bool
}

// NewSignal creates a signal with no owner. Use UseSignal to tie a signal to
// a component instance.
func NewSignal[T any](initial T) *Signal[T] {
	return &Signal[T]{
		id:    nextID(),
		value: initial,
	}
}

func (s *Signal[T]) ID() uint64 {
	return s.id
}

// Get returns the current value.
func (s *Signal[T]) Get() T {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.value
}

// Set updates the value and notifies subscribers if it changed.
func (s *Signal[T]) Set(value T) {
	s.Update(func(T) T { return value })
}

// Update atomically replaces the value with fn(current) and notifies
// subscribers if the result differs.
func (s *Signal[T]) Update(fn func(T) T) {
	s.mu.Lock()
	old := s.value
	next := fn(old)
	changed := !s.equals(old, next)
	if changed {
		s.value = next
	}
	s.mu.Unlock()

	if changed {
		s.notify()
	}
}

// WithEquals configures a custom equality function.
func (s *Signal[T]) WithEquals(fn func(T, T) bool) *Signal[T] {
	s.equal = fn
	return s
}

// Subscribe registers l for change notifications. A listener with the same
// ID is registered once.
func (s *Signal[T]) Subscribe(l Listener) {
	if l == nil {
		return
	}
	s.subMu.Lock()
	defer s.subMu.Unlock()
	if !slices.ContainsFunc(s.subs, sameListener(l)) {
		s.subs = append(s.subs, l)
	}
}

// Unsubscribe removes l from the subscribers.
func (s *Signal[T]) Unsubscribe(l Listener) {
	if l == nil {
		return
	}
	s.subMu.Lock()
	defer s.subMu.Unlock()
	s.subs = slices.DeleteFunc(s.subs, sameListener(l))
}

func sameListener(l Listener) func(Listener) bool {
	id := l.ID()
	return func(other Listener) bool { return other.ID() == id }
}

// notify works on a snapshot, so listeners may (un)subscribe while notified.
func (s *Signal[T]) notify() {
	s.subMu.RLock()
	subs := slices.Clone(s.subs)
	s.subMu.RUnlock()

	for _, l := range subs {
		l.MarkDirty()
	}
}

func (s *Signal[T]) equals(a, b T) bool {
	if s.equal != nil {
		return s.equal(a, b)
	}
	return defaultEquals(a, b)
}

// defaultEquals compares comparable non-interface types with == and falls
// back to reflect.DeepEqual.
func defaultEquals[T any](a, b T) bool {
	if t := reflect.TypeFor[T](); t.Kind() != reflect.Interface && t.Comparable() {
		return any(a) == any(b)
	}
	return reflect.DeepEqual(a, b)
}

// BoolSignal wraps Signal[bool] with boolean helpers.
type BoolSignal struct {
	*Signal[bool]
}

// NewBoolSignal creates an unowned BoolSignal.
func NewBoolSignal(initial bool) *BoolSignal {
	return &BoolSignal{NewSignal(initial)}
}

// Toggle inverts the value. It always produces a change.
func (s *BoolSignal) Toggle() {
	s.Update(func(b bool) bool { return !b })
}

// SetTrue sets the value to true.
func (s *BoolSignal) SetTrue() {
	s.Set(true)
}

// SetFalse sets the value to false.
func (s *BoolSignal) SetFalse() {
	s.Set(false)
}

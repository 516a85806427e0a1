package reactive

import (
	"sync"
	"sync/atomic"
)

// Owner is the scope of one mounted component instance. It owns the
// instance's signals, re-invokes render subscribers when any of them change,
// and disposes child owners with itself.
type Owner struct {
	id     uint64
	parent *Owner

	children   []*Owner
	childrenMu sync.Mutex

	cleanups   []func()
	cleanupsMu sync.Mutex

	subs   map[uint64]func()
	subSeq uint64
	subsMu sync.Mutex

	// batchDepth > 0 defers notifications until the outermost Batch returns.
	batchDepth int
	pending    bool
	batchMu    sync.Mutex

	renders  atomic.Uint64
	disposed atomic.Bool
}

// NewOwner creates an owner. A non-nil parent disposes the new owner when it
// is itself disposed.
func NewOwner(parent *Owner) *Owner {
	o := &Owner{
		id:     nextID(),
		parent: parent,
		subs:   make(map[uint64]func()),
	}
	if parent != nil {
		parent.addChild(o)
	}
	return o
}

// ID implements Listener.
func (o *Owner) ID() uint64 {
	return o.id
}

// Parent returns the parent owner, or nil for a root owner.
func (o *Owner) Parent() *Owner {
	return o.parent
}

// IsDisposed reports whether Dispose has run.
func (o *Owner) IsDisposed() bool {
	return o.disposed.Load()
}

// Renders returns how many times the owner has notified its subscribers.
func (o *Owner) Renders() uint64 {
	return o.renders.Load()
}

// Subscribe registers fn to run after every change to a signal owned by o.
// The returned function removes the subscription.
func (o *Owner) Subscribe(fn func()) (unsubscribe func()) {
	o.subsMu.Lock()
	o.subSeq++
	key := o.subSeq
	o.subs[key] = fn
	o.subsMu.Unlock()

	return func() {
		o.subsMu.Lock()
		delete(o.subs, key)
		o.subsMu.Unlock()
	}
}

// MarkDirty implements Listener. Outside a batch it notifies subscribers
// immediately; inside one it records that a notification is owed.
func (o *Owner) MarkDirty() {
	if o.disposed.Load() {
		return
	}

	o.batchMu.Lock()
	if o.batchDepth > 0 {
		o.pending = true
		o.batchMu.Unlock()
		return
	}
	o.batchMu.Unlock()

	o.notify()
}

func (o *Owner) notify() {
	o.subsMu.Lock()
	fns := make([]func(), 0, len(o.subs))
	for i := uint64(1); i <= o.subSeq; i++ {
		if fn, ok := o.subs[i]; ok {
			fns = append(fns, fn)
		}
	}
	o.subsMu.Unlock()

	o.renders.Add(1)
	for _, fn := range fns {
		fn()
	}
}

// Batch runs fn and coalesces every change it makes into one notification.
// Batches nest; only the outermost one notifies.
func (o *Owner) Batch(fn func()) {
	o.batchMu.Lock()
	o.batchDepth++
	o.batchMu.Unlock()

	defer func() {
		o.batchMu.Lock()
		o.batchDepth--
		flush := o.batchDepth == 0 && o.pending
		if flush {
			o.pending = false
		}
		o.batchMu.Unlock()

		if flush && !o.disposed.Load() {
			o.notify()
		}
	}()

	fn()
}

// OnCleanup registers fn to run when the owner is disposed. On an already
// disposed owner fn runs immediately.
func (o *Owner) OnCleanup(fn func()) {
	if o.disposed.Load() {
		fn()
		return
	}
	o.cleanupsMu.Lock()
	defer o.cleanupsMu.Unlock()
	o.cleanups = append(o.cleanups, fn)
}

// Dispose disposes children first, then runs cleanups in reverse
// registration order and drops all subscribers. It is idempotent.
func (o *Owner) Dispose() {
	if !o.disposed.CompareAndSwap(false, true) {
		return
	}

	o.childrenMu.Lock()
	children := append([]*Owner(nil), o.children...)
	o.children = nil
	o.childrenMu.Unlock()
	for _, child := range children {
		child.Dispose()
	}

	o.cleanupsMu.Lock()
	cleanups := o.cleanups
	o.cleanups = nil
	o.cleanupsMu.Unlock()
	for i := len(cleanups) - 1; i >= 0; i-- {
		cleanups[i]()
	}

	o.subsMu.Lock()
	o.subs = make(map[uint64]func())
	o.subsMu.Unlock()

	if o.parent != nil {
		o.parent.removeChild(o)
	}
}

func (o *Owner) addChild(child *Owner) {
	o.childrenMu.Lock()
	defer o.childrenMu.Unlock()
	o.children = append(o.children, child)
}

func (o *Owner) removeChild(child *Owner) {
	o.childrenMu.Lock()
	defer o.childrenMu.Unlock()
	for i, c := range o.children {
		if c == child {
			o.children = append(o.children[:i], o.children[i+1:]...)
			return
		}
	}
}

// UseSignal creates a signal owned by o: every change re-renders o.
func UseSignal[T any](o *Owner, initial T) *Signal[T] {
	s := NewSignal(initial)
	if o != nil {
		s.Subscribe(o)
		o.OnCleanup(func() { s.Unsubscribe(o) })
	}
	return s
}

// UseBool creates a BoolSignal owned by o.
func UseBool(o *Owner, initial bool) *BoolSignal {
	return &BoolSignal{UseSignal(o, initial)}
}

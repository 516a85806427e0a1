package reactive

import (
	"sync"
	"sync/atomic"
	"testing"
)

type testListener struct {
	id    uint64
	dirty atomic.Int64
}

func newTestListener() *testListener {
	return &testListener{id: nextID()}
}

func (l *testListener) MarkDirty() { l.dirty.Add(1) }
func (l *testListener) ID() uint64 { return l.id }

func TestSignalBasic(t *testing.T) {
	count := NewSignal(0)

	if count.Get() != 0 {
		t.Errorf("expected initial value 0, got %d", count.Get())
	}

	count.Set(5)
	if count.Get() != 5 {
		t.Errorf("expected value 5, got %d", count.Get())
	}

	count.Update(func(n int) int { return n * 2 })
	if count.Get() != 10 {
		t.Errorf("expected value 10, got %d", count.Get())
	}
}

func TestSignalSubscription(t *testing.T) {
	count := NewSignal(0)
	listener := newTestListener()
	count.Subscribe(listener)
	count.Subscribe(listener)

	count.Set(1)
	if got := listener.dirty.Load(); got != 1 {
		t.Errorf("expected 1 notification, got %d", got)
	}

	count.Set(1)
	if got := listener.dirty.Load(); got != 1 {
		t.Errorf("same value should not notify, got %d", got)
	}

	count.Unsubscribe(listener)
	count.Set(2)
	if got := listener.dirty.Load(); got != 1 {
		t.Errorf("unsubscribed listener notified, got %d", got)
	}
}

func TestSignalCustomEquals(t *testing.T) {
	type pair struct{ a, b int }
	s := NewSignal(pair{1, 2}).WithEquals(func(x, y pair) bool { return x.a == y.a })
	l := newTestListener()
	s.Subscribe(l)

	s.Set(pair{1, 99})
	if l.dirty.Load() != 0 {
		t.Error("custom equality should suppress notification")
	}
	s.Set(pair{2, 2})
	if l.dirty.Load() != 1 {
		t.Error("custom equality should allow notification")
	}
}

func TestSignalSliceEquality(t *testing.T) {
	s := NewSignal([]string{"a"})
	l := newTestListener()
	s.Subscribe(l)

	s.Set([]string{"a"})
	if l.dirty.Load() != 0 {
		t.Error("deep-equal slice should not notify")
	}
	s.Set([]string{"a", "b"})
	if l.dirty.Load() != 1 {
		t.Error("different slice should notify")
	}
}

func TestBoolSignalToggle(t *testing.T) {
	tests := []struct {
		name    string
		initial bool
	}{
		{"from closed", false},
		{"from open", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := NewBoolSignal(tt.initial)
			l := newTestListener()
			b.Subscribe(l)

			b.Toggle()
			if b.Get() == tt.initial {
				t.Error("Toggle should change the value")
			}
			b.Toggle()
			if b.Get() != tt.initial {
				t.Error("two toggles should restore the value")
			}
			if got := l.dirty.Load(); got != 2 {
				t.Errorf("notifications = %d, want 2", got)
			}
		})
	}

	b := NewBoolSignal(false)
	b.SetTrue()
	if !b.Get() {
		t.Error("SetTrue failed")
	}
	b.SetFalse()
	if b.Get() {
		t.Error("SetFalse failed")
	}
}

func TestOwnerRerendersOnOwnedSignal(t *testing.T) {
	owner := NewOwner(nil)
	open := UseBool(owner, false)

	renders := 0
	unsubscribe := owner.Subscribe(func() { renders++ })

	open.Toggle()
	if renders != 1 {
		t.Fatalf("renders = %d, want 1", renders)
	}
	if owner.Renders() != 1 {
		t.Errorf("Renders() = %d, want 1", owner.Renders())
	}

	unsubscribe()
	open.Toggle()
	if renders != 1 {
		t.Errorf("unsubscribed render ran, renders = %d", renders)
	}
}

func TestOwnerSubscribersRunInOrder(t *testing.T) {
	owner := NewOwner(nil)
	sig := UseSignal(owner, "x")

	var order []int
	owner.Subscribe(func() { order = append(order, 1) })
	owner.Subscribe(func() { order = append(order, 2) })
	owner.Subscribe(func() { order = append(order, 3) })

	sig.Set("y")
	if len(order) != 3 || order[0] != 1 || order[1] != 2 || order[2] != 3 {
		t.Errorf("order = %v, want [1 2 3]", order)
	}
}

func TestOwnerBatch(t *testing.T) {
	owner := NewOwner(nil)
	a := UseSignal(owner, 0)
	b := UseBool(owner, false)

	renders := 0
	owner.Subscribe(func() { renders++ })

	owner.Batch(func() {
		a.Set(1)
		owner.Batch(func() {
			b.Toggle()
			a.Set(2)
		})
		if renders != 0 {
			t.Errorf("nested batch flushed early, renders = %d", renders)
		}
	})
	if renders != 1 {
		t.Errorf("renders = %d, want 1", renders)
	}

	owner.Batch(func() {})
	if renders != 1 {
		t.Errorf("empty batch should not render, renders = %d", renders)
	}
}

func TestOwnerDispose(t *testing.T) {
	root := NewOwner(nil)
	child := NewOwner(root)
	open := UseBool(child, false)

	var order []string
	child.OnCleanup(func() { order = append(order, "child") })
	root.OnCleanup(func() { order = append(order, "root-1") })
	root.OnCleanup(func() { order = append(order, "root-2") })

	renders := 0
	child.Subscribe(func() { renders++ })

	root.Dispose()
	root.Dispose()

	if !child.IsDisposed() || !root.IsDisposed() {
		t.Fatal("owners should be disposed")
	}
	want := []string{"child", "root-2", "root-1"}
	if len(order) != len(want) {
		t.Fatalf("cleanups = %v, want %v", order, want)
	}
	for i := range want {
		if order[i] != want[i] {
			t.Errorf("cleanup[%d] = %s, want %s", i, order[i], want[i])
		}
	}

	open.Toggle()
	if renders != 0 {
		t.Errorf("disposed owner rendered %d times", renders)
	}

	ran := false
	child.OnCleanup(func() { ran = true })
	if !ran {
		t.Error("OnCleanup on disposed owner should run immediately")
	}
	if child.Parent() != root {
		t.Error("Parent() should be preserved")
	}
}

func TestSignalConcurrentReads(t *testing.T) {
	owner := NewOwner(nil)
	open := UseBool(owner, false)

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				_ = open.Get()
			}
		}()
	}
	for j := 0; j < 100; j++ {
		open.Toggle()
	}
	wg.Wait()

	if open.Get() {
		t.Error("even number of toggles should leave the value false")
	}
}

package vtest

import (
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/vango-dev/dropdown/pkg/reactive"
	"github.com/vango-dev/dropdown/pkg/render"
	"github.com/vango-dev/dropdown/pkg/vdom"
)

// Common errors for event dispatch.
var (
	ErrElementNotFound = errors.New("no element matches")
	ErrHandlerNotFound = errors.New("element has no handler for event")
	ErrBadHandler      = errors.New("handler has an unsupported signature")
	ErrUnmounted       = errors.New("component is unmounted")
)

// Mounted is a component rendered under a reactive owner. It keeps the tree
// and HTML of the latest render, and the handlers that render registered.
type Mounted struct {
	tb    testing.TB
	comp  vdom.Component
	owner *reactive.Owner
	r     *render.Renderer
	unsub func()

	tree    *vdom.VNode
	html    string
	renders int
	err     error
	done    bool
}

// Mount renders comp once and subscribes to owner so that later signal
// changes re-render it. A nil owner mounts a static component. The mount is
// torn down with the test.
func Mount(tb testing.TB, comp vdom.Component, owner *reactive.Owner) *Mounted {
	tb.Helper()
	m := &Mounted{
		tb:    tb,
		comp:  comp,
		owner: owner,
		r:     render.NewRenderer(render.RendererConfig{}),
	}
	m.rerender()
	if m.err != nil {
		tb.Fatalf("vtest: initial render: %v", m.err)
	}
	if owner != nil {
		m.unsub = owner.Subscribe(m.rerender)
	}
	tb.Cleanup(m.Unmount)
	return m
}

func (m *Mounted) rerender() {
	if m.done {
		return
	}
	m.r.Reset()
	tree := m.comp.Render()
	html, err := m.r.RenderToString(tree)
	m.tree, m.html, m.err = tree, html, err
	m.renders++
}

// Unmount stops re-rendering. It does not dispose the owner.
func (m *Mounted) Unmount() {
	if m.done {
		return
	}
	m.done = true
	if m.unsub != nil {
		m.unsub()
	}
}

// HTML returns the markup of the latest render.
func (m *Mounted) HTML() string {
	return m.html
}

// Tree returns the tree of the latest render, with HIDs assigned.
func (m *Mounted) Tree() *vdom.VNode {
	return m.tree
}

// Renders returns how many times the component has been rendered.
func (m *Mounted) Renders() int {
	return m.renders
}

// Err returns the error of the latest render, if any.
func (m *Mounted) Err() error {
	return m.err
}

// Find returns the first element of the latest render matching pred.
func (m *Mounted) Find(pred func(*vdom.VNode) bool) *vdom.VNode {
	return vdom.Find(m.tree, pred)
}

// FindAll returns every element of the latest render matching pred.
func (m *Mounted) FindAll(pred func(*vdom.VNode) bool) []*vdom.VNode {
	return vdom.FindAll(m.tree, pred)
}

// Fire dispatches event ("click") to the element with the given HID, exactly
// as a live host would after receiving it from the client.
func (m *Mounted) Fire(hid, event, payload string) error {
	if m.done {
		return ErrUnmounted
	}
	h, ok := m.r.Handler(hid, "on"+event)
	if !ok {
		return fmt.Errorf("%w: %s on %s", ErrHandlerNotFound, event, hid)
	}
	if !vdom.Invoke(h, payload) {
		return fmt.Errorf("%w: %T", ErrBadHandler, h)
	}
	return nil
}

// Click fires a click on the element with the given HID.
func (m *Mounted) Click(hid string) error {
	return m.Fire(hid, "click", "")
}

// ClickWhere clicks the first element matching pred.
func (m *Mounted) ClickWhere(pred func(*vdom.VNode) bool) error {
	n := m.Find(pred)
	if n == nil {
		return ErrElementNotFound
	}
	if n.HID == "" {
		return fmt.Errorf("%w: click on <%s>", ErrHandlerNotFound, n.Tag)
	}
	return m.Click(n.HID)
}

// ClickData clicks the first element whose data-<key> equals value.
func (m *Mounted) ClickData(key, value string) error {
	if err := m.ClickWhere(vdom.ByData(key, value)); err != nil {
		return fmt.Errorf("click data-%s=%q: %w", key, value, err)
	}
	return nil
}

// ExpectContains asserts that the latest render contains expected.
func (m *Mounted) ExpectContains(expected string) {
	m.tb.Helper()
	if !strings.Contains(m.html, expected) {
		m.tb.Errorf("missing %q in:\n%s", expected, truncate(m.html, excerpt))
	}
}

// ExpectNotContains asserts that the latest render does not contain unexpected.
func (m *Mounted) ExpectNotContains(unexpected string) {
	m.tb.Helper()
	if strings.Contains(m.html, unexpected) {
		m.tb.Errorf("unexpected %q in:\n%s", unexpected, truncate(m.html, excerpt))
	}
}

// ExpectCount asserts how many elements of the latest render match pred.
func (m *Mounted) ExpectCount(pred func(*vdom.VNode) bool, want int) {
	m.tb.Helper()
	if got := len(m.FindAll(pred)); got != want {
		m.tb.Errorf("expected %d matching elements, got %d in:\n%s", want, got, truncate(m.html, excerpt))
	}
}

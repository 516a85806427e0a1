// Package vtest provides testing helpers for widgets built on pkg/vdom.
//
// Mount renders a component the way a live host does: hydration IDs are
// assigned, handlers are collected, and every change to a signal owned by
// the component's owner re-renders it.
//
// # Quick Start
//
//	func TestToggle(t *testing.T) {
//	    d := dropdown.New(nil, dropdown.Props{Options: opts})
//	    m := vtest.Mount(t, d, d.Owner())
//
//	    if err := m.ClickData("part", "trigger"); err != nil {
//	        t.Fatal(err)
//	    }
//	    m.ExpectContains(`data-part="menu"`)
//	}
//
// # Render Assertions
//
// The package-level helpers assert on a single static render:
//
//	vtest.ExpectContains(t, d.Render(), "Apple")
//	vtest.ExpectNotContains(t, d.Render(), "dropdown__menu")
//	vtest.ExpectAttribute(t, d.Render(), "aria-expanded", "false")
package vtest

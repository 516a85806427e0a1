package vdom

import "strings"

// VKind tells element, text, fragment, component and raw nodes apart.
type VKind uint8

const (
	KindElement VKind = iota
	KindText
	KindFragment
	KindComponent
	KindRaw
)

var kindNames = [...]string{
	KindElement:   "Element",
	KindText:      "Text",
	KindFragment:  "Fragment",
	KindComponent: "Component",
	KindRaw:       "Raw",
}

func (k VKind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return "Unknown"
}

// VNode is one node of a widget tree. Which fields matter depends on Kind:
// elements use Tag, Props and Children; text and raw nodes use Text;
// component nodes use Comp.
type VNode struct {
	Kind     VKind
	Tag      string
	Props    Props
	Children []*VNode

	// Key identifies a node among its siblings across renders.
	Key string

	Text string
	Comp Component

	// HID is written by the renderer on interactive elements.
	HID string
}

// Props maps attribute names to values and "on*" names to handlers.
type Props map[string]any

// IsInteractive reports whether an element carries at least one "on*" handler.
func (v *VNode) IsInteractive() bool {
	if v == nil || v.Kind != KindElement {
		return false
	}
	for name := range v.Props {
		if strings.HasPrefix(name, "on") {
			return true
		}
	}
	return false
}

// Handler returns the non-nil handler stored under event, e.g. "onclick".
func (v *VNode) Handler(event string) (any, bool) {
	if v == nil {
		return nil, false
	}
	h := v.Props[event]
	return h, h != nil
}

// Attr is a name/value pair passed to an element constructor. The zero Attr
// is ignored.
type Attr struct {
	Key   string
	Value any
}

// IsEmpty reports whether a is the zero Attr.
func (a Attr) IsEmpty() bool {
	return a.Key == ""
}

// EventHandler binds a handler to an "on*" prop.
type EventHandler struct {
	Event   string
	Handler any
}

// Component is anything that renders to a tree.
type Component interface {
	Render() *VNode
}

// FuncComponent adapts a plain render function to Component.
type FuncComponent struct {
	render func() *VNode
}

func (f *FuncComponent) Render() *VNode {
	return f.render()
}

// Func wraps render as a Component.
func Func(render func() *VNode) Component {
	return &FuncComponent{render: render}
}

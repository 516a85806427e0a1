package vdom

import "strings"

// Walk visits node and its descendants depth-first in document order.
// Component nodes are expanded by calling Render. Returning false from fn
// stops the walk.
func Walk(node *VNode, fn func(*VNode) bool) bool {
	if node == nil {
		return true
	}
	if !fn(node) {
		return false
	}
	if node.Kind == KindComponent && node.Comp != nil {
		return Walk(node.Comp.Render(), fn)
	}
	for _, child := range node.Children {
		if !Walk(child, fn) {
			return false
		}
	}
	return true
}

// Find returns the first element matching pred, or nil.
func Find(node *VNode, pred func(*VNode) bool) *VNode {
	var found *VNode
	Walk(node, func(n *VNode) bool {
		if n.Kind == KindElement && pred(n) {
			found = n
			return false
		}
		return true
	})
	return found
}

// FindAll returns every element matching pred, in document order.
func FindAll(node *VNode, pred func(*VNode) bool) []*VNode {
	var out []*VNode
	Walk(node, func(n *VNode) bool {
		if n.Kind == KindElement && pred(n) {
			out = append(out, n)
		}
		return true
	})
	return out
}

// ByHID matches the element with the given hydration ID.
func ByHID(hid string) func(*VNode) bool {
	return func(n *VNode) bool { return n.HID == hid }
}

// ByData matches elements whose data-<key> attribute equals value.
func ByData(key, value string) func(*VNode) bool {
	return func(n *VNode) bool {
		v, ok := n.Props["data-"+key].(string)
		return ok && v == value
	}
}

// HasData matches elements carrying a data-<key> attribute.
func HasData(key string) func(*VNode) bool {
	return func(n *VNode) bool {
		_, ok := n.Props["data-"+key]
		return ok
	}
}

// HasClass matches elements whose class list contains class.
func HasClass(class string) func(*VNode) bool {
	return func(n *VNode) bool {
		s, _ := n.Props["class"].(string)
		for _, c := range strings.Fields(s) {
			if c == class {
				return true
			}
		}
		return false
	}
}

// TextContent concatenates the text nodes under node.
func TextContent(node *VNode) string {
	var b strings.Builder
	Walk(node, func(n *VNode) bool {
		if n.Kind == KindText {
			b.WriteString(n.Text)
		}
		return true
	})
	return b.String()
}

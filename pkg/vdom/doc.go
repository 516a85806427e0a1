// Package vdom provides the virtual node tree the dropdown widget renders into.
//
// A VNode is an in-memory description of markup: elements, text, fragments,
// nested components and raw HTML. Widgets build trees with variadic element
// constructors and never touch HTML directly; the render package turns a tree
// into HTML and collects its event handlers.
//
// # Element API
//
//	Div(Class(CN("dropdown", extra)),
//	    Button(Type("button"), OnClick(toggle),
//	        Span(Text(label)),
//	    ),
//	)
//
// Arguments may be Attr, []Attr, EventHandler, *VNode, []*VNode, Component,
// string (a text child) or nil, which is ignored so conditional children can
// be written inline with If and When.
//
// # Queries
//
// Find, FindAll and TextContent walk a tree. They are used by hosts to locate
// handlers by hydration ID and by tests to assert on structure without parsing
// HTML.
package vdom

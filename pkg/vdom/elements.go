package vdom

// voidElements never have children or a closing tag.
var voidElements = map[string]bool{
	"area":   true,
	"base":   true,
	"br":     true,
	"col":    true,
	"embed":  true,
	"hr":     true,
	"img":    true,
	"input":  true,
	"link":   true,
	"meta":   true,
	"source": true,
	"track":  true,
	"wbr":    true,
}

// IsVoidElement reports whether tag is written without a closing tag.
func IsVoidElement(tag string) bool {
	return voidElements[tag]
}

// createElement builds an element from constructor arguments: nil, Attr,
// []Attr, EventHandler, *VNode, []*VNode, Component or string.
func createElement(tag string, args []any) *VNode {
	node := &VNode{Kind: KindElement, Tag: tag, Props: make(Props)}
	for _, arg := range args {
		switch v := arg.(type) {
		case Attr:
			node.setAttr(v)
		case []Attr:
			for _, a := range v {
				node.setAttr(a)
			}
		case EventHandler:
			if v.Handler != nil {
				node.Props[v.Event] = v.Handler
			}
		default:
			node.Children = appendChild(node.Children, arg)
		}
	}
	return node
}

// appendChild appends the nodes arg stands for. Unknown kinds and nil
// nodes are dropped.
func appendChild(children []*VNode, arg any) []*VNode {
	switch v := arg.(type) {
	case *VNode:
		if v != nil {
			children = append(children, v)
		}
	case []*VNode:
		for _, c := range v {
			if c != nil {
				children = append(children, c)
			}
		}
	case string:
		children = append(children, Text(v))
	case Component:
		children = append(children, &VNode{Kind: KindComponent, Comp: v})
	}
	return children
}

// setAttr stores a; "key" goes to VNode.Key instead of Props.
func (v *VNode) setAttr(a Attr) {
	switch {
	case a.IsEmpty():
	case a.Key == "key":
		v.Key, _ = a.Value.(string)
	default:
		v.Props[a.Key] = a.Value
	}
}

// Document structure elements

func Html(args ...any) *VNode   { return createElement("html", args) }
func Head(args ...any) *VNode   { return createElement("head", args) }
func Body(args ...any) *VNode   { return createElement("body", args) }
func Title(args ...any) *VNode  { return createElement("title", args) }
func Meta(args ...any) *VNode   { return createElement("meta", args) }
func Script(args ...any) *VNode { return createElement("script", args) }
func Style(args ...any) *VNode  { return createElement("style", args) }
func Main(args ...any) *VNode   { return createElement("main", args) }

// Content elements

func Div(args ...any) *VNode    { return createElement("div", args) }
func P(args ...any) *VNode      { return createElement("p", args) }
func Span(args ...any) *VNode   { return createElement("span", args) }
func Ul(args ...any) *VNode     { return createElement("ul", args) }
func Li(args ...any) *VNode     { return createElement("li", args) }
func Button(args ...any) *VNode { return createElement("button", args) }
func Label(args ...any) *VNode  { return createElement("label", args) }

// SVG elements

func Svg(args ...any) *VNode  { return createElement("svg", args) }
func Path(args ...any) *VNode { return createElement("path", args) }

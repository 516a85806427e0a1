package render

import (
	"bytes"
	"fmt"
	"io"
	"maps"
	"slices"
	"strconv"
	"strings"

	"github.com/vango-dev/dropdown/pkg/vdom"
)

// RendererConfig configures the HTML renderer.
type RendererConfig struct {
	// Pretty enables indented output. Development only.
	Pretty bool

	// Indent is the string used for each indentation level in pretty mode.
	// Defaults to two spaces.
	Indent string

	// SkipHIDs disables hydration IDs, for static output with no live host.
	SkipHIDs bool
}

// Renderer renders VNode trees to HTML and collects their event handlers.
// A Renderer is not safe for concurrent use.
type Renderer struct {
	config     RendererConfig
	hidCounter uint32
	handlers   map[string]any
}

// NewRenderer creates a new Renderer with the given configuration.
func NewRenderer(config RendererConfig) *Renderer {
	if config.Indent == "" {
		config.Indent = "  "
	}
	return &Renderer{
		config:   config,
		handlers: make(map[string]any),
	}
}

// RenderToString renders a VNode tree to an HTML string.
func (r *Renderer) RenderToString(node *vdom.VNode) (string, error) {
	var buf bytes.Buffer
	if err := r.RenderToWriter(&buf, node); err != nil {
		return "", err
	}
	return buf.String(), nil
}

// RenderToWriter streams a VNode tree to w.
func (r *Renderer) RenderToWriter(w io.Writer, node *vdom.VNode) error {
	out := &writer{w: w}
	if err := r.node(out, node, 0); err != nil {
		return err
	}
	return out.err
}

// Handlers returns the handler registry collected so far. Keys have the form
// "<hid>_<event>", e.g. "h1_onclick".
func (r *Renderer) Handlers() map[string]any {
	return r.handlers
}

// Handler looks up the handler registered for hid and event ("onclick").
func (r *Renderer) Handler(hid, event string) (any, bool) {
	h, ok := r.handlers[hid+"_"+event]
	return h, ok
}

// Reset clears the HID counter and handler registry.
func (r *Renderer) Reset() {
	r.hidCounter = 0
	r.handlers = make(map[string]any)
}

// writer records the first write error and ignores later writes.
type writer struct {
	w   io.Writer
	err error
}

func (w *writer) str(s string) {
	if w.err == nil {
		_, w.err = io.WriteString(w.w, s)
	}
}

func (w *writer) attr(name, value string) {
	w.str(" " + name + `="` + value + `"`)
}

func (r *Renderer) node(w *writer, node *vdom.VNode, depth int) error {
	if node == nil {
		return nil
	}
	switch node.Kind {
	case vdom.KindElement:
		return r.element(w, node, depth)
	case vdom.KindText:
		w.str(escapeHTML(node.Text))
	case vdom.KindRaw:
		w.str(node.Text)
	case vdom.KindFragment:
		for _, child := range node.Children {
			if err := r.node(w, child, depth); err != nil {
				return err
			}
		}
	case vdom.KindComponent:
		if node.Comp != nil {
			return r.node(w, node.Comp.Render(), depth)
		}
	default:
		return fmt.Errorf("render: unknown node kind %d", node.Kind)
	}
	return w.err
}

func (r *Renderer) element(w *writer, node *vdom.VNode, depth int) error {
	tag := node.Tag
	if tag == "" {
		return fmt.Errorf("render: element without tag")
	}

	if depth > 0 {
		r.indent(w, depth)
	}
	w.str("<" + tag)
	events := r.attributes(w, node.Props)
	if !r.config.SkipHIDs {
		for _, name := range events {
			w.attr("data-on-"+name, "true")
		}
		if len(events) > 0 {
			node.HID = r.nextHID()
			w.attr("data-hid", node.HID)
			r.registerHandlers(node.HID, node)
		}
	}
	w.str(">")

	if vdom.IsVoidElement(tag) {
		r.newline(w)
		return w.err
	}

	block := len(node.Children) > 0 && !isInlineElement(tag)
	if block {
		r.newline(w)
	}
	for _, child := range node.Children {
		if err := r.node(w, child, depth+1); err != nil {
			return err
		}
	}
	if block {
		r.indent(w, depth)
	}
	w.str("</" + tag + ">")
	r.newline(w)
	return w.err
}

// attributes writes props in name order and returns the names of the events
// the element handles, also in order. Props prefixed with "_" are internal.
func (r *Renderer) attributes(w *writer, props vdom.Props) []string {
	var events []string
	for _, name := range slices.Sorted(maps.Keys(props)) {
		value := props[name]
		switch {
		case strings.HasPrefix(name, "_"):
		case strings.HasPrefix(name, "on") && isEventHandler(value):
			events = append(events, vdom.EventName(name))
		default:
			if b, ok := value.(bool); ok && isBooleanAttr(name) {
				if b {
					w.str(" " + name)
				}
			} else if s := attrToString(value); s != "" {
				w.attr(name, escapeAttr(s))
			}
		}
	}
	return events
}

func (r *Renderer) nextHID() string {
	r.hidCounter++
	return "h" + strconv.FormatUint(uint64(r.hidCounter), 10)
}

func (r *Renderer) registerHandlers(hid string, node *vdom.VNode) {
	for key, value := range node.Props {
		if strings.HasPrefix(key, "on") && isEventHandler(value) {
			r.handlers[hid+"_"+key] = value
		}
	}
}

func (r *Renderer) newline(w *writer) {
	if r.config.Pretty {
		w.str("\n")
	}
}

func (r *Renderer) indent(w *writer, depth int) {
	if r.config.Pretty {
		w.str(strings.Repeat(r.config.Indent, depth))
	}
}

// isEventHandler reports whether value looks like an event handler.
func isEventHandler(value any) bool {
	switch value.(type) {
	case nil:
		return false
	case func(), func(string), func(any), vdom.EventHandler:
		return true
	default:
		return strings.HasPrefix(fmt.Sprintf("%T", value), "func")
	}
}

func attrToString(value any) string {
	switch v := value.(type) {
	case nil:
		return ""
	case string:
		return v
	case bool:
		return strconv.FormatBool(v)
	case int:
		return strconv.Itoa(v)
	case int64:
		return strconv.FormatInt(v, 10)
	case float64:
		return strconv.FormatFloat(v, 'g', -1, 64)
	default:
		return fmt.Sprintf("%v", v)
	}
}

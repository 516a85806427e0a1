package render

import (
	"bytes"
	"strings"
	"testing"

	"github.com/vango-dev/dropdown/pkg/vdom"
)

func TestRenderText(t *testing.T) {
	renderer := NewRenderer(RendererConfig{})

	html, err := renderer.RenderToString(vdom.Text("Hello, World!"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if html != "Hello, World!" {
		t.Errorf("got %q, want %q", html, "Hello, World!")
	}
}

func TestRenderTextEscaping(t *testing.T) {
	renderer := NewRenderer(RendererConfig{})

	html, err := renderer.RenderToString(vdom.Text("<script>alert('xss')</script>"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if strings.Contains(html, "<script>") {
		t.Errorf("HTML should be escaped, got %q", html)
	}
	if !strings.Contains(html, "&lt;script&gt;") {
		t.Errorf("should contain escaped script tag, got %q", html)
	}
}

func TestRenderElement(t *testing.T) {
	renderer := NewRenderer(RendererConfig{})

	node := vdom.Div(vdom.Class("container"),
		vdom.Span(vdom.Text("Title")),
		vdom.P(vdom.Text("Content")),
	)
	html, err := renderer.RenderToString(node)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := `<div class="container"><span>Title</span><p>Content</p></div>`
	if html != want {
		t.Errorf("got %q, want %q", html, want)
	}
}

func TestRenderAttributes(t *testing.T) {
	tests := []struct {
		name string
		node *vdom.VNode
		want string
	}{
		{
			name: "sorted attributes",
			node: vdom.Button(vdom.Type("button"), vdom.Class("b"), vdom.Data("value", "x")),
			want: `<button class="b" data-value="x" type="button"></button>`,
		},
		{
			name: "boolean true",
			node: vdom.Button(vdom.Disabled(true)),
			want: `<button disabled></button>`,
		},
		{
			name: "boolean false",
			node: vdom.Button(vdom.Disabled(false)),
			want: `<button></button>`,
		},
		{
			name: "aria bool is a value",
			node: vdom.Button(vdom.AriaExpanded(false)),
			want: `<button aria-expanded="false"></button>`,
		},
		{
			name: "attribute escaping",
			node: vdom.Div(vdom.Data("label", `a"b<c>`)),
			want: `<div data-label="a&quot;b&lt;c&gt;"></div>`,
		},
		{
			name: "empty class omitted",
			node: vdom.Div(vdom.Class("")),
			want: `<div></div>`,
		},
		{
			name: "void element",
			node: vdom.Meta(vdom.Charset("utf-8")),
			want: `<meta charset="utf-8">`,
		},
		{
			name: "raw passthrough",
			node: vdom.Div(vdom.Raw("<b>x</b>")),
			want: `<div><b>x</b></div>`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			html, err := NewRenderer(RendererConfig{}).RenderToString(tt.node)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if html != tt.want {
				t.Errorf("got %q, want %q", html, tt.want)
			}
		})
	}
}

func TestRenderHIDsAndHandlers(t *testing.T) {
	clicked := ""
	node := vdom.Div(
		vdom.Button(vdom.OnClick(func() { clicked = "first" }), vdom.Text("one")),
		vdom.Span(vdom.Text("static")),
		vdom.Button(vdom.OnClick(func() { clicked = "second" }), vdom.Text("two")),
	)

	r := NewRenderer(RendererConfig{})
	html, err := r.RenderToString(node)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if got := extractAttrValue(t, html, "data-hid"); got != "h1" {
		t.Errorf("first hid = %q, want h1", got)
	}
	if !strings.Contains(html, `data-hid="h2"`) {
		t.Errorf("second button should be h2, got %q", html)
	}
	if strings.Contains(html, `data-hid="h3"`) {
		t.Errorf("static elements should not get a hid, got %q", html)
	}
	if !strings.Contains(html, `data-on-click="true"`) {
		t.Errorf("missing event marker, got %q", html)
	}
	if strings.Contains(html, "onclick=") {
		t.Errorf("handler leaked as attribute, got %q", html)
	}
	if node.Children[2].HID != "h2" {
		t.Errorf("VNode.HID = %q, want h2", node.Children[2].HID)
	}

	h, ok := r.Handler("h2", "onclick")
	if !ok {
		t.Fatal("handler h2_onclick not registered")
	}
	h.(func())()
	if clicked != "second" {
		t.Errorf("dispatched to %q, want second", clicked)
	}
	if len(r.Handlers()) != 2 {
		t.Errorf("handlers = %d, want 2", len(r.Handlers()))
	}

	r.Reset()
	if len(r.Handlers()) != 0 {
		t.Error("Reset should clear handlers")
	}
	html2, _ := r.RenderToString(node)
	if html2 != html {
		t.Error("re-render after Reset should produce identical HIDs")
	}
}

func TestRenderSkipHIDs(t *testing.T) {
	r := NewRenderer(RendererConfig{SkipHIDs: true})
	html, err := r.RenderToString(vdom.Button(vdom.OnClick(func() {})))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if html != "<button></button>" {
		t.Errorf("got %q", html)
	}
}

func TestRenderComponentAndFragment(t *testing.T) {
	comp := vdom.Func(func() *vdom.VNode {
		return vdom.Fragment(vdom.Text("a"), vdom.Text("b"))
	})
	html, err := NewRenderer(RendererConfig{}).RenderToString(vdom.Div(comp))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if html != "<div>ab</div>" {
		t.Errorf("got %q", html)
	}
}

func TestRenderUnknownKind(t *testing.T) {
	_, err := NewRenderer(RendererConfig{}).RenderToString(&vdom.VNode{Kind: vdom.VKind(99)})
	if err == nil {
		t.Error("expected error for unknown kind")
	}
}

func TestRenderPretty(t *testing.T) {
	r := NewRenderer(RendererConfig{Pretty: true})
	html, err := r.RenderToString(vdom.Div(vdom.Div(vdom.Span(vdom.Text("x")))))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := "<div>\n  <div>\n    <span>x</span>\n  </div>\n</div>\n"
	if html != want {
		t.Errorf("got %q, want %q", html, want)
	}
}

func TestRenderPage(t *testing.T) {
	var buf bytes.Buffer
	r := NewRenderer(RendererConfig{})
	err := r.RenderPage(&buf, PageData{
		Title:   "Pick <one>",
		Body:    vdom.Main(vdom.Text("body")),
		Styles:  []string{".x{}"},
		Scripts: []string{"console.log(1)"},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	html := buf.String()
	for _, want := range []string{
		"<!DOCTYPE html>",
		`<html lang="en">`,
		"<title>Pick &lt;one&gt;</title>",
		"<style>.x{}</style>",
		"<main>body</main>",
		"<script>console.log(1)</script>",
		"</html>",
	} {
		if !strings.Contains(html, want) {
			t.Errorf("page missing %q:\n%s", want, html)
		}
	}
}

package vtest

import (
	"strings"
	"testing"

	"github.com/vango-dev/dropdown/pkg/render"
	"github.com/vango-dev/dropdown/pkg/vdom"
)

// excerpt bounds how much markup a failure message quotes.
const excerpt = 500

// RenderToString renders node once, hydration IDs included, and returns the
// HTML. A render error yields "".
//
//	html := vtest.RenderToString(d.Render())
func RenderToString(node *vdom.VNode) string {
	html, err := render.NewRenderer(render.RendererConfig{}).RenderToString(node)
	if err != nil {
		return ""
	}
	return html
}

// ExpectContains fails tb when the rendered node lacks substr.
//
//	vtest.ExpectContains(t, d.Render(), "Apple")
func ExpectContains(tb testing.TB, node *vdom.VNode, substr string) {
	tb.Helper()
	if html := RenderToString(node); !strings.Contains(html, substr) {
		tb.Errorf("missing %q in:\n%s", substr, truncate(html, excerpt))
	}
}

// ExpectNotContains fails tb when the rendered node contains substr.
func ExpectNotContains(tb testing.TB, node *vdom.VNode, substr string) {
	tb.Helper()
	if html := RenderToString(node); strings.Contains(html, substr) {
		tb.Errorf("unexpected %q in:\n%s", substr, truncate(html, excerpt))
	}
}

// ExpectElement fails tb when no <tag> element is rendered.
func ExpectElement(tb testing.TB, node *vdom.VNode, tag string) {
	tb.Helper()
	if html := RenderToString(node); !strings.Contains(html, "<"+tag) {
		tb.Errorf("no <%s> element in:\n%s", tag, truncate(html, excerpt))
	}
}

// ExpectAttribute fails tb when no element carries attr="value".
//
//	vtest.ExpectAttribute(t, d.Render(), "aria-expanded", "true")
func ExpectAttribute(tb testing.TB, node *vdom.VNode, attr, value string) {
	tb.Helper()
	html := RenderToString(node)
	if !strings.Contains(html, attr+`="`+value+`"`) {
		tb.Errorf("no %s=%q in:\n%s", attr, value, truncate(html, excerpt))
	}
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}

package vdom

import "strings"

func attr(key string, value any) Attr {
	return Attr{Key: key, Value: value}
}

// ID sets the id attribute.
func ID(id string) Attr { return attr("id", id) }

// Class sets class, joining its arguments with spaces.
func Class(classes ...string) Attr { return attr("class", strings.Join(classes, " ")) }

// Data sets data-<key>. Data("value", "a") renders data-value="a".
func Data(key, value string) Attr { return attr("data-"+key, value) }

// Type sets the type attribute.
func Type(t string) Attr { return attr("type", t) }

// Disabled sets the disabled attribute.
func Disabled(disabled bool) Attr { return attr("disabled", disabled) }

func AriaExpanded(expanded bool) Attr { return attr("aria-expanded", expanded) }

func AriaHidden(hidden bool) Attr { return attr("aria-hidden", hidden) }

// Charset sets the charset attribute.
func Charset(charset string) Attr { return attr("charset", charset) }

// ViewBox sets the SVG viewBox attribute.
func ViewBox(box string) Attr { return attr("viewBox", box) }

// D sets the SVG path data attribute.
func D(d string) Attr { return attr("d", d) }

// Fill sets the SVG fill attribute.
func Fill(fill string) Attr { return attr("fill", fill) }

// Stroke sets the SVG stroke attribute.
func Stroke(stroke string) Attr { return attr("stroke", stroke) }

// Width sets the width attribute.
func Width(w int) Attr { return attr("width", w) }

// Height sets the height attribute.
func Height(h int) Attr { return attr("height", h) }

// Key sets VNode.Key. It is not rendered.
func Key(key string) Attr { return attr("key", key) }

// AttrIf returns a if condition holds, or an empty Attr which elements ignore.
func AttrIf(condition bool, a Attr) Attr {
	if condition {
		return a
	}
	return Attr{}
}

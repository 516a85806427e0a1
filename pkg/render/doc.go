// Package render turns vdom trees into HTML.
//
// A Renderer writes elements, escaped text and attributes, and gives every
// element that carries an event handler a hydration ID (data-hid="h1", ...).
// The handlers found during a pass are collected in a registry keyed by
// "<hid>_<event>" so a host can dispatch a client event back to the closure
// that produced it:
//
//	r := render.NewRenderer(render.RendererConfig{})
//	html, err := r.RenderToString(node)
//	h, ok := r.Handler("h2", "onclick")
//
// HIDs are assigned in document order and restart from h1 after Reset, so
// re-rendering an unchanged tree yields the same IDs.
//
// RenderPage wraps a body in a minimal HTML5 document with optional inline
// styles and scripts.
package render

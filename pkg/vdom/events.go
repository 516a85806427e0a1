package vdom

// event creates an EventHandler with the given name and handler.
// The name is prefixed with "on" (e.g., "click" becomes "onclick").
func event(name string, handler any) EventHandler {
	return EventHandler{Event: "on" + name, Handler: handler}
}

// OnClick handles click events.
func OnClick(handler any) EventHandler { return event("click", handler) }

// OnChange handles change events.
func OnChange(handler any) EventHandler { return event("change", handler) }

// OnFocusOut handles focusout events.
func OnFocusOut(handler any) EventHandler { return event("focusout", handler) }

// EventName strips the "on" prefix from a props key ("onclick" → "click").
func EventName(propKey string) string {
	if len(propKey) > 2 && propKey[:2] == "on" {
		return propKey[2:]
	}
	return propKey
}

// Invoke calls handler with the supported signatures.
// It reports false if handler has a signature the widget runtime does not
// dispatch.
func Invoke(handler any, payload string) bool {
	switch h := handler.(type) {
	case func():
		h()
	case func(string):
		h(payload)
	case func(any):
		h(payload)
	default:
		return false
	}
	return true
}

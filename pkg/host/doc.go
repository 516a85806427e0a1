// Package host serves a live dropdown over HTTP and WebSocket.
//
// Every WebSocket connection mounts its own dropdown.Dropdown under its own
// reactive owner and plays the caller's role: it holds the selected value,
// feeds it back through SetProps when the widget reports a change, and pushes
// the re-rendered markup to the browser after each event.
//
// # Routes
//
//	GET /         server-rendered page with the widget and a small client
//	GET /ws       live session
//	GET /healthz  liveness probe
//	GET /metrics  Prometheus exposition (when enabled)
//
// # Wire Format
//
// Client to server:
//
//	{"hid": "h3", "event": "click"}
//
// Server to client:
//
//	{"type": "render", "html": "...", "selected": "b", "open": true}
//	{"type": "error", "code": "E101", "message": "Handler not found"}
//
// # Usage
//
//	srv := host.New(host.Config{
//	    Address: ":3000",
//	    Options: []dropdown.Option{{Value: "a", Label: "Apple"}},
//	})
//	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
//	defer stop()
//	if err := srv.ListenAndServe(ctx); err != nil {
//	    log.Fatal(err)
//	}
package host

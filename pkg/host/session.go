package host

import (
	"context"
	"encoding/json"
	stderrors "errors"
	"fmt"
	"log/slog"
	"runtime/debug"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/vango-dev/dropdown/internal/errors"
	"github.com/vango-dev/dropdown/pkg/dropdown"
	"github.com/vango-dev/dropdown/pkg/reactive"
	"github.com/vango-dev/dropdown/pkg/render"
	"github.com/vango-dev/dropdown/pkg/vdom"
)

// Session is one live connection and the dropdown mounted for it. Everything
// except writes runs on the read loop goroutine.
type Session struct {
	ID string

	conn   *websocket.Conn
	server *Server
	logger *slog.Logger

	owner    *reactive.Owner
	widget   *dropdown.Dropdown
	renderer *render.Renderer
	tree     *vdom.VNode

	// current is the caller-owned selection.
	current string

	// dirty is set by the owner subscriber and cleared by flush.
	dirty bool

	writeMu   sync.Mutex
	closeOnce sync.Once
	done      chan struct{}
}

func newSession(id string, conn *websocket.Conn, s *Server) *Session {
	sess := &Session{
		ID:       id,
		conn:     conn,
		server:   s,
		logger:   s.logger.With("session_id", id),
		owner:    reactive.NewOwner(nil),
		renderer: render.NewRenderer(render.RendererConfig{}),
		current:  s.config.Current,
		done:     make(chan struct{}),
	}

	opts := []dropdown.ConfigOption{
		dropdown.WithCloseOnSelect(s.config.CloseOnSelect),
		dropdown.WithLookupMiss(sess.onLookupMiss),
	}
	sess.widget = dropdown.New(sess.owner, sess.props(), opts...)
	sess.owner.Subscribe(func() { sess.dirty = true })
	return sess
}

func (s *Session) props() dropdown.Props {
	return dropdown.Props{
		CurrentOption: s.current,
		Options:       s.server.config.Options,
		ClassName:     s.server.config.ClassName,
		OnChange:      s.onChange,
	}
}

// onChange plays the caller: it adopts the reported value and re-renders.
func (s *Session) onChange(value string) {
	s.logger.Debug("selection changed", "from", s.current, "to", value)
	s.current = value
	s.server.metrics.selections.Inc()
	s.widget.SetProps(s.props())
}

func (s *Session) onLookupMiss(value string) {
	s.server.metrics.lookupMisses.Inc()
	s.logger.Debug("current option not found", "value", value)
}

// Selected returns the caller-owned selection.
func (s *Session) Selected() string {
	return s.current
}

// render rebuilds the markup and the handler registry.
func (s *Session) render() (string, error) {
	s.renderer.Reset()
	s.tree = s.widget.Render()
	return s.renderer.RenderToString(s.tree)
}

// flush pushes a render frame.
func (s *Session) flush() error {
	s.dirty = false
	html, err := s.render()
	if err != nil {
		return err
	}
	s.server.metrics.renders.Inc()
	return s.send(ServerFrame{
		Type:     FrameRender,
		HTML:     html,
		Selected: s.current,
		Open:     s.widget.IsOpen(),
	})
}

func (s *Session) send(f ServerFrame) error {
	data, err := json.Marshal(f)
	if err != nil {
		return err
	}
	s.writeMu.Lock()
	defer s.writeMu.Unlock()
	s.conn.SetWriteDeadline(time.Now().Add(s.server.config.WriteTimeout))
	return s.conn.WriteMessage(websocket.TextMessage, data)
}

func (s *Session) sendError(err error) {
	if sendErr := s.send(errorFrame(err)); sendErr != nil {
		s.logger.Debug("error frame not delivered", "error", sendErr)
	}
}

// readLoop renders the widget once, then serves frames until the connection
// closes.
func (s *Session) readLoop(ctx context.Context) {
	defer func() {
		s.Close()
		s.widget.Dispose()
	}()

	timeout := s.server.config.ReadTimeout
	s.conn.SetReadDeadline(time.Now().Add(timeout))
	s.conn.SetPongHandler(func(string) error {
		return s.conn.SetReadDeadline(time.Now().Add(timeout))
	})
	go s.pingLoop(timeout * 9 / 10)

	if err := s.flush(); err != nil {
		s.logger.Error("initial render failed", "error", err)
		return
	}

	for {
		_, msg, err := s.conn.ReadMessage()
		if err != nil {
			if stderrors.Is(err, websocket.ErrReadLimit) {
				s.logger.Warn("frame exceeds read limit", "limit", s.server.config.MaxMessageSize)
			} else if websocket.IsUnexpectedCloseError(err,
				websocket.CloseGoingAway,
				websocket.CloseAbnormalClosure,
				websocket.CloseNormalClosure) {
				s.logger.Error("read error", "error", err)
			}
			return
		}
		s.conn.SetReadDeadline(time.Now().Add(timeout))

		if err := s.handleMessage(ctx, msg); err != nil {
			s.sendError(err)
		}
	}
}

func (s *Session) pingLoop(interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-s.done:
			return
		case <-ticker.C:
			deadline := time.Now().Add(s.server.config.WriteTimeout)
			if err := s.conn.WriteControl(websocket.PingMessage, nil, deadline); err != nil {
				return
			}
		}
	}
}

// handleMessage decodes one frame, dispatches it under a span and pushes
// the re-render it caused.
func (s *Session) handleMessage(ctx context.Context, msg []byte) (err error) {
	start := time.Now()
	event := "invalid"
	defer func() {
		status := "ok"
		if err != nil {
			status = "error"
			if code := errors.CodeOf(err); code != "" {
				status = code
			}
		}
		s.server.metrics.recordEvent(event, status, time.Since(start).Seconds())
	}()

	f, err := DecodeClientFrame(msg)
	if err != nil {
		s.logger.Warn("frame decode error", "error", err)
		return err
	}
	event = eventLabel(f.Event)
	part := s.partOf(f.HID)

	_, span := s.server.tracer.Start(ctx, "dropdown."+event,
		trace.WithSpanKind(trace.SpanKindServer),
		trace.WithAttributes(
			attribute.String("dropdown.session_id", s.ID),
			attribute.String("dropdown.event", event),
			attribute.String("dropdown.hid", f.HID),
			attribute.String("dropdown.part", part),
		),
	)
	defer func() {
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
		} else {
			span.SetStatus(codes.Ok, "")
		}
		span.SetAttributes(
			attribute.Bool("dropdown.open", s.widget.IsOpen()),
			attribute.String("dropdown.selected", s.current),
		)
		span.End()
	}()

	if err := s.dispatch(f); err != nil {
		s.logger.Warn("event rejected", "hid", f.HID, "event", event, "error", err)
		return err
	}
	if part == dropdown.PartTrigger {
		s.server.metrics.toggles.Inc()
	}

	if s.dirty {
		if err := s.flush(); err != nil {
			return fmt.Errorf("render: %w", err)
		}
	}
	return nil
}

// eventLabel maps a client-supplied event name onto the fixed set used for
// metric labels and span names.
func eventLabel(event string) string {
	if event == "click" {
		return event
	}
	return "unsupported"
}

// partOf returns the data-part of the element with hid in the latest tree.
func (s *Session) partOf(hid string) string {
	n := vdom.Find(s.tree, vdom.ByHID(hid))
	if n == nil {
		return ""
	}
	part, _ := n.Props["data-part"].(string)
	return part
}

// dispatch runs the handler the latest render registered for the frame,
// recovering panics as E104.
func (s *Session) dispatch(f ClientFrame) (err error) {
	if f.Event != "click" {
		return errors.New("E103").WithDetailf("event %q", f.Event)
	}
	h, ok := s.renderer.Handler(f.HID, "on"+f.Event)
	if !ok {
		return errors.New("E101").WithDetailf("no %s handler for %s", f.Event, f.HID)
	}

	defer func() {
		if r := recover(); r != nil {
			s.logger.Error("handler panic",
				"panic", r,
				"hid", f.HID,
				"event", f.Event,
				"stack", string(debug.Stack()))
			err = errors.New("E104").WithDetailf("%v", r)
		}
	}()

	if !vdom.Invoke(h, "") {
		return errors.New("E103").WithDetailf("handler %T", h)
	}
	return nil
}

// Close tears the session down. It is safe to call more than once and from
// any goroutine.
func (s *Session) Close() {
	s.closeOnce.Do(func() {
		close(s.done)
		s.writeMu.Lock()
		s.conn.WriteControl(websocket.CloseMessage,
			websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""),
			time.Now().Add(time.Second))
		s.writeMu.Unlock()
		s.conn.Close()
		s.server.removeSession(s)
		s.logger.Info("session closed")
	})
}

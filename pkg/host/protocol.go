package host

import (
	"encoding/json"

	"github.com/vango-dev/dropdown/internal/errors"
)

// Server frame types.
const (
	FrameRender = "render"
	FrameError  = "error"
)

// ClientFrame is an event forwarded by the browser.
type ClientFrame struct {
	HID   string `json:"hid"`
	Event string `json:"event"`
}

// ServerFrame is pushed to the browser.
type ServerFrame struct {
	Type     string `json:"type"`
	HTML     string `json:"html,omitempty"`
	Selected string `json:"selected,omitempty"`
	Open     bool   `json:"open,omitempty"`
	Code     string `json:"code,omitempty"`
	Message  string `json:"message,omitempty"`
}

// DecodeClientFrame parses a client frame. Frames that are not JSON objects
// or lack an hid fail with E102.
func DecodeClientFrame(data []byte) (ClientFrame, error) {
	var f ClientFrame
	if err := json.Unmarshal(data, &f); err != nil {
		return ClientFrame{}, errors.New("E102").Wrap(err)
	}
	if f.HID == "" {
		return ClientFrame{}, errors.New("E102").WithDetail("frame has no hid")
	}
	if f.Event == "" {
		f.Event = "click"
	}
	return f, nil
}

func errorFrame(err error) ServerFrame {
	de := errors.FromError(err, "E104")
	return ServerFrame{
		Type:    FrameError,
		Code:    de.Code,
		Message: de.Message,
	}
}

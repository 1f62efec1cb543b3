package live

import (
	"encoding/json"
	"fmt"

	"github.com/liven-dev/liven/pkg/binder"
	"github.com/liven-dev/liven/pkg/page"
)

// FrameType identifies the kind of message on the wire.
type FrameType string

const (
	// FrameEvent carries a trigger activation from the client.
	FrameEvent FrameType = "event"

	// FramePatch carries document mutations to the client.
	FramePatch FrameType = "patch"

	// FramePing and FramePong are application-level heartbeats.
	FramePing FrameType = "ping"
	FramePong FrameType = "pong"

	// FrameError reports a protocol-level problem to the client.
	FrameError FrameType = "error"
)

// Frame is one JSON message on the live connection.
type Frame struct {
	Type    FrameType     `json:"type"`
	Event   *EventPayload `json:"event,omitempty"`
	Patches []Patch       `json:"patches,omitempty"`
	Message string        `json:"message,omitempty"`
}

// EventPayload is the client's description of a trigger activation.
type EventPayload struct {
	// Kind is "click" or "submit".
	Kind string `json:"kind"`

	// Selector addresses the triggering element.
	Selector string `json:"selector"`

	// Values carries current form field values for submit events.
	Values map[string]string `json:"values,omitempty"`
}

// Patch is one DOM mutation for the client to apply.
type Patch struct {
	Op       string `json:"op"`
	Selector string `json:"selector"`
	Name     string `json:"name,omitempty"`
	Value    string `json:"value,omitempty"`
}

// DecodeFrame parses and validates a wire message.
func DecodeFrame(data []byte) (*Frame, error) {
	var frame Frame
	if err := json.Unmarshal(data, &frame); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidFrame, err)
	}

	switch frame.Type {
	case FrameEvent:
		if frame.Event == nil {
			return nil, fmt.Errorf("%w: event frame without event payload", ErrInvalidFrame)
		}
	case FramePatch, FramePing, FramePong, FrameError:
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownFrame, frame.Type)
	}
	return &frame, nil
}

// EncodeFrame serializes a frame for the wire.
func EncodeFrame(frame *Frame) ([]byte, error) {
	data, err := json.Marshal(frame)
	if err != nil {
		return nil, fmt.Errorf("live: encode frame: %w", err)
	}
	return data, nil
}

// BinderEvent converts the payload into a dispatchable event.
func (p *EventPayload) BinderEvent() (binder.Event, error) {
	if p.Selector == "" {
		return binder.Event{}, fmt.Errorf("%w: missing selector", ErrInvalidEvent)
	}

	switch p.Kind {
	case "click":
		return binder.Event{Kind: binder.KindClick, Selector: p.Selector, Values: p.Values}, nil
	case "submit":
		return binder.Event{Kind: binder.KindSubmit, Selector: p.Selector, Values: p.Values}, nil
	default:
		return binder.Event{}, fmt.Errorf("%w: kind %q", ErrInvalidEvent, p.Kind)
	}
}

// PatchFromMutation converts a recorded document mutation to its wire form.
func PatchFromMutation(m page.Mutation) Patch {
	return Patch{
		Op:       m.Op.String(),
		Selector: m.Selector,
		Name:     m.Name,
		Value:    m.Value,
	}
}

package live_test

import (
	"errors"
	"testing"

	"github.com/liven-dev/liven/pkg/binder"
	"github.com/liven-dev/liven/pkg/live"
	"github.com/liven-dev/liven/pkg/page"
)

func TestDecodeEventFrame(t *testing.T) {
	frame, err := live.DecodeFrame([]byte(`{"type":"event","event":{"kind":"submit","selector":"#contact","values":{"email":"a@example.test"}}}`))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if frame.Type != live.FrameEvent {
		t.Errorf("expected event frame, got %q", frame.Type)
	}
	if frame.Event == nil || frame.Event.Selector != "#contact" {
		t.Fatalf("unexpected payload: %+v", frame.Event)
	}
	if frame.Event.Values["email"] != "a@example.test" {
		t.Errorf("expected form values carried, got %v", frame.Event.Values)
	}
}

func TestDecodeFrameRejectsGarbage(t *testing.T) {
	cases := []struct {
		name string
		data string
		want error
	}{
		{"not json", "hello", live.ErrInvalidFrame},
		{"unknown type", `{"type":"telemetry"}`, live.ErrUnknownFrame},
		{"event without payload", `{"type":"event"}`, live.ErrInvalidFrame},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := live.DecodeFrame([]byte(tc.data))
			if !errors.Is(err, tc.want) {
				t.Errorf("expected %v, got %v", tc.want, err)
			}
		})
	}
}

func TestBinderEvent(t *testing.T) {
	payload := &live.EventPayload{Kind: "click", Selector: "#refresh"}

	ev, err := payload.BinderEvent()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if ev.Kind != binder.KindClick {
		t.Errorf("expected KindClick, got %v", ev.Kind)
	}
	if ev.Selector != "#refresh" {
		t.Errorf("expected selector carried, got %q", ev.Selector)
	}
}

func TestBinderEventRejectsInvalid(t *testing.T) {
	cases := []struct {
		name    string
		payload live.EventPayload
	}{
		{"unknown kind", live.EventPayload{Kind: "hover", Selector: "#x"}},
		{"missing selector", live.EventPayload{Kind: "click"}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := tc.payload.BinderEvent()
			if !errors.Is(err, live.ErrInvalidEvent) {
				t.Errorf("expected ErrInvalidEvent, got %v", err)
			}
		})
	}
}

func TestPatchFromMutation(t *testing.T) {
	patch := live.PatchFromMutation(page.Mutation{
		Op:       page.OpSetHTML,
		Selector: "#panel",
		Value:    "<p>ok</p>",
	})

	if patch.Op != "set-html" {
		t.Errorf("expected set-html, got %q", patch.Op)
	}
	if patch.Selector != "#panel" || patch.Value != "<p>ok</p>" {
		t.Errorf("unexpected patch: %+v", patch)
	}
}

func TestEncodeDecodeRoundTrip(t *testing.T) {
	data, err := live.EncodeFrame(&live.Frame{
		Type:    live.FramePatch,
		Patches: []live.Patch{{Op: "add-class", Selector: "#panel", Name: "liven-loading"}},
	})
	if err != nil {
		t.Fatalf("encode: %v", err)
	}

	frame, err := live.DecodeFrame(data)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if frame.Type != live.FramePatch || len(frame.Patches) != 1 {
		t.Errorf("unexpected frame: %+v", frame)
	}
	if frame.Patches[0].Name != "liven-loading" {
		t.Errorf("unexpected patch: %+v", frame.Patches[0])
	}
}

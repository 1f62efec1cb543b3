package binder

import "context"

// Kind identifies the type of DOM trigger event.
type Kind uint8

const (
	KindClick Kind = iota + 1
	KindSubmit
)

// String returns the string representation of the Kind.
func (k Kind) String() string {
	switch k {
	case KindClick:
		return "click"
	case KindSubmit:
		return "submit"
	default:
		return "unknown"
	}
}

// Event is a DOM-level trigger activation relayed from the browser.
type Event struct {
	// Kind is the trigger type: click for navigate triggers, submit for
	// form triggers.
	Kind Kind

	// Selector addresses the triggering element in the page document.
	Selector string

	// Values carries the current form field values for submit events.
	// Field state lives in the browser, so the client reports it with the
	// event.
	Values map[string]string
}

// Handler processes one trigger event.
type Handler func(ctx context.Context, ev Event) error

// Middleware wraps a Handler with cross-cutting behavior such as metrics or
// tracing.
type Middleware func(next Handler) Handler

package binder

import "errors"

// Sentinel errors for trigger dispatch.
var (
	// ErrNoElement is returned when an event's selector matches nothing in
	// the page document.
	ErrNoElement = errors.New("binder: no element matches event selector")

	// ErrNotBound is returned when the addressed element carries no trigger
	// attribute for the event kind.
	ErrNotBound = errors.New("binder: element is not a trigger")

	// ErrNoSource is returned when a trigger lacks its request source (an
	// anchor without href, a form without action).
	ErrNoSource = errors.New("binder: trigger has no request source")

	// ErrUnknownKind is returned for event kinds the binder does not
	// handle.
	ErrUnknownKind = errors.New("binder: unknown event kind")
)

package live

import "errors"

// Sentinel errors for the live connection layer.
var (
	// ErrInvalidFrame is returned when a wire message is not valid JSON or
	// is structurally incomplete.
	ErrInvalidFrame = errors.New("live: invalid frame")

	// ErrUnknownFrame is returned for frame types this layer does not
	// speak.
	ErrUnknownFrame = errors.New("live: unknown frame type")

	// ErrInvalidEvent is returned when an event payload cannot be turned
	// into a dispatchable event.
	ErrInvalidEvent = errors.New("live: invalid event payload")

	// ErrSessionClosed is returned when a send is attempted on a closed
	// session.
	ErrSessionClosed = errors.New("live: session closed")

	// ErrSendBufferFull is returned when the outbound queue is full and a
	// frame is dropped.
	ErrSendBufferFull = errors.New("live: send buffer full")

	// ErrBindRequired is returned when a Server is constructed without a
	// bind function.
	ErrBindRequired = errors.New("live: server config requires a bind function")
)

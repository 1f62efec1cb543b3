package fetch

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/liven-dev/liven/pkg/envelope"
)

// Doer issues a single HTTP exchange. *http.Client satisfies it; tests
// substitute scripted fakes.
type Doer interface {
	Do(req *http.Request) (*http.Response, error)
}

// Config holds executor configuration.
type Config struct {
	// Retries is the total attempt bound per Execute call, counting the
	// first attempt. Values below 1 fall back to the default.
	// Default: 3.
	Retries int

	// Delay is the fixed wait between attempts. There is no backoff growth.
	// Default: 500ms.
	Delay time.Duration

	// Debug enables per-attempt diagnostic logging.
	// Default: false.
	Debug bool

	// Logger receives debug output.
	// Default: slog.Default().
	Logger *slog.Logger

	// Transport performs the HTTP exchanges.
	// Default: an http.Client with a 30 second timeout.
	Transport Doer

	// Tokens supplies the anti-forgery token. It is consulted exactly once,
	// when the executor is constructed.
	// Default: no token. Requests still go out with an empty X-CSRFToken
	// header; the server is responsible for rejecting them.
	Tokens TokenSource
}

const (
	// DefaultRetries is the default total attempt bound.
	DefaultRetries = 3

	// DefaultDelay is the default fixed inter-attempt wait.
	DefaultDelay = 500 * time.Millisecond

	// DefaultTimeout is the default transport timeout.
	DefaultTimeout = 30 * time.Second
)

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() Config {
	return Config{
		Retries: DefaultRetries,
		Delay:   DefaultDelay,
	}
}

// Options overrides executor defaults for a single Execute call and carries
// the per-call completion callbacks. A nil *Options means "all defaults, no
// callbacks".
type Options struct {
	// Retries overrides the executor's attempt bound when above zero.
	Retries int

	// Delay overrides the executor's inter-attempt wait when above zero.
	Delay time.Duration

	// OnSuccess is invoked with the decoded envelope after a successful
	// transport exchange, before Execute returns. The envelope may still
	// report a business-level failure via Success=false.
	OnSuccess func(env *envelope.Envelope)

	// OnFailure is invoked with the terminal transport error after all
	// attempts are exhausted.
	OnFailure func(err error)

	// OnSettled is invoked exactly once per Execute call, after final
	// success or final failure.
	OnSettled func()
}

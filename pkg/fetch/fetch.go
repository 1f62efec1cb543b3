// Package fetch executes envelope-speaking HTTP requests with bounded retry.
//
// An Executor performs one logical request per Execute call. Transport-class
// failures (network errors and malformed envelopes) are retried up to a
// fixed attempt bound with a fixed inter-attempt delay. A well-formed
// envelope reporting Success=false is a business-level outcome, not a
// transport failure, and is never retried.
package fetch

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"time"

	"github.com/liven-dev/liven/pkg/envelope"
)

// maxBodyBytes caps how much of a response body is read before parsing.
const maxBodyBytes = 4 << 20

// Stats describes how an Execute call resolved.
type Stats struct {
	// Attempts is the number of transport exchanges performed.
	Attempts int

	// Elapsed is the wall time from first attempt to resolution, retry
	// waits included.
	Elapsed time.Duration
}

// Result is the successful outcome of an Execute call.
type Result struct {
	Envelope *envelope.Envelope
	Stats    Stats
}

// Executor performs envelope-speaking requests.
//
// The security token is read from the configured TokenSource once, at
// construction, and is immutable for the executor's lifetime.
type Executor struct {
	config Config
	token  string
	logger *slog.Logger
}

// New creates an Executor, applying defaults for unset configuration.
func New(cfg Config) *Executor {
	if cfg.Retries < 1 {
		cfg.Retries = DefaultRetries
	}
	if cfg.Delay <= 0 {
		cfg.Delay = DefaultDelay
	}
	if cfg.Logger == nil {
		cfg.Logger = slog.Default()
	}
	if cfg.Transport == nil {
		cfg.Transport = &http.Client{Timeout: DefaultTimeout}
	}

	token := ""
	if cfg.Tokens != nil {
		token = cfg.Tokens.Token()
	}

	return &Executor{
		config: cfg,
		token:  token,
		logger: cfg.Logger.With("component", "fetch"),
	}
}

// Token returns the security token captured at construction.
func (e *Executor) Token() string {
	return e.token
}

// Execute performs one logical request and resolves it to an envelope.
//
// GET requests encode the payload as query parameters; other methods encode
// it as a JSON body with Content-Type: application/json. Every request
// carries the security token in the X-CSRFToken header.
//
// Transport failures and malformed envelopes are retried identically until
// the attempt bound is reached, then surfaced as a *TransportError. The
// delay between attempts respects ctx cancellation. opts may be nil.
func (e *Executor) Execute(ctx context.Context, method, rawURL string, payload map[string]string, opts *Options) (*Result, error) {
	retries, delay := e.config.Retries, e.config.Delay
	if opts != nil {
		if opts.Retries > 0 {
			retries = opts.Retries
		}
		if opts.Delay > 0 {
			delay = opts.Delay
		}
	}

	// Deferred so it fires exactly once on every exit path.
	defer func() {
		if opts != nil && opts.OnSettled != nil {
			opts.OnSettled()
		}
	}()

	start := time.Now()
	var lastErr error
	performed := 0

loop:
	for attempt := 1; attempt <= retries; attempt++ {
		performed = attempt
		e.debug("request attempt", "method", method, "url", rawURL, "attempt", attempt, "bound", retries)

		env, err := e.attempt(ctx, method, rawURL, payload)
		if err == nil {
			if opts != nil && opts.OnSuccess != nil {
				opts.OnSuccess(env)
			}
			return &Result{
				Envelope: env,
				Stats:    Stats{Attempts: attempt, Elapsed: time.Since(start)},
			}, nil
		}
		lastErr = err
		e.debug("attempt failed", "method", method, "url", rawURL, "attempt", attempt, "error", err)

		if attempt == retries {
			break
		}

		select {
		case <-time.After(delay):
		case <-ctx.Done():
			lastErr = ctx.Err()
			break loop
		}
	}

	terr := &TransportError{Method: method, URL: rawURL, Attempts: performed, Err: lastErr}
	if opts != nil && opts.OnFailure != nil {
		opts.OnFailure(terr)
	}
	return nil, terr
}

// attempt performs a single transport exchange and validates the envelope.
func (e *Executor) attempt(ctx context.Context, method, rawURL string, payload map[string]string) (*envelope.Envelope, error) {
	req, err := e.buildRequest(ctx, method, rawURL, payload)
	if err != nil {
		return nil, err
	}

	resp, err := e.config.Transport.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch: do: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return nil, fmt.Errorf("fetch: read body: %w", err)
	}

	env, err := envelope.Parse(body)
	if err != nil {
		// A structurally invalid body is a transport-class failure even on
		// HTTP 200.
		return nil, err
	}
	return env, nil
}

func (e *Executor) buildRequest(ctx context.Context, method, rawURL string, payload map[string]string) (*http.Request, error) {
	var body io.Reader

	if method == http.MethodGet {
		if len(payload) > 0 {
			u, err := url.Parse(rawURL)
			if err != nil {
				return nil, fmt.Errorf("fetch: parse url: %w", err)
			}
			q := u.Query()
			for name, value := range payload {
				q.Set(name, value)
			}
			u.RawQuery = q.Encode()
			rawURL = u.String()
		}
	} else {
		if payload == nil {
			payload = map[string]string{}
		}
		encoded, err := json.Marshal(payload)
		if err != nil {
			return nil, fmt.Errorf("fetch: encode payload: %w", err)
		}
		body = bytes.NewReader(encoded)
	}

	req, err := http.NewRequestWithContext(ctx, method, rawURL, body)
	if err != nil {
		return nil, fmt.Errorf("fetch: create request: %w", err)
	}

	req.Header.Set(TokenHeader, e.token)
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	return req, nil
}

func (e *Executor) debug(msg string, args ...any) {
	if !e.config.Debug {
		return
	}
	e.logger.Debug(msg, args...)
}

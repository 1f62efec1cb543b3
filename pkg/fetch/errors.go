package fetch

import "fmt"

// TransportError is the terminal error returned by Execute after every
// attempt has failed. It wraps the failure of the last attempt, which may be
// a network error or envelope.ErrMalformed.
type TransportError struct {
	Method   string
	URL      string
	Attempts int
	Err      error
}

// Error returns the error message with request context.
func (e *TransportError) Error() string {
	return fmt.Sprintf("fetch: %s %s failed after %d attempt(s): %v", e.Method, e.URL, e.Attempts, e.Err)
}

// Unwrap returns the underlying error for errors.Is/As.
func (e *TransportError) Unwrap() error {
	return e.Err
}

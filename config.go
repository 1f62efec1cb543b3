package liven

import (
	"log/slog"
	"net/http"
	"net/url"

	"github.com/liven-dev/liven/pkg/binder"
	"github.com/liven-dev/liven/pkg/fetch"
	"github.com/liven-dev/liven/pkg/live"
)

// Config holds application configuration.
type Config struct {
	// Fetch configures each page's request executor. Its Tokens field is
	// ignored for live connections, where the token comes from the
	// connection's cookies.
	Fetch fetch.Config

	// Session configures live connections.
	// Default: live.DefaultSessionConfig().
	Session *live.SessionConfig

	// Source produces the page HTML a live connection binds against. The
	// served page must match what Source returns; patches are deltas
	// against that shared initial state. Required for live serving.
	Source func(r *http.Request) (string, error)

	// BaseURL resolves relative trigger URLs (href, action) to absolute
	// request URLs. Optional.
	BaseURL *url.URL

	// Middleware wraps every page's dispatch handler, outermost first.
	Middleware []binder.Middleware

	// ErrorMessage overrides the generic failure toast text.
	// Default: binder.DefaultErrorMessage.
	ErrorMessage string

	// Logger is the application logger.
	// Default: slog.Default().
	Logger *slog.Logger

	// CheckOrigin validates WebSocket upgrade origins.
	// Default: same-origin only.
	CheckOrigin func(r *http.Request) bool
}

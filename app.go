// Package liven turns attribute-marked links and forms on server-rendered
// pages into live, server-driven interactions.
//
// A page marks its triggers with data attributes:
//
//	<a href="/api/panel" data-liven-get data-liven-target="#panel">Refresh</a>
//	<form action="/api/contact" data-liven-post data-liven-target="#result">...</form>
//
// A thin browser client relays clicks and submits over a WebSocket. For each
// event, Liven executes the backing HTTP request with bounded retry, applies
// the outcome to a server-held copy of the page (region replacement, loading
// markers, toast notifications, button state), and streams the resulting DOM
// patches back.
//
// Create an App at startup and mount it:
//
//	app, err := liven.New(liven.Config{
//	    Source: renderPage,
//	    BaseURL: apiBase,
//	})
//	router.Get("/live", app.ServeHTTP)
package liven

import (
	"fmt"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/liven-dev/liven/pkg/binder"
	"github.com/liven-dev/liven/pkg/fetch"
	"github.com/liven-dev/liven/pkg/live"
	"github.com/liven-dev/liven/pkg/page"
)

// App is the application context owning page binding and the live endpoint.
// It replaces ad hoc globals: construct one at startup and pass it to
// whatever owns routing.
type App struct {
	config Config
	logger *slog.Logger
	live   *live.Server
}

// New creates an App, applying defaults for unset configuration.
//
// Config.Source is only required when the App serves live connections;
// an App used purely through NewPage may omit it.
func New(cfg Config) (*App, error) {
	if cfg.Logger == nil {
		cfg.Logger = slog.Default()
	}

	app := &App{
		config: cfg,
		logger: cfg.Logger,
	}

	if cfg.Source != nil {
		server, err := live.NewServer(live.ServerConfig{
			Bind:        app.bindRequest,
			Session:     cfg.Session,
			Logger:      cfg.Logger,
			CheckOrigin: cfg.CheckOrigin,
		})
		if err != nil {
			return nil, fmt.Errorf("liven: create live server: %w", err)
		}
		app.live = server
	}

	return app, nil
}

// NewPage parses page HTML and binds it: one executor and one binder per
// page, with the security token drawn from the given source.
func (a *App) NewPage(html string, tokens fetch.TokenSource) (*binder.Binder, error) {
	doc, err := page.NewDocument(html)
	if err != nil {
		return nil, err
	}

	fetchCfg := a.config.Fetch
	fetchCfg.Tokens = tokens
	if fetchCfg.Logger == nil {
		fetchCfg.Logger = a.logger
	}

	return binder.Bind(binder.Config{
		Executor:     fetch.New(fetchCfg),
		Document:     doc,
		Logger:       a.logger,
		Middleware:   a.config.Middleware,
		BaseURL:      a.config.BaseURL,
		ErrorMessage: a.config.ErrorMessage,
	})
}

// bindRequest builds the bound page for an incoming live connection. The
// connection's cookies supply the security token, so each page's executor
// captures the token of the browser it serves.
func (a *App) bindRequest(r *http.Request) (*binder.Binder, error) {
	html, err := a.config.Source(r)
	if err != nil {
		return nil, fmt.Errorf("liven: page source: %w", err)
	}
	return a.NewPage(html, fetch.CookieString(r.Header.Get("Cookie")))
}

// ServeHTTP exposes the live WebSocket endpoint.
func (a *App) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if a.live == nil {
		http.Error(w, "live endpoint not configured", http.StatusNotImplemented)
		return
	}
	a.live.ServeHTTP(w, r)
}

// Mount registers the live endpoint on a chi router.
func (a *App) Mount(r chi.Router, pattern string) {
	r.Get(pattern, a.ServeHTTP)
}

// Package live streams page interactions over a WebSocket connection.
//
// A thin browser client relays trigger activations (clicks on marked
// anchors, submits of marked forms) as JSON event frames. The server
// dispatches each event through the page's binder and answers with patch
// frames describing the document mutations to apply.
//
// The application is responsible for serving page HTML that matches the
// document its bind function constructs; patches are deltas against that
// shared initial state.
package live

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/gorilla/websocket"

	"github.com/liven-dev/liven/pkg/binder"
)

// BindFunc constructs the bound page for an incoming live connection. The
// request gives access to the client's cookies, which carry the security
// token.
type BindFunc func(r *http.Request) (*binder.Binder, error)

// ServerConfig holds configuration for the live endpoint.
type ServerConfig struct {
	// Bind constructs a bound page per connection. Required.
	Bind BindFunc

	// Session is the per-connection configuration.
	// Default: DefaultSessionConfig().
	Session *SessionConfig

	// Logger receives connection diagnostics.
	// Default: slog.Default().
	Logger *slog.Logger

	// CheckOrigin validates the request origin before upgrading.
	// Default: same-origin only (the websocket package's default).
	CheckOrigin func(r *http.Request) bool

	// ReadBufferSize and WriteBufferSize size the connection buffers.
	// Default: 4096 each.
	ReadBufferSize  int
	WriteBufferSize int
}

// Server upgrades HTTP requests to live sessions.
type Server struct {
	config   ServerConfig
	logger   *slog.Logger
	upgrader websocket.Upgrader
}

// NewServer creates a live endpoint.
func NewServer(cfg ServerConfig) (*Server, error) {
	if cfg.Bind == nil {
		return nil, ErrBindRequired
	}
	if cfg.Session == nil {
		cfg.Session = DefaultSessionConfig()
	}
	if cfg.Logger == nil {
		cfg.Logger = slog.Default()
	}
	if cfg.ReadBufferSize == 0 {
		cfg.ReadBufferSize = 4096
	}
	if cfg.WriteBufferSize == 0 {
		cfg.WriteBufferSize = 4096
	}

	return &Server{
		config: cfg,
		logger: cfg.Logger.With("component", "live"),
		upgrader: websocket.Upgrader{
			ReadBufferSize:  cfg.ReadBufferSize,
			WriteBufferSize: cfg.WriteBufferSize,
			CheckOrigin:     cfg.CheckOrigin,
		},
	}, nil
}

// ServeHTTP implements http.Handler. It binds a page for the connection,
// upgrades, and runs the session until the client goes away.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	b, err := s.config.Bind(r)
	if err != nil {
		s.logger.Error("bind failed", "error", err)
		http.Error(w, "failed to bind page", http.StatusInternalServerError)
		return
	}

	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		// Upgrade already replied to the client.
		s.logger.Warn("upgrade failed", "error", err)
		return
	}

	session := NewSession(conn, b, s.config.Session.Clone(), s.logger)
	s.logger.Debug("session started", "remote", r.RemoteAddr)

	go session.WriteLoop()
	session.ReadLoop(r.Context())

	s.logger.Debug("session ended", "remote", r.RemoteAddr)
}

// Mount registers the live endpoint on a chi router.
func (s *Server) Mount(r chi.Router, pattern string) {
	r.Get(pattern, s.ServeHTTP)
}

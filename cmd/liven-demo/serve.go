package main

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/url"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"

	"github.com/liven-dev/liven"
	"github.com/liven-dev/liven/pkg/binder"
	"github.com/liven-dev/liven/pkg/fetch"
	"github.com/liven-dev/liven/pkg/middleware"
)

func serveCmd() *cobra.Command {
	var (
		addr  string
		debug bool
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the demo server",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(addr, debug)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", ":8080", "listen address")
	cmd.Flags().BoolVar(&debug, "debug", false, "enable debug logging")
	return cmd
}

func runServe(addr string, debug bool) error {
	level := slog.LevelInfo
	if debug {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))

	base, err := url.Parse(baseURL(addr))
	if err != nil {
		return err
	}

	app, err := liven.New(liven.Config{
		Fetch: fetch.Config{
			Retries: 3,
			Delay:   500 * time.Millisecond,
			Debug:   debug,
		},
		Source: func(r *http.Request) (string, error) {
			return demoPage, nil
		},
		BaseURL: base,
		Middleware: []binder.Middleware{
			middleware.Metrics(),
			middleware.OTel(),
		},
		Logger: logger,
		// The demo dials itself from the same host.
		CheckOrigin: func(r *http.Request) bool { return true },
	})
	if err != nil {
		return err
	}

	router := chi.NewRouter()
	router.Use(chimw.Recoverer)

	router.Get("/", servePage)
	router.Get("/client.js", serveClient)
	router.Get("/api/panel", servePanel)
	router.Post("/api/contact", serveContact)
	router.Handle("/metrics", promhttp.Handler())
	app.Mount(router, "/live")

	server := &http.Server{
		Addr:              addr,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		logger.Info("demo server listening", "addr", addr)
		errCh <- server.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return server.Shutdown(shutdownCtx)
}

// baseURL turns a listen address into the absolute URL the executor uses to
// reach the demo's own API.
func baseURL(addr string) string {
	if strings.HasPrefix(addr, ":") {
		addr = "localhost" + addr
	}
	return "http://" + addr
}

func servePage(w http.ResponseWriter, r *http.Request) {
	if _, err := r.Cookie(fetch.TokenCookie); err != nil {
		http.SetCookie(w, &http.Cookie{
			Name:     fetch.TokenCookie,
			Value:    newToken(),
			Path:     "/",
			SameSite: http.SameSiteLaxMode,
		})
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Write([]byte(demoPage))
}

func serveClient(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/javascript; charset=utf-8")
	w.Write([]byte(clientJS))
}

func servePanel(w http.ResponseWriter, r *http.Request) {
	writeEnvelope(w, http.StatusOK, map[string]any{
		"success": true,
		"data":    "<p>Panel refreshed at " + time.Now().Format(time.TimeOnly) + "</p>",
		"message": "Panel reloaded",
	})
}

func serveContact(w http.ResponseWriter, r *http.Request) {
	if !validToken(r) {
		writeEnvelope(w, http.StatusForbidden, map[string]any{
			"success": false,
			"message": "Invalid security token",
		})
		return
	}

	var payload map[string]string
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		writeEnvelope(w, http.StatusBadRequest, map[string]any{
			"success": false,
			"message": "Malformed request body",
		})
		return
	}

	if payload["email"] == "" {
		writeEnvelope(w, http.StatusOK, map[string]any{
			"success": false,
			"message": "Email is required",
		})
		return
	}

	writeEnvelope(w, http.StatusOK, map[string]any{
		"success": true,
		"html":    "<p>Thanks! We will get back to you.</p>",
		"message": "Message sent",
	})
}

// validToken applies the double-submit check: the replayed header must match
// the cookie.
func validToken(r *http.Request) bool {
	cookie, err := r.Cookie(fetch.TokenCookie)
	if err != nil || cookie.Value == "" {
		return false
	}
	return r.Header.Get(fetch.TokenHeader) == cookie.Value
}

func writeEnvelope(w http.ResponseWriter, status int, env map[string]any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(env)
}

func newToken() string {
	buf := make([]byte, 16)
	if _, err := rand.Read(buf); err != nil {
		return "fallback-token"
	}
	return hex.EncodeToString(buf)
}

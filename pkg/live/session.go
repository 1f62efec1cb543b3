package live

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"github.com/liven-dev/liven/pkg/binder"
	"github.com/liven-dev/liven/pkg/page"
)

// Session drives one live connection: it reads trigger events from the
// client, dispatches them through the page's binder, and streams the
// resulting document mutations back as patch frames.
//
// Events are processed sequentially on the read loop goroutine, so the
// page document sees single-threaded access.
type Session struct {
	conn   *websocket.Conn
	binder *binder.Binder
	doc    *page.Document
	config *SessionConfig
	logger *slog.Logger

	send chan *Frame
	done chan struct{}

	closeOnce sync.Once

	// patches accumulates mutations recorded during the current event
	// dispatch. Touched only from the read loop goroutine.
	patches []Patch
}

// NewSession wires a session to an upgraded connection and a bound page.
// The session installs itself as the document's mutation recorder.
func NewSession(conn *websocket.Conn, b *binder.Binder, cfg *SessionConfig, logger *slog.Logger) *Session {
	if cfg == nil {
		cfg = DefaultSessionConfig()
	}
	if logger == nil {
		logger = slog.Default()
	}

	s := &Session{
		conn:   conn,
		binder: b,
		doc:    b.Document(),
		config: cfg,
		logger: logger.With("component", "live"),
		send:   make(chan *Frame, cfg.SendBuffer),
		done:   make(chan struct{}),
	}
	s.doc.SetRecorder(s)
	return s
}

// Record implements page.Recorder. Mutations applied during an event
// dispatch are collected and flushed as one patch frame afterwards.
func (s *Session) Record(m page.Mutation) {
	s.patches = append(s.patches, PatchFromMutation(m))
}

// ReadLoop continuously reads frames from the connection and processes
// them. It blocks until the connection closes or a read fails.
func (s *Session) ReadLoop(ctx context.Context) {
	defer s.Close()

	s.conn.SetReadLimit(s.config.MaxMessageSize)

	for {
		s.conn.SetReadDeadline(time.Now().Add(s.config.ReadTimeout))

		_, msg, err := s.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err,
				websocket.CloseGoingAway,
				websocket.CloseAbnormalClosure,
				websocket.CloseNormalClosure) {
				s.logger.Error("read error", "error", err)
			}
			return
		}

		frame, err := DecodeFrame(msg)
		if err != nil {
			s.logger.Warn("frame decode error", "error", err)
			s.enqueue(&Frame{Type: FrameError, Message: "invalid frame"})
			continue
		}

		switch frame.Type {
		case FramePing:
			s.enqueue(&Frame{Type: FramePong})

		case FrameEvent:
			s.handleEvent(ctx, frame.Event)

		default:
			s.logger.Warn("unexpected frame type", "type", frame.Type)
		}
	}
}

// handleEvent dispatches one trigger event and flushes the mutations it
// produced.
func (s *Session) handleEvent(ctx context.Context, payload *EventPayload) {
	ev, err := payload.BinderEvent()
	if err != nil {
		s.logger.Warn("event rejected", "error", err)
		s.enqueue(&Frame{Type: FrameError, Message: "invalid event"})
		return
	}

	s.patches = nil
	if err := s.binder.Dispatch(ctx, ev); err != nil {
		// Failures were already surfaced on the page as a toast; log for
		// the operator and carry on.
		s.logger.Warn("event dispatch failed",
			"kind", payload.Kind, "selector", payload.Selector, "error", err)
	}

	if len(s.patches) > 0 {
		s.enqueue(&Frame{Type: FramePatch, Patches: s.patches})
		s.patches = nil
	}
}

// WriteLoop sends queued frames and heartbeat pings until the session
// closes.
func (s *Session) WriteLoop() {
	ticker := time.NewTicker(s.config.HeartbeatInterval)
	defer ticker.Stop()

	for {
		select {
		case frame := <-s.send:
			data, err := EncodeFrame(frame)
			if err != nil {
				s.logger.Error("frame encode error", "error", err)
				continue
			}
			s.conn.SetWriteDeadline(time.Now().Add(s.config.WriteTimeout))
			if err := s.conn.WriteMessage(websocket.TextMessage, data); err != nil {
				s.logger.Error("write error", "error", err)
				s.Close()
				return
			}

		case <-ticker.C:
			deadline := time.Now().Add(s.config.WriteTimeout)
			if err := s.conn.WriteControl(websocket.PingMessage, nil, deadline); err != nil {
				s.logger.Error("ping error", "error", err)
				s.Close()
				return
			}

		case <-s.done:
			return
		}
	}
}

// enqueue queues a frame for the write loop, dropping it when the session
// is closed or the buffer is full.
func (s *Session) enqueue(frame *Frame) {
	select {
	case <-s.done:
		s.logger.Debug("frame dropped", "error", ErrSessionClosed)
	case s.send <- frame:
	default:
		s.logger.Warn("frame dropped", "error", ErrSendBufferFull, "type", frame.Type)
	}
}

// Close tears the session down. Safe to call more than once.
func (s *Session) Close() {
	s.closeOnce.Do(func() {
		close(s.done)
		s.conn.Close()
	})
}

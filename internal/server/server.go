// Package server exposes the agent over a WebSocket command surface.
// Clients connect to /ws and exchange JSON command/response envelopes.
package server

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"github.com/computeruse/computer-agent/internal/accessibility"
	"github.com/computeruse/computer-agent/internal/automation"
	"github.com/computeruse/computer-agent/internal/config"
	"github.com/computeruse/computer-agent/internal/terminal"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10
	maxMessageSize = 10 * 1024 * 1024 // 10 MB
	sendBufferSize = 256
)

// Message represents an incoming command envelope.
type Message struct {
	Command   string          `json:"command"`
	RequestID string          `json:"request_id,omitempty"`
	Params    json.RawMessage `json:"params,omitempty"`
}

// Response represents an outgoing response envelope.
type Response struct {
	Command   string      `json:"command"`
	RequestID string      `json:"request_id,omitempty"`
	Success   bool        `json:"success"`
	Data      interface{} `json:"data,omitempty"`
	Error     string      `json:"error,omitempty"`
}

// CommandHandler handles a single command. The client is passed through so
// handlers can push asynchronous frames (terminal output) outside the
// request/response cycle.
type CommandHandler func(ctx context.Context, c *Client, params json.RawMessage) (interface{}, error)

// Server accepts WebSocket connections and dispatches commands to the
// accessibility, automation, shell and terminal subsystems.
type Server struct {
	cfg      *config.Config
	platform accessibility.Platform
	auto     *automation.Controller
	logger   *slog.Logger

	handlers map[string]CommandHandler
	upgrader websocket.Upgrader

	mu      sync.Mutex
	clients map[*Client]struct{}
}

// New creates a Server wired to the given platform.
func New(cfg *config.Config, platform accessibility.Platform, logger *slog.Logger) *Server {
	s := &Server{
		cfg:      cfg,
		platform: platform,
		auto:     automation.New(logger),
		logger:   logger,
		handlers: make(map[string]CommandHandler),
		upgrader: websocket.Upgrader{
			ReadBufferSize:  4096,
			WriteBufferSize: 4096,
			CheckOrigin:     func(*http.Request) bool { return true },
		},
		clients: make(map[*Client]struct{}),
	}
	s.registerHandlers()
	return s
}

// Handler returns the HTTP handler serving the WebSocket endpoint.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/ws", s.serveWS)
	return mux
}

// Run serves until the context is cancelled.
func (s *Server) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:    s.cfg.GetListenAddr(),
		Handler: s.Handler(),
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("listening", "addr", srv.Addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		srv.Shutdown(shutdownCtx)
		s.closeClients()
		return ctx.Err()
	case err := <-errCh:
		if err != nil && err != http.ErrServerClosed {
			return fmt.Errorf("serving: %w", err)
		}
		return nil
	}
}

func (s *Server) closeClients() {
	s.mu.Lock()
	defer s.mu.Unlock()
	for c := range s.clients {
		c.close()
	}
}

// Client is one WebSocket connection. Outgoing messages go through a
// buffered channel drained by a single write pump, so handlers running in
// parallel never write to the connection directly.
type Client struct {
	srv   *Server
	conn  *websocket.Conn
	terms *terminal.Manager

	sendCh    chan []byte
	done      chan struct{}
	closeOnce sync.Once
}

func (s *Server) serveWS(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.logger.Error("upgrading connection", "error", err)
		return
	}

	c := &Client{
		srv:    s,
		conn:   conn,
		terms:  terminal.NewManager(),
		sendCh: make(chan []byte, sendBufferSize),
		done:   make(chan struct{}),
	}

	s.mu.Lock()
	s.clients[c] = struct{}{}
	s.mu.Unlock()

	s.logger.Info("client connected", "remote", conn.RemoteAddr().String())

	go c.writePump()
	c.readPump(r.Context())

	s.mu.Lock()
	delete(s.clients, c)
	s.mu.Unlock()

	c.close()
	s.logger.Info("client disconnected", "remote", conn.RemoteAddr().String())
}

func (c *Client) close() {
	c.closeOnce.Do(func() {
		close(c.done)
		c.terms.StopAll()
		c.conn.Close()
	})
}

// readPump handles incoming messages until the connection drops.
func (c *Client) readPump(ctx context.Context) {
	c.conn.SetReadLimit(maxMessageSize)
	c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPingHandler(func(appData string) error {
		c.conn.SetReadDeadline(time.Now().Add(pongWait))
		c.conn.SetWriteDeadline(time.Now().Add(writeWait))
		return c.conn.WriteMessage(websocket.PongMessage, []byte(appData))
	})
	c.conn.SetPongHandler(func(string) error {
		c.conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		_, message, err := c.conn.ReadMessage()
		if err != nil {
			if !websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				c.srv.logger.Debug("read failed", "error", err)
			}
			return
		}
		go c.handleMessage(ctx, message)
	}
}

// writePump drains the send channel and keeps the connection alive with
// periodic pings.
func (c *Client) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer ticker.Stop()

	for {
		select {
		case <-c.done:
			return
		case message := <-c.sendCh:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.TextMessage, message); err != nil {
				return
			}
		case <-ticker.C:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

// handleMessage processes one command envelope.
func (c *Client) handleMessage(ctx context.Context, data []byte) {
	var msg Message
	if err := json.Unmarshal(data, &msg); err != nil {
		c.srv.logger.Error("parsing message", "error", err)
		c.Send(Response{
			Command: "error",
			Success: false,
			Error:   fmt.Sprintf("invalid message: %v", err),
		})
		return
	}

	c.srv.logger.Debug("received command", "command", msg.Command, "request_id", msg.RequestID)

	handler, ok := c.srv.handlers[msg.Command]
	if !ok {
		c.srv.logger.Warn("unknown command", "command", msg.Command)
		c.Send(Response{
			Command:   msg.Command,
			RequestID: msg.RequestID,
			Success:   false,
			Error:     fmt.Sprintf("unknown command: %s", msg.Command),
		})
		return
	}

	result, err := handler(ctx, c, msg.Params)

	resp := Response{
		Command:   msg.Command,
		RequestID: msg.RequestID,
		Success:   err == nil,
		Data:      result,
	}
	if err != nil {
		resp.Error = err.Error()
	}
	c.Send(resp)
}

// Send queues a response for delivery.
func (c *Client) Send(resp Response) {
	data, err := json.Marshal(resp)
	if err != nil {
		c.srv.logger.Error("marshaling response", "error", err)
		return
	}
	c.sendRaw(data)
}

// SendRaw queues any message for delivery without wrapping.
func (c *Client) SendRaw(msg interface{}) {
	data, err := json.Marshal(msg)
	if err != nil {
		c.srv.logger.Error("marshaling message", "error", err)
		return
	}
	c.sendRaw(data)
}

func (c *Client) sendRaw(data []byte) {
	select {
	case c.sendCh <- data:
	case <-c.done:
	default:
		c.srv.logger.Warn("send channel full, dropping message")
	}
}

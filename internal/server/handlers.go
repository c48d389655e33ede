// Package server command handler implementations.
package server

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/computeruse/computer-agent/internal/accessibility"
	"github.com/computeruse/computer-agent/internal/shell"
	"github.com/computeruse/computer-agent/internal/sysinfo"
	"github.com/computeruse/computer-agent/pkg/version"
)

// registerHandlers registers all command handlers.
// Command names match the Python server for API compatibility.
func (s *Server) registerHandlers() {
	// Basic
	s.handlers["ping"] = s.handlePing
	s.handlers["version"] = s.handleVersion
	s.handlers["system_stats"] = s.handleSystemStats
	s.handlers["list_applications"] = s.handleListApplications

	// Accessibility
	s.handlers["get_accessibility_tree"] = s.handleGetAccessibilityTree
	s.handlers["find_element"] = s.handleFindElement

	// Mouse
	s.handlers["left_click"] = s.handleLeftClick
	s.handlers["right_click"] = s.handleRightClick
	s.handlers["double_click"] = s.handleDoubleClick
	s.handlers["move_cursor"] = s.handleMoveCursor
	s.handlers["drag_to"] = s.handleDragTo
	s.handlers["scroll_up"] = s.handleScrollUp
	s.handlers["scroll_down"] = s.handleScrollDown
	s.handlers["get_cursor_position"] = s.handleGetCursorPosition

	// Keyboard
	s.handlers["type_text"] = s.handleTypeText
	s.handlers["press_key"] = s.handlePressKey
	s.handlers["hotkey"] = s.handleHotkey

	// Screen
	s.handlers["screenshot"] = s.handleScreenshot
	s.handlers["get_screen_size"] = s.handleGetScreenSize

	// Clipboard
	s.handlers["copy_to_clipboard"] = s.handleCopyToClipboard
	s.handlers["set_clipboard"] = s.handleSetClipboard

	// Shell
	s.handlers["run_command"] = s.handleRunCommand

	// Terminal
	s.handlers["start_terminal"] = s.handleStartTerminal
	s.handlers["terminal_input"] = s.handleTerminalInput
	s.handlers["terminal_resize"] = s.handleTerminalResize
	s.handlers["stop_terminal"] = s.handleStopTerminal
}

// decode unmarshals command params. Empty params leave the target zeroed.
func decode(params json.RawMessage, v interface{}) error {
	if len(params) == 0 {
		return nil
	}
	if err := json.Unmarshal(params, v); err != nil {
		return fmt.Errorf("invalid params: %w", err)
	}
	return nil
}

// Basic handlers

func (s *Server) handlePing(ctx context.Context, c *Client, params json.RawMessage) (interface{}, error) {
	return map[string]string{"pong": "ok"}, nil
}

func (s *Server) handleVersion(ctx context.Context, c *Client, params json.RawMessage) (interface{}, error) {
	return version.Get(), nil
}

func (s *Server) handleSystemStats(ctx context.Context, c *Client, params json.RawMessage) (interface{}, error) {
	return sysinfo.GetStats(ctx)
}

func (s *Server) handleListApplications(ctx context.Context, c *Client, params json.RawMessage) (interface{}, error) {
	procs, err := sysinfo.ListProcesses(ctx)
	if err != nil {
		return nil, err
	}
	return map[string]interface{}{"processes": procs, "count": len(procs)}, nil
}

// Accessibility handlers

type treeRequest struct {
	MaxDepth *int `json:"max_depth,omitempty"`
}

func (s *Server) handleGetAccessibilityTree(ctx context.Context, c *Client, params json.RawMessage) (interface{}, error) {
	var req treeRequest
	if err := decode(params, &req); err != nil {
		return nil, err
	}

	depth := s.cfg.GetMaxTreeDepth()
	if req.MaxDepth != nil {
		depth = *req.MaxDepth
	}

	return accessibility.Capture(s.platform, s.logger, accessibility.WithMaxDepth(depth))
}

type findElementRequest struct {
	Role  string `json:"role,omitempty"`
	Title string `json:"title,omitempty"`
	Value string `json:"value,omitempty"`
}

func (s *Server) handleFindElement(ctx context.Context, c *Client, params json.RawMessage) (interface{}, error) {
	var req findElementRequest
	if err := decode(params, &req); err != nil {
		return nil, err
	}
	if req.Role == "" && req.Title == "" && req.Value == "" {
		return nil, fmt.Errorf("at least one of role, title or value is required")
	}

	root, err := s.platform.SystemRoot()
	if err != nil {
		return nil, fmt.Errorf("accessing system element: %w", err)
	}

	builder := accessibility.NewBuilder(s.platform.Accessor(), s.logger)
	match, found := builder.Find(root, accessibility.Criteria{
		Role:  req.Role,
		Title: req.Title,
		Value: req.Value,
	})
	if !found {
		return nil, fmt.Errorf("element not found")
	}
	return match, nil
}

// Mouse handlers

type pointRequest struct {
	X *int `json:"x,omitempty"`
	Y *int `json:"y,omitempty"`
}

func (s *Server) handleLeftClick(ctx context.Context, c *Client, params json.RawMessage) (interface{}, error) {
	var req pointRequest
	if err := decode(params, &req); err != nil {
		return nil, err
	}
	s.auto.LeftClick(req.X, req.Y)
	return map[string]string{"status": "clicked"}, nil
}

func (s *Server) handleRightClick(ctx context.Context, c *Client, params json.RawMessage) (interface{}, error) {
	var req pointRequest
	if err := decode(params, &req); err != nil {
		return nil, err
	}
	s.auto.RightClick(req.X, req.Y)
	return map[string]string{"status": "clicked"}, nil
}

func (s *Server) handleDoubleClick(ctx context.Context, c *Client, params json.RawMessage) (interface{}, error) {
	var req pointRequest
	if err := decode(params, &req); err != nil {
		return nil, err
	}
	s.auto.DoubleClick(req.X, req.Y)
	return map[string]string{"status": "clicked"}, nil
}

func (s *Server) handleMoveCursor(ctx context.Context, c *Client, params json.RawMessage) (interface{}, error) {
	var req pointRequest
	if err := decode(params, &req); err != nil {
		return nil, err
	}
	if req.X == nil || req.Y == nil {
		return nil, fmt.Errorf("x and y are required")
	}
	s.auto.MoveCursor(*req.X, *req.Y)
	return map[string]string{"status": "moved"}, nil
}

type dragRequest struct {
	X        *int    `json:"x"`
	Y        *int    `json:"y"`
	Button   string  `json:"button,omitempty"`
	Duration float64 `json:"duration,omitempty"`
}

func (s *Server) handleDragTo(ctx context.Context, c *Client, params json.RawMessage) (interface{}, error) {
	var req dragRequest
	if err := decode(params, &req); err != nil {
		return nil, err
	}
	if req.X == nil || req.Y == nil {
		return nil, fmt.Errorf("x and y are required")
	}
	duration := req.Duration
	if duration <= 0 {
		duration = 0.5
	}
	s.auto.DragTo(*req.X, *req.Y, req.Button, time.Duration(duration*float64(time.Second)))
	return map[string]string{"status": "dragged"}, nil
}

type scrollRequest struct {
	Clicks int `json:"clicks,omitempty"`
}

func (s *Server) handleScrollUp(ctx context.Context, c *Client, params json.RawMessage) (interface{}, error) {
	var req scrollRequest
	if err := decode(params, &req); err != nil {
		return nil, err
	}
	if req.Clicks <= 0 {
		req.Clicks = 1
	}
	s.auto.ScrollUp(req.Clicks)
	return map[string]string{"status": "scrolled"}, nil
}

func (s *Server) handleScrollDown(ctx context.Context, c *Client, params json.RawMessage) (interface{}, error) {
	var req scrollRequest
	if err := decode(params, &req); err != nil {
		return nil, err
	}
	if req.Clicks <= 0 {
		req.Clicks = 1
	}
	s.auto.ScrollDown(req.Clicks)
	return map[string]string{"status": "scrolled"}, nil
}

func (s *Server) handleGetCursorPosition(ctx context.Context, c *Client, params json.RawMessage) (interface{}, error) {
	x, y := s.auto.CursorPosition()
	return map[string]int{"x": x, "y": y}, nil
}

// Keyboard handlers

type textRequest struct {
	Text string `json:"text"`
}

func (s *Server) handleTypeText(ctx context.Context, c *Client, params json.RawMessage) (interface{}, error) {
	var req textRequest
	if err := decode(params, &req); err != nil {
		return nil, err
	}
	s.auto.TypeText(req.Text)
	return map[string]string{"status": "typed"}, nil
}

type keyRequest struct {
	Key string `json:"key"`
}

func (s *Server) handlePressKey(ctx context.Context, c *Client, params json.RawMessage) (interface{}, error) {
	var req keyRequest
	if err := decode(params, &req); err != nil {
		return nil, err
	}
	if req.Key == "" {
		return nil, fmt.Errorf("key is required")
	}
	if err := s.auto.PressKey(req.Key); err != nil {
		return nil, err
	}
	return map[string]string{"status": "pressed"}, nil
}

type hotkeyRequest struct {
	Keys []string `json:"keys"`
}

func (s *Server) handleHotkey(ctx context.Context, c *Client, params json.RawMessage) (interface{}, error) {
	var req hotkeyRequest
	if err := decode(params, &req); err != nil {
		return nil, err
	}
	if len(req.Keys) == 0 {
		return nil, fmt.Errorf("keys are required")
	}
	if err := s.auto.Hotkey(req.Keys); err != nil {
		return nil, err
	}
	return map[string]string{"status": "pressed"}, nil
}

// Screen handlers

func (s *Server) handleScreenshot(ctx context.Context, c *Client, params json.RawMessage) (interface{}, error) {
	image, err := s.auto.Screenshot()
	if err != nil {
		return nil, err
	}
	return map[string]string{"image_data": image, "format": "png"}, nil
}

func (s *Server) handleGetScreenSize(ctx context.Context, c *Client, params json.RawMessage) (interface{}, error) {
	width, height := s.auto.ScreenSize()
	return map[string]int{"width": width, "height": height}, nil
}

// Clipboard handlers

func (s *Server) handleCopyToClipboard(ctx context.Context, c *Client, params json.RawMessage) (interface{}, error) {
	text, err := s.auto.ClipboardText()
	if err != nil {
		return nil, err
	}
	return map[string]string{"text": text}, nil
}

func (s *Server) handleSetClipboard(ctx context.Context, c *Client, params json.RawMessage) (interface{}, error) {
	var req textRequest
	if err := decode(params, &req); err != nil {
		return nil, err
	}
	if err := s.auto.SetClipboardText(req.Text); err != nil {
		return nil, err
	}
	return map[string]string{"status": "set"}, nil
}

// Shell handler

type runCommandRequest struct {
	Command string  `json:"command"`
	Timeout float64 `json:"timeout,omitempty"`
}

func (s *Server) handleRunCommand(ctx context.Context, c *Client, params json.RawMessage) (interface{}, error) {
	var req runCommandRequest
	if err := decode(params, &req); err != nil {
		return nil, err
	}
	if req.Command == "" {
		return nil, fmt.Errorf("command is required")
	}

	timeout := s.cfg.GetCommandTimeout()
	if req.Timeout > 0 {
		timeout = time.Duration(req.Timeout * float64(time.Second))
	}

	// The result carries the exit code and stderr; a non-zero exit is still
	// a successful command execution on the wire.
	return shell.Run(ctx, req.Command, timeout), nil
}

// Terminal handlers

type terminalRequest struct {
	TerminalID string `json:"terminal_id"`
	Data       string `json:"data,omitempty"`
	Rows       uint16 `json:"rows,omitempty"`
	Cols       uint16 `json:"cols,omitempty"`
}

func (s *Server) handleStartTerminal(ctx context.Context, c *Client, params json.RawMessage) (interface{}, error) {
	var req terminalRequest
	if err := decode(params, &req); err != nil {
		return nil, err
	}

	sess, err := c.terms.Start(req.TerminalID)
	if err != nil {
		return nil, err
	}

	if req.Rows > 0 && req.Cols > 0 {
		if err := c.terms.Resize(sess.ID, req.Rows, req.Cols); err != nil {
			s.logger.Warn("initial terminal resize failed", "terminal_id", sess.ID, "error", err)
		}
	}

	go s.streamTerminalOutput(c, sess.ID)

	return map[string]string{"status": "started", "terminal_id": sess.ID}, nil
}

// streamTerminalOutput pushes terminal output frames to the client until the
// session closes.
func (s *Server) streamTerminalOutput(c *Client, terminalID string) {
	outputCh, err := c.terms.Output(terminalID)
	if err != nil {
		return
	}

	for data := range outputCh {
		if len(data) == 0 {
			continue
		}
		c.SendRaw(map[string]interface{}{
			"command":     "terminal_output",
			"terminal_id": terminalID,
			"data":        strings.ToValidUTF8(string(data), "�"),
			"running":     true,
		})
	}

	c.SendRaw(map[string]interface{}{
		"command":     "terminal_output",
		"terminal_id": terminalID,
		"data":        "",
		"running":     false,
		"closed":      true,
	})
}

func (s *Server) handleTerminalInput(ctx context.Context, c *Client, params json.RawMessage) (interface{}, error) {
	var req terminalRequest
	if err := decode(params, &req); err != nil {
		return nil, err
	}
	if req.TerminalID == "" {
		return nil, fmt.Errorf("terminal_id is required")
	}
	if err := c.terms.Write(req.TerminalID, []byte(req.Data)); err != nil {
		return nil, err
	}
	return map[string]string{"status": "sent"}, nil
}

func (s *Server) handleTerminalResize(ctx context.Context, c *Client, params json.RawMessage) (interface{}, error) {
	var req terminalRequest
	if err := decode(params, &req); err != nil {
		return nil, err
	}
	if req.TerminalID == "" {
		return nil, fmt.Errorf("terminal_id is required")
	}
	if req.Rows == 0 || req.Cols == 0 {
		return nil, fmt.Errorf("rows and cols are required")
	}
	if err := c.terms.Resize(req.TerminalID, req.Rows, req.Cols); err != nil {
		return nil, err
	}
	return map[string]string{"status": "resized"}, nil
}

func (s *Server) handleStopTerminal(ctx context.Context, c *Client, params json.RawMessage) (interface{}, error) {
	var req terminalRequest
	if err := decode(params, &req); err != nil {
		return nil, err
	}
	if req.TerminalID == "" {
		return nil, fmt.Errorf("terminal_id is required")
	}
	if err := c.terms.Stop(req.TerminalID); err != nil {
		return nil, err
	}
	return map[string]string{"status": "stopped"}, nil
}

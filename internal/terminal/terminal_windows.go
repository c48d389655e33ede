//go:build windows

// Package terminal manages interactive PTY shell sessions. Interactive
// sessions are not implemented on Windows; callers get a structured error
// and should fall back to one-shot command execution.
package terminal

import "errors"

// ErrUnsupported is returned for every operation on Windows.
var ErrUnsupported = errors.New("interactive terminal sessions are not supported on windows")

// Session stub.
type Session struct {
	ID string
}

// Manager stub.
type Manager struct{}

// NewManager returns a manager whose operations all fail.
func NewManager() *Manager { return &Manager{} }

func (m *Manager) Start(id string) (*Session, error) { return nil, ErrUnsupported }

func (m *Manager) Write(id string, data []byte) error { return ErrUnsupported }

func (m *Manager) Resize(id string, rows, cols uint16) error { return ErrUnsupported }

func (m *Manager) Output(id string) (<-chan []byte, error) { return nil, ErrUnsupported }

func (m *Manager) Stop(id string) error { return ErrUnsupported }

func (m *Manager) StopAll() {}

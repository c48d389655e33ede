//go:build !windows

// Package terminal manages interactive PTY shell sessions.
package terminal

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/exec"
	"sync"

	"github.com/creack/pty"
	"github.com/google/uuid"
)

const outputBufferSize = 1024

// Session is one interactive PTY shell.
type Session struct {
	ID string

	cmd     *exec.Cmd
	pty     *os.File
	cancel  context.CancelFunc
	done    chan struct{}
	output  chan []byte
	mu      sync.RWMutex
	running bool
}

// Manager tracks active sessions by ID.
type Manager struct {
	sessions map[string]*Session
	mu       sync.RWMutex
}

// NewManager creates an empty session manager.
func NewManager() *Manager {
	return &Manager{sessions: make(map[string]*Session)}
}

// Start launches the user's shell in a new PTY session. An empty id gets a
// generated one.
func (m *Manager) Start(id string) (*Session, error) {
	if id == "" {
		id = uuid.NewString()
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if _, exists := m.sessions[id]; exists {
		return nil, fmt.Errorf("terminal %s already exists", id)
	}

	shell := os.Getenv("SHELL")
	if shell == "" {
		shell = "/bin/sh"
	}

	cmd := exec.Command(shell, "-l")
	cmd.Env = append(os.Environ(), "TERM=xterm-256color")

	ptmx, err := pty.Start(cmd)
	if err != nil {
		return nil, fmt.Errorf("starting PTY: %w", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	s := &Session{
		ID:      id,
		cmd:     cmd,
		pty:     ptmx,
		cancel:  cancel,
		done:    make(chan struct{}),
		output:  make(chan []byte, outputBufferSize),
		running: true,
	}
	_ = s.Resize(24, 80)

	go s.readOutput(ctx)
	go func() {
		cmd.Wait()
		s.mu.Lock()
		s.running = false
		s.mu.Unlock()
		cancel()
		close(s.done)
		close(s.output)
	}()

	m.sessions[id] = s
	return s, nil
}

// readOutput streams PTY output to the session channel. When the channel is
// full the oldest chunk is dropped so a slow consumer never blocks the shell.
func (s *Session) readOutput(ctx context.Context) {
	buf := make([]byte, 4096)
	for {
		select {
		case <-ctx.Done():
			return
		default:
		}

		n, err := s.pty.Read(buf)
		if err != nil {
			if err != io.EOF {
				s.mu.Lock()
				s.running = false
				s.mu.Unlock()
			}
			return
		}
		if n == 0 {
			continue
		}

		data := make([]byte, n)
		copy(data, buf[:n])

		select {
		case s.output <- data:
		case <-ctx.Done():
			return
		default:
			select {
			case <-s.output:
			default:
			}
			s.output <- data
		}
	}
}

// Resize changes the PTY window size.
func (s *Session) Resize(rows, cols uint16) error {
	return pty.Setsize(s.pty, &pty.Winsize{Rows: rows, Cols: cols})
}

// Running reports whether the shell process is still alive.
func (s *Session) Running() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.running
}

// Write sends raw bytes to the session's PTY.
func (m *Manager) Write(id string, data []byte) error {
	s, err := m.get(id)
	if err != nil {
		return err
	}
	if !s.Running() {
		return fmt.Errorf("terminal %s is not running", id)
	}
	_, err = s.pty.Write(data)
	return err
}

// Resize resizes a session.
func (m *Manager) Resize(id string, rows, cols uint16) error {
	s, err := m.get(id)
	if err != nil {
		return err
	}
	return s.Resize(rows, cols)
}

// Output returns the session's output channel. The channel closes when the
// shell exits.
func (m *Manager) Output(id string) (<-chan []byte, error) {
	s, err := m.get(id)
	if err != nil {
		return nil, err
	}
	return s.output, nil
}

// Stop terminates a session and removes it from the manager.
func (m *Manager) Stop(id string) error {
	m.mu.Lock()
	s, exists := m.sessions[id]
	if exists {
		delete(m.sessions, id)
	}
	m.mu.Unlock()

	if !exists {
		return fmt.Errorf("terminal %s not found", id)
	}

	s.cancel()
	if s.cmd.Process != nil {
		s.cmd.Process.Kill()
	}
	s.pty.Close()
	return nil
}

// StopAll terminates every session, used on shutdown.
func (m *Manager) StopAll() {
	m.mu.Lock()
	ids := make([]string, 0, len(m.sessions))
	for id := range m.sessions {
		ids = append(ids, id)
	}
	m.mu.Unlock()

	for _, id := range ids {
		m.Stop(id)
	}
}

func (m *Manager) get(id string) (*Session, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	s, exists := m.sessions[id]
	if !exists {
		return nil, fmt.Errorf("terminal %s not found", id)
	}
	return s, nil
}

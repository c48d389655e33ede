//go:build cgo

package automation

import (
	"fmt"
	"sync"

	"golang.design/x/clipboard"
)

// Clipboard wraps the system clipboard.
type Clipboard struct {
	initialized bool
	mu          sync.Mutex
}

// NewClipboard initializes clipboard access.
func NewClipboard() (*Clipboard, error) {
	if err := clipboard.Init(); err != nil {
		return nil, fmt.Errorf("initializing clipboard: %w", err)
	}
	return &Clipboard{initialized: true}, nil
}

// GetText returns the current clipboard text content.
func (c *Clipboard) GetText() (string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.initialized {
		return "", fmt.Errorf("clipboard not initialized")
	}
	return string(clipboard.Read(clipboard.FmtText)), nil
}

// SetText sets the clipboard text content.
func (c *Clipboard) SetText(text string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.initialized {
		return fmt.Errorf("clipboard not initialized")
	}
	clipboard.Write(clipboard.FmtText, []byte(text))
	return nil
}

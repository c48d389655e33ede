//go:build !cgo

// Package automation drives mouse, keyboard, clipboard and screen through the
// operating system. This file provides stubs when CGO is disabled.
package automation

import (
	"fmt"
	"log/slog"
	"time"
)

const errCGODisabled = "input automation requires CGO to be enabled"

// Controller stub for non-CGO builds.
type Controller struct{}

// New returns a controller whose operations all fail.
func New(logger *slog.Logger) *Controller {
	if logger != nil {
		logger.Warn(errCGODisabled)
	}
	return &Controller{}
}

func (c *Controller) LeftClick(x, y *int)   {}
func (c *Controller) RightClick(x, y *int)  {}
func (c *Controller) DoubleClick(x, y *int) {}
func (c *Controller) MoveCursor(x, y int)   {}

func (c *Controller) DragTo(x, y int, button string, duration time.Duration) {}

func (c *Controller) TypeText(text string) {}

func (c *Controller) PressKey(key string) error {
	return fmt.Errorf(errCGODisabled)
}

func (c *Controller) Hotkey(keys []string) error {
	return fmt.Errorf(errCGODisabled)
}

func (c *Controller) ScrollUp(clicks int)   {}
func (c *Controller) ScrollDown(clicks int) {}

func (c *Controller) CursorPosition() (x, y int) { return 0, 0 }
func (c *Controller) ScreenSize() (width, height int) {
	return 0, 0
}

func (c *Controller) Screenshot() (string, error) {
	return "", fmt.Errorf(errCGODisabled)
}

func (c *Controller) ClipboardText() (string, error) {
	return "", fmt.Errorf(errCGODisabled)
}

func (c *Controller) SetClipboardText(text string) error {
	return fmt.Errorf(errCGODisabled)
}

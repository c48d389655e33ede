//go:build cgo

// Package automation drives mouse, keyboard, clipboard and screen through the
// operating system. Every operation is a thin delegation to a platform call;
// no state is kept beyond the clipboard handle.
package automation

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/go-vgo/robotgo"
)

// Controller dispatches input and screen operations.
type Controller struct {
	logger *slog.Logger
	clip   *Clipboard
}

// New creates a Controller. Clipboard access is optional: when the platform
// clipboard cannot be initialized the controller still works and only the
// clipboard operations fail.
func New(logger *slog.Logger) *Controller {
	if logger == nil {
		logger = slog.Default()
	}
	clip, err := NewClipboard()
	if err != nil {
		logger.Warn("clipboard unavailable", "error", err)
	}
	return &Controller{logger: logger, clip: clip}
}

func buttonName(button string) string {
	switch button {
	case "right":
		return "right"
	case "middle", "center":
		return "center"
	default:
		return "left"
	}
}

// moveTo positions the cursor when coordinates are supplied.
func moveTo(x, y *int) {
	if x != nil && y != nil {
		robotgo.Move(*x, *y)
	}
}

// LeftClick clicks the left button, optionally moving the cursor first.
func (c *Controller) LeftClick(x, y *int) {
	moveTo(x, y)
	robotgo.Click("left", false)
}

// RightClick clicks the right button, optionally moving the cursor first.
func (c *Controller) RightClick(x, y *int) {
	moveTo(x, y)
	robotgo.Click("right", false)
}

// DoubleClick double-clicks the left button, optionally moving the cursor first.
func (c *Controller) DoubleClick(x, y *int) {
	moveTo(x, y)
	robotgo.Click("left", true)
}

// MoveCursor moves the cursor to absolute screen coordinates.
func (c *Controller) MoveCursor(x, y int) {
	robotgo.Move(x, y)
}

// DragTo presses a button at the current position, moves to the target and
// releases. Duration bounds the move; zero uses a default.
func (c *Controller) DragTo(x, y int, button string, duration time.Duration) {
	if duration <= 0 {
		duration = 500 * time.Millisecond
	}
	name := buttonName(button)
	robotgo.Toggle(name, "down")
	robotgo.MoveSmooth(x, y, 1.0, float64(duration.Milliseconds())/100.0)
	robotgo.Toggle(name, "up")
}

// TypeText types a string as literal text.
func (c *Controller) TypeText(text string) {
	robotgo.TypeStr(text)
}

// PressKey taps a single key.
func (c *Controller) PressKey(key string) error {
	return robotgo.KeyTap(MapKey(key))
}

// Hotkey presses a key chord: the last key is tapped while the preceding
// keys are held as modifiers.
func (c *Controller) Hotkey(keys []string) error {
	if len(keys) == 0 {
		return fmt.Errorf("hotkey requires at least one key")
	}
	mapped := make([]string, len(keys))
	for i, k := range keys {
		mapped[i] = MapKey(k)
	}
	if len(mapped) == 1 {
		return robotgo.KeyTap(mapped[0])
	}
	modifiers := make([]interface{}, len(mapped)-1)
	for i, m := range mapped[:len(mapped)-1] {
		modifiers[i] = m
	}
	return robotgo.KeyTap(mapped[len(mapped)-1], modifiers...)
}

// ScrollUp scrolls up by the given number of clicks.
func (c *Controller) ScrollUp(clicks int) {
	if clicks <= 0 {
		clicks = 1
	}
	robotgo.Scroll(0, -clicks)
}

// ScrollDown scrolls down by the given number of clicks.
func (c *Controller) ScrollDown(clicks int) {
	if clicks <= 0 {
		clicks = 1
	}
	robotgo.Scroll(0, clicks)
}

// CursorPosition returns the current cursor location.
func (c *Controller) CursorPosition() (x, y int) {
	return robotgo.Location()
}

// ScreenSize returns the primary display dimensions.
func (c *Controller) ScreenSize() (width, height int) {
	return robotgo.GetScreenSize()
}

// ClipboardText returns the current clipboard text.
func (c *Controller) ClipboardText() (string, error) {
	if c.clip == nil {
		return "", fmt.Errorf("clipboard not available")
	}
	return c.clip.GetText()
}

// SetClipboardText replaces the clipboard text.
func (c *Controller) SetClipboardText(text string) error {
	if c.clip == nil {
		return fmt.Errorf("clipboard not available")
	}
	return c.clip.SetText(text)
}

//go:build !darwin || !cgo

// Package ax implements the accessibility Accessor and Platform contracts on
// top of the macOS AX API. This file provides the stub used on platforms
// without a native accessibility bridge.
package ax

import (
	"errors"

	"github.com/computeruse/computer-agent/internal/accessibility"
)

// ErrUnsupported is returned on platforms without an accessibility bridge.
var ErrUnsupported = errors.New("accessibility tree is not supported on this platform")

// Platform is the stub platform.
type Platform struct{}

var _ accessibility.Platform = Platform{}

// New reports that no accessibility bridge is available.
func New() (Platform, error) {
	return Platform{}, ErrUnsupported
}

// Accessor returns an accessor for which every attribute is absent.
func (Platform) Accessor() accessibility.Accessor { return stubAccessor{} }

// Applications always fails on unsupported platforms.
func (Platform) Applications() ([]accessibility.Application, error) {
	return nil, ErrUnsupported
}

// SystemRoot always fails on unsupported platforms.
func (Platform) SystemRoot() (accessibility.Node, error) {
	return nil, ErrUnsupported
}

type stubAccessor struct{}

func (stubAccessor) Get(accessibility.Node, string) (accessibility.Value, bool) {
	return accessibility.Value{}, false
}

func (stubAccessor) Children(accessibility.Node) ([]accessibility.Node, bool) {
	return nil, false
}

//go:build windows

// Package stderr provides a no-op implementation for Windows.
// Windows audio libraries don't produce the same stderr noise as ALSA.
package stderr

import "go.uber.org/zap"

// Capture is a no-op on Windows.
type Capture struct {
	lines chan string
}

// Start is a no-op on Windows.
func Start(_ *zap.Logger) (*Capture, error) {
	return &Capture{lines: make(chan string)}, nil
}

// Lines never receives on Windows.
func (c *Capture) Lines() <-chan string {
	return c.lines
}

// Stop closes Lines.
func (c *Capture) Stop() {
	close(c.lines)
}

//go:build !windows

// Package stderr captures stderr output from C libraries (ALSA, audio
// backends) that write directly to file descriptor 2, bypassing Go's
// os.Stderr. This prevents raw messages from corrupting the TUI layout.
package stderr

import (
	"os"

	"go.uber.org/zap"
	"golang.org/x/sys/unix"
)

// Capture redirects fd 2 into a pipe whose lines go to the logger and to
// Lines.
type Capture struct {
	orig  int
	r, w  *os.File
	lines chan string
	done  chan struct{}
}

// Start begins capturing stderr output.
// Must be called early in main(), before any audio backend initialization.
// On error the program can continue without capture.
func Start(log *zap.Logger) (*Capture, error) {
	r, w, err := os.Pipe()
	if err != nil {
		return nil, err
	}

	orig, err := unix.Dup(int(os.Stderr.Fd()))
	if err != nil {
		r.Close()
		w.Close()
		return nil, err
	}

	if err := unix.Dup2(int(w.Fd()), int(os.Stderr.Fd())); err != nil {
		unix.Close(orig)
		r.Close()
		w.Close()
		return nil, err
	}

	c := &Capture{
		orig:  orig,
		r:     r,
		w:     w,
		lines: make(chan string, linesBuffer),
		done:  make(chan struct{}),
	}
	go func() {
		defer close(c.done)
		pump(r, log.With(zap.String("component", "stderr")), c.lines)
	}()
	return c, nil
}

// Lines receives captured lines. It is closed after Stop.
func (c *Capture) Lines() <-chan string {
	return c.lines
}

// Stop restores the original stderr. Should be called on program exit.
func (c *Capture) Stop() {
	_ = unix.Dup2(c.orig, int(os.Stderr.Fd()))
	_ = unix.Close(c.orig)

	// The reader sees EOF once every write end is closed.
	c.w.Close()
	<-c.done
	c.r.Close()
}

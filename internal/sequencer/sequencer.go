// Package sequencer provides a single-goroutine FIFO executor.
//
// Everything posted to a Loop runs on the same goroutine, one function at a
// time, in submission order. Callers on other goroutines marshal work onto
// the loop with Post (fire and forget) or Call (wait for completion).
package sequencer

import (
	"errors"
	"sync"
)

// ErrClosed is returned when submitting to a closed loop.
var ErrClosed = errors.New("sequencer closed")

// Loop is a serial executor with an unbounded queue.
type Loop struct {
	mu     sync.Mutex
	queue  []func()
	closed bool

	wake    chan struct{}
	stopped chan struct{}
}

// New starts a loop goroutine.
func New() *Loop {
	l := &Loop{
		wake:    make(chan struct{}, 1),
		stopped: make(chan struct{}),
	}
	go l.run()
	return l
}

// Post enqueues fn without waiting. It never blocks, so it is safe to call
// from the loop itself or from callbacks running on foreign goroutines.
// Returns false if the loop is closed.
func (l *Loop) Post(fn func()) bool {
	l.mu.Lock()
	if l.closed {
		l.mu.Unlock()
		return false
	}
	l.queue = append(l.queue, fn)
	l.mu.Unlock()

	select {
	case l.wake <- struct{}{}:
	default:
	}
	return true
}

// Call runs fn on the loop and waits for it to return.
// It must not be called from the loop goroutine.
func (l *Loop) Call(fn func()) error {
	done := make(chan struct{})
	if !l.Post(func() {
		defer close(done)
		fn()
	}) {
		return ErrClosed
	}
	select {
	case <-done:
		return nil
	case <-l.stopped:
		// The loop may have run fn just before stopping.
		select {
		case <-done:
			return nil
		default:
			return ErrClosed
		}
	}
}

// Close stops accepting work. Functions already queued still run; the loop
// goroutine exits once the queue is drained. Close is idempotent and may be
// called from the loop itself.
func (l *Loop) Close() {
	l.mu.Lock()
	if l.closed {
		l.mu.Unlock()
		return
	}
	l.closed = true
	l.mu.Unlock()

	select {
	case l.wake <- struct{}{}:
	default:
	}
}

// Done is closed once the loop goroutine has exited.
func (l *Loop) Done() <-chan struct{} {
	return l.stopped
}

func (l *Loop) run() {
	defer close(l.stopped)
	for {
		l.mu.Lock()
		batch := l.queue
		l.queue = nil
		closed := l.closed
		l.mu.Unlock()

		for _, fn := range batch {
			fn()
		}

		if len(batch) > 0 {
			continue
		}
		if closed {
			return
		}
		<-l.wake
	}
}

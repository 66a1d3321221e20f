// Package progress implements the periodic status-reporting scheduler.
package progress

import (
	"context"
	"time"
)

// Reporter is what a Scheduler reports on.
type Reporter interface {
	// ReportInterval returns the current cadence. ok is false when ticking
	// should stop (no listener, or a non-positive interval).
	ReportInterval() (interval time.Duration, ok bool)
	// ReportProgress emits one status report.
	ReportProgress()
}

// Dispatcher marshals a function onto the reporter's sequencing context.
type Dispatcher interface {
	Post(fn func()) bool
}

// Scheduler is a cooperative repeating timer. Ticks run on the dispatcher, so
// Start and Stop must be called from the dispatcher's context as well.
//
// The scheduler does not own its reporter: ctx is the reporter's liveness
// token, and a tick that finds it cancelled does nothing and does not
// reschedule.
type Scheduler struct {
	ctx      context.Context
	target   Reporter
	dispatch Dispatcher

	timer   *time.Timer
	gen     uint64
	running bool
}

// New creates a stopped scheduler.
func New(ctx context.Context, target Reporter, dispatch Dispatcher) *Scheduler {
	return &Scheduler{
		ctx:      ctx,
		target:   target,
		dispatch: dispatch,
	}
}

// Start begins ticking if the reporter currently allows it. The first tick is
// dispatched immediately. Start is a no-op when already running.
func (s *Scheduler) Start() {
	if s.running || s.ctx.Err() != nil {
		return
	}
	if _, ok := s.target.ReportInterval(); !ok {
		return
	}
	s.running = true
	s.gen++
	gen := s.gen
	s.dispatch.Post(func() { s.tick(gen) })
}

// Stop cancels any pending tick. Idempotent.
func (s *Scheduler) Stop() {
	s.gen++
	s.running = false
	if s.timer != nil {
		s.timer.Stop()
		s.timer = nil
	}
}

// Running reports whether a tick is pending.
func (s *Scheduler) Running() bool {
	return s.running
}

func (s *Scheduler) live(gen uint64) bool {
	return s.running && gen == s.gen && s.ctx.Err() == nil
}

func (s *Scheduler) tick(gen uint64) {
	if !s.live(gen) {
		return
	}

	s.target.ReportProgress()

	// The report may have stopped us or released the reporter.
	if !s.live(gen) {
		return
	}
	interval, ok := s.target.ReportInterval()
	if !ok {
		s.running = false
		s.timer = nil
		return
	}
	s.timer = time.AfterFunc(interval, func() {
		s.dispatch.Post(func() { s.tick(gen) })
	})
}

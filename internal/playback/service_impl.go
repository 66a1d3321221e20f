// internal/playback/service_impl.go
package playback

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"github.com/samber/lo"
	"github.com/samber/mo"
	"go.uber.org/zap"

	"github.com/llehouerou/focusplay/internal/cookies"
	"github.com/llehouerou/focusplay/internal/focus"
	"github.com/llehouerou/focusplay/internal/player"
	"github.com/llehouerou/focusplay/internal/progress"
	"github.com/llehouerou/focusplay/internal/sequencer"
	"github.com/llehouerou/focusplay/internal/status"
)

// Verify coordinator implements its contracts at compile time.
var (
	_ Service           = (*coordinator)(nil)
	_ focus.Handler     = (*coordinator)(nil)
	_ progress.Reporter = (*coordinator)(nil)
)

// coordinator is the Service implementation.
//
// All mutation happens on loop. intent and lifecycle are written only there
// and published atomically, so Status and RequiresAudioFocus can be read from
// any goroutine, including another coordinator's loop holding the focus
// owner's lock.
type coordinator struct {
	id      string
	uri     string
	engine  player.Engine
	owner   *focus.Owner
	cookies cookies.Source
	log     *zap.Logger

	loop     *sequencer.Loop
	alive    context.Context
	kill     context.CancelFunc
	progress *progress.Scheduler

	intent    atomic.Pointer[status.PlaybackStatus]
	lifecycle atomic.Int32

	// Loop-owned.
	presenter FullscreenPresenter

	subs   []*Subscription
	subsMu sync.RWMutex
}

// Option configures a coordinator.
type Option func(*coordinator)

// WithCookies sets the transport credential source for remote URIs.
func WithCookies(src cookies.Source) Option {
	return func(c *coordinator) { c.cookies = src }
}

// WithLogger sets the logger.
func WithLogger(log *zap.Logger) Option {
	return func(c *coordinator) { c.log = log }
}

// New creates an unloaded coordinator for uri and registers it with owner.
// Call Release when done.
func New(engine player.Engine, owner *focus.Owner, uri string, opts ...Option) Service {
	c := &coordinator{
		id:      uuid.NewString(),
		uri:     uri,
		engine:  engine,
		owner:   owner,
		cookies: cookies.None{},
		log:     zap.NewNop(),
		loop:    sequencer.New(),
	}
	for _, opt := range opts {
		opt(c)
	}
	c.log = c.log.With(zap.String("component", "coordinator"), zap.String("player_id", c.id))
	c.alive, c.kill = context.WithCancel(context.Background())
	c.progress = progress.New(c.alive, c, c.loop)

	initial := status.Unloaded()
	c.intent.Store(&initial)
	c.lifecycle.Store(int32(StateUnloaded))

	engine.SetStateListener(engineEvents{c})
	owner.Register(c)
	return c
}

func (c *coordinator) ID() string   { return c.id }
func (c *coordinator) URI() string  { return c.uri }
func (c *coordinator) State() State { return State(c.lifecycle.Load()) }

func (c *coordinator) setState(s State) {
	prev := State(c.lifecycle.Swap(int32(s)))
	if prev != s {
		c.log.Debug("lifecycle", zap.Stringer("from", prev), zap.Stringer("to", s))
	}
}

func (c *coordinator) current() status.PlaybackStatus { return *c.intent.Load() }

func (c *coordinator) store(s status.PlaybackStatus) { c.intent.Store(&s) }

// call runs fn on the loop, mapping a closed loop to ErrReleased.
func (c *coordinator) call(fn func()) error {
	if err := c.loop.Call(fn); err != nil {
		if errors.Is(err, sequencer.ErrClosed) {
			return ErrReleased
		}
		return err
	}
	return nil
}

// post runs fn on the loop if the coordinator is loaded when fn runs.
func (c *coordinator) post(fn func()) {
	c.loop.Post(func() {
		if c.State().AcceptsCommands() {
			fn()
		}
	})
}

// Status returns the merged status overlaid with fresh engine observations.
func (c *coordinator) Status() status.PlaybackStatus {
	impl := c.engine.ImplementationName()
	if !c.State().AcceptsCommands() || !c.engine.Loaded() {
		return status.Unloaded().WithImplementation(impl)
	}

	s := c.current()
	s.IsLoaded = true
	s.URIPath = c.uri
	s.ImplementationName = impl
	s.DidJustFinish = false
	s.DurationMillis = orZero(c.engine.Duration())
	s.PositionMillis = orZero(c.engine.CurrentPosition())
	s.PlayableDurationMillis = orZero(c.engine.PlayableDuration())
	s.IsPlaying = c.engine.Playing()
	s.IsBuffering = c.engine.Buffering()
	s.IsLooping = c.engine.Looping()
	return s
}

// orZero treats an absent engine value as zero.
func orZero(v int64, ok bool) int64 {
	if !ok || v < 0 {
		return 0
	}
	return v
}

// Load prepares the engine with the URI and any cookies for it, then merges
// initial and applies the play/pause decision. A focus failure while applying
// initial does not fail the load.
func (c *coordinator) Load(ctx context.Context, initial status.Partial) (status.PlaybackStatus, error) {
	if err := initial.Validate(); err != nil {
		return c.Status(), err
	}

	var opErr error
	var start status.PlaybackStatus
	if err := c.call(func() {
		switch c.State() {
		case StateLoading, StateLoaded:
			opErr = fmt.Errorf("%w: already %s", ErrInvalidState, c.State())
			return
		case StateReleased:
			opErr = ErrReleased
			return
		}
		c.setState(StateLoading)
		start = status.Merge(c.current(), initial)
	}); err != nil {
		return status.Unloaded(), err
	}
	if opErr != nil {
		return c.Status(), opErr
	}

	// The engine loads off the loop so events and Release stay responsive.
	loadErr := c.engine.Load(ctx, start, c.uri, c.cookies.CookiesFor(c.uri))

	var st status.PlaybackStatus
	if err := c.call(func() {
		if c.State() == StateReleased {
			opErr = ErrReleased
			return
		}
		if loadErr != nil {
			c.setState(StateUnloaded)
			opErr = fmt.Errorf("%w: %w", ErrLoadFailed, loadErr)
			c.log.Warn("load failed", zap.String("uri", c.uri), zap.Error(loadErr))
			return
		}
		c.setState(StateLoaded)
		if err := c.apply(initial); err != nil {
			c.log.Info("initial status not fully applied", zap.Error(err))
		}
		st = c.Status()
		c.broadcast(st)
	}); err != nil {
		return status.Unloaded(), err
	}
	if opErr != nil {
		return c.Status(), opErr
	}
	c.log.Info("loaded", zap.String("uri", c.uri))
	return st, nil
}

// SetStatus merges p and applies the play/pause decision. The returned status
// reflects the outcome even when an error is returned.
func (c *coordinator) SetStatus(p status.Partial) (status.PlaybackStatus, error) {
	if err := p.Validate(); err != nil {
		return c.Status(), err
	}

	var st status.PlaybackStatus
	var opErr error
	if err := c.call(func() {
		opErr = c.apply(p)
		st = c.Status()
		c.broadcast(st)
	}); err != nil {
		return status.Unloaded(), err
	}
	return st, opErr
}

func (c *coordinator) Play() (status.PlaybackStatus, error) {
	return c.SetStatus(status.Partial{ShouldPlay: mo.Some(true)})
}

func (c *coordinator) Pause() (status.PlaybackStatus, error) {
	return c.SetStatus(status.Partial{ShouldPlay: mo.Some(false)})
}

// apply merges p and, once loaded, reconciles the engine. Engine panics are
// turned into errors so that callers always get a definite outcome.
func (c *coordinator) apply(p status.Partial) (err error) {
	defer func() {
		if r := recover(); r != nil {
			c.log.Error("recovered engine panic while setting status", zap.Any("panic", r))
			err = &EngineError{Message: fmt.Sprintf("encountered an error while setting status: %v", r)}
		}
	}()

	c.store(status.Merge(c.current(), p))
	if !c.State().AcceptsCommands() {
		return nil
	}
	return c.reconcile()
}

// reconcile drives the engine from the merged status.
func (c *coordinator) reconcile() error {
	s := c.current()
	c.engine.SetLooping(s.IsLooping)

	if !status.ShouldEngineRun(s) {
		c.engine.PauseImmediately()
		c.progress.Stop()
		return nil
	}
	return c.acquireFocusAndPlay()
}

// acquireFocusAndPlay starts the engine, requesting focus first unless muted.
// On focus failure the engine is left paused and the play intent kept.
func (c *coordinator) acquireFocusAndPlay() error {
	s := c.current()
	if !status.ShouldEngineRun(s) {
		return nil
	}

	if !s.IsMuted {
		if err := c.owner.AcquireAudioFocus(); err != nil {
			// A delayed or interrupted request stays queued; its grant
			// arrives as HandleFocusGained.
			c.engine.PauseImmediately()
			c.progress.Stop()
			c.log.Info("audio focus not acquired", zap.Error(err))
			return err
		}
	}

	c.updateVolume()
	if err := c.engine.Play(s.IsMuted, s.Rate, s.ShouldCorrectPitch); err != nil {
		return &EngineError{Message: err.Error(), Err: err}
	}
	c.progress.Start()
	c.owner.AbandonAudioFocusIfUnused()
	return nil
}

func (c *coordinator) updateVolume() {
	if !c.engine.Loaded() {
		return
	}
	s := c.current()
	c.engine.SetVolume(c.owner.VolumeForDuckAndFocus(s.IsMuted, s.Volume))
}

// SeekTo moves the engine position. Completion is reported asynchronously.
func (c *coordinator) SeekTo(positionMillis int64) error {
	if positionMillis < 0 {
		positionMillis = 0
	}
	var opErr error
	if err := c.call(func() {
		if !c.State().AcceptsCommands() {
			opErr = fmt.Errorf("%w: seek while %s", ErrInvalidState, c.State())
			return
		}
		if err := c.engine.SeekTo(positionMillis); err != nil {
			opErr = &EngineError{Message: err.Error(), Err: err}
		}
	}); err != nil {
		return err
	}
	return opErr
}

// SetSurface hands the video output target to the engine.
func (c *coordinator) SetSurface(target player.Surface) error {
	var opErr error
	if err := c.call(func() {
		if !c.State().AcceptsCommands() {
			opErr = fmt.Errorf("%w: set surface while %s", ErrInvalidState, c.State())
			return
		}
		c.engine.SetSurface(target, c.current().ShouldPlay)
	}); err != nil {
		return err
	}
	return opErr
}

func (c *coordinator) SetFullscreenPresenter(p FullscreenPresenter) {
	_ = c.call(func() { c.presenter = p })
}

// IsPresentedFullscreen is false without a presenter.
func (c *coordinator) IsPresentedFullscreen() bool {
	var fullscreen bool
	_ = c.call(func() {
		fullscreen = c.presenter != nil && c.presenter.IsBeingPresentedFullscreen()
	})
	return fullscreen
}

func (c *coordinator) ToggleFullscreen() {
	_ = c.call(func() {
		if c.presenter != nil {
			c.presenter.SetFullscreenMode(!c.presenter.IsBeingPresentedFullscreen())
		}
	})
}

func (c *coordinator) AudioSessionID() int            { return c.engine.AudioSessionID() }
func (c *coordinator) VideoSize() (width, height int) { return c.engine.VideoSize() }
func (c *coordinator) TrackInfo() *player.TrackInfo  { return c.engine.TrackInfo() }

// Release stops reporting, releases the engine and gives up focus if no
// sibling needs it. Idempotent.
func (c *coordinator) Release() error {
	err := c.call(func() {
		if c.State() == StateReleased {
			return
		}
		c.progress.Stop()
		c.kill()
		c.setState(StateReleased)
		c.engine.Release()
		c.owner.Unregister(c)
		c.owner.AbandonAudioFocusIfUnused()

		c.subsMu.Lock()
		for _, sub := range c.subs {
			sub.close()
		}
		c.subs = nil
		c.subsMu.Unlock()
		c.log.Info("released")
	})
	c.loop.Close()
	if errors.Is(err, ErrReleased) {
		return nil
	}
	return err
}

// Subscribe creates a new event subscription and starts periodic reporting
// if playback is running and the status allows it.
func (c *coordinator) Subscribe() *Subscription {
	sub := newSubscription()
	c.subsMu.Lock()
	if c.State() == StateReleased {
		c.subsMu.Unlock()
		sub.close()
		return sub
	}
	c.subs = append(c.subs, sub)
	c.subsMu.Unlock()

	c.post(func() {
		if c.engine.Playing() {
			c.progress.Start()
		}
	})
	return sub
}

// Unsubscribe removes sub and closes it. Reporting stops at the next tick
// when no subscriber is left.
func (c *coordinator) Unsubscribe(sub *Subscription) {
	c.subsMu.Lock()
	c.subs = lo.Without(c.subs, sub)
	c.subsMu.Unlock()
	sub.close()
}

func (c *coordinator) hasSubscribers() bool {
	c.subsMu.RLock()
	defer c.subsMu.RUnlock()
	return len(c.subs) > 0
}

func (c *coordinator) broadcast(st status.PlaybackStatus) {
	c.subsMu.RLock()
	defer c.subsMu.RUnlock()
	for _, sub := range c.subs {
		sub.sendStatus(st)
	}
}

func (c *coordinator) broadcastError(e ErrorEvent) {
	c.subsMu.RLock()
	defer c.subsMu.RUnlock()
	for _, sub := range c.subs {
		sub.sendError(e)
	}
}

func (c *coordinator) broadcastVideoSize(e VideoSize) {
	c.subsMu.RLock()
	defer c.subsMu.RUnlock()
	for _, sub := range c.subs {
		sub.sendVideoSize(e)
	}
}

// ReportInterval implements progress.Reporter.
func (c *coordinator) ReportInterval() (time.Duration, bool) {
	ms := c.current().UpdateIntervalMillis
	if ms <= 0 || !c.hasSubscribers() || c.State() == StateReleased {
		return 0, false
	}
	return time.Duration(ms) * time.Millisecond, true
}

// ReportProgress implements progress.Reporter.
func (c *coordinator) ReportProgress() {
	c.broadcast(c.Status())
}

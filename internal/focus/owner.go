package focus

import (
	"sync"

	"github.com/samber/lo"
	"go.uber.org/zap"
)

// DefaultDuckFactor scales volume while focus is ducked.
const DefaultDuckFactor = 0.5

// Handler is a player sharing focus through an Owner.
//
// Every method is called from foreign goroutines and must not block; players
// marshal the work onto their own sequencing context.
type Handler interface {
	HandleFocusGained()
	// HandleFocusLost pauses playback. A permanent loss always stops; a
	// transient one may leave muted playback running.
	HandleFocusLost(transient bool)
	UpdateVolumeMuteAndDuck()
	// RequiresAudioFocus reports whether the player is audibly playing.
	RequiresAudioFocus() bool
	// AwaitsAudioFocus reports whether the player wants to play audibly and
	// is waiting for a grant.
	AwaitsAudioFocus() bool
	OnHostPause()
	OnHostResume()
}

// Owner shares one Arbiter between every registered player. Acquisition and
// release are serialized so that focus is only abandoned when no player
// still needs it.
type Owner struct {
	arbiter    *Arbiter
	params     Params
	duckFactor float64
	log        *zap.Logger

	// mu serializes acquire/abandon decisions across players.
	mu sync.Mutex

	handlersMu sync.RWMutex
	handlers   []Handler
}

// OwnerOption configures an Owner.
type OwnerOption func(*Owner)

// WithDuckFactor sets the volume multiplier applied while ducked.
func WithDuckFactor(f float64) OwnerOption {
	return func(o *Owner) {
		if f >= 0 && f <= 1 {
			o.duckFactor = f
		}
	}
}

// NewOwner creates an owner requesting focus from system with params.
func NewOwner(system System, params Params, log *zap.Logger, opts ...OwnerOption) *Owner {
	o := &Owner{
		params:     params,
		duckFactor: DefaultDuckFactor,
		log:        log.With(zap.String("component", "focus-owner")),
	}
	for _, opt := range opts {
		opt(o)
	}
	o.arbiter = NewArbiter(system, log)
	o.arbiter.SetListener(ownerListener{o})
	return o
}

// Register adds a player. Registering twice is a no-op.
func (o *Owner) Register(h Handler) {
	o.handlersMu.Lock()
	defer o.handlersMu.Unlock()
	if !lo.Contains(o.handlers, h) {
		o.handlers = append(o.handlers, h)
	}
}

// Unregister removes a player.
func (o *Owner) Unregister(h Handler) {
	o.handlersMu.Lock()
	defer o.handlersMu.Unlock()
	o.handlers = lo.Without(o.handlers, h)
}

func (o *Owner) snapshot() []Handler {
	o.handlersMu.RLock()
	defer o.handlersMu.RUnlock()
	return append([]Handler(nil), o.handlers...)
}

// State returns the shared focus state.
func (o *Owner) State() State {
	return o.arbiter.State()
}

// AcquireAudioFocus requests focus unless it is already held.
func (o *Owner) AcquireAudioFocus() error {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.arbiter.RequestFocus(o.params)
}

// AbandonAudioFocusIfUnused releases focus when no registered player still
// requires it, then lets every player re-apply its volume. A pending request
// is kept while a player waits for its grant.
func (o *Owner) AbandonAudioFocusIfUnused() {
	o.mu.Lock()
	handlers := o.snapshot()
	if lo.SomeBy(handlers, Handler.RequiresAudioFocus) || o.pendingForLocked(handlers) {
		o.mu.Unlock()
		return
	}
	o.arbiter.ReleaseFocus()
	o.mu.Unlock()

	for _, h := range handlers {
		h.UpdateVolumeMuteAndDuck()
	}
}

func (o *Owner) pendingForLocked(handlers []Handler) bool {
	return o.arbiter.State() == StateRequested && lo.SomeBy(handlers, Handler.AwaitsAudioFocus)
}

// VolumeForDuckAndFocus returns the volume a player should output.
func (o *Owner) VolumeForDuckAndFocus(muted bool, requested float64) float64 {
	state := o.arbiter.State()
	switch {
	case muted || !state.Held():
		return 0
	case state == StateDucked:
		return requested * o.duckFactor
	default:
		return requested
	}
}

// HostPaused pauses every player and abandons focus, for a front-end going
// to the background.
func (o *Owner) HostPaused() {
	for _, h := range o.snapshot() {
		h.OnHostPause()
	}
	o.mu.Lock()
	o.arbiter.ReleaseFocus()
	o.mu.Unlock()
}

// HostResumed lets every player resume if its status says so.
func (o *Owner) HostResumed() {
	for _, h := range o.snapshot() {
		h.OnHostResume()
	}
}

type ownerListener struct{ o *Owner }

func (l ownerListener) OnFocusGained() {
	l.o.log.Debug("focus gained")
	for _, h := range l.o.snapshot() {
		h.HandleFocusGained()
	}
}

func (l ownerListener) OnFocusLost() {
	l.o.log.Info("focus lost")
	for _, h := range l.o.snapshot() {
		h.HandleFocusLost(false)
	}
}

func (l ownerListener) OnFocusLostTransient() {
	l.o.log.Info("focus lost transiently")
	for _, h := range l.o.snapshot() {
		h.HandleFocusLost(true)
	}
}

func (l ownerListener) OnFocusLostTransientDuck() {
	l.o.log.Debug("focus ducked")
	for _, h := range l.o.snapshot() {
		h.UpdateVolumeMuteAndDuck()
	}
}

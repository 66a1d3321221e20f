// Package focus arbitrates system audio focus for players.
//
// An Arbiter talks to the platform (System) for a single requester and turns
// platform notifications into four semantic events. An Owner shares one
// Arbiter between many players and decides when focus may be abandoned.
package focus

import (
	"errors"
	"sync"

	"go.uber.org/zap"
)

// ErrFocusNotAcquired is returned when focus is denied or not yet granted.
var ErrFocusNotAcquired = errors.New("unable to gain audio focus")

// State is the arbiter's view of its focus.
//
//	None ──request──▶ Requested ──granted──▶ Granted ◀──gain──┐
//	                     │  ▲                    │            │
//	                  failed│ transient loss   duck         Ducked
//	                     ▼  │                    └────────────▶┘
//	                   Denied
//
// Any state returns to None on release or on a permanent loss.
// Requested covers both a pending delayed grant and a transient loss waiting
// to be regained.
type State int

const (
	StateNone State = iota
	StateRequested
	StateGranted
	StateDucked
	StateDenied
)

func (s State) String() string {
	switch s {
	case StateNone:
		return "none"
	case StateRequested:
		return "requested"
	case StateGranted:
		return "granted"
	case StateDucked:
		return "ducked"
	case StateDenied:
		return "denied"
	default:
		return "unknown"
	}
}

// Held reports whether audible output is allowed in this state.
func (s State) Held() bool {
	return s == StateGranted || s == StateDucked
}

// ChangeCode is a platform focus-change notification.
type ChangeCode int

const (
	ChangeGain ChangeCode = iota + 1
	ChangeLoss
	ChangeLossTransient
	ChangeLossTransientCanDuck
)

// Result is the platform's synchronous answer to a request.
type Result int

const (
	RequestFailed Result = iota
	RequestGranted
	RequestDelayed
)

// Client receives focus-change notifications from a System.
type Client interface {
	OnFocusChange(code ChangeCode)
}

// System is the platform audio-focus API. Implementations must not deliver
// notifications synchronously from inside Request or Abandon.
type System interface {
	Request(c Client, p Params) Result
	Abandon(c Client)
}

// Listener receives the arbiter's semantic focus events.
type Listener interface {
	OnFocusGained()
	OnFocusLost()
	OnFocusLostTransient()
	OnFocusLostTransientDuck()
}

// Arbiter requests and releases focus for one requester.
type Arbiter struct {
	system System
	log    *zap.Logger

	mu       sync.Mutex
	state    State
	params   Params
	listener Listener
}

// NewArbiter creates an arbiter in StateNone.
func NewArbiter(system System, log *zap.Logger) *Arbiter {
	return &Arbiter{
		system: system,
		log:    log.With(zap.String("component", "focus")),
	}
}

// SetListener replaces the event listener. A nil listener drops events.
func (a *Arbiter) SetListener(l Listener) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.listener = l
}

// State returns the current focus state.
func (a *Arbiter) State() State {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.state
}

// RequestFocus asks the platform for focus. It is idempotent while focus is
// held, and returns ErrFocusNotAcquired on denial or while a grant is pending;
// a pending grant arrives later as OnFocusGained.
func (a *Arbiter) RequestFocus(p Params) error {
	a.mu.Lock()
	switch a.state {
	case StateGranted, StateDucked:
		a.mu.Unlock()
		return nil
	case StateRequested:
		a.mu.Unlock()
		return ErrFocusNotAcquired
	case StateNone, StateDenied:
	}
	a.state = StateRequested
	a.params = p
	a.mu.Unlock()

	res := a.system.Request(a, p)

	a.mu.Lock()
	defer a.mu.Unlock()
	if a.state != StateRequested {
		// Released or notified while the request was in flight.
		if a.state.Held() {
			return nil
		}
		return ErrFocusNotAcquired
	}
	switch res {
	case RequestGranted:
		a.setState(StateGranted)
		return nil
	case RequestDelayed:
		a.log.Info("focus grant delayed", zap.Stringer("gain", p.Gain))
		return ErrFocusNotAcquired
	default:
		a.setState(StateDenied)
		a.log.Info("focus denied", zap.Stringer("gain", p.Gain))
		return ErrFocusNotAcquired
	}
}

// ReleaseFocus abandons focus. No-op when already released.
func (a *Arbiter) ReleaseFocus() {
	a.mu.Lock()
	if a.state == StateNone {
		a.mu.Unlock()
		return
	}
	a.setState(StateNone)
	a.mu.Unlock()

	a.system.Abandon(a)
}

// OnFocusChange handles a platform notification. Exactly one listener event
// fires per recognized code; unknown codes and notifications arriving after
// release are ignored.
func (a *Arbiter) OnFocusChange(code ChangeCode) {
	a.mu.Lock()
	if a.state == StateNone {
		a.mu.Unlock()
		a.log.Debug("focus change ignored after release", zap.Int("code", int(code)))
		return
	}

	var fire func(Listener)
	switch code {
	case ChangeGain:
		a.setState(StateGranted)
		fire = Listener.OnFocusGained
	case ChangeLoss:
		a.setState(StateNone)
		fire = Listener.OnFocusLost
	case ChangeLossTransient:
		a.setState(StateRequested)
		fire = Listener.OnFocusLostTransient
	case ChangeLossTransientCanDuck:
		if a.params.PauseWhenDucked {
			a.setState(StateRequested)
			fire = Listener.OnFocusLostTransient
		} else {
			a.setState(StateDucked)
			fire = Listener.OnFocusLostTransientDuck
		}
	default:
		a.mu.Unlock()
		a.log.Debug("unknown focus change", zap.Int("code", int(code)))
		return
	}
	l := a.listener
	a.mu.Unlock()

	if l != nil {
		fire(l)
	}
}

// setState must be called with mu held.
func (a *Arbiter) setState(s State) {
	if s != a.state {
		a.log.Debug("focus state", zap.Stringer("from", a.state), zap.Stringer("to", s))
	}
	a.state = s
}

package focus

import (
	"sync"

	"github.com/samber/lo"

	"github.com/llehouerou/focusplay/internal/sequencer"
)

// ProcessSystem is an in-process focus system. It keeps a stack of holders:
// the top holder has focus, and a new request notifies the previous holder
// according to the requested gain mode. Notifications are delivered
// asynchronously and in order.
type ProcessSystem struct {
	mu      sync.Mutex
	stack   []holder
	delayed []holder
	blocked bool

	deliver *sequencer.Loop
}

type holder struct {
	client Client
	params Params
}

// NewProcessSystem creates an empty system. Close it when done.
func NewProcessSystem() *ProcessSystem {
	return &ProcessSystem{deliver: sequencer.New()}
}

// Close stops notification delivery.
func (s *ProcessSystem) Close() {
	s.deliver.Close()
}

// Request implements System.
func (s *ProcessSystem) Request(c Client, p Params) Result {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.removeLocked(c)
	if s.blocked {
		if p.AcceptDelayed {
			s.delayed = append(s.delayed, holder{c, p})
			return RequestDelayed
		}
		return RequestFailed
	}
	s.pushLocked(holder{c, p})
	return RequestGranted
}

// Abandon implements System. When the top holder leaves, the next one
// regains focus.
func (s *ProcessSystem) Abandon(c Client) {
	s.mu.Lock()
	defer s.mu.Unlock()

	wasTop := s.topLocked() == c
	s.removeLocked(c)
	if next := s.topLocked(); wasTop && next != nil {
		s.notifyLocked(next, ChangeGain)
	}
}

// SetBlocked simulates a period where nobody may take focus, such as a phone
// call. Unblocking grants every delayed request in order.
func (s *ProcessSystem) SetBlocked(blocked bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.blocked = blocked
	if blocked {
		return
	}
	pending := s.delayed
	s.delayed = nil
	for _, h := range pending {
		s.pushLocked(h)
		s.notifyLocked(h.client, ChangeGain)
	}
}

// Interrupt simulates another application requesting focus with gain. The
// returned function abandons that request.
func (s *ProcessSystem) Interrupt(gain GainMode) (end func()) {
	c := &foreignClient{gain: gain}
	s.Request(c, Params{Gain: gain, Usage: UsageMedia})
	return func() { s.Abandon(c) }
}

// Holder returns the client currently holding focus, or nil.
func (s *ProcessSystem) Holder() Client {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.topLocked()
}

func (s *ProcessSystem) pushLocked(h holder) {
	if prev := s.topLocked(); prev != nil {
		switch h.params.Gain {
		case Gain:
			// Permanent loss: the previous holder will not get focus back.
			s.stack = s.stack[:len(s.stack)-1]
			s.notifyLocked(prev, ChangeLoss)
		case GainTransientMayDuck:
			s.notifyLocked(prev, ChangeLossTransientCanDuck)
		case GainTransient, GainTransientExclusive:
			s.notifyLocked(prev, ChangeLossTransient)
		}
	}
	s.stack = append(s.stack, h)
}

func (s *ProcessSystem) removeLocked(c Client) {
	match := func(h holder) bool { return h.client == c }
	s.stack = lo.Reject(s.stack, func(h holder, _ int) bool { return match(h) })
	s.delayed = lo.Reject(s.delayed, func(h holder, _ int) bool { return match(h) })
}

func (s *ProcessSystem) topLocked() Client {
	if len(s.stack) == 0 {
		return nil
	}
	return s.stack[len(s.stack)-1].client
}

func (s *ProcessSystem) notifyLocked(c Client, code ChangeCode) {
	s.deliver.Post(func() { c.OnFocusChange(code) })
}

// foreignClient stands in for another application.
type foreignClient struct{ gain GainMode }

func (*foreignClient) OnFocusChange(ChangeCode) {}

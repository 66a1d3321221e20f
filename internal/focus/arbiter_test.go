package focus

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

type fakeSystem struct {
	result    Result
	requests  int
	abandons  int
	lastParam Params
}

func (s *fakeSystem) Request(_ Client, p Params) Result {
	s.requests++
	s.lastParam = p
	return s.result
}

func (s *fakeSystem) Abandon(Client) { s.abandons++ }

type recordingListener struct {
	events []string
}

func (l *recordingListener) OnFocusGained()            { l.events = append(l.events, "gained") }
func (l *recordingListener) OnFocusLost()              { l.events = append(l.events, "lost") }
func (l *recordingListener) OnFocusLostTransient()     { l.events = append(l.events, "transient") }
func (l *recordingListener) OnFocusLostTransientDuck() { l.events = append(l.events, "duck") }

func newTestArbiter(res Result) (*Arbiter, *fakeSystem, *recordingListener) {
	sys := &fakeSystem{result: res}
	a := NewArbiter(sys, zap.NewNop())
	l := &recordingListener{}
	a.SetListener(l)
	return a, sys, l
}

func TestArbiter_RequestGranted(t *testing.T) {
	a, sys, _ := newTestArbiter(RequestGranted)

	err := a.RequestFocus(DefaultParams())

	assert.NoError(t, err)
	assert.Equal(t, StateGranted, a.State())
	assert.Equal(t, 1, sys.requests)
}

func TestArbiter_RequestIdempotentWhileHeld(t *testing.T) {
	a, sys, _ := newTestArbiter(RequestGranted)
	_ = a.RequestFocus(DefaultParams())

	assert.NoError(t, a.RequestFocus(DefaultParams()))
	a.OnFocusChange(ChangeLossTransientCanDuck)
	assert.Equal(t, StateDucked, a.State())
	assert.NoError(t, a.RequestFocus(DefaultParams()))

	assert.Equal(t, 1, sys.requests, "no duplicate platform request")
}

func TestArbiter_RequestDenied(t *testing.T) {
	a, sys, _ := newTestArbiter(RequestFailed)

	err := a.RequestFocus(DefaultParams())

	assert.True(t, errors.Is(err, ErrFocusNotAcquired))
	assert.Equal(t, StateDenied, a.State())

	// A denied arbiter may try again.
	sys.result = RequestGranted
	assert.NoError(t, a.RequestFocus(DefaultParams()))
	assert.Equal(t, 2, sys.requests)
}

func TestArbiter_DelayedGrantIsFailureThenEvent(t *testing.T) {
	a, sys, l := newTestArbiter(RequestDelayed)

	err := a.RequestFocus(DefaultParams())
	assert.True(t, errors.Is(err, ErrFocusNotAcquired))
	assert.Equal(t, StateRequested, a.State())

	// Still pending: no second platform request.
	err = a.RequestFocus(DefaultParams())
	assert.True(t, errors.Is(err, ErrFocusNotAcquired))
	assert.Equal(t, 1, sys.requests)

	a.OnFocusChange(ChangeGain)
	assert.Equal(t, StateGranted, a.State())
	assert.Equal(t, []string{"gained"}, l.events)
}

func TestArbiter_ReleaseIdempotent(t *testing.T) {
	a, sys, _ := newTestArbiter(RequestGranted)

	a.ReleaseFocus()
	assert.Equal(t, 0, sys.abandons, "release from none is a no-op")

	_ = a.RequestFocus(DefaultParams())
	a.ReleaseFocus()
	a.ReleaseFocus()

	assert.Equal(t, StateNone, a.State())
	assert.Equal(t, 1, sys.abandons)
}

func TestArbiter_ChangeTranslation(t *testing.T) {
	tests := []struct {
		name      string
		params    Params
		code      ChangeCode
		wantEvent []string
		wantState State
	}{
		{"gain", DefaultParams(), ChangeGain, []string{"gained"}, StateGranted},
		{"loss", DefaultParams(), ChangeLoss, []string{"lost"}, StateNone},
		{"transient", DefaultParams(), ChangeLossTransient, []string{"transient"}, StateRequested},
		{"duck", DefaultParams(), ChangeLossTransientCanDuck, []string{"duck"}, StateDucked},
		{
			"duck with pause",
			Params{Gain: Gain, PauseWhenDucked: true},
			ChangeLossTransientCanDuck,
			[]string{"transient"},
			StateRequested,
		},
		{"unknown code", DefaultParams(), ChangeCode(42), nil, StateGranted},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a, _, l := newTestArbiter(RequestGranted)
			_ = a.RequestFocus(tt.params)

			a.OnFocusChange(tt.code)

			assert.Equal(t, tt.wantEvent, l.events)
			assert.Equal(t, tt.wantState, a.State())
		})
	}
}

func TestArbiter_DuckThenRegain(t *testing.T) {
	a, _, l := newTestArbiter(RequestGranted)
	_ = a.RequestFocus(DefaultParams())

	a.OnFocusChange(ChangeLossTransientCanDuck)
	a.OnFocusChange(ChangeGain)

	assert.Equal(t, StateGranted, a.State())
	assert.Equal(t, []string{"duck", "gained"}, l.events)
}

func TestArbiter_LossRequiresFreshRequest(t *testing.T) {
	a, sys, _ := newTestArbiter(RequestGranted)
	_ = a.RequestFocus(DefaultParams())

	a.OnFocusChange(ChangeLoss)
	assert.NoError(t, a.RequestFocus(DefaultParams()))

	assert.Equal(t, 2, sys.requests)
}

func TestArbiter_IgnoresChangesAfterRelease(t *testing.T) {
	a, _, l := newTestArbiter(RequestGranted)
	_ = a.RequestFocus(DefaultParams())
	a.ReleaseFocus()

	a.OnFocusChange(ChangeGain)
	a.OnFocusChange(ChangeLoss)

	assert.Empty(t, l.events)
	assert.Equal(t, StateNone, a.State())
}

func TestParseGainMode(t *testing.T) {
	g, err := ParseGainMode("GAIN_TRANSIENT_MAY_DUCK")
	assert.NoError(t, err)
	assert.Equal(t, GainTransientMayDuck, g)

	_, err = ParseGainMode("louder")
	assert.Error(t, err)
}

func TestParseUsageAndContentType(t *testing.T) {
	u, err := ParseUsage("game")
	assert.NoError(t, err)
	assert.Equal(t, UsageGame, u)

	c, err := ParseContentType("speech")
	assert.NoError(t, err)
	assert.Equal(t, ContentSpeech, c)

	_, err = ParseContentType("noise")
	assert.Error(t, err)
}

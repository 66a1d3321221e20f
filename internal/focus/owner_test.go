package focus

import (
	"errors"
	"sync/atomic"
	"testing"
	"testing/synctest"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

type fakeHandler struct {
	requires    atomic.Bool
	awaits      atomic.Bool
	gained      atomic.Int32
	lost        atomic.Int32
	transient   atomic.Int32
	volume      atomic.Int32
	hostPaused  atomic.Int32
	hostResumed atomic.Int32
}

func (h *fakeHandler) HandleFocusGained() { h.gained.Add(1) }

func (h *fakeHandler) HandleFocusLost(transient bool) {
	if transient {
		h.transient.Add(1)
		return
	}
	h.lost.Add(1)
}

func (h *fakeHandler) UpdateVolumeMuteAndDuck() { h.volume.Add(1) }
func (h *fakeHandler) RequiresAudioFocus() bool { return h.requires.Load() }
func (h *fakeHandler) AwaitsAudioFocus() bool   { return h.awaits.Load() }
func (h *fakeHandler) OnHostPause()             { h.hostPaused.Add(1) }
func (h *fakeHandler) OnHostResume()            { h.hostResumed.Add(1) }

func newTestOwner(res Result) (*Owner, *fakeSystem) {
	sys := &fakeSystem{result: res}
	return NewOwner(sys, DefaultParams(), zap.NewNop()), sys
}

func TestOwner_AcquireOnce(t *testing.T) {
	o, sys := newTestOwner(RequestGranted)

	assert.NoError(t, o.AcquireAudioFocus())
	assert.NoError(t, o.AcquireAudioFocus())

	assert.Equal(t, 1, sys.requests)
	assert.Equal(t, StateGranted, o.State())
}

func TestOwner_AcquireFailure(t *testing.T) {
	o, _ := newTestOwner(RequestFailed)

	err := o.AcquireAudioFocus()

	assert.True(t, errors.Is(err, ErrFocusNotAcquired))
}

func TestOwner_AbandonKeptWhileSiblingNeedsFocus(t *testing.T) {
	o, sys := newTestOwner(RequestGranted)
	a, b := &fakeHandler{}, &fakeHandler{}
	o.Register(a)
	o.Register(b)
	_ = o.AcquireAudioFocus()
	b.requires.Store(true)

	o.AbandonAudioFocusIfUnused()

	assert.Equal(t, 0, sys.abandons)
	assert.Equal(t, StateGranted, o.State())
	assert.Equal(t, int32(0), a.volume.Load())
}

func TestOwner_AbandonWhenUnused(t *testing.T) {
	o, sys := newTestOwner(RequestGranted)
	a, b := &fakeHandler{}, &fakeHandler{}
	o.Register(a)
	o.Register(b)
	_ = o.AcquireAudioFocus()

	o.AbandonAudioFocusIfUnused()

	assert.Equal(t, 1, sys.abandons)
	assert.Equal(t, StateNone, o.State())
	assert.Equal(t, int32(1), a.volume.Load())
	assert.Equal(t, int32(1), b.volume.Load())
}

func TestOwner_AbandonKeepsDelayedRequestWhileAwaited(t *testing.T) {
	synctest.Test(t, func(t *testing.T) {
		sys := NewProcessSystem()
		defer sys.Close()
		o := NewOwner(sys, DefaultParams(), zap.NewNop())
		h := &fakeHandler{}
		h.awaits.Store(true)
		o.Register(h)

		sys.SetBlocked(true)
		assert.ErrorIs(t, o.AcquireAudioFocus(), ErrFocusNotAcquired)
		assert.Equal(t, StateRequested, o.State())

		o.AbandonAudioFocusIfUnused()
		assert.Equal(t, StateRequested, o.State())

		sys.SetBlocked(false)
		synctest.Wait()
		assert.Equal(t, StateGranted, o.State())
		assert.Equal(t, int32(1), h.gained.Load())
	})
}

func TestOwner_AbandonDropsPendingRequestNobodyAwaits(t *testing.T) {
	o, sys := newTestOwner(RequestDelayed)
	o.Register(&fakeHandler{})

	_ = o.AcquireAudioFocus()
	o.AbandonAudioFocusIfUnused()

	assert.Equal(t, 1, sys.abandons)
	assert.Equal(t, StateNone, o.State())
}

func TestOwner_RegisterTwiceAndUnregister(t *testing.T) {
	o, _ := newTestOwner(RequestGranted)
	h := &fakeHandler{}
	o.Register(h)
	o.Register(h)
	assert.Len(t, o.snapshot(), 1)

	o.Unregister(h)
	assert.Empty(t, o.snapshot())
}

func TestOwner_VolumeForDuckAndFocus(t *testing.T) {
	o, _ := newTestOwner(RequestGranted)

	assert.Equal(t, 0.0, o.VolumeForDuckAndFocus(false, 0.8), "no focus held")

	_ = o.AcquireAudioFocus()
	assert.InDelta(t, 0.8, o.VolumeForDuckAndFocus(false, 0.8), 1e-9)
	assert.Equal(t, 0.0, o.VolumeForDuckAndFocus(true, 0.8), "muted")

	o.arbiter.OnFocusChange(ChangeLossTransientCanDuck)
	assert.InDelta(t, 0.4, o.VolumeForDuckAndFocus(false, 0.8), 1e-9)
}

func TestOwner_WithDuckFactor(t *testing.T) {
	sys := &fakeSystem{result: RequestGranted}
	o := NewOwner(sys, DefaultParams(), zap.NewNop(), WithDuckFactor(0.25), WithDuckFactor(3))
	_ = o.AcquireAudioFocus()
	o.arbiter.OnFocusChange(ChangeLossTransientCanDuck)

	assert.InDelta(t, 0.25, o.VolumeForDuckAndFocus(false, 1), 1e-9)
}

func TestOwner_DispatchesEventsToHandlers(t *testing.T) {
	o, _ := newTestOwner(RequestGranted)
	a, b := &fakeHandler{}, &fakeHandler{}
	o.Register(a)
	o.Register(b)
	_ = o.AcquireAudioFocus()

	o.arbiter.OnFocusChange(ChangeLossTransientCanDuck)
	o.arbiter.OnFocusChange(ChangeLossTransient)
	o.arbiter.OnFocusChange(ChangeGain)
	o.arbiter.OnFocusChange(ChangeLoss)

	for _, h := range []*fakeHandler{a, b} {
		assert.Equal(t, int32(1), h.volume.Load())
		assert.Equal(t, int32(1), h.transient.Load())
		assert.Equal(t, int32(1), h.gained.Load())
		assert.Equal(t, int32(1), h.lost.Load())
	}
}

func TestOwner_HostPauseAndResume(t *testing.T) {
	o, sys := newTestOwner(RequestGranted)
	h := &fakeHandler{}
	o.Register(h)
	_ = o.AcquireAudioFocus()

	o.HostPaused()
	assert.Equal(t, int32(1), h.hostPaused.Load())
	assert.Equal(t, StateNone, o.State())
	assert.Equal(t, 1, sys.abandons)

	o.HostResumed()
	assert.Equal(t, int32(1), h.hostResumed.Load())
}

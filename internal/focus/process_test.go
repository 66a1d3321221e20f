package focus

import (
	"testing"
	"testing/synctest"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

func TestProcessSystem_GainModesNotifyPreviousHolder(t *testing.T) {
	tests := []struct {
		gain      GainMode
		wantEvent string
		wantState State
	}{
		{Gain, "lost", StateNone},
		{GainTransient, "transient", StateRequested},
		{GainTransientExclusive, "transient", StateRequested},
		{GainTransientMayDuck, "duck", StateDucked},
	}

	for _, tt := range tests {
		t.Run(tt.gain.String(), func(t *testing.T) {
			synctest.Test(t, func(t *testing.T) {
				sys := NewProcessSystem()
				defer sys.Close()
				a := NewArbiter(sys, zap.NewNop())
				l := &recordingListener{}
				a.SetListener(l)

				assert.NoError(t, a.RequestFocus(DefaultParams()))
				end := sys.Interrupt(tt.gain)
				synctest.Wait()

				assert.Equal(t, []string{tt.wantEvent}, l.events)
				assert.Equal(t, tt.wantState, a.State())
				end()
			})
		})
	}
}

func TestProcessSystem_TransientHolderReturnsFocus(t *testing.T) {
	synctest.Test(t, func(t *testing.T) {
		sys := NewProcessSystem()
		defer sys.Close()
		a := NewArbiter(sys, zap.NewNop())
		l := &recordingListener{}
		a.SetListener(l)
		_ = a.RequestFocus(DefaultParams())

		end := sys.Interrupt(GainTransient)
		synctest.Wait()
		end()
		synctest.Wait()

		assert.Equal(t, []string{"transient", "gained"}, l.events)
		assert.Equal(t, StateGranted, a.State())
		assert.Equal(t, Client(a), sys.Holder())
	})
}

func TestProcessSystem_PermanentLossNotReturned(t *testing.T) {
	synctest.Test(t, func(t *testing.T) {
		sys := NewProcessSystem()
		defer sys.Close()
		a := NewArbiter(sys, zap.NewNop())
		l := &recordingListener{}
		a.SetListener(l)
		_ = a.RequestFocus(DefaultParams())

		end := sys.Interrupt(Gain)
		synctest.Wait()
		end()
		synctest.Wait()

		assert.Equal(t, []string{"lost"}, l.events)
		assert.Nil(t, sys.Holder())
	})
}

func TestProcessSystem_BlockedDelaysOrFails(t *testing.T) {
	synctest.Test(t, func(t *testing.T) {
		sys := NewProcessSystem()
		defer sys.Close()
		sys.SetBlocked(true)

		strict := NewArbiter(sys, zap.NewNop())
		p := DefaultParams()
		p.AcceptDelayed = false
		assert.ErrorIs(t, strict.RequestFocus(p), ErrFocusNotAcquired)
		assert.Equal(t, StateDenied, strict.State())

		patient := NewArbiter(sys, zap.NewNop())
		l := &recordingListener{}
		patient.SetListener(l)
		assert.ErrorIs(t, patient.RequestFocus(DefaultParams()), ErrFocusNotAcquired)
		assert.Equal(t, StateRequested, patient.State())

		sys.SetBlocked(false)
		synctest.Wait()

		assert.Equal(t, []string{"gained"}, l.events)
		assert.Equal(t, StateGranted, patient.State())
	})
}

func TestProcessSystem_AbandonNonTopDoesNotNotify(t *testing.T) {
	synctest.Test(t, func(t *testing.T) {
		sys := NewProcessSystem()
		defer sys.Close()
		a := NewArbiter(sys, zap.NewNop())
		la := &recordingListener{}
		a.SetListener(la)
		_ = a.RequestFocus(DefaultParams())

		end := sys.Interrupt(GainTransientMayDuck)
		synctest.Wait()
		a.ReleaseFocus()
		end()
		synctest.Wait()

		assert.Equal(t, []string{"duck"}, la.events)
		assert.Nil(t, sys.Holder())
	})
}

package app

import (
	"math"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/samber/lo"
	"github.com/samber/mo"
	"go.uber.org/zap"

	"github.com/llehouerou/focusplay/internal/errmsg"
	"github.com/llehouerou/focusplay/internal/focus"
	"github.com/llehouerou/focusplay/internal/status"
)

// The commands below read the current status inside the command so that
// repeated key presses build on each other rather than on a stale view.

func (m Model) togglePlay() tea.Cmd {
	svc := m.svc
	return func() tea.Msg {
		if svc.Status().ShouldPlay {
			return statusCmd(errmsg.OpPlaybackPause, svc.Pause)()
		}
		return statusCmd(errmsg.OpPlaybackPlay, svc.Play)()
	}
}

func (m Model) update(build func(cur status.PlaybackStatus) status.Partial) tea.Cmd {
	svc := m.svc
	return statusCmd(errmsg.OpPlaybackStatus, func() (status.PlaybackStatus, error) {
		return svc.SetStatus(build(svc.Status()))
	})
}

func (m Model) toggleMute() tea.Cmd {
	return m.update(func(cur status.PlaybackStatus) status.Partial {
		return status.Partial{IsMuted: mo.Some(!cur.IsMuted)}
	})
}

func (m Model) toggleLoop() tea.Cmd {
	return m.update(func(cur status.PlaybackStatus) status.Partial {
		return status.Partial{IsLooping: mo.Some(!cur.IsLooping)}
	})
}

func (m Model) togglePitch() tea.Cmd {
	return m.update(func(cur status.PlaybackStatus) status.Partial {
		return status.Partial{ShouldCorrectPitch: mo.Some(!cur.ShouldCorrectPitch)}
	})
}

func (m Model) adjustVolume(delta float64) tea.Cmd {
	return m.update(func(cur status.PlaybackStatus) status.Partial {
		return status.Partial{Volume: mo.Some(round2(lo.Clamp(cur.Volume+delta, 0, 1)))}
	})
}

func (m Model) adjustRate(delta float64) tea.Cmd {
	return m.update(func(cur status.PlaybackStatus) status.Partial {
		return status.Partial{Rate: mo.Some(round2(lo.Clamp(cur.Rate+delta, minRate, maxRate)))}
	})
}

func (m Model) seek(delta time.Duration) tea.Cmd {
	svc := m.svc
	return actionCmd(errmsg.OpPlaybackSeek, func() error {
		cur := svc.Status()
		target := cur.PositionMillis + delta.Milliseconds()
		if cur.DurationMillis > 0 {
			target = min(target, cur.DurationMillis)
		}
		return svc.SeekTo(max(target, 0))
	})
}

// interrupt starts a simulated focus request from another application. A
// second press ends the active interruption; pressing a different kind
// replaces it.
func (m *Model) interrupt(gain focus.GainMode) {
	if m.sys == nil {
		return
	}
	if m.endInterruption != nil {
		m.endInterruption()
		m.endInterruption = nil
		if m.interruptGain == gain {
			m.notice = "interruption ended"
			m.focus = m.owner.State()
			return
		}
	}
	m.log.Info("simulating focus interruption", zap.Stringer("gain", gain))
	m.endInterruption = m.sys.Interrupt(gain)
	m.interruptGain = gain
	m.notice = "interrupted by another app (" + gain.String() + ")"
	m.focus = m.owner.State()
}

// round2 drops float drift from repeated steps.
func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

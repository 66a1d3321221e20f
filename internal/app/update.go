package app

import (
	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"github.com/llehouerou/focusplay/internal/errmsg"
	"github.com/llehouerou/focusplay/internal/focus"
	"github.com/llehouerou/focusplay/internal/keymap"
)

// Update handles messages and returns the updated model and commands.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		return m, nil

	case TickMsg:
		if m.closed {
			return m, nil
		}
		m.status = m.svc.Status()
		m.focus = m.owner.State()
		return m, TickCmd()

	case StatusMsg:
		m.status = msg.Status
		m.focus = m.owner.State()
		if msg.Status.DidJustFinish && !msg.Status.IsLooping {
			m.notice = "finished"
			m.announce.Finished(m.title(msg.Status), m.albumArt(m.svc.URI()))
		} else if msg.Status.IsPlaying {
			m.announce.Dismiss()
		}
		if msg.Status.IsLoaded && m.store != nil {
			m.store.SaveSession(m.session(msg.Status))
			m.savedAt = m.now()
		}
		return m, m.WatchServiceEvents()

	case PlaybackErrorMsg:
		m.lastErr = errmsg.Format(errmsg.OpPlaybackEngine, msg.Err)
		m.announce.Failed(m.title(m.status), msg.Err)
		return m, m.WatchServiceEvents()

	case VideoSizeMsg:
		m.log.Debug("video size changed", zap.Int("width", msg.Width), zap.Int("height", msg.Height))
		return m, m.WatchServiceEvents()

	case ServiceClosedMsg:
		m.closed = true
		return m, nil

	case StderrMsg:
		m.lastErr = "audio: " + msg.Line
		return m, WatchStderr(m.stderr)

	case ActionResultMsg:
		if msg.Err != nil {
			m.lastErr = errmsg.Format(msg.Op, msg.Err)
			m.status = m.svc.Status()
		} else if msg.HasStatus {
			m.status = msg.Status
		}
		m.focus = m.owner.State()
		return m, nil

	case QuitMsg:
		if msg.Err != nil {
			m.quitErr = errmsg.FormatWith(errmsg.OpSessionSave, m.title(m.status), msg.Err)
		}
		return m, tea.Quit

	case tea.ResumeMsg:
		m.owner.HostResumed()
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch m.keys.Resolve(msg.String()) {
	case keymap.ActionQuit:
		return m, m.quitCmd()
	case keymap.ActionHelp:
		m.help.ShowAll = !m.help.ShowAll
		return m, nil
	case keymap.ActionSuspend:
		m.owner.HostPaused()
		return m, tea.Suspend

	case keymap.ActionPlayPause:
		return m, m.togglePlay()
	case keymap.ActionToggleMute:
		return m, m.toggleMute()
	case keymap.ActionVolumeUp:
		return m, m.adjustVolume(volumeStep)
	case keymap.ActionVolumeDown:
		return m, m.adjustVolume(-volumeStep)
	case keymap.ActionRateUp:
		return m, m.adjustRate(rateStep)
	case keymap.ActionRateDown:
		return m, m.adjustRate(-rateStep)
	case keymap.ActionToggleLoop:
		return m, m.toggleLoop()
	case keymap.ActionTogglePitch:
		return m, m.togglePitch()
	case keymap.ActionSeekForward:
		return m, m.seek(seekStep)
	case keymap.ActionSeekBack:
		return m, m.seek(-seekStep)

	case keymap.ActionInterruptTransient:
		m.interrupt(focus.GainTransient)
		return m, nil
	case keymap.ActionInterruptDuck:
		m.interrupt(focus.GainTransientMayDuck)
		return m, nil
	case keymap.ActionInterruptPermanent:
		m.interrupt(focus.Gain)
		return m, nil
	}
	return m, nil
}

package app

import (
	"context"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"github.com/llehouerou/focusplay/internal/errmsg"
	"github.com/llehouerou/focusplay/internal/state"
	"github.com/llehouerou/focusplay/internal/status"
	"github.com/llehouerou/focusplay/internal/ui/playerbar"
)

const (
	tickInterval = 250 * time.Millisecond
	quitTimeout  = 3 * time.Second
)

// TickCmd returns a command that sends TickMsg after tickInterval.
func TickCmd() tea.Cmd {
	return tea.Tick(tickInterval, func(t time.Time) tea.Msg {
		return TickMsg(t)
	})
}

// WatchServiceEvents returns a command that waits for the next event on the
// playback subscription.
func (m Model) WatchServiceEvents() tea.Cmd {
	if m.sub == nil {
		return nil
	}
	sub := m.sub
	return func() tea.Msg {
		select {
		case st := <-sub.StatusUpdated:
			return StatusMsg{Status: st}
		case e := <-sub.Errors:
			return PlaybackErrorMsg(e)
		case e := <-sub.VideoSizeChanged:
			return VideoSizeMsg(e)
		case <-sub.Done:
			return ServiceClosedMsg{}
		}
	}
}

// WatchStderr returns a command that waits for the next captured stderr line.
func WatchStderr(lines <-chan string) tea.Cmd {
	return waitForChannel(lines, func(line string, ok bool) tea.Msg {
		if !ok {
			return nil
		}
		return StderrMsg{Line: line}
	})
}

// waitForChannel creates a command that waits for a value from a channel and
// converts it to a message. ok is false once the channel is closed.
func waitForChannel[T any](ch <-chan T, onResult func(T, bool) tea.Msg) tea.Cmd {
	if ch == nil {
		return nil
	}
	return func() tea.Msg {
		result, ok := <-ch
		return onResult(result, ok)
	}
}

// statusCmd runs a command returning the resulting status off the UI
// goroutine.
func statusCmd(op errmsg.Op, fn func() (status.PlaybackStatus, error)) tea.Cmd {
	return func() tea.Msg {
		st, err := fn()
		return ActionResultMsg{Op: op, Status: st, HasStatus: err == nil, Err: err}
	}
}

// actionCmd runs a command without a status result off the UI goroutine.
func actionCmd(op errmsg.Op, fn func() error) tea.Cmd {
	return func() tea.Msg {
		return ActionResultMsg{Op: op, Err: fn()}
	}
}

// session builds the persisted session for st.
func (m Model) title(st status.PlaybackStatus) string {
	return playerbar.NewState(m.svc.TrackInfo(), st, m.focus).Title
}

func (m Model) session(st status.PlaybackStatus) state.Session {
	return state.SessionFromStatus(st, m.title(st), m.now())
}

// quitCmd saves the session synchronously, ends any simulated interruption
// and releases the player.
func (m Model) quitCmd() tea.Cmd {
	svc, store, end, log := m.svc, m.store, m.endInterruption, m.log
	st := svc.Status()
	sess := m.session(st)
	return func() tea.Msg {
		var saveErr error
		if st.IsLoaded && store != nil {
			ctx, cancel := context.WithTimeout(context.Background(), quitTimeout)
			saveErr = store.SaveSessionNow(ctx, sess)
			cancel()
			if saveErr != nil {
				log.Error("save session on quit", zap.Error(saveErr))
			}
		}
		if end != nil {
			end()
		}
		if err := svc.Release(); err != nil {
			log.Error("release player", zap.Error(err))
		}
		return QuitMsg{Err: saveErr}
	}
}

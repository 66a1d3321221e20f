// Package app is the terminal player screen.
package app

import (
	"time"

	"github.com/llehouerou/focusplay/internal/errmsg"
	"github.com/llehouerou/focusplay/internal/playback"
	"github.com/llehouerou/focusplay/internal/status"
)

// TickMsg is sent periodically to refresh position and focus state.
type TickMsg time.Time

// StatusMsg carries a status report from the playback subscription.
type StatusMsg struct {
	Status status.PlaybackStatus
}

// PlaybackErrorMsg carries a fatal engine error from the subscription.
type PlaybackErrorMsg playback.ErrorEvent

// VideoSizeMsg carries new video dimensions from the subscription.
type VideoSizeMsg playback.VideoSize

// ServiceClosedMsg is sent once the subscription is closed by Release.
type ServiceClosedMsg struct{}

// StderrMsg is sent when native audio libraries write to stderr.
type StderrMsg struct {
	Line string
}

// ActionResultMsg is the outcome of a playback command run off the UI
// goroutine. Status is only meaningful when Err is nil and HasStatus is set.
type ActionResultMsg struct {
	Op        errmsg.Op
	Status    status.PlaybackStatus
	HasStatus bool
	Err       error
}

// QuitMsg is sent after the session was saved and the player released.
type QuitMsg struct {
	Err error
}

package playback

import (
	"context"

	"github.com/llehouerou/focusplay/internal/player"
	"github.com/llehouerou/focusplay/internal/status"
)

// Service coordinates playback of one media item against caller intent and
// shared audio focus.
//
// Every method may be called from any goroutine. Commands are serialized on
// the coordinator's own sequencing goroutine and return once the resulting
// play/pause decision and focus outcome have been applied.
type Service interface {
	// Lifecycle
	Load(ctx context.Context, initial status.Partial) (status.PlaybackStatus, error)
	Release() error
	State() State

	// Playback control
	SetStatus(p status.Partial) (status.PlaybackStatus, error)
	Play() (status.PlaybackStatus, error)
	Pause() (status.PlaybackStatus, error)
	SeekTo(positionMillis int64) error
	SetSurface(target player.Surface) error

	// Full-screen presentation
	SetFullscreenPresenter(p FullscreenPresenter)
	IsPresentedFullscreen() bool
	ToggleFullscreen()

	// State queries
	Status() status.PlaybackStatus
	ID() string
	URI() string
	AudioSessionID() int
	VideoSize() (width, height int)
	TrackInfo() *player.TrackInfo

	// Event subscription
	Subscribe() *Subscription
	Unsubscribe(sub *Subscription)
}

// FullscreenPresenter is the surface that shows video full screen.
type FullscreenPresenter interface {
	IsBeingPresentedFullscreen() bool
	SetFullscreenMode(fullscreen bool)
}

package player

import (
	"context"
	"errors"
	"net/http"

	"github.com/llehouerou/focusplay/internal/status"
)

var (
	ErrNotLoaded         = errors.New("engine: no source loaded")
	ErrReleased          = errors.New("engine: released")
	ErrUnsupportedFormat = errors.New("engine: unsupported format")
	ErrUnsupportedScheme = errors.New("engine: unsupported uri scheme")
	ErrInvalidRate       = errors.New("engine: rate must be positive")
)

// Engine decodes and renders one media source. A coordinator drives it from
// a single goroutine; the engine reports asynchronous events to its
// StateListener from whatever goroutine produced them.
type Engine interface {
	// Load prepares uri for playback. initial carries the looping flag and
	// volume the engine starts with.
	Load(ctx context.Context, initial status.PlaybackStatus, uri string, cookies []*http.Cookie) error
	Play(muted bool, rate float64, correctPitch bool) error
	PauseImmediately()
	SeekTo(positionMillis int64) error
	SetVolume(volume float64)
	SetLooping(looping bool)

	Loaded() bool
	Playing() bool
	Buffering() bool
	Looping() bool
	// Duration, CurrentPosition and PlayableDuration report false when the
	// engine has no value.
	Duration() (int64, bool)
	CurrentPosition() (int64, bool)
	PlayableDuration() (int64, bool)
	AudioSessionID() int
	VideoSize() (width, height int)
	ImplementationName() string
	TrackInfo() *TrackInfo

	SetSurface(target Surface, playing bool)
	SetStateListener(l StateListener)
	Release()
}

// StateListener receives engine events. Implementations must not block and
// must not call back into the engine synchronously.
type StateListener interface {
	OnBufferingStart()
	// OnBuffering reports download progress in percent.
	OnBuffering(percent int)
	OnBufferingStop()
	OnCompleted()
	OnSeekCompleted()
	OnError(message string)
	OnVideoSizeChanged(width, height int)
	OnStatusUpdated()
}

// Surface is a video output target.
type Surface interface {
	SurfaceID() string
}

type listenerRef struct{ l StateListener }

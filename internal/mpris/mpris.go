//go:build linux

package mpris

import (
	"strings"

	"github.com/godbus/dbus/v5"
	"github.com/quarckster/go-mpris-server/pkg/server"
	"github.com/quarckster/go-mpris-server/pkg/types"
	"github.com/samber/mo"
	"go.uber.org/zap"

	"github.com/llehouerou/focusplay/internal/playback"
	"github.com/llehouerou/focusplay/internal/status"
)

const (
	minRate = 0.25
	maxRate = 4.0
)

// Adapter exposes a playback.Service over D-Bus MPRIS.
type Adapter struct {
	server *server.Server
	log    *zap.Logger
}

// New creates and starts a new MPRIS adapter.
func New(service playback.Service, log *zap.Logger) (*Adapter, error) {
	a := &Adapter{log: log.With(zap.String("component", "mpris"))}
	a.server = server.NewServer("focusplay", &rootAdapter{}, &playerAdapter{service: service})

	go func() {
		if err := a.server.Listen(); err != nil {
			a.log.Warn("mpris server stopped", zap.Error(err))
		}
	}()

	return a, nil
}

// Close stops the adapter and releases D-Bus resources.
func (a *Adapter) Close() error {
	return a.server.Stop()
}

// rootAdapter implements OrgMprisMediaPlayer2Adapter.
type rootAdapter struct{}

func (r *rootAdapter) Raise() error { return nil }
func (r *rootAdapter) Quit() error  { return nil }

func (r *rootAdapter) CanQuit() (bool, error)      { return false, nil }
func (r *rootAdapter) CanRaise() (bool, error)     { return false, nil }
func (r *rootAdapter) HasTrackList() (bool, error) { return false, nil }

func (r *rootAdapter) Identity() (string, error) {
	return "focusplay", nil
}

//nolint:revive // Method name required by interface.
func (r *rootAdapter) SupportedUriSchemes() ([]string, error) {
	return []string{"file", "http", "https"}, nil
}

func (r *rootAdapter) SupportedMimeTypes() ([]string, error) {
	return []string{"audio/mpeg", "audio/flac", "audio/wav", "audio/ogg"}, nil
}

// playerAdapter implements OrgMprisMediaPlayer2PlayerAdapter. A single
// media item is exposed, so there is no next or previous track.
type playerAdapter struct {
	service playback.Service
}

func (p *playerAdapter) Next() error     { return nil }
func (p *playerAdapter) Previous() error { return nil }

func (p *playerAdapter) Pause() error {
	_, err := p.service.Pause()
	return err
}

func (p *playerAdapter) Play() error {
	_, err := p.service.Play()
	return err
}

func (p *playerAdapter) PlayPause() error {
	if p.service.Status().ShouldPlay {
		return p.Pause()
	}
	return p.Play()
}

func (p *playerAdapter) Stop() error {
	if err := p.Pause(); err != nil {
		return err
	}
	return p.service.SeekTo(0)
}

func (p *playerAdapter) Seek(offset types.Microseconds) error {
	st := p.service.Status()
	return p.service.SeekTo(st.PositionMillis + int64(offset)/1000)
}

func (p *playerAdapter) SetPosition(_ string, position types.Microseconds) error {
	return p.service.SeekTo(int64(position) / 1000)
}

//nolint:revive // Method name required by interface.
func (p *playerAdapter) OpenUri(_ string) error {
	return nil // Not supported
}

func (p *playerAdapter) PlaybackStatus() (types.PlaybackStatus, error) {
	return playbackStatus(p.service.Status()), nil
}

func playbackStatus(st status.PlaybackStatus) types.PlaybackStatus {
	switch {
	case !st.IsLoaded:
		return types.PlaybackStatusStopped
	case st.IsPlaying:
		return types.PlaybackStatusPlaying
	default:
		return types.PlaybackStatusPaused
	}
}

func (p *playerAdapter) Rate() (float64, error) {
	return p.service.Status().Rate, nil
}

func (p *playerAdapter) SetRate(rate float64) error {
	rate = max(minRate, min(maxRate, rate))
	_, err := p.service.SetStatus(status.Partial{Rate: mo.Some(rate)})
	return err
}

func (p *playerAdapter) Metadata() (types.Metadata, error) {
	st := p.service.Status()
	if !st.IsLoaded {
		return types.Metadata{}, nil
	}

	meta := types.Metadata{
		TrackId: trackID(p.service.ID()),
		Length:  types.Microseconds(st.DurationMillis * 1000),
	}
	if info := p.service.TrackInfo(); info != nil {
		meta.Title = info.Title
		meta.Album = info.Album
		meta.TrackNumber = info.Track
		if info.Artist != "" {
			meta.Artist = []string{info.Artist}
		}
	}
	if art := FindAlbumArt(p.service.URI()); art != "" {
		meta.ArtUrl = "file://" + art
	}

	return meta, nil
}

func (p *playerAdapter) Volume() (float64, error) {
	return p.service.Status().Volume, nil
}

func (p *playerAdapter) SetVolume(volume float64) error {
	volume = max(0, min(1, volume))
	_, err := p.service.SetStatus(status.Partial{Volume: mo.Some(volume)})
	return err
}

func (p *playerAdapter) Position() (int64, error) {
	return p.service.Status().PositionMillis * 1000, nil
}

func (p *playerAdapter) MinimumRate() (float64, error) { return minRate, nil }
func (p *playerAdapter) MaximumRate() (float64, error) { return maxRate, nil }
func (p *playerAdapter) CanGoNext() (bool, error)      { return false, nil }
func (p *playerAdapter) CanGoPrevious() (bool, error)  { return false, nil }

func (p *playerAdapter) CanPlay() (bool, error) {
	return p.service.State() == playback.StateLoaded, nil
}

func (p *playerAdapter) CanPause() (bool, error)   { return true, nil }
func (p *playerAdapter) CanSeek() (bool, error)    { return true, nil }
func (p *playerAdapter) CanControl() (bool, error) { return true, nil }

// LoopStatus implements OrgMprisMediaPlayer2PlayerAdapterLoopStatus.
func (p *playerAdapter) LoopStatus() (types.LoopStatus, error) {
	if p.service.Status().IsLooping {
		return types.LoopStatusTrack, nil
	}
	return types.LoopStatusNone, nil
}

// SetLoopStatus implements OrgMprisMediaPlayer2PlayerAdapterLoopStatus.
// With one item, Track and Playlist both loop it.
func (p *playerAdapter) SetLoopStatus(loop types.LoopStatus) error {
	_, err := p.service.SetStatus(status.Partial{
		IsLooping: mo.Some(loop != types.LoopStatusNone),
	})
	return err
}

// trackID turns a player id into a valid D-Bus object path element.
func trackID(id string) dbus.ObjectPath {
	clean := strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
			return r
		default:
			return '_'
		}
	}, id)
	return dbus.ObjectPath("/org/mpris/MediaPlayer2/Track/" + clean)
}

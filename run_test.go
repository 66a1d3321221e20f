package main

import (
	"context"
	"testing"
	"time"

	"github.com/samber/mo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/llehouerou/focusplay/internal/config"
	"github.com/llehouerou/focusplay/internal/focus"
	"github.com/llehouerou/focusplay/internal/state"
	"github.com/llehouerou/focusplay/internal/status"
)

func TestFocusParams(t *testing.T) {
	fc := (&config.Config{Focus: config.FocusConfig{
		Gain:            "gain_transient_may_duck",
		Usage:           "game",
		PauseWhenDucked: true,
	}}).GetFocusConfig()

	p, err := focusParams(fc)
	require.NoError(t, err)
	assert.Equal(t, focus.Params{
		Gain:            focus.GainTransientMayDuck,
		Usage:           focus.UsageGame,
		ContentType:     focus.ContentMusic,
		PauseWhenDucked: true,
		AcceptDelayed:   true,
	}, p)
}

func TestFocusParams_Invalid(t *testing.T) {
	tests := []struct {
		name string
		fc   config.FocusConfig
	}{
		{"gain", config.FocusConfig{Gain: "loud", Usage: "media", ContentType: "music"}},
		{"usage", config.FocusConfig{Gain: "gain", Usage: "radio", ContentType: "music"}},
		{"content type", config.FocusConfig{Gain: "gain", Usage: "media", ContentType: "noise"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := focusParams(tt.fc)
			assert.Error(t, err)
		})
	}
}

func TestInitialStatus(t *testing.T) {
	ps := (&config.Config{}).GetPlaybackSettings()

	p := initialStatus(ps, nil)
	assert.Equal(t, mo.Some(false), p.ShouldPlay, "playback starts after the resume seek")
	assert.Equal(t, mo.Some(1.0), p.Volume)
	assert.Equal(t, mo.Some(true), p.ShouldCorrectPitch)
	assert.Equal(t, mo.Some(500), p.UpdateIntervalMillis)
	assert.False(t, p.IsMuted.IsPresent())

	restored := &state.Session{Volume: 0.3, Muted: true, Rate: 1.5, Looping: true, UpdatedAt: time.Now()}
	p = initialStatus(ps, restored)
	assert.Equal(t, mo.Some(0.3), p.Volume)
	assert.Equal(t, mo.Some(true), p.IsMuted)
	assert.Equal(t, mo.Some(1.5), p.Rate)
	assert.Equal(t, mo.Some(true), p.IsLooping)
	assert.Equal(t, mo.Some(false), p.ShouldPlay)
	assert.Equal(t, mo.Some(500), p.UpdateIntervalMillis, "cadence comes from config")
}

func TestStartStatus(t *testing.T) {
	assert.Equal(t, mo.Some(true), startStatus(status.Partial{}).ShouldPlay)

	p := status.Partial{}
	p.ShouldPlay = mo.Some(false)
	p.Rate = mo.Some(2.0)
	got := startStatus(p)
	assert.Equal(t, mo.Some(false), got.ShouldPlay, "--status can keep it paused")
	assert.Equal(t, mo.Some(2.0), got.Rate)
}

func TestRootCmd_Flags(t *testing.T) {
	cmd := newRootCmd()

	for _, name := range []string{"config", "status", "no-mpris", "fresh"} {
		assert.NotNil(t, cmd.Flags().Lookup(name), name)
	}
	assert.Error(t, cmd.Args(cmd, nil), "a URI is required")
	assert.NoError(t, cmd.Args(cmd, []string{"song.mp3"}))
}

func TestRun_InvalidStatusFlag(t *testing.T) {
	err := run(t.Context(), "song.mp3", options{status: `{"volume": 2}`})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "--status")
}

func TestRestoreSession(t *testing.T) {
	const uri = "file:///music/track.flac"
	ctx := context.Background()
	newStore := func(t *testing.T) *state.Mock {
		t.Helper()
		store := state.NewMock()
		require.NoError(t, store.SaveSessionNow(ctx, state.Session{URI: uri, Volume: 0.4, PositionMillis: 90_000}))
		return store
	}

	t.Run("resume", func(t *testing.T) {
		got := restoreSession(ctx, newStore(t), uri, true, false, zap.NewNop())
		require.NotNil(t, got)
		assert.Equal(t, int64(90_000), got.PositionMillis)
	})

	t.Run("resume disabled keeps the session", func(t *testing.T) {
		store := newStore(t)
		assert.Nil(t, restoreSession(ctx, store, uri, false, false, zap.NewNop()))
		s, err := store.GetSession(ctx, uri)
		require.NoError(t, err)
		assert.NotNil(t, s)
	})

	t.Run("forget deletes the session", func(t *testing.T) {
		store := newStore(t)
		assert.Nil(t, restoreSession(ctx, store, uri, true, true, zap.NewNop()))
		s, err := store.GetSession(ctx, uri)
		require.NoError(t, err)
		assert.Nil(t, s)
	})

	t.Run("no store", func(t *testing.T) {
		assert.Nil(t, restoreSession(ctx, nil, uri, true, false, zap.NewNop()))
	})
}

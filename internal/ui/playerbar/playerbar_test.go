package playerbar

import (
	"strings"
	"testing"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
	"github.com/stretchr/testify/assert"

	"github.com/llehouerou/focusplay/internal/focus"
	"github.com/llehouerou/focusplay/internal/player"
	"github.com/llehouerou/focusplay/internal/status"
)

func loaded() status.PlaybackStatus {
	st := status.Unloaded()
	st.IsLoaded = true
	st.URIPath = "file:///music/Kind%20of%20Blue/01%20So%20What.flac"
	st.DurationMillis = 4 * 60 * 1000
	st.PositionMillis = 60 * 1000
	return st
}

func TestNewState_TitleFallback(t *testing.T) {
	tests := []struct {
		name string
		info *player.TrackInfo
		uri  string
		want string
	}{
		{"tag title", &player.TrackInfo{Title: "So What"}, "/x/a.mp3", "So What"},
		{"no info", nil, "/music/a.mp3", "a.mp3"},
		{"empty title", &player.TrackInfo{Artist: "Miles"}, "file:///m/01%20So%20What.flac", "01 So What.flac"},
		{"http with query", nil, "https://cdn.example.com/ep/42.mp3?token=abc", "42.mp3"},
		{"no uri", nil, "", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			st := status.Unloaded()
			st.URIPath = tt.uri
			assert.Equal(t, tt.want, NewState(tt.info, st, focus.StateNone).Title)
		})
	}
}

func TestRender_Loaded(t *testing.T) {
	st := loaded()
	st.IsPlaying = true
	st.IsLooping = true
	st.Volume = 0.8
	st.Rate = 1.25
	s := NewState(&player.TrackInfo{Title: "So What", Artist: "Miles Davis", Album: "Kind of Blue", Year: 1959}, st, focus.StateGranted)

	out := Render(s, 80)
	plain := ansi.Strip(out)

	assert.Equal(t, Height, lipgloss.Height(out))
	assert.Equal(t, 80, lipgloss.Width(out))
	assert.Contains(t, plain, "So What")
	assert.Contains(t, plain, "Miles Davis · Kind of Blue · 1959")
	assert.Contains(t, plain, "▶  1:00")
	assert.Contains(t, plain, "4:00")
	assert.Contains(t, plain, "vol  80%")
	assert.Contains(t, plain, "1.25x")
	assert.Contains(t, plain, "loop")
	assert.Contains(t, plain, "focus: granted")
}

func TestRender_NotLoaded(t *testing.T) {
	st := status.Unloaded()
	st.URIPath = "/music/track.flac"

	plain := ansi.Strip(Render(NewState(nil, st, focus.StateNone), 60))
	assert.Contains(t, plain, "Loading track.flac")
	assert.Contains(t, plain, "focus: none")
}

func TestRender_NarrowWidthDoesNotPanic(t *testing.T) {
	s := NewState(&player.TrackInfo{Title: strings.Repeat("long title ", 10)}, loaded(), focus.StateDucked)
	for _, w := range []int{8, 20} {
		assert.NotPanics(t, func() { Render(s, w) })
	}
}

func TestRenderProgressBar(t *testing.T) {
	tests := []struct {
		name      string
		pos, dur  time.Duration
		width     int
		playing   bool
		buffering bool
		want      string
	}{
		{"half", 30 * time.Second, time.Minute, 25, true, false, "▶  0:30  ▓▓▓▓▓░░░░░  1:00"},
		{"buffering", 0, 0, 25, false, true, "…  0:00  ░░░░░░░░░░  0:00"},
		{"past the end", 2 * time.Minute, time.Minute, 25, true, false, "▶  2:00  ▓▓▓▓▓▓▓▓▓▓  1:00"},
		{"too narrow", 5 * time.Second, time.Minute, 10, true, false, "▶  0:05 / 1:00"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ansi.Strip(RenderProgressBar(tt.pos, tt.dur, tt.width, tt.playing, tt.buffering))
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestRenderProgressBar_Paused(t *testing.T) {
	got := RenderProgressBar(0, time.Minute, 25, false, false)
	plain := ansi.Strip(got)

	assert.True(t, strings.HasPrefix(plain, "⏸  0:00  ░"))
	assert.True(t, strings.HasSuffix(plain, "░  1:00"))
	assert.Equal(t, 25, lipgloss.Width(got))
}

func TestFormatDuration(t *testing.T) {
	assert.Equal(t, "0:00", FormatDuration(0))
	assert.Equal(t, "0:00", FormatDuration(-time.Second))
	assert.Equal(t, "3:07", FormatDuration(3*time.Minute+7*time.Second))
	assert.Equal(t, "1:02:03", FormatDuration(time.Hour+2*time.Minute+3*time.Second))
}

func TestRenderVolume(t *testing.T) {
	assert.Equal(t, "vol  50%", ansi.Strip(RenderVolume(0.5, false)))
	assert.Equal(t, "muted 100%", ansi.Strip(RenderVolume(1, true)))
	assert.Equal(t, "vol  70%", ansi.Strip(RenderVolume(0.7, false)), "rounded, not truncated")
}

func TestRenderFocus(t *testing.T) {
	for _, f := range []focus.State{focus.StateNone, focus.StateRequested, focus.StateGranted, focus.StateDucked, focus.StateDenied} {
		assert.Equal(t, "focus: "+f.String(), ansi.Strip(RenderFocus(f)))
	}
}

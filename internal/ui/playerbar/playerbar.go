// Package playerbar renders the now-playing box of the player screen.
package playerbar

import (
	"net/url"
	"path"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/llehouerou/focusplay/internal/focus"
	"github.com/llehouerou/focusplay/internal/player"
	"github.com/llehouerou/focusplay/internal/status"
	"github.com/llehouerou/focusplay/internal/ui/render"
	"github.com/llehouerou/focusplay/internal/ui/styles"
)

// Height is the number of terminal rows Render produces.
const Height = 5 // 3 content rows + 2 border rows

// State holds everything needed to render the player bar.
type State struct {
	Title  string
	Artist string
	Album  string
	Year   int
	Status status.PlaybackStatus
	Focus  focus.State
}

// NewState builds a State from the track tags, the latest status and the
// shared focus state. Without a title tag the last URI path element is shown.
func NewState(info *player.TrackInfo, st status.PlaybackStatus, f focus.State) State {
	s := State{Status: st, Focus: f}
	if info != nil {
		s.Title = info.Title
		s.Artist = info.Artist
		s.Album = info.Album
		s.Year = info.Year
	}
	if s.Title == "" {
		s.Title = titleFromURI(st.URIPath)
	}
	return s
}

func titleFromURI(uri string) string {
	if uri == "" {
		return ""
	}
	p := uri
	if u, err := url.Parse(uri); err == nil && u.Path != "" {
		p = u.Path
	}
	if name, err := url.PathUnescape(path.Base(p)); err == nil {
		return name
	}
	return path.Base(p)
}

// Render returns the player bar for the given terminal width.
func Render(s State, width int) string {
	st := styles.T().S()
	inner := max(width-4, 10) // border and padding

	lines := []string{
		renderTitle(s, inner),
		RenderProgressBar(
			time.Duration(s.Status.PositionMillis)*time.Millisecond,
			time.Duration(s.Status.DurationMillis)*time.Millisecond,
			inner,
			s.Status.IsPlaying,
			s.Status.IsBuffering,
		),
		render.Row(renderSettings(s.Status), RenderFocus(s.Focus), inner),
	}
	return st.Box.Width(width - 2).Render(strings.Join(lines, "\n"))
}

func renderTitle(s State, width int) string {
	st := styles.T().S()
	if !s.Status.IsLoaded {
		return st.Muted.Render(render.Truncate("Loading "+s.Title, width))
	}

	title := s.Title
	if title == "" {
		title = "Unknown Track"
	}

	var parts []string
	for _, p := range []string{s.Artist, s.Album} {
		if p != "" {
			parts = append(parts, p)
		}
	}
	if s.Year > 0 {
		parts = append(parts, strconv.Itoa(s.Year))
	}
	info := strings.Join(parts, " · ")

	title = render.Truncate(title, width)
	out := styles.Gradient(title, styles.T().Primary, styles.T().Secondary)
	if rest := width - lipgloss.Width(title) - 3; info != "" && rest > 3 {
		out += "   " + st.Muted.Render(render.Truncate(info, rest))
	}
	return out
}

// RenderFocus renders the shared focus state.
func RenderFocus(f focus.State) string {
	st := styles.T().S()
	label := "focus: " + f.String()
	switch f {
	case focus.StateGranted:
		return st.Success.Render(label)
	case focus.StateDucked, focus.StateRequested:
		return st.Warning.Render(label)
	case focus.StateDenied:
		return st.Error.Render(label)
	default:
		return st.Subtle.Render(label)
	}
}

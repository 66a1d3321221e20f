package app

import (
	"strings"
	"time"

	"github.com/dustin/go-humanize"

	"github.com/llehouerou/focusplay/internal/ui/playerbar"
	"github.com/llehouerou/focusplay/internal/ui/render"
	"github.com/llehouerou/focusplay/internal/ui/styles"
)

const defaultWidth = 80

// View renders the player screen.
func (m Model) View() string {
	width := m.width
	if width <= 0 {
		width = defaultWidth
	}
	st := styles.T().S()

	bar := playerbar.NewState(m.svc.TrackInfo(), m.status, m.focus)
	lines := []string{playerbar.Render(bar, width)}

	if m.endInterruption != nil {
		lines = append(lines, st.Warning.Render("⚠ "+m.notice+"  (press again to end)"))
	} else if m.notice != "" {
		lines = append(lines, st.Muted.Render(m.notice))
	}
	if m.lastErr != "" {
		lines = append(lines, st.Error.Render(render.Truncate(m.lastErr, width)))
	}
	if info := m.sessionLine(); info != "" {
		lines = append(lines, st.Subtle.Render(info))
	}
	if m.closed {
		lines = append(lines, st.Muted.Render("player released"))
	}

	lines = append(lines, "", m.help.View(m.keys))
	return render.Clamp(strings.Join(lines, "\n"), width)
}

func (m Model) sessionLine() string {
	now := m.now()
	var parts []string
	if r := m.restored; r != nil {
		resumed := "restored session from " + humanize.RelTime(r.UpdatedAt, now, "ago", "from now")
		if pos := r.ResumePosition(); pos > 0 {
			resumed += " at " + playerbar.FormatDuration(time.Duration(pos)*time.Millisecond)
		}
		parts = append(parts, resumed)
	}
	if !m.savedAt.IsZero() {
		parts = append(parts, "saved "+humanize.RelTime(m.savedAt, now, "ago", "from now"))
	}
	return strings.Join(parts, " · ")
}


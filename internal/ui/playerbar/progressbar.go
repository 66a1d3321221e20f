package playerbar

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/llehouerou/focusplay/internal/ui/styles"
)

const (
	filledBlock = "▓"
	emptyBlock  = "░"
)

// RenderProgressBar renders a block-style progress bar.
// Format: ▶  1:23  ▓▓▓▓▓░░░░░  4:56
func RenderProgressBar(position, duration time.Duration, width int, playing, buffering bool) string {
	st := styles.T().S()
	indicator := st.Muted.Render("⏸")
	switch {
	case buffering:
		indicator = st.Warning.Render("…")
	case playing:
		indicator = st.Playing.Render("▶")
	}

	posStr := FormatDuration(position)
	durStr := FormatDuration(duration)

	fixedWidth := lipgloss.Width(indicator) + 2 + lipgloss.Width(posStr) + 2 + 2 + lipgloss.Width(durStr)
	barWidth := width - fixedWidth
	if barWidth < 3 {
		return indicator + "  " + posStr + " / " + durStr
	}

	var ratio float64
	if duration > 0 {
		ratio = float64(position) / float64(duration)
	}
	filled := max(min(int(float64(barWidth)*ratio), barWidth), 0)
	bar := st.Playing.Render(strings.Repeat(filledBlock, filled)) +
		st.Subtle.Render(strings.Repeat(emptyBlock, barWidth-filled))

	return indicator + "  " + posStr + "  " + bar + "  " + durStr
}

// FormatDuration renders m:ss, or h:mm:ss from one hour on.
func FormatDuration(d time.Duration) string {
	d = max(d, 0)
	h := int(d.Hours())
	m := int(d.Minutes()) % 60
	s := int(d.Seconds()) % 60
	if h > 0 {
		return fmt.Sprintf("%d:%02d:%02d", h, m, s)
	}
	return fmt.Sprintf("%d:%02d", m, s)
}

package playerbar

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/llehouerou/focusplay/internal/status"
	"github.com/llehouerou/focusplay/internal/ui/styles"
)

// RenderVolume renders the requested volume.
// Format: "vol 100%" or "muted 100%"
func RenderVolume(volume float64, muted bool) string {
	st := styles.T().S()
	pct := int(volume*100 + 0.5)
	if muted {
		return st.Warning.Render(fmt.Sprintf("muted %3d%%", pct))
	}
	return st.Base.Render(fmt.Sprintf("vol %3d%%", pct))
}

// RenderRate renders the playback rate, e.g. "1.25x".
func RenderRate(rate float64) string {
	return styles.T().S().Base.Render(strconv.FormatFloat(rate, 'f', -1, 64) + "x")
}

// RenderFlag renders a named on/off setting.
func RenderFlag(name string, on bool) string {
	if on {
		return styles.T().S().FlagOn.Render(name)
	}
	return styles.T().S().FlagOff.Render(name)
}

func renderSettings(s status.PlaybackStatus) string {
	return strings.Join([]string{
		RenderVolume(s.Volume, s.IsMuted),
		RenderRate(s.Rate),
		RenderFlag("loop", s.IsLooping),
		RenderFlag("pitch", s.ShouldCorrectPitch),
	}, "  ")
}

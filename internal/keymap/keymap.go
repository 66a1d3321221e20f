// Package keymap defines the key bindings of the player screen.
package keymap

// Binding describes a single key binding.
type Binding struct {
	Keys        []string
	Action      Action
	Description string
	Context     string // "global", "playback", "focus"
}

// All contains every key binding, in help display order.
var All = []Binding{
	// Playback
	{[]string{" "}, ActionPlayPause, "Play/pause", "playback"},
	{[]string{"left"}, ActionSeekBack, "Seek -5s", "playback"},
	{[]string{"right"}, ActionSeekForward, "Seek +5s", "playback"},
	{[]string{"+", "="}, ActionVolumeUp, "Volume up", "playback"},
	{[]string{"-"}, ActionVolumeDown, "Volume down", "playback"},
	{[]string{"m"}, ActionToggleMute, "Toggle mute", "playback"},
	{[]string{"]"}, ActionRateUp, "Faster", "playback"},
	{[]string{"["}, ActionRateDown, "Slower", "playback"},
	{[]string{"l"}, ActionToggleLoop, "Toggle looping", "playback"},
	{[]string{"c"}, ActionTogglePitch, "Toggle pitch correction", "playback"},

	// Focus simulation: a second press ends the interruption.
	{[]string{"i"}, ActionInterruptTransient, "Transient interruption", "focus"},
	{[]string{"d"}, ActionInterruptDuck, "Ducking interruption", "focus"},
	{[]string{"L"}, ActionInterruptPermanent, "Permanent focus loss", "focus"},

	// Global
	{[]string{"?"}, ActionHelp, "Show help", "global"},
	{[]string{"ctrl+z"}, ActionSuspend, "Suspend", "global"},
	{[]string{"q", "ctrl+c"}, ActionQuit, "Quit", "global"},
}

// ByContext returns key bindings filtered by context.
func ByContext(context string) []Binding {
	var result []Binding
	for _, kb := range All {
		if kb.Context == context {
			result = append(result, kb)
		}
	}
	return result
}

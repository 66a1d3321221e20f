package keymap

// Action represents a user-triggerable action.
type Action string

const (
	ActionQuit Action = "quit"
	ActionHelp Action = "help"

	// Playback
	ActionPlayPause   Action = "play_pause"
	ActionToggleMute  Action = "toggle_mute"
	ActionVolumeUp    Action = "volume_up"
	ActionVolumeDown  Action = "volume_down"
	ActionRateUp      Action = "rate_up"
	ActionRateDown    Action = "rate_down"
	ActionToggleLoop  Action = "toggle_loop"
	ActionTogglePitch Action = "toggle_pitch"
	ActionSeekForward Action = "seek_forward"
	ActionSeekBack    Action = "seek_back"

	// Focus simulation
	ActionInterruptTransient Action = "interrupt_transient"
	ActionInterruptDuck      Action = "interrupt_duck"
	ActionInterruptPermanent Action = "interrupt_permanent"

	ActionSuspend Action = "suspend"
)

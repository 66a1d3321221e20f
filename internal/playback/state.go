// internal/playback/state.go
package playback

// State is the coordinator lifecycle.
//
//	┌──────────┐  load   ┌─────────┐  success  ┌────────┐
//	│ Unloaded │ ──────▶ │ Loading │ ────────▶ │ Loaded │
//	└──────────┘         └─────────┘           └────────┘
//	     ▲                    │ failure             │
//	     └────────────────────┘                     │ release
//	                                                ▼
//	          any state ──── release ─────▶  ┌──────────┐
//	                                         │ Released │
//	                                         └──────────┘
//
// Status merges are accepted before the source is loaded; engine commands,
// focus events and engine callbacks only take effect in Loaded. Released is
// terminal.
type State int32

const (
	StateUnloaded State = iota
	StateLoading
	StateLoaded
	StateReleased
)

// String returns the state name.
func (s State) String() string {
	switch s {
	case StateUnloaded:
		return "Unloaded"
	case StateLoading:
		return "Loading"
	case StateLoaded:
		return "Loaded"
	case StateReleased:
		return "Released"
	default:
		return "Unknown"
	}
}

// AcceptsCommands returns true if engine commands take effect.
func (s State) AcceptsCommands() bool {
	return s == StateLoaded
}

// internal/player/state.go
package player

// State is the engine's playback state.
//
//	┌──────────┐      load       ┌──────────┐
//	│ Unloaded │ ───────────────▶│  Paused  │◀──────────┐
//	└──────────┘                 └──────────┘           │
//	     ▲                          │    ▲              │ pause
//	     │ release             play │    │ pause        │
//	     │                          ▼    │              │
//	     │                       ┌──────────┐     ┌───────────┐
//	     └───────────────────────│ Playing  │────▶│ Completed │
//	                             └──────────┘ end └───────────┘
//	                                  ▲    play       │
//	                                  └───────────────┘
//
// Completed means the output chain ran dry and was detached; the next play
// rewinds and re-attaches it. Release is terminal from any state.
type State int32

const (
	Unloaded State = iota
	Paused
	Playing
	Completed
)

// String returns the state name for debugging.
func (s State) String() string {
	switch s {
	case Unloaded:
		return "Unloaded"
	case Paused:
		return "Paused"
	case Playing:
		return "Playing"
	case Completed:
		return "Completed"
	default:
		return "Unknown"
	}
}

// IsLoaded returns true if a source is attached.
func (s State) IsLoaded() bool {
	return s != Unloaded
}

// CanPause returns true if the state allows pausing.
func (s State) CanPause() bool {
	return s == Playing
}

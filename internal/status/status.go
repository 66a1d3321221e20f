// Package status holds the playback status value and the partial-update merge.
package status

// DefaultUpdateIntervalMillis is the reporting cadence of a fresh status.
const DefaultUpdateIntervalMillis = 500

// PlaybackStatus is the merged playback status of one player.
//
// A status is a value: Merge and the coordinator produce new instances and
// never mutate one that has already been handed out.
type PlaybackStatus struct {
	IsLoaded bool   `json:"isLoaded"`
	URIPath  string `json:"uri,omitempty"`

	// Caller intent.
	ShouldPlay           bool    `json:"shouldPlay"`
	IsMuted              bool    `json:"isMuted"`
	Volume               float64 `json:"volume"`
	Rate                 float64 `json:"rate"`
	ShouldCorrectPitch   bool    `json:"shouldCorrectPitch"`
	IsLooping            bool    `json:"isLooping"`
	UpdateIntervalMillis int     `json:"progressUpdateIntervalMillis"`

	// Engine observations.
	IsPlaying              bool   `json:"isPlaying"`
	IsBuffering            bool   `json:"isBuffering"`
	PositionMillis         int64  `json:"positionMillis"`
	DurationMillis         int64  `json:"durationMillis"`
	PlayableDurationMillis int64  `json:"playableDurationMillis"`
	ImplementationName     string `json:"androidImplementation,omitempty"`

	// DidJustFinish is set on the single report emitted at natural end of media.
	DidJustFinish bool `json:"didJustFinish"`
}

// Unloaded returns the canonical status of a player with no source ready.
func Unloaded() PlaybackStatus {
	return PlaybackStatus{
		Volume:               1,
		Rate:                 1,
		UpdateIntervalMillis: DefaultUpdateIntervalMillis,
	}
}

// ShouldEngineRun reports whether the engine should be advancing playback.
// Focus is not part of the decision.
func ShouldEngineRun(s PlaybackStatus) bool {
	return s.ShouldPlay && s.Rate > 0
}

// WithImplementation returns a copy of s naming the active engine backend.
func (s PlaybackStatus) WithImplementation(name string) PlaybackStatus {
	s.ImplementationName = name
	return s
}

package playback

// ErrorEvent is emitted when the engine reports a fatal error. The
// coordinator does not retry or release on its own.
type ErrorEvent struct {
	Operation string // e.g. "playback", "seek"
	URI       string
	Err       error
}

// VideoSize is emitted when the engine reports new video dimensions.
type VideoSize struct {
	Width  int
	Height int
}

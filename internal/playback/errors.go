package playback

import "errors"

var (
	// ErrLoadFailed wraps the engine's load error.
	ErrLoadFailed = errors.New("load failed")
	// ErrInvalidState is returned for commands that are not meaningful in the
	// current lifecycle state.
	ErrInvalidState = errors.New("invalid state")
	// ErrReleased is returned once the coordinator has been released.
	ErrReleased = errors.New("player released")
)

// EngineError is a failure reported by, or raised inside, the media engine.
type EngineError struct {
	Message string
	Err     error
}

func (e *EngineError) Error() string {
	return "engine error: " + e.Message
}

func (e *EngineError) Unwrap() error {
	return e.Err
}

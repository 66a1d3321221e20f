// Package errmsg provides consistent error formatting for user-facing messages.
package errmsg

import "fmt"

// Op represents an operation that can fail.
type Op string

// Operation constants - grouped by domain.
const (
	// Playback operations
	OpPlaybackLoad   Op = "load media"
	OpPlaybackPlay   Op = "start playback"
	OpPlaybackPause  Op = "pause playback"
	OpPlaybackSeek   Op = "seek"
	OpPlaybackStatus Op = "apply status"
	OpPlaybackEngine Op = "play media"

	// Session operations
	OpSessionLoad Op = "load saved session"
	OpSessionSave Op = "save session"

	// Integrations
	OpMPRISStart  Op = "start media controls"
	OpNotifyStart Op = "connect to notification server"

	// Initialization
	OpConfigLoad Op = "load configuration"
	OpInitialize Op = "initialize application"
)

// Format creates a user-friendly error message.
func Format(op Op, err error) string {
	if err == nil {
		return ""
	}
	return fmt.Sprintf("Failed to %s: %v", op, err)
}

// FormatWith creates an error message with additional context.
func FormatWith(op Op, context string, err error) string {
	if err == nil {
		return ""
	}
	if context == "" {
		return Format(op, err)
	}
	return fmt.Sprintf("Failed to %s '%s': %v", op, context, err)
}

//nolint:goconst // test cases intentionally repeat strings for readability
package errmsg

import (
	"errors"
	"testing"
)

func TestFormat(t *testing.T) {
	tests := []struct {
		name     string
		op       Op
		err      error
		expected string
	}{
		{
			name:     "nil error returns empty string",
			op:       OpPlaybackLoad,
			err:      nil,
			expected: "",
		},
		{
			name:     "formats error with operation",
			op:       OpPlaybackLoad,
			err:      errors.New("file not found"),
			expected: "Failed to load media: file not found",
		},
		{
			name:     "focus failure on play",
			op:       OpPlaybackPlay,
			err:      errors.New("unable to gain audio focus"),
			expected: "Failed to start playback: unable to gain audio focus",
		},
		{
			name:     "session operation",
			op:       OpSessionSave,
			err:      errors.New("database is locked"),
			expected: "Failed to save session: database is locked",
		},
		{
			name:     "wrapped error keeps the chain text",
			op:       OpPlaybackSeek,
			err:      errors.Join(errors.New("invalid state"), errors.New("not loaded")),
			expected: "Failed to seek: invalid state\nnot loaded",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := Format(tt.op, tt.err)
			if result != tt.expected {
				t.Errorf("Format(%q, %v) = %q, want %q", tt.op, tt.err, result, tt.expected)
			}
		})
	}
}

func TestFormatWith(t *testing.T) {
	tests := []struct {
		name     string
		op       Op
		context  string
		err      error
		expected string
	}{
		{
			name:     "nil error returns empty string",
			op:       OpPlaybackLoad,
			context:  "song.mp3",
			err:      nil,
			expected: "",
		},
		{
			name:     "formats error with context",
			op:       OpPlaybackLoad,
			context:  "song.mp3",
			err:      errors.New("unsupported format"),
			expected: "Failed to load media 'song.mp3': unsupported format",
		},
		{
			name:     "empty context falls back to Format",
			op:       OpPlaybackLoad,
			context:  "",
			err:      errors.New("unsupported format"),
			expected: "Failed to load media: unsupported format",
		},
		{
			name:     "config with path context",
			op:       OpConfigLoad,
			context:  "/home/user/.config/focusplay/config.toml",
			err:      errors.New("expected '=' after key"),
			expected: "Failed to load configuration '/home/user/.config/focusplay/config.toml': expected '=' after key",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := FormatWith(tt.op, tt.context, tt.err)
			if result != tt.expected {
				t.Errorf("FormatWith(%q, %q, %v) = %q, want %q", tt.op, tt.context, tt.err, result, tt.expected)
			}
		})
	}
}

func TestOpConstants(t *testing.T) {
	ops := []Op{
		OpPlaybackLoad, OpPlaybackPlay, OpPlaybackPause, OpPlaybackSeek,
		OpPlaybackStatus, OpPlaybackEngine,
		OpSessionLoad, OpSessionSave,
		OpMPRISStart, OpNotifyStart,
		OpConfigLoad, OpInitialize,
	}

	testErr := errors.New("test error")

	for _, op := range ops {
		t.Run(string(op), func(t *testing.T) {
			if op == "" {
				t.Error("Op constant should not be empty")
			}

			expected := "Failed to " + string(op) + ": test error"
			if result := Format(op, testErr); result != expected {
				t.Errorf("Format = %q, want %q", result, expected)
			}
		})
	}
}

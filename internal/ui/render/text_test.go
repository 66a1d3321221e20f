package render

import (
	"strings"
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/stretchr/testify/assert"
)

func TestSanitize(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"plain text unchanged", "Blue in Green", "Blue in Green"},
		{"control characters dropped", "Track\x00 One\x1b", "Track One"},
		{"newline dropped", "line\nbreak", "linebreak"},
		{"tab kept", "a\tb", "a\tb"},
		{"nbsp becomes space", "a\u00a0b", "a b"},
		{"invalid utf8 dropped", "caf\xe9", "caf"},
		{"wide characters kept", "東京", "東京"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Sanitize(tt.input))
		})
	}
}

func TestTruncate(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		maxWidth int
		want     string
	}{
		{"no truncation needed", "hello", 10, "hello"},
		{"exact fit", "hello", 5, "hello"},
		{"cut with ellipsis", "hello world", 8, "hello w…"},
		{"empty string", "", 10, ""},
		{"sanitized before measuring", "ab\x00cd", 4, "abcd"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Truncate(tt.input, tt.maxWidth)
			if got != tt.want {
				t.Errorf("Truncate(%q, %d) = %q, want %q", tt.input, tt.maxWidth, got, tt.want)
			}
		})
	}
}

func TestTruncate_WideCharacters(t *testing.T) {
	got := Truncate("東京タワー", 5)
	assert.LessOrEqual(t, lipgloss.Width(got), 5)
	assert.True(t, strings.HasSuffix(got, "…"))
}

func TestRow(t *testing.T) {
	got := Row("left", "right", 20)
	assert.Equal(t, 20, lipgloss.Width(got))
	assert.True(t, strings.HasPrefix(got, "left"))
	assert.True(t, strings.HasSuffix(got, "right"))

	tight := Row("left", "right", 5)
	assert.Equal(t, "left right", tight, "minimum gap of one")
}

func TestClamp(t *testing.T) {
	styled := lipgloss.NewStyle().Bold(true).Render("abcdefghij")
	got := Clamp(styled+"\nshort", 4)

	lines := strings.Split(got, "\n")
	assert.Len(t, lines, 2)
	assert.Equal(t, 4, lipgloss.Width(lines[0]))
	assert.Equal(t, "short"[:4], lines[1])

	assert.Equal(t, "unchanged", Clamp("unchanged", 0))
}

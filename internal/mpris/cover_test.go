//go:build linux

package mpris

import (
	"os"
	"path/filepath"
	"testing"
)

func TestFindAlbumArt(t *testing.T) {
	dir := t.TempDir()
	coverPath := filepath.Join(dir, "cover.jpg")
	if err := os.WriteFile(coverPath, []byte("fake"), 0o600); err != nil {
		t.Fatal(err)
	}
	trackPath := filepath.Join(dir, "track.mp3")

	tests := []struct {
		name string
		uri  string
		want string
	}{
		{"plain path", trackPath, coverPath},
		{"file uri", "file://" + trackPath, coverPath},
		{"remote uri", "https://example.com/track.mp3", ""},
		{"empty", "", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := FindAlbumArt(tt.uri); got != tt.want {
				t.Errorf("FindAlbumArt(%q) = %q, want %q", tt.uri, got, tt.want)
			}
		})
	}
}

func TestFindAlbumArt_NotFound(t *testing.T) {
	trackPath := filepath.Join(t.TempDir(), "track.mp3")

	if got := FindAlbumArt(trackPath); got != "" {
		t.Errorf("FindAlbumArt() = %q, want empty string", got)
	}
}

func TestFindAlbumArt_Priority(t *testing.T) {
	dir := t.TempDir()

	folderPath := filepath.Join(dir, "folder.jpg")
	if err := os.WriteFile(folderPath, []byte("fake"), 0o600); err != nil {
		t.Fatal(err)
	}
	coverPath := filepath.Join(dir, "cover.jpg")
	if err := os.WriteFile(coverPath, []byte("fake"), 0o600); err != nil {
		t.Fatal(err)
	}

	got := FindAlbumArt(filepath.Join(dir, "track.mp3"))
	if got != coverPath {
		t.Errorf("FindAlbumArt() = %q, want %q (higher priority)", got, coverPath)
	}
}

package player

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/bogem/id3v2/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// createMinimalMP3 creates a minimal MP3 file: one frame header plus padding
// (417 bytes for a 128kbps frame).
func createMinimalMP3(t *testing.T, path string) {
	t.Helper()
	mp3Frame := make([]byte, 417)
	mp3Frame[0] = 0xff
	mp3Frame[1] = 0xfb
	mp3Frame[2] = 0x90
	mp3Frame[3] = 0x00

	require.NoError(t, os.WriteFile(path, mp3Frame, 0o600))
}

func TestReadTrackInfo_ID3Tags(t *testing.T) {
	mp3Path := filepath.Join(t.TempDir(), "song.mp3")
	createMinimalMP3(t, mp3Path)

	tag, err := id3v2.Open(mp3Path, id3v2.Options{Parse: true})
	require.NoError(t, err)
	tag.SetDefaultEncoding(id3v2.EncodingUTF8)
	tag.SetTitle("Night Drive")
	tag.SetArtist("The Examples")
	tag.SetAlbum("Focus")
	tag.SetGenre("Ambient")
	require.NoError(t, tag.Save())
	tag.Close()

	f, err := os.Open(mp3Path)
	require.NoError(t, err)
	defer f.Close()

	info := readTrackInfo(f, mp3Path)

	assert.Equal(t, "Night Drive", info.Title)
	assert.Equal(t, "The Examples", info.Artist)
	assert.Equal(t, "Focus", info.Album)
	assert.Equal(t, "Ambient", info.Genre)
	assert.Equal(t, mp3Path, info.URI)

	pos, err := f.Seek(0, 1)
	require.NoError(t, err)
	assert.Equal(t, int64(0), pos, "reader rewound for decoding")
}

func TestReadTrackInfo_UntaggedFallsBackToName(t *testing.T) {
	mp3Path := filepath.Join(t.TempDir(), "untagged.mp3")
	createMinimalMP3(t, mp3Path)

	f, err := os.Open(mp3Path)
	require.NoError(t, err)
	defer f.Close()

	info := readTrackInfo(f, mp3Path)

	assert.Equal(t, "untagged.mp3", info.Title)
	assert.Empty(t, info.Artist)
}

func TestTitleFromURI(t *testing.T) {
	tests := []struct {
		uri, want string
	}{
		{"/music/a.flac", "a.flac"},
		{"https://example.com/radio/live.mp3?token=abc", "live.mp3"},
		{`C:\music\b.wav`, "b.wav"},
		{"", ""},
	}
	for _, tt := range tests {
		t.Run(tt.uri, func(t *testing.T) {
			assert.Equal(t, tt.want, titleFromURI(tt.uri))
		})
	}
}

package player

import (
	"io"
	"path"
	"strings"
	"time"

	"github.com/dhowden/tag"
)

// TrackInfo describes the loaded source.
type TrackInfo struct {
	URI        string
	Title      string
	Artist     string
	Album      string
	Year       int
	Track      int
	Genre      string
	Format     string
	SampleRate int
	Duration   time.Duration
}

// readTrackInfo reads tags from r and rewinds it. Untagged sources get the
// base name of uri as title.
func readTrackInfo(r io.ReadSeeker, uri string) *TrackInfo {
	info := &TrackInfo{URI: uri, Title: titleFromURI(uri)}

	m, err := tag.ReadFrom(r)
	if err == nil {
		if m.Title() != "" {
			info.Title = m.Title()
		}
		info.Artist = m.Artist()
		if info.Artist == "" {
			info.Artist = m.AlbumArtist()
		}
		info.Album = m.Album()
		info.Year = m.Year()
		info.Track, _ = m.Track()
		info.Genre = m.Genre()
	}

	_, _ = r.Seek(0, io.SeekStart)
	return info
}

func titleFromURI(uri string) string {
	base := path.Base(strings.ReplaceAll(uri, "\\", "/"))
	if i := strings.IndexAny(base, "?#"); i >= 0 {
		base = base[:i]
	}
	if base == "" || base == "." || base == "/" {
		return uri
	}
	return base
}

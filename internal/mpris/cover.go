//go:build linux

package mpris

import (
	"net/url"
	"os"
	"path/filepath"
)

// coverNames lists common album art filenames in priority order.
var coverNames = []string{
	"cover.jpg", "cover.png", "cover.jpeg",
	"folder.jpg", "folder.png", "folder.jpeg",
	"album.jpg", "album.png", "album.jpeg",
	"front.jpg", "front.png", "front.jpeg",
}

// FindAlbumArt looks for album art next to a local media URI (a path or a
// file:// URL). Remote URIs have none.
func FindAlbumArt(uri string) string {
	path, ok := localPath(uri)
	if !ok {
		return ""
	}
	dir := filepath.Dir(path)
	for _, name := range coverNames {
		art := filepath.Join(dir, name)
		if _, err := os.Stat(art); err == nil {
			return art
		}
	}
	return ""
}

func localPath(uri string) (string, bool) {
	u, err := url.Parse(uri)
	if err != nil || len(u.Scheme) <= 1 {
		// Plain path, including Windows drive letters.
		return uri, uri != ""
	}
	if u.Scheme != "file" {
		return "", false
	}
	return u.Path, u.Path != ""
}

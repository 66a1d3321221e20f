package player

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"mime"
	"net/http"
	"net/url"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/gopxl/beep/v2"
	"github.com/gopxl/beep/v2/flac"
	"github.com/gopxl/beep/v2/mp3"
	"github.com/gopxl/beep/v2/vorbis"
	"github.com/gopxl/beep/v2/wav"
)

const (
	extMP3  = ".mp3"
	extFLAC = ".flac"
	extWAV  = ".wav"
	extOGG  = ".ogg"
	extOGA  = ".oga"
)

// maxRemoteBytes bounds the size of a remote source held in memory.
const maxRemoteBytes = 512 << 20

// source is an opened, seekable media source.
type source struct {
	io.ReadSeekCloser
	// name is the path component used for format detection.
	name        string
	contentType string
	remote      bool
}

type memSource struct{ *bytes.Reader }

func (memSource) Close() error { return nil }

// bufferingReporter receives download progress while a remote source is
// fetched.
type bufferingReporter interface {
	start()
	progress(percent int)
	stop()
}

// openSource opens a local path, a file:// URI or an http(s):// URI. Remote
// sources are fetched fully into memory so that decoders can seek.
func openSource(ctx context.Context, client *http.Client, uri string, cookies []*http.Cookie, rep bufferingReporter) (*source, error) {
	u, err := url.Parse(uri)
	if err != nil || len(u.Scheme) <= 1 {
		// Plain paths, including Windows drive letters.
		return openFile(uri)
	}

	switch strings.ToLower(u.Scheme) {
	case "file":
		return openFile(filepath.FromSlash(u.Path))
	case "http", "https":
		return fetch(ctx, client, u, cookies, rep)
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedScheme, u.Scheme)
	}
}

func openFile(p string) (*source, error) {
	f, err := os.Open(p)
	if err != nil {
		return nil, err
	}
	return &source{ReadSeekCloser: f, name: p}, nil
}

func fetch(ctx context.Context, client *http.Client, u *url.URL, cookies []*http.Cookie, rep bufferingReporter) (*source, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return nil, err
	}
	for _, c := range cookies {
		req.AddCookie(c)
	}

	rep.start()
	defer rep.stop()

	resp, err := client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("fetch %s: %s", u.Redacted(), resp.Status)
	}

	body := &progressReader{r: io.LimitReader(resp.Body, maxRemoteBytes), total: resp.ContentLength, report: rep.progress}
	data, err := io.ReadAll(body)
	if err != nil {
		return nil, fmt.Errorf("fetch %s: %w", u.Redacted(), err)
	}
	rep.progress(100)

	return &source{
		ReadSeekCloser: memSource{bytes.NewReader(data)},
		name:           path.Base(u.Path),
		contentType:    resp.Header.Get("Content-Type"),
		remote:         true,
	}, nil
}

// progressReader reports every 10% step of a download of known length.
type progressReader struct {
	r      io.Reader
	total  int64
	read   int64
	last   int
	report func(percent int)
}

func (p *progressReader) Read(b []byte) (int, error) {
	n, err := p.r.Read(b)
	p.read += int64(n)
	if p.total > 0 {
		pct := int(p.read * 100 / p.total)
		if pct/10 > p.last/10 && pct < 100 {
			p.last = pct
			p.report(pct)
		}
	}
	return n, err
}

// formatOf picks a decoder from the file extension, falling back to the
// content type of a remote response.
func formatOf(name, contentType string) (string, error) {
	switch ext := strings.ToLower(filepath.Ext(name)); ext {
	case extMP3, extFLAC, extWAV:
		return ext, nil
	case extOGG, extOGA:
		return extOGG, nil
	}

	mt, _, _ := mime.ParseMediaType(contentType)
	switch mt {
	case "audio/mpeg", "audio/mp3":
		return extMP3, nil
	case "audio/flac", "audio/x-flac":
		return extFLAC, nil
	case "audio/wav", "audio/x-wav", "audio/wave", "audio/vnd.wave":
		return extWAV, nil
	case "audio/ogg", "audio/vorbis", "application/ogg":
		return extOGG, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnsupportedFormat, name)
}

// decode builds a seekable streamer for src.
func decode(src *source, kind string) (beep.StreamSeekCloser, beep.Format, error) {
	switch kind {
	case extMP3:
		return mp3.Decode(src)
	case extFLAC:
		// Some taggers prepend an ID3v2 tag the FLAC decoder does not handle.
		if err := skipID3v2(src); err != nil {
			return nil, beep.Format{}, err
		}
		return flac.Decode(src)
	case extWAV:
		return wav.Decode(src)
	case extOGG:
		return vorbis.Decode(src)
	default:
		return nil, beep.Format{}, fmt.Errorf("%w: %q", ErrUnsupportedFormat, kind)
	}
}

// skipID3v2 skips an ID3v2 tag if present at the beginning of the stream.
func skipID3v2(r io.ReadSeeker) error {
	header := make([]byte, 10)
	n, err := io.ReadFull(r, header)
	if err != nil && n < 10 {
		_, err = r.Seek(0, io.SeekStart)
		return err
	}

	if string(header[0:3]) != "ID3" {
		_, err = r.Seek(0, io.SeekStart)
		return err
	}

	// The tag size is a syncsafe integer: 7 bits per byte.
	size := int64(header[6])<<21 | int64(header[7])<<14 | int64(header[8])<<7 | int64(header[9])
	_, err = r.Seek(10+size, io.SeekStart)
	return err
}

// Package cookies supplies transport credentials for remote media sources.
package cookies

import (
	"fmt"
	"net/http"
	"net/http/cookiejar"
	"net/url"

	"go.uber.org/zap"
	"golang.org/x/net/publicsuffix"
)

// Source returns the cookies to send when fetching uri. It never fails: any
// problem yields an empty list.
type Source interface {
	CookiesFor(uri string) []*http.Cookie
}

// Seed is a cookie configured for a URL.
type Seed struct {
	URL   string
	Name  string
	Value string
}

// Jar is a Source backed by an RFC 6265 cookie jar using the public suffix
// list, so a cookie set for a registrable domain is shared by its hosts.
type Jar struct {
	jar http.CookieJar
	log *zap.Logger
}

// NewJar creates an empty jar.
func NewJar(log *zap.Logger) (*Jar, error) {
	jar, err := cookiejar.New(&cookiejar.Options{PublicSuffixList: publicsuffix.List})
	if err != nil {
		return nil, fmt.Errorf("create cookie jar: %w", err)
	}
	return &Jar{jar: jar, log: log.With(zap.String("component", "cookies"))}, nil
}

// Add stores seeds. Seeds with an unparsable URL are skipped and logged.
func (j *Jar) Add(seeds ...Seed) {
	for _, s := range seeds {
		u, err := parseHTTP(s.URL)
		if err != nil {
			j.log.Warn("skipping cookie", zap.String("name", s.Name), zap.Error(err))
			continue
		}
		j.jar.SetCookies(u, []*http.Cookie{{Name: s.Name, Value: s.Value, Path: "/"}})
	}
}

// SetCookies stores cookies received from u, as an http.Client would.
func (j *Jar) SetCookies(u *url.URL, cookies []*http.Cookie) {
	j.jar.SetCookies(u, cookies)
}

// CookiesFor implements Source.
func (j *Jar) CookiesFor(uri string) []*http.Cookie {
	u, err := parseHTTP(uri)
	if err != nil {
		return []*http.Cookie{}
	}
	cookies := j.jar.Cookies(u)
	if cookies == nil {
		return []*http.Cookie{}
	}
	return cookies
}

// CookieJar exposes the jar for an http.Client.
func (j *Jar) CookieJar() http.CookieJar { return j.jar }

func parseHTTP(raw string) (*url.URL, error) {
	u, err := url.Parse(raw)
	if err != nil {
		return nil, err
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, fmt.Errorf("not an http url: %q", raw)
	}
	return u, nil
}

// None is a Source without cookies.
type None struct{}

func (None) CookiesFor(string) []*http.Cookie { return []*http.Cookie{} }

package heroku

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"
)

// DefaultAppDomain is the domain Heroku assigns to apps without a custom
// domain. Newer apps get a random suffix on this domain, which is why the
// reported Web URL is preferred over the constructed one.
const DefaultAppDomain = "herokuapp.com"

// ErrWebURLNotFound means `heroku info` output had no "Web URL:" label.
var ErrWebURLNotFound = errors.New("could not parse Web URL from Heroku info")

var webURLPattern = regexp.MustCompile(`Web URL:\s*(https?://\S+)`)

// ParseWebURL extracts the URL following "Web URL:" in `heroku info` output.
func ParseWebURL(info string) (string, error) {
	m := webURLPattern.FindStringSubmatch(info)
	if m == nil {
		return "", ErrWebURLNotFound
	}
	return m[1], nil
}

// FallbackURL constructs https://<app>.<domain>. An empty domain means
// DefaultAppDomain.
func FallbackURL(app, domain string) string {
	if domain == "" {
		domain = DefaultAppDomain
	}
	return fmt.Sprintf("https://%s.%s", app, strings.TrimPrefix(domain, "."))
}

// URLSource tells where a resolved app URL came from.
type URLSource string

const (
	// SourceInfo means the URL was reported by `heroku info`.
	SourceInfo URLSource = "heroku-info"

	// SourceFallback means the URL was constructed from the app name.
	SourceFallback URLSource = "constructed"
)

// ResolvedURL is the outcome of ResolveAppURL.
type ResolvedURL struct {
	URL    string
	Source URLSource

	// LookupErr is why `heroku info` could not be used. Nil for SourceInfo.
	LookupErr error

	// Probed is true when a reachability probe was attempted.
	Probed bool

	// ProbeErr is the probe failure, if any. A non-nil ProbeErr is never
	// fatal; the constructed URL is used regardless.
	ProbeErr error
}

// Verified reports whether the URL was probed successfully.
func (r ResolvedURL) Verified() bool {
	return r.Probed && r.ProbeErr == nil
}

// ResolveAppURL returns the app's public URL. It asks `heroku info` first;
// when that fails for any reason it falls back to FallbackURL(app, domain)
// and, if prober is non-nil, checks that the fallback answers.
// ResolveAppURL itself never fails.
func (c *Client) ResolveAppURL(ctx context.Context, app, domain string, prober Prober) ResolvedURL {
	u, err := c.WebURL(ctx, app)
	if err == nil {
		return ResolvedURL{URL: u, Source: SourceInfo}
	}

	resolved := ResolvedURL{
		URL:       FallbackURL(app, domain),
		Source:    SourceFallback,
		LookupErr: err,
	}
	if prober != nil {
		resolved.Probed = true
		resolved.ProbeErr = prober.Probe(ctx, resolved.URL)
	}
	return resolved
}

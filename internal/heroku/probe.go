package heroku

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"
)

// DefaultProbeTimeout bounds a single reachability probe.
const DefaultProbeTimeout = 10 * time.Second

// Prober checks that a URL answers.
type Prober interface {
	Probe(ctx context.Context, url string) error
}

// HTTPProber sends a HEAD request. Any HTTP response, whatever its status,
// counts as reachable; only transport failures are errors.
type HTTPProber struct {
	Client  *http.Client
	Timeout time.Duration
}

// NewHTTPProber creates an HTTPProber. A zero timeout means
// DefaultProbeTimeout.
func NewHTTPProber(timeout time.Duration) *HTTPProber {
	if timeout <= 0 {
		timeout = DefaultProbeTimeout
	}
	return &HTTPProber{Client: http.DefaultClient, Timeout: timeout}
}

// Probe implements Prober.
func (p *HTTPProber) Probe(ctx context.Context, url string) error {
	timeout := p.Timeout
	if timeout <= 0 {
		timeout = DefaultProbeTimeout
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodHead, url, nil)
	if err != nil {
		return fmt.Errorf("build probe request: %w", err)
	}

	client := p.Client
	if client == nil {
		client = http.DefaultClient
	}
	res, err := client.Do(req)
	if err != nil {
		return fmt.Errorf("probe %s: %w", url, err)
	}
	_, _ = io.Copy(io.Discard, res.Body)
	_ = res.Body.Close()
	return nil
}

package docker

import (
	"context"
	"fmt"
	"net"
	"os"
	"runtime"
	"time"

	"github.com/docker/docker/client"
)

// DefaultPingTimeout is the maximum duration to wait for a Docker daemon
// response during Ping. Docker Desktop on macOS can take a few seconds to
// answer after wake-up.
const DefaultPingTimeout = 5 * time.Second

// Client wraps the Docker Engine SDK client. It exposes only what doctor
// needs: a reachability check that reports the daemon's API version.
type Client struct {
	inner *client.Client
	host  string
}

// NewClient creates a Docker client with automatic socket detection.
//
// The detection strategy follows this priority order:
//  1. DOCKER_HOST environment variable (if set, used as-is)
//  2. Platform-specific default socket paths:
//     - Linux: /var/run/docker.sock
//     - macOS: /var/run/docker.sock, then ~/.docker/run/docker.sock
//     - Windows: npipe:////./pipe/docker_engine
func NewClient() (*Client, error) {
	if dockerHost := os.Getenv("DOCKER_HOST"); dockerHost != "" {
		return newClientWithHost(dockerHost)
	}

	host, err := detectDockerHost()
	if err != nil {
		return nil, fmt.Errorf("Docker socket not found: %w", err)
	}
	return newClientWithHost(host)
}

func newClientWithHost(host string) (*Client, error) {
	c, err := client.NewClientWithOpts(
		client.WithHost(host),
		client.WithAPIVersionNegotiation(),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create Docker client for host %q: %w", host, err)
	}
	return &Client{inner: c, host: host}, nil
}

// detectDockerHost returns the Docker host URI for the current platform by
// probing the known socket locations.
func detectDockerHost() (string, error) {
	switch runtime.GOOS {
	case "linux":
		return detectUnixSocket([]string{"/var/run/docker.sock"})

	case "darwin":
		paths := []string{"/var/run/docker.sock"}
		if home, err := os.UserHomeDir(); err == nil {
			paths = append(paths, home+"/.docker/run/docker.sock")
		}
		return detectUnixSocket(paths)

	case "windows":
		// os.Stat does not work on named pipes, so the pipe is dialed.
		pipePath := `//./pipe/docker_engine`
		conn, err := net.DialTimeout("pipe", pipePath, time.Second)
		if err != nil {
			return "", fmt.Errorf("Docker named pipe not found at %s: %w", pipePath, err)
		}
		_ = conn.Close()
		return "npipe://" + pipePath, nil

	default:
		return "", fmt.Errorf("unsupported platform: %s", runtime.GOOS)
	}
}

// detectUnixSocket returns the unix:// URI of the first path that exists.
func detectUnixSocket(paths []string) (string, error) {
	for _, path := range paths {
		if _, err := os.Stat(path); err == nil {
			return "unix://" + path, nil
		}
	}
	return "", fmt.Errorf("no Docker socket at any of %v", paths)
}

// Host returns the daemon address the client connects to.
func (c *Client) Host() string {
	return c.host
}

// Ping verifies that the daemon answers within DefaultPingTimeout and
// returns its API version.
func (c *Client) Ping(ctx context.Context) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, DefaultPingTimeout)
	defer cancel()

	ping, err := c.inner.Ping(ctx)
	if err != nil {
		return "", fmt.Errorf("Docker daemon at %s is not responding: %w", c.host, err)
	}
	return ping.APIVersion, nil
}

// Close releases the client's resources. Safe to call on a nil inner client.
func (c *Client) Close() error {
	if c.inner != nil {
		return c.inner.Close()
	}
	return nil
}

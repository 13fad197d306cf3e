package datastore

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strings"
)

// ErrUnsupportedScheme is returned for datastore URLs no driver understands.
var ErrUnsupportedScheme = errors.New("unsupported datastore scheme")

// Pinger is a datastore driver that can answer a liveness probe.
type Pinger interface {
	Ping(ctx context.Context) error
	Close() error
}

// NewPinger picks a driver from the URL scheme and returns it together with
// the display name used for the datastore in snapshots.
func NewPinger(rawURL string) (Pinger, string, error) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return nil, "", fmt.Errorf("invalid datastore URL: %w", err)
	}

	switch strings.ToLower(u.Scheme) {
	case "redis", "rediss":
		p, err := newRedisPinger(rawURL)
		if err != nil {
			return nil, "", err
		}
		return p, "Redis", nil
	case "postgres", "postgresql":
		p, err := newPostgresPinger(rawURL)
		if err != nil {
			return nil, "", err
		}
		return p, "PostgreSQL", nil
	default:
		return nil, "", fmt.Errorf("%w: %q", ErrUnsupportedScheme, u.Scheme)
	}
}

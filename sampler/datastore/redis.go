package datastore

import (
	"context"
	"fmt"

	"github.com/redis/go-redis/v9"
)

type redisPinger struct {
	client *redis.Client
}

func newRedisPinger(rawURL string) (*redisPinger, error) {
	opts, err := redis.ParseURL(rawURL)
	if err != nil {
		return nil, fmt.Errorf("parsing redis URL: %w", err)
	}
	opts.Protocol = 2

	return &redisPinger{client: redis.NewClient(opts)}, nil
}

func (p *redisPinger) Ping(ctx context.Context) error {
	return p.client.Ping(ctx).Err()
}

func (p *redisPinger) Close() error {
	return p.client.Close()
}

package datastore

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
)

type postgresPinger struct {
	pool *pgxpool.Pool
}

// newPostgresPinger builds a lazily connecting pool; nothing is dialed
// until the first Ping.
func newPostgresPinger(rawURL string) (*postgresPinger, error) {
	cfg, err := pgxpool.ParseConfig(rawURL)
	if err != nil {
		return nil, fmt.Errorf("parsing postgres URL: %w", err)
	}
	cfg.MaxConns = 2

	pool, err := pgxpool.NewWithConfig(context.Background(), cfg)
	if err != nil {
		return nil, fmt.Errorf("creating postgres pool: %w", err)
	}

	return &postgresPinger{pool: pool}, nil
}

func (p *postgresPinger) Ping(ctx context.Context) error {
	return p.pool.Ping(ctx)
}

func (p *postgresPinger) Close() error {
	p.pool.Close()
	return nil
}

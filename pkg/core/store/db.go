package store

import (
	"context"
	"errors"
	"fmt"
	"os"
	"sync"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
)

// ErrNoDatabaseURL is returned by InitDB when neither the argument nor DATABASE_URL name a
// database.
var ErrNoDatabaseURL = errors.New("DATABASE_URL environment variable not set")

// Saved deals are one row per workspace, so a small pool is plenty.
const (
	maxConns        = 4
	maxConnIdleTime = 5 * time.Minute
)

var (
	poolMu sync.Mutex
	pool   *pgxpool.Pool
)

// InitDB opens the shared saved-deals pool and checks the database answers. An empty dbURL
// falls back to DATABASE_URL. Calling it again after success is a no-op; after a failure it
// retries.
func InitDB(ctx context.Context, dbURL string) error {
	poolMu.Lock()
	defer poolMu.Unlock()

	if pool != nil {
		return nil
	}
	if dbURL == "" {
		dbURL = os.Getenv("DATABASE_URL")
	}
	if dbURL == "" {
		return ErrNoDatabaseURL
	}

	cfg, err := pgxpool.ParseConfig(dbURL)
	if err != nil {
		return fmt.Errorf("parse database url: %w", err)
	}
	if cfg.MaxConns > maxConns {
		cfg.MaxConns = maxConns
	}
	cfg.MaxConnIdleTime = maxConnIdleTime

	p, err := pgxpool.NewWithConfig(ctx, cfg)
	if err != nil {
		return fmt.Errorf("open pool: %w", err)
	}
	if err := p.Ping(ctx); err != nil {
		p.Close()
		return fmt.Errorf("ping database: %w", err)
	}
	pool = p
	return nil
}

// GetPool returns the pool opened by InitDB, or nil.
func GetPool() *pgxpool.Pool {
	poolMu.Lock()
	defer poolMu.Unlock()
	return pool
}

// Close releases the pool; a later InitDB opens a new one.
func Close() {
	poolMu.Lock()
	defer poolMu.Unlock()
	if pool != nil {
		pool.Close()
		pool = nil
	}
}

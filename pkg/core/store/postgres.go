package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// DefaultWorkspace keys the deal list when no workspace is configured.
const DefaultWorkspace = "default"

const createSavedDeals = `
	CREATE TABLE IF NOT EXISTS saved_deals (
		workspace  TEXT PRIMARY KEY,
		deals      JSONB NOT NULL,
		updated_at TIMESTAMPTZ NOT NULL
	)
`

// PostgresRepository stores each workspace's deal list as a single JSONB row.
type PostgresRepository struct {
	pool      *pgxpool.Pool
	workspace string
}

// NewPostgresRepository uses GetPool() when pool is nil.
func NewPostgresRepository(pool *pgxpool.Pool, workspace string) *PostgresRepository {
	if pool == nil {
		pool = GetPool()
	}
	if workspace == "" {
		workspace = DefaultWorkspace
	}
	return &PostgresRepository{pool: pool, workspace: workspace}
}

// EnsureSchema creates the saved_deals table if it does not exist.
func (r *PostgresRepository) EnsureSchema(ctx context.Context) error {
	if r.pool == nil {
		return fmt.Errorf("database pool not initialized")
	}
	if _, err := r.pool.Exec(ctx, createSavedDeals); err != nil {
		return fmt.Errorf("failed to create saved_deals: %w", err)
	}
	return nil
}

func (r *PostgresRepository) Load(ctx context.Context) ([]SavedDeal, error) {
	if r.pool == nil {
		return nil, fmt.Errorf("database pool not initialized")
	}

	var jsonData []byte
	err := r.pool.QueryRow(ctx, `SELECT deals FROM saved_deals WHERE workspace = $1`, r.workspace).Scan(&jsonData)
	if errors.Is(err, pgx.ErrNoRows) {
		return []SavedDeal{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load deals: %w", err)
	}

	var deals []SavedDeal
	if err := json.Unmarshal(jsonData, &deals); err != nil {
		return nil, fmt.Errorf("failed to unmarshal deals: %w", err)
	}
	return nonNil(deals), nil
}

func (r *PostgresRepository) Save(ctx context.Context, deals []SavedDeal) error {
	if r.pool == nil {
		return fmt.Errorf("database pool not initialized")
	}

	jsonData, err := json.Marshal(nonNil(deals))
	if err != nil {
		return fmt.Errorf("failed to marshal deals: %w", err)
	}

	query := `
		INSERT INTO saved_deals (workspace, deals, updated_at)
		VALUES ($1, $2, $3)
		ON CONFLICT (workspace)
		DO UPDATE SET
			deals = EXCLUDED.deals,
			updated_at = EXCLUDED.updated_at
	`
	if _, err := r.pool.Exec(ctx, query, r.workspace, jsonData, time.Now()); err != nil {
		return fmt.Errorf("failed to save deals: %w", err)
	}
	return nil
}

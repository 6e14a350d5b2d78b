package store

import (
	"context"
	"sync"
)

// MemoryRepository keeps deals in process memory.
type MemoryRepository struct {
	mu    sync.RWMutex
	deals []SavedDeal
}

func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{}
}

func (r *MemoryRepository) Load(ctx context.Context) ([]SavedDeal, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return nonNil(append([]SavedDeal(nil), r.deals...)), nil
}

func (r *MemoryRepository) Save(ctx context.Context, deals []SavedDeal) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.deals = append([]SavedDeal(nil), deals...)
	return nil
}

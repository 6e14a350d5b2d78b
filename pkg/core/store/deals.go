package store

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
)

// MaxSavedDeals caps the deal book; the oldest deals fall off the end.
const MaxSavedDeals = 50

var ErrDealNotFound = errors.New("saved deal not found")

// SavedDeal is a named snapshot of one calculator's raw inputs and headline result.
type SavedDeal struct {
	ID        string            `json:"id"`
	Name      string            `json:"name"`
	Type      string            `json:"type"`
	Industry  string            `json:"industry"`
	Country   string            `json:"country"`
	Timestamp time.Time         `json:"timestamp"`
	Data      map[string]string `json:"data"`
	Result    string            `json:"result"`
}

// DealRepository persists the whole deal list at once.
type DealRepository interface {
	Load(ctx context.Context) ([]SavedDeal, error)
	Save(ctx context.Context, deals []SavedDeal) error
}

// DealBook keeps saved deals newest first on top of a repository.
type DealBook struct {
	mu   sync.Mutex
	repo DealRepository
	now  func() time.Time
}

func NewDealBook(repo DealRepository) *DealBook {
	return &DealBook{repo: repo, now: time.Now}
}

// DefaultDealName is used when a deal is saved without a name.
func DefaultDealName(t time.Time) string {
	return "Deal - " + t.Format("1/2/2006")
}

// Add stores d as the newest deal and returns it with ID, timestamp and name filled in.
func (b *DealBook) Add(ctx context.Context, d SavedDeal) (SavedDeal, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	deals, err := b.repo.Load(ctx)
	if err != nil {
		return SavedDeal{}, fmt.Errorf("load deals: %w", err)
	}

	d.ID = uuid.NewString()
	d.Timestamp = b.now().UTC()
	if d.Name == "" {
		d.Name = DefaultDealName(d.Timestamp)
	}
	if d.Data == nil {
		d.Data = map[string]string{}
	}

	updated := append([]SavedDeal{d}, deals...)
	if len(updated) > MaxSavedDeals {
		updated = updated[:MaxSavedDeals]
	}
	if err := b.repo.Save(ctx, updated); err != nil {
		return SavedDeal{}, fmt.Errorf("save deals: %w", err)
	}
	return d, nil
}

// Delete removes the deal with the given id.
func (b *DealBook) Delete(ctx context.Context, id string) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	deals, err := b.repo.Load(ctx)
	if err != nil {
		return fmt.Errorf("load deals: %w", err)
	}

	kept := deals[:0:0]
	for _, d := range deals {
		if d.ID != id {
			kept = append(kept, d)
		}
	}
	if len(kept) == len(deals) {
		return fmt.Errorf("%w: %s", ErrDealNotFound, id)
	}
	if err := b.repo.Save(ctx, kept); err != nil {
		return fmt.Errorf("save deals: %w", err)
	}
	return nil
}

// List returns all saved deals, newest first.
func (b *DealBook) List(ctx context.Context) ([]SavedDeal, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.repo.Load(ctx)
}

func (b *DealBook) Get(ctx context.Context, id string) (SavedDeal, error) {
	deals, err := b.List(ctx)
	if err != nil {
		return SavedDeal{}, err
	}
	for _, d := range deals {
		if d.ID == id {
			return d, nil
		}
	}
	return SavedDeal{}, fmt.Errorf("%w: %s", ErrDealNotFound, id)
}

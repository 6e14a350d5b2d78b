package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/rs/zerolog"

	"alight_calculator/pkg/core/utils"
	"alight_calculator/pkg/logger"
)

// FileRepository stores the deal list as one JSON file.
type FileRepository struct {
	mu   sync.Mutex
	path string
	log  zerolog.Logger
}

// NewFileRepository creates the parent directory of path if needed.
func NewFileRepository(path string, log zerolog.Logger) (*FileRepository, error) {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("create deals dir: %w", err)
		}
	}
	return &FileRepository{path: path, log: logger.Component(log, "deal_file")}, nil
}

// Load reads the deal file. A missing file is an empty list. A damaged file is repaired when
// possible and otherwise treated as empty.
func (r *FileRepository) Load(ctx context.Context) ([]SavedDeal, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	data, err := os.ReadFile(r.path)
	if errors.Is(err, os.ErrNotExist) {
		return []SavedDeal{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read deals: %w", err)
	}

	var deals []SavedDeal
	if err := json.Unmarshal(data, &deals); err == nil {
		return nonNil(deals), nil
	}

	deals = nil
	if _, err := utils.SmartParse(string(data), &deals); err != nil {
		r.log.Warn().Err(err).Str("path", r.path).Msg("deal file unreadable, starting empty")
		return []SavedDeal{}, nil
	}
	r.log.Warn().Str("path", r.path).Int("deals", len(deals)).Msg("deal file repaired")
	return nonNil(deals), nil
}

// Save writes the list atomically via a temp file and rename.
func (r *FileRepository) Save(ctx context.Context, deals []SavedDeal) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	data, err := json.MarshalIndent(nonNil(deals), "", "  ")
	if err != nil {
		return fmt.Errorf("marshal deals: %w", err)
	}

	tmp := r.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0644); err != nil {
		return fmt.Errorf("write deals: %w", err)
	}
	if err := os.Rename(tmp, r.path); err != nil {
		return fmt.Errorf("replace deals: %w", err)
	}
	return nil
}

func nonNil(deals []SavedDeal) []SavedDeal {
	if deals == nil {
		return []SavedDeal{}
	}
	return deals
}

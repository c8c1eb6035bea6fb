package memory

import (
	"context"
	"encoding/json"
	"sync"

	"github.com/paneldeck/paneldeck/internal/core/storage"
)

// LayoutStore is an in-memory storage.LayoutStore.
type LayoutStore struct {
	mu      sync.RWMutex
	layouts map[string]json.RawMessage
}

// NewLayoutStore creates an empty layout store.
func NewLayoutStore() *LayoutStore {
	return &LayoutStore{
		layouts: make(map[string]json.RawMessage),
	}
}

func (s *LayoutStore) GetLayout(ctx context.Context, userID string) (json.RawMessage, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	layout, ok := s.layouts[userID]
	if !ok {
		return nil, storage.ErrNotFound
	}
	return cloneRaw(layout), nil
}

func (s *LayoutStore) SaveLayout(ctx context.Context, userID string, layout json.RawMessage) (json.RawMessage, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	// Store a copy to prevent external modification
	s.layouts[userID] = cloneRaw(layout)
	return cloneRaw(layout), nil
}

func cloneRaw(raw json.RawMessage) json.RawMessage {
	out := make(json.RawMessage, len(raw))
	copy(out, raw)
	return out
}

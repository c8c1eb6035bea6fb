// Package layout persists each user's dashboard widget layout.
package layout

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"

	"github.com/paneldeck/paneldeck/internal/core/storage"
)

var (
	// ErrInvalidLayout marks a layout that is not a JSON array.
	ErrInvalidLayout = errors.New("layout must be an array")

	emptyLayout = json.RawMessage("[]")
)

// Service reads and writes dashboard layouts.
type Service struct {
	store storage.LayoutStore
}

// NewService creates a layout service.
func NewService(store storage.LayoutStore) *Service {
	if store == nil {
		panic("layout: store must not be nil")
	}
	return &Service{store: store}
}

// Get returns the user's layout, or an empty array when none is stored or the stored
// value is not an array.
func (s *Service) Get(ctx context.Context, userID string) (json.RawMessage, error) {
	layout, err := s.store.GetLayout(ctx, userID)
	if errors.Is(err, storage.ErrNotFound) {
		return emptyLayout, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get layout for %s: %w", userID, err)
	}
	if !isArray(layout) {
		slog.Warn("Stored dashboard layout is not an array, returning empty", "user_id", userID)
		return emptyLayout, nil
	}
	return layout, nil
}

// Save replaces the user's layout. layout must be a JSON array.
func (s *Service) Save(ctx context.Context, userID string, layout json.RawMessage) (json.RawMessage, error) {
	if !isArray(layout) {
		return nil, ErrInvalidLayout
	}
	stored, err := s.store.SaveLayout(ctx, userID, layout)
	if err != nil {
		return nil, fmt.Errorf("save layout for %s: %w", userID, err)
	}
	return stored, nil
}

func isArray(raw json.RawMessage) bool {
	trimmed := bytes.TrimSpace(raw)
	return len(trimmed) > 0 && trimmed[0] == '[' && json.Valid(trimmed)
}

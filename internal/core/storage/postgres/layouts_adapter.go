package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/paneldeck/paneldeck/internal/core/storage"
)

// LayoutAdapter implements storage.LayoutStore for PostgreSQL.
type LayoutAdapter struct {
	db         *sql.DB
	stmtGet    *sql.Stmt
	stmtUpsert *sql.Stmt
	nowFn      func() time.Time
}

// NewLayoutAdapter prepares the layout statements on an existing pool.
func NewLayoutAdapter(db *sql.DB) (*LayoutAdapter, error) {
	stmtGet, err := db.Prepare(queryGetLayout)
	if err != nil {
		return nil, fmt.Errorf("failed to prepare getLayout statement: %w", err)
	}

	stmtUpsert, err := db.Prepare(queryUpsertLayout)
	if err != nil {
		stmtGet.Close()
		return nil, fmt.Errorf("failed to prepare upsertLayout statement: %w", err)
	}

	return &LayoutAdapter{
		db:         db,
		stmtGet:    stmtGet,
		stmtUpsert: stmtUpsert,
		nowFn: func() time.Time {
			return time.Now().UTC()
		},
	}, nil
}

// GetLayout returns the stored layout for userID, or storage.ErrNotFound.
func (a *LayoutAdapter) GetLayout(ctx context.Context, userID string) (json.RawMessage, error) {
	var layout []byte
	err := a.stmtGet.QueryRowContext(ctx, userID).Scan(&layout)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, storage.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get layout: %w", err)
	}
	return json.RawMessage(layout), nil
}

// SaveLayout upserts the layout keyed by user id.
func (a *LayoutAdapter) SaveLayout(ctx context.Context, userID string, layout json.RawMessage) (json.RawMessage, error) {
	var stored []byte
	err := a.stmtUpsert.QueryRowContext(ctx,
		uuid.New().String(),
		userID,
		[]byte(layout),
		a.nowFn(),
	).Scan(&stored)
	if err != nil {
		return nil, fmt.Errorf("failed to save layout: %w", err)
	}

	slog.Debug("[Postgres] Saved dashboard layout", "user_id", userID, "bytes", len(stored))
	return json.RawMessage(stored), nil
}

// Close releases the prepared statements.
func (a *LayoutAdapter) Close() error {
	return errors.Join(a.stmtGet.Close(), a.stmtUpsert.Close())
}

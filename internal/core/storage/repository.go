package storage

import (
	"context"
	"encoding/json"
	"errors"
	"strings"

	"github.com/paneldeck/paneldeck/internal/core/document"
	"github.com/paneldeck/paneldeck/internal/core/where"
)

// ErrNotFound is returned when a requested record does not exist.
var ErrNotFound = errors.New("record not found")

// DefaultSort is applied when a find request carries no sort key: newest first.
const DefaultSort = "-createdAt"

// FindParams is one paged query against a collection.
type FindParams struct {
	Collection string
	Where      where.Expr
	Page       int
	Limit      int
	Depth      int
	Sort       string // field path, "-" prefix for descending; empty means DefaultSort
}

// Page is one page of documents plus the source's pagination metadata.
type Page struct {
	Docs        []document.Document
	TotalDocs   int
	Limit       int
	Page        int
	TotalPages  int
	HasNextPage bool
	HasPrevPage bool
}

// DocumentFinder is the host CMS's paged query capability.
// Results must be deterministic for a fixed (Where, Sort) across consecutive pages.
type DocumentFinder interface {
	Find(ctx context.Context, params FindParams) (*Page, error)
}

// LayoutStore persists one dashboard layout per user.
type LayoutStore interface {
	// GetLayout returns the stored layout for userID, or ErrNotFound.
	GetLayout(ctx context.Context, userID string) (json.RawMessage, error)

	// SaveLayout creates or replaces the layout for userID and returns what was stored.
	SaveLayout(ctx context.Context, userID string, layout json.RawMessage) (json.RawMessage, error)
}

// ParseSort splits a sort key into its field path and direction.
func ParseSort(sort string) (path string, descending bool) {
	if sort == "" {
		sort = DefaultSort
	}
	if strings.HasPrefix(sort, "-") {
		return strings.TrimPrefix(sort, "-"), true
	}
	return strings.TrimPrefix(sort, "+"), false
}

// NewPage fills pagination metadata the way the host CMS reports it.
func NewPage(docs []document.Document, total, page, limit int) *Page {
	if docs == nil {
		docs = []document.Document{}
	}
	totalPages := 0
	if limit > 0 {
		totalPages = (total + limit - 1) / limit
	}
	return &Page{
		Docs:        docs,
		TotalDocs:   total,
		Limit:       limit,
		Page:        page,
		TotalPages:  totalPages,
		HasNextPage: page < totalPages,
		HasPrevPage: page > 1,
	}
}

// Offset converts a 1-based page number to a row offset.
func (p FindParams) Offset() int {
	if p.Page <= 1 {
		return 0
	}
	return (p.Page - 1) * p.Limit
}

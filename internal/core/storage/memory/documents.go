// Package memory provides in-process stores for development and tests.
package memory

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/paneldeck/paneldeck/internal/core/document"
	"github.com/paneldeck/paneldeck/internal/core/storage"
	"github.com/paneldeck/paneldeck/internal/core/where"
)

// DocumentStore is an in-memory storage.DocumentFinder.
// Useful for testing and development.
type DocumentStore struct {
	mu          sync.RWMutex
	collections map[string][]document.Document
	nowFn       func() time.Time
}

// NewDocumentStore creates an empty store.
func NewDocumentStore() *DocumentStore {
	return &DocumentStore{
		collections: make(map[string][]document.Document),
		nowFn: func() time.Time {
			return time.Now().UTC()
		},
	}
}

// Insert appends documents to a collection. Missing id and createdAt/updatedAt
// fields are filled in; the caller's maps are not modified.
func (s *DocumentStore) Insert(collection string, docs ...document.Document) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, doc := range docs {
		stored := make(document.Document, len(doc)+3)
		for k, v := range doc {
			stored[k] = v
		}
		if _, ok := stored["id"]; !ok {
			stored["id"] = uuid.New().String()
		}
		now := s.nowFn().Format(document.ISOLayout)
		if _, ok := stored["createdAt"]; !ok {
			stored["createdAt"] = now
		}
		if _, ok := stored["updatedAt"]; !ok {
			stored["updatedAt"] = now
		}
		s.collections[collection] = append(s.collections[collection], stored)
	}
}

// LoadSeedFile inserts the documents of a JSON fixture shaped as
// {"<collection>": [{...}, ...]}.
func (s *DocumentStore) LoadSeedFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read seed file: %w", err)
	}

	var seed map[string][]document.Document
	if err := json.Unmarshal(data, &seed); err != nil {
		return fmt.Errorf("failed to parse seed file %s: %w", path, err)
	}

	for collection, docs := range seed {
		s.Insert(collection, docs...)
		slog.Info("[Memory] Seeded collection", "collection", collection, "documents", len(docs))
	}
	return nil
}

// Find implements storage.DocumentFinder.
func (s *DocumentStore) Find(ctx context.Context, params storage.FindParams) (*storage.Page, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if params.Limit <= 0 {
		return nil, fmt.Errorf("find %s: limit must be > 0", params.Collection)
	}

	s.mu.RLock()
	var matched []document.Document
	for _, doc := range s.collections[params.Collection] {
		if where.Match(params.Where, doc) {
			matched = append(matched, doc)
		}
	}
	s.mu.RUnlock()

	sortDocuments(matched, params.Sort)

	page := params.Page
	if page < 1 {
		page = 1
	}
	start := params.Offset()
	if start > len(matched) {
		start = len(matched)
	}
	end := start + params.Limit
	if end > len(matched) {
		end = len(matched)
	}

	docs := make([]document.Document, 0, end-start)
	docs = append(docs, matched[start:end]...)
	return storage.NewPage(docs, len(matched), page, params.Limit), nil
}

// sortDocuments orders docs by the sort key. Documents without a value at the
// path always come last; ties keep insertion order.
func sortDocuments(docs []document.Document, sortKey string) {
	path, descending := storage.ParseSort(sortKey)
	sort.SliceStable(docs, func(i, j int) bool {
		a, aOK := document.Lookup(docs[i], path)
		b, bOK := document.Lookup(docs[j], path)
		aOK = aOK && a != nil
		bOK = bOK && b != nil
		if !aOK || !bOK {
			return aOK && !bOK
		}
		cmp := compareValues(a, b)
		if descending {
			return cmp > 0
		}
		return cmp < 0
	})
}

// compareValues orders JSON scalars. Values of different kinds order by kind:
// numbers, then strings, then booleans, then composites.
func compareValues(a, b interface{}) int {
	ra, rb := kindRank(a), kindRank(b)
	if ra != rb {
		return ra - rb
	}

	switch ra {
	case 0:
		an, _ := document.ToNumber(a)
		bn, _ := document.ToNumber(b)
		switch {
		case an < bn:
			return -1
		case an > bn:
			return 1
		}
		return 0
	case 1:
		return strings.Compare(a.(string), b.(string))
	case 2:
		ab, bb := a.(bool), b.(bool)
		switch {
		case ab == bb:
			return 0
		case !ab:
			return -1
		}
		return 1
	}
	return 0
}

func kindRank(v interface{}) int {
	switch v.(type) {
	case string:
		return 1
	case bool:
		return 2
	case map[string]interface{}, []interface{}, document.Document:
		return 3
	}
	if _, ok := document.ToNumber(v); ok {
		return 0
	}
	return 3
}

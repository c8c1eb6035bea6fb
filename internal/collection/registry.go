package collection

import (
	"crypto/sha256"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// Registry resolves collection slugs. Collections are loaded once at startup;
// there is no hot reload.
type Registry struct {
	ordered []*Collection
	bySlug  map[string]*Collection
}

// NewRegistry builds a registry from in-memory definitions.
// The layouts collection is appended when missing.
func NewRegistry(collections ...Collection) (*Registry, error) {
	r := &Registry{bySlug: make(map[string]*Collection)}
	for _, c := range collections {
		if err := r.add(c); err != nil {
			return nil, err
		}
	}
	if _, ok := r.bySlug[LayoutsSlug]; !ok {
		if err := r.add(layoutsCollection()); err != nil {
			return nil, err
		}
	}
	return r, nil
}

// LoadDir reads one collection per *.yaml / *.yml file in dir, in file name order.
// A missing directory yields a registry with only the layouts collection.
func LoadDir(dir string) (*Registry, error) {
	collections, err := readDir(dir)
	if err != nil {
		return nil, err
	}
	r, err := NewRegistry(collections...)
	if err != nil {
		return nil, err
	}
	slog.Info("[Collections] Loaded collection definitions",
		"dir", dir,
		"count", len(r.ordered))
	return r, nil
}

func readDir(dir string) ([]Collection, error) {
	if dir == "" {
		return nil, nil
	}
	info, err := os.Stat(dir)
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("collection config dir: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("collection config path %q is not a directory", dir)
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("reading collection config dir: %w", err)
	}

	var out []Collection
	for _, e := range entries {
		if e.IsDir() || (!strings.HasSuffix(e.Name(), ".yaml") && !strings.HasSuffix(e.Name(), ".yml")) {
			continue
		}

		path := filepath.Join(dir, e.Name())
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading collection file %s: %w", path, err)
		}

		var c Collection
		if err := yaml.Unmarshal(data, &c); err != nil {
			return nil, fmt.Errorf("parsing collection file %s: %w", path, err)
		}
		if c.Slug == "" {
			continue // empty / comment-only file
		}
		c.Fingerprint = fmt.Sprintf("%x", sha256.Sum256(data))
		out = append(out, c)
	}
	return out, nil
}

func (r *Registry) add(c Collection) error {
	if strings.TrimSpace(c.Slug) == "" {
		return fmt.Errorf("collection slug must not be empty")
	}
	if _, exists := r.bySlug[c.Slug]; exists {
		return fmt.Errorf("collection %q: duplicate slug (check multiple YAML files)", c.Slug)
	}
	if err := validateFields(c.Slug, c.Fields); err != nil {
		return err
	}
	stored := c
	r.ordered = append(r.ordered, &stored)
	r.bySlug[c.Slug] = &stored
	return nil
}

func validateFields(slug string, fields []Field) error {
	for _, f := range fields {
		switch f.Type {
		case "":
			return fmt.Errorf("collection %q: field %q has no type", slug, f.Name)
		case FieldTypeTabs:
			for _, tab := range f.Tabs {
				if err := validateFields(slug, tab.Fields); err != nil {
					return err
				}
			}
		default:
			if err := validateFields(slug, f.Fields); err != nil {
				return err
			}
		}
	}
	return nil
}

// Lookup returns the collection with the given slug.
func (r *Registry) Lookup(slug string) (*Collection, bool) {
	c, ok := r.bySlug[slug]
	return c, ok
}

// List returns all collections in registration order.
func (r *Registry) List() []*Collection {
	out := make([]*Collection, len(r.ordered))
	copy(out, r.ordered)
	return out
}

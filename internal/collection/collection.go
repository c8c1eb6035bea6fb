// Package collection holds the host CMS collection definitions the dashboard can query.
package collection

import (
	"github.com/paneldeck/paneldeck/internal/auth"
)

// LayoutsSlug is the internal collection dashboard layouts are stored in.
// It is always registered and always hidden.
const LayoutsSlug = "dashboard-layouts"

// Field types that only group other fields.
const (
	FieldTypeGroup       = "group"
	FieldTypeRow         = "row"
	FieldTypeCollapsible = "collapsible"
	FieldTypeTabs        = "tabs"
)

// Collection is one host CMS collection.
type Collection struct {
	Slug           string   `yaml:"slug"`
	Labels         Labels   `yaml:"labels"`
	Hidden         bool     `yaml:"hidden"`
	HiddenForRoles []string `yaml:"hidden_for_roles"`
	Fields         []Field  `yaml:"fields"`

	// Fingerprint is the SHA-256 of the YAML file the collection was loaded from.
	Fingerprint string `yaml:"-"`
}

type Labels struct {
	Singular string `yaml:"singular"`
	Plural   string `yaml:"plural"`
}

// Field is a (possibly nested) field definition.
type Field struct {
	Name   string  `yaml:"name"`
	Type   string  `yaml:"type"`
	Fields []Field `yaml:"fields"`
	Tabs   []Tab   `yaml:"tabs"`
}

type Tab struct {
	Label  string  `yaml:"label"`
	Fields []Field `yaml:"fields"`
}

// Label prefers the singular label, then the plural one, then the slug.
func (c *Collection) Label() string {
	switch {
	case c.Labels.Singular != "":
		return c.Labels.Singular
	case c.Labels.Plural != "":
		return c.Labels.Plural
	}
	return c.Slug
}

// HiddenFor reports whether the collection is hidden from user.
func (c *Collection) HiddenFor(user *auth.Claims) bool {
	if c.Hidden {
		return true
	}
	for _, role := range c.HiddenForRoles {
		if user.HasRole(role) {
			return true
		}
	}
	return false
}

// StaticHidden returns the hidden flag when it does not depend on the user, and nil
// when visibility is decided per role.
func (c *Collection) StaticHidden() *bool {
	if len(c.HiddenForRoles) > 0 && !c.Hidden {
		return nil
	}
	hidden := c.Hidden
	return &hidden
}

// FieldNames flattens the field tree into dotted paths usable as metric fields.
// Named group, row and collapsible containers prefix their children with "name.";
// tabs never add a prefix.
func (c *Collection) FieldNames() []string {
	return collectFieldNames(c.Fields, "")
}

func collectFieldNames(fields []Field, prefix string) []string {
	names := []string{}
	for _, f := range fields {
		switch f.Type {
		case FieldTypeTabs:
			for _, tab := range f.Tabs {
				names = append(names, collectFieldNames(tab.Fields, prefix)...)
			}
			continue
		case FieldTypeGroup, FieldTypeRow, FieldTypeCollapsible:
			next := prefix
			if f.Name != "" {
				next = prefix + f.Name + "."
			}
			names = append(names, collectFieldNames(f.Fields, next)...)
			continue
		}
		if f.Name != "" {
			names = append(names, prefix+f.Name)
		}
	}
	return names
}

func layoutsCollection() Collection {
	return Collection{
		Slug:   LayoutsSlug,
		Labels: Labels{Singular: "Dashboard Layout", Plural: "Dashboard Layouts"},
		Hidden: true,
		Fields: []Field{
			{Name: "userID", Type: "text"},
			{Name: "layout", Type: "json"},
		},
	}
}

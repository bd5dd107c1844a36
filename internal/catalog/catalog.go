// Package catalog loads the mission catalog: the categories a user can pick
// from and the sub-mission labels each one allows.
package catalog

import (
	"context"
	_ "embed"
	"fmt"
	"os"
	"sort"
	"strings"

	"zerowaste/internal/models"

	"gopkg.in/yaml.v3"
)

//go:embed default_catalog.yaml
var defaultCatalog []byte

// Catalog is an immutable, id-indexed set of entries.
type Catalog struct {
	entries []models.CatalogMission
	byID    map[int]models.CatalogMission
}

// Default returns the embedded catalog.
func Default() *Catalog {
	c, err := Parse(defaultCatalog)
	if err != nil {
		panic(fmt.Sprintf("embedded catalog is invalid: %v", err))
	}
	return c
}

// Load reads the catalog at path, or the embedded default when path is empty.
func Load(path string) (*Catalog, error) {
	if path == "" {
		return Default(), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read catalog: %w", err)
	}
	return Parse(data)
}

// Parse decodes a YAML list of entries. Ids must be positive and unique and
// every entry needs a category.
func Parse(data []byte) (*Catalog, error) {
	var entries []models.CatalogMission
	if err := yaml.Unmarshal(data, &entries); err != nil {
		return nil, fmt.Errorf("parse catalog: %w", err)
	}
	return New(entries)
}

func New(entries []models.CatalogMission) (*Catalog, error) {
	c := &Catalog{byID: make(map[int]models.CatalogMission, len(entries))}
	for _, e := range entries {
		if e.ID <= 0 {
			return nil, fmt.Errorf("catalog entry %q: id must be positive", e.Category)
		}
		if _, dup := c.byID[e.ID]; dup {
			return nil, fmt.Errorf("catalog entry %d: duplicate id", e.ID)
		}
		e.Category = strings.TrimSpace(e.Category)
		if e.Category == "" {
			return nil, fmt.Errorf("catalog entry %d: category is required", e.ID)
		}
		subs := make([]string, 0, len(e.Submissions))
		for _, s := range e.Submissions {
			if s = strings.TrimSpace(s); s != "" {
				subs = append(subs, s)
			}
		}
		e.Submissions = subs
		e.Name = e.DisplayName()
		c.byID[e.ID] = e
		c.entries = append(c.entries, e)
	}
	sort.Slice(c.entries, func(i, j int) bool { return c.entries[i].ID < c.entries[j].ID })
	return c, nil
}

// Lookup returns the entry for id.
func (c *Catalog) Lookup(id int) (models.CatalogMission, bool) {
	e, ok := c.byID[id]
	return e, ok
}

// Entries returns every entry in id order.
func (c *Catalog) Entries() []models.CatalogMission {
	out := make([]models.CatalogMission, len(c.entries))
	copy(out, c.entries)
	return out
}

func (c *Catalog) IDs() []int {
	ids := make([]int, len(c.entries))
	for i, e := range c.entries {
		ids[i] = e.ID
	}
	return ids
}

// Writer is the storage the catalog is seeded into.
type Writer interface {
	UpsertCatalog(ctx context.Context, entries []models.CatalogMission) error
	DeleteCatalogExcept(ctx context.Context, keep []int) error
}

// Seed upserts every entry. With prune, stored entries missing from c are
// removed.
func (c *Catalog) Seed(ctx context.Context, w Writer, prune bool) error {
	if err := w.UpsertCatalog(ctx, c.entries); err != nil {
		return fmt.Errorf("seed catalog: %w", err)
	}
	if prune {
		if err := w.DeleteCatalogExcept(ctx, c.IDs()); err != nil {
			return fmt.Errorf("prune catalog: %w", err)
		}
	}
	return nil
}

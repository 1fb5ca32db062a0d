package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/Alma-hanif/infinitag/internal/core/domain"
	"github.com/Alma-hanif/infinitag/internal/core/ports/driven"
	"github.com/Alma-hanif/infinitag/internal/core/ports/driving"
	"github.com/Alma-hanif/infinitag/internal/logger"
)

// Ensure KeywordCatalog implements the interface.
var _ driving.KeywordCatalog = (*KeywordCatalog)(nil)

// KeywordCatalog holds the known keyword entries and keyword models.
// It is loaded once per view and read many times.
type KeywordCatalog struct {
	backend driven.KeywordBackend

	mu      sync.RWMutex
	entries []domain.KeywordCatalogEntry
	models  []domain.KeywordModel
}

// NewKeywordCatalog creates an empty catalog backed by the given backend.
func NewKeywordCatalog(backend driven.KeywordBackend) *KeywordCatalog {
	return &KeywordCatalog{backend: backend}
}

// Load fetches the catalog and the keyword models.
// Whatever fails to load is left empty, so the view shows no suggestions.
// There is no retry.
func (c *KeywordCatalog) Load(ctx context.Context) error {
	if c.backend == nil {
		return domain.ErrNotImplemented
	}

	var errs []error

	entries, err := c.backend.FetchKeywordCatalog(ctx)
	if err != nil {
		logger.Warn("Loading keyword catalog failed: %v", err)
		errs = append(errs, fmt.Errorf("fetch keyword catalog: %w", err))
		entries = nil
	}

	models, err := c.backend.FetchKeywordModels(ctx)
	if err != nil {
		logger.Warn("Loading keyword models failed: %v", err)
		errs = append(errs, fmt.Errorf("fetch keyword models: %w", err))
		models = nil
	}

	c.SetEntries(entries)

	c.mu.Lock()
	c.models = models
	c.mu.Unlock()

	logger.Debug("Keyword catalog loaded: %d entries, %d models", len(entries), len(models))
	return errors.Join(errs...)
}

// SetEntries validates and installs catalog entries.
func (c *KeywordCatalog) SetEntries(entries []domain.KeywordCatalogEntry) {
	validated, dropped := ValidateParents(entries)
	for _, edge := range dropped {
		logger.Warn("Keyword catalog: dropped parent %q of %q (%s)", edge.Parent, edge.EntryID, edge.Reason)
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries = validated
}

// Search returns the entries whose id starts with term, ignoring case.
// An empty term returns the whole catalog. Each call returns a fresh slice.
func (c *KeywordCatalog) Search(term string) []domain.KeywordCatalogEntry {
	c.mu.RLock()
	defer c.mu.RUnlock()

	filter := strings.ToLower(term)
	result := make([]domain.KeywordCatalogEntry, 0, len(c.entries))
	for _, entry := range c.entries {
		if strings.HasPrefix(strings.ToLower(entry.ID), filter) {
			result = append(result, cloneEntry(entry))
		}
	}
	return result
}

// Entry looks up an entry by exact id.
func (c *KeywordCatalog) Entry(id string) (domain.KeywordCatalogEntry, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	for _, entry := range c.entries {
		if entry.ID == id {
			return cloneEntry(entry), true
		}
	}
	return domain.KeywordCatalogEntry{}, false
}

// Entries returns the whole catalog.
func (c *KeywordCatalog) Entries() []domain.KeywordCatalogEntry {
	return c.Search("")
}

// Models returns the loaded keyword models.
func (c *KeywordCatalog) Models() []domain.KeywordModel {
	c.mu.RLock()
	defer c.mu.RUnlock()

	out := make([]domain.KeywordModel, len(c.models))
	copy(out, c.models)
	return out
}

// Model looks up a keyword model by id.
func (c *KeywordCatalog) Model(id string) (domain.KeywordModel, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	for _, m := range c.models {
		if m.ID == id {
			return m, true
		}
	}
	return domain.KeywordModel{}, false
}

func cloneEntry(e domain.KeywordCatalogEntry) domain.KeywordCatalogEntry {
	out := e
	if e.Parents != nil {
		out.Parents = make([]string, len(e.Parents))
		copy(out.Parents, e.Parents)
	}
	return out
}

// DroppedParent describes a parent reference removed during validation.
type DroppedParent struct {
	EntryID string
	Parent  string
	Reason  string
}

// Reasons for dropping a parent reference.
const (
	reasonSelf      = "self reference"
	reasonDuplicate = "duplicate parent"
	reasonCycle     = "closes a cycle"
)

// ValidateParents returns a copy of entries whose parent graph is acyclic.
// Entries are processed in order and each parent edge is accepted unless it
// points to the entry itself, repeats an earlier parent, or would make the
// entry reachable from its own parent. Parent ids that are not catalog
// entries are kept.
func ValidateParents(entries []domain.KeywordCatalogEntry) ([]domain.KeywordCatalogEntry, []DroppedParent) {
	out := make([]domain.KeywordCatalogEntry, len(entries))
	graph := make(map[string][]string)
	var dropped []DroppedParent

	for i, entry := range entries {
		out[i] = domain.KeywordCatalogEntry{ID: entry.ID, KWM: entry.KWM}
		if entry.Parents == nil {
			continue
		}

		parents := make([]string, 0, len(entry.Parents))
		seen := make(map[string]bool, len(entry.Parents))
		for _, p := range entry.Parents {
			switch {
			case p == entry.ID:
				dropped = append(dropped, DroppedParent{entry.ID, p, reasonSelf})
			case seen[p]:
				dropped = append(dropped, DroppedParent{entry.ID, p, reasonDuplicate})
			case reachable(graph, p, entry.ID):
				dropped = append(dropped, DroppedParent{entry.ID, p, reasonCycle})
			default:
				seen[p] = true
				parents = append(parents, p)
				graph[entry.ID] = append(graph[entry.ID], p)
			}
		}
		out[i].Parents = parents
	}

	return out, dropped
}

// reachable reports whether target can be reached from start following parent edges.
func reachable(graph map[string][]string, start, target string) bool {
	visited := make(map[string]bool)
	stack := []string{start}
	for len(stack) > 0 {
		node := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if node == target {
			return true
		}
		if visited[node] {
			continue
		}
		visited[node] = true
		stack = append(stack, graph[node]...)
	}
	return false
}

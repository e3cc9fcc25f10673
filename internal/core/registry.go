package core

import (
	"fmt"
	"sort"
	"sync"
)

// ViewInfo is the public description of a view.
type ViewInfo struct {
	Key         string `json:"key"`
	Label       string `json:"label"`
	Description string `json:"description"`
	// Order positions the view in navigation; lower first.
	Order int `json:"order"`
}

// ViewDefinition controls how the source is parsed and presented for one
// consumer of the archive.
type ViewDefinition struct {
	Info ViewInfo

	// LineCap limits the data lines read after the header; 0 reads all.
	LineCap int
	// PageSize for paginated views; 0 means the view is not paginated.
	PageSize int
	// RequireYear drops records without a positive discovery year.
	RequireYear bool
	// SortYearDesc orders records most recent first (stable).
	SortYearDesc bool
	// Limit keeps only the first Limit records after sorting; 0 keeps all.
	Limit int
}

// Paginated reports whether the view exposes page navigation.
func (d ViewDefinition) Paginated() bool { return d.PageSize > 0 }

// Shape applies the view's ordering and limit to normalized records.
func (d ViewDefinition) Shape(records []Record) []Record {
	if d.SortYearDesc {
		limit := -1
		if d.Limit > 0 {
			limit = d.Limit
		}
		return Recent(records, limit)
	}
	if d.Limit > 0 && len(records) > d.Limit {
		return records[:d.Limit]
	}
	return records
}

var (
	registry   = make(map[string]ViewDefinition)
	registryMu sync.RWMutex
)

// Register adds a view definition to the registry.
// Panics if a view with the same key is already registered.
func Register(def ViewDefinition) {
	registryMu.Lock()
	defer registryMu.Unlock()

	if def.Info.Key == "" {
		panic("view registered without a key")
	}
	if _, exists := registry[def.Info.Key]; exists {
		panic(fmt.Sprintf("view already registered: %s", def.Info.Key))
	}
	if def.Info.Label == "" {
		def.Info.Label = def.Info.Key
	}

	registry[def.Info.Key] = def
}

// Get returns a view definition by key.
func Get(key string) (ViewDefinition, bool) {
	registryMu.RLock()
	defer registryMu.RUnlock()

	def, ok := registry[key]
	return def, ok
}

// MustGet returns a view definition or an ErrUnknownView error.
func MustGet(key string) (ViewDefinition, error) {
	def, ok := Get(key)
	if !ok {
		return ViewDefinition{}, fmt.Errorf("%w: %q", ErrUnknownView, key)
	}
	return def, nil
}

// All returns all registered view definitions, sorted by order then key.
func All() []ViewDefinition {
	registryMu.RLock()
	defer registryMu.RUnlock()

	result := make([]ViewDefinition, 0, len(registry))
	for _, def := range registry {
		result = append(result, def)
	}

	sort.Slice(result, func(i, j int) bool {
		if result[i].Info.Order != result[j].Info.Order {
			return result[i].Info.Order < result[j].Info.Order
		}
		return result[i].Info.Key < result[j].Info.Key
	})

	return result
}

// Keys returns the registered view keys in display order.
func Keys() []string {
	defs := All()
	keys := make([]string, len(defs))
	for i, d := range defs {
		keys[i] = d.Info.Key
	}
	return keys
}

// ViewCount returns the number of registered views.
func ViewCount() int {
	registryMu.RLock()
	defer registryMu.RUnlock()
	return len(registry)
}

// Clear removes all registered views.
// Primarily useful for testing.
func Clear() {
	registryMu.Lock()
	defer registryMu.Unlock()
	registry = make(map[string]ViewDefinition)
}

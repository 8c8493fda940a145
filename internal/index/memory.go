package index

import (
	"sync"
	"time"

	"github.com/beaconbio/linkgate/internal/sources/catalog"
)

// CatalogIndex provides in-memory lookup for the category catalog plus
// per-category reveal counters. Handlers read from it on every
// interstitial render, so lookups never touch disk or Redis.
type CatalogIndex struct {
	mu         sync.RWMutex
	categories map[string]catalog.Category // ID -> Category
	order      []string                    // catalog file order
	reveals    map[string]int64            // category ID -> reveal count
	lastReload time.Time
}

// NewCatalogIndex creates a new catalog index
func NewCatalogIndex() *CatalogIndex {
	return &CatalogIndex{
		categories: make(map[string]catalog.Category),
		reveals:    make(map[string]int64),
	}
}

// Update replaces all categories in the index. Reveal counters survive
// reloads so stats do not reset on every catalog change.
func (idx *CatalogIndex) Update(categories []catalog.Category) {
	idx.mu.Lock()
	defer idx.mu.Unlock()

	idx.categories = make(map[string]catalog.Category, len(categories))
	idx.order = make([]string, 0, len(categories))
	for _, cat := range categories {
		idx.categories[cat.ID] = cat
		idx.order = append(idx.order, cat.ID)
	}
	idx.lastReload = time.Now()
}

// Get retrieves a category by ID
func (idx *CatalogIndex) Get(id string) (catalog.Category, bool) {
	idx.mu.RLock()
	defer idx.mu.RUnlock()

	cat, ok := idx.categories[id]
	return cat, ok
}

// All returns all categories in catalog file order
func (idx *CatalogIndex) All() []catalog.Category {
	idx.mu.RLock()
	defer idx.mu.RUnlock()

	categories := make([]catalog.Category, 0, len(idx.order))
	for _, id := range idx.order {
		categories = append(categories, idx.categories[id])
	}
	return categories
}

// Count returns the number of categories in the index
func (idx *CatalogIndex) Count() int {
	idx.mu.RLock()
	defer idx.mu.RUnlock()

	return len(idx.categories)
}

// RecordReveal increments the reveal counter for a category
func (idx *CatalogIndex) RecordReveal(id string) {
	idx.mu.Lock()
	defer idx.mu.Unlock()

	idx.reveals[id]++
}

// RevealStats returns a copy of the per-category reveal counters
func (idx *CatalogIndex) RevealStats() map[string]int64 {
	idx.mu.RLock()
	defer idx.mu.RUnlock()

	stats := make(map[string]int64, len(idx.reveals))
	for id, count := range idx.reveals {
		stats[id] = count
	}
	return stats
}

// LastReload returns the timestamp of the last catalog reload
func (idx *CatalogIndex) LastReload() time.Time {
	idx.mu.RLock()
	defer idx.mu.RUnlock()

	return idx.lastReload
}

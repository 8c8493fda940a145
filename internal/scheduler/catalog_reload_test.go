package scheduler

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/beaconbio/linkgate/internal/index"
	"github.com/beaconbio/linkgate/internal/logger"
)

func writeCatalog(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "categories.yaml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("Failed to write catalog file: %v", err)
	}
	return path
}

func TestCatalogReloaderReload(t *testing.T) {
	path := writeCatalog(t, `---
categories:
  - id: social
    label: Social
  - id: adult
    sensitive: true
`)

	idx := index.NewCatalogIndex()
	cr := NewCatalogReloader(path, idx, logger.Nop(), time.Hour, nil)

	if err := cr.Reload(context.Background()); err != nil {
		t.Fatalf("Reload() error = %v", err)
	}

	if idx.Count() != 2 {
		t.Errorf("index has %v categories, want 2", idx.Count())
	}
	cat, ok := idx.Get("adult")
	if !ok || !cat.Sensitive {
		t.Error("adult category should be present and sensitive")
	}
}

func TestCatalogReloaderKeepsOldCatalogOnFailure(t *testing.T) {
	path := writeCatalog(t, `---
categories:
  - id: social
`)

	idx := index.NewCatalogIndex()
	cr := NewCatalogReloader(path, idx, logger.Nop(), time.Hour, nil)

	if err := cr.Reload(context.Background()); err != nil {
		t.Fatalf("Reload() error = %v", err)
	}

	// Break the file and reload again: the index keeps the old catalog.
	if err := os.WriteFile(path, []byte("categories: [unclosed"), 0o644); err != nil {
		t.Fatalf("Failed to break catalog file: %v", err)
	}

	if err := cr.Reload(context.Background()); err == nil {
		t.Error("Reload() with broken file should return error")
	}
	if idx.Count() != 1 {
		t.Errorf("index has %v categories after failed reload, want 1", idx.Count())
	}
}

func TestCatalogReloaderStartFailsWithoutFile(t *testing.T) {
	idx := index.NewCatalogIndex()
	cr := NewCatalogReloader("/nonexistent/categories.yaml", idx, logger.Nop(), time.Hour, nil)

	if err := cr.Start(context.Background()); err == nil {
		t.Error("Start() without a catalog file should fail the initial load")
	}
}

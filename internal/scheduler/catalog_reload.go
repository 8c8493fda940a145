package scheduler

import (
	"context"
	"fmt"
	"time"

	"github.com/beaconbio/linkgate/internal/index"
	"github.com/beaconbio/linkgate/internal/logger"
	"github.com/beaconbio/linkgate/internal/sources/catalog"
)

// CatalogReloader handles periodic reloading of the category catalog
type CatalogReloader struct {
	loader        *catalog.Loader
	mapper        *catalog.Mapper
	index         *index.CatalogIndex
	logger        logger.Logger
	interval      time.Duration
	stopCh        chan struct{}
	manualTrigger chan struct{}
}

// NewCatalogReloader creates a new catalog reloader
func NewCatalogReloader(
	catalogFile string,
	idx *index.CatalogIndex,
	log logger.Logger,
	interval time.Duration,
	manualTrigger chan struct{},
) *CatalogReloader {
	return &CatalogReloader{
		loader:        catalog.NewLoader(catalogFile),
		mapper:        catalog.NewMapper(),
		index:         idx,
		logger:        log,
		interval:      interval,
		stopCh:        make(chan struct{}),
		manualTrigger: manualTrigger,
	}
}

// Start begins the periodic reload process
func (cr *CatalogReloader) Start(ctx context.Context) error {
	// Load immediately on start
	if err := cr.Reload(ctx); err != nil {
		return fmt.Errorf("initial catalog reload failed: %w", err)
	}

	ticker := time.NewTicker(cr.interval)
	go func() {
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				if err := cr.Reload(ctx); err != nil {
					cr.logger.Error("failed to reload catalog",
						logger.Error(err))
				}
			case <-cr.manualTrigger:
				cr.logger.Info("manual catalog reload triggered")
				if err := cr.Reload(ctx); err != nil {
					cr.logger.Error("failed to reload catalog",
						logger.Error(err))
				}
			case <-cr.stopCh:
				return
			case <-ctx.Done():
				return
			}
		}
	}()

	return nil
}

// Stop stops the reloader
func (cr *CatalogReloader) Stop() {
	close(cr.stopCh)
}

// Reload loads the catalog file and swaps it into the index. A reload
// failure leaves the previous catalog in place.
func (cr *CatalogReloader) Reload(_ context.Context) error {
	file, err := cr.loader.Load()
	if err != nil {
		return fmt.Errorf("failed to load catalog: %w", err)
	}

	categories, err := cr.mapper.MapCategories(file)
	if err != nil {
		return fmt.Errorf("failed to map catalog: %w", err)
	}

	cr.index.Update(categories)
	cr.logger.Info("catalog reloaded",
		logger.Int("categories", len(categories)))

	return nil
}

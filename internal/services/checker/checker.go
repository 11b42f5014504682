// Package checker orchestrates one tracking run: scrape, normalize,
// filter, diff against the stored snapshot, notify, merge, persist.
package checker

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/lethalgem/arcteryx-outlet-tracker/internal/inventory"
	"github.com/lethalgem/arcteryx-outlet-tracker/internal/models"
	"github.com/lethalgem/arcteryx-outlet-tracker/internal/normalizer"
	"github.com/lethalgem/arcteryx-outlet-tracker/internal/repository"
	"github.com/lethalgem/arcteryx-outlet-tracker/internal/repository/sqlite"
	"github.com/lethalgem/arcteryx-outlet-tracker/internal/scraper"
)

// ErrNoProducts means the scrape yielded nothing without a size filter
// configured, which almost always indicates the source is blocking us or
// changed its page structure.
var ErrNoProducts = errors.New("no products extracted, source may be blocking or restructured")

// Notifier delivers change digests and failure alerts.
type Notifier interface {
	NotifyChanges(ctx context.Context, changes *models.InventoryChanges) error
	AlertFailure(ctx context.Context, runErr error) error
}

// Checker performs the full extraction-diff-merge cycle.
type Checker struct {
	log        *slog.Logger
	extractor  scraper.Extractor
	repo       sqlite.SnapshotRepository
	notifier   Notifier
	norm       *normalizer.Normalizer
	categories []string
	sizeFilter string
}

// NewChecker creates a new Checker instance. An empty sizeFilter disables
// size filtering entirely.
func NewChecker(
	log *slog.Logger,
	extractor scraper.Extractor,
	repo sqlite.SnapshotRepository,
	notifier Notifier,
	categories []string,
	sizeFilter string,
) *Checker {
	return &Checker{
		log:        log,
		extractor:  extractor,
		repo:       repo,
		notifier:   notifier,
		norm:       normalizer.New(log, sizeFilter),
		categories: categories,
		sizeFilter: sizeFilter,
	}
}

// CheckForUpdates performs one full run and returns the detected changes.
// A notification failure is logged but never blocks persisting the new
// snapshot; a store failure is fatal and leaves the old snapshot intact.
func (c *Checker) CheckForUpdates(ctx context.Context) (*models.InventoryChanges, error) {
	const opn = "checker.CheckForUpdates"
	log := c.log.With("op", opn)

	current, err := c.extractProducts(ctx, log)
	if err != nil {
		return nil, err
	}

	stored, err := c.repo.GetSnapshot(ctx)
	if err != nil && !errors.Is(err, repository.ErrSnapshotNotFound) {
		return nil, fmt.Errorf("%s: failed to get stored snapshot: %w", opn, err)
	}

	changes := inventory.Diff(stored, current)
	log.InfoContext(
		ctx,
		"Change detection complete",
		"new", len(changes.NewProducts),
		"price_drops", len(changes.PriceDrops),
		"removed", len(changes.RemovedProducts),
	)

	if inventory.HasChanges(changes) {
		if err = c.notifier.NotifyChanges(ctx, &changes); err != nil {
			// The inventory must stay current even when the notification
			// could not be delivered.
			log.ErrorContext(ctx, "Notification failed, persisting snapshot anyway", "error", err)
		}
	}

	next := inventory.Merge(stored, current, time.Now())
	if err = c.repo.UpdateSnapshot(ctx, next); err != nil {
		return nil, fmt.Errorf("%s: failed to persist snapshot: %w", opn, err)
	}
	log.InfoContext(ctx, "Snapshot persisted", "products", len(next.Products))

	return &changes, nil
}

// extractProducts scrapes every configured category and returns the
// normalized, filtered product set for this run.
func (c *Checker) extractProducts(ctx context.Context, log *slog.Logger) ([]models.Product, error) {
	now := time.Now()

	var current []models.Product

	for _, category := range c.categories {
		tiles, err := c.extractor.FetchCategory(ctx, category)
		if err != nil {
			log.ErrorContext(ctx, "Failed to fetch category", "category", category, "error", err)
			continue
		}
		log.InfoContext(ctx, "Fetched category", "category", category, "tiles", len(tiles))

		for _, tile := range tiles {
			product, err := c.norm.ProductFromTile(tile, category, now)
			if err != nil {
				log.DebugContext(ctx, "Skipping tile", "error", err)
				continue
			}

			sizeData, err := c.extractor.FetchSizeData(ctx, product.URL)
			if err != nil {
				// Stock unknown is a valid state; the item stays in the run.
				log.WarnContext(ctx, "Stock lookup failed, treating as unknown", "id", product.ID, "error", err)
			} else {
				product.Sizes, product.AllSizes = normalizer.ResolveStock(sizeData)
			}

			if !c.norm.Keep(product) {
				continue
			}

			current = append(current, product)
		}
	}

	if len(current) == 0 {
		if c.sizeFilter == "" {
			return nil, ErrNoProducts
		}
		// With a filter configured an empty run plausibly means nothing
		// is in stock in that size.
		log.InfoContext(ctx, "No products in stock for the configured size filter", "filter", c.sizeFilter)
	}

	return current, nil
}

// Run executes one check immediately and then on every interval tick
// until the context is canceled. A failed run alerts (throttled by the
// notifier) and never stops the loop.
func (c *Checker) Run(ctx context.Context, interval time.Duration) {
	const opn = "checker.Run"
	log := c.log.With("op", opn)

	log.InfoContext(ctx, "Starting periodic checks", "interval", interval)
	c.runOnce(ctx, log)

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			log.InfoContext(ctx, "Periodic checks stopped")
			return
		case <-ticker.C:
			c.runOnce(ctx, log)
		}
	}
}

func (c *Checker) runOnce(ctx context.Context, log *slog.Logger) {
	changes, err := c.CheckForUpdates(ctx)
	if err != nil {
		log.ErrorContext(ctx, "Check run failed", "error", err)

		if alertErr := c.notifier.AlertFailure(ctx, err); alertErr != nil {
			log.ErrorContext(ctx, "Failed to send failure alert", "error", alertErr)
		}

		return
	}

	log.InfoContext(
		ctx,
		"Check run complete",
		"new", len(changes.NewProducts),
		"price_drops", len(changes.PriceDrops),
		"removed", len(changes.RemovedProducts),
	)
}

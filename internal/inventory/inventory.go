// Package inventory compares and merges product snapshots. All functions
// are pure: they never mutate their inputs, perform no I/O, and are safe
// to call concurrently on independent snapshots.
package inventory

import (
	"time"

	"github.com/lethalgem/arcteryx-outlet-tracker/internal/models"
)

// Diff classifies the differences between the stored snapshot and the
// current scrape. A nil stored snapshot (first run) counts as empty, so
// every current product is new and nothing is removed. Presence checks go
// through id-keyed maps, so the result's sets do not depend on input
// ordering; duplicate ids resolve last-write-wins.
func Diff(stored *models.InventoryState, current []models.Product) models.InventoryChanges {
	storedByID := indexByID(storedProducts(stored))
	currentByID := indexByID(current)

	var changes models.InventoryChanges

	for _, product := range current {
		previous, found := storedByID[product.ID]
		if !found {
			changes.NewProducts = append(changes.NewProducts, product)
			continue
		}

		// Strict decrease only; originalPrice or discount movement alone
		// is not a price drop.
		if product.Price < previous.Price {
			changes.PriceDrops = append(changes.PriceDrops, models.PriceDrop{
				Product:       product,
				PreviousPrice: previous.Price,
			})
		}
	}

	for _, product := range storedProducts(stored) {
		if _, found := currentByID[product.ID]; !found {
			changes.RemovedProducts = append(changes.RemovedProducts, product)
		}
	}

	return changes
}

// Merge builds the next snapshot to persist: the current products in the
// current run's order, with FirstSeen carried forward unchanged for every
// id already present in the stored snapshot. This is the only place
// FirstSeen propagates; once an id has been seen, its timestamp is never
// recomputed. Duplicate ids from extraction (a product cross-listed under
// two categories) collapse to a single entry, last write wins, so the
// snapshot stays writable under the store's unique-id constraint.
func Merge(stored *models.InventoryState, current []models.Product, now time.Time) *models.InventoryState {
	storedByID := indexByID(storedProducts(stored))

	merged := make([]models.Product, 0, len(current))
	position := make(map[string]int, len(current))

	for _, product := range current {
		if previous, found := storedByID[product.ID]; found {
			product.FirstSeen = previous.FirstSeen
		}

		if i, seen := position[product.ID]; seen {
			merged[i] = product
			continue
		}

		position[product.ID] = len(merged)
		merged = append(merged, product)
	}

	return &models.InventoryState{
		LastUpdated: now,
		Products:    merged,
	}
}

// HasChanges reports whether a change set warrants a notification. Only
// new products and price drops count; removals alone never alert, so
// routine delistings stay quiet.
func HasChanges(changes models.InventoryChanges) bool {
	return len(changes.NewProducts) > 0 || len(changes.PriceDrops) > 0
}

func storedProducts(stored *models.InventoryState) []models.Product {
	if stored == nil {
		return nil
	}

	return stored.Products
}

func indexByID(products []models.Product) map[string]models.Product {
	byID := make(map[string]models.Product, len(products))
	for _, p := range products {
		byID[p.ID] = p
	}

	return byID
}

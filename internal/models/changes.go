package models

import "time"

// PriceDrop pairs a product with the price it held in the previous snapshot.
type PriceDrop struct {
	Product
	PreviousPrice float64 `json:"previousPrice"`
}

// InventoryChanges is the comparison result between the stored snapshot and
// a fresh scrape. Computed per run and consumed immediately, never persisted.
type InventoryChanges struct {
	NewProducts     []Product
	PriceDrops      []PriceDrop
	RemovedProducts []Product
}

// InventoryState is the complete snapshot persisted between runs. It is
// wholly replaced on each successful run; no history is retained.
type InventoryState struct {
	LastUpdated time.Time `json:"lastUpdated"`
	Products    []Product `json:"products"`
}

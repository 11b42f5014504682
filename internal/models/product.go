package models

import "time"

// Product is the canonical record for one catalog item. ID must stay
// stable across runs for the same item, otherwise the diff misclassifies
// it as new+removed.
type Product struct {
	ID            string    `json:"id"`
	Name          string    `json:"name"`
	URL           string    `json:"url"`
	Image         string    `json:"image"`
	Price         float64   `json:"price"`
	OriginalPrice float64   `json:"originalPrice"`
	Discount      int       `json:"discount"`
	Sizes         []string  `json:"sizes"`
	AllSizes      []string  `json:"allSizes"`
	Colors        []string  `json:"colors"`
	Category      string    `json:"category"`
	FirstSeen     time.Time `json:"firstSeen"`
}

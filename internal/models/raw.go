package models

// Tile is one product's rendered unit on a category listing, the raw
// extraction input before normalization. Lines are the tile's non-empty
// trimmed text lines in document order.
type Tile struct {
	Lines []string
	Link  string
	Image string
}

// SizeOption is one size the source lists for a product. Value is the
// source's internal variant identifier for that size.
type SizeOption struct {
	Label string `json:"label"`
	Value string `json:"value"`
}

// Variant is a source-side size/stock pairing for one product.
type Variant struct {
	SizeID      string `json:"sizeId"`
	StockStatus string `json:"stockStatus"`
}

// SizeData is the raw size/stock payload for one product.
type SizeData struct {
	SizeOptions []SizeOption `json:"sizeOptions"`
	Variants    []Variant    `json:"variants"`
}

// Stock status values the source reports for a variant. Anything outside
// this set counts as not purchasable.
const (
	StockStatusInStock  = "InStock"
	StockStatusLowStock = "LowStock"
)

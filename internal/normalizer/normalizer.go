// Package normalizer turns raw scraped tile and variant data into canonical
// Product records. Everything here is a pure transformation; obtaining the
// raw inputs is the scraper's job.
package normalizer

import (
	"errors"
	"fmt"
	"log/slog"
	"math"
	"net/url"
	"regexp"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/lethalgem/arcteryx-outlet-tracker/internal/models"
	"github.com/lethalgem/arcteryx-outlet-tracker/internal/sizes"
)

var (
	// ErrNoName means no tile line qualified as a product name.
	ErrNoName = errors.New("no usable product name in tile")
	// ErrNoLink means the tile link yielded no slug to use as an identifier.
	ErrNoLink = errors.New("no usable product link in tile")
)

// minNameLength rejects leftover badge/label noise that slips past the
// stoplist ("XS", "-", price fragments).
const minNameLength = 3

var (
	pricePattern = regexp.MustCompile(`\$\s*[0-9][0-9,]*(?:\.[0-9]{2})?`)
	priceLineRe  = regexp.MustCompile(`^\$\s*[0-9][0-9,]*(?:\.[0-9]{2})?$`)
	genderedRe   = regexp.MustCompile(`(?i)(?:wo)?men's$`)
)

// stoplist holds decorative tile labels that must never be mistaken for a
// product name. Compared case-insensitively against the whole line.
var stoplist = map[string]struct{}{
	"compare":    {},
	"new":        {},
	"sale":       {},
	"bluesign":   {},
	"fair trade": {},
	"revised":    {},
}

// Normalizer converts raw tiles into canonical products and applies the
// optional size filter.
type Normalizer struct {
	log        *slog.Logger
	sizeFilter string
}

// New creates a Normalizer. An empty sizeFilter disables filtering.
func New(log *slog.Logger, sizeFilter string) *Normalizer {
	return &Normalizer{log: log, sizeFilter: sizeFilter}
}

// ProductFromTile builds a canonical Product from one scraped tile.
// Sizes/AllSizes are left empty; the caller fills them in after resolving
// stock data. Tiles without a usable name or link are rejected with an
// error so the caller can skip them as noise.
func (n *Normalizer) ProductFromTile(tile models.Tile, category string, now time.Time) (models.Product, error) {
	name, err := extractName(tile.Lines)
	if err != nil {
		return models.Product{}, fmt.Errorf("category %s: %w", category, err)
	}

	id, err := slugFromLink(tile.Link)
	if err != nil {
		return models.Product{}, fmt.Errorf("category %s: product %q: %w", category, name, err)
	}

	price, originalPrice := extractPrices(tile.Lines)

	return models.Product{
		ID:            id,
		Name:          name,
		URL:           tile.Link,
		Image:         tile.Image,
		Price:         price,
		OriginalPrice: originalPrice,
		Discount:      Discount(price, originalPrice),
		Category:      category,
		FirstSeen:     now,
	}, nil
}

// Keep reports whether a product survives the configured size filter.
// Without a filter everything is kept. Products with no size data are
// conservatively kept as "stock unknown" rather than dropped.
func (n *Normalizer) Keep(product models.Product) bool {
	if n.sizeFilter == "" {
		return true
	}

	if len(product.Sizes) == 0 {
		return true
	}

	for _, label := range product.Sizes {
		if sizes.Matches(label, n.sizeFilter) {
			return true
		}
	}

	n.log.Debug("Product filtered out by size", "id", product.ID, "sizes", product.Sizes, "filter", n.sizeFilter)

	return false
}

// extractName selects the product name from a tile's text lines. A line
// ending in a gendered suffix ("Men's"/"Women's", case-insensitive) wins
// as long as it is not itself a price string; otherwise the first line
// that is neither a price nor a decorative stoplist label is used.
func extractName(lines []string) (string, error) {
	var fallback string

	for _, raw := range lines {
		line := strings.TrimSpace(raw)
		if line == "" {
			continue
		}

		if priceLineRe.MatchString(line) {
			continue
		}

		if genderedRe.MatchString(line) {
			return validateName(line)
		}

		if _, stopped := stoplist[strings.ToLower(line)]; stopped {
			continue
		}

		if fallback == "" {
			fallback = line
		}
	}

	if fallback == "" {
		return "", ErrNoName
	}

	return validateName(fallback)
}

func validateName(name string) (string, error) {
	if len([]rune(name)) < minNameLength {
		return "", fmt.Errorf("%w: %q too short", ErrNoName, name)
	}

	return name, nil
}

// extractPrices scans every currency-formatted substring across the tile's
// lines and returns (price, originalPrice). The largest value is taken as
// the original price, the second largest as the current one; a single
// price serves as both. Tiles with more than two price strings collapse to
// largest/second-largest, which may be wrong on promotional multi-price
// tiles; that heuristic stands until the source shows such a tile.
func extractPrices(lines []string) (price, originalPrice float64) {
	var values []float64

	for _, line := range lines {
		for _, match := range pricePattern.FindAllString(line, -1) {
			if v, ok := parsePrice(match); ok {
				values = append(values, v)
			}
		}
	}

	if len(values) == 0 {
		return 0, 0
	}

	sort.Sort(sort.Reverse(sort.Float64Slice(values)))

	originalPrice = values[0]
	price = originalPrice
	if len(values) > 1 {
		price = values[1]
	}

	return price, originalPrice
}

func parsePrice(raw string) (float64, bool) {
	cleaned := strings.NewReplacer("$", "", ",", "", " ", "").Replace(raw)

	value, err := strconv.ParseFloat(cleaned, 64)
	if err != nil || value < 0 {
		return 0, false
	}

	return value, true
}

// Discount computes the integer discount percentage from the two prices.
// Out-of-order prices (price above original) and a zero original price
// both yield 0 rather than an error.
func Discount(price, originalPrice float64) int {
	if originalPrice <= 0 || price >= originalPrice {
		return 0
	}

	return int(math.Round((originalPrice - price) / originalPrice * 100))
}

// slugFromLink derives the stable product identifier from the link's URL
// path: the last non-empty path segment, lowercased.
func slugFromLink(link string) (string, error) {
	parsed, err := url.Parse(link)
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrNoLink, err)
	}

	path := strings.Trim(parsed.Path, "/")
	if path == "" {
		return "", ErrNoLink
	}

	segments := strings.Split(path, "/")

	return strings.ToLower(segments[len(segments)-1]), nil
}

// ResolveStock maps the raw size/variant payload to (inStock, allSizes).
// inStock holds the distinct labels of variants whose status is InStock or
// LowStock, in first-occurrence order; allSizes holds every option label
// regardless of stock. Variants referencing an unknown size id are skipped.
func ResolveStock(data *models.SizeData) (inStock, allSizes []string) {
	if data == nil {
		return nil, nil
	}

	labelByID := make(map[string]string, len(data.SizeOptions))
	seenAll := make(map[string]struct{}, len(data.SizeOptions))

	for _, opt := range data.SizeOptions {
		labelByID[opt.Value] = opt.Label
		if _, dup := seenAll[opt.Label]; !dup {
			seenAll[opt.Label] = struct{}{}
			allSizes = append(allSizes, opt.Label)
		}
	}

	seenStock := make(map[string]struct{}, len(data.Variants))
	for _, variant := range data.Variants {
		if variant.StockStatus != models.StockStatusInStock && variant.StockStatus != models.StockStatusLowStock {
			continue
		}

		label, ok := labelByID[variant.SizeID]
		if !ok {
			continue
		}

		if _, dup := seenStock[label]; dup {
			continue
		}
		seenStock[label] = struct{}{}
		inStock = append(inStock, label)
	}

	return inStock, allSizes
}

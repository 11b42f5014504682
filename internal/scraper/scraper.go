// Package scraper is the extraction source: it fetches category listing
// pages and per-product availability payloads and returns the raw shapes
// the normalizer consumes. No business rules live here.
package scraper

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/lethalgem/arcteryx-outlet-tracker/internal/models"
)

const userAgent = "Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0 Safari/537.36"

// Extractor supplies raw tiles per category and raw size/stock data per
// product. FetchSizeData may fail for a single item without failing the
// whole category; callers degrade to "stock unknown".
type Extractor interface {
	FetchCategory(ctx context.Context, category string) ([]models.Tile, error)
	FetchSizeData(ctx context.Context, productURL string) (*models.SizeData, error)
}

type Scraper struct {
	log     *slog.Logger
	client  *http.Client
	baseURL string
}

func NewScraper(log *slog.Logger, baseURL string) *Scraper {
	return &Scraper{log: log, baseURL: strings.TrimRight(baseURL, "/"), client: http.DefaultClient}
}

// FetchCategory downloads one category listing page and extracts its
// product tiles.
func (s *Scraper) FetchCategory(ctx context.Context, category string) ([]models.Tile, error) {
	pageURL := fmt.Sprintf("%s/c/%s", s.baseURL, category)

	resp, err := s.get(ctx, pageURL)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch category %s: %w", category, err)
	}
	defer resp.Body.Close()

	tiles, err := s.parseCategoryPage(ctx, resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to parse category %s: %w", category, err)
	}

	return tiles, nil
}

// FetchSizeData downloads the availability payload for one product. The
// source keys availability by the product's URL path.
func (s *Scraper) FetchSizeData(ctx context.Context, productURL string) (*models.SizeData, error) {
	parsed, err := url.Parse(productURL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse product URL %s: %w", productURL, err)
	}

	payloadURL := fmt.Sprintf("%s/api/availability?path=%s", s.baseURL, url.QueryEscape(parsed.Path))

	resp, err := s.get(ctx, payloadURL)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch size data for %s: %w", productURL, err)
	}
	defer resp.Body.Close()

	var data models.SizeData
	if err = json.NewDecoder(resp.Body).Decode(&data); err != nil {
		return nil, fmt.Errorf("failed to decode size data for %s: %w", productURL, err)
	}

	return &data, nil
}

func (s *Scraper) get(ctx context.Context, rawURL string) (*http.Response, error) {
	reqURL, err := url.Parse(rawURL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse URL %s: %w", rawURL, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL.String(), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request %s: %w", reqURL.String(), err)
	}

	req.Header.Add("User-Agent", userAgent)

	s.log.DebugContext(ctx, "Send request", "method", req.Method, "URL", req.URL)

	res, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to request %s: %w", rawURL, err)
	}

	if res.StatusCode != http.StatusOK {
		res.Body.Close()
		return nil, fmt.Errorf("status code error: [%d] %s", res.StatusCode, res.Status)
	}

	return res, nil
}

// parseCategoryPage extracts product tiles from a listing document. A tile
// contributes its non-empty trimmed text lines, the first link resolved
// against the site base, and the first image source.
func (s *Scraper) parseCategoryPage(ctx context.Context, inp io.Reader) ([]models.Tile, error) {
	doc, err := goquery.NewDocumentFromReader(inp)
	if err != nil {
		return nil, fmt.Errorf("data cannot be parsed as HTML: %w", err)
	}

	base, err := url.Parse(s.baseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse base URL %s: %w", s.baseURL, err)
	}

	var tiles []models.Tile

	doc.Find("div.product-tile").Each(func(idx int, sel *goquery.Selection) {
		tile := models.Tile{
			Lines: textLines(sel),
		}

		if href, ok := sel.Find("a[href]").First().Attr("href"); ok {
			tile.Link = resolveLink(base, href)
		}

		if src, ok := sel.Find("img[src]").First().Attr("src"); ok {
			tile.Image = strings.TrimSpace(src)
		}

		if len(tile.Lines) == 0 {
			s.log.WarnContext(ctx, "Tile has no text content, skipping", "index", idx)
			return
		}

		s.log.DebugContext(ctx, "Extracted tile", "index", idx, "link", tile.Link, "lines", len(tile.Lines))
		tiles = append(tiles, tile)
	})

	return tiles, nil
}

func textLines(sel *goquery.Selection) []string {
	var lines []string

	for _, raw := range strings.Split(sel.Text(), "\n") {
		if line := strings.TrimSpace(raw); line != "" {
			lines = append(lines, line)
		}
	}

	return lines
}

func resolveLink(base *url.URL, href string) string {
	ref, err := url.Parse(strings.TrimSpace(href))
	if err != nil {
		return strings.TrimSpace(href)
	}

	return base.ResolveReference(ref).String()
}

package scraper

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"testing"

	"github.com/lethalgem/arcteryx-outlet-tracker/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// mockRoundTripper is a mock for http.RoundTripper.
type mockRoundTripper struct {
	response *http.Response
	err      error
	lastURL  string
}

func (m *mockRoundTripper) RoundTrip(req *http.Request) (*http.Response, error) {
	m.lastURL = req.URL.String()
	return m.response, m.err
}

func newTestScraper(rt http.RoundTripper) *Scraper {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	s := NewScraper(logger, "https://arcteryx.com")
	s.client = &http.Client{Transport: rt}

	return s
}

func TestParseCategoryPage(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	s := NewScraper(logger, "https://arcteryx.com")

	validHTML := `
	<html>
	<body>
		<div class="product-tile">
			<a href="/shop/mens/beta-ar-jacket"><img src="https://images.arcteryx.com/beta.jpg"/></a>
			<span>New</span>
			<h3>Beta AR Jacket Men's</h3>
			<span>$400.00</span>
			<span>$550.00</span>
		</div>
		<div class="product-tile">
			<a href="https://arcteryx.com/shop/womens/alpha-sv"><img src="/img/alpha.jpg"/></a>
			<h3>Alpha SV Jacket Women's</h3>
			<span>$650.00</span>
		</div>
		<div class="product-tile"></div>
	</body>
	</html>`

	tiles, err := s.parseCategoryPage(context.Background(), strings.NewReader(validHTML))
	require.NoError(t, err)
	require.Len(t, tiles, 2, "the empty tile must be skipped")

	assert.Equal(t, "https://arcteryx.com/shop/mens/beta-ar-jacket", tiles[0].Link)
	assert.Equal(t, "https://images.arcteryx.com/beta.jpg", tiles[0].Image)
	assert.Equal(t, []string{"New", "Beta AR Jacket Men's", "$400.00", "$550.00"}, tiles[0].Lines)

	assert.Equal(t, "https://arcteryx.com/shop/womens/alpha-sv", tiles[1].Link)
	assert.Equal(t, "/img/alpha.jpg", tiles[1].Image)
	assert.Equal(t, []string{"Alpha SV Jacket Women's", "$650.00"}, tiles[1].Lines)
}

func TestParseCategoryPage_EmptyDocument(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	s := NewScraper(logger, "https://arcteryx.com")

	tiles, err := s.parseCategoryPage(context.Background(), strings.NewReader(""))
	require.NoError(t, err)
	assert.Empty(t, tiles)
}

func TestFetchCategory(t *testing.T) {
	html := `<div class="product-tile"><a href="/shop/mens/atom-hoody"></a><h3>Atom Hoody Men's</h3><span>$180.00</span></div>`

	rt := &mockRoundTripper{
		response: &http.Response{
			StatusCode: http.StatusOK,
			Body:       io.NopCloser(strings.NewReader(html)),
		},
	}
	s := newTestScraper(rt)

	tiles, err := s.FetchCategory(context.Background(), "mens")
	require.NoError(t, err)

	assert.Equal(t, "https://arcteryx.com/c/mens", rt.lastURL)
	require.Len(t, tiles, 1)
	assert.Equal(t, "https://arcteryx.com/shop/mens/atom-hoody", tiles[0].Link)
}

func TestFetchCategory_ServerError(t *testing.T) {
	rt := &mockRoundTripper{
		response: &http.Response{
			StatusCode: http.StatusForbidden,
			Status:     "403 Forbidden",
			Body:       io.NopCloser(strings.NewReader("blocked")),
		},
	}
	s := newTestScraper(rt)

	_, err := s.FetchCategory(context.Background(), "mens")
	require.Error(t, err)
	require.ErrorContains(t, err, "status code error: [403]")
}

func TestFetchCategory_NetworkError(t *testing.T) {
	rt := &mockRoundTripper{err: errors.New("connection refused")}
	s := newTestScraper(rt)

	_, err := s.FetchCategory(context.Background(), "mens")
	require.Error(t, err)
	require.ErrorContains(t, err, "connection refused")
}

func TestFetchSizeData(t *testing.T) {
	payload := `{
		"sizeOptions": [{"label": "M", "value": "102"}, {"label": "L", "value": "103"}],
		"variants": [{"sizeId": "103", "stockStatus": "InStock"}]
	}`

	rt := &mockRoundTripper{
		response: &http.Response{
			StatusCode: http.StatusOK,
			Body:       io.NopCloser(strings.NewReader(payload)),
		},
	}
	s := newTestScraper(rt)

	data, err := s.FetchSizeData(context.Background(), "https://arcteryx.com/shop/mens/beta-ar-jacket")
	require.NoError(t, err)

	assert.Equal(t, "https://arcteryx.com/api/availability?path=%2Fshop%2Fmens%2Fbeta-ar-jacket", rt.lastURL)
	assert.Equal(t, []models.SizeOption{{Label: "M", Value: "102"}, {Label: "L", Value: "103"}}, data.SizeOptions)
	assert.Equal(t, []models.Variant{{SizeID: "103", StockStatus: "InStock"}}, data.Variants)
}

func TestFetchSizeData_MalformedPayload(t *testing.T) {
	rt := &mockRoundTripper{
		response: &http.Response{
			StatusCode: http.StatusOK,
			Body:       io.NopCloser(strings.NewReader("<html>not json</html>")),
		},
	}
	s := newTestScraper(rt)

	_, err := s.FetchSizeData(context.Background(), "/shop/mens/beta-ar-jacket")
	require.Error(t, err)
	require.ErrorContains(t, err, "failed to decode size data")
}

package listing

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/joseph-ayodele/laptop-specs/constants"
	"github.com/joseph-ayodele/laptop-specs/internal/entity"
)

const hpPage = `<!doctype html>
<html><head>
<link rel="canonical" href="https://www.hp.com/us-en/shop/pdp/hp-probook-450-g10">
<script type="application/ld+json">{"@context":"https://schema.org","@type":"BreadcrumbList"}</script>
<script type="application/ld+json">[{"@type":"Organization","name":"HP"},
 {"@type":"Product","name":"HP ProBook 450 G10","sku":"A3RN0UA","offers":{"@type":"Offer","price":"899.00","priceCurrency":"USD"}}]</script>
</head><body>
<h1 class="pdp-title">  HP ProBook 450 15.6 inch G10 Notebook PC </h1>
<span data-test="product-price">$899.00</span>
<div class="price--was">$1,249.00</div>
<span class="stock-status">In stock</span>
<div class="promo">Free shipping</div>
<div class="offer">Save 28%</div>
<div class="promo-text">Free shipping</div>
<div class="reviews-count">(42)</div>
<div class="bv_averageRating_component_container"><div class="bv_text">4.3</div></div>
<section id="bv-review-1">
  <span class="bv-rnr__sc-1r4hv38-0">Sam</span>
  <span aria-label="4 out of 5 stars"></span>
  <h3>Solid work laptop</h3>
  <div class="bv-content-review-text">Good keyboard,
     decent battery.</div>
  <span aria-label="Verified Purchaser"></span>
</section>
</body></html>`

func parse(t *testing.T, html, url string) entity.Listing {
	t.Helper()
	l, err := Default(nil).Parse(strings.NewReader(html), url)
	require.NoError(t, err)
	return l
}

func TestParse_FullPage(t *testing.T) {
	l := parse(t, hpPage, "")

	assert.Equal(t, "HP ProBook 450 15.6 inch G10 Notebook PC", l.ProductTitle)
	assert.Equal(t, constants.HP, l.Brand)
	assert.Equal(t, "https://www.hp.com/us-en/shop/pdp/hp-probook-450-g10", l.SourceURL)
	require.NotNil(t, l.PriceCurrent)
	require.NotNil(t, l.PriceOriginal)
	require.NotNil(t, l.Discount)
	assert.InDelta(t, 899.0, *l.PriceCurrent, 1e-9)
	assert.InDelta(t, 1249.0, *l.PriceOriginal, 1e-9)
	assert.InDelta(t, 350.0, *l.Discount, 1e-9)
	assert.Equal(t, "In stock", l.Availability)
	assert.Equal(t, "Free shipping | Save 28%", l.PromoText)
	assert.Equal(t, "42", l.ReviewsCount)
	assert.Equal(t, "4.3", l.Rating)

	require.NotNil(t, l.Product)
	assert.Equal(t, "A3RN0UA", l.Product["sku"])

	require.Len(t, l.Reviews, 1)
	assert.Equal(t, entity.Review{
		User:     "Sam",
		Rating:   "4",
		Title:    "Solid work laptop",
		Body:     "Good keyboard, decent battery.",
		Verified: true,
	}, l.Reviews[0])
}

func TestParse_AvailabilityFallback(t *testing.T) {
	withPrice := parse(t, `<h1>ThinkPad E14</h1><span itemprop="price">$749.99</span>`, "https://www.lenovo.com/us/en/p/e14")
	assert.Equal(t, AvailabilityAvailable, withPrice.Availability)
	assert.Equal(t, constants.Lenovo, withPrice.Brand)
	assert.Nil(t, withPrice.Discount)

	noPrice := parse(t, `<h1>ThinkPad E14</h1>`, "https://www.lenovo.com/us/en/p/e14")
	assert.Equal(t, AvailabilityUnavailable, noPrice.Availability)
	assert.Nil(t, noPrice.PriceCurrent)
}

func TestParse_JSONLDFillsGaps(t *testing.T) {
	page := `<script type="application/ld+json">{"@graph":[{"@type":["Product","Thing"],
	"name":"ThinkPad E14 Gen 5","offers":[{"price":1099.5}]}]}</script>`

	l := parse(t, page, "https://www.lenovo.com/p/21jk")
	assert.Equal(t, "ThinkPad E14 Gen 5", l.ProductTitle)
	require.NotNil(t, l.PriceCurrent)
	assert.InDelta(t, 1099.5, *l.PriceCurrent, 1e-9)
}

func TestParse_BrokenJSONLDIgnored(t *testing.T) {
	l := parse(t, `<script type="application/ld+json">{"@type": "Product",</script><h1>X</h1>`, "")
	assert.Nil(t, l.Product)
	assert.Equal(t, "X", l.ProductTitle)
}

func TestParsePrice(t *testing.T) {
	tests := []struct {
		in   string
		want *float64
	}{
		{"$1,234.56", ptr(1234.56)},
		{"Now ($899)", ptr(899)},
		{"from $1,049.00 to $1,199.00", ptr(1049)},
		{"Call for price", nil},
		{"", nil},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, ParsePrice(tt.in))
		})
	}
}

func TestDiscount(t *testing.T) {
	assert.Nil(t, Discount(ptr(900), ptr(900)))
	assert.Nil(t, Discount(ptr(900), ptr(800)))
	assert.Nil(t, Discount(nil, ptr(800)))
	assert.Equal(t, ptr(100), Discount(ptr(800), ptr(900)))
}

func TestBrandFromURL(t *testing.T) {
	assert.Equal(t, constants.HP, BrandFromURL("https://www.HP.com/us-en/shop"))
	assert.Equal(t, constants.Lenovo, BrandFromURL("https://www.lenovo.com/us/en"))
	assert.Equal(t, constants.Lenovo, BrandFromURL(""))
}

type countingObserver struct{ ok, failed int }

func (c *countingObserver) ListingParsed(err error) {
	if err != nil {
		c.failed++
		return
	}
	c.ok++
}

func TestParseDir(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "hp-probook.html"), []byte(hpPage), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "hp-elitebook.htm"), []byte(`<h1>EliteBook</h1>`), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".hidden.html"), []byte(`<h1>x</h1>`), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.txt"), []byte(`x`), 0o644))

	obs := &countingObserver{}
	res, err := Default(nil).ParseDir(context.Background(), dir, obs)
	require.NoError(t, err)

	require.Len(t, res.Listings, 2)
	assert.Empty(t, res.Diagnostics)
	assert.Equal(t, 2, obs.ok)

	bySource := map[string]entity.Listing{}
	for _, l := range res.Listings {
		bySource[l.SourceDocument] = l
	}
	assert.Equal(t, "https://www.hp.com/us-en/shop/pdp/hp-probook-450-g10", bySource["hp-probook.html"].SourceURL)
	assert.Equal(t, "hp-elitebook.htm", bySource["hp-elitebook.htm"].SourceURL)
	assert.Equal(t, constants.HP, bySource["hp-elitebook.htm"].Brand)
}

func TestParseDir_MissingDir(t *testing.T) {
	_, err := Default(nil).ParseDir(context.Background(), filepath.Join(t.TempDir(), "nope"), nil)
	assert.Error(t, err)
}

func ptr(f float64) *float64 { return &f }

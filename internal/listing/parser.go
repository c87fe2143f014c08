package listing

import (
	"fmt"
	"io"
	"log/slog"
	"regexp"
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/tidwall/gjson"

	"github.com/joseph-ayodele/laptop-specs/constants"
	"github.com/joseph-ayodele/laptop-specs/internal/entity"
)

const (
	AvailabilityAvailable   = "Available"
	AvailabilityUnavailable = "Unavailable"

	promoSeparator = " | "
)

var priceRe = regexp.MustCompile(`\$[\d,]+(?:\.\d{2})?`)

// Parser turns a saved vendor product page into an entity.Listing.
type Parser struct {
	sel    Selectors
	logger *slog.Logger
}

func NewParser(sel Selectors, logger *slog.Logger) *Parser {
	if logger == nil {
		logger = slog.Default()
	}
	return &Parser{sel: sel, logger: logger}
}

// Parse reads one HTML page. sourceURL decides the brand and is stored as is; when
// empty, the page's canonical or og:url link is used.
func (p *Parser) Parse(r io.Reader, sourceURL string) (entity.Listing, error) {
	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return entity.Listing{}, fmt.Errorf("parsing HTML: %w", err)
	}

	if sourceURL == "" {
		sourceURL = PageURL(doc)
	}

	l := entity.Listing{
		ProductTitle: pickFirst(doc, p.sel.Title),
		Brand:        BrandFromURL(sourceURL),
		SourceURL:    sourceURL,
		Product:      productJSONLD(doc),
		Reviews:      reviews(doc),
	}

	l.PriceCurrent = ParsePrice(pickFirst(doc, p.sel.PriceCurrent))
	l.PriceOriginal = ParsePrice(pickFirst(doc, p.sel.PriceOriginal))

	if l.Product != nil {
		if l.ProductTitle == "" {
			l.ProductTitle, _ = l.Product["name"].(string)
		}
		if l.PriceCurrent == nil {
			l.PriceCurrent = offerPrice(l.Product)
		}
	}

	l.Discount = Discount(l.PriceCurrent, l.PriceOriginal)

	if a := pickFirst(doc, p.sel.Availability); a != "" {
		l.Availability = a
	} else if l.PriceCurrent != nil {
		l.Availability = AvailabilityAvailable
	} else {
		l.Availability = AvailabilityUnavailable
	}

	l.PromoText = strings.Join(pickAll(doc, p.sel.PromoText), promoSeparator)
	l.ReviewsCount = strings.Trim(pickFirst(doc, p.sel.ReviewsCount), "()")
	l.Rating = strings.Trim(pickFirst(doc, p.sel.Rating), "()")

	p.logger.Debug("listing.parsed",
		"url", sourceURL,
		"title", l.ProductTitle,
		"has_price", l.PriceCurrent != nil,
		"has_product", l.Product != nil,
		"reviews", len(l.Reviews),
	)
	return l, nil
}

// BrandFromURL maps hp.com pages to HP and every other storefront to Lenovo.
func BrandFromURL(u string) constants.Brand {
	if strings.Contains(strings.ToLower(u), "hp.com") {
		return constants.HP
	}
	return constants.Lenovo
}

// ParsePrice returns the first dollar amount in text ("$1,234.56" -> 1234.56).
func ParsePrice(text string) *float64 {
	m := priceRe.FindString(text)
	if m == "" {
		return nil
	}
	f, err := strconv.ParseFloat(strings.NewReplacer("$", "", ",", "").Replace(m), 64)
	if err != nil {
		return nil
	}
	return &f
}

// Discount is original minus current when both are known and original is higher.
func Discount(current, original *float64) *float64 {
	if current == nil || original == nil || *original <= *current {
		return nil
	}
	d := *original - *current
	return &d
}

// PageURL returns the canonical link, else og:url, else "".
func PageURL(doc *goquery.Document) string {
	if href, ok := doc.Find(`link[rel="canonical"]`).First().Attr("href"); ok && strings.TrimSpace(href) != "" {
		return strings.TrimSpace(href)
	}
	if c, ok := doc.Find(`meta[property="og:url"]`).First().Attr("content"); ok {
		return strings.TrimSpace(c)
	}
	return ""
}

func pickFirst(doc *goquery.Document, selectors []string) string {
	for _, sel := range selectors {
		var found string
		doc.Find(sel).EachWithBreak(func(_ int, s *goquery.Selection) bool {
			found = strings.TrimSpace(s.Text())
			return found == ""
		})
		if found != "" {
			return found
		}
	}
	return ""
}

func pickAll(doc *goquery.Document, selectors []string) []string {
	var out []string
	seen := map[string]struct{}{}
	for _, sel := range selectors {
		doc.Find(sel).Each(func(_ int, s *goquery.Selection) {
			text := strings.TrimSpace(s.Text())
			if text == "" {
				return
			}
			if _, ok := seen[text]; ok {
				return
			}
			seen[text] = struct{}{}
			out = append(out, text)
		})
	}
	return out
}

// productJSONLD returns the first schema.org Product block found in the page's
// JSON-LD scripts, looking inside top-level arrays and @graph containers.
func productJSONLD(doc *goquery.Document) map[string]any {
	var product map[string]any
	doc.Find(`script[type="application/ld+json"]`).EachWithBreak(func(_ int, s *goquery.Selection) bool {
		raw := strings.TrimSpace(s.Text())
		if !gjson.Valid(raw) {
			return true
		}
		if p := findProduct(gjson.Parse(raw)); p.Exists() {
			product, _ = p.Value().(map[string]any)
		}
		return product == nil
	})
	return product
}

func findProduct(r gjson.Result) gjson.Result {
	switch {
	case r.IsArray():
		for _, item := range r.Array() {
			if p := findProduct(item); p.Exists() {
				return p
			}
		}
	case r.IsObject():
		if isProductType(r.Get("@type")) {
			return r
		}
		if g := r.Get("@graph"); g.IsArray() {
			return findProduct(g)
		}
	}
	return gjson.Result{}
}

func isProductType(t gjson.Result) bool {
	if t.IsArray() {
		for _, x := range t.Array() {
			if x.String() == "Product" {
				return true
			}
		}
		return false
	}
	return t.String() == "Product"
}

// offerPrice reads offers.price (single offer or the first of a list).
func offerPrice(product map[string]any) *float64 {
	var offer any = product["offers"]
	if list, ok := offer.([]any); ok && len(list) > 0 {
		offer = list[0]
	}
	m, ok := offer.(map[string]any)
	if !ok {
		return nil
	}
	switch v := m["price"].(type) {
	case float64:
		return &v
	case string:
		f, err := strconv.ParseFloat(strings.ReplaceAll(strings.TrimPrefix(v, "$"), ",", ""), 64)
		if err != nil {
			return nil
		}
		return &f
	}
	return nil
}

func reviews(doc *goquery.Document) []entity.Review {
	var out []entity.Review
	doc.Find(reviewBlock).Each(func(_ int, s *goquery.Selection) {
		r := entity.Review{
			User:     strings.TrimSpace(s.Find(reviewUser).First().Text()),
			Title:    strings.TrimSpace(s.Find(reviewTitle).First().Text()),
			Body:     strings.Join(strings.Fields(s.Find(reviewBody).First().Text()), " "),
			Verified: s.Find(reviewVerified).Length() > 0,
			Location: strings.TrimSpace(s.Find(reviewLocation).First().Text()),
		}
		if label, ok := s.Find(reviewRating).First().Attr("aria-label"); ok {
			r.Rating, _, _ = strings.Cut(label, " out")
		}
		out = append(out, r)
	})
	return out
}

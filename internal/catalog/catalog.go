package catalog

import (
	"fmt"
	"strings"
	"unicode"

	"github.com/joseph-ayodele/laptop-specs/constants"
	"github.com/joseph-ayodele/laptop-specs/internal/entity"
)

const (
	PriceSourceWeb     = "web"
	PriceSourcePDFOnly = "pdf-only"
)

// Product is the merged view handed to the prompt-assembly layer: specifications
// always come from the datasheet, pricing from the matched web listing if any.
type Product struct {
	Brand          string              `json:"brand"`
	Model          string              `json:"model"`
	SourceDocument string              `json:"source_document"`
	Specs          entity.SpecDocument `json:"specs"`
	Listing        *entity.Listing     `json:"listing"`
	PriceSource    string              `json:"price_source"`
}

// Merge pairs each spec document with at most one listing and returns one Product
// per document, in document order. A listing matches when its brand equals the
// document's and every model token appears in the listing title. Each listing is
// claimed once, by the first document it matches.
func Merge(specs []entity.SpecDocument, listings []entity.Listing) []Product {
	claimed := make([]bool, len(listings))
	titles := make([]map[string]struct{}, len(listings))
	for i, l := range listings {
		titles[i] = tokenSet(l.ProductTitle)
	}

	out := make([]Product, 0, len(specs))
	for _, doc := range specs {
		p := Product{
			Brand:          str(doc[entity.KeyBrand]),
			Model:          str(doc[entity.KeyModel]),
			SourceDocument: str(doc[entity.KeySourceDocument]),
			Specs:          doc,
			PriceSource:    PriceSourcePDFOnly,
		}
		if i := match(p.Brand, p.Model, listings, titles, claimed); i >= 0 {
			claimed[i] = true
			l := listings[i]
			p.Listing = &l
			p.PriceSource = PriceSourceWeb
		}
		out = append(out, p)
	}
	return out
}

// Unmatched returns the listings no document claimed.
func Unmatched(products []Product, listings []entity.Listing) []entity.Listing {
	used := map[string]struct{}{}
	for _, p := range products {
		if p.Listing != nil {
			used[listingKey(*p.Listing)] = struct{}{}
		}
	}
	var out []entity.Listing
	for _, l := range listings {
		if _, ok := used[listingKey(l)]; !ok {
			out = append(out, l)
		}
	}
	return out
}

func match(brand, model string, listings []entity.Listing, titles []map[string]struct{}, claimed []bool) int {
	if model == "" || model == constants.UnknownModel || model == constants.NotSpecified {
		return -1
	}
	want := tokens(model)
	if len(want) == 0 {
		return -1
	}
	b, _ := constants.Canonicalize(brand)
	for i, l := range listings {
		if claimed[i] || l.Brand != b {
			continue
		}
		if containsAll(titles[i], want) {
			return i
		}
	}
	return -1
}

func tokens(s string) []string {
	return strings.FieldsFunc(strings.ToLower(s), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})
}

func tokenSet(s string) map[string]struct{} {
	set := map[string]struct{}{}
	for _, t := range tokens(s) {
		set[t] = struct{}{}
	}
	return set
}

func containsAll(set map[string]struct{}, want []string) bool {
	for _, w := range want {
		if _, ok := set[w]; !ok {
			return false
		}
	}
	return true
}

func listingKey(l entity.Listing) string {
	return l.SourceURL + "\x00" + l.SourceDocument + "\x00" + l.ProductTitle
}

func str(v any) string {
	switch s := v.(type) {
	case nil:
		return ""
	case string:
		return s
	default:
		return fmt.Sprint(s)
	}
}

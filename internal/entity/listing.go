package entity

import "github.com/joseph-ayodele/laptop-specs/constants"

// Listing is the pricing/availability view of one vendor product page.
type Listing struct {
	ProductTitle   string          `json:"product_title"`
	Brand          constants.Brand `json:"brand"`
	PriceCurrent   *float64        `json:"price_current"`
	PriceOriginal  *float64        `json:"price_original"`
	Discount       *float64        `json:"discount"`
	Availability   string          `json:"availability"`
	PromoText      string          `json:"promo_text,omitempty"`
	ReviewsCount   string          `json:"reviews_count,omitempty"`
	Rating         string          `json:"rating,omitempty"`
	SourceURL      string          `json:"source_url"`
	SourceDocument string          `json:"source_document,omitempty"`
	Product        map[string]any  `json:"product,omitempty"`
	Reviews        []Review        `json:"reviews,omitempty"`
}

// Review is one customer review rendered into a saved product page.
type Review struct {
	User     string `json:"user,omitempty"`
	Rating   string `json:"rating,omitempty"`
	Title    string `json:"title,omitempty"`
	Body     string `json:"body,omitempty"`
	Verified bool   `json:"verified"`
	Location string `json:"location,omitempty"`
}

package listing

// Selectors lists, per listing field, the CSS selectors tried in order. The first
// element with non-empty text wins; promo text collects every distinct match.
type Selectors struct {
	Title         []string
	PriceCurrent  []string
	PriceOriginal []string
	Availability  []string
	PromoText     []string
	ReviewsCount  []string
	Rating        []string
}

// VendorSelectors covers the HP and Lenovo storefront layouts plus common
// e-commerce class names.
var VendorSelectors = Selectors{
	Title: []string{
		"h1.pdp-title",
		`h1[data-test-hook="@hpstellar/core/typography"]`,
		"h1",
		"h1[itemprop='name']",
		"h1.product-name",
		".product-title",
		".product-name",
		"h2.Vp-v_gf",
	},
	PriceCurrent: []string{
		"span.sale-subscription-price",
		"span[data-test='product-price']",
		"span[itemprop='price']",
		"div.price_container",
		".product-price .price",
		".pdp-price .price",
		".price__value",
	},
	PriceOriginal: []string{
		".compare-at-price",
		`div.starting-at-price span[data-test-hook="@hpstellar/core/typography"]`,
		".price--was",
		".original-price",
		".was-price",
		".price--strike",
	},
	Availability: []string{
		`button[data-test-hook="@hpstellar/core/button"] span[data-test-hook="@hpstellar/core/typography"]`,
		"span[data-test-hook='@hpstellar/core/product-tile__stock__stock']",
		`span[data-test-hook="@hpstellar/core/stock-indicator__stock"]`,
		"span.special-status_text",
		".stock-status",
		".availability",
		".out-of-stock",
		".pdp-unavailable",
		".stock",
	},
	PromoText: []string{
		`div[data-test-hook="@hpstellar/core/banner/highlight-banner__description"]`,
		`div[data-test-hook="@hpstellar/core/banner/highlight-banner__title"]`,
		`div.merchandizingItem[data-tkey="merchandizingBanner.item"] p`,
		"ul.V2-I_gf div[data-test-hook='@hpstellar/core/typography'] span.cust-html",
		"div.product-offers-content p",
		`div.product-offers div.offer-type-contingent p[data-test-hook="@hpstellar/core/typography"]`,
		".promo",
		".offer",
		".savings",
		".price-savings",
		".promo-text",
	},
	ReviewsCount: []string{
		"div[data-test-hook='@hpstellar/core/typography'].Nm-Nu_gf",
		"div.bv_numReviews_component_container div.bv_text",
		".reviews-count",
		".review-count",
		"#reviews .count",
		"div.bv_numReviews_text",
	},
	Rating: []string{
		"div.bv_averageRating_component_container div.bv_text",
		"div.bv_text",
		"div[data-test-hook='@hpstellar/core/typography'].Nm-Nt_gf",
		`div.bv_avgRating_component_container[itemprop="ratingValue"]`,
	},
}

// reviewBlock and its children address BazaarVoice review markup.
const (
	reviewBlock    = "section[id^='bv-review-'], div[id^='bv-review-']"
	reviewUser     = "span.bv-rnr__sc-1r4hv38-0"
	reviewRating   = "[aria-label*='out of 5 stars']"
	reviewTitle    = "h3, .bv-content-title"
	reviewBody     = ".bv-content-summary-body-text, .bv-content-review-text"
	reviewVerified = "[aria-label='Verified Purchaser']"
	reviewLocation = ".bv-rnr__emkap-1 span"
)

package constants

import (
	"path/filepath"
	"strings"
)

type Brand string

const (
	HP      Brand = "HP"
	Lenovo  Brand = "Lenovo"
	Dell    Brand = "Dell"
	Asus    Brand = "Asus"
	Acer    Brand = "Acer"
	Unknown Brand = "Unknown"
)

var allBrands = []Brand{
	HP,
	Lenovo,
	Dell,
	Asus,
	Acer,
	Unknown,
}

// BrandsAsStringSlice returns the enumerated brand set in declaration order.
func BrandsAsStringSlice() []string {
	result := make([]string, len(allBrands))
	for i, b := range allBrands {
		result[i] = string(b)
	}
	return result
}

// DetectBrand infers the vendor from a document path. Content is never consulted.
func DetectBrand(path string) Brand {
	p := strings.ToLower(filepath.ToSlash(path))
	switch {
	case strings.Contains(p, "lenovo") || strings.Contains(p, "thinkpad"):
		return Lenovo
	case strings.Contains(p, "hp") || strings.Contains(p, "probook"):
		return HP
	default:
		return Unknown
	}
}

// Canonicalize maps a loosely spelled brand onto the enumerated set.
func Canonicalize(input string) (Brand, bool) {
	normalized := strings.ToLower(strings.TrimSpace(input))
	if normalized == "" {
		return Unknown, false
	}

	synonyms := map[string]Brand{
		"hewlett-packard": HP,
		"hewlett packard": HP,
		"hp inc.":         HP,
		"thinkpad":        Lenovo,
		"asustek":         Asus,
	}
	if b, ok := synonyms[normalized]; ok {
		return b, true
	}

	for _, b := range allBrands {
		if normalized == strings.ToLower(string(b)) {
			return b, true
		}
	}
	return Unknown, false
}

package constants

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDetectBrand(t *testing.T) {
	tests := []struct {
		path string
		want Brand
	}{
		{"data/pdfs/Lenovo_E14.pdf", Lenovo},
		{"data/pdfs/THINKPAD-e14-gen5.pdf", Lenovo},
		{"data/pdfs/hp-probook-450.pdf", HP},
		{"data/pdfs/ProBook_440_G11.pdf", HP},
		{"data/pdfs/datasheet.pdf", Unknown},
		// lenovo wins when both appear
		{"data/hp/lenovo_e14.pdf", Lenovo},
	}
	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			assert.Equal(t, tt.want, DetectBrand(tt.path))
		})
	}
}

func TestCanonicalize(t *testing.T) {
	b, ok := Canonicalize(" Hewlett-Packard ")
	assert.True(t, ok)
	assert.Equal(t, HP, b)

	b, ok = Canonicalize("lenovo")
	assert.True(t, ok)
	assert.Equal(t, Lenovo, b)

	b, ok = Canonicalize("Framework")
	assert.False(t, ok)
	assert.Equal(t, Unknown, b)
}

func TestBrandsAsStringSlice(t *testing.T) {
	assert.Equal(t, []string{"HP", "Lenovo", "Dell", "Asus", "Acer", "Unknown"}, BrandsAsStringSlice())
}

package report

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/joseph-ayodele/laptop-specs/internal/entity"
)

func docs() []entity.SpecDocument {
	return []entity.SpecDocument{
		{
			"brand":            "HP",
			"model":            "ProBook 450 G10",
			"source_document":  "hp.pdf",
			"processor":        []any{"Intel Core i5-1335U", "Intel Core i7-1355U"},
			"memory":           []any{"16GB DDR4", "8GB DDR4"},
			"storage":          []any{"512GB SSD"},
			"display":          []any{map[string]any{"size": "15.6 inches"}},
			"graphics":         []any{"Intel Iris Xe Graphics", "Intel UHD Graphics", "NVIDIA GeForce RTX 2050"},
			"weights":          map[string]any{"variant_1": map[string]any{"weight": "1.79 kg"}},
			"operating_system": []any{"Windows 11 Pro"},
			"certification":    []any{"ENERGY STAR", "EPEAT Gold"},
			"chipset":          "Intel SoC",
			"case_material":    "Not specified",
			"network":          map[string]any{"ethernet": "Not specified", "wwan": []any{}},
			"power":            map[string]any{"adapter_wattage": []any{"65W"}},
			"security":         []any{"Not specified"},
		},
		{
			"brand":           "Lenovo",
			"model":           "ThinkPad E14 Gen 5 (Intel)",
			"source_document": "e14.pdf",
			"weight":          "1.41 kg",
			"chipset":         "Not specified",
			"network":         map[string]any{"ethernet": "Gigabit Ethernet", "nfc": false},
			"warranty":        []any{map[string]any{"duration": "1 year", "type": "Not specified"}},
		},
	}
}

func TestCompleteness(t *testing.T) {
	got := Completeness(docs(), CompletenessFields)

	want := map[string]int{
		"chipset":       1,
		"case_material": 0,
		"warranty":      1,
		"certification": 1,
		"power":         1,
		"network":       1,
		"security":      0,
	}
	require.Len(t, got, len(want))
	for _, c := range got {
		assert.Equal(t, want[c.Field], c.Specified, c.Field)
		assert.Equal(t, 2, c.Total)
	}
}

func TestSpecified(t *testing.T) {
	tests := []struct {
		v    any
		want bool
	}{
		{nil, false},
		{"", false},
		{"Not specified", false},
		{"65W", true},
		{[]any{}, false},
		{[]any{"Not specified"}, false},
		{[]string{"Not specified", "TPM 2.0"}, true},
		{map[string]any{}, false},
		{map[string]any{"wwan": []any{}, "ethernet": "Not specified"}, false},
		{map[string]any{"nfc": false}, true},
		{entity.Attributes{"camera": "720p"}, true},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, Specified(tt.v), "%#v", tt.v)
	}
}

func TestSummary(t *testing.T) {
	out := Summary(docs())

	assert.True(t, strings.HasPrefix(out, rule+"\nLAPTOP SPECIFICATIONS SUMMARY REPORT\n"))
	assert.Contains(t, out, "Total Laptops: 2")
	assert.Contains(t, out, "1. HP - ProBook 450 G10\n   Source: hp.pdf\n   Processors: 2 options\n")
	assert.Contains(t, out, "   Memory: 16GB DDR4, 8GB DDR4\n")
	assert.Contains(t, out, "   Graphics: Intel Iris Xe Graphics, Intel UHD Graphics\n")
	assert.Contains(t, out, "   Weight: 1.79 kg\n")
	assert.Contains(t, out, "2. Lenovo - ThinkPad E14 Gen 5 (Intel)")
	assert.Contains(t, out, "   Weight: 1.41 kg\n")
	assert.Contains(t, out, "Case Material: 0/2 laptops\n")
	assert.Contains(t, out, "Chipset: 1/2 laptops\n")
}

func TestSummary_Empty(t *testing.T) {
	out := Summary(nil)
	assert.Contains(t, out, "Total Laptops: 0")
	assert.Contains(t, out, "Security: 0/0 laptops")
}

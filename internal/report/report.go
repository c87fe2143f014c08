package report

import (
	"fmt"
	"strings"

	"github.com/joseph-ayodele/laptop-specs/constants"
	"github.com/joseph-ayodele/laptop-specs/internal/entity"
)

const rule = "================================================================================"

// CompletenessFields are the optional fields tracked by the completeness analysis.
var CompletenessFields = []string{
	entity.KeyChipset,
	entity.KeyCaseMaterial,
	entity.KeyWarranty,
	entity.KeyCertification,
	entity.KeyPower,
	entity.KeyNetwork,
	entity.KeySecurity,
}

// FieldCompleteness counts the documents carrying real information for one field.
type FieldCompleteness struct {
	Field     string `json:"field"`
	Specified int    `json:"specified"`
	Total     int    `json:"total"`
}

// Label renders the field name in title case ("case_material" -> "Case Material").
func (f FieldCompleteness) Label() string {
	words := strings.Split(f.Field, "_")
	for i, w := range words {
		if w != "" {
			words[i] = strings.ToUpper(w[:1]) + w[1:]
		}
	}
	return strings.Join(words, " ")
}

// Completeness evaluates fields over docs. A field counts as specified when it is
// present and holds something besides sentinels and empty values.
func Completeness(docs []entity.SpecDocument, fields []string) []FieldCompleteness {
	out := make([]FieldCompleteness, 0, len(fields))
	for _, f := range fields {
		c := FieldCompleteness{Field: f, Total: len(docs)}
		for _, d := range docs {
			if v, ok := d[f]; ok && Specified(v) {
				c.Specified++
			}
		}
		out = append(out, c)
	}
	return out
}

// Specified reports whether v carries information: not nil, not empty, not the
// "Not specified" sentinel, and for containers at least one specified element.
// Booleans count as specified.
func Specified(v any) bool {
	switch t := v.(type) {
	case nil:
		return false
	case string:
		s := strings.TrimSpace(t)
		return s != "" && s != constants.NotSpecified
	case []string:
		for _, s := range t {
			if Specified(s) {
				return true
			}
		}
		return false
	case []any:
		for _, x := range t {
			if Specified(x) {
				return true
			}
		}
		return false
	case map[string]any:
		for _, x := range t {
			if Specified(x) {
				return true
			}
		}
		return false
	case entity.Attributes:
		return Specified(map[string]any(t))
	default:
		return true
	}
}

// Summary renders the plain-text report: one block per laptop followed by the
// completeness analysis.
func Summary(docs []entity.SpecDocument) string {
	var b strings.Builder
	b.WriteString(rule + "\n")
	b.WriteString("LAPTOP SPECIFICATIONS SUMMARY REPORT\n")
	b.WriteString(rule + "\n")
	fmt.Fprintf(&b, "\nTotal Laptops: %d\n\n", len(docs))

	for i, d := range docs {
		fmt.Fprintf(&b, "\n%d. %s - %s\n", i+1, text(d[entity.KeyBrand]), text(d[entity.KeyModel]))
		fmt.Fprintf(&b, "   Source: %s\n", text(d[entity.KeySourceDocument]))
		fmt.Fprintf(&b, "   Processors: %d options\n", count(d[entity.KeyProcessor]))
		fmt.Fprintf(&b, "   Memory: %s\n", strings.Join(list(d[entity.KeyMemory]), ", "))
		fmt.Fprintf(&b, "   Storage: %d options\n", count(d[entity.KeyStorage]))
		fmt.Fprintf(&b, "   Display Variants: %d\n", count(d[entity.KeyDisplay]))
		fmt.Fprintf(&b, "   Graphics: %s\n", strings.Join(first(list(d[entity.KeyGraphics]), 2), ", "))
		fmt.Fprintf(&b, "   Weight: %s\n", FirstWeight(d))
		fmt.Fprintf(&b, "   OS Options: %d\n", count(d[entity.KeyOperatingSystem]))
		fmt.Fprintf(&b, "   Certifications: %d\n", count(d[entity.KeyCertification]))
	}

	b.WriteString("\n" + rule + "\n")
	b.WriteString("FIELD COMPLETENESS ANALYSIS\n")
	b.WriteString(rule + "\n\n")
	for _, c := range Completeness(docs, CompletenessFields) {
		fmt.Fprintf(&b, "%s: %d/%d laptops\n", c.Label(), c.Specified, c.Total)
	}
	return b.String()
}

// FirstWeight returns weights.variant_1.weight, falling back to a raw weight
// string, then to the sentinel.
func FirstWeight(d entity.SpecDocument) string {
	if ws, ok := d[entity.KeyWeights].(map[string]any); ok {
		if v1, ok := ws["variant_1"].(map[string]any); ok {
			if w, ok := v1["weight"].(string); ok && w != "" {
				return w
			}
		}
	}
	if w, ok := d[entity.KeyWeight].(string); ok && w != "" {
		return w
	}
	return constants.NotSpecified
}

func text(v any) string {
	if v == nil {
		return constants.NotSpecified
	}
	return fmt.Sprint(v)
}

func list(v any) []string {
	switch t := v.(type) {
	case []string:
		return t
	case []any:
		out := make([]string, 0, len(t))
		for _, x := range t {
			out = append(out, fmt.Sprint(x))
		}
		return out
	case string:
		return []string{t}
	}
	return nil
}

func count(v any) int {
	switch t := v.(type) {
	case []any:
		return len(t)
	case []string:
		return len(t)
	case map[string]any:
		// an unnormalized display is one variant
		return 1
	}
	return 0
}

func first(s []string, n int) []string {
	if len(s) > n {
		return s[:n]
	}
	return s
}

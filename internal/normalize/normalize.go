// Package normalize reshapes raw spec records into the schema-conformant form.
// Every rule is idempotent and works on a deep copy; inputs are never mutated.
package normalize

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/joseph-ayodele/laptop-specs/constants"
	"github.com/joseph-ayodele/laptop-specs/internal/entity"
)

// legacyKeySourceDocument is the source key used by older raw files.
const legacyKeySourceDocument = "source_pdf"

type rule func(doc entity.SpecDocument)

// rules run in this order for every record.
var rules = []rule{
	coerceDisplay,
	restructureWeight,
	wrapArrays,
	coerceWWAN,
	coerceMultiMedia,
	coerceNFC,
	wrapAdapterWattage,
	structureWarranty,
	renameLegacySource,
}

// Normalize returns a same-length, index-aligned normalized copy of docs.
func Normalize(docs []entity.SpecDocument) []entity.SpecDocument {
	out := make([]entity.SpecDocument, len(docs))
	for i, d := range docs {
		out[i] = Record(d)
	}
	return out
}

// Record normalizes one document.
func Record(doc entity.SpecDocument) entity.SpecDocument {
	if doc == nil {
		return nil
	}
	cp, _ := deepCopy(doc).(map[string]any)
	for _, r := range rules {
		r(cp)
	}
	return cp
}

// Documents converts typed raw records to their generic persisted form.
func Documents(raw []entity.RawSpec) ([]entity.SpecDocument, error) {
	data, err := json.Marshal(raw)
	if err != nil {
		return nil, fmt.Errorf("encode raw records: %w", err)
	}
	docs := make([]entity.SpecDocument, 0, len(raw))
	if err := json.Unmarshal(data, &docs); err != nil {
		return nil, fmt.Errorf("decode raw records: %w", err)
	}
	return docs, nil
}

// coerceDisplay wraps a bare display mapping into a collection and turns the
// touch/anti_glare strings into booleans.
func coerceDisplay(doc entity.SpecDocument) {
	v, ok := doc[entity.KeyDisplay]
	if !ok {
		return
	}
	if m, ok := asMap(v); ok {
		v = []any{m}
		doc[entity.KeyDisplay] = v
	}
	list, ok := v.([]any)
	if !ok {
		return
	}
	for _, item := range list {
		d, ok := asMap(item)
		if !ok {
			continue
		}
		coerceBool(d, "touch", "yes", "true", "multi touch")
		coerceBool(d, "anti_glare", "yes", "true")
	}
}

// restructureWeight replaces a scalar weight with a single-variant weights mapping.
func restructureWeight(doc entity.SpecDocument) {
	w, ok := doc[entity.KeyWeight]
	if !ok {
		return
	}
	if _, has := doc[entity.KeyWeights]; has {
		return
	}
	doc[entity.KeyWeights] = map[string]any{
		"variant_1": map[string]any{
			"sku_id":          fmt.Sprintf("%v-Standard", doc[entity.KeyBrand]),
			"top_material":    constants.NotSpecified,
			"bottom_material": constants.NotSpecified,
			"weight":          w,
			"weight_lbs":      constants.NotSpecified,
		},
	}
	delete(doc, entity.KeyWeight)
}

func wrapArrays(doc entity.SpecDocument) {
	for _, key := range []string{entity.KeyBattery, entity.KeyColour} {
		if s, ok := doc[key].(string); ok {
			doc[key] = []any{s}
		}
	}
}

// coerceWWAN makes network.wwan a list; absence and "no support" mean empty.
func coerceWWAN(doc entity.SpecDocument) {
	network, ok := asMap(doc[entity.KeyNetwork])
	if !ok {
		return
	}
	switch v := network["wwan"].(type) {
	case nil:
		network["wwan"] = []any{}
	case string:
		switch strings.ToLower(strings.TrimSpace(v)) {
		case "no support", "not specified", "":
			network["wwan"] = []any{}
		default:
			network["wwan"] = []any{v}
		}
	case []string:
		network["wwan"] = toAnySlice(v)
	}
}

func coerceMultiMedia(doc entity.SpecDocument) {
	mm, ok := asMap(doc[entity.KeyMultiMedia])
	if !ok {
		return
	}
	if s, ok := mm["camera"].(string); ok {
		mm["camera"] = []any{s}
	}
	coerceBool(mm, "camera_privacy", "yes", "true")
}

func coerceNFC(doc entity.SpecDocument) {
	if network, ok := asMap(doc[entity.KeyNetwork]); ok {
		coerceBool(network, "nfc", "yes", "true")
	}
}

func wrapAdapterWattage(doc entity.SpecDocument) {
	power, ok := asMap(doc[entity.KeyPower])
	if !ok {
		return
	}
	if s, ok := power["adapter_wattage"].(string); ok {
		power["adapter_wattage"] = []any{s}
	}
}

func structureWarranty(doc entity.SpecDocument) {
	if s, ok := doc[entity.KeyWarranty].(string); ok {
		doc[entity.KeyWarranty] = []any{map[string]any{
			"duration": s,
			"type":     constants.NotSpecified,
		}}
	}
}

func renameLegacySource(doc entity.SpecDocument) {
	v, ok := doc[legacyKeySourceDocument]
	if !ok {
		return
	}
	if _, has := doc[entity.KeySourceDocument]; !has {
		doc[entity.KeySourceDocument] = v
	}
	delete(doc, legacyKeySourceDocument)
}

// coerceBool turns a string value at key into true when it is one of truthy
// (case-insensitive), false otherwise. Non-string values are left alone.
func coerceBool(m map[string]any, key string, truthy ...string) {
	s, ok := m[key].(string)
	if !ok {
		return
	}
	lower := strings.ToLower(strings.TrimSpace(s))
	val := false
	for _, t := range truthy {
		if lower == t {
			val = true
			break
		}
	}
	m[key] = val
}

func asMap(v any) (map[string]any, bool) {
	switch m := v.(type) {
	case map[string]any:
		return m, true
	case entity.Attributes:
		return map[string]any(m), true
	default:
		return nil, false
	}
}

func toAnySlice(in []string) []any {
	out := make([]any, len(in))
	for i, s := range in {
		out[i] = s
	}
	return out
}

// deepCopy copies the JSON-shaped value tree; typed string slices and attribute
// maps come back in their generic form.
func deepCopy(v any) any {
	switch x := v.(type) {
	case map[string]any:
		out := make(map[string]any, len(x))
		for k, val := range x {
			out[k] = deepCopy(val)
		}
		return out
	case entity.Attributes:
		return deepCopy(map[string]any(x))
	case []any:
		out := make([]any, len(x))
		for i, val := range x {
			out[i] = deepCopy(val)
		}
		return out
	case []string:
		return toAnySlice(x)
	case []map[string]any:
		out := make([]any, len(x))
		for i, val := range x {
			out[i] = deepCopy(val)
		}
		return out
	default:
		return v
	}
}

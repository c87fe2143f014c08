package schema

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/santhosh-tekuri/jsonschema/v5"
	"gopkg.in/yaml.v3"
)

// DefaultName is the resource name of the embedded laptop specification schema.
const DefaultName = "laptop_specs.schema.json"

//go:embed laptop_specs.schema.json
var defaultSchema []byte

// Schema is a parsed schema document together with its compiled form.
// The document is kept as generic JSON data so the walker can read it directly.
type Schema struct {
	Name     string
	doc      map[string]any
	raw      []byte
	compiled *jsonschema.Schema
}

// DefaultJSON returns the embedded schema document as written to disk.
func DefaultJSON() []byte {
	out := make([]byte, len(defaultSchema))
	copy(out, defaultSchema)
	return out
}

// Default parses the embedded schema.
func Default() (*Schema, error) {
	return Parse(DefaultName, defaultSchema)
}

// MustDefault is Default for package initialisation and tests.
func MustDefault() *Schema {
	s, err := Default()
	if err != nil {
		panic(err)
	}
	return s
}

// Load reads a schema file. Files ending in .yaml or .yml are decoded as YAML,
// everything else as JSON.
func Load(path string) (*Schema, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read schema %s: %w", path, err)
	}
	return Parse(filepath.Base(path), data)
}

// Parse decodes and compiles a schema document. name selects the decoder by
// extension and is used as the compiler resource name.
func Parse(name string, data []byte) (*Schema, error) {
	if strings.TrimSpace(name) == "" {
		name = DefaultName
	}

	doc, err := decode(name, data)
	if err != nil {
		return nil, err
	}

	b, err := json.Marshal(doc)
	if err != nil {
		return nil, fmt.Errorf("marshal schema: %w", err)
	}

	// the compiler only needs a stable resource name; keep it json-suffixed
	resource := strings.TrimSuffix(strings.TrimSuffix(name, ".yaml"), ".yml")
	if !strings.HasSuffix(resource, ".json") {
		resource += ".json"
	}

	compiler := jsonschema.NewCompiler()
	compiler.Draft = jsonschema.Draft7
	if err := compiler.AddResource(resource, bytes.NewReader(b)); err != nil {
		return nil, fmt.Errorf("add schema: %w", err)
	}
	compiled, err := compiler.Compile(resource)
	if err != nil {
		return nil, fmt.Errorf("compile schema: %w", err)
	}

	return &Schema{Name: name, doc: doc, raw: b, compiled: compiled}, nil
}

// Document returns a copy of the schema as generic JSON data.
func (s *Schema) Document() map[string]any {
	var out map[string]any
	_ = json.Unmarshal(s.raw, &out)
	return out
}

// JSON returns the schema as indented JSON.
func (s *Schema) JSON() ([]byte, error) {
	var buf bytes.Buffer
	if err := json.Indent(&buf, s.raw, "", "  "); err != nil {
		return nil, err
	}
	buf.WriteByte('\n')
	return buf.Bytes(), nil
}

func decode(name string, data []byte) (map[string]any, error) {
	var doc any
	switch strings.ToLower(filepath.Ext(name)) {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, &doc); err != nil {
			return nil, fmt.Errorf("decode yaml schema %s: %w", name, err)
		}
		// yaml.v3 may produce int and map[any]any; route through JSON for a uniform shape
		b, err := json.Marshal(jsonCompatible(doc))
		if err != nil {
			return nil, fmt.Errorf("convert yaml schema %s: %w", name, err)
		}
		doc = nil
		if err := json.Unmarshal(b, &doc); err != nil {
			return nil, fmt.Errorf("convert yaml schema %s: %w", name, err)
		}
	default:
		if err := json.Unmarshal(data, &doc); err != nil {
			return nil, fmt.Errorf("decode schema %s: %w", name, err)
		}
	}

	m, ok := doc.(map[string]any)
	if !ok {
		return nil, fmt.Errorf("schema %s: top level must be an object", name)
	}
	return m, nil
}

func jsonCompatible(v any) any {
	switch t := v.(type) {
	case map[string]any:
		out := make(map[string]any, len(t))
		for k, val := range t {
			out[k] = jsonCompatible(val)
		}
		return out
	case map[any]any:
		out := make(map[string]any, len(t))
		for k, val := range t {
			out[fmt.Sprint(k)] = jsonCompatible(val)
		}
		return out
	case []any:
		out := make([]any, len(t))
		for i, val := range t {
			out[i] = jsonCompatible(val)
		}
		return out
	default:
		return v
	}
}

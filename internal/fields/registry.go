package fields

import (
	"fmt"

	"github.com/joseph-ayodele/laptop-specs/constants"
	"github.com/joseph-ayodele/laptop-specs/internal/entity"
)

// Registry maps field identifiers to extraction rules. It is read-only after
// construction and safe for concurrent use.
type Registry struct {
	rules map[string]Rule
	order []string
}

// NewRegistry builds a registry. Duplicate names or a policy/shape mismatch are errors.
func NewRegistry(rules ...Rule) (*Registry, error) {
	r := &Registry{rules: make(map[string]Rule, len(rules))}
	for _, rule := range rules {
		if rule.Name == "" {
			return nil, fmt.Errorf("rule without name")
		}
		if _, dup := r.rules[rule.Name]; dup {
			return nil, fmt.Errorf("duplicate rule %q", rule.Name)
		}
		switch rule.Policy {
		case FirstMatch, Collection:
			if len(rule.Patterns) == 0 {
				return nil, fmt.Errorf("rule %q: %s policy needs patterns", rule.Name, rule.Policy)
			}
		case Structured:
			if len(rule.Subs) == 0 {
				return nil, fmt.Errorf("rule %q: structured policy needs sub-rules", rule.Name)
			}
		default:
			return nil, fmt.Errorf("rule %q: unknown policy %d", rule.Name, rule.Policy)
		}
		r.rules[rule.Name] = rule
		r.order = append(r.order, rule.Name)
	}
	return r, nil
}

var standard = mustRegistry(StandardRules()...)

func mustRegistry(rules ...Rule) *Registry {
	r, err := NewRegistry(rules...)
	if err != nil {
		panic(err)
	}
	return r
}

// Standard returns the shared registry built from StandardRules.
func Standard() *Registry { return standard }

// Names lists field identifiers in registration order.
func (r *Registry) Names() []string {
	return append([]string(nil), r.order...)
}

// Rule looks up a field rule.
func (r *Registry) Rule(name string) (Rule, bool) {
	rule, ok := r.rules[name]
	return rule, ok
}

// Scalar extracts a first-match field. Unknown fields yield the sentinel.
func (r *Registry) Scalar(name, text string) string {
	rule, ok := r.rules[name]
	if !ok || rule.Policy != FirstMatch {
		return constants.NotSpecified
	}
	return rule.Scalar(text)
}

// List extracts a collection field. Unknown fields yield the sentinel collection.
func (r *Registry) List(name, text string) []string {
	rule, ok := r.rules[name]
	if !ok || rule.Policy != Collection {
		return constants.NotSpecifiedList()
	}
	return rule.List(text)
}

// Attrs extracts a structured field. Unknown fields yield an empty mapping.
func (r *Registry) Attrs(name, text string) entity.Attributes {
	rule, ok := r.rules[name]
	if !ok || rule.Policy != Structured {
		return entity.Attributes{}
	}
	return rule.Attrs(text)
}

// ExtractAll evaluates every registered field over text.
func (r *Registry) ExtractAll(text string) map[string]any {
	out := make(map[string]any, len(r.order))
	for _, name := range r.order {
		out[name] = r.rules[name].Eval(text)
	}
	return out
}

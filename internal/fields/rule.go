package fields

import (
	"regexp"
	"strings"

	"github.com/joseph-ayodele/laptop-specs/constants"
	"github.com/joseph-ayodele/laptop-specs/internal/entity"
)

// Policy is the aggregation policy of a field rule.
type Policy int

const (
	// FirstMatch returns the text of the first pattern, in list order, that matches.
	FirstMatch Policy = iota
	// Collection accumulates every match of every pattern, deduplicated.
	Collection
	// Structured builds a mapping from independent sub-rules.
	Structured
)

func (p Policy) String() string {
	switch p {
	case FirstMatch:
		return "first-match"
	case Collection:
		return "collection"
	case Structured:
		return "structured"
	default:
		return "unknown"
	}
}

// Pattern is a case-insensitive expression plus the template used to render a match.
// An empty template renders the whole match.
type Pattern struct {
	Re       *regexp.Regexp
	Template string
}

// P compiles expr case-insensitively. It panics on a malformed expression, so rule
// tables fail at init time.
func P(expr string) Pattern {
	return Pattern{Re: regexp.MustCompile(`(?i)` + expr)}
}

// T is P with an expansion template ("${1} inches").
func T(expr, template string) Pattern {
	p := P(expr)
	p.Template = template
	return p
}

// first renders the leftmost match of the pattern, if any.
func (p Pattern) first(text string) (string, bool) {
	loc := p.Re.FindStringSubmatchIndex(text)
	if loc == nil {
		return "", false
	}
	if p.Template == "" {
		return text[loc[0]:loc[1]], true
	}
	return string(p.Re.ExpandString(nil, p.Template, text, loc)), true
}

// all renders every non-overlapping match: the whole match when the expression has no
// groups, group 1 when it has one, the space-joined groups otherwise.
func (p Pattern) all(text string) []string {
	matches := p.Re.FindAllStringSubmatch(text, -1)
	if len(matches) == 0 {
		return nil
	}
	out := make([]string, 0, len(matches))
	for _, m := range matches {
		switch n := p.Re.NumSubexp(); {
		case n == 0:
			out = append(out, m[0])
		case n == 1:
			out = append(out, m[1])
		default:
			out = append(out, strings.Join(m[1:], " "))
		}
	}
	return out
}

// SubKind selects how a structured sub-rule fills its key.
type SubKind int

const (
	// SubFirst sets the first rendered match; Accept may veto it, which ends the search.
	SubFirst SubKind = iota
	// SubAll sets the deduplicated list of all matches when there is at least one.
	SubAll
	// SubFlag sets Value when any pattern matches.
	SubFlag
	// SubBool always sets a boolean: whether any pattern matches.
	SubBool
)

// Sub is one key of a structured field.
type Sub struct {
	Key      string
	Kind     SubKind
	Patterns []Pattern
	Value    any
	Accept   func(match string) bool
}

func (s Sub) apply(text string, out entity.Attributes) {
	switch s.Kind {
	case SubFirst:
		for _, p := range s.Patterns {
			loc := p.Re.FindStringIndex(text)
			if loc == nil {
				continue
			}
			if s.Accept != nil && !s.Accept(text[loc[0]:loc[1]]) {
				return
			}
			v, _ := p.first(text)
			out[s.Key] = v
			return
		}
	case SubAll:
		if vals := collect(s.Patterns, text); len(vals) > 0 {
			out[s.Key] = vals
		}
	case SubFlag:
		if anyMatch(s.Patterns, text) {
			out[s.Key] = s.Value
		}
	case SubBool:
		out[s.Key] = anyMatch(s.Patterns, text)
	}
}

// Rule describes how one spec field is extracted from document text.
type Rule struct {
	Name     string
	Policy   Policy
	Patterns []Pattern
	Subs     []Sub
	// Default replaces an empty structured mapping.
	Default entity.Attributes
	// Sentinel overrides "Not specified" for first-match fields.
	Sentinel string
	// Trim strips surrounding whitespace from a first-match result.
	Trim bool
}

// Scalar evaluates a first-match rule.
func (r Rule) Scalar(text string) string {
	for _, p := range r.Patterns {
		if v, ok := p.first(text); ok {
			if r.Trim {
				return strings.TrimSpace(v)
			}
			return v
		}
	}
	if r.Sentinel != "" {
		return r.Sentinel
	}
	return constants.NotSpecified
}

// List evaluates a collection rule.
func (r Rule) List(text string) []string {
	if vals := collect(r.Patterns, text); len(vals) > 0 {
		return vals
	}
	return constants.NotSpecifiedList()
}

// Attrs evaluates a structured rule.
func (r Rule) Attrs(text string) entity.Attributes {
	out := entity.Attributes{}
	for _, s := range r.Subs {
		s.apply(text, out)
	}
	if len(out) == 0 && r.Default != nil {
		return r.Default.Clone()
	}
	return out
}

// Eval evaluates the rule according to its policy.
func (r Rule) Eval(text string) any {
	switch r.Policy {
	case Collection:
		return r.List(text)
	case Structured:
		return r.Attrs(text)
	default:
		return r.Scalar(text)
	}
}

func collect(patterns []Pattern, text string) []string {
	var out []string
	seen := make(map[string]struct{})
	for _, p := range patterns {
		for _, v := range p.all(text) {
			if v == "" {
				continue
			}
			if _, dup := seen[v]; dup {
				continue
			}
			seen[v] = struct{}{}
			out = append(out, v)
		}
	}
	return out
}

func anyMatch(patterns []Pattern, text string) bool {
	for _, p := range patterns {
		if p.Re.MatchString(text) {
			return true
		}
	}
	return false
}

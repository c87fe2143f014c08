package schema

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"regexp"
	"sort"
	"strconv"
	"strings"

	"github.com/santhosh-tekuri/jsonschema/v5"

	"github.com/joseph-ayodele/laptop-specs/internal/common"
)

// Path locates a value inside the validated collection. Array indices are
// decimal strings.
type Path []string

func (p Path) String() string {
	return strings.Join(p, " -> ")
}

// Violation is one schema failure.
type Violation struct {
	Path    Path   `json:"path"`
	Message string `json:"message"`
}

func (v Violation) String() string {
	if len(v.Path) == 0 {
		return v.Message
	}
	return v.Path.String() + ": " + v.Message
}

// Result is the outcome of validating a collection.
type Result struct {
	Valid  bool        `json:"valid"`
	Errors []Violation `json:"errors"`
}

// Err returns nil for a valid result and an AppError wrapping
// common.ErrValidation otherwise.
func (r Result) Err() error {
	if r.Valid {
		return nil
	}
	return common.NewAppError("SCHEMA_INVALID",
		fmt.Sprintf("%d schema violation(s)", len(r.Errors)), common.ErrValidation)
}

// Validator checks document collections against a Schema. It never mutates or
// repairs its input.
type Validator struct {
	schema *Schema
	logger *slog.Logger
}

func NewValidator(s *Schema, logger *slog.Logger) *Validator {
	if logger == nil {
		logger = slog.Default()
	}
	return &Validator{schema: s, logger: logger}
}

// Validate runs the compiled schema over docs and collects every violation,
// ordered by path. docs may be any JSON-serialisable value; it is round-tripped
// to generic JSON first.
func (v *Validator) Validate(docs any) Result {
	instance, err := toGeneric(docs)
	if err != nil {
		return Result{Errors: []Violation{{Path: Path{}, Message: err.Error()}}}
	}

	out := []Violation{}
	if err := v.schema.compiled.Validate(instance); err != nil {
		var ve *jsonschema.ValidationError
		if !errors.As(err, &ve) {
			return Result{Errors: []Violation{{Path: Path{}, Message: err.Error()}}}
		}
		collectLeaves(ve, &out)
	}
	sort.SliceStable(out, func(i, j int) bool {
		if c := comparePaths(out[i].Path, out[j].Path); c != 0 {
			return c < 0
		}
		return out[i].Message < out[j].Message
	})

	if len(out) > 0 {
		v.logger.Debug("schema.validate.failed", "schema", v.schema.Name, "violations", len(out))
	}
	return Result{Valid: len(out) == 0, Errors: out}
}

// missingProperty matches one quoted name of a "missing properties: 'a', 'b'" message.
var missingProperty = regexp.MustCompile(`'((?:[^'\\]|\\.)*)'`)

// collectLeaves flattens the error tree. A required failure naming several
// properties becomes one violation per property.
func collectLeaves(ve *jsonschema.ValidationError, out *[]Violation) {
	if len(ve.Causes) > 0 {
		for _, c := range ve.Causes {
			collectLeaves(c, out)
		}
		return
	}

	path := pointerPath(ve.InstanceLocation)
	if strings.HasSuffix(ve.KeywordLocation, "/required") {
		if names := missingProperty.FindAllStringSubmatch(ve.Message, -1); len(names) > 0 {
			for _, m := range names {
				key := strings.ReplaceAll(m[1], `\'`, `'`)
				*out = append(*out, Violation{Path: path, Message: fmt.Sprintf("%q is a required property", key)})
			}
			return
		}
	}
	*out = append(*out, Violation{Path: path, Message: ve.Message})
}

// comparePaths orders paths segment by segment, array indices numerically.
func comparePaths(a, b Path) int {
	for i := 0; i < len(a) && i < len(b); i++ {
		if a[i] == b[i] {
			continue
		}
		ai, aerr := strconv.Atoi(a[i])
		bi, berr := strconv.Atoi(b[i])
		if aerr == nil && berr == nil {
			if ai < bi {
				return -1
			}
			return 1
		}
		return strings.Compare(a[i], b[i])
	}
	return len(a) - len(b)
}

// pointerPath turns a JSON pointer ("/0/display/1") into a Path.
func pointerPath(ptr string) Path {
	ptr = strings.TrimPrefix(ptr, "/")
	if ptr == "" {
		return Path{}
	}
	segs := strings.Split(ptr, "/")
	for i, s := range segs {
		segs[i] = strings.NewReplacer("~1", "/", "~0", "~").Replace(s)
	}
	return Path(segs)
}

func toGeneric(v any) (any, error) {
	b, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("encode instance: %w", err)
	}
	var out any
	if err := json.Unmarshal(b, &out); err != nil {
		return nil, fmt.Errorf("decode instance: %w", err)
	}
	return out, nil
}

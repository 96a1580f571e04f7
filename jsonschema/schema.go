package jsonschema

import (
	lru "github.com/hashicorp/golang-lru/v2"
	"golang.org/x/sync/singleflight"
)

const (
	// DefaultMaxReferenceDepth bounds chained $ref expansions during a single
	// Validate call. Generous enough for legitimate recursive schemas over
	// deeply nested values, small enough to fail cleanly instead of blowing
	// the stack on a base-case-free cycle.
	DefaultMaxReferenceDepth = 256

	refCacheSize = 128
)

// Schema is a compiled schema document ready for validation. The root rule
// tree is compiled once at construction; $ref targets are compiled on first
// use and cached. A Schema is immutable after construction and safe for
// concurrent use.
type Schema struct {
	doc         map[string]any
	formats     map[string]FormatFunc
	maxRefDepth int

	root conjunction

	refCache *lru.Cache[string, conjunction]
	refGroup singleflight.Group
}

// Option configures a Schema during construction.
type Option func(*Schema)

// WithFormat registers an additional named format, or overrides a built-in.
func WithFormat(name string, fn FormatFunc) Option {
	return func(s *Schema) {
		s.formats[name] = fn
	}
}

// WithMaxReferenceDepth overrides the $ref expansion ceiling.
func WithMaxReferenceDepth(depth int) Option {
	return func(s *Schema) {
		s.maxRefDepth = depth
	}
}

// NewSchema compiles a decoded schema document. Compilation never fails:
// malformed constructs become rules that report the problem as a validation
// error, so all failures surface as data on the Result.
func NewSchema(doc map[string]any, opts ...Option) *Schema {
	s := &Schema{
		doc:         doc,
		formats:     defaultFormats(),
		maxRefDepth: DefaultMaxReferenceDepth,
	}
	for _, opt := range opts {
		opt(s)
	}

	// Never fails for a positive fixed size.
	s.refCache, _ = lru.New[string, conjunction](refCacheSize)
	s.root = s.compileNode(doc)
	return s
}

// Validate evaluates the schema against a decoded JSON value.
func (s *Schema) Validate(v any) Result {
	st := &state{maxRefDepth: s.maxRefDepth}
	return s.root.eval(v, st)
}

// Validate evaluates a decoded JSON value against a decoded schema document.
// It is shorthand for NewSchema(doc).Validate(v); construct a Schema
// explicitly to reuse the compiled rule tree across calls.
func Validate(v any, doc map[string]any) Result {
	return NewSchema(doc).Validate(v)
}

// refTarget returns the compiled rules for a resolved reference target,
// compiling on first use. Concurrent first validations of the same reference
// are collapsed to a single compilation.
func (s *Schema) refTarget(ref string, target map[string]any) conjunction {
	if rules, ok := s.refCache.Get(ref); ok {
		return rules
	}
	compiled, _, _ := s.refGroup.Do(ref, func() (any, error) {
		if rules, ok := s.refCache.Get(ref); ok {
			return rules, nil
		}
		rules := s.compileNode(target)
		s.refCache.Add(ref, rules)
		return rules, nil
	})
	return compiled.(conjunction)
}

// Title returns the schema's title annotation, if any.
func (s *Schema) Title() string {
	title, _ := s.doc["title"].(string)
	return title
}

// Description returns the schema's description annotation, if any.
func (s *Schema) Description() string {
	desc, _ := s.doc["description"].(string)
	return desc
}

// Types returns the top-level type constraint as a list of type names,
// whether the document used the single-name or list form.
func (s *Schema) Types() []string {
	switch t := s.doc["type"].(type) {
	case string:
		return []string{t}
	case []any:
		names := make([]string, 0, len(t))
		for _, name := range t {
			if str, ok := name.(string); ok {
				names = append(names, str)
			}
		}
		return names
	default:
		return nil
	}
}

// Properties returns the top-level properties object, or nil when absent.
func (s *Schema) Properties() map[string]any {
	props, _ := s.doc["properties"].(map[string]any)
	return props
}

package jsonschema

import (
	"math"
	"regexp"
	"sort"
	"unicode/utf8"
)

// compileNode turns one schema object into the conjunction of rules for the
// recognised keywords it carries. Keywords are compiled in a fixed order so
// that evaluation, and therefore the error list, is deterministic.
// Unrecognised keys and malformed payloads for optional keywords are
// silently ignored, matching the permissive reading of draft-4 documents.
func (s *Schema) compileNode(node map[string]any) conjunction {
	var rules conjunction

	if ref, ok := node["$ref"].(string); ok {
		rules = append(rules, s.compileRef(ref))
	}
	if t, ok := node["type"]; ok {
		rules = append(rules, compileType(t))
	}
	if raw, ok := node["allOf"].([]any); ok {
		rules = append(rules, s.compileAllOf(raw)...)
	}
	if raw, ok := node["anyOf"].([]any); ok {
		rules = append(rules, &anyOfRule{alts: s.compileAlternatives(raw)})
	}
	if raw, ok := node["oneOf"].([]any); ok {
		rules = append(rules, &oneOfRule{alts: s.compileAlternatives(raw)})
	}
	if sub, ok := node["not"].(map[string]any); ok {
		rules = append(rules, &notRule{sub: s.compileNode(sub)})
	}
	if values, ok := node["enum"].([]any); ok {
		rules = append(rules, &enumRule{allowed: values})
	}
	if limit, ok := intKeyword(node, "maxLength"); ok {
		rules = append(rules, &maxLengthRule{limit: limit})
	}
	if limit, ok := intKeyword(node, "minLength"); ok {
		rules = append(rules, &minLengthRule{limit: limit})
	}
	if pattern, ok := node["pattern"].(string); ok {
		rules = append(rules, compilePattern(pattern))
	}
	if divisor, ok := numberKeyword(node, "multipleOf"); ok {
		rules = append(rules, &multipleOfRule{divisor: divisor})
	}
	if bound, ok := numberKeyword(node, "minimum"); ok {
		exclusive, _ := node["exclusiveMinimum"].(bool)
		rules = append(rules, &minimumRule{bound: bound, exclusive: exclusive})
	}
	if bound, ok := numberKeyword(node, "maximum"); ok {
		exclusive, _ := node["exclusiveMaximum"].(bool)
		rules = append(rules, &maximumRule{bound: bound, exclusive: exclusive})
	}
	if limit, ok := intKeyword(node, "minItems"); ok {
		rules = append(rules, &minItemsRule{limit: limit})
	}
	if limit, ok := intKeyword(node, "maxItems"); ok {
		rules = append(rules, &maxItemsRule{limit: limit})
	}
	if unique, ok := node["uniqueItems"].(bool); ok && unique {
		rules = append(rules, &uniqueItemsRule{})
	}
	if items, ok := node["items"]; ok {
		if r := s.compileItems(items, node["additionalItems"]); r != nil {
			rules = append(rules, r)
		}
	}
	if limit, ok := intKeyword(node, "maxProperties"); ok {
		rules = append(rules, &maxPropertiesRule{limit: limit})
	}
	if limit, ok := intKeyword(node, "minProperties"); ok {
		rules = append(rules, &minPropertiesRule{limit: limit})
	}
	if raw, ok := node["required"].([]any); ok {
		if r := compileRequired(raw); r != nil {
			rules = append(rules, r)
		}
	}
	if r := s.compileProperties(node); r != nil {
		rules = append(rules, r)
	}
	if deps, ok := node["dependencies"].(map[string]any); ok {
		rules = append(rules, s.compileDependencies(deps))
	}
	if format, ok := node["format"].(string); ok {
		rules = append(rules, s.compileFormat(format))
	}

	return rules
}

// compileRef resolves the reference against the root document up front (the
// pointer walk is static) but defers compiling the target until evaluation,
// so self-referencing schemas do not recurse at compile time.
func (s *Schema) compileRef(ref string) rule {
	target, err := resolveReference(s.doc, ref)
	if err != nil {
		return &invalidRule{err: err}
	}
	return &refRule{ref: ref, target: target, schema: s}
}

type refRule struct {
	ref    string
	target map[string]any
	schema *Schema
}

func (r *refRule) eval(v any, st *state) Result {
	if st.refDepth >= st.maxRefDepth {
		return invalid(&ReferenceDepthError{Reference: r.ref, Depth: st.maxRefDepth})
	}
	rules := r.schema.refTarget(r.ref, r.target)

	st.refDepth++
	res := rules.eval(v, st)
	st.refDepth--
	return res
}

func compileType(payload any) rule {
	switch t := payload.(type) {
	case string:
		return &typeRule{name: t}
	case []any:
		alts := make([]conjunction, 0, len(t))
		for _, name := range t {
			str, ok := name.(string)
			if !ok {
				return &invalidRule{err: &InvalidTypeError{}}
			}
			alts = append(alts, conjunction{&typeRule{name: str}})
		}
		return &anyOfRule{alts: alts}
	default:
		return &invalidRule{err: &InvalidTypeError{}}
	}
}

type typeRule struct {
	name string
}

func (r *typeRule) eval(v any, _ *state) Result {
	if matchesType(v, r.name) {
		return valid()
	}
	return invalid(&UnmatchingTypeError{Expected: r.name})
}

// compileAllOf flattens each sub-schema's conjunction into the parent, so
// every sub-rule is evaluated and every violation reported.
func (s *Schema) compileAllOf(raw []any) conjunction {
	var rules conjunction
	for _, sub := range raw {
		if node, ok := sub.(map[string]any); ok {
			rules = append(rules, s.compileNode(node))
		}
	}
	return rules
}

func (s *Schema) compileAlternatives(raw []any) []conjunction {
	alts := make([]conjunction, 0, len(raw))
	for _, sub := range raw {
		if node, ok := sub.(map[string]any); ok {
			alts = append(alts, s.compileNode(node))
		}
	}
	return alts
}

type enumRule struct {
	allowed []any
}

func (r *enumRule) eval(v any, _ *state) Result {
	for _, allowed := range r.allowed {
		if jsonEqual(v, allowed) {
			return valid()
		}
	}
	return invalid(&EnumError{Allowed: r.allowed})
}

type maxLengthRule struct {
	limit int
}

func (r *maxLengthRule) eval(v any, _ *state) Result {
	str, ok := v.(string)
	if !ok {
		return valid()
	}
	if n := utf8.RuneCountInString(str); n > r.limit {
		return invalid(&MaxLengthError{Limit: r.limit, Length: n})
	}
	return valid()
}

type minLengthRule struct {
	limit int
}

func (r *minLengthRule) eval(v any, _ *state) Result {
	str, ok := v.(string)
	if !ok {
		return valid()
	}
	if n := utf8.RuneCountInString(str); n < r.limit {
		return invalid(&MinLengthError{Limit: r.limit, Length: n})
	}
	return valid()
}

func compilePattern(pattern string) rule {
	re, err := regexp.Compile(pattern)
	if err != nil {
		return &invalidRule{err: &InvalidRegexError{Pattern: pattern}}
	}
	return &patternRule{pattern: pattern, re: re}
}

type patternRule struct {
	pattern string
	re      *regexp.Regexp
}

func (r *patternRule) eval(v any, _ *state) Result {
	str, ok := v.(string)
	if !ok {
		return valid()
	}
	// Unanchored: a match anywhere in the string satisfies the pattern.
	if r.re.MatchString(str) {
		return valid()
	}
	return invalid(&PatternError{Pattern: r.pattern})
}

type multipleOfRule struct {
	divisor float64
}

func (r *multipleOfRule) eval(v any, _ *state) Result {
	num, ok := asNumber(v)
	if !ok {
		return valid()
	}
	// Non-positive divisors are ignored rather than rejected. Dubious, but
	// changing it would alter results for existing schemas.
	if r.divisor <= 0 {
		return valid()
	}
	if !isWholeNumber(num / r.divisor) {
		return invalid(&MultipleOfError{Divisor: r.divisor})
	}
	return valid()
}

type minimumRule struct {
	bound     float64
	exclusive bool
}

func (r *minimumRule) eval(v any, _ *state) Result {
	num, ok := asNumber(v)
	if !ok {
		return valid()
	}
	if num > r.bound || (!r.exclusive && num == r.bound) {
		return valid()
	}
	return invalid(&MinimumError{Bound: r.bound, Exclusive: r.exclusive})
}

type maximumRule struct {
	bound     float64
	exclusive bool
}

func (r *maximumRule) eval(v any, _ *state) Result {
	num, ok := asNumber(v)
	if !ok {
		return valid()
	}
	if num < r.bound || (!r.exclusive && num == r.bound) {
		return valid()
	}
	return invalid(&MaximumError{Bound: r.bound, Exclusive: r.exclusive})
}

type minItemsRule struct {
	limit int
}

func (r *minItemsRule) eval(v any, _ *state) Result {
	arr, ok := v.([]any)
	if !ok {
		return valid()
	}
	if len(arr) < r.limit {
		return invalid(&MinItemsError{Limit: r.limit, Count: len(arr)})
	}
	return valid()
}

type maxItemsRule struct {
	limit int
}

func (r *maxItemsRule) eval(v any, _ *state) Result {
	arr, ok := v.([]any)
	if !ok {
		return valid()
	}
	if len(arr) > r.limit {
		return invalid(&MaxItemsError{Limit: r.limit, Count: len(arr)})
	}
	return valid()
}

type uniqueItemsRule struct{}

func (r *uniqueItemsRule) eval(v any, _ *state) Result {
	arr, ok := v.([]any)
	if !ok {
		return valid()
	}
	for i := 0; i < len(arr); i++ {
		for j := i + 1; j < len(arr); j++ {
			if uniqueEqual(arr[i], arr[j]) {
				return invalid(&UniqueItemsError{})
			}
		}
	}
	return valid()
}

// additionalPolicy is the three-way semantics shared by additionalItems and
// additionalProperties: allow everything, forbid everything, or validate
// against a schema.
type additionalPolicy struct {
	forbid bool
	rules  conjunction // nil unless the payload was a schema
}

func compileAdditional(s *Schema, payload any) additionalPolicy {
	switch p := payload.(type) {
	case bool:
		return additionalPolicy{forbid: !p}
	case map[string]any:
		return additionalPolicy{rules: s.compileNode(p)}
	default:
		// Absent or malformed: everything passes.
		return additionalPolicy{}
	}
}

func (p additionalPolicy) check(v any, on Kind, st *state) Result {
	if p.forbid {
		return invalid(&AdditionalPropertiesError{On: on})
	}
	if p.rules != nil {
		return p.rules.eval(v, st)
	}
	return valid()
}

func (s *Schema) compileItems(items, additional any) rule {
	switch payload := items.(type) {
	case map[string]any:
		return &itemsRule{elem: s.compileNode(payload)}
	case []any:
		schemas := make([]conjunction, 0, len(payload))
		for _, sub := range payload {
			node, ok := sub.(map[string]any)
			if !ok {
				// A positional slot without a usable schema constrains
				// nothing.
				schemas = append(schemas, nil)
				continue
			}
			schemas = append(schemas, s.compileNode(node))
		}
		return &tupleItemsRule{schemas: schemas, additional: compileAdditional(s, additional)}
	default:
		return nil
	}
}

// itemsRule validates every array element against a single schema.
type itemsRule struct {
	elem conjunction
}

func (r *itemsRule) eval(v any, st *state) Result {
	arr, ok := v.([]any)
	if !ok {
		return valid()
	}
	results := make([]Result, len(arr))
	for i, elem := range arr {
		results[i] = r.elem.eval(elem, st)
	}
	return merge(results...)
}

// tupleItemsRule validates array elements positionally; elements beyond the
// items list fall under the additionalItems policy.
type tupleItemsRule struct {
	schemas    []conjunction
	additional additionalPolicy
}

func (r *tupleItemsRule) eval(v any, st *state) Result {
	arr, ok := v.([]any)
	if !ok {
		return valid()
	}
	var results []Result
	for i, elem := range arr {
		if i < len(r.schemas) {
			if r.schemas[i] != nil {
				results = append(results, r.schemas[i].eval(elem, st))
			}
			continue
		}
		results = append(results, r.additional.check(elem, KindArray, st))
	}
	return merge(results...)
}

type maxPropertiesRule struct {
	limit int
}

func (r *maxPropertiesRule) eval(v any, _ *state) Result {
	obj, ok := v.(map[string]any)
	if !ok {
		return valid()
	}
	if len(obj) > r.limit {
		return invalid(&MaxPropertiesError{Limit: r.limit, Count: len(obj)})
	}
	return valid()
}

type minPropertiesRule struct {
	limit int
}

func (r *minPropertiesRule) eval(v any, _ *state) Result {
	obj, ok := v.(map[string]any)
	if !ok {
		return valid()
	}
	if len(obj) < r.limit {
		return invalid(&MinPropertiesError{Limit: r.limit, Count: len(obj)})
	}
	return valid()
}

func compileRequired(raw []any) rule {
	keys := make([]string, 0, len(raw))
	for _, k := range raw {
		str, ok := k.(string)
		if !ok {
			return nil
		}
		keys = append(keys, str)
	}
	return &requiredRule{keys: keys}
}

// requiredRule produces a single error naming the full required list when
// any listed key is absent.
type requiredRule struct {
	keys []string
}

func (r *requiredRule) eval(v any, _ *state) Result {
	obj, ok := v.(map[string]any)
	if !ok {
		return valid()
	}
	for _, k := range r.keys {
		if _, present := obj[k]; !present {
			return invalid(&RequiredError{Required: r.keys})
		}
	}
	return valid()
}

// compileProperties builds the combined properties / patternProperties /
// additionalProperties rule. It returns nil when none of the three keywords
// is present.
func (s *Schema) compileProperties(node map[string]any) rule {
	props, hasProps := node["properties"].(map[string]any)
	patterns, hasPatterns := node["patternProperties"].(map[string]any)
	_, hasAdditional := node["additionalProperties"]
	if !hasProps && !hasPatterns && !hasAdditional {
		return nil
	}

	r := &propertiesRule{
		props:      make(map[string]conjunction, len(props)),
		additional: compileAdditional(s, node["additionalProperties"]),
	}

	for name, sub := range props {
		if subNode, ok := sub.(map[string]any); ok {
			r.props[name] = s.compileNode(subNode)
		}
	}

	for _, pattern := range sortedKeys(patterns) {
		pp := patternProperty{pattern: pattern}
		if re, err := regexp.Compile(pattern); err == nil {
			pp.re = re
		}
		if subNode, ok := patterns[pattern].(map[string]any); ok {
			pp.rules = s.compileNode(subNode)
		}
		r.patterns = append(r.patterns, pp)
	}

	return r
}

type patternProperty struct {
	pattern string
	re      *regexp.Regexp // nil when the pattern did not compile
	rules   conjunction
}

type propertiesRule struct {
	props      map[string]conjunction
	patterns   []patternProperty
	additional additionalPolicy
}

func (r *propertiesRule) eval(v any, st *state) Result {
	obj, ok := v.(map[string]any)
	if !ok {
		return valid()
	}

	var results []Result

	// A malformed patternProperties regex makes property validation
	// unreliable, so it is reported once per evaluated object.
	for _, pp := range r.patterns {
		if pp.re == nil {
			results = append(results, invalid(&InvalidRegexError{Pattern: pp.pattern}))
		}
	}

	// Keys are walked in sorted order so the error list is deterministic.
	for _, key := range sortedKeys(obj) {
		value := obj[key]
		matched := false

		if rules, present := r.props[key]; present {
			matched = true
			results = append(results, rules.eval(value, st))
		}
		for _, pp := range r.patterns {
			// Unanchored, like pattern: a substring match claims the key.
			if pp.re != nil && pp.re.MatchString(key) {
				matched = true
				results = append(results, pp.rules.eval(value, st))
			}
		}

		if !matched {
			results = append(results, r.additional.check(value, KindObject, st))
		}
	}

	return merge(results...)
}

func (s *Schema) compileDependencies(deps map[string]any) rule {
	r := &dependenciesRule{}
	for _, key := range sortedKeys(deps) {
		d := dependency{property: key}
		switch payload := deps[key].(type) {
		case map[string]any:
			d.schema = s.compileNode(payload)
		case []any:
			for _, name := range payload {
				if str, ok := name.(string); ok {
					d.required = append(d.required, str)
				}
			}
		default:
			continue
		}
		r.deps = append(r.deps, d)
	}
	return r
}

type dependency struct {
	property string
	schema   conjunction // schema dependency: the whole value must validate
	required []string    // property dependency: these keys must be present
}

type dependenciesRule struct {
	deps []dependency
}

func (r *dependenciesRule) eval(v any, st *state) Result {
	obj, ok := v.(map[string]any)
	if !ok {
		return valid()
	}

	var results []Result
	for _, d := range r.deps {
		if _, present := obj[d.property]; !present {
			continue
		}
		if d.schema != nil {
			results = append(results, d.schema.eval(v, st))
			continue
		}
		for _, name := range d.required {
			if _, present := obj[name]; !present {
				results = append(results, invalid(&DependencyMissingError{
					Property:   d.property,
					Dependency: name,
				}))
			}
		}
	}
	return merge(results...)
}

func (s *Schema) compileFormat(name string) rule {
	fn, ok := s.formats[name]
	if !ok {
		return &invalidRule{err: &FormatUnsupportedError{Format: name}}
	}
	return &formatRule{name: name, fn: fn}
}

type formatRule struct {
	name string
	fn   FormatFunc
}

func (r *formatRule) eval(v any, _ *state) Result {
	if r.fn(v) {
		return valid()
	}
	return invalid(&FormatError{Format: r.name})
}

func intKeyword(node map[string]any, key string) (int, bool) {
	num, ok := numberKeyword(node, key)
	if !ok {
		return 0, false
	}
	return int(num), true
}

func numberKeyword(node map[string]any, key string) (float64, bool) {
	raw, present := node[key]
	if !present {
		return 0, false
	}
	return asNumber(raw)
}

func isWholeNumber(f float64) bool {
	return math.Trunc(f) == f
}

func sortedKeys(m map[string]any) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

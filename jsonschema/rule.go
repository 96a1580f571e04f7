package jsonschema

// rule is a compiled, side-effect-free check of one schema constraint.
// Rules never mutate the value or themselves; st carries per-call evaluation
// state (the $ref expansion depth), so a compiled rule tree is safe for
// concurrent use.
type rule interface {
	eval(v any, st *state) Result
}

// state is the per-Validate evaluation state.
type state struct {
	refDepth    int
	maxRefDepth int
}

// conjunction evaluates every rule and concatenates the outcomes, so all
// violations are reported even after an earlier rule has failed.
type conjunction []rule

func (c conjunction) eval(v any, st *state) Result {
	results := make([]Result, len(c))
	for i, r := range c {
		results[i] = r.eval(v, st)
	}
	return merge(results...)
}

// invalidRule fails unconditionally with a fixed error. It is how
// compilation failures (malformed type payloads, bad regexes, unresolvable
// references) surface as data rather than aborting validation.
type invalidRule struct {
	err Error
}

func (r *invalidRule) eval(_ any, _ *state) Result {
	return invalid(r.err)
}

// anyOfRule passes iff at least one alternative is fully valid. Sub-error
// detail is deliberately collapsed into a single aggregate error.
type anyOfRule struct {
	alts []conjunction
}

func (r *anyOfRule) eval(v any, st *state) Result {
	for _, alt := range r.alts {
		if alt.eval(v, st).Valid() {
			return valid()
		}
	}
	return invalid(&AnyOfError{Alternatives: len(r.alts)})
}

// oneOfRule passes iff exactly one alternative is valid.
type oneOfRule struct {
	alts []conjunction
}

func (r *oneOfRule) eval(v any, st *state) Result {
	passed := 0
	for _, alt := range r.alts {
		if alt.eval(v, st).Valid() {
			passed++
		}
	}
	if passed == 1 {
		return valid()
	}
	return invalid(&OneOfError{Passed: passed})
}

// notRule passes iff the sub-schema fails.
type notRule struct {
	sub conjunction
}

func (r *notRule) eval(v any, st *state) Result {
	if r.sub.eval(v, st).Valid() {
		return invalid(&NotError{})
	}
	return valid()
}

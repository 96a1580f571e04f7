package jsonschema

// Result is the outcome of evaluating a value against a schema. A valid
// result carries no errors; an invalid one carries every violation found, in
// evaluation order, without deduplication.
type Result struct {
	errs []Error
}

// Valid reports whether the value satisfied the schema.
func (r Result) Valid() bool {
	return len(r.errs) == 0
}

// Errors returns the violations in the order they were found. It returns nil
// for a valid result.
func (r Result) Errors() []Error {
	return r.errs
}

func valid() Result {
	return Result{}
}

func invalid(errs ...Error) Result {
	return Result{errs: errs}
}

// merge concatenates results: the outcome is valid iff every input is valid,
// otherwise it carries all sub-errors in input order.
func merge(results ...Result) Result {
	var errs []Error
	for _, r := range results {
		errs = append(errs, r.errs...)
	}
	return Result{errs: errs}
}

package runner

import (
	"time"

	"github.com/andyballingall/json-schema-validator/jsonschema"
)

// Expectation records what a test suite expects from a document.
type Expectation string

const (
	// ExpectValid marks documents that must validate (the pass directory,
	// and every document given to ValidateFiles).
	ExpectValid Expectation = "pass"
	// ExpectInvalid marks documents that must not validate.
	ExpectInvalid Expectation = "fail"
)

// DocResult is the outcome for a single document.
type DocResult struct {
	Path   string
	Expect Expectation
	Result jsonschema.Result
	Err    error // set when the document could not be read or parsed
}

// Ok reports whether the document met its expectation.
func (d DocResult) Ok() bool {
	if d.Err != nil {
		return false
	}
	if d.Expect == ExpectInvalid {
		return !d.Result.Valid()
	}
	return d.Result.Valid()
}

// Report collects the outcomes of a run.
type Report struct {
	StartTime time.Time
	EndTime   time.Time
	Results   []DocResult
}

// Ok reports whether every document met its expectation.
func (r *Report) Ok() bool {
	for _, res := range r.Results {
		if !res.Ok() {
			return false
		}
	}
	return true
}

// Failed returns the results that did not meet their expectation.
func (r *Report) Failed() []DocResult {
	var failed []DocResult
	for _, res := range r.Results {
		if !res.Ok() {
			failed = append(failed, res)
		}
	}
	return failed
}

// Passed returns the results that met their expectation.
func (r *Report) Passed() []DocResult {
	var passed []DocResult
	for _, res := range r.Results {
		if res.Ok() {
			passed = append(passed, res)
		}
	}
	return passed
}

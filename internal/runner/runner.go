// Package runner executes validation runs: one schema against one or more
// JSON documents, or against a pass/fail test-document suite.
package runner

import (
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"runtime"
	"sort"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/andyballingall/json-schema-validator/jsonschema"
)

// errStopRun aborts remaining suite workers after a failed expectation when
// the Runner is in fail-fast mode.
var errStopRun = errors.New("stopping after failed document")

// Runner validates documents against a compiled schema with a pool of
// workers.
type Runner struct {
	schema     *jsonschema.Schema
	numWorkers int
	failFast   bool
}

// New creates a Runner for the given compiled schema.
func New(s *jsonschema.Schema) *Runner {
	return &Runner{
		schema:     s,
		numWorkers: runtime.GOMAXPROCS(0),
	}
}

// SetNumWorkers controls how many documents are validated in parallel.
func (r *Runner) SetNumWorkers(n int) {
	if n > 0 {
		r.numWorkers = n
	}
}

// SetFailFast makes RunSuite stop scheduling documents once one has failed
// its expectation. The report then covers only the documents validated
// before the stop.
func (r *Runner) SetFailFast(on bool) {
	r.failFast = on
}

// ValidateFiles validates each document file against the schema. Every
// document is expected to be valid. File paths appear in the report in the
// order given, regardless of worker scheduling.
func (r *Runner) ValidateFiles(ctx context.Context, paths []string) (*Report, error) {
	report := &Report{StartTime: time.Now()}
	defer func() { report.EndTime = time.Now() }()

	report.Results = make([]DocResult, len(paths))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(r.numWorkers)

	for i, path := range paths {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			report.Results[i] = r.validateFile(path, ExpectValid)
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return report, nil
}

// RunSuite validates the schema against the pass/ and fail/ document
// directories under dir: pass documents must validate, fail documents must
// not.
func (r *Runner) RunSuite(ctx context.Context, dir string) (*Report, error) {
	report := &Report{StartTime: time.Now()}
	defer func() { report.EndTime = time.Now() }()

	var mu sync.Mutex
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(r.numWorkers)

	for _, expect := range []Expectation{ExpectValid, ExpectInvalid} {
		docs, err := suiteDocuments(dir, expect)
		if err != nil {
			return nil, err
		}
		for _, path := range docs {
			g.Go(func() error {
				if err := ctx.Err(); err != nil {
					return err
				}
				res := r.validateFile(path, expect)
				mu.Lock()
				report.Results = append(report.Results, res)
				mu.Unlock()
				if r.failFast && !res.Ok() {
					return errStopRun
				}
				return nil
			})
		}
	}

	if err := g.Wait(); err != nil && !errors.Is(err, errStopRun) {
		return nil, err
	}

	sort.Slice(report.Results, func(i, j int) bool {
		return report.Results[i].Path < report.Results[j].Path
	})
	return report, nil
}

func (r *Runner) validateFile(path string, expect Expectation) DocResult {
	res := DocResult{Path: path, Expect: expect}

	data, err := os.ReadFile(path)
	if err != nil {
		res.Err = &CannotReadDocumentError{Path: path}
		return res
	}

	var value any
	if err := json.Unmarshal(data, &value); err != nil {
		res.Err = &InvalidDocumentError{Path: path}
		return res
	}

	res.Result = r.schema.Validate(value)
	if expect == ExpectInvalid && res.Result.Valid() {
		res.Err = &UnexpectedlyValidError{Path: path}
	}
	return res
}

// suiteDocuments lists the .json documents in the pass or fail directory, in
// filename order.
func suiteDocuments(dir string, expect Expectation) ([]string, error) {
	docDir := filepath.Join(dir, string(expect))

	entries, err := os.ReadDir(docDir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, &SuiteDirMissingError{Path: docDir, Expect: expect}
		}
		return nil, err
	}

	var docs []string
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		if filepath.Ext(entry.Name()) == ".json" {
			docs = append(docs, filepath.Join(docDir, entry.Name()))
		}
	}
	return docs, nil
}

package report

import (
	"bytes"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tidwall/gjson"

	"github.com/andyballingall/json-schema-validator/internal/runner"
	"github.com/andyballingall/json-schema-validator/jsonschema"
)

func sampleReport(t *testing.T) *runner.Report {
	t.Helper()

	schema := jsonschema.NewSchema(map[string]any{
		"type":     "object",
		"required": []any{"name"},
	})

	good := schema.Validate(map[string]any{"name": "Eggs"})
	require.True(t, good.Valid())
	bad := schema.Validate(map[string]any{})
	require.False(t, bad.Valid())

	start := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)
	return &runner.Report{
		StartTime: start,
		EndTime:   start.Add(25 * time.Millisecond),
		Results: []runner.DocResult{
			{Path: "docs/good.json", Expect: runner.ExpectValid, Result: good},
			{Path: "docs/bad.json", Expect: runner.ExpectValid, Result: bad},
		},
	}
}

func TestTextReporter(t *testing.T) {
	t.Parallel()

	t.Run("plain output", func(t *testing.T) {
		t.Parallel()
		var buf bytes.Buffer
		tr := &TextReporter{}
		require.NoError(t, tr.Write(&buf, sampleReport(t)))

		out := buf.String()
		assert.Contains(t, out, "[PASS] docs/good.json")
		assert.Contains(t, out, "[FAIL] docs/bad.json")
		assert.Contains(t, out, "required properties")
		assert.Contains(t, out, "1 passed, 1 failed")
		assert.NotContains(t, out, "\033[")
	})

	t.Run("coloured output", func(t *testing.T) {
		t.Parallel()
		var buf bytes.Buffer
		tr := &TextReporter{UseColour: true}
		require.NoError(t, tr.Write(&buf, sampleReport(t)))
		assert.Contains(t, buf.String(), "\033[31m")
	})
}

func TestJSONReporter(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	jr := &JSONReporter{}
	require.NoError(t, jr.Write(&buf, sampleReport(t)))

	out := buf.String()
	require.True(t, gjson.Valid(out))
	assert.False(t, gjson.Get(out, "ok").Bool())
	assert.Equal(t, int64(2), gjson.Get(out, "results.#").Int())
	assert.Equal(t, "docs/bad.json", gjson.Get(out, "results.1.path").String())
	assert.Equal(t, "required", gjson.Get(out, "results.1.errors.0.code").String())
	assert.True(t, gjson.Get(out, "results.0.ok").Bool())
}

func TestDescribeCoversEveryErrorKind(t *testing.T) {
	t.Parallel()

	errs := []jsonschema.Error{
		&jsonschema.UnmatchingTypeError{Expected: "string"},
		&jsonschema.InvalidTypeError{},
		&jsonschema.AnyOfError{Alternatives: 2},
		&jsonschema.OneOfError{Passed: 2},
		&jsonschema.NotError{},
		&jsonschema.EnumError{Allowed: []any{"a"}},
		&jsonschema.MaxLengthError{Limit: 1, Length: 2},
		&jsonschema.MinLengthError{Limit: 2, Length: 1},
		&jsonschema.PatternError{Pattern: "^a"},
		&jsonschema.InvalidRegexError{Pattern: "["},
		&jsonschema.MultipleOfError{Divisor: 2},
		&jsonschema.MinimumError{Bound: 0},
		&jsonschema.MaximumError{Bound: 1, Exclusive: true},
		&jsonschema.MinItemsError{Limit: 1},
		&jsonschema.MaxItemsError{Limit: 1, Count: 2},
		&jsonschema.UniqueItemsError{},
		&jsonschema.AdditionalPropertiesError{On: jsonschema.KindObject},
		&jsonschema.AdditionalPropertiesError{On: jsonschema.KindArray},
		&jsonschema.MinPropertiesError{Limit: 1},
		&jsonschema.MaxPropertiesError{Limit: 1, Count: 2},
		&jsonschema.RequiredError{Required: []string{"a"}},
		&jsonschema.DependencyMissingError{Property: "a", Dependency: "b"},
		&jsonschema.FormatUnsupportedError{Format: "uuid"},
		&jsonschema.FormatError{Format: "ipv4"},
		&jsonschema.RemoteReferenceError{Reference: "http://x"},
		&jsonschema.ReferenceNotFoundError{Reference: "#/x", Segment: "x"},
		&jsonschema.ReferenceDepthError{Reference: "#", Depth: 256},
	}

	seen := make(map[string]bool)
	for _, err := range errs {
		ei := Describe(err)
		assert.NotEqual(t, "unknown", ei.Code, "no dedicated description for %T", err)
		assert.NotEmpty(t, ei.Message)
		seen[ei.Code] = true
	}
	// additionalProperties and additionalItems share a Go type but render
	// under distinct codes.
	assert.True(t, seen["additionalProperties"])
	assert.True(t, seen["additionalItems"])
}

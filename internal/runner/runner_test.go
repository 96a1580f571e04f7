package runner

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/andyballingall/json-schema-validator/jsonschema"
)

func productSchema(t *testing.T) *jsonschema.Schema {
	t.Helper()
	return jsonschema.NewSchema(map[string]any{
		"type":     "object",
		"required": []any{"name"},
		"properties": map[string]any{
			"name":  map[string]any{"type": "string"},
			"price": map[string]any{"type": "number"},
		},
	})
}

func writeDoc(t *testing.T, dir, name, content string) string {
	t.Helper()
	require.NoError(t, os.MkdirAll(dir, 0o755))
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestValidateFiles(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	good := writeDoc(t, dir, "good.json", `{"name":"Eggs","price":34.99}`)
	bad := writeDoc(t, dir, "bad.json", `{"price":34.99}`)
	notJSON := writeDoc(t, dir, "broken.json", `{`)

	r := New(productSchema(t))
	report, err := r.ValidateFiles(context.Background(), []string{good, bad, notJSON})
	require.NoError(t, err)

	require.Len(t, report.Results, 3)
	assert.False(t, report.Ok())

	// Results keep the input order.
	assert.Equal(t, good, report.Results[0].Path)
	assert.True(t, report.Results[0].Ok())

	assert.Equal(t, bad, report.Results[1].Path)
	assert.False(t, report.Results[1].Ok())
	require.False(t, report.Results[1].Result.Valid())
	assert.IsType(t, &jsonschema.RequiredError{}, report.Results[1].Result.Errors()[0])

	assert.Equal(t, notJSON, report.Results[2].Path)
	assert.False(t, report.Results[2].Ok())
	assert.IsType(t, &InvalidDocumentError{}, report.Results[2].Err)
}

func TestValidateFilesMissingFile(t *testing.T) {
	t.Parallel()

	r := New(productSchema(t))
	report, err := r.ValidateFiles(context.Background(), []string{"/no/such/doc.json"})
	require.NoError(t, err)

	require.Len(t, report.Results, 1)
	assert.IsType(t, &CannotReadDocumentError{}, report.Results[0].Err)
}

func TestRunSuite(t *testing.T) {
	t.Parallel()

	t.Run("all expectations met", func(t *testing.T) {
		t.Parallel()
		dir := t.TempDir()
		writeDoc(t, filepath.Join(dir, "pass"), "a.json", `{"name":"Eggs"}`)
		writeDoc(t, filepath.Join(dir, "pass"), "b.json", `{"name":"Milk","price":1.5}`)
		writeDoc(t, filepath.Join(dir, "fail"), "a.json", `{"price":1.5}`)

		r := New(productSchema(t))
		report, err := r.RunSuite(context.Background(), dir)
		require.NoError(t, err)

		assert.True(t, report.Ok())
		assert.Len(t, report.Passed(), 3)
		assert.Empty(t, report.Failed())
	})

	t.Run("fail document that validates is reported", func(t *testing.T) {
		t.Parallel()
		dir := t.TempDir()
		writeDoc(t, filepath.Join(dir, "pass"), "a.json", `{"name":"Eggs"}`)
		writeDoc(t, filepath.Join(dir, "fail"), "sneaky.json", `{"name":"ValidAfterAll"}`)

		r := New(productSchema(t))
		report, err := r.RunSuite(context.Background(), dir)
		require.NoError(t, err)

		assert.False(t, report.Ok())
		failed := report.Failed()
		require.Len(t, failed, 1)
		assert.IsType(t, &UnexpectedlyValidError{}, failed[0].Err)
	})

	t.Run("missing suite directory", func(t *testing.T) {
		t.Parallel()
		dir := t.TempDir()
		writeDoc(t, filepath.Join(dir, "pass"), "a.json", `{"name":"Eggs"}`)

		r := New(productSchema(t))
		_, err := r.RunSuite(context.Background(), dir)
		require.Error(t, err)
		assert.IsType(t, &SuiteDirMissingError{}, err)
	})

	t.Run("fail-fast stops after the first failed expectation", func(t *testing.T) {
		t.Parallel()
		dir := t.TempDir()
		writeDoc(t, filepath.Join(dir, "pass"), "bad.json", `{"price":1.5}`)
		writeDoc(t, filepath.Join(dir, "fail"), "a.json", `{"price":1.5}`)

		r := New(productSchema(t))
		r.SetNumWorkers(1)
		r.SetFailFast(true)
		report, err := r.RunSuite(context.Background(), dir)
		require.NoError(t, err)

		// With a single worker the failing pass document is hit first and
		// the fail document is never scheduled.
		assert.False(t, report.Ok())
		assert.Len(t, report.Results, 1)
	})

	t.Run("non-json files are skipped", func(t *testing.T) {
		t.Parallel()
		dir := t.TempDir()
		writeDoc(t, filepath.Join(dir, "pass"), "a.json", `{"name":"Eggs"}`)
		writeDoc(t, filepath.Join(dir, "pass"), "notes.txt", `not json`)
		writeDoc(t, filepath.Join(dir, "fail"), "a.json", `{}`)

		r := New(productSchema(t))
		report, err := r.RunSuite(context.Background(), dir)
		require.NoError(t, err)
		assert.Len(t, report.Results, 2)
	})
}

func TestRunSuiteCancellation(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeDoc(t, filepath.Join(dir, "pass"), "a.json", `{"name":"Eggs"}`)
	writeDoc(t, filepath.Join(dir, "fail"), "a.json", `{}`)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	r := New(productSchema(t))
	_, err := r.RunSuite(ctx, dir)
	require.Error(t, err)
}

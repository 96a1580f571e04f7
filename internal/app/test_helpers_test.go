package app

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

// writeFixtures lays out a schema, two documents and a config file in a temp
// directory and returns the paths.
type fixtures struct {
	dir        string
	configPath string
	schemaPath string
	goodDoc    string
	badDoc     string
}

func writeFixtures(t *testing.T) fixtures {
	t.Helper()

	dir := t.TempDir()

	schema := `{
		"$schema": "http://json-schema.org/draft-04/schema#",
		"type": "object",
		"properties": {
			"name": {"type": "string"},
			"count": {"type": "integer", "minimum": 0}
		},
		"required": ["name"]
	}`
	config := "logFile: " + filepath.Join(dir, "jsv.log") + "\n"

	fx := fixtures{
		dir:        dir,
		configPath: filepath.Join(dir, "jsv.yml"),
		schemaPath: filepath.Join(dir, "thing.schema.json"),
		goodDoc:    filepath.Join(dir, "good.json"),
		badDoc:     filepath.Join(dir, "bad.json"),
	}

	writeFile(t, fx.configPath, config)
	writeFile(t, fx.schemaPath, schema)
	writeFile(t, fx.goodDoc, `{"name": "widget", "count": 3}`)
	writeFile(t, fx.badDoc, `{"count": -1}`)

	return fx
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
}
